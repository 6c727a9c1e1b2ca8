package dto

import (
	"time"

	"gamerecs/internal/api/models"
)

type RegisterRequest struct {
	Username          string  `json:"username" binding:"required,min=3,max=50"`
	Email             string  `json:"email" binding:"required,email"`
	Password          string  `json:"password" binding:"required,min=8"`
	Bio               *string `json:"bio,omitempty" binding:"omitempty,max=1000"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" binding:"omitempty,url,max=500"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID                string     `json:"id"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Bio               *string    `json:"bio,omitempty"`
	ProfilePictureURL *string    `json:"profile_picture_url,omitempty"`
	JoinDate          time.Time  `json:"join_date"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}

type UpdateProfileRequest struct {
	Bio               *string `json:"bio,omitempty" binding:"omitempty,max=1000"`
	ProfilePictureURL *string `json:"profile_picture_url,omitempty" binding:"omitempty,url,max=500"`
}

func FromUserModel(user *models.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		Bio:               user.Bio,
		ProfilePictureURL: user.ProfilePictureURL,
		JoinDate:          user.JoinDate,
		LastLogin:         user.LastLogin,
	}
}
