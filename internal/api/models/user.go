package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                string     `gorm:"primaryKey;type:uuid" json:"id"`
	Username          string     `gorm:"uniqueIndex;not null;size:50" json:"username"`
	Email             string     `gorm:"uniqueIndex;not null;size:255" json:"email"`
	PasswordHash      string     `gorm:"column:password_hash;not null" json:"-"`
	ProfilePictureURL *string    `gorm:"type:text" json:"profile_picture_url,omitempty"`
	Bio               *string    `gorm:"type:text" json:"bio,omitempty"`
	JoinDate          time.Time  `gorm:"autoCreateTime" json:"join_date"`
	LastLogin         *time.Time `json:"last_login,omitempty"`
}

// BeforeCreate assigns a UUID when none was set by the caller.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}
