package service

import (
	"context"
	"errors"

	"gamerecs/internal/api/models"
	"gamerecs/internal/api/repository"

	"gorm.io/gorm"
)

type UserService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, bio, profilePictureURL *string) (*models.User, error)
	DeleteAccount(ctx context.Context, userID string) error
}

type userService struct {
	userRepo repository.UserRepository
	// ratings is consulted for cascading cleanup on account deletion.
	ratings RatingService
}

func NewUserService(userRepo repository.UserRepository, ratings RatingService) UserService {
	return &userService{userRepo: userRepo, ratings: ratings}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, bio, profilePictureURL *string) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bio != nil {
		user.Bio = bio
	}
	if profilePictureURL != nil {
		user.ProfilePictureURL = profilePictureURL
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the user and cascades through their ratings so
// no stale derived reads survive it.
func (s *userService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.ratings.DeleteAllForUser(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
