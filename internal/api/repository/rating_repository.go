package repository

import (
	"context"
	"fmt"

	"gamerecs/internal/api/models"

	"gorm.io/gorm"
)

type RatingRepository interface {
	FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.Rating, error)
	FindAllByUserOrderedByValue(ctx context.Context, userID string) ([]models.Rating, error)
	FindPageByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Rating, int64, error)
	FindPageByGame(ctx context.Context, gameID int64, page, pageSize int) ([]models.Rating, int64, error)
	Upsert(ctx context.Context, rating *models.Rating) error
	Delete(ctx context.Context, userID string, gameID int64) error
	DeleteAllByUser(ctx context.Context, userID string) error
	DeleteAllByGame(ctx context.Context, gameID int64) error
	CountByGame(ctx context.Context, gameID int64) (int64, error)
	AverageByGame(ctx context.Context, gameID int64) (*float64, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&rating).Error
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

// FindAllByUserOrderedByValue returns the user's full rating history
// ascending by value, the shape the percentile calculation consumes.
func (r *ratingRepository) FindAllByUserOrderedByValue(ctx context.Context, userID string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("value ASC").
		Find(&ratings).Error
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) FindPageByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

func (r *ratingRepository) FindPageByGame(ctx context.Context, gameID int64, page, pageSize int) ([]models.Rating, int64, error) {
	var ratings []models.Rating
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("game_id = ?", gameID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Preload("User").
		Order("updated_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&ratings).Error
	if err != nil {
		return nil, 0, err
	}
	return ratings, total, nil
}

// Upsert persists rating, creating it when it has no id yet. A
// duplicate-key race on creation surfaces as ErrConflict.
func (r *ratingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	var err error
	if rating.ID == 0 {
		err = r.db.WithContext(ctx).Create(rating).Error
	} else {
		err = r.db.WithContext(ctx).Save(rating).Error
	}
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("upsert rating: %w", ErrConflict)
		}
		return fmt.Errorf("upsert rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) Delete(ctx context.Context, userID string, gameID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.Rating{})
	if result.Error != nil {
		return fmt.Errorf("delete rating: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ratingRepository) DeleteAllByUser(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Rating{}).Error
	if err != nil {
		return fmt.Errorf("delete ratings for user: %w", err)
	}
	return nil
}

func (r *ratingRepository) DeleteAllByGame(ctx context.Context, gameID int64) error {
	err := r.db.WithContext(ctx).
		Where("game_id = ?", gameID).
		Delete(&models.Rating{}).Error
	if err != nil {
		return fmt.Errorf("delete ratings for game: %w", err)
	}
	return nil
}

func (r *ratingRepository) CountByGame(ctx context.Context, gameID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return count, err
}

// AverageByGame returns nil when the game has no ratings.
func (r *ratingRepository) AverageByGame(ctx context.Context, gameID int64) (*float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&models.Rating{}).
		Select("AVG(value)").
		Where("game_id = ?", gameID).
		Scan(&avg).Error
	if err != nil {
		return nil, err
	}
	return avg, nil
}
