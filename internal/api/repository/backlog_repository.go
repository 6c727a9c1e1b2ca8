package repository

import (
	"context"
	"fmt"

	"gamerecs/internal/api/models"

	"gorm.io/gorm"
)

type BacklogRepository interface {
	Create(ctx context.Context, item *models.BacklogItem) error
	Save(ctx context.Context, item *models.BacklogItem) error
	Delete(ctx context.Context, userID string, gameID int64) error
	FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.BacklogItem, error)
	FindPageByUser(ctx context.Context, userID string, status *models.BacklogStatus, page, pageSize int) ([]models.BacklogItem, int64, error)
	CountByUserAndStatus(ctx context.Context, userID string, status models.BacklogStatus) (int64, error)
}

type backlogRepository struct {
	db *gorm.DB
}

func NewBacklogRepository(db *gorm.DB) BacklogRepository {
	return &backlogRepository{db: db}
}

func (r *backlogRepository) Create(ctx context.Context, item *models.BacklogItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("add backlog item: %w", ErrConflict)
		}
		return fmt.Errorf("add backlog item: %w", err)
	}
	return nil
}

func (r *backlogRepository) Save(ctx context.Context, item *models.BacklogItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("save backlog item: %w", err)
	}
	return nil
}

func (r *backlogRepository) Delete(ctx context.Context, userID string, gameID int64) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		Delete(&models.BacklogItem{})
	if result.Error != nil {
		return fmt.Errorf("remove backlog item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *backlogRepository) FindByUserAndGame(ctx context.Context, userID string, gameID int64) (*models.BacklogItem, error) {
	var item models.BacklogItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *backlogRepository) FindPageByUser(ctx context.Context, userID string, status *models.BacklogStatus, page, pageSize int) ([]models.BacklogItem, int64, error) {
	filter := func(q *gorm.DB) *gorm.DB {
		q = q.Where("user_id = ?", userID)
		if status != nil {
			q = q.Where("status = ?", *status)
		}
		return q
	}

	var total int64
	if err := filter(r.db.WithContext(ctx).Model(&models.BacklogItem{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []models.BacklogItem
	err := filter(r.db.WithContext(ctx)).
		Preload("Game").
		Order("updated_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *backlogRepository) CountByUserAndStatus(ctx context.Context, userID string, status models.BacklogStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.BacklogItem{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}
