package repository

import (
	"context"
	"fmt"

	"gamerecs/internal/api/models"

	"gorm.io/gorm"
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Game, error)
	FindByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error)
	ExistsByIGDBID(ctx context.Context, igdbID int64) (bool, error)
	FindAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error)
	SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error)
	FindByGenre(ctx context.Context, genre string, page, pageSize int) ([]models.Game, int64, error)
	FindByPlatform(ctx context.Context, platform string, page, pageSize int) ([]models.Game, int64, error)
	FindByDeveloper(ctx context.Context, developer string, page, pageSize int) ([]models.Game, int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Create(game).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create game: %w", ErrConflict)
		}
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	if err := r.db.WithContext(ctx).Save(game).Error; err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	return nil
}

func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&models.Game{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete game: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gameRepository) FindByID(ctx context.Context, id int64) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).First(&game, id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) FindByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error) {
	var game models.Game
	if err := r.db.WithContext(ctx).Where("igdb_id = ?", igdbID).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) ExistsByIGDBID(ctx context.Context, igdbID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Game{}).
		Where("igdb_id = ?", igdbID).
		Count(&count).Error
	return count > 0, err
}

func (r *gameRepository) FindAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	return r.paged(ctx, page, pageSize, func(q *gorm.DB) *gorm.DB {
		return q
	})
}

func (r *gameRepository) SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error) {
	return r.paged(ctx, page, pageSize, func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(title) LIKE LOWER(?)", "%"+title+"%")
	})
}

// FindByGenre matches against the JSON-serialized genres column; good
// enough for a catalog this size without a join table.
func (r *gameRepository) FindByGenre(ctx context.Context, genre string, page, pageSize int) ([]models.Game, int64, error) {
	return r.paged(ctx, page, pageSize, func(q *gorm.DB) *gorm.DB {
		return q.Where("genres LIKE ?", "%\""+genre+"\"%")
	})
}

func (r *gameRepository) FindByPlatform(ctx context.Context, platform string, page, pageSize int) ([]models.Game, int64, error) {
	return r.paged(ctx, page, pageSize, func(q *gorm.DB) *gorm.DB {
		return q.Where("platforms LIKE ?", "%\""+platform+"\"%")
	})
}

func (r *gameRepository) FindByDeveloper(ctx context.Context, developer string, page, pageSize int) ([]models.Game, int64, error) {
	return r.paged(ctx, page, pageSize, func(q *gorm.DB) *gorm.DB {
		return q.Where("LOWER(developer) = LOWER(?)", developer)
	})
}

// paged runs filter over separate count and find queries; reusing one
// builder for both trips gorm's statement accumulation.
func (r *gameRepository) paged(ctx context.Context, page, pageSize int, filter func(*gorm.DB) *gorm.DB) ([]models.Game, int64, error) {
	var games []models.Game
	var total int64

	if err := filter(r.db.WithContext(ctx).Model(&models.Game{})).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := filter(r.db.WithContext(ctx)).
		Order("title ASC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}
	return games, total, nil
}
