package service

import (
	"context"
	"errors"
	"strings"

	"gamerecs/internal/api/models"
	"gamerecs/internal/api/repository"

	"gorm.io/gorm"
)

type GameService interface {
	AddGame(ctx context.Context, game *models.Game) (*models.Game, error)
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	GetByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error)
	ListAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error)
	SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error)
	FindByGenre(ctx context.Context, genre string, page, pageSize int) ([]models.Game, int64, error)
	FindByPlatform(ctx context.Context, platform string, page, pageSize int) ([]models.Game, int64, error)
	FindByDeveloper(ctx context.Context, developer string, page, pageSize int) ([]models.Game, int64, error)
	DeleteGame(ctx context.Context, id int64) error
}

type gameService struct {
	gameRepo repository.GameRepository
	// ratings is consulted for cascading cleanup on game deletion.
	ratings RatingService
}

func NewGameService(gameRepo repository.GameRepository, ratings RatingService) GameService {
	return &gameService{gameRepo: gameRepo, ratings: ratings}
}

func (s *gameService) AddGame(ctx context.Context, game *models.Game) (*models.Game, error) {
	if strings.TrimSpace(game.Title) == "" {
		return nil, ErrInvalidInput
	}
	if game.IGDBID != nil {
		exists, err := s.gameRepo.ExistsByIGDBID(ctx, *game.IGDBID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrGameExists
		}
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrGameExists
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	game, err := s.gameRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) GetByIGDBID(ctx context.Context, igdbID int64) (*models.Game, error) {
	game, err := s.gameRepo.FindByIGDBID(ctx, igdbID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) ListAll(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	return s.gameRepo.FindAll(ctx, page, pageSize)
}

func (s *gameService) SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error) {
	return s.gameRepo.SearchByTitle(ctx, title, page, pageSize)
}

func (s *gameService) FindByGenre(ctx context.Context, genre string, page, pageSize int) ([]models.Game, int64, error) {
	return s.gameRepo.FindByGenre(ctx, genre, page, pageSize)
}

func (s *gameService) FindByPlatform(ctx context.Context, platform string, page, pageSize int) ([]models.Game, int64, error) {
	return s.gameRepo.FindByPlatform(ctx, platform, page, pageSize)
}

func (s *gameService) FindByDeveloper(ctx context.Context, developer string, page, pageSize int) ([]models.Game, int64, error) {
	return s.gameRepo.FindByDeveloper(ctx, developer, page, pageSize)
}

// DeleteGame removes the game and cascades through its ratings so no
// stale derived reads survive it.
func (s *gameService) DeleteGame(ctx context.Context, id int64) error {
	if err := s.ratings.DeleteAllForGame(ctx, id); err != nil {
		return err
	}
	if err := s.gameRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGameNotFound
		}
		return err
	}
	return nil
}
