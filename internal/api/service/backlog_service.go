package service

import (
	"context"
	"errors"
	"log/slog"

	"gamerecs/internal/api/models"
	"gamerecs/internal/api/repository"

	"gorm.io/gorm"
)

// StatusUpdate is one entry of a batch status change.
type StatusUpdate struct {
	GameID int64
	Status models.BacklogStatus
}

type BacklogService interface {
	Add(ctx context.Context, userID string, gameID int64, status models.BacklogStatus) (*models.BacklogItem, error)
	UpdateStatus(ctx context.Context, userID string, gameID int64, status models.BacklogStatus) (*models.BacklogItem, error)
	Remove(ctx context.Context, userID string, gameID int64) error
	List(ctx context.Context, userID string, status *models.BacklogStatus, page, pageSize int) ([]models.BacklogItem, int64, error)
	Stats(ctx context.Context, userID string) (map[models.BacklogStatus]int64, error)
	BatchUpdateStatus(ctx context.Context, userID string, updates []StatusUpdate) ([]models.BacklogItem, error)
}

type backlogService struct {
	backlogRepo repository.BacklogRepository
	gameRepo    repository.GameRepository
	logger      *slog.Logger
}

func NewBacklogService(backlogRepo repository.BacklogRepository, gameRepo repository.GameRepository, logger *slog.Logger) BacklogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &backlogService{backlogRepo: backlogRepo, gameRepo: gameRepo, logger: logger}
}

func (s *backlogService) Add(ctx context.Context, userID string, gameID int64, status models.BacklogStatus) (*models.BacklogItem, error) {
	if userID == "" || gameID <= 0 || !status.Valid() {
		return nil, ErrInvalidInput
	}

	if _, err := s.gameRepo.FindByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if _, err := s.backlogRepo.FindByUserAndGame(ctx, userID, gameID); err == nil {
		return nil, ErrAlreadyInBacklog
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	item := &models.BacklogItem{UserID: userID, GameID: gameID, Status: status}
	if err := s.backlogRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, ErrAlreadyInBacklog
		}
		return nil, err
	}
	return item, nil
}

func (s *backlogService) UpdateStatus(ctx context.Context, userID string, gameID int64, status models.BacklogStatus) (*models.BacklogItem, error) {
	if userID == "" || gameID <= 0 || !status.Valid() {
		return nil, ErrInvalidInput
	}

	item, err := s.backlogRepo.FindByUserAndGame(ctx, userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInBacklog
		}
		return nil, err
	}

	if err := validateTransition(item.Status, status); err != nil {
		return nil, err
	}

	item.Status = status
	if err := s.backlogRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *backlogService) Remove(ctx context.Context, userID string, gameID int64) error {
	if err := s.backlogRepo.Delete(ctx, userID, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInBacklog
		}
		return err
	}
	return nil
}

func (s *backlogService) List(ctx context.Context, userID string, status *models.BacklogStatus, page, pageSize int) ([]models.BacklogItem, int64, error) {
	return s.backlogRepo.FindPageByUser(ctx, userID, status, page, pageSize)
}

// Stats returns the item count per status, including zeroes.
func (s *backlogService) Stats(ctx context.Context, userID string) (map[models.BacklogStatus]int64, error) {
	stats := make(map[models.BacklogStatus]int64, 4)
	for _, status := range []models.BacklogStatus{
		models.StatusToPlay,
		models.StatusInProgress,
		models.StatusCompleted,
		models.StatusAbandoned,
	} {
		count, err := s.backlogRepo.CountByUserAndStatus(ctx, userID, status)
		if err != nil {
			return nil, err
		}
		stats[status] = count
	}
	return stats, nil
}

// BatchUpdateStatus applies updates best-effort: items that fail are
// skipped and omitted from the result, so an undersized result set is
// the caller's signal of partial failure.
func (s *backlogService) BatchUpdateStatus(ctx context.Context, userID string, updates []StatusUpdate) ([]models.BacklogItem, error) {
	updated := make([]models.BacklogItem, 0, len(updates))
	for _, u := range updates {
		item, err := s.UpdateStatus(ctx, userID, u.GameID, u.Status)
		if err != nil {
			s.logger.Warn("batch status update skipped item",
				"user_id", userID, "game_id", u.GameID, "error", err)
			continue
		}
		updated = append(updated, *item)
	}
	return updated, nil
}

func validateTransition(current, next models.BacklogStatus) error {
	if current == models.StatusCompleted && next == models.StatusToPlay {
		return ErrBadTransition
	}
	return nil
}
