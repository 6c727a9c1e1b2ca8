package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gamerecs/internal/api/models"
	"gamerecs/internal/api/repository"
	"gamerecs/internal/cache"
	"gamerecs/internal/keymutex"
	"gamerecs/internal/rank"

	"gorm.io/gorm"
)

// RatingService is the rating engine. Writes for one user are
// serialized through a per-user lock so the read-history-then-write
// percentile computation never sees a concurrent mutation from the same
// user; reads go through the derived-value cache, which is invalidated
// wholesale on every mutation.
type RatingService interface {
	Rate(ctx context.Context, userID string, gameID int64, value int) (*models.Rating, error)
	Unrate(ctx context.Context, userID string, gameID int64) error
	RatingOf(ctx context.Context, userID string, gameID int64) (*models.Rating, error)
	RatingsByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Rating, int64, error)
	RatingsForGame(ctx context.Context, gameID int64, page, pageSize int) ([]models.Rating, int64, error)
	AverageForGame(ctx context.Context, gameID int64) (*float64, int64, error)
	CountForGame(ctx context.Context, gameID int64) (int64, error)
	DeleteAllForUser(ctx context.Context, userID string) error
	DeleteAllForGame(ctx context.Context, gameID int64) error
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	gameRepo   repository.GameRepository
	cache      cache.Store
	locks      *keymutex.KeyMutex
	cacheTTL   time.Duration
	logger     *slog.Logger
}

func NewRatingService(
	ratingRepo repository.RatingRepository,
	gameRepo repository.GameRepository,
	store cache.Store,
	cacheTTL time.Duration,
	logger *slog.Logger,
) RatingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ratingService{
		ratingRepo: ratingRepo,
		gameRepo:   gameRepo,
		cache:      store,
		locks:      keymutex.New(),
		cacheTTL:   cacheTTL,
		logger:     logger,
	}
}

// Rate creates or updates the user's rating for a game and computes its
// percentile rank against the user's other ratings. The rating being
// written never counts toward its own reference population.
func (s *ratingService) Rate(ctx context.Context, userID string, gameID int64, value int) (*models.Rating, error) {
	if userID == "" || gameID <= 0 {
		return nil, ErrInvalidInput
	}
	if value < 0 || value > 100 {
		return nil, ErrInvalidRatingValue
	}

	if _, err := s.gameRepo.FindByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	if err := s.locks.Lock(ctx, userID); err != nil {
		return nil, err
	}
	defer s.locks.Unlock(userID)

	history, err := s.ratingRepo.FindAllByUserOrderedByValue(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Split the history into the existing rating for this game (if
	// any) and the reference population of other-game values.
	var existing *models.Rating
	population := make([]int, 0, len(history))
	for i := range history {
		if history[i].GameID == gameID {
			existing = &history[i]
			continue
		}
		population = append(population, history[i].Value)
	}

	if rank.DistinctValues(population) < rank.MinDistinctValues {
		return nil, ErrInsufficientHistory
	}

	var rating *models.Rating
	if existing != nil {
		existing.Value = value
		rating = existing
	} else {
		rating = &models.Rating{UserID: userID, GameID: gameID, Value: value}
	}

	percentile := rank.Percentile(value, population)
	rating.PercentileRank = &percentile

	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		return nil, err
	}

	s.invalidate(ctx, userID, gameID)
	return rating, nil
}

// Unrate removes the user's rating for a game. It takes the same
// per-user lock as Rate so a deletion cannot race an in-flight write
// that already read the pre-deletion population.
func (s *ratingService) Unrate(ctx context.Context, userID string, gameID int64) error {
	if userID == "" || gameID <= 0 {
		return ErrInvalidInput
	}

	if err := s.locks.Lock(ctx, userID); err != nil {
		return err
	}
	defer s.locks.Unlock(userID)

	if err := s.ratingRepo.Delete(ctx, userID, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRatingNotFound
		}
		return err
	}

	s.invalidate(ctx, userID, gameID)
	return nil
}

// RatingOf returns the user's rating for a game, or (nil, nil) when
// none exists.
func (s *ratingService) RatingOf(ctx context.Context, userID string, gameID int64) (*models.Rating, error) {
	key := cache.UserGameRatingKey(userID, gameID)
	var cached models.Rating
	if s.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	rating, err := s.ratingRepo.FindByUserAndGame(ctx, userID, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	s.cacheSet(ctx, key, rating)
	return rating, nil
}

type ratingPage struct {
	Ratings []models.Rating `json:"ratings"`
	Total   int64           `json:"total"`
}

func (s *ratingService) RatingsByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Rating, int64, error) {
	key := cache.UserRatingsPageKey(userID, page, pageSize)
	var cached ratingPage
	if s.cacheGet(ctx, key, &cached) {
		return cached.Ratings, cached.Total, nil
	}

	ratings, total, err := s.ratingRepo.FindPageByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	s.cacheSet(ctx, key, ratingPage{Ratings: ratings, Total: total})
	return ratings, total, nil
}

func (s *ratingService) RatingsForGame(ctx context.Context, gameID int64, page, pageSize int) ([]models.Rating, int64, error) {
	if _, err := s.gameRepo.FindByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrGameNotFound
		}
		return nil, 0, err
	}

	key := cache.GameRatingsPageKey(gameID, page, pageSize)
	var cached ratingPage
	if s.cacheGet(ctx, key, &cached) {
		return cached.Ratings, cached.Total, nil
	}

	ratings, total, err := s.ratingRepo.FindPageByGame(ctx, gameID, page, pageSize)
	if err != nil {
		return nil, 0, err
	}

	s.cacheSet(ctx, key, ratingPage{Ratings: ratings, Total: total})
	return ratings, total, nil
}

type gameAverage struct {
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}

// AverageForGame returns the average rating value and rating count for
// a game. The average is nil when the game has no ratings.
func (s *ratingService) AverageForGame(ctx context.Context, gameID int64) (*float64, int64, error) {
	if _, err := s.gameRepo.FindByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrGameNotFound
		}
		return nil, 0, err
	}

	key := cache.GameAverageKey(gameID)
	var cached gameAverage
	if s.cacheGet(ctx, key, &cached) {
		return cached.Average, cached.Count, nil
	}

	avg, err := s.ratingRepo.AverageByGame(ctx, gameID)
	if err != nil {
		return nil, 0, err
	}
	count, err := s.ratingRepo.CountByGame(ctx, gameID)
	if err != nil {
		return nil, 0, err
	}

	s.cacheSet(ctx, key, gameAverage{Average: avg, Count: count})
	return avg, count, nil
}

func (s *ratingService) CountForGame(ctx context.Context, gameID int64) (int64, error) {
	return s.ratingRepo.CountByGame(ctx, gameID)
}

// DeleteAllForUser is the cascading cleanup hook for user deletion. It
// is administrative and not serialized through the per-user lock.
func (s *ratingService) DeleteAllForUser(ctx context.Context, userID string) error {
	if err := s.ratingRepo.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	for _, prefix := range cache.UserPrefix(userID) {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			s.logger.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
	// Game-scoped pages and averages referencing this user's ratings
	// are stale now too; without the affected game ids the whole
	// game-derived space is swept.
	for _, prefix := range []string{"ratings:game:", "avg:game:"} {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			s.logger.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
	return nil
}

// DeleteAllForGame is the cascading cleanup hook for game deletion.
func (s *ratingService) DeleteAllForGame(ctx context.Context, gameID int64) error {
	if err := s.ratingRepo.DeleteAllByGame(ctx, gameID); err != nil {
		return err
	}
	for _, prefix := range cache.GamePrefix(gameID) {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			s.logger.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
	for _, prefix := range []string{"rating:user:", "ratings:user:"} {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			s.logger.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
	return nil
}

// invalidate removes every cached derived read touched by a mutation of
// (userID, gameID). Entries are removed, never rewritten.
func (s *ratingService) invalidate(ctx context.Context, userID string, gameID int64) {
	prefixes := append(cache.UserPrefix(userID), cache.GamePrefix(gameID)...)
	for _, prefix := range prefixes {
		if err := s.cache.DeletePrefix(ctx, prefix); err != nil {
			s.logger.Warn("cache invalidation failed", "prefix", prefix, "error", err)
		}
	}
}

func (s *ratingService) cacheGet(ctx context.Context, key string, out any) bool {
	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		s.logger.Warn("cache entry corrupt", "key", key, "error", err)
		return false
	}
	return true
}

func (s *ratingService) cacheSet(ctx context.Context, key string, val any) {
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", "key", key, "error", err)
	}
}
