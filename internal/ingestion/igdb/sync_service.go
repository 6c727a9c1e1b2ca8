package igdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"gorm.io/gorm"

	"gamerecs/internal/api/models"
	"gamerecs/internal/api/repository"
)

// SyncConfig controls pagination and concurrency of a catalog sync.
type SyncConfig struct {
	PageSize    int
	MaxPages    int // 0 means fetch until the API returns an empty page
	WorkerCount int
}

func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		PageSize:    100,
		MaxPages:    0,
		WorkerCount: 4,
	}
}

// SyncService pulls games from IGDB and upserts them into the catalog.
type SyncService struct {
	client *Client
	games  repository.GameRepository
	config SyncConfig
	logger *slog.Logger

	created atomic.Int64
	updated atomic.Int64
	failed  atomic.Int64
}

func NewSyncService(client *Client, games repository.GameRepository, config SyncConfig, logger *slog.Logger) *SyncService {
	if logger == nil {
		logger = slog.Default()
	}
	if config.PageSize <= 0 {
		config.PageSize = 100
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	return &SyncService{
		client: client,
		games:  games,
		config: config,
		logger: logger,
	}
}

// Sync walks the IGDB games endpoint page by page and upserts each game
// through the worker pool. Individual game failures are counted, not fatal;
// a page fetch failure aborts the run.
func (s *SyncService) Sync(ctx context.Context) error {
	start := time.Now()
	pool := NewWorkerPool(ctx, s.config.WorkerCount, s.logger)
	pool.Start()

	page := 0
	for {
		if s.config.MaxPages > 0 && page >= s.config.MaxPages {
			break
		}

		offset := page * s.config.PageSize
		batch, err := s.client.Games(ctx, s.config.PageSize, offset)
		if err != nil {
			pool.Shutdown()
			return fmt.Errorf("sync aborted at offset %d: %w", offset, err)
		}
		if len(batch) == 0 {
			break
		}

		for _, g := range batch {
			game := g
			pool.Submit(func(taskCtx context.Context) error {
				return s.upsertGame(taskCtx, game)
			})
		}

		s.logger.Info("page queued", "page", page, "games", len(batch))
		page++
	}

	pool.Wait()

	s.logger.Info("sync complete",
		"created", s.created.Load(),
		"updated", s.updated.Load(),
		"failed", s.failed.Load(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return nil
}

func (s *SyncService) upsertGame(ctx context.Context, src IGDBGame) error {
	if src.Name == "" {
		return nil
	}

	existing, err := s.games.FindByIGDBID(ctx, src.ID)
	switch {
	case err == nil:
		incoming := toModel(src)
		incoming.ID = existing.ID
		incoming.CreatedAt = existing.CreatedAt
		if err := s.games.Update(ctx, &incoming); err != nil {
			s.failed.Add(1)
			return fmt.Errorf("update igdb game %d: %w", src.ID, err)
		}
		s.updated.Add(1)
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		game := toModel(src)
		if err := s.games.Create(ctx, &game); err != nil {
			// A concurrent worker may have created it between the lookup
			// and the insert; treat the conflict as an update miss.
			if errors.Is(err, repository.ErrConflict) {
				return nil
			}
			s.failed.Add(1)
			return fmt.Errorf("create igdb game %d: %w", src.ID, err)
		}
		s.created.Add(1)
		return nil
	default:
		s.failed.Add(1)
		return fmt.Errorf("lookup igdb game %d: %w", src.ID, err)
	}
}

// toModel maps an IGDB payload onto the catalog's game model.
func toModel(src IGDBGame) models.Game {
	game := models.Game{
		IGDBID: &src.ID,
		Title:  src.Name,
	}

	if src.Summary != "" {
		summary := src.Summary
		game.Description = &summary
	}
	if src.FirstReleaseDate > 0 {
		released := time.Unix(src.FirstReleaseDate, 0).UTC()
		game.ReleaseDate = &released
	}
	for _, g := range src.Genres {
		game.Genres = append(game.Genres, g.Name)
	}
	for _, p := range src.Platforms {
		game.Platforms = append(game.Platforms, p.Name)
	}
	if src.Cover != nil && src.Cover.URL != "" {
		url := src.Cover.URL
		game.CoverImageURL = &url
	}
	for _, ic := range src.InvolvedCompanies {
		if ic.Developer && game.Developer == nil {
			name := ic.Company.Name
			game.Developer = &name
		}
		if ic.Publisher && game.Publisher == nil {
			name := ic.Company.Name
			game.Publisher = &name
		}
	}
	return game
}
