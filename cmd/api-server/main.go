package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gamerecs/database"
	"gamerecs/internal/api/handler"
	"gamerecs/internal/api/middleware"
	"gamerecs/internal/api/repository"
	"gamerecs/internal/api/service"
	"gamerecs/internal/cache"
	"gamerecs/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	var store cache.Store
	redisStore, err := cache.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, using in-process cache", "error", err)
		store = cache.NewMemory()
	} else {
		defer redisStore.Close()
		store = redisStore
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	gameRepo := repository.NewGameRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	backlogRepo := repository.NewBacklogRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.AccessTokenTTL)
	ratingService := service.NewRatingService(ratingRepo, gameRepo, store, cfg.CacheTTL, logger)
	userService := service.NewUserService(userRepo, ratingService)
	gameService := service.NewGameService(gameRepo, ratingService)
	backlogService := service.NewBacklogService(backlogRepo, gameRepo, logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, userService)
	gameHandler := handler.NewGameHandler(gameService)
	ratingHandler := handler.NewRatingHandler(ratingService)
	backlogHandler := handler.NewBacklogHandler(backlogService)

	if cfg.GoEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	authGroup := api.Group("/auth")
	users := api.Group("/users")
	users.Use(middleware.AuthRequired(authService))

	// Game reads are public; game writes and everything rating- or
	// backlog-shaped requires an authenticated user.
	games := api.Group("/games")
	gamesAuthed := api.Group("/games")
	gamesAuthed.Use(middleware.AuthRequired(authService))

	gameHandler.RegisterRoutes(games, gamesAuthed)
	ratingHandler.RegisterRoutes(gamesAuthed, users)
	authHandler.RegisterRoutes(authGroup, users)
	backlogHandler.RegisterRoutes(users)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("API server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
