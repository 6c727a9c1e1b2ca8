package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamerecs/internal/api/dto"
	"gamerecs/internal/api/middleware"
	"gamerecs/internal/api/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

// RegisterRoutes mounts rating routes under /games/:game_id/ratings and
// the user-scoped listing under /users/me/ratings.
func (h *RatingHandler) RegisterRoutes(games, users *gin.RouterGroup) {
	ratings := games.Group("/:game_id/ratings")
	{
		ratings.GET("", h.ListForGame)
		ratings.GET("/average", h.GetAverage)
		ratings.POST("", h.Rate)
		ratings.GET("/me", h.GetOwn)
		ratings.DELETE("", h.Unrate)
	}
	users.GET("/me/ratings", h.ListOwn)
}

// Rate creates or updates the caller's rating for a game.
// POST /api/games/:game_id/ratings
func (h *RatingHandler) Rate(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), userID, gameID, *req.Value)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientHistory):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidRatingValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	resp := dto.FromRatingModel(rating)
	c.JSON(http.StatusOK, resp)
}

// GetOwn returns the caller's rating for a game, 404 when absent.
// GET /api/games/:game_id/ratings/me
func (h *RatingHandler) GetOwn(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	rating, err := h.ratingService.RatingOf(c.Request.Context(), userID, gameID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if rating == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "rating not found"})
		return
	}

	resp := dto.FromRatingModel(rating)
	c.JSON(http.StatusOK, resp)
}

// Unrate removes the caller's rating for a game.
// DELETE /api/games/:game_id/ratings
func (h *RatingHandler) Unrate(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.ratingService.Unrate(c.Request.Context(), userID, gameID); err != nil {
		switch {
		case errors.Is(err, service.ErrRatingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rating deleted"})
}

// ListForGame returns a page of ratings for a game.
// GET /api/games/:game_id/ratings?page=1&page_size=20
func (h *RatingHandler) ListForGame(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	page, pageSize := pagination(c)

	ratings, total, err := h.ratingService.RatingsForGame(c.Request.Context(), gameID, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginated(dto.FromRatingModels(ratings), total, page, pageSize))
}

// ListOwn returns a page of the caller's ratings.
// GET /api/users/me/ratings?page=1&page_size=20
func (h *RatingHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, pageSize := pagination(c)

	ratings, total, err := h.ratingService.RatingsByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginated(dto.FromRatingModels(ratings), total, page, pageSize))
}

// GetAverage returns the average rating and count for a game.
// GET /api/games/:game_id/ratings/average
func (h *RatingHandler) GetAverage(c *gin.Context) {
	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	avg, count, err := h.ratingService.AverageForGame(c.Request.Context(), gameID)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.AverageRatingResponse{GameID: gameID, Average: avg, Count: count})
}
