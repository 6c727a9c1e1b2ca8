package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamerecs/internal/api/dto"
	"gamerecs/internal/api/middleware"
	"gamerecs/internal/api/models"
	"gamerecs/internal/api/service"

	"github.com/gin-gonic/gin"
)

type BacklogHandler struct {
	backlogService service.BacklogService
}

func NewBacklogHandler(backlogService service.BacklogService) *BacklogHandler {
	return &BacklogHandler{backlogService: backlogService}
}

func (h *BacklogHandler) RegisterRoutes(users *gin.RouterGroup) {
	backlog := users.Group("/me/backlog")
	{
		backlog.GET("", h.List)
		backlog.GET("/stats", h.Stats)
		backlog.POST("", h.Add)
		backlog.PATCH("/batch", h.BatchUpdate)
		backlog.PATCH("/:game_id", h.UpdateStatus)
		backlog.DELETE("/:game_id", h.Remove)
	}
}

// Add puts a game in the caller's backlog.
// POST /api/users/me/backlog
func (h *BacklogHandler) Add(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.AddBacklogItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.backlogService.Add(c.Request.Context(), userID, req.GameID, models.BacklogStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyInBacklog):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, dto.FromBacklogModel(item))
}

// UpdateStatus changes the status of one backlog item.
// PATCH /api/users/me/backlog/:game_id
func (h *BacklogHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	var req dto.UpdateBacklogStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.backlogService.UpdateStatus(c.Request.Context(), userID, gameID, models.BacklogStatus(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotInBacklog):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrBadTransition), errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromBacklogModel(item))
}

// BatchUpdate applies several status changes best-effort; the response
// holds only the items that were updated.
// PATCH /api/users/me/backlog/batch
func (h *BacklogHandler) BatchUpdate(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.BatchStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := make([]service.StatusUpdate, 0, len(req.Updates))
	for _, u := range req.Updates {
		updates = append(updates, service.StatusUpdate{
			GameID: u.GameID,
			Status: models.BacklogStatus(u.Status),
		})
	}

	updated, err := h.backlogService.BatchUpdateStatus(c.Request.Context(), userID, updates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"updated":   dto.FromBacklogModels(updated),
		"requested": len(req.Updates),
	})
}

// Remove takes a game out of the caller's backlog.
// DELETE /api/users/me/backlog/:game_id
func (h *BacklogHandler) Remove(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	gameID, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	if err := h.backlogService.Remove(c.Request.Context(), userID, gameID); err != nil {
		if errors.Is(err, service.ErrNotInBacklog) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from backlog"})
}

// List returns the caller's backlog, optionally filtered by status.
// GET /api/users/me/backlog?status=COMPLETED&page=1&page_size=20
func (h *BacklogHandler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var status *models.BacklogStatus
	if raw := c.Query("status"); raw != "" {
		s := models.BacklogStatus(raw)
		if !s.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
			return
		}
		status = &s
	}

	page, pageSize := pagination(c)

	items, total, err := h.backlogService.List(c.Request.Context(), userID, status, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginated(dto.FromBacklogModels(items), total, page, pageSize))
}

// Stats returns per-status item counts for the caller's backlog.
// GET /api/users/me/backlog/stats
func (h *BacklogHandler) Stats(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.backlogService.Stats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, stats)
}
