package handler

import (
	"errors"
	"net/http"
	"strconv"

	"gamerecs/internal/api/dto"
	"gamerecs/internal/api/service"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService service.GameService
}

func NewGameHandler(gameService service.GameService) *GameHandler {
	return &GameHandler{gameService: gameService}
}

// RegisterRoutes mounts reads on the public group and writes on the
// authenticated one.
func (h *GameHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:game_id", h.Get)
	authed.POST("", h.Create)
	authed.DELETE("/:game_id", h.Delete)
}

// List returns games, optionally filtered by title, genre, platform or
// developer (one filter at a time, first match wins).
// GET /api/games?title=...&genre=...&platform=...&developer=...
func (h *GameHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	ctx := c.Request.Context()

	switch {
	case c.Query("title") != "":
		list, total, err := h.gameService.SearchByTitle(ctx, c.Query("title"), page, pageSize)
		h.respondList(c, list, total, page, pageSize, err)
	case c.Query("genre") != "":
		list, total, err := h.gameService.FindByGenre(ctx, c.Query("genre"), page, pageSize)
		h.respondList(c, list, total, page, pageSize, err)
	case c.Query("platform") != "":
		list, total, err := h.gameService.FindByPlatform(ctx, c.Query("platform"), page, pageSize)
		h.respondList(c, list, total, page, pageSize, err)
	case c.Query("developer") != "":
		list, total, err := h.gameService.FindByDeveloper(ctx, c.Query("developer"), page, pageSize)
		h.respondList(c, list, total, page, pageSize, err)
	default:
		list, total, err := h.gameService.ListAll(ctx, page, pageSize)
		h.respondList(c, list, total, page, pageSize, err)
	}
}

// Get returns one game.
// GET /api/games/:game_id
func (h *GameHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	game, err := h.gameService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, game)
}

// Create adds a game to the catalog.
// POST /api/games
func (h *GameHandler) Create(c *gin.Context) {
	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.AddGame(c.Request.Context(), req.ToModel())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGameExists):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, game)
}

// Delete removes a game and, through the rating service, every rating
// attached to it.
// DELETE /api/games/:game_id
func (h *GameHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("game_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid game id"})
		return
	}

	if err := h.gameService.DeleteGame(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrGameNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "game deleted"})
}

func (h *GameHandler) respondList(c *gin.Context, list any, total int64, page, pageSize int, err error) {
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"data":      list,
		"page":      page,
		"page_size": pageSize,
		"total":     total,
	})
}
