package dto

import (
	"time"

	"gamerecs/internal/api/models"
)

type AddBacklogItemRequest struct {
	GameID int64  `json:"game_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type UpdateBacklogStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BatchStatusUpdateRequest struct {
	Updates []BatchStatusEntry `json:"updates" binding:"required,min=1,dive"`
}

type BatchStatusEntry struct {
	GameID int64  `json:"game_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

type BacklogItemResponse struct {
	ID        int64                `json:"id"`
	GameID    int64                `json:"game_id"`
	Status    models.BacklogStatus `json:"status"`
	UpdatedAt time.Time            `json:"updated_at"`
	GameTitle string               `json:"game_title,omitempty"`
}

func FromBacklogModel(item *models.BacklogItem) BacklogItemResponse {
	resp := BacklogItemResponse{
		ID:        item.ID,
		GameID:    item.GameID,
		Status:    item.Status,
		UpdatedAt: item.UpdatedAt,
	}
	if item.Game != nil {
		resp.GameTitle = item.Game.Title
	}
	return resp
}

func FromBacklogModels(items []models.BacklogItem) []BacklogItemResponse {
	out := make([]BacklogItemResponse, 0, len(items))
	for i := range items {
		out = append(out, FromBacklogModel(&items[i]))
	}
	return out
}
