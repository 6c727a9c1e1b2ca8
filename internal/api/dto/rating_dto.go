package dto

import (
	"time"

	"gamerecs/internal/api/models"
)

// RateRequest carries a 0-100 rating value. The zero value is legal, so
// the field is a pointer to distinguish "absent" from "zero".
type RateRequest struct {
	Value *int `json:"value" binding:"required,min=0,max=100"`
}

type RatingResponse struct {
	ID             int64     `json:"id"`
	UserID         string    `json:"user_id"`
	GameID         int64     `json:"game_id"`
	Value          int       `json:"value"`
	PercentileRank *int      `json:"percentile_rank,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
	Username       string    `json:"username,omitempty"`
}

func FromRatingModel(rating *models.Rating) RatingResponse {
	resp := RatingResponse{
		ID:             rating.ID,
		UserID:         rating.UserID,
		GameID:         rating.GameID,
		Value:          rating.Value,
		PercentileRank: rating.PercentileRank,
		UpdatedAt:      rating.UpdatedAt,
	}
	if rating.User != nil {
		resp.Username = rating.User.Username
	}
	return resp
}

func FromRatingModels(ratings []models.Rating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		out = append(out, FromRatingModel(&ratings[i]))
	}
	return out
}

type AverageRatingResponse struct {
	GameID  int64    `json:"game_id"`
	Average *float64 `json:"average"`
	Count   int64    `json:"count"`
}
