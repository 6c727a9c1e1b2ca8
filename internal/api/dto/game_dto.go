package dto

import (
	"time"

	"gamerecs/internal/api/models"
)

type CreateGameRequest struct {
	IGDBID        *int64     `json:"igdb_id,omitempty"`
	Title         string     `json:"title" binding:"required,max=255"`
	Genres        []string   `json:"genres,omitempty"`
	Platforms     []string   `json:"platforms,omitempty"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	Description   *string    `json:"description,omitempty"`
	CoverImageURL *string    `json:"cover_image_url,omitempty" binding:"omitempty,url"`
	Developer     *string    `json:"developer,omitempty" binding:"omitempty,max=255"`
	Publisher     *string    `json:"publisher,omitempty" binding:"omitempty,max=255"`
}

func (r *CreateGameRequest) ToModel() *models.Game {
	return &models.Game{
		IGDBID:        r.IGDBID,
		Title:         r.Title,
		Genres:        r.Genres,
		Platforms:     r.Platforms,
		ReleaseDate:   r.ReleaseDate,
		Description:   r.Description,
		CoverImageURL: r.CoverImageURL,
		Developer:     r.Developer,
		Publisher:     r.Publisher,
	}
}
