package models

import "time"

type Game struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	IGDBID        *int64     `gorm:"column:igdb_id;uniqueIndex" json:"igdb_id,omitempty"`
	Title         string     `gorm:"not null;size:255" json:"title"`
	Genres        []string   `gorm:"serializer:json" json:"genres,omitempty"`
	Platforms     []string   `gorm:"serializer:json" json:"platforms,omitempty"`
	ReleaseDate   *time.Time `json:"release_date,omitempty"`
	Description   *string    `gorm:"type:text" json:"description,omitempty"`
	CoverImageURL *string    `gorm:"type:text" json:"cover_image_url,omitempty"`
	Developer     *string    `gorm:"size:255" json:"developer,omitempty"`
	Publisher     *string    `gorm:"size:255" json:"publisher,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Game) TableName() string {
	return "games"
}
