package models

import "time"

// Rating is one user's judgment of one game on a 0-100 scale.
// PercentileRank is the rating's standing within the user's own rating
// history, 0-99, nil until enough history exists to compute it.
type Rating struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_ratings_user_game" json:"user_id"`
	GameID         int64     `gorm:"not null;index;uniqueIndex:idx_ratings_user_game" json:"game_id"`
	Value          int       `gorm:"not null;check:value >= 0 AND value <= 100" json:"value"`
	PercentileRank *int      `gorm:"check:percentile_rank >= 0 AND percentile_rank <= 99" json:"percentile_rank,omitempty"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Game *Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
}

func (Rating) TableName() string {
	return "ratings"
}
