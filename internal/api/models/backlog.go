package models

import "time"

type BacklogStatus string

const (
	StatusToPlay     BacklogStatus = "TO_PLAY"
	StatusInProgress BacklogStatus = "IN_PROGRESS"
	StatusCompleted  BacklogStatus = "COMPLETED"
	StatusAbandoned  BacklogStatus = "ABANDONED"
)

// Valid reports whether s is one of the known backlog statuses.
func (s BacklogStatus) Valid() bool {
	switch s {
	case StatusToPlay, StatusInProgress, StatusCompleted, StatusAbandoned:
		return true
	}
	return false
}

// BacklogItem is one game in a user's backlog. A game appears at most
// once per user.
type BacklogItem struct {
	ID        int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string        `gorm:"type:uuid;not null;index;uniqueIndex:idx_backlog_user_game" json:"user_id"`
	GameID    int64         `gorm:"not null;index;uniqueIndex:idx_backlog_user_game" json:"game_id"`
	Status    BacklogStatus `gorm:"not null;size:20" json:"status"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Game *Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"game,omitempty"`
}

func (BacklogItem) TableName() string {
	return "backlog_items"
}
