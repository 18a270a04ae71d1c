package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlayGame is the per-session launch token. One row per launch; vendors echo
// the token back on authenticate/balance calls.
type PlayGame struct {
	gorm.Model
	PlayID    string    `gorm:"size:64;index" json:"play_id"`
	Token     string    `gorm:"size:36;uniqueIndex;not null" json:"token"`
	GameCode  string    `gorm:"size:64" json:"game_code"`
	ExpiresAt time.Time `gorm:"index" json:"expires_at"`
}

func (p *PlayGame) BeforeCreate(tx *gorm.DB) (err error) {
	if p.Token == "" {
		p.Token = strings.ToLower(uuid.New().String())
	}
	return nil
}

func (p *PlayGame) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && now.After(p.ExpiresAt)
}
