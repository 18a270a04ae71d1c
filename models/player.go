package models

import "gorm.io/gorm"

type Player struct {
	gorm.Model

	PlayID        string  `gorm:"uniqueIndex;size:64" json:"play_id"`
	Username      string  `gorm:"size:64" json:"username"`
	Currency      string  `gorm:"size:8;index" json:"currency"`
	ExternalToken *string `gorm:"size:128" json:"external_token,omitempty"`
	IsActive      bool    `gorm:"default:true" json:"is_active"`
}
