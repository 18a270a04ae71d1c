package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TrxPending   = "pending"
	TrxSettled   = "settled"
	TrxCancelled = "cancelled"
)

// Hg5Transaction is the local audit record for a Hg5 game round. TrxID is the
// vendor gameRound and doubles as the idempotency key.
type Hg5Transaction struct {
	gorm.Model

	TrxID    string `gorm:"size:64;uniqueIndex;not null"`
	PlayID   string `gorm:"size:64;index"`
	GameCode string `gorm:"size:64;index"`

	BetAmount decimal.Decimal  `gorm:"type:numeric(20,2);default:0"`
	WinAmount *decimal.Decimal `gorm:"type:numeric(20,2)"`

	BetTime    time.Time
	SettleTime *time.Time

	Status    string         `gorm:"size:16;index;default:'pending'"`
	ExtraInfo datatypes.JSON `gorm:"type:jsonb"`
}
