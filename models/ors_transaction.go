package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrsTransaction is one record of an Ors batch callback. TrxID is the vendor
// transaction_id (idempotency key); RoundID groups records of one game round.
type OrsTransaction struct {
	gorm.Model

	TrxID    string `gorm:"size:64;uniqueIndex;not null"`
	RoundID  string `gorm:"size:64;index"`
	PlayID   string `gorm:"size:64;index"`
	GameCode string `gorm:"size:64;index"`

	BetAmount decimal.Decimal  `gorm:"type:numeric(20,2);default:0"`
	WinAmount *decimal.Decimal `gorm:"type:numeric(20,2)"`

	BetTime    time.Time
	SettleTime *time.Time

	Status    string         `gorm:"size:16;index;default:'pending'"`
	ExtraInfo datatypes.JSON `gorm:"type:jsonb"`
}
