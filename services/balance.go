package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"seamless/config"
	"seamless/database"
	"seamless/models"
	"seamless/repository"
)

// PlayerBalance is the internal (non-vendor) balance lookup used by the
// back-office endpoints.
func PlayerBalance(ctx context.Context, provider, playID string) (*models.Player, decimal.Decimal, error) {
	player, err := repository.GetPlayerByPlayID(database.DB, playID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, ErrPlayerNotFound
		}
		return nil, decimal.Zero, err
	}

	cred, err := config.ByCurrency(provider, player.Currency)
	if err != nil {
		return nil, decimal.Zero, err
	}

	res, err := Wallet.Balance(ctx, cred, player.PlayID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !res.OK() {
		return nil, decimal.Zero, &WalletError{StatusCode: res.StatusCode}
	}
	return player, res.CreditAfter, nil
}
