package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"seamless/config"
	"seamless/database"
	"seamless/helpers"
	"seamless/models"
	"seamless/repository"
)

const hg5Provider = "HG5"

// Derived wallet transaction IDs. Deterministic per vendor trxID so vendor
// retries dedupe against the wallet's own idempotency handling.
func wagerID(trxID string) string       { return "wager-" + trxID }
func payoutID(trxID string) string      { return "payout-" + trxID }
func wagerPayoutID(trxID string) string { return "wagerpayout-" + trxID }
func cancelID(trxID string) string      { return "cancel-" + trxID }
func bonusID(trxID string) string       { return "bonus-" + trxID }

type Hg5BetRequest struct {
	AgentID   string
	PlayerID  string
	Token     string
	GameCode  string
	GameRound string
	Amount    decimal.Decimal
	EventTime int64
}

type Hg5SettleRequest struct {
	AgentID   string
	PlayerID  string
	GameRound string
	WinAmount decimal.Decimal
	EventTime int64
}

type Hg5CancelRequest struct {
	AgentID   string
	PlayerID  string
	GameRound string
	EventTime int64
}

type Hg5RoundRequest struct {
	AgentID       string
	PlayerID      string
	Token         string
	GameCode      string
	GameRound     string
	MainGameRound string
	BetAmount     decimal.Decimal
	WinAmount     decimal.Decimal
	EventTime     int64
}

type Hg5BonusRequest struct {
	AgentID   string
	PlayerID  string
	TrxID     string
	Amount    decimal.Decimal
	EventTime int64
}

// resolveHg5Player runs the shared head of every Hg5 orchestration: player
// lookup, credential resolution, and the agent cross-check.
func resolveHg5Player(playID, agentID string) (*models.Player, config.ProviderCredentials, error) {
	player, err := repository.GetPlayerByPlayID(database.DB, playID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, config.ProviderCredentials{}, ErrPlayerNotFound
		}
		return nil, config.ProviderCredentials{}, err
	}

	cred, err := config.ByCurrency(hg5Provider, player.Currency)
	if err != nil {
		return nil, config.ProviderCredentials{}, err
	}

	if agentID != "" && agentID != cred.AgentID {
		return nil, config.ProviderCredentials{}, ErrInvalidAgentID
	}
	return player, cred, nil
}

func checkHg5Token(playID, token string) error {
	pg, err := repository.GetPlayGameByPlayIDToken(database.DB, playID, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidToken
		}
		return err
	}
	if pg.Expired(time.Now()) {
		return ErrInvalidToken
	}
	return nil
}

// AuthenticateHg5 resolves the session token to a player and returns the
// player with the current wallet balance.
func AuthenticateHg5(ctx context.Context, token string) (*models.Player, decimal.Decimal, error) {
	pg, err := repository.GetPlayGameByToken(database.DB, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, ErrInvalidToken
		}
		return nil, decimal.Zero, err
	}
	if pg.Expired(time.Now()) {
		return nil, decimal.Zero, ErrInvalidToken
	}

	player, cred, err := resolveHg5Player(pg.PlayID, "")
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

// Hg5Balance returns the wallet balance for an authenticated session.
func Hg5Balance(ctx context.Context, agentID, playID, token string) (decimal.Decimal, error) {
	player, cred, err := resolveHg5Player(playID, agentID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := checkHg5Token(playID, token); err != nil {
		return decimal.Zero, err
	}

	res, err := Wallet.Balance(ctx, cred, player.PlayID)
	if err != nil {
		return decimal.Zero, err
	}
	if !res.OK() {
		return decimal.Zero, &WalletError{StatusCode: res.StatusCode}
	}
	return res.CreditAfter, nil
}

// PlaceHg5Bet runs the bet chain: authenticate, duplicate check, balance
// pre-check, wager, persist. Returns the post-wager balance.
func PlaceHg5Bet(ctx context.Context, req Hg5BetRequest) (decimal.Decimal, error) {
	player, cred, err := resolveHg5Player(req.PlayerID, req.AgentID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := checkHg5Token(req.PlayerID, req.Token); err != nil {
		return decimal.Zero, err
	}

	if _, err := repository.GetHg5TransactionByTrxID(database.DB, req.GameRound); err == nil {
		return decimal.Zero, ErrTransactionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	balance, err := Wallet.Balance(ctx, cred, player.PlayID)
	if err != nil {
		return decimal.Zero, err
	}
	if !balance.OK() {
		return decimal.Zero, &WalletError{StatusCode: balance.StatusCode}
	}
	if balance.CreditAfter.LessThan(req.Amount) {
		return decimal.Zero, ErrInsufficientFund
	}

	res, err := Wallet.Wager(ctx, cred, player.PlayID, wagerID(req.GameRound), req.Amount)
	if err != nil {
		return decimal.Zero, err
	}
	if !res.OK() {
		return decimal.Zero, &WalletError{StatusCode: res.StatusCode}
	}

	trx := models.Hg5Transaction{
		TrxID:     req.GameRound,
		PlayID:    player.PlayID,
		GameCode:  req.GameCode,
		BetAmount: req.Amount,
		BetTime:   helpers.EventTime(req.EventTime),
		Status:    models.TrxPending,
	}
	if err := repository.CreateHg5Transaction(database.DB, &trx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the check-then-act race; the wager was deduped downstream.
			return decimal.Zero, ErrTransactionExists
		}
		return decimal.Zero, err
	}

	log.Printf("[HG5] bet ok | play=%s round=%s amount=%s balance=%s",
		player.PlayID, req.GameRound, req.Amount, res.CreditAfter)
	return res.CreditAfter, nil
}

// SettleHg5Bet pays out a pending round exactly once.
func SettleHg5Bet(ctx context.Context, req Hg5SettleRequest) (decimal.Decimal, error) {
	player, cred, err := resolveHg5Player(req.PlayerID, req.AgentID)
	if err != nil {
		return decimal.Zero, err
	}

	trx, err := repository.GetHg5TransactionByTrxID(database.DB, req.GameRound)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrTransactionNotFound
		}
		return decimal.Zero, err
	}
	switch trx.Status {
	case models.TrxSettled:
		return decimal.Zero, ErrTransactionSettled
	case models.TrxCancelled:
		return decimal.Zero, ErrTransactionCancelled
	}

	res, err := Wallet.Payout(ctx, cred, player.PlayID, payoutID(req.GameRound), req.WinAmount)
	if err != nil {
		return decimal.Zero, err
	}
	if !res.OK() {
		return decimal.Zero, &WalletError{StatusCode: res.StatusCode}
	}

	rows, err := repository.SettleHg5Transaction(database.DB, req.GameRound, req.WinAmount, helpers.EventTime(req.EventTime))
	if err != nil {
		return decimal.Zero, err
	}
	if rows == 0 {
		return decimal.Zero, ErrTransactionSettled
	}

	log.Printf("[HG5] settle ok | play=%s round=%s win=%s", player.PlayID, req.GameRound, req.WinAmount)
	return res.CreditAfter, nil
}

// CancelHg5Bet reverses a pending bet (rollback).
func CancelHg5Bet(ctx context.Context, req Hg5CancelRequest) (decimal.Decimal, error) {
	player, cred, err := resolveHg5Player(req.PlayerID, req.AgentID)
	if err != nil {
		return decimal.Zero, err
	}

	trx, err := repository.GetHg5TransactionByTrxID(database.DB, req.GameRound)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, ErrTransactionNotFound
		}
		return decimal.Zero, err
	}
	switch trx.Status {
	case models.TrxCancelled:
		return decimal.Zero, ErrTransactionCancelled
	case models.TrxSettled:
		return decimal.Zero, ErrTransactionSettled
	}

	res, err := Wallet.Cancel(ctx, cred, player.PlayID, cancelID(req.GameRound), trx.BetAmount)
	if err != nil {
		return decimal.Zero, err
	}
	if !res.OK() {
		return decimal.Zero, &WalletError{StatusCode: res.StatusCode}
	}

	rows, err := repository.CancelHg5Transaction(database.DB, req.GameRound, helpers.EventTime(req.EventTime))
	if err != nil {
		return decimal.Zero, err
	}
	if rows == 0 {
		return decimal.Zero, ErrTransactionCancelled
	}

	log.Printf("[HG5] cancel ok | play=%s round=%s", player.PlayID, req.GameRound)
	return res.CreditAfter, nil
}

// SettleHg5Round handles arcade rounds that wager and pay out in one callback.
// When mainGameRound names a prior pending bet it is recorded as linkage on
// the combined row; a missing main record does not fail the round.
func SettleHg5Round(ctx context.Context, req Hg5RoundRequest) (decimal.Decimal, error) {
	player, cred, err := resolveHg5Player(req.PlayerID, req.AgentID)
	if err != nil {
		return decimal.Zero, err
	}
	if err := checkHg5Token(req.PlayerID, req.Token); err != nil {
		return decimal.Zero, err
	}

	if _, err := repository.GetHg5TransactionByTrxID(database.DB, req.GameRound); err == nil {
		return decimal.Zero, ErrTransactionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	balance, err := Wallet.Balance(ctx, cred, player.PlayID)
	if err != nil {
		return decimal.Zero, err
	}
	if !balance.OK() {
		return decimal.Zero, &WalletError{StatusCode: balance.StatusCode}
	}
	if balance.CreditAfter.LessThan(req.BetAmount) {
		return decimal.Zero, ErrInsufficientFund
	}

	res, err := Wallet.WagerAndPayout(ctx, cred, player.PlayID, wagerPayoutID(req.GameRound), req.BetAmount, req.WinAmount)
	if err != nil {
		return decimal.Zero, err
	}
	if !res.OK() {
		return decimal.Zero, &WalletError{StatusCode: res.StatusCode}
	}

	now := helpers.EventTime(req.EventTime)
	win := req.WinAmount
	trx := models.Hg5Transaction{
		TrxID:      req.GameRound,
		PlayID:     player.PlayID,
		GameCode:   req.GameCode,
		BetAmount:  req.BetAmount,
		WinAmount:  &win,
		BetTime:    now,
		SettleTime: &now,
		Status:     models.TrxSettled,
	}
	if req.MainGameRound != "" {
		extra, _ := json.Marshal(map[string]string{"mainGameRound": req.MainGameRound})
		trx.ExtraInfo = extra
	}
	if err := repository.CreateHg5Transaction(database.DB, &trx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return decimal.Zero, ErrTransactionExists
		}
		return decimal.Zero, err
	}

	return res.CreditAfter, nil
}

// AwardHg5Bonus credits a promotional win outside any game round.
func AwardHg5Bonus(ctx context.Context, req Hg5BonusRequest) (decimal.Decimal, error) {
	player, cred, err := resolveHg5Player(req.PlayerID, req.AgentID)
	if err != nil {
		return decimal.Zero, err
	}

	if _, err := repository.GetHg5TransactionByTrxID(database.DB, req.TrxID); err == nil {
		return decimal.Zero, ErrTransactionExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, err
	}

	res, err := Wallet.Bonus(ctx, cred, player.PlayID, bonusID(req.TrxID), req.Amount)
	if err != nil {
		return decimal.Zero, err
	}
	if !res.OK() {
		return decimal.Zero, &WalletError{StatusCode: res.StatusCode}
	}

	now := helpers.EventTime(req.EventTime)
	win := req.Amount
	trx := models.Hg5Transaction{
		TrxID:      req.TrxID,
		PlayID:     player.PlayID,
		WinAmount:  &win,
		BetTime:    now,
		SettleTime: &now,
		Status:     models.TrxSettled,
	}
	if err := repository.CreateHg5Transaction(database.DB, &trx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return decimal.Zero, ErrTransactionExists
		}
		return decimal.Zero, err
	}

	return res.CreditAfter, nil
}
