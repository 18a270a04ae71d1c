package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"seamless/config"
	"seamless/database"
	"seamless/helpers"
	"seamless/models"
	"seamless/repository"
)

const orsProvider = "ORS"

type OrsBetRecord struct {
	TrxID     string
	RoundID   string
	GameCode  string
	Amount    decimal.Decimal
	CreatedAt int64
}

type OrsSettleRecord struct {
	TrxID     string
	WinAmount decimal.Decimal
	CreatedAt int64
}

type OrsCancelRecord struct {
	TrxID     string
	CreatedAt int64
}

// OrsOutcome is one record's result in a batch. Err nil means success; the
// controller maps Err to the vendor's per-record code.
type OrsOutcome struct {
	TrxID   string
	Balance decimal.Decimal
	Err     error
}

// VerifyOrsSignature checks the vendor's public-key header and the HMAC-SHA256
// body signature. The hash construction is the vendor's; treat it as opaque.
func VerifyOrsSignature(cred config.ProviderCredentials, publicKey, signature string, body []byte) error {
	if publicKey != cred.PublicKey {
		return ErrInvalidPublicKey
	}
	h := hmac.New(sha256.New, []byte(cred.AuthToken))
	h.Write(body)
	if !hmac.Equal([]byte(hex.EncodeToString(h.Sum(nil))), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

// resolveOrsPlayer is the request-level head of every Ors batch: player,
// credentials, then signature. A failure here fails every record.
func resolveOrsPlayer(playID, publicKey, signature string, body []byte) (*models.Player, config.ProviderCredentials, error) {
	player, err := repository.GetPlayerByPlayID(database.DB, playID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, config.ProviderCredentials{}, ErrPlayerNotFound
		}
		return nil, config.ProviderCredentials{}, err
	}

	cred, err := config.ByCurrency(orsProvider, player.Currency)
	if err != nil {
		return nil, config.ProviderCredentials{}, err
	}

	if err := VerifyOrsSignature(cred, publicKey, signature, body); err != nil {
		return nil, config.ProviderCredentials{}, err
	}
	return player, cred, nil
}

// OrsBalance returns the wallet balance for a signed balance request.
func OrsBalance(ctx context.Context, playID, publicKey, signature string, body []byte) (decimal.Decimal, error) {
	player, cred, err := resolveOrsPlayer(playID, publicKey, signature, body)
	if err != nil {
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

// PlaceOrsBets applies the bet chain independently per record. A record's
// failure becomes its own outcome; the batch never aborts and the returned
// slice is one-to-one, in order, with the input.
func PlaceOrsBets(ctx context.Context, playID, publicKey, signature string, body []byte, records []OrsBetRecord) ([]OrsOutcome, decimal.Decimal, error) {
	player, cred, err := resolveOrsPlayer(playID, publicKey, signature, body)
	if err != nil {
		return nil, decimal.Zero, err
	}

	balance, err := Wallet.Balance(ctx, cred, player.PlayID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	if !balance.OK() {
		return nil, decimal.Zero, &WalletError{StatusCode: balance.StatusCode}
	}
	running := balance.CreditAfter

	outcomes := make([]OrsOutcome, 0, len(records))
	for _, rec := range records {
		outcomes = append(outcomes, placeOrsBet(ctx, cred, player, rec, &running))
	}
	return outcomes, running, nil
}

func placeOrsBet(ctx context.Context, cred config.ProviderCredentials, player *models.Player, rec OrsBetRecord, running *decimal.Decimal) OrsOutcome {
	if _, err := repository.GetOrsTransactionByTrxID(database.DB, rec.TrxID); err == nil {
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionExists}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}

	if running.LessThan(rec.Amount) {
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrInsufficientFund}
	}

	res, err := Wallet.Wager(ctx, cred, player.PlayID, wagerID(rec.TrxID), rec.Amount)
	if err != nil {
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}
	if !res.OK() {
		return OrsOutcome{TrxID: rec.TrxID, Err: &WalletError{StatusCode: res.StatusCode}}
	}
	*running = res.CreditAfter

	trx := models.OrsTransaction{
		TrxID:     rec.TrxID,
		RoundID:   rec.RoundID,
		PlayID:    player.PlayID,
		GameCode:  rec.GameCode,
		BetAmount: rec.Amount,
		BetTime:   helpers.EventTime(rec.CreatedAt),
		Status:    models.TrxPending,
	}
	if err := repository.CreateOrsTransaction(database.DB, &trx); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionExists}
		}
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}

	log.Printf("[ORS] bet ok | play=%s trx=%s amount=%s", player.PlayID, rec.TrxID, rec.Amount)
	return OrsOutcome{TrxID: rec.TrxID, Balance: res.CreditAfter}
}

// SettleOrsBets pays out pending records, each exactly once.
func SettleOrsBets(ctx context.Context, playID, publicKey, signature string, body []byte, records []OrsSettleRecord) ([]OrsOutcome, decimal.Decimal, error) {
	player, cred, err := resolveOrsPlayer(playID, publicKey, signature, body)
	if err != nil {
		return nil, decimal.Zero, err
	}

	running := decimal.Zero
	outcomes := make([]OrsOutcome, 0, len(records))
	for _, rec := range records {
		out := settleOrsBet(ctx, cred, player, rec)
		if out.Err == nil {
			running = out.Balance
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, running, nil
}

func settleOrsBet(ctx context.Context, cred config.ProviderCredentials, player *models.Player, rec OrsSettleRecord) OrsOutcome {
	trx, err := repository.GetOrsTransactionByTrxID(database.DB, rec.TrxID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionNotFound}
		}
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}
	switch trx.Status {
	case models.TrxSettled:
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionSettled}
	case models.TrxCancelled:
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionCancelled}
	}

	res, err := Wallet.Payout(ctx, cred, player.PlayID, payoutID(rec.TrxID), rec.WinAmount)
	if err != nil {
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}
	if !res.OK() {
		return OrsOutcome{TrxID: rec.TrxID, Err: &WalletError{StatusCode: res.StatusCode}}
	}

	rows, err := repository.SettleOrsTransaction(database.DB, rec.TrxID, rec.WinAmount, helpers.EventTime(rec.CreatedAt))
	if err != nil {
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}
	if rows == 0 {
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionSettled}
	}

	return OrsOutcome{TrxID: rec.TrxID, Balance: res.CreditAfter}
}

// CancelOrsBets rolls back pending records.
func CancelOrsBets(ctx context.Context, playID, publicKey, signature string, body []byte, records []OrsCancelRecord) ([]OrsOutcome, decimal.Decimal, error) {
	player, cred, err := resolveOrsPlayer(playID, publicKey, signature, body)
	if err != nil {
		return nil, decimal.Zero, err
	}

	running := decimal.Zero
	outcomes := make([]OrsOutcome, 0, len(records))
	for _, rec := range records {
		out := cancelOrsBet(ctx, cred, player, rec)
		if out.Err == nil {
			running = out.Balance
		}
		outcomes = append(outcomes, out)
	}
	return outcomes, running, nil
}

func cancelOrsBet(ctx context.Context, cred config.ProviderCredentials, player *models.Player, rec OrsCancelRecord) OrsOutcome {
	trx, err := repository.GetOrsTransactionByTrxID(database.DB, rec.TrxID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionNotFound}
		}
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}
	switch trx.Status {
	case models.TrxCancelled:
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionCancelled}
	case models.TrxSettled:
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionSettled}
	}

	res, err := Wallet.Cancel(ctx, cred, player.PlayID, cancelID(rec.TrxID), trx.BetAmount)
	if err != nil {
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}
	if !res.OK() {
		return OrsOutcome{TrxID: rec.TrxID, Err: &WalletError{StatusCode: res.StatusCode}}
	}

	rows, err := repository.CancelOrsTransaction(database.DB, rec.TrxID, helpers.EventTime(rec.CreatedAt))
	if err != nil {
		return OrsOutcome{TrxID: rec.TrxID, Err: err}
	}
	if rows == 0 {
		return OrsOutcome{TrxID: rec.TrxID, Err: ErrTransactionCancelled}
	}

	return OrsOutcome{TrxID: rec.TrxID, Balance: res.CreditAfter}
}
