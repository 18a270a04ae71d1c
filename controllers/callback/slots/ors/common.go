package ors

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"seamless/config"
	"seamless/helpers"
	"seamless/services"
)

// Ors callback error codes (string-typed per the vendor contract).
const (
	codeOK                   = "0"
	codeInvalidParameter     = "1000"
	codeInvalidSignature     = "1001"
	codePlayerNotFound       = "1002"
	codeInsufficientFund     = "1003"
	codeTransactionExists    = "1004"
	codeTransactionNotFound  = "1005"
	codeTransactionSettled   = "1006"
	codeWalletError          = "1007"
	codeInvalidPublicKey     = "1008"
	codeCurrencyNotSupported = "1009"
	codeInternalError        = "9999"
)

func mapError(err error) string {
	var walletErr *services.WalletError
	switch {
	case err == nil:
		return codeOK
	case errors.Is(err, services.ErrPlayerNotFound):
		return codePlayerNotFound
	case errors.Is(err, services.ErrInvalidSignature):
		return codeInvalidSignature
	case errors.Is(err, services.ErrInvalidPublicKey):
		return codeInvalidPublicKey
	case errors.Is(err, services.ErrInsufficientFund):
		return codeInsufficientFund
	case errors.Is(err, services.ErrTransactionExists):
		return codeTransactionExists
	case errors.Is(err, services.ErrTransactionNotFound):
		return codeTransactionNotFound
	case errors.Is(err, services.ErrTransactionSettled),
		errors.Is(err, services.ErrTransactionCancelled):
		return codeTransactionSettled
	case errors.Is(err, config.ErrCurrencyNotSupported):
		return codeCurrencyNotSupported
	case errors.As(err, &walletErr):
		return codeWalletError
	default:
		return codeInternalError
	}
}

// recordEnvelope turns per-record outcomes into the ordered vendor list.
// Cardinality always matches the request; failed records carry zero balance.
func recordEnvelope(outcomes []services.OrsOutcome) []fiber.Map {
	out := make([]fiber.Map, 0, len(outcomes))
	for _, o := range outcomes {
		out = append(out, fiber.Map{
			"transaction_id": o.TrxID,
			"code":           mapError(o.Err),
			"balance":        helpers.Money(o.Balance),
		})
	}
	return out
}

// failAll maps a request-level failure onto every record, preserving order
// and cardinality instead of aborting the batch.
func failAll(c *fiber.Ctx, err error, trxIDs []string) error {
	return failAllCode(c, mapError(err), trxIDs)
}

func failAllCode(c *fiber.Ctx, code string, trxIDs []string) error {
	records := make([]fiber.Map, 0, len(trxIDs))
	for _, id := range trxIDs {
		records = append(records, fiber.Map{
			"transaction_id": id,
			"code":           code,
			"balance":        0.0,
		})
	}
	return c.JSON(fiber.Map{
		"code":    code,
		"balance": 0.0,
		"records": records,
	})
}

func signatureOf(c *fiber.Ctx) (publicKey, signature string) {
	return c.Get("X-Public-Key"), c.Get("X-Signature")
}
