package hg5

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/config"
	"seamless/helpers"
	"seamless/services"
)

// Hg5 callback error codes.
const (
	codeOK                   = 0
	codeInvalidParameter     = 1
	codeInvalidToken         = 2
	codePlayerNotFound       = 3
	codeInsufficientFund     = 4
	codeTransactionExists    = 5
	codeTransactionNotFound  = 6
	codeTransactionFinished  = 7
	codeWalletError          = 8
	codeInvalidAgent         = 9
	codeCurrencyNotSupported = 10
	codeInternalError        = 100
)

func respond(c *fiber.Ctx, code int, message, currency string, balance decimal.Decimal) error {
	return c.JSON(fiber.Map{
		"errorCode": code,
		"message":   message,
		"data": fiber.Map{
			"currency": currency,
			"balance":  helpers.Money(balance),
		},
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return respond(c, codeInvalidParameter, message, "", decimal.Zero)
}

func fail(c *fiber.Ctx, err error) error {
	code, msg := mapError(err)
	return respond(c, code, msg, "", decimal.Zero)
}

func mapError(err error) (int, string) {
	var walletErr *services.WalletError
	switch {
	case errors.Is(err, services.ErrPlayerNotFound):
		return codePlayerNotFound, "Player not found"
	case errors.Is(err, services.ErrInvalidToken):
		return codeInvalidToken, "Invalid token"
	case errors.Is(err, services.ErrInvalidAgentID):
		return codeInvalidAgent, "Invalid agent id"
	case errors.Is(err, services.ErrInsufficientFund):
		return codeInsufficientFund, "Insufficient fund"
	case errors.Is(err, services.ErrTransactionExists):
		return codeTransactionExists, "Transaction already exists"
	case errors.Is(err, services.ErrTransactionNotFound):
		return codeTransactionNotFound, "Transaction not found"
	case errors.Is(err, services.ErrTransactionSettled):
		return codeTransactionFinished, "Transaction already settled"
	case errors.Is(err, services.ErrTransactionCancelled):
		return codeTransactionFinished, "Transaction already cancelled"
	case errors.Is(err, config.ErrCurrencyNotSupported):
		return codeCurrencyNotSupported, "Currency not supported"
	case errors.As(err, &walletErr):
		return codeWalletError, walletErr.Error()
	default:
		return codeInternalError, "Internal error"
	}
}
