package services

import (
	"errors"
	"fmt"
)

// Domain errors raised by the orchestrators. Controllers translate these into
// each vendor's envelope; nothing is retried internally.
var (
	ErrPlayerNotFound       = errors.New("player not found")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInvalidSignature     = errors.New("invalid signature")
	ErrInvalidPublicKey     = errors.New("invalid public key")
	ErrInvalidAgentID       = errors.New("invalid agent id")
	ErrTransactionExists    = errors.New("transaction already exists")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTransactionSettled   = errors.New("transaction already settled")
	ErrTransactionCancelled = errors.New("transaction already cancelled")
	ErrInsufficientFund     = errors.New("insufficient fund")
)

// WalletError wraps a non-success wallet status code. Surfaced to the vendor,
// never retried here.
type WalletError struct {
	StatusCode int
}

func (e *WalletError) Error() string {
	return fmt.Sprintf("wallet error: status_code=%d", e.StatusCode)
}
