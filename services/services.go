// Package services implements the per-vendor transaction orchestration:
// resolve player, resolve credentials, authenticate, idempotency check,
// wallet call with a derived transaction ID, then persist the local record.
// The local row is written only after the wallet accepts the call; the wallet
// stays the source of truth and the row is the audit trail.
package services

import "seamless/wallet"

// Wallet is the process-wide wallet client, set in main. Tests point it at an
// httptest server.
var Wallet *wallet.Client
