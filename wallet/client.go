// Package wallet is the HTTP client for the internal balance-ledger service.
// The wallet is the source of truth for player credit; every mutating call is
// issued with a caller-derived transaction ID so vendor retries dedupe
// downstream.
package wallet

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"seamless/config"
)

// StatusOK is the wallet's canonical success status code. Everything else is
// an upstream error.
const StatusOK = 2100

type Client struct {
	baseURL    string
	apiSecret  string
	httpClient *http.Client
}

func NewClient(baseURL, apiSecret string) *Client {
	return &Client{
		baseURL:    baseURL,
		apiSecret:  apiSecret,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithHTTPClient injects a custom http.Client (tests, tracing).
func NewClientWithHTTPClient(baseURL, apiSecret string, httpClient *http.Client) *Client {
	return &Client{baseURL: baseURL, apiSecret: apiSecret, httpClient: httpClient}
}

// Result is the transient outcome of a wallet call. Not persisted.
type Result struct {
	StatusCode   int             `json:"status_code"`
	CreditBefore decimal.Decimal `json:"credit_before"`
	CreditAfter  decimal.Decimal `json:"credit_after"`
}

// OK reports whether the wallet accepted the call.
func (r Result) OK() bool { return r.StatusCode == StatusOK }

type walletRequest struct {
	AgentID       string          `json:"agent_id"`
	PlayID        string          `json:"play_id"`
	Currency      string          `json:"currency"`
	TransactionID string          `json:"transaction_id,omitempty"`
	BetAmount     decimal.Decimal `json:"bet_amount,omitempty"`
	WinAmount     decimal.Decimal `json:"win_amount,omitempty"`
}

func (c *Client) sign(body []byte) string {
	h := hmac.New(sha256.New, []byte(c.apiSecret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Client) doRequest(ctx context.Context, cred config.ProviderCredentials, endpoint string, reqBody walletRequest, result *Result) error {
	reqBody.AgentID = cred.AgentID
	reqBody.Currency = cred.Currency

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal wallet request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("create wallet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", cred.AuthToken)
	req.Header.Set("x-api-hmac", c.sign(bodyBytes))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("wallet request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read wallet response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("wallet returned HTTP %d: %s", resp.StatusCode, string(respBody))
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("decode wallet response: %w", err)
	}
	return nil
}

func (c *Client) Balance(ctx context.Context, cred config.ProviderCredentials, playID string) (Result, error) {
	var res Result
	err := c.doRequest(ctx, cred, "/balance", walletRequest{PlayID: playID}, &res)
	return res, err
}

func (c *Client) Wager(ctx context.Context, cred config.ProviderCredentials, playID, transactionID string, amount decimal.Decimal) (Result, error) {
	var res Result
	err := c.doRequest(ctx, cred, "/wager", walletRequest{
		PlayID:        playID,
		TransactionID: transactionID,
		BetAmount:     amount,
	}, &res)
	return res, err
}

func (c *Client) Payout(ctx context.Context, cred config.ProviderCredentials, playID, transactionID string, amount decimal.Decimal) (Result, error) {
	var res Result
	err := c.doRequest(ctx, cred, "/payout", walletRequest{
		PlayID:        playID,
		TransactionID: transactionID,
		WinAmount:     amount,
	}, &res)
	return res, err
}

func (c *Client) WagerAndPayout(ctx context.Context, cred config.ProviderCredentials, playID, transactionID string, bet, win decimal.Decimal) (Result, error) {
	var res Result
	err := c.doRequest(ctx, cred, "/wagerAndPayout", walletRequest{
		PlayID:        playID,
		TransactionID: transactionID,
		BetAmount:     bet,
		WinAmount:     win,
	}, &res)
	return res, err
}

func (c *Client) Cancel(ctx context.Context, cred config.ProviderCredentials, playID, transactionID string, amount decimal.Decimal) (Result, error) {
	var res Result
	err := c.doRequest(ctx, cred, "/cancel", walletRequest{
		PlayID:        playID,
		TransactionID: transactionID,
		BetAmount:     amount,
	}, &res)
	return res, err
}

func (c *Client) Bonus(ctx context.Context, cred config.ProviderCredentials, playID, transactionID string, amount decimal.Decimal) (Result, error) {
	var res Result
	err := c.doRequest(ctx, cred, "/bonus", walletRequest{
		PlayID:        playID,
		TransactionID: transactionID,
		WinAmount:     amount,
	}, &res)
	return res, err
}
