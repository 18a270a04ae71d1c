package wallet_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seamless/config"
	"seamless/wallet"
)

const testSecret = "wallet-secret"

var testCred = config.ProviderCredentials{
	Provider:  "HG5",
	Currency:  "IDR",
	AgentID:   "agent-1",
	AuthToken: "hg5-token",
}

func signBody(body []byte) string {
	h := hmac.New(sha256.New, []byte(testSecret))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

// walletServer validates method, path, and signature headers before replying.
func walletServer(t *testing.T, expectedPath string, checkBody func(t *testing.T, body map[string]any), result wallet.Result) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, expectedPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, testCred.AuthToken, r.Header.Get("x-api-key"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.Equal(t, signBody(body), r.Header.Get("x-api-hmac"))

		var fields map[string]any
		require.NoError(t, json.Unmarshal(body, &fields))
		assert.Equal(t, "agent-1", fields["agent_id"])
		assert.Equal(t, "IDR", fields["currency"])
		if checkBody != nil {
			checkBody(t, fields)
		}

		json.NewEncoder(w).Encode(result)
	}))
}

func TestClientBalance(t *testing.T) {
	srv := walletServer(t, "/balance", func(t *testing.T, body map[string]any) {
		assert.Equal(t, "P1", body["play_id"])
	}, wallet.Result{StatusCode: wallet.StatusOK, CreditAfter: decimal.RequireFromString("1000")})
	defer srv.Close()

	c := wallet.NewClient(srv.URL, testSecret)
	res, err := c.Balance(context.Background(), testCred, "P1")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "1000", res.CreditAfter.String())
}

func TestClientWagerCarriesDerivedID(t *testing.T) {
	srv := walletServer(t, "/wager", func(t *testing.T, body map[string]any) {
		assert.Equal(t, "wager-R1", body["transaction_id"])
	}, wallet.Result{StatusCode: wallet.StatusOK, CreditAfter: decimal.RequireFromString("800")})
	defer srv.Close()

	c := wallet.NewClient(srv.URL, testSecret)
	res, err := c.Wager(context.Background(), testCred, "P1", "wager-R1", decimal.NewFromInt(200))
	require.NoError(t, err)
	assert.Equal(t, "800", res.CreditAfter.String())
}

func TestClientNonSuccessStatusIsNotAnError(t *testing.T) {
	srv := walletServer(t, "/payout", nil,
		wallet.Result{StatusCode: 5003})
	defer srv.Close()

	c := wallet.NewClient(srv.URL, testSecret)
	res, err := c.Payout(context.Background(), testCred, "P1", "payout-R1", decimal.NewFromInt(10))
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, 5003, res.StatusCode)
}

func TestClientHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := wallet.NewClient(srv.URL, testSecret)
	_, err := c.Cancel(context.Background(), testCred, "P1", "cancel-R1", decimal.NewFromInt(10))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
}
