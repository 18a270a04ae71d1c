package services_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"seamless/config"
	"seamless/database"
	"seamless/services"
	"seamless/wallet"
)

// fakeWallet is an httptest-backed wallet that records every call and keeps a
// running balance, so tests can assert exactly which wallet mutations were
// issued and with which derived transaction IDs.
type fakeWallet struct {
	mu       sync.Mutex
	balance  decimal.Decimal
	statuses map[string]int // endpoint -> status code override
	calls    []walletCall
}

type walletCall struct {
	Endpoint string
	TrxID    string
	Bet      decimal.Decimal
	Win      decimal.Decimal
}

func newFakeWallet(balance string) *fakeWallet {
	return &fakeWallet{
		balance:  decimal.RequireFromString(balance),
		statuses: map[string]int{},
	}
}

func (f *fakeWallet) failWith(endpoint string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[endpoint] = status
}

func (f *fakeWallet) callsTo(endpoint string) []walletCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []walletCall
	for _, c := range f.calls {
		if c.Endpoint == endpoint {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeWallet) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeWallet) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PlayID        string          `json:"play_id"`
		TransactionID string          `json:"transaction_id"`
		BetAmount     decimal.Decimal `json:"bet_amount"`
		WinAmount     decimal.Decimal `json:"win_amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, walletCall{
		Endpoint: r.URL.Path,
		TrxID:    req.TransactionID,
		Bet:      req.BetAmount,
		Win:      req.WinAmount,
	})

	status := wallet.StatusOK
	if s, ok := f.statuses[r.URL.Path]; ok {
		status = s
	}

	before := f.balance
	if status == wallet.StatusOK {
		switch r.URL.Path {
		case "/wager":
			f.balance = f.balance.Sub(req.BetAmount)
		case "/payout", "/bonus":
			f.balance = f.balance.Add(req.WinAmount)
		case "/cancel":
			f.balance = f.balance.Add(req.BetAmount)
		case "/wagerAndPayout":
			f.balance = f.balance.Sub(req.BetAmount).Add(req.WinAmount)
		}
	}

	json.NewEncoder(w).Encode(wallet.Result{
		StatusCode:   status,
		CreditBefore: before,
		CreditAfter:  f.balance,
	})
}

// setupTest wires an in-memory DB, test credentials for both vendors, and a
// fake wallet behind the real HTTP client.
func setupTest(t *testing.T, balance string) *fakeWallet {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.DB = db

	config.Register(config.ProviderCredentials{
		Provider:  "HG5",
		Currency:  "IDR",
		AgentID:   "agent-1",
		APIURL:    "http://hg5.test",
		AuthToken: "hg5-secret",
		PublicKey: "hg5-public",
	})
	config.Register(config.ProviderCredentials{
		Provider:  "ORS",
		Currency:  "IDR",
		AgentID:   "agent-2",
		APIURL:    "http://ors.test",
		AuthToken: "ors-secret",
		PublicKey: "ors-public",
	})

	fake := newFakeWallet(balance)
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	services.Wallet = wallet.NewClient(srv.URL, "wallet-secret")

	return fake
}
