package slots

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"seamless/config"
	"seamless/providers"
)

// OrsClient wraps the outbound Ors vendor API. Requests are JSON POSTs with an
// HMAC-SHA256 body signature in the X-Signature header.
type OrsClient struct {
	HTTPClient *http.Client
}

type OrsGame struct {
	GameCode string `json:"game_code"`
	Name     string `json:"name"`
	Type     string `json:"type"`
}

type OrsBettingRecord struct {
	TransactionID string  `json:"transaction_id"`
	RoundID       string  `json:"round_id"`
	GameCode      string  `json:"game_code"`
	BetAmount     float64 `json:"bet_amount"`
	WinAmount     float64 `json:"win_amount"`
	CreatedAt     int64   `json:"created_at"`
}

func (p *OrsClient) client() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (p *OrsClient) call(cred config.ProviderCredentials, endpoint string, payload map[string]any, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload failed: %w", err)
	}

	h := hmac.New(sha256.New, []byte(cred.AuthToken))
	h.Write(jsonBody)

	httpReq, err := http.NewRequest("POST", cred.APIURL+endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Public-Key", cred.PublicKey)
	httpReq.Header.Set("X-Signature", hex.EncodeToString(h.Sum(nil)))

	resp, err := p.client().Do(httpReq)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response failed: %w", err)
	}
	if resp.StatusCode != 200 {
		return fmt.Errorf("ors %s failed, status=%d body=%s", endpoint, resp.StatusCode, string(bodyBytes))
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

// EnterGame asks the vendor for a playable session URL.
func (p *OrsClient) EnterGame(cred config.ProviderCredentials, token, playID, gameCode, lang string) (string, error) {
	var result struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		URL     string `json:"url"`
	}
	err := p.call(cred, "/enterGame", map[string]any{
		"agent_id":  cred.AgentID,
		"player_id": playID,
		"token":     token,
		"game_code": gameCode,
		"lang":      lang,
	}, &result)
	if err != nil {
		return "", err
	}
	if result.Code != "0" {
		return "", fmt.Errorf("enterGame failed (code %s): %s", result.Code, result.Message)
	}
	if result.URL == "" {
		return "", fmt.Errorf("empty game URL received")
	}
	return result.URL, nil
}

// GetBettingRecords pulls the vendor-side bet history for reconciliation.
func (p *OrsClient) GetBettingRecords(cred config.ProviderCredentials, playID string, from, to time.Time) ([]OrsBettingRecord, error) {
	var result struct {
		Code    string             `json:"code"`
		Message string             `json:"message"`
		Records []OrsBettingRecord `json:"records"`
	}
	err := p.call(cred, "/getBettingRecords", map[string]any{
		"agent_id":  cred.AgentID,
		"player_id": playID,
		"from":      from.UnixMilli(),
		"to":        to.UnixMilli(),
	}, &result)
	if err != nil {
		return nil, err
	}
	if result.Code != "0" {
		return nil, fmt.Errorf("getBettingRecords failed (code %s): %s", result.Code, result.Message)
	}
	return result.Records, nil
}

// GetGameList returns the vendor catalogue.
func (p *OrsClient) GetGameList(cred config.ProviderCredentials) ([]OrsGame, error) {
	var result struct {
		Code    string    `json:"code"`
		Message string    `json:"message"`
		Games   []OrsGame `json:"games"`
	}
	err := p.call(cred, "/getGameList", map[string]any{"agent_id": cred.AgentID}, &result)
	if err != nil {
		return nil, err
	}
	if result.Code != "0" {
		return nil, fmt.Errorf("getGameList failed (code %s): %s", result.Code, result.Message)
	}
	return result.Games, nil
}

type OrsLauncher struct {
	Client *OrsClient
}

func (l *OrsLauncher) StartGame(req providers.LaunchRequest) (string, error) {
	cred, err := config.ByCurrency("ORS", req.Currency)
	if err != nil {
		return "", err
	}

	pg, err := providers.PrepareSession(req, 24*time.Hour)
	if err != nil {
		return "", err
	}

	return l.Client.EnterGame(cred, pg.Token, req.PlayID, req.GameCode, req.Lang)
}

func init() {
	providers.RegisterProvider("ORS", &OrsLauncher{Client: &OrsClient{}})
}
