package slots

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"seamless/config"
	"seamless/providers"
)

// Hg5Client wraps the outbound Hg5 vendor API. Requests are JSON POSTs signed
// with an MD5 digest of body+authToken in the Digest header.
type Hg5Client struct {
	HTTPClient *http.Client
}

type Hg5Order struct {
	GameRound string  `json:"gameRound"`
	GameCode  string  `json:"gameCode"`
	BetAmount float64 `json:"betAmount"`
	WinAmount float64 `json:"winAmount"`
	Status    string  `json:"status"`
	EventTime int64   `json:"eventTime"`
}

func (p *Hg5Client) client() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}

func (p *Hg5Client) call(cred config.ProviderCredentials, api string, payload map[string]any, out any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload failed: %w", err)
	}

	digestHash := md5.Sum(append(jsonBody, []byte(cred.AuthToken)...))

	httpReq, err := http.NewRequest("POST", cred.APIURL+"/"+api, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("create request failed: %w", err)
	}
	httpReq.Header.Set("API", api)
	httpReq.Header.Set("Agent", cred.AgentID)
	httpReq.Header.Set("Digest", hex.EncodeToString(digestHash[:]))
	httpReq.Header.Set("Content-Type", "application/json")

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
		return fmt.Errorf("hg5 %s failed, status=%d body=%s", api, resp.StatusCode, string(bodyBytes))
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("decode response failed: %w", err)
	}
	return nil
}

// GetGameLink asks the vendor for a playable session URL.
func (p *Hg5Client) GetGameLink(cred config.ProviderCredentials, token, gameCode, lang string) (string, error) {
	var result struct {
		ErrorCode int    `json:"errorCode"`
		Message   string `json:"message"`
		Data      struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	err := p.call(cred, "getGameLink", map[string]any{
		"agentId":  cred.AgentID,
		"token":    token,
		"gameCode": gameCode,
		"lang":     lang,
	}, &result)
	if err != nil {
		return "", err
	}
	if result.ErrorCode != 0 {
		return "", fmt.Errorf("getGameLink failed (code %d): %s", result.ErrorCode, result.Message)
	}
	if result.Data.URL == "" {
		return "", fmt.Errorf("empty game URL received")
	}
	return result.Data.URL, nil
}

// GetOrderQuery fetches the vendor's view of a game round.
func (p *Hg5Client) GetOrderQuery(cred config.ProviderCredentials, gameRound string) (*Hg5Order, error) {
	var result struct {
		ErrorCode int      `json:"errorCode"`
		Message   string   `json:"message"`
		Data      Hg5Order `json:"data"`
	}
	err := p.call(cred, "getOrderQuery", map[string]any{
		"agentId":   cred.AgentID,
		"gameRound": gameRound,
	}, &result)
	if err != nil {
		return nil, err
	}
	if result.ErrorCode != 0 {
		return nil, fmt.Errorf("getOrderQuery failed (code %d): %s", result.ErrorCode, result.Message)
	}
	return &result.Data, nil
}

// GetOrderDetailLink returns the vendor's round-replay page URL.
func (p *Hg5Client) GetOrderDetailLink(cred config.ProviderCredentials, gameRound, lang string) (string, error) {
	var result struct {
		ErrorCode int    `json:"errorCode"`
		Message   string `json:"message"`
		Data      struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	err := p.call(cred, "getOrderDetailLink", map[string]any{
		"agentId":   cred.AgentID,
		"gameRound": gameRound,
		"lang":      lang,
	}, &result)
	if err != nil {
		return "", err
	}
	if result.ErrorCode != 0 {
		return "", fmt.Errorf("getOrderDetailLink failed (code %d): %s", result.ErrorCode, result.Message)
	}
	return result.Data.URL, nil
}

type Hg5Launcher struct {
	Client *Hg5Client
}

func (l *Hg5Launcher) StartGame(req providers.LaunchRequest) (string, error) {
	cred, err := config.ByCurrency("HG5", req.Currency)
	if err != nil {
		return "", err
	}

	pg, err := providers.PrepareSession(req, 24*time.Hour)
	if err != nil {
		return "", err
	}

	return l.Client.GetGameLink(cred, pg.Token, req.GameCode, req.Lang)
}

func init() {
	providers.RegisterProvider("HG5", &Hg5Launcher{Client: &Hg5Client{}})
}
