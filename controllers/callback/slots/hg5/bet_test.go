package hg5_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seamless/controllers/callback/slots/hg5"
)

type betResponse struct {
	ErrorCode int    `json:"errorCode"`
	Message   string `json:"message"`
	Data      struct {
		Currency string  `json:"currency"`
		Balance  float64 `json:"balance"`
	} `json:"data"`
}

func postBet(t *testing.T, body string) betResponse {
	app := fiber.New()
	app.Post("/bet", hg5.BetHandler)

	req := httptest.NewRequest(http.MethodPost, "/bet", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out betResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestBetHandlerRejectsMissingFields(t *testing.T) {
	out := postBet(t, `{"agentId":"agent-1","playerId":"P1","token":"tok","gameCode":"G1","gameRound":"R1"}`)
	assert.Equal(t, 1, out.ErrorCode)
	assert.Equal(t, 0.0, out.Data.Balance)
}

func TestBetHandlerRejectsMalformedJSON(t *testing.T) {
	out := postBet(t, `{"agentId":`)
	assert.Equal(t, 1, out.ErrorCode)
}

func TestBetHandlerRejectsNegativeAmount(t *testing.T) {
	out := postBet(t, `{"agentId":"agent-1","playerId":"P1","token":"tok","gameCode":"G1","gameRound":"R1","amount":-5,"eventTime":1717171717}`)
	assert.Equal(t, 1, out.ErrorCode)
}
