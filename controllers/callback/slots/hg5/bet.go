package hg5

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/services"
)

type BetRequest struct {
	AgentID   string   `json:"agentId"`
	PlayerID  string   `json:"playerId"`
	Token     string   `json:"token"`
	GameCode  string   `json:"gameCode"`
	GameRound string   `json:"gameRound"`
	Amount    *float64 `json:"amount"`
	EventTime *int64   `json:"eventTime"`
}

func BetHandler(c *fiber.Ctx) error {
	var req BetRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidParameter, "Invalid request format", "", decimal.Zero)
	}
	if req.AgentID == "" || req.PlayerID == "" || req.Token == "" ||
		req.GameCode == "" || req.GameRound == "" || req.Amount == nil || req.EventTime == nil {
		return badRequest(c, "Missing required parameters")
	}
	if *req.Amount < 0 {
		return badRequest(c, "Invalid amount")
	}

	balance, err := services.PlaceHg5Bet(c.UserContext(), services.Hg5BetRequest{
		AgentID:   req.AgentID,
		PlayerID:  req.PlayerID,
		Token:     req.Token,
		GameCode:  req.GameCode,
		GameRound: req.GameRound,
		Amount:    decimal.NewFromFloat(*req.Amount),
		EventTime: *req.EventTime,
	})
	if err != nil {
		log.Printf("[HG5] ❌ bet failed | round=%s: %v", req.GameRound, err)
		return fail(c, err)
	}

	return respond(c, codeOK, "Success", "", balance)
}
