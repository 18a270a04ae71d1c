package hg5

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/services"
)

type SettleRequest struct {
	AgentID   string   `json:"agentId"`
	PlayerID  string   `json:"playerId"`
	GameRound string   `json:"gameRound"`
	WinAmount *float64 `json:"winAmount"`
	EventTime *int64   `json:"eventTime"`
}

func SettleHandler(c *fiber.Ctx) error {
	var req SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidParameter, "Invalid request format", "", decimal.Zero)
	}
	if req.AgentID == "" || req.PlayerID == "" || req.GameRound == "" ||
		req.WinAmount == nil || req.EventTime == nil {
		return badRequest(c, "Missing required parameters")
	}
	if *req.WinAmount < 0 {
		return badRequest(c, "Invalid winAmount")
	}

	balance, err := services.SettleHg5Bet(c.UserContext(), services.Hg5SettleRequest{
		AgentID:   req.AgentID,
		PlayerID:  req.PlayerID,
		GameRound: req.GameRound,
		WinAmount: decimal.NewFromFloat(*req.WinAmount),
		EventTime: *req.EventTime,
	})
	if err != nil {
		log.Printf("[HG5] ❌ settle failed | round=%s: %v", req.GameRound, err)
		return fail(c, err)
	}

	return respond(c, codeOK, "Success", "", balance)
}
