package hg5

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/services"
)

type CancelRequest struct {
	AgentID   string `json:"agentId"`
	PlayerID  string `json:"playerId"`
	GameRound string `json:"gameRound"`
	EventTime *int64 `json:"eventTime"`
}

func CancelHandler(c *fiber.Ctx) error {
	var req CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidParameter, "Invalid request format", "", decimal.Zero)
	}
	if req.AgentID == "" || req.PlayerID == "" || req.GameRound == "" || req.EventTime == nil {
		return badRequest(c, "Missing required parameters")
	}

	balance, err := services.CancelHg5Bet(c.UserContext(), services.Hg5CancelRequest{
		AgentID:   req.AgentID,
		PlayerID:  req.PlayerID,
		GameRound: req.GameRound,
		EventTime: *req.EventTime,
	})
	if err != nil {
		log.Printf("[HG5] ❌ cancel failed | round=%s: %v", req.GameRound, err)
		return fail(c, err)
	}

	return respond(c, codeOK, "Success", "", balance)
}
