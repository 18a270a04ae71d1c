package hg5

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/services"
)

type BonusRequest struct {
	AgentID   string   `json:"agentId"`
	PlayerID  string   `json:"playerId"`
	TrxID     string   `json:"trxId"`
	Amount    *float64 `json:"amount"`
	EventTime *int64   `json:"eventTime"`
}

func BonusHandler(c *fiber.Ctx) error {
	var req BonusRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidParameter, "Invalid request format", "", decimal.Zero)
	}
	if req.AgentID == "" || req.PlayerID == "" || req.TrxID == "" ||
		req.Amount == nil || req.EventTime == nil {
		return badRequest(c, "Missing required parameters")
	}
	if *req.Amount < 0 {
		return badRequest(c, "Invalid amount")
	}

	balance, err := services.AwardHg5Bonus(c.UserContext(), services.Hg5BonusRequest{
		AgentID:   req.AgentID,
		PlayerID:  req.PlayerID,
		TrxID:     req.TrxID,
		Amount:    decimal.NewFromFloat(*req.Amount),
		EventTime: *req.EventTime,
	})
	if err != nil {
		log.Printf("[HG5] ❌ bonus failed | trx=%s: %v", req.TrxID, err)
		return fail(c, err)
	}

	return respond(c, codeOK, "Success", "", balance)
}
