package hg5

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/services"
)

type BalanceRequest struct {
	AgentID  string `json:"agentId"`
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

func BalanceHandler(c *fiber.Ctx) error {
	var req BalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidParameter, "Invalid request format", "", decimal.Zero)
	}
	if req.AgentID == "" || req.PlayerID == "" || req.Token == "" {
		return badRequest(c, "Missing required parameters")
	}

	balance, err := services.Hg5Balance(c.UserContext(), req.AgentID, req.PlayerID, req.Token)
	if err != nil {
		return fail(c, err)
	}

	return respond(c, codeOK, "Success", "", balance)
}
