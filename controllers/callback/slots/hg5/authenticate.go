package hg5

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/helpers"
	"seamless/services"
)

type AuthenticateRequest struct {
	AgentID string `json:"agentId"`
	Token   string `json:"token"`
}

func AuthenticateHandler(c *fiber.Ctx) error {
	var req AuthenticateRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidParameter, "Invalid request format", "", decimal.Zero)
	}
	if req.Token == "" {
		return badRequest(c, "Missing required parameters")
	}

	player, balance, err := services.AuthenticateHg5(c.UserContext(), req.Token)
	if err != nil {
		log.Printf("[HG5] ❌ auth failed: %v", err)
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"errorCode": codeOK,
		"message":   "Success",
		"data": fiber.Map{
			"playerId": player.PlayID,
			"username": player.Username,
			"currency": strings.ToUpper(player.Currency),
			"balance":  helpers.Money(balance),
		},
	})
}
