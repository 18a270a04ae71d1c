package ors

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"seamless/helpers"
	"seamless/services"
)

type BalanceRequest struct {
	PlayerID string `json:"player_id"`
}

func BalanceHandler(c *fiber.Ctx) error {
	var req BalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0})
	}
	if req.PlayerID == "" {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0})
	}

	publicKey, signature := signatureOf(c)
	balance, err := services.OrsBalance(c.UserContext(), req.PlayerID, publicKey, signature, c.Body())
	if err != nil {
		log.Printf("[ORS] ❌ balance failed | play=%s: %v", req.PlayerID, err)
		return c.JSON(fiber.Map{"code": mapError(err), "balance": 0.0})
	}

	return c.JSON(fiber.Map{"code": codeOK, "balance": helpers.Money(balance)})
}
