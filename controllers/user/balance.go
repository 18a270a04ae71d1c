package user

import (
	"github.com/gofiber/fiber/v2"

	"seamless/helpers"
	"seamless/services"
)

type BalanceRequest struct {
	Provider string `json:"provider"`
	PlayID   string `json:"play_id"`
}

func CheckBalanceHandler(c *fiber.Ctx) error {
	var req BalanceRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Provider == "" || req.PlayID == "" {
		return helpers.JSONError(c, "MISSING_REQUIRED_FIELDS")
	}

	player, balance, err := services.PlayerBalance(c.UserContext(), req.Provider, req.PlayID)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_GET_BALANCE: "+err.Error())
	}

	return helpers.JSONSuccess(c, "Balance resolved", fiber.Map{
		"play_id":  player.PlayID,
		"currency": player.Currency,
		"balance":  helpers.Money(balance),
	})
}
