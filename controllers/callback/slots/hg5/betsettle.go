package hg5

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/services"
)

// BetSettleRequest covers arcade games that wager and pay out in a single
// callback. mainGameRound is an optional link to the base-game round.
type BetSettleRequest struct {
	AgentID       string   `json:"agentId"`
	PlayerID      string   `json:"playerId"`
	Token         string   `json:"token"`
	GameCode      string   `json:"gameCode"`
	GameRound     string   `json:"gameRound"`
	MainGameRound string   `json:"mainGameRound"`
	BetAmount     *float64 `json:"betAmount"`
	WinAmount     *float64 `json:"winAmount"`
	EventTime     *int64   `json:"eventTime"`
}

func BetSettleHandler(c *fiber.Ctx) error {
	var req BetSettleRequest
	if err := c.BodyParser(&req); err != nil {
		return respond(c, codeInvalidParameter, "Invalid request format", "", decimal.Zero)
	}
	if req.AgentID == "" || req.PlayerID == "" || req.Token == "" || req.GameCode == "" ||
		req.GameRound == "" || req.BetAmount == nil || req.WinAmount == nil || req.EventTime == nil {
		return badRequest(c, "Missing required parameters")
	}
	if *req.BetAmount < 0 || *req.WinAmount < 0 {
		return badRequest(c, "Invalid amount")
	}

	balance, err := services.SettleHg5Round(c.UserContext(), services.Hg5RoundRequest{
		AgentID:       req.AgentID,
		PlayerID:      req.PlayerID,
		Token:         req.Token,
		GameCode:      req.GameCode,
		GameRound:     req.GameRound,
		MainGameRound: req.MainGameRound,
		BetAmount:     decimal.NewFromFloat(*req.BetAmount),
		WinAmount:     decimal.NewFromFloat(*req.WinAmount),
		EventTime:     *req.EventTime,
	})
	if err != nil {
		log.Printf("[HG5] ❌ betsettle failed | round=%s: %v", req.GameRound, err)
		return fail(c, err)
	}

	return respond(c, codeOK, "Success", "", balance)
}
