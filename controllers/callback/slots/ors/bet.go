package ors

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/helpers"
	"seamless/services"
)

type BetRecord struct {
	TransactionID string   `json:"transaction_id"`
	RoundID       string   `json:"round_id"`
	GameCode      string   `json:"game_code"`
	Amount        *float64 `json:"amount"`
	CreatedAt     *int64   `json:"created_at"`
}

type BetRequest struct {
	PlayerID    string      `json:"player_id"`
	TotalAmount *float64    `json:"total_amount"`
	Records     []BetRecord `json:"records"`
}

func BetHandler(c *fiber.Ctx) error {
	var req BetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0, "records": []fiber.Map{}})
	}
	if req.PlayerID == "" || req.TotalAmount == nil || len(req.Records) == 0 {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0, "records": []fiber.Map{}})
	}

	trxIDs := make([]string, 0, len(req.Records))
	records := make([]services.OrsBetRecord, 0, len(req.Records))
	for _, r := range req.Records {
		if r.TransactionID == "" || r.Amount == nil || *r.Amount < 0 {
			return failAllCode(c, codeInvalidParameter, trxIDsOfBet(req.Records))
		}
		trxIDs = append(trxIDs, r.TransactionID)
		rec := services.OrsBetRecord{
			TrxID:    r.TransactionID,
			RoundID:  r.RoundID,
			GameCode: r.GameCode,
			Amount:   decimal.NewFromFloat(*r.Amount),
		}
		if r.CreatedAt != nil {
			rec.CreatedAt = *r.CreatedAt
		}
		records = append(records, rec)
	}

	publicKey, signature := signatureOf(c)
	outcomes, balance, err := services.PlaceOrsBets(c.UserContext(), req.PlayerID, publicKey, signature, c.Body(), records)
	if err != nil {
		log.Printf("[ORS] ❌ bet batch failed | play=%s: %v", req.PlayerID, err)
		return failAll(c, err, trxIDs)
	}

	return c.JSON(fiber.Map{
		"code":    codeOK,
		"balance": helpers.Money(balance),
		"records": recordEnvelope(outcomes),
	})
}

func trxIDsOfBet(records []BetRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.TransactionID)
	}
	return ids
}
