package ors

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"seamless/helpers"
	"seamless/services"
)

type SettleRecord struct {
	TransactionID string   `json:"transaction_id"`
	WinAmount     *float64 `json:"win_amount"`
	CreatedAt     *int64   `json:"created_at"`
}

type SettleRequest struct {
	PlayerID string         `json:"player_id"`
	Records  []SettleRecord `json:"records"`
}

func SettleHandler(c *fiber.Ctx) error {
	var req SettleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0, "records": []fiber.Map{}})
	}
	if req.PlayerID == "" || len(req.Records) == 0 {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0, "records": []fiber.Map{}})
	}

	trxIDs := make([]string, 0, len(req.Records))
	records := make([]services.OrsSettleRecord, 0, len(req.Records))
	for _, r := range req.Records {
		if r.TransactionID == "" || r.WinAmount == nil || *r.WinAmount < 0 {
			return failAllCode(c, codeInvalidParameter, trxIDsOfSettle(req.Records))
		}
		trxIDs = append(trxIDs, r.TransactionID)
		rec := services.OrsSettleRecord{
			TrxID:     r.TransactionID,
			WinAmount: decimal.NewFromFloat(*r.WinAmount),
		}
		if r.CreatedAt != nil {
			rec.CreatedAt = *r.CreatedAt
		}
		records = append(records, rec)
	}

	publicKey, signature := signatureOf(c)
	outcomes, balance, err := services.SettleOrsBets(c.UserContext(), req.PlayerID, publicKey, signature, c.Body(), records)
	if err != nil {
		log.Printf("[ORS] ❌ settle batch failed | play=%s: %v", req.PlayerID, err)
		return failAll(c, err, trxIDs)
	}

	return c.JSON(fiber.Map{
		"code":    codeOK,
		"balance": helpers.Money(balance),
		"records": recordEnvelope(outcomes),
	})
}

func trxIDsOfSettle(records []SettleRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.TransactionID)
	}
	return ids
}
