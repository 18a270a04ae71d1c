package ors

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"seamless/helpers"
	"seamless/services"
)

type CancelRecord struct {
	TransactionID string `json:"transaction_id"`
	CreatedAt     *int64 `json:"created_at"`
}

type CancelRequest struct {
	PlayerID string         `json:"player_id"`
	Records  []CancelRecord `json:"records"`
}

func CancelHandler(c *fiber.Ctx) error {
	var req CancelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0, "records": []fiber.Map{}})
	}
	if req.PlayerID == "" || len(req.Records) == 0 {
		return c.JSON(fiber.Map{"code": codeInvalidParameter, "balance": 0.0, "records": []fiber.Map{}})
	}

	trxIDs := make([]string, 0, len(req.Records))
	records := make([]services.OrsCancelRecord, 0, len(req.Records))
	for _, r := range req.Records {
		if r.TransactionID == "" {
			return failAllCode(c, codeInvalidParameter, trxIDsOfCancel(req.Records))
		}
		trxIDs = append(trxIDs, r.TransactionID)
		rec := services.OrsCancelRecord{TrxID: r.TransactionID}
		if r.CreatedAt != nil {
			rec.CreatedAt = *r.CreatedAt
		}
		records = append(records, rec)
	}

	publicKey, signature := signatureOf(c)
	outcomes, balance, err := services.CancelOrsBets(c.UserContext(), req.PlayerID, publicKey, signature, c.Body(), records)
	if err != nil {
		log.Printf("[ORS] ❌ cancel batch failed | play=%s: %v", req.PlayerID, err)
		return failAll(c, err, trxIDs)
	}

	return c.JSON(fiber.Map{
		"code":    codeOK,
		"balance": helpers.Money(balance),
		"records": recordEnvelope(outcomes),
	})
}

func trxIDsOfCancel(records []CancelRecord) []string {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.TransactionID)
	}
	return ids
}
