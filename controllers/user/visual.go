package user

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"seamless/config"
	"seamless/helpers"
	"seamless/providers/slots"
)

var (
	hg5Client = &slots.Hg5Client{}
	orsClient = &slots.OrsClient{}
)

type OrderDetailRequest struct {
	Currency  string `json:"currency"`
	GameRound string `json:"game_round"`
	Lang      string `json:"lang"`
}

// OrderDetailHandler proxies the Hg5 round-replay link for back-office use.
func OrderDetailHandler(c *fiber.Ctx) error {
	var req OrderDetailRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Currency == "" || req.GameRound == "" {
		return helpers.JSONError(c, "MISSING_REQUIRED_FIELDS")
	}

	cred, err := config.ByCurrency("HG5", req.Currency)
	if err != nil {
		return helpers.JSONError(c, "CURRENCY_NOT_SUPPORTED")
	}

	url, err := hg5Client.GetOrderDetailLink(cred, req.GameRound, req.Lang)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_GET_DETAIL_LINK: "+err.Error())
	}

	return helpers.JSONSuccess(c, "Detail link resolved", fiber.Map{"detail_url": url})
}

type OrderQueryRequest struct {
	Currency  string `json:"currency"`
	GameRound string `json:"game_round"`
}

// OrderQueryHandler returns the vendor's view of a round for reconciliation.
func OrderQueryHandler(c *fiber.Ctx) error {
	var req OrderQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Currency == "" || req.GameRound == "" {
		return helpers.JSONError(c, "MISSING_REQUIRED_FIELDS")
	}

	cred, err := config.ByCurrency("HG5", req.Currency)
	if err != nil {
		return helpers.JSONError(c, "CURRENCY_NOT_SUPPORTED")
	}

	order, err := hg5Client.GetOrderQuery(cred, req.GameRound)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_QUERY_ORDER: "+err.Error())
	}

	return helpers.JSONSuccess(c, "Order resolved", order)
}

type GameListRequest struct {
	Currency string `json:"currency"`
}

func GameListHandler(c *fiber.Ctx) error {
	var req GameListRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Currency == "" {
		return helpers.JSONError(c, "MISSING_REQUIRED_FIELDS")
	}

	cred, err := config.ByCurrency("ORS", req.Currency)
	if err != nil {
		return helpers.JSONError(c, "CURRENCY_NOT_SUPPORTED")
	}

	games, err := orsClient.GetGameList(cred)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_GET_GAME_LIST: "+err.Error())
	}

	return helpers.JSONSuccess(c, "Game list resolved", fiber.Map{"games": games})
}

type BettingRecordsRequest struct {
	Currency string `json:"currency"`
	PlayID   string `json:"play_id"`
	FromMS   int64  `json:"from"`
	ToMS     int64  `json:"to"`
}

// BettingRecordsHandler pulls vendor-side history for balance reconciliation.
func BettingRecordsHandler(c *fiber.Ctx) error {
	var req BettingRecordsRequest
	if err := c.BodyParser(&req); err != nil {
		return helpers.JSONError(c, "INVALID_JSON")
	}
	if req.Currency == "" || req.PlayID == "" {
		return helpers.JSONError(c, "MISSING_REQUIRED_FIELDS")
	}

	cred, err := config.ByCurrency("ORS", req.Currency)
	if err != nil {
		return helpers.JSONError(c, "CURRENCY_NOT_SUPPORTED")
	}

	from := time.UnixMilli(req.FromMS)
	to := time.UnixMilli(req.ToMS)
	if req.ToMS == 0 {
		to = time.Now()
	}
	if req.FromMS == 0 {
		from = to.Add(-24 * time.Hour)
	}

	records, err := orsClient.GetBettingRecords(cred, req.PlayID, from, to)
	if err != nil {
		return helpers.JSONError(c, "FAILED_TO_GET_BETTING_RECORDS: "+err.Error())
	}

	return helpers.JSONSuccess(c, "Betting records resolved", fiber.Map{"records": records})
}
