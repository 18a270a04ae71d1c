package routes

import (
	"seamless/controllers/callback/slots/hg5"
	"seamless/controllers/callback/slots/ors"
	"seamless/controllers/user"
	"seamless/middlewares"

	"github.com/gofiber/fiber/v2"
)

func Setup(app *fiber.App) {
	userroutes := app.Group("/user", middlewares.InternalAuth())
	userroutes.Post("/balance", user.CheckBalanceHandler)
	userroutes.Post("/games/start", user.LaunchGameHandler)
	userroutes.Post("/games/list", user.GameListHandler)
	userroutes.Post("/orders/query", user.OrderQueryHandler)
	userroutes.Post("/orders/detail", user.OrderDetailHandler)
	userroutes.Post("/orders/records", user.BettingRecordsHandler)

	//hg5
	hg5routes := app.Group("/seamless/slot/hg5")
	hg5routes.Post("/authenticate", hg5.AuthenticateHandler)
	hg5routes.Post("/balance", hg5.BalanceHandler)
	hg5routes.Post("/bet", hg5.BetHandler)
	hg5routes.Post("/settle", hg5.SettleHandler)
	hg5routes.Post("/cancel", hg5.CancelHandler)
	hg5routes.Post("/betsettle", hg5.BetSettleHandler)
	hg5routes.Post("/bonus", hg5.BonusHandler)

	//ors
	orsroutes := app.Group("/seamless/slot/ors")
	orsroutes.Post("/balance", ors.BalanceHandler)
	orsroutes.Post("/bet", ors.BetHandler)
	orsroutes.Post("/settle", ors.SettleHandler)
	orsroutes.Post("/cancel", ors.CancelHandler)
}
