package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seamless/database"
	"seamless/models"
	"seamless/services"
)

func seedHg5Player(t *testing.T, playID, token string) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.Player{
		PlayID:   playID,
		Username: playID,
		Currency: "IDR",
		IsActive: true,
	}).Error)
	require.NoError(t, database.DB.Create(&models.PlayGame{
		PlayID:    playID,
		Token:     token,
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)
}

func hg5Bet(playID, token, round string, amount float64) services.Hg5BetRequest {
	return services.Hg5BetRequest{
		AgentID:   "agent-1",
		PlayerID:  playID,
		Token:     token,
		GameCode:  "fish-1",
		GameRound: round,
		Amount:    decimal.NewFromFloat(amount),
		EventTime: time.Now().UnixMilli(),
	}
}

func TestPlaceHg5Bet(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	balance, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	require.NoError(t, err)
	assert.Equal(t, "800", balance.String())

	wagers := fake.callsTo("/wager")
	require.Len(t, wagers, 1)
	assert.Equal(t, "wager-R1", wagers[0].TrxID)

	var trx models.Hg5Transaction
	require.NoError(t, database.DB.Where("trx_id = ?", "R1").First(&trx).Error)
	assert.Equal(t, models.TrxPending, trx.Status)
	assert.Equal(t, "P1", trx.PlayID)
	assert.True(t, trx.BetAmount.Equal(decimal.NewFromInt(200)))
}

func TestPlaceHg5Bet_DuplicateRound(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	require.NoError(t, err)
	before := fake.totalCalls()

	_, err = services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	assert.ErrorIs(t, err, services.ErrTransactionExists)
	assert.Equal(t, before, fake.totalCalls(), "wallet must not be called for a duplicate round")
}

func TestPlaceHg5Bet_InsufficientFund(t *testing.T) {
	fake := setupTest(t, "100")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	assert.ErrorIs(t, err, services.ErrInsufficientFund)
	assert.Empty(t, fake.callsTo("/wager"), "no wager may be issued without funds")

	var count int64
	database.DB.Model(&models.Hg5Transaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestPlaceHg5Bet_AuthFailures(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P2", "tok-1", "R1", 200))
	assert.ErrorIs(t, err, services.ErrPlayerNotFound)

	_, err = services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "bad-token", "R1", 200))
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	req := hg5Bet("P1", "tok-1", "R1", 200)
	req.AgentID = "not-the-agent"
	_, err = services.PlaceHg5Bet(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrInvalidAgentID)

	assert.Zero(t, fake.totalCalls(), "auth failures must not reach the wallet")
}

func TestPlaceHg5Bet_ExpiredToken(t *testing.T) {
	setupTest(t, "1000")
	require.NoError(t, database.DB.Create(&models.Player{
		PlayID: "P1", Username: "P1", Currency: "IDR", IsActive: true,
	}).Error)
	require.NoError(t, database.DB.Create(&models.PlayGame{
		PlayID: "P1", Token: "tok-old", ExpiresAt: time.Now().Add(-time.Minute),
	}).Error)

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-old", "R1", 200))
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestPlaceHg5Bet_WalletRejects(t *testing.T) {
	fake := setupTest(t, "1000")
	fake.failWith("/wager", 5003)
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	var walletErr *services.WalletError
	require.ErrorAs(t, err, &walletErr)
	assert.Equal(t, 5003, walletErr.StatusCode)

	// No local record without wallet acceptance.
	var count int64
	database.DB.Model(&models.Hg5Transaction{}).Count(&count)
	assert.Zero(t, count)
}

func TestSettleHg5Bet(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	require.NoError(t, err)

	balance, err := services.SettleHg5Bet(context.Background(), services.Hg5SettleRequest{
		AgentID:   "agent-1",
		PlayerID:  "P1",
		GameRound: "R1",
		WinAmount: decimal.NewFromInt(500),
		EventTime: time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	assert.Equal(t, "1300", balance.String())

	payouts := fake.callsTo("/payout")
	require.Len(t, payouts, 1)
	assert.Equal(t, "payout-R1", payouts[0].TrxID)

	var trx models.Hg5Transaction
	require.NoError(t, database.DB.Where("trx_id = ?", "R1").First(&trx).Error)
	assert.Equal(t, models.TrxSettled, trx.Status)
	require.NotNil(t, trx.WinAmount)
	assert.True(t, trx.WinAmount.Equal(decimal.NewFromInt(500)))
	assert.NotNil(t, trx.SettleTime)
}

func TestSettleHg5Bet_SecondSettleRejected(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	require.NoError(t, err)

	settle := services.Hg5SettleRequest{
		AgentID:   "agent-1",
		PlayerID:  "P1",
		GameRound: "R1",
		WinAmount: decimal.NewFromInt(500),
		EventTime: time.Now().UnixMilli(),
	}
	_, err = services.SettleHg5Bet(context.Background(), settle)
	require.NoError(t, err)

	_, err = services.SettleHg5Bet(context.Background(), settle)
	assert.ErrorIs(t, err, services.ErrTransactionSettled)
	assert.Len(t, fake.callsTo("/payout"), 1, "second settle must not reach the wallet")
}

func TestSettleHg5Bet_UnknownRound(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.SettleHg5Bet(context.Background(), services.Hg5SettleRequest{
		AgentID:   "agent-1",
		PlayerID:  "P1",
		GameRound: "missing",
		WinAmount: decimal.NewFromInt(500),
		EventTime: time.Now().UnixMilli(),
	})
	assert.ErrorIs(t, err, services.ErrTransactionNotFound)
	assert.Zero(t, fake.totalCalls())
}

func TestCancelHg5Bet(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	require.NoError(t, err)

	balance, err := services.CancelHg5Bet(context.Background(), services.Hg5CancelRequest{
		AgentID:   "agent-1",
		PlayerID:  "P1",
		GameRound: "R1",
		EventTime: time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	assert.Equal(t, "1000", balance.String())

	cancels := fake.callsTo("/cancel")
	require.Len(t, cancels, 1)
	assert.Equal(t, "cancel-R1", cancels[0].TrxID)
	assert.True(t, cancels[0].Bet.Equal(decimal.NewFromInt(200)), "cancel must reverse the original stake")

	var trx models.Hg5Transaction
	require.NoError(t, database.DB.Where("trx_id = ?", "R1").First(&trx).Error)
	assert.Equal(t, models.TrxCancelled, trx.Status)
}

func TestCancelHg5Bet_AfterSettleRejected(t *testing.T) {
	setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	_, err := services.PlaceHg5Bet(context.Background(), hg5Bet("P1", "tok-1", "R1", 200))
	require.NoError(t, err)
	_, err = services.SettleHg5Bet(context.Background(), services.Hg5SettleRequest{
		AgentID: "agent-1", PlayerID: "P1", GameRound: "R1",
		WinAmount: decimal.NewFromInt(500), EventTime: time.Now().UnixMilli(),
	})
	require.NoError(t, err)

	_, err = services.CancelHg5Bet(context.Background(), services.Hg5CancelRequest{
		AgentID: "agent-1", PlayerID: "P1", GameRound: "R1", EventTime: time.Now().UnixMilli(),
	})
	assert.ErrorIs(t, err, services.ErrTransactionSettled)
}

func TestSettleHg5Round_Combined(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	balance, err := services.SettleHg5Round(context.Background(), services.Hg5RoundRequest{
		AgentID:       "agent-1",
		PlayerID:      "P1",
		Token:         "tok-1",
		GameCode:      "arcade-1",
		GameRound:     "A1",
		MainGameRound: "R9",
		BetAmount:     decimal.NewFromInt(100),
		WinAmount:     decimal.NewFromInt(250),
		EventTime:     time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	assert.Equal(t, "1150", balance.String())

	combined := fake.callsTo("/wagerAndPayout")
	require.Len(t, combined, 1)
	assert.Equal(t, "wagerpayout-A1", combined[0].TrxID)

	var trx models.Hg5Transaction
	require.NoError(t, database.DB.Where("trx_id = ?", "A1").First(&trx).Error)
	assert.Equal(t, models.TrxSettled, trx.Status)
	assert.Contains(t, string(trx.ExtraInfo), "R9")
}

func TestSettleHg5Round_Duplicate(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	req := services.Hg5RoundRequest{
		AgentID: "agent-1", PlayerID: "P1", Token: "tok-1", GameCode: "arcade-1",
		GameRound: "A1", BetAmount: decimal.NewFromInt(100),
		WinAmount: decimal.NewFromInt(250), EventTime: time.Now().UnixMilli(),
	}
	_, err := services.SettleHg5Round(context.Background(), req)
	require.NoError(t, err)
	before := fake.totalCalls()

	_, err = services.SettleHg5Round(context.Background(), req)
	assert.ErrorIs(t, err, services.ErrTransactionExists)
	assert.Equal(t, before, fake.totalCalls())
}

func TestAwardHg5Bonus(t *testing.T) {
	fake := setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	balance, err := services.AwardHg5Bonus(context.Background(), services.Hg5BonusRequest{
		AgentID:   "agent-1",
		PlayerID:  "P1",
		TrxID:     "B1",
		Amount:    decimal.NewFromInt(50),
		EventTime: time.Now().UnixMilli(),
	})
	require.NoError(t, err)
	assert.Equal(t, "1050", balance.String())

	bonuses := fake.callsTo("/bonus")
	require.Len(t, bonuses, 1)
	assert.Equal(t, "bonus-B1", bonuses[0].TrxID)

	_, err = services.AwardHg5Bonus(context.Background(), services.Hg5BonusRequest{
		AgentID: "agent-1", PlayerID: "P1", TrxID: "B1",
		Amount: decimal.NewFromInt(50), EventTime: time.Now().UnixMilli(),
	})
	assert.ErrorIs(t, err, services.ErrTransactionExists)
}

func TestAuthenticateHg5(t *testing.T) {
	setupTest(t, "1000")
	seedHg5Player(t, "P1", "tok-1")

	player, balance, err := services.AuthenticateHg5(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "P1", player.PlayID)
	assert.Equal(t, "1000", balance.String())

	_, _, err = services.AuthenticateHg5(context.Background(), "nope")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
