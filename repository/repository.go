// Package repository is the query layer over the gateway's local records:
// players, launch tokens, and per-vendor transaction audit rows.
package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"seamless/models"
)

func GetPlayerByPlayID(tx *gorm.DB, playID string) (*models.Player, error) {
	var player models.Player
	if err := tx.Where("play_id = ?", playID).First(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

func CreatePlayer(tx *gorm.DB, player *models.Player) error {
	return tx.Create(player).Error
}

// UpsertPlayer creates the player on first launch; replays of the same launch
// are no-ops keyed by play_id.
func UpsertPlayer(tx *gorm.DB, player *models.Player) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "play_id"}},
		DoNothing: true,
	}).Create(player).Error
}

func CreatePlayGame(tx *gorm.DB, pg *models.PlayGame) error {
	return tx.Create(pg).Error
}

func GetPlayGameByPlayIDToken(tx *gorm.DB, playID, token string) (*models.PlayGame, error) {
	var pg models.PlayGame
	if err := tx.Where("play_id = ? AND token = ?", playID, token).First(&pg).Error; err != nil {
		return nil, err
	}
	return &pg, nil
}

func GetPlayGameByToken(tx *gorm.DB, token string) (*models.PlayGame, error) {
	var pg models.PlayGame
	if err := tx.Where("token = ?", token).First(&pg).Error; err != nil {
		return nil, err
	}
	return &pg, nil
}

// DeleteExpiredPlayGames removes launch tokens past their expiry. Transaction
// rows are never deleted.
func DeleteExpiredPlayGames(tx *gorm.DB, now time.Time) (int64, error) {
	res := tx.Unscoped().Where("expires_at < ?", now).Delete(&models.PlayGame{})
	return res.RowsAffected, res.Error
}

func GetHg5TransactionByTrxID(tx *gorm.DB, trxID string) (*models.Hg5Transaction, error) {
	var trx models.Hg5Transaction
	if err := tx.Where("trx_id = ?", trxID).First(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

func CreateHg5Transaction(tx *gorm.DB, trx *models.Hg5Transaction) error {
	return tx.Create(trx).Error
}

// SettleHg5Transaction marks the record settled exactly once. Returns the
// number of rows transitioned; 0 means another writer settled it first.
func SettleHg5Transaction(tx *gorm.DB, trxID string, win decimal.Decimal, settleTime time.Time) (int64, error) {
	res := tx.Model(&models.Hg5Transaction{}).
		Where("trx_id = ? AND status = ?", trxID, models.TrxPending).
		Updates(map[string]any{
			"status":      models.TrxSettled,
			"win_amount":  win,
			"settle_time": settleTime,
		})
	return res.RowsAffected, res.Error
}

func CancelHg5Transaction(tx *gorm.DB, trxID string, cancelTime time.Time) (int64, error) {
	res := tx.Model(&models.Hg5Transaction{}).
		Where("trx_id = ? AND status = ?", trxID, models.TrxPending).
		Updates(map[string]any{
			"status":      models.TrxCancelled,
			"settle_time": cancelTime,
		})
	return res.RowsAffected, res.Error
}

func GetOrsTransactionByTrxID(tx *gorm.DB, trxID string) (*models.OrsTransaction, error) {
	var trx models.OrsTransaction
	if err := tx.Where("trx_id = ?", trxID).First(&trx).Error; err != nil {
		return nil, err
	}
	return &trx, nil
}

func CreateOrsTransaction(tx *gorm.DB, trx *models.OrsTransaction) error {
	return tx.Create(trx).Error
}

func SettleOrsTransaction(tx *gorm.DB, trxID string, win decimal.Decimal, settleTime time.Time) (int64, error) {
	res := tx.Model(&models.OrsTransaction{}).
		Where("trx_id = ? AND status = ?", trxID, models.TrxPending).
		Updates(map[string]any{
			"status":      models.TrxSettled,
			"win_amount":  win,
			"settle_time": settleTime,
		})
	return res.RowsAffected, res.Error
}

func CancelOrsTransaction(tx *gorm.DB, trxID string, cancelTime time.Time) (int64, error) {
	res := tx.Model(&models.OrsTransaction{}).
		Where("trx_id = ? AND status = ?", trxID, models.TrxPending).
		Updates(map[string]any{
			"status":      models.TrxCancelled,
			"settle_time": cancelTime,
		})
	return res.RowsAffected, res.Error
}
