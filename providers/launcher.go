package providers

import (
	"strings"
	"time"

	"seamless/database"
	"seamless/models"
	"seamless/repository"
)

type LaunchRequest struct {
	PlayID       string `json:"play_id"`
	Username     string `json:"username"`
	ProviderCode string `json:"provider_code"`
	GameCode     string `json:"game_code"`
	Lang         string `json:"lang"`
	Platform     string `json:"platform"`
	Currency     string `json:"currency"`
	IP           string `json:"ip"`
}

type GameProviderLauncher interface {
	StartGame(req LaunchRequest) (string, error)
}

var GameLaunchers = map[string]GameProviderLauncher{}

func RegisterProvider(name string, launcher GameProviderLauncher) {
	GameLaunchers[strings.ToLower(name)] = launcher
}

func GetProvider(name string) GameProviderLauncher {
	return GameLaunchers[strings.ToLower(name)]
}

// PrepareSession upserts the player (idempotent on play_id) and issues the
// session token the vendor echoes back on authenticate/balance calls.
func PrepareSession(req LaunchRequest, ttl time.Duration) (*models.PlayGame, error) {
	player := models.Player{
		PlayID:   req.PlayID,
		Username: req.Username,
		Currency: strings.ToUpper(req.Currency),
		IsActive: true,
	}
	if err := repository.UpsertPlayer(database.DB, &player); err != nil {
		return nil, err
	}

	pg := models.PlayGame{
		PlayID:    req.PlayID,
		GameCode:  req.GameCode,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := repository.CreatePlayGame(database.DB, &pg); err != nil {
		return nil, err
	}
	return &pg, nil
}
