package tasks

import (
	"log"
	"time"

	"seamless/database"
	"seamless/repository"
)

// PurgeExpiredPlayGames removes launch tokens past their expiry. Transaction
// records are never deleted; only session tokens are disposable.
func PurgeExpiredPlayGames() {
	rows, err := repository.DeleteExpiredPlayGames(database.DB, time.Now())
	if err != nil {
		log.Println("❌ Failed to purge expired play games:", err)
		return
	}
	if rows > 0 {
		log.Printf("✅ Purged %d expired play games\n", rows)
	}
}
