package jobs

import (
	"time"

	tasks "seamless/task"
)

func StartSessionSweeper() {
	ticker := time.NewTicker(10 * time.Minute)
	go func() {
		for {
			<-ticker.C
			tasks.PurgeExpiredPlayGames()
		}
	}()
}
