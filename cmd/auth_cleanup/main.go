package main

import (
	"context"
	"log"
	"os"
	"time"

	"cryptoboard/internal/database"
	"cryptoboard/internal/repository"
)

const voteRetention = 180 * 24 * time.Hour

// Purges refresh-token state that expired without ever being presented
// again (the API only clears those lazily) and drops votes older than the
// retention window. Run from cron.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	ctx := context.Background()

	tokensCleared, err := repository.NewUserRepository(db).ClearExpiredRefreshTokens(ctx)
	if err != nil {
		log.Fatalf("cleanup refresh tokens failed: %v", err)
	}

	votesDeleted, err := repository.NewVoteRepository(db).DeleteStale(ctx, time.Now().UTC().Add(-voteRetention))
	if err != nil {
		log.Fatalf("cleanup votes failed: %v", err)
	}

	log.Printf("auth cleanup completed: refresh_tokens=%d stale_votes=%d", tokensCleared, votesDeleted)
}
