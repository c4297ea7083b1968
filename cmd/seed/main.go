package main

import (
	"context"
	"log"
	"os"

	"cryptoboard/internal/database"
	"cryptoboard/internal/domain"
	"cryptoboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a demo account with preferences and a couple of votes so the
// dashboard has something to personalize right after a fresh setup.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		databaseURL = "cryptoboard.db"
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM votes")
	db.Exec("DELETE FROM preferences")
	db.Exec("DELETE FROM users")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	log.Println("Creating demo user...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	demo := &domain.User{
		Email:        "demo@cryptoboard.dev",
		PasswordHash: string(hash),
		Name:         "Demo User",
	}
	if err := userRepo.Create(ctx, demo); err != nil {
		log.Fatal("create demo user failed:", err)
	}
	log.Println("Demo user created: demo@cryptoboard.dev / demo123")

	prefs := &domain.Preferences{
		UserID:          demo.ID,
		ExperienceLevel: domain.ExperienceIntermediate,
		RiskTolerance:   domain.RiskModerate,
		InvestmentGoals: []string{"long_term_growth", "diversification"},
		FavoriteCryptos: []string{"BTC", "ETH", "SOL"},
		ContentTypes:    []string{"news", "memes"},
	}
	if err := prefsRepo.Upsert(ctx, prefs); err != nil {
		log.Fatal("seed preferences failed:", err)
	}

	votes := []*domain.Vote{
		{UserID: demo.ID, ContentID: "news-1", Vote: domain.VoteUp},
		{UserID: demo.ID, ContentID: "meme-1", Vote: domain.VoteDown},
	}
	for _, v := range votes {
		if err := voteRepo.Upsert(ctx, v); err != nil {
			log.Fatal("seed vote failed:", err)
		}
	}

	log.Println("Seed completed.")
}
