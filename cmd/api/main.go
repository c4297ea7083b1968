package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"cryptoboard/internal/config"
	"cryptoboard/internal/database"
	"cryptoboard/internal/middleware"
	"cryptoboard/internal/modules/auth"
	"cryptoboard/internal/modules/dashboard"
	"cryptoboard/internal/modules/health"
	"cryptoboard/internal/modules/preferences"
	"cryptoboard/internal/modules/ticker"
	"cryptoboard/internal/modules/voting"
	"cryptoboard/internal/pkg/token"
	"cryptoboard/internal/repository"
)

const tickerInterval = 30 * time.Second

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatalf("db migrate failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	userRepo := repository.NewUserRepository(db)
	prefsRepo := repository.NewPreferencesRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	tokens := token.New(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)

	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService, cfg.CookieSecure, cfg.CookieSameSite, cfg.CookiePath)

	prefsService := preferences.NewService(prefsRepo)
	prefsHandler := preferences.NewHandler(prefsService)

	votingService := voting.NewService(voteRepo)
	votingHandler := voting.NewHandler(votingService)

	marketClient := dashboard.NewCoinGeckoClient(cfg.CoinAPIBaseURL)
	newsClient := dashboard.NewCryptoPanicClient(cfg.NewsAPIBaseURL, cfg.NewsAPIKey)
	memeProvider := dashboard.NewStaticMemeProvider()
	aiClient := dashboard.NewOpenRouterClient(cfg.AIBaseURL, cfg.AIAPIKey)
	marketCache := dashboard.NewRedisMarketCache(rdb, cfg.DashboardTTL)

	dashboardService := dashboard.NewService(prefsRepo, marketClient, newsClient, memeProvider, aiClient, marketCache)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	hub := ticker.NewHub()
	tickerService := ticker.NewService(hub, marketClient, tickerInterval)
	tickerHandler := ticker.NewHandler(hub, tokens)

	healthHandler := health.NewHandler()

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.ErrorLogger())

	healthHandler.RegisterRoutes(r)
	tickerHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(tokens, userRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			prefsHandler.RegisterProtectedRoutes(protected)
			votingHandler.RegisterProtectedRoutes(protected)
			dashboardHandler.RegisterProtectedRoutes(protected)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go tickerService.Run(ctx)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	if err := rdb.Close(); err != nil {
		log.Printf("redis close: %v", err)
	}
}
