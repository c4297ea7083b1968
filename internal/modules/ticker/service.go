package ticker

import (
	"context"
	"log"
	"time"

	"cryptoboard/internal/modules/dashboard"
)

const snapshotLimit = 10

// Snapshot is one broadcast frame.
type Snapshot struct {
	Type    string             `json:"type"`
	At      time.Time          `json:"at"`
	Cryptos []dashboard.Crypto `json:"cryptos"`
}

// Service periodically pulls market data and pushes it to every connected
// websocket client.
type Service struct {
	hub      *Hub
	market   dashboard.MarketClient
	interval time.Duration
}

func NewService(hub *Hub, market dashboard.MarketClient, interval time.Duration) *Service {
	return &Service{
		hub:      hub,
		market:   market,
		interval: interval,
	}
}

// Run blocks until ctx is cancelled. Intended to be started as a goroutine
// from main.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.hub.Close()
			return
		case <-ticker.C:
			s.broadcastSnapshot(ctx)
		}
	}
}

func (s *Service) broadcastSnapshot(ctx context.Context) {
	if s.hub.OnlineCount() == 0 {
		return
	}

	coins, err := s.market.TopCoins(ctx, snapshotLimit, nil)
	if err != nil {
		log.Printf("ticker: market fetch failed: %v", err)
		return
	}

	s.hub.Broadcast(Snapshot{
		Type:    "ticker",
		At:      time.Now().UTC(),
		Cryptos: coins,
	})
}
