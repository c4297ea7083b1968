package dashboard

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"gorm.io/gorm"
)

const (
	marketLimit = 10
	newsLimit   = 10
	memesLimit  = 5

	aiUnavailableMessage = "AI analysis temporarily unavailable."
	aiOnboardingMessage  = "Complete onboarding to unlock personalized AI insights."
)

// defaultFavorites is used until the user completes onboarding.
var defaultFavorites = []string{"BTC", "ETH", "SOL", "ADA", "XRP"}

// Service assembles the four dashboard sections. Upstream failures degrade
// their own section to empty instead of failing the whole dashboard.
type Service struct {
	prefs  PreferencesReader
	market MarketClient
	news   NewsClient
	memes  MemeProvider
	ai     AIClient
	cache  MarketCache
}

func NewService(prefs PreferencesReader, market MarketClient, news NewsClient, memes MemeProvider, ai AIClient, cache MarketCache) *Service {
	return &Service{
		prefs:  prefs,
		market: market,
		news:   news,
		memes:  memes,
		ai:     ai,
		cache:  cache,
	}
}

func (s *Service) GetDashboard(ctx context.Context, userID int64) (*DashboardResponse, error) {
	prefs, err := s.prefs.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	favorites := defaultFavorites
	if prefs != nil && len(prefs.FavoriteCryptos) > 0 {
		favorites = make([]string, 0, len(prefs.FavoriteCryptos))
		for _, fav := range prefs.FavoriteCryptos {
			favorites = append(favorites, strings.ToUpper(fav))
		}
	}

	var (
		wg       sync.WaitGroup
		coins    []Crypto
		articles []NewsArticle
		memes    []Meme
	)

	wg.Add(3)

	go func() {
		defer wg.Done()
		coins = s.fetchMarket(ctx, favorites)
	}()

	go func() {
		defer wg.Done()
		var newsErr error
		articles, newsErr = s.news.LatestNews(ctx, newsLimit)
		if newsErr != nil {
			log.Printf("dashboard: news fetch failed: %v", newsErr)
			articles = []NewsArticle{}
		}
	}()

	go func() {
		defer wg.Done()
		var memesErr error
		memes, memesErr = s.memes.TrendingMemes(ctx, memesLimit)
		if memesErr != nil {
			log.Printf("dashboard: memes fetch failed: %v", memesErr)
			memes = []Meme{}
		}
	}()

	wg.Wait()

	// AI runs after the fan-out: the prompt includes the market data.
	aiContent := aiOnboardingMessage
	if prefs != nil {
		content, aiErr := s.ai.Analyze(ctx, prefs, coins)
		if aiErr != nil {
			log.Printf("dashboard: ai analysis failed: %v", aiErr)
			aiContent = aiUnavailableMessage
		} else {
			aiContent = content
		}
	}

	return &DashboardResponse{
		RequiresOnboarding: prefs == nil,
		MarketOverview:     MarketSection{Title: "Market Overview", Cryptos: coins},
		News:               NewsSection{Title: "Latest News", Articles: articles},
		AIAnalysis:         AISection{Title: "AI Advisor", Content: aiContent},
		Memes:              MemesSection{Title: "Trending Memes", Items: memes},
	}, nil
}

// fetchMarket serves from the Redis cache when possible and refills it on a
// miss. Cache errors are treated as misses.
func (s *Service) fetchMarket(ctx context.Context, favorites []string) []Crypto {
	key := strings.Join(favorites, ",")

	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Printf("dashboard: market cache read failed: %v", err)
	}
	if cached != nil {
		return cached
	}

	coins, err := s.market.TopCoins(ctx, marketLimit, favorites)
	if err != nil {
		log.Printf("dashboard: market fetch failed: %v", err)
		return []Crypto{}
	}

	if err := s.cache.Set(ctx, key, coins); err != nil {
		log.Printf("dashboard: market cache write failed: %v", err)
	}

	return coins
}
