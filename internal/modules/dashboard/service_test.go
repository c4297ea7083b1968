package dashboard

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"cryptoboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPrefsReader struct {
	prefs *domain.Preferences
}

func (s *stubPrefsReader) GetByUserID(_ context.Context, _ int64) (*domain.Preferences, error) {
	if s.prefs == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.prefs, nil
}

type stubMarketClient struct {
	coins []Crypto
	err   error
	calls atomic.Int32
}

func (s *stubMarketClient) TopCoins(_ context.Context, _ int, _ []string) ([]Crypto, error) {
	s.calls.Add(1)
	return s.coins, s.err
}

type stubNewsClient struct {
	articles []NewsArticle
	err      error
}

func (s *stubNewsClient) LatestNews(_ context.Context, _ int) ([]NewsArticle, error) {
	return s.articles, s.err
}

type stubMemeProvider struct{}

func (stubMemeProvider) TrendingMemes(_ context.Context, limit int) ([]Meme, error) {
	return []Meme{{ID: "1", Title: "meme"}}, nil
}

type stubAIClient struct {
	content string
	err     error
	called  bool
}

func (s *stubAIClient) Analyze(_ context.Context, _ *domain.Preferences, _ []Crypto) (string, error) {
	s.called = true
	return s.content, s.err
}

type memoryCache struct {
	data map[string][]Crypto
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: map[string][]Crypto{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]Crypto, error) {
	return c.data[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, coins []Crypto) error {
	c.data[key] = coins
	return nil
}

func TestGetDashboard_WithPreferences(t *testing.T) {
	prefs := &domain.Preferences{
		UserID:          1,
		ExperienceLevel: domain.ExperienceBeginner,
		RiskTolerance:   domain.RiskLow,
		FavoriteCryptos: []string{"btc", "eth"},
	}
	market := &stubMarketClient{coins: []Crypto{{Symbol: "BTC", Price: 50000}}}
	ai := &stubAIClient{content: "buy the dip, carefully"}

	svc := NewService(&stubPrefsReader{prefs: prefs}, market,
		&stubNewsClient{articles: []NewsArticle{{ID: 1, Title: "headline"}}},
		stubMemeProvider{}, ai, newMemoryCache())

	got, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, got.RequiresOnboarding)
	assert.Equal(t, "Market Overview", got.MarketOverview.Title)
	assert.Len(t, got.MarketOverview.Cryptos, 1)
	assert.Len(t, got.News.Articles, 1)
	assert.Len(t, got.Memes.Items, 1)
	assert.Equal(t, "buy the dip, carefully", got.AIAnalysis.Content)
	assert.True(t, ai.called)
}

func TestGetDashboard_NoPreferences(t *testing.T) {
	market := &stubMarketClient{coins: []Crypto{{Symbol: "BTC"}}}
	ai := &stubAIClient{content: "should not run"}

	svc := NewService(&stubPrefsReader{}, market,
		&stubNewsClient{}, stubMemeProvider{}, ai, newMemoryCache())

	got, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.True(t, got.RequiresOnboarding)
	assert.Equal(t, aiOnboardingMessage, got.AIAnalysis.Content)
	assert.False(t, ai.called)
}

func TestGetDashboard_AIFailureDegrades(t *testing.T) {
	prefs := &domain.Preferences{UserID: 1, FavoriteCryptos: []string{"btc"}}
	ai := &stubAIClient{err: errors.New("upstream down")}

	svc := NewService(&stubPrefsReader{prefs: prefs}, &stubMarketClient{},
		&stubNewsClient{}, stubMemeProvider{}, ai, newMemoryCache())

	got, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, aiUnavailableMessage, got.AIAnalysis.Content)
}

func TestGetDashboard_UpstreamFailuresDegradeToEmpty(t *testing.T) {
	svc := NewService(&stubPrefsReader{}, &stubMarketClient{err: errors.New("boom")},
		&stubNewsClient{err: errors.New("boom")}, stubMemeProvider{}, &stubAIClient{}, newMemoryCache())

	got, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	assert.Empty(t, got.MarketOverview.Cryptos)
	assert.Empty(t, got.News.Articles)
	assert.Len(t, got.Memes.Items, 1)
}

func TestGetDashboard_MarketServedFromCache(t *testing.T) {
	market := &stubMarketClient{coins: []Crypto{{Symbol: "BTC"}}}
	cache := newMemoryCache()

	svc := NewService(&stubPrefsReader{}, market, &stubNewsClient{}, stubMemeProvider{}, &stubAIClient{}, cache)

	_, err := svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)
	_, err = svc.GetDashboard(context.Background(), 1)
	require.NoError(t, err)

	// Second load hits the cache, not the upstream client.
	assert.Equal(t, int32(1), market.calls.Load())
}

func TestReorderFavoritesFirst(t *testing.T) {
	coins := []Crypto{
		{ID: "bitcoin", Symbol: "BTC"},
		{ID: "ethereum", Symbol: "ETH"},
		{ID: "solana", Symbol: "SOL"},
	}

	ordered := reorderFavoritesFirst(coins, []string{"sol", "ETH"})

	require.Len(t, ordered, 3)
	assert.Equal(t, "SOL", ordered[0].Symbol)
	assert.Equal(t, "ETH", ordered[1].Symbol)
	assert.Equal(t, "BTC", ordered[2].Symbol)
}
