package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"cryptoboard/internal/domain"
)

// CoinGeckoClient fetches market data from the CoinGecko REST API.
type CoinGeckoClient struct {
	baseURL string
	http    *http.Client
}

func NewCoinGeckoClient(baseURL string) *CoinGeckoClient {
	return &CoinGeckoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type coinGeckoMarketCoin struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Symbol                   string  `json:"symbol"`
	CurrentPrice             float64 `json:"current_price"`
	MarketCap                float64 `json:"market_cap"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
}

func (c *CoinGeckoClient) TopCoins(ctx context.Context, limit int, favorites []string) ([]Crypto, error) {
	url := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1&sparkline=false",
		c.baseURL, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("coingecko returned status %d", resp.StatusCode)
	}

	var raw []coinGeckoMarketCoin
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	coins := make([]Crypto, 0, len(raw))
	for _, coin := range raw {
		coins = append(coins, Crypto{
			ID:        coin.ID,
			Name:      coin.Name,
			Symbol:    strings.ToUpper(coin.Symbol),
			Price:     coin.CurrentPrice,
			Change24h: coin.PriceChangePercentage24h,
			MarketCap: coin.MarketCap,
		})
	}

	return reorderFavoritesFirst(coins, favorites), nil
}

// reorderFavoritesFirst puts the user's favorites at the head of the list, in
// the order the user listed them, then appends the rest.
func reorderFavoritesFirst(coins []Crypto, favorites []string) []Crypto {
	if len(favorites) == 0 {
		return coins
	}

	seen := make(map[string]bool, len(favorites))
	ordered := make([]Crypto, 0, len(coins))

	for _, fav := range favorites {
		fav = strings.ToUpper(strings.TrimSpace(fav))
		for _, coin := range coins {
			if (coin.Symbol == fav || strings.ToUpper(coin.ID) == fav) && !seen[coin.Symbol] {
				ordered = append(ordered, coin)
				seen[coin.Symbol] = true
			}
		}
	}

	for _, coin := range coins {
		if !seen[coin.Symbol] {
			ordered = append(ordered, coin)
		}
	}

	return ordered
}

// CryptoPanicClient fetches crypto news with community sentiment votes.
type CryptoPanicClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewCryptoPanicClient(baseURL, apiKey string) *CryptoPanicClient {
	return &CryptoPanicClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type cryptoPanicPost struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	PublishedAt string `json:"published_at"`
	Source      string `json:"source"`
	Votes       struct {
		Negative int `json:"negative"`
		Positive int `json:"positive"`
	} `json:"votes"`
}

func (c *CryptoPanicClient) LatestNews(ctx context.Context, limit int) ([]NewsArticle, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("news api key is not configured")
	}

	url := fmt.Sprintf("%s/posts/?auth_token=%s&public=true&filter=hot&currencies=USD", c.baseURL, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []cryptoPanicPost `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}

	if len(payload.Results) > limit {
		payload.Results = payload.Results[:limit]
	}

	articles := make([]NewsArticle, 0, len(payload.Results))
	for _, post := range payload.Results {
		articles = append(articles, NewsArticle{
			ID:          post.ID,
			Title:       post.Title,
			URL:         post.URL,
			PublishedAt: post.PublishedAt,
			Source:      post.Source,
			Sentiment:   Sentiment{Positive: post.Votes.Positive, Negative: post.Votes.Negative},
		})
	}
	return articles, nil
}

// StaticMemeProvider serves a fixed meme set. A real meme API never made it
// past the placeholder stage upstream either.
type StaticMemeProvider struct{}

func NewStaticMemeProvider() *StaticMemeProvider {
	return &StaticMemeProvider{}
}

func (p *StaticMemeProvider) TrendingMemes(_ context.Context, limit int) ([]Meme, error) {
	memes := []Meme{
		{ID: "1", Title: "To the Moon! 🚀", URL: "https://example.com/meme1", Source: "Reddit"},
		{ID: "2", Title: "HODL Strong 💎", URL: "https://example.com/meme2", Source: "Twitter"},
	}
	if limit < len(memes) {
		memes = memes[:limit]
	}
	return memes, nil
}

// OpenRouterClient asks a chat-completion model for a short advisor blurb.
type OpenRouterClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewOpenRouterClient(baseURL, apiKey string) *OpenRouterClient {
	return &OpenRouterClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   "openai/gpt-4o-mini",
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const advisorSystemPrompt = "You are an expert cryptocurrency advisor. Provide personalized, concise, " +
	"and actionable advice based on user preferences and current market data. Keep responses under 200 words."

func (c *OpenRouterClient) Analyze(ctx context.Context, prefs *domain.Preferences, market []Crypto) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ai api key is not configured")
	}

	marketJSON, err := json.Marshal(market)
	if err != nil {
		return "", err
	}

	favorites := "(no favorites provided)"
	if len(prefs.FavoriteCryptos) > 0 {
		favorites = strings.Join(prefs.FavoriteCryptos, ", ")
	}

	userPrompt := fmt.Sprintf(
		"User preferences:\n- Experience Level: %s\n- Risk Tolerance: %s\n- Favorite Cryptocurrencies: %s\n\nMarket Data: %s\n\nProvide personalized crypto investment advice considering the above.",
		prefs.ExperienceLevel, prefs.RiskTolerance, favorites, marketJSON,
	)

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []chatMessage{
			{Role: "system", Content: advisorSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai api returned status %d", resp.StatusCode)
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if len(payload.Choices) == 0 {
		return "", fmt.Errorf("ai api returned no choices")
	}

	return payload.Choices[0].Message.Content, nil
}
