package dashboard

// Crypto is one row of the market-overview section.
type Crypto struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	MarketCap float64 `json:"market_cap"`
}

type Sentiment struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

type NewsArticle struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	PublishedAt string    `json:"published_at"`
	Source      string    `json:"source"`
	Sentiment   Sentiment `json:"sentiment"`
}

type Meme struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

type MarketSection struct {
	Title   string   `json:"title"`
	Cryptos []Crypto `json:"cryptos"`
}

type NewsSection struct {
	Title    string        `json:"title"`
	Articles []NewsArticle `json:"articles"`
}

type AISection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type MemesSection struct {
	Title string `json:"title"`
	Items []Meme `json:"items"`
}

type DashboardResponse struct {
	RequiresOnboarding bool          `json:"requires_onboarding"`
	MarketOverview     MarketSection `json:"market_overview"`
	News               NewsSection   `json:"news"`
	AIAnalysis         AISection     `json:"ai_analysis"`
	Memes              MemesSection  `json:"memes"`
}
