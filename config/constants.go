package config

import "time"

// Server Constants
const (
	// DefaultPort is used when PORT is not set
	DefaultPort = "8080"

	// ReadTimeout bounds reading a request; create requests are small
	ReadTimeout = 15 * time.Second

	// WriteTimeout must cover scrape + summarize + store for one article
	WriteTimeout = 3 * time.Minute

	// ShutdownTimeout is how long in-flight requests get on SIGTERM
	ShutdownTimeout = 30 * time.Second
)

// Scraper Constants
const (
	// DefaultScrapeTimeout is the HTTP client timeout for fetching an article
	DefaultScrapeTimeout = 30 * time.Second

	// MaxArticleWords caps the text sent to the summarizer
	MaxArticleWords = 2900
)

// Summarizer Constants
const (
	ProviderGroq      = "groq"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderCohere    = "cohere"

	DefaultProvider = ProviderGroq

	// SummaryTemperature keeps summaries factual
	SummaryTemperature = 0.3

	// SummaryTopP is passed through unchanged
	SummaryTopP = 1.0

	// SummaryMaxTokens is twice the upper word target of the prompt
	SummaryMaxTokens = 1600
)

// Store Constants
const (
	BackendMongo  = "mongo"
	BackendRedis  = "redis"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"

	DefaultBackend = BackendMongo

	// DefaultDatabase and ArticlesCollection name the MongoDB location
	DefaultDatabase    = "news_article"
	ArticlesCollection = "articles"

	// DefaultSQLitePath is relative to the working directory
	DefaultSQLitePath = "newsbrief.db"

	// RedisKeyPrefix namespaces every key the redis backend writes
	RedisKeyPrefix = "newsbrief:"
)

// Event Constants
const (
	DefaultKafkaTopic = "newsbrief.articles"
)
