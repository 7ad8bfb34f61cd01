package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs, read from the environment.
type Config struct {
	Port        string
	LogLevel    slog.Level
	CORSOrigins []string

	// Summarizer
	Provider string
	APIKey   string `json:"-"`
	Model    string

	// Store
	Backend       string
	MongoURI      string `json:"-"`
	MongoDatabase string
	RedisURL      string `json:"-"`
	SQLitePath    string

	ScrapeTimeout time.Duration

	// Optional S3 mirror; disabled when S3Bucket is empty
	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool

	// Optional Kafka events; disabled when KafkaBrokers is empty
	KafkaBrokers []string
	KafkaTopic   string
}

// Load reads configuration from environment variables and a .env file if present.
func Load() (*Config, error) {
	// non-fatal if missing
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnvOrDefault("PORT", DefaultPort),
		LogLevel:       parseLevel(os.Getenv("LOG_LEVEL")),
		CORSOrigins:    parseStringSlice(getEnvOrDefault("CORS_ORIGINS", "*")),
		Provider:       strings.ToLower(getEnvOrDefault("SUMMARIZER_PROVIDER", DefaultProvider)),
		Model:          strings.TrimSpace(os.Getenv("SUMMARIZER_MODEL")),
		Backend:        strings.ToLower(getEnvOrDefault("STORE_BACKEND", DefaultBackend)),
		MongoURI:       strings.TrimSpace(os.Getenv("MONGODB_URI")),
		MongoDatabase:  getEnvOrDefault("MONGODB_DATABASE", DefaultDatabase),
		RedisURL:       strings.TrimSpace(os.Getenv("REDIS_URL")),
		SQLitePath:     getEnvOrDefault("SQLITE_PATH", DefaultSQLitePath),
		ScrapeTimeout:  getEnvOrDefaultDuration("SCRAPE_TIMEOUT", DefaultScrapeTimeout),
		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
		KafkaBrokers:   parseStringSlice(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:     getEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}
	cfg.APIKey = strings.TrimSpace(os.Getenv(apiKeyEnv(cfg.Provider)))

	return cfg, cfg.validate()
}

// apiKeyEnv names the environment variable holding the key for a provider.
func apiKeyEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderCohere:
		return "COHERE_API_KEY"
	default:
		return "GROQ_API_KEY"
	}
}

// validate checks if required configuration values are present
func (c *Config) validate() error {
	switch c.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderAnthropic, ProviderCohere:
	default:
		return &ConfigError{Field: "SUMMARIZER_PROVIDER", Message: "unknown provider " + c.Provider}
	}
	if c.APIKey == "" {
		return &ConfigError{Field: apiKeyEnv(c.Provider), Message: "summarizer API key is required"}
	}

	switch c.Backend {
	case BackendMongo:
		if c.MongoURI == "" {
			return &ConfigError{Field: "MONGODB_URI", Message: "MongoDB connection string is required"}
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return &ConfigError{Field: "REDIS_URL", Message: "Redis connection string is required"}
		}
	case BackendMemory, BackendSQLite:
	default:
		return &ConfigError{Field: "STORE_BACKEND", Message: "unknown backend " + c.Backend}
	}
	return nil
}

// ArchiveEnabled reports whether summaries are mirrored to S3.
func (c *Config) ArchiveEnabled() bool { return c.S3Bucket != "" }

// EventsEnabled reports whether article events are published to Kafka.
func (c *Config) EventsEnabled() bool { return len(c.KafkaBrokers) > 0 }

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvOrDefaultDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// parseStringSlice parses comma-separated string into slice
func parseStringSlice(value string) []string {
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
