package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Authentication
	JWTSecret        string
	JWTIssuer        string
	JWTSigningMethod string

	// Event store. EventStoreDSN selects the backend:
	//   ""               -> in-memory (local development)
	//   postgres://...   -> PostgreSQL
	//   dynamodb://table -> DynamoDB
	EventStoreDSN string
	AWSRegion     string

	// Embedding service
	EmbeddingURL       string
	EmbeddingModel     string
	EmbeddingDimension int

	// Vector index
	IndexURL        string
	IndexCollection string
	IndexAPIKey     string

	// Pipeline defaults
	HistoryLimit int
	TopK         int

	// External call timeouts
	StoreTimeout time.Duration
	EmbedTimeout time.Duration
	IndexTimeout time.Duration

	// HTTP surface
	LogLevel           string
	EnableCORS         bool
	AllowedOrigins     string
	RateLimitPerMinute int
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", ""),
		JWTSigningMethod: getEnv("JWT_SIGNING_METHOD", "HS256"),

		EventStoreDSN: getEnv("EVENT_STORE_DSN", ""),
		AWSRegion:     getEnv("AWS_REGION", "us-west-2"),

		EmbeddingURL:       getEnv("EMBEDDING_URL", "http://localhost:11434"),
		EmbeddingModel:     getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		EmbeddingDimension: getEnvInt("EMBEDDING_DIMENSION", 768),

		IndexURL:        getEnv("INDEX_URL", "http://localhost:6333"),
		IndexCollection: getEnv("INDEX_COLLECTION", "products"),
		IndexAPIKey:     getEnv("INDEX_API_KEY", ""),

		HistoryLimit: getEnvInt("HISTORY_LIMIT", 10),
		TopK:         getEnvInt("TOP_K", 5),

		StoreTimeout: getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		EmbedTimeout: getEnvDuration("EMBED_TIMEOUT", 15*time.Second),
		IndexTimeout: getEnvDuration("INDEX_TIMEOUT", 10*time.Second),

		LogLevel:           getEnv("LOG_LEVEL", "info"),
		EnableCORS:         getEnvBool("ENABLE_CORS", true),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.Environment == "production" && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("HISTORY_LIMIT must be positive, got %d", c.HistoryLimit)
	}
	if c.TopK < 1 {
		return fmt.Errorf("TOP_K must be positive, got %d", c.TopK)
	}
	if c.EmbeddingDimension < 1 {
		return fmt.Errorf("EMBEDDING_DIMENSION must be positive, got %d", c.EmbeddingDimension)
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
