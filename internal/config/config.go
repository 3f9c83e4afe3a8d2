package config

import (
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/mithunb9/RealRisk/internal/risk"
)

// Config holds all configuration for the application.
type Config struct {
	AppEnv   string
	HTTPPort int

	RedisAddr     string
	DBDriver      string
	DBPath        string
	CrimeDataPath string

	CensusAPIKey string
	YelpAPIKey   string
	OpenAIAPIKey string
	OpenAIModel  string
	SerperAPIKey string

	FactCacheTTL        time.Duration
	CollaboratorTimeout time.Duration
	RequestTimeout      time.Duration

	CompetitorPolicy risk.CompetitorPolicy
	ClampScores      bool
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() *Config {
	policy := risk.DefaultCompetitorPolicy()
	if s := getEnv("COMPETITOR_STRATEGY", ""); s != "" {
		policy.Strategy = risk.CompetitorStrategy(s)
	}
	policy.NoCompetitorScore = getEnvInt("NO_COMPETITOR_SCORE", policy.NoCompetitorScore)
	policy.FixedScore = getEnvInt("FIXED_COMPETITOR_SCORE", policy.FixedScore)

	return &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		HTTPPort: getEnvInt("HTTP_PORT", 6969),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite3"),
		DBPath:        getEnv("DB_PATH", "./data/crime.db"),
		CrimeDataPath: getEnv("CRIME_DATA_PATH", "./data/crime.csv"),

		CensusAPIKey: os.Getenv("CENSUS_API_KEY"),
		YelpAPIKey:   os.Getenv("YELP_API_KEY"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  os.Getenv("OPENAI_MODEL"),
		SerperAPIKey: os.Getenv("SERPER_API_KEY"),

		// Census facts change slowly; by default entries never expire.
		FactCacheTTL:        getEnvDuration("FACT_CACHE_TTL", 0),
		CollaboratorTimeout: getEnvDuration("COLLABORATOR_TIMEOUT", 15*time.Second),
		RequestTimeout:      getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),

		CompetitorPolicy: policy,
		ClampScores:      getEnvBool("CLAMP_SCORES", true),
	}
}

// NewLogger creates a new Zap logger based on the config.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	if cfg.AppEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}
