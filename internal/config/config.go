package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort  string
	LogLevel string

	ASIBaseURL string
	ASIAPIKey  string
	ASIModel   string

	GeminiAPIKey     string
	GeminiEmbedModel string

	SerpAPIBaseURL          string
	SerpAPIKey              string
	SerpAPIAmazonDomain     string
	SerpAPILanguage         string
	SerpAPIShippingLocation string

	SearchProjectTopK int
	SearchRankTopM    int

	BreakerEnabled      bool
	BreakerMinRequests  int
	BreakerFailureRatio float64
}

func Load() Config {
	// Best-effort: a missing .env simply means config comes from the
	// process environment.
	_ = godotenv.Load()

	return Config{
		APIPort:  mustEnv("API_PORT", "9000"),
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		ASIBaseURL: mustEnv("ASI_BASE_URL", "https://api.asi1.ai"),
		ASIAPIKey:  mustEnv("ASI_API_KEY", ""),
		ASIModel:   mustEnv("ASI_MODEL", "asi1-mini"),

		GeminiAPIKey:     mustEnv("GEMINI_API_KEY", ""),
		GeminiEmbedModel: mustEnv("GEMINI_EMBED_MODEL", "gemini-embedding-001"),

		SerpAPIBaseURL:          mustEnv("SERPAPI_BASE_URL", "https://serpapi.com"),
		SerpAPIKey:              mustEnv("SERPAPI_KEY", ""),
		SerpAPIAmazonDomain:     mustEnv("SERPAPI_AMAZON_DOMAIN", "amazon.in"),
		SerpAPILanguage:         mustEnv("SERPAPI_LANGUAGE", "amazon.in|en_IN"),
		SerpAPIShippingLocation: mustEnv("SERPAPI_SHIPPING_LOCATION", "IN"),

		SearchProjectTopK: mustEnvInt("SEARCH_PROJECT_TOP_K", 48),
		SearchRankTopM:    mustEnvInt("SEARCH_RANK_TOP_M", 10),

		BreakerEnabled:      mustEnvBool("BREAKER_ENABLED", true),
		BreakerMinRequests:  mustEnvInt("BREAKER_MIN_REQUESTS", 10),
		BreakerFailureRatio: mustEnvFloat("BREAKER_FAILURE_RATIO", 0.5),
	}
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
