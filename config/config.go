package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	Port string
	Host string

	// Upstream FX API
	FxAPIURL         string
	FxAPIKey         string
	FxLiveTTL        time.Duration
	FxHistoricalTTL  time.Duration
	FxDefaultSource  string
	FxDefaultSymbols string

	// Mock dataset collaborator
	DatasetSeed     int64
	SaveFailureRate float64
	LatencyMin      time.Duration
	LatencyMax      time.Duration
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Host: getEnv("HOST", "0.0.0.0"),

		FxAPIURL:         getEnv("FX_API_URL", "https://api.exchangerate.host"),
		FxAPIKey:         getEnv("FX_API_KEY", ""),
		FxLiveTTL:        getEnvDuration("FX_LIVE_TTL", time.Hour),
		FxHistoricalTTL:  getEnvDuration("FX_HISTORICAL_TTL", 24*time.Hour),
		FxDefaultSource:  getEnv("FX_DEFAULT_SOURCE", "USD"),
		FxDefaultSymbols: getEnv("FX_DEFAULT_SYMBOLS", "USD,KRW"),

		DatasetSeed:     getEnvInt64("DATASET_SEED", 1),
		SaveFailureRate: getEnvFloat("SAVE_FAILURE_RATE", 0.15),
		LatencyMin:      getEnvDuration("MOCK_LATENCY_MIN", 200*time.Millisecond),
		LatencyMax:      getEnvDuration("MOCK_LATENCY_MAX", 800*time.Millisecond),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}
