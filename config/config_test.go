package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "HOST", "FX_API_URL", "FX_API_KEY", "FX_LIVE_TTL",
		"FX_HISTORICAL_TTL", "FX_DEFAULT_SOURCE", "FX_DEFAULT_SYMBOLS",
		"DATASET_SEED", "SAVE_FAILURE_RATE", "MOCK_LATENCY_MIN", "MOCK_LATENCY_MAX",
	} {
		os.Unsetenv(key)
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Expected port 8080, got %s", cfg.Port)
	}
	if cfg.Host != "0.0.0.0" {
		t.Errorf("Expected host 0.0.0.0, got %s", cfg.Host)
	}
	if cfg.FxAPIURL != "https://api.exchangerate.host" {
		t.Errorf("Unexpected FX API URL %s", cfg.FxAPIURL)
	}
	if cfg.FxLiveTTL != time.Hour {
		t.Errorf("Expected live TTL 1h, got %v", cfg.FxLiveTTL)
	}
	if cfg.FxHistoricalTTL != 24*time.Hour {
		t.Errorf("Expected historical TTL 24h, got %v", cfg.FxHistoricalTTL)
	}
	if cfg.FxDefaultSource != "USD" {
		t.Errorf("Expected default source USD, got %s", cfg.FxDefaultSource)
	}
	if cfg.DatasetSeed != 1 {
		t.Errorf("Expected seed 1, got %d", cfg.DatasetSeed)
	}
	if cfg.SaveFailureRate != 0.15 {
		t.Errorf("Expected failure rate 0.15, got %v", cfg.SaveFailureRate)
	}
	if cfg.LatencyMin != 200*time.Millisecond || cfg.LatencyMax != 800*time.Millisecond {
		t.Errorf("Unexpected latency window %v..%v", cfg.LatencyMin, cfg.LatencyMax)
	}
}

func TestLoadOverrides(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
		check func(cfg *Config) bool
	}{
		{
			name:  "Port override",
			key:   "PORT",
			value: "9090",
			check: func(cfg *Config) bool { return cfg.Port == "9090" },
		},
		{
			name:  "TTL override",
			key:   "FX_LIVE_TTL",
			value: "30m",
			check: func(cfg *Config) bool { return cfg.FxLiveTTL == 30*time.Minute },
		},
		{
			name:  "Invalid TTL falls back to default",
			key:   "FX_LIVE_TTL",
			value: "soon",
			check: func(cfg *Config) bool { return cfg.FxLiveTTL == time.Hour },
		},
		{
			name:  "Failure rate zero allowed",
			key:   "SAVE_FAILURE_RATE",
			value: "0",
			check: func(cfg *Config) bool { return cfg.SaveFailureRate == 0 },
		},
		{
			name:  "Negative failure rate falls back",
			key:   "SAVE_FAILURE_RATE",
			value: "-1",
			check: func(cfg *Config) bool { return cfg.SaveFailureRate == 0.15 },
		},
		{
			name:  "Seed override",
			key:   "DATASET_SEED",
			value: "42",
			check: func(cfg *Config) bool { return cfg.DatasetSeed == 42 },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			os.Setenv(tc.key, tc.value)
			defer os.Unsetenv(tc.key)

			if !tc.check(Load()) {
				t.Errorf("Override %s=%s not applied as expected", tc.key, tc.value)
			}
		})
	}
}
