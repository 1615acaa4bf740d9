// Package config loads the normalization engine's run configuration
// (§6 Config) from environment variables, the same .env-then-os.Getenv
// layering the rest of the corpus uses for its service configuration.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/aristath/indicator-normalize/internal/domain"
)

// Load reads a domain.Config from the environment, applying
// domain.DefaultConfig()'s values as fallbacks for anything unset.
// godotenv.Load() is attempted first and its error ignored, matching
// the upstream config loader's "no .env file is fine" behavior.
func Load() (domain.Config, error) {
	_ = godotenv.Load()

	cfg := domain.DefaultConfig()
	cfg.TargetCurrency = getEnv("NORMALIZE_TARGET_CURRENCY", cfg.TargetCurrency)
	cfg.TargetMagnitude = domain.Scale(getEnv("NORMALIZE_TARGET_MAGNITUDE", string(cfg.TargetMagnitude)))
	cfg.TargetTimeScale = domain.TimeBasis(getEnv("NORMALIZE_TARGET_TIME_SCALE", string(cfg.TargetTimeScale)))
	cfg.AutoTargetCurrency = getEnvAsBool("NORMALIZE_AUTO_TARGET_CURRENCY", cfg.AutoTargetCurrency)
	cfg.AutoTargetMagnitude = getEnvAsBool("NORMALIZE_AUTO_TARGET_MAGNITUDE", cfg.AutoTargetMagnitude)
	cfg.DominanceThreshold = getEnvAsFloat("NORMALIZE_DOMINANCE_THRESHOLD", cfg.DominanceThreshold)
	cfg.UseLiveFX = getEnvAsBool("NORMALIZE_USE_LIVE_FX", cfg.UseLiveFX)
	cfg.Explain = getEnvAsBool("NORMALIZE_EXPLAIN", cfg.Explain)
	cfg.FailFast = getEnvAsBool("NORMALIZE_FAIL_FAST", cfg.FailFast)
	cfg.StrictMode = getEnvAsBool("NORMALIZE_STRICT_MODE", cfg.StrictMode)

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
