package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values loaded from
// environment variables. Static site data (apartments, seasons) lives in
// the YAML file referenced by SiteConfigPath, not here.
type Config struct {
	Env            string
	HTTPAddr       string
	SiteConfigPath string
	CacheTTL       time.Duration
	FetchTimeout   time.Duration
	RefreshCron    string
}

// Load parses configuration from the current environment. A .env file in
// the working directory is honored when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env:            getEnv("APP_ENV", "dev"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		SiteConfigPath: getEnv("SITE_CONFIG", "configs/site.yaml"),
		RefreshCron:    getEnv("AVAILABILITY_REFRESH", "*/30 * * * *"),
	}

	ttl, err := parseDurationEnv("CACHE_TTL", 30*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.CacheTTL = ttl

	fetchTimeout, err := parseDurationEnv("FETCH_TIMEOUT", 15*time.Second)
	if err != nil {
		return Config{}, err
	}
	cfg.FetchTimeout = fetchTimeout

	if cfg.SiteConfigPath == "" {
		return Config{}, fmt.Errorf("SITE_CONFIG is required")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
