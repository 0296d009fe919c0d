// Package config reads the tracker's configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultBazaarAPIURL = "https://api.hypixel.net/v2/skyblock/bazaar"

// Config holds everything the daemon and the console read from the
// environment.
type Config struct {
	HypixelAPIKey string
	BazaarAPIURL  string
	DataDir       string
	Port          string
	CycleInterval time.Duration
	CORSOrigins   []string
	DashboardDir  string
}

// Load reads .env when present, then the process environment. Missing
// values fall back to defaults; only the Hypixel API key is allowed to stay
// empty (player lookups will refuse to run without it).
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	cfg := Config{
		HypixelAPIKey: os.Getenv("HYPIXEL_API_KEY"),
		BazaarAPIURL:  getEnv("BAZAAR_API_URL", defaultBazaarAPIURL),
		DataDir:       getEnv("DATA_DIR", "./data"),
		Port:          getEnv("PORT", "8080"),
		CycleInterval: time.Hour,
		DashboardDir:  os.Getenv("DASHBOARD_DIST_PATH"),
	}

	if v := os.Getenv("CYCLE_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.CycleInterval = d
		} else {
			log.Printf("Invalid CYCLE_INTERVAL %q, keeping %v", v, cfg.CycleInterval)
		}
	}

	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		cfg.CORSOrigins = strings.Split(v, ",")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
