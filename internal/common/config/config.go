package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	API struct {
		BaseURL string
		Token   string
		Timeout time.Duration
	}
	Route struct {
		BaseURL string
		Profile string
		Timeout time.Duration
	}
	Feed struct {
		URL     string
		Enabled bool
	}
	Tracker struct {
		TickInterval time.Duration
		PollInterval time.Duration
	}
}

func getEnv(key, def string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.API.BaseURL = getEnv("API_BASE_URL", "http://localhost:3000")
	cfg.API.Token = getEnv("API_TOKEN", "")
	cfg.API.Timeout = time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 10)) * time.Second

	cfg.Route.BaseURL = getEnv("ROUTE_BASE_URL", "https://router.project-osrm.org")
	cfg.Route.Profile = getEnv("ROUTE_PROFILE", "driving")
	cfg.Route.Timeout = time.Duration(getEnvInt("ROUTE_TIMEOUT_SECONDS", 5)) * time.Second

	cfg.Feed.URL = getEnv("FEED_WS_URL", "")
	cfg.Feed.Enabled = getEnvBool("FEED_ENABLED", cfg.Feed.URL != "")

	cfg.Tracker.TickInterval = time.Duration(getEnvInt("TICK_INTERVAL_MS", 1000)) * time.Millisecond
	cfg.Tracker.PollInterval = time.Duration(getEnvInt("POLL_INTERVAL_SECONDS", 10)) * time.Second

	return cfg, nil
}

func (c *Config) Print() {
	fmt.Printf("🚚 API: %s (timeout %s)\n", c.API.BaseURL, c.API.Timeout)
	fmt.Printf("🗺  Route: %s profile=%s timeout=%s\n", c.Route.BaseURL, c.Route.Profile, c.Route.Timeout)
	fmt.Printf("📡 Feed: enabled=%v url=%s\n", c.Feed.Enabled, c.Feed.URL)
	fmt.Printf("⏱  Tracker: tick=%s poll=%s\n", c.Tracker.TickInterval, c.Tracker.PollInterval)
}
