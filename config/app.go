package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName         string
	Env             string
	Debug           bool
	ScryfallBaseURL string
	RequestTimeout  time.Duration
	MaxRetries      int
	RatePerSec      float64
	RootCategoryID  uint
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName:         os.Getenv("APP_NAME"),
			Env:             os.Getenv("APP_ENV"),
			Debug:           os.Getenv("DEBUG") == "true",
			ScryfallBaseURL: envString("SCRYFALL_BASE_URL", "https://api.scryfall.com"),
			RequestTimeout:  envDuration("SCRYFALL_TIMEOUT", 30*time.Second),
			MaxRetries:      envInt("SCRYFALL_RETRIES", 3),
			RatePerSec:      envFloat("SCRYFALL_RATE", 10),
			RootCategoryID:  uint(envInt("ROOT_CATEGORY_ID", 2)),
		}
	})
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
