package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds client settings, read from the environment with an
// optional .env file.
type Config struct {
	APIBaseURL  string
	HTTPTimeout time.Duration
	StateDBPath string // empty means the default XDG location
	Debug       bool
}

// Load reads the configuration. A missing .env file is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		APIBaseURL:  getEnv("TASKDECK_API_URL", "http://localhost:5000"),
		HTTPTimeout: time.Duration(getEnvAsInt("TASKDECK_HTTP_TIMEOUT_SECONDS", 15)) * time.Second,
		StateDBPath: getEnv("TASKDECK_STATE_DB", ""),
		Debug:       getEnvAsBool("TASKDECK_DEBUG", false),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
