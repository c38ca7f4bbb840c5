package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string
	LocalDBPath     string
	JWTSecret       string
	HTTPTimeout     time.Duration
	PollInterval    time.Duration
	PollMaxAttempts int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	return &Config{
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8000"),
		LocalDBPath:     getEnv("LOCAL_DB", "bitedash.db"),
		JWTSecret:       getEnv("JWT_SECRET", "changeme"),
		HTTPTimeout:     getDuration("HTTP_TIMEOUT", 15*time.Second),
		PollInterval:    getDuration("PAYMENT_POLL_INTERVAL", 4*time.Second),
		PollMaxAttempts: getInt("PAYMENT_POLL_MAX_ATTEMPTS", 75),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
