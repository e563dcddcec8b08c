package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	API_BASE_URL         string
	HTTP_TIMEOUT_SECONDS int
	SESSION_FILE_PATH    string
	LOG_FILE_PATH        string
	DEV_SERVER_PORT      string
	JWT_SECRET           string
	JWT_EXPIRY_HOURS     int
	DB_PATH              string
}

var DefaultEnvConfig EnvConfig

// LoadEnvConfig reads .env if present and fills DefaultEnvConfig with
// environment values, applying defaults for anything unset.
func LoadEnvConfig() error {
	// Missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	DefaultEnvConfig = EnvConfig{
		API_BASE_URL:         getEnv("API_BASE_URL", "http://localhost:8001"),
		HTTP_TIMEOUT_SECONDS: getEnvInt("HTTP_TIMEOUT_SECONDS", 15),
		SESSION_FILE_PATH:    getEnv("SESSION_FILE_PATH", defaultSessionPath()),
		LOG_FILE_PATH:        getEnv("LOG_FILE_PATH", ""),
		DEV_SERVER_PORT:      getEnv("DEV_SERVER_PORT", "8001"),
		JWT_SECRET:           getEnv("JWT_SECRET", "dev-only-secret"),
		JWT_EXPIRY_HOURS:     getEnvInt("JWT_EXPIRY_HOURS", 24),
		DB_PATH:              getEnv("DB_PATH", "taskdesk.db"),
	}
	return nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(dir, "taskdesk", "session.json")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
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
