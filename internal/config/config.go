package config

import (
	"fmt"
	"os"

	"github.com/j03-dev/ankamantatra-bot/internal/database"
)

// Config is everything the process reads from the environment.
type Config struct {
	Port string
	DB   database.Config

	// RedisAddr is optional; when empty, pending actions stay in memory.
	RedisAddr string

	VerifyToken     string
	PageAccessToken string
	AppSecret       string

	// GeminiAPIKey is the one required secret (env API_KEY).
	GeminiAPIKey string

	PayloadSecret string
	DataPath      string
}

// Load reads the environment. A missing API_KEY is a startup error, not a
// per-request one.
func Load() (Config, error) {
	apiKey := os.Getenv("API_KEY")
	if apiKey == "" {
		return Config{}, fmt.Errorf("API_KEY is required")
	}

	return Config{
		Port: getEnv("PORT", "8080"),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ankamantatra"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		VerifyToken:     getEnv("VERIFY_TOKEN", "ankamantatra"),
		PageAccessToken: os.Getenv("PAGE_ACCESS_TOKEN"),
		AppSecret:       os.Getenv("APP_SECRET"),
		GeminiAPIKey:    apiKey,
		PayloadSecret:   getEnv("PAYLOAD_SECRET", "a-very-secret-key"),
		DataPath:        getEnv("DATA_PATH", "data.json"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
