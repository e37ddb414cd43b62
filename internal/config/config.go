package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Services ServicesConfig
	Game     GameConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int
	// PublicHost is the externally reachable hostname used in TwiML
	// stream URLs (e.g. an ngrok domain), without scheme.
	PublicHost string
}

// DatabaseConfig holds the SQLite case store settings
type DatabaseConfig struct {
	Path string
}

// ServicesConfig holds external service API keys
type ServicesConfig struct {
	GoogleAIAPIKey string
	// OpenAIAPIKey enables the optional realtime call transcription
	// audit when set. Empty disables it.
	OpenAIAPIKey string
}

// GameConfig holds game-master agent settings
type GameConfig struct {
	SavesDir string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	var err error
	if cfg.Services.GoogleAIAPIKey, err = requireEnv("GOOGLE_AI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Services.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")

	if cfg.Server.PublicHost, err = requireEnv("PUBLIC_HOST"); err != nil {
		return nil, err
	}

	cfg.Database.Path = getEnvWithDefault("DATABASE_PATH", "fraud_cases.db")
	cfg.Game.SavesDir = getEnvWithDefault("GAME_SAVES_DIR", ".")

	serverPort := getEnvWithDefault("SERVER_PORT", "8080")
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}

	return cfg, nil
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
