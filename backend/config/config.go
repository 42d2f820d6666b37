package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string

	// Gemini credentials. GameAPIKeys holds the numbered
	// GEMINI_GAME_API_KEY_1..20 entries in order.
	GeminiAPIKey     string
	GeminiGameAPIKey string
	GameAPIKeys      []string
	GeminiModel      string

	MistralAPIKey string
	MistralModel  string

	ActivityRetentionDays int
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "medicgrow"),
		JWTSecret:  getEnv("JWT_SECRET", "secret"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiGameAPIKey: getEnv("GEMINI_GAME_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-flash-latest"),

		MistralAPIKey: getEnv("MISTRAL_API_KEY", ""),
		MistralModel:  getEnv("MISTRAL_MODEL", "mistral-small-latest"),

		ActivityRetentionDays: getEnvInt("ACTIVITY_RETENTION_DAYS", 180),
	}

	for i := 1; i <= 20; i++ {
		if key := os.Getenv(fmt.Sprintf("GEMINI_GAME_API_KEY_%d", i)); key != "" {
			cfg.GameAPIKeys = append(cfg.GameAPIKeys, key)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
