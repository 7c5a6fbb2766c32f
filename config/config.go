package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string

	APIPort        string
	AdminAPISecret string

	// SeedDemo populates a demo experiment on startup when set to "true"
	SeedDemo string
)

// LoadConfig loads environment variables from a .env file if present and
// populates the package-level configuration values
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	PostgresHost = getEnv("POSTGRES_HOST", "localhost")
	PostgresPort = getEnv("POSTGRES_PORT", "5432")
	PostgresUser = getEnv("POSTGRES_USER", "postgres")
	PostgresPassword = getEnv("POSTGRES_PASSWORD", "postgres")
	PostgresDB = getEnv("POSTGRES_DB", "chessexp")

	RedisAddr = os.Getenv("REDIS_ADDR")
	RedisPassword = os.Getenv("REDIS_PASSWORD")

	APIPort = getEnv("API_PORT", "8080")
	AdminAPISecret = getEnv("ADMIN_API_SECRET", "change-me")

	SeedDemo = os.Getenv("SEED_DEMO")
}

func getEnv(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
