// File: internal/config/config.go
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	Environment  string
	JWTSecretKey string
	// DBDriver selects the gorm driver: "sqlite" (default) or "postgres".
	DBDriver string
	// DBDSN is the sqlite file path or the postgres connection string.
	DBDSN string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		Environment:  env,
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:        getEnv("DB_DSN", "chat.db"),
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.DBDSN == "" {
			missing = append(missing, "DB_DSN")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		log.Fatalf("Unsupported DB_DRIVER %q: must be sqlite or postgres", cfg.DBDriver)
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
