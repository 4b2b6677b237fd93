package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	HTTPPort        string
	TokenExpiration time.Duration
	GeminiAPIKey    string
	GeminiModel     string
	MaxUploadBytes  int64
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	port := getEnv("HTTP_PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "default-super-secret-key") // CHANGE THIS IN PRODUCTION!
	dbURL := getEnv("DATABASE_URL", "")                           // No default, should fail if not set
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	tokenExpStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	tokenExpHours, err := strconv.Atoi(tokenExpStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRATION_HOURS '%s', using default 24h. Error: %v", tokenExpStr, err)
		tokenExpHours = 24
	}

	geminiKey := getEnv("GEMINI_API_KEY", "")
	if geminiKey == "" {
		log.Fatal("FATAL: GEMINI_API_KEY environment variable is not set.")
	}
	geminiModel := getEnv("GEMINI_MODEL", "gemini-1.5-flash-latest")

	maxUploadMBStr := getEnv("MAX_UPLOAD_MB", "50")
	maxUploadMB, err := strconv.Atoi(maxUploadMBStr)
	if err != nil || maxUploadMB <= 0 {
		log.Printf("Warning: Invalid MAX_UPLOAD_MB '%s', using default 50.", maxUploadMBStr)
		maxUploadMB = 50
	}

	cfg := &Config{
		HTTPPort:        port,
		JWTSecret:       jwtSecret,
		DatabaseURL:     dbURL,
		TokenExpiration: time.Hour * time.Duration(tokenExpHours),
		GeminiAPIKey:    geminiKey,
		GeminiModel:     geminiModel,
		MaxUploadBytes:  int64(maxUploadMB) << 20,
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, GeminiModel=%s, MaxUpload=%dMB", cfg.HTTPPort, cfg.TokenExpiration, cfg.GeminiModel, maxUploadMB)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	log.Printf("Env variable %s not set, using default: %s", key, fallback)
	return fallback
}
