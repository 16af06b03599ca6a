package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Database. Postgres when DBHost is set, otherwise a local sqlite file.
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	SQLitePath string

	// Africa's Talking
	ATUsername string
	ATAPIKey   string
	ATSenderID string
	ATBaseURL  string

	// Gemini
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	PersonaFile   string

	// Phone normalization country code, digits only.
	CountryCode string

	// Admin guard for the manual/maintenance endpoints. Empty disables it.
	AdminJWTSecret string

	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func LoadConfig() Config {
	// .env is optional; system environment wins when absent.
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8000"),
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBHost:         getEnv("DB_HOST", ""),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBName:         getEnv("DB_NAME", "sms_learning"),
		SQLitePath:     getEnv("SQLITE_PATH", "sms_learning.db"),
		ATUsername:     getEnv("AT_USERNAME", ""),
		ATAPIKey:       getEnv("AT_API_KEY", ""),
		ATSenderID:     getEnv("AT_SENDER_ID", ""),
		ATBaseURL:      getEnv("AT_BASE_URL", "https://api.africastalking.com"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta"),
		PersonaFile:    getEnv("PERSONA_FILE", "app/services/ai/tutor.properties"),
		CountryCode:    getEnv("COUNTRY_CODE", "254"),
		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		SessionTTL:     getEnvSeconds("SESSION_LIFETIME", 3600),
		SweepInterval:  getEnvSeconds("SESSION_SWEEP_INTERVAL", 300),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func getEnvSeconds(key string, fallback int) time.Duration {
	value := os.Getenv(key)
	if value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
