package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	StaticFilesPath string

	// Database (sqlite by default, postgres/mysql via DATABASE_TYPE + DATABASE_URL)
	DatabaseType   string
	DatabasePath   string
	DatabaseURL    string
	MigrationsPath string

	// Upstream word catalog / AI service
	WordsAPIBaseURL string
	WordsAPITimeout time.Duration

	// TTS
	AudioCachePath string

	// Health monitor
	HealthCheckInterval time.Duration

	// Admin auth
	AdminPasswordHash string
	JWTSecret         string
	TokenDuration     time.Duration

	// Email (disabled when SESFromEmail is empty)
	AWSRegion     string
	SESFromEmail  string
	SESFromName   string
	ReminderEmail string
	ReminderHour  int
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	// Missing .env is fine, the environment may be set externally
	_ = godotenv.Load()

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		StaticFilesPath: getEnv("STATIC_PATH", "./static"),

		DatabaseType:   getEnv("DATABASE_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./hagxwon.db"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		WordsAPIBaseURL: getEnv("WORDS_API_BASE_URL", "http://localhost:3000/api"),
		WordsAPITimeout: getEnvDuration("WORDS_API_TIMEOUT", 10*time.Second),

		AudioCachePath: getEnv("AUDIO_CACHE_PATH", "./static/audio"),

		HealthCheckInterval: getEnvDuration("HEALTH_CHECK_INTERVAL", 30*time.Second),

		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		TokenDuration:     getEnvDuration("TOKEN_DURATION", 24*time.Hour),

		AWSRegion:     getEnv("AWS_REGION", "eu-west-1"),
		SESFromEmail:  getEnv("SES_FROM_EMAIL", ""),
		SESFromName:   getEnv("SES_FROM_NAME", "HagXwon"),
		ReminderEmail: getEnv("REMINDER_EMAIL", ""),
		ReminderHour:  getEnvInt("REMINDER_HOUR", 18),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration reads a duration environment variable or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
