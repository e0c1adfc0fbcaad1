package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Advisory model
	AdvisorProvider string
	AdvisorAPIKey   string
	AdvisorModel    string
	AdvisorBaseURL  string
	AdvisorTimeout  time.Duration

	// State container
	StateSyncTimeout    time.Duration
	StatePersistTimeout time.Duration

	// Reminders
	ReminderSchedule   string
	ReminderWindowDays int
	InternalAPIKey     string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finanzas"),
		DBPassword: getEnv("DB_PASSWORD", "finanzas"),
		DBName:     getEnv("DB_NAME", "finanzas"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		AdvisorProvider: getEnv("ADVISOR_PROVIDER", "gemini"),
		AdvisorAPIKey:   getEnv("ADVISOR_API_KEY", os.Getenv("API_KEY")),
		AdvisorModel:    getEnv("ADVISOR_MODEL", ""),
		AdvisorBaseURL:  getEnv("ADVISOR_BASE_URL", ""),

		ReminderSchedule:   getEnv("REMINDER_SCHEDULE", "@daily"),
		ReminderWindowDays: getEnvInt("REMINDER_WINDOW_DAYS", 3),
		InternalAPIKey:     getEnv("INTERNAL_API_KEY", ""),
	}

	config.JWTExpirationDur = getEnvDuration("JWT_EXPIRES_IN", 24*time.Hour)
	config.AdvisorTimeout = getEnvDuration("ADVISOR_TIMEOUT", 30*time.Second)
	config.StateSyncTimeout = getEnvDuration("STATE_SYNC_TIMEOUT", 5*time.Second)
	config.StatePersistTimeout = getEnvDuration("STATE_PERSIST_TIMEOUT", 15*time.Second)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func getEnvInt(key string, defaultValue int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}
