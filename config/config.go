package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	Database DatabaseConfig

	// Twilio messaging (WhatsApp + SMS)
	Twilio TwilioConfig

	// Translation
	Translation TranslationConfig

	// Chatbot
	Chatbot ChatbotConfig

	// Alert scheduler
	Alerts AlertConfig

	// JWT
	JWT JWTConfig

	// Security
	Security SecurityConfig
}

type DatabaseConfig struct {
	URI  string
	Name string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	SMSNumber      string
	WhatsAppNumber string
	Timeout        time.Duration
}

type TranslationConfig struct {
	GoogleAPIKey string
	Timeout      time.Duration
}

type ChatbotConfig struct {
	// Mode selects the classification strategy: "tfidf" or "keyword".
	Mode string
	// DefaultConfidence is returned when no category matches.
	DefaultConfidence float64
	// SessionHistoryMax caps per-phone conversation history entries.
	SessionHistoryMax int
	// EmergencyNumber appears in the safety-net warning.
	EmergencyNumber string
}

type AlertConfig struct {
	PollInterval time.Duration
	ErrorBackoff time.Duration
	StopTimeout  time.Duration
	HistoryMax   int
	// AutoStart launches the poll loop on boot.
	AutoStart bool
}

type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

type SecurityConfig struct {
	BcryptCost     int
	AllowedOrigins []string
}

// Load reads the environment (and an optional .env file) into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Database: DatabaseConfig{
			URI:            getEnv("DATABASE_URL", ""),
			Name:           getEnv("DB_NAME", "healthcare_chatbot"),
			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
		},

		Twilio: TwilioConfig{
			AccountSID:     getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:      getEnv("TWILIO_AUTH_TOKEN", ""),
			SMSNumber:      getEnv("TWILIO_PHONE_NUMBER", ""),
			WhatsAppNumber: getEnv("TWILIO_WHATSAPP_NUMBER", ""),
			Timeout:        getEnvAsDuration("TWILIO_TIMEOUT", "30s"),
		},

		Translation: TranslationConfig{
			GoogleAPIKey: getEnv("GOOGLE_TRANSLATE_API_KEY", ""),
			Timeout:      getEnvAsDuration("TRANSLATE_TIMEOUT", "15s"),
		},

		Chatbot: ChatbotConfig{
			Mode:              getEnv("CLASSIFIER_MODE", "tfidf"),
			DefaultConfidence: getEnvAsFloat("CLASSIFIER_DEFAULT_CONFIDENCE", 0.5),
			SessionHistoryMax: getEnvAsInt("SESSION_HISTORY_MAX", 50),
			EmergencyNumber:   getEnv("EMERGENCY_NUMBER", "108"),
		},

		Alerts: AlertConfig{
			PollInterval: getEnvAsDuration("ALERT_POLL_INTERVAL", "1h"),
			ErrorBackoff: getEnvAsDuration("ALERT_ERROR_BACKOFF", "60s"),
			StopTimeout:  getEnvAsDuration("ALERT_STOP_TIMEOUT", "5s"),
			HistoryMax:   getEnvAsInt("ALERT_HISTORY_MAX", 1000),
			AutoStart:    getEnvAsBool("ALERT_SCHEDULER_AUTOSTART", true),
		},

		JWT: JWTConfig{
			Secret:          getEnv("JWT_SECRET", "dev-secret-change-in-production"),
			ExpirationHours: getEnvAsInt("JWT_EXPIRATION_HOURS", 24),
		},

		Security: SecurityConfig{
			BcryptCost:     getEnvAsInt("BCRYPT_COST", 10),
			AllowedOrigins: getEnvAsSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Environment == "production" && c.JWT.Secret == "dev-secret-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Chatbot.Mode != "tfidf" && c.Chatbot.Mode != "keyword" {
		return fmt.Errorf("CLASSIFIER_MODE must be \"tfidf\" or \"keyword\", got %q", c.Chatbot.Mode)
	}
	if c.Alerts.PollInterval <= 0 {
		return fmt.Errorf("ALERT_POLL_INTERVAL must be positive")
	}
	return nil
}

// MessagingConfigured reports whether outbound Twilio delivery can work at all.
func (c *Config) MessagingConfigured() bool {
	return c.Twilio.AccountSID != "" && c.Twilio.AuthToken != ""
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}
	return strings.Split(value, ",")
}
