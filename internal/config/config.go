package config

import (
	"os"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port               string
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string

	// AWS wiring shared by DynamoDB, S3 and Secrets Manager clients.
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Document collections and report storage.
	AppointmentsTable string
	ReportsTable      string
	ReportsBucket     string
	ReportScratchDir  string

	// Secret names resolved through the vault at startup.
	AdminPasswordSecret    string
	MasterCalendarIDSecret string

	// Gemini analysis model.
	GeminiAPIKey   string
	GeminiModelID  string
	ModelTimeout   time.Duration
	ClinicLocation string

	// Session state. Empty RedisAddr falls back to the in-memory store.
	RedisAddr     string
	RedisPassword string
	SessionTTL    time.Duration

	// Admin dashboard auth.
	AdminJWTSecret string
	AdminTokenTTL  time.Duration

	// SendGrid booking confirmation email.
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		AppointmentsTable: getEnv("APPOINTMENTS_TABLE", "appointments"),
		ReportsTable:      getEnv("REPORTS_TABLE", "reports"),
		ReportsBucket:     getEnv("REPORTS_BUCKET", ""),
		ReportScratchDir:  getEnv("REPORT_SCRATCH_DIR", os.TempDir()),

		AdminPasswordSecret:    getEnv("ADMIN_PASSWORD_SECRET", "app-admin-password"),
		MasterCalendarIDSecret: getEnv("MASTER_CALENDAR_ID_SECRET", "master-calendar-id"),

		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiModelID:  getEnv("GEMINI_MODEL_ID", "gemini-2.5-flash"),
		ModelTimeout:   getEnvAsDuration("MODEL_TIMEOUT", 60*time.Second),
		ClinicLocation: getEnv("CLINIC_LOCATION", "Medi-Scribe Medical Center"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		SessionTTL:    getEnvAsDuration("SESSION_TTL", 2*time.Hour),

		AdminJWTSecret: getEnv("ADMIN_JWT_SECRET", ""),
		AdminTokenTTL:  getEnvAsDuration("ADMIN_TOKEN_TTL", 12*time.Hour),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Medi-Scribe"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
