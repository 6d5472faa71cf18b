package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Microsoft Graph / identity provider
	MicrosoftTenantID     string
	MicrosoftClientID     string
	MicrosoftClientSecret string
	MicrosoftScopes       []string
	MicrosoftLoginURL     string
	GraphBaseURL          string
	MailboxUser           string
	TargetFolder          string

	// Sync tuning
	SyncPageSize     int
	SyncMaxPages     int
	RecentWindowDays int

	// Spam filtering
	SpamSenderPrefixes []string
	SpamSubjectMarkers []string

	// Store retry policy
	StoreRetryAttempts int
	StoreRetryBackoff  time.Duration
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	backoff := 1 * time.Second
	if b := os.Getenv("STORE_RETRY_BACKOFF"); b != "" {
		if parsed, err := time.ParseDuration(b); err == nil {
			backoff = parsed
		}
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "helpdesk"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		MicrosoftTenantID:     getEnv("MICROSOFT_TENANT_ID", ""),
		MicrosoftClientID:     getEnv("MICROSOFT_CLIENT_ID", ""),
		MicrosoftClientSecret: getEnv("MICROSOFT_CLIENT_SECRET", ""),
		MicrosoftScopes:       getEnvList("MICROSOFT_API_SCOPE", "https://graph.microsoft.com/.default"),
		MicrosoftLoginURL:     getEnv("MICROSOFT_LOGIN_URL", "https://login.microsoftonline.com"),
		GraphBaseURL:          getEnv("MICROSOFT_GRAPH_URL", "https://graph.microsoft.com/v1.0/users"),
		MailboxUser:           getEnv("MAILBOX_USER", ""),
		TargetFolder:          getEnv("TARGET_FOLDER", "inbox"),

		SyncPageSize:     getEnvInt("SYNC_PAGE_SIZE", 100),
		SyncMaxPages:     getEnvInt("SYNC_MAX_PAGES", 100),
		RecentWindowDays: getEnvInt("RECENT_WINDOW_DAYS", 7),

		SpamSenderPrefixes: getEnvList("SPAM_SENDER_PREFIXES", "postmaster,noreply"),
		SpamSubjectMarkers: getEnvList("SPAM_SUBJECT_MARKERS", "[!!Spam],[!!Massmail]"),

		StoreRetryAttempts: getEnvInt("STORE_RETRY_ATTEMPTS", 3),
		StoreRetryBackoff:  backoff,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
