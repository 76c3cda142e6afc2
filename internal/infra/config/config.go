package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// ConfigError reports a required credential that is absent or empty.
// Any ConfigError at startup is fatal: the polling loop must not start.
type ConfigError struct {
	Key    string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s is %s", e.Key, e.Reason)
}

// AppConfig holds all configuration for the application. It is constructed
// once at startup and read-only thereafter.
type AppConfig struct {
	PracticumToken string
	TelegramToken  string
	TelegramChatID int64

	Endpoint     string
	PollInterval time.Duration

	// DatabaseURL is optional. When empty, notification history and the
	// poll cursor are kept in memory only.
	DatabaseURL string

	LogLevel    string
	LogFile     string
	Environment string

	CronSpecDailySummary string
}

// Load reads configuration from environment variables and a .env file (if
// present). All three credentials must be present and non-empty.
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables; errors are
	// ignored if the file doesn't exist.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	var err error
	if cfg.PracticumToken, err = requireEnv("PRACTICUM_TOKEN"); err != nil {
		return nil, err
	}
	if cfg.TelegramToken, err = requireEnv("TELEGRAM_TOKEN"); err != nil {
		return nil, err
	}
	chatIDStr, err := requireEnv("TELEGRAM_CHAT_ID")
	if err != nil {
		return nil, err
	}
	cfg.TelegramChatID, err = strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
	}

	cfg.Endpoint = os.Getenv("ENDPOINT")
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaultEndpoint
	}

	intervalStr := os.Getenv("POLL_INTERVAL_SECONDS")
	if intervalStr == "" {
		cfg.PollInterval = 600 * time.Second
	} else {
		seconds, err := strconv.Atoi(intervalStr)
		if err != nil || seconds <= 0 {
			return nil, fmt.Errorf("invalid POLL_INTERVAL_SECONDS: %q", intervalStr)
		}
		cfg.PollInterval = time.Duration(seconds) * time.Second
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.LogFile = os.Getenv("LOG_FILE")
	if cfg.LogFile == "" {
		cfg.LogFile = "homework_bot.log"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	cfg.CronSpecDailySummary = os.Getenv("CRON_SPEC_DAILY_SUMMARY")
	if cfg.CronSpecDailySummary == "" {
		cfg.CronSpecDailySummary = "0 9 * * *" // Default: 9 AM daily
	}

	return cfg, nil
}

func requireEnv(key string) (string, error) {
	value, ok := os.LookupEnv(key)
	if !ok {
		return "", &ConfigError{Key: key, Reason: "not set"}
	}
	if value == "" {
		return "", &ConfigError{Key: key, Reason: "empty"}
	}
	return value, nil
}
