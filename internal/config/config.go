package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	SMTP       SMTPConfig
	Keys       APIKeys
	Redemption RedemptionConfig
	Payout     PayoutConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	OtelEnabled        bool
	OtelEndpoint       string
}

type DatabaseConfig struct {
	Connection string
	Driver     string // postgres or memory
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	JwtSecret            string
	PaymentWebhookSecret string
}

type RedemptionConfig struct {
	CodeTTL time.Duration
	// Failed validations a salon may submit inside FailureWindow before being throttled
	MaxFailures   int
	FailureWindow time.Duration
}

type PayoutConfig struct {
	WithdrawOpenDay int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
			Driver:     getEnv("STORAGE_DRIVER", StorageDriverPostgres),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "CutClub"),
		},
		Keys: APIKeys{
			JwtSecret:            getEnv("JWT_SECRET", ""),
			PaymentWebhookSecret: getEnv("PAYMENT_WEBHOOK_SECRET", ""),
		},
		Redemption: RedemptionConfig{
			CodeTTL:       time.Duration(getEnvAsInt("CODE_TTL_MINUTES", 30)) * time.Minute,
			MaxFailures:   getEnvAsInt("VALIDATE_MAX_FAILURES", 10),
			FailureWindow: time.Duration(getEnvAsInt("VALIDATE_FAILURE_WINDOW_MINUTES", 15)) * time.Minute,
		},
		Payout: PayoutConfig{
			WithdrawOpenDay: getEnvAsInt("WITHDRAW_OPEN_DAY", 10),
		},
	}
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
