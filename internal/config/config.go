package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Pricing PricingConfig
	Link    LinkConfig
	S3      S3Config
	Log     LogConfig
	CORS    CORSConfig
	Webhook WebhookConfig
	Email   EmailConfig
	Admin   AdminConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// PricingConfig holds fallback pricing parameters. Values in the
// app_settings table take precedence; these apply when no row is present.
type PricingConfig struct {
	BaseRate          float64       `mapstructure:"base_rate"`
	TaxRate           float64       `mapstructure:"tax_rate"`
	RoundIncrement    float64       `mapstructure:"round_increment"`
	Currency          string        `mapstructure:"currency"`
	ResolveAttempts   int           `mapstructure:"resolve_attempts"`
	ResolveRetryDelay time.Duration `mapstructure:"resolve_retry_delay"`
}

// LinkConfig holds signed quote resume link settings.
type LinkConfig struct {
	Secret      string        `mapstructure:"secret"`
	Expiry      time.Duration `mapstructure:"expiry"`
	Issuer      string        `mapstructure:"issuer"`
	FrontendURL string        `mapstructure:"frontend_url"`
}

// S3Config holds object storage settings for quote file links.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// WebhookConfig holds pricing pipeline webhook settings.
type WebhookConfig struct {
	URL        string        `mapstructure:"url"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// AdminConfig holds the static key guarding admin routes.
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// Load reads configuration from environment variables with the CERTIQUOTE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CERTIQUOTE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "certiquote")
	v.SetDefault("db.password", "certiquote_secret")
	v.SetDefault("db.name", "certiquote_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Pricing defaults
	v.SetDefault("pricing.base_rate", 40.0)
	v.SetDefault("pricing.tax_rate", 0.05)
	v.SetDefault("pricing.round_increment", 2.50)
	v.SetDefault("pricing.currency", "CAD")
	v.SetDefault("pricing.resolve_attempts", 3)
	v.SetDefault("pricing.resolve_retry_delay", "2s")

	// Resume link defaults
	v.SetDefault("link.secret", "change-me-in-production")
	v.SetDefault("link.expiry", "24h")
	v.SetDefault("link.issuer", "certiquote")
	v.SetDefault("link.frontend_url", "http://localhost:3000")

	// S3 defaults
	v.SetDefault("s3.region", "ca-central-1")
	v.SetDefault("s3.bucket", "orders")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.presign_expiry", 1209600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Webhook defaults
	v.SetDefault("webhook.url", "")
	v.SetDefault("webhook.retry_delay", "2s")
	v.SetDefault("webhook.timeout", "10s")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "ca-central-1")
	v.SetDefault("email.from_address", "quotes@certiquote.example")
	v.SetDefault("email.from_name", "CertiQuote")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Admin defaults
	v.SetDefault("admin.api_key", "")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "CERTIQUOTE_SERVER_PORT",
		"server.read_timeout":         "CERTIQUOTE_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "CERTIQUOTE_SERVER_WRITE_TIMEOUT",
		"server.environment":          "CERTIQUOTE_SERVER_ENVIRONMENT",
		"db.host":                     "CERTIQUOTE_DB_HOST",
		"db.port":                     "CERTIQUOTE_DB_PORT",
		"db.user":                     "CERTIQUOTE_DB_USER",
		"db.password":                 "CERTIQUOTE_DB_PASSWORD",
		"db.name":                     "CERTIQUOTE_DB_NAME",
		"db.sslmode":                  "CERTIQUOTE_DB_SSLMODE",
		"db.max_open":                 "CERTIQUOTE_DB_MAX_OPEN",
		"db.max_idle":                 "CERTIQUOTE_DB_MAX_IDLE",
		"pricing.base_rate":           "CERTIQUOTE_PRICING_BASE_RATE",
		"pricing.tax_rate":            "CERTIQUOTE_PRICING_TAX_RATE",
		"pricing.round_increment":     "CERTIQUOTE_PRICING_ROUND_INCREMENT",
		"pricing.currency":            "CERTIQUOTE_PRICING_CURRENCY",
		"pricing.resolve_attempts":    "CERTIQUOTE_PRICING_RESOLVE_ATTEMPTS",
		"pricing.resolve_retry_delay": "CERTIQUOTE_PRICING_RESOLVE_RETRY_DELAY",
		"link.secret":                 "CERTIQUOTE_LINK_SECRET",
		"link.expiry":                 "CERTIQUOTE_LINK_EXPIRY",
		"link.issuer":                 "CERTIQUOTE_LINK_ISSUER",
		"link.frontend_url":           "CERTIQUOTE_LINK_FRONTEND_URL",
		"s3.region":                   "CERTIQUOTE_S3_REGION",
		"s3.bucket":                   "CERTIQUOTE_S3_BUCKET",
		"s3.endpoint":                 "CERTIQUOTE_S3_ENDPOINT",
		"s3.access_key":               "CERTIQUOTE_S3_ACCESS_KEY",
		"s3.secret_key":               "CERTIQUOTE_S3_SECRET_KEY",
		"s3.presign_expiry":           "CERTIQUOTE_S3_PRESIGN_EXPIRY",
		"log.level":                   "CERTIQUOTE_LOG_LEVEL",
		"log.format":                  "CERTIQUOTE_LOG_FORMAT",
		"cors.allowed_origins":        "CERTIQUOTE_CORS_ALLOWED_ORIGINS",
		"webhook.url":                 "CERTIQUOTE_WEBHOOK_URL",
		"webhook.retry_delay":         "CERTIQUOTE_WEBHOOK_RETRY_DELAY",
		"webhook.timeout":             "CERTIQUOTE_WEBHOOK_TIMEOUT",
		"email.provider":              "CERTIQUOTE_EMAIL_PROVIDER",
		"email.region":                "CERTIQUOTE_EMAIL_REGION",
		"email.from_address":          "CERTIQUOTE_EMAIL_FROM_ADDRESS",
		"email.from_name":             "CERTIQUOTE_EMAIL_FROM_NAME",
		"email.frontend_url":          "CERTIQUOTE_EMAIL_FRONTEND_URL",
		"admin.api_key":               "CERTIQUOTE_ADMIN_API_KEY",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if CERTIQUOTE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("CERTIQUOTE_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Pricing = PricingConfig{
		BaseRate:          v.GetFloat64("pricing.base_rate"),
		TaxRate:           v.GetFloat64("pricing.tax_rate"),
		RoundIncrement:    v.GetFloat64("pricing.round_increment"),
		Currency:          v.GetString("pricing.currency"),
		ResolveAttempts:   v.GetInt("pricing.resolve_attempts"),
		ResolveRetryDelay: v.GetDuration("pricing.resolve_retry_delay"),
	}
	cfg.Link = LinkConfig{
		Secret:      v.GetString("link.secret"),
		Expiry:      v.GetDuration("link.expiry"),
		Issuer:      v.GetString("link.issuer"),
		FrontendURL: v.GetString("link.frontend_url"),
	}
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		PresignExpiry: v.GetInt64("s3.presign_expiry"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: corsOrigins,
	}
	cfg.Webhook = WebhookConfig{
		URL:        v.GetString("webhook.url"),
		RetryDelay: v.GetDuration("webhook.retry_delay"),
		Timeout:    v.GetDuration("webhook.timeout"),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.Admin = AdminConfig{
		APIKey: v.GetString("admin.api_key"),
	}

	return cfg, nil
}
