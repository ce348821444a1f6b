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
	Server    ServerConfig
	DB        DBConfig
	S3        S3Config
	Log       LogConfig
	Generator GeneratorConfig
	CORS      CORSConfig
	Queue     QueueConfig
	Email     EmailConfig
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// QueueConfig holds generate queue worker settings.
type QueueConfig struct {
	PollIntervalSecs int `mapstructure:"poll_interval_secs"`
	MaxAttempts      int `mapstructure:"max_attempts"`
	Concurrency      int `mapstructure:"concurrency"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeneratorProviderConfig holds settings for a single LLM provider.
type GeneratorProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// GeneratorConfig holds LLM proposal generator settings with
// multi-provider support.
type GeneratorConfig struct {
	// Legacy flat fields (backwards-compatible)
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	// Multi-provider fields
	Primary   GeneratorProviderConfig `mapstructure:"primary"`
	Secondary GeneratorProviderConfig `mapstructure:"secondary"`
}

// PrimaryConfig returns the primary provider config, falling back to
// legacy flat fields.
func (g *GeneratorConfig) PrimaryConfig() *GeneratorProviderConfig {
	if g.Primary.Provider != "" {
		return &g.Primary
	}
	return &GeneratorProviderConfig{
		Provider:     g.Provider,
		APIKey:       g.APIKey,
		DefaultModel: g.DefaultModel,
		TimeoutSecs:  g.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not
// configured.
func (g *GeneratorConfig) SecondaryConfig() *GeneratorProviderConfig {
	if g.Secondary.Provider != "" {
		return &g.Secondary
	}
	return nil
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

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	MaxFileSizeMB int64  `mapstructure:"max_file_size_mb"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the
// BRUSHQUOTE_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BRUSHQUOTE")
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
	v.SetDefault("db.user", "brushquote")
	v.SetDefault("db.password", "brushquote_secret")
	v.SetDefault("db.name", "brushquote_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// S3 defaults
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "brushquote-uploads")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.max_file_size_mb", 25)
	v.SetDefault("s3.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Queue defaults
	v.SetDefault("queue.poll_interval_secs", 10)
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("queue.concurrency", 4)

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@brushquote.app")
	v.SetDefault("email.from_name", "BrushQuote")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// Generator defaults (legacy flat)
	v.SetDefault("generator.provider", "claude")
	v.SetDefault("generator.api_key", "")
	v.SetDefault("generator.default_model", "claude-sonnet-4-20250514")
	v.SetDefault("generator.timeout_secs", 120)

	// Generator primary/secondary defaults
	v.SetDefault("generator.primary.provider", "")
	v.SetDefault("generator.primary.api_key", "")
	v.SetDefault("generator.primary.default_model", "")
	v.SetDefault("generator.primary.timeout_secs", 120)
	v.SetDefault("generator.secondary.provider", "")
	v.SetDefault("generator.secondary.api_key", "")
	v.SetDefault("generator.secondary.default_model", "")
	v.SetDefault("generator.secondary.timeout_secs", 120)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                       "BRUSHQUOTE_SERVER_PORT",
		"server.read_timeout":               "BRUSHQUOTE_SERVER_READ_TIMEOUT",
		"server.write_timeout":              "BRUSHQUOTE_SERVER_WRITE_TIMEOUT",
		"server.environment":                "BRUSHQUOTE_SERVER_ENVIRONMENT",
		"db.host":                           "BRUSHQUOTE_DB_HOST",
		"db.port":                           "BRUSHQUOTE_DB_PORT",
		"db.user":                           "BRUSHQUOTE_DB_USER",
		"db.password":                       "BRUSHQUOTE_DB_PASSWORD",
		"db.name":                           "BRUSHQUOTE_DB_NAME",
		"db.sslmode":                        "BRUSHQUOTE_DB_SSLMODE",
		"db.max_open":                       "BRUSHQUOTE_DB_MAX_OPEN",
		"db.max_idle":                       "BRUSHQUOTE_DB_MAX_IDLE",
		"s3.region":                         "BRUSHQUOTE_S3_REGION",
		"s3.bucket":                         "BRUSHQUOTE_S3_BUCKET",
		"s3.endpoint":                       "BRUSHQUOTE_S3_ENDPOINT",
		"s3.access_key":                     "BRUSHQUOTE_S3_ACCESS_KEY",
		"s3.secret_key":                     "BRUSHQUOTE_S3_SECRET_KEY",
		"s3.max_file_size_mb":               "BRUSHQUOTE_S3_MAX_FILE_SIZE_MB",
		"s3.presign_expiry":                 "BRUSHQUOTE_S3_PRESIGN_EXPIRY",
		"log.level":                         "BRUSHQUOTE_LOG_LEVEL",
		"log.format":                        "BRUSHQUOTE_LOG_FORMAT",
		"cors.allowed_origins":              "BRUSHQUOTE_CORS_ALLOWED_ORIGINS",
		"queue.poll_interval_secs":          "BRUSHQUOTE_QUEUE_POLL_INTERVAL_SECS",
		"queue.max_attempts":                "BRUSHQUOTE_QUEUE_MAX_ATTEMPTS",
		"queue.concurrency":                 "BRUSHQUOTE_QUEUE_CONCURRENCY",
		"generator.provider":                "BRUSHQUOTE_GENERATOR_PROVIDER",
		"generator.api_key":                 "BRUSHQUOTE_GENERATOR_API_KEY",
		"generator.default_model":           "BRUSHQUOTE_GENERATOR_DEFAULT_MODEL",
		"generator.timeout_secs":            "BRUSHQUOTE_GENERATOR_TIMEOUT_SECS",
		"generator.primary.provider":        "BRUSHQUOTE_GENERATOR_PRIMARY_PROVIDER",
		"generator.primary.api_key":         "BRUSHQUOTE_GENERATOR_PRIMARY_API_KEY",
		"generator.primary.default_model":   "BRUSHQUOTE_GENERATOR_PRIMARY_DEFAULT_MODEL",
		"generator.primary.timeout_secs":    "BRUSHQUOTE_GENERATOR_PRIMARY_TIMEOUT_SECS",
		"generator.secondary.provider":      "BRUSHQUOTE_GENERATOR_SECONDARY_PROVIDER",
		"generator.secondary.api_key":       "BRUSHQUOTE_GENERATOR_SECONDARY_API_KEY",
		"generator.secondary.default_model": "BRUSHQUOTE_GENERATOR_SECONDARY_DEFAULT_MODEL",
		"generator.secondary.timeout_secs":  "BRUSHQUOTE_GENERATOR_SECONDARY_TIMEOUT_SECS",
		"email.provider":                    "BRUSHQUOTE_EMAIL_PROVIDER",
		"email.region":                      "BRUSHQUOTE_EMAIL_REGION",
		"email.from_address":                "BRUSHQUOTE_EMAIL_FROM_ADDRESS",
		"email.from_name":                   "BRUSHQUOTE_EMAIL_FROM_NAME",
		"email.frontend_url":                "BRUSHQUOTE_EMAIL_FRONTEND_URL",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if BRUSHQUOTE_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("BRUSHQUOTE_SERVER_PORT") == "" {
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
	cfg.S3 = S3Config{
		Region:        v.GetString("s3.region"),
		Bucket:        v.GetString("s3.bucket"),
		Endpoint:      v.GetString("s3.endpoint"),
		AccessKey:     v.GetString("s3.access_key"),
		SecretKey:     v.GetString("s3.secret_key"),
		MaxFileSizeMB: v.GetInt64("s3.max_file_size_mb"),
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

	cfg.Generator = GeneratorConfig{
		Provider:     v.GetString("generator.provider"),
		APIKey:       v.GetString("generator.api_key"),
		DefaultModel: v.GetString("generator.default_model"),
		TimeoutSecs:  v.GetInt("generator.timeout_secs"),
		Primary: GeneratorProviderConfig{
			Provider:     v.GetString("generator.primary.provider"),
			APIKey:       v.GetString("generator.primary.api_key"),
			DefaultModel: v.GetString("generator.primary.default_model"),
			TimeoutSecs:  v.GetInt("generator.primary.timeout_secs"),
		},
		Secondary: GeneratorProviderConfig{
			Provider:     v.GetString("generator.secondary.provider"),
			APIKey:       v.GetString("generator.secondary.api_key"),
			DefaultModel: v.GetString("generator.secondary.default_model"),
			TimeoutSecs:  v.GetInt("generator.secondary.timeout_secs"),
		},
	}

	cfg.Queue = QueueConfig{
		PollIntervalSecs: v.GetInt("queue.poll_interval_secs"),
		MaxAttempts:      v.GetInt("queue.max_attempts"),
		Concurrency:      v.GetInt("queue.concurrency"),
	}

	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}

	return cfg, nil
}
