package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Security SecurityConfig
	Redis    RedisConfig
	Cache    CacheConfig
	Mail     MailConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	Environment  string // development, staging, production
	BaseURL      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string
}

// SecurityConfig holds CSRF, admin console and encryption settings.
type SecurityConfig struct {
	CSRFSecret           string
	TrustedOrigins       []string
	AdminPasswordHash    string // bcrypt
	AdminCookieName      string
	AdminSessionDuration time.Duration
	CookieHashKey        string
	EncryptionKey        string
	SecureCookies        bool // true in production
}

// RedisConfig holds the snapshot cache connection. Either URL or Address.
type RedisConfig struct {
	URL      string
	Address  string
	Password string
	DB       int
}

// Enabled reports whether a Redis endpoint is configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CacheConfig struct {
	SnapshotTTL time.Duration
}

// MailConfig configures SES inquiry notifications.
type MailConfig struct {
	Enabled bool
	Region  string
	From    string
	AdminTo string
}

type LogConfig struct {
	Level  string
	Format string
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func Load() (*Config, error) {
	// .env is optional; production sets real env vars.
	_ = godotenv.Load()

	cfg := &Config{}

	cfg.Server = ServerConfig{
		Port:         getEnvOrDefault("SERVER_PORT", "8080"),
		Environment:  getEnvOrDefault("APP_ENV", "development"),
		BaseURL:      getEnvOrDefault("BASE_URL", "http://localhost:8080"),
		ReadTimeout:  getDurationOrDefault("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDurationOrDefault("SERVER_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  getDurationOrDefault("SERVER_IDLE_TIMEOUT", 60*time.Second),
	}

	cfg.Database = DatabaseConfig{
		URL: os.Getenv("DATABASE_URL"),
	}

	sessionHours, err := strconv.Atoi(getEnvOrDefault("ADMIN_SESSION_HOURS", "12"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_SESSION_HOURS: %w", err)
	}

	cfg.Security = SecurityConfig{
		CSRFSecret:           os.Getenv("CSRF_SECRET"),
		TrustedOrigins:       strings.Fields(getEnvOrDefault("CSRF_TRUSTED_ORIGINS", "")),
		AdminPasswordHash:    os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminCookieName:      getEnvOrDefault("ADMIN_COOKIE_NAME", "bizstart_admin"),
		AdminSessionDuration: time.Duration(sessionHours) * time.Hour,
		CookieHashKey:        os.Getenv("COOKIE_HASH_KEY"),
		EncryptionKey:        os.Getenv("ENCRYPTION_KEY"),
		SecureCookies:        cfg.Server.Environment == "production",
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	cfg.Redis = RedisConfig{
		URL:      os.Getenv("REDIS_URL"),
		Address:  os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	}

	cfg.Cache = CacheConfig{
		SnapshotTTL: getDurationOrDefault("SNAPSHOT_CACHE_TTL", 6*time.Hour),
	}

	cfg.Mail = MailConfig{
		Enabled: getEnvOrDefault("MAIL_ENABLED", "false") == "true",
		Region:  getEnvOrDefault("AWS_REGION", "ap-northeast-2"),
		From:    os.Getenv("MAIL_FROM"),
		AdminTo: os.Getenv("MAIL_ADMIN_TO"),
	}

	cfg.Log = LogConfig{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Format: getEnvOrDefault("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration is present and valid.
func (c *Config) validate() error {
	var errs []error

	if c.Database.URL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}

	if c.Security.CSRFSecret == "" {
		errs = append(errs, errors.New("CSRF_SECRET is required"))
	} else if len(c.Security.CSRFSecret) < 32 {
		errs = append(errs, errors.New("CSRF_SECRET must be at least 32 characters"))
	}

	if c.Security.AdminPasswordHash == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD_HASH is required"))
	}

	if len(c.Security.CookieHashKey) < 32 {
		errs = append(errs, errors.New("COOKIE_HASH_KEY must be at least 32 characters"))
	}

	if len(c.Security.EncryptionKey) != 32 {
		errs = append(errs, errors.New("ENCRYPTION_KEY must be exactly 32 bytes"))
	}

	if c.Security.AdminSessionDuration <= 0 {
		errs = append(errs, errors.New("ADMIN_SESSION_HOURS must be positive"))
	}

	if c.Mail.Enabled && (c.Mail.From == "" || c.Mail.AdminTo == "") {
		errs = append(errs, errors.New("MAIL_FROM and MAIL_ADMIN_TO are required when MAIL_ENABLED=true"))
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.Server.Environment] {
		errs = append(errs, fmt.Errorf("APP_ENV must be one of: development, staging, production (got: %s)", c.Server.Environment))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%w", errors.Join(errs...))
	}

	return nil
}

// getEnvOrDefault returns the env value or a default.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

// MustLoad is like Load but panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
