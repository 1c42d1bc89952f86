package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Environment
	AppEnv string
	Port   int

	// Database
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DatabaseURL       string
	DBMaxIdleConns    int
	DBMaxOpenConns    int
	DBConnMaxLifetime time.Duration

	// Authentication
	JWTSecret     string
	JWTExpiry     time.Duration
	AuthRateLimit float64
	AuthRateBurst int

	// Logging
	LogLevel  string
	LogFormat string

	CORSOrigins []string

	// Sample data
	SeedSampleData    bool
	SeedAdminPassword string
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	// A missing .env is fine, system env vars still apply
	_ = godotenv.Load(".env")

	cfg := &Config{}

	loadEnvString(&cfg.AppEnv, "APP_ENV", "development")
	if err := loadEnvInt(&cfg.Port, "PORT", 8080); err != nil {
		return nil, err
	}

	loadEnvString(&cfg.DBHost, "DB_HOST", "localhost")
	loadEnvString(&cfg.DBPort, "DB_PORT", "5432")
	loadEnvString(&cfg.DBUser, "DB_USER", "postgres")
	loadEnvString(&cfg.DBPassword, "DB_PASSWORD", "")
	loadEnvString(&cfg.DBName, "DB_NAME", "blog")
	loadEnvString(&cfg.DBSSLMode, "DB_SSLMODE", "disable")
	loadEnvString(&cfg.DatabaseURL, "DATABASE_URL", "")
	if err := loadEnvInt(&cfg.DBMaxIdleConns, "DB_MAX_IDLE_CONNS", 10); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.DBMaxOpenConns, "DB_MAX_OPEN_CONNS", 100); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.DBConnMaxLifetime, "DB_CONN_MAX_LIFETIME", time.Hour); err != nil {
		return nil, err
	}

	if err := loadEnvStringRequired(&cfg.JWTSecret, "JWT_SECRET"); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.JWTExpiry, "JWT_EXPIRY", 72*time.Hour); err != nil {
		return nil, err
	}
	if err := loadEnvFloat(&cfg.AuthRateLimit, "AUTH_RATE_LIMIT", 5); err != nil {
		return nil, err
	}
	if err := loadEnvInt(&cfg.AuthRateBurst, "AUTH_RATE_BURST", 10); err != nil {
		return nil, err
	}

	loadEnvString(&cfg.LogLevel, "LOG_LEVEL", "info")
	loadEnvString(&cfg.LogFormat, "LOG_FORMAT", "text")
	loadEnvStringSlice(&cfg.CORSOrigins, "CORS_ORIGINS", []string{"*"})

	if err := loadEnvBool(&cfg.SeedSampleData, "SEED_SAMPLE_DATA", false); err != nil {
		return nil, err
	}
	loadEnvString(&cfg.SeedAdminPassword, "SEED_ADMIN_PASSWORD", "admin123")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvString(target *string, key, defaultValue string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
}

func loadEnvStringRequired(target *string, key string) error {
	value := os.Getenv(key)
	if value == "" {
		return fmt.Errorf("required environment variable %s is not set", key)
	}
	*target = value
	return nil
}

func loadEnvInt(target *int, key string, defaultValue int) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvFloat(target *float64, key string, defaultValue float64) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid number value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvBool(target *bool, key string, defaultValue bool) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %w", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvStringSlice(target *[]string, key string, defaultValue []string) {
	value := os.Getenv(key)
	if value == "" {
		*target = defaultValue
		return
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*target = out
}

// Validate performs validation on the loaded configuration
func (c *Config) Validate() error {
	var errs []string

	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, "PORT must be between 1 and 65535")
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	if !contains(validLogLevels, c.LogLevel) {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}
	if !contains([]string{"text", "json"}, c.LogFormat) {
		errs = append(errs, "LOG_FORMAT must be one of: text, json")
	}

	if c.JWTExpiry <= 0 {
		errs = append(errs, "JWT_EXPIRY must be positive")
	}
	// Short secrets are tolerated in development so a local .env stays simple
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		errs = append(errs, "JWT_SECRET should be at least 32 characters long")
	}
	if c.AuthRateLimit <= 0 || c.AuthRateBurst < 1 {
		errs = append(errs, "AUTH_RATE_LIMIT and AUTH_RATE_BURST must be positive")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DSN returns the postgres connection string
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
