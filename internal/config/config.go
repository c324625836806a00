package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	Auth     AuthConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
	// Storage selects the entry store: "postgres" or "memory".
	Storage string
}

// AuthConfig holds token verification configuration
type AuthConfig struct {
	JWTSecret string
}

// EngineConfig holds timeclock engine tuning
type EngineConfig struct {
	// AlertTickInterval is the alert rule engine's evaluation interval.
	AlertTickInterval time.Duration
	// AutoClockOutInterval is how often the auto clock-out job checks for
	// open entries past the configured cutoff.
	AutoClockOutInterval time.Duration
}

func Load() (*Config, error) {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "rentaline-timeclock"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
		Storage:     getEnv("STORAGE_DRIVER", "postgres"),
	}

	config.Auth = AuthConfig{
		JWTSecret: getEnv("JWT_SECRET_KEY", ""),
	}

	tickInterval, err := time.ParseDuration(getEnv("ALERT_TICK_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_TICK_INTERVAL: %w", err)
	}
	autoClockOutInterval, err := time.ParseDuration(getEnv("AUTO_CLOCK_OUT_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_CLOCK_OUT_INTERVAL: %w", err)
	}

	config.Engine = EngineConfig{
		AlertTickInterval:    tickInterval,
		AutoClockOutInterval: autoClockOutInterval,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.App.Storage != "postgres" && c.App.Storage != "memory" {
		return fmt.Errorf("STORAGE_DRIVER must be postgres or memory, got %q", c.App.Storage)
	}
	if c.App.Storage == "postgres" && c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required when STORAGE_DRIVER is postgres")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
