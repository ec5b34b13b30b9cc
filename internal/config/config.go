package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction       bool
	DBDSN              string
	LogLevel           string
	NoShowSweepCron    string
	NoShowGrace        time.Duration
	PeakStartHour      int
	PeakEndHour        int
	PeakMultiplier     string
	DefaultSlotMinutes int
	DefaultStepMinutes int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Logging level (default: info)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Cron expression for the no-show sweep (default: every 15 minutes)
	cfg.NoShowSweepCron = getEnv("NOSHOW_SWEEP_CRON", "*/15 * * * *")

	// Grace period after a reservation's end before it counts as a no-show
	graceMinutes, err := getEnvAsInt("NOSHOW_GRACE_MINUTES", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid NOSHOW_GRACE_MINUTES: %w", err)
	}
	if graceMinutes < 0 {
		return nil, fmt.Errorf("NOSHOW_GRACE_MINUTES must not be negative")
	}
	cfg.NoShowGrace = time.Duration(graceMinutes) * time.Minute

	// Weekday peak-pricing window, hours of day (default: 18:00-22:00)
	cfg.PeakStartHour, err = getEnvAsInt("PEAK_START_HOUR", 18)
	if err != nil {
		return nil, fmt.Errorf("invalid PEAK_START_HOUR: %w", err)
	}
	cfg.PeakEndHour, err = getEnvAsInt("PEAK_END_HOUR", 22)
	if err != nil {
		return nil, fmt.Errorf("invalid PEAK_END_HOUR: %w", err)
	}
	if cfg.PeakStartHour < 0 || cfg.PeakEndHour > 24 || cfg.PeakStartHour >= cfg.PeakEndHour {
		return nil, fmt.Errorf("peak window %d-%d is not a valid hour range", cfg.PeakStartHour, cfg.PeakEndHour)
	}

	// Peak price multiplier, parsed later as a decimal (default: no surcharge)
	cfg.PeakMultiplier = getEnv("PEAK_MULTIPLIER", "1.0")

	// Default slot duration and generator step for availability queries
	cfg.DefaultSlotMinutes, err = getEnvAsInt("DEFAULT_SLOT_MINUTES", 90)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_SLOT_MINUTES: %w", err)
	}
	cfg.DefaultStepMinutes, err = getEnvAsInt("DEFAULT_STEP_MINUTES", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_STEP_MINUTES: %w", err)
	}
	if cfg.DefaultSlotMinutes <= 0 || cfg.DefaultStepMinutes <= 0 {
		return nil, fmt.Errorf("slot and step minutes must be positive")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
