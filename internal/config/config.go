package config

import (
	"fmt"
	"log"
	"os"

	"github.com/alkime/steplever/internal/lever"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvProduction represents the production environment.
	EnvProduction = "production"

	// envPrefix namespaces every variable as STEPLEVER_*.
	envPrefix = "steplever"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Env       string `envconfig:"ENV" default:"development"`
	Port      string `envconfig:"PORT" default:"8080"`
	StaticDir string `envconfig:"STATIC_DIR" default:"./public"`

	// Security settings
	HSTSMaxAge int    `envconfig:"HSTS_MAX_AGE" default:"31536000"`
	CSPMode    string `envconfig:"CSP_MODE" default:"relaxed"`

	// Logging settings
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// HistorySize caps the per-lever transition log.
	HistorySize int `envconfig:"HISTORY_SIZE" default:"256"`

	// Shape of levers created without an explicit configuration.
	LeverMinAngle    float64 `envconfig:"LEVER_MIN_ANGLE" default:"-60"`
	LeverMaxAngle    float64 `envconfig:"LEVER_MAX_ANGLE" default:"60"`
	LeverStepCount   int     `envconfig:"LEVER_STEP_COUNT" default:"5"`
	LeverLockToValue bool    `envconfig:"LEVER_LOCK_TO_VALUE" default:"false"`
}

// LoadConfig loads configuration from .env file and environment variables.
func LoadConfig() (*Config, error) {
	// Try to load .env file (optional for development)
	if err := godotenv.Load(); err != nil {
		// Not an error if file doesn't exist (expected in production)
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	// Parse environment variables into config struct
	var config Config
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	return &config, nil
}

// LeverDefaults returns the lever configuration used when a create request
// does not carry one.
func (c *Config) LeverDefaults() lever.Config {
	return lever.Config{
		MinAngle:    c.LeverMinAngle,
		MaxAngle:    c.LeverMaxAngle,
		StepCount:   c.LeverStepCount,
		LockToValue: c.LeverLockToValue,
	}.WithDefaults()
}

// BuildCSP constructs Content Security Policy based on mode.
func BuildCSP(mode string) string {
	if mode == "strict" {
		// Production CSP
		return "default-src 'self'; " +
			"style-src 'self' 'unsafe-inline'; " +
			"script-src 'self'; " +
			"img-src 'self' data:; " +
			"object-src 'none'; " +
			"base-uri 'self'; " +
			"form-action 'self'"
	}

	// Development/relaxed CSP
	return "default-src 'self'; " +
		"style-src 'self' 'unsafe-inline'; " +
		"script-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data:"
}
