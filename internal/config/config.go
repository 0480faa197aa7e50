package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Skufu/maternalrisk/internal/classifier"
)

// Scaler modes. The mode is always explicit: a scaler file lying next to
// the model is never picked up on its own.
const (
	ScalerNone = "none"
	ScalerFile = "file"
)

// Config holds all service configuration.
type Config struct {
	Port      string
	GinMode   string
	LogLevel  string
	BodyLimit int64
	Model     ModelConfig
	Scaler    ScalerConfig
	Audit     AuditConfig
}

// ModelConfig selects the classifier backend.
type ModelConfig struct {
	Backend string // "onnx" or "remote"
	Path    string
	LibPath string
	URL     string
	Token   string
	Timeout time.Duration
}

// ScalerConfig selects the feature normalizer.
type ScalerConfig struct {
	Mode string // "none" or "file"
	Path string
}

// AuditConfig controls the optional Postgres audit trail.
type AuditConfig struct {
	EnableDB    bool
	DatabaseURL string
}

// Load reads a .env file if present, then the environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:      getEnv("PORT", "8080"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		BodyLimit: 1 << 20,
		Model: ModelConfig{
			Backend: strings.ToLower(getEnv("RISK_MODEL_BACKEND", classifier.BackendONNX)),
			Path:    getEnv("RISK_MODEL_PATH", "models/maternal_risk_model.onnx"),
			LibPath: os.Getenv("RISK_ORT_LIB_PATH"),
			URL:     os.Getenv("RISK_MODEL_URL"),
			Token:   os.Getenv("RISK_MODEL_TOKEN"),
			Timeout: getEnvDuration("RISK_MODEL_TIMEOUT", 10*time.Second),
		},
		Scaler: ScalerConfig{
			Mode: strings.ToLower(getEnv("RISK_SCALER_MODE", ScalerNone)),
			Path: os.Getenv("RISK_SCALER_PATH"),
		},
		Audit: AuditConfig{
			EnableDB:    strings.EqualFold(getEnv("ENABLE_DB", "false"), "true"),
			DatabaseURL: os.Getenv("DATABASE_URL"),
		},
	}
}

// Validate reports every configuration problem at once.
func (c Config) Validate() error {
	var errs []error

	switch c.Model.Backend {
	case classifier.BackendONNX:
		if c.Model.Path == "" {
			errs = append(errs, errors.New("RISK_MODEL_PATH is required for the onnx backend"))
		}
	case classifier.BackendRemote:
		if c.Model.URL == "" {
			errs = append(errs, errors.New("RISK_MODEL_URL is required for the remote backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("RISK_MODEL_BACKEND must be onnx or remote, got %q", c.Model.Backend))
	}
	if c.Model.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("RISK_MODEL_TIMEOUT must be positive, got %v", c.Model.Timeout))
	}

	switch c.Scaler.Mode {
	case ScalerNone:
		if c.Scaler.Path != "" {
			errs = append(errs, errors.New("RISK_SCALER_PATH is set but RISK_SCALER_MODE=none; set RISK_SCALER_MODE=file to apply it"))
		}
	case ScalerFile:
		if c.Scaler.Path == "" {
			errs = append(errs, errors.New("RISK_SCALER_PATH is required when RISK_SCALER_MODE=file"))
		}
	default:
		errs = append(errs, fmt.Errorf("RISK_SCALER_MODE must be none or file, got %q", c.Scaler.Mode))
	}

	if c.Audit.EnableDB && c.Audit.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required when ENABLE_DB=true"))
	}

	return errors.Join(errs...)
}

// ClassifierOptions converts the model settings for classifier.Open.
func (c Config) ClassifierOptions() classifier.Options {
	return classifier.Options{
		Backend:   c.Model.Backend,
		ModelPath: c.Model.Path,
		LibPath:   c.Model.LibPath,
		URL:       c.Model.URL,
		Token:     c.Model.Token,
		Timeout:   c.Model.Timeout,
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
