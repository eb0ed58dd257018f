package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environments understood by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config holds all application configuration values
type Config struct {
	Port            string `validate:"required,numeric"`
	Environment     string `validate:"oneof=development production test"`
	LogLevel        string `validate:"oneof=debug info warn error"`
	LogFile         string
	SiteProfile     string        `validate:"omitempty,file"`
	AllowedOrigins  []string      `validate:"min=1,dive,required"`
	MaxBodyBytes    int64         `validate:"gt=0"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	IdleTimeout     time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	MetricsEnabled  bool
	OTLPEndpoint    string `validate:"omitempty,hostname_port"`
	ServiceName     string `validate:"required"`
}

// Default returns the configuration used when no environment overrides are set.
func Default() *Config {
	return &Config{
		Port:            "8080",
		Environment:     EnvDevelopment,
		LogLevel:        "info",
		AllowedOrigins:  []string{"*"},
		MaxBodyBytes:    64 << 10,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    15 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MetricsEnabled:  true,
		ServiceName:     "portfolio-site",
	}
}

// Load reads a .env file if one exists, then builds the configuration from
// environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a validated Config using lookup to resolve variables.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	var err error

	if v, ok := lookup("PORT"); ok && v != "" {
		cfg.Port = v
	}
	if v, ok := lookup("APP_ENV"); ok && v != "" {
		cfg.Environment = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := lookup("LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := lookup("SITE_PROFILE"); ok {
		cfg.SiteProfile = v
	}
	if v, ok := lookup("CORS_ALLOWED_ORIGINS"); ok && v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
	if v, ok := lookup("MAX_BODY_BYTES"); ok && v != "" {
		if cfg.MaxBodyBytes, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("invalid MAX_BODY_BYTES: %w", err)
		}
	}
	if v, ok := lookup("METRICS_ENABLED"); ok && v != "" {
		if cfg.MetricsEnabled, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
		}
	}
	if v, ok := lookup("OTEL_EXPORTER_OTLP_ENDPOINT"); ok {
		cfg.OTLPEndpoint = v
	}
	if v, ok := lookup("OTEL_SERVICE_NAME"); ok && v != "" {
		cfg.ServiceName = v
	}

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"READ_TIMEOUT", &cfg.ReadTimeout},
		{"WRITE_TIMEOUT", &cfg.WriteTimeout},
		{"IDLE_TIMEOUT", &cfg.IdleTimeout},
		{"SHUTDOWN_TIMEOUT", &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		v, ok := lookup(d.key)
		if !ok || v == "" {
			continue
		}
		if *d.dst, err = time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.key, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
