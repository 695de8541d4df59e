package config

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"medrec/internal/validation"
)

// Config holds all application configuration. Values come from defaults,
// an optional YAML config file and environment variables, in increasing
// order of precedence.
type Config struct {
	// Environment
	Env         string // "development", "production", etc.
	ServiceName string

	// Server
	Port       string // gateway listening port
	ScorerPort string // scoring service listening port
	BodyLimit  int    // max request body size in bytes

	// CORS
	AllowedOrigin string // the single origin allowed to call the API

	// Remote scoring service. Empty ScorerURL means predictions run in-process.
	ScorerURL            string
	ScorerTimeout        time.Duration
	ScorerHealthInterval time.Duration

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisURL        string // limiter storage; in-memory when empty

	// Classification
	RulesFile string // YAML rule table; built-in rules when empty

	// Logging
	LogLevel  string
	LogFormat string // "json" or "console"; console in development when empty
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", "development")
	v.SetDefault("SERVICE_NAME", "medicine-recommender-backend")
	v.SetDefault("PORT", "5000")
	v.SetDefault("SCORER_PORT", "8000")
	v.SetDefault("BODY_LIMIT", 1024*1024)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("AI_API_URL", "")
	v.SetDefault("AI_API_TIMEOUT", 30*time.Second)
	v.SetDefault("SCORER_HEALTH_INTERVAL", 30*time.Second)
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("RATE_LIMIT_WINDOW", 15*time.Minute)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("RULES_FILE", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")
}

// Load reads configuration from the environment and, when path is not
// empty, from the YAML file at path. Keys are the environment variable
// names (PORT, FRONTEND_URL, AI_API_URL, ...), case-insensitive in the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
		}
	}

	cfg := &Config{
		Env:                  v.GetString("ENV"),
		ServiceName:          v.GetString("SERVICE_NAME"),
		Port:                 v.GetString("PORT"),
		ScorerPort:           v.GetString("SCORER_PORT"),
		BodyLimit:            v.GetInt("BODY_LIMIT"),
		AllowedOrigin:        v.GetString("FRONTEND_URL"),
		ScorerURL:            v.GetString("AI_API_URL"),
		ScorerTimeout:        v.GetDuration("AI_API_TIMEOUT"),
		ScorerHealthInterval: v.GetDuration("SCORER_HEALTH_INTERVAL"),
		RateLimitMax:         v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow:      v.GetDuration("RATE_LIMIT_WINDOW"),
		RedisURL:             v.GetString("REDIS_URL"),
		RulesFile:            v.GetString("RULES_FILE"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogFormat:            v.GetString("LOG_FORMAT"),
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDev() {
			cfg.LogFormat = "console"
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can start a server.
func (c *Config) Validate() error {
	var errs []error

	for name, port := range map[string]string{"PORT": c.Port, "SCORER_PORT": c.ScorerPort} {
		if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
			errs = append(errs, fmt.Errorf("%s must be a port number between 1 and 65535, got %q", name, port))
		}
	}
	if c.BodyLimit <= 0 {
		errs = append(errs, errors.New("BODY_LIMIT must be positive"))
	}
	if valid, msg := validation.ValidateServiceURL(c.AllowedOrigin); !valid {
		errs = append(errs, fmt.Errorf("FRONTEND_URL: %s", msg))
	}
	if c.ScorerURL != "" {
		if valid, msg := validation.ValidateServiceURL(c.ScorerURL); !valid {
			errs = append(errs, fmt.Errorf("AI_API_URL: %s", msg))
		}
	}
	if c.ScorerTimeout <= 0 {
		errs = append(errs, errors.New("AI_API_TIMEOUT must be positive"))
	}
	if c.ScorerHealthInterval <= 0 {
		errs = append(errs, errors.New("SCORER_HEALTH_INTERVAL must be positive"))
	}
	if c.RateLimitMax <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_MAX must be positive"))
	}
	if c.RateLimitWindow <= 0 {
		errs = append(errs, errors.New("RATE_LIMIT_WINDOW must be positive"))
	}

	return errors.Join(errs...)
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsRemote returns true if predictions are delegated to a scoring service.
func (c *Config) IsRemote() bool {
	return c.ScorerURL != ""
}

// Addr returns the gateway listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// ScorerAddr returns the scoring service listen address.
func (c *Config) ScorerAddr() string {
	return ":" + c.ScorerPort
}
