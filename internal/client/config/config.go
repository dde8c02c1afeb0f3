package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds runtime settings for the Lustless client.
//
// Units: RefreshSkew, RequestTimeout and OnboardingTTL are time.Duration.
type Config struct {
	APIBaseURL         string        `validate:"required,url"`
	Language           string        `validate:"required"`
	DataDir            string        `validate:"required"`
	DBFile             string        `validate:"required"`
	RefreshSkew        time.Duration `validate:"gte=0"`
	RequestTimeout     time.Duration `validate:"gt=0"`
	OnboardingTTL      time.Duration `validate:"gte=0"`
	DefaultCountryCode string        `validate:"required,startswith=+,max=4"`
	LogLevel           string        `validate:"oneof=debug info warn warning error"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.Language = "en"
	c.DataDir = ".lustless"
	c.DBFile = "lustless.db"
	c.RefreshSkew = 60 * time.Second
	c.RequestTimeout = 30 * time.Second
	c.OnboardingTTL = 7 * 24 * time.Hour
	c.DefaultCountryCode = "+1"
	c.LogLevel = "info"
}

// DBPath is the SQLite file inside DataDir.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFile)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the .env file, JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
