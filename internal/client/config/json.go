package config

import (
	"encoding/json"
	"os"

	"github.com/lustless/lustless-client/internal/flagx"
	"github.com/lustless/lustless-client/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations use timex.Duration so JSON can give them either as strings like
// "60s" or as integer nanoseconds.
type JsonConfig struct {
	APIBaseURL         string          `json:"api_base_url"`
	Language           string          `json:"language"`
	DataDir            string          `json:"data_dir"`
	DBFile             string          `json:"db_file"`
	RefreshSkew        *timex.Duration `json:"refresh_skew"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
	OnboardingTTL      *timex.Duration `json:"onboarding_ttl"`
	DefaultCountryCode string          `json:"default_country_code"`
	LogLevel           string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Only keys present in the file are applied. Panics on read or
// unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.APIBaseURL, jc.APIBaseURL)
	overlay(&cfg.Language, jc.Language)
	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.DBFile, jc.DBFile)
	overlay(&cfg.DefaultCountryCode, jc.DefaultCountryCode)
	overlay(&cfg.LogLevel, jc.LogLevel)

	if jc.RefreshSkew != nil {
		cfg.RefreshSkew = jc.RefreshSkew.Duration
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.OnboardingTTL != nil {
		cfg.OnboardingTTL = jc.OnboardingTTL.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
