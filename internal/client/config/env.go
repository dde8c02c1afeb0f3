package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/lustless/lustless-client/internal/flagx"
)

const envPrefix = "LUSTLESS_"

// parseEnv overlays Config with LUSTLESS_* variables.
//
// Values come from the process environment and from a dotenv file: the one
// named by -e/-env, or ./.env when present. The process environment wins over
// the file. The file is read, never exported into the process.
//
// Panics on an unreadable explicit file or an unparsable duration.
func parseEnv(cfg *Config) {
	file := map[string]string{}

	path := flagx.EnvFileFlag()
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	vals, err := godotenv.Read(path)
	switch {
	case err == nil:
		file = vals
	case explicit || !errors.Is(err, fs.ErrNotExist):
		panic(err)
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := file[envPrefix+key]
		return v, ok
	}

	setString(lookup, "API_URL", &cfg.APIBaseURL)
	setString(lookup, "LANG", &cfg.Language)
	setString(lookup, "DATA_DIR", &cfg.DataDir)
	setString(lookup, "DB_FILE", &cfg.DBFile)
	setString(lookup, "DEFAULT_COUNTRY_CODE", &cfg.DefaultCountryCode)
	setString(lookup, "LOG_LEVEL", &cfg.LogLevel)
	setDuration(lookup, "REFRESH_SKEW", &cfg.RefreshSkew)
	setDuration(lookup, "REQUEST_TIMEOUT", &cfg.RequestTimeout)
	setDuration(lookup, "ONBOARDING_TTL", &cfg.OnboardingTTL)
}

func setString(lookup func(string) (string, bool), key string, dst *string) {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		*dst = strings.TrimSpace(v)
	}
}

func setDuration(lookup func(string) (string, bool), key string, dst *time.Duration) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		panic(err)
	}
	*dst = d
}
