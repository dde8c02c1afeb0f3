// Package config loads runtime configuration for the Lustless client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. LUSTLESS_* variables from the environment or a dotenv file (-e/-env,
//     else ./.env when present). See parseEnv.
//  3. Optional JSON file selected via -c or -config. See parseJson.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   backend base URL
//	-l string   language tag
//	-d string   local data directory
//	-v string   log level
//
// # JSON schema
//
// Durations are timex.Duration, so values can be strings like "60s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.lustless.app",
//	  "language": "en",
//	  "data_dir": "/var/lib/lustless",
//	  "db_file": "lustless.db",
//	  "refresh_skew": "60s",
//	  "request_timeout": "30s",
//	  "onboarding_ttl": "168h",
//	  "default_country_code": "+1",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	LUSTLESS_API_URL, LUSTLESS_LANG, LUSTLESS_DATA_DIR, LUSTLESS_DB_FILE,
//	LUSTLESS_REFRESH_SKEW, LUSTLESS_REQUEST_TIMEOUT, LUSTLESS_ONBOARDING_TTL,
//	LUSTLESS_DEFAULT_COUNTRY_CODE, LUSTLESS_LOG_LEVEL
//
// Primary API
//
//   - type Config
//   - func LoadConfig() *Config       builds Config from defaults, env, JSON, then flags
//   - func (*Config) LoadDefaults()
//   - func (*Config) Validate() error
package config
