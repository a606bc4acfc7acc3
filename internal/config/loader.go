package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "boardbridge.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// YAML file is optional; missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "BOARDBRIDGE_PORT")
	setString(&cfg.Server.CORSOrigin, "BOARDBRIDGE_CORS_ORIGIN")
	setString(&cfg.Mattermost.SiteURL, "MATTERMOST_SITE_URL")
	setString(&cfg.Mattermost.BotToken, "MATTERMOST_BOT_TOKEN")
	setString(&cfg.Mattermost.AppPath, "BOARDBRIDGE_APP_PATH")
	setString(&cfg.Mattermost.WebhookSecret, "BOARDBRIDGE_WEBHOOK_SECRET")
	setString(&cfg.Trello.BaseURL, "TRELLO_BASE_URL")
	setString(&cfg.Logging.Level, "BOARDBRIDGE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "BOARDBRIDGE_LOG_SERVICE")
	setInt(&cfg.Breaker.MaxFailures, "BOARDBRIDGE_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "BOARDBRIDGE_BREAKER_TIMEOUT")
	setInt64(&cfg.Cache.MaxSizeMB, "BOARDBRIDGE_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.DedupTTL, "BOARDBRIDGE_DEDUP_TTL")
	setBool(&cfg.Tracing.Enabled, "BOARDBRIDGE_TRACING_ENABLED")
	setString(&cfg.Tracing.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Mattermost.SiteURL == "" {
		return errors.New("mattermost.site_url is required")
	}
	if cfg.Trello.BaseURL == "" {
		return errors.New("trello.base_url is required")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	if cfg.Cache.DedupTTL <= 0 {
		return errors.New("cache.dedup_ttl must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
