// Package config provides hierarchical configuration loading for BoardBridge.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the BoardBridge service.
type Config struct {
	Server     Server     `yaml:"server"`
	Mattermost Mattermost `yaml:"mattermost"`
	Trello     Trello     `yaml:"trello"`
	Logging    Logging    `yaml:"logging"`
	Breaker    Breaker    `yaml:"breaker"`
	Cache      Cache      `yaml:"cache"`
	Tracing    Tracing    `yaml:"tracing"`
}

// Server holds HTTP server configuration.
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
}

// Mattermost holds the chat platform connection: where the app is installed
// and how it talks back to the platform.
type Mattermost struct {
	SiteURL       string `yaml:"site_url"`
	BotToken      string `yaml:"bot_token"`
	AppPath       string `yaml:"app_path"`
	WebhookSecret string `yaml:"webhook_secret"`
}

// Trello holds the board-management API configuration.
type Trello struct {
	BaseURL string `yaml:"base_url"`
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// Breaker holds circuit breaker configuration for outbound Trello calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Cache holds webhook delivery dedup cache configuration.
type Cache struct {
	MaxSizeMB int64         `yaml:"max_size_mb"`
	DedupTTL  time.Duration `yaml:"dedup_ttl"`
}

// Tracing holds OpenTelemetry trace export configuration.
type Tracing struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Defaults returns a Config with sensible default values for local development.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:8065",
		},
		Mattermost: Mattermost{
			SiteURL: "http://localhost:8065",
			AppPath: "/plugins/com.mattermost.apps/apps/boardbridge",
		},
		Trello: Trello{
			BaseURL: "https://api.trello.com/1",
		},
		Logging: Logging{
			Level:   "info",
			Service: "boardbridge",
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
		Cache: Cache{
			MaxSizeMB: 16,
			DedupTTL:  10 * time.Minute,
		},
		Tracing: Tracing{
			Endpoint: "localhost:4317",
		},
	}
}
