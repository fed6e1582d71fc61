package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Registry RegistryConfig `yaml:"registry"`
	Schedule ScheduleConfig `yaml:"schedule"`
	Notify   NotifyConfig   `yaml:"notify"`
	Server   ServerConfig   `yaml:"server"`
}

// SourceConfig configures the horoscope site scraper.
type SourceConfig struct {
	BaseURL string `yaml:"base_url"`
}

// RegistryConfig locates the sign-to-names registry file.
type RegistryConfig struct {
	Path string `yaml:"path"`
}

// ScheduleConfig configures the daily send time.
type ScheduleConfig struct {
	SendAt   string `yaml:"send_at"`  // "HH:MM" wall-clock time
	Timezone string `yaml:"timezone"` // IANA zone name
}

// ParseSendAt returns the configured send time as hour and minute.
func (s ScheduleConfig) ParseSendAt() (hour, minute int) {
	t, err := time.Parse("15:04", s.SendAt)
	if err != nil {
		return 7, 30
	}
	return t.Hour(), t.Minute()
}

// Location returns the configured timezone, falling back to local time.
func (s ScheduleConfig) Location() *time.Location {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// NotifyConfig configures digest destinations.
type NotifyConfig struct {
	Slack   SlackConfig   `yaml:"slack"`
	Discord DiscordConfig `yaml:"discord"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// SlackConfig for Slack Web API delivery.
type SlackConfig struct {
	Enabled   bool   `yaml:"enabled"`
	BotToken  string `yaml:"bot_token"`
	ChannelID string `yaml:"channel_id"`
}

// DiscordConfig for Discord webhook delivery.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig for generic webhook delivery.
type WebhookConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Secret  string `yaml:"secret"`
}

// ServerConfig configures the status HTTP server.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Source:   SourceConfig{BaseURL: "https://www.horoskopy.cz"},
		Registry: RegistryConfig{Path: "./names_zodiacs.json"},
		Schedule: ScheduleConfig{
			SendAt:   "07:30",
			Timezone: "Europe/Prague",
		},
		Notify: NotifyConfig{},
		Server: ServerConfig{Port: 8080},
	}
}

// Load reads configuration from a YAML file and applies env var overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HOROBOT_BASE_URL"); v != "" {
		cfg.Source.BaseURL = v
	}
	if v := os.Getenv("HOROBOT_REGISTRY"); v != "" {
		cfg.Registry.Path = v
	}
	if v := os.Getenv("SLACK_BOT_TOKEN"); v != "" {
		cfg.Notify.Slack.BotToken = v
		cfg.Notify.Slack.Enabled = true
	}
	if v := os.Getenv("SLACK_CHANNEL_ID"); v != "" {
		cfg.Notify.Slack.ChannelID = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		cfg.Notify.Discord.WebhookURL = v
		cfg.Notify.Discord.Enabled = true
	}
}
