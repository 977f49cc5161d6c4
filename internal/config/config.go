package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	UIModeTUI      = "tui"
	UIModeHeadless = "headless"
)

type Config struct {
	IEX          IEXConfig          `yaml:"iex"`
	Connectivity ConnectivityConfig `yaml:"connectivity"`
	Controller   ControllerConfig   `yaml:"controller"`
	UI           UIConfig           `yaml:"ui"`
	Telegram     TelegramConfig     `yaml:"telegram"`
	Web          WebConfig          `yaml:"web"`
	Logging      LoggingConfig      `yaml:"logging"`
}

type IEXConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	LogoRequired   bool   `yaml:"logo_required"`
	LogoCacheSize  int    `yaml:"logo_cache_size"`
	LogoCacheTTL   string `yaml:"logo_cache_ttl"`
}

type ConnectivityConfig struct {
	ProbeAddress   string `yaml:"probe_address"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type ControllerConfig struct {
	RefreshInterval string `yaml:"refresh_interval"`
}

type UIConfig struct {
	Mode string `yaml:"mode"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type WebConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func setDefaults(cfg *Config) {
	if cfg.IEX.TimeoutSeconds == 0 {
		cfg.IEX.TimeoutSeconds = 30
	}
	if cfg.IEX.LogoCacheSize == 0 {
		cfg.IEX.LogoCacheSize = 64
	}
	if cfg.IEX.LogoCacheTTL == "" {
		cfg.IEX.LogoCacheTTL = "24h"
	}
	if cfg.Connectivity.ProbeAddress == "" {
		cfg.Connectivity.ProbeAddress = "api.iextrading.com:443"
	}
	if cfg.Connectivity.TimeoutSeconds == 0 {
		cfg.Connectivity.TimeoutSeconds = 3
	}
	if cfg.UI.Mode == "" {
		cfg.UI.Mode = UIModeTUI
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	// stdout belongs to the terminal UI
	if cfg.UI.Mode == UIModeTUI && cfg.Logging.File == "" {
		cfg.Logging.File = "stocks.log"
	}
}

func (c *Config) Validate() error {
	if c.IEX.TimeoutSeconds < 0 {
		return fmt.Errorf("iex.timeout_seconds must be positive")
	}
	if c.IEX.LogoCacheSize < 0 {
		return fmt.Errorf("iex.logo_cache_size must be positive")
	}
	if d, err := time.ParseDuration(c.IEX.LogoCacheTTL); err != nil || d <= 0 {
		return fmt.Errorf("invalid iex.logo_cache_ttl %q", c.IEX.LogoCacheTTL)
	}
	if c.Connectivity.TimeoutSeconds < 0 {
		return fmt.Errorf("connectivity.timeout_seconds must be positive")
	}
	if c.Controller.RefreshInterval != "" {
		d, err := time.ParseDuration(c.Controller.RefreshInterval)
		if err != nil {
			return fmt.Errorf("invalid controller.refresh_interval %q: %w", c.Controller.RefreshInterval, err)
		}
		if d <= 0 {
			return fmt.Errorf("controller.refresh_interval must be positive")
		}
	}
	switch c.UI.Mode {
	case UIModeTUI:
	case UIModeHeadless:
		if !c.Web.Enabled && !c.Telegram.Enabled {
			return fmt.Errorf("ui.mode %q needs web or telegram enabled", UIModeHeadless)
		}
	default:
		return fmt.Errorf("unknown ui.mode %q", c.UI.Mode)
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

func (c *Config) IEXTimeout() time.Duration {
	return time.Duration(c.IEX.TimeoutSeconds) * time.Second
}

func (c *Config) LogoCacheTTL() time.Duration {
	d, _ := time.ParseDuration(c.IEX.LogoCacheTTL)
	return d
}

func (c *Config) ConnectivityTimeout() time.Duration {
	return time.Duration(c.Connectivity.TimeoutSeconds) * time.Second
}

// RefreshInterval returns zero when periodic refresh is disabled.
func (c *Config) RefreshInterval() time.Duration {
	d, _ := time.ParseDuration(c.Controller.RefreshInterval)
	return d
}
