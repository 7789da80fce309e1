package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed config.example.yaml
var DefaultConfigYAML []byte

type Config struct {
	Discord DiscordConfig `yaml:"discord"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
}

type DiscordConfig struct {
	Token string `yaml:"token"`
	// ForumChannels lists channel IDs already known to be forums; they seed
	// the classification cache at startup so those channels never cost a
	// metadata fetch.
	ForumChannels []string `yaml:"forum_channels"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

func Load(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	// The token may live in the environment instead of (or in addition to)
	// the config file; the environment wins.
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Discord.Token = token
	}
	if cfg.Metrics.Addr == "" {
		cfg.Metrics.Addr = ":9090"
	}
	return cfg, nil
}
