package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BankConfig identifies one bank to analyze: its display name, its provider
// ticker symbol, and the color used for it across every chart and table.
type BankConfig struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Color  string `yaml:"color"`
}

// Config is the full file-based configuration. Provider credentials are not
// here on purpose; they come from the environment (see loadSecrets).
type Config struct {
	Banks           []BankConfig `yaml:"banks"`
	DataDir         string       `yaml:"data_dir"`
	OutputDir       string       `yaml:"output_dir"`
	ProjectionYears int          `yaml:"projection_years"`
	RedisAddr       string       `yaml:"redis_addr"` // empty disables the fetch cache
	ServerAddr      string       `yaml:"server_addr"`
}

const defaultBankColor = "#6366f1"

// loadConfig reads and validates a YAML config file, applying defaults for
// anything optional.
func loadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if len(cfg.Banks) == 0 {
		return nil, errNoBanksConfigured
	}
	for i, bank := range cfg.Banks {
		if bank.Name == "" || bank.Symbol == "" {
			return nil, fmt.Errorf("bank #%d needs both a name and a symbol", i+1)
		}
		if bank.Color == "" {
			cfg.Banks[i].Color = defaultBankColor
		}
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "docs"
	}
	if cfg.ProjectionYears <= 0 {
		cfg.ProjectionYears = 3
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = ":3001"
	}

	return cfg, nil
}

// colorFor returns the configured display color for a bank name.
func (c *Config) colorFor(name string) string {
	for _, bank := range c.Banks {
		if bank.Name == name {
			return bank.Color
		}
	}
	return defaultBankColor
}
