// Package config loads the chessbook.yaml project file that selects the
// annotation storage backend and the HTTP listen address.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultListen = "127.0.0.1"
	DefaultPort   = 8000
)

type ProjectConfig struct {
	Project string        `yaml:"project"`
	Version int           `yaml:"version"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

type StorageConfig struct {
	// Backend is one of "sqlite", "postgres", or "jsonfile".
	Backend string `yaml:"backend"`
	// DSN configures the sqlite and postgres backends.
	DSN string `yaml:"dsn"`
	// Path is the database file for the jsonfile backend.
	Path string `yaml:"path"`
}

type ServerConfig struct {
	Listen    string `yaml:"listen"`
	Port      int    `yaml:"port"`
	StaticDir string `yaml:"static_dir"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)
	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if strings.TrimSpace(cfg.Server.Listen) == "" {
		cfg.Server.Listen = DefaultListen
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}

	switch cfg.Storage.Backend {
	case "sqlite", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("storage dsn is required for backend %s", cfg.Storage.Backend)
		}
	case "jsonfile":
		if strings.TrimSpace(cfg.Storage.Path) == "" {
			return fmt.Errorf("storage path is required for backend jsonfile")
		}
	case "":
		return fmt.Errorf("storage backend is required")
	default:
		return fmt.Errorf("unknown storage backend: %s", cfg.Storage.Backend)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", cfg.Server.Port)
	}

	return nil
}
