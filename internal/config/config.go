// Package config loads cratedig settings from TOML config files.
package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Database       string       `koanf:"database"`        // catalog database path
	LibrarySources []string     `koanf:"library_sources"` // directories scanned for audio files
	Search         SearchConfig `koanf:"search"`
}

// SearchConfig holds search behavior settings.
type SearchConfig struct {
	// DisableIndex forces substring matching for bare terms even when
	// the catalog has a full-text index.
	DisableIndex bool `koanf:"disable_index"`
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.Database == "" {
		cfg.Database = defaultDatabasePath()
	}
	cfg.Database = expandPath(cfg.Database)
	for i, src := range cfg.LibrarySources {
		cfg.LibrarySources[i] = expandPath(src)
	}
	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/cratedig/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "cratedig", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func defaultDatabasePath() string {
	path, err := xdg.DataFile(filepath.Join("cratedig", "library.db"))
	if err != nil {
		return "cratedig.db"
	}
	return path
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
