// Package config loads the optional diskview configuration file.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the optional diskview configuration file. Pointer fields
// distinguish "set in the file" from "absent", so CLI flags keep priority.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Scan     ScanConfig     `toml:"scan"`
}

// DefaultsConfig holds persistent flag defaults.
type DefaultsConfig struct {
	Workers  *int    `toml:"workers"`
	Top      *int    `toml:"top"`
	MaxDepth *int    `toml:"max_depth"`
	Mode     *string `toml:"mode"`
	Width    *int    `toml:"width"`
	Height   *int    `toml:"height"`
}

// ScanConfig holds scan-engine tuning.
type ScanConfig struct {
	// SkipDirs replaces the built-in skip list when non-empty.
	SkipDirs []string `toml:"skip_dirs"`

	// MinLargeFile is a human-readable size ("100M") below which files are
	// excluded from the largest-files list.
	MinLargeFile *string `toml:"min_large_file"`
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "diskview", "config.toml")
}

// Load reads the config file from the XDG path. Returns a zero Config
// (no error) if the file does not exist. Config is always optional.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}

	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, err
	}
	return cfg, nil
}
