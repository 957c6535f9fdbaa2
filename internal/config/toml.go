// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Generate GenerateConfig `toml:"generate"`
}

// GenerateConfig maps worksheet-generation settings. Values are pointers so
// the CLI can tell "unset" from a zero value; file values fill in flags the
// user did not pass.
type GenerateConfig struct {
	File        *string `toml:"file"`
	Number      *int    `toml:"number"`
	MinRating   *int    `toml:"min-rating"`
	MaxRating   *int    `toml:"max-rating"`
	Progressive *bool   `toml:"progressive"`
	HideRatings *bool   `toml:"hide-ratings"`
	Output      *string `toml:"output"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
