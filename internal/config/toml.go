// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file. Fields are pointers so
// that unset keys never override command-line flags.
type FileConfig struct {
	Trial  TrialFileConfig  `toml:"trial"`
	CSV    CSVFileConfig    `toml:"csv"`
	Output OutputFileConfig `toml:"output"`
}

// TrialFileConfig maps trial settings.
type TrialFileConfig struct {
	TotalSeeds *int  `toml:"total-seeds"`
	Unweighted *bool `toml:"unweighted"`
}

// CSVFileConfig maps column-mapping defaults for CSV input.
type CSVFileConfig struct {
	DayColumn   *string `toml:"day-column"`
	CountColumn *string `toml:"count-column"`
}

// OutputFileConfig maps output destinations.
type OutputFileConfig struct {
	ExportPath *string `toml:"export-path"`
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
