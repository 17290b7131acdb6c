// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Analysis AnalysisConfig `toml:"analysis"`
}

// AnalysisConfig maps analysis-related settings. Nil fields are unset.
type AnalysisConfig struct {
	Text         *string           `toml:"text"`
	Languages    []string          `toml:"languages"`
	DictDir      *string           `toml:"dict-dir"`
	DictPattern  *string           `toml:"dict-pattern"`
	PolyKey      *string           `toml:"poly-key"`
	Clean        *bool             `toml:"clean"`
	Jobs         *int              `toml:"jobs"`
	Format       *string           `toml:"format"`
	Substitution map[string]string `toml:"substitution"`
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

// SubstitutionMap converts the [analysis.substitution] table into a rune map.
// Keys and values must be single characters.
func (c AnalysisConfig) SubstitutionMap() (map[rune]rune, error) {
	if len(c.Substitution) == 0 {
		return nil, nil
	}
	out := make(map[rune]rune, len(c.Substitution))
	for k, v := range c.Substitution {
		kr := []rune(k)
		vr := []rune(v)
		if len(kr) != 1 || len(vr) != 1 {
			return nil, fmt.Errorf("substitution entry %q = %q must map one letter to one letter", k, v)
		}
		out[kr[0]] = vr[0]
	}
	return out, nil
}
