// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultDictPattern names dictionary files inside the dictionary directory.
const DefaultDictPattern = "{lang}_dictionary.txt"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DictionaryPath builds the word list path for a language.
func DictionaryPath(dir, pattern, lang string) string {
	if pattern == "" {
		pattern = DefaultDictPattern
	}
	return filepath.Join(dir, strings.ReplaceAll(pattern, "{lang}", lang))
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "voynich", "voynich.db")
}

// DefaultWordfreqCacheDir returns the cache directory for wordfreq wheels.
func DefaultWordfreqCacheDir() string {
	return filepath.Join(XDGDataHome(), "voynich", "wordfreq")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "voynich", "config.toml")
}
