package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	Command        string `toml:"command" yaml:"command"`
	Extension      string `toml:"extension" yaml:"extension"`
	Timeout        string `toml:"timeout" yaml:"timeout"`
	ErrorSuffix    string `toml:"error_suffix" yaml:"error_suffix"`
	DoneSuffix     string `toml:"done_suffix" yaml:"done_suffix"`
	GroupSeparator string `toml:"group_separator" yaml:"group_separator"`
	GracePeriod    string `toml:"grace_period" yaml:"grace_period"`
	MergeUngrouped *bool  `toml:"merge_ungrouped" yaml:"merge_ungrouped"`
	LogLevel       string `toml:"log_level" yaml:"log_level"`
	LogJSON        *bool  `toml:"log_json" yaml:"log_json"`
}

// LoadFileConfig reads and parses a config file from the given path.
// Files ending in .yaml or .yml are parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.labelwatch/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".labelwatch", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("command", fc.Command, &cfg.Command)
	s.setString("extension", fc.Extension, &cfg.Extension)
	s.setString("error-suffix", fc.ErrorSuffix, &cfg.ErrorSuffix)
	s.setString("done-suffix", fc.DoneSuffix, &cfg.DoneSuffix)
	s.setString("group-separator", fc.GroupSeparator, &cfg.GroupSeparator)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("timeout", fc.Timeout, &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("grace-period", fc.GracePeriod, &cfg.GracePeriod); err != nil {
		return err
	}

	s.setBool("merge-ungrouped", fc.MergeUngrouped, &cfg.MergeUngrouped)
	s.setBool("log-json", fc.LogJSON, &cfg.LogJSON)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
