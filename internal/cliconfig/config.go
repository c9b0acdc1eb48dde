package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bft-labs/labelwatch/internal/domain"
)

// Defaults for the labelwatch CLI.
const (
	DefaultCommand        = "brother_ql"
	DefaultExtension      = ".png"
	DefaultTimeout        = 30 * time.Second
	DefaultErrorSuffix    = ".error"
	DefaultDoneSuffix     = ".done"
	DefaultGroupSeparator = "__"
	DefaultGracePeriod    = 250 * time.Millisecond
	DefaultLogLevel       = "info"
)

// Config holds CLI configuration for labelwatch.
type Config struct {
	WatchFolder string

	Command    string
	GlobalArgs []string
	PrintArgs  []string

	Extension      string
	Timeout        time.Duration
	ErrorSuffix    string
	DoneSuffix     string
	GroupSeparator string
	GracePeriod    time.Duration
	MergeUngrouped bool

	LogLevel string
	LogJSON  bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Command:        DefaultCommand,
		Extension:      DefaultExtension,
		Timeout:        DefaultTimeout,
		ErrorSuffix:    DefaultErrorSuffix,
		DoneSuffix:     DefaultDoneSuffix,
		GroupSeparator: DefaultGroupSeparator,
		GracePeriod:    DefaultGracePeriod,
		LogLevel:       DefaultLogLevel,
	}
}

// Validate checks the configuration for errors and makes WatchFolder absolute.
// All errors wrap domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.WatchFolder == "" {
		return invalid("watch folder is required")
	}
	abs, err := filepath.Abs(c.WatchFolder)
	if err != nil {
		return invalid("resolve watch folder %q: %v", c.WatchFolder, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return invalid("watch folder %q does not exist", c.WatchFolder)
		}
		return invalid("watch folder %q: %v", c.WatchFolder, err)
	}
	if !info.IsDir() {
		return invalid("watch folder %q is not a directory", c.WatchFolder)
	}
	c.WatchFolder = abs

	if c.Command == "" {
		return invalid("command must not be empty")
	}
	if c.Extension == "" {
		return invalid("extension must not be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		c.Extension = "." + c.Extension
	}
	if c.Timeout <= 0 {
		return invalid("timeout must be positive")
	}
	if c.GracePeriod <= 0 {
		return invalid("grace period must be positive")
	}
	if c.GroupSeparator == "" {
		return invalid("group separator must not be empty")
	}
	if c.ErrorSuffix == "" || c.DoneSuffix == "" {
		return invalid("done and error suffixes must not be empty")
	}
	if c.ErrorSuffix == c.DoneSuffix {
		return invalid("done suffix and error suffix are both %q", c.DoneSuffix)
	}
	ext := strings.ToLower(c.Extension)
	for _, suffix := range []string{c.DoneSuffix, c.ErrorSuffix} {
		// a renamed label must not look like a new one
		if strings.HasSuffix(strings.ToLower(suffix), ext) {
			return invalid("suffix %q ends with the watched extension %q", suffix, c.Extension)
		}
	}

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return invalid("log level %q: %v", c.LogLevel, err)
	}
	return nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
