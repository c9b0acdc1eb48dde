package cliconfig

import "os"

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "LABELWATCH_"

// ApplyEnvConfig applies configuration from environment variables (LABELWATCH_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("command", env("COMMAND"), &cfg.Command)
	s.setString("extension", env("EXTENSION"), &cfg.Extension)
	s.setString("error-suffix", env("ERROR_SUFFIX"), &cfg.ErrorSuffix)
	s.setString("done-suffix", env("DONE_SUFFIX"), &cfg.DoneSuffix)
	s.setString("group-separator", env("GROUP_SEPARATOR"), &cfg.GroupSeparator)
	s.setString("log-level", env("LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("timeout", env("TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}
	if err := s.setDuration("grace-period", env("GRACE_PERIOD"), &cfg.GracePeriod); err != nil {
		return err
	}

	s.setBoolFromString("merge-ungrouped", env("MERGE_UNGROUPED"), &cfg.MergeUngrouped)
	s.setBoolFromString("log-json", env("LOG_JSON"), &cfg.LogJSON)

	return nil
}

func env(name string) string {
	return os.Getenv(EnvPrefix + name)
}
