package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/labelwatch"
	"github.com/bft-labs/labelwatch/internal/cliconfig"
	lwlog "github.com/bft-labs/labelwatch/pkg/log"
)

var longHelp = strings.TrimSpace(`
Watch a folder for new label images and print them with brother_ql.

Files sharing a prefix before the group separator (A__1.png, A__2.png) are
printed as one strip: every label but the last is printed with --no-cut.
A group closes when a file from another group arrives or after the grace
period passes without new files. Printed files are renamed with the done
suffix, failed ones with the error suffix.

Arguments after the watch folder are passed to the print command. Those
before a literal "print" are global options, those after it are options of
the print subcommand.
`)

var exampleUsage = strings.TrimSpace(`
  labelwatch ./labels --model QL-700 --printer usb://0x04f9:0x2042 print -l 62
  labelwatch --timeout 60 --group_separator=- ./labels -m QL-800 print -l 29
  labelwatch --config $HOME/.labelwatch/config.yaml ./labels
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// normalizeFlag accepts --error_suffix as an alias of --error-suffix.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var (
		cfgPath     string
		timeoutSecs int
		graceSecs   float64
	)

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:           "labelwatch [flags] WATCH_FOLDER [command args...] [print [print args...]]",
		Short:         "Watch a folder and print new label images in groups",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if changed["timeout"] {
				cfg.Timeout = time.Duration(timeoutSecs) * time.Second
			}
			if changed["grace-period"] {
				cfg.GracePeriod = time.Duration(graceSecs * float64(time.Second))
			}

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			} else if cfgPath != "" {
				return fmt.Errorf("config file %s not found", cfgPath)
			}

			// LABELWATCH_* override the file but not explicit flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			cfg.WatchFolder = args[0]
			rest := args[1:]
			if len(rest) > 0 && rest[0] == "--" {
				rest = rest[1:]
			}
			cfg.GlobalArgs, cfg.PrintArgs = cliconfig.SplitCommandArgs(rest)

			if err := cfg.Validate(); err != nil {
				return err
			}

			log = cliconfig.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogJSON)
			log.Info().Interface("config", cfg).Msg("configuration")

			w, err := labelwatch.New(cfg, labelwatch.WithLogger(lwlog.NewZerologLogger(log)))
			if err != nil {
				return fmt.Errorf("create watcher: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := w.Run(ctx); err != nil {
				return err
			}
			log.Info().Msg("stopped")
			return nil
		},
	}

	flags := root.Flags()
	flags.SetInterspersed(false)
	flags.SetNormalizeFunc(normalizeFlag)

	flags.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.labelwatch/config.toml)")
	flags.StringVar(&cfg.Command, "command", cfg.Command, "print command binary")
	flags.StringVar(&cfg.Extension, "extension", cfg.Extension, "image extension to watch for (case-insensitive)")
	flags.IntVar(&timeoutSecs, "timeout", int(cfg.Timeout/time.Second), "timeout in seconds for one print command")
	flags.StringVar(&cfg.ErrorSuffix, "error-suffix", cfg.ErrorSuffix, "suffix added to files that failed to print")
	flags.StringVar(&cfg.DoneSuffix, "done-suffix", cfg.DoneSuffix, "suffix added to printed files")
	flags.StringVar(&cfg.GroupSeparator, "group-separator", cfg.GroupSeparator, "separator between group prefix and the rest of a file name")
	flags.Float64Var(&graceSecs, "grace-period", cfg.GracePeriod.Seconds(), "seconds to wait for more files of a group")
	flags.BoolVar(&cfg.MergeUngrouped, "merge-ungrouped", cfg.MergeUngrouped, "print consecutive files without a group prefix as one strip")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flags.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "write logs as JSON lines")

	if err := root.Execute(); err != nil {
		if errors.Is(err, labelwatch.ErrCommandNotFound) {
			log.Error().Err(err).Msg("print command is not available, terminating")
		} else {
			log.Error().Err(err).Msg("labelwatch")
		}
		os.Exit(1)
	}
}
