// Package cli provides the `settings` command-line tool.
//
// The tool loads a service's configuration the same way the service does
// (environment overrides, one file, one directory) and prints the result,
// the warnings recorded while loading, or the validation failures.
//
// Usage
//
//	settings print --config-file /etc/sensu/config.json --config-dir /etc/sensu/conf.d
//	settings print --format toml
//	settings warnings -d /etc/sensu/conf.d
//	settings files -d /etc/sensu/conf.d
//	settings validate --service client -d /etc/sensu/conf.d
//
// Flags fall back to SENSU_CONFIG_FILE, SENSU_CONFIG_DIR, SENSU_LOG_LEVEL and
// SENSU_LOG_FORMAT.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/settings"
	"github.com/lixenwraith/settings/internal/logger"
	"github.com/lixenwraith/settings/validator"
)

// Defaults are the flag defaults read from the environment.
type Defaults struct {
	ConfigFile string `env:"SENSU_CONFIG_FILE"`
	ConfigDir  string `env:"SENSU_CONFIG_DIR"`
	LogLevel   string `env:"SENSU_LOG_LEVEL" envDefault:"warn"`
	LogFormat  string `env:"SENSU_LOG_FORMAT" envDefault:"console"`
}

// ParseDefaults reads Defaults from environ.
func ParseDefaults(environ map[string]string) (Defaults, error) {
	var d Defaults
	if err := env.ParseWithOptions(&d, env.Options{Environment: environ}); err != nil {
		return Defaults{}, fmt.Errorf("error getting env defaults: %w", err)
	}
	return d, nil
}

// logLevelOff disables logging entirely.
const logLevelOff = "off"

// options hold the persistent flag values.
type options struct {
	configFile string
	configDir  string
	logLevel   string
	logFormat  string
	env        settings.Environment
}

// NewRoot constructs the root command. environment is where overrides are
// read from; pass settings.ProcessEnvironment() outside tests.
func NewRoot(environment settings.Environment) *cobra.Command {
	opts := &options{env: environment}

	defaults, err := ParseDefaults(environment.Environ())
	if err != nil {
		defaults = Defaults{LogLevel: "warn", LogFormat: "console"}
	}

	root := &cobra.Command{
		Use:           "settings",
		Short:         "Load, inspect and validate service settings",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configFile, "config-file", "c", defaults.ConfigFile, "Configuration file")
	root.PersistentFlags().StringVarP(&opts.configDir, "config-dir", "d", defaults.ConfigDir, "Configuration directory")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", defaults.LogLevel, "Log level: debug|info|warn|error|off")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", defaults.LogFormat, "Log format: console|json")

	root.AddCommand(newPrintCommand(opts))
	root.AddCommand(newWarningsCommand(opts))
	root.AddCommand(newFilesCommand(opts))
	root.AddCommand(newValidateCommand(opts))
	return root
}

// load builds a loader from the flags and runs a full load.
func (o *options) load(cmd *cobra.Command, extra ...settings.Option) *settings.Loader {
	log := logger.Nop()
	if o.logLevel != logLevelOff {
		log = logger.New(cmd.ErrOrStderr(), "settings", o.logLevel, logger.Format(o.logFormat))
	}

	opts := append([]settings.Option{
		settings.WithEnvironment(o.env),
		settings.WithLogger(log),
	}, extra...)

	loader := settings.New(opts...)
	loader.Load(settings.LoadOptions{File: o.configFile, Directory: o.configDir})
	return loader
}

func newPrintCommand(opts *options) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the merged settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := opts.load(cmd)
			return loader.Dump(cmd.OutOrStdout(), format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", settings.FormatJSON, "Output format: json|toml|yaml")
	return cmd
}

func newWarningsCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "warnings",
		Short: "Print the warnings recorded while loading",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := opts.load(cmd)
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(loader.Warnings())
		},
	}
}

func newFilesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "files",
		Short: "Print the configuration files that were loaded",
		RunE: func(cmd *cobra.Command, args []string) error {
			loader := opts.load(cmd)
			for _, f := range loader.LoadedFiles() {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		},
	}
}

func newValidateCommand(opts *options) *cobra.Command {
	var service string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the merged settings for a service",
		RunE: func(cmd *cobra.Command, args []string) error {
			processName := os.Args[0]
			if service != "" {
				processName = "sensu-" + service
			}

			loader := opts.load(cmd,
				settings.WithValidator(validator.New()),
				settings.WithProcessName(processName),
			)
			failures, err := loader.Validate()
			if err != nil {
				return err
			}
			if len(failures) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "settings are valid")
				return nil
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(failures); err != nil {
				return err
			}
			return fmt.Errorf("%d validation failures", len(failures))
		},
	}
	cmd.Flags().StringVarP(&service, "service", "s", "", "Service to validate for (default: derived from the process name)")
	return cmd
}
