package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mj1618/desktop-pilot/internal/config"
	"github.com/mj1618/desktop-pilot/internal/observability"
	"github.com/mj1618/desktop-pilot/internal/output"
	"github.com/mj1618/desktop-pilot/internal/pilot"
	"github.com/mj1618/desktop-pilot/internal/platform"
	"github.com/mj1618/desktop-pilot/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "desktop-pilot",
	Short:         "Drive the mouse, keyboard and screen",
	Long:          "A CLI and MCP server that moves the mouse, types, reads pixels, captures the screen and finds images on it.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// appConfig is loaded in PersistentPreRunE.
var appConfig *config.Config

// newPilot builds the pilot for a command. Tests replace it.
var newPilot = func(cfg *config.Config) (*pilot.Pilot, error) {
	return pilot.NewFromConfig(cfg, observability.GetLogger())
}

func Execute() {
	err := rootCmd.Execute()
	platform.Shutdown()
	observability.Sync()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version.Version, version.Commit, version.BuildDate)
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Path to a YAML config file")
	flags.String("format", "yaml", "Output format: yaml, json")
	flags.Bool("pretty", false, "Indent JSON output")
	flags.String("backend", "", "Backend: native, simulated (overrides backend.kind)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (overrides logger.level)")

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		appConfig = cfg
		observability.InitializeLogger(cfg.Logger)

		// Read the root flag set so a subcommand flag of the same name
		// cannot shadow it.
		format, _ := rootCmd.PersistentFlags().GetString("format")
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		output.OutputFormat = f
		output.PrettyOutput, _ = rootCmd.PersistentFlags().GetBool("pretty")
		return nil
	}
}

// loadConfig layers defaults, the optional config file, DESKTOP_PILOT_*
// variables and the root flags, in increasing precedence.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := viper.New()
	config.SetDefaults(v)
	config.BindEnv(v)

	flags := rootCmd.PersistentFlags()
	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if flags.Changed("backend") {
		if err := v.BindPFlag("backend.kind", flags.Lookup("backend")); err != nil {
			return nil, err
		}
	}
	if flags.Changed("log-level") {
		if err := v.BindPFlag("logger.level", flags.Lookup("log-level")); err != nil {
			return nil, err
		}
	}
	return config.NewConfigFromViper(v)
}
