// Package cmd implements the CLI commands for adfpipe using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/adfpipe/internal/config"
	"github.com/gaurav-prasanna/adfpipe/internal/logging"
)

var (
	flagConfig   string
	flagLogLevel string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "adfpipe",
	Short: "adfpipe: convert rich-text editor HTML into Jira descriptions",
	Long: `adfpipe converts the HTML produced by a rich-text editor into an
Atlassian Document Format (ADF) document, the format Jira Cloud expects in
an issue's description field. It can also render the same input as wiki
text, Markdown or PDF, and create Jira issues directly.

Usage:
  adfpipe convert <source>... [flags]
  adfpipe inspect <source>
  adfpipe submit <source> --summary <text> [flags]`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ~/.adfpipe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute() {
	logging.SetDefaultLogger()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, applies global flag overrides and sets
// up logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if flagConfig != "" {
		cfg, err = config.LoadFromPath(flagConfig)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	if err := logging.Setup(cfg.Logging.Level, os.Stderr); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log.Debug().Str("command", cmd.Name()).Msg("Configuration loaded")
	return nil
}
