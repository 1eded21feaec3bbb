// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for manualhub.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/manualhub/manualhub/internal/config"
	"github.com/manualhub/manualhub/internal/feed"
	"github.com/manualhub/manualhub/internal/pipeline"

	"github.com/charmbracelet/fang"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"

	// verbose enables debug logging
	verbose bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "manualhub",
		Short: "Module catalog pipeline for the manual hub",
		Long: TitleStyle.Render("manualhub") + SubtitleStyle.Render(" - module catalog pipeline") + `

manualhub merges per-module JSON descriptors with external scoring
feeds into one consistent, ready-to-serve catalog snapshot: the
catalog JSON, a generated page bootstrap script, and a composited
icon sprite sheet.

` + SubtitleStyle.Render("Examples:") + `
  manualhub rebuild             Run one pipeline pass
  manualhub rebuild --out dist  Run one pass and write the artifacts
  manualhub watch               Rebuild whenever descriptors change
  manualhub config show         Show the effective configuration`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.toml)")

	rootCmd.AddCommand(rebuildCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
}

// initLogging installs a charmbracelet logger as the default slog handler so
// every internal package logs through it.
func initLogging() {
	logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		ReportTimestamp: true,
	})
	if verbose {
		logger.SetLevel(charmlog.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// newPipeline wires a Pipeline from the loaded configuration. It is the
// composition root shared by the rebuild and watch commands.
func newPipeline() (*pipeline.Pipeline, *config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	site, err := config.LoadSite(cfg.SiteConfigPath)
	if err != nil {
		return nil, nil, err
	}

	feedClient := feed.NewClient(
		feed.WithTimeModeURL(cfg.TimeModeFeedURL),
		feed.WithTwitchPlaysURL(cfg.TwitchPlaysFeedURL),
		feed.WithUserAgent(config.AppName+"/"+Version),
	)

	return pipeline.New(cfg, site, feedClient), cfg, nil
}

func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
