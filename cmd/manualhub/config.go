// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/manualhub/manualhub/internal/config"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

var (
	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Inspect the manualhub configuration",
	}

	configShowCmd = &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  runConfigShow,
	}
)

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	rendered, err := toml.Marshal(map[string]any{
		"module_dir":            cfg.ModuleDir,
		"icon_dir":              cfg.IconDir,
		"manual_dir":            cfg.ManualDir,
		"pdf_dir":               cfg.PDFDir,
		"time_mode_feed_url":    cfg.TimeModeFeedURL,
		"twitch_plays_feed_url": cfg.TwitchPlaysFeedURL,
		"consistency_check":     cfg.ConsistencyCheck,
		"site_config_path":      cfg.SiteConfigPath,
	})
	if err != nil {
		return fmt.Errorf("rendering config: %w", err)
	}

	fmt.Print(string(rendered))
	return nil
}
