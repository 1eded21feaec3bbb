// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/manualhub/manualhub/internal/watch"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the catalog whenever descriptors or icons change",
	Long: `Run an initial pipeline pass, then monitor the descriptor and icon
directories and rebuild after changes settle. Rapid successive changes
(an editor save, a git pull) coalesce into a single rebuild.`,
	RunE: runWatch,
}

func runWatch(cobraCmd *cobra.Command, _ []string) error {
	p, cfg, err := newPipeline()
	if err != nil {
		return err
	}

	// Initial pass so the first change event diffs against a real snapshot.
	if _, err := p.Rebuild(cobraCmd.Context()); err != nil {
		return err
	}

	w, err := watch.New(watch.Config{
		Dirs:     []string{cfg.ModuleDir, cfg.IconDir},
		Patterns: []string{"*.json", "*.png"},
		OnChange: func(ctx context.Context) error {
			_, rebuildErr := p.Rebuild(ctx)
			return rebuildErr
		},
	})
	if err != nil {
		return err
	}

	fmt.Println(SubtitleStyle.Render("watching " + cfg.ModuleDir + " and " + cfg.IconDir))
	return w.Run(cobraCmd.Context())
}
