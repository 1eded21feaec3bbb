// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/manualhub/manualhub/internal/snapshot"

	"github.com/spf13/cobra"
)

var (
	// outDir, when set, receives the snapshot artifacts as files.
	outDir string

	rebuildCmd = &cobra.Command{
		Use:   "rebuild",
		Short: "Run one catalog pipeline pass",
		Long: `Run one full pipeline pass: parse all module descriptors, merge the
external scoring feeds, composite the icon sprite sheet, and assemble
the catalog snapshot. With --out the snapshot artifacts are written to
the given directory for inspection.`,
		RunE: runRebuild,
	}
)

func init() {
	rebuildCmd.Flags().StringVar(&outDir, "out", "", "write snapshot artifacts to this directory")
}

func runRebuild(cobraCmd *cobra.Command, _ []string) error {
	p, _, err := newPipeline()
	if err != nil {
		return err
	}

	snap, err := p.Rebuild(cobraCmd.Context())
	if err != nil {
		return err
	}

	fmt.Println(SuccessStyle.Render("✓") + " catalog rebuilt, last modified " +
		snap.LastModified.Format("2006-01-02 15:04:05"))
	for _, loadErr := range snap.Errors {
		fmt.Println(WarningStyle.Render("!") + " " + loadErr)
	}

	if outDir != "" {
		if err := writeArtifacts(outDir, snap); err != nil {
			return err
		}
		fmt.Println(SubtitleStyle.Render("artifacts written to " + outDir))
	}
	return nil
}

// writeArtifacts dumps the snapshot to disk. This is a CLI convenience for
// inspection and static hosting; the pipeline itself only publishes in
// memory.
func writeArtifacts(dir string, snap *snapshot.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	artifacts := map[string][]byte{
		"catalog.json": snap.CatalogJSON,
		"bootstrap.js": []byte(snap.Script),
		"icons.png":    snap.IconPNG,
		"icons.css":    []byte(snap.IconCSS),
	}
	for name, data := range artifacts {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
