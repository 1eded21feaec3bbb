// SPDX-License-Identifier: MPL-2.0

package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/manualhub/manualhub/internal/atlas"
	"github.com/manualhub/manualhub/internal/catalog"
	"github.com/manualhub/manualhub/internal/config"
	"github.com/manualhub/manualhub/internal/feed"
	"github.com/manualhub/manualhub/internal/snapshot"

	"golang.org/x/sync/errgroup"
)

type (
	// Pipeline builds catalog snapshots and publishes them to its holder.
	// Rebuild runs are expected to be serialized by the caller; concurrent
	// readers of Current are always safe.
	Pipeline struct {
		cfg    *config.Config
		site   *config.SiteConfig
		feeds  *feed.Client
		holder snapshot.Holder
	}
)

// New creates a Pipeline for the given configuration.
func New(cfg *config.Config, site *config.SiteConfig, feedClient *feed.Client) *Pipeline {
	return &Pipeline{
		cfg:   cfg,
		site:  site,
		feeds: feedClient,
	}
}

// Current returns the currently published snapshot, or nil before the first
// successful rebuild.
func (p *Pipeline) Current() *snapshot.Snapshot {
	return p.holder.Current()
}

// Rebuild runs one full pipeline pass: icon atlas and feed fetches run
// concurrently, the catalog load consumes the feeds, ignore lists are
// expanded over the complete record set, and the assembled snapshot is
// published atomically. On error nothing is published and the previous
// snapshot stays current.
func (p *Pipeline) Rebuild(ctx context.Context) (*snapshot.Snapshot, error) {
	start := time.Now()

	var (
		sheet       *atlas.Atlas
		feeds       *feed.Feeds
		manualTimes map[string]time.Time
		pdfTimes    map[string]time.Time
	)

	// Atlas build, feed fetches, and freshness scans are independent of the
	// descriptor files, so they run concurrently. Only the atlas can fail
	// the run.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sheet, err = atlas.Build(p.cfg.IconDir)
		return err
	})
	g.Go(func() error {
		feeds = p.feeds.FetchAll(gctx)
		return nil
	})
	g.Go(func() error {
		manualTimes = scanModTimes(p.cfg.ManualDir, ".html")
		pdfTimes = scanModTimes(p.cfg.PDFDir, ".pdf")
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("building icon atlas: %w", err)
	}

	result, err := catalog.Load(ctx, p.cfg.ModuleDir, catalog.LoadOptions{
		ConsistencyCheck: p.cfg.ConsistencyCheck,
		Merge:            feeds.Merge,
	})
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}

	// Join barrier passed: every step below sees the complete record set.
	catalog.ExpandIgnoreLists(result.Entries)
	attachCoordinates(result.Entries, sheet)
	attachSheets(result.Entries)

	snap, err := assemble(result, sheet, p.site, manualTimes, pdfTimes)
	if err != nil {
		return nil, fmt.Errorf("assembling snapshot: %w", err)
	}

	p.holder.Publish(snap)
	slog.Info("catalog rebuilt",
		"modules", len(result.Entries),
		"errors", len(result.Errors),
		"duration", time.Since(start))
	return snap, nil
}

// attachCoordinates sets each record's icon grid cell. A translation record
// without an icon of its own inherits the coordinates of the record it
// translates; a missing translation target is skipped silently and the
// record keeps the blank-icon default.
func attachCoordinates(entries []*catalog.Entry, sheet *atlas.Atlas) {
	byID := make(map[string]*catalog.Entry, len(entries))
	for _, e := range entries {
		if e.Module.ModuleID != "" {
			byID[e.Module.ModuleID] = e
		}
	}

	for _, e := range entries {
		name := e.FileBase
		if e.Module.IsTranslation() && !sheet.Has(name) {
			if origin, ok := byID[e.Module.TranslationOf]; ok {
				name = origin.FileBase
			}
		}
		cell := sheet.Coordinate(name)
		e.Derived.X = cell.X
		e.Derived.Y = cell.Y
	}
}

// attachSheets fills the associated-sheet URLs for non-translation records:
// every other module whose name extends this module's name with a space is
// treated as one of its sheets by naming convention.
func attachSheets(entries []*catalog.Entry) {
	for _, e := range entries {
		if e.Module.IsTranslation() {
			continue
		}
		prefix := e.Module.Name + " "
		var sheets []string
		for _, other := range entries {
			if other == e || !strings.HasPrefix(other.Module.Name, prefix) {
				continue
			}
			sheets = append(sheets, "HTML/"+other.FileBase+".html")
		}
		e.Derived.Sheets = sheets
	}
}

// scanModTimes maps each file with the given extension in dir to its
// modification time. A missing or unreadable directory yields an empty map;
// freshness metadata is auxiliary and never fails a run.
func scanModTimes(dir, ext string) map[string]time.Time {
	times := make(map[string]time.Time)
	if dir == "" {
		return times
	}

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		slog.Debug("freshness scan skipped", "dir", dir, "error", err)
		return times
	}
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(strings.ToLower(de.Name()), ext) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		base := strings.TrimSuffix(de.Name(), filepath.Ext(de.Name()))
		times[base] = info.ModTime()
	}
	return times
}
