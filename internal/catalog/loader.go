// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

type (
	// LoadOptions configures a catalog load pass.
	LoadOptions struct {
		// ConsistencyCheck enables the re-serialize-and-compare self-check on
		// every descriptor (development mode).
		ConsistencyCheck bool
		// Merge, when non-nil, is invoked for each parsed record before
		// derived fields are filled. The pipeline uses it to apply the
		// external feed merges.
		Merge func(*Module)
	}

	// LoadResult is the fan-in of one load pass: the successfully loaded
	// entries sorted case-insensitively by name, plus one human-readable
	// error per descriptor that failed to parse.
	LoadResult struct {
		Entries []*Entry
		Errors  []string
	}

	// outcome is the per-file slot written by exactly one worker.
	outcome struct {
		entry *Entry
		err   error
	}
)

// Load parses every *.json descriptor in dir. Files are processed in
// parallel, bounded by the number of available processing units; a malformed
// file is dropped and reported in LoadResult.Errors, never failing the pass.
// Load itself fails only when the directory cannot be read or ctx is
// cancelled.
func Load(ctx context.Context, dir string, opts LoadOptions) (*LoadResult, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor directory: %w", err)
	}

	var paths []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}

	// Fan-out over a fixed task set: each worker writes only its own slot, so
	// no shared accumulation happens before the join barrier.
	outcomes := make([]outcome, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = loadOne(path, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &LoadResult{}
	for i, out := range outcomes {
		if out.err != nil {
			name := filepath.Base(paths[i])
			slog.Warn("descriptor rejected", "file", name, "error", out.err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", name, out.err))
			continue
		}
		result.Entries = append(result.Entries, out.entry)
	}

	sort.Slice(result.Entries, func(i, j int) bool {
		return strings.ToLower(result.Entries[i].Module.Name) < strings.ToLower(result.Entries[j].Module.Name)
	})

	return result, nil
}

// loadOne handles a single descriptor: parse, feed merge, derived fields.
func loadOne(path string, opts LoadOptions) outcome {
	info, err := os.Stat(path)
	if err != nil {
		return outcome{err: err}
	}

	m, err := ParseDescriptor(path, opts.ConsistencyCheck)
	if err != nil {
		return outcome{err: err}
	}

	if opts.Merge != nil {
		opts.Merge(m)
	}

	if m.Author == "" && len(m.Contributors) > 0 {
		m.Author = formatContributors(m.Contributors)
	}

	e := &Entry{
		Module:   m,
		Path:     path,
		FileBase: fileBase(path),
		ModTime:  info.ModTime(),
	}
	if e.FileBase != m.Name {
		e.Derived.FileName = e.FileBase
	}
	return outcome{entry: e}
}

// fileBase derives the record's file name: the base name without the .json
// extension, trimmed of stray whitespace.
func fileBase(path string) string {
	return strings.TrimSpace(strings.TrimSuffix(filepath.Base(path), ".json"))
}
