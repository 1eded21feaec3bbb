// SPDX-License-Identifier: MPL-2.0

// Package snapshot defines the published pipeline result and the single
// atomically swappable "current snapshot" reference.
//
// A Snapshot is immutable once published. Writers build the whole value
// locally and swap it in with one pointer update, so concurrent readers
// always observe either the previous complete snapshot or the next one,
// never an in-progress build.
package snapshot

import (
	"sync/atomic"
	"time"
)

type (
	// Snapshot is one complete published result of a pipeline run.
	Snapshot struct {
		// CatalogJSON is the ordered module catalog as a JSON array.
		CatalogJSON []byte
		// Script is the generated bootstrap script text embedding the catalog
		// plus display/filter/selectable configuration and load errors.
		Script string
		// IconPNG is the composited icon sprite sheet.
		IconPNG []byte
		// IconCSS is the stylesheet rule embedding IconPNG as a data URI.
		IconCSS string
		// LastModified is the maximum modification time across all
		// successfully loaded descriptor files.
		LastModified time.Time
		// ManualLastModified and PDFLastModified map manual/PDF base names to
		// their file modification times.
		ManualLastModified map[string]time.Time
		PDFLastModified    map[string]time.Time
		// Errors lists one human-readable entry per descriptor that failed to
		// load during the run.
		Errors []string
	}

	// Holder is the mutable slot holding the current snapshot. The zero value
	// is ready to use and holds no snapshot.
	Holder struct {
		current atomic.Pointer[Snapshot]
	}
)

// Current returns the current snapshot, or nil when no run has published yet.
func (h *Holder) Current() *Snapshot {
	return h.current.Load()
}

// Publish makes s the current snapshot. The caller must not mutate s
// afterwards.
func (h *Holder) Publish(s *Snapshot) {
	h.current.Store(s)
}
