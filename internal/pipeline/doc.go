// SPDX-License-Identifier: MPL-2.0

// Package pipeline orchestrates one catalog rebuild: icon atlas and external
// feed fetches run concurrently, the catalog loader consumes the feeds while
// parsing descriptors in parallel, ignore lists are expanded once the full
// record set exists, and the assembled snapshot is published with a single
// atomic pointer swap. A failed run never replaces the previous snapshot.
package pipeline
