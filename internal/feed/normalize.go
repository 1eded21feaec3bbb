// SPDX-License-Identifier: MPL-2.0

package feed

import "strings"

// Normalize canonicalizes a display name for cross-source matching:
// lowercase, with the typographic apostrophe folded to the plain ASCII one.
// Feed spreadsheets and descriptor authors disagree on both, so every lookup
// key goes through here.
func Normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "’", "'"))
}
