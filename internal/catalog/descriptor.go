// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"reflect"

	"github.com/manualhub/manualhub/internal/cueutil"
)

//go:embed module_schema.cue
var moduleSchema []byte

// ParseDescriptor reads and parses one descriptor file.
func ParseDescriptor(path string, consistencyCheck bool) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}
	return ParseDescriptorBytes(data, path, consistencyCheck)
}

// ParseDescriptorBytes parses descriptor content. The bytes are unified with
// the embedded CUE schema, which rejects unknown fields and out-of-range
// values, then decoded into a Module.
//
// With consistencyCheck enabled the parsed record is re-serialized and
// compared against the original document. A mismatch means the descriptor
// carries a representation the typed record cannot round-trip (a
// data-authoring problem surfaced during development, not a production
// correctness requirement).
func ParseDescriptorBytes(data []byte, path string, consistencyCheck bool) (*Module, error) {
	m, err := cueutil.ParseAndDecode[Module](moduleSchema, data, "#Module", cueutil.WithFilename(path))
	if err != nil {
		return nil, err
	}

	if consistencyCheck {
		if err := checkRoundTrip(data, m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// checkRoundTrip verifies that marshaling the parsed record reproduces the
// original document, comparing both as generic JSON values so formatting and
// key order do not matter.
func checkRoundTrip(original []byte, m *Module) error {
	remarshaled, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("re-serializing record: %w", err)
	}

	var want, got any
	if err := json.Unmarshal(original, &want); err != nil {
		return fmt.Errorf("re-reading original descriptor: %w", err)
	}
	if err := json.Unmarshal(remarshaled, &got); err != nil {
		return fmt.Errorf("re-reading serialized record: %w", err)
	}

	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("descriptor does not round-trip to its canonical form")
	}
	return nil
}
