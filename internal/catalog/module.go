// SPDX-License-Identifier: MPL-2.0

package catalog

import (
	"encoding/json"
	"strings"
	"time"
)

type (
	// Module is the typed form of one descriptor file. Field names mirror the
	// descriptor JSON exactly; the descriptor schema (module_schema.cue) is
	// the authoritative list of recognized fields.
	Module struct {
		Name          string           `json:"Name"`
		DisplayName   string           `json:"DisplayName,omitempty"`
		ModuleID      string           `json:"ModuleID,omitempty"`
		Description   string           `json:"Description,omitempty"`
		Author        string           `json:"Author,omitempty"`
		Contributors  []string         `json:"Contributors,omitempty"`
		IsFullBoss    bool             `json:"IsFullBoss,omitempty"`
		IsSemiBoss    bool             `json:"IsSemiBoss,omitempty"`
		Ignore        []string         `json:"Ignore,omitempty"`
		TranslationOf string           `json:"TranslationOf,omitempty"`
		TwitchPlays   *TwitchPlaysInfo `json:"TwitchPlays,omitempty"`
		TimeMode      *TimeModeInfo    `json:"TimeMode,omitempty"`
	}

	// TwitchPlaysInfo holds Twitch-Plays scoring data for a module.
	TwitchPlaysInfo struct {
		ScoreString            string `json:"ScoreString,omitempty"`
		ScoreStringDescription string `json:"ScoreStringDescription,omitempty"`
	}

	// TimeModeInfo holds Time-Mode scoring data for a module. Score and
	// ScorePerModule are pointers so that merged feed values never clobber a
	// value the descriptor author set explicitly.
	TimeModeInfo struct {
		Origin         string   `json:"Origin,omitempty"`
		Score          *float64 `json:"Score,omitempty"`
		ScorePerModule *float64 `json:"ScorePerModule,omitempty"`
	}

	// Derived carries the fields computed by the pipeline rather than authored
	// in the descriptor. It is serialized together with the Module into one
	// JSON object; every derivable field is declared here up front.
	Derived struct {
		// FileName is emitted only when the source file's base name differs
		// from the logical Name.
		FileName string `json:"FileName,omitempty"`
		// X and Y are the icon-atlas grid cell. Always emitted; (0,0) is the
		// blank icon for modules without an icon of their own.
		X int `json:"X"`
		Y int `json:"Y"`
		// Sheets lists URLs of associated sheets derived from other modules
		// whose names extend this module's name.
		Sheets []string `json:"Sheets,omitempty"`
		// ExpandedIgnore is the macro-expanded ignore list. Only present for
		// records whose raw Ignore list contains at least one group macro;
		// the raw list is preserved unchanged either way.
		ExpandedIgnore []string `json:"ExpandedIgnore,omitempty"`
	}

	// Entry is one successfully loaded module: the parsed record, its derived
	// fields, and source-file metadata.
	Entry struct {
		Module   *Module
		Derived  Derived
		Path     string
		FileBase string
		ModTime  time.Time
	}
)

// MatchName returns the name used for cross-source matching: the display name
// when present, the logical name otherwise.
func (m *Module) MatchName() string {
	if m.DisplayName != "" {
		return m.DisplayName
	}
	return m.Name
}

// IsTranslation reports whether the record is a translation of another record.
func (m *Module) IsTranslation() bool {
	return m.TranslationOf != ""
}

// PublishedJSON serializes the record together with its derived fields as the
// single JSON object published in the catalog.
func (e *Entry) PublishedJSON() ([]byte, error) {
	return json.Marshal(struct {
		*Module
		*Derived
	}{e.Module, &e.Derived})
}

// formatContributors renders a contributor list as prose: "A", "A and B",
// "A, B and C". Used as the Author fallback when a descriptor names
// contributors but no author.
func formatContributors(contributors []string) string {
	switch len(contributors) {
	case 0:
		return ""
	case 1:
		return contributors[0]
	default:
		return strings.Join(contributors[:len(contributors)-1], ", ") + " and " + contributors[len(contributors)-1]
	}
}
