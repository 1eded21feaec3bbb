// SPDX-License-Identifier: MPL-2.0

package feed

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/manualhub/manualhub/internal/catalog"
	"github.com/manualhub/manualhub/internal/score"
)

// Time-Mode origin values, in descending assignment priority.
const (
	OriginAssigned    = "Assigned"
	OriginCommunity   = "Community"
	OriginTwitchPlays = "TwitchPlays"
	OriginUnassigned  = "Unassigned"
)

// defaultScore is the Time-Mode score used when the resolved-score cell is
// blank.
const defaultScore = "10"

// Feeds holds both fetched feeds indexed by normalized module name, ready for
// per-record merging. Rows are read-only and live only for one pipeline run.
type Feeds struct {
	timeMode    map[string]TimeModeRow
	twitchPlays map[string]TwitchPlaysRow
}

// NewFeeds indexes the fetched rows by normalized name. When multiple rows
// normalize to the same name the first one wins; the source data is expected
// to be unique by name, so duplicates are only logged.
func NewFeeds(timeMode []TimeModeRow, twitchPlays []TwitchPlaysRow) *Feeds {
	f := &Feeds{
		timeMode:    make(map[string]TimeModeRow, len(timeMode)),
		twitchPlays: make(map[string]TwitchPlaysRow, len(twitchPlays)),
	}
	for _, row := range timeMode {
		key := Normalize(row.ModuleName)
		if _, dup := f.timeMode[key]; dup {
			slog.Debug("duplicate time-mode feed row dropped", "modulename", row.ModuleName)
			continue
		}
		f.timeMode[key] = row
	}
	for _, row := range twitchPlays {
		key := Normalize(row.ModuleName)
		if _, dup := f.twitchPlays[key]; dup {
			slog.Debug("duplicate twitch-plays feed row dropped", "modulename", row.ModuleName)
			continue
		}
		f.twitchPlays[key] = row
	}
	return f
}

// Merge applies both feed merges to one record. At most one row per feed is
// used, matched by the record's normalized display name.
func (f *Feeds) Merge(m *catalog.Module) {
	key := Normalize(m.MatchName())
	if row, ok := f.timeMode[key]; ok {
		mergeTimeMode(m, row)
	}
	if row, ok := f.twitchPlays[key]; ok {
		mergeTwitchPlays(m, row)
	}
}

// mergeTimeMode derives the Time-Mode origin and scores from a matched feed
// row. Values already present on the record are never overwritten.
func mergeTimeMode(m *catalog.Module, row TimeModeRow) {
	if m.TimeMode == nil {
		m.TimeMode = &catalog.TimeModeInfo{}
	}
	tm := m.TimeMode

	if tm.Origin == "" {
		tm.Origin = deriveOrigin(row)
	}

	if tm.Score == nil {
		cell := strings.TrimSpace(row.ResolvedScore)
		if cell == "" {
			cell = defaultScore
		}
		if v, err := strconv.ParseFloat(cell, 64); err == nil {
			tm.Score = &v
		}
	}

	if tm.ScorePerModule == nil {
		if cell := strings.TrimSpace(row.ResolvedBossPointsPerModule); cell != "" {
			if v, err := strconv.ParseFloat(cell, 64); err == nil {
				tm.ScorePerModule = &v
			}
		}
	}
}

// deriveOrigin picks the score origin by priority: an explicitly assigned
// score beats a community score beats a non-empty Twitch-Plays score.
func deriveOrigin(row TimeModeRow) string {
	switch {
	case strings.TrimSpace(row.AssignedScore) != "":
		return OriginAssigned
	case strings.TrimSpace(row.CommunityScore) != "":
		return OriginCommunity
	case strings.TrimSpace(row.TPScore) != "":
		return OriginTwitchPlays
	default:
		return OriginUnassigned
	}
}

// mergeTwitchPlays copies a non-empty score string onto the record and
// immediately re-derives its human-readable description. An empty score
// string is ignored.
func mergeTwitchPlays(m *catalog.Module, row TwitchPlaysRow) {
	scoreString := strings.TrimSpace(row.TPScore)
	if scoreString == "" {
		return
	}
	if m.TwitchPlays == nil {
		m.TwitchPlays = &catalog.TwitchPlaysInfo{}
	}
	m.TwitchPlays.ScoreString = scoreString
	m.TwitchPlays.ScoreStringDescription = score.Describe(scoreString)
}
