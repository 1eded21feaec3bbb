// SPDX-License-Identifier: MPL-2.0

// Package score parses the compact Twitch-Plays scoring notation into a
// human-readable description.
//
// A score string is a list of terms separated by "+", e.g. "5 + 2 T + 1 D".
// Each term is either a bare number (base points) or a number paired with a
// rate code. Markers for "unchanged" (UN) and the temporary flag (a T directly
// following a digit) are stripped before tokenizing, and numbers may carry a
// trailing "x" multiplier suffix. Terms that fail to parse are skipped; they
// never fail the whole string.
package score

import (
	"regexp"
	"strconv"
	"strings"
)

// rateDescriptions maps a rate code to the unit suffix of its description.
var rateDescriptions = map[string]string{
	"T":   "per second",
	"D":   "per deactivation",
	"PPA": "per action",
	"S":   "per module",
}

// temporaryFlag matches the temporary marker: a T directly after a digit.
var temporaryFlag = regexp.MustCompile(`(\d)T`)

// Describe renders a score string as a readable description, e.g.
// "5 + 2 T + 1 D" becomes
// "5 base points + 2 points per second + 1 point per deactivation".
// Unparsable terms and the placeholder term "TBD" are dropped; an empty or
// fully unparsable input yields "".
func Describe(scoreString string) string {
	var parts []string
	for _, term := range strings.Split(scoreString, "+") {
		if desc, ok := describeTerm(term); ok {
			parts = append(parts, desc)
		}
	}
	return strings.Join(parts, " + ")
}

// describeTerm renders a single term. The second return value is false when
// the term should be skipped.
func describeTerm(term string) (string, bool) {
	term = strings.ReplaceAll(term, "UN", "")
	term = temporaryFlag.ReplaceAllString(term, "$1")
	term = strings.TrimSpace(term)
	if term == "" || term == "TBD" {
		return "", false
	}

	tokens := strings.Fields(term)
	switch len(tokens) {
	case 1:
		value, err := parseValue(tokens[0])
		if err != nil {
			return "", false
		}
		return formatValue(value) + " base " + pluralize(value), true
	case 2:
		// One token is the rate code, the other the value. Accept either
		// order since the feed data is not consistent about it.
		code, number := tokens[0], tokens[1]
		if _, ok := rateDescriptions[code]; !ok {
			code, number = number, code
		}
		unit, ok := rateDescriptions[code]
		if !ok {
			return "", false
		}
		value, err := parseValue(number)
		if err != nil {
			return "", false
		}
		return formatValue(value) + " " + pluralize(value) + " " + unit, true
	default:
		return "", false
	}
}

// parseValue parses a numeric token, stripping the trailing "x" multiplier
// suffix when present.
func parseValue(token string) (float64, error) {
	token = strings.TrimSuffix(token, "x")
	return strconv.ParseFloat(token, 64)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pluralize(v float64) string {
	if v == 1 {
		return "point"
	}
	return "points"
}
