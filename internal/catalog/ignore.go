// SPDX-License-Identifier: MPL-2.0

package catalog

import "strings"

// Ignore-list group macros. A token starting with "+" that is neither of
// these is appended verbatim like any other literal.
const (
	macroFullBoss = "+FullBoss"
	macroSemiBoss = "+SemiBoss"
)

// ExpandIgnoreLists resolves group macros in every entry's ignore list.
// It must run only once the complete record set for the pass is materialized,
// so macro expansion always sees the full corpus. Entries whose raw list
// contains no macro are left untouched; for the rest the expanded list is
// stored in Derived.ExpandedIgnore and the raw list is preserved.
func ExpandIgnoreLists(entries []*Entry) {
	for _, e := range entries {
		if !hasMacro(e.Module.Ignore) {
			continue
		}
		e.Derived.ExpandedIgnore = expandIgnore(e.Module.Ignore, entries)
	}
}

func hasMacro(tokens []string) bool {
	for _, tok := range tokens {
		if strings.HasPrefix(tok, "+") {
			return true
		}
	}
	return false
}

// expandIgnore resolves one ignore list against the full record set,
// processing tokens in their original order:
//   - "+FullBoss" / "+SemiBoss" append the display names of all records
//     flagged as full / semi boss;
//   - "-name" removes the first accumulated occurrence of name;
//   - anything else is appended verbatim.
func expandIgnore(tokens []string, entries []*Entry) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		switch {
		case tok == macroFullBoss:
			for _, e := range entries {
				if e.Module.IsFullBoss {
					out = append(out, e.Module.MatchName())
				}
			}
		case tok == macroSemiBoss:
			for _, e := range entries {
				if e.Module.IsSemiBoss {
					out = append(out, e.Module.MatchName())
				}
			}
		case strings.HasPrefix(tok, "-"):
			out = removeFirst(out, strings.TrimPrefix(tok, "-"))
		default:
			out = append(out, tok)
		}
	}
	return out
}

func removeFirst(list []string, name string) []string {
	for i, v := range list {
		if v == name {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
