// SPDX-License-Identifier: Apache-2.0

// Package match ranks candidate names against a user-typed fragment.
// It is a pure function over names; network fetching and interactive
// disambiguation live elsewhere.
package match

import (
	"sort"
	"strings"
)

// Match is one ranked candidate. Index points back into the caller's
// candidate slice so the caller can recover the matched entity.
type Match struct {
	Index int
	Name  string
	Exact bool
}

// Rank scores a fragment against candidate names and returns the
// matches in rank order:
//
//   - Comparison is case-insensitive throughout.
//   - Names equal to the fragment are exact matches and rank first,
//     in input order.
//   - Otherwise the fragment must be a contiguous substring of the
//     name; substring matches rank by ascending name length (tightest
//     match first), ties keeping input order.
//   - Names not containing the fragment are excluded entirely.
//   - An empty fragment matches every candidate, ordered by ascending
//     name length. This is what interactive listing commands rely on.
//
// A nil result means nothing matched; the caller decides whether that
// is an error.
func Rank(fragment string, names []string) []Match {
	needle := strings.ToLower(fragment)

	var exacts, subs []Match
	for i, name := range names {
		haystack := strings.ToLower(name)
		switch {
		case needle != "" && haystack == needle:
			exacts = append(exacts, Match{Index: i, Name: name, Exact: true})
		case strings.Contains(haystack, needle):
			subs = append(subs, Match{Index: i, Name: name})
		}
	}

	sort.SliceStable(subs, func(a, b int) bool {
		return len(subs[a].Name) < len(subs[b].Name)
	})

	return append(exacts, subs...)
}

// ExactCount reports how many of the ranked matches are exact.
func ExactCount(matches []Match) int {
	n := 0
	for _, m := range matches {
		if m.Exact {
			n++
		}
	}
	return n
}

// Names projects the ranked matches to their display names, preserving
// rank order. Used to feed selection menus.
func Names(matches []Match) []string {
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.Name
	}
	return names
}
