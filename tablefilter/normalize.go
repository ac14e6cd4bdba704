// This file is Free Software under the Apache-2.0 License
// without warranty, see README.md and LICENSES/Apache-2.0.txt for details.
//
// SPDX-License-Identifier: Apache-2.0
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package tablefilter

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// patternSeparator separates the patterns of the raw specification.
	patternSeparator = ","
	// groupSeparator joins the anchored patterns of a group.
	groupSeparator = "|"
)

// ErrEmptyPattern is returned by the constructors if the pattern
// specification contains an empty pattern and [EmptyPatternReject] is set.
var ErrEmptyPattern = errors.New("empty pattern in pattern list")

// EmptyPatternPolicy specifies how empty patterns resulting from
// consecutive, leading or trailing commas are handled.
type EmptyPatternPolicy string

const (
	// EmptyPatternPreserve keeps empty patterns. Once anchored they
	// only match the empty string which is never evaluated.
	EmptyPatternPreserve = EmptyPatternPolicy("preserve")
	// EmptyPatternIgnore drops empty patterns.
	EmptyPatternIgnore = EmptyPatternPolicy("ignore")
	// EmptyPatternReject lets the construction fail with [ErrEmptyPattern].
	EmptyPatternReject = EmptyPatternPolicy("reject")
)

// UnmarshalText implements [encoding.TextUnmarshaler].
func (ep *EmptyPatternPolicy) UnmarshalText(text []byte) error {
	switch p := EmptyPatternPolicy(text); p {
	case EmptyPatternPreserve, EmptyPatternIgnore, EmptyPatternReject:
		*ep = p
	default:
		return fmt.Errorf(
			`invalid value %q (expected "preserve", "ignore" or "reject")`, p)
	}
	return nil
}

// UnmarshalFlag implements [flags.Unmarshaler].
func (ep *EmptyPatternPolicy) UnmarshalFlag(value string) error {
	var p EmptyPatternPolicy
	if err := p.UnmarshalText([]byte(value)); err != nil {
		return err
	}
	*ep = p
	return nil
}

// splitPatterns splits the raw specification at the commas.
// An empty specification results in no patterns.
func splitPatterns(spec string, policy EmptyPatternPolicy) ([]string, error) {
	if spec == "" {
		return nil, nil
	}
	parts := strings.Split(spec, patternSeparator)
	switch policy {
	case EmptyPatternIgnore:
		kept := parts[:0]
		for _, p := range parts {
			if p != "" {
				kept = append(kept, p)
			}
		}
		return kept, nil
	case EmptyPatternReject:
		for i, p := range parts {
			if p == "" {
				return nil, fmt.Errorf("pattern %d: %w", i, ErrEmptyPattern)
			}
		}
	}
	return parts, nil
}

// sortByLength orders the patterns longest first.
// foo|foot would match foo as a prefix of foot, so the
// longer alternative has to be tried first.
func sortByLength(patterns []string) {
	sort.SliceStable(patterns, func(i, j int) bool {
		return -len(patterns[i]) < -len(patterns[j])
	})
}

// anchor wraps every pattern in ^ and $ so that it has to consume
// the whole candidate. Sorting alone does not help with foooo|f.*t
// against fooooot.
func anchor(patterns []string) []string {
	anchored := make([]string, len(patterns))
	for i, p := range patterns {
		anchored[i] = "^" + p + "$"
	}
	return anchored
}

// chunk joins the anchored patterns into alternation groups.
// A group never exceeds maxLength unless a single pattern
// is already longer than that. Patterns are never split.
func chunk(patterns []string, maxLength int) []string {
	var (
		groups []string
		b      strings.Builder
		n      int
	)
	flush := func() {
		if n > 0 {
			groups = append(groups, b.String())
			b.Reset()
			n = 0
		}
	}
	for _, p := range patterns {
		if n > 0 && b.Len()+len(groupSeparator)+len(p) > maxLength {
			flush()
		}
		if n > 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteString(p)
		n++
	}
	flush()
	return groups
}

// normalize turns a raw pattern specification into pattern groups.
func normalize(spec string, policy EmptyPatternPolicy, maxLength int) ([]string, error) {
	patterns, err := splitPatterns(spec, policy)
	if err != nil {
		return nil, err
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	sortByLength(patterns)
	return chunk(anchor(patterns), maxLength), nil
}
