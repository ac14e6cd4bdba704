// This file is Free Software under the Apache-2.0 License
// without warranty, see README.md and LICENSES/Apache-2.0.txt for details.
//
// SPDX-License-Identifier: Apache-2.0
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

// Package filter holds the compiled form of pattern groups.
package filter

import (
	"fmt"
	"regexp"
)

// PatternMatcher is an ordered list of compiled regular expressions.
// Every expression has to match the whole input.
type PatternMatcher []*regexp.Regexp

// NewPatternMatcher compiles a new list of regular expression from
// a given list of strings. Each expression is wrapped into \A(?:...)\z
// so that top level alternations cannot match a part of the input.
func NewPatternMatcher(patterns []string) (PatternMatcher, error) {
	pm := make(PatternMatcher, 0, len(patterns))
	for i, pattern := range patterns {
		expr, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern group %d: %w", i, err)
		}
		pm = append(pm, expr)
	}
	return pm, nil
}

// Len returns the number of compiled expressions.
func (pm PatternMatcher) Len() int {
	return len(pm)
}

// MatchIndex reports whether s fully matches the expression at index idx.
func (pm PatternMatcher) MatchIndex(idx int, s string) (bool, error) {
	if idx < 0 || idx >= len(pm) {
		return false, fmt.Errorf("pattern group %d out of range [0, %d)", idx, len(pm))
	}
	return pm[idx].MatchString(s), nil
}
