// This file is Free Software under the Apache-2.0 License
// without warranty, see README.md and LICENSES/Apache-2.0.txt for details.
//
// SPDX-License-Identifier: Apache-2.0
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package tablefilter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cdc-filter/tablefilter/internal/filter"
)

// DefaultMaxLength is the default upper bound of the length
// of a single pattern group.
const DefaultMaxLength = 40000

// EventFilter decides if an event of type T passes.
type EventFilter[T any] interface {
	Filter(T) (bool, error)
}

var _ EventFilter[string] = (*RegexFilter)(nil)

// Options configure the construction of a [RegexFilter].
type Options struct {
	// DefaultEmptyValue is the verdict if there are no patterns
	// or the candidate is empty. Note that the zero value denies,
	// while New lets everything pass.
	DefaultEmptyValue bool
	// MaxLength bounds the length of a pattern group.
	// Values <= 0 fall back to DefaultMaxLength.
	MaxLength int
	// EmptyPatterns defaults to EmptyPatternPreserve.
	EmptyPatterns EmptyPatternPolicy
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// RegexFilter matches candidates against anchored pattern groups.
// It is immutable after construction and safe for concurrent use.
type RegexFilter struct {
	patterns          []string
	defaultEmptyValue bool
	matcher           *matcher
}

// New creates a filter which lets everything pass
// if there is nothing to check.
func New(pattern string) (*RegexFilter, error) {
	return NewWithDefault(pattern, true)
}

// NewWithDefault creates a filter with a given verdict
// for the case that there is nothing to check.
func NewWithDefault(pattern string, defaultEmptyValue bool) (*RegexFilter, error) {
	return NewWithOptions(pattern, Options{DefaultEmptyValue: defaultEmptyValue})
}

// NewWithOptions creates a filter from a comma separated list of
// regular expressions.
func NewWithOptions(pattern string, opts Options) (*RegexFilter, error) {
	maxLength := opts.MaxLength
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	policy := opts.EmptyPatterns
	if policy == "" {
		policy = EmptyPatternPreserve
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	patterns, err := normalize(pattern, policy, maxLength)
	if err != nil {
		return nil, err
	}

	pm, err := filter.NewPatternMatcher(patterns)
	if err != nil {
		return nil, err
	}
	m, err := newMatcher(pm)
	if err != nil {
		return nil, err
	}

	logger.Debug("Pattern groups compiled",
		"groups", pm.Len(),
		"max_length", maxLength,
		"empty_patterns", string(policy))

	return &RegexFilter{
		patterns:          patterns,
		defaultEmptyValue: opts.DefaultEmptyValue,
		matcher:           m,
	}, nil
}

// Filter returns true if the lowercased candidate fully matches
// any of the patterns. If there are no patterns or the candidate
// is empty the default value is returned.
func (rf *RegexFilter) Filter(candidate string) (bool, error) {
	if len(rf.patterns) == 0 || candidate == "" {
		return rf.defaultEmptyValue, nil
	}
	target := strings.ToLower(candidate)
	ctx := context.Background()
	for i := range rf.patterns {
		ok, err := rf.matcher.match(ctx, i, target)
		if err != nil {
			return false, fmt.Errorf("evaluating pattern group %d failed: %w", i, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// DefaultEmptyValue returns the verdict used if there is nothing to check.
func (rf *RegexFilter) DefaultEmptyValue() bool {
	return rf.defaultEmptyValue
}

// Patterns returns a copy of the pattern groups.
func (rf *RegexFilter) Patterns() []string {
	return append([]string(nil), rf.patterns...)
}

// String returns the pattern groups in list form.
func (rf *RegexFilter) String() string {
	return "[" + strings.Join(rf.patterns, ", ") + "]"
}
