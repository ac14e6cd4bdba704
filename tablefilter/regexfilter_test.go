// This file is Free Software under the Apache-2.0 License
// without warranty, see README.md and LICENSES/Apache-2.0.txt for details.
//
// SPDX-License-Identifier: Apache-2.0
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package tablefilter

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func mustNew(t *testing.T, pattern string, opts Options) *RegexFilter {
	t.Helper()
	f, err := NewWithOptions(pattern, opts)
	if err != nil {
		t.Fatalf("creating filter for %q failed: %v", pattern, err)
	}
	return f
}

func mustFilter(t *testing.T, f *RegexFilter, candidate string) bool {
	t.Helper()
	got, err := f.Filter(candidate)
	if err != nil {
		t.Fatalf("filtering %q failed: %v", candidate, err)
	}
	return got
}

func TestFilter(t *testing.T) {
	for _, x := range []struct {
		pattern   string
		candidate string
		expect    bool
	}{
		{"foo", "foo", true},
		{"foo", "foobar", false},
		{"foo", "FOO", true},
		{"foo", "xfoo", false},
		{"foo,foot", "foot", true},
		{"foo,foot", "foo", true},
		{"foot,foo", "foo", true},
		{"foooo,f.*t", "fooooot", true},
		{"foooo,f.*t", "foooo", true},
		{"foooo,f.*t", "fooooo", false},
		{"abc,def", "xyz", false},
		{`shop\..*,audit\.log`, "Shop.Orders", true},
		{`shop\..*,audit\.log`, "audit.log", true},
		{`shop\..*,audit\.log`, "audit.logs", false},
		{"foo,,bar", "bar", true},
		{"foo,,bar", "baz", false},
		{"foo|bar", "foo", true},
		{"foo|bar", "bar", true},
		{"foo|bar", "foobaz", false},
		{"foo|bar", "xbar", false},
		{"a|b.c,x", "b.c", true},
		{"a|b.c,x", "ab.c", false},
		// Patterns are not lowercased.
		{"FOO", "foo", false},
	} {
		f := mustNew(t, x.pattern, Options{DefaultEmptyValue: true})
		if got := mustFilter(t, f, x.candidate); got != x.expect {
			t.Errorf("Failure: %q against %q: got %t expected %t",
				x.candidate, x.pattern, got, x.expect)
		}
	}
}

func TestFilterEmptySpec(t *testing.T) {
	f, err := New("")
	if err != nil {
		t.Fatal(err)
	}
	if !mustFilter(t, f, "anything") {
		t.Error("Failure: empty spec with default true should pass")
	}
	if !f.DefaultEmptyValue() {
		t.Error("Failure: New should default to true")
	}

	f, err = NewWithDefault("", false)
	if err != nil {
		t.Fatal(err)
	}
	if mustFilter(t, f, "anything") {
		t.Error("Failure: empty spec with default false should not pass")
	}
}

func TestFilterEmptyCandidate(t *testing.T) {
	for _, def := range []bool{true, false} {
		for _, pattern := range []string{"foo", "foo,,bar", ".*"} {
			f := mustNew(t, pattern, Options{DefaultEmptyValue: def})
			if got := mustFilter(t, f, ""); got != def {
				t.Errorf("Failure: %q with default %t: got %t", pattern, def, got)
			}
		}
	}
}

func TestFilterNoMatchIgnoresDefault(t *testing.T) {
	for _, def := range []bool{true, false} {
		f := mustNew(t, "abc,def", Options{DefaultEmptyValue: def})
		if mustFilter(t, f, "xyz") {
			t.Errorf("Failure: no match with default %t should not pass", def)
		}
	}
}

func TestFilterDeterministic(t *testing.T) {
	const spec = "foo,foot,f.*t,bar_[0-9]+,,baz"
	a := mustNew(t, spec, Options{})
	b := mustNew(t, spec, Options{})
	if a.String() != b.String() {
		t.Errorf("Failure: %s != %s", a, b)
	}
	for _, c := range []string{"", "foo", "foot", "flat", "bar_12", "bar_", "baz", "qux"} {
		if x, y := mustFilter(t, a, c), mustFilter(t, b, c); x != y {
			t.Errorf("Failure: %q: %t != %t", c, x, y)
		}
	}
}

func TestFilterChunked(t *testing.T) {
	const maxLength = 64
	var names []string
	for i := 0; i < 40; i++ {
		names = append(names, fmt.Sprintf("db_%d\\.tbl_%s", i, strings.Repeat("q", i%5)))
	}
	spec := strings.Join(names, ",")

	chunked := mustNew(t, spec, Options{MaxLength: maxLength})
	single := mustNew(t, spec, Options{})

	if n := len(chunked.Patterns()); n < 2 {
		t.Fatalf("Failure: expected several groups, got %d", n)
	}
	if n := len(single.Patterns()); n != 1 {
		t.Fatalf("Failure: expected one group, got %d", n)
	}
	for _, g := range chunked.Patterns() {
		if len(g) > maxLength {
			t.Errorf("Failure: group %q exceeds %d", g, maxLength)
		}
	}

	for i := 0; i < 40; i++ {
		c := fmt.Sprintf("DB_%d.tbl_%s", i, strings.Repeat("q", i%5))
		if !mustFilter(t, chunked, c) || !mustFilter(t, single, c) {
			t.Errorf("Failure: %q should pass", c)
		}
		c += "x"
		if mustFilter(t, chunked, c) || mustFilter(t, single, c) {
			t.Errorf("Failure: %q should not pass", c)
		}
	}
}

func TestFilterOversizedPattern(t *testing.T) {
	long := strings.Repeat("a", 100)
	f := mustNew(t, long+",b", Options{MaxLength: 10})
	groups := f.Patterns()
	if len(groups) != 2 || groups[0] != "^"+long+"$" || groups[1] != "^b$" {
		t.Fatalf("Failure: unexpected groups %q", groups)
	}
	if !mustFilter(t, f, long) || !mustFilter(t, f, "b") {
		t.Error("Failure: oversized pattern should still match")
	}
}

func TestFilterConcurrent(t *testing.T) {
	f := mustNew(t, `foo,foot,shop\..*`, Options{MaxLength: 8})
	candidates := map[string]bool{
		"foo":         true,
		"foot":        true,
		"shop.orders": true,
		"fo":          false,
		"shop":        false,
	}
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				for c, expect := range candidates {
					got, err := f.Filter(c)
					if err != nil {
						errs <- err
						return
					}
					if got != expect {
						errs <- fmt.Errorf("%q: got %t expected %t", c, got, expect)
						return
					}
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewInvalid(t *testing.T) {
	if f, err := New("foo,(bar"); f != nil || err == nil {
		t.Error("Failure: No error returned for invalid pattern")
	}
	_, err := NewWithOptions("foo,,bar", Options{EmptyPatterns: EmptyPatternReject})
	if !errors.Is(err, ErrEmptyPattern) {
		t.Errorf("Failure: expected ErrEmptyPattern, got %v", err)
	}
}

func TestFilterIgnoreEmptyPatterns(t *testing.T) {
	f := mustNew(t, ",,", Options{EmptyPatterns: EmptyPatternIgnore})
	if len(f.Patterns()) != 0 {
		t.Fatalf("Failure: expected no groups, got %q", f.Patterns())
	}
	if mustFilter(t, f, "foo") != f.DefaultEmptyValue() {
		t.Error("Failure: no patterns should yield the default value")
	}
}

func TestString(t *testing.T) {
	for _, x := range []struct {
		pattern   string
		maxLength int
		expect    string
	}{
		{"", 0, "[]"},
		{"foo,foot", 0, "[^foot$|^foo$]"},
		{"foo,foot", 7, "[^foot$, ^foo$]"},
	} {
		f := mustNew(t, x.pattern, Options{MaxLength: x.maxLength})
		if got := f.String(); got != x.expect {
			t.Errorf("%q: got %q expected %q", x.pattern, got, x.expect)
		}
	}
}

func TestNewLogsGroups(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	mustNew(t, "foo,foot", Options{MaxLength: 7, Logger: logger})
	out := buf.String()
	if !strings.Contains(out, "groups=2") || !strings.Contains(out, "max_length=7") {
		t.Errorf("Failure: unexpected log output %q", out)
	}
}
