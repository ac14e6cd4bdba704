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

	"github.com/PaesslerAG/gval"

	"github.com/cdc-filter/tablefilter/internal/filter"
)

const (
	matchExpression = "regex(group, target)"
	groupParam      = "group"
	targetParam     = "target"
)

// matcher evaluates the match expression against compiled pattern groups.
// The regex function is registered in a language owned by the matcher,
// so no global state is involved.
type matcher struct {
	eval gval.Evaluable
}

// groupIndex converts the group argument of the regex function.
func groupIndex(arg interface{}) (int, error) {
	switch v := arg.(type) {
	case int:
		return v, nil
	case float64:
		return int(v), nil
	}
	return 0, fmt.Errorf("regex: group is not an index: %T", arg)
}

// newMatcher builds the match expression on top of the compiled groups.
func newMatcher(pm filter.PatternMatcher) (*matcher, error) {
	lang := gval.NewLanguage(
		gval.Base(),
		gval.Function("regex", func(args ...interface{}) (interface{}, error) {
			if len(args) != 2 {
				return nil, fmt.Errorf("regex expects 2 arguments, got %d", len(args))
			}
			idx, err := groupIndex(args[0])
			if err != nil {
				return nil, err
			}
			target, ok := args[1].(string)
			if !ok {
				return nil, fmt.Errorf("regex: target is not a string: %T", args[1])
			}
			return pm.MatchIndex(idx, target)
		}),
	)
	eval, err := lang.NewEvaluable(matchExpression)
	if err != nil {
		return nil, fmt.Errorf("building match expression failed: %w", err)
	}
	return &matcher{eval: eval}, nil
}

// match reports whether target fully matches the pattern group at idx.
// Every call uses its own parameter map.
func (m *matcher) match(ctx context.Context, idx int, target string) (bool, error) {
	return m.eval.EvalBool(ctx, map[string]interface{}{
		groupParam:  idx,
		targetParam: target,
	})
}
