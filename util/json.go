// This file is Free Software under the MIT License
// without warranty, see README.md and LICENSES/MIT.txt for details.
//
// SPDX-License-Identifier: MIT
//
// SPDX-FileCopyrightText: 2024 German Federal Office for Information Security (BSI) <https://www.bsi.bund.de>
// Software-Engineering: 2024 Intevation GmbH <https://intevation.de>

package util

import (
	"context"
	"errors"
	"fmt"

	"github.com/PaesslerAG/gval"
	"github.com/PaesslerAG/jsonpath"
)

// PathEval is a helper to evaluate JSON paths on documents.
// It is not safe for concurrent use.
type PathEval struct {
	builder gval.Language
	exprs   map[string]gval.Evaluable
}

// NewPathEval creates a new PathEval.
func NewPathEval() *PathEval {
	return &PathEval{
		builder: gval.Full(jsonpath.Language()),
		exprs:   map[string]gval.Evaluable{},
	}
}

// Compile compiles an expression and caches it.
// If the expression is already cached the cached one is returned.
func (pe *PathEval) Compile(expr string) (gval.Evaluable, error) {
	if eval := pe.exprs[expr]; eval != nil {
		return eval, nil
	}
	eval, err := pe.builder.NewEvaluable(expr)
	if err != nil {
		return nil, err
	}
	pe.exprs[expr] = eval
	return eval, nil
}

// Eval evalutes expression expr on document doc.
// Returns the result of the expression.
func (pe *PathEval) Eval(expr string, doc any) (any, error) {
	if doc == nil {
		return nil, errors.New("no document to extract data from")
	}
	eval, err := pe.Compile(expr)
	if err != nil {
		return nil, err
	}
	return eval(context.Background(), doc)
}

// EvalString evaluates expr on doc and expects a string result.
func (pe *PathEval) EvalString(expr string, doc any) (string, error) {
	x, err := pe.Eval(expr, doc)
	if err != nil {
		return "", err
	}
	var s string
	if err := StringMatcher(&s)(x); err != nil {
		return "", fmt.Errorf("%q: %w", expr, err)
	}
	return s, nil
}

// StringMatcher stores the matched result in a string.
func StringMatcher(dst *string) func(any) error {
	return func(x any) error {
		s, ok := x.(string)
		if !ok {
			return errors.New("not a string")
		}
		*dst = s
		return nil
	}
}
