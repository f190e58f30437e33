// Copyright 2026 fairrec Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package recommend

import (
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/juju/errors"
)

// Filter is a boolean expression over a candidate, e.g. "score >= 3.5 && item < 1000".
// The expression sees the variables user, item and score.
type Filter struct {
	source  string
	program *vm.Program
}

func NewFilter(source string) (*Filter, error) {
	program, err := expr.Compile(source, expr.Env(map[string]any{
		"user":  0,
		"item":  0,
		"score": 0.0,
	}), expr.AsBool())
	if err != nil {
		return nil, errors.NewNotValid(err, "filter")
	}
	return &Filter{source: source, program: program}, nil
}

func (f *Filter) String() string {
	return f.source
}

func (f *Filter) Accept(user, item int, score float64) (bool, error) {
	result, err := expr.Run(f.program, map[string]any{
		"user":  user,
		"item":  item,
		"score": score,
	})
	if err != nil {
		return false, errors.Trace(err)
	}
	return result.(bool), nil
}
