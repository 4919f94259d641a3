// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package regex

import (
	"github.com/consensys/go-wali/pkg/sem"
)

// Assignment determines the weight of a leaf during evaluation.
type Assignment[W sem.Element[W]] func(leaf *Regex[W]) W

// Evaluator evaluates expressions under a given assignment of weights to
// leaves.  Results are memoised, hence an evaluator should only be reused for
// expressions sharing the same assignment.
type Evaluator[W sem.Element[W]] struct {
	zero   W
	one    W
	assign Assignment[W]
	memo   map[*Regex[W]]W
}

// NewEvaluator constructs an evaluator.  A weight from the domain is needed to
// determine its zero and one.  When no assignment is given, leaves evaluate to
// their own weights.
func NewEvaluator[W sem.Element[W]](some W, assign Assignment[W]) *Evaluator[W] {
	if assign == nil {
		assign = func(leaf *Regex[W]) W { return leaf.weight }
	}
	//
	return &Evaluator[W]{some.Zero(), some.One(), assign, make(map[*Regex[W]]W)}
}

// Eval computes the weight of a given expression.  Star expressions are
// evaluated with sem.Star.
func (e *Evaluator[W]) Eval(r *Regex[W]) W {
	if w, ok := e.memo[r]; ok {
		return w
	}
	//
	var w W
	//
	switch r.kind {
	case ZERO:
		w = e.zero
	case ONE:
		w = e.one
	case LEAF:
		w = e.assign(r)
	case COMBINE:
		w = e.Eval(r.left).Combine(e.Eval(r.right))
	case EXTEND:
		w = e.Eval(r.left).Extend(e.Eval(r.right))
	case STAR:
		w = sem.Star(e.Eval(r.left))
	}
	//
	e.memo[r] = w
	//
	return w
}
