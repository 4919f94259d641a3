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
package wfa

import (
	"context"
	"maps"
	"slices"
	"time"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/regex"
	"github.com/consensys/go-wali/pkg/sem"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

// equation describes the weight of a state as the combine of a constant term
// with a linear term for each successor state.
type equation[W sem.Element[W]] struct {
	coeffs   map[key.Key]*regex.Regex[W]
	constant *regex.Regex[W]
}

// PathExpressions computes, for every state, an expression whose value is the
// path summary of that state.  The leaves of each expression are the
// transitions of this automaton, hence the expressions can be evaluated under
// different assignments of weights to transitions without being rebuilt.
// Expressions share subexpressions.
//
// Evaluating the expressions requires the weight domain to support star,
// either directly via sem.Starrable or through iteration.
func (p *WFA[W]) PathExpressions() map[key.Key]*regex.Regex[W] {
	exprs, _ := p.pathExpressions(context.Background())
	return exprs
}

// RegexSummary computes the path summary by evaluating the path expressions
// of this automaton, storing the result in the accumulator of each state.
// Unlike PathSummary, this does not require the weight domain to be idempotent,
// but it does require star.
func (p *WFA[W]) RegexSummary(ctx context.Context) error {
	var (
		start = time.Now()
		stats SummaryStats
	)
	//
	ctx, span := startSummarySpan(ctx, "WFA.RegexSummary", p.query, p.NumStates(), p.NumTrans())
	defer span.End()
	//
	exprs, err := p.pathExpressions(ctx)
	//
	if err == nil {
		if some, ok := p.SomeWeight(); ok {
			eval := regex.NewEvaluator(some, nil)
			//
			for _, k := range p.States() {
				s := p.states[k]
				s.weight = s.zero.Combine(eval.Eval(exprs[k]))
				stats.Updates++
			}
		}
		//
		p.generation++
	} else {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	//
	recordSummaryMetrics(ctx, "regex", time.Since(start), stats, err == nil)
	//
	log.Debugf("regex summary (%s) of %d states and %d transitions took %0.3fs", p.query, p.NumStates(),
		p.NumTrans(), time.Since(start).Seconds())
	//
	return err
}

// pathExpressions solves the system of equations X_q = ⊕ (a ⊗ X_p) ⊕ b_q, where
// a ranges over the transitions (q, a, p) and b_q is one when q is final, by
// eliminating states in ascending order of key and then back-substituting.
// For REVERSE queries each product is taken in the opposite order.
func (p *WFA[W]) pathExpressions(ctx context.Context) (map[key.Key]*regex.Regex[W], error) {
	var (
		order = p.States()
		eqns  = make(map[key.Key]*equation[W], len(order))
		exprs = make(map[key.Key]*regex.Regex[W], len(order))
	)
	// Construct equations
	for _, k := range order {
		eqn := &equation[W]{make(map[key.Key]*regex.Regex[W]), regex.Zero[W]()}
		//
		if p.finals[k] {
			eqn.constant = regex.One[W]()
		}
		//
		for _, t := range p.out[k] {
			leaf := regex.TransLeaf(t.Triple(), t.weight)
			eqn.addCoeff(t.to, leaf)
		}
		//
		eqns[k] = eqn
	}
	// Eliminate states
	for i, v := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		//
		ev := eqns[v]
		// Resolve self loop as X_v = a* (rest)
		if loop, ok := ev.coeffs[v]; ok {
			star := regex.Star(loop)
			delete(ev.coeffs, v)
			//
			for _, succ := range sortedKeys(ev.coeffs) {
				ev.coeffs[succ] = p.seq(star, ev.coeffs[succ])
			}
			//
			ev.constant = p.seq(star, ev.constant)
		}
		// Substitute into remaining equations
		for _, q := range order[i+1:] {
			eq := eqns[q]
			c, ok := eq.coeffs[v]
			//
			if !ok {
				continue
			}
			//
			delete(eq.coeffs, v)
			//
			for _, succ := range sortedKeys(ev.coeffs) {
				eq.addCoeff(succ, p.seq(c, ev.coeffs[succ]))
			}
			//
			eq.constant = regex.Combine(eq.constant, p.seq(c, ev.constant))
		}
	}
	// Back-substitute.  The equation of each state now refers only to states
	// eliminated after it.
	for i := len(order) - 1; i >= 0; i-- {
		v := order[i]
		ev := eqns[v]
		r := ev.constant
		//
		for _, succ := range sortedKeys(ev.coeffs) {
			r = regex.Combine(r, p.seq(ev.coeffs[succ], exprs[succ]))
		}
		//
		exprs[v] = r
	}
	//
	return exprs, nil
}

// seq constructs the expression for following x by y, according to the query
// mode.
func (p *WFA[W]) seq(x, y *regex.Regex[W]) *regex.Regex[W] {
	if p.query == REVERSE {
		return regex.Extend(y, x)
	}
	//
	return regex.Extend(x, y)
}

func (e *equation[W]) addCoeff(k key.Key, c *regex.Regex[W]) {
	if c.IsZero() {
		return
	} else if d, ok := e.coeffs[k]; ok {
		e.coeffs[k] = regex.Combine(d, c)
	} else {
		e.coeffs[k] = c
	}
}

func sortedKeys[T any](m map[key.Key]T) []key.Key {
	return slices.Sorted(maps.Keys(m))
}
