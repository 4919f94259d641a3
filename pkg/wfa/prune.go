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
	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// Prune restricts this automaton to those transitions which lie on some path
// from the initial state to a final state.  That is, transitions whose source
// is reachable from the initial state and whose target can reach a final
// state.  States which are left on no such path are erased, except for the
// initial state.  The automaton must have an initial state.
func (p *WFA[W]) Prune() {
	if p.initial == key.NoKey {
		panic("cannot prune automaton without initial state")
	}
	//
	var (
		fwd = p.forwardReachable()
		bwd = p.backwardReachable()
	)
	//
	for _, t := range p.Transitions() {
		if !fwd[t.from] || !bwd[t.to] {
			p.Erase(t.from, t.stack, t.to)
		}
	}
	//
	for _, k := range p.States() {
		if k != p.initial && (!fwd[k] || !bwd[k]) {
			p.EraseState(k)
		}
	}
}

// Filter restricts this automaton to paths whose first symbol is one of the
// given stack symbols, followed by any number of symbols, and then prunes it.
// This is done by intersecting with an automaton recognising exactly such
// words, and keeping only those transitions used by the (pruned) product.
// Observe the result is an over-approximation, since the transitions retained
// can recombine into paths which do not begin with the given symbols.
func (p *WFA[W]) Filter(stacks ...key.Key) {
	if p.initial == key.NoKey {
		panic("cannot filter automaton without initial state")
	}
	//
	some, ok := p.SomeWeight()
	//
	if !ok {
		p.Prune()
		return
	}
	//
	var (
		one     = some.One()
		pairs   = newProjection()
		used    = make(map[key.Triple]bool)
		product = p.Intersect(KeepLeft[W]{}, stackFilter(p.query, one, p.Alphabet(), stacks), pairs)
	)
	//
	product.Prune()
	//
	for _, t := range product.Transitions() {
		from, to := pairs.unpair(t.from), pairs.unpair(t.to)
		used[key.Triple{From: from.First, Stack: t.stack, To: to.First}] = true
	}
	//
	for _, t := range p.Transitions() {
		if !used[t.Triple()] {
			p.Erase(t.from, t.stack, t.to)
		}
	}
	//
	p.Prune()
}

// stackFilter constructs the automaton recognising "stack Γ*" for a given set
// of initial stack symbols and alphabet Γ.  Both states carry epsilon self
// loops, so that epsilon transitions can be synchronised with them.
func stackFilter[W sem.Element[W]](query Query, one W, alphabet []key.Key, stacks []key.Key) *WFA[W] {
	const (
		s0 key.Key = 0
		s1 key.Key = 1
	)
	//
	f := New[W](query)
	f.AddState(s0, one.Zero())
	f.AddState(s1, one.Zero())
	f.SetInitialState(s0)
	f.AddFinalState(s1)
	//
	for _, stack := range stacks {
		f.AddTrans(s0, stack, s1, one)
	}
	//
	for _, stack := range alphabet {
		f.AddTrans(s1, stack, s1, one)
	}
	//
	f.AddTrans(s0, key.Epsilon, s0, one)
	f.AddTrans(s1, key.Epsilon, s1, one)
	//
	return f
}

// forwardReachable determines the states reachable from the initial state.
func (p *WFA[W]) forwardReachable() map[key.Key]bool {
	var (
		visited  = map[key.Key]bool{p.initial: true}
		worklist = []key.Key{p.initial}
	)
	//
	for len(worklist) > 0 {
		n := len(worklist) - 1
		k := worklist[n]
		worklist = worklist[:n]
		//
		for _, t := range p.out[k] {
			if !visited[t.to] {
				visited[t.to] = true
				worklist = append(worklist, t.to)
			}
		}
	}
	//
	return visited
}

// backwardReachable determines the states from which some final state is
// reachable.
func (p *WFA[W]) backwardReachable() map[key.Key]bool {
	var (
		preds    = make(map[key.Key][]key.Key)
		visited  = make(map[key.Key]bool)
		worklist []key.Key
	)
	//
	for triple := range p.trans {
		preds[triple.To] = append(preds[triple.To], triple.From)
	}
	//
	for k := range p.finals {
		if _, ok := p.states[k]; ok {
			visited[k] = true
			worklist = append(worklist, k)
		}
	}
	//
	for len(worklist) > 0 {
		n := len(worklist) - 1
		k := worklist[n]
		worklist = worklist[:n]
		//
		for _, from := range preds[k] {
			if !visited[from] {
				visited[from] = true
				worklist = append(worklist, from)
			}
		}
	}
	//
	return visited
}
