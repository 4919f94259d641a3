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

// Package wfa provides weighted finite automata, whose transitions are
// labelled with elements of a weight domain, along with the fixed point
// (path summary) and path expression engines which summarise them.
//
// An automaton is not safe for concurrent use.  In particular, an automaton
// must not be summarised by two path summaries at the same time, since these
// share the accumulator of each state.
package wfa

import (
	"cmp"
	"maps"
	"slices"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// WFA is a weighted finite automaton.  Transitions are indexed by (from, stack,
// to) for point lookups, by (from, stack) for matching, by source state, and
// epsilon transitions are additionally indexed by their target state.
type WFA[W sem.Element[W]] struct {
	// Transitions indexed by (from, stack, to).
	trans map[key.Triple]*Trans[W]
	// Transitions indexed by (from, stack).
	kpmap map[key.Pair][]*Trans[W]
	// Transitions indexed by source state.
	out map[key.Key][]*Trans[W]
	// Epsilon transitions indexed by target state.
	epsmap map[key.Key][]*Trans[W]
	// States indexed by their key.
	states map[key.Key]*State[W]
	// Final states.
	finals map[key.Key]bool
	// Initial state (or NoKey).
	initial key.Key
	// Order in which weights are extended during a path summary.
	query Query
	// Number of completed path summaries.
	generation uint
}

// New constructs an empty automaton with a given query mode.
func New[W sem.Element[W]](query Query) *WFA[W] {
	return &WFA[W]{
		trans:   make(map[key.Triple]*Trans[W]),
		kpmap:   make(map[key.Pair][]*Trans[W]),
		out:     make(map[key.Key][]*Trans[W]),
		epsmap:  make(map[key.Key][]*Trans[W]),
		states:  make(map[key.Key]*State[W]),
		finals:  make(map[key.Key]bool),
		initial: key.NoKey,
		query:   query,
	}
}

// Clear removes all states and transitions, including the initial and final
// states.  The query mode and generation are retained.
func (p *WFA[W]) Clear() {
	clear(p.trans)
	clear(p.kpmap)
	clear(p.out)
	clear(p.epsmap)
	clear(p.states)
	clear(p.finals)
	p.initial = key.NoKey
}

// Copy constructs a copy of this automaton.  Weights are shared, since they are
// immutable.
func (p *WFA[W]) Copy() *WFA[W] {
	r := New[W](p.query)
	//
	for _, k := range p.States() {
		s := p.states[k]
		r.AddState(k, s.zero)
		r.states[k].weight = s.weight
	}
	//
	for _, t := range p.Transitions() {
		r.AddTrans(t.from, t.stack, t.to, t.weight)
	}
	//
	for k := range p.finals {
		r.finals[k] = true
	}
	//
	r.initial = p.initial
	r.generation = p.generation
	//
	return r
}

// ============================================================================
// States
// ============================================================================

// AddState creates a state with a given zero, unless it already exists (in
// which case this does nothing).  The accumulator of a fresh state is its zero.
func (p *WFA[W]) AddState(k key.Key, zero W) {
	if _, ok := p.states[k]; !ok {
		p.states[k] = &State[W]{name: k, weight: zero, zero: zero}
	}
}

// State returns the state with a given key, or false if no such state exists.
func (p *WFA[W]) State(k key.Key) (*State[W], bool) {
	s, ok := p.states[k]
	return s, ok
}

// Weight returns the accumulator of a given state, or false if no such state
// exists.
func (p *WFA[W]) Weight(k key.Key) (W, bool) {
	var empty W
	//
	if s, ok := p.states[k]; ok {
		return s.weight, true
	}
	//
	return empty, false
}

// States returns the keys of all states in ascending order.
func (p *WFA[W]) States() []key.Key {
	return slices.Sorted(maps.Keys(p.states))
}

// NumStates returns the number of states.
func (p *WFA[W]) NumStates() uint {
	return uint(len(p.states))
}

// EraseState removes a given state along with all of its outgoing transitions,
// returning false if no such state existed.  Incoming transitions are not
// removed, this is the responsibility of the caller.  If the state was initial,
// then the automaton is left without an initial state.
func (p *WFA[W]) EraseState(k key.Key) bool {
	if _, ok := p.states[k]; !ok {
		return false
	}
	//
	for _, t := range slices.Clone(p.out[k]) {
		p.Erase(t.from, t.stack, t.to)
	}
	//
	delete(p.states, k)
	delete(p.finals, k)
	//
	if p.initial == k {
		p.initial = key.NoKey
	}
	//
	return true
}

// SetInitialState sets the (unique) initial state, returning the previous one
// (which is NoKey if there was none).
func (p *WFA[W]) SetInitialState(k key.Key) key.Key {
	old := p.initial
	p.initial = k
	//
	return old
}

// InitialState returns the initial state, or NoKey if there is none.
func (p *WFA[W]) InitialState() key.Key {
	return p.initial
}

// IsInitialState checks whether a given key is the initial state.
func (p *WFA[W]) IsInitialState(k key.Key) bool {
	return p.initial != key.NoKey && p.initial == k
}

// AddFinalState adds a given key to the set of final states.
func (p *WFA[W]) AddFinalState(k key.Key) {
	p.finals[k] = true
}

// IsFinalState checks whether a given key is a final state.
func (p *WFA[W]) IsFinalState(k key.Key) bool {
	return p.finals[k]
}

// FinalStates returns the final states in ascending order.
func (p *WFA[W]) FinalStates() []key.Key {
	return slices.Sorted(maps.Keys(p.finals))
}

// ============================================================================
// Transitions
// ============================================================================

// AddTrans adds the transition (from, stack, to) with a given weight.  Missing
// states are created using the zero of the given weight.  If the transition
// already exists, then the given weight is combined into its existing weight.
func (p *WFA[W]) AddTrans(from, stack, to key.Key, weight W) {
	triple := key.Triple{From: from, Stack: stack, To: to}
	//
	if t, ok := p.trans[triple]; ok {
		t.weight = t.weight.Combine(weight)
		return
	}
	//
	p.AddState(from, weight.Zero())
	p.AddState(to, weight.Zero())
	//
	t := &Trans[W]{from, stack, to, weight}
	kp := key.Pair{First: from, Second: stack}
	p.trans[triple] = t
	p.kpmap[kp] = append(p.kpmap[kp], t)
	p.out[from] = append(p.out[from], t)
	//
	if stack == key.Epsilon {
		p.epsmap[to] = append(p.epsmap[to], t)
	}
}

// Find returns the transition (from, stack, to), or false if it does not
// exist.
func (p *WFA[W]) Find(from, stack, to key.Key) (Trans[W], bool) {
	if t, ok := p.trans[key.Triple{From: from, Stack: stack, To: to}]; ok {
		return *t, true
	}
	//
	return Trans[W]{}, false
}

// Match returns all transitions of the form (from, stack, ?).
func (p *WFA[W]) Match(from, stack key.Key) []Trans[W] {
	return copyTrans(p.kpmap[key.Pair{First: from, Second: stack}])
}

// Outgoing returns all transitions leaving a given state.
func (p *WFA[W]) Outgoing(from key.Key) []Trans[W] {
	return copyTrans(p.out[from])
}

// EpsTransTo returns all epsilon transitions entering a given state.
func (p *WFA[W]) EpsTransTo(to key.Key) []Trans[W] {
	return copyTrans(p.epsmap[to])
}

// Erase removes the transition (from, stack, to), returning false if it did
// not exist.
func (p *WFA[W]) Erase(from, stack, to key.Key) bool {
	triple := key.Triple{From: from, Stack: stack, To: to}
	t, ok := p.trans[triple]
	//
	if !ok {
		return false
	}
	//
	kp := key.Pair{First: from, Second: stack}
	delete(p.trans, triple)
	p.kpmap[kp] = removeTrans(p.kpmap[kp], t)
	p.out[from] = removeTrans(p.out[from], t)
	//
	if stack == key.Epsilon {
		p.epsmap[to] = removeTrans(p.epsmap[to], t)
	}
	//
	return true
}

// NumTrans returns the number of transitions.
func (p *WFA[W]) NumTrans() uint {
	return uint(len(p.trans))
}

// Transitions returns all transitions ordered by (from, stack, to).
func (p *WFA[W]) Transitions() []Trans[W] {
	var ts = make([]Trans[W], 0, len(p.trans))
	//
	for _, t := range p.trans {
		ts = append(ts, *t)
	}
	//
	slices.SortFunc(ts, func(a, b Trans[W]) int {
		return compareTriple(a.Triple(), b.Triple())
	})
	//
	return ts
}

// ForEach applies a given function to each transition, ordered by (from,
// stack, to).
func (p *WFA[W]) ForEach(fn func(Trans[W])) {
	for _, t := range p.Transitions() {
		fn(t)
	}
}

// Alphabet returns the non-epsilon symbols used by transitions, in ascending
// order.
func (p *WFA[W]) Alphabet() []key.Key {
	var symbols = make(map[key.Key]bool)
	//
	for triple := range p.trans {
		if triple.Stack != key.Epsilon {
			symbols[triple.Stack] = true
		}
	}
	//
	return slices.Sorted(maps.Keys(symbols))
}

// SomeWeight returns a weight from this automaton, which can be used to get
// hold of the zero and one of its domain.  This returns false when the
// automaton has neither states nor transitions.
func (p *WFA[W]) SomeWeight() (W, bool) {
	var empty W
	//
	for _, t := range p.trans {
		return t.weight, true
	}
	//
	for _, s := range p.states {
		return s.zero, true
	}
	//
	return empty, false
}

// ============================================================================
// Misc
// ============================================================================

// SetQuery sets the query mode, returning the previous mode.
func (p *WFA[W]) SetQuery(q Query) Query {
	old := p.query
	p.query = q
	//
	return old
}

// Query returns the query mode.
func (p *WFA[W]) Query() Query {
	return p.query
}

// Generation returns the number of path summaries completed on this automaton.
func (p *WFA[W]) Generation() uint {
	return p.generation
}

// SetGeneration sets the generation of this automaton.
func (p *WFA[W]) SetGeneration(g uint) {
	p.generation = g
}

func copyTrans[W sem.Element[W]](ts []*Trans[W]) []Trans[W] {
	var r = make([]Trans[W], len(ts))
	//
	for i, t := range ts {
		r[i] = *t
	}
	//
	return r
}

func removeTrans[W sem.Element[W]](ts []*Trans[W], t *Trans[W]) []*Trans[W] {
	return slices.DeleteFunc(ts, func(u *Trans[W]) bool { return u == t })
}

func compareTriple(a, b key.Triple) int {
	switch {
	case a.From != b.From:
		return cmp.Compare(a.From, b.From)
	case a.Stack != b.Stack:
		return cmp.Compare(a.Stack, b.Stack)
	default:
		return cmp.Compare(a.To, b.To)
	}
}
