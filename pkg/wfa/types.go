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
	"fmt"
	"strings"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// Query determines the order in which weights are extended during a path
// summary.
type Query uint8

const (
	// INORDER extends the weight of a transition by the weight of its target,
	// hence the weight of a path is the extend of its transitions from first to
	// last.  This corresponds to a pre* query.
	INORDER Query = iota
	// REVERSE extends the weight of the target by the weight of the
	// transition, hence the weight of a path is the extend of its transitions
	// from last to first.  This corresponds to a post* query.
	REVERSE
)

func (q Query) String() string {
	switch q {
	case INORDER:
		return "INORDER"
	case REVERSE:
		return "REVERSE"
	}
	//
	return fmt.Sprintf("Query(%d)", uint8(q))
}

// ParseQuery parses a query mode, ignoring case.
func ParseQuery(s string) (Query, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "INORDER", "PRESTAR", "PRE":
		return INORDER, nil
	case "REVERSE", "POSTSTAR", "POST":
		return REVERSE, nil
	}
	//
	return INORDER, fmt.Errorf("unknown query mode %q", s)
}

// Extend two weights in the order dictated by this query.  That is, x ⊗ y for
// INORDER and y ⊗ x for REVERSE.
func Extend[W sem.Element[W]](q Query, x W, y W) W {
	if q == REVERSE {
		return y.Extend(x)
	}
	//
	return x.Extend(y)
}

// Trans is a weighted transition (from, stack, to).  Transitions are owned by
// the automaton which created them.
type Trans[W sem.Element[W]] struct {
	from   key.Key
	stack  key.Key
	to     key.Key
	weight W
}

// NewTrans constructs a transition.
func NewTrans[W sem.Element[W]](from, stack, to key.Key, weight W) Trans[W] {
	return Trans[W]{from, stack, to, weight}
}

// From returns the source state of this transition.
func (t *Trans[W]) From() key.Key { return t.from }

// Stack returns the symbol of this transition.
func (t *Trans[W]) Stack() key.Key { return t.stack }

// To returns the target state of this transition.
func (t *Trans[W]) To() key.Key { return t.to }

// Weight returns the weight of this transition.
func (t *Trans[W]) Weight() W { return t.weight }

// Triple returns the (from, stack, to) identity of this transition.
func (t *Trans[W]) Triple() key.Triple {
	return key.Triple{From: t.from, Stack: t.stack, To: t.to}
}

// IsEpsilon checks whether this transition consumes no symbol.
func (t *Trans[W]) IsEpsilon() bool {
	return t.stack == key.Epsilon
}

// Render this transition using a given namer.
func (t *Trans[W]) Render(namer key.Namer) string {
	return fmt.Sprintf("%s\t%s", t.Triple().Render(namer), t.weight)
}

func (t *Trans[W]) String() string {
	return t.Render(nil)
}

// State of an automaton.  Each state carries an accumulator weight, which is
// the result of the most recent path summary, along with the zero it was
// created with.
type State[W sem.Element[W]] struct {
	name   key.Key
	weight W
	zero   W
	marked bool
}

// Name returns the key of this state.
func (s *State[W]) Name() key.Key { return s.name }

// Weight returns the accumulator of this state.
func (s *State[W]) Weight() W { return s.weight }

// Zero returns the zero this state was created with.
func (s *State[W]) Zero() W { return s.zero }

// Mark this state as being on a worklist.
func (s *State[W]) Mark() { s.marked = true }

// Unmark this state, as it has been removed from a worklist.
func (s *State[W]) Unmark() { s.marked = false }

// Marked checks whether this state is on a worklist.
func (s *State[W]) Marked() bool { return s.marked }
