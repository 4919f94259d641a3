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

// Package regex provides symbolic weight expressions, which are regular
// expressions whose atoms are weights.  An expression records the structure of
// a summary (i.e. which weights are combined, extended or iterated) and can be
// evaluated repeatedly under different assignments of weights to its leaves.
package regex

import (
	"fmt"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// Kind identifies the form of an expression.
type Kind uint8

const (
	// ZERO is the expression matching nothing.
	ZERO Kind = iota
	// ONE is the expression matching only the empty path.
	ONE
	// LEAF is an atomic weight.
	LEAF
	// COMBINE is the alternation of two expressions.
	COMBINE
	// EXTEND is the concatenation of two expressions.
	EXTEND
	// STAR is the iteration of an expression.
	STAR
)

// Regex is an immutable node of a weight expression.  Since nodes are never
// modified, subexpressions can be (and are) shared.
type Regex[W sem.Element[W]] struct {
	kind Kind
	// Weight of a leaf.
	weight W
	// Transition of a leaf, if known.
	origin *key.Triple
	// Operands (right is nil for star).
	left  *Regex[W]
	right *Regex[W]
}

// Zero constructs the expression 0.
func Zero[W sem.Element[W]]() *Regex[W] {
	return &Regex[W]{kind: ZERO}
}

// One constructs the expression 1.
func One[W sem.Element[W]]() *Regex[W] {
	return &Regex[W]{kind: ONE}
}

// Leaf constructs an atomic expression for a given weight.
func Leaf[W sem.Element[W]](weight W) *Regex[W] {
	return &Regex[W]{kind: LEAF, weight: weight}
}

// TransLeaf constructs an atomic expression for the weight of a given
// transition.
func TransLeaf[W sem.Element[W]](t key.Triple, weight W) *Regex[W] {
	return &Regex[W]{kind: LEAF, weight: weight, origin: &t}
}

// Combine constructs the expression a ⊕ b, simplifying where possible.
func Combine[W sem.Element[W]](a, b *Regex[W]) *Regex[W] {
	switch {
	case a.kind == ZERO:
		return b
	case b.kind == ZERO:
		return a
	}
	//
	return &Regex[W]{kind: COMBINE, left: a, right: b}
}

// Extend constructs the expression a ⊗ b, simplifying where possible.
func Extend[W sem.Element[W]](a, b *Regex[W]) *Regex[W] {
	switch {
	case a.kind == ZERO || b.kind == ZERO:
		return Zero[W]()
	case a.kind == ONE:
		return b
	case b.kind == ONE:
		return a
	}
	//
	return &Regex[W]{kind: EXTEND, left: a, right: b}
}

// Star constructs the expression a*, simplifying where possible.
func Star[W sem.Element[W]](a *Regex[W]) *Regex[W] {
	switch a.kind {
	case ZERO, ONE:
		return One[W]()
	case STAR:
		return a
	}
	//
	return &Regex[W]{kind: STAR, left: a}
}

// Kind returns the form of this expression.
func (r *Regex[W]) Kind() Kind {
	return r.kind
}

// IsZero checks whether this is the expression 0.
func (r *Regex[W]) IsZero() bool {
	return r.kind == ZERO
}

// Weight returns the weight of a leaf.
func (r *Regex[W]) Weight() W {
	if r.kind != LEAF {
		panic("weight of non-leaf expression")
	}
	//
	return r.weight
}

// Origin returns the transition of a leaf, if known.
func (r *Regex[W]) Origin() (key.Triple, bool) {
	if r.origin == nil {
		return key.Triple{}, false
	}
	//
	return *r.origin, true
}

// Operands returns the operands of a combine or extend expression, or the
// single operand of a star expression (in which case the right operand is
// nil).
func (r *Regex[W]) Operands() (*Regex[W], *Regex[W]) {
	return r.left, r.right
}

// Size returns the number of distinct nodes in this expression.
func (r *Regex[W]) Size() uint {
	var (
		seen = make(map[*Regex[W]]bool)
		size func(*Regex[W])
	)
	//
	size = func(n *Regex[W]) {
		if n == nil || seen[n] {
			return
		}
		//
		seen[n] = true
		size(n.left)
		size(n.right)
	}
	//
	size(r)
	//
	return uint(len(seen))
}

func (r *Regex[W]) String() string {
	return r.Render(nil)
}

// Render this expression, using a given namer for the transitions of leaves.
// Leaves without a transition are rendered using their weight.
func (r *Regex[W]) Render(namer key.Namer) string {
	switch r.kind {
	case ZERO:
		return "0"
	case ONE:
		return "1"
	case LEAF:
		if r.origin != nil {
			return r.origin.Render(namer)
		}
		//
		return fmt.Sprintf("[%s]", r.weight)
	case COMBINE:
		return fmt.Sprintf("(%s + %s)", r.left.Render(namer), r.right.Render(namer))
	case EXTEND:
		return fmt.Sprintf("%s.%s", r.left.Render(namer), r.right.Render(namer))
	default:
		return fmt.Sprintf("(%s)*", r.left.Render(namer))
	}
}
