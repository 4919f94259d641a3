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
package sem

import (
	"fmt"
)

// Element of a (bounded, idempotent) semiring used to weight the transitions
// of an automaton.  Implementations must be immutable: every combine or
// extend returns a new value and never modifies either operand.  This is what
// permits weights to be shared freely between transitions, states and
// witnesses.
//
// The algebraic laws (associativity, commutativity of Combine,
// distributivity, the identities of Zero and One, and Zero being absorbing
// for Extend) are not checked here.  They are preconditions which weight
// domains must satisfy, see semtest.CheckLaws.
type Element[W any] interface {
	fmt.Stringer
	// Combine returns x ⊕ y, which models "either path".
	Combine(y W) W
	// Extend returns x ⊗ y, which models "path concatenation".
	Extend(y W) W
	// Equal determines whether x and y are (semantically) the same weight.
	Equal(y W) bool
	// Zero returns the identity for Combine, which is also absorbing for
	// Extend.
	Zero() W
	// One returns the identity for Extend.
	One() W
}

// Starrable is implemented by weight domains which provide an extend-closure
// directly, rather than relying on the generic iteration performed by Star.
type Starrable[W any] interface {
	Element[W]
	// Star returns one ⊕ x ⊕ x⊗x ⊕ ...
	Star() W
}

// Leq determines whether a ⊑ b under the order induced by combine, namely
// whether a ⊕ b = a.
func Leq[W Element[W]](a, b W) bool {
	return a.Combine(b).Equal(a)
}

// Contains determines whether a already accounts for b, that is whether
// combining b into a leaves a unchanged.
func Contains[W Element[W]](a, b W) bool {
	return Leq(a, b)
}

// CombineAll combines zero or more weights together, starting from a given
// zero.
func CombineAll[W Element[W]](zero W, weights ...W) W {
	var r = zero
	//
	for _, w := range weights {
		r = r.Combine(w)
	}
	//
	return r
}

// ExtendAll extends zero or more weights together in the given order, starting
// from a given one.
func ExtendAll[W Element[W]](one W, weights ...W) W {
	var r = one
	//
	for _, w := range weights {
		r = r.Extend(w)
	}
	//
	return r
}

// Star computes the extend-closure of a given weight.  When the weight domain
// provides Starrable this is used directly.  Otherwise, the closure is
// computed by iterating r := one ⊕ (r ⊗ w) until no further change occurs.
// Observe that this only terminates for domains without infinite ascending
// chains.
func Star[W Element[W]](w W) W {
	if s, ok := any(w).(Starrable[W]); ok {
		return s.Star()
	}
	//
	var (
		one = w.One()
		r   = one
	)
	//
	for {
		next := one.Combine(r.Extend(w))
		//
		if next.Equal(r) {
			return r
		}
		//
		r = next
	}
}
