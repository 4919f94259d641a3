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

// Package count provides the counting semiring over the scalar field of
// BLS12-377.  Combine is field addition and extend is field multiplication,
// hence the summary of an acyclic automaton counts its accepting paths (modulo
// the field order).
//
// Observe that this domain is not idempotent.  It cannot be used with the
// worklist fixed point, which may combine the same contribution more than
// once, but it can be used with path expressions.  Cycles are summarised as
// formal geometric series, which is only a path count for acyclic automata.
package count

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/go-wali/pkg/sem"
)

// Weight is an element of the BLS12-377 scalar field.
type Weight struct {
	element fr.Element
}

var _ sem.Element[Weight] = Weight{}
var _ sem.Starrable[Weight] = Weight{}

// New constructs a weight from a given count.
func New(n uint64) Weight {
	var w Weight
	//
	w.element.SetUint64(n)
	//
	return w
}

// Parse a weight from a decimal string.
func Parse(s string) (Weight, error) {
	var w Weight
	//
	if _, err := w.element.SetString(s); err != nil {
		return w, fmt.Errorf("invalid count %q: %w", s, err)
	}
	//
	return w, nil
}

// Uint64 returns the count held in this weight, provided it fits.
func (x Weight) Uint64() (uint64, bool) {
	if !x.element.IsUint64() {
		return 0, false
	}
	//
	return x.element.Uint64(), true
}

// Combine returns x + y.
func (x Weight) Combine(y Weight) Weight {
	var r Weight
	//
	r.element.Add(&x.element, &y.element)
	//
	return r
}

// Extend returns x * y.
func (x Weight) Extend(y Weight) Weight {
	var r Weight
	//
	r.element.Mul(&x.element, &y.element)
	//
	return r
}

// Equal checks whether x = y.
func (x Weight) Equal(y Weight) bool {
	return x.element.Equal(&y.element)
}

// Zero returns 0.
func (x Weight) Zero() Weight {
	return Weight{}
}

// One returns 1.
func (x Weight) One() Weight {
	var r Weight
	//
	r.element.SetOne()
	//
	return r
}

// Star returns the sum of the geometric series 1 + x + x² + ..., which in a
// field is 1/(1-x).  This has no value when x = 1, which corresponds to
// infinitely many paths through a cycle of weight one.
func (x Weight) Star() Weight {
	var r Weight
	//
	if x.element.IsOne() {
		panic("unbounded path count (star of one)")
	}
	//
	r.element.SetOne()
	r.element.Sub(&r.element, &x.element)
	r.element.Inverse(&r.element)
	//
	return r
}

func (x Weight) String() string {
	return x.element.String()
}
