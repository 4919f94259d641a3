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

// Package witness provides a provenance overlay for weight domains.  A witness
// wraps an underlying weight and records how it was derived from the original
// transition weights via combine and extend.  Since witnesses are themselves
// weights, running a fixed point over witness-wrapped weights produces a proof
// DAG for every result without disturbing the underlying algebra.
package witness

import (
	"fmt"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// Kind identifies how a witness was produced.
type Kind uint8

const (
	// ZERO identifies a witness for the zero weight.
	ZERO Kind = iota
	// ONE identifies a witness for the one weight.
	ONE
	// LEAF identifies an original weight, such as that of a transition or
	// rule.
	LEAF
	// EXTEND identifies a witness produced by extending two witnesses.
	EXTEND
	// COMBINE identifies a witness produced by combining two or more
	// witnesses.
	COMBINE
)

func (k Kind) String() string {
	switch k {
	case ZERO:
		return "zero"
	case ONE:
		return "one"
	case LEAF:
		return "leaf"
	case EXTEND:
		return "extend"
	case COMBINE:
		return "combine"
	}
	//
	return "unknown"
}

// Witness is an immutable node in a proof DAG.  Nodes are only ever
// constructed from existing nodes, hence cycles cannot arise and nodes can be
// shared freely between parents.
//
// For a combine node, combining the weights of its children reproduces its own
// weight.  For an extend node, extending its left child by its right child
// reproduces its own weight.
type Witness[W sem.Element[W]] struct {
	weight W
	kind   Kind
	// Label for leaf witnesses (e.g. a rule or transition description).
	label string
	// Transition for leaf witnesses, if known.
	origin *key.Triple
	// Children for extend (exactly two) and combine (one or more) nodes.
	children []*Witness[W]
}

// Lift constructs a leaf witness for a given weight.
func Lift[W sem.Element[W]](weight W, label string) *Witness[W] {
	return &Witness[W]{weight: weight, kind: LEAF, label: label}
}

// LiftTrans constructs a leaf witness for the weight of a given transition.
func LiftTrans[W sem.Element[W]](from, stack, to key.Key, weight W) *Witness[W] {
	origin := &key.Triple{From: from, Stack: stack, To: to}
	//
	return &Witness[W]{weight: weight, kind: LEAF, origin: origin}
}

// Weight returns the underlying weight of this witness.
func (x *Witness[W]) Weight() W {
	return x.weight
}

// Kind returns the kind of this witness.
func (x *Witness[W]) Kind() Kind {
	return x.kind
}

// Label returns the label of a leaf witness (which may be empty).
func (x *Witness[W]) Label() string {
	return x.label
}

// Origin returns the transition from which a leaf witness originated, if
// known.
func (x *Witness[W]) Origin() (key.Triple, bool) {
	if x.origin == nil {
		return key.Triple{}, false
	}
	//
	return *x.origin, true
}

// Children returns the children of this witness.  The returned array must not
// be modified.
func (x *Witness[W]) Children() []*Witness[W] {
	return x.children
}

// Combine constructs a witness for x ⊕ y.  A fresh combine node is always
// constructed, since both x and y may be referenced elsewhere in the DAG.  The
// containment test (x ⊕ y = x) decides which operands the new node retains:
// when one operand already accounts for the other, only the dominating operand
// is retained, otherwise both are.  Operands which are themselves combine nodes
// have their children absorbed, rather than being nested.  Without this, the
// DAG would grow with every iteration of a fixed point even after the weight
// has converged.
func (x *Witness[W]) Combine(y *Witness[W]) *Witness[W] {
	combined := x.weight.Combine(y.weight)
	node := &Witness[W]{weight: combined, kind: COMBINE}
	//
	switch {
	case combined.Equal(x.weight):
		// x contains y
		node.absorb(x)
	case combined.Equal(y.weight):
		// y contains x
		node.absorb(y)
	default:
		// a real join
		node.absorb(x)
		node.absorb(y)
	}
	//
	return node
}

// Extend constructs a witness for x ⊗ y.
func (x *Witness[W]) Extend(y *Witness[W]) *Witness[W] {
	return &Witness[W]{
		weight:   x.weight.Extend(y.weight),
		kind:     EXTEND,
		children: []*Witness[W]{x, y},
	}
}

// Equal compares the underlying weights only, since two different derivations
// of the same weight are considered equal.
func (x *Witness[W]) Equal(y *Witness[W]) bool {
	return x.weight.Equal(y.weight)
}

// Zero returns a witness for the zero of the underlying domain.
func (x *Witness[W]) Zero() *Witness[W] {
	return &Witness[W]{weight: x.weight.Zero(), kind: ZERO}
}

// One returns a witness for the one of the underlying domain.
func (x *Witness[W]) One() *Witness[W] {
	return &Witness[W]{weight: x.weight.One(), kind: ONE}
}

func (x *Witness[W]) String() string {
	return x.weight.String()
}

// Describe returns a one line description of this node (excluding children).
func (x *Witness[W]) Describe(namer key.Namer) string {
	switch {
	case x.kind == LEAF && x.origin != nil:
		return fmt.Sprintf("leaf %s: %s", x.origin.Render(namer), x.weight)
	case x.kind == LEAF && x.label != "":
		return fmt.Sprintf("leaf %s: %s", x.label, x.weight)
	default:
		return fmt.Sprintf("%s: %s", x.kind, x.weight)
	}
}

// absorb incorporates a witness into this combine node.  Combine nodes
// contribute their children, whilst any other witness is added as a single
// child.
func (x *Witness[W]) absorb(w *Witness[W]) {
	if w.kind == COMBINE {
		x.children = append(x.children, w.children...)
	} else {
		x.children = append(x.children, w)
	}
}
