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
package witness

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// Visitor is called for each node of a witness DAG along with its depth.  The
// children of a node are only visited when the visitor returns true.
type Visitor[W sem.Element[W]] func(node *Witness[W], depth uint) bool

// Walk visits the nodes of this witness DAG in pre-order.  Shared nodes are
// visited only once.
func (x *Witness[W]) Walk(visitor Visitor[W]) {
	var (
		visited = make(map[*Witness[W]]bool)
		walk    func(*Witness[W], uint)
	)
	//
	walk = func(w *Witness[W], depth uint) {
		if visited[w] {
			return
		}
		//
		visited[w] = true
		//
		if visitor(w, depth) {
			for _, c := range w.children {
				walk(c, depth+1)
			}
		}
	}
	//
	walk(x, 0)
}

// Size returns the number of distinct nodes in this witness DAG.
func (x *Witness[W]) Size() uint {
	var n uint
	//
	x.Walk(func(*Witness[W], uint) bool {
		n++
		return true
	})
	//
	return n
}

// Leaves returns the distinct leaf witnesses reachable from this witness.
func (x *Witness[W]) Leaves() []*Witness[W] {
	var leaves []*Witness[W]
	//
	x.Walk(func(w *Witness[W], _ uint) bool {
		if w.kind == LEAF {
			leaves = append(leaves, w)
		}
		//
		return true
	})
	//
	return leaves
}

// Verify checks that every node in this witness DAG is consistent with its
// children.  That is, combining the children of a combine node reproduces its
// weight and extending the children of an extend node reproduces its weight.
func (x *Witness[W]) Verify() error {
	var err error
	//
	x.Walk(func(w *Witness[W], _ uint) bool {
		if err != nil {
			return false
		}
		//
		err = w.verifyNode()
		//
		return err == nil
	})
	//
	return err
}

func (x *Witness[W]) verifyNode() error {
	switch x.kind {
	case ZERO:
		if !x.weight.Equal(x.weight.Zero()) {
			return fmt.Errorf("zero witness has weight %s", x.weight)
		}
	case ONE:
		if !x.weight.Equal(x.weight.One()) {
			return fmt.Errorf("one witness has weight %s", x.weight)
		}
	case EXTEND:
		if len(x.children) != 2 {
			return fmt.Errorf("extend witness has %d children", len(x.children))
		} else if w := x.children[0].weight.Extend(x.children[1].weight); !w.Equal(x.weight) {
			return fmt.Errorf("extend witness has weight %s, but children give %s", x.weight, w)
		}
	case COMBINE:
		if len(x.children) == 0 {
			return fmt.Errorf("combine witness has no children")
		}
		//
		w := x.weight.Zero()
		for _, c := range x.children {
			w = w.Combine(c.weight)
		}
		//
		if !w.Equal(x.weight) {
			return fmt.Errorf("combine witness has weight %s, but children give %s", x.weight, w)
		}
	}
	//
	return nil
}

// PrettyPrint writes this witness DAG as an indented tree.  Nodes shared
// between several parents are printed in full under each parent.
func (x *Witness[W]) PrettyPrint(out io.Writer, namer key.Namer) error {
	return x.prettyPrint(out, namer, 0)
}

func (x *Witness[W]) prettyPrint(out io.Writer, namer key.Namer, depth int) error {
	if _, err := fmt.Fprintf(out, "%s%s\n", strings.Repeat("  ", depth), x.Describe(namer)); err != nil {
		return err
	}
	//
	for _, c := range x.children {
		if err := c.prettyPrint(out, namer, depth+1); err != nil {
			return err
		}
	}
	//
	return nil
}
