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
package relation

import (
	"fmt"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/go-wali/pkg/sem"
)

// Weight is a binary relation over the universe of its context.  Row i holds
// the set of values j such that (i,j) is in the relation.  Rows are never
// modified once the relation is constructed.
type Weight struct {
	ctx  *Context
	rows []*bitset.BitSet
}

var _ sem.Starrable[Weight] = Weight{}

// Context returns the universe of this relation.
func (x Weight) Context() *Context {
	return x.ctx
}

// Contains checks whether (from,to) is in this relation.
func (x Weight) Contains(from, to uint) bool {
	return from < uint(len(x.rows)) && x.rows[from].Test(to)
}

// Pairs returns the pairs of this relation in lexicographic order.
func (x Weight) Pairs() [][2]uint {
	var pairs [][2]uint
	//
	for i, row := range x.rows {
		for j, ok := row.NextSet(0); ok; j, ok = row.NextSet(j + 1) {
			pairs = append(pairs, [2]uint{uint(i), j})
		}
	}
	//
	return pairs
}

// Union returns x ∪ y.
func (x Weight) Union(y Weight) Weight {
	x.checkContext(y)
	//
	rows := make([]*bitset.BitSet, len(x.rows))
	for i := range rows {
		rows[i] = x.rows[i].Union(y.rows[i])
	}
	//
	return Weight{x.ctx, rows}
}

// Intersect returns x ∩ y.
func (x Weight) Intersect(y Weight) Weight {
	x.checkContext(y)
	//
	rows := make([]*bitset.BitSet, len(x.rows))
	for i := range rows {
		rows[i] = x.rows[i].Intersection(y.rows[i])
	}
	//
	return Weight{x.ctx, rows}
}

// Compose returns the relational composition x;y, that is {(a,c) | (a,b) ∈ x,
// (b,c) ∈ y}.
func (x Weight) Compose(y Weight) Weight {
	x.checkContext(y)
	//
	rows := x.ctx.emptyRows()
	//
	for i, row := range x.rows {
		for k, ok := row.NextSet(0); ok; k, ok = row.NextSet(k + 1) {
			rows[i].InPlaceUnion(y.rows[k])
		}
	}
	//
	return Weight{x.ctx, rows}
}

// Combine is relational union.
func (x Weight) Combine(y Weight) Weight {
	return x.Union(y)
}

// Extend is relational composition.
func (x Weight) Extend(y Weight) Weight {
	return x.Compose(y)
}

// Equal checks whether two relations contain the same pairs.
func (x Weight) Equal(y Weight) bool {
	x.checkContext(y)
	//
	for i := range x.rows {
		if x.rows[i].SymmetricDifferenceCardinality(y.rows[i]) != 0 {
			return false
		}
	}
	//
	return true
}

// Zero returns the empty relation.
func (x Weight) Zero() Weight {
	return x.ctx.Empty()
}

// One returns the identity relation.
func (x Weight) One() Weight {
	return x.ctx.Id()
}

// Star returns the reflexive transitive closure of x.
func (x Weight) Star() Weight {
	n := len(x.rows)
	rows := make([]*bitset.BitSet, n)
	//
	for i := range rows {
		rows[i] = x.rows[i].Clone()
		rows[i].Set(uint(i))
	}
	// Warshall
	for k := 0; k < n; k++ {
		for i := 0; i < n; i++ {
			if rows[i].Test(uint(k)) {
				rows[i].InPlaceUnion(rows[k])
			}
		}
	}
	//
	return Weight{x.ctx, rows}
}

func (x Weight) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, p := range x.Pairs() {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(fmt.Sprintf("(%d,%d)", p[0], p[1]))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func (x Weight) checkContext(y Weight) {
	if x.ctx != y.ctx {
		panic("relations from different contexts")
	}
}
