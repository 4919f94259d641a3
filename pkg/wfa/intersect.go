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

	"github.com/consensys/go-wali/pkg/key"
)

// PairKeyer names the states of a product automaton.  It must return the same
// key whenever it is given the same pair.
type PairKeyer interface {
	PairKey(a key.Key, b key.Key) key.Key
}

// Intersect constructs the product of this automaton with another, whose
// states are the pairs of states reachable from the pair of initial states by
// synchronising on transitions with the same symbol.  Epsilon transitions are
// only synchronised with epsilon transitions.  The weight of each product
// transition is determined by the given weight maker, and product states are
// named by the given keyer.  A pair of final states is final.
//
// Both automata must have an initial state.
func (p *WFA[W]) Intersect(wm WeightMaker[W], other *WFA[W], pairs PairKeyer) *WFA[W] {
	var (
		result   = New[W](p.query)
		visited  = make(map[key.Pair]key.Key)
		worklist []key.Pair
	)
	//
	if p.initial == key.NoKey || other.initial == key.NoKey {
		panic("intersection requires both automata to have an initial state")
	}
	// visit registers a product state, returning its key.
	visit := func(pair key.Pair) key.Key {
		if k, ok := visited[pair]; ok {
			return k
		}
		//
		k := pairs.PairKey(pair.First, pair.Second)
		visited[pair] = k
		worklist = append(worklist, pair)
		//
		if s, ok := p.states[pair.First]; ok {
			result.AddState(k, s.zero)
		} else if s, ok := other.states[pair.Second]; ok {
			result.AddState(k, s.zero)
		}
		//
		if p.IsFinalState(pair.First) && other.IsFinalState(pair.Second) {
			result.AddFinalState(k)
		}
		//
		return k
	}
	//
	result.SetInitialState(visit(key.Pair{First: p.initial, Second: other.initial}))
	//
	for len(worklist) > 0 {
		n := len(worklist) - 1
		pair := worklist[n]
		worklist = worklist[:n]
		from := visited[pair]
		//
		for _, t1 := range p.out[pair.First] {
			for _, t2 := range other.kpmap[key.Pair{First: pair.Second, Second: t1.stack}] {
				to := visit(key.Pair{First: t1.to, Second: t2.to})
				result.AddTrans(from, t1.stack, to, wm.Make(t1.weight, t2.weight))
			}
		}
	}
	//
	return result
}

// projection is a PairKeyer which issues fresh keys, and remembers the pair
// each key was issued for.
type projection struct {
	keys  map[key.Pair]key.Key
	pairs []key.Pair
}

func newProjection() *projection {
	return &projection{keys: make(map[key.Pair]key.Key)}
}

func (p *projection) PairKey(a key.Key, b key.Key) key.Key {
	pair := key.Pair{First: a, Second: b}
	//
	if k, ok := p.keys[pair]; ok {
		return k
	}
	//
	k := key.Key(len(p.pairs))
	p.keys[pair] = k
	p.pairs = append(p.pairs, pair)
	//
	return k
}

func (p *projection) unpair(k key.Key) key.Pair {
	if uint(k) >= uint(len(p.pairs)) {
		panic(fmt.Sprintf("unknown product state %d", k))
	}
	//
	return p.pairs[k]
}
