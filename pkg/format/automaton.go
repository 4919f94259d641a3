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

// Package format reads descriptions of weighted automata from text, and builds
// automata from them.  Descriptions name states, symbols and weights by
// strings, leaving their interpretation to the caller.
package format

import (
	"fmt"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
	"github.com/consensys/go-wali/pkg/wfa"
)

// Transition describes a single weighted transition.
type Transition struct {
	From   string `yaml:"from"`
	Stack  string `yaml:"stack"`
	To     string `yaml:"to"`
	Weight string `yaml:"weight"`
}

// Automaton describes a weighted automaton.  An empty query is taken to mean
// INORDER, and an empty initial state means there is none.
type Automaton struct {
	Query       string       `yaml:"query"`
	Initial     string       `yaml:"initial"`
	Finals      []string     `yaml:"final"`
	Transitions []Transition `yaml:"transitions"`
}

// WeightParser converts the textual form of a weight into a weight.
type WeightParser[W sem.Element[W]] func(string) (W, error)

// IsEpsilon checks whether a given name denotes the epsilon symbol.  Aside from
// the canonical "*", both "eps" and "ε" are accepted.
func IsEpsilon(name string) bool {
	return name == key.EpsilonName || name == "eps" || name == "ε"
}

// Build constructs the automaton described by a given description, interning
// names into a given table and parsing weights with a given parser.  Initial
// and final states are only created when the description has at least one
// transition, since otherwise no zero weight is available for them.  See
// BuildWith.
func Build[W sem.Element[W]](a *Automaton, table *key.Table, parse WeightParser[W]) (*wfa.WFA[W], error) {
	return build(a, table, parse, nil)
}

// BuildWith is as Build, except that the zero of a given weight is used for
// initial and final states when the description has no transitions.
func BuildWith[W sem.Element[W]](a *Automaton, table *key.Table, parse WeightParser[W], some W) (*wfa.WFA[W],
	error) {
	return build(a, table, parse, &some)
}

func build[W sem.Element[W]](a *Automaton, table *key.Table, parse WeightParser[W], fallback *W) (*wfa.WFA[W],
	error) {
	var query = wfa.INORDER
	//
	if a.Query != "" {
		var err error
		//
		if query, err = wfa.ParseQuery(a.Query); err != nil {
			return nil, err
		}
	}
	//
	r := wfa.New[W](query)
	//
	for i, t := range a.Transitions {
		if t.From == "" || t.To == "" {
			return nil, fmt.Errorf("transition %d: missing state", i)
		}
		//
		w, err := parse(t.Weight)
		//
		if err != nil {
			return nil, fmt.Errorf("transition %d (%s,%s,%s): %w", i, t.From, t.Stack, t.To, err)
		}
		//
		r.AddTrans(table.Key(t.From), symbol(table, t.Stack), table.Key(t.To), w)
	}
	// States mentioned without transitions need a zero.
	some, ok := r.SomeWeight()
	//
	if !ok && fallback != nil {
		some, ok = *fallback, true
	}
	//
	if a.Initial != "" {
		k := table.Key(a.Initial)
		r.SetInitialState(k)
		//
		if ok {
			r.AddState(k, some.Zero())
		}
	}
	//
	for _, f := range a.Finals {
		k := table.Key(f)
		r.AddFinalState(k)
		//
		if ok {
			r.AddState(k, some.Zero())
		}
	}
	//
	return r, nil
}

func symbol(table *key.Table, name string) key.Key {
	if name == "" || IsEpsilon(name) {
		return key.Epsilon
	}
	//
	return table.Key(name)
}
