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
package key

import (
	"fmt"
)

// EpsilonName is the name under which the epsilon symbol is registered in
// every table.
const EpsilonName = "*"

// Table interns names into keys.  Every table reserves Epsilon for the name
// "*", hence the first user name receives key 1.  A table is an explicit
// object passed to whoever needs it, rather than a process-wide factory.
type Table struct {
	names []string
	keys  map[string]Key
	pairs map[Pair]Key
}

// NewTable constructs a table holding only the epsilon symbol.
func NewTable() *Table {
	t := &Table{
		names: []string{EpsilonName},
		keys:  make(map[string]Key),
		pairs: make(map[Pair]Key),
	}
	//
	t.keys[EpsilonName] = Epsilon
	//
	return t
}

// Key interns a given name, returning its existing key if it was seen before.
func (t *Table) Key(name string) Key {
	if k, ok := t.keys[name]; ok {
		return k
	}
	//
	k := Key(len(t.names))
	t.names = append(t.names, name)
	t.keys[name] = k
	//
	return k
}

// Keys interns zero or more names.
func (t *Table) Keys(names ...string) []Key {
	keys := make([]Key, len(names))
	//
	for i, n := range names {
		keys[i] = t.Key(n)
	}
	//
	return keys
}

// Lookup returns the key for a name, without interning it.
func (t *Table) Lookup(name string) (Key, bool) {
	k, ok := t.keys[name]
	return k, ok
}

// PairKey interns a pair of keys, as used for naming the states of a product
// automaton.  The resulting key is named "(a,b)".
func (t *Table) PairKey(a, b Key) Key {
	p := Pair{a, b}
	//
	if k, ok := t.pairs[p]; ok {
		return k
	}
	// Generate a fresh key for this pair.
	k := t.Key(fmt.Sprintf("(%s,%s)", t.Name(a), t.Name(b)))
	t.pairs[p] = k
	//
	return k
}

// Unpair returns the pair of keys from which a given key was constructed by
// PairKey, or false if it was not.
func (t *Table) Unpair(k Key) (Pair, bool) {
	for p, pk := range t.pairs {
		if pk == k {
			return p, true
		}
	}
	//
	return Pair{}, false
}

// Name returns the name of a given key.  Keys which were not issued by this
// table are rendered as integers.
func (t *Table) Name(k Key) string {
	if uint(k) < uint(len(t.names)) {
		return t.names[k]
	}
	//
	return k.String()
}

// Size returns the number of keys issued by this table (including epsilon).
func (t *Table) Size() uint {
	return uint(len(t.names))
}
