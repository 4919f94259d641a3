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
	"math"
)

// Key is an interned identifier used for states, stack symbols and alphabet
// symbols.  Keys are compared (and ordered) as plain integers.
type Key uint

const (
	// Epsilon is the reserved symbol meaning "no symbol consumed".
	Epsilon Key = 0
	// NoKey identifies the absence of a key, such as an automaton which has no
	// initial state.
	NoKey Key = math.MaxUint
)

// String returns the integer rendering of this key.
func (k Key) String() string {
	switch k {
	case Epsilon:
		return "*"
	case NoKey:
		return "?"
	}
	//
	return fmt.Sprintf("%d", uint(k))
}

// Pair identifies a pair of keys, such as a state of a product automaton.
type Pair struct {
	First  Key
	Second Key
}

// Namer converts keys back into something human readable.  This is all that
// printing and marshalling code requires from a symbol table.
type Namer interface {
	Name(Key) string
}

// DefaultNamer renders keys using their integer values.
var DefaultNamer Namer = defaultNamer{}

type defaultNamer struct{}

func (defaultNamer) Name(k Key) string {
	return k.String()
}

// NameOf renders a given key using a namer, falling back on the default namer
// when none is given.
func NameOf(namer Namer, k Key) string {
	if namer == nil {
		return k.String()
	}
	//
	return namer.Name(k)
}

// Triple identifies a transition by its source, symbol and target.
type Triple struct {
	From  Key
	Stack Key
	To    Key
}

// Render a triple using a given namer.
func (t Triple) Render(namer Namer) string {
	return fmt.Sprintf("(%s,%s,%s)", NameOf(namer, t.From), NameOf(namer, t.Stack), NameOf(namer, t.To))
}
