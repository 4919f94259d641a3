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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Table_00(t *testing.T) {
	tab := NewTable()
	// Epsilon is always present
	k, ok := tab.Lookup(EpsilonName)
	require.True(t, ok)
	assert.Equal(t, Epsilon, k)
	assert.Equal(t, uint(1), tab.Size())
}

func Test_Table_01(t *testing.T) {
	tab := NewTable()
	p := tab.Key("p")
	q := tab.Key("q")
	//
	assert.Equal(t, Key(1), p)
	assert.Equal(t, Key(2), q)
	assert.Equal(t, p, tab.Key("p"))
	assert.Equal(t, "q", tab.Name(q))
	assert.Equal(t, []Key{p, q, 3}, tab.Keys("p", "q", "r"))
}

func Test_Table_02(t *testing.T) {
	tab := NewTable()
	p, q := tab.Key("p"), tab.Key("q")
	pq := tab.PairKey(p, q)
	//
	assert.Equal(t, "(p,q)", tab.Name(pq))
	assert.Equal(t, pq, tab.PairKey(p, q))
	assert.NotEqual(t, pq, tab.PairKey(q, p))
	//
	pair, ok := tab.Unpair(pq)
	require.True(t, ok)
	assert.Equal(t, Pair{p, q}, pair)
	//
	_, ok = tab.Unpair(p)
	assert.False(t, ok)
}

func Test_Table_03(t *testing.T) {
	tab := NewTable()
	// Keys not issued by the table still render.
	assert.Equal(t, "42", tab.Name(42))
	assert.Equal(t, "*", NameOf(nil, Epsilon))
	assert.Equal(t, "7", NameOf(DefaultNamer, 7))
	assert.Equal(t, "?", NoKey.String())
}
