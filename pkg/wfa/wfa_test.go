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
	"testing"

	"github.com/consensys/go-wali/pkg/domain/lang"
	"github.com/consensys/go-wali/pkg/domain/minplus"
	"github.com/consensys/go-wali/pkg/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MinPlus = minplus.Weight

func Test_WFA_00(t *testing.T) {
	tab := key.NewTable()
	p, a, q := tab.Key("p"), tab.Key("a"), tab.Key("q")
	fa := New[MinPlus](INORDER)
	// Missing states are created
	fa.AddTrans(p, a, q, minplus.New(5))
	assert.Equal(t, uint(2), fa.NumStates())
	assert.Equal(t, uint(1), fa.NumTrans())
	assert.Equal(t, []key.Key{p, q}, fa.States())
	//
	tr, ok := fa.Find(p, a, q)
	require.True(t, ok)
	assert.Equal(t, minplus.New(5), tr.Weight())
	assert.Len(t, fa.Match(p, a), 1)
	assert.Empty(t, fa.Match(q, a))
	// Accumulator of a fresh state is its zero
	w, ok := fa.Weight(q)
	require.True(t, ok)
	assert.True(t, w.IsInfinite())
	// Erasing a missing transition does nothing
	assert.False(t, fa.Erase(q, a, p))
	assert.True(t, fa.Erase(p, a, q))
	assert.False(t, fa.Erase(p, a, q))
	assert.Equal(t, uint(0), fa.NumTrans())
	assert.Equal(t, uint(2), fa.NumStates())
}

func Test_WFA_01(t *testing.T) {
	// Duplicate transitions are collapsed by combine.
	tab := key.NewTable()
	p, x, q := tab.Key("p"), tab.Key("x"), tab.Key("q")
	fa := New[lang.Weight](INORDER)
	fa.AddTrans(p, x, q, lang.Words("A"))
	fa.AddTrans(p, x, q, lang.Words("B"))
	//
	tr, ok := fa.Find(p, x, q)
	require.True(t, ok)
	assert.Equal(t, uint(1), fa.NumTrans())
	assert.Equal(t, "{A,B}", tr.Weight().String())
}

func Test_WFA_02(t *testing.T) {
	// Adding an existing state retains it.
	fa := New[MinPlus](INORDER)
	fa.AddState(1, minplus.Infinity())
	fa.AddTrans(1, 2, 3, minplus.New(1))
	fa.AddState(1, minplus.New(0))
	//
	s, ok := fa.State(1)
	require.True(t, ok)
	assert.True(t, s.Zero().IsInfinite())
	assert.Equal(t, uint(2), fa.NumStates())
}

func Test_WFA_03(t *testing.T) {
	fa := New[MinPlus](INORDER)
	fa.AddTrans(1, 2, 3, minplus.New(1))
	fa.AddTrans(3, key.Epsilon, 4, minplus.New(2))
	fa.AddTrans(1, key.Epsilon, 4, minplus.New(3))
	fa.SetInitialState(1)
	fa.AddFinalState(4)
	// Epsilon index
	eps := fa.EpsTransTo(4)
	require.Len(t, eps, 2)
	assert.Equal(t, key.Key(3), eps[0].From())
	assert.Equal(t, key.Key(1), eps[1].From())
	// Erasing a state removes its outgoing transitions only
	assert.True(t, fa.EraseState(3))
	assert.False(t, fa.EraseState(3))
	assert.Equal(t, uint(2), fa.NumTrans())
	assert.Len(t, fa.EpsTransTo(4), 1)
	_, ok := fa.Find(1, 2, 3)
	assert.True(t, ok)
	// Erasing the initial state
	assert.True(t, fa.EraseState(1))
	assert.Equal(t, key.NoKey, fa.InitialState())
	assert.Equal(t, uint(0), fa.NumTrans())
}

func Test_WFA_04(t *testing.T) {
	// Copies are independent
	fa := New[MinPlus](REVERSE)
	fa.AddTrans(1, 2, 3, minplus.New(1))
	fa.SetInitialState(1)
	fa.AddFinalState(3)
	//
	fb := fa.Copy()
	fb.AddTrans(3, 2, 1, minplus.New(2))
	fb.AddFinalState(1)
	//
	assert.Equal(t, uint(1), fa.NumTrans())
	assert.Equal(t, uint(2), fb.NumTrans())
	assert.Equal(t, []key.Key{3}, fa.FinalStates())
	assert.Equal(t, []key.Key{1, 3}, fb.FinalStates())
	assert.Equal(t, REVERSE, fb.Query())
	assert.True(t, fb.IsInitialState(1))
	// Clear
	fb.Clear()
	assert.Equal(t, uint(0), fb.NumStates())
	assert.Equal(t, uint(0), fb.NumTrans())
	assert.Empty(t, fb.FinalStates())
	assert.Equal(t, key.NoKey, fb.InitialState())
	_, ok := fb.SomeWeight()
	assert.False(t, ok)
}

func Test_WFA_05(t *testing.T) {
	// Transitions are ordered
	fa := New[MinPlus](INORDER)
	fa.AddTrans(3, 1, 1, minplus.New(1))
	fa.AddTrans(1, 2, 3, minplus.New(2))
	fa.AddTrans(1, 1, 4, minplus.New(3))
	fa.AddTrans(1, 1, 3, minplus.New(4))
	//
	var triples []key.Triple
	//
	fa.ForEach(func(tr Trans[MinPlus]) {
		triples = append(triples, tr.Triple())
	})
	//
	assert.Equal(t, []key.Triple{{From: 1, Stack: 1, To: 3}, {From: 1, Stack: 1, To: 4}, {From: 1, Stack: 2, To: 3},
		{From: 3, Stack: 1, To: 1}}, triples)
	assert.Equal(t, []key.Key{1, 2}, fa.Alphabet())
}

func Test_Query_00(t *testing.T) {
	for _, s := range []string{"inorder", "PRESTAR", " pre "} {
		q, err := ParseQuery(s)
		require.NoError(t, err)
		assert.Equal(t, INORDER, q)
	}
	//
	for _, s := range []string{"reverse", "poststar"} {
		q, err := ParseQuery(s)
		require.NoError(t, err)
		assert.Equal(t, REVERSE, q)
	}
	//
	_, err := ParseQuery("sideways")
	assert.Error(t, err)
	assert.Equal(t, "REVERSE", REVERSE.String())
}
