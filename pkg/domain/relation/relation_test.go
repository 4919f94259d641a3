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
	"testing"

	"github.com/consensys/go-wali/pkg/sem"
	"github.com/consensys/go-wali/pkg/sem/semtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, n int) *Context {
	ctx, err := NewContext(n)
	require.NoError(t, err)
	//
	return ctx
}

func mustMake(t *testing.T, ctx *Context, pairs ...[2]int) Weight {
	w, err := ctx.MakeAll(pairs...)
	require.NoError(t, err)
	//
	return w
}

func Test_Relation_Laws(t *testing.T) {
	ctx := newContext(t, 3)
	samples := []Weight{
		ctx.Empty(), ctx.Id(),
		mustMake(t, ctx, [2]int{0, 1}),
		mustMake(t, ctx, [2]int{1, 2}, [2]int{2, 0}),
		mustMake(t, ctx, [2]int{0, 0}, [2]int{1, 2}),
	}
	//
	semtest.CheckLaws(t, samples)
}

func Test_Relation_00(t *testing.T) {
	_, err := NewContext(-1)
	assert.ErrorIs(t, err, ErrNegativeSize)
	//
	ctx := newContext(t, 2)
	_, err = ctx.Make(0, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
	_, err = ctx.AddVar(-1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func Test_Relation_01(t *testing.T) {
	ctx := newContext(t, 3)
	a := mustMake(t, ctx, [2]int{0, 1})
	b := mustMake(t, ctx, [2]int{1, 2})
	//
	assert.Equal(t, [][2]uint{{0, 2}}, a.Compose(b).Pairs())
	assert.Nil(t, b.Compose(a).Pairs())
	assert.Equal(t, "{(0,1),(1,2)}", a.Union(b).String())
	assert.True(t, a.Intersect(b).Equal(ctx.Empty()))
	// Operands are not modified
	assert.Equal(t, "{(0,1)}", a.String())
}

func Test_Relation_02(t *testing.T) {
	ctx := newContext(t, 3)
	a := mustMake(t, ctx, [2]int{0, 1}, [2]int{1, 2})
	star := a.Star()
	//
	assert.True(t, star.Contains(0, 0))
	assert.True(t, star.Contains(0, 2))
	assert.False(t, star.Contains(2, 0))
	// The generic closure agrees with the specialised one.
	assert.True(t, star.Equal(sem.Star(a)))
}

func Test_Relation_03(t *testing.T) {
	ctx := newContext(t, 3)
	w, err := ctx.Parse("{(0,1), (2,2)}")
	require.NoError(t, err)
	assert.Equal(t, [][2]uint{{0, 1}, {2, 2}}, w.Pairs())
	//
	w, err = ctx.Parse("id")
	require.NoError(t, err)
	assert.True(t, w.Equal(ctx.Id()))
	//
	_, err = ctx.Parse("{(0,1,2)}")
	assert.Error(t, err)
	//
	add, err := ctx.AddVar(1)
	require.NoError(t, err)
	assert.Equal(t, [][2]uint{{0, 1}, {1, 1}, {2, 1}}, add.Pairs())
	//
	sub, err := ctx.SubVar(1)
	require.NoError(t, err)
	assert.False(t, sub.Contains(0, 1))
	assert.True(t, sub.Contains(0, 2))
}

func Test_Relation_04(t *testing.T) {
	a, b := newContext(t, 2), newContext(t, 2)
	//
	assert.Panics(t, func() { a.Id().Combine(b.Id()) })
}
