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
	"context"
	"errors"
	"testing"

	"github.com/consensys/go-wali/pkg/domain/count"
	"github.com/consensys/go-wali/pkg/domain/lang"
	"github.com/consensys/go-wali/pkg/domain/minplus"
	"github.com/consensys/go-wali/pkg/domain/relation"
	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/regex"
	"github.com/consensys/go-wali/pkg/sem"
	"github.com/consensys/go-wali/pkg/worklist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_PathSummary_00(t *testing.T) {
	// p --a/5--> q with q final
	fa := New[MinPlus](INORDER)
	fa.AddTrans(1, 2, 3, minplus.New(5))
	fa.SetInitialState(1)
	fa.AddFinalState(3)
	//
	require.NoError(t, fa.PathSummary(context.Background()))
	checkWeight(t, fa, 1, minplus.New(5))
	checkWeight(t, fa, 3, minplus.New(0))
	assert.Equal(t, uint(1), fa.Generation())
}

func Test_PathSummary_01(t *testing.T) {
	// Epsilon chain p --ε/a--> q --ε/b--> r with r final
	build := func(query Query) *WFA[lang.Weight] {
		fa := New[lang.Weight](query)
		fa.AddTrans(1, key.Epsilon, 2, lang.Words("a"))
		fa.AddTrans(2, key.Epsilon, 3, lang.Words("b"))
		fa.SetInitialState(1)
		fa.AddFinalState(3)
		//
		return fa
	}
	//
	inorder := build(INORDER)
	require.NoError(t, inorder.PathSummary(context.Background()))
	checkWeight(t, inorder, 1, lang.Words("ab"))
	checkWeight(t, inorder, 2, lang.Words("b"))
	checkWeight(t, inorder, 3, lang.Epsilon())
	//
	reverse := build(REVERSE)
	require.NoError(t, reverse.PathSummary(context.Background()))
	checkWeight(t, reverse, 1, lang.Words("ba"))
}

func Test_PathSummary_02(t *testing.T) {
	// Mixed epsilon and non-epsilon paths are combined.
	fa := New[lang.Weight](INORDER)
	fa.AddTrans(1, 5, 2, lang.Words("x"))
	fa.AddTrans(2, key.Epsilon, 3, lang.Words("y"))
	fa.AddTrans(1, key.Epsilon, 3, lang.Words("z"))
	fa.AddTrans(3, 6, 4, lang.Epsilon())
	fa.SetInitialState(1)
	fa.AddFinalState(4)
	fa.AddFinalState(3)
	//
	require.NoError(t, fa.PathSummary(context.Background()))
	checkWeight(t, fa, 1, lang.Words("xy", "z"))
	checkWeight(t, fa, 3, lang.Epsilon())
}

func Test_PathSummary_03(t *testing.T) {
	// Running a second time gives the same result.
	fa := cyclicMinPlus(INORDER)
	require.NoError(t, fa.PathSummary(context.Background()))
	//
	first := weights(fa)
	//
	var stats SummaryStats
	//
	require.NoError(t, fa.PathSummary(context.Background(), WithStats[MinPlus](&stats)))
	assert.Equal(t, first, weights(fa))
	assert.Equal(t, uint(2), fa.Generation())
	assert.NotZero(t, stats.Pops)
	//
	checkWeight(t, fa, 1, minplus.New(4))
	checkWeight(t, fa, 2, minplus.New(3))
	checkWeight(t, fa, 4, minplus.New(0))
}

func Test_PathSummary_04(t *testing.T) {
	// Every update moves down the domain order.
	var (
		fa      = cyclicMinPlus(INORDER)
		updates = 0
	)
	//
	observer := func(_ key.Key, old MinPlus, new MinPlus) {
		updates++
		//
		assert.True(t, sem.Leq(new, old), "%s is not below %s", new, old)
		assert.False(t, new.Equal(old))
	}
	//
	require.NoError(t, fa.PathSummary(context.Background(), WithObserver(observer)))
	assert.NotZero(t, updates)
}

func Test_PathSummary_05(t *testing.T) {
	// Results do not depend upon the worklist policy.
	expected := weights(summarise(t, cyclicMinPlus(INORDER)))
	//
	policies := []worklist.Worklist[*State[MinPlus]]{
		worklist.NewLifo[*State[MinPlus]](),
		worklist.NewFifo[*State[MinPlus]](),
		worklist.NewPriority(func(a, b *State[MinPlus]) bool { return a.Name() > b.Name() }),
	}
	//
	for _, wl := range policies {
		fa := cyclicMinPlus(INORDER)
		require.NoError(t, fa.PathSummary(context.Background(), WithWorklist(wl)))
		assert.Equal(t, expected, weights(fa))
		assert.True(t, wl.Empty())
	}
}

func Test_PathSummary_06(t *testing.T) {
	fa := cyclicMinPlus(INORDER)
	// Cancelled context
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	//
	err := fa.PathSummary(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, uint(0), fa.Generation())
	// Iteration limit
	err = fa.PathSummary(context.Background(), WithMaxIterations[MinPlus](1))
	assert.True(t, errors.Is(err, ErrIterationLimit))
	assert.Equal(t, uint(0), fa.Generation())
	// Recovers
	require.NoError(t, fa.PathSummary(context.Background()))
	checkWeight(t, fa, 1, minplus.New(4))
}

func Test_PathSummary_07(t *testing.T) {
	// Final states seeded with a given weight.
	fa := cyclicMinPlus(INORDER)
	require.NoError(t, fa.PathSummary(context.Background(), WithFinalWeight(minplus.New(100))))
	checkWeight(t, fa, 4, minplus.New(100))
	checkWeight(t, fa, 1, minplus.New(104))
}

func Test_PathSummary_08(t *testing.T) {
	// Relations are not commutative, hence the query mode matters.
	rel, err := relation.NewContext(3)
	require.NoError(t, err)
	//
	r01 := mustRel(t, rel, "{(0,1)}")
	r12 := mustRel(t, rel, "{(1,2)}")
	//
	inorder := New[relation.Weight](INORDER)
	inorder.AddTrans(1, 5, 2, r01)
	inorder.AddTrans(2, 5, 3, r12)
	inorder.AddFinalState(3)
	require.NoError(t, inorder.PathSummary(context.Background()))
	checkWeight(t, inorder, 1, mustRel(t, rel, "{(0,2)}"))
	//
	reverse := New[relation.Weight](REVERSE)
	reverse.AddTrans(1, 5, 2, r01)
	reverse.AddTrans(2, 5, 3, r12)
	reverse.AddFinalState(3)
	require.NoError(t, reverse.PathSummary(context.Background()))
	checkWeight(t, reverse, 1, rel.Empty())
}

func Test_RegexSummary_00(t *testing.T) {
	// Regex summary agrees with the fixed point on cyclic automata.
	for _, query := range []Query{INORDER, REVERSE} {
		fa := cyclicMinPlus(query)
		fb := cyclicMinPlus(query)
		//
		require.NoError(t, fa.PathSummary(context.Background()))
		require.NoError(t, fb.RegexSummary(context.Background()))
		assert.Equal(t, weights(fa), weights(fb))
		assert.Equal(t, uint(1), fb.Generation())
	}
}

func Test_RegexSummary_01(t *testing.T) {
	rel, err := relation.NewContext(4)
	require.NoError(t, err)
	//
	for _, query := range []Query{INORDER, REVERSE} {
		fa := cyclicRelation(t, rel, query)
		fb := cyclicRelation(t, rel, query)
		//
		require.NoError(t, fa.PathSummary(context.Background()))
		require.NoError(t, fb.RegexSummary(context.Background()))
		//
		for _, k := range fa.States() {
			wa, _ := fa.Weight(k)
			wb, _ := fb.Weight(k)
			assert.True(t, wa.Equal(wb), "state %d (%s): %s vs %s", k, query, wa, wb)
		}
	}
}

func Test_RegexSummary_02(t *testing.T) {
	// Counting paths through a DAG
	one := count.New(1)
	fa := New[count.Weight](INORDER)
	fa.AddTrans(1, 5, 2, one)
	fa.AddTrans(1, 6, 2, one)
	fa.AddTrans(2, 5, 3, one)
	fa.AddTrans(2, 6, 3, one)
	fa.AddTrans(1, 7, 3, one)
	fa.SetInitialState(1)
	fa.AddFinalState(3)
	//
	require.NoError(t, fa.RegexSummary(context.Background()))
	checkWeight(t, fa, 1, count.New(5))
	checkWeight(t, fa, 2, count.New(2))
	checkWeight(t, fa, 3, count.New(1))
}

func Test_RegexSummary_03(t *testing.T) {
	// Path expressions can be reevaluated.
	fa := cyclicMinPlus(INORDER)
	exprs := fa.PathExpressions()
	require.Len(t, exprs, 4)
	//
	eval := regexEvaluator(fa, func(key.Triple) MinPlus { return minplus.New(1) })
	assert.Equal(t, minplus.New(1), eval.Eval(exprs[1]))
	assert.Equal(t, minplus.New(1), eval.Eval(exprs[2]))
	assert.Equal(t, minplus.New(2), eval.Eval(exprs[3]))
	assert.Equal(t, minplus.New(0), eval.Eval(exprs[4]))
	//
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, fa.RegexSummary(ctx), context.Canceled)
}

// ============================================================================
// Helpers
// ============================================================================

// cyclicMinPlus constructs the automaton:
//
//	1 --a/1--> 2, 2 --b/2--> 1, 2 --c/3--> 4, 1 --d/10--> 4, 3 --e/1--> 1
//
// where 4 is final.
func cyclicMinPlus(query Query) *WFA[MinPlus] {
	fa := New[MinPlus](query)
	fa.AddTrans(1, 5, 2, minplus.New(1))
	fa.AddTrans(2, 6, 1, minplus.New(2))
	fa.AddTrans(2, 7, 4, minplus.New(3))
	fa.AddTrans(1, 8, 4, minplus.New(10))
	fa.AddTrans(3, 9, 1, minplus.New(1))
	fa.SetInitialState(3)
	fa.AddFinalState(4)
	//
	return fa
}

// cyclicRelation constructs an automaton over relations which contains loops.
func cyclicRelation(t *testing.T, rel *relation.Context, query Query) *WFA[relation.Weight] {
	fa := New[relation.Weight](query)
	fa.AddTrans(1, 5, 2, mustRel(t, rel, "{(0,1),(1,2)}"))
	fa.AddTrans(2, 5, 2, mustRel(t, rel, "{(1,1),(2,3)}"))
	fa.AddTrans(2, 6, 3, mustRel(t, rel, "{(2,0),(3,3)}"))
	fa.AddTrans(3, key.Epsilon, 1, mustRel(t, rel, "{(0,0),(3,1)}"))
	fa.AddTrans(3, 6, 4, rel.Id())
	fa.AddTrans(1, key.Epsilon, 4, mustRel(t, rel, "{(2,2)}"))
	fa.SetInitialState(1)
	fa.AddFinalState(4)
	//
	return fa
}

// regexEvaluator constructs an evaluator which assigns weights to transitions
// using a given function.
func regexEvaluator[W sem.Element[W]](fa *WFA[W], fn func(key.Triple) W) *regex.Evaluator[W] {
	some, _ := fa.SomeWeight()
	//
	return regex.NewEvaluator(some, func(leaf *regex.Regex[W]) W {
		if t, ok := leaf.Origin(); ok {
			return fn(t)
		}
		//
		return leaf.Weight()
	})
}

func mustRel(t *testing.T, rel *relation.Context, s string) relation.Weight {
	w, err := rel.Parse(s)
	require.NoError(t, err)
	//
	return w
}

func summarise[W sem.Element[W]](t *testing.T, fa *WFA[W]) *WFA[W] {
	require.NoError(t, fa.PathSummary(context.Background()))
	return fa
}

func weights[W sem.Element[W]](fa *WFA[W]) map[key.Key]string {
	var ws = make(map[key.Key]string)
	//
	for _, k := range fa.States() {
		w, _ := fa.Weight(k)
		ws[k] = w.String()
	}
	//
	return ws
}

func checkWeight[W sem.Element[W]](t *testing.T, fa *WFA[W], k key.Key, expected W) {
	t.Helper()
	//
	actual, ok := fa.Weight(k)
	require.True(t, ok, "missing state %d", k)
	assert.True(t, expected.Equal(actual), "state %d: expected %s, got %s", k, expected, actual)
}
