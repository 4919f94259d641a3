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
	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
	"github.com/consensys/go-wali/pkg/wfa"
)

// Wrap constructs a copy of a given automaton whose weights are witnesses.
// Each transition weight becomes a leaf witness recording the transition it
// came from, and the zero of each state becomes a zero witness.  Summarising
// the result yields, for every state, a witness explaining its weight.
func Wrap[W sem.Element[W]](a *wfa.WFA[W]) *wfa.WFA[*Witness[W]] {
	r := wfa.New[*Witness[W]](a.Query())
	//
	for _, k := range a.States() {
		s, _ := a.State(k)
		r.AddState(k, &Witness[W]{weight: s.Zero(), kind: ZERO})
	}
	//
	a.ForEach(func(t wfa.Trans[W]) {
		r.AddTrans(t.From(), t.Stack(), t.To(), LiftTrans(t.From(), t.Stack(), t.To(), t.Weight()))
	})
	//
	for _, k := range a.FinalStates() {
		r.AddFinalState(k)
	}
	//
	r.SetInitialState(a.InitialState())
	r.SetGeneration(a.Generation())
	//
	return r
}

// Unwrap extracts the underlying accumulator weight of every state of a
// witness automaton.
func Unwrap[W sem.Element[W]](a *wfa.WFA[*Witness[W]]) map[key.Key]W {
	var weights = make(map[key.Key]W)
	//
	for _, k := range a.States() {
		w, _ := a.Weight(k)
		weights[k] = w.weight
	}
	//
	return weights
}
