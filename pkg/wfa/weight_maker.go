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

import "github.com/consensys/go-wali/pkg/sem"

// WeightMaker determines the weight of a product transition during
// intersection, given the weights of the two transitions being synchronised.
// Different analyses need different choices here, for example language
// intersection keeps one side whilst relational composition keeps both.
type WeightMaker[W sem.Element[W]] interface {
	Make(left W, right W) W
}

// KeepLeft retains the weight of the left automaton.
type KeepLeft[W sem.Element[W]] struct{}

// Make returns the left weight.
func (KeepLeft[W]) Make(left W, _ W) W { return left }

// KeepRight retains the weight of the right automaton.
type KeepRight[W sem.Element[W]] struct{}

// Make returns the right weight.
func (KeepRight[W]) Make(_ W, right W) W { return right }

// KeepBoth retains both weights as left ⊗ right.
type KeepBoth[W sem.Element[W]] struct{}

// Make returns left ⊗ right.
func (KeepBoth[W]) Make(left W, right W) W { return left.Extend(right) }

// KeepBothReverse retains both weights as right ⊗ left.
type KeepBothReverse[W sem.Element[W]] struct{}

// Make returns right ⊗ left.
func (KeepBothReverse[W]) Make(left W, right W) W { return right.Extend(left) }

// WeightMakerFunc adapts an ordinary function into a WeightMaker.
type WeightMakerFunc[W sem.Element[W]] func(left W, right W) W

// Make applies the underlying function.
func (f WeightMakerFunc[W]) Make(left W, right W) W { return f(left, right) }
