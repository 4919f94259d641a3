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
package wpds

import (
	"github.com/consensys/go-wali/pkg/wfa"
)

// AddPopTransitions seeds an automaton with the transitions contributed by the
// pop rules of this system, returning how many were added.  Each rule <p, a>
// -> <q, *> with weight w yields the transition (p, a, q) with weight w, which
// is where pre* saturation begins.  As with any transition, one which already
// exists has the new weight combined into it.
func (p *WPDS[W]) AddPopTransitions(fa *wfa.WFA[W]) uint {
	var count uint
	//
	for _, r := range p.Rules() {
		if r.Kind() == POP {
			fa.AddTrans(r.from.State, r.from.Stack, r.to.State, r.weight)
			count++
		}
	}
	//
	return count
}
