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

// Package semtest provides reusable checks for weight domain implementations.
package semtest

import (
	"testing"

	"github.com/consensys/go-wali/pkg/sem"
)

// CheckLaws checks the semiring laws over every combination of the given
// samples.  Samples should include (at least) the zero and one of the domain.
//
//nolint:revive
func CheckLaws[W sem.Element[W]](t *testing.T, samples []W) {
	t.Helper()
	//
	if len(samples) == 0 {
		t.Fatal("no samples")
	}
	//
	zero, one := samples[0].Zero(), samples[0].One()
	//
	for _, a := range samples {
		check(t, a.Combine(zero).Equal(a), "%s ⊕ 0 != %s", a, a)
		check(t, zero.Combine(a).Equal(a), "0 ⊕ %s != %s", a, a)
		check(t, a.Extend(one).Equal(a), "%s ⊗ 1 != %s", a, a)
		check(t, one.Extend(a).Equal(a), "1 ⊗ %s != %s", a, a)
		check(t, a.Extend(zero).Equal(zero), "%s ⊗ 0 != 0", a)
		check(t, zero.Extend(a).Equal(zero), "0 ⊗ %s != 0", a)
		check(t, a.Equal(a), "%s != %s", a, a)
		//
		for _, b := range samples {
			check(t, a.Combine(b).Equal(b.Combine(a)), "%s ⊕ %s not commutative", a, b)
			//
			for _, c := range samples {
				checkTriple(t, a, b, c)
			}
		}
	}
}

func checkTriple[W sem.Element[W]](t *testing.T, a, b, c W) {
	t.Helper()
	// associativity
	check(t, a.Combine(b).Combine(c).Equal(a.Combine(b.Combine(c))), "(%s ⊕ %s) ⊕ %s not associative", a, b, c)
	check(t, a.Extend(b).Extend(c).Equal(a.Extend(b.Extend(c))), "(%s ⊗ %s) ⊗ %s not associative", a, b, c)
	// distributivity
	check(t, a.Extend(b.Combine(c)).Equal(a.Extend(b).Combine(a.Extend(c))), "%s ⊗ (%s ⊕ %s) not distributive", a, b, c)
	check(t, b.Combine(c).Extend(a).Equal(b.Extend(a).Combine(c.Extend(a))), "(%s ⊕ %s) ⊗ %s not distributive", b, c, a)
}

func check(t *testing.T, ok bool, msg string, args ...any) {
	t.Helper()
	//
	if !ok {
		t.Errorf(msg, args...)
	}
}
