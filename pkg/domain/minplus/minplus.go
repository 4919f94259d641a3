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

// Package minplus provides the integer (min,+) semiring, often called the
// tropical semiring.  This is the domain of shortest paths: combine selects
// the cheaper alternative, whilst extend adds up costs along a path.
package minplus

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/consensys/go-wali/pkg/sem"
)

// Weight is either a finite integer cost, or infinity (i.e. unreachable).
type Weight struct {
	value    int64
	infinite bool
}

// NOTE: This is used for compile time type checking if the given type
// satisfies the given interface.
var _ sem.Starrable[Weight] = Weight{}

// New constructs a finite weight.
func New(value int64) Weight {
	return Weight{value, false}
}

// Infinity constructs the weight representing no path at all.
func Infinity() Weight {
	return Weight{0, true}
}

// Parse a weight from a string, where "inf" denotes infinity.
func Parse(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inf", "∞", "+inf":
		return Infinity(), nil
	}
	//
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return Weight{}, fmt.Errorf("invalid min-plus weight %q", s)
	}
	//
	return New(v), nil
}

// IsInfinite checks whether this weight is infinity.
func (x Weight) IsInfinite() bool {
	return x.infinite
}

// Value returns the cost represented by a finite weight.
func (x Weight) Value() int64 {
	if x.infinite {
		panic("infinite weight has no value")
	}
	//
	return x.value
}

// Combine returns the minimum of x and y.
func (x Weight) Combine(y Weight) Weight {
	switch {
	case x.infinite:
		return y
	case y.infinite:
		return x
	case y.value < x.value:
		return y
	default:
		return x
	}
}

// Extend returns the sum of x and y.  Sums beyond the range of int64 saturate:
// upwards at infinity and downwards at math.MinInt64.
func (x Weight) Extend(y Weight) Weight {
	if x.infinite || y.infinite {
		return Infinity()
	}
	//
	sum := x.value + y.value
	//
	switch {
	case y.value > 0 && sum < x.value:
		return Infinity()
	case y.value < 0 && sum > x.value:
		return New(math.MinInt64)
	}
	//
	return New(sum)
}

// Equal checks whether x and y are the same cost.
func (x Weight) Equal(y Weight) bool {
	if x.infinite || y.infinite {
		return x.infinite == y.infinite
	}
	//
	return x.value == y.value
}

// Zero returns infinity.
func (x Weight) Zero() Weight {
	return Infinity()
}

// One returns the zero cost.
func (x Weight) One() Weight {
	return New(0)
}

// Star returns the closure of x, which is the zero cost for any non-negative
// weight.  Negative weights have no closure in this domain.
func (x Weight) Star() Weight {
	if !x.infinite && x.value < 0 {
		panic(fmt.Sprintf("negative weight %d has no closure", x.value))
	}
	//
	return New(0)
}

func (x Weight) String() string {
	if x.infinite {
		return "inf"
	}
	//
	return strconv.FormatInt(x.value, 10)
}
