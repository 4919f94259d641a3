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

// Package reach provides the two-element boolean semiring, which answers
// plain reachability questions.
package reach

import (
	"fmt"
	"strings"

	"github.com/consensys/go-wali/pkg/sem"
)

// Weight is either reachable (true) or unreachable (false).
type Weight bool

const (
	// Unreachable is the zero of this domain.
	Unreachable Weight = false
	// Reachable is the one of this domain.
	Reachable Weight = true
)

var _ sem.Starrable[Weight] = Reachable

// Parse a weight from a string.
func Parse(s string) (Weight, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "t", "reach", "reachable":
		return Reachable, nil
	case "0", "false", "f", "unreachable":
		return Unreachable, nil
	}
	//
	return Unreachable, fmt.Errorf("invalid reachability weight %q", s)
}

// Combine returns x ∨ y.
func (x Weight) Combine(y Weight) Weight { return x || y }

// Extend returns x ∧ y.
func (x Weight) Extend(y Weight) Weight { return x && y }

// Equal compares two weights.
func (x Weight) Equal(y Weight) bool { return x == y }

// Zero returns Unreachable.
func (x Weight) Zero() Weight { return Unreachable }

// One returns Reachable.
func (x Weight) One() Weight { return Reachable }

// Star is always Reachable, since the empty path is always available.
func (x Weight) Star() Weight { return Reachable }

func (x Weight) String() string {
	if x {
		return "1"
	}
	//
	return "0"
}
