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

// Package wpds provides the rules of a weighted pushdown system.  These are
// produced by translators (e.g. from a program's control flow) and rendered for
// consumption by other tools.  Saturation procedures are not provided here.
package wpds

import (
	"fmt"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// Config is a pushdown configuration consisting of a control state and the
// symbol on top of the stack.
type Config struct {
	State key.Key
	Stack key.Key
}

// Render this configuration using a given namer.
func (c Config) Render(namer key.Namer) string {
	return fmt.Sprintf("<%s, %s>", key.NameOf(namer, c.State), key.NameOf(namer, c.Stack))
}

// Kind classifies a rule by the number of stack symbols it writes.
type Kind uint8

const (
	// POP rules remove the top of stack, as in <p, a> -> <q, *>.
	POP Kind = iota
	// STEP rules replace the top of stack, as in <p, a> -> <q, b>.
	STEP
	// PUSH rules replace the top of stack with two symbols, as in <p, a> -> <q,
	// b c>.
	PUSH
)

func (k Kind) String() string {
	switch k {
	case POP:
		return "pop"
	case STEP:
		return "step"
	case PUSH:
		return "push"
	}
	//
	return "unknown"
}

// Rule is a weighted pushdown rule <p, a> -> <q, b c>, where b and c are
// optional.  The second written symbol can only be present when the first is.
type Rule[W sem.Element[W]] struct {
	from   Config
	to     Config
	stack2 key.Key
	weight W
}

// NewRule constructs a rule which rewrites a given configuration into another,
// optionally pushing a second stack symbol.  This panics if a second symbol is
// given without a first.
func NewRule[W sem.Element[W]](from Config, to Config, stack2 key.Key, weight W) *Rule[W] {
	if to.Stack == key.Epsilon && stack2 != key.Epsilon {
		panic(fmt.Sprintf("rule pushes second stack symbol %d without a first", stack2))
	}
	//
	return &Rule[W]{from, to, stack2, weight}
}

// From returns the configuration this rule applies to.
func (r *Rule[W]) From() Config { return r.from }

// To returns the configuration this rule produces, whose stack symbol is the
// first written (or epsilon).
func (r *Rule[W]) To() Config { return r.to }

// Stack2 returns the second written stack symbol (or epsilon).
func (r *Rule[W]) Stack2() key.Key { return r.stack2 }

// Weight returns the weight of this rule.
func (r *Rule[W]) Weight() W { return r.weight }

// Kind classifies this rule.
func (r *Rule[W]) Kind() Kind {
	switch {
	case r.to.Stack == key.Epsilon:
		return POP
	case r.stack2 == key.Epsilon:
		return STEP
	default:
		return PUSH
	}
}

// Render this rule using a given namer, as in "<p, a> -> <q, b c>	w".
func (r *Rule[W]) Render(namer key.Namer) string {
	var to string
	//
	switch r.Kind() {
	case POP:
		to = fmt.Sprintf("<%s, >", key.NameOf(namer, r.to.State))
	case STEP:
		to = r.to.Render(namer)
	default:
		to = fmt.Sprintf("<%s, %s %s>", key.NameOf(namer, r.to.State), key.NameOf(namer, r.to.Stack),
			key.NameOf(namer, r.stack2))
	}
	//
	return fmt.Sprintf("%s -> %s\t%s", r.from.Render(namer), to, r.weight)
}

func (r *Rule[W]) String() string {
	return r.Render(nil)
}
