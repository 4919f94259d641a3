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

// Package lang provides the semiring of finite languages, where combine is
// language union and extend is language concatenation.  Since concatenation is
// not commutative, this domain makes the direction in which weights are
// extended directly observable.
package lang

import (
	"slices"
	"strings"

	"github.com/consensys/go-wali/pkg/sem"
)

// EmptyWord is how the empty word is rendered.
const EmptyWord = "ε"

// Weight is a finite set of words.  The underlying array is sorted, free of
// duplicates and never modified after construction.
type Weight struct {
	words []string
}

var _ sem.Element[Weight] = Weight{}

// Empty returns the empty language (i.e. zero).
func Empty() Weight {
	return Weight{}
}

// Epsilon returns the language containing only the empty word (i.e. one).
func Epsilon() Weight {
	return Weight{[]string{""}}
}

// Words constructs the language containing exactly the given words.
func Words(words ...string) Weight {
	ws := slices.Clone(words)
	slices.Sort(ws)
	//
	return Weight{slices.Compact(ws)}
}

// Parse a language written as a set of words, such as "{a,bc,ε}".  Words may
// also be separated by "|", and the braces are optional.  Both "{}" and "0"
// denote the empty language.
func Parse(s string) (Weight, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	//
	if s == "" || s == "0" {
		return Empty(), nil
	}
	//
	var words []string
	//
	for _, w := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		w = strings.TrimSpace(w)
		if w == EmptyWord {
			w = ""
		}
		//
		words = append(words, w)
	}
	//
	return Words(words...), nil
}

// Contents returns the words of this language in sorted order.
func (x Weight) Contents() []string {
	return slices.Clone(x.words)
}

// Combine returns the union of x and y.
func (x Weight) Combine(y Weight) Weight {
	var words = make([]string, 0, len(x.words)+len(y.words))
	//
	words = append(words, x.words...)
	words = append(words, y.words...)
	//
	return Words(words...)
}

// Extend returns the concatenation of x and y.
func (x Weight) Extend(y Weight) Weight {
	var words = make([]string, 0, len(x.words)*len(y.words))
	//
	for _, u := range x.words {
		for _, v := range y.words {
			words = append(words, u+v)
		}
	}
	//
	return Words(words...)
}

// Equal checks whether x and y contain the same words.
func (x Weight) Equal(y Weight) bool {
	return slices.Equal(x.words, y.words)
}

// Zero returns the empty language.
func (x Weight) Zero() Weight {
	return Empty()
}

// One returns the language containing just the empty word.
func (x Weight) One() Weight {
	return Epsilon()
}

func (x Weight) String() string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, w := range x.words {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		if w == "" {
			w = EmptyWord
		}
		//
		builder.WriteString(w)
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}
