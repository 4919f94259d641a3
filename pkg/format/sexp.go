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
package format

import (
	"unicode"
)

// SExp is an S-Expression, which is either a list of zero or more
// S-Expressions, or a symbol.  Every S-Expression records where it came from.
type SExp interface {
	// AsList checks whether this S-Expression is a list and, if so, returns
	// it.  Otherwise, it returns nil.
	AsList() *List
	// AsSymbol checks whether this S-Expression is a symbol and, if so,
	// returns it.  Otherwise, it returns nil.
	AsSymbol() *Symbol
	// Span returns the span of the original text covered by this S-Expression.
	Span() Span
}

// List represents a list of zero or more S-Expressions.
type List struct {
	Elements []SExp
	span     Span
}

var _ SExp = (*List)(nil)

// AsList returns the given list.
func (l *List) AsList() *List { return l }

// AsSymbol returns nil for a list.
func (l *List) AsSymbol() *Symbol { return nil }

// Span returns the span of this list.
func (l *List) Span() Span { return l.span }

// Len gets the number of elements in this list.
func (l *List) Len() int { return len(l.Elements) }

// Head returns the symbol at the start of this list, or "" if there is none.
func (l *List) Head() string {
	if len(l.Elements) > 0 {
		if s := l.Elements[0].AsSymbol(); s != nil {
			return s.Value
		}
	}
	//
	return ""
}

// Symbol represents a terminating symbol.  Symbols written in double quotes may
// contain whitespace and parentheses, but no quotes.
type Symbol struct {
	Value string
	span  Span
}

var _ SExp = (*Symbol)(nil)

// AsList returns nil for a symbol.
func (s *Symbol) AsList() *List { return nil }

// AsSymbol returns the given symbol.
func (s *Symbol) AsSymbol() *Symbol { return s }

// Span returns the span of this symbol.
func (s *Symbol) Span() Span { return s.span }

// ParseSExps converts the contents of a given file into zero or more
// S-expressions, or returns an error if the text is malformed.  Comments start
// with ';' and extend to the end of the line.
func ParseSExps(srcfile *File) ([]SExp, *SyntaxError) {
	var (
		p     = &sexpParser{srcfile, srcfile.Contents(), 0}
		terms []SExp
	)
	//
	for {
		term, err := p.parse()
		//
		if err != nil {
			return nil, err
		} else if term == nil {
			return terms, nil
		}
		//
		terms = append(terms, term)
	}
}

// sexpParser represents a parser in the process of parsing a given string into
// one or more S-expressions.
type sexpParser struct {
	srcfile *File
	text    []rune
	index   int
}

// parse the next S-Expression, returning nil at the end of the input.
func (p *sexpParser) parse() (SExp, *SyntaxError) {
	p.skipWhiteSpace()
	//
	start := p.index
	//
	switch {
	case p.index == len(p.text):
		return nil, nil
	case p.text[p.index] == ')':
		return nil, p.error(start, "unexpected end-of-list")
	case p.text[p.index] == '(':
		p.index++
		//
		elements, err := p.parseSequence(start)
		if err != nil {
			return nil, err
		}
		//
		return &List{elements, NewSpan(start, p.index)}, nil
	case p.text[p.index] == '"':
		return p.parseQuoted()
	default:
		return p.parseSymbol(), nil
	}
}

func (p *sexpParser) parseSequence(start int) ([]SExp, *SyntaxError) {
	var elements []SExp
	//
	for {
		p.skipWhiteSpace()
		//
		if p.index == len(p.text) {
			return nil, p.error(start, "unexpected end-of-file (unclosed list)")
		} else if p.text[p.index] == ')' {
			p.index++
			return elements, nil
		}
		//
		element, err := p.parse()
		if err != nil {
			return nil, err
		}
		//
		elements = append(elements, element)
	}
}

func (p *sexpParser) parseSymbol() *Symbol {
	start := p.index
	//
	for p.index < len(p.text) {
		c := p.text[p.index]
		if c == '(' || c == ')' || c == ';' || c == '"' || unicode.IsSpace(c) {
			break
		}
		//
		p.index++
	}
	//
	return &Symbol{string(p.text[start:p.index]), NewSpan(start, p.index)}
}

func (p *sexpParser) parseQuoted() (SExp, *SyntaxError) {
	start := p.index
	//
	for p.index++; p.index < len(p.text); p.index++ {
		if p.text[p.index] == '"' {
			p.index++
			value := string(p.text[start+1 : p.index-1])
			//
			return &Symbol{value, NewSpan(start, p.index)}, nil
		} else if p.text[p.index] == '\n' {
			break
		}
	}
	//
	return nil, p.error(start, "unterminated string")
}

// skipWhiteSpace skips over any whitespace, including comments.
func (p *sexpParser) skipWhiteSpace() {
	for p.index < len(p.text) {
		c := p.text[p.index]
		//
		if c == ';' {
			// Comment runs to end of line
			for p.index < len(p.text) && p.text[p.index] != '\n' {
				p.index++
			}
		} else if unicode.IsSpace(c) {
			p.index++
		} else {
			return
		}
	}
}

// Construct a parser error at a given position in the input stream.
func (p *sexpParser) error(index int, msg string) *SyntaxError {
	end := min(index+1, len(p.text))
	return p.srcfile.SyntaxError(NewSpan(index, end), msg)
}
