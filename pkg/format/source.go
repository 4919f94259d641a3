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
	"fmt"
)

// Span represents a contiguous slice of the original text, retaining the
// physical indices so that the enclosing line can be determined.
type Span struct {
	// The first character of this span in the original text.
	start int
	// One past the final character of this span in the original text.
	end int
}

// NewSpan constructs a new span whilst checking the internal invariants are
// maintained.
func NewSpan(start int, end int) Span {
	if start > end {
		panic("invalid span")
	}
	//
	return Span{start, end}
}

// Start returns the starting index of this span in the original text.
func (p Span) Start() int {
	return p.start
}

// End returns one past the last index of this span in the original text.
func (p Span) End() int {
	return p.end
}

// File represents a named piece of source text (typically stored on disk).
type File struct {
	filename string
	contents []rune
}

// NewFile constructs a new source file from a given byte array.
func NewFile(filename string, bytes []byte) *File {
	return &File{filename, []rune(string(bytes))}
}

// Filename returns the filename associated with this source file.
func (s *File) Filename() string {
	return s.filename
}

// Contents returns the contents of this source file.
func (s *File) Contents() []rune {
	return s.contents
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (s *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{s, span, msg}
}

// Position determines the line and column (both counting from 1) of a given
// index into this file.  Indices beyond the end of the file are placed on the
// last line.
func (s *File) Position(index int) (int, int) {
	var line, start = 1, 0
	//
	for i := 0; i < index && i < len(s.contents); i++ {
		if s.contents[i] == '\n' {
			line++
			start = i + 1
		}
	}
	//
	return line, index - start + 1
}

// Line returns the text of the line enclosing a given index, excluding its
// newline.
func (s *File) Line(index int) string {
	var start, end = 0, len(s.contents)
	//
	for i := 0; i < len(s.contents); i++ {
		if s.contents[i] == '\n' {
			if i < index {
				start = i + 1
			} else {
				end = i
				break
			}
		}
	}
	//
	return string(s.contents[start:end])
}

// SyntaxError is a structured error which retains the span of the original
// text where an error occurred, along with an error message.
type SyntaxError struct {
	srcfile *File
	span    Span
	msg     string
}

// SourceFile returns the source file that this syntax error covers.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface, reporting the position of this error
// as "file:line:column".
func (p *SyntaxError) Error() string {
	line, col := p.srcfile.Position(p.span.start)
	return fmt.Sprintf("%s:%d:%d: %s", p.srcfile.filename, line, col, p.msg)
}
