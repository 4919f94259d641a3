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
package termio

import (
	"fmt"
	"strings"
)

// Colour identifies one of the eight standard terminal colours.
type Colour uint

const (
	// BLACK represents black
	BLACK Colour = iota
	// RED represents red
	RED
	// GREEN represents green
	GREEN
	// YELLOW represents yellow
	YELLOW
	// BLUE represents blue
	BLUE
	// MAGENTA represents magenta
	MAGENTA
	// CYAN represents cyan
	CYAN
	// WHITE represents white
	WHITE
)

// AnsiEscape represents an ANSI escape code used for formatting text in a
// terminal, as a sequence of select graphic rendition parameters.
type AnsiEscape struct {
	params []uint
}

// NewAnsiEscape constructs an empty escape.
func NewAnsiEscape() AnsiEscape {
	return AnsiEscape{}
}

// ResetAnsiEscape constructs an escape which resets all formatting.
func ResetAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{0}}
}

// BoldAnsiEscape constructs an escape which enables bold text.
func BoldAnsiEscape() AnsiEscape {
	return AnsiEscape{[]uint{1}}
}

// FgColour sets the foreground colour
func (p AnsiEscape) FgColour(col Colour) AnsiEscape {
	return p.with(30 + uint(col))
}

// BgColour sets the background colour
func (p AnsiEscape) BgColour(col Colour) AnsiEscape {
	return p.with(40 + uint(col))
}

// Build constructs the final escape
func (p AnsiEscape) Build() string {
	var params = make([]string, len(p.params))
	//
	for i, c := range p.params {
		params[i] = fmt.Sprintf("%d", c)
	}
	//
	return fmt.Sprintf("\033[%sm", strings.Join(params, ";"))
}

func (p AnsiEscape) with(param uint) AnsiEscape {
	params := make([]uint, len(p.params), len(p.params)+1)
	copy(params, p.params)
	//
	return AnsiEscape{append(params, param)}
}
