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
	"io"
	"strings"
	"unicode/utf8"
)

// TablePrinter is useful for printing aligned tables to the terminal.  Rows are
// added one at a time, and columns are sized to fit their widest cell.
type TablePrinter struct {
	widths        []uint
	rows          [][]string
	escapes       [][]string
	enableEscapes bool
}

// NewTablePrinter constructs a new (empty) table with a given number of
// columns.
func NewTablePrinter(width uint) *TablePrinter {
	return &TablePrinter{make([]uint, width), nil, nil, false}
}

// AddRow appends a row to this table, which must have exactly one value per
// column.
func (p *TablePrinter) AddRow(vals ...string) uint {
	if len(vals) != len(p.widths) {
		panic("incorrect number of columns")
	}
	// Update column widths
	for i, v := range vals {
		p.widths[i] = max(p.widths[i], uint(utf8.RuneCountInString(v)))
	}
	//
	p.rows = append(p.rows, vals)
	p.escapes = append(p.escapes, make([]string, len(vals)))
	//
	return uint(len(p.rows) - 1)
}

// Get the contents of a given cell in this table
func (p *TablePrinter) Get(col uint, row uint) string {
	return p.rows[row][col]
}

// Height returns the number of rows in this table.
func (p *TablePrinter) Height() uint {
	return uint(len(p.rows))
}

// SetEscape sets the escape to use when printing the contents of a given cell.
func (p *TablePrinter) SetEscape(col uint, row uint, escape AnsiEscape) {
	p.escapes[row][col] = escape.Build()
}

// AnsiEscapes enables or disables the use of ANSI escapes (e.g. for showing
// colour).  Escapes are disabled by default, since they are unreadable when
// output is not going to a terminal.
func (p *TablePrinter) AnsiEscapes(enable bool) {
	p.enableEscapes = enable
}

// SetMaxWidth puts an upper bound on the width of a given column.  Cells which
// are wider are truncated.
func (p *TablePrinter) SetMaxWidth(col uint, width uint) {
	p.widths[col] = min(p.widths[col], max(width, 3))
}

// Print the table to a given writer.
func (p *TablePrinter) Print(out io.Writer) error {
	var sb strings.Builder
	//
	for i, row := range p.rows {
		for j, cell := range row {
			width := p.widths[j]
			escape := p.escapes[i][j]
			// Print colour (if applicable)
			if p.enableEscapes && escape != "" {
				sb.WriteString(escape)
			}
			// Print data
			if runes := []rune(cell); uint(len(runes)) > width {
				fmt.Fprintf(&sb, " %s..", string(runes[:width-2]))
			} else {
				fmt.Fprintf(&sb, " %s%s", strings.Repeat(" ", int(width)-len(runes)), cell)
			}
			// Cancel colour (if applicable)
			if p.enableEscapes && escape != "" {
				sb.WriteString(ResetAnsiEscape().Build())
			}
			//
			sb.WriteString(" |")
		}
		//
		sb.WriteString("\n")
	}
	//
	_, err := io.WriteString(out, sb.String())
	//
	return err
}
