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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Escape_00(t *testing.T) {
	assert.Equal(t, "\033[0m", ResetAnsiEscape().Build())
	assert.Equal(t, "\033[1;31m", BoldAnsiEscape().FgColour(RED).Build())
	assert.Equal(t, "\033[32;44m", NewAnsiEscape().FgColour(GREEN).BgColour(BLUE).Build())
	// Escapes are values
	base := BoldAnsiEscape()
	base.FgColour(RED)
	assert.Equal(t, "\033[1m", base.Build())
}

func Test_Table_00(t *testing.T) {
	tab := NewTablePrinter(2)
	tab.AddRow("state", "weight")
	tab.AddRow("p", "5")
	tab.AddRow("qq", "ε")
	//
	var buf bytes.Buffer
	require.NoError(t, tab.Print(&buf))
	//
	expected := " state | weight |\n" +
		"     p |      5 |\n" +
		"    qq |      ε |\n"
	assert.Equal(t, expected, buf.String())
	assert.Equal(t, uint(3), tab.Height())
	assert.Equal(t, "qq", tab.Get(0, 2))
}

func Test_Table_01(t *testing.T) {
	tab := NewTablePrinter(1)
	row := tab.AddRow("abcdefgh")
	tab.SetMaxWidth(0, 5)
	tab.SetEscape(0, row, BoldAnsiEscape())
	//
	var buf bytes.Buffer
	require.NoError(t, tab.Print(&buf))
	assert.Equal(t, " abc.. |\n", buf.String())
	//
	buf.Reset()
	tab.AnsiEscapes(true)
	require.NoError(t, tab.Print(&buf))
	assert.Equal(t, "\033[1m abc..\033[0m |\n", buf.String())
	//
	assert.Panics(t, func() { tab.AddRow("a", "b") })
	assert.False(t, IsTerminal(&buf))
}
