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
package cmd

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/consensys/go-wali/pkg/domain/minplus"
	"github.com/consensys/go-wali/pkg/domain/relation"
	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/wfa"
	"github.com/consensys/go-wali/pkg/witness"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chainSummary = ` state | weight |
     p |      3 |
     q |      2 |
     r |      0 |
     s |      1 |
`

func Test_Summary_00(t *testing.T) {
	out, err := run(t, "summary", "testdata/chain.wfa")
	require.NoError(t, err)
	checkOutput(t, chainSummary, out)
}

func Test_Summary_01(t *testing.T) {
	// Path expressions agree with the fixed point, for every worklist.
	for _, args := range [][]string{
		{"summary", "--regex", "testdata/chain.wfa"},
		{"summary", "--worklist", "fifo", "testdata/chain.wfa"},
		{"summary", "--worklist", "priority", "testdata/chain.wfa"},
	} {
		out, err := run(t, args...)
		require.NoError(t, err, args)
		checkOutput(t, chainSummary, out)
	}
}

func Test_Summary_02(t *testing.T) {
	// Reports are written in the order files are given.
	out, err := run(t, "summary", "--jobs", "2", "testdata/diamond.yaml", "testdata/chain.wfa")
	require.NoError(t, err)
	//
	expected := "testdata/diamond.yaml:\n" +
		" state | weight |\n     p |      2 |\n     q |      1 |\n     r |      0 |\n" +
		"testdata/chain.wfa:\n" + chainSummary
	checkOutput(t, expected, out)
}

func Test_Summary_03(t *testing.T) {
	// Counting paths falls back to path expressions.
	out, err := run(t, "summary", "--domain", "count", "testdata/diamond.yaml")
	require.NoError(t, err)
	checkOutput(t, " state | weight |\n     p |      4 |\n     q |      2 |\n     r |      1 |\n", out)
}

func Test_Summary_04(t *testing.T) {
	out, err := run(t, "summary", "--witness", "testdata/chain.wfa")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, chainSummary), out)
	assert.Contains(t, out, "witness for p:\n")
	// The witness of p explains the path through q, and not the direct one.
	assert.Contains(t, out, "(q,b,r)")
	assert.NotContains(t, out, "(p,c,r)")
}

func Test_Summary_05(t *testing.T) {
	_, err := run(t, "summary", "--domain", "count", "--witness", "testdata/diamond.yaml")
	assert.ErrorIs(t, err, errWitnessRegex)
	//
	_, err = run(t, "summary", "--max-iterations", "1", "testdata/chain.wfa")
	assert.ErrorIs(t, err, wfa.ErrIterationLimit)
	//
	_, err = run(t, "summary", "--worklist", "stack", "testdata/chain.wfa")
	assert.ErrorContains(t, err, "unknown worklist policy")
	//
	_, err = run(t, "summary", "--query", "sideways", "testdata/chain.wfa")
	assert.ErrorContains(t, err, "unknown query mode")
	//
	_, err = run(t, "summary", "testdata/missing.wfa")
	assert.ErrorContains(t, err, "testdata/missing.wfa")
	//
	_, err = run(t, "summary")
	assert.Error(t, err)
}

func Test_Summary_06(t *testing.T) {
	// Overriding the query mode reverses the order of extension, which is
	// invisible for min-plus.
	out, err := run(t, "summary", "--query", "reverse", "testdata/chain.wfa")
	require.NoError(t, err)
	checkOutput(t, chainSummary, out)
}

func Test_Summary_07(t *testing.T) {
	// States without transitions are still created, and finals seeded.
	out, err := run(t, "summary", "testdata/lonely.wfa")
	require.NoError(t, err)
	checkOutput(t, " state | weight |\n     p |      0 |\n", out)
	//
	out, err = run(t, "summary", "--domain", "reach", "testdata/lonely.wfa")
	require.NoError(t, err)
	assert.Equal(t, "1", parseTable(out)[1][1])
	//
	out, err = run(t, "summary", "--witness", "testdata/lonely.wfa")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, " state | weight |\n     p |      0 |\n"), out)
	assert.Contains(t, out, "witness for p:\n")
}

func Test_Witnesses_00(t *testing.T) {
	// An initial state which is not a state of the automaton has no witness.
	fa := wfa.New[minplus.Weight](wfa.INORDER)
	fa.SetInitialState(key.Key(7))
	//
	var buf bytes.Buffer
	//
	require.NoError(t, printWitnesses(&buf, witness.Wrap(fa), key.DefaultNamer))
	assert.Empty(t, buf.String())
}

func Test_Regex_00(t *testing.T) {
	out, err := run(t, "regex", "testdata/chain.wfa")
	require.NoError(t, err)
	//
	rows := parseTable(out)
	require.Len(t, rows, 5)
	assert.Equal(t, []string{"state", "weight", "expression"}, rows[0])
	//
	for i, expected := range []string{"3", "2", "0", "1"} {
		assert.Equal(t, expected, rows[i+1][1], rows[i+1][0])
	}
	// Expressions mention the transitions they are built from
	assert.Contains(t, rows[1][2], "(p,a,q)")
	assert.Contains(t, rows[1][2], "(p,c,r)")
}

func Test_Prune_00(t *testing.T) {
	out, err := run(t, "prune", "testdata/chain.wfa")
	require.NoError(t, err)
	assert.Contains(t, out, "(p,a,q)")
	assert.Contains(t, out, "(q,b,r)")
	assert.NotContains(t, out, "(s,a,r)")
	assert.NotContains(t, out, "  s\t")
}

func Test_Prune_01(t *testing.T) {
	out, err := run(t, "prune", "--filter", "c", "testdata/chain.wfa")
	require.NoError(t, err)
	assert.Contains(t, out, "(p,c,r)")
	assert.NotContains(t, out, "(p,a,q)")
	assert.NotContains(t, out, "(q,b,r)")
}

func Test_Intersect_00(t *testing.T) {
	out, err := run(t, "intersect", "--summarise", "testdata/chain.wfa", "testdata/chain.wfa")
	require.NoError(t, err)
	// Both weights are kept, so every path costs twice as much.
	assert.Contains(t, out, "  initial: (p,p)\n")
	assert.Contains(t, out, "  final: {(r,r)}\n")
	assert.Contains(t, out, "  (p,p)\t6\n")
	assert.NotContains(t, out, "(s,s)")
	//
	out, err = run(t, "intersect", "--summarise", "--maker", "left", "testdata/chain.wfa", "testdata/chain.wfa")
	require.NoError(t, err)
	assert.Contains(t, out, "  (p,p)\t3\n")
	//
	_, err = run(t, "intersect", "--maker", "middle", "testdata/chain.wfa", "testdata/chain.wfa")
	assert.ErrorContains(t, err, "unknown weight maker")
}

func Test_Dot_00(t *testing.T) {
	out, err := run(t, "dot", "--summarise", "testdata/chain.wfa")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph \"WFA\" {\n"), out)
	assert.True(t, strings.HasSuffix(out, "}\n"), out)
	assert.Contains(t, out, "doublecircle")
}

func Test_XML_00(t *testing.T) {
	// Converting to XML and back preserves the path summary.
	out, err := run(t, "xml", "testdata/chain.wfa")
	require.NoError(t, err)
	//
	filename := filepath.Join(t.TempDir(), "chain.xml")
	require.NoError(t, os.WriteFile(filename, []byte(out), 0o600))
	//
	out, err = run(t, "summary", filename)
	require.NoError(t, err)
	checkOutput(t, chainSummary, out)
}

func Test_Metrics_00(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "wali.prom")
	//
	_, err := run(t, "summary", "--metrics-out", filename, "testdata/chain.wfa", "testdata/diamond.yaml")
	require.NoError(t, err)
	//
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `wali_files_total{command="summary",result="ok"} 2`)
	assert.Contains(t, string(data), "wali_automaton_states_count 2")
}

func Test_SyntaxError_00(t *testing.T) {
	_, err := run(t, "summary", "testdata/bad.wfa")
	require.Error(t, err)
	//
	var buf bytes.Buffer
	//
	reportError(&buf, err)
	//
	expected := "testdata/bad.wfa:2:3: expected (trans from stack to weight)\n" +
		"  (trans p a q))\n" +
		"  ^^^^^^^^^^^^^\n"
	checkOutput(t, expected, buf.String())
	//
	buf.Reset()
	reportError(&buf, errors.New("oops"))
	assert.Equal(t, "wali: oops\n", buf.String())
}

func Test_Runner_00(t *testing.T) {
	metrics := newFileMetrics(nil)
	//
	for _, domain := range []string{"minplus", "reach", "lang", "count", "relation", "relation:3"} {
		_, err := newRunner(domain, metrics)
		assert.NoError(t, err, domain)
	}
	//
	_, err := newRunner("relation:-1", metrics)
	assert.ErrorIs(t, err, relation.ErrNegativeSize)
	//
	_, err = newRunner("relation:many", metrics)
	assert.ErrorContains(t, err, "invalid size")
	//
	_, err = newRunner("tropical", metrics)
	assert.ErrorContains(t, err, "unknown weight domain")
}

func Test_Root_00(t *testing.T) {
	out, err := run(t, "--version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "wali "), out)
}

// Run the tool with the given arguments, returning what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	var (
		s   = &session{}
		out bytes.Buffer
	)
	//
	root := newRootCommand(s)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	//
	err := root.ExecuteContext(context.Background())
	require.NoError(t, s.close())
	//
	return out.String(), err
}

func checkOutput(t *testing.T, expected string, actual string) {
	t.Helper()
	//
	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("unexpected output (-want +got):\n%s", diff)
	}
}

// Split a printed table into trimmed cells.
func parseTable(text string) [][]string {
	var rows [][]string
	//
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		var row []string
		//
		for _, cell := range strings.Split(strings.TrimSuffix(line, "|"), "|") {
			row = append(row, strings.TrimSpace(cell))
		}
		//
		rows = append(rows, row)
	}
	//
	return rows
}
