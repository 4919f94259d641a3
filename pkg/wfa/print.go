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
package wfa

import (
	"fmt"
	"io"
	"strings"

	"github.com/consensys/go-wali/pkg/key"
)

// Print writes a human readable description of this automaton, consisting of
// its query mode, its initial and final states, its transitions and finally
// the accumulator of each state.
func (p *WFA[W]) Print(out io.Writer, namer key.Namer) error {
	var (
		sb     strings.Builder
		finals []string
	)
	//
	for _, k := range p.FinalStates() {
		finals = append(finals, key.NameOf(namer, k))
	}
	//
	fmt.Fprintf(&sb, "WFA (%s)\n", p.query)
	fmt.Fprintf(&sb, "  initial: %s\n", key.NameOf(namer, p.initial))
	fmt.Fprintf(&sb, "  final: {%s}\n", strings.Join(finals, ","))
	//
	for _, t := range p.Transitions() {
		fmt.Fprintf(&sb, "  %s\n", t.Render(namer))
	}
	//
	for _, k := range p.States() {
		fmt.Fprintf(&sb, "  %s\t%s\n", key.NameOf(namer, k), p.states[k].weight)
	}
	//
	_, err := io.WriteString(out, sb.String())
	//
	return err
}

// WriteDot writes this automaton in the Graphviz dot format.  When weights is
// set, transitions are labelled with their weights and states with their
// accumulators.
func (p *WFA[W]) WriteDot(out io.Writer, namer key.Namer, weights bool) error {
	var sb strings.Builder
	//
	sb.WriteString("digraph \"WFA\" {\n")
	sb.WriteString("  rankdir=LR;\n")
	//
	for _, k := range p.States() {
		var (
			label = key.NameOf(namer, k)
			shape = "circle"
			style = ""
		)
		//
		if weights {
			label = fmt.Sprintf("%s\n%s", label, p.states[k].weight)
		}
		//
		if p.IsFinalState(k) {
			shape = "doublecircle"
		}
		//
		if p.IsInitialState(k) {
			style = ", style=bold"
		}
		//
		fmt.Fprintf(&sb, "  %d [label=%q, shape=%s%s];\n", uint(k), label, shape, style)
	}
	//
	for _, t := range p.Transitions() {
		label := key.NameOf(namer, t.stack)
		//
		if weights {
			label = fmt.Sprintf("%s | %s", label, t.weight)
		}
		//
		fmt.Fprintf(&sb, "  %d -> %d [label=%q];\n", uint(t.from), uint(t.to), label)
	}
	//
	sb.WriteString("}\n")
	//
	_, err := io.WriteString(out, sb.String())
	//
	return err
}
