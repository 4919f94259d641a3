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
package wpds

import (
	"cmp"
	"encoding/xml"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
)

// ruleKey identifies a rule irrespective of its weight.
type ruleKey struct {
	from   Config
	to     Config
	stack2 key.Key
}

// WPDS is a set of weighted pushdown rules.  Adding a rule which already
// exists combines the new weight into the existing one.
type WPDS[W sem.Element[W]] struct {
	rules map[ruleKey]*Rule[W]
}

// New constructs an empty pushdown system.
func New[W sem.Element[W]]() *WPDS[W] {
	return &WPDS[W]{make(map[ruleKey]*Rule[W])}
}

// Add a rule <p, a> -> <q, b c> with a given weight, returning the rule as
// stored.  See NewRule for the constraints on stack symbols.
func (p *WPDS[W]) Add(from Config, to Config, stack2 key.Key, weight W) *Rule[W] {
	k := ruleKey{from, to, stack2}
	//
	if r, ok := p.rules[k]; ok {
		// Rules are immutable once handed out.
		nr := NewRule(from, to, stack2, r.weight.Combine(weight))
		p.rules[k] = nr
		//
		return nr
	}
	//
	r := NewRule(from, to, stack2, weight)
	p.rules[k] = r
	//
	return r
}

// Len returns the number of rules.
func (p *WPDS[W]) Len() uint {
	return uint(len(p.rules))
}

// Rules returns the rules of this system ordered by source configuration,
// target configuration and second stack symbol.
func (p *WPDS[W]) Rules() []*Rule[W] {
	var rules = make([]*Rule[W], 0, len(p.rules))
	//
	for _, r := range p.rules {
		rules = append(rules, r)
	}
	//
	slices.SortFunc(rules, compareRules[W])
	//
	return rules
}

// Print writes every rule on its own line.
func (p *WPDS[W]) Print(out io.Writer, namer key.Namer) error {
	var sb strings.Builder
	//
	sb.WriteString("WPDS\n")
	//
	for _, r := range p.Rules() {
		fmt.Fprintf(&sb, "  %s\n", r.Render(namer))
	}
	//
	_, err := io.WriteString(out, sb.String())
	//
	return err
}

// XMLRule is the XML representation of a rule.  The optional stack symbols are
// omitted when absent.
type XMLRule struct {
	XMLName   xml.Name `xml:"rule"`
	FromState string   `xml:"fromstate"`
	FromStack string   `xml:"fromstack"`
	ToState   string   `xml:"tostate"`
	ToStack1  string   `xml:"tostack1,omitempty"`
	ToStack2  string   `xml:"tostack2,omitempty"`
	Weight    string   `xml:"weight"`
}

// XMLSystem is the XML representation of a pushdown system.
type XMLSystem struct {
	XMLName xml.Name  `xml:"WPDS"`
	Rules   []XMLRule `xml:"rule"`
}

// ToXML converts this rule into its XML representation.
func (r *Rule[W]) ToXML(namer key.Namer) XMLRule {
	x := XMLRule{
		FromState: key.NameOf(namer, r.from.State),
		FromStack: key.NameOf(namer, r.from.Stack),
		ToState:   key.NameOf(namer, r.to.State),
		Weight:    r.weight.String(),
	}
	//
	if r.to.Stack != key.Epsilon {
		x.ToStack1 = key.NameOf(namer, r.to.Stack)
		//
		if r.stack2 != key.Epsilon {
			x.ToStack2 = key.NameOf(namer, r.stack2)
		}
	}
	//
	return x
}

// ToXML converts this system into its XML representation.
func (p *WPDS[W]) ToXML(namer key.Namer) XMLSystem {
	var doc XMLSystem
	//
	for _, r := range p.Rules() {
		doc.Rules = append(doc.Rules, r.ToXML(namer))
	}
	//
	return doc
}

// WriteXML writes the XML representation of this system.
func (p *WPDS[W]) WriteXML(out io.Writer, namer key.Namer) error {
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	//
	if err := enc.Encode(p.ToXML(namer)); err != nil {
		return err
	} else if err := enc.Close(); err != nil {
		return err
	}
	//
	_, err := io.WriteString(out, "\n")
	//
	return err
}

func compareRules[W sem.Element[W]](a, b *Rule[W]) int {
	if c := compareConfigs(a.from, b.from); c != 0 {
		return c
	} else if c := compareConfigs(a.to, b.to); c != 0 {
		return c
	}
	//
	return cmp.Compare(a.stack2, b.stack2)
}

func compareConfigs(a, b Config) int {
	if c := cmp.Compare(a.State, b.State); c != 0 {
		return c
	}
	//
	return cmp.Compare(a.Stack, b.Stack)
}
