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
	"encoding/xml"
	"io"

	"github.com/consensys/go-wali/pkg/key"
)

// XMLAutomaton is the XML representation of an automaton.  States and
// transitions are identified by name, and weights by their printed form.
type XMLAutomaton struct {
	XMLName xml.Name   `xml:"WFA"`
	Query   string     `xml:"query,attr"`
	States  []XMLState `xml:"State"`
	Trans   []XMLTrans `xml:"Trans"`
}

// XMLState is the XML representation of a state.  The initial and final
// attributes are either TRUE or FALSE.
type XMLState struct {
	Name    string    `xml:"Name,attr"`
	Initial string    `xml:"initial,attr"`
	Final   string    `xml:"final,attr"`
	Weight  XMLWeight `xml:"Weight"`
}

// XMLTrans is the XML representation of a transition.
type XMLTrans struct {
	From   string    `xml:"from,attr"`
	Stack  string    `xml:"stack,attr"`
	To     string    `xml:"to,attr"`
	Weight XMLWeight `xml:"Weight"`
}

// XMLWeight holds the printed form of a weight.
type XMLWeight struct {
	Value string `xml:",chardata"`
}

// ToXML converts this automaton into its XML representation, naming keys with
// a given namer.  States and transitions are listed in ascending order.
func (p *WFA[W]) ToXML(namer key.Namer) XMLAutomaton {
	var doc = XMLAutomaton{Query: p.query.String()}
	//
	for _, k := range p.States() {
		doc.States = append(doc.States, XMLState{
			Name:    key.NameOf(namer, k),
			Initial: xmlBool(p.IsInitialState(k)),
			Final:   xmlBool(p.IsFinalState(k)),
			Weight:  XMLWeight{p.states[k].weight.String()},
		})
	}
	//
	for _, t := range p.Transitions() {
		doc.Trans = append(doc.Trans, XMLTrans{
			From:   key.NameOf(namer, t.from),
			Stack:  key.NameOf(namer, t.stack),
			To:     key.NameOf(namer, t.to),
			Weight: XMLWeight{t.weight.String()},
		})
	}
	//
	return doc
}

// WriteXML writes the XML representation of this automaton.
func (p *WFA[W]) WriteXML(out io.Writer, namer key.Namer) error {
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	//
	if err := enc.Encode(p.ToXML(namer)); err != nil {
		return err
	}
	//
	if err := enc.Close(); err != nil {
		return err
	}
	//
	_, err := io.WriteString(out, "\n")
	//
	return err
}

func xmlBool(b bool) string {
	if b {
		return "TRUE"
	}
	//
	return "FALSE"
}
