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
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/consensys/go-wali/pkg/wfa"
	"gopkg.in/yaml.v3"
)

// Read the automaton description held in a given file, selecting the format
// from the file's extension: ".wfa" and ".lisp" for S-expressions, ".yaml" and
// ".yml" for YAML and ".xml" for XML.
func Read(filename string) (*Automaton, error) {
	data, err := os.ReadFile(filename)
	//
	if err != nil {
		return nil, err
	}
	//
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".wfa", ".lisp":
		a, serr := ParseSExp(NewFile(filename, data))
		if serr != nil {
			return nil, serr
		}
		//
		return a, nil
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".xml":
		return ParseXML(data)
	}
	//
	return nil, fmt.Errorf("%s: unknown file format", filename)
}

// ParseSExp parses an automaton written as an S-expression, such as:
//
//	(wfa
//	  (query inorder)
//	  (initial p)
//	  (final q)
//	  (trans p a q 5)
//	  (trans q * q "{(0,1)}"))
//
// Weights containing whitespace or parentheses must be quoted.
func ParseSExp(srcfile *File) (*Automaton, *SyntaxError) {
	terms, err := ParseSExps(srcfile)
	//
	if err != nil {
		return nil, err
	} else if len(terms) != 1 {
		return nil, srcfile.SyntaxError(NewSpan(0, len(srcfile.Contents())), "expected exactly one automaton")
	}
	//
	list := terms[0].AsList()
	//
	if list == nil || list.Head() != "wfa" {
		return nil, srcfile.SyntaxError(terms[0].Span(), "expected (wfa ...)")
	}
	//
	var a Automaton
	//
	for _, element := range list.Elements[1:] {
		if err := translateDeclaration(srcfile, element, &a); err != nil {
			return nil, err
		}
	}
	//
	return &a, nil
}

func translateDeclaration(srcfile *File, sexp SExp, a *Automaton) *SyntaxError {
	list := sexp.AsList()
	//
	if list == nil || list.Len() == 0 {
		return srcfile.SyntaxError(sexp.Span(), "expected declaration")
	}
	//
	args, err := symbols(srcfile, list.Elements[1:])
	//
	if err != nil {
		return err
	}
	//
	switch list.Head() {
	case "query":
		if len(args) != 1 {
			return srcfile.SyntaxError(list.Span(), "expected (query mode)")
		} else if _, qerr := wfa.ParseQuery(args[0]); qerr != nil {
			return srcfile.SyntaxError(list.Elements[1].Span(), qerr.Error())
		}
		//
		a.Query = args[0]
	case "initial":
		if len(args) != 1 {
			return srcfile.SyntaxError(list.Span(), "expected (initial state)")
		} else if a.Initial != "" {
			return srcfile.SyntaxError(list.Span(), "duplicate initial state")
		}
		//
		a.Initial = args[0]
	case "final":
		a.Finals = append(a.Finals, args...)
	case "trans":
		if len(args) != 4 {
			return srcfile.SyntaxError(list.Span(), "expected (trans from stack to weight)")
		}
		//
		a.Transitions = append(a.Transitions, Transition{args[0], args[1], args[2], args[3]})
	default:
		return srcfile.SyntaxError(list.Span(), "unknown declaration")
	}
	//
	return nil
}

func symbols(srcfile *File, elements []SExp) ([]string, *SyntaxError) {
	var names = make([]string, len(elements))
	//
	for i, e := range elements {
		s := e.AsSymbol()
		//
		if s == nil {
			return nil, srcfile.SyntaxError(e.Span(), "expected symbol")
		}
		//
		names[i] = s.Value
	}
	//
	return names, nil
}

// ParseYAML parses an automaton written in YAML, such as:
//
//	query: inorder
//	initial: p
//	final: [q]
//	transitions:
//	  - {from: p, stack: a, to: q, weight: 5}
func ParseYAML(data []byte) (*Automaton, error) {
	var (
		a   Automaton
		dec = yaml.NewDecoder(bytes.NewReader(data))
	)
	//
	dec.KnownFields(true)
	//
	if err := dec.Decode(&a); err != nil {
		return nil, fmt.Errorf("invalid automaton: %w", err)
	}
	//
	return &a, nil
}

// ParseXML parses an automaton in the XML form written by wfa.WriteXML.
func ParseXML(data []byte) (*Automaton, error) {
	var (
		doc wfa.XMLAutomaton
		a   Automaton
	)
	//
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid automaton: %w", err)
	}
	//
	a.Query = doc.Query
	//
	for _, s := range doc.States {
		if s.Initial == "TRUE" {
			if a.Initial != "" {
				return nil, fmt.Errorf("invalid automaton: multiple initial states")
			}
			//
			a.Initial = s.Name
		}
		//
		if s.Final == "TRUE" {
			a.Finals = append(a.Finals, s.Name)
		}
	}
	//
	for _, t := range doc.Trans {
		a.Transitions = append(a.Transitions, Transition{t.From, t.Stack, t.To, strings.TrimSpace(t.Weight.Value)})
	}
	//
	return &a, nil
}
