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
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/consensys/go-wali/pkg/domain/count"
	"github.com/consensys/go-wali/pkg/domain/lang"
	"github.com/consensys/go-wali/pkg/domain/minplus"
	"github.com/consensys/go-wali/pkg/domain/reach"
	"github.com/consensys/go-wali/pkg/domain/relation"
	"github.com/consensys/go-wali/pkg/format"
	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
	"github.com/consensys/go-wali/pkg/util/termio"
	"github.com/consensys/go-wali/pkg/wfa"
	"github.com/consensys/go-wali/pkg/witness"
	log "github.com/sirupsen/logrus"
)

// DefaultRelationSize is the number of variables used by the relation domain
// when none is given.
const DefaultRelationSize = 8

var (
	errNoInitialState = errors.New("automaton has no initial state")
	errWitnessRegex   = errors.New("witnesses are only recorded by the fixed point engine")
)

// runner performs the analyses offered by the subcommands, over a weight
// domain fixed when the runner is constructed.
type runner interface {
	summary(ctx context.Context, cfg config, a *format.Automaton, out io.Writer) error
	regex(ctx context.Context, cfg config, a *format.Automaton, out io.Writer) error
	prune(cfg config, a *format.Automaton, filter []string, out io.Writer) error
	intersect(ctx context.Context, cfg config, left, right *format.Automaton, maker string, solve bool,
		out io.Writer) error
	dot(ctx context.Context, cfg config, a *format.Automaton, solve bool, weights bool, out io.Writer) error
	xml(ctx context.Context, cfg config, a *format.Automaton, solve bool, out io.Writer) error
}

// Construct a runner for a named weight domain.
func newRunner(domain string, metrics *fileMetrics) (runner, error) {
	switch domain {
	case "minplus":
		return &engine[minplus.Weight]{minplus.Parse, minplus.New(0), true, metrics}, nil
	case "reach":
		return &engine[reach.Weight]{reach.Parse, reach.Reachable, true, metrics}, nil
	case "lang":
		return &engine[lang.Weight]{lang.Parse, lang.Epsilon(), true, metrics}, nil
	case "count":
		return &engine[count.Weight]{count.Parse, count.New(1), false, metrics}, nil
	}
	//
	if name, size, ok := strings.Cut(domain, ":"); name == "relation" {
		n := DefaultRelationSize
		//
		if ok {
			var err error
			//
			if n, err = strconv.Atoi(size); err != nil {
				return nil, fmt.Errorf("relation domain: invalid size %q", size)
			}
		}
		//
		rctx, err := relation.NewContext(n)
		if err != nil {
			return nil, fmt.Errorf("relation domain: %w", err)
		}
		//
		return &engine[relation.Weight]{rctx.Parse, rctx.Id(), true, metrics}, nil
	}
	//
	return nil, fmt.Errorf("unknown weight domain %q", domain)
}

// engine implements runner for a given weight domain.
type engine[W sem.Element[W]] struct {
	parse format.WeightParser[W]
	// Any weight of the domain, giving a zero for states without transitions.
	some W
	// Whether combine is idempotent in this domain, which is required for
	// the fixed point to terminate.
	idempotent bool
	metrics    *fileMetrics
}

// Build an automaton, applying any query override.
func (e *engine[W]) load(cfg config, table *key.Table, a *format.Automaton) (*wfa.WFA[W], error) {
	fa, err := format.BuildWith(a, table, e.parse, e.some)
	if err != nil {
		return nil, err
	}
	//
	if cfg.query != nil {
		fa.SetQuery(*cfg.query)
	}
	//
	e.metrics.size(fa.NumStates(), fa.NumTrans())
	//
	return fa, nil
}

// Compute the path summary of an automaton, falling back to path expressions
// when the fixed point cannot be used.
func (e *engine[W]) solve(ctx context.Context, cfg config, fa *wfa.WFA[W]) error {
	if cfg.regex || !e.idempotent {
		if !cfg.regex {
			log.Debug("weight domain is not idempotent, using path expressions")
		}
		//
		return fa.RegexSummary(ctx)
	}
	//
	return fixpoint(ctx, cfg, fa, e.metrics)
}

func (e *engine[W]) summary(ctx context.Context, cfg config, a *format.Automaton, out io.Writer) error {
	table := key.NewTable()
	//
	fa, err := e.load(cfg, table, a)
	if err != nil {
		return err
	} else if !cfg.witness {
		if err := e.solve(ctx, cfg, fa); err != nil {
			return err
		}
		//
		return printWeights(out, cfg, fa, table, func(k key.Key) string {
			w, _ := fa.Weight(k)
			return w.String()
		})
	} else if cfg.regex || !e.idempotent {
		return errWitnessRegex
	}
	//
	wa := witness.Wrap(fa)
	if err := fixpoint(ctx, cfg, wa, e.metrics); err != nil {
		return err
	}
	//
	weights := witness.Unwrap(wa)
	if err := printWeights(out, cfg, wa, table, func(k key.Key) string { return weights[k].String() }); err != nil {
		return err
	}
	//
	return printWitnesses(out, wa, table)
}

func (e *engine[W]) regex(ctx context.Context, cfg config, a *format.Automaton, out io.Writer) error {
	table := key.NewTable()
	//
	fa, err := e.load(cfg, table, a)
	if err != nil {
		return err
	}
	//
	exprs := fa.PathExpressions()
	if err := fa.RegexSummary(ctx); err != nil {
		return err
	}
	//
	tp := termio.NewTablePrinter(3)
	tp.AnsiEscapes(cfg.ansi)
	tp.AddRow("state", "weight", "expression")
	//
	for col := range uint(3) {
		tp.SetEscape(col, 0, termio.BoldAnsiEscape())
	}
	//
	for _, k := range fa.States() {
		w, _ := fa.Weight(k)
		tp.AddRow(table.Name(k), w.String(), exprs[k].Render(table))
	}
	//
	if cfg.width > 0 {
		tp.SetMaxWidth(2, cfg.width)
	}
	//
	return tp.Print(out)
}

func (e *engine[W]) prune(cfg config, a *format.Automaton, filter []string, out io.Writer) error {
	table := key.NewTable()
	//
	fa, err := e.load(cfg, table, a)
	if err != nil {
		return err
	} else if fa.InitialState() == key.NoKey {
		return errNoInitialState
	}
	//
	before := fa.NumTrans()
	//
	if len(filter) > 0 {
		fa.Filter(table.Keys(filter...)...)
	} else {
		fa.Prune()
	}
	//
	log.Debugf("removed %d of %d transitions", before-fa.NumTrans(), before)
	//
	return fa.Print(out, table)
}

func (e *engine[W]) intersect(ctx context.Context, cfg config, left, right *format.Automaton, maker string,
	solve bool, out io.Writer) error {
	table := key.NewTable()
	//
	wm, err := weightMaker[W](maker)
	if err != nil {
		return err
	}
	//
	lhs, err := e.load(cfg, table, left)
	if err != nil {
		return fmt.Errorf("left: %w", err)
	}
	//
	rhs, err := e.load(cfg, table, right)
	if err != nil {
		return fmt.Errorf("right: %w", err)
	}
	//
	if lhs.InitialState() == key.NoKey || rhs.InitialState() == key.NoKey {
		return errNoInitialState
	}
	//
	product := lhs.Intersect(wm, rhs, table)
	log.Debugf("product has %d states and %d transitions", product.NumStates(), product.NumTrans())
	//
	if solve {
		if err := e.solve(ctx, cfg, product); err != nil {
			return err
		}
	}
	//
	return product.Print(out, table)
}

func (e *engine[W]) dot(ctx context.Context, cfg config, a *format.Automaton, solve bool, weights bool,
	out io.Writer) error {
	table := key.NewTable()
	//
	fa, err := e.load(cfg, table, a)
	if err != nil {
		return err
	}
	//
	if solve {
		if err := e.solve(ctx, cfg, fa); err != nil {
			return err
		}
	}
	//
	return fa.WriteDot(out, table, weights)
}

func (e *engine[W]) xml(ctx context.Context, cfg config, a *format.Automaton, solve bool, out io.Writer) error {
	table := key.NewTable()
	//
	fa, err := e.load(cfg, table, a)
	if err != nil {
		return err
	}
	//
	if solve {
		if err := e.solve(ctx, cfg, fa); err != nil {
			return err
		}
	}
	//
	return fa.WriteXML(out, table)
}

// Run the worklist fixed point over an automaton, as configured.
func fixpoint[V sem.Element[V]](ctx context.Context, cfg config, fa *wfa.WFA[V], metrics *fileMetrics) error {
	var stats wfa.SummaryStats
	//
	opts := []wfa.Option[V]{
		wfa.WithWorklist(newWorklist[V](cfg.worklist)),
		wfa.WithStats[V](&stats),
	}
	//
	if cfg.maxIterations > 0 {
		opts = append(opts, wfa.WithMaxIterations[V](cfg.maxIterations))
	}
	//
	err := fa.PathSummary(ctx, opts...)
	metrics.pops.Observe(float64(stats.Pops))
	log.Debugf("fixed point took %d pops and %d updates", stats.Pops, stats.Updates)
	//
	return err
}

// Select the weight maker used to label the transitions of a product.
func weightMaker[W sem.Element[W]](name string) (wfa.WeightMaker[W], error) {
	switch strings.ToLower(name) {
	case "left":
		return wfa.KeepLeft[W]{}, nil
	case "right":
		return wfa.KeepRight[W]{}, nil
	case "both":
		return wfa.KeepBoth[W]{}, nil
	case "reverse":
		return wfa.KeepBothReverse[W]{}, nil
	}
	//
	return nil, fmt.Errorf("unknown weight maker %q", name)
}

// Print the weight of every state as a table.  When escapes are enabled, the
// initial state is highlighted in yellow and final states in green.
func printWeights[V sem.Element[V]](out io.Writer, cfg config, fa *wfa.WFA[V], namer key.Namer,
	weight func(key.Key) string) error {
	tp := termio.NewTablePrinter(2)
	tp.AnsiEscapes(cfg.ansi)
	tp.AddRow("state", "weight")
	tp.SetEscape(0, 0, termio.BoldAnsiEscape())
	tp.SetEscape(1, 0, termio.BoldAnsiEscape())
	//
	for _, k := range fa.States() {
		row := tp.AddRow(key.NameOf(namer, k), weight(k))
		//
		switch {
		case fa.IsInitialState(k):
			tp.SetEscape(0, row, termio.BoldAnsiEscape().FgColour(termio.YELLOW))
		case fa.IsFinalState(k):
			tp.SetEscape(0, row, termio.NewAnsiEscape().FgColour(termio.GREEN))
		}
	}
	//
	if cfg.width > 0 {
		tp.SetMaxWidth(1, cfg.width)
	}
	//
	return tp.Print(out)
}

// Print the witness recorded for the initial state, or for every state when
// there is no initial state.
func printWitnesses[W sem.Element[W]](out io.Writer, wa *wfa.WFA[*witness.Witness[W]], namer key.Namer) error {
	states := wa.States()
	//
	if init := wa.InitialState(); init != key.NoKey {
		states = []key.Key{init}
	}
	//
	for _, k := range states {
		w, ok := wa.Weight(k)
		//
		if !ok {
			log.Warnf("no witness for %s: not a state of the automaton", key.NameOf(namer, k))
			continue
		} else if err := w.Verify(); err != nil {
			log.Warnf("witness for %s does not verify: %v", key.NameOf(namer, k), err)
		}
		//
		if _, err := fmt.Fprintf(out, "witness for %s:\n", key.NameOf(namer, k)); err != nil {
			return err
		}
		//
		if err := w.PrettyPrint(out, namer); err != nil {
			return err
		}
	}
	//
	return nil
}
