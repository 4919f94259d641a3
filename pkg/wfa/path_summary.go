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
	"context"
	"fmt"
	"time"

	"github.com/consensys/go-wali/pkg/key"
	"github.com/consensys/go-wali/pkg/sem"
	"github.com/consensys/go-wali/pkg/worklist"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Observer is notified of every accumulator update made during a path
// summary, giving the state updated along with its old and new weights.
type Observer[W sem.Element[W]] func(state key.Key, old W, new W)

// SummaryStats records the work performed by a summary.
type SummaryStats struct {
	// Number of states popped from the worklist.
	Pops uint
	// Number of accumulator updates made.
	Updates uint
}

// Option configures a path summary.
type Option[W sem.Element[W]] func(*summaryConfig[W])

type summaryConfig[W sem.Element[W]] struct {
	worklist      worklist.Worklist[*State[W]]
	finalWeight   *W
	maxIterations uint
	observer      Observer[W]
	stats         *SummaryStats
}

// WithWorklist determines the order in which states are visited.  By default,
// a LIFO worklist is used.
func WithWorklist[W sem.Element[W]](wl worklist.Worklist[*State[W]]) Option[W] {
	return func(c *summaryConfig[W]) { c.worklist = wl }
}

// WithFinalWeight determines the weight with which final states are seeded.  By
// default, this is the one of the weight domain.
func WithFinalWeight[W sem.Element[W]](w W) Option[W] {
	return func(c *summaryConfig[W]) { c.finalWeight = &w }
}

// WithMaxIterations bounds the number of states popped from the worklist, such
// that a summary exceeding the limit fails with ErrIterationLimit.  A limit of
// zero means no limit.
func WithMaxIterations[W sem.Element[W]](n uint) Option[W] {
	return func(c *summaryConfig[W]) { c.maxIterations = n }
}

// WithObserver registers a function to be notified of each accumulator update.
func WithObserver[W sem.Element[W]](fn Observer[W]) Option[W] {
	return func(c *summaryConfig[W]) { c.observer = fn }
}

// WithStats registers a record into which the work performed is written.
func WithStats[W sem.Element[W]](stats *SummaryStats) Option[W] {
	return func(c *summaryConfig[W]) { c.stats = stats }
}

// PathSummary computes, for every state, the combine over all paths from that
// state to a final state of the extend of the weights along the path.  The
// result is stored in the accumulator of each state.  For INORDER queries the
// weights along a path are extended from first to last, whilst for REVERSE
// queries they are extended from last to first.
//
// The computation is a chaotic iteration which terminates provided the weight
// domain has no infinite ascending chains.  This is not checked, though a
// limit on the number of iterations can be given to guard against it.  An
// error is returned if the context is cancelled or the limit is exceeded, in
// which case the accumulators are left in an intermediate state.
func (p *WFA[W]) PathSummary(ctx context.Context, opts ...Option[W]) error {
	var (
		config summaryConfig[W]
		stats  SummaryStats
		start  = time.Now()
	)
	//
	for _, opt := range opts {
		opt(&config)
	}
	//
	if config.worklist == nil {
		config.worklist = worklist.NewLifo[*State[W]]()
	}
	//
	ctx, span := startSummarySpan(ctx, "WFA.PathSummary", p.query, p.NumStates(), p.NumTrans())
	defer span.End()
	//
	err := p.pathSummary(ctx, &config, &stats)
	//
	span.SetAttributes(
		attribute.Int("wfa.pops", int(stats.Pops)),
		attribute.Int("wfa.updates", int(stats.Updates)),
	)
	//
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	//
	recordSummaryMetrics(ctx, "fixpoint", time.Since(start), stats, err == nil)
	//
	if config.stats != nil {
		*config.stats = stats
	}
	//
	log.Debugf("path summary (%s) of %d states and %d transitions took %d pops and %d updates in %0.3fs",
		p.query, p.NumStates(), p.NumTrans(), stats.Pops, stats.Updates, time.Since(start).Seconds())
	//
	return err
}

func (p *WFA[W]) pathSummary(ctx context.Context, config *summaryConfig[W], stats *SummaryStats) error {
	var (
		wl    = config.worklist
		preds = p.predecessors()
	)
	// Reset accumulators
	for _, s := range p.states {
		s.weight = s.zero
		s.Unmark()
	}
	// Seed final states
	for k := range p.finals {
		s, ok := p.states[k]
		//
		if !ok {
			continue
		}
		//
		if config.finalWeight != nil {
			s.weight = s.weight.Combine(*config.finalWeight)
		} else {
			s.weight = s.weight.Combine(s.zero.One())
		}
	}
	// Push states in a deterministic order
	wl.Clear()
	//
	for _, k := range p.States() {
		wl.Put(p.states[k])
	}
	//
	for !wl.Empty() {
		if err := ctx.Err(); err != nil {
			wl.Clear()
			return err
		} else if config.maxIterations != 0 && stats.Pops >= config.maxIterations {
			wl.Clear()
			return fmt.Errorf("path summary after %d pops: %w", stats.Pops, ErrIterationLimit)
		}
		//
		q := wl.Get()
		stats.Pops++
		// Relax non-epsilon predecessors, then epsilon predecessors.
		for _, ts := range [2][]*Trans[W]{preds[q.name], p.epsmap[q.name]} {
			for _, t := range ts {
				src := p.states[t.from]
				ext := Extend(p.query, t.weight, q.weight)
				nw := src.weight.Combine(ext)
				//
				if !nw.Equal(src.weight) {
					if config.observer != nil {
						config.observer(src.name, src.weight, nw)
					}
					//
					src.weight = nw
					stats.Updates++
					//
					wl.Put(src)
				}
			}
		}
	}
	//
	p.generation++
	//
	return nil
}

// predecessors indexes the non-epsilon transitions by their target state.
// Epsilon transitions are already indexed in this way.
func (p *WFA[W]) predecessors() map[key.Key][]*Trans[W] {
	var preds = make(map[key.Key][]*Trans[W])
	//
	for _, k := range p.States() {
		for _, t := range p.out[k] {
			if t.stack != key.Epsilon {
				preds[t.to] = append(preds[t.to], t)
			}
		}
	}
	//
	return preds
}
