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
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("go-wali.wfa")
	meter  = otel.Meter("go-wali.wfa")
)

var (
	summaryLatency metric.Float64Histogram
	summaryTotal   metric.Int64Counter
	summaryUpdates metric.Int64Histogram
	summaryPops    metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics registers the instruments used by path summaries.  Safe to call
// multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		summaryLatency, err = meter.Float64Histogram(
			"wfa_summary_duration_seconds",
			metric.WithDescription("Duration of path summaries"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		summaryTotal, err = meter.Int64Counter(
			"wfa_summary_total",
			metric.WithDescription("Total number of path summaries"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		summaryUpdates, err = meter.Int64Histogram(
			"wfa_summary_updates",
			metric.WithDescription("Number of accumulator updates per summary"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		summaryPops, err = meter.Int64Histogram(
			"wfa_summary_pops",
			metric.WithDescription("Number of worklist pops per summary"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})

	return metricsErr
}

// recordSummaryMetrics records metrics for a completed (or aborted) summary.
func recordSummaryMetrics(ctx context.Context, engine string, duration time.Duration, stats SummaryStats,
	success bool) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(
		attribute.String("engine", engine),
		attribute.Bool("success", success),
	)

	summaryLatency.Record(ctx, duration.Seconds(), attrs)
	summaryTotal.Add(ctx, 1, attrs)
	summaryUpdates.Record(ctx, int64(stats.Updates), attrs)
	summaryPops.Record(ctx, int64(stats.Pops), attrs)
}

// startSummarySpan creates a span for a summary of a given automaton.
func startSummarySpan(ctx context.Context, name string, query Query, states, trans uint) (context.Context,
	trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithAttributes(
			attribute.String("wfa.query", query.String()),
			attribute.Int("wfa.states", int(states)),
			attribute.Int("wfa.transitions", int(trans)),
		),
	)
}
