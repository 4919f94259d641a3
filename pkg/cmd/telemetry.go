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
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// session holds the telemetry opened for a single run of the tool.
type session struct {
	registry   *prometheus.Registry
	metrics    *fileMetrics
	tracer     trace.Tracer
	shutdown   func(context.Context) error
	metricsOut string
}

// fileMetrics are the Prometheus instruments updated once per processed input.
type fileMetrics struct {
	files       *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	states      prometheus.Histogram
	transitions prometheus.Histogram
	pops        prometheus.Histogram
}

func newFileMetrics(reg prometheus.Registerer) *fileMetrics {
	factory := promauto.With(reg)
	//
	return &fileMetrics{
		files: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wali_files_total",
			Help: "Input files processed by command and result",
		}, []string{"command", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "wali_file_duration_seconds",
			Help:    "Time taken to process one input file",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"command"}),
		states: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wali_automaton_states",
			Help:    "Number of states in each input automaton",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		transitions: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wali_automaton_transitions",
			Help:    "Number of transitions in each input automaton",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		pops: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wali_summary_pops",
			Help:    "Worklist pops taken by each fixed point",
			Buckets: prometheus.ExponentialBuckets(1, 4, 12),
		}),
	}
}

// Record the outcome of processing one input file.
func (m *fileMetrics) observe(command string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	//
	m.files.WithLabelValues(command, result).Inc()
	m.duration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// Record the size of an automaton about to be analysed.
func (m *fileMetrics) size(states, transitions uint) {
	m.states.Observe(float64(states))
	m.transitions.Observe(float64(transitions))
}

// Open the telemetry requested by the persistent flags.  This is called before
// any subcommand runs.
func (s *session) open(cmd *cobra.Command) error {
	if getFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	}
	//
	s.registry = prometheus.NewRegistry()
	s.metrics = newFileMetrics(s.registry)
	s.metricsOut = getString(cmd, "metrics-out")
	//
	if getFlag(cmd, "trace") {
		shutdown, err := installTracer(cmd.ErrOrStderr())
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		//
		s.shutdown = shutdown
	}
	// Resolved after installation, so spans reach the stdout exporter.
	s.tracer = otel.Tracer("go-wali.cmd")
	//
	return nil
}

// Close this session, flushing any spans and writing out metrics.
func (s *session) close() error {
	var errs []error
	//
	if s.shutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		errs = append(errs, s.shutdown(ctx))
		//
		cancel()
	}
	//
	if s.metricsOut != "" && s.registry != nil {
		if err := prometheus.WriteToTextfile(s.metricsOut, s.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		} else {
			log.Debugf("wrote metrics to %s", s.metricsOut)
		}
	}
	//
	return errors.Join(errs...)
}

// Install a global tracer provider which exports spans in a human readable
// form to the given writer.
func installTracer(out io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint(), stdouttrace.WithWriter(out))
	if err != nil {
		return nil, fmt.Errorf("create exporter: %w", err)
	}
	//
	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", "wali"),
		attribute.String("service.version", version()),
		attribute.Int("process.pid", os.Getpid()),
	)
	//
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	//
	return tp.Shutdown, nil
}
