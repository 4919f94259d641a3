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
	"fmt"
	"io"

	"github.com/consensys/go-wali/pkg/format"
	"github.com/consensys/go-wali/pkg/util"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// fileTask analyses a single automaton, writing its report to out.
type fileTask func(ctx context.Context, r runner, cfg config, a *format.Automaton, out io.Writer) error

// Run a task over each of a set of input files.  Files are processed
// concurrently, but reports are written in the order the files were given.
// The first failure cancels any files not yet started.
func processFiles(cmd *cobra.Command, s *session, files []string, task fileTask) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}
	//
	r, err := newRunner(cfg.domain, s.metrics)
	if err != nil {
		return err
	}
	//
	ctx, span := s.tracer.Start(cmd.Context(), "wali."+cmd.Name(),
		trace.WithAttributes(attribute.String("domain", cfg.domain), attribute.Int("files", len(files))))
	defer span.End()
	//
	var (
		reports = make([]bytes.Buffer, len(files))
		g, gctx = errgroup.WithContext(ctx)
	)
	//
	g.SetLimit(cfg.jobs)
	//
	for i, filename := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			//
			if len(files) > 1 {
				fmt.Fprintf(&reports[i], "%s:\n", filename)
			}
			//
			return runFile(gctx, cmd.Name(), s, filename, func(ctx context.Context, a *format.Automaton) error {
				return task(ctx, r, cfg, a, &reports[i])
			})
		})
	}
	//
	err = g.Wait()
	//
	for i := range reports {
		if _, werr := reports[i].WriteTo(cmd.OutOrStdout()); werr != nil && err == nil {
			err = werr
		}
	}
	//
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	//
	return err
}

// Read and analyse one input file, recording how long this took.
func runFile(ctx context.Context, command string, s *session, filename string,
	fn func(context.Context, *format.Automaton) error) error {
	stats := util.NewPerfStats()
	//
	ctx, span := s.tracer.Start(ctx, "wali.file", trace.WithAttributes(attribute.String("file", filename)))
	defer span.End()
	//
	a, err := format.Read(filename)
	if err == nil {
		err = fn(ctx, a)
	}
	//
	stats.Log(fmt.Sprintf("%s %s", command, filename))
	s.metrics.observe(command, stats.Elapsed(), err)
	//
	if err == nil {
		return nil
	} else if _, ok := asSyntaxError(err); ok {
		// Syntax errors already identify their file.
		return err
	}
	//
	span.RecordError(err)
	//
	return fmt.Errorf("%s: %w", filename, err)
}
