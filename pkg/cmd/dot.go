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
	"io"

	"github.com/consensys/go-wali/pkg/format"
	"github.com/spf13/cobra"
)

func newDotCommand(s *session) *cobra.Command {
	dotCmd := &cobra.Command{
		Use:   "dot [flags] file(s)",
		Short: "Render automata in the Graphviz DOT language.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			solve := getFlag(cmd, "summarise")
			weights := getFlag(cmd, "weights") || solve
			//
			return processFiles(cmd, s, args,
				func(ctx context.Context, r runner, cfg config, a *format.Automaton, out io.Writer) error {
					return r.dot(ctx, cfg, a, solve, weights, out)
				})
		},
	}
	//
	dotCmd.Flags().Bool("weights", false, "label states with their weights")
	dotCmd.Flags().Bool("summarise", false, "compute the path summary before rendering (implies --weights)")
	//
	return dotCmd
}
