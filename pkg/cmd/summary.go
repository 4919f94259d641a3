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

func newSummaryCommand(s *session) *cobra.Command {
	summaryCmd := &cobra.Command{
		Use:   "summary [flags] file(s)",
		Short: "Compute the path summary of one or more automata.",
		Long: `Compute, for every state, the combine over all accepting paths from that state
of the extend of the transition weights along the path.  Idempotent domains use
a worklist fixed point; other domains (and --regex) use path expressions.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			regex := getFlag(cmd, "regex")
			//
			return processFiles(cmd, s, args,
				func(ctx context.Context, r runner, cfg config, a *format.Automaton, out io.Writer) error {
					cfg.regex = regex
					return r.summary(ctx, cfg, a, out)
				})
		},
	}
	//
	summaryCmd.Flags().Bool("regex", false, "solve using path expressions instead of the fixed point")
	//
	return summaryCmd
}
