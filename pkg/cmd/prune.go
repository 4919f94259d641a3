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

func newPruneCommand(s *session) *cobra.Command {
	pruneCmd := &cobra.Command{
		Use:   "prune [flags] file(s)",
		Short: "Remove the states which lie on no accepting path.",
		Long: `Remove states (and their transitions) which are unreachable from the initial
state or cannot reach a final state.  With --filter, first restrict the first
symbol read from the initial state to one of the given stack symbols.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := getStringArray(cmd, "filter")
			//
			return processFiles(cmd, s, args,
				func(_ context.Context, r runner, cfg config, a *format.Automaton, out io.Writer) error {
					return r.prune(cfg, a, filter, out)
				})
		},
	}
	//
	pruneCmd.Flags().StringSlice("filter", nil, "stack symbols permitted from the initial state")
	//
	return pruneCmd
}
