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

func newRegexCommand(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "regex [flags] file(s)",
		Short: "Report the path expression of every state.",
		Long: `Construct, for every state, a regular expression over transitions describing
its accepting paths, then evaluate it to give the weight of that state.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return processFiles(cmd, s, args,
				func(ctx context.Context, r runner, cfg config, a *format.Automaton, out io.Writer) error {
					return r.regex(ctx, cfg, a, out)
				})
		},
	}
}
