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
	"fmt"

	"github.com/consensys/go-wali/pkg/format"
	"github.com/spf13/cobra"
)

func newIntersectCommand(s *session) *cobra.Command {
	intersectCmd := &cobra.Command{
		Use:   "intersect [flags] left right",
		Short: "Compute the product of two automata.",
		Long: `Compute the product of two automata, whose states are the pairs of states
reachable together from the pair of initial states.  The weight of each product
transition is made from the weights of its two components, as selected by
--maker: left, right, both (left then right) or reverse (right then left).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
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
			ctx, span := s.tracer.Start(cmd.Context(), "wali.intersect")
			defer span.End()
			//
			automata := make([]*format.Automaton, len(args))
			//
			for i, filename := range args {
				if automata[i], err = format.Read(filename); err != nil {
					if _, ok := asSyntaxError(err); ok {
						return err
					}
					//
					return fmt.Errorf("%s: %w", filename, err)
				}
			}
			//
			return r.intersect(ctx, cfg, automata[0], automata[1], getString(cmd, "maker"),
				getFlag(cmd, "summarise"), cmd.OutOrStdout())
		},
	}
	//
	intersectCmd.Flags().String("maker", "both", "weight maker for product transitions (left, right, both or reverse)")
	intersectCmd.Flags().Bool("summarise", false, "compute the path summary of the product")
	//
	return intersectCmd
}
