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
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// Build the root command, along with all of its subcommands.  Telemetry opened
// by the root command is recorded in the given session, and must be closed by
// the caller once the command has finished.
func newRootCommand(s *session) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wali",
		Short: "A toolbox for weighted finite automata.",
		Long: "Compute path summaries, path expressions, intersections and prunings of weighted\n" +
			"finite automata, over a choice of weight domains.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.open(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if getFlag(cmd, "version") {
				fmt.Fprintf(cmd.OutOrStdout(), "wali %s\n", version())
				return nil
			}
			//
			return cmd.Help()
		},
	}
	//
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().StringP("domain", "d", "minplus",
		"weight domain (minplus, reach, lang, count or relation:N)")
	rootCmd.PersistentFlags().String("query", "", "override the query mode of each automaton (inorder or reverse)")
	rootCmd.PersistentFlags().String("worklist", "lifo", "worklist policy for the fixed point (lifo, fifo or priority)")
	rootCmd.PersistentFlags().Uint("max-iterations", 0, "bound the number of fixed point pops (0 is unbounded)")
	rootCmd.PersistentFlags().Bool("witness", false, "record and report witnesses for computed weights")
	rootCmd.PersistentFlags().UintP("jobs", "j", 0, "number of files processed concurrently (0 is one per cpu)")
	rootCmd.PersistentFlags().Bool("trace", false, "write OpenTelemetry spans to stderr")
	rootCmd.PersistentFlags().String("metrics-out", "", "write Prometheus metrics to the given file on exit")
	//
	rootCmd.AddCommand(
		newSummaryCommand(s),
		newRegexCommand(s),
		newPruneCommand(s),
		newIntersectCommand(s),
		newDotCommand(s),
		newXMLCommand(s),
	)
	//
	return rootCmd
}

// Execute builds the root command and runs it against the command-line
// arguments, exiting with a non-zero status on failure.  This is called by
// main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	s := &session{}
	err := newRootCommand(s).ExecuteContext(ctx)
	//
	if cerr := s.close(); cerr != nil {
		log.Warnf("closing telemetry: %v", cerr)
	}
	//
	stop()
	//
	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func version() string {
	if Version != "" {
		// Built via "make"
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		return info.Main.Version
	}
	// Unknown, perhaps "go run"
	return "(unknown version)"
}

// Report an error which caused a command to fail.  Syntax errors are reported
// with the offending line of the input highlighted.
func reportError(out io.Writer, err error) {
	if serr, ok := asSyntaxError(err); ok {
		printSyntaxError(out, serr)
		return
	}
	//
	fmt.Fprintf(out, "wali: %v\n", err)
}
