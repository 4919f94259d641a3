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
	"runtime"
	"strings"

	"github.com/consensys/go-wali/pkg/sem"
	"github.com/consensys/go-wali/pkg/util/termio"
	"github.com/consensys/go-wali/pkg/wfa"
	"github.com/consensys/go-wali/pkg/worklist"
	"github.com/spf13/cobra"
)

// config captures the persistent flags which shape how each input automaton
// is analysed and reported.
type config struct {
	// Weight domain, e.g. "minplus" or "relation:4".
	domain string
	// Query mode overriding that of each input, if set.
	query *wfa.Query
	// Worklist policy used by the fixed point.
	worklist string
	// Bound on fixed point pops, or zero.
	maxIterations uint
	// Whether witnesses are recorded.
	witness bool
	// Force path expressions over the fixed point.
	regex bool
	// Number of files processed concurrently.
	jobs int
	// Whether output is decorated with ANSI escapes.
	ansi bool
	// Maximum width of a weight column, or zero when unconstrained.
	width uint
}

func readConfig(cmd *cobra.Command) (config, error) {
	cfg := config{
		domain:        strings.ToLower(getString(cmd, "domain")),
		worklist:      strings.ToLower(getString(cmd, "worklist")),
		maxIterations: getUint(cmd, "max-iterations"),
		witness:       getFlag(cmd, "witness"),
		jobs:          int(getUint(cmd, "jobs")),
	}
	//
	if q := getString(cmd, "query"); q != "" {
		query, err := wfa.ParseQuery(q)
		if err != nil {
			return cfg, err
		}
		//
		cfg.query = &query
	}
	//
	if cfg.jobs == 0 {
		cfg.jobs = runtime.NumCPU()
	}
	//
	switch cfg.worklist {
	case "lifo", "fifo", "priority":
	default:
		return cfg, fmt.Errorf("unknown worklist policy %q", cfg.worklist)
	}
	//
	out := cmd.OutOrStdout()
	if termio.IsTerminal(out) {
		cfg.ansi = true
		//
		if w, ok := termio.Width(out); ok && w > 20 {
			cfg.width = w - 20
		}
	}
	//
	return cfg, nil
}

// Construct the worklist selected by a given policy.  The priority policy pops
// states in ascending key order.
func newWorklist[W sem.Element[W]](policy string) worklist.Worklist[*wfa.State[W]] {
	switch policy {
	case "fifo":
		return worklist.NewFifo[*wfa.State[W]]()
	case "priority":
		return worklist.NewPriority(func(a, b *wfa.State[W]) bool {
			return a.Name() < b.Name()
		})
	default:
		return worklist.NewLifo[*wfa.State[W]]()
	}
}
