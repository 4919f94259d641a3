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
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/consensys/go-wali/pkg/format"
	"github.com/spf13/cobra"
)

// Get an expected flag, or panic if an error arises.
func getFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected unsigned integer, or panic if an error arises.
func getUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string, or panic if an error arises.
func getString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Get an expected string array, or panic if an error arises.
func getStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringSlice(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

func asSyntaxError(err error) (*format.SyntaxError, bool) {
	var serr *format.SyntaxError
	//
	if errors.As(err, &serr) {
		return serr, true
	}
	//
	return nil, false
}

// Print a syntax error with appropriate highlighting.
func printSyntaxError(out io.Writer, err *format.SyntaxError) {
	span := err.Span()
	line := err.SourceFile().Line(span.Start())
	_, col := err.SourceFile().Position(span.Start())
	// Print error + line number
	fmt.Fprintln(out, err.Error())
	// Print line
	fmt.Fprintln(out, line)
	// Print indent (todo: account for tabs)
	indent := min(col-1, utf8.RuneCountInString(line))
	fmt.Fprint(out, strings.Repeat(" ", indent))
	// Print highlight, clipped to the end of the line
	width := max(1, min(span.End()-span.Start(), utf8.RuneCountInString(line)-indent))
	fmt.Fprintln(out, strings.Repeat("^", width))
}
