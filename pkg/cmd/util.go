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
	"os"
	"strings"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// GetFlag gets an expected flag, or exits if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetInt gets an expected int flag, or exits if an error arises.
func GetInt(cmd *cobra.Command, flag string) int {
	r, err := cmd.Flags().GetInt(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// GetString gets an expected string flag, or exits if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return r
}

// Read the given source files, or exit if any cannot be read.
func readSourceFiles(filenames []string) []source.File {
	for _, n := range filenames {
		log.Debug(fmt.Sprintf("reading source file %s", n))
	}
	//
	srcfiles, err := source.ReadFiles(filenames...)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}
	//
	return srcfiles
}

// Report a set of diagnostics, printing at most limit errors (or all of them if
// limit is 0).  Warnings are logged rather than printed.
func printDiagnostics(errs []diag.Error, warnings []diag.Error, limit int) {
	for _, w := range warnings {
		log.Warn(w.Error())
	}
	//
	for i := range errs {
		if limit > 0 && i == limit {
			fmt.Printf("(%d more errors not shown)\n", len(errs)-limit)
			return
		}
		//
		printSyntaxError(&errs[i].SyntaxError, errs[i].Hint())
	}
}

// Print a syntax error with appropriate highlighting.  Lines wider than the
// terminal are clipped around the highlighted region.
func printSyntaxError(err *source.SyntaxError, hint string) {
	span := err.Span()
	line := err.FirstEnclosingLine()
	lineOffset := span.Start() - line.Start()
	// Calculate length (ensures don't overflow line)
	length := min(line.Length()-lineOffset, span.Length())
	// Print error + line number
	fmt.Printf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(),
		line.Number(), 1+lineOffset, 1+lineOffset+length, err.Message())
	// Print separator line
	fmt.Println()
	// Print line, clipped to the terminal
	text, offset := clipLine(line.String(), lineOffset, length, terminalWidth())
	fmt.Println(text)
	// Print indent (todo: account for tabs)
	fmt.Print(strings.Repeat(" ", offset))
	// Print highlight
	fmt.Println(strings.Repeat("^", max(1, min(length, len(text)-offset))))
	//
	if hint != "" {
		fmt.Printf("hint: %s\n", hint)
	}
}

// Clip a line of text to a given width, such that the region starting at a
// given offset remains visible.  This returns the clipped text, and the offset
// of the region within it.  A width of zero means no limit.
func clipLine(text string, offset int, length int, width int) (string, int) {
	runes := []rune(text)
	//
	if width <= 0 || len(runes) <= width {
		return text, offset
	}
	// Keep some context before the region, where possible
	start := max(0, min(offset-width/4, len(runes)-width))
	end := min(len(runes), start+width)
	//
	return string(runes[start:end]), offset - start
}

// Determine the width of the terminal attached to stdout, or 0 if it is not a
// terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	//
	if !term.IsTerminal(fd) {
		return 0
	}
	//
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	//
	return width
}
