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

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/printer"
	"github.com/spf13/cobra"
)

var printCmd = &cobra.Command{
	Use:   "print [flags] model_file",
	Short: "Print a model in its normal form.",
	Long: `Resolve a model file and print it back out in a normal form, with one item per
	line, canonical literals and full attribute names.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			cfg      = getConfig(cmd)
			srcfiles = readSourceFiles(args)
			res      = fzn.Check(&srcfiles[0], cfg.Checker())
			output   = GetString(cmd, "output")
		)
		//
		if len(res.Errors) > 0 {
			printDiagnostics(res.Errors, res.Warnings, cfg.MaxErrors)
			os.Exit(4)
		}
		//
		text := printer.Print(res.Model)
		//
		if output == "" {
			fmt.Print(text)
		} else if err := os.WriteFile(output, []byte(text), 0644); err != nil {
			fmt.Println(err)
			os.Exit(3)
		}
	},
}

func init() {
	rootCmd.AddCommand(printCmd)
	printCmd.Flags().StringP("output", "o", "", "write to a file rather than stdout")
}
