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

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] model_file(s)",
	Short: "Parse model files and print their syntax trees.",
	Long: `Parse one or more model files without resolving them, and print the syntax tree
	of each statement as an S-expression.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			cfg      = getConfig(cmd)
			srcfiles = readSourceFiles(args)
			failed   bool
		)
		//
		for i := range srcfiles {
			root, errs := parser.Parse(&srcfiles[i])
			//
			if len(errs) > 0 {
				printDiagnostics(diag.Syntax(errs...), nil, cfg.MaxErrors)
				failed = true
				//
				continue
			}
			//
			for _, item := range root.Children {
				fmt.Println(item.String())
			}
		}
		//
		if failed {
			os.Exit(4)
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
