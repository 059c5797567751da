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

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/model"
	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups [flags] model_file",
	Short: "Report how a model's search groups divide its constraints.",
	Long: `Resolve a model file and evaluate the groups of its search configuration against
	each variable/constraint pair of the model.  Each pair is assigned to the first group
	selecting it, and pairs assigned to no group are listed separately.`,
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
			verbose  = GetFlag(cmd, "pairs")
		)
		//
		if len(res.Errors) > 0 {
			printDiagnostics(res.Errors, res.Warnings, cfg.MaxErrors)
			os.Exit(4)
		}
		//
		report, err := fzn.Groups(res)
		if err != nil {
			fmt.Println(err)
			os.Exit(4)
		}
		//
		for _, g := range report.Assignment.Groups() {
			printGroup(g, report.Members(g), verbose)
		}
		//
		printGroup("(remaining)", report.Remaining(), verbose)
		//
		if len(report.Diagnostics) > 0 {
			printDiagnostics(report.Diagnostics, nil, cfg.MaxErrors)
			os.Exit(4)
		}
	},
}

func printGroup(name string, pairs []*model.Pair, verbose bool) {
	fmt.Printf("%s: %d pair(s)\n", name, len(pairs))
	//
	if verbose && len(pairs) > 0 {
		strs := make([]string, len(pairs))
		//
		for i, p := range pairs {
			strs[i] = p.String()
		}
		//
		fmt.Printf("\t%s\n", strings.Join(strs, " "))
	}
}

func init() {
	rootCmd.AddCommand(groupsCmd)
	groupsCmd.Flags().BoolP("pairs", "p", false, "list the pairs assigned to each group")
}
