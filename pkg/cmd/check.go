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
	"os"
	"os/signal"
	"time"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] model_file(s)",
	Short: "Check one or more model files for errors.",
	Long: `Check one or more model files for syntax and semantic errors, such as unknown
	identifiers or malformed search structures.  With --watch, the files are checked
	again whenever they change.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		//
		var (
			cfg     = getConfig(cmd)
			metrics = NewMetrics()
			ok      = checkFiles(args, cfg, metrics)
		)
		//
		writeMetrics(cfg, metrics)
		//
		if GetFlag(cmd, "watch") {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			//
			err := watchFiles(ctx, args, watchDebounce, func() {
				checkFiles(args, cfg, metrics)
				writeMetrics(cfg, metrics)
			})
			//
			if err != nil {
				fmt.Println(err)
				os.Exit(3)
			}
		} else if !ok {
			os.Exit(4)
		}
	},
}

// Check a set of files, reporting any errors found.  This returns true if no
// errors were found.
func checkFiles(filenames []string, cfg *Config, metrics *Metrics) bool {
	var (
		srcfiles = readSourceFiles(filenames)
		ok       = true
	)
	//
	for i := range srcfiles {
		if !checkFile(&srcfiles[i], cfg, metrics) {
			ok = false
		}
	}
	//
	return ok
}

func checkFile(srcfile *source.File, cfg *Config, metrics *Metrics) bool {
	var (
		start   = time.Now()
		res     = fzn.Check(srcfile, cfg.Checker())
		elapsed = time.Since(start)
	)
	//
	metrics.Observe(res, elapsed)
	printDiagnostics(res.Errors, res.Warnings, cfg.MaxErrors)
	//
	log.Debugf("checked %s in %s", srcfile.Filename(), elapsed)
	fmt.Printf("%s: %d error(s), %d warning(s)\n", srcfile.Filename(), len(res.Errors), len(res.Warnings))
	//
	return len(res.Errors) == 0
}

func writeMetrics(cfg *Config, metrics *Metrics) {
	if cfg.Metrics == "" {
		return
	}
	//
	if err := metrics.WriteFile(cfg.Metrics); err != nil {
		log.Errorf("writing metrics: %s", err)
	}
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolP("watch", "w", false, "check again whenever a file changes")
	checkCmd.Flags().String("metrics", "", "write metrics in the Prometheus text format to a file")
}
