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
package util

import (
	"errors"
	"fmt"
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/printer"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
	"github.com/google/go-cmp/cmp"
)

// CheckValid checks that a given model file is accepted with exactly the
// warnings listed in its header.  The resulting model must then survive being
// printed and parsed again, and its groups must partition its pairs.
func CheckValid(t *testing.T, test string) {
	var filename = fmt.Sprintf("%s/%s.%s", TestDir, test, Extension)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	//
	expectedErrors, expectedWarnings, errs := ExtractExpected(srcfile)
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	} else if len(expectedErrors) > 0 {
		t.Fatalf("Error %s is valid, but lists expected errors", filename)
	}
	//
	res := fzn.Check(srcfile, fzn.DefaultConfig)
	//
	checkDiagnostics(t, srcfile, "error", res.Errors, nil)
	checkDiagnostics(t, srcfile, "warning", res.Warnings, expectedWarnings)
	checkReprint(t, filename, res)
	checkPartition(t, filename, res)
}

// Check that printing a model and then parsing the output gives back the same
// model.
func checkReprint(t *testing.T, filename string, res fzn.Result) {
	text := printer.Print(res.Model)
	reprinted := fzn.Check(source.NewSourceFile(filename, []byte(text)), fzn.DefaultConfig)
	//
	if len(reprinted.Errors) > 0 {
		t.Fatalf("Error %s failed to reparse once printed: %s", filename, reprinted.Errors[0].Error())
	} else if diff := cmp.Diff(res.Model, reprinted.Model); diff != "" {
		t.Fatalf("Error %s changed once printed (-original +printed):\n%s", filename, diff)
	}
}

// Check that every pair is assigned to at most one group.
func checkPartition(t *testing.T, filename string, res fzn.Result) {
	report, err := fzn.Groups(res)
	if err != nil {
		t.Fatal(err)
	}
	//
	var (
		seen  = make([]bool, len(report.Pairs))
		count = 0
	)
	//
	for _, group := range report.Assignment.Groups() {
		for _, i := range report.Assignment.Members(group) {
			if seen[i] {
				t.Fatalf("Error %s assigns pair %d to more than one group", filename, i)
			}
			//
			seen[i] = true
			count++
		}
	}
	//
	if n := count + len(report.Assignment.Remaining()); n != len(report.Pairs) {
		t.Fatalf("Error %s partitions %d pairs, but has %d", filename, n, len(report.Pairs))
	}
}
