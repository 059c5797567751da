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
)

// CheckInvalid checks that a given model file is rejected, and that exactly the
// errors (and warnings) listed in its header are reported.
func CheckInvalid(t *testing.T, test string) {
	CheckInvalidWith(t, test, fzn.DefaultConfig)
}

// CheckInvalidWith checks that a given model file is rejected under a given
// configuration.
func CheckInvalidWith(t *testing.T, test string, config fzn.Config) {
	var filename = fmt.Sprintf("%s/%s.%s", TestDir, test, Extension)
	// Enable testing each file in parallel
	t.Parallel()
	//
	srcfile := readSourceFile(t, filename)
	//
	expectedErrors, expectedWarnings, errs := ExtractExpected(srcfile)
	if len(errs) > 0 {
		t.Fatal(errors.Join(errs...))
	} else if len(expectedErrors) == 0 {
		t.Fatalf("Error %s lists no expected errors", filename)
	}
	//
	res := fzn.Check(srcfile, config)
	//
	if len(res.Errors) == 0 {
		t.Fatalf("Error %s should not have been accepted", filename)
	} else if res.Model != nil {
		t.Fatalf("Error %s produced a model despite errors", filename)
	}
	//
	checkDiagnostics(t, srcfile, "error", res.Errors, expectedErrors)
	checkDiagnostics(t, srcfile, "warning", res.Warnings, expectedWarnings)
}
