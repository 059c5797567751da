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
	"fmt"
	"os"
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// TestDir determines the (relative) location of the test directory.  That is
// where the model files (fzn) are found, split into those which are valid and
// those which are not.
const TestDir = "../../testdata/fzn"

// Extension of the model files.
const Extension = "fzn"

func readSourceFile(t *testing.T, filename string) *source.File {
	bytes, err := os.ReadFile(filename)
	//
	if err != nil {
		t.Fatal(err)
	}
	//
	return source.NewSourceFile(filename, bytes)
}

// Compare the diagnostics actually reported for a file against those expected,
// failing the test if they differ in number, order, position or message.
func checkDiagnostics(t *testing.T, srcfile *source.File, kind string, actual []diag.Error,
	expected []source.SyntaxError) {
	var (
		failed = false
		msg    = fmt.Sprintf("Error %s\n", srcfile.Filename())
	)
	//
	for i := 0; i < max(len(actual), len(expected)); i++ {
		if i < len(actual) && i < len(expected) {
			var (
				a = actual[i].SyntaxError
				e = expected[i]
			)
			//
			if a.Message() == e.Message() && a.Span() == e.Span() {
				continue
			}
		}
		//
		failed = true
		//
		if i < len(actual) {
			a := actual[i].SyntaxError
			msg = fmt.Sprintf("%s unexpected %s %s", msg, kind, errorToString(&a))
		}
		//
		if i < len(expected) {
			msg = fmt.Sprintf("%s   expected %s %s", msg, kind, errorToString(&expected[i]))
		}
	}
	//
	if failed {
		t.Fatal(msg)
	}
}

// Convert an error into the same form as its expected diagnostic attribute.
func errorToString(err *source.SyntaxError) string {
	var (
		span   = err.Span()
		line   = err.FirstEnclosingLine()
		offset = span.Start() - line.Start()
		// Don't overflow the line
		length = min(line.Length()-offset, span.Length())
	)
	//
	return fmt.Sprintf("%s:%d:%d-%d %s\n", err.SourceFile().Filename(), line.Number(), 1+offset,
		1+offset+length, err.Message())
}
