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
	"strconv"
	"strings"

	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// Expected describes a diagnostic which a test file is expected to produce.
// These are written in the header of the file as comments of the form
// "%error:LINE:START-END:msg" or "%warning:LINE:START-END:msg", where columns
// are numbered from 1 and END is exclusive.
type Expected struct {
	Warning bool
	Error   source.SyntaxError
}

// ExtractExpected extracts the expected errors and warnings from the header of
// a test file.
func ExtractExpected(srcfile *source.File) (errors []source.SyntaxError, warnings []source.SyntaxError,
	errs []error) {
	items, errs := ExtractAttributes(srcfile, expectedDiagnostic)
	//
	for _, item := range items {
		if item.Warning {
			warnings = append(warnings, item.Error)
		} else {
			errors = append(errors, item.Error)
		}
	}
	//
	return errors, warnings, errs
}

// Extract the expected diagnostic on a given line of the source file, if there
// is one.
func expectedDiagnostic(lineno int, lines []source.Line, srcfile *source.File) (bool, Expected, error) {
	var (
		line     = lines[lineno]
		contents = line.String()
		warning  = strings.HasPrefix(contents, "%warning:")
	)
	//
	if !warning && !strings.HasPrefix(contents, "%error:") {
		return false, Expected{}, nil
	}
	//
	number, start, end, msg, err := parseExpectedLine(contents)
	if err != nil {
		return true, Expected{}, err
	}
	//
	span, err := determineFileSpan(number, start, end, lines)
	if err != nil {
		return true, Expected{}, err
	}
	//
	return true, Expected{warning, *srcfile.SyntaxError(span, msg)}, nil
}

func parseExpectedLine(contents string) (line, start, end int, msg string, err error) {
	var splits = strings.Split(strings.TrimRight(contents, "\r"), ":")
	//
	if len(splits) < 4 {
		return 0, 0, 0, "", fmt.Errorf("malformed expected diagnostic \"%s\", should be e.g. \"%%error:X:Y-Z:msg\"",
			contents)
	}
	//
	if line, err = strconv.Atoi(splits[1]); err != nil {
		return 0, 0, 0, "", fmt.Errorf("invalid line \"%s\" (%s)", splits[1], err.Error())
	} else if line == 0 {
		return 0, 0, 0, "", fmt.Errorf("invalid line \"%s\" (lines numbered from 1)", splits[1])
	}
	//
	if start, end, err = parseExpectedSpan(splits[2]); err != nil {
		return 0, 0, 0, "", err
	}
	// Messages may themselves contain colons
	msg = strings.Join(splits[3:], ":")
	//
	return line, start, end, msg, nil
}

func parseExpectedSpan(text string) (start, end int, err error) {
	var splits = strings.Split(text, "-")
	//
	if len(splits) != 2 {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (malformed, should be X-Y)", text)
	}
	//
	if start, err = strconv.Atoi(splits[0]); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", text, err.Error())
	} else if start == 0 {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (columns numbered from 1)", text)
	}
	//
	if end, err = strconv.Atoi(splits[1]); err != nil {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (%s)", text, err.Error())
	} else if end < start {
		return 0, 0, fmt.Errorf("invalid span \"%s\" (ends before it starts)", text)
	}
	//
	return start, end, nil
}

// Determine the file span corresponding to a column range on a given line.
func determineFileSpan(lineno, start, end int, lines []source.Line) (source.Span, error) {
	if lineno > len(lines) {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (non-existent line)", lineno, start, end)
	}
	//
	line := lines[lineno-1]
	// Columns are numbered from 1
	start--
	end--
	//
	if start >= line.Length() || end > line.Length() {
		return source.Span{}, fmt.Errorf("invalid span \"%d:%d-%d\" (overflows line)", lineno, start+1, end+1)
	}
	//
	return source.NewSpan(line.Start()+start, line.Start()+end), nil
}
