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
package diag

import (
	"fmt"

	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// Kind classifies a diagnostic.
type Kind uint8

// SYNTAX signals an unexpected or missing token.
const SYNTAX Kind = 0

// DUPLICATE_DECLARATION signals a name declared more than once.
const DUPLICATE_DECLARATION Kind = 1

// UNRESOLVED_IDENTIFIER signals a name which was never declared (or not
// declared before being used).
const UNRESOLVED_IDENTIFIER Kind = 2

// UNRESOLVED_GROUP_REFERENCE signals a group name which was never declared (or
// not declared before being used).
const UNRESOLVED_GROUP_REFERENCE Kind = 3

// SHAPE_VIOLATION signals an expression or structure whose shape does not fit
// the context in which it is used.
const SHAPE_VIOLATION Kind = 4

// SINGLE_ELEMENT_COLLECTION is a warning about a collection holding exactly
// one element.
const SINGLE_ELEMENT_COLLECTION Kind = 5

// EMPTY_GROUP signals a group which selected nothing when partitioning.
const EMPTY_GROUP Kind = 6

func (k Kind) String() string {
	switch k {
	case SYNTAX:
		return "syntax error"
	case DUPLICATE_DECLARATION:
		return "duplicate declaration"
	case UNRESOLVED_IDENTIFIER:
		return "unresolved identifier"
	case UNRESOLVED_GROUP_REFERENCE:
		return "unresolved group reference"
	case SHAPE_VIOLATION:
		return "shape violation"
	case SINGLE_ELEMENT_COLLECTION:
		return "single element collection"
	case EMPTY_GROUP:
		return "empty group"
	}
	//
	return "unknown"
}

// IsWarning determines whether diagnostics of this kind are warnings, rather
// than errors.
func (k Kind) IsWarning() bool {
	return k == SINGLE_ELEMENT_COLLECTION
}

// Error is a positioned diagnostic of a given kind.
type Error struct {
	source.SyntaxError
	kind Kind
	// Suggested fix, or empty if none.
	hint string
}

// New constructs a diagnostic of a given kind from a syntax error.
func New(kind Kind, err source.SyntaxError) Error {
	return Error{err, kind, ""}
}

// Syntax wraps zero or more syntax errors as diagnostics.
func Syntax(errs ...source.SyntaxError) []Error {
	diags := make([]Error, len(errs))
	//
	for i, e := range errs {
		diags[i] = New(SYNTAX, e)
	}
	//
	return diags
}

// At constructs a diagnostic of a given kind at a given span of a file.
func At(kind Kind, srcfile *source.File, span source.Span, msg string) Error {
	return New(kind, *srcfile.SyntaxError(span, msg))
}

// Kind returns the kind of this diagnostic.
func (e Error) Kind() Kind {
	return e.kind
}

// Hint returns the suggested fix for this diagnostic, or empty if none.
func (e Error) Hint() string {
	return e.hint
}

// WithHint returns a copy of this diagnostic carrying a suggested fix.
func (e Error) WithHint(hint string) Error {
	e.hint = hint
	return e
}

func (e Error) Error() string {
	if e.hint != "" {
		return fmt.Sprintf("%s (%s)", e.SyntaxError.Error(), e.hint)
	}
	//
	return e.SyntaxError.Error()
}

// Errors filters out warnings from a set of diagnostics.
func Errors(diags []Error) []Error {
	var errs []Error
	//
	for _, d := range diags {
		if !d.kind.IsWarning() {
			errs = append(errs, d)
		}
	}
	//
	return errs
}

// Warnings filters out errors from a set of diagnostics.
func Warnings(diags []Error) []Error {
	var warns []Error
	//
	for _, d := range diags {
		if d.kind.IsWarning() {
			warns = append(warns, d)
		}
	}
	//
	return warns
}

// Count returns the number of diagnostics of each kind.
func Count(diags []Error) map[Kind]int {
	counts := make(map[Kind]int)
	//
	for _, d := range diags {
		counts[d.kind]++
	}
	//
	return counts
}
