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
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/model"
)

// Print formats a model as source text, one item per line, such that parsing
// and walking the result gives back an equivalent model.
func Print(m *model.Model) string {
	var builder strings.Builder
	// Writing to a builder never fails
	_ = Fprint(&builder, m)
	//
	return builder.String()
}

// Fprint writes a model as source text to a given writer.  Items are written in
// the order required of a model, regardless of the order in which they were
// added.
func Fprint(w io.Writer, m *model.Model) error {
	var items []fmt.Stringer
	//
	for _, p := range m.Predicates {
		items = append(items, p)
	}
	//
	for _, p := range m.Parameters {
		items = append(items, p)
	}
	//
	for _, v := range m.Variables {
		items = append(items, v)
	}
	//
	for _, c := range m.Constraints {
		items = append(items, c)
	}
	//
	if m.Search.HasValue() {
		items = append(items, m.Search.Unwrap())
	}
	//
	if m.Goal != nil {
		items = append(items, m.Goal)
	}
	//
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item.String()); err != nil {
			return err
		}
	}
	//
	return nil
}
