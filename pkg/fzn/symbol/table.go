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
package symbol

import (
	"fmt"
	"slices"

	"github.com/chocoteam/choco-solver-sub000/pkg/util"
)

// DuplicateError is returned when attempting to declare a name which has
// already been declared.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate declaration of %s", e.Name)
}

// Table maps declared names to the values they were declared with.  A table
// has a single writer, and names can be neither redeclared nor removed.
type Table[T any] struct {
	values map[string]T
	// Declared names in the order of declaration
	names []string
}

// NewTable constructs an empty symbol table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{make(map[string]T), nil}
}

// Declare a new name with a given value.  If the name was already declared,
// then the original value is retained and an error is returned.
func (p *Table[T]) Declare(name string, value T) error {
	if _, ok := p.values[name]; ok {
		return &DuplicateError{name}
	}
	//
	p.values[name] = value
	p.names = append(p.names, name)
	//
	return nil
}

// Resolve a given name to the value it was declared with (if any).
func (p *Table[T]) Resolve(name string) util.Option[T] {
	if v, ok := p.values[name]; ok {
		return util.Some(v)
	}
	//
	return util.None[T]()
}

// Has checks whether a given name has been declared.
func (p *Table[T]) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Names returns a copy of the declared names in declaration order.
func (p *Table[T]) Names() []string {
	return slices.Clone(p.names)
}

// Len returns the number of declared names.
func (p *Table[T]) Len() int {
	return len(p.names)
}
