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
package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Expression is a value appearing in a parameter, variable, constraint or
// annotation.  Expressions are immutable once constructed by the walker.
type Expression interface {
	fmt.Stringer
	expression()
}

// IntLit is an integer literal.
type IntLit struct {
	Value int64
}

// FloatLit is a floating point literal.
type FloatLit struct {
	Value float64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	Value bool
}

// StringLit is a string literal.
type StringLit struct {
	Value string
}

// SetList is a set literal given by its elements.
type SetList struct {
	Values []int64
}

// SetRange is a set literal given by an inclusive range.
type SetRange struct {
	Lo, Hi int64
}

// ArrayLit is an array literal.
type ArrayLit struct {
	Elements []Expression
}

// Identifier is a reference to a parameter or variable, along with the symbol
// it was resolved to.
type Identifier struct {
	Name   string
	Target Symbol
}

// IdArrayElem is a reference to one element of an array parameter or variable,
// along with the symbol it was resolved to.
type IdArrayElem struct {
	Name   string
	Index  int64
	Target Symbol
}

// Annotation is a named annotation with zero or more arguments.  Annotations
// carry no meaning here, and are passed as is to the consumer of a model.
type Annotation struct {
	Name string
	Args []Expression
}

// Unresolved stands in for a reference which could not be resolved.  Models
// containing unresolved references are never handed to a consumer.
type Unresolved struct {
	Name string
}

func (*IntLit) expression()      {}
func (*FloatLit) expression()    {}
func (*BoolLit) expression()     {}
func (*StringLit) expression()   {}
func (*SetList) expression()     {}
func (*SetRange) expression()    {}
func (*ArrayLit) expression()    {}
func (*Identifier) expression()  {}
func (*IdArrayElem) expression() {}
func (*Annotation) expression()  {}
func (*Unresolved) expression()  {}

func (p *IntLit) String() string {
	return strconv.FormatInt(p.Value, 10)
}

func (p *FloatLit) String() string {
	return FormatFloat(p.Value)
}

func (p *BoolLit) String() string {
	return strconv.FormatBool(p.Value)
}

func (p *StringLit) String() string {
	return fmt.Sprintf("\"%s\"", p.Value)
}

func (p *SetList) String() string {
	return formatInts(p.Values)
}

func (p *SetRange) String() string {
	return fmt.Sprintf("%d..%d", p.Lo, p.Hi)
}

func (p *ArrayLit) String() string {
	return fmt.Sprintf("[%s]", formatExprs(p.Elements))
}

func (p *Identifier) String() string {
	return p.Name
}

func (p *IdArrayElem) String() string {
	return fmt.Sprintf("%s[%d]", p.Name, p.Index)
}

func (p *Annotation) String() string {
	if len(p.Args) == 0 {
		return p.Name
	}
	//
	return fmt.Sprintf("%s(%s)", p.Name, formatExprs(p.Args))
}

func (p *Unresolved) String() string {
	return p.Name
}

// Annotations formats a list of annotations as they appear after a
// declaration, or returns the empty string if there are none.
func Annotations(annotations []*Annotation) string {
	var builder strings.Builder
	//
	for _, a := range annotations {
		builder.WriteString(" :: ")
		builder.WriteString(a.String())
	}
	//
	return builder.String()
}

// Symbols returns every symbol referenced by a given expression, in order of
// reference (and including duplicates).
func Symbols(expr Expression) []Symbol {
	var symbols []Symbol
	//
	switch e := expr.(type) {
	case *Identifier:
		symbols = append(symbols, e.Target)
	case *IdArrayElem:
		symbols = append(symbols, e.Target)
	case *ArrayLit:
		for _, elem := range e.Elements {
			symbols = append(symbols, Symbols(elem)...)
		}
	case *Annotation:
		for _, arg := range e.Args {
			symbols = append(symbols, Symbols(arg)...)
		}
	}
	//
	return symbols
}

func formatExprs(exprs []Expression) string {
	strs := make([]string, len(exprs))
	//
	for i, e := range exprs {
		strs[i] = e.String()
	}
	//
	return strings.Join(strs, ",")
}
