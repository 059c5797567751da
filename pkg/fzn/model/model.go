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
	"strings"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
	"github.com/chocoteam/choco-solver-sub000/pkg/util"
)

// Symbol is anything which an identifier can be resolved to, namely a
// parameter or a variable.
type Symbol interface {
	// Ident returns the declared name of this symbol.
	Ident() string
	// Type returns the declaration of this symbol.
	Type() Declaration
}

// Parameter is a named constant.
type Parameter struct {
	Name        string
	Declaration Declaration
	Value       Expression
}

// Ident implementation for Symbol interface.
func (p *Parameter) Ident() string {
	return p.Name
}

// Type implementation for Symbol interface.
func (p *Parameter) Type() Declaration {
	return p.Declaration
}

func (p *Parameter) String() string {
	return fmt.Sprintf("%s: %s = %s;", p.Declaration, p.Name, p.Value)
}

// Variable is a decision variable, or an array of decision variables.
type Variable struct {
	Name        string
	Declaration Declaration
	Annotations []*Annotation
	Init        util.Option[Expression]
}

// Ident implementation for Symbol interface.
func (p *Variable) Ident() string {
	return p.Name
}

// Type implementation for Symbol interface.
func (p *Variable) Type() Declaration {
	return p.Declaration
}

// Output checks whether this variable is annotated for output, either as a
// single variable or as an array.
func (p *Variable) Output() bool {
	for _, a := range p.Annotations {
		if a.Name == "output_var" || a.Name == "output_array" {
			return true
		}
	}
	//
	return false
}

func (p *Variable) String() string {
	var builder strings.Builder
	//
	builder.WriteString(VarType(p.Declaration))
	builder.WriteString(": ")
	builder.WriteString(p.Name)
	builder.WriteString(Annotations(p.Annotations))
	//
	if p.Init.HasValue() {
		builder.WriteString(" = ")
		builder.WriteString(p.Init.Unwrap().String())
	}
	//
	builder.WriteString(";")
	//
	return builder.String()
}

// VarType formats a declaration as the type of a decision variable.  For
// arrays, "var" qualifies the element type rather than the array.
func VarType(decl Declaration) string {
	if arr, ok := decl.(*Array); ok {
		return fmt.Sprintf("array [%s] of var %s", formatDims(arr.Dims), arr.Elem)
	}
	//
	return fmt.Sprintf("var %s", decl)
}

// Constraint is a call to a named constraint with zero or more arguments.
type Constraint struct {
	Name        string
	Args        []Expression
	Annotations []*Annotation
}

// Variables returns the distinct variables referenced by this constraint, in
// order of first reference.
func (p *Constraint) Variables() []*Variable {
	var (
		vars []*Variable
		seen = make(map[*Variable]bool)
	)
	//
	for _, arg := range p.Args {
		for _, s := range Symbols(arg) {
			if v, ok := s.(*Variable); ok && !seen[v] {
				seen[v] = true
				vars = append(vars, v)
			}
		}
	}
	//
	return vars
}

func (p *Constraint) String() string {
	return fmt.Sprintf("constraint %s(%s)%s;", p.Name, formatExprs(p.Args), Annotations(p.Annotations))
}

// GoalKind identifies the kind of solve goal.
type GoalKind uint8

const (
	// SATISFY looks for any solution.
	SATISFY GoalKind = iota
	// MINIMIZE looks for a solution minimising an objective.
	MINIMIZE
	// MAXIMIZE looks for a solution maximising an objective.
	MAXIMIZE
)

func (k GoalKind) String() string {
	switch k {
	case SATISFY:
		return "satisfy"
	case MINIMIZE:
		return "minimize"
	default:
		return "maximize"
	}
}

// SolveGoal is the final item of a model.
type SolveGoal struct {
	Kind GoalKind
	// Objective, which is present only for optimisation goals.
	Objective   util.Option[Expression]
	Annotations []*Annotation
}

func (p *SolveGoal) String() string {
	var builder strings.Builder
	//
	builder.WriteString("solve")
	builder.WriteString(Annotations(p.Annotations))
	builder.WriteString(" ")
	builder.WriteString(p.Kind.String())
	//
	if p.Objective.HasValue() {
		builder.WriteString(" ")
		builder.WriteString(p.Objective.Unwrap().String())
	}
	//
	builder.WriteString(";")
	//
	return builder.String()
}

// PredicateDecl declares the signature of a predicate supported by the solver.
type PredicateDecl struct {
	Name   string
	Params []PredParam
}

// PredParam is a parameter of a predicate declaration.
type PredParam struct {
	Name        string
	Declaration Declaration
	// Indicates a decision variable, rather than a parameter.
	Var bool
}

func (p PredParam) String() string {
	if p.Var {
		return fmt.Sprintf("%s: %s", VarType(p.Declaration), p.Name)
	}
	//
	return fmt.Sprintf("%s: %s", p.Declaration, p.Name)
}

func (p *PredicateDecl) String() string {
	params := make([]string, len(p.Params))
	//
	for i, param := range p.Params {
		params[i] = param.String()
	}
	//
	return fmt.Sprintf("predicate %s(%s);", p.Name, strings.Join(params, ","))
}

// Model is a fully resolved model, consisting of its items in the order they
// were declared.
type Model struct {
	Predicates  []*PredicateDecl
	Parameters  []*Parameter
	Variables   []*Variable
	Constraints []*Constraint
	// Optional search configuration
	Search util.Option[*search.Spec]
	Goal   *SolveGoal
}

// Outputs returns the variables of this model which are annotated for output.
func (p *Model) Outputs() []*Variable {
	var outputs []*Variable
	//
	for _, v := range p.Variables {
		if v.Output() {
			outputs = append(outputs, v)
		}
	}
	//
	return outputs
}
