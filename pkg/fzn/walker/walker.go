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
package walker

import (
	"fmt"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/model"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/symbol"
	"github.com/chocoteam/choco-solver-sub000/pkg/util"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// Config determines optional behaviour of the walker.
type Config struct {
	// Suggest similarly named declarations for unresolved names.
	Hints bool
}

// DefaultConfig is used by Walk.
var DefaultConfig = Config{Hints: true}

// Result holds everything reported whilst walking a syntax tree, other than the
// model itself.
type Result struct {
	// Diagnostics in the order they were found, including warnings.
	Diagnostics []diag.Error
	// Maps every item of the model back to its span in the source file.
	SourceMap *source.Map[any]
}

// Errors returns the diagnostics of this result which are not warnings.
func (p Result) Errors() []diag.Error {
	return diag.Errors(p.Diagnostics)
}

// Warnings returns the diagnostics of this result which are warnings.
func (p Result) Warnings() []diag.Error {
	return diag.Warnings(p.Diagnostics)
}

// Walk translates the syntax tree of a model into a resolved model, using the
// default configuration.  See WalkWith.
func Walk(srcfile *source.File, root *ast.Node) (*model.Model, Result) {
	return WalkWith(srcfile, root, DefaultConfig)
}

// WalkWith translates the syntax tree of a model into a resolved model.  Items
// are visited in a fixed order (predicates, parameters, variables, constraints,
// search configuration and, finally, the solve goal) such that every name must
// be declared before it is used.  Errors do not stop the walk: an unresolved
// name is replaced by a placeholder, and a duplicate declaration is dropped in
// favour of the first.  Hence, a model is always returned, but it should not be
// used when errors were reported.
func WalkWith(srcfile *source.File, root *ast.Node, config Config) (*model.Model, Result) {
	if root.Kind != ast.MODEL {
		panic(fmt.Sprintf("expected model, found %s", root.Kind))
	}
	//
	w := &walker{
		config:     config,
		srcfile:    srcfile,
		srcmap:     source.NewSourceMap[any](srcfile),
		symbols:    symbol.NewTable[model.Symbol](),
		predicates: symbol.NewTable[*model.PredicateDecl](),
		groups:     symbol.NewTable[*search.Group](),
	}
	//
	m := &model.Model{Search: util.None[*search.Spec]()}
	//
	for _, item := range root.Children {
		switch item.Kind {
		case ast.PRED_DECL:
			if decl := w.walkPredicateDecl(item); decl != nil {
				m.Predicates = append(m.Predicates, decl)
			}
		case ast.PAR_DECL:
			if param := w.walkParamDecl(item); param != nil {
				m.Parameters = append(m.Parameters, param)
			}
		case ast.VAR_DECL:
			if v := w.walkVarDecl(item); v != nil {
				m.Variables = append(m.Variables, v)
			}
		case ast.CONSTRAINT:
			m.Constraints = append(m.Constraints, w.walkConstraint(item))
		case ast.ENGINE:
			m.Search = util.Some(w.walkEngine(item))
		case ast.SOLVE:
			m.Goal = w.walkSolveGoal(item)
		default:
			panic(fmt.Sprintf("unexpected item %s", item.Kind))
		}
	}
	//
	return m, Result{w.diagnostics, w.srcmap}
}

type walker struct {
	config      Config
	srcfile     *source.File
	srcmap      *source.Map[any]
	symbols     *symbol.Table[model.Symbol]
	predicates  *symbol.Table[*model.PredicateDecl]
	groups      *symbol.Table[*search.Group]
	diagnostics []diag.Error
}

// ============================================================================
// Items
// ============================================================================

func (w *walker) walkPredicateDecl(node *ast.Node) *model.PredicateDecl {
	var params = make([]model.PredParam, len(node.Children))
	//
	for i, child := range node.Children {
		params[i] = model.PredParam{
			Name:        child.Name(),
			Declaration: w.walkType(child.Child(0)),
			Var:         child.Kind == ast.PRED_VAR_PARAM,
		}
	}
	//
	decl := &model.PredicateDecl{Name: node.Name(), Params: params}
	//
	if !w.declare(w.predicates.Declare(node.Name(), decl), node) {
		return nil
	}
	//
	w.srcmap.Put(decl, node.Span)
	//
	return decl
}

func (w *walker) walkParamDecl(node *ast.Node) *model.Parameter {
	var (
		decl  = w.walkType(node.Child(0))
		value = w.walkExpr(node.Child(1), false)
	)
	//
	w.checkArrayLiteral(decl, value, node.Child(1))
	//
	param := &model.Parameter{Name: node.Name(), Declaration: decl, Value: value}
	//
	if !w.declare(w.symbols.Declare(param.Name, param), node) {
		return nil
	}
	//
	w.srcmap.Put(param, node.Span)
	//
	return param
}

// VAR_DECL [type, annotations, init?]
func (w *walker) walkVarDecl(node *ast.Node) *model.Variable {
	v := &model.Variable{
		Name:        node.Name(),
		Declaration: w.walkType(node.Child(0)),
		Annotations: w.walkAnnotations(node.Child(1)),
		Init:        util.None[model.Expression](),
	}
	//
	if len(node.Children) > 2 {
		init := w.walkExpr(node.Child(2), false)
		w.checkArrayLiteral(v.Declaration, init, node.Child(2))
		v.Init = util.Some(init)
	}
	//
	if !w.declare(w.symbols.Declare(v.Name, v), node) {
		return nil
	}
	//
	w.srcmap.Put(v, node.Span)
	//
	return v
}

// CONSTRAINT [args, annotations]
func (w *walker) walkConstraint(node *ast.Node) *model.Constraint {
	var (
		argNodes = node.Child(0).Children
		args     = make([]model.Expression, len(argNodes))
	)
	//
	for i, arg := range argNodes {
		args[i] = w.walkExpr(arg, false)
	}
	//
	c := &model.Constraint{Name: node.Name(), Args: args, Annotations: w.walkAnnotations(node.Child(1))}
	w.srcmap.Put(c, node.Span)
	//
	return c
}

// SOLVE [annotations, goal]
func (w *walker) walkSolveGoal(node *ast.Node) *model.SolveGoal {
	var (
		goal      = node.Child(1)
		objective = util.None[model.Expression]()
		kind      model.GoalKind
	)
	//
	switch goal.Kind {
	case ast.SATISFY:
		kind = model.SATISFY
	case ast.MINIMIZE:
		kind = model.MINIMIZE
	case ast.MAXIMIZE:
		kind = model.MAXIMIZE
	default:
		panic(fmt.Sprintf("unknown goal %s", goal.Kind))
	}
	//
	if len(goal.Children) > 0 {
		objective = util.Some(w.walkExpr(goal.Child(0), false))
	}
	//
	s := &model.SolveGoal{Kind: kind, Objective: objective, Annotations: w.walkAnnotations(node.Child(0))}
	w.srcmap.Put(s, node.Span)
	//
	return s
}

// ============================================================================
// Diagnostics
// ============================================================================

// Report a duplicate declaration, if the given error from a symbol table
// indicates one.  Returns true if the declaration succeeded.
func (w *walker) declare(err error, node *ast.Node) bool {
	if err == nil {
		return true
	}
	//
	w.report(diag.DUPLICATE_DECLARATION, node.Span, err.Error())
	//
	return false
}

func (w *walker) report(kind diag.Kind, span source.Span, msg string) {
	w.diagnostics = append(w.diagnostics, diag.At(kind, w.srcfile, span, msg))
}

// Report an unresolved name, along with the closest match amongst a set of
// declared names when hints are enabled.
func (w *walker) unresolved(kind diag.Kind, span source.Span, msg string, name string, candidates []string) {
	err := diag.At(kind, w.srcfile, span, msg)
	//
	if w.config.Hints {
		if s := suggest(name, candidates); s.HasValue() {
			err = err.WithHint(fmt.Sprintf("did you mean %s?", s.Unwrap()))
		}
	}
	//
	w.diagnostics = append(w.diagnostics, err)
}
