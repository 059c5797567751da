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
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/model"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/parser"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
	"github.com/chocoteam/choco-solver-sub000/pkg/util"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/assert"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// ============================================================================
// Declarations
// ============================================================================

func TestWalker_00(t *testing.T) {
	m, res := checkWalk(t, "var 1..10: x;\nsolve satisfy;")
	//
	assert.Len(t, 1, m.Variables)
	assert.Equal(t, &model.Variable{
		Name:        "x",
		Declaration: &model.IntRange{Lo: 1, Hi: 10},
		Init:        util.None[model.Expression](),
	}, m.Variables[0])
	assert.Equal(t, "var 1..10: x", res.SourceMap.Source().Text(res.SourceMap.Get(m.Variables[0])))
}

func TestWalker_01(t *testing.T) {
	m, _ := checkWalk(t, "var int: x;\nconstraint int_eq(x, 5);\nsolve satisfy;")
	//
	assert.Len(t, 1, m.Constraints)
	assert.Equal(t, &model.Constraint{
		Name: "int_eq",
		Args: []model.Expression{&model.Identifier{Name: "x", Target: m.Variables[0]}, &model.IntLit{Value: 5}},
	}, m.Constraints[0])
}

func TestWalker_02(t *testing.T) {
	m, _ := checkWalk(t, "array [1..2] of int: a = [1, 2];\nset of int: s = {};\n"+
		"array [1..2] of var 0..1: xs :: output_array([1..2]) = [0, 1];\nsolve satisfy;")
	//
	assert.Equal(t, &model.Parameter{
		Name:        "a",
		Declaration: &model.Array{Dims: []model.IndexDomain{model.Range(1, 2)}, Elem: &model.Int{}},
		Value:       &model.ArrayLit{Elements: []model.Expression{&model.IntLit{Value: 1}, &model.IntLit{Value: 2}}},
	}, m.Parameters[0])
	assert.Equal(t, &model.Set{Elem: &model.Int{}}, m.Parameters[1].Declaration)
	assert.Equal(t, "array [1..2] of var 0..1: xs :: output_array([1..2]) = [0,1];", m.Variables[0].String())
	assert.True(t, m.Variables[0].Output())
}

func TestWalker_03(t *testing.T) {
	m, _ := checkWalk(t, "predicate p(array [int] of var int: xs, int: n, var {1,3}: y);\nsolve satisfy;")
	//
	assert.Equal(t, &model.PredicateDecl{
		Name: "p",
		Params: []model.PredParam{
			{Name: "xs", Declaration: &model.Array{Dims: []model.IndexDomain{model.Unbounded()}, Elem: &model.Int{}},
				Var: true},
			{Name: "n", Declaration: &model.Int{}},
			{Name: "y", Declaration: &model.IntSet{Values: []int64{1, 3}}, Var: true},
		},
	}, m.Predicates[0])
}

func TestWalker_04(t *testing.T) {
	m, _ := checkWalk(t, "var int: x;\nsolve :: int_search([x], input_order, indomain_min, complete) minimize x;")
	//
	x := &model.Identifier{Name: "x", Target: m.Variables[0]}
	//
	assert.Equal(t, &model.SolveGoal{
		Kind:      model.MINIMIZE,
		Objective: util.Some[model.Expression](x),
		Annotations: []*model.Annotation{{Name: "int_search", Args: []model.Expression{
			&model.ArrayLit{Elements: []model.Expression{x}},
			&model.Annotation{Name: "input_order"},
			&model.Annotation{Name: "indomain_min"},
			&model.Annotation{Name: "complete"},
		}}},
	}, m.Goal)
}

// ============================================================================
// Resolution
// ============================================================================

func TestWalker_Unresolved_00(t *testing.T) {
	m, res := walk(t, "constraint int_eq(y, 5);\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, diag.UNRESOLVED_IDENTIFIER, errs[0].Kind())
	assert.Equal(t, "unknown identifier y", errs[0].Message())
	assert.Equal(t, "", errs[0].Hint())
	assert.Equal(t, "y", res.SourceMap.Source().Text(errs[0].Span()))
	assert.Equal(t, &model.Unresolved{Name: "y"}, m.Constraints[0].Args[0])
	// Walk continues after the error
	assert.Equal(t, model.SATISFY, m.Goal.Kind)
}

func TestWalker_Unresolved_01(t *testing.T) {
	// Names must be declared before use
	_, res := walk(t, "var int: x = y;\nvar int: y;\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, "unknown identifier y", errs[0].Message())
}

func TestWalker_Unresolved_02(t *testing.T) {
	_, res := walk(t, "var int: count;\nconstraint c(cuont);\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, "did you mean count?", errs[0].Hint())
}

func TestWalker_Unresolved_03(t *testing.T) {
	_, res := walk(t, "array [1..2] of var int: xs;\nconstraint c(x);\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, "did you mean xs?", errs[0].Hint())
}

func TestWalker_Unresolved_04(t *testing.T) {
	srcfile := source.NewSourceFile("test.fzn", []byte("var int: count;\nconstraint c(cuont);\nsolve satisfy;"))
	root, _ := parser.Parse(srcfile)
	_, res := WalkWith(srcfile, root, Config{Hints: false})
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, "", errs[0].Hint())
}

func TestWalker_Unresolved_05(t *testing.T) {
	m, res := walk(t, "var int: x;\nconstraint c(x[1]);\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, diag.SHAPE_VIOLATION, errs[0].Kind())
	assert.Equal(t, "x is not an array", errs[0].Message())
	assert.Equal(t, &model.IdArrayElem{Name: "x", Index: 1, Target: m.Variables[0]}, m.Constraints[0].Args[0])
}

func TestWalker_Duplicate_00(t *testing.T) {
	m, res := walk(t, "var bool: x;\nvar int: x;\nconstraint c(x);\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, diag.DUPLICATE_DECLARATION, errs[0].Kind())
	assert.Equal(t, "duplicate declaration of x", errs[0].Message())
	assert.Equal(t, "var int: x", res.SourceMap.Source().Text(errs[0].Span()))
	// First declaration wins
	assert.Len(t, 1, m.Variables)
	assert.Equal(t, &model.Bool{}, m.Variables[0].Declaration)
	assert.True(t, m.Constraints[0].Args[0].(*model.Identifier).Target == m.Variables[0])
}

func TestWalker_Duplicate_01(t *testing.T) {
	// Parameters and variables share one namespace
	m, res := walk(t, "int: n = 1;\nvar int: n;\nsolve satisfy;")
	//
	assert.Len(t, 1, res.Errors())
	assert.Len(t, 1, m.Parameters)
	assert.Len(t, 0, m.Variables)
}

func TestWalker_Duplicate_02(t *testing.T) {
	_, res := walk(t, "predicate p(int: x);\npredicate p(var int: x);\nsolve satisfy;")
	//
	assert.Len(t, 1, res.Errors())
}

func TestWalker_Idempotent(t *testing.T) {
	m, _ := checkWalk(t, "var int: x;\nconstraint a(x);\nconstraint b(x, x);\nsolve minimize x;")
	//
	var (
		a = m.Constraints[0].Args[0].(*model.Identifier)
		b = m.Constraints[1].Args[1].(*model.Identifier)
		o = m.Goal.Objective.Unwrap().(*model.Identifier)
	)
	//
	assert.True(t, a.Target == b.Target)
	assert.True(t, a.Target == o.Target)
	assert.Len(t, 1, m.Constraints[1].Variables())
}

func TestWalker_Pure(t *testing.T) {
	var (
		text    = "var int: x;\nconstraint c(x, y);\nG1: vcard > 0;\nqueue(one(G1, G2));\nsolve satisfy;"
		srcfile = source.NewSourceFile("test.fzn", []byte(text))
	)
	//
	root, errs := parser.Parse(srcfile)
	assert.Len(t, 0, errs)
	//
	before := root.String()
	m1, r1 := Walk(srcfile, root)
	m2, r2 := Walk(srcfile, root)
	// The tree is left unchanged, and walking it again gives the same outcome
	assert.Equal(t, before, root.String())
	assert.Equal(t, m1.Constraints[0].String(), m2.Constraints[0].String())
	assert.Equal(t, m1.Search.Unwrap().String(), m2.Search.Unwrap().String())
	assert.Equal(t, len(r1.Diagnostics), len(r2.Diagnostics))
	assert.Len(t, 2, r1.Errors())
}

// ============================================================================
// Shapes
// ============================================================================

func TestWalker_Shape_00(t *testing.T) {
	checkErrors(t, "array [1..3] of int: a = [1, 2];\nsolve satisfy;", diag.SHAPE_VIOLATION,
		"array literal has 2 elements, expected 3")
}

func TestWalker_Shape_01(t *testing.T) {
	checkErrors(t, "array [1..2] of int: a = [1, 2];\nconstraint c(a[3]);\nsolve satisfy;", diag.SHAPE_VIOLATION,
		"index 3 out of bounds for a")
}

func TestWalker_Shape_02(t *testing.T) {
	checkErrors(t, "array [1..2] of var int: xs = [1];\nsolve satisfy;", diag.SHAPE_VIOLATION,
		"array literal has 1 elements, expected 2")
}

func TestWalker_Shape_03(t *testing.T) {
	checkErrors(t, "G1: true;\nG2: true;\nmin heap(one(G1 key vcard, G2));\nsolve satisfy;", diag.SHAPE_VIOLATION,
		"heap element requires a key")
}

func TestWalker_Shape_04(t *testing.T) {
	checkErrors(t, "G1: true;\nG2: true;\nlist(for(G1 key vcard, G2));\nsolve satisfy;", diag.SHAPE_VIOLATION,
		"list elements must all have keys or none")
}

func TestWalker_Shape_05(t *testing.T) {
	checkErrors(t, "G1: true;\nG1 as queue(one(each vname as list(for(carity as queue(one)))));\nsolve satisfy;",
		diag.SHAPE_VIOLATION, "each requires a dynamic attribute, found var.name")
}

func TestWalker_Shape_06(t *testing.T) {
	// Nested combined structures count as keyed
	checkWalk(t, "G1: true;\nG2: true;\nmax heap(one(G1 key carity, list(for(G2, G1)) key min.vcard));\n"+
		"solve satisfy;")
}

// ============================================================================
// Search
// ============================================================================

func TestWalker_Search_00(t *testing.T) {
	m, res := walk(t, "G1: vcard > 0;\nqueue(one(G1));\nsolve satisfy;")
	spec := m.Search.Unwrap()
	//
	assert.Len(t, 0, res.Errors())
	assert.Equal(t, []*search.Group{
		{Name: "G1", Predicate: &search.Compare{Attribute: search.VCARD, Op: search.GT, Value: 0}},
	}, spec.Groups)
	assert.Equal(t, &search.Plain{
		Elements:   []search.Element{&search.GroupRef{Name: "G1", Key: util.None[search.Attribute]()}},
		Collection: search.Queue(search.ONE),
	}, spec.Structure)
	// One element in a queue is permitted, but pointless
	warns := res.Warnings()
	assert.Len(t, 1, warns)
	assert.Equal(t, diag.SINGLE_ELEMENT_COLLECTION, warns[0].Kind())
}

func TestWalker_Search_01(t *testing.T) {
	m, _ := checkWalk(t, "G1: (vcard > 1 && (carity < 3 || !true));\nG2: in(G1);\n"+
		"list(for(G1 key vcard, G2 key carity)) key max.vcard;\nsolve satisfy;")
	spec := m.Search.Unwrap()
	//
	assert.Equal(t, &search.And{Operands: []search.Predicate{
		&search.Compare{Attribute: search.VCARD, Op: search.GT, Value: 1},
		&search.Or{Operands: []search.Predicate{
			&search.Compare{Attribute: search.CARITY, Op: search.LT, Value: 3},
			&search.Not{Operand: &search.True{}},
		}},
	}}, spec.Groups[0].Predicate)
	assert.Equal(t, &search.Member{Groups: []string{"G1"}}, spec.Groups[1].Predicate)
	assert.Equal(t, &search.Chain{Ops: []search.ReduceOp{search.MAX}, Attribute: util.Some(search.VCARD)},
		spec.Structure.(*search.Combined).Combinator)
}

func TestWalker_Search_02(t *testing.T) {
	m, _ := checkWalk(t, "G1: true;\nG1 as queue(one(vcard as list(for))) key sum;\nsolve satisfy;")
	//
	assert.Equal(t, &search.Registered{
		Group: "G1",
		Spec: &search.Many{
			Attribute:  search.VCARD,
			Collection: search.List(false, search.FOR),
			Combinator: util.None[search.CombAttr](),
		},
		Collection: search.Queue(search.ONE),
		Combinator: util.Some[search.CombAttr](&search.Chain{
			Ops:       []search.ReduceOp{search.SUM},
			Attribute: util.None[search.Attribute](),
		}),
	}, m.Search.Unwrap().Structure)
}

func TestWalker_Search_03(t *testing.T) {
	m, _ := checkWalk(t, "G1: true;\nG1 as queue(one(each vcard as rev list(for(pprioDyn as max heap(one)))));\n"+
		"solve satisfy;")
	reg := m.Search.Unwrap().Structure.(*search.Registered)
	//
	assert.Equal(t, search.List(true, search.FOR), reg.Spec.Collection)
	assert.Equal(t, search.PPRIOD, reg.Spec.Nested.Attribute)
	assert.Equal(t, search.Heap(true, search.ONE), reg.Spec.Nested.Collection)
}

func TestWalker_Groups_00(t *testing.T) {
	_, res := walk(t, "G1: in(G2);\nqueue(one(G1, G3));\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 2, errs)
	assert.Equal(t, diag.UNRESOLVED_GROUP_REFERENCE, errs[0].Kind())
	assert.Equal(t, "unknown group G2", errs[0].Message())
	assert.Equal(t, "", errs[0].Hint())
	assert.Equal(t, "unknown group G3", errs[1].Message())
	assert.Equal(t, "did you mean G1?", errs[1].Hint())
}

func TestWalker_Groups_01(t *testing.T) {
	// A group cannot refer to itself
	checkErrors(t, "G1: in(G1);\nqueue(one(G1, G1));\nsolve satisfy;", diag.UNRESOLVED_GROUP_REFERENCE,
		"unknown group G1")
}

func TestWalker_Groups_02(t *testing.T) {
	m, res := walk(t, "G1: true;\nG1: vcard > 2;\nqueue(one(G1, G1));\nsolve satisfy;")
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, "duplicate declaration of G1", errs[0].Message())
	assert.Len(t, 1, m.Search.Unwrap().Groups)
	assert.Equal(t, &search.True{}, m.Search.Unwrap().Groups[0].Predicate)
}

func TestWalker_Groups_03(t *testing.T) {
	checkErrors(t, "G1: true;\nG2 as queue(one(vcard as list(for)));\nsolve satisfy;",
		diag.UNRESOLVED_GROUP_REFERENCE, "unknown group G2")
}

// ============================================================================
// Helpers
// ============================================================================

func walk(t *testing.T, text string) (*model.Model, Result) {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test.fzn", []byte(text))
	root, errs := parser.Parse(srcfile)
	//
	if len(errs) > 0 {
		t.Fatalf("unexpected syntax error: %s", errs[0].Message())
	}
	//
	return Walk(srcfile, root)
}

// Walk a model which is expected to have no errors.
func checkWalk(t *testing.T, text string) (*model.Model, Result) {
	t.Helper()
	//
	m, res := walk(t, text)
	//
	for _, err := range res.Errors() {
		t.Errorf("unexpected error: %s", err.Error())
	}
	//
	return m, res
}

// Walk a model which is expected to have exactly one error.
func checkErrors(t *testing.T, text string, kind diag.Kind, msg string) {
	t.Helper()
	//
	_, res := walk(t, text)
	errs := res.Errors()
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, kind, errs[0].Kind())
	assert.Equal(t, msg, errs[0].Message())
}
