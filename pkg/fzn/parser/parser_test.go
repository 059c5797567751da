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
package parser

import (
	"fmt"
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/lexer"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/assert"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

const satisfy = "(solve annotations satisfy)"

// ============================================================================
// Core statements
// ============================================================================

func TestParser_00(t *testing.T) {
	checkParse(t, "solve satisfy;", satisfy)
}

func TestParser_01(t *testing.T) {
	checkParse(t, "var 1..10: x;\nsolve satisfy;",
		`(var "x" (int-range (int-lit "1") (int-lit "10")) annotations)`, satisfy)
}

func TestParser_02(t *testing.T) {
	checkParse(t, "var int: x;\nconstraint int_eq(x, 5);\nsolve satisfy;",
		`(var "x" int annotations)`,
		`(constraint "int_eq" (args (id "x") (int-lit "5")) annotations)`, satisfy)
}

func TestParser_03(t *testing.T) {
	checkParse(t, "var bool: b :: output_var = true;\nsolve satisfy;",
		`(var "b" bool (annotations (annotation "output_var")) (bool-lit "true"))`, satisfy)
}

func TestParser_04(t *testing.T) {
	checkParse(t, "array [1..2] of int: a = [1, -2];\nset of int: s = {};\nsolve satisfy;",
		`(par "a" (array (index (int-lit "1") (int-lit "2")) int) (array-lit (int-lit "1") (int-lit "-2")))`,
		`(par "s" (set int) set-list)`, satisfy)
}

func TestParser_05(t *testing.T) {
	checkParse(t, "array [1..2] of var {1,3}: xs :: output_array([1..2]) = [x, y];\nsolve satisfy;",
		`(var "xs" (array (index (int-lit "1") (int-lit "2")) (int-set (int-lit "1") (int-lit "3"))) `+
			`(annotations (annotation "output_array" (array-lit (set-range (int-lit "1") (int-lit "2"))))) `+
			`(array-lit (id "x") (id "y")))`, satisfy)
}

func TestParser_06(t *testing.T) {
	checkParse(t, "var set of 1..3: s;\nvar 0.0..1.5: f;\nsolve satisfy;",
		`(var "s" (set (int-range (int-lit "1") (int-lit "3"))) annotations)`,
		`(var "f" (float-range (float-lit "0.0") (float-lit "1.5")) annotations)`, satisfy)
}

func TestParser_07(t *testing.T) {
	checkParse(t, "solve :: int_search(xs, input_order, indomain_min, complete) minimize x[2];",
		`(solve (annotations (annotation "int_search" (id "xs") (id "input_order") (id "indomain_min") `+
			`(id "complete"))) (minimize (elem "x" (int-lit "2"))))`)
}

func TestParser_08(t *testing.T) {
	checkParse(t, "int: n = 0x1F;\nfloat: f = 1e3;\nsolve maximize \"s\";",
		`(par "n" int (int-lit "31"))`,
		`(par "f" float (float-lit "1e3"))`,
		`(solve annotations (maximize (string "s")))`)
}

func TestParser_09(t *testing.T) {
	// Engine words are ordinary identifiers outside of an engine block
	checkParse(t, "var int: queue;\nvar int: min;\nconstraint sum(queue, min);\nsolve satisfy;",
		`(var "queue" int annotations)`,
		`(var "min" int annotations)`,
		`(constraint "sum" (args (id "queue") (id "min")) annotations)`, satisfy)
}

// ============================================================================
// Predicate declarations
// ============================================================================

func TestParser_PredDecl_00(t *testing.T) {
	root, parser, errs := parse(t, "predicate p(array [int] of var int: a, int: b, var set of int: c);\nsolve satisfy;")
	//
	assert.Len(t, 0, errs)
	assert.Equal(t, `(predicate "p" (var-param "a" (array index-int int)) (param "b" int) (var-param "c" (set int)))`,
		root.Child(0).String())
	// Only b required the variable form to be rejected
	assert.Equal(t, uint(1), parser.Rewinds())
}

func TestParser_PredDecl_01(t *testing.T) {
	root, parser, errs := parse(t, "predicate p(array [int,1..3] of 1..5: a);\nsolve satisfy;")
	//
	assert.Len(t, 0, errs)
	assert.Equal(t, `(predicate "p" (param "a" (array index-int (index (int-lit "1") (int-lit "3")) `+
		`(int-range (int-lit "1") (int-lit "5")))))`, root.Child(0).String())
	assert.Equal(t, uint(1), parser.Rewinds())
}

// ============================================================================
// Engine
// ============================================================================

func TestParser_Engine_00(t *testing.T) {
	checkParse(t, "G1: vcard > 0;\nqueue(one(G1));\nsolve satisfy;",
		`(engine (group "G1" (cmp ">" (attr "var.cardinality") (int-lit "0"))) (struct (queue "one") (elt "G1")))`,
		satisfy)
}

func TestParser_Engine_01(t *testing.T) {
	checkParse(t, "G1: true;\nG2: !in(G1);\nlist(for(G1 key vcard, max heap(one(G2 key pprio)))) key min.var.cardinality;\nsolve satisfy;",
		`(engine (group "G1" true) (group "G2" (not (in (id "G1")))) `+
			`(struct-key (list "for") (chain (op "min") (attr "var.cardinality")) `+
			`(elt "G1" (attr "var.cardinality")) `+
			`(struct (max-heap "one") (elt "G2" (attr "prop.priority")))))`,
		satisfy)
}

func TestParser_Engine_02(t *testing.T) {
	checkParse(t, "G1: cstr.arity = 2;\nG1 as rev list(wfor(each vcard as min heap(one(carity as queue(wone) key sum)) key max.size));\nsolve satisfy;",
		`(engine (group "G1" (cmp "==" (attr "cstr.arity") (int-lit "2"))) `+
			`(struct-reg "G1" (rev-list "wfor") (each (attr "var.cardinality") (min-heap "one") `+
			`(many (attr "cstr.arity") (queue "wone") (chain (op "sum"))) (chain (op "max") (op "size")))))`,
		satisfy)
}

func TestParser_Engine_03(t *testing.T) {
	// Nested structures and registered elements
	checkParse(t, "G1: true;\nG2: true;\nqueue(wone(list(one(G1)), G2 as list(for(vname as list(one))))) ;\nsolve satisfy;",
		`(engine (group "G1" true) (group "G2" true) (struct (queue "wone") (struct (list "one") (elt "G1")) `+
			`(struct-reg "G2" (list "for") (many (attr "var.name") (list "one")))))`,
		satisfy)
}

// ============================================================================
// Speculation
// ============================================================================

func TestParser_Speculate_00(t *testing.T) {
	root, parser, errs := parse(t, "G1: (vcard > 0 && pprio < 3 && (carity == 1 && true));\nqueue(one(G1));\nsolve satisfy;")
	//
	assert.Len(t, 0, errs)
	// Nested conjunctions are flattened
	assert.Equal(t, `(group "G1" (and (cmp ">" (attr "var.cardinality") (int-lit "0")) `+
		`(cmp "<" (attr "prop.priority") (int-lit "3")) (cmp "==" (attr "cstr.arity") (int-lit "1")) true))`,
		root.Child(0).Child(0).String())
	assert.Equal(t, uint(0), parser.Rewinds())
}

func TestParser_Speculate_01(t *testing.T) {
	root, parser, errs := parse(t, "G1: (vcard > 0 || (in(G0) || !true));\nqueue(one(G1));\nsolve satisfy;")
	//
	assert.Len(t, 0, errs)
	assert.Equal(t, `(group "G1" (or (cmp ">" (attr "var.cardinality") (int-lit "0")) (in (id "G0")) (not true)))`,
		root.Child(0).Child(0).String())
	// The conjunctive form is rejected for both lists
	assert.Equal(t, uint(2), parser.Rewinds())
}

func TestParser_Speculate_02(t *testing.T) {
	// A failed speculation leaves the parser exactly where it was.
	srcfile := source.NewSourceFile("test.fzn", []byte("(vcard > 0 || true)"))
	tokens, _ := lexer.Lex(*srcfile)
	parser := NewParser(srcfile, tokens)
	//
	node, errs := speculate(parser, func() (*ast.Node, []source.SyntaxError) {
		return parser.parsePredicateList(lexer.AND, ast.PRED_AND)
	})
	//
	assert.True(t, node == nil)
	assert.Len(t, 1, errs)
	assert.Equal(t, 0, parser.index)
	assert.Equal(t, uint(1), parser.Rewinds())
	// Committing to the alternative is unaffected by the failed branch
	node, errs = parser.parsePredicates()
	assert.Len(t, 0, errs)
	assert.Equal(t, `(or (cmp ">" (attr "var.cardinality") (int-lit "0")) true)`, node.String())
	assert.Equal(t, len(tokens)-1, parser.index)
}

func TestParser_Speculate_03(t *testing.T) {
	// The conjunctive form got further, so its error is reported
	_, _, errs := parse(t, "G1: (vcard > 0 && true || true);\nqueue(one(G1));\nsolve satisfy;")
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, "unexpected token", errs[0].Message())
	assert.Equal(t, 23, errs[0].Span().Start())
}

func TestParser_Speculate_04(t *testing.T) {
	// Each level of nesting rejects the conjunctive form exactly once.
	for _, depth := range []int{1, 10, 20, 30} {
		var (
			pred     = "true"
			expected = "true"
		)
		//
		for i := 0; i < depth; i++ {
			pred = fmt.Sprintf("(%s || true)", pred)
			expected = expected + " true"
		}
		//
		root, parser, errs := parse(t, fmt.Sprintf("G1: %s;\nqueue(one(G1));\nsolve satisfy;", pred))
		//
		assert.Len(t, 0, errs)
		assert.Equal(t, fmt.Sprintf(`(group "G1" (or %s))`, expected), root.Child(0).Child(0).String())
		assert.Equal(t, uint(depth), parser.Rewinds())
	}
}

func TestParser_Speculate_05(t *testing.T) {
	// Nested conjunctions within disjunctions reuse the same memoised operands.
	pred := "true"
	//
	for i := 0; i < 30; i++ {
		if i%2 == 0 {
			pred = fmt.Sprintf("(%s || vcard > %d)", pred, i)
		} else {
			pred = fmt.Sprintf("(%s && vcard > %d)", pred, i)
		}
	}
	//
	_, parser, errs := parse(t, fmt.Sprintf("G1: %s;\nqueue(one(G1));\nsolve satisfy;", pred))
	//
	assert.Len(t, 0, errs)
	assert.True(t, parser.Rewinds() <= 30)
}

// ============================================================================
// Recovery
// ============================================================================

func TestParser_Invalid_00(t *testing.T) {
	checkErrors(t, "var int x;\nvar int: y;\nconstraint foo(;\nsolve satisfy;",
		"unexpected token", "unexpected token")
}

func TestParser_Invalid_01(t *testing.T) {
	checkErrors(t, "constraint c(1);\nvar int: x;\nsolve satisfy;",
		"variable declaration not permitted after constraint")
}

func TestParser_Invalid_02(t *testing.T) {
	checkErrors(t, "var int: x;", "missing solve goal")
}

func TestParser_Invalid_03(t *testing.T) {
	checkErrors(t, "solve satisfy;\nsolve satisfy;", "duplicate solve goal")
}

func TestParser_Invalid_04(t *testing.T) {
	checkErrors(t, "G1: true;\nsolve satisfy;", "missing structure")
}

func TestParser_Invalid_05(t *testing.T) {
	checkErrors(t, "queue(one(G1));\nsolve satisfy;", "missing group declaration")
}

func TestParser_Invalid_06(t *testing.T) {
	checkErrors(t, "G1: true;\nqueue(for(G1));\nsolve satisfy;", "queue requires one or wone")
}

func TestParser_Invalid_07(t *testing.T) {
	checkErrors(t, "G1: vcard ~ 1;\nG2: vcard;\nG3: (true);\nqueue(one(G3));\nsolve satisfy;",
		"unknown text encountered")
}

func TestParser_Invalid_08(t *testing.T) {
	checkErrors(t, "G1: vcard;\nG2: (true);\nG3: size > 1;\nqueue(one(G1));\nsolve satisfy;",
		"expected comparator", "unexpected token", "expected predicate")
}

func TestParser_Invalid_09(t *testing.T) {
	checkErrors(t, "int: x = 99999999999999999999;\npar int: y = 1;\nsolve satisfy;",
		"invalid integer", "unknown statement")
}

func TestParser_Invalid_11(t *testing.T) {
	// Set literals may be empty, but domains may not
	_, _, errs := parse(t, "set of int: s = {};\nvar {}: x;\nvar set of {}: y;\nsolve satisfy;")
	//
	assert.Len(t, 2, errs)
	assert.Equal(t, "unexpected token", errs[0].Message())
	assert.Equal(t, 25, errs[0].Span().Start())
	assert.Equal(t, "unexpected token", errs[1].Message())
}

func TestParser_Invalid_10(t *testing.T) {
	// Recovery resumes after the erroneous statement
	root, _, errs := parse(t, "var int x;\nvar int: y;\nsolve satisfy;")
	//
	assert.Len(t, 1, errs)
	assert.Equal(t, 8, errs[0].Span().Start())
	assert.Len(t, 2, root.Children)
	assert.Equal(t, `(var "y" int annotations)`, root.Child(0).String())
}

// ============================================================================
// Helpers
// ============================================================================

func parse(t *testing.T, input string) (*ast.Node, *Parser, []source.SyntaxError) {
	t.Helper()
	//
	srcfile := source.NewSourceFile("test.fzn", []byte(input))
	tokens, errs := lexer.Lex(*srcfile)
	//
	if len(errs) > 0 {
		return nil, nil, errs
	}
	//
	parser := NewParser(srcfile, tokens)
	root, errs := parser.Parse()
	//
	return root, parser, errs
}

func checkParse(t *testing.T, input string, expected ...string) {
	t.Helper()
	//
	root, _, errs := parse(t, input)
	//
	for _, err := range errs {
		t.Errorf("unexpected error: %s", err.Error())
	}
	//
	if len(errs) > 0 {
		return
	}
	//
	assert.Equal(t, ast.MODEL, root.Kind)
	assert.Len(t, len(expected), root.Children)
	//
	for i, e := range expected {
		assert.Equal(t, e, root.Child(i).String())
	}
}

func checkErrors(t *testing.T, input string, expected ...string) {
	t.Helper()
	//
	_, _, errs := parse(t, input)
	//
	assert.Len(t, len(expected), errs)
	//
	for i, e := range expected {
		assert.Equal(t, e, errs[i].Message())
	}
}
