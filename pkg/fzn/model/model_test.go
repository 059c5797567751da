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
	"errors"
	"math"
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
	"github.com/chocoteam/choco-solver-sub000/pkg/util"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/assert"
)

func TestDeclaration_00(t *testing.T) {
	assert.Equal(t, "1..10", (&IntRange{1, 10}).String())
	assert.Equal(t, "{1,3,5}", (&IntSet{[]int64{1, 3, 5}}).String())
	assert.Equal(t, "set of 1..3", (&Set{&IntRange{1, 3}}).String())
	assert.Equal(t, "0.0..1.5", (&FloatRange{0, 1.5}).String())
	assert.Equal(t, "array [1..3,int] of bool", (&Array{[]IndexDomain{Range(1, 3), Unbounded()}, &Bool{}}).String())
}

func TestDeclaration_01(t *testing.T) {
	assert.Equal(t, int64(2), Cardinality(&Bool{}))
	assert.Equal(t, int64(10), Cardinality(&IntRange{1, 10}))
	assert.Equal(t, int64(0), Cardinality(&IntRange{5, 1}))
	assert.Equal(t, int64(3), Cardinality(&IntSet{[]int64{1, 3, 5}}))
	assert.Equal(t, int64(-1), Cardinality(&Int{}))
	assert.True(t, Range(1, 3).Contains(3))
	assert.False(t, Range(1, 3).Contains(0))
	assert.True(t, Unbounded().Contains(-100))
}

func TestDeclaration_02(t *testing.T) {
	// Sizes saturate rather than overflow
	full := &IntRange{math.MinInt64, math.MaxInt64}
	//
	assert.Equal(t, int64(math.MaxInt64), Cardinality(full))
	assert.Equal(t, int64(math.MaxInt64), Cardinality(&IntRange{-1, math.MaxInt64 - 1}))
	assert.Equal(t, int64(math.MaxInt64), Cardinality(&IntRange{0, math.MaxInt64 - 1}))
	assert.Equal(t, int64(math.MaxInt64-1), Cardinality(&IntRange{1, math.MaxInt64 - 1}))
	assert.Equal(t, int64(math.MaxInt64), Range(math.MinInt64, 0).Size())
	assert.Equal(t, int64(1), Range(math.MinInt64, math.MinInt64).Size())
	assert.Equal(t, int64(0), Range(math.MaxInt64, math.MinInt64).Size())
	// A variable over the full range is as large as possible
	x := &Variable{"x", full, nil, util.None[Expression]()}
	m := &Model{
		Variables:   []*Variable{x},
		Constraints: []*Constraint{{"c", []Expression{&Identifier{"x", x}}, nil}},
		Goal:        &SolveGoal{Kind: SATISFY},
	}
	//
	assert.Equal(t, int64(math.MaxInt64), Pairs(m)[0].Attribute(search.VCARD))
}

func TestFormatFloat_00(t *testing.T) {
	assert.Equal(t, "1.0", FormatFloat(1))
	assert.Equal(t, "-2.5", FormatFloat(-2.5))
	assert.Equal(t, "1e+21", FormatFloat(1e21))
}

func TestVariable_00(t *testing.T) {
	x := &Variable{"x", &IntRange{1, 10}, nil, util.None[Expression]()}
	//
	assert.Equal(t, "var 1..10: x;", x.String())
	assert.False(t, x.Output())
}

func TestVariable_01(t *testing.T) {
	x := &Variable{"x", &Bool{}, nil, util.None[Expression]()}
	y := &Variable{"y", &Bool{}, nil, util.None[Expression]()}
	arr := &ArrayLit{[]Expression{&Identifier{"x", x}, &Identifier{"y", y}}}
	anns := []*Annotation{{"output_array", []Expression{&ArrayLit{[]Expression{&SetRange{1, 2}}}}}}
	xs := &Variable{"xs", &Array{[]IndexDomain{Range(1, 2)}, &Bool{}}, anns, util.Some[Expression](arr)}
	//
	assert.Equal(t, "array [1..2] of var bool: xs :: output_array([1..2]) = [x,y];", xs.String())
	assert.True(t, xs.Output())
}

func TestConstraint_00(t *testing.T) {
	x := &Variable{"x", &IntRange{1, 10}, nil, util.None[Expression]()}
	c := &Constraint{"int_lin_le", []Expression{
		&ArrayLit{[]Expression{&IntLit{1}, &IntLit{-1}}},
		&ArrayLit{[]Expression{&Identifier{"x", x}, &Identifier{"x", x}}},
		&IntLit{5},
	}, []*Annotation{{"domain", nil}}}
	//
	assert.Equal(t, "constraint int_lin_le([1,-1],[x,x],5) :: domain;", c.String())
	assert.Equal(t, []*Variable{x}, c.Variables())
}

func TestSolveGoal_00(t *testing.T) {
	x := &Variable{"x", &Int{}, nil, util.None[Expression]()}
	g := &SolveGoal{MINIMIZE, util.Some[Expression](&Identifier{"x", x}), []*Annotation{
		{"int_search", []Expression{&ArrayLit{[]Expression{&Identifier{"x", x}}},
			&Annotation{"input_order", nil}, &Annotation{"indomain_min", nil}, &Annotation{"complete", nil}}},
	}}
	//
	assert.Equal(t, "solve :: int_search([x],input_order,indomain_min,complete) minimize x;", g.String())
}

func TestPredicateDecl_00(t *testing.T) {
	p := &PredicateDecl{"my_pred", []PredParam{
		{"a", &Array{[]IndexDomain{Unbounded()}, &Int{}}, true},
		{"b", &Int{}, false},
		{"c", &Set{&Int{}}, true},
	}}
	//
	assert.Equal(t, "predicate my_pred(array [int] of var int: a,int: b,var set of int: c);", p.String())
}

func TestPairs_00(t *testing.T) {
	x := &Variable{"x", &IntRange{1, 10}, nil, util.None[Expression]()}
	y := &Variable{"y", &Bool{}, nil, util.None[Expression]()}
	z := &Variable{"z", &Int{}, nil, util.None[Expression]()}
	m := &Model{
		Variables: []*Variable{x, y, z},
		Constraints: []*Constraint{
			{"c1", []Expression{&Identifier{"x", x}, &Identifier{"y", y}}, nil},
			{"c2", []Expression{&Identifier{"z", z}}, nil},
		},
		Goal: &SolveGoal{Kind: SATISFY},
	}
	pairs := Pairs(m)
	//
	assert.Len(t, 3, pairs)
	assert.Equal(t, int64(10), pairs[0].Attribute(search.VCARD))
	assert.Equal(t, int64(2), pairs[1].Attribute(search.VCARD))
	assert.Equal(t, int64(1), pairs[1].Attribute(search.VNAME))
	assert.Equal(t, int64(2), pairs[1].Attribute(search.CARITY))
	assert.Equal(t, int64(1), pairs[2].Attribute(search.CNAME))
	assert.Equal(t, int64(1), pairs[2].Attribute(search.PPRIO))
	assert.True(t, pairs[2].Attribute(search.VCARD) > 1000)
}

// recorder is a consumer which records the order of registration.
type recorder struct {
	events []string
	fail   string
}

func (r *recorder) AddParameter(p *Parameter) error {
	return r.record("par " + p.Name)
}

func (r *recorder) AddVariable(v *Variable) (Handle, error) {
	h := Handle(len(r.events))
	//
	return h, r.record("var " + v.Name)
}

func (r *recorder) AddConstraint(c *Constraint) error {
	return r.record("constraint " + c.Name)
}

func (r *recorder) SetSearch(s *search.Spec) error {
	return r.record("search")
}

func (r *recorder) SetGoal(g *SolveGoal) error {
	return r.record("solve")
}

func (r *recorder) record(event string) error {
	if event == r.fail {
		return errors.New("rejected")
	}
	//
	r.events = append(r.events, event)
	//
	return nil
}

func TestRegister_00(t *testing.T) {
	x := &Variable{"x", &Bool{}, nil, util.None[Expression]()}
	m := &Model{
		Parameters:  []*Parameter{{"n", &Int{}, &IntLit{3}}},
		Variables:   []*Variable{x},
		Constraints: []*Constraint{{"bool_eq", []Expression{&Identifier{"x", x}, &BoolLit{true}}, nil}},
		Goal:        &SolveGoal{Kind: SATISFY},
	}
	consumer := &recorder{}
	reg, err := Register(m, consumer)
	//
	assert.Equal(t, nil, err)
	assert.Equal(t, []string{"par n", "var x", "constraint bool_eq", "solve"}, consumer.events)
	//
	h, ok := reg.Handle(x)
	assert.True(t, ok)
	assert.Equal(t, Handle(1), h)
}

func TestRegister_01(t *testing.T) {
	x := &Variable{"x", &Bool{}, nil, util.None[Expression]()}
	m := &Model{Variables: []*Variable{x}, Goal: &SolveGoal{Kind: SATISFY}}
	consumer := &recorder{fail: "var x"}
	_, err := Register(m, consumer)
	//
	assert.Equal(t, "variable x: rejected", err.Error())
	assert.Len(t, 0, consumer.events)
}
