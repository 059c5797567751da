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
package search

import (
	"testing"

	"github.com/chocoteam/choco-solver-sub000/pkg/util"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/assert"
)

// entity with a given cardinality and arity
type entity struct {
	card, arity int64
}

func (e entity) Attribute(attr Attribute) int64 {
	switch attr {
	case VCARD:
		return e.card
	case CARITY, PARITY:
		return e.arity
	}
	//
	return 0
}

var noGroups Membership = func(string) bool { return false }

func TestAttribute_00(t *testing.T) {
	for _, name := range []string{"var.cardinality", "vcard"} {
		attr, ok := ParseAttribute(name)
		assert.True(t, ok)
		assert.Equal(t, VCARD, attr)
	}
	//
	_, ok := ParseAttribute("var.size")
	assert.False(t, ok)
	assert.Equal(t, "prop.prioDyn", PPRIOD.String())
	assert.Equal(t, "pprioDyn", PPRIOD.Alias())
}

func TestAttribute_01(t *testing.T) {
	assert.True(t, VCARD.IsDynamic())
	assert.True(t, PPRIOD.IsDynamic())
	assert.False(t, VNAME.IsDynamic())
	assert.False(t, PPRIO.IsDynamic())
}

func TestReduceOp_00(t *testing.T) {
	values := []int64{3, 1, 4, 1, 5}
	//
	assert.Equal(t, int64(3), ANY.Apply(values))
	assert.Equal(t, int64(1), MIN.Apply(values))
	assert.Equal(t, int64(5), MAX.Apply(values))
	assert.Equal(t, int64(14), SUM.Apply(values))
	assert.Equal(t, int64(5), SIZE.Apply(values))
	assert.Equal(t, int64(0), SIZE.Apply(nil))
}

func TestPredicate_00(t *testing.T) {
	p := &Compare{VCARD, GT, 0}
	//
	assert.True(t, p.Eval(entity{2, 1}, noGroups))
	assert.False(t, p.Eval(entity{0, 1}, noGroups))
	assert.Equal(t, "var.cardinality > 0", p.String())
}

func TestPredicate_01(t *testing.T) {
	p := &And{[]Predicate{&Compare{VCARD, GEQ, 2}, &Not{&Compare{CARITY, EQ, 1}}}}
	//
	assert.True(t, p.Eval(entity{2, 2}, noGroups))
	assert.False(t, p.Eval(entity{2, 1}, noGroups))
	assert.False(t, p.Eval(entity{1, 2}, noGroups))
	assert.Equal(t, "(var.cardinality >= 2 && !cstr.arity == 1)", p.String())
}

func TestPredicate_02(t *testing.T) {
	p := &Or{[]Predicate{&Member{[]string{"G1", "G2"}}, &True{}}}
	q := &Member{[]string{"G1", "G2"}}
	in := func(g string) bool { return g == "G2" }
	//
	assert.True(t, p.Eval(entity{}, noGroups))
	assert.True(t, q.Eval(entity{}, in))
	assert.False(t, q.Eval(entity{}, noGroups))
	assert.Equal(t, "(in(G1,G2) || true)", p.String())
}

func TestPartition_00(t *testing.T) {
	groups := []*Group{
		{"G1", &Compare{VCARD, LEQ, 2}},
		{"G2", &True{}},
	}
	entities := []Entity{entity{2, 1}, entity{5, 1}, entity{1, 3}}
	result := Partition(groups, entities)
	//
	assert.Equal(t, []int{0, 2}, result.Members("G1"))
	assert.Equal(t, []int{1}, result.Members("G2"))
	assert.Len(t, 0, result.Empty())
	assert.Len(t, 0, result.Remaining())
}

func TestPartition_01(t *testing.T) {
	groups := []*Group{
		{"G1", &Compare{VCARD, GT, 10}},
		{"G2", &Compare{CARITY, EQ, 1}},
	}
	entities := []Entity{entity{2, 1}, entity{5, 2}}
	result := Partition(groups, entities)
	//
	assert.Equal(t, []string{"G1"}, result.Empty())
	assert.Equal(t, []int{1}, result.Remaining())
}

func TestPartition_02(t *testing.T) {
	// Membership is independent of assignment
	groups := []*Group{
		{"G1", &Compare{VCARD, LEQ, 2}},
		{"G2", &Member{[]string{"G1"}}},
	}
	entities := []Entity{entity{2, 1}, entity{5, 1}}
	result := Partition(groups, entities)
	//
	assert.Equal(t, []int{0}, result.Members("G1"))
	assert.Equal(t, []string{"G2"}, result.Empty())
	assert.Equal(t, []int{1}, result.Remaining())
}

func TestStructure_00(t *testing.T) {
	s := &Plain{[]Element{&GroupRef{"G1", util.None[Attribute]()}}, Queue(ONE)}
	//
	assert.Equal(t, "queue(one(G1))", s.String())
	assert.Equal(t, []string{"G1"}, Groups(s))
}

func TestStructure_01(t *testing.T) {
	inner := &Plain{[]Element{
		&GroupRef{"G1", util.Some(VCARD)},
		&GroupRef{"G2", util.Some(PPRIO)},
	}, Heap(true, WONE)}
	outer := &Combined{[]Element{&Nested{inner}, &GroupRef{"G3", util.None[Attribute]()}},
		&Chain{[]ReduceOp{MIN}, util.Some(VCARD)}, List(true, FOR)}
	//
	assert.Equal(t, "rev list(for(max heap(wone(G1 key var.cardinality,G2 key prop.priority)),G3)) key min.var.cardinality",
		outer.String())
	assert.Equal(t, []string{"G1", "G2", "G3"}, Groups(outer))
}

func TestStructure_02(t *testing.T) {
	many := &Many{VCARD, List(false, FOR), &Many{CARITY, Queue(ONE), nil, util.None[CombAttr]()},
		util.Some[CombAttr](&Chain{[]ReduceOp{MAX, SIZE}, util.None[Attribute]()})}
	s := &Registered{"G1", many, Heap(false, ONE), util.None[CombAttr]()}
	//
	assert.Equal(t, "G1 as min heap(one(each var.cardinality as list(for(cstr.arity as queue(one))) key max.size))",
		s.String())
}

func TestKey_00(t *testing.T) {
	entities := []Entity{entity{4, 1}, entity{2, 1}, entity{7, 1}}
	//
	assert.Equal(t, int64(2), Key(&Chain{[]ReduceOp{MIN}, util.Some(VCARD)}, entities))
	assert.Equal(t, int64(13), Key(&MandatoryChain{[]ReduceOp{MAX, SUM}, VCARD}, entities))
	assert.Equal(t, int64(3), Key(&Chain{[]ReduceOp{SIZE}, util.None[Attribute]()}, entities))
	assert.True(t, Keyed(&GroupRef{"G1", util.Some(VCARD)}))
	assert.False(t, Keyed(&GroupRef{"G1", util.None[Attribute]()}))
}

func TestComparator_00(t *testing.T) {
	for _, text := range []string{"=", "==", "!=", "<", ">", "<=", ">="} {
		c, ok := ParseComparator(text)
		assert.True(t, ok)
		//
		if text != "=" {
			assert.Equal(t, text, c.String())
		}
	}
	//
	_, ok := ParseComparator("<>")
	assert.False(t, ok)
	assert.True(t, LEQ.Apply(2, 2))
	assert.False(t, NEQ.Apply(2, 2))
}
