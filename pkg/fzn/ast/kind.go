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
package ast

import "math"

// Kind identifies the shape of an AST node.  Every kind has a fixed arity,
// given by the arity table below, which node constructors enforce.
type Kind uint8

// MODEL is the root of a model file.  Children are the statements of the file
// in order: predicate declarations, parameters, variables, constraints, an
// optional engine block and, finally, the solve goal.
const MODEL Kind = 0

// PRED_DECL is a predicate declaration, named by its text.  Children are its
// parameters.
const PRED_DECL Kind = 1

// PRED_PARAM is a parameter of a predicate declaration, named by its text.
// The only child is its type.
const PRED_PARAM Kind = 2

// PRED_VAR_PARAM is a decision variable parameter of a predicate declaration.
const PRED_VAR_PARAM Kind = 3

// PAR_DECL is a parameter declaration, named by its text.  Children are its
// type and its value.
const PAR_DECL Kind = 4

// VAR_DECL is a variable declaration, named by its text.  Children are its
// type, its annotations and, optionally, its value.
const VAR_DECL Kind = 5

// CONSTRAINT is a constraint item, named by its text.  Children are its
// arguments and annotations.
const CONSTRAINT Kind = 6

// ARGS holds the arguments of a constraint.
const ARGS Kind = 7

// SOLVE is the solve goal.  Children are its annotations and the goal itself.
const SOLVE Kind = 8

// SATISFY is a satisfaction goal
const SATISFY Kind = 9

// MINIMIZE is a minimisation goal over its child.
const MINIMIZE Kind = 10

// MAXIMIZE is a maximisation goal over its child.
const MAXIMIZE Kind = 11

// ANNOTATIONS holds zero or more annotations.
const ANNOTATIONS Kind = 12

// ANNOTATION is a named annotation with zero or more argument expressions.
// Within expressions, a call "f(x,y)" is also an annotation.
const ANNOTATION Kind = 13

// TYPE_BOOL is "bool"
const TYPE_BOOL Kind = 20

// TYPE_FLOAT is "float"
const TYPE_FLOAT Kind = 21

// TYPE_INT is "int"
const TYPE_INT Kind = 22

// TYPE_INT_RANGE is "lo..hi" over integers.
const TYPE_INT_RANGE Kind = 23

// TYPE_FLOAT_RANGE is "lo..hi" over floats.
const TYPE_FLOAT_RANGE Kind = 24

// TYPE_INT_SET is "{i,j,...}".
const TYPE_INT_SET Kind = 25

// TYPE_SET is "set of T", with T the only child.
const TYPE_SET Kind = 26

// TYPE_ARRAY is "array[I,...] of T".  Children are the index sets followed by
// the element type.
const TYPE_ARRAY Kind = 27

// INDEX_RANGE is an array index set "lo..hi".
const INDEX_RANGE Kind = 28

// INDEX_INT is an unbounded array index set "int".
const INDEX_INT Kind = 29

// INT is an integer literal.
const INT Kind = 40

// FLOAT is a floating point literal.
const FLOAT Kind = 41

// BOOL is a boolean literal.
const BOOL Kind = 42

// STRING is a string literal, whose text excludes the quotes.
const STRING Kind = 43

// SET_LIST is a set literal "{i,j,...}".
const SET_LIST Kind = 44

// SET_RANGE is a set literal "lo..hi".
const SET_RANGE Kind = 45

// ARRAY_LIT is an array literal "[e,...]".
const ARRAY_LIT Kind = 46

// IDENT is an identifier.
const IDENT Kind = 47

// ARRAY_ELEM is an array access "a[i]", named by its text.  The only child is
// the index.
const ARRAY_ELEM Kind = 48

// ENGINE is a search engine block.  Children are one or more groups, followed
// by exactly one structure.
const ENGINE Kind = 60

// GROUP is a group declaration, named by its text, whose only child is its
// predicate.
const GROUP Kind = 61

// PRED_TRUE is the predicate "true".
const PRED_TRUE Kind = 62

// PRED_CMP compares an attribute against an integer.  The text is the
// comparator, and children are the attribute and the integer.
const PRED_CMP Kind = 63

// PRED_IN holds when an entity belongs to one of the groups given by its
// children (identifiers).
const PRED_IN Kind = 64

// PRED_AND is an n-ary conjunction.
const PRED_AND Kind = 65

// PRED_OR is an n-ary disjunction.
const PRED_OR Kind = 66

// PRED_NOT is a negation.
const PRED_NOT Kind = 67

// ATTRIBUTE is an attribute selector whose text is its canonical name.
const ATTRIBUTE Kind = 68

// STRUCT_PLAIN is a structure without a combinator.  Children are its
// collection followed by one or more elements.
const STRUCT_PLAIN Kind = 70

// STRUCT_COMBINED is a structure with a combinator.  Children are its
// collection, its combinator and one or more elements.
const STRUCT_COMBINED Kind = 71

// STRUCT_REG is a registered structure, named by the group it ranges over.
// Children are its collection, its many and, optionally, its combinator.
const STRUCT_REG Kind = 72

// ELT_GROUP is a structure element referring to a group, named by its text.
// The optional child is its key attribute.
const ELT_GROUP Kind = 73

// MANY groups entities by an attribute.  Children are the attribute, the
// collection and, optionally, a combinator.
const MANY Kind = 74

// MANY_EACH groups entities by an attribute, and then groups again within each
// group.  Children are the attribute, the collection, the nested many and,
// optionally, a combinator.
const MANY_EACH Kind = 75

// COLL_QUEUE is a queue whose text is its iteration mode.
const COLL_QUEUE Kind = 80

// COLL_LIST is a list whose text is its iteration mode.
const COLL_LIST Kind = 81

// COLL_REV_LIST is a reversed list whose text is its iteration mode.
const COLL_REV_LIST Kind = 82

// COLL_MIN_HEAP is a min heap whose text is its iteration mode.
const COLL_MIN_HEAP Kind = 83

// COLL_MAX_HEAP is a max heap whose text is its iteration mode.
const COLL_MAX_HEAP Kind = 84

// COMB_CHAIN is a chain of reducers (children) optionally ending with an
// attribute.
const COMB_CHAIN Kind = 85

// COMB_MANDATORY is a chain of one or more reducers which must end with an
// attribute.
const COMB_MANDATORY Kind = 86

// REDUCE_OP is a reducer whose text is its operator.
const REDUCE_OP Kind = 87

const unbounded = math.MaxInt

type arity struct {
	min, max int
	named    bool
}

var arities = map[Kind]arity{
	MODEL:            {0, unbounded, false},
	PRED_DECL:        {1, unbounded, true},
	PRED_PARAM:       {1, 1, true},
	PRED_VAR_PARAM:   {1, 1, true},
	PAR_DECL:         {2, 2, true},
	VAR_DECL:         {2, 3, true},
	CONSTRAINT:       {2, 2, true},
	ARGS:             {1, unbounded, false},
	SOLVE:            {2, 2, false},
	SATISFY:          {0, 0, false},
	MINIMIZE:         {1, 1, false},
	MAXIMIZE:         {1, 1, false},
	ANNOTATIONS:      {0, unbounded, false},
	ANNOTATION:       {0, unbounded, true},
	TYPE_BOOL:        {0, 0, false},
	TYPE_FLOAT:       {0, 0, false},
	TYPE_INT:         {0, 0, false},
	TYPE_INT_RANGE:   {2, 2, false},
	TYPE_FLOAT_RANGE: {2, 2, false},
	TYPE_INT_SET:     {0, unbounded, false},
	TYPE_SET:         {1, 1, false},
	TYPE_ARRAY:       {2, unbounded, false},
	INDEX_RANGE:      {2, 2, false},
	INDEX_INT:        {0, 0, false},
	INT:              {0, 0, true},
	FLOAT:            {0, 0, true},
	BOOL:             {0, 0, true},
	STRING:           {0, 0, true},
	SET_LIST:         {0, unbounded, false},
	SET_RANGE:        {2, 2, false},
	ARRAY_LIT:        {0, unbounded, false},
	IDENT:            {0, 0, true},
	ARRAY_ELEM:       {1, 1, true},
	ENGINE:           {2, unbounded, false},
	GROUP:            {1, 1, true},
	PRED_TRUE:        {0, 0, false},
	PRED_CMP:         {2, 2, true},
	PRED_IN:          {1, unbounded, false},
	PRED_AND:         {2, unbounded, false},
	PRED_OR:          {2, unbounded, false},
	PRED_NOT:         {1, 1, false},
	ATTRIBUTE:        {0, 0, true},
	STRUCT_PLAIN:     {2, unbounded, false},
	STRUCT_COMBINED:  {3, unbounded, false},
	STRUCT_REG:       {2, 3, true},
	ELT_GROUP:        {0, 1, true},
	MANY:             {2, 3, false},
	MANY_EACH:        {3, 4, false},
	COLL_QUEUE:       {0, 0, true},
	COLL_LIST:        {0, 0, true},
	COLL_REV_LIST:    {0, 0, true},
	COLL_MIN_HEAP:    {0, 0, true},
	COLL_MAX_HEAP:    {0, 0, true},
	COMB_CHAIN:       {0, unbounded, false},
	COMB_MANDATORY:   {2, unbounded, false},
	REDUCE_OP:        {0, 0, true},
}

var names = map[Kind]string{
	MODEL: "model", PRED_DECL: "predicate", PRED_PARAM: "param", PRED_VAR_PARAM: "var-param",
	PAR_DECL: "par", VAR_DECL: "var", CONSTRAINT: "constraint", ARGS: "args", SOLVE: "solve",
	SATISFY: "satisfy", MINIMIZE: "minimize", MAXIMIZE: "maximize", ANNOTATIONS: "annotations",
	ANNOTATION: "annotation", TYPE_BOOL: "bool", TYPE_FLOAT: "float", TYPE_INT: "int",
	TYPE_INT_RANGE: "int-range", TYPE_FLOAT_RANGE: "float-range", TYPE_INT_SET: "int-set",
	TYPE_SET: "set", TYPE_ARRAY: "array", INDEX_RANGE: "index", INDEX_INT: "index-int",
	INT: "int-lit", FLOAT: "float-lit", BOOL: "bool-lit", STRING: "string", SET_LIST: "set-list",
	SET_RANGE: "set-range", ARRAY_LIT: "array-lit", IDENT: "id", ARRAY_ELEM: "elem",
	ENGINE: "engine", GROUP: "group", PRED_TRUE: "true", PRED_CMP: "cmp", PRED_IN: "in",
	PRED_AND: "and", PRED_OR: "or", PRED_NOT: "not", ATTRIBUTE: "attr", STRUCT_PLAIN: "struct",
	STRUCT_COMBINED: "struct-key", STRUCT_REG: "struct-reg", ELT_GROUP: "elt", MANY: "many",
	MANY_EACH: "each", COLL_QUEUE: "queue", COLL_LIST: "list", COLL_REV_LIST: "rev-list",
	COLL_MIN_HEAP: "min-heap", COLL_MAX_HEAP: "max-heap", COMB_CHAIN: "chain",
	COMB_MANDATORY: "mandatory", REDUCE_OP: "op",
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	//
	return "???"
}

// IsCollection checks whether this kind is one of the collection kinds.
func (k Kind) IsCollection() bool {
	return k >= COLL_QUEUE && k <= COLL_MAX_HEAP
}

// IsStructure checks whether this kind is one of the structure kinds.
func (k Kind) IsStructure() bool {
	return k == STRUCT_PLAIN || k == STRUCT_COMBINED || k == STRUCT_REG
}

// IsCombinator checks whether this kind is one of the combinator kinds.
func (k Kind) IsCombinator() bool {
	return k == COMB_CHAIN || k == COMB_MANDATORY
}
