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

// Attribute selects a property of an entity, such as the cardinality of a
// variable or the priority of a propagator.
type Attribute uint8

// VNAME is the name (identity) of a variable.
const VNAME Attribute = 0

// VCARD is the cardinality of the domain of a variable.
const VCARD Attribute = 1

// CNAME is the name (identity) of a constraint.
const CNAME Attribute = 2

// CARITY is the number of variables of a constraint.
const CARITY Attribute = 3

// PPRIO is the static priority of a propagator.
const PPRIO Attribute = 4

// PARITY is the number of variables of a propagator.
const PARITY Attribute = 5

// PPRIOD is the dynamic priority of a propagator.
const PPRIOD Attribute = 6

var attributes = []struct {
	name  string
	alias string
}{
	{"var.name", "vname"},
	{"var.cardinality", "vcard"},
	{"cstr.name", "cname"},
	{"cstr.arity", "carity"},
	{"prop.priority", "pprio"},
	{"prop.arity", "parity"},
	{"prop.prioDyn", "pprioDyn"},
}

// ParseAttribute returns the attribute with a given name, which may be either
// its full name (e.g. "var.cardinality") or its short alias (e.g. "vcard").
func ParseAttribute(name string) (Attribute, bool) {
	for i, a := range attributes {
		if a.name == name || a.alias == name {
			return Attribute(i), true
		}
	}
	//
	return 0, false
}

// IsDynamic checks whether the value of this attribute can change during search.
func (a Attribute) IsDynamic() bool {
	return a == VCARD || a == PPRIOD
}

// Alias returns the short name of this attribute.
func (a Attribute) Alias() string {
	return attributes[a].alias
}

func (a Attribute) String() string {
	return attributes[a].name
}

// Comparator compares an attribute against a constant.
type Comparator uint8

const (
	// EQ is "=="
	EQ Comparator = iota
	// NEQ is "!="
	NEQ
	// LT is "<"
	LT
	// GT is ">"
	GT
	// LEQ is "<="
	LEQ
	// GEQ is ">="
	GEQ
)

// Apply this comparator to two values.
func (c Comparator) Apply(lhs, rhs int64) bool {
	switch c {
	case EQ:
		return lhs == rhs
	case NEQ:
		return lhs != rhs
	case LT:
		return lhs < rhs
	case GT:
		return lhs > rhs
	case LEQ:
		return lhs <= rhs
	default:
		return lhs >= rhs
	}
}

// ParseComparator returns the comparator with a given surface syntax, where "="
// is accepted as an alternative to "==".
func ParseComparator(text string) (Comparator, bool) {
	switch text {
	case "=", "==":
		return EQ, true
	case "!=":
		return NEQ, true
	case "<":
		return LT, true
	case ">":
		return GT, true
	case "<=":
		return LEQ, true
	case ">=":
		return GEQ, true
	}
	//
	return 0, false
}

func (c Comparator) String() string {
	return [...]string{"==", "!=", "<", ">", "<=", ">="}[c]
}

// ReduceOp reduces a group of values to a single value.
type ReduceOp uint8

const (
	// ANY selects an arbitrary value (the first)
	ANY ReduceOp = iota
	// MIN selects the least value
	MIN
	// MAX selects the greatest value
	MAX
	// SUM adds all values
	SUM
	// SIZE counts the values
	SIZE
)

var reduceOps = []string{"any", "min", "max", "sum", "size"}

// ParseReduceOp returns the reducer with a given name.
func ParseReduceOp(name string) (ReduceOp, bool) {
	for i, n := range reduceOps {
		if n == name {
			return ReduceOp(i), true
		}
	}
	//
	return 0, false
}

// Apply this reducer to a (non-empty) sequence of values.  The size of an
// empty sequence is zero, whilst all other reductions of it are undefined and
// return zero.
func (op ReduceOp) Apply(values []int64) int64 {
	if len(values) == 0 {
		return 0
	}
	//
	result := values[0]
	//
	switch op {
	case MIN:
		for _, v := range values[1:] {
			result = min(result, v)
		}
	case MAX:
		for _, v := range values[1:] {
			result = max(result, v)
		}
	case SUM:
		for _, v := range values[1:] {
			result += v
		}
	case SIZE:
		result = int64(len(values))
	}
	//
	return result
}

func (op ReduceOp) String() string {
	return reduceOps[op]
}
