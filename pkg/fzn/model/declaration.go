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
	"math"
	"strconv"
	"strings"
)

// Declaration describes the type (and domain) of a parameter, variable or
// predicate parameter.
type Declaration interface {
	fmt.Stringer
	declaration()
}

// Bool is the boolean type.
type Bool struct{}

// Float is the unbounded floating point type.
type Float struct{}

// Int is the unbounded integer type.
type Int struct{}

// IntRange is an integer type bounded by an inclusive range.
type IntRange struct {
	Lo, Hi int64
}

// FloatRange is a floating point type bounded by an inclusive range.
type FloatRange struct {
	Lo, Hi float64
}

// IntSet is an integer type whose domain is an explicit set of values.
type IntSet struct {
	Values []int64
}

// Set is a set type over some element type.
type Set struct {
	Elem Declaration
}

// Array is an array type with one or more index sets.
type Array struct {
	Dims []IndexDomain
	Elem Declaration
}

// IndexDomain is the index set of one array dimension.
type IndexDomain struct {
	Lo, Hi int64
	// Indicates an index set of "int"
	Unbounded bool
}

// Range constructs a bounded index domain.
func Range(lo, hi int64) IndexDomain {
	return IndexDomain{lo, hi, false}
}

// Unbounded constructs an unbounded index domain.
func Unbounded() IndexDomain {
	return IndexDomain{Unbounded: true}
}

// Contains checks whether a given index lies within this domain.
func (p IndexDomain) Contains(index int64) bool {
	return p.Unbounded || (index >= p.Lo && index <= p.Hi)
}

// Size returns the number of indices in this domain, or -1 if unbounded.
func (p IndexDomain) Size() int64 {
	if p.Unbounded {
		return -1
	}
	//
	return rangeSize(p.Lo, p.Hi)
}

func (p IndexDomain) String() string {
	if p.Unbounded {
		return "int"
	}
	//
	return fmt.Sprintf("%d..%d", p.Lo, p.Hi)
}

// Cardinality returns the number of values in the domain of a declaration, or
// -1 when this is unbounded (or not a scalar).
func Cardinality(decl Declaration) int64 {
	switch d := decl.(type) {
	case *Bool:
		return 2
	case *IntRange:
		return rangeSize(d.Lo, d.Hi)
	case *IntSet:
		return int64(len(d.Values))
	}
	//
	return -1
}

// Number of values in lo..hi, saturating at math.MaxInt64 since the full
// range of int64 has one more value than can be counted.
func rangeSize(lo, hi int64) int64 {
	if hi < lo {
		return 0
	}
	// Exact in two's complement, since hi >= lo
	if d := uint64(hi) - uint64(lo); d < math.MaxInt64 {
		return int64(d) + 1
	}
	//
	return math.MaxInt64
}

func (*Bool) declaration()       {}
func (*Float) declaration()      {}
func (*Int) declaration()        {}
func (*IntRange) declaration()   {}
func (*FloatRange) declaration() {}
func (*IntSet) declaration()     {}
func (*Set) declaration()        {}
func (*Array) declaration()      {}

func (*Bool) String() string {
	return "bool"
}

func (*Float) String() string {
	return "float"
}

func (*Int) String() string {
	return "int"
}

func (p *IntRange) String() string {
	return fmt.Sprintf("%d..%d", p.Lo, p.Hi)
}

func (p *FloatRange) String() string {
	return fmt.Sprintf("%s..%s", FormatFloat(p.Lo), FormatFloat(p.Hi))
}

func (p *IntSet) String() string {
	return formatInts(p.Values)
}

func (p *Set) String() string {
	return fmt.Sprintf("set of %s", p.Elem)
}

func (p *Array) String() string {
	return fmt.Sprintf("array [%s] of %s", formatDims(p.Dims), p.Elem)
}

// FormatFloat formats a floating point value such that it will be read back as
// a floating point literal (rather than an integer literal).
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	//
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	//
	return s
}

func formatInts(values []int64) string {
	var builder strings.Builder
	//
	builder.WriteString("{")
	//
	for i, v := range values {
		if i != 0 {
			builder.WriteString(",")
		}
		//
		builder.WriteString(strconv.FormatInt(v, 10))
	}
	//
	builder.WriteString("}")
	//
	return builder.String()
}

func formatDims(dims []IndexDomain) string {
	strs := make([]string, len(dims))
	//
	for i, d := range dims {
		strs[i] = d.String()
	}
	//
	return strings.Join(strs, ",")
}
