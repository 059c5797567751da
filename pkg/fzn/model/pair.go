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

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
)

// Pair associates a variable with a constraint over it.  Pairs are the entities
// selected by the groups of a search configuration.
type Pair struct {
	Variable   *Variable
	Constraint *Constraint
	// Position of the variable within the model
	varIndex int
	// Position of the constraint within the model
	cstrIndex int
	// Number of distinct variables in the constraint
	arity int
}

// Attribute implementation for the search.Entity interface.  Names are
// identified by declaration position, and the propagator attributes are
// approximated from the constraint since no propagators exist before solving.
func (p *Pair) Attribute(attr search.Attribute) int64 {
	switch attr {
	case search.VNAME:
		return int64(p.varIndex)
	case search.VCARD:
		if c := Cardinality(p.Variable.Declaration); c >= 0 {
			return c
		}
		//
		return math.MaxInt64
	case search.CNAME:
		return int64(p.cstrIndex)
	case search.CARITY, search.PARITY:
		return int64(p.arity)
	case search.PPRIO, search.PPRIOD:
		return priority(p.arity)
	}
	//
	panic(fmt.Sprintf("unknown attribute %d", attr))
}

func (p *Pair) String() string {
	return fmt.Sprintf("(%s,%s#%d)", p.Variable.Name, p.Constraint.Name, p.cstrIndex)
}

// Pairs returns every variable/constraint pair of a model, ordered by
// constraint and then by first reference within the constraint.
func Pairs(m *Model) []*Pair {
	var (
		pairs []*Pair
		index = make(map[*Variable]int)
	)
	//
	for i, v := range m.Variables {
		index[v] = i
	}
	//
	for i, c := range m.Constraints {
		vars := c.Variables()
		//
		for _, v := range vars {
			pairs = append(pairs, &Pair{v, c, index[v], i, len(vars)})
		}
	}
	//
	return pairs
}

// Entities converts a set of pairs into a set of search entities.
func Entities(pairs []*Pair) []search.Entity {
	entities := make([]search.Entity, len(pairs))
	//
	for i, p := range pairs {
		entities[i] = p
	}
	//
	return entities
}

// priority follows the usual propagator priority levels: unary, binary and
// ternary propagators are the cheapest, followed by linear ones.
func priority(arity int) int64 {
	switch {
	case arity <= 1:
		return 1
	case arity <= 3:
		return int64(arity)
	default:
		return 4
	}
}
