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
	"fmt"
	"strings"
)

// Entity is something selected by a group, such as a variable/constraint pair.
type Entity interface {
	// Attribute returns the value of a given attribute for this entity.
	Attribute(attr Attribute) int64
}

// Membership checks whether the entity being evaluated belongs to a given group.
type Membership func(group string) bool

// Predicate is a filter over entities.
type Predicate interface {
	fmt.Stringer
	// Eval determines whether an entity satisfies this predicate.
	Eval(e Entity, in Membership) bool
}

// True holds for every entity.
type True struct{}

// Compare holds when an attribute of the entity compares favourably with a
// constant.
type Compare struct {
	Attribute Attribute
	Op        Comparator
	Value     int64
}

// Member holds when the entity belongs to one of the given groups.
type Member struct {
	Groups []string
}

// And holds when every operand holds.
type And struct {
	Operands []Predicate
}

// Or holds when some operand holds.
type Or struct {
	Operands []Predicate
}

// Not holds when its operand does not.
type Not struct {
	Operand Predicate
}

// Eval implementation for Predicate interface.
func (p *True) Eval(Entity, Membership) bool {
	return true
}

// Eval implementation for Predicate interface.
func (p *Compare) Eval(e Entity, _ Membership) bool {
	return p.Op.Apply(e.Attribute(p.Attribute), p.Value)
}

// Eval implementation for Predicate interface.
func (p *Member) Eval(_ Entity, in Membership) bool {
	for _, g := range p.Groups {
		if in(g) {
			return true
		}
	}
	//
	return false
}

// Eval implementation for Predicate interface.
func (p *And) Eval(e Entity, in Membership) bool {
	for _, q := range p.Operands {
		if !q.Eval(e, in) {
			return false
		}
	}
	//
	return true
}

// Eval implementation for Predicate interface.
func (p *Or) Eval(e Entity, in Membership) bool {
	for _, q := range p.Operands {
		if q.Eval(e, in) {
			return true
		}
	}
	//
	return false
}

// Eval implementation for Predicate interface.
func (p *Not) Eval(e Entity, in Membership) bool {
	return !p.Operand.Eval(e, in)
}

func (p *True) String() string {
	return "true"
}

func (p *Compare) String() string {
	return fmt.Sprintf("%s %s %d", p.Attribute, p.Op, p.Value)
}

func (p *Member) String() string {
	return fmt.Sprintf("in(%s)", strings.Join(p.Groups, ","))
}

func (p *And) String() string {
	return joinPredicates(p.Operands, " && ")
}

func (p *Or) String() string {
	return joinPredicates(p.Operands, " || ")
}

func (p *Not) String() string {
	return fmt.Sprintf("!%s", p.Operand)
}

func joinPredicates(preds []Predicate, sep string) string {
	strs := make([]string, len(preds))
	//
	for i, p := range preds {
		strs[i] = p.String()
	}
	//
	return fmt.Sprintf("(%s)", strings.Join(strs, sep))
}

// Group is a named predicate selecting a subset of entities.
type Group struct {
	Name      string
	Predicate Predicate
}

func (p *Group) String() string {
	return fmt.Sprintf("%s: %s;", p.Name, p.Predicate)
}
