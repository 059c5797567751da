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

// Assignment records which entities each group selected.  Every entity is
// assigned to at most one group, namely the first declared group selecting it.
type Assignment struct {
	// Indices of the entities assigned to each group
	members map[string][]int
	// Groups in declaration order
	order []string
	// Entities not assigned to any group
	remaining []int
}

// Members returns the indices of the entities assigned to a given group.
func (p *Assignment) Members(group string) []int {
	return p.members[group]
}

// Groups returns the group names in declaration order.
func (p *Assignment) Groups() []string {
	return p.order
}

// Empty returns the groups to which no entity was assigned, in declaration
// order.
func (p *Assignment) Empty() []string {
	var empty []string
	//
	for _, g := range p.order {
		if len(p.members[g]) == 0 {
			empty = append(empty, g)
		}
	}
	//
	return empty
}

// Remaining returns the indices of the entities not assigned to any group.
func (p *Assignment) Remaining() []int {
	return p.remaining
}

// Partition assigns a set of entities to a set of groups.  A group's predicate
// is evaluated against every entity, such that membership of a group (as used
// by "in") does not depend on whether earlier groups claimed the entity.
// However, an entity is assigned only to the first group selecting it.
func Partition(groups []*Group, entities []Entity) *Assignment {
	var (
		selected = make(map[string][]bool)
		assigned = make([]bool, len(entities))
		result   = &Assignment{members: make(map[string][]int)}
	)
	//
	for _, g := range groups {
		bits := make([]bool, len(entities))
		//
		for i, e := range entities {
			in := func(name string) bool {
				s, ok := selected[name]
				return ok && s[i]
			}
			//
			bits[i] = g.Predicate.Eval(e, in)
		}
		//
		selected[g.Name] = bits
		result.order = append(result.order, g.Name)
		//
		for i, ok := range bits {
			if ok && !assigned[i] {
				assigned[i] = true
				result.members[g.Name] = append(result.members[g.Name], i)
			}
		}
	}
	//
	for i, ok := range assigned {
		if !ok {
			result.remaining = append(result.remaining, i)
		}
	}
	//
	return result
}
