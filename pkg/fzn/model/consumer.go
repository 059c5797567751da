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

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
)

// Handle is the identity given to a variable by a consumer.
type Handle uint

// Consumer receives a resolved model, item by item, in declaration order.  A
// consumer would typically be a solver building its own representation.
type Consumer interface {
	AddParameter(p *Parameter) error
	// AddVariable returns the consumer's identity for the variable.
	AddVariable(v *Variable) (Handle, error)
	AddConstraint(c *Constraint) error
	// SetSearch is called only when the model has a search configuration.
	SetSearch(s *search.Spec) error
	SetGoal(g *SolveGoal) error
}

// Registration records the identities given to variables by a consumer.
type Registration struct {
	handles map[*Variable]Handle
}

// Handle returns the identity given to a variable, or false if it was never
// registered.
func (p Registration) Handle(v *Variable) (Handle, bool) {
	h, ok := p.handles[v]
	return h, ok
}

// Register hands a model over to a consumer, stopping at the first item it
// rejects.
func Register(m *Model, consumer Consumer) (Registration, error) {
	reg := Registration{make(map[*Variable]Handle)}
	//
	for _, p := range m.Parameters {
		if err := consumer.AddParameter(p); err != nil {
			return reg, fmt.Errorf("parameter %s: %w", p.Name, err)
		}
	}
	//
	for _, v := range m.Variables {
		h, err := consumer.AddVariable(v)
		if err != nil {
			return reg, fmt.Errorf("variable %s: %w", v.Name, err)
		}
		//
		reg.handles[v] = h
	}
	//
	for _, c := range m.Constraints {
		if err := consumer.AddConstraint(c); err != nil {
			return reg, fmt.Errorf("constraint %s: %w", c.Name, err)
		}
	}
	//
	if m.Search.HasValue() {
		if err := consumer.SetSearch(m.Search.Unwrap()); err != nil {
			return reg, fmt.Errorf("search: %w", err)
		}
	}
	//
	if err := consumer.SetGoal(m.Goal); err != nil {
		return reg, fmt.Errorf("solve goal: %w", err)
	}
	//
	return reg, nil
}
