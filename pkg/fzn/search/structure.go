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

	"github.com/chocoteam/choco-solver-sub000/pkg/util"
)

// Spec is a complete search configuration, consisting of the groups and the
// structure arranging them.
type Spec struct {
	Groups    []*Group
	Structure Structure
}

func (p *Spec) String() string {
	var builder strings.Builder
	//
	for _, g := range p.Groups {
		builder.WriteString(g.String())
		builder.WriteString("\n")
	}
	//
	builder.WriteString(p.Structure.String())
	builder.WriteString(";")
	//
	return builder.String()
}

// CollectionKind identifies the kind of a collection.
type CollectionKind uint8

const (
	// QUEUE is a first-in first-out collection.
	QUEUE CollectionKind = iota
	// LIST is an ordered collection.
	LIST
	// HEAP is a collection ordered by key.
	HEAP
)

// Iteration determines how a collection is traversed when propagating.
type Iteration uint8

const (
	// ONE removes a single element at a time.
	ONE Iteration = iota
	// WONE removes a single element at a time, until a fixpoint.
	WONE
	// FOR iterates over all elements.
	FOR
	// WFOR iterates over all elements, until a fixpoint.
	WFOR
)

var iterations = []string{"one", "wone", "for", "wfor"}

// ParseIteration returns the iteration with a given name.
func ParseIteration(name string) (Iteration, bool) {
	for i, n := range iterations {
		if n == name {
			return Iteration(i), true
		}
	}
	//
	return 0, false
}

func (it Iteration) String() string {
	return iterations[it]
}

// Collection arranges the elements of a structure.
type Collection struct {
	Kind CollectionKind
	// Reversed applies only to lists, and Max only to heaps.
	Reversed, Max bool
	Iteration     Iteration
}

// Queue constructs a queue collection.
func Queue(it Iteration) Collection {
	return Collection{QUEUE, false, false, it}
}

// List constructs a (possibly reversed) list collection.
func List(reversed bool, it Iteration) Collection {
	return Collection{LIST, reversed, false, it}
}

// Heap constructs a min or max heap collection.
func Heap(descending bool, it Iteration) Collection {
	return Collection{HEAP, false, descending, it}
}

// Sorted checks whether this collection orders its elements by key, in which
// case every element requires a key.
func (p Collection) Sorted() bool {
	return p.Kind == HEAP
}

// Name returns the surface name of this collection, excluding its iteration.
func (p Collection) Name() string {
	switch {
	case p.Kind == QUEUE:
		return "queue"
	case p.Kind == LIST && p.Reversed:
		return "rev list"
	case p.Kind == LIST:
		return "list"
	case p.Max:
		return "max heap"
	default:
		return "min heap"
	}
}

// wrap formats some contents within this collection.
func (p Collection) wrap(contents string) string {
	if contents == "" {
		return fmt.Sprintf("%s(%s)", p.Name(), p.Iteration)
	}
	//
	return fmt.Sprintf("%s(%s(%s))", p.Name(), p.Iteration, contents)
}

// CombAttr determines how a group of entities is reduced to a key.
type CombAttr interface {
	fmt.Stringer
	// Reducers returns the chain of reducers, outermost first.
	Reducers() []ReduceOp
	// Projection returns the attribute projected from each entity, if any.
	Projection() util.Option[Attribute]
}

// Chain is a sequence of one or more reducers, optionally ending with an
// attribute.
type Chain struct {
	Ops       []ReduceOp
	Attribute util.Option[Attribute]
}

// MandatoryChain is a sequence of one or more reducers which must end with an
// attribute.  The parser never produces one, since the same text is also a
// Chain and that alternative is tried first.  Printing a MandatoryChain and
// parsing it back therefore gives a Chain with the same reducers and
// projection, rather than an equal model.
type MandatoryChain struct {
	Ops       []ReduceOp
	Attribute Attribute
}

// Reducers implementation for CombAttr interface.
func (p *Chain) Reducers() []ReduceOp {
	return p.Ops
}

// Projection implementation for CombAttr interface.
func (p *Chain) Projection() util.Option[Attribute] {
	return p.Attribute
}

// Reducers implementation for CombAttr interface.
func (p *MandatoryChain) Reducers() []ReduceOp {
	return p.Ops
}

// Projection implementation for CombAttr interface.
func (p *MandatoryChain) Projection() util.Option[Attribute] {
	return util.Some(p.Attribute)
}

func (p *Chain) String() string {
	return formatChain(p.Ops, p.Attribute)
}

func (p *MandatoryChain) String() string {
	return formatChain(p.Ops, util.Some(p.Attribute))
}

// Key reduces a flat group of entities using the innermost reducer of a
// combinator.  Without a projected attribute, the identity of each entity is
// used.
func Key(comb CombAttr, entities []Entity) int64 {
	var (
		ops    = comb.Reducers()
		attr   = comb.Projection().UnwrapOr(VNAME)
		values = make([]int64, len(entities))
	)
	//
	for i, e := range entities {
		values[i] = e.Attribute(attr)
	}
	//
	return ops[len(ops)-1].Apply(values)
}

func formatChain(ops []ReduceOp, attr util.Option[Attribute]) string {
	strs := make([]string, 0, len(ops)+1)
	//
	for _, op := range ops {
		strs = append(strs, op.String())
	}
	//
	if attr.HasValue() {
		strs = append(strs, attr.Unwrap().String())
	}
	//
	return strings.Join(strs, ".")
}

// Structure arranges groups of entities for propagation.
type Structure interface {
	fmt.Stringer
	// Coll returns the collection at the root of this structure.
	Coll() Collection
}

// Plain is a structure whose elements have no combinator.
type Plain struct {
	Elements   []Element
	Collection Collection
}

// Combined is a structure whose elements are reduced by a combinator.
type Combined struct {
	Elements   []Element
	Combinator CombAttr
	Collection Collection
}

// Registered is a structure built by splitting a group according to a many
// specification.
type Registered struct {
	Group      string
	Spec       *Many
	Collection Collection
	Combinator util.Option[CombAttr]
}

// Coll implementation for Structure interface.
func (p *Plain) Coll() Collection {
	return p.Collection
}

// Coll implementation for Structure interface.
func (p *Combined) Coll() Collection {
	return p.Collection
}

// Coll implementation for Structure interface.
func (p *Registered) Coll() Collection {
	return p.Collection
}

func (p *Plain) String() string {
	return p.Collection.wrap(formatElements(p.Elements))
}

func (p *Combined) String() string {
	return fmt.Sprintf("%s key %s", p.Collection.wrap(formatElements(p.Elements)), p.Combinator)
}

func (p *Registered) String() string {
	return fmt.Sprintf("%s as %s%s", p.Group, p.Collection.wrap(p.Spec.String()), formatKey(p.Combinator))
}

// Element is one element of a plain or combined structure.
type Element interface {
	fmt.Stringer
	element()
}

// GroupRef is an element referring to a group, with an optional key.
type GroupRef struct {
	Name string
	Key  util.Option[Attribute]
}

// Nested is an element holding a plain or combined structure.
type Nested struct {
	Structure Structure
}

// Split is an element holding a registered structure.
type Split struct {
	Structure *Registered
}

func (*GroupRef) element() {}
func (*Nested) element()   {}
func (*Split) element()    {}

func (p *GroupRef) String() string {
	if p.Key.HasValue() {
		return fmt.Sprintf("%s key %s", p.Name, p.Key.Unwrap())
	}
	//
	return p.Name
}

func (p *Nested) String() string {
	return p.Structure.String()
}

func (p *Split) String() string {
	return p.Structure.String()
}

// Keyed checks whether an element carries a key, as required by sorted
// collections.
func Keyed(elem Element) bool {
	switch e := elem.(type) {
	case *GroupRef:
		return e.Key.HasValue()
	case *Nested:
		_, ok := e.Structure.(*Combined)
		return ok
	case *Split:
		return e.Structure.Combinator.HasValue()
	}
	//
	return false
}

// Many splits entities into groups by the value of an attribute.  The groups
// are arranged in a collection and may, recursively, be split again.
type Many struct {
	Attribute  Attribute
	Collection Collection
	// Optional nested split, which makes this an "each" split.
	Nested     *Many
	Combinator util.Option[CombAttr]
}

func (p *Many) String() string {
	if p.Nested == nil {
		return fmt.Sprintf("%s as %s%s", p.Attribute, p.Collection.wrap(""), formatKey(p.Combinator))
	}
	//
	return fmt.Sprintf("each %s as %s%s", p.Attribute, p.Collection.wrap(p.Nested.String()), formatKey(p.Combinator))
}

func formatKey(comb util.Option[CombAttr]) string {
	if comb.HasValue() {
		return fmt.Sprintf(" key %s", comb.Unwrap())
	}
	//
	return ""
}

func formatElements(elems []Element) string {
	strs := make([]string, len(elems))
	//
	for i, e := range elems {
		strs[i] = e.String()
	}
	//
	return strings.Join(strs, ",")
}

// Groups returns the names of the groups referenced by a structure, in order of
// first reference.
func Groups(s Structure) []string {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	//
	visit(s, func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	})
	//
	return names
}

func visit(s Structure, fn func(string)) {
	var elements []Element
	//
	switch s := s.(type) {
	case *Plain:
		elements = s.Elements
	case *Combined:
		elements = s.Elements
	case *Registered:
		fn(s.Group)
	}
	//
	for _, e := range elements {
		switch e := e.(type) {
		case *GroupRef:
			fn(e.Name)
		case *Nested:
			visit(e.Structure, fn)
		case *Split:
			visit(e.Structure, fn)
		}
	}
}
