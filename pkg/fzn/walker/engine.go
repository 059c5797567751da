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
package walker

import (
	"fmt"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/diag"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
	"github.com/chocoteam/choco-solver-sub000/pkg/util"
)

// ENGINE [group+, structure]
func (w *walker) walkEngine(node *ast.Node) *search.Spec {
	var (
		n    = len(node.Children) - 1
		spec = &search.Spec{}
	)
	//
	for _, child := range node.Children[:n] {
		if group := w.walkGroup(child); group != nil {
			spec.Groups = append(spec.Groups, group)
		}
	}
	//
	spec.Structure = w.walkStructure(node.Last())
	w.srcmap.Put(spec, node.Span)
	//
	return spec
}

// GROUP [predicate]
//
// A group cannot refer to itself, since its predicate is walked before it is
// declared.
func (w *walker) walkGroup(node *ast.Node) *search.Group {
	group := &search.Group{Name: node.Name(), Predicate: w.walkPredicate(node.Child(0))}
	//
	if !w.declare(w.groups.Declare(group.Name, group), node) {
		return nil
	}
	//
	w.srcmap.Put(group, node.Span)
	//
	return group
}

func (w *walker) walkPredicate(node *ast.Node) search.Predicate {
	switch node.Kind {
	case ast.PRED_TRUE:
		return &search.True{}
	case ast.PRED_CMP:
		op, ok := search.ParseComparator(node.Name())
		if !ok {
			panic(fmt.Sprintf("unknown comparator %s", node.Name()))
		}
		//
		return &search.Compare{Attribute: attribute(node.Child(0)), Op: op, Value: node.Child(1).Int()}
	case ast.PRED_IN:
		var groups = make([]string, len(node.Children))
		//
		for i, child := range node.Children {
			groups[i] = child.Name()
			w.checkGroup(child)
		}
		//
		return &search.Member{Groups: groups}
	case ast.PRED_AND:
		return &search.And{Operands: w.walkPredicates(node.Children)}
	case ast.PRED_OR:
		return &search.Or{Operands: w.walkPredicates(node.Children)}
	case ast.PRED_NOT:
		return &search.Not{Operand: w.walkPredicate(node.Child(0))}
	}
	//
	panic(fmt.Sprintf("unknown predicate %s", node.Kind))
}

func (w *walker) walkPredicates(nodes []*ast.Node) []search.Predicate {
	preds := make([]search.Predicate, len(nodes))
	//
	for i, n := range nodes {
		preds[i] = w.walkPredicate(n)
	}
	//
	return preds
}

// ============================================================================
// Structures
// ============================================================================

func (w *walker) walkStructure(node *ast.Node) search.Structure {
	var structure search.Structure
	//
	switch node.Kind {
	case ast.STRUCT_PLAIN:
		coll := collection(node.Child(0))
		elements := w.walkElements(node.Children[1:], coll, node)
		structure = &search.Plain{Elements: elements, Collection: coll}
	case ast.STRUCT_COMBINED:
		coll := collection(node.Child(0))
		comb := combinator(node.Child(1))
		elements := w.walkElements(node.Children[2:], coll, node)
		structure = &search.Combined{Elements: elements, Combinator: comb, Collection: coll}
	case ast.STRUCT_REG:
		return w.walkRegistered(node)
	default:
		panic(fmt.Sprintf("unknown structure %s", node.Kind))
	}
	//
	w.srcmap.Put(structure, node.Span)
	//
	return structure
}

// STRUCT_REG [collection, many, combinator?]
func (w *walker) walkRegistered(node *ast.Node) *search.Registered {
	var comb = util.None[search.CombAttr]()
	//
	w.checkGroup(node)
	//
	if len(node.Children) > 2 {
		comb = util.Some(combinator(node.Child(2)))
	}
	//
	reg := &search.Registered{
		Group:      node.Name(),
		Spec:       w.walkMany(node.Child(1)),
		Collection: collection(node.Child(0)),
		Combinator: comb,
	}
	//
	w.srcmap.Put(reg, node.Span)
	//
	return reg
}

// Walk the elements of a collection, checking that their keys are consistent
// with the kind of collection.  Elements of a heap are ordered by their keys,
// and so every element requires one.  A list is either ordered by keys, or by
// position, but not both.
func (w *walker) walkElements(nodes []*ast.Node, coll search.Collection, parent *ast.Node) []search.Element {
	var (
		elements = make([]search.Element, len(nodes))
		keyed    int
	)
	//
	for i, n := range nodes {
		elements[i] = w.walkElement(n)
		//
		if search.Keyed(elements[i]) {
			keyed++
		} else if coll.Sorted() {
			w.report(diag.SHAPE_VIOLATION, n.Span, "heap element requires a key")
		}
	}
	//
	if coll.Kind == search.LIST && keyed != 0 && keyed != len(elements) {
		w.report(diag.SHAPE_VIOLATION, parent.Span, "list elements must all have keys or none")
	}
	//
	if len(elements) == 1 {
		w.report(diag.SINGLE_ELEMENT_COLLECTION, parent.Span,
			fmt.Sprintf("%s holds a single element", coll.Name()))
	}
	//
	return elements
}

func (w *walker) walkElement(node *ast.Node) search.Element {
	switch node.Kind {
	case ast.ELT_GROUP:
		var key = util.None[search.Attribute]()
		//
		w.checkGroup(node)
		//
		if len(node.Children) > 0 {
			key = util.Some(attribute(node.Child(0)))
		}
		//
		return &search.GroupRef{Name: node.Name(), Key: key}
	case ast.STRUCT_REG:
		return &search.Split{Structure: w.walkRegistered(node)}
	default:
		return &search.Nested{Structure: w.walkStructure(node)}
	}
}

// MANY [attribute, collection, combinator?]
// MANY_EACH [attribute, collection, many, combinator?]
//
// Splitting each part of a split again only makes sense on an attribute whose
// value changes during search.
func (w *walker) walkMany(node *ast.Node) *search.Many {
	var (
		attr   = attribute(node.Child(0))
		coll   = collection(node.Child(1))
		comb   = util.None[search.CombAttr]()
		nested *search.Many
		next   = 2
	)
	//
	if node.Kind == ast.MANY_EACH {
		if !attr.IsDynamic() {
			w.report(diag.SHAPE_VIOLATION, node.Child(0).Span,
				fmt.Sprintf("each requires a dynamic attribute, found %s", attr))
		}
		//
		nested = w.walkMany(node.Child(2))
		next = 3
	}
	//
	if len(node.Children) > next {
		comb = util.Some(combinator(node.Child(next)))
	}
	//
	return &search.Many{Attribute: attr, Collection: coll, Nested: nested, Combinator: comb}
}

// Check that a node names a previously declared group.
func (w *walker) checkGroup(node *ast.Node) {
	var name = node.Name()
	//
	if !w.groups.Has(name) {
		w.unresolved(diag.UNRESOLVED_GROUP_REFERENCE, node.Span, fmt.Sprintf("unknown group %s", name), name,
			w.groups.Names())
	}
}

// ============================================================================
// Helpers
// ============================================================================

func attribute(node *ast.Node) search.Attribute {
	attr, ok := search.ParseAttribute(node.Name())
	if !ok {
		panic(fmt.Sprintf("unknown attribute %s", node.Name()))
	}
	//
	return attr
}

func collection(node *ast.Node) search.Collection {
	it, ok := search.ParseIteration(node.Name())
	if !ok {
		panic(fmt.Sprintf("unknown iteration %s", node.Name()))
	}
	//
	switch node.Kind {
	case ast.COLL_QUEUE:
		return search.Queue(it)
	case ast.COLL_LIST:
		return search.List(false, it)
	case ast.COLL_REV_LIST:
		return search.List(true, it)
	case ast.COLL_MIN_HEAP:
		return search.Heap(false, it)
	case ast.COLL_MAX_HEAP:
		return search.Heap(true, it)
	}
	//
	panic(fmt.Sprintf("unknown collection %s", node.Kind))
}

// COMB_CHAIN [op+, attribute?]
// COMB_MANDATORY [op+, attribute]
func combinator(node *ast.Node) search.CombAttr {
	var (
		ops  []search.ReduceOp
		attr = util.None[search.Attribute]()
	)
	//
	for _, child := range node.Children {
		if child.Kind == ast.ATTRIBUTE {
			attr = util.Some(attribute(child))
		} else if op, ok := search.ParseReduceOp(child.Name()); ok {
			ops = append(ops, op)
		} else {
			panic(fmt.Sprintf("unknown reducer %s", child.Name()))
		}
	}
	//
	// Unreachable from text, see search.MandatoryChain
	if node.Kind == ast.COMB_MANDATORY {
		return &search.MandatoryChain{Ops: ops, Attribute: attr.Unwrap()}
	}
	//
	return &search.Chain{Ops: ops, Attribute: attr}
}
