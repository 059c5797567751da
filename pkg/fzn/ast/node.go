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

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/chocoteam/choco-solver-sub000/pkg/util"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// Node is an element of the abstract syntax tree produced by the parser.  A
// node is never modified after construction, and its children are owned
// exclusively by it.
type Node struct {
	Kind Kind
	// Text of the originating token (e.g. a name or a literal), where the kind
	// of node requires one.
	Text util.Option[string]
	// Children, whose number is fixed by the kind of node.
	Children []*Node
	// Span of source text covered by this node.
	Span source.Span
}

// New constructs an unnamed node of a given kind.  This panics if the kind
// requires text, or if the number of children is invalid for the kind.
func New(kind Kind, span source.Span, children ...*Node) *Node {
	return construct(kind, util.None[string](), span, children)
}

// Named constructs a node of a given kind carrying some text.  This panics if
// the kind does not carry text, or if the number of children is invalid for
// the kind.
func Named(kind Kind, text string, span source.Span, children ...*Node) *Node {
	return construct(kind, util.Some(text), span, children)
}

func construct(kind Kind, text util.Option[string], span source.Span, children []*Node) *Node {
	a, ok := arities[kind]
	//
	switch {
	case !ok:
		panic(fmt.Sprintf("unknown node kind %d", kind))
	case a.named != text.HasValue():
		panic(fmt.Sprintf("node %s has invalid text %s", kind, text))
	case len(children) < a.min || len(children) > a.max:
		panic(fmt.Sprintf("node %s has invalid arity %d", kind, len(children)))
	}
	//
	for _, c := range children {
		if c == nil {
			panic(fmt.Sprintf("node %s has missing child", kind))
		}
	}
	//
	return &Node{kind, text, children, span}
}

// Name returns the text of this node, or panics if it has none.
func (p *Node) Name() string {
	return p.Text.Unwrap()
}

// Int returns the value of an integer literal node.  The parser only ever
// constructs such nodes with canonical decimal text, hence this panics
// otherwise.
func (p *Node) Int() int64 {
	v, err := strconv.ParseInt(p.Name(), 10, 64)
	if err != nil {
		panic(err.Error())
	}
	//
	return v
}

// Float returns the value of a floating point literal node, panicking if its
// text is invalid.
func (p *Node) Float() float64 {
	v, err := strconv.ParseFloat(p.Name(), 64)
	if err != nil {
		panic(err.Error())
	}
	//
	return v
}

// Child returns the ith child of this node.
func (p *Node) Child(i int) *Node {
	return p.Children[i]
}

// Last returns the final child of this node, or nil if there are no children.
func (p *Node) Last() *Node {
	if len(p.Children) == 0 {
		return nil
	}
	//
	return p.Children[len(p.Children)-1]
}

// Find returns the first child of a given kind, or nil if there is none.
func (p *Node) Find(kinds ...Kind) *Node {
	for _, c := range p.Children {
		for _, k := range kinds {
			if c.Kind == k {
				return c
			}
		}
	}
	//
	return nil
}

// String returns an s-expression rendering of this node, which is useful for
// debugging and testing.
func (p *Node) String() string {
	var builder strings.Builder
	//
	p.write(&builder)
	//
	return builder.String()
}

func (p *Node) write(builder *strings.Builder) {
	if len(p.Children) == 0 && p.Text.IsEmpty() {
		builder.WriteString(p.Kind.String())
		return
	}
	//
	builder.WriteString("(")
	builder.WriteString(p.Kind.String())
	//
	if p.Text.HasValue() {
		builder.WriteString(" ")
		builder.WriteString(strconv.Quote(p.Text.Unwrap()))
	}
	//
	for _, c := range p.Children {
		builder.WriteString(" ")
		c.write(builder)
	}
	//
	builder.WriteString(")")
}
