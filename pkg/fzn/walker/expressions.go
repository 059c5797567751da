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
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/model"
)

// ============================================================================
// Declarations
// ============================================================================

// Translate a type node into a declaration.  This cannot fail, since the shape
// of every type node is fixed by the parser.
func (w *walker) walkType(node *ast.Node) model.Declaration {
	switch node.Kind {
	case ast.TYPE_BOOL:
		return &model.Bool{}
	case ast.TYPE_FLOAT:
		return &model.Float{}
	case ast.TYPE_INT:
		return &model.Int{}
	case ast.TYPE_INT_RANGE:
		return &model.IntRange{Lo: node.Child(0).Int(), Hi: node.Child(1).Int()}
	case ast.TYPE_FLOAT_RANGE:
		return &model.FloatRange{Lo: node.Child(0).Float(), Hi: node.Child(1).Float()}
	case ast.TYPE_INT_SET:
		return &model.IntSet{Values: ints(node.Children)}
	case ast.TYPE_SET:
		return &model.Set{Elem: w.walkType(node.Child(0))}
	case ast.TYPE_ARRAY:
		var (
			n    = len(node.Children) - 1
			dims = make([]model.IndexDomain, n)
		)
		//
		for i, index := range node.Children[:n] {
			if index.Kind == ast.INDEX_INT {
				dims[i] = model.Unbounded()
			} else {
				dims[i] = model.Range(index.Child(0).Int(), index.Child(1).Int())
			}
		}
		//
		return &model.Array{Dims: dims, Elem: w.walkType(node.Last())}
	}
	//
	panic(fmt.Sprintf("unknown type %s", node.Kind))
}

func ints(nodes []*ast.Node) []int64 {
	values := make([]int64, len(nodes))
	//
	for i, n := range nodes {
		values[i] = n.Int()
	}
	//
	return values
}

// ============================================================================
// Expressions
// ============================================================================

func (w *walker) walkAnnotations(node *ast.Node) []*model.Annotation {
	var anns []*model.Annotation
	//
	for _, child := range node.Children {
		anns = append(anns, w.walkAnnotation(child))
	}
	//
	return anns
}

// Annotation names are not resolved, since annotations are interpreted only by
// the consumer of a model.  However, their arguments are.
func (w *walker) walkAnnotation(node *ast.Node) *model.Annotation {
	args := make([]model.Expression, len(node.Children))
	//
	for i, arg := range node.Children {
		args[i] = w.walkExpr(arg, true)
	}
	//
	return &model.Annotation{Name: node.Name(), Args: args}
}

// Translate an expression node, resolving any identifiers it contains.  Within
// an annotation, an identifier which does not resolve is an annotation atom
// (e.g. "input_order") rather than an error.
func (w *walker) walkExpr(node *ast.Node, annotation bool) model.Expression {
	switch node.Kind {
	case ast.INT:
		return &model.IntLit{Value: node.Int()}
	case ast.FLOAT:
		return &model.FloatLit{Value: node.Float()}
	case ast.BOOL:
		return &model.BoolLit{Value: node.Name() == "true"}
	case ast.STRING:
		return &model.StringLit{Value: node.Name()}
	case ast.SET_LIST:
		return &model.SetList{Values: ints(node.Children)}
	case ast.SET_RANGE:
		return &model.SetRange{Lo: node.Child(0).Int(), Hi: node.Child(1).Int()}
	case ast.ARRAY_LIT:
		elements := make([]model.Expression, len(node.Children))
		//
		for i, child := range node.Children {
			elements[i] = w.walkExpr(child, annotation)
		}
		//
		return &model.ArrayLit{Elements: elements}
	case ast.ANNOTATION:
		return w.walkAnnotation(node)
	case ast.IDENT:
		return w.walkIdentifier(node, annotation)
	case ast.ARRAY_ELEM:
		return w.walkArrayElem(node)
	}
	//
	panic(fmt.Sprintf("unknown expression %s", node.Kind))
}

func (w *walker) walkIdentifier(node *ast.Node, annotation bool) model.Expression {
	var name = node.Name()
	//
	if target := w.symbols.Resolve(name); target.HasValue() {
		return &model.Identifier{Name: name, Target: target.Unwrap()}
	} else if annotation {
		return &model.Annotation{Name: name}
	}
	//
	w.unresolved(diag.UNRESOLVED_IDENTIFIER, node.Span, fmt.Sprintf("unknown identifier %s", name), name,
		w.symbols.Names())
	//
	return &model.Unresolved{Name: name}
}

// ARRAY_ELEM [index]
func (w *walker) walkArrayElem(node *ast.Node) model.Expression {
	var (
		name   = node.Name()
		index  = node.Child(0).Int()
		target = w.symbols.Resolve(name)
	)
	//
	if target.IsEmpty() {
		w.unresolved(diag.UNRESOLVED_IDENTIFIER, node.Span, fmt.Sprintf("unknown identifier %s", name), name,
			w.symbols.Names())
		//
		return &model.Unresolved{Name: name}
	}
	//
	sym := target.Unwrap()
	//
	if arr, ok := sym.Type().(*model.Array); !ok {
		w.report(diag.SHAPE_VIOLATION, node.Span, fmt.Sprintf("%s is not an array", name))
	} else if len(arr.Dims) == 1 && !arr.Dims[0].Contains(index) {
		w.report(diag.SHAPE_VIOLATION, node.Child(0).Span, fmt.Sprintf("index %d out of bounds for %s", index, name))
	}
	//
	return &model.IdArrayElem{Name: name, Index: index, Target: sym}
}

// Check the length of an array literal assigned to a one dimensional array with
// a bounded index set.
func (w *walker) checkArrayLiteral(decl model.Declaration, value model.Expression, node *ast.Node) {
	var (
		arr, isArr = decl.(*model.Array)
		lit, isLit = value.(*model.ArrayLit)
	)
	//
	if !isArr || !isLit || len(arr.Dims) != 1 || arr.Dims[0].Unbounded {
		return
	}
	//
	if n, expected := int64(len(lit.Elements)), arr.Dims[0].Size(); n != expected {
		w.report(diag.SHAPE_VIOLATION, node.Span,
			fmt.Sprintf("array literal has %d elements, expected %d", n, expected))
	}
}
