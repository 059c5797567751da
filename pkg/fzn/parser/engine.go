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
package parser

import (
	"fmt"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/lexer"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// ============================================================================
// Groups
// ============================================================================

// IDENT ':' predicates ';'
func (p *Parser) parseGroupDecl() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		name  string
		pred  *ast.Node
		errs  []source.SyntaxError
	)
	//
	if name, _, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.COLON); len(errs) > 0 {
		return nil, errs
	} else if pred, errs = p.parsePredicates(); len(errs) > 0 {
		return nil, errs
	}
	//
	span := p.spanFrom(start)
	//
	if _, errs = p.expect(lexer.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(ast.GROUP, name, span, pred), nil
}

// predicate | '(' predicates ('&&' predicates)+ ')' | '(' predicates ('||' predicates)+ ')'
//
// The conjunctive and disjunctive forms share an arbitrarily long prefix, and
// so are distinguished by trying each in turn.  Both trials parse the same
// nested predicates, so outcomes are memoised by start index.  Otherwise each
// level of nesting would double the work.
func (p *Parser) parsePredicates() (*ast.Node, []source.SyntaxError) {
	var start = p.index
	//
	if m, ok := p.predicates[start]; ok {
		if len(m.errs) == 0 {
			p.index = m.end
		}
		//
		return m.node, m.errs
	}
	//
	node, errs := p.parseUnmemoisedPredicates()
	p.predicates[start] = memo{node, p.index, errs}
	//
	return node, errs
}

func (p *Parser) parseUnmemoisedPredicates() (*ast.Node, []source.SyntaxError) {
	if !p.follows(lexer.LBRACE) {
		return p.parsePredicate()
	}
	//
	conj, cerrs := speculate(p, func() (*ast.Node, []source.SyntaxError) {
		return p.parsePredicateList(lexer.AND, ast.PRED_AND)
	})
	//
	if len(cerrs) == 0 {
		return conj, nil
	}
	//
	disj, derrs := speculate(p, func() (*ast.Node, []source.SyntaxError) {
		return p.parsePredicateList(lexer.OR, ast.PRED_OR)
	})
	//
	if len(derrs) == 0 {
		return disj, nil
	}
	//
	return nil, furthest(cerrs, derrs)
}

// Parse a parenthesised list of two or more predicates separated by a given
// operator.  Nested lists of the same kind are flattened.
func (p *Parser) parsePredicateList(op uint, kind ast.Kind) (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		operands []*ast.Node
	)
	//
	if _, errs := p.expect(lexer.LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(operands) == 0 || p.match(op) {
		operand, errs := p.parsePredicates()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		if operand.Kind == kind {
			operands = append(operands, operand.Children...)
		} else {
			operands = append(operands, operand)
		}
	}
	//
	if len(operands) < 2 {
		// Force the operator to be reported as missing
		if _, errs := p.expect(op); len(errs) > 0 {
			return nil, errs
		}
	} else if _, errs := p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.New(kind, p.spanFrom(start), operands...), nil
}

// 'true' | attribute cmp INT | 'in' '(' IDENT (',' IDENT)* ')' | '!' predicates
func (p *Parser) parsePredicate() (*ast.Node, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
	)
	//
	switch {
	case p.match(lexer.KEYWORD_TRUE):
		return ast.New(ast.PRED_TRUE, lookahead.Span), nil
	case p.match(lexer.NOT):
		operand, errs := p.parsePredicates()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.New(ast.PRED_NOT, p.spanFrom(start), operand), nil
	case p.followsWord(wordIn) && p.peek(1).Kind == lexer.LBRACE:
		return p.parseMember()
	case p.followsAttribute():
		return p.parseComparison()
	}
	//
	return nil, p.syntaxErrors(lookahead, "expected predicate")
}

// attribute cmp INT
func (p *Parser) parseComparison() (*ast.Node, []source.SyntaxError) {
	var start = p.index
	//
	attr, errs := p.parseAttribute()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	lookahead := p.lookahead()
	cmp, ok := comparators[lookahead.Kind]
	//
	if !ok {
		return nil, p.syntaxErrors(lookahead, "expected comparator")
	}
	//
	p.index++
	//
	value, errs := p.parseInt()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(ast.PRED_CMP, cmp, p.spanFrom(start), attr, value), nil
}

// 'in' '(' IDENT (',' IDENT)* ')'
func (p *Parser) parseMember() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		names []*ast.Node
	)
	//
	if _, errs := p.expectWord(wordIn); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(names) == 0 || p.match(lexer.COMMA) {
		name, tok, errs := p.parseIdentifier()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		names = append(names, ast.Named(ast.IDENT, name, tok.Span))
	}
	//
	if _, errs := p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.New(ast.PRED_IN, p.spanFrom(start), names...), nil
}

// ============================================================================
// Structures
// ============================================================================

// (struct | struct_reg) ';'
func (p *Parser) parseStructureDecl() (*ast.Node, []source.SyntaxError) {
	node, errs := p.parseStructure()
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return node, nil
}

// struct | struct_reg
func (p *Parser) parseStructure() (*ast.Node, []source.SyntaxError) {
	switch {
	case p.followsCollection():
		return p.parseStruct()
	case p.follows(lexer.IDENTIFIER) && p.isWord(p.peek(1), wordAs):
		return p.parseStructReg()
	}
	//
	return nil, p.syntaxErrors(p.lookahead(), "expected structure")
}

// coll '(' iter '(' elt (',' elt)* ')' ')' ('key' comb_attr)?
//
// A structure without a combinator is plain, otherwise it is combined.
func (p *Parser) parseStruct() (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		elements []*ast.Node
	)
	//
	coll, errs := p.parseCollection()
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(elements) == 0 || p.match(lexer.COMMA) {
		element, errs := p.parseElement()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		elements = append(elements, element)
	}
	//
	if _, errs = p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	if !p.matchWord(wordKey) {
		return ast.New(ast.STRUCT_PLAIN, p.spanFrom(start), append([]*ast.Node{coll}, elements...)...), nil
	}
	//
	comb, errs := p.parseCombAttr()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	children := append([]*ast.Node{coll, comb}, elements...)
	//
	return ast.New(ast.STRUCT_COMBINED, p.spanFrom(start), children...), nil
}

// IDENT 'as' coll '(' iter '(' many ')' ')' ('key' comb_attr)?
func (p *Parser) parseStructReg() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		name  string
		coll  *ast.Node
		many  *ast.Node
		errs  []source.SyntaxError
	)
	//
	if name, _, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expectWord(wordAs); len(errs) > 0 {
		return nil, errs
	} else if coll, errs = p.parseCollection(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.LBRACE); len(errs) > 0 {
		return nil, errs
	} else if many, errs = p.parseMany(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	children := []*ast.Node{coll, many}
	//
	if p.matchWord(wordKey) {
		comb, errs := p.parseCombAttr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		children = append(children, comb)
	}
	//
	return ast.Named(ast.STRUCT_REG, name, p.spanFrom(start), children...), nil
}

// struct | struct_reg | IDENT ('key' attribute)?
func (p *Parser) parseElement() (*ast.Node, []source.SyntaxError) {
	var start = p.index
	//
	if p.followsCollection() {
		return p.parseStruct()
	} else if p.follows(lexer.IDENTIFIER) && p.isWord(p.peek(1), wordAs) {
		return p.parseStructReg()
	}
	//
	name, _, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	} else if !p.matchWord(wordKey) {
		return ast.Named(ast.ELT_GROUP, name, p.spanFrom(start)), nil
	}
	//
	key, errs := p.parseAttribute()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(ast.ELT_GROUP, name, p.spanFrom(start), key), nil
}

// attribute 'as' coll '(' iter ')' ('key' comb_attr)?
// | 'each' attribute 'as' coll '(' iter '(' many ')' ')' ('key' comb_attr)?
func (p *Parser) parseMany() (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		each     = p.matchWord(wordEach)
		kind     = ast.MANY
		children []*ast.Node
	)
	//
	attr, errs := p.parseAttribute()
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expectWord(wordAs); len(errs) > 0 {
		return nil, errs
	}
	//
	coll, errs := p.parseCollection()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	children = append(children, attr, coll)
	//
	if each {
		kind = ast.MANY_EACH
		//
		if _, errs = p.expect(lexer.LBRACE); len(errs) > 0 {
			return nil, errs
		}
		//
		nested, errs := p.parseMany()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(lexer.RBRACE); len(errs) > 0 {
			return nil, errs
		}
		//
		children = append(children, nested)
	}
	//
	if _, errs = p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	if p.matchWord(wordKey) {
		comb, errs := p.parseCombAttr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		children = append(children, comb)
	}
	//
	return ast.New(kind, p.spanFrom(start), children...), nil
}

// coll '(' iter
//
// where coll is one of 'queue', 'list', 'rev' 'list', 'min' 'heap' or 'max'
// 'heap', and iter is one of 'one', 'wone', 'for' or 'wfor'.  Queues and heaps
// can only be iterated with 'one' or 'wone'.  The resulting node is named by
// its iteration.
func (p *Parser) parseCollection() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		kind  ast.Kind
	)
	//
	switch {
	case p.matchWord(wordQueue):
		kind = ast.COLL_QUEUE
	case p.matchWord(wordList):
		kind = ast.COLL_LIST
	case p.matchWord(wordRev):
		kind = ast.COLL_REV_LIST
		//
		if _, errs := p.expectWord(wordList); len(errs) > 0 {
			return nil, errs
		}
	case p.followsWord(wordMin), p.followsWord(wordMax):
		kind = ast.COLL_MIN_HEAP
		//
		if p.matchWord(wordMax) {
			kind = ast.COLL_MAX_HEAP
		} else {
			p.index++
		}
		//
		if _, errs := p.expectWord(wordHeap); len(errs) > 0 {
			return nil, errs
		}
	default:
		return nil, p.syntaxErrors(p.lookahead(), "expected collection")
	}
	//
	if _, errs := p.expect(lexer.LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	tok, errs := p.expect(lexer.IDENTIFIER)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	iter := p.string(tok)
	//
	switch {
	case kind != ast.COLL_LIST && kind != ast.COLL_REV_LIST && iter != wordOne && iter != wordWone:
		return nil, p.syntaxErrors(tok, fmt.Sprintf("%s requires one or wone", kind))
	case !validIteration(iter):
		return nil, p.syntaxErrors(tok, "expected iteration")
	}
	//
	return ast.Named(kind, iter, p.spanFrom(start)), nil
}

// attr_op ('.' attr_op)* ('.' attribute)? | (attr_op '.')+ attribute
//
// The first alternative is tried before the second.
func (p *Parser) parseCombAttr() (*ast.Node, []source.SyntaxError) {
	chain, cerrs := speculate(p, p.parseChain)
	//
	if len(cerrs) == 0 {
		return chain, nil
	}
	//
	mandatory, merrs := speculate(p, p.parseMandatoryChain)
	//
	if len(merrs) == 0 {
		return mandatory, nil
	}
	//
	return nil, furthest(cerrs, merrs)
}

// attr_op ('.' attr_op)* ('.' attribute)?
func (p *Parser) parseChain() (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		children []*ast.Node
	)
	//
	op, errs := p.parseReduceOp()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	children = append(children, op)
	//
	for p.match(lexer.DOT) {
		if !p.followsReduceOp() {
			attr, errs := p.parseAttribute()
			if len(errs) > 0 {
				return nil, errs
			}
			//
			children = append(children, attr)
			//
			break
		}
		//
		op, errs := p.parseReduceOp()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		children = append(children, op)
	}
	//
	return ast.New(ast.COMB_CHAIN, p.spanFrom(start), children...), nil
}

// (attr_op '.')+ attribute
func (p *Parser) parseMandatoryChain() (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		children []*ast.Node
	)
	//
	for len(children) == 0 || !p.followsAttribute() {
		op, errs := p.parseReduceOp()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(lexer.DOT); len(errs) > 0 {
			return nil, errs
		}
		//
		children = append(children, op)
	}
	//
	attr, errs := p.parseAttribute()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	children = append(children, attr)
	//
	return ast.New(ast.COMB_MANDATORY, p.spanFrom(start), children...), nil
}

func validIteration(iter string) bool {
	switch iter {
	case "one", "wone", "for", "wfor":
		return true
	}
	//
	return false
}
