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
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/lexer"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/search"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source/lex"
)

// Words of the engine language.  These are lexed as identifiers, and are only
// treated as keywords within an engine block.  Thus, a model can freely use
// them as names outside of an engine block.
const (
	wordAs    = "as"
	wordEach  = "each"
	wordIn    = "in"
	wordKey   = "key"
	wordQueue = "queue"
	wordList  = "list"
	wordRev   = "rev"
	wordHeap  = "heap"
	wordMin   = "min"
	wordMax   = "max"
	wordOne   = "one"
	wordWone  = "wone"
)

// Attributes which have their own tokens.
var attributeTokens = map[uint]search.Attribute{
	lexer.ATTRIBUTE_VNAME:  search.VNAME,
	lexer.ATTRIBUTE_VCARD:  search.VCARD,
	lexer.ATTRIBUTE_CNAME:  search.CNAME,
	lexer.ATTRIBUTE_CARITY: search.CARITY,
	lexer.ATTRIBUTE_PPRIO:  search.PPRIO,
	lexer.ATTRIBUTE_PARITY: search.PARITY,
	lexer.ATTRIBUTE_PPRIOD: search.PPRIOD,
}

// Comparators, along with their canonical text.
var comparators = map[uint]string{
	lexer.EQUALS:              search.EQ.String(),
	lexer.EQUALS_EQUALS:       search.EQ.String(),
	lexer.NOT_EQUALS:          search.NEQ.String(),
	lexer.LESS_THAN:           search.LT.String(),
	lexer.GREATER_THAN:        search.GT.String(),
	lexer.LESS_THAN_EQUALS:    search.LEQ.String(),
	lexer.GREATER_THAN_EQUALS: search.GEQ.String(),
}

// Check whether a given token is a given word.
func (p *Parser) isWord(tok lex.Token, word string) bool {
	return tok.Kind == lexer.IDENTIFIER && p.string(tok) == word
}

// Check whether the next token is a given word.
func (p *Parser) followsWord(word string) bool {
	return p.isWord(p.lookahead(), word)
}

// Match attempts to match the given word.
func (p *Parser) matchWord(word string) bool {
	if p.followsWord(word) {
		p.index++
		return true
	}
	//
	return false
}

// Expect returns an error if the next token is not the given word.
func (p *Parser) expectWord(word string) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if !p.isWord(lookahead, word) {
		return lookahead, p.syntaxErrors(lookahead, "expected "+word)
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Check whether the next tokens begin a collection, which is one of "queue",
// "list", "rev list", "min heap" or "max heap" followed by a left brace.
func (p *Parser) followsCollection() bool {
	var (
		first  = p.lookahead()
		second = p.peek(1)
		third  = p.peek(2)
	)
	//
	switch {
	case p.isWord(first, wordQueue), p.isWord(first, wordList):
		return second.Kind == lexer.LBRACE
	case p.isWord(first, wordRev):
		return p.isWord(second, wordList) && third.Kind == lexer.LBRACE
	case p.isWord(first, wordMin), p.isWord(first, wordMax):
		return p.isWord(second, wordHeap) && third.Kind == lexer.LBRACE
	}
	//
	return false
}

// attribute := 'var.name' | 'var.cardinality' | ... | 'vname' | 'vcard' | ...
func (p *Parser) parseAttribute() (*ast.Node, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if attr, ok := attributeTokens[lookahead.Kind]; ok {
		p.index++
		return ast.Named(ast.ATTRIBUTE, attr.String(), lookahead.Span), nil
	} else if lookahead.Kind == lexer.IDENTIFIER {
		if attr, ok := search.ParseAttribute(p.string(lookahead)); ok {
			p.index++
			return ast.Named(ast.ATTRIBUTE, attr.String(), lookahead.Span), nil
		}
	}
	//
	return nil, p.syntaxErrors(lookahead, "expected attribute")
}

// Check whether the next token is an attribute.
func (p *Parser) followsAttribute() bool {
	lookahead := p.lookahead()
	//
	if _, ok := attributeTokens[lookahead.Kind]; ok {
		return true
	} else if lookahead.Kind == lexer.IDENTIFIER {
		_, ok := search.ParseAttribute(p.string(lookahead))
		return ok
	}
	//
	return false
}

// attr_op := 'any' | 'min' | 'max' | 'sum' | 'size'
func (p *Parser) parseReduceOp() (*ast.Node, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind == lexer.IDENTIFIER {
		if op, ok := search.ParseReduceOp(p.string(lookahead)); ok {
			p.index++
			return ast.Named(ast.REDUCE_OP, op.String(), lookahead.Span), nil
		}
	}
	//
	return nil, p.syntaxErrors(lookahead, "expected reducer")
}

// Check whether the next token is a reducer.
func (p *Parser) followsReduceOp() bool {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != lexer.IDENTIFIER {
		return false
	}
	//
	_, ok := search.ParseReduceOp(p.string(lookahead))
	//
	return ok
}
