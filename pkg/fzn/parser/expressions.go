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
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
)

// constraint IDENT '(' expr (',' expr)* ')' annotations ';'
func (p *Parser) parseConstraint() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		name  string
		args  []*ast.Node
		anns  *ast.Node
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(lexer.KEYWORD_CONSTRAINT); len(errs) > 0 {
		return nil, errs
	} else if name, _, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	}
	//
	argStart := p.index
	//
	if args, errs = p.parseArgs(); len(errs) > 0 {
		return nil, errs
	}
	//
	argSpan := p.spanFrom(argStart)
	//
	if anns, errs = p.parseAnnotations(); len(errs) > 0 {
		return nil, errs
	}
	//
	span := p.spanFrom(start)
	//
	if _, errs = p.expect(lexer.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(ast.CONSTRAINT, name, span, ast.New(ast.ARGS, argSpan, args...), anns), nil
}

// solve annotations ('satisfy' | 'minimize' expr | 'maximize' expr) ';'
func (p *Parser) parseSolveGoal() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		anns  *ast.Node
		kind  *ast.Node
		errs  []source.SyntaxError
	)
	//
	if _, errs = p.expect(lexer.KEYWORD_SOLVE); len(errs) > 0 {
		return nil, errs
	} else if anns, errs = p.parseAnnotations(); len(errs) > 0 {
		return nil, errs
	}
	//
	var (
		goalStart = p.index
		lookahead = p.lookahead()
	)
	//
	switch {
	case p.match(lexer.KEYWORD_SATISFY):
		kind = ast.New(ast.SATISFY, lookahead.Span)
	case p.match(lexer.KEYWORD_MINIMIZE), p.match(lexer.KEYWORD_MAXIMIZE):
		var objective *ast.Node
		//
		if objective, errs = p.parseExpr(); len(errs) > 0 {
			return nil, errs
		}
		//
		if lookahead.Kind == lexer.KEYWORD_MINIMIZE {
			kind = ast.New(ast.MINIMIZE, p.spanFrom(goalStart), objective)
		} else {
			kind = ast.New(ast.MAXIMIZE, p.spanFrom(goalStart), objective)
		}
	default:
		return nil, p.syntaxErrors(lookahead, "expected satisfy, minimize or maximize")
	}
	//
	span := p.spanFrom(start)
	//
	if _, errs = p.expect(lexer.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.New(ast.SOLVE, span, anns, kind), nil
}

// ('::' annotation)*
func (p *Parser) parseAnnotations() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		anns  []*ast.Node
	)
	//
	for p.match(lexer.COLONCOLON) {
		ann, errs := p.parseAnnotation()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		anns = append(anns, ann)
	}
	//
	if len(anns) == 0 {
		// Empty span, located just before the next token
		pos := p.lookahead().Span.Start()
		return ast.New(ast.ANNOTATIONS, source.NewSpan(pos, pos)), nil
	}
	//
	return ast.New(ast.ANNOTATIONS, p.spanFrom(start), anns...), nil
}

// IDENT ('(' expr (',' expr)* ')')?
func (p *Parser) parseAnnotation() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		args  []*ast.Node
	)
	//
	name, _, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	if p.follows(lexer.LBRACE) {
		if args, errs = p.parseArgs(); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	return ast.Named(ast.ANNOTATION, name, p.spanFrom(start), args...), nil
}

// '(' expr (',' expr)* ')'
func (p *Parser) parseArgs() ([]*ast.Node, []source.SyntaxError) {
	var args []*ast.Node
	//
	if _, errs := p.expect(lexer.LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(args) == 0 || p.match(lexer.COMMA) {
		arg, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		args = append(args, arg)
	}
	//
	if _, errs := p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	return args, nil
}

// Parse an expression, dispatching on the leading token:
//
// '{' (INT (',' INT)*)? '}' | 'true' | 'false' | INT ('..' INT)? | FLOAT
// | '[' (expr (',' expr)*)? ']' | id_expr | STRING
func (p *Parser) parseExpr() (*ast.Node, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
	)
	//
	switch lookahead.Kind {
	case lexer.LCURLY:
		values, errs := p.parseIntSet(true)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.New(ast.SET_LIST, p.spanFrom(start), values...), nil
	case lexer.KEYWORD_TRUE, lexer.KEYWORD_FALSE:
		p.index++
		return ast.Named(ast.BOOL, p.string(lookahead), lookahead.Span), nil
	case lexer.INT_CONST:
		lo, errs := p.parseInt()
		if len(errs) > 0 || !p.match(lexer.DOTDOT) {
			return lo, errs
		}
		//
		hi, errs := p.parseInt()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.New(ast.SET_RANGE, p.spanFrom(start), lo, hi), nil
	case lexer.FLOAT_CONST:
		return p.parseFloat()
	case lexer.LSQUARE:
		return p.parseArrayLiteral()
	case lexer.IDENTIFIER:
		return p.parseIdExpr()
	case lexer.STRING:
		p.index++
		text := p.string(lookahead)
		//
		return ast.Named(ast.STRING, text[1:len(text)-1], lookahead.Span), nil
	}
	//
	return nil, p.syntaxErrors(lookahead, "unexpected token")
}

// '[' (expr (',' expr)*)? ']'
func (p *Parser) parseArrayLiteral() (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		elements []*ast.Node
	)
	//
	if _, errs := p.expect(lexer.LSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	for !p.follows(lexer.RSQUARE) && (len(elements) == 0 || p.match(lexer.COMMA)) {
		element, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		elements = append(elements, element)
	}
	//
	if _, errs := p.expect(lexer.RSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.New(ast.ARRAY_LIT, p.spanFrom(start), elements...), nil
}

// IDENT ('(' expr (',' expr)* ')' | '[' INT ']')?
func (p *Parser) parseIdExpr() (*ast.Node, []source.SyntaxError) {
	var start = p.index
	//
	name, tok, errs := p.parseIdentifier()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	switch {
	case p.follows(lexer.LBRACE):
		args, errs := p.parseArgs()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.Named(ast.ANNOTATION, name, p.spanFrom(start), args...), nil
	case p.match(lexer.LSQUARE):
		index, errs := p.parseInt()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(lexer.RSQUARE); len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.Named(ast.ARRAY_ELEM, name, p.spanFrom(start), index), nil
	}
	//
	return ast.Named(ast.IDENT, name, tok.Span), nil
}
