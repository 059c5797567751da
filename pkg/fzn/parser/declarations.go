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

// predicate IDENT '(' pred_param (',' pred_param)* ')' ';'
func (p *Parser) parsePredicateDecl() (*ast.Node, []source.SyntaxError) {
	var (
		start  = p.index
		params []*ast.Node
		name   string
		errs   []source.SyntaxError
	)
	//
	if _, errs = p.expect(lexer.KEYWORD_PREDICATE); len(errs) > 0 {
		return nil, errs
	} else if name, _, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.LBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(params) == 0 || p.match(lexer.COMMA) {
		param, errs := p.parsePredParam()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		params = append(params, param)
	}
	//
	if _, errs = p.expect(lexer.RBRACE); len(errs) > 0 {
		return nil, errs
	}
	//
	span := p.spanFrom(start)
	//
	if _, errs = p.expect(lexer.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(ast.PRED_DECL, name, span, params...), nil
}

// pred_param_type ':' IDENT
//
// Whether a parameter is a decision variable is not always determined by a
// fixed number of tokens, since "array [...] of var" has arbitrarily many index
// sets.  Hence, the variable form is tried first and, failing that, the
// parameter form.
func (p *Parser) parsePredParam() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		kind  = ast.PRED_VAR_PARAM
		name  string
	)
	//
	typ, errs := speculate(p, p.parseVarPredParamType)
	//
	if len(errs) > 0 {
		var perrs []source.SyntaxError
		//
		kind = ast.PRED_PARAM
		//
		if typ, perrs = speculate(p, p.parseParPredParamType); len(perrs) > 0 {
			return nil, furthest(errs, perrs)
		}
	}
	//
	if _, errs = p.expect(lexer.COLON); len(errs) > 0 {
		return nil, errs
	} else if name, _, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(kind, name, p.spanFrom(start), typ), nil
}

// 'var' base_type | 'array' '[' index_set (',' index_set)* ']' 'of' 'var' base_type
func (p *Parser) parseVarPredParamType() (*ast.Node, []source.SyntaxError) {
	if p.follows(lexer.KEYWORD_ARRAY) {
		return p.parseArrayType(true, true)
	} else if _, errs := p.expect(lexer.KEYWORD_VAR); len(errs) > 0 {
		return nil, errs
	}
	//
	return p.parseBaseType(true)
}

// base_type | 'array' '[' index_set (',' index_set)* ']' 'of' base_type
func (p *Parser) parseParPredParamType() (*ast.Node, []source.SyntaxError) {
	if p.follows(lexer.KEYWORD_ARRAY) {
		return p.parseArrayType(false, true)
	}
	//
	return p.parseBaseType(true)
}

// par_type ':' IDENT '=' expr ';'
func (p *Parser) parseParamDecl() (*ast.Node, []source.SyntaxError) {
	var (
		start = p.index
		typ   *ast.Node
		name  string
		value *ast.Node
		errs  []source.SyntaxError
	)
	//
	if p.follows(lexer.KEYWORD_ARRAY) {
		typ, errs = p.parseArrayType(false, false)
	} else {
		typ, errs = p.parseBaseType(false)
	}
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.COLON); len(errs) > 0 {
		return nil, errs
	} else if name, _, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.EQUALS); len(errs) > 0 {
		return nil, errs
	} else if value, errs = p.parseExpr(); len(errs) > 0 {
		return nil, errs
	}
	//
	span := p.spanFrom(start)
	//
	if _, errs = p.expect(lexer.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(ast.PAR_DECL, name, span, typ, value), nil
}

// var_type ':' IDENT annotations ('=' expr)? ';'
func (p *Parser) parseVarDecl() (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		typ      *ast.Node
		name     string
		anns     *ast.Node
		children []*ast.Node
		errs     []source.SyntaxError
	)
	//
	if p.follows(lexer.KEYWORD_ARRAY) {
		typ, errs = p.parseArrayType(true, false)
	} else if _, errs = p.expect(lexer.KEYWORD_VAR); len(errs) == 0 {
		typ, errs = p.parseBaseType(true)
	}
	//
	if len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.COLON); len(errs) > 0 {
		return nil, errs
	} else if name, _, errs = p.parseIdentifier(); len(errs) > 0 {
		return nil, errs
	} else if anns, errs = p.parseAnnotations(); len(errs) > 0 {
		return nil, errs
	}
	//
	children = append(children, typ, anns)
	//
	if p.match(lexer.EQUALS) {
		value, errs := p.parseExpr()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		children = append(children, value)
	}
	//
	span := p.spanFrom(start)
	//
	if _, errs = p.expect(lexer.SEMICOLON); len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.Named(ast.VAR_DECL, name, span, children...), nil
}

// 'array' '[' index_set (',' index_set)* ']' 'of' ('var')? base_type
//
// The element type is required to be preceded by "var" for arrays of decision
// variables, and not otherwise.  Index sets of "int" are permitted only for
// predicate parameters.
func (p *Parser) parseArrayType(isVar bool, unbounded bool) (*ast.Node, []source.SyntaxError) {
	var (
		start    = p.index
		children []*ast.Node
		errs     []source.SyntaxError
	)
	//
	if _, errs = p.expect(lexer.KEYWORD_ARRAY); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.LSQUARE); len(errs) > 0 {
		return nil, errs
	}
	//
	for len(children) == 0 || p.match(lexer.COMMA) {
		index, errs := p.parseIndexSet(unbounded)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		children = append(children, index)
	}
	//
	if _, errs = p.expect(lexer.RSQUARE); len(errs) > 0 {
		return nil, errs
	} else if _, errs = p.expect(lexer.KEYWORD_OF); len(errs) > 0 {
		return nil, errs
	} else if isVar {
		if _, errs = p.expect(lexer.KEYWORD_VAR); len(errs) > 0 {
			return nil, errs
		}
	}
	//
	elem, errs := p.parseBaseType(isVar || unbounded)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	children = append(children, elem)
	//
	return ast.New(ast.TYPE_ARRAY, p.spanFrom(start), children...), nil
}

// INT '..' INT | 'int'
func (p *Parser) parseIndexSet(unbounded bool) (*ast.Node, []source.SyntaxError) {
	var start = p.index
	//
	if unbounded && p.match(lexer.KEYWORD_INT) {
		return ast.New(ast.INDEX_INT, p.spanFrom(start)), nil
	}
	//
	lo, hi, errs := p.parseIntRange()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.New(ast.INDEX_RANGE, p.spanFrom(start), lo, hi), nil
}

// 'bool' | 'float' | 'int' | 'set' 'of' 'int'
//
// Where domains are permitted, this additionally includes:
//
// INT '..' INT | FLOAT '..' FLOAT | '{' INT (',' INT)* '}' | 'set' 'of' INT '..' INT
// | 'set' 'of' '{' INT (',' INT)* '}'
func (p *Parser) parseBaseType(domains bool) (*ast.Node, []source.SyntaxError) {
	var (
		start     = p.index
		lookahead = p.lookahead()
	)
	//
	switch {
	case p.match(lexer.KEYWORD_BOOL):
		return ast.New(ast.TYPE_BOOL, lookahead.Span), nil
	case p.match(lexer.KEYWORD_FLOAT):
		return ast.New(ast.TYPE_FLOAT, lookahead.Span), nil
	case p.match(lexer.KEYWORD_INT):
		return ast.New(ast.TYPE_INT, lookahead.Span), nil
	case p.match(lexer.KEYWORD_SET):
		if _, errs := p.expect(lexer.KEYWORD_OF); len(errs) > 0 {
			return nil, errs
		}
		//
		var (
			elem *ast.Node
			errs []source.SyntaxError
		)
		//
		if tok := p.lookahead(); p.match(lexer.KEYWORD_INT) {
			elem = ast.New(ast.TYPE_INT, tok.Span)
		} else if !domains {
			return nil, p.syntaxErrors(tok, "unexpected token")
		} else if elem, errs = p.parseIntDomain(); len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.New(ast.TYPE_SET, p.spanFrom(start), elem), nil
	case domains && p.follows(lexer.FLOAT_CONST):
		lo, errs := p.parseFloat()
		if len(errs) > 0 {
			return nil, errs
		} else if _, errs = p.expect(lexer.DOTDOT); len(errs) > 0 {
			return nil, errs
		}
		//
		hi, errs := p.parseFloat()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.New(ast.TYPE_FLOAT_RANGE, p.spanFrom(start), lo, hi), nil
	case domains:
		return p.parseIntDomain()
	}
	//
	return nil, p.syntaxErrors(lookahead, "unexpected token")
}

// INT '..' INT | '{' INT (',' INT)* '}'
func (p *Parser) parseIntDomain() (*ast.Node, []source.SyntaxError) {
	var start = p.index
	//
	if p.follows(lexer.LCURLY) {
		values, errs := p.parseIntSet(false)
		if len(errs) > 0 {
			return nil, errs
		}
		//
		return ast.New(ast.TYPE_INT_SET, p.spanFrom(start), values...), nil
	}
	//
	lo, hi, errs := p.parseIntRange()
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return ast.New(ast.TYPE_INT_RANGE, p.spanFrom(start), lo, hi), nil
}

// INT '..' INT
func (p *Parser) parseIntRange() (*ast.Node, *ast.Node, []source.SyntaxError) {
	lo, errs := p.parseInt()
	if len(errs) > 0 {
		return nil, nil, errs
	} else if _, errs = p.expect(lexer.DOTDOT); len(errs) > 0 {
		return nil, nil, errs
	}
	//
	hi, errs := p.parseInt()
	if len(errs) > 0 {
		return nil, nil, errs
	}
	//
	return lo, hi, nil
}

// '{' (INT (',' INT)*)? '}'
//
// Only a set literal may be empty.  A domain must hold at least one value.
func (p *Parser) parseIntSet(empty bool) ([]*ast.Node, []source.SyntaxError) {
	var values []*ast.Node
	//
	if _, errs := p.expect(lexer.LCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	for (!empty || !p.follows(lexer.RCURLY)) && (len(values) == 0 || p.match(lexer.COMMA)) {
		value, errs := p.parseInt()
		if len(errs) > 0 {
			return nil, errs
		}
		//
		values = append(values, value)
	}
	//
	if _, errs := p.expect(lexer.RCURLY); len(errs) > 0 {
		return nil, errs
	}
	//
	return values, nil
}
