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
	"slices"
	"strconv"
	"strings"

	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/ast"
	"github.com/chocoteam/choco-solver-sub000/pkg/fzn/lexer"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source/lex"
)

// Parse a given source file into an abstract syntax tree, along with any syntax
// errors arising.  Parsing recovers from an error in one statement by skipping
// to the end of that statement, hence several errors may be reported.  When
// there are errors, the tree returned is partial (and may be nil).
func Parse(srcfile *source.File) (*ast.Node, []source.SyntaxError) {
	tokens, errs := lexer.Lex(*srcfile)
	//
	if len(errs) > 0 {
		return nil, errs
	}
	//
	return NewParser(srcfile, tokens).Parse()
}

// ============================================================================
// Sections
// ============================================================================

// section identifies the part of a model to which a statement belongs.
// Statements must appear in section order.
type section uint8

const (
	predicates section = iota
	parameters
	variables
	constraints
	groups
	structure
	goal
)

func (s section) String() string {
	return [...]string{"predicate declaration", "parameter declaration", "variable declaration",
		"constraint", "group declaration", "structure", "solve goal"}[s]
}

// Sections permitting at most one statement.
func (s section) single() bool {
	return s == structure || s == goal
}

// ============================================================================
// Parser
// ============================================================================

// Parser is a recursive descent parser for models.  Alternatives are chosen
// using a small number of tokens of lookahead where possible, and otherwise by
// speculatively parsing each alternative in turn.
type Parser struct {
	srcfile *source.File
	tokens  []lex.Token
	// Position within the tokens
	index int
	// Number of failed speculative parses
	rewinds uint
	// Outcome of parsing predicates at a given token index
	predicates map[int]memo
}

// Outcome of a parse starting at some index.  On success, end is the index
// immediately following what was parsed.
type memo struct {
	node *ast.Node
	end  int
	errs []source.SyntaxError
}

// NewParser constructs a new parser for a given sequence of tokens, which must
// end with END_OF.
func NewParser(srcfile *source.File, tokens []lex.Token) *Parser {
	return &Parser{srcfile, tokens, 0, 0, make(map[int]memo)}
}

// Rewinds returns the number of times a speculative parse failed, and the
// parser was rewound.
func (p *Parser) Rewinds() uint {
	return p.rewinds
}

// Parse the tokens into a model.
func (p *Parser) Parse() (*ast.Node, []source.SyntaxError) {
	var (
		errors  []source.SyntaxError
		current = predicates
		items   []*ast.Node
		// Statements of the engine block (if any)
		engine []*ast.Node
		// Number of statements attempted in each section
		seen = make([]int, goal+1)
	)
	// Continue going until all consumed
	for !p.follows(lexer.END_OF) {
		var (
			start     = p.index
			lookahead = p.lookahead()
			item      *ast.Node
			errs      []source.SyntaxError
		)
		//
		next, ok := p.sectionOf()
		//
		switch {
		case !ok:
			errs = p.syntaxErrors(lookahead, "unknown statement")
		case next < current:
			errs = p.syntaxErrors(lookahead, fmt.Sprintf("%s not permitted after %s", next, current))
		case next.single() && seen[next] > 0:
			errs = p.syntaxErrors(lookahead, fmt.Sprintf("duplicate %s", next))
		default:
			// An incomplete engine block is reported, but does not prevent
			// parsing the statement itself.
			if next == structure && seen[groups] == 0 {
				errors = append(errors, p.syntaxErrors(lookahead, "missing group declaration")...)
			} else if next > structure && seen[groups] > 0 && seen[structure] == 0 {
				errors = append(errors, p.syntaxErrors(lookahead, "missing structure")...)
			}
			//
			current = next
			seen[next]++
			item, errs = p.parseStatement(next)
		}
		//
		if len(errs) > 0 {
			errors = append(errors, errs...)
			// Skip to the next statement
			p.synchronise(start)
		} else if next == groups {
			engine = append(engine, item)
		} else if next == structure && len(engine) > 0 {
			engine = append(engine, item)
			items = append(items, ast.New(ast.ENGINE, engine[0].Span.Join(item.Span), engine...))
		} else if next != structure {
			items = append(items, item)
		}
	}
	//
	if seen[goal] == 0 {
		errors = append(errors, p.syntaxErrors(p.lookahead(), "missing solve goal")...)
	}
	//
	span := source.NewSpan(0, len(p.srcfile.Contents()))
	//
	return ast.New(ast.MODEL, span, items...), errors
}

// Determine the section to which the next statement belongs.
func (p *Parser) sectionOf() (section, bool) {
	switch p.lookahead().Kind {
	case lexer.KEYWORD_PREDICATE:
		return predicates, true
	case lexer.KEYWORD_BOOL, lexer.KEYWORD_INT, lexer.KEYWORD_FLOAT, lexer.KEYWORD_SET:
		return parameters, true
	case lexer.KEYWORD_VAR:
		return variables, true
	case lexer.KEYWORD_ARRAY:
		if p.arrayOfVar() {
			return variables, true
		}
		//
		return parameters, true
	case lexer.KEYWORD_CONSTRAINT:
		return constraints, true
	case lexer.IDENTIFIER:
		if p.peek(1).Kind == lexer.COLON {
			return groups, true
		}
		//
		return structure, true
	case lexer.KEYWORD_SOLVE:
		return goal, true
	}
	//
	return 0, false
}

func (p *Parser) parseStatement(s section) (*ast.Node, []source.SyntaxError) {
	switch s {
	case predicates:
		return p.parsePredicateDecl()
	case parameters:
		return p.parseParamDecl()
	case variables:
		return p.parseVarDecl()
	case constraints:
		return p.parseConstraint()
	case groups:
		return p.parseGroupDecl()
	case structure:
		return p.parseStructureDecl()
	default:
		return p.parseSolveGoal()
	}
}

// Skip tokens up to and including the next statement terminator (or the end of
// file).  At least one token is always skipped, to ensure progress.
func (p *Parser) synchronise(start int) {
	p.index = max(p.index, start)
	//
	for !p.follows(lexer.END_OF) {
		tok := p.tokens[p.index]
		p.index++
		//
		if tok.Kind == lexer.SEMICOLON {
			return
		}
	}
}

// Check whether an array type is an array of variables.  That is, the array
// index sets are followed by "of var".  This scans forward without consuming
// anything.
func (p *Parser) arrayOfVar() bool {
	for i := p.index; i+2 < len(p.tokens); i++ {
		switch p.tokens[i].Kind {
		case lexer.RSQUARE:
			return p.tokens[i+1].Kind == lexer.KEYWORD_OF && p.tokens[i+2].Kind == lexer.KEYWORD_VAR
		case lexer.SEMICOLON, lexer.END_OF:
			return false
		}
	}
	//
	return false
}

// ============================================================================
// Speculation
// ============================================================================

// Speculatively apply a given parse function.  If it fails, the parser is
// rewound to where it started and the errors are returned.  Parse functions do
// not modify anything other than the position of the parser, hence nothing
// else needs to be undone.
func speculate[T any](p *Parser, trial func() (T, []source.SyntaxError)) (T, []source.SyntaxError) {
	var (
		start     = p.index
		item, err = trial()
	)
	//
	if len(err) > 0 {
		var empty T
		//
		p.index = start
		p.rewinds++
		//
		return empty, err
	}
	//
	return item, nil
}

// Select the errors which got furthest through the input, which are typically
// the most informative.
func furthest(errs ...[]source.SyntaxError) []source.SyntaxError {
	var best []source.SyntaxError
	//
	for _, e := range errs {
		if len(best) == 0 || (len(e) > 0 && e[0].Span().Start() > best[0].Span().Start()) {
			best = e
		}
	}
	//
	return best
}

// ============================================================================
// Helpers
// ============================================================================

// Parse a non-reserved identifier.
func (p *Parser) parseIdentifier() (string, lex.Token, []source.SyntaxError) {
	tok, errs := p.expect(lexer.IDENTIFIER)
	if len(errs) > 0 {
		return "", tok, errs
	}
	//
	return p.string(tok), tok, nil
}

// Parse an integer literal, producing a node with canonical decimal text.
func (p *Parser) parseInt() (*ast.Node, []source.SyntaxError) {
	tok, errs := p.expect(lexer.INT_CONST)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	val, err := parseInt(p.string(tok))
	if err != nil {
		return nil, p.syntaxErrors(tok, "invalid integer")
	}
	//
	return ast.Named(ast.INT, strconv.FormatInt(val, 10), tok.Span), nil
}

// Parse a floating point literal.
func (p *Parser) parseFloat() (*ast.Node, []source.SyntaxError) {
	tok, errs := p.expect(lexer.FLOAT_CONST)
	if len(errs) > 0 {
		return nil, errs
	}
	//
	text := p.string(tok)
	//
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return nil, p.syntaxErrors(tok, "invalid float")
	}
	//
	return ast.Named(ast.FLOAT, text, tok.Span), nil
}

// Parse integer text, which may be hexadecimal (but never octal).
func parseInt(text string) (int64, error) {
	digits := strings.TrimLeft(text, "+-")
	//
	if strings.HasPrefix(digits, "0x") {
		return strconv.ParseInt(text, 0, 64)
	}
	//
	return strconv.ParseInt(text, 10, 64)
}

// Get the text representing the given token as a string.
func (p *Parser) string(token lex.Token) string {
	return p.srcfile.Text(token.Span)
}

func (p *Parser) lookahead() lex.Token {
	return p.tokens[p.index]
}

// Peek at the token a given distance ahead, stopping at the end of file.
func (p *Parser) peek(n int) lex.Token {
	return p.tokens[min(p.index+n, len(p.tokens)-1)]
}

// Expect returns an error if the next token is not what was expected.
func (p *Parser) expect(kind uint) (lex.Token, []source.SyntaxError) {
	lookahead := p.lookahead()
	//
	if lookahead.Kind != kind {
		errs := p.syntaxErrors(lookahead, "unexpected token")
		return lookahead, errs
	}
	//
	p.index++
	//
	return lookahead, nil
}

// Match attempts to match the given token.
func (p *Parser) match(kind uint) bool {
	if p.lookahead().Kind == kind {
		p.index++
		return true
	}
	//
	return false
}

// Follows checks whether one of the given token kinds is next.
func (p *Parser) follows(options ...uint) bool {
	return slices.Contains(options, p.lookahead().Kind)
}

// Span of the tokens from a given token up to (but excluding) the current
// position.
func (p *Parser) spanFrom(firstToken int) source.Span {
	return p.spanOf(firstToken, max(firstToken, p.index-1))
}

func (p *Parser) spanOf(firstToken, lastToken int) source.Span {
	//
	start := p.tokens[firstToken].Span.Start()
	end := p.tokens[lastToken].Span.End()
	//
	return source.NewSpan(start, end)
}

func (p *Parser) syntaxErrors(token lex.Token, msg string) []source.SyntaxError {
	return []source.SyntaxError{*p.srcfile.SyntaxError(token.Span, msg)}
}
