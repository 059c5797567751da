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
package lex

import "github.com/chocoteam/choco-solver-sub000/pkg/util/source"

// Token associates a piece of information with a given range of characters in
// the string being scanned.
type Token struct {
	Kind uint
	Span source.Span
}

// LexRule associates a scanner with the token kind it produces.
//
// nolint
type LexRule[T any] struct {
	scanner Scanner[T]
	tag     uint
}

// Rule constructs a new lexing rule which maps matching characters to a given
// tag.
func Rule[T any](scanner Scanner[T], tag uint) LexRule[T] {
	return LexRule[T]{scanner, tag}
}

// Lexer splits a sequence of items into tokens.  At each position every rule
// is tried and the longest match wins, with ties going to the rule listed
// first.  Thus a keyword rule listed before an identifier rule matches "int"
// but not "integer".
type Lexer[T any] struct {
	items []T
	index int
	rules []LexRule[T]
	// Set once the end-of-input token has been produced.
	done bool
}

// NewLexer constructs a new lexer with a given set of lexing rules.
func NewLexer[T any](input []T, rules ...LexRule[T]) *Lexer[T] {
	return &Lexer[T]{input, 0, rules, false}
}

// Index returns the current index within the items array.
func (p *Lexer[T]) Index() uint {
	return uint(p.index)
}

// Remaining determines how many items were left unmatched.
func (p *Lexer[T]) Remaining() uint {
	return uint(max(0, len(p.items)-p.index))
}

// Next attempts to match a token at the current position.  This returns false
// when no rule matches, or when the input is exhausted.
func (p *Lexer[T]) Next() (Token, bool) {
	var (
		best   uint
		bestOf = -1
	)
	//
	if p.done {
		return Token{}, false
	}
	//
	for i, r := range p.rules {
		if n := r.scanner(p.items[p.index:]); n > best {
			best, bestOf = n, i
		}
	}
	//
	if bestOf < 0 {
		return Token{}, false
	}
	// Zero-width rules (e.g. end-of-input) report a match of one.
	end := min(len(p.items), p.index+int(best))
	token := Token{p.rules[bestOf].tag, source.NewSpan(p.index, end)}
	//
	if p.index == len(p.items) {
		p.done = true
	}
	//
	p.index = end
	//
	return token, true
}

// Collect is a convenience function which lexes all remaining tokens in one
// go.  Lexing stops at the first position where no rule matches, which callers
// detect using Remaining().
func (p *Lexer[T]) Collect() []Token {
	var tokens []Token
	//
	for {
		token, ok := p.Next()
		if !ok {
			return tokens
		}
		//
		tokens = append(tokens, token)
	}
}
