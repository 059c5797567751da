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
package lexer

import (
	"github.com/chocoteam/choco-solver-sub000/pkg/util/collection/array"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source"
	"github.com/chocoteam/choco-solver-sub000/pkg/util/source/lex"
)

// END_OF signals "end of file"
const END_OF uint = 0

// WHITESPACE signals whitespace
const WHITESPACE uint = 1

// COMMENT signals "% ... \n"
const COMMENT uint = 2

// LBRACE signals "("
const LBRACE uint = 3

// RBRACE signals ")"
const RBRACE uint = 4

// LSQUARE signals "["
const LSQUARE uint = 5

// RSQUARE signals "]"
const RSQUARE uint = 6

// LCURLY signals "{"
const LCURLY uint = 7

// RCURLY signals "}"
const RCURLY uint = 8

// COMMA signals ","
const COMMA uint = 9

// COLON signals ":"
const COLON uint = 10

// COLONCOLON signals "::", which introduces an annotation
const COLONCOLON uint = 11

// SEMICOLON signals ";", the statement terminator
const SEMICOLON uint = 12

// DOTDOT signals ".." in ranges
const DOTDOT uint = 13

// DOT signals "." which chains reducers in a combinator
const DOT uint = 14

// EQUALS signals "="
const EQUALS uint = 15

// EQUALS_EQUALS signals "=="
const EQUALS_EQUALS uint = 16

// NOT_EQUALS signals "!="
const NOT_EQUALS uint = 17

// LESS_THAN signals "<"
const LESS_THAN uint = 18

// LESS_THAN_EQUALS signals "<="
const LESS_THAN_EQUALS uint = 19

// GREATER_THAN signals ">"
const GREATER_THAN uint = 20

// GREATER_THAN_EQUALS signals ">="
const GREATER_THAN_EQUALS uint = 21

// AND signals "&&"
const AND uint = 22

// OR signals "||"
const OR uint = 23

// NOT signals "!"
const NOT uint = 24

// INT_CONST signals an (optionally signed) integer literal
const INT_CONST uint = 30

// FLOAT_CONST signals a floating point literal
const FLOAT_CONST uint = 31

// STRING signals a quoted string
const STRING uint = 32

// IDENTIFIER signals an identifier.  Note that the words of the search engine
// language (queue, list, key, etc) are lexed as identifiers, and only treated
// as keywords within an engine block.
const IDENTIFIER uint = 33

// KEYWORD_BOOL signals "bool"
const KEYWORD_BOOL uint = 40

// KEYWORD_TRUE signals "true"
const KEYWORD_TRUE uint = 41

// KEYWORD_FALSE signals "false"
const KEYWORD_FALSE uint = 42

// KEYWORD_INT signals "int"
const KEYWORD_INT uint = 43

// KEYWORD_FLOAT signals "float"
const KEYWORD_FLOAT uint = 44

// KEYWORD_SET signals "set"
const KEYWORD_SET uint = 45

// KEYWORD_OF signals "of"
const KEYWORD_OF uint = 46

// KEYWORD_ARRAY signals "array"
const KEYWORD_ARRAY uint = 47

// KEYWORD_VAR signals "var"
const KEYWORD_VAR uint = 48

// KEYWORD_PAR signals "par"
const KEYWORD_PAR uint = 49

// KEYWORD_PREDICATE signals "predicate"
const KEYWORD_PREDICATE uint = 50

// KEYWORD_CONSTRAINT signals "constraint"
const KEYWORD_CONSTRAINT uint = 51

// KEYWORD_SOLVE signals "solve"
const KEYWORD_SOLVE uint = 52

// KEYWORD_SATISFY signals "satisfy"
const KEYWORD_SATISFY uint = 53

// KEYWORD_MINIMIZE signals "minimize"
const KEYWORD_MINIMIZE uint = 54

// KEYWORD_MAXIMIZE signals "maximize"
const KEYWORD_MAXIMIZE uint = 55

// ATTRIBUTE_VNAME signals "var.name"
const ATTRIBUTE_VNAME uint = 60

// ATTRIBUTE_VCARD signals "var.cardinality"
const ATTRIBUTE_VCARD uint = 61

// ATTRIBUTE_CNAME signals "cstr.name"
const ATTRIBUTE_CNAME uint = 62

// ATTRIBUTE_CARITY signals "cstr.arity"
const ATTRIBUTE_CARITY uint = 63

// ATTRIBUTE_PPRIO signals "prop.priority"
const ATTRIBUTE_PPRIO uint = 64

// ATTRIBUTE_PARITY signals "prop.arity"
const ATTRIBUTE_PARITY uint = 65

// ATTRIBUTE_PPRIOD signals "prop.prioDyn"
const ATTRIBUTE_PPRIOD uint = 66

// Rule for describing whitespace
var whitespace lex.Scanner[rune] = lex.Many(lex.Or(lex.Unit(' '), lex.Unit('\t'), lex.Unit('\r'), lex.Unit('\n')))

// Comments start with '%' and run until the end of the line
var comment lex.Scanner[rune] = lex.Sequence(lex.Unit('%'), lex.Optional(lex.Until('\n')))

// Numeric literals.  A leading sign belongs to the literal, since FlatZinc has
// no arithmetic.
var (
	digit  = lex.Within('0', '9')
	digits = lex.Many(digit)
	sign   = lex.Optional(lex.Or(lex.Unit('-'), lex.Unit('+')))

	hexDigit = lex.Or(
		lex.Within('0', '9'),
		lex.Within('A', 'F'),
		lex.Within('a', 'f'),
	)

	exponent = lex.Sequence(lex.Or(lex.Unit('e'), lex.Unit('E')), sign, digits)

	integer = lex.Or(
		lex.Sequence(sign, lex.String("0x"), lex.Many(hexDigit)),
		lex.Sequence(sign, digits),
	)

	float = lex.Or(
		lex.Sequence(sign, digits, lex.Unit('.'), digits, lex.Optional(exponent)),
		lex.Sequence(sign, digits, exponent),
	)
)

var identifierStart lex.Scanner[rune] = lex.Or(
	lex.Unit('_'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z'))

var identifierRest lex.Scanner[rune] = lex.Many(lex.Or(
	lex.Unit('_'),
	lex.Within('0', '9'),
	lex.Within('a', 'z'),
	lex.Within('A', 'Z')))

// Rule for describing identifiers
var identifier lex.Scanner[rune] = lex.And(identifierStart, identifierRest)

// Rule for describing strings in quotes (which cannot span lines)
var strung lex.Scanner[rune] = lex.Sequence(lex.Unit('"'), lex.Optional(lex.Many(lex.AnyBut('"', '\n'))), lex.Unit('"'))

// lexing rules.  The longest match wins, and ties go to the earliest rule.
// Hence, keywords must precede identifiers.
var rules []lex.LexRule[rune] = []lex.LexRule[rune]{
	lex.Rule(comment, COMMENT),
	lex.Rule(lex.Unit('('), LBRACE),
	lex.Rule(lex.Unit(')'), RBRACE),
	lex.Rule(lex.Unit('['), LSQUARE),
	lex.Rule(lex.Unit(']'), RSQUARE),
	lex.Rule(lex.Unit('{'), LCURLY),
	lex.Rule(lex.Unit('}'), RCURLY),
	lex.Rule(lex.Unit(','), COMMA),
	lex.Rule(lex.Unit(':', ':'), COLONCOLON),
	lex.Rule(lex.Unit(':'), COLON),
	lex.Rule(lex.Unit(';'), SEMICOLON),
	lex.Rule(lex.Unit('.', '.'), DOTDOT),
	lex.Rule(lex.Unit('.'), DOT),
	lex.Rule(lex.Unit('=', '='), EQUALS_EQUALS),
	lex.Rule(lex.Unit('!', '='), NOT_EQUALS),
	lex.Rule(lex.Unit('<', '='), LESS_THAN_EQUALS),
	lex.Rule(lex.Unit('>', '='), GREATER_THAN_EQUALS),
	lex.Rule(lex.Unit('<'), LESS_THAN),
	lex.Rule(lex.Unit('>'), GREATER_THAN),
	lex.Rule(lex.Unit('='), EQUALS),
	lex.Rule(lex.Unit('&', '&'), AND),
	lex.Rule(lex.Unit('|', '|'), OR),
	lex.Rule(lex.Unit('!'), NOT),
	lex.Rule(whitespace, WHITESPACE),
	lex.Rule(integer, INT_CONST),
	lex.Rule(float, FLOAT_CONST),
	lex.Rule(strung, STRING),
	lex.Rule(lex.String("bool"), KEYWORD_BOOL),
	lex.Rule(lex.String("true"), KEYWORD_TRUE),
	lex.Rule(lex.String("false"), KEYWORD_FALSE),
	lex.Rule(lex.String("int"), KEYWORD_INT),
	lex.Rule(lex.String("float"), KEYWORD_FLOAT),
	lex.Rule(lex.String("set"), KEYWORD_SET),
	lex.Rule(lex.String("of"), KEYWORD_OF),
	lex.Rule(lex.String("array"), KEYWORD_ARRAY),
	lex.Rule(lex.String("var"), KEYWORD_VAR),
	lex.Rule(lex.String("par"), KEYWORD_PAR),
	lex.Rule(lex.String("predicate"), KEYWORD_PREDICATE),
	lex.Rule(lex.String("constraint"), KEYWORD_CONSTRAINT),
	lex.Rule(lex.String("solve"), KEYWORD_SOLVE),
	lex.Rule(lex.String("satisfy"), KEYWORD_SATISFY),
	lex.Rule(lex.String("minimize"), KEYWORD_MINIMIZE),
	lex.Rule(lex.String("maximize"), KEYWORD_MAXIMIZE),
	lex.Rule(lex.String("var.name"), ATTRIBUTE_VNAME),
	lex.Rule(lex.String("var.cardinality"), ATTRIBUTE_VCARD),
	lex.Rule(lex.String("cstr.name"), ATTRIBUTE_CNAME),
	lex.Rule(lex.String("cstr.arity"), ATTRIBUTE_CARITY),
	lex.Rule(lex.String("prop.priority"), ATTRIBUTE_PPRIO),
	lex.Rule(lex.String("prop.arity"), ATTRIBUTE_PARITY),
	lex.Rule(lex.String("prop.prioDyn"), ATTRIBUTE_PPRIOD),
	lex.Rule(identifier, IDENTIFIER),
	lex.Rule(lex.Eof[rune](), END_OF),
}

// Lex a given source file into a sequence of zero or more tokens, along with
// any syntax errors arising.  Whitespace and comments are dropped, and the
// final token is always END_OF.
func Lex(srcfile source.File) ([]lex.Token, []source.SyntaxError) {
	var (
		lexer = lex.NewLexer(srcfile.Contents(), rules...)
		// Lex as many tokens as possible
		tokens = lexer.Collect()
	)
	// Check whether anything was left (if so this is an error)
	if lexer.Remaining() != 0 {
		start := int(lexer.Index())
		err := srcfile.SyntaxError(source.NewSpan(start, start+1), "unknown text encountered")
		//
		return nil, []source.SyntaxError{*err}
	}
	// Remove whitespace and comments
	tokens = array.RemoveMatching(tokens, func(t lex.Token) bool {
		return t.Kind == WHITESPACE || t.Kind == COMMENT
	})
	//
	return tokens, nil
}

// IsKeyword determines whether a given token kind is a reserved word.  Reserved
// words cannot be used as identifiers.
func IsKeyword(kind uint) bool {
	return kind >= KEYWORD_BOOL && kind <= KEYWORD_MAXIMIZE
}
