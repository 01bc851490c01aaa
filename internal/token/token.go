// This file is part of ampl2023.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package token defines the closed set of AMPL-2023 lexical kinds, source
// positions, and the lookahead predicates the parser drives itself with.
package token

import "fmt"

// Kind identifies the lexical category of a token.
type Kind int

// The closed set of AMPL-2023 token kinds.
const (
	EOF Kind = iota
	Ident
	IntLit
	StringLit

	// keywords
	KwProgram
	KwMain
	KwChillax
	KwLet
	KwArray
	KwIf
	KwElif
	KwElse
	KwEnd
	KwInput
	KwOutput
	KwReturn
	KwWhile
	KwInt
	KwBool
	KwNot
	KwTrue
	KwFalse
	KwAnd
	KwOr
	KwRem

	// punctuation
	Colon
	Comma
	Semicolon
	LParen
	RParen
	LBracket
	RBracket
	Arrow  // "->"
	DotDot // ".."

	// operators
	Assign // "=" (also used as the relop "equal")
	NotEq  // "/="
	Lt
	LtEq
	Gt
	GtEq
	Plus
	Minus
	Star
	Slash
)

var kindNames = [...]string{
	EOF:       "end of input",
	Ident:     "identifier",
	IntLit:    "integer literal",
	StringLit: "string literal",
	KwProgram: "'program'",
	KwMain:    "'main'",
	KwChillax: "'chillax'",
	KwLet:     "'let'",
	KwArray:   "'array'",
	KwIf:      "'if'",
	KwElif:    "'elif'",
	KwElse:    "'else'",
	KwEnd:     "'end'",
	KwInput:   "'input'",
	KwOutput:  "'output'",
	KwReturn:  "'return'",
	KwWhile:   "'while'",
	KwInt:     "'int'",
	KwBool:    "'bool'",
	KwNot:     "'not'",
	KwTrue:    "'true'",
	KwFalse:   "'false'",
	KwAnd:     "'and'",
	KwOr:      "'or'",
	KwRem:     "'rem'",
	Colon:     "':'",
	Comma:     "','",
	Semicolon: "';'",
	LParen:    "'('",
	RParen:    "')'",
	LBracket:  "'['",
	RBracket:  "']'",
	Arrow:     "'->'",
	DotDot:    "'..'",
	Assign:    "'='",
	NotEq:     "'/='",
	Lt:        "'<'",
	LtEq:      "'<='",
	Gt:        "'>'",
	GtEq:      "'>='",
	Plus:      "'+'",
	Minus:     "'-'",
	Star:      "'*'",
	Slash:     "'/'",
}

// Name returns the printable name used in diagnostics for k.
func Name(k Kind) string {
	if int(k) >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Keywords maps every reserved word to its Kind. "rem" doubles as a mulop
// keyword; it has no other meaning in the grammar.
var Keywords = map[string]Kind{
	"program": KwProgram,
	"main":    KwMain,
	"chillax": KwChillax,
	"let":     KwLet,
	"array":   KwArray,
	"if":      KwIf,
	"elif":    KwElif,
	"else":    KwElse,
	"end":     KwEnd,
	"input":   KwInput,
	"output":  KwOutput,
	"return":  KwReturn,
	"while":   KwWhile,
	"int":     KwInt,
	"bool":    KwBool,
	"not":     KwNot,
	"true":    KwTrue,
	"false":   KwFalse,
	"and":     KwAnd,
	"or":      KwOr,
	"rem":     KwRem,
}

// Position is a 1-based line/column source position.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is the single lookahead token delivered by the lexer. Lexeme is
// only valid until the next Advance call; callers that retain it must
// copy it first.
type Token struct {
	Kind   Kind
	Lexeme string
	Pos    Position
}

// StartsFactor reports whether k can begin a factor production.
func StartsFactor(k Kind) bool {
	switch k {
	case Ident, IntLit, LParen, KwNot, KwTrue, KwFalse:
		return true
	default:
		return false
	}
}

// StartsExpr reports whether k can begin an expr (equivalently a simple),
// i.e. StartsFactor plus unary minus.
func StartsExpr(k Kind) bool {
	return k == Minus || StartsFactor(k)
}

// IsAddOp reports whether k is an addop: "-", "or", "+".
func IsAddOp(k Kind) bool {
	switch k {
	case Minus, KwOr, Plus:
		return true
	default:
		return false
	}
}

// IsMulOp reports whether k is a mulop: "and", "/", "*", "rem".
func IsMulOp(k Kind) bool {
	switch k {
	case KwAnd, Slash, Star, KwRem:
		return true
	default:
		return false
	}
}

// IsOrdOp reports whether k is an ordering relop: ">", ">=", "<", "<=".
func IsOrdOp(k Kind) bool {
	switch k {
	case Gt, GtEq, Lt, LtEq:
		return true
	default:
		return false
	}
}

// IsRelOp reports whether k is any relational operator: IsOrdOp plus "=", "/=".
func IsRelOp(k Kind) bool {
	return k == Assign || k == NotEq || IsOrdOp(k)
}

// IsTypeSpecifier reports whether k can start a `type` production, i.e.
// kind ∈ {bool, int}. This is the intended meaning of the source's
// `toktype = TOK_BOOL` macro (spec.md §9, Open Question 1): a predicate
// over the two base type keywords, not an assignment.
func IsTypeSpecifier(k Kind) bool {
	return k == KwBool || k == KwInt
}
