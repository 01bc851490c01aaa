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

// Package lexer is the AMPL-2023 token stream. It produces one token on
// demand per Advance call, overwriting a single shared lookahead slot
// (spec.md §4.1). Scanner-level failures are reported through the
// diagnostics sink before the parser ever observes a malformed token.
package lexer

import (
	"bufio"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/josharian/intern"
	"github.com/pkg/errors"

	"github.com/caedentelfer/ampl2023/internal/clog"
	"github.com/caedentelfer/ampl2023/internal/diag"
	"github.com/caedentelfer/ampl2023/internal/token"
)

// Lexer scans AMPL-2023 source text into tokens. The zero value is not
// usable; construct one with New.
type Lexer struct {
	r    *bufio.Reader
	sink *diag.Sink

	line, col int // position of the rune about to be read
	cur       rune
	curValid  bool

	// Lookahead is the single token slot Advance overwrites in place, per
	// spec.md §4.1.
	Lookahead token.Token
}

// New returns a Lexer reading from r and reporting scanner errors through
// sink, whose File names the source in diagnostics.
func New(r io.Reader, sink *diag.Sink) *Lexer {
	l := &Lexer{r: bufio.NewReader(r), sink: sink, line: 1, col: 0}
	l.readRune()
	l.Advance()
	return l
}

func (l *Lexer) readRune() {
	r, _, err := l.r.ReadRune()
	if err != nil {
		if err != io.EOF {
			l.sink.ReportIO(token.Position{Line: l.line, Column: l.col}, errors.Wrap(err, "read failed"))
		}
		l.curValid = false
		return
	}
	if r == utf8.RuneError {
		l.sink.ReportIO(token.Position{Line: l.line, Column: l.col}, errors.New("invalid UTF-8 byte in source"))
	}
	if l.cur == '\n' {
		l.line++
		l.col = 0
	}
	l.col++
	l.cur = r
	l.curValid = true
}

func (l *Lexer) pos() token.Position { return token.Position{Line: l.line, Column: l.col} }

func (l *Lexer) skipSpaceAndComments() {
	for l.curValid {
		switch {
		case unicode.IsSpace(l.cur):
			l.readRune()
		case l.cur == '#':
			for l.curValid && l.cur != '\n' {
				l.readRune()
			}
		default:
			return
		}
	}
}

func isIdentStart(r rune) bool { return unicode.IsLetter(r) || r == '_' }
func isIdentRune(r rune) bool  { return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' }

// Advance overwrites Lookahead with the next token in the stream.
func (l *Lexer) Advance() {
	l.skipSpaceAndComments()
	if !l.curValid {
		l.Lookahead = token.Token{Kind: token.EOF, Pos: l.pos()}
		return
	}

	start := l.pos()

	switch {
	case isIdentStart(l.cur):
		var sb strings.Builder
		for l.curValid && isIdentRune(l.cur) {
			sb.WriteRune(l.cur)
			l.readRune()
		}
		text := sb.String()
		if kw, ok := token.Keywords[text]; ok {
			l.Lookahead = token.Token{Kind: kw, Lexeme: intern.String(text), Pos: start}
			return
		}
		l.Lookahead = token.Token{Kind: token.Ident, Lexeme: intern.String(text), Pos: start}
		return

	case unicode.IsDigit(l.cur):
		var sb strings.Builder
		for l.curValid && unicode.IsDigit(l.cur) {
			sb.WriteRune(l.cur)
			l.readRune()
		}
		l.Lookahead = token.Token{Kind: token.IntLit, Lexeme: sb.String(), Pos: start}
		return

	case l.cur == '"':
		l.readRune()
		var sb strings.Builder
		for l.curValid && l.cur != '"' {
			if l.cur == '\n' {
				break
			}
			sb.WriteRune(l.cur)
			l.readRune()
		}
		if !l.curValid || l.cur != '"' {
			l.sink.Report(start, diag.ErrUnreachable, "unterminated string literal")
		}
		l.readRune() // consume closing quote
		l.Lookahead = token.Token{Kind: token.StringLit, Lexeme: sb.String(), Pos: start}
		return
	}

	ch := l.cur
	l.readRune()
	switch ch {
	case ':':
		l.Lookahead = token.Token{Kind: token.Colon, Lexeme: ":", Pos: start}
	case ',':
		l.Lookahead = token.Token{Kind: token.Comma, Lexeme: ",", Pos: start}
	case ';':
		l.Lookahead = token.Token{Kind: token.Semicolon, Lexeme: ";", Pos: start}
	case '(':
		l.Lookahead = token.Token{Kind: token.LParen, Lexeme: "(", Pos: start}
	case ')':
		l.Lookahead = token.Token{Kind: token.RParen, Lexeme: ")", Pos: start}
	case '[':
		l.Lookahead = token.Token{Kind: token.LBracket, Lexeme: "[", Pos: start}
	case ']':
		l.Lookahead = token.Token{Kind: token.RBracket, Lexeme: "]", Pos: start}
	case '+':
		l.Lookahead = token.Token{Kind: token.Plus, Lexeme: "+", Pos: start}
	case '*':
		l.Lookahead = token.Token{Kind: token.Star, Lexeme: "*", Pos: start}
	case '=':
		l.Lookahead = token.Token{Kind: token.Assign, Lexeme: "=", Pos: start}
	case '-':
		if l.curValid && l.cur == '>' {
			l.readRune()
			l.Lookahead = token.Token{Kind: token.Arrow, Lexeme: "->", Pos: start}
			return
		}
		l.Lookahead = token.Token{Kind: token.Minus, Lexeme: "-", Pos: start}
	case '/':
		if l.curValid && l.cur == '=' {
			l.readRune()
			l.Lookahead = token.Token{Kind: token.NotEq, Lexeme: "/=", Pos: start}
			return
		}
		l.Lookahead = token.Token{Kind: token.Slash, Lexeme: "/", Pos: start}
	case '<':
		if l.curValid && l.cur == '=' {
			l.readRune()
			l.Lookahead = token.Token{Kind: token.LtEq, Lexeme: "<=", Pos: start}
			return
		}
		l.Lookahead = token.Token{Kind: token.Lt, Lexeme: "<", Pos: start}
	case '>':
		if l.curValid && l.cur == '=' {
			l.readRune()
			l.Lookahead = token.Token{Kind: token.GtEq, Lexeme: ">=", Pos: start}
			return
		}
		l.Lookahead = token.Token{Kind: token.Gt, Lexeme: ">", Pos: start}
	case '.':
		if l.curValid && l.cur == '.' {
			l.readRune()
			l.Lookahead = token.Token{Kind: token.DotDot, Lexeme: "..", Pos: start}
			return
		}
		l.sink.Report(start, diag.ErrUnreachable, "unexpected character '.'")
	default:
		clog.L().WithField("pos", start.String()).Debugf("unexpected rune %q", ch)
		l.sink.Report(start, diag.ErrUnreachable, "unexpected character '"+string(ch)+"'")
	}
}
