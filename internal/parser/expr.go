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

package parser

import (
	"github.com/caedentelfer/ampl2023/internal/diag"
	"github.com/caedentelfer/ampl2023/internal/token"
	"github.com/caedentelfer/ampl2023/internal/valtype"
)

// parseExpr recognizes `simple [relop simple]`.
func (p *Parser) parseExpr() valtype.Type {
	left := p.parseSimple()
	if !token.IsRelOp(p.tok()) {
		return left
	}
	opTok := p.lex.Lookahead
	p.lex.Advance()

	p.requireNonArray(left, opTok)
	right := p.parseSimple()
	p.requireNonArray(right, opTok)

	if token.IsOrdOp(opTok.Kind) {
		if !valtype.IsInteger(left) {
			p.mismatch(opTok.Pos, valtype.Scalar(valtype.Int), left, opTok)
		} else if !valtype.IsInteger(right) {
			p.mismatch(opTok.Pos, valtype.Scalar(valtype.Int), right, opTok)
		}
	} else if left.Base != right.Base {
		p.mismatch(opTok.Pos, left, right, opTok)
	}
	return valtype.Scalar(valtype.Bool)
}

// parseSimple recognizes `["-"] term {addop term}`.
func (p *Parser) parseSimple() valtype.Type {
	var t valtype.Type
	if p.tok() == token.Minus {
		minusTok := p.lex.Lookahead
		p.lex.Advance()
		operand := p.parseTerm()
		p.requireNonArray(operand, minusTok)
		if !valtype.IsInteger(operand) {
			p.mismatch(minusTok.Pos, valtype.Scalar(valtype.Int), operand, minusTok)
		}
		t = valtype.Scalar(valtype.Int)
	} else {
		t = p.parseTerm()
	}

	for token.IsAddOp(p.tok()) {
		opTok := p.lex.Lookahead
		p.lex.Advance()
		right := p.parseTerm()
		t = p.combine(t, right, opTok, opTok.Kind == token.KwOr)
	}
	return t
}

// parseTerm recognizes `factor {mulop factor}`.
func (p *Parser) parseTerm() valtype.Type {
	t := p.parseFactor()
	for token.IsMulOp(p.tok()) {
		opTok := p.lex.Lookahead
		p.lex.Advance()
		right := p.parseFactor()
		t = p.combine(t, right, opTok, opTok.Kind == token.KwAnd)
	}
	return t
}

// combine checks both operands of a binary addop/mulop and returns the
// scalar result type: boolean for the logical ops ("or"/"and"), integer
// for the arithmetic ones. Arrays are always rejected (spec.md §4.5).
func (p *Parser) combine(left, right valtype.Type, opTok token.Token, wantBool bool) valtype.Type {
	p.requireNonArray(left, opTok)
	p.requireNonArray(right, opTok)
	want := valtype.Int
	check := valtype.IsInteger
	if wantBool {
		want = valtype.Bool
		check = valtype.IsBoolean
	}
	if !check(left) {
		p.mismatch(opTok.Pos, valtype.Scalar(want), left, opTok)
	} else if !check(right) {
		p.mismatch(opTok.Pos, valtype.Scalar(want), right, opTok)
	}
	return valtype.Scalar(want)
}

func (p *Parser) requireNonArray(t valtype.Type, opTok token.Token) {
	if valtype.IsArray(t) {
		p.sink.Report(opTok.Pos, diag.ErrIllegalArrayOperation, opTok.Lexeme)
	}
}

func (p *Parser) mismatch(pos token.Position, want, got valtype.Type, opTok token.Token) {
	p.sink.Report(pos, diag.ErrTypeMismatch, want, got, "for operator "+opTok.Lexeme)
}

// parseFactor recognizes:
//
//	id [index | arglist] | num | "(" expr ")" | "not" factor | "true" | "false"
func (p *Parser) parseFactor() valtype.Type {
	switch p.tok() {
	case token.Ident:
		name, namePos := p.expectID()
		props, ok := p.sym.Find(name)
		if !ok {
			p.sink.Report(namePos, diag.ErrUnknownIdentifier, name)
		}
		switch p.tok() {
		case token.LBracket:
			if !valtype.IsArray(props.Type) {
				p.sink.Report(namePos, diag.ErrNotAnArray, name)
			}
			p.parseIndex()
			return valtype.Indexed(props.Type)
		case token.LParen:
			if !valtype.IsFunction(props.Type) {
				p.sink.Report(namePos, diag.ErrNotAFunction, name)
			}
			args := p.parseArgList()
			p.checkArgs(name, namePos, props.ParamTypes, args)
			return valtype.Returned(props.Type)
		default:
			return props.Type
		}

	case token.IntLit:
		p.lex.Advance()
		return valtype.Scalar(valtype.Int)

	case token.LParen:
		p.lex.Advance()
		t := p.parseExpr()
		p.expect(token.RParen)
		return t

	case token.KwNot:
		notTok := p.lex.Lookahead
		p.lex.Advance()
		t := p.parseFactor()
		p.requireNonArray(t, notTok)
		if !valtype.IsBoolean(t) {
			p.mismatch(notTok.Pos, valtype.Scalar(valtype.Bool), t, notTok)
		}
		return valtype.Scalar(valtype.Bool)

	case token.KwTrue:
		p.lex.Advance()
		return valtype.Scalar(valtype.Bool)

	case token.KwFalse:
		p.lex.Advance()
		return valtype.Scalar(valtype.Bool)

	default:
		p.sink.Report(p.pos(), diag.ErrExpectedFactor, token.Name(p.tok()))
		panic("unreachable: diag.Sink.Report does not return")
	}
}
