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

// Package parser is the AMPL-2023 recursive-descent parser and type
// checker (spec.md §4.5). One function per grammar non-terminal consumes
// tokens from a one-token lookahead stream, threads synthesized
// internal/valtype.Types up through expression productions, drives
// internal/symtab as definitions and uses are encountered, and calls
// internal/diag on the first violation. There is no error recovery: the
// first diagnostic reported terminates the process (spec.md Non-goals).
package parser

import (
	"fmt"

	"github.com/caedentelfer/ampl2023/internal/clog"
	"github.com/caedentelfer/ampl2023/internal/diag"
	"github.com/caedentelfer/ampl2023/internal/lexer"
	"github.com/caedentelfer/ampl2023/internal/symtab"
	"github.com/caedentelfer/ampl2023/internal/token"
	"github.com/caedentelfer/ampl2023/internal/valtype"
)

// Parser drives the token stream and symbol table to accept or reject one
// AMPL-2023 source file.
type Parser struct {
	lex  *lexer.Lexer
	sym  *symtab.Table
	sink *diag.Sink

	// returnType implements the "current return type" state machine of
	// spec.md §4.5: set on entry to a subroutine or main's body, cleared
	// on exit. It already has the callable bit stripped (valtype.Returned
	// was applied at entry), so return statements compare against it
	// directly; the base-None value means "no return value expected"
	// (procedure or main).
	returnType valtype.Type
}

// New returns a Parser reading tokens from lex, maintaining symbols in
// sym, and reporting the first violation to sink.
func New(lex *lexer.Lexer, sym *symtab.Table, sink *diag.Sink) *Parser {
	sym.Init()
	return &Parser{lex: lex, sym: sym, sink: sink}
}

// Parse accepts the program envelope (spec.md §4.5 state machine 1) and
// returns the frame width of the last subroutine or main body parsed. It
// never returns to its caller on error: internal/diag.Sink.Report (called
// transitively) terminates the process.
func (p *Parser) Parse() (frameWidth int) {
	p.expect(token.KwProgram)
	p.expectID()
	p.expect(token.Colon)

	for p.tok() == token.Ident {
		p.parseSubdef()
	}

	p.expect(token.KwMain)
	p.expect(token.Colon)

	p.sym.OpenMain()
	p.returnType = valtype.NoneType
	p.parseBody()
	width := p.sym.VariablesWidth()
	p.sym.CloseSubroutine()

	if p.tok() != token.EOF {
		p.reportExpect(token.EOF)
	}
	return width
}

// --- token stream helpers -------------------------------------------------

func (p *Parser) tok() token.Kind       { return p.lex.Lookahead.Kind }
func (p *Parser) pos() token.Position   { return p.lex.Lookahead.Pos }
func (p *Parser) lexeme() string        { return p.lex.Lookahead.Lexeme }

func (p *Parser) reportExpect(want token.Kind) {
	p.sink.Report(p.pos(), diag.ErrExpect, token.Name(want), token.Name(p.tok()))
	panic("unreachable: diag.Sink.Report does not return")
}

// expect consumes the lookahead if its kind matches k, else reports
// ERR_EXPECT at the lookahead's position.
func (p *Parser) expect(k token.Kind) token.Token {
	if p.tok() != k {
		p.reportExpect(k)
	}
	t := p.lex.Lookahead
	p.lex.Advance()
	return t
}

// expectID consumes an identifier, copying its lexeme into an owned
// string (the lexer already interns it, so this is a cheap reference
// copy, not a fresh allocation per spec.md §4.1/§5's "copy, never alias"
// discipline).
func (p *Parser) expectID() (name string, pos token.Position) {
	if p.tok() != token.Ident {
		p.reportExpect(token.Ident)
	}
	name, pos = p.lexeme(), p.pos()
	p.lex.Advance()
	return name, pos
}

// --- subdef, body, vardef, type -------------------------------------------

func (p *Parser) parseSubdef() {
	name, namePos := p.expectID()
	p.expect(token.LParen)

	var params []paramDecl
	if token.IsTypeSpecifier(p.tok()) {
		params = append(params, p.parseParam())
		for p.tok() == token.Comma {
			p.lex.Advance()
			params = append(params, p.parseParam())
		}
	}
	p.expect(token.RParen)

	props := &symtab.Props{NParams: len(params)}
	for _, pd := range params {
		props.ParamTypes = append(props.ParamTypes, pd.Type)
	}
	if p.tok() == token.Arrow {
		p.lex.Advance()
		ret := p.parseType()
		props.Type = valtype.Type{Base: ret.Base, Array: ret.Array, Callable: true}
	} else {
		props.Type = valtype.Procedure()
	}

	clog.L().WithField("name", name).Debug("parser: subdef header")

	if !p.sym.OpenSubroutine(name, props) {
		p.sink.Report(namePos, diag.ErrMultipleDefinition, name)
	}
	for _, pd := range params {
		if !p.sym.Insert(pd.Name, &symtab.Props{Type: pd.Type}) {
			p.sink.Report(pd.Pos, diag.ErrMultipleDefinition, pd.Name)
		}
	}

	p.returnType = valtype.Returned(props.Type)

	p.expect(token.Colon)
	p.parseBody()

	p.sym.CloseSubroutine()
	p.returnType = valtype.NoneType
}

// paramDecl is the provisional (name, type, position) tuple built while
// parsing a subroutine header (spec.md §3 "Parameter list (parser-local)");
// it is discarded once OpenSubroutine/Insert have consumed it.
type paramDecl struct {
	Name string
	Type valtype.Type
	Pos  token.Position
}

func (p *Parser) parseParam() paramDecl {
	t := p.parseType()
	name, pos := p.expectID()
	return paramDecl{Name: name, Type: t, Pos: pos}
}

// parseType recognizes `("bool"|"int") ["array"]`.
func (p *Parser) parseType() valtype.Type {
	var base valtype.Base
	switch p.tok() {
	case token.KwBool:
		base = valtype.Bool
	case token.KwInt:
		base = valtype.Int
	default:
		p.sink.Report(p.pos(), diag.ErrExpectedTypeSpecifier, token.Name(p.tok()))
		panic("unreachable: diag.Sink.Report does not return")
	}
	p.lex.Advance()
	array := false
	if p.tok() == token.KwArray {
		array = true
		p.lex.Advance()
	}
	return valtype.Type{Base: base, Array: array}
}

// parseBody recognizes `{vardef} statements`.
func (p *Parser) parseBody() {
	for token.IsTypeSpecifier(p.tok()) {
		p.parseVardef()
	}
	p.parseStatements()
}

func (p *Parser) parseVardef() {
	t := p.parseType()
	p.insertVar(t)
	for p.tok() == token.Comma {
		p.lex.Advance()
		p.insertVar(t)
	}
	p.expect(token.Semicolon)
}

func (p *Parser) insertVar(t valtype.Type) {
	name, pos := p.expectID()
	if !p.sym.Insert(name, &symtab.Props{Type: t}) {
		p.sink.Report(pos, diag.ErrMultipleDefinition, name)
	}
}

// --- statements ------------------------------------------------------------

// parseStatements recognizes `"chillax" | statement {";" statement}`.
func (p *Parser) parseStatements() {
	if p.tok() == token.KwChillax {
		p.lex.Advance()
		return
	}
	p.parseStatement()
	for p.tok() == token.Semicolon {
		p.lex.Advance()
		p.parseStatement()
	}
}

func (p *Parser) parseStatement() {
	switch p.tok() {
	case token.KwLet:
		p.parseAssign()
	case token.Ident:
		p.parseCall()
	case token.KwIf:
		p.parseIf()
	case token.KwInput:
		p.parseInput()
	case token.KwOutput:
		p.parseOutput()
	case token.KwReturn:
		p.parseReturn()
	case token.KwWhile:
		p.parseWhile()
	default:
		p.sink.Report(p.pos(), diag.ErrExpectedStatement, token.Name(p.tok()))
	}
}

func (p *Parser) parseAssign() {
	p.lex.Advance() // "let"
	name, namePos := p.expectID()
	props, ok := p.sym.Find(name)
	if !ok {
		p.sink.Report(namePos, diag.ErrUnknownIdentifier, name)
	}
	if valtype.IsCallable(props.Type) {
		p.sink.Report(namePos, diag.ErrNotAVariable, name)
	}

	indexed := false
	var target valtype.Type
	if p.tok() == token.LBracket {
		if !valtype.IsArray(props.Type) {
			p.sink.Report(namePos, diag.ErrNotAnArray, name)
		}
		p.parseIndex()
		indexed = true
		target = valtype.Indexed(props.Type)
	} else {
		target = props.Type
	}

	p.expect(token.Assign)

	if !token.StartsExpr(p.tok()) && p.tok() != token.KwArray {
		p.sink.Report(p.pos(), diag.ErrExpectedExpressionOrArrayAllocation, token.Name(p.tok()))
	}

	if !indexed && p.tok() == token.KwArray {
		if !valtype.IsArray(props.Type) {
			p.sink.Report(namePos, diag.ErrNotAnArray, name)
		}
		p.lex.Advance()
		sizePos := p.pos()
		sizeType := p.parseSimple()
		if !valtype.IsInteger(sizeType) {
			p.sink.Report(sizePos, diag.ErrTypeMismatch, valtype.Scalar(valtype.Int), sizeType, "for array allocation size")
		}
		return
	}

	rhsPos := p.pos()
	rhsType := p.parseExpr()
	if rhsType.Array != target.Array || rhsType.Base != target.Base {
		ctx := "for assignment to '" + name + "'"
		if indexed {
			ctx = "for indexed assignment to '" + name + "'"
		}
		p.sink.Report(rhsPos, diag.ErrTypeMismatch, target, rhsType, ctx)
	}
}

// parseIndex recognizes `"[" simple "]"`, requiring the index expression
// to be a plain integer.
func (p *Parser) parseIndex() {
	p.expect(token.LBracket)
	idxPos := p.pos()
	idxType := p.parseSimple()
	if !valtype.IsInteger(idxType) {
		p.sink.Report(idxPos, diag.ErrTypeMismatch, valtype.Scalar(valtype.Int), idxType, "for array index")
	}
	p.expect(token.RBracket)
}

func (p *Parser) parseCall() {
	name, namePos := p.expectID()
	props, ok := p.sym.Find(name)
	if !ok {
		p.sink.Report(namePos, diag.ErrUnknownIdentifier, name)
	}
	// Preserve the source's observable ordering (spec.md §9, Open
	// Question 2): a function used in call-statement position is
	// reported as ERR_NOT_A_PROCEDURE before the general callability
	// check would otherwise fire.
	if valtype.IsFunction(props.Type) {
		p.sink.Report(namePos, diag.ErrNotAProcedure, name)
	} else if !valtype.IsCallable(props.Type) {
		p.sink.Report(namePos, diag.ErrNotAProcedure, name)
	}
	args := p.parseArgList()
	p.checkArgs(name, namePos, props.ParamTypes, args)
}

type argResult struct {
	Type valtype.Type
	Pos  token.Position
}

// parseArgList recognizes `"(" [expr {"," expr}] ")"`.
func (p *Parser) parseArgList() []argResult {
	p.expect(token.LParen)
	var args []argResult
	if p.tok() != token.RParen {
		pos := p.pos()
		args = append(args, argResult{Type: p.parseExpr(), Pos: pos})
		for p.tok() == token.Comma {
			p.lex.Advance()
			pos := p.pos()
			args = append(args, argResult{Type: p.parseExpr(), Pos: pos})
		}
	}
	p.expect(token.RParen)
	return args
}

func (p *Parser) checkArgs(name string, namePos token.Position, params []valtype.Type, args []argResult) {
	for i, want := range params {
		if i >= len(args) {
			p.sink.Report(namePos, diag.ErrTooFewArguments, name)
		}
		got := args[i]
		if !argMatches(got.Type, want) {
			ctx := fmt.Sprintf("for argument %d of call to '%s'", i+1, name)
			p.sink.Report(got.Pos, diag.ErrTypeMismatch, want, got.Type, ctx)
		}
	}
	if len(args) > len(params) {
		p.sink.Report(namePos, diag.ErrTooManyArguments, name)
	}
}

// argMatches reports whether a call argument's type a satisfies a
// parameter's declared type want, per spec.md §4.5: both arrays of
// matching base, or both non-array scalars of matching base, or both
// callable.
func argMatches(a, want valtype.Type) bool {
	if a.Callable || want.Callable {
		return a.Callable == want.Callable
	}
	return a.Array == want.Array && a.Base == want.Base
}

func (p *Parser) parseIf() {
	p.lex.Advance() // "if"
	p.parseGuard("if")
	p.expect(token.Colon)
	p.parseStatements()

	for p.tok() == token.KwElif {
		p.lex.Advance()
		p.parseGuard("elif")
		p.expect(token.Colon)
		p.parseStatements()
	}
	if p.tok() == token.KwElse {
		p.lex.Advance()
		p.expect(token.Colon)
		p.parseStatements()
	}
	p.expect(token.KwEnd)
}

func (p *Parser) parseWhile() {
	p.lex.Advance() // "while"
	p.parseGuard("while")
	p.expect(token.Colon)
	p.parseStatements()
	p.expect(token.KwEnd)
}

// parseGuard parses an expr and requires it to be a non-array boolean,
// per spec.md §4.5 ("If and while guards must be non-array boolean").
func (p *Parser) parseGuard(context string) {
	guardPos := p.pos()
	t := p.parseExpr()
	if !valtype.IsBoolean(t) {
		ctx := fmt.Sprintf("for '%s' guard", context)
		p.sink.Report(guardPos, diag.ErrTypeMismatch, valtype.Scalar(valtype.Bool), t, ctx)
	}
}

func (p *Parser) parseInput() {
	p.lex.Advance() // "input"
	p.expect(token.LParen)
	name, namePos := p.expectID()
	props, ok := p.sym.Find(name)
	if !ok {
		p.sink.Report(namePos, diag.ErrUnknownIdentifier, name)
	}
	if valtype.IsCallable(props.Type) {
		p.sink.Report(namePos, diag.ErrNotAVariable, name)
	}
	if p.tok() == token.LBracket {
		if !valtype.IsArray(props.Type) {
			p.sink.Report(namePos, diag.ErrNotAnArray, name)
		}
		p.parseIndex()
	} else if valtype.IsArray(props.Type) {
		// spec.md §9, Open Question 3: a bare array name is rejected
		// rather than silently accepted.
		p.sink.Report(namePos, diag.ErrExpectedScalar, name)
	}
	p.expect(token.RParen)
}

func (p *Parser) parseOutput() {
	p.lex.Advance() // "output"
	p.expect(token.LParen)
	p.parseOutputOperand()
	for p.tok() == token.DotDot {
		p.lex.Advance()
		p.parseOutputOperand()
	}
	p.expect(token.RParen)
}

func (p *Parser) parseOutputOperand() {
	switch {
	case p.tok() == token.StringLit:
		p.lex.Advance()
	case token.StartsExpr(p.tok()):
		pos := p.pos()
		t := p.parseExpr()
		if valtype.IsArray(t) {
			p.sink.Report(pos, diag.ErrIllegalArrayOperation, "output")
		}
	default:
		p.sink.Report(p.pos(), diag.ErrExpectedExpressionOrString, token.Name(p.tok()))
	}
}

func (p *Parser) parseReturn() {
	retPos := p.pos()
	p.lex.Advance() // "return"

	// p.returnType already has the callable bit stripped (it was set via
	// valtype.Returned at subroutine/main entry); the base-None value is
	// exactly the "no return value expected" (procedure-like) context.
	if p.returnType == valtype.NoneType {
		if token.StartsExpr(p.tok()) {
			exprPos := p.pos()
			p.parseExpr()
			p.sink.Report(exprPos, diag.ErrReturnExpressionNotAllowed)
		}
		return
	}

	if !token.StartsExpr(p.tok()) {
		p.sink.Report(retPos, diag.ErrMissingReturnExpression)
	}
	exprPos := p.pos()
	t := p.parseExpr()
	if t.Array != p.returnType.Array || t.Base != p.returnType.Base {
		p.sink.Report(exprPos, diag.ErrTypeMismatch, p.returnType, t, "for 'return' statement")
	}
}
