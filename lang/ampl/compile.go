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

// Package ampl provides the single entry point that wires the AMPL-2023
// front end together: internal/lexer feeds internal/parser, which drives
// internal/symtab and reports through internal/diag. It carries no parsing
// logic of its own.
package ampl

import (
	"io"

	"github.com/caedentelfer/ampl2023/internal/diag"
	"github.com/caedentelfer/ampl2023/internal/lexer"
	"github.com/caedentelfer/ampl2023/internal/parser"
	"github.com/caedentelfer/ampl2023/internal/symtab"
)

// Compile reads one AMPL-2023 source file from r, named file for
// diagnostics, and type-checks it to completion. It returns the frame
// width of the program's main body on success. There is no error return
// for a rejected program: the first diagnostic found terminates the
// process (spec.md Non-goals, §6), matching the reference front end's
// single-fatal-diagnostic model exactly.
func Compile(file string, r io.Reader) (frameWidth int) {
	sink := diag.New(file)
	var sym symtab.Table
	lex := lexer.New(r, sink)
	p := parser.New(lex, &sym, sink)
	return p.Parse()
}
