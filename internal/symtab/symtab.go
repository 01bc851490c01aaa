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

// Package symtab is the AMPL-2023 scope-aware symbol table: a program-
// global scope of subroutine names and, while parsing a subroutine body, a
// single per-subroutine local scope of parameters and variables (spec.md
// §3, §4.3).
package symtab

import (
	"github.com/caedentelfer/ampl2023/internal/clog"
	"github.com/caedentelfer/ampl2023/internal/valtype"
)

// Props holds everything known about a defined identifier.
type Props struct {
	Type valtype.Type

	// Offset is the local frame slot assigned to a variable; meaningless
	// for subroutines.
	Offset int

	// NParams and ParamTypes describe a callable's signature, in
	// left-to-right header order; meaningless for variables (NParams is
	// always 0 for them).
	NParams    int
	ParamTypes []valtype.Type
}

// Table is the two-level symbol table described by spec.md §3/§4.3: a
// global scope that only ever holds callables, and at most one active
// local scope that only ever holds variables.
type Table struct {
	global *hashMap
	local  *hashMap // nil outside a subroutine body
	width  int
}

// Init creates the global scope and resets the current frame width.
func (t *Table) Init() {
	t.global = newHashMap()
	t.local = nil
	t.width = 1
}

// OpenSubroutine attempts to insert name->props into the global scope. On
// success it opens a fresh, empty local scope and resets the frame width
// to 1; on a duplicate name it reports false and leaves the table
// unchanged.
func (t *Table) OpenSubroutine(name string, props *Props) bool {
	if !t.global.insert(name, props) {
		return false
	}
	t.local = newHashMap()
	t.width = 1
	clog.L().WithField("name", name).Debug("symtab: open subroutine")
	return true
}

// OpenMain opens the local scope for the program's main body. main is
// never itself inserted into the global scope — it has no name other
// callables could reference — so unlike OpenSubroutine this cannot fail.
func (t *Table) OpenMain() {
	t.local = newHashMap()
	t.width = 1
	clog.L().Debug("symtab: open main")
}

// CloseSubroutine destroys the current local scope and returns to the
// global scope.
func (t *Table) CloseSubroutine() {
	t.local = nil
	clog.L().Debug("symtab: close subroutine")
}

// Insert adds name->props to the currently active scope (the local scope
// if a subroutine body is open, else the global scope). If props is a
// variable (non-callable), its Offset is set to the current frame width
// and the width is then incremented. Insert reports false on a duplicate
// name in the active scope.
func (t *Table) Insert(name string, props *Props) bool {
	scope := t.activeScope()
	if !props.Type.Callable {
		props.Offset = t.width
	}
	if !scope.insert(name, props) {
		return false
	}
	if !props.Type.Callable {
		t.width++
	}
	return true
}

// Find resolves name: first in the current scope (local if a subroutine
// body is open), then — only if that fails and the name is found in the
// global scope and is callable — in the global scope. A non-callable
// global hit (which the table's invariants never produce, since only
// variables are ever inserted locally and only callables globally) is
// treated as not-found, preventing an enclosing local scope's variables
// from leaking across subroutines.
func (t *Table) Find(name string) (*Props, bool) {
	if t.local != nil {
		if p, ok := t.local.get(name); ok {
			return p, true
		}
		if p, ok := t.global.get(name); ok && p.Type.Callable {
			return p, true
		}
		return nil, false
	}
	if p, ok := t.global.get(name); ok && p.Type.Callable {
		return p, true
	}
	return nil, false
}

// VariablesWidth returns 1 + the number of variables inserted into the
// current local scope so far (spec.md §3).
func (t *Table) VariablesWidth() int { return t.width }

// Release frees both scopes. The table must be re-Init'd before reuse.
func (t *Table) Release() {
	t.global = nil
	t.local = nil
	t.width = 0
}

func (t *Table) activeScope() *hashMap {
	if t.local != nil {
		return t.local
	}
	return t.global
}
