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

// Package valtype implements the AMPL-2023 value-type algebra: a compact
// base kind plus two independent attribute bits (array, callable) and the
// total predicates over them (spec.md §3, §4.4).
package valtype

import "fmt"

// Base is the scalar base kind underlying a Type.
type Base int

const (
	// None is the base-none "no type" value: the implicit return type of a
	// procedure, or an uninitialized slot.
	None Base = iota
	Int
	Bool
)

func (b Base) String() string {
	switch b {
	case None:
		return "none"
	case Int:
		return "int"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("base(%d)", b)
	}
}

// Type is the compact value-type: a base kind and two independent
// attribute bits. Scalars have neither attribute; arrays of base T are the
// pair (T, array); a function is a callable with non-None base, a
// procedure a callable with base None.
type Type struct {
	Base     Base
	Array    bool
	Callable bool
}

// NoneType is the base-none, non-array, non-callable "no type" value.
var NoneType = Type{Base: None}

// Scalar returns the non-array, non-callable type with the given base.
func Scalar(b Base) Type { return Type{Base: b} }

// ArrayOf returns the array type with the given base.
func ArrayOf(b Base) Type { return Type{Base: b, Array: true} }

// Procedure returns the callable, base-None type of a procedure.
func Procedure() Type { return Type{Base: None, Callable: true} }

// Function returns the callable type of a function returning base b.
func Function(b Base) Type { return Type{Base: b, Callable: true} }

// IsArray reports whether t is an array.
func IsArray(t Type) bool { return t.Array }

// IsCallable reports whether t is a function or procedure.
func IsCallable(t Type) bool { return t.Callable }

// IsFunction reports whether t is callable with a non-None base.
func IsFunction(t Type) bool { return t.Callable && t.Base != None }

// IsProcedure reports whether t is callable with base None.
func IsProcedure(t Type) bool { return t.Callable && t.Base == None }

// IsInteger reports whether t is a non-callable, non-array int.
func IsInteger(t Type) bool { return !t.Callable && !t.Array && t.Base == Int }

// IsBoolean reports whether t is a non-callable, non-array bool.
func IsBoolean(t Type) bool { return !t.Callable && !t.Array && t.Base == Bool }

// IsScalar reports whether t has neither the array nor the callable
// attribute.
func IsScalar(t Type) bool { return !t.Array && !t.Callable }

// SameBase reports whether t and u have the same base kind, regardless of
// attributes.
func SameBase(t, u Type) bool { return t.Base == u.Base }

// Returned strips the callable bit from t, yielding the value-type of a
// call result or return expression of a callable; the array bit is kept
// (Indexed strips that one). Idempotent: Returned(Returned(t)) == Returned(t).
func Returned(t Type) Type {
	return Type{Base: t.Base, Array: t.Array}
}

// Indexed strips the array bit from t, yielding the scalar base type
// produced by indexing an array of type t.
func Indexed(t Type) Type {
	return Type{Base: t.Base, Callable: t.Callable}
}

func (t Type) String() string {
	switch {
	case IsProcedure(t):
		return "procedure"
	case IsFunction(t):
		return fmt.Sprintf("function returning %s", t.Base)
	case t.Array:
		return fmt.Sprintf("%s array", t.Base)
	default:
		return t.Base.String()
	}
}
