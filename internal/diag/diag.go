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

// Package diag is the AMPL-2023 front-end's single diagnostics path. Every
// syntactic or semantic violation the parser detects funnels through here;
// the first one reported is fatal (spec.md Non-goals: no error recovery).
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"github.com/caedentelfer/ampl2023/internal/clog"
	"github.com/caedentelfer/ampl2023/internal/token"
)

// Kind is the closed taxonomy of error kinds from spec.md §7. The exact
// wording per kind is pinned by the test suite and must not change.
type Kind int

const (
	ErrExpect Kind = iota
	ErrExpectedTypeSpecifier
	ErrExpectedStatement
	ErrExpectedFactor
	ErrExpectedExpressionOrArrayAllocation
	ErrExpectedExpressionOrString
	ErrUnreachable
	ErrMultipleDefinition
	ErrUnknownIdentifier
	ErrNotAVariable
	ErrNotAnArray
	ErrNotAFunction
	ErrNotAProcedure
	ErrIllegalArrayOperation
	ErrExpectedScalar
	ErrTooFewArguments
	ErrTooManyArguments
	ErrMissingReturnExpression
	ErrReturnExpressionNotAllowed
	ErrTypeMismatch
	ErrIO
)

// Sink receives a formatted fatal diagnostic for a given source file and
// terminates the process. A real Sink is installed by lang.Compile/cmd;
// tests substitute a Sink that panics instead of exiting so the parser's
// "never returns" behavior is still observable without killing the test
// binary.
type Sink struct {
	// File is the name printed ahead of every diagnostic (spec.md §6).
	File string
	// Out is where the formatted diagnostic is written; defaults to os.Stderr.
	Out io.Writer
	// Exit is called after the message is written; defaults to os.Exit.
	// Tests override this to capture the kind/args instead of killing the
	// process.
	Exit func(code int)
}

// New returns a Sink that writes to os.Stderr and exits the process.
func New(file string) *Sink {
	return &Sink{File: file, Out: os.Stderr, Exit: os.Exit}
}

// Report formats the diagnostic for kind at pos and terminates. It never
// returns to its caller; callers in internal/parser treat a Report call as
// equivalent to a non-local exit and do not return afterwards, except that
// where Go's control-flow analysis needs a terminating statement they
// follow the call with a panic.
func (s *Sink) Report(pos token.Position, kind Kind, args ...interface{}) {
	msg := render(kind, args...)
	clog.L().WithField("pos", pos.String()).Debug("fatal: " + msg)
	out := s.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, "%s:%s: %s\n", s.File, pos, msg)
	exit := s.Exit
	if exit == nil {
		exit = os.Exit
	}
	exit(1)
}

// ReportIO reports an I/O or out-of-memory failure at pos with err as the
// dedicated message text (spec.md §7: "Out-of-memory or I/O failures are
// reported at their site with a dedicated message").
func (s *Sink) ReportIO(pos token.Position, err error) {
	s.Report(pos, ErrIO, errors.Cause(err))
}

func render(kind Kind, args ...interface{}) string {
	switch kind {
	case ErrExpect:
		return fmt.Sprintf("expected %v, but found %v", args[0], args[1])
	case ErrExpectedTypeSpecifier:
		return fmt.Sprintf("expected type specifier, but found %v", args[0])
	case ErrExpectedStatement:
		return fmt.Sprintf("expected statement, but found %v", args[0])
	case ErrExpectedFactor:
		return fmt.Sprintf("expected factor, but found %v", args[0])
	case ErrExpectedExpressionOrArrayAllocation:
		return fmt.Sprintf("expected expression or array allocation, but found %v", args[0])
	case ErrExpectedExpressionOrString:
		return fmt.Sprintf("expected expression or string, but found %v", args[0])
	case ErrUnreachable:
		return fmt.Sprintf("unreachable: %v", args[0])
	case ErrMultipleDefinition:
		return fmt.Sprintf("multiple definition of '%v'", args[0])
	case ErrUnknownIdentifier:
		return fmt.Sprintf("unknown identifier '%v'", args[0])
	case ErrNotAVariable:
		return fmt.Sprintf("'%v' is not a variable", args[0])
	case ErrNotAnArray:
		return fmt.Sprintf("'%v' is not an array", args[0])
	case ErrNotAFunction:
		return fmt.Sprintf("'%v' is not a function", args[0])
	case ErrNotAProcedure:
		return fmt.Sprintf("'%v' is not a procedure", args[0])
	case ErrIllegalArrayOperation:
		return fmt.Sprintf("%v is an illegal array operation", args[0])
	case ErrExpectedScalar:
		return fmt.Sprintf("expected scalar variable instead of '%v'", args[0])
	case ErrTooFewArguments:
		return fmt.Sprintf("too few arguments for call to '%v'", args[0])
	case ErrTooManyArguments:
		return fmt.Sprintf("too many arguments for call to '%v'", args[0])
	case ErrMissingReturnExpression:
		return "missing return expression for a function"
	case ErrReturnExpressionNotAllowed:
		return "a return expression is not allowed for a procedure"
	case ErrTypeMismatch:
		return fmt.Sprintf("incompatible types (expected %v, found %v) %v", args[0], args[1], args[2])
	case ErrIO:
		return fmt.Sprintf("I/O error: %v", args[0])
	default:
		return errors.Errorf("unknown diagnostic kind %d", kind).Error()
	}
}
