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

// Package clog provides the front-end's trace logger. It never carries
// user-facing diagnostics (those go through internal/diag) — only
// developer-facing tracing of lexer/parser/symtab decisions, gated behind
// -v on the CLI.
package clog

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu  sync.Mutex
	log = newDefault()
)

func newDefault() *logrus.Logger {
	l := logrus.New()
	l.Out = os.Stderr
	l.SetLevel(logrus.WarnLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return l
}

// L returns the package-level trace logger.
func L() *logrus.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log
}

// SetTrace enables or disables debug-level tracing (the CLI's -v flag).
func SetTrace(on bool) {
	mu.Lock()
	defer mu.Unlock()
	if on {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}
