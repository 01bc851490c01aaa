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

package ampl_test

import (
	"strings"
	"testing"

	"github.com/caedentelfer/ampl2023/lang/ampl"
)

// Compile wires diag.New(file), which exits the process on rejection, so
// only the acceptance path is exercised here; the full accept/reject
// matrix is covered by internal/parser's tests against a mocked sink.
func TestCompileAcceptsWellFormedProgram(t *testing.T) {
	src := `program fib: f(int n) -> int: if n < 2: return n end; return n main: output(f(5))`
	width := ampl.Compile("fib.ampl", strings.NewReader(src))
	if width != 1 {
		t.Errorf("Compile frame width = %d, want 1", width)
	}
}

func TestCompileAcceptsVariablesAndArrays(t *testing.T) {
	src := `program p: main: int array a; int i; let a = array 10; let i = 0; let a[i] = 1`
	width := ampl.Compile("p.ampl", strings.NewReader(src))
	if width != 3 {
		t.Errorf("Compile frame width = %d, want 3", width)
	}
}
