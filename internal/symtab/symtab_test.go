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

package symtab

import (
	"fmt"
	"testing"

	"github.com/caedentelfer/ampl2023/internal/valtype"
)

func TestHashMapRehash(t *testing.T) {
	m := newHashMap()
	initial := len(m.buckets)
	const n = 200
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("id%d", i)
		if !m.insert(key, &Props{Type: valtype.Scalar(valtype.Int), Offset: i}) {
			t.Fatalf("insert(%q) unexpectedly reported a duplicate", key)
		}
	}
	if len(m.buckets) <= initial {
		t.Fatalf("expected a rehash to a larger table, got %d buckets (started at %d)", len(m.buckets), initial)
	}
	if !isPrime(len(m.buckets)) {
		t.Errorf("bucket count %d is not prime", len(m.buckets))
	}
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("id%d", i)
		p, ok := m.get(key)
		if !ok {
			t.Fatalf("get(%q) not found after rehash", key)
		}
		if p.Offset != i {
			t.Errorf("get(%q).Offset = %d, want %d", key, p.Offset, i)
		}
	}
}

func TestHashMapDuplicateInsert(t *testing.T) {
	m := newHashMap()
	if !m.insert("x", &Props{}) {
		t.Fatal("first insert of 'x' reported a duplicate")
	}
	if m.insert("x", &Props{}) {
		t.Fatal("second insert of 'x' did not report a duplicate")
	}
}

func TestNextPrimeAbove(t *testing.T) {
	cases := map[int]int{1: 2, 2: 3, 8: 11, 33: 37}
	for n, want := range cases {
		if got := nextPrimeAbove(n); got != want {
			t.Errorf("nextPrimeAbove(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestTableScoping(t *testing.T) {
	var tab Table
	tab.Init()

	fProps := &Props{Type: valtype.Function(valtype.Int), NParams: 1, ParamTypes: []valtype.Type{valtype.Scalar(valtype.Int)}}
	if !tab.OpenSubroutine("f", fProps) {
		t.Fatal("OpenSubroutine(f) unexpectedly failed")
	}
	if !tab.Insert("x", &Props{Type: valtype.Scalar(valtype.Int)}) {
		t.Fatal("Insert(x) into local scope unexpectedly failed")
	}
	if got, ok := tab.Find("x"); !ok || got.Offset != 1 {
		t.Fatalf("Find(x) = %+v, %v; want offset 1, true", got, ok)
	}
	if _, ok := tab.Find("f"); !ok {
		t.Fatal("Find(f) should resolve the enclosing callable from local scope")
	}
	if tab.VariablesWidth() != 2 {
		t.Fatalf("VariablesWidth() = %d, want 2", tab.VariablesWidth())
	}
	tab.CloseSubroutine()

	if _, ok := tab.Find("x"); ok {
		t.Fatal("Find(x) should not resolve after CloseSubroutine")
	}
	if _, ok := tab.Find("f"); !ok {
		t.Fatal("Find(f) should still resolve from the global scope")
	}

	if tab.OpenSubroutine("f", fProps) {
		t.Fatal("OpenSubroutine(f) a second time should report a duplicate")
	}

	tab.OpenMain()
	if !tab.Insert("y", &Props{Type: valtype.Scalar(valtype.Bool)}) {
		t.Fatal("Insert(y) into main's local scope unexpectedly failed")
	}
	if _, ok := tab.Find("f"); !ok {
		t.Fatal("main's body should still see global callables")
	}
}

func TestTableVariableShadowsNothingAcrossScopes(t *testing.T) {
	var tab Table
	tab.Init()
	tab.OpenSubroutine("f", &Props{Type: valtype.Procedure()})
	tab.Insert("v", &Props{Type: valtype.Scalar(valtype.Int)})
	tab.CloseSubroutine()

	tab.OpenSubroutine("g", &Props{Type: valtype.Procedure()})
	if _, ok := tab.Find("v"); ok {
		t.Fatal("Find(v) leaked a variable from a previously closed subroutine")
	}
}
