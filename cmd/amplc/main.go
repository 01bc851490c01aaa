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

package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/caedentelfer/ampl2023/internal/clog"
	"github.com/caedentelfer/ampl2023/lang/ampl"
)

func atExit(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "amplc: %v\n", err)
	os.Exit(1)
}

func main() {
	var err error

	defer func() { atExit(err) }()

	trace := flag.Bool("v", false, "enable trace logging of lexer/parser/symtab internals")
	flag.Parse()
	clog.SetTrace(*trace)

	if flag.NArg() != 1 {
		err = errors.Errorf("usage: amplc [-v] <source-file>")
		return
	}
	fileName := flag.Arg(0)

	f, err := os.Open(fileName)
	if err != nil {
		err = errors.Wrap(err, "open failed")
		return
	}
	defer f.Close()

	width := ampl.Compile(fileName, bufio.NewReader(f))
	clog.L().WithField("width", width).Debug("amplc: accepted")
}
