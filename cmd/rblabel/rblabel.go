// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The rblabel command labels the local variables of a Ruby syntax tree,
// given as an s-expression in the format printed by ruby-parse.
// With no arguments, it starts a read-label-print loop (REPL) if
// standard input is a terminal, and otherwise labels standard input.
package main // import "go.rblabel.net/cmd/rblabel"

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"

	"go.rblabel.net/label"
	"go.rblabel.net/labelproto"
	"go.rblabel.net/repl"
	"go.rblabel.net/syntax"
)

// flags
var (
	cpuprofile = flag.String("cpuprofile", "", "gather Go CPU profile in this file")
	execprog   = flag.String("c", "", "label the s-expression `sexp`")
	outputFlag = flag.String("output", "sexp", "output format (sexp, text, wire, json)")
	bindings   = flag.Bool("bindings", false, "print the binding table to stderr")
	dump       = flag.Bool("dump", false, "dump the labeled tree to stderr")
)

func main() {
	os.Exit(doMain())
}

func doMain() int {
	log.SetPrefix("rblabel: ")
	log.SetFlags(0)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		check(err)
		err = pprof.StartCPUProfile(f)
		check(err)
		defer func() {
			pprof.StopCPUProfile()
			err := f.Close()
			check(err)
		}()
	}

	print, err := printer(os.Stdout, os.Stderr, *outputFlag)
	if err != nil {
		log.Print(err)
		return 1
	}

	switch {
	case flag.NArg() == 1 || *execprog != "":
		var (
			filename string
			src      []byte
		)
		if *execprog != "" {
			// Label provided text.
			filename = "cmdline"
			src = []byte(*execprog)
		} else {
			// Label specified file.
			filename = flag.Arg(0)
			src, err = os.ReadFile(filename)
			if err != nil {
				log.Print(err)
				return 1
			}
		}
		return run(filename, src, print)
	case flag.NArg() == 0:
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			src, err := io.ReadAll(os.Stdin)
			if err != nil {
				log.Printf("reading standard input: %v", err)
				return 1
			}
			return run("<stdin>", src, print)
		}
		fmt.Println("Welcome to rblabel (go.rblabel.net)")
		repl.REPL(print)
	default:
		log.Print("want at most one file name")
		return 1
	}
	return 0
}

// run labels one tree and prints it, returning the exit status.
func run(filename string, src []byte, print repl.Printer) int {
	root, err := syntax.Parse(filename, src)
	if err != nil {
		repl.PrintError(err)
		return 1
	}
	tree, err := label.Translate(root)
	if err != nil {
		repl.PrintError(err)
		return 1
	}
	if err := print(tree); err != nil {
		log.Print(err)
		return 1
	}
	return 0
}

// printer returns a function that writes a labeled tree to stdout in
// the named format, followed on stderr by the diagnostics the
// -bindings and -dump flags request.
func printer(stdout, stderr io.Writer, format string) (repl.Printer, error) {
	var encode func(*label.Tree) error
	switch format {
	case "sexp":
		encode = func(tree *label.Tree) error { return syntax.Fprint(stdout, tree.Root) }
	case "text", "json", "wire":
		encode = func(tree *label.Tree) error {
			data, err := labelproto.Marshal(tree, format)
			if err != nil {
				return err
			}
			if _, err := stdout.Write(data); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			return nil
		}
	default:
		return nil, fmt.Errorf("unsupported -output format: %s", format)
	}

	return func(tree *label.Tree) error {
		if err := encode(tree); err != nil {
			return err
		}
		if *bindings {
			printBindings(stderr, tree)
		}
		if *dump {
			cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
			cfg.Fdump(stderr, tree.Root)
		}
		return nil
	}, nil
}

// printBindings prints one line per binding: id, name and kind.
func printBindings(w io.Writer, tree *label.Tree) {
	for _, b := range tree.Bindings {
		fmt.Fprintf(w, "%d\t%s\t%s\n", b.ID, b.Name, b.Kind)
	}
}

func check(err error) {
	if err != nil {
		log.Fatal(err)
	}
}
