// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package repl provides a read/label/print loop for Ruby syntax trees.
//
// It supports readline-style command editing,
// and interrupts through Control-C.
//
// Each entry is an s-expression as printed by the Ruby parser gem.
// The REPL reads lines until every parenthesis is closed, then labels
// the tree and prints it with each variable's binding. Variables bound
// in one entry are not visible in the next.
package repl // import "go.rblabel.net/repl"

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"

	"go.rblabel.net/label"
	"go.rblabel.net/syntax"
)

var interrupted = make(chan os.Signal, 1)

// A Printer writes a labeled tree to standard output.
type Printer func(tree *label.Tree) error

// REPL executes a read, label, print loop.
// A nil print uses syntax.Fprint.
func REPL(print Printer) {
	signal.Notify(interrupted, os.Interrupt)
	defer signal.Stop(interrupted)

	if print == nil {
		print = func(tree *label.Tree) error { return syntax.Fprint(os.Stdout, tree.Root) }
	}

	rl, err := readline.New(">>> ")
	if err != nil {
		PrintError(err)
		return
	}
	defer rl.Close()
	for {
		if err := rep(rl, print); err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println(err)
				continue
			}
			break
		}
	}
	fmt.Println()
}

// rep reads, labels, and prints one item.
//
// It returns an error (possibly readline.ErrInterrupt)
// only if readline failed. Syntax and labeling errors are printed.
func rep(rl *readline.Instance, print Printer) error {
	// Drop a SIGINT that arrived while the previous item was printed.
	select {
	case <-interrupted:
	default:
	}

	var buf strings.Builder
	rl.SetPrompt(">>> ")
	for {
		line, err := rl.Readline()
		rl.SetPrompt("... ")
		if err != nil {
			if err == io.EOF && strings.TrimSpace(buf.String()) != "" {
				PrintError(fmt.Errorf("<stdin>: unexpected end of input"))
			}
			return err
		}
		buf.WriteString(line)
		buf.WriteByte('\n')
		if syntax.Balanced(buf.String()) {
			break
		}
	}
	src := buf.String()
	if strings.TrimSpace(src) == "" || isComment(src) {
		return nil
	}

	// parse
	root, err := syntax.ParseString("<stdin>", src)
	if err != nil {
		PrintError(err)
		return nil
	}

	// label
	tree, err := label.Translate(root)
	if err != nil {
		PrintError(err)
		return nil
	}

	// print
	if err := print(tree); err != nil {
		PrintError(err)
	}
	return nil
}

// isComment reports whether src consists only of comment lines.
func isComment(src string) bool {
	for _, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return false
		}
	}
	return true
}

// PrintError prints the error to stderr,
// or each of its errors if it is a label.ErrorList.
func PrintError(err error) {
	if list, ok := err.(label.ErrorList); ok {
		for _, e := range list {
			fmt.Fprintln(os.Stderr, e)
		}
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}
