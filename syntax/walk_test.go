// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax_test

import (
	"bytes"
	"fmt"
	"log"
	"reflect"
	"strings"
	"testing"

	"go.rblabel.net/syntax"
)

func TestWalk(t *testing.T) {
	const src = `
(begin
  (lvasgn :x (int 1))
  (block (send nil :tap) (args (arg :y))
    (send nil :p (lvar :x) (lvar :y))))
`
	f, err := syntax.ParseString("hello.sexp", src)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	var depth int
	syntax.Walk(f, func(n syntax.Node) bool {
		if n == nil {
			depth--
			return true
		}
		fmt.Fprintf(&buf, "%s%s\n",
			strings.Repeat("  ", depth),
			strings.TrimPrefix(strings.TrimPrefix(reflect.TypeOf(n).String(), "*"), "syntax."))
		depth++
		return true
	})
	got := buf.String()
	want := `
Generic
  LocalAsgn
    Generic
      Literal
  Block
    Generic
      Symbol
    Args
      Arg
    Generic
      Symbol
      LocalVar
      LocalVar`
	got = strings.TrimSpace(got)
	want = strings.TrimSpace(want)
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestWalkPrune(t *testing.T) {
	f, err := syntax.ParseString("hello.sexp", `(begin (def :f (args (arg :a)) (lvar :a)) (lvar :b))`)
	if err != nil {
		t.Fatal(err)
	}
	var types []string
	syntax.Walk(f, func(n syntax.Node) bool {
		if n == nil {
			return true
		}
		types = append(types, n.Type())
		_, isDef := n.(*syntax.Def)
		return !isDef
	})
	if got, want := strings.Join(types, " "), "begin def lvar"; got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestPrint(t *testing.T) {
	const src = `(begin (lvasgn :x (int 1)) (def :f (args (optarg :a (lvar :x)) (restarg)) nil) (sym :"a b"))`
	n, err := syntax.ParseString("print.sexp", src)
	if err != nil {
		t.Fatal(err)
	}
	if got := syntax.String(n); got != src {
		t.Errorf("String = %s, want %s", got, src)
	}

	var buf bytes.Buffer
	if err := syntax.Fprint(&buf, n); err != nil {
		t.Fatal(err)
	}
	want := `(begin
  (lvasgn :x
    (int 1))
  (def :f
    (args
      (optarg :a
        (lvar :x))
      (restarg)) nil)
  (sym :"a b"))
`
	if got := buf.String(); got != want {
		t.Errorf("Fprint = %s, want %s", got, want)
	}

	// The indented form reads back to the same tree.
	m, err := syntax.Parse("print.sexp", buf.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got := syntax.String(m); got != src {
		t.Errorf("reparsed = %s, want %s", got, src)
	}
}

func TestFormatIdent(t *testing.T) {
	b := &syntax.Binding{ID: 7, Name: "x", Kind: syntax.LocalKind}
	for _, test := range []struct {
		id   *syntax.Ident
		want string
	}{
		{nil, "nil"},
		{&syntax.Ident{Name: "x"}, ":x"},
		{&syntax.Ident{Name: "x", Binding: b}, "x@7"},
	} {
		if got := syntax.FormatIdent(test.id); got != test.want {
			t.Errorf("FormatIdent(%+v) = %s, want %s", test.id, got, test.want)
		}
	}
	if got := b.Kind.String(); got != "local" {
		t.Errorf("Kind.String() = %s", got)
	}
}

// ExampleWalk demonstrates the use of Walk and Idents to
// enumerate the variable slots of a Ruby syntax tree.
func ExampleWalk() {
	const src = `
(begin
  (lvasgn :a (int 0))
  (def :b (args (arg :c) (optarg :d (int 1)) (restarg :e))
    (block (send nil :f) (args (procarg0 (arg :g) (mlhs (arg :h))))
      (op_asgn (lvasgn :i) :+ (lvar :g))))
  (kwbegin (rescue (lvar :a) (resbody nil (lvasgn :j) nil) nil)))
`
	f, err := syntax.ParseString("hello.sexp", src)
	if err != nil {
		log.Fatal(err)
	}

	var defs []string
	syntax.Walk(f, func(n syntax.Node) bool {
		if def, ok := n.(*syntax.Def); ok {
			defs = append(defs, def.Name)
		}
		return true
	})
	fmt.Println(strings.Join(defs, " "))

	var idents []string
	for _, id := range syntax.Idents(f) {
		idents = append(idents, id.Name)
	}
	fmt.Println(strings.Join(idents, " "))

	// Output:
	// b
	// a c d e g h i g a j
}
