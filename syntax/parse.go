// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines a reader for the s-expression dump of a Ruby
// syntax tree, as printed by the parser gem:
//
//	(begin
//	  (lvasgn :x
//	    (int 1))
//	  (lvar :x))
//
// Atoms are nil, symbols (:x, :"odd name"), double-quoted strings and
// numbers. A '#' begins a comment that extends to the end of the line.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// A Position describes a location in the input text.
type Position struct {
	Filename string
	Line     int // 1-based
	Col      int // 1-based, in runes
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Col)
}

// An Error describes malformed input to Parse.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// Parse reads a single syntax tree from src.
// The filename is used only in error messages.
func Parse(filename string, src []byte) (Node, error) {
	sc := &scanner{filename: filename, src: src, line: 1, col: 1}
	sc.skip()
	if sc.eof() {
		return nil, sc.errorf(sc.pos(), "empty input")
	}
	it, err := sc.item()
	if err != nil {
		return nil, err
	}
	sc.skip()
	if !sc.eof() {
		return nil, sc.errorf(sc.pos(), "unexpected text after tree")
	}
	return build(it)
}

// ParseString is a convenience wrapper for Parse.
func ParseString(filename, src string) (Node, error) {
	return Parse(filename, []byte(src))
}

// Balanced reports whether every parenthesis in src is closed,
// ignoring those inside strings, quoted symbols and comments.
// The REPL uses it to decide when an entry is complete.
func Balanced(src string) bool {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch src[i] {
		case '(':
			depth++
		case ')':
			depth--
		case '#':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case '"':
			for i++; i < len(src) && src[i] != '"'; i++ {
				if src[i] == '\\' {
					i++
				}
			}
		}
	}
	return depth <= 0
}

// -- reader --

type atomKind uint8

const (
	nilAtom atomKind = iota
	symAtom
	strAtom
	numAtom
)

type atom struct {
	pos   Position
	kind  atomKind
	raw   string
	value interface{} // string for sym/str; int64 | float64 | string for num
}

type list struct {
	pos  Position
	tag  string
	args []interface{} // *atom | *list
}

type scanner struct {
	filename  string
	src       []byte
	off       int
	line, col int
}

func (sc *scanner) pos() Position {
	return Position{Filename: sc.filename, Line: sc.line, Col: sc.col}
}

func (sc *scanner) errorf(pos Position, format string, args ...interface{}) error {
	return Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (sc *scanner) eof() bool { return sc.off >= len(sc.src) }

func (sc *scanner) peek() rune {
	r, _ := utf8.DecodeRune(sc.src[sc.off:])
	return r
}

func (sc *scanner) next() rune {
	r, size := utf8.DecodeRune(sc.src[sc.off:])
	sc.off += size
	if r == '\n' {
		sc.line++
		sc.col = 1
	} else {
		sc.col++
	}
	return r
}

// skip skips white space and comments.
func (sc *scanner) skip() {
	for !sc.eof() {
		switch sc.peek() {
		case ' ', '\t', '\r', '\n', ',':
			sc.next()
		case '#':
			for !sc.eof() && sc.peek() != '\n' {
				sc.next()
			}
		default:
			return
		}
	}
}

func isDelim(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '(', ')', '"', '#', ',':
		return true
	}
	return false
}

// word reads a bare token.
func (sc *scanner) word() string {
	start := sc.off
	for !sc.eof() && !isDelim(sc.peek()) {
		sc.next()
	}
	return string(sc.src[start:sc.off])
}

func (sc *scanner) item() (interface{}, error) {
	pos := sc.pos()
	switch r := sc.peek(); r {
	case '(':
		sc.next()
		sc.skip()
		if sc.eof() {
			return nil, sc.errorf(pos, "unclosed parenthesis")
		}
		tag := sc.word()
		if tag == "" {
			return nil, sc.errorf(sc.pos(), "missing node type")
		}
		l := &list{pos: pos, tag: tag}
		for {
			sc.skip()
			if sc.eof() {
				return nil, sc.errorf(pos, "unclosed parenthesis")
			}
			if sc.peek() == ')' {
				sc.next()
				return l, nil
			}
			it, err := sc.item()
			if err != nil {
				return nil, err
			}
			l.args = append(l.args, it)
		}

	case ')':
		return nil, sc.errorf(pos, "unexpected ')'")

	case '"':
		raw, s, err := sc.quoted()
		if err != nil {
			return nil, err
		}
		return &atom{pos: pos, kind: strAtom, raw: raw, value: s}, nil

	case ':':
		sc.next()
		if !sc.eof() && sc.peek() == '"' {
			raw, s, err := sc.quoted()
			if err != nil {
				return nil, err
			}
			return &atom{pos: pos, kind: symAtom, raw: ":" + raw, value: s}, nil
		}
		name := sc.word()
		if name == "" {
			return nil, sc.errorf(pos, "empty symbol")
		}
		return &atom{pos: pos, kind: symAtom, raw: ":" + name, value: name}, nil
	}

	w := sc.word()
	if w == "nil" {
		return &atom{pos: pos, kind: nilAtom, raw: w}, nil
	}
	if i, err := strconv.ParseInt(w, 10, 64); err == nil {
		return &atom{pos: pos, kind: numAtom, raw: w, value: i}, nil
	}
	if strings.ContainsAny(w, ".eE") {
		if f, err := strconv.ParseFloat(w, 64); err == nil {
			return &atom{pos: pos, kind: numAtom, raw: w, value: f}, nil
		}
	}
	if w == "" {
		return nil, sc.errorf(pos, "unexpected %q", sc.peek())
	}
	// Big integers, rationals and the like keep their text.
	return &atom{pos: pos, kind: numAtom, raw: w, value: w}, nil
}

// quoted reads a double-quoted string in Ruby's inspect notation
// and returns its raw text and decoded value.
func (sc *scanner) quoted() (raw, s string, err error) {
	pos := sc.pos()
	start := sc.off
	sc.next() // '"'
	var buf strings.Builder
	for {
		if sc.eof() {
			return "", "", sc.errorf(pos, "unterminated string")
		}
		r := sc.next()
		switch r {
		case '"':
			return string(sc.src[start:sc.off]), buf.String(), nil
		case '\\':
			if sc.eof() {
				return "", "", sc.errorf(pos, "unterminated string")
			}
			switch c := sc.peek(); c {
			case '#', '"', '\\', '\'':
				sc.next()
				buf.WriteRune(c)
				continue
			case 'e':
				sc.next()
				buf.WriteByte(0x1b)
				continue
			case 's':
				sc.next()
				buf.WriteByte(' ')
				continue
			}
			// Defer other escapes (\n, \t, \xhh, \uhhhh, octal) to strconv.
			end := sc.off + 11 // longest escape: \Uhhhhhhhh
			if end > len(sc.src) {
				end = len(sc.src)
			}
			rest := string(sc.src[sc.off-1 : end])
			value, multibyte, tail, err := strconv.UnquoteChar(rest, '"')
			if err != nil {
				return "", "", sc.errorf(sc.pos(), "invalid escape in string")
			}
			for n := len(rest) - len(tail) - 1; n > 0; n-- {
				sc.next()
			}
			if multibyte {
				buf.WriteRune(value)
			} else {
				buf.WriteByte(byte(value))
			}
		default:
			buf.WriteRune(r)
		}
	}
}

// -- builder --

// build converts a reader item to a Node.
func build(it interface{}) (Node, error) {
	switch it := it.(type) {
	case *atom:
		switch it.kind {
		case nilAtom:
			return nil, nil
		case symAtom:
			return Symbol(it.value.(string)), nil
		default:
			return &Literal{Raw: it.raw, Value: it.value}, nil
		}
	case *list:
		return buildList(it)
	}
	panic(it)
}

func buildList(l *list) (Node, error) {
	b := builder{l: l}
	var n Node
	switch l.tag {
	case "lvasgn":
		b.arity(1, 2)
		x := &LocalAsgn{Name: b.ident(0)}
		if len(l.args) == 2 {
			x.Value = b.node(1)
		}
		n = x
	case "lvar":
		b.arity(1, 1)
		n = &LocalVar{Name: b.ident(0)}
	case "def":
		b.arity(3, 3)
		n = &Def{Name: b.symbol(0), Args: b.args(1), Body: b.node(2)}
	case "defs":
		b.arity(4, 4)
		n = &Defs{Receiver: b.node(0), Name: b.symbol(1), Args: b.args(2), Body: b.node(3)}
	case "args":
		n = &Args{Items: b.nodes()}
	case "arg":
		b.arity(1, 1)
		n = &Arg{Name: b.ident(0)}
	case "optarg":
		b.arity(2, 2)
		n = &OptArg{Name: b.ident(0), Default: b.node(1)}
	case "restarg":
		b.arity(0, 1)
		n = &RestArg{Name: b.optIdent(0)}
	case "kwarg":
		b.arity(1, 1)
		n = &KwArg{Name: b.ident(0)}
	case "kwoptarg":
		b.arity(2, 2)
		n = &KwOptArg{Name: b.ident(0), Default: b.node(1)}
	case "kwrestarg":
		b.arity(0, 1)
		n = &KwRestArg{Name: b.optIdent(0)}
	case "blockarg":
		b.arity(0, 1)
		n = &BlockArg{Name: b.optIdent(0)}
	case "shadowarg":
		b.arity(1, 1)
		n = &ShadowArg{Name: b.ident(0)}
	case "mlhs":
		n = &Mlhs{Items: b.nodes()}
	case "procarg0":
		// Older parsers print a lone block parameter as (procarg0 :a).
		if len(l.args) == 1 {
			if a, ok := l.args[0].(*atom); ok && a.kind == symAtom {
				n = &Procarg0{Name: b.ident(0)}
				break
			}
		}
		n = &Procarg0{Items: b.nodes()}
	case "block":
		b.arity(3, 3)
		n = &Block{Call: b.node(0), Args: b.args(1), Body: b.node(2)}
	case "numblock":
		b.arity(3, 3)
		n = &NumBlock{Call: b.node(0), Count: b.count(1), Body: b.node(2)}
	case "class":
		b.arity(3, 3)
		n = &Class{Name: b.node(0), Superclass: b.node(1), Body: b.node(2)}
	case "module":
		b.arity(2, 2)
		n = &Module{Name: b.node(0), Body: b.node(1)}
	case "sclass":
		b.arity(2, 2)
		n = &SClass{Object: b.node(0), Body: b.node(1)}
	case "resbody":
		b.arity(3, 3)
		n = &Resbody{Exceptions: b.node(0), Var: b.node(1), Body: b.node(2)}
	case "match_with_lvasgn":
		b.arity(2, 2)
		n = &MatchWithLvasgn{Regexp: b.node(0), Value: b.node(1)}
	case "match_var":
		b.arity(1, 1)
		n = &MatchVar{Name: b.ident(0)}
	default:
		n = &Generic{Kind: l.tag, Children: b.nodes()}
	}
	if b.err != nil {
		return nil, b.err
	}
	return n, nil
}

// A builder converts the arguments of one list,
// recording the first error it encounters.
type builder struct {
	l   *list
	err error
}

func (b *builder) errorf(pos Position, format string, args ...interface{}) {
	if b.err == nil {
		b.err = Error{Pos: pos, Msg: fmt.Sprintf(format, args...)}
	}
}

func (b *builder) arity(min, max int) {
	if n := len(b.l.args); n < min || n > max {
		if min == max {
			b.errorf(b.l.pos, "%s: got %d children, want %d", b.l.tag, n, min)
		} else {
			b.errorf(b.l.pos, "%s: got %d children, want %d to %d", b.l.tag, n, min, max)
		}
	}
}

func (b *builder) arg(i int) interface{} {
	if i < len(b.l.args) {
		return b.l.args[i]
	}
	return nil
}

func (b *builder) node(i int) Node {
	it := b.arg(i)
	if it == nil || b.err != nil {
		return nil
	}
	n, err := build(it)
	if err != nil && b.err == nil {
		b.err = err
	}
	return n
}

func (b *builder) nodes() []Node {
	var nodes []Node
	for i := range b.l.args {
		nodes = append(nodes, b.node(i))
	}
	return nodes
}

func (b *builder) symbol(i int) string {
	if a, ok := b.arg(i).(*atom); ok && a.kind == symAtom {
		return a.value.(string)
	}
	b.errorf(b.l.pos, "%s: child %d is not a symbol", b.l.tag, i)
	return ""
}

func (b *builder) ident(i int) *Ident {
	name := b.symbol(i)
	if b.err != nil {
		return nil
	}
	return &Ident{Name: name}
}

func (b *builder) optIdent(i int) *Ident {
	if a, ok := b.arg(i).(*atom); !ok || a.kind == nilAtom {
		if _, isList := b.arg(i).(*list); isList {
			b.errorf(b.l.pos, "%s: child %d is not a symbol", b.l.tag, i)
		}
		return nil
	}
	return b.ident(i)
}

func (b *builder) args(i int) *Args {
	l, ok := b.arg(i).(*list)
	if !ok || l.tag != "args" {
		b.errorf(b.l.pos, "%s: child %d is not an args list", b.l.tag, i)
		return nil
	}
	args, _ := b.node(i).(*Args)
	return args
}

func (b *builder) count(i int) int {
	if a, ok := b.arg(i).(*atom); ok {
		if n, ok := a.value.(int64); ok && n >= 0 {
			if n > MaxNumParams {
				b.errorf(b.l.pos, "%s: parameter count %d exceeds %d", b.l.tag, n, MaxNumParams)
				return 0
			}
			return int(n)
		}
	}
	b.errorf(b.l.pos, "%s: child %d is not a parameter count", b.l.tag, i)
	return 0
}
