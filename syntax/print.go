// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// String returns the tree rooted at n on a single line, in the notation
// accepted by Parse. Bound identifiers print as name@ID, unbound ones
// as symbols. The captures of a labeled MatchWithLvasgn print as a
// trailing bracketed list.
func String(n Node) string {
	var buf bytes.Buffer
	p := printer{w: &buf, inline: true}
	p.node(n, 0)
	return buf.String()
}

// Fprint writes the tree rooted at n to w in the indented layout
// used by ruby-parse: atoms follow their node on the same line and
// each nested node starts a new line.
func Fprint(w io.Writer, n Node) error {
	var buf bytes.Buffer
	p := printer{w: &buf}
	p.node(n, 0)
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

// FormatIdent returns the printed form of an identifier.
func FormatIdent(id *Ident) string {
	if id == nil {
		return "nil"
	}
	if id.Binding != nil {
		return fmt.Sprintf("%s@%d", id.Name, id.Binding.ID)
	}
	return ":" + id.Name
}

type printer struct {
	w      *bytes.Buffer
	inline bool
}

func (p *printer) node(n Node, depth int) {
	switch n := n.(type) {
	case nil:
		p.w.WriteString("nil")
	case Symbol:
		p.w.WriteString(formatSymbol(string(n)))
	case *Literal:
		p.w.WriteString(n.Raw)
	default:
		p.w.WriteByte('(')
		p.w.WriteString(n.Type())
		for _, c := range fields(n) {
			p.child(c, depth+1)
		}
		if m, ok := n.(*MatchWithLvasgn); ok && m.Captures != nil {
			p.w.WriteString(" [")
			for i, id := range m.Captures {
				if i > 0 {
					p.w.WriteByte(' ')
				}
				p.w.WriteString(FormatIdent(id))
			}
			p.w.WriteByte(']')
		}
		p.w.WriteByte(')')
	}
}

func (p *printer) child(c interface{}, depth int) {
	switch c := c.(type) {
	case *Ident:
		p.w.WriteByte(' ')
		p.w.WriteString(FormatIdent(c))
	case int:
		fmt.Fprintf(p.w, " %d", c)
	case string:
		p.w.WriteByte(' ')
		p.w.WriteString(formatSymbol(c))
	case Node:
		if _, atomic := c.(Symbol); atomic || isTerminal(c) || p.inline {
			p.w.WriteByte(' ')
		} else {
			p.w.WriteByte('\n')
			p.w.WriteString(strings.Repeat("  ", depth))
		}
		p.node(c, depth)
	default: // absent child
		p.w.WriteString(" nil")
	}
}

func isTerminal(n Node) bool {
	switch n.(type) {
	case nil, Symbol, *Literal:
		return true
	}
	return false
}

// formatSymbol quotes symbol names that the reader could not read back bare.
func formatSymbol(name string) string {
	if name == "" || strings.ContainsAny(name, " \t\r\n()\"#,") {
		return ":" + fmt.Sprintf("%q", name)
	}
	return ":" + name
}

// fields returns the children of n in order. Each element is a Node,
// an *Ident, a string (method name), an int (parameter count) or nil.
func fields(n Node) []interface{} {
	switch n := n.(type) {
	case *Generic:
		out := make([]interface{}, len(n.Children))
		for i, c := range n.Children {
			out[i] = nodeOrNil(c)
		}
		return out
	case *LocalAsgn:
		if n.Value == nil {
			return []interface{}{n.Name}
		}
		return []interface{}{n.Name, n.Value}
	case *LocalVar:
		return []interface{}{n.Name}
	case *Def:
		return []interface{}{n.Name, argsOrNil(n.Args), nodeOrNil(n.Body)}
	case *Defs:
		return []interface{}{nodeOrNil(n.Receiver), n.Name, argsOrNil(n.Args), nodeOrNil(n.Body)}
	case *Args:
		return nodeList(n.Items)
	case *Arg:
		return []interface{}{n.Name}
	case *OptArg:
		return []interface{}{n.Name, nodeOrNil(n.Default)}
	case *RestArg:
		return optIdent(n.Name)
	case *KwArg:
		return []interface{}{n.Name}
	case *KwOptArg:
		return []interface{}{n.Name, nodeOrNil(n.Default)}
	case *KwRestArg:
		return optIdent(n.Name)
	case *BlockArg:
		return optIdent(n.Name)
	case *ShadowArg:
		return []interface{}{n.Name}
	case *Mlhs:
		return nodeList(n.Items)
	case *Procarg0:
		if n.Name != nil {
			return []interface{}{n.Name}
		}
		return nodeList(n.Items)
	case *Block:
		return []interface{}{nodeOrNil(n.Call), argsOrNil(n.Args), nodeOrNil(n.Body)}
	case *NumBlock:
		return []interface{}{nodeOrNil(n.Call), n.Count, nodeOrNil(n.Body)}
	case *Class:
		return []interface{}{nodeOrNil(n.Name), nodeOrNil(n.Superclass), nodeOrNil(n.Body)}
	case *Module:
		return []interface{}{nodeOrNil(n.Name), nodeOrNil(n.Body)}
	case *SClass:
		return []interface{}{nodeOrNil(n.Object), nodeOrNil(n.Body)}
	case *Resbody:
		return []interface{}{nodeOrNil(n.Exceptions), nodeOrNil(n.Var), nodeOrNil(n.Body)}
	case *MatchWithLvasgn:
		return []interface{}{nodeOrNil(n.Regexp), nodeOrNil(n.Value)}
	case *MatchVar:
		return []interface{}{n.Name}
	}
	return nil
}

// nodeOrNil converts a nil Node to an untyped nil so that it prints as absent.
func nodeOrNil(n Node) interface{} {
	if n == nil {
		return nil
	}
	return n
}

func argsOrNil(a *Args) interface{} {
	if a == nil {
		return nil
	}
	return a
}

func nodeList(nodes []Node) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, c := range nodes {
		out[i] = nodeOrNil(c)
	}
	return out
}

func optIdent(id *Ident) []interface{} {
	if id == nil {
		return nil
	}
	return []interface{}{id}
}
