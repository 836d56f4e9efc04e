// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Walk traverses a syntax tree in depth-first order.
// It starts by calling f(n); n must not be nil.
// If f returns true, Walk calls itself
// recursively for each non-nil child of n.
// Walk then calls f(nil).
func Walk(n Node, f func(Node) bool) {
	if n == nil {
		panic("nil")
	}
	if !f(n) {
		return
	}
	for _, c := range fields(n) {
		if c, ok := c.(Node); ok {
			Walk(c, f)
		}
	}
	f(nil)
}

// Idents returns the identifiers of the tree rooted at n in
// depth-first, left-to-right order of their slots. The captures of a
// MatchWithLvasgn follow its children.
func Idents(n Node) []*Ident {
	var idents []*Ident
	var visit func(n Node)
	visit = func(n Node) {
		for _, c := range fields(n) {
			switch c := c.(type) {
			case *Ident:
				idents = append(idents, c)
			case Node:
				visit(c)
			}
		}
		if m, ok := n.(*MatchWithLvasgn); ok {
			idents = append(idents, m.Captures...)
		}
	}
	if n != nil {
		visit(n)
	}
	return idents
}

// Children returns the children of n in slot order, as the Ruby
// parser gem would: each element is a Node, an *Ident, a method name
// string, a parameter count, or nil for an absent child. Terminal
// nodes have no children.
func Children(n Node) []interface{} {
	return fields(n)
}
