// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package label ties together the occurrences of each local variable
// in a Ruby syntax tree.
//
// Translate copies a tree produced by the Ruby parser and sets the
// Binding of every identifier in a variable slot, so that two
// identifiers share a Binding exactly when they denote the same
// variable. The scoping rules are Ruby's:
//
//   - A method body (def, defs) starts a scope that sees nothing
//     of the enclosing code.
//   - A block or lambda starts a scope that sees the enclosing
//     scope. Its parameters shadow outer variables of the same name;
//     any other assignment reuses a visible variable or creates one
//     local to the block.
//   - A class, module or singleton class body starts a scope that
//     sees nothing of the enclosing code.
//   - Every other construct (begin/rescue, if, while, case) shares the
//     enclosing scope. A rescue clause's => name is an ordinary
//     assignment.
//   - Matching a regexp literal with named captures against a value
//     (/(?<x>..)/ =~ s) assigns one variable per capture.
package label // import "go.rblabel.net/label"

import (
	"strconv"

	"go.rblabel.net/syntax"
)

// A Tree is the result of labeling one syntax tree.
type Tree struct {
	Root syntax.Node

	// Bindings holds every binding of the tree in creation order;
	// Bindings[b.ID] == b.
	Bindings []*syntax.Binding
}

// Translate returns a labeled copy of the tree rooted at root.
// The input tree is not modified.
//
// If some variable read has no visible binding, Translate returns a
// nil tree and an ErrorList. This cannot happen for trees produced by
// the Ruby parser.
//
// Each call allocates its own bindings, so bindings from different
// calls never compare equal, and concurrent calls are safe.
func Translate(root syntax.Node) (*Tree, error) {
	l := new(labeler)
	l.push(programFrame, "top level")
	out := l.node(root)
	l.pop()
	if len(l.errors) > 0 {
		return nil, l.errors
	}
	return &Tree{Root: out, Bindings: l.reg.bindings}, nil
}

type labeler struct {
	reg    registry
	frames []*frame // innermost last
	errors ErrorList
}

func (l *labeler) ident(id *syntax.Ident, b *syntax.Binding) *syntax.Ident {
	return &syntax.Ident{Name: id.Name, Binding: b}
}

// param declares a parameter name in the innermost frame.
// Anonymous parameters (bare *, **, &) have a nil id.
func (l *labeler) param(id *syntax.Ident) *syntax.Ident {
	if id == nil {
		return nil
	}
	return l.ident(id, l.declare(id.Name, syntax.ParamKind))
}

func (l *labeler) node(n syntax.Node) syntax.Node {
	switch n := n.(type) {
	case nil:
		return nil

	case syntax.Symbol, *syntax.Literal:
		return n

	case *syntax.Generic:
		out := &syntax.Generic{Kind: n.Kind}
		if n.Children != nil {
			out.Children = make([]syntax.Node, len(n.Children))
		}
		for i, c := range n.Children {
			out.Children[i] = l.node(c)
		}
		return out

	case *syntax.LocalAsgn:
		// The parser declares the name before reading the value,
		// so in x = x the read denotes the variable being assigned.
		name := l.ident(n.Name, l.assign(n.Name.Name, syntax.LocalKind))
		return &syntax.LocalAsgn{Name: name, Value: l.node(n.Value)}

	case *syntax.LocalVar:
		return &syntax.LocalVar{Name: l.ident(n.Name, l.resolve(n.Name.Name))}

	case *syntax.Def:
		args, body := l.method("method "+n.Name, n.Args, n.Body)
		return &syntax.Def{Name: n.Name, Args: args, Body: body}

	case *syntax.Defs:
		recv := l.node(n.Receiver)
		args, body := l.method("singleton method "+n.Name, n.Args, n.Body)
		return &syntax.Defs{Receiver: recv, Name: n.Name, Args: args, Body: body}

	case *syntax.Args:
		return l.args(n)

	case *syntax.Arg:
		return &syntax.Arg{Name: l.param(n.Name)}

	case *syntax.OptArg:
		// Declared before the default, which may read it (def f(a = a)).
		name := l.param(n.Name)
		return &syntax.OptArg{Name: name, Default: l.node(n.Default)}

	case *syntax.RestArg:
		return &syntax.RestArg{Name: l.param(n.Name)}

	case *syntax.KwArg:
		return &syntax.KwArg{Name: l.param(n.Name)}

	case *syntax.KwOptArg:
		name := l.param(n.Name)
		return &syntax.KwOptArg{Name: name, Default: l.node(n.Default)}

	case *syntax.KwRestArg:
		return &syntax.KwRestArg{Name: l.param(n.Name)}

	case *syntax.BlockArg:
		return &syntax.BlockArg{Name: l.param(n.Name)}

	case *syntax.ShadowArg:
		return &syntax.ShadowArg{Name: l.param(n.Name)}

	case *syntax.Mlhs:
		return &syntax.Mlhs{Items: l.nodes(n.Items)}

	case *syntax.Procarg0:
		// A lone destructuring parameter: its items are labeled
		// exactly as those of the group it stands for.
		if n.Name != nil {
			return &syntax.Procarg0{Name: l.param(n.Name)}
		}
		return &syntax.Procarg0{Items: l.nodes(n.Items)}

	case *syntax.Block:
		return l.block(n)

	case *syntax.NumBlock:
		return l.numblock(n)

	case *syntax.Class:
		name := l.node(n.Name)
		super := l.node(n.Superclass)
		return &syntax.Class{Name: name, Superclass: super, Body: l.body("class body", n.Body)}

	case *syntax.Module:
		name := l.node(n.Name)
		return &syntax.Module{Name: name, Body: l.body("module body", n.Body)}

	case *syntax.SClass:
		obj := l.node(n.Object)
		return &syntax.SClass{Object: obj, Body: l.body("singleton class body", n.Body)}

	case *syntax.Resbody:
		exceptions := l.node(n.Exceptions)
		v := l.node(n.Var) // (lvasgn :e) assigns in the enclosing frame
		return &syntax.Resbody{Exceptions: exceptions, Var: v, Body: l.node(n.Body)}

	case *syntax.MatchWithLvasgn:
		return l.match(n)

	case *syntax.MatchVar:
		return &syntax.MatchVar{Name: l.ident(n.Name, l.assign(n.Name.Name, syntax.CaptureKind))}
	}
	panic("unexpected node " + n.Type())
}

func (l *labeler) nodes(nodes []syntax.Node) []syntax.Node {
	if nodes == nil {
		return nil
	}
	out := make([]syntax.Node, len(nodes))
	for i, n := range nodes {
		out[i] = l.node(n)
	}
	return out
}

// args labels a parameter list left to right in the innermost frame.
func (l *labeler) args(a *syntax.Args) *syntax.Args {
	if a == nil {
		return nil
	}
	return &syntax.Args{Items: l.nodes(a.Items)}
}

// method labels the parameters and body of a def in a new opaque frame.
func (l *labeler) method(desc string, args *syntax.Args, body syntax.Node) (*syntax.Args, syntax.Node) {
	l.push(methodFrame, desc)
	defer l.pop()
	labeledArgs := l.args(args)
	return labeledArgs, l.node(body)
}

func (l *labeler) block(n *syntax.Block) *syntax.Block {
	call := l.node(n.Call)
	l.push(blockFrame, "block")
	defer l.pop()
	args := l.args(n.Args)
	return &syntax.Block{Call: call, Args: args, Body: l.node(n.Body)}
}

func (l *labeler) numblock(n *syntax.NumBlock) *syntax.NumBlock {
	call := l.node(n.Call)
	l.push(blockFrame, "block")
	defer l.pop()
	for i := 1; i <= n.Count && i <= syntax.MaxNumParams; i++ {
		l.declare("_"+strconv.Itoa(i), syntax.ImplicitKind)
	}
	return &syntax.NumBlock{Call: call, Count: n.Count, Body: l.node(n.Body)}
}

// body labels a class, module or singleton class body in a frame
// that is unconnected to the enclosing ones.
func (l *labeler) body(desc string, body syntax.Node) syntax.Node {
	l.push(classFrame, desc)
	defer l.pop()
	return l.node(body)
}

func (l *labeler) match(n *syntax.MatchWithLvasgn) *syntax.MatchWithLvasgn {
	out := &syntax.MatchWithLvasgn{
		Regexp: l.node(n.Regexp),
		Value:  l.node(n.Value),
	}
	names := extractVariables(RegexpSource(n.Regexp), extendedRegexp(n.Regexp))
	out.Captures = make([]*syntax.Ident, len(names))
	for i, name := range names {
		out.Captures[i] = &syntax.Ident{Name: name, Binding: l.assign(name, syntax.CaptureKind)}
	}
	return out
}

// extendedRegexp reports whether a regexp literal node carries the x
// option: (regexp ... (regopt :x)).
func extendedRegexp(n syntax.Node) bool {
	re, ok := n.(*syntax.Generic)
	if !ok || re.Kind != "regexp" {
		return false
	}
	for _, c := range re.Children {
		if opt, ok := c.(*syntax.Generic); ok && opt.Kind == "regopt" {
			for _, flag := range opt.Children {
				if flag == syntax.Symbol("x") {
					return true
				}
			}
		}
	}
	return false
}

// RegexpSource returns the pattern text of a regexp literal node,
// (regexp (str "..") ... (regopt)): the concatenation of its string parts.
func RegexpSource(n syntax.Node) string {
	re, ok := n.(*syntax.Generic)
	if !ok || re.Kind != "regexp" {
		return ""
	}
	var src string
	for _, c := range re.Children {
		part, ok := c.(*syntax.Generic)
		if !ok || part.Kind != "str" || len(part.Children) != 1 {
			continue
		}
		if lit, ok := part.Children[0].(*syntax.Literal); ok {
			if s, ok := lit.Value.(string); ok {
				src += s
			}
		}
	}
	return src
}
