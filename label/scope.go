// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package label

import "go.rblabel.net/syntax"

// A registry allocates the bindings of one Translate call.
// The ID of each binding is its index in the arena.
type registry struct {
	bindings []*syntax.Binding
}

func (r *registry) create(name string, kind syntax.Kind) *syntax.Binding {
	b := &syntax.Binding{ID: len(r.bindings), Name: name, Kind: kind}
	r.bindings = append(r.bindings, b)
	return b
}

type frameKind uint8

const (
	programFrame frameKind = iota // the top level; opaque
	methodFrame                   // def, defs; opaque
	blockFrame                    // block, numblock, lambda; transparent
	classFrame                    // class, module, sclass; opaque, no parent
)

// A frame is a lexical scope, live only during a traversal.
type frame struct {
	kind frameKind
	desc string // for error messages, e.g. "method f"

	// parent is the frame that unresolved lookups continue in.
	// It is nil for the program frame and for class bodies,
	// whose locals never alias those of the enclosing code.
	parent *frame

	bindings map[string]*syntax.Binding
}

func (f *frame) opaque() bool { return f.kind != blockFrame }

// push enters a new frame. Every push must be paired with a pop.
func (l *labeler) push(kind frameKind, desc string) {
	f := &frame{kind: kind, desc: desc, bindings: make(map[string]*syntax.Binding)}
	if kind != classFrame && len(l.frames) > 0 {
		f.parent = l.top()
	}
	l.frames = append(l.frames, f)
}

// pop discards the innermost frame.
func (l *labeler) pop() {
	l.frames[len(l.frames)-1] = nil
	l.frames = l.frames[:len(l.frames)-1]
}

func (l *labeler) top() *frame { return l.frames[len(l.frames)-1] }

// lookup searches for name from the innermost frame outwards, through
// transparent frames, stopping after the first opaque frame.
func (l *labeler) lookup(name string) *syntax.Binding {
	for f := l.top(); f != nil; f = f.parent {
		if b, ok := f.bindings[name]; ok {
			return b
		}
		if f.opaque() {
			break
		}
	}
	return nil
}

// declare binds name in the innermost frame, unless that frame
// already binds it, in which case the existing binding is returned.
func (l *labeler) declare(name string, kind syntax.Kind) *syntax.Binding {
	f := l.top()
	if b, ok := f.bindings[name]; ok {
		return b
	}
	b := l.reg.create(name, kind)
	f.bindings[name] = b
	return b
}

// assign returns the visible binding of name, or creates one in the
// innermost frame. Inside a block, a name that is not visible becomes
// local to that block.
func (l *labeler) assign(name string, kind syntax.Kind) *syntax.Binding {
	if b := l.lookup(name); b != nil {
		return b
	}
	return l.declare(name, kind)
}

// resolve returns the visible binding of name.
// It records an error and returns nil if there is none.
func (l *labeler) resolve(name string) *syntax.Binding {
	if b := l.lookup(name); b != nil {
		return b
	}
	l.errorf(name, "undefined local variable %s in %s", name, l.top().desc)
	return nil
}
