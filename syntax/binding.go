// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines labeler data types referenced by the syntax tree.

// A Binding ties together all identifiers that denote the same variable.
// The labeler computes a binding for every Ident in a variable slot.
//
// Bindings are compared by identity. ID is an index into the arena of
// the labeled tree that owns the binding, and is meaningful only within
// that tree.
type Binding struct {
	ID   int
	Name string
	Kind Kind
}

// The Kind of a Binding records how its variable was introduced.
type Kind uint8

const (
	UndefinedKind Kind = iota // not introduced (zero value)
	ParamKind                 // formal parameter of a method or block
	LocalKind                 // target of an assignment or rescue clause
	CaptureKind               // named capture of a regexp match or pattern
	ImplicitKind              // numbered block parameter (_1, _2, ...)
)

var kindNames = [...]string{
	UndefinedKind: "undefined",
	ParamKind:     "param",
	LocalKind:     "local",
	CaptureKind:   "capture",
	ImplicitKind:  "implicit",
}

func (k Kind) String() string { return kindNames[k] }
