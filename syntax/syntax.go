// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package syntax provides the Ruby syntax tree consumed by the labeler,
// and a reader and printer for the s-expression notation of the
// Ruby parser gem (as printed by ruby-parse).
package syntax // import "go.rblabel.net/syntax"

// A Node is a node in a Ruby syntax tree.
//
// The set of node types is closed. Constructs that affect local
// variable scoping have their own types; every other construct is a
// *Generic carrying its tag and children.
type Node interface {
	// Type returns the parser gem's tag for the node, e.g. "lvasgn".
	Type() string
	node()
}

func (*Generic) node()         {}
func (Symbol) node()           {}
func (*Literal) node()         {}
func (*LocalAsgn) node()       {}
func (*LocalVar) node()        {}
func (*Def) node()             {}
func (*Defs) node()            {}
func (*Args) node()            {}
func (*Arg) node()             {}
func (*OptArg) node()          {}
func (*RestArg) node()         {}
func (*KwArg) node()           {}
func (*KwOptArg) node()        {}
func (*KwRestArg) node()       {}
func (*BlockArg) node()        {}
func (*ShadowArg) node()       {}
func (*Mlhs) node()            {}
func (*Procarg0) node()        {}
func (*Block) node()           {}
func (*NumBlock) node()        {}
func (*Class) node()           {}
func (*Module) node()          {}
func (*SClass) node()          {}
func (*Resbody) node()         {}
func (*MatchWithLvasgn) node() {}
func (*MatchVar) node()        {}

// An Ident is a local variable name in a variable slot.
type Ident struct {
	Name string

	// set by the labeler:
	Binding *Binding
}

// A Generic is any node that does not affect scoping,
// e.g. (send nil :puts (int 1)) or (begin ...).
// A nil element of Children is an absent child.
type Generic struct {
	Kind     string
	Children []Node
}

func (x *Generic) Type() string { return x.Kind }

// A Symbol is a name terminal that does not denote a local variable,
// such as a method or constant name: :puts.
type Symbol string

func (Symbol) Type() string { return "sym" }

// A Literal is a number or string terminal.
type Literal struct {
	Raw   string      // uninterpreted text
	Value interface{} // = string | int64 | float64
}

func (*Literal) Type() string { return "literal" }

// A LocalAsgn assigns a local variable: (lvasgn :x (int 1)).
// Value is nil when the assignment is a target inside
// mlhs, op_asgn, resbody or for.
type LocalAsgn struct {
	Name  *Ident
	Value Node
}

func (*LocalAsgn) Type() string { return "lvasgn" }

// A LocalVar reads a local variable: (lvar :x).
type LocalVar struct {
	Name *Ident
}

func (*LocalVar) Type() string { return "lvar" }

// A Def is a method definition: (def :f (args ...) body).
type Def struct {
	Name string
	Args *Args
	Body Node // may be nil
}

func (*Def) Type() string { return "def" }

// A Defs is a singleton method definition: (defs (self) :f (args ...) body).
type Defs struct {
	Receiver Node
	Name     string
	Args     *Args
	Body     Node // may be nil
}

func (*Defs) Type() string { return "defs" }

// Args is a formal parameter list.
// Items are parameter nodes, *Mlhs groups, a *Procarg0,
// or generic markers such as (forward_arg).
type Args struct {
	Items []Node
}

func (*Args) Type() string { return "args" }

// An Arg is a required positional parameter: (arg :a).
type Arg struct {
	Name *Ident
}

// An OptArg is an optional positional parameter: (optarg :b (int 2)).
type OptArg struct {
	Name    *Ident
	Default Node
}

// A RestArg is a splat parameter: (restarg :c). Name is nil for a bare *.
type RestArg struct {
	Name *Ident
}

// A KwArg is a required keyword parameter: (kwarg :d).
type KwArg struct {
	Name *Ident
}

// A KwOptArg is an optional keyword parameter: (kwoptarg :e (sym :e)).
type KwOptArg struct {
	Name    *Ident
	Default Node
}

// A KwRestArg is a double-splat parameter: (kwrestarg :f). Name is nil for a bare **.
type KwRestArg struct {
	Name *Ident
}

// A BlockArg is a block-pass parameter: (blockarg :g). Name is nil for a bare &.
type BlockArg struct {
	Name *Ident
}

// A ShadowArg is a block-local variable: the b in |a; b|.
type ShadowArg struct {
	Name *Ident
}

func (*Arg) Type() string       { return "arg" }
func (*OptArg) Type() string    { return "optarg" }
func (*RestArg) Type() string   { return "restarg" }
func (*KwArg) Type() string     { return "kwarg" }
func (*KwOptArg) Type() string  { return "kwoptarg" }
func (*KwRestArg) Type() string { return "kwrestarg" }
func (*BlockArg) Type() string  { return "blockarg" }
func (*ShadowArg) Type() string { return "shadowarg" }

// An Mlhs is a parenthesized group: a destructuring parameter
// (mlhs (arg :a) (arg :b)) or a multiple-assignment target
// (mlhs (lvasgn :a) (lvasgn :b)).
type Mlhs struct {
	Items []Node
}

func (*Mlhs) Type() string { return "mlhs" }

// A Procarg0 is the sole parameter of a block: |(a, b)| or |a|.
// Older parsers print |a| as (procarg0 :a); such a node has a Name
// and no Items.
type Procarg0 struct {
	Name  *Ident
	Items []Node
}

func (*Procarg0) Type() string { return "procarg0" }

// A Block is a call with a block or a lambda literal:
// (block (send nil :tap) (args ...) body), (block (lambda) (args) body).
type Block struct {
	Call Node
	Args *Args
	Body Node // may be nil
}

func (*Block) Type() string { return "block" }

// MaxNumParams is the largest numbered parameter, _9.
const MaxNumParams = 9

// A NumBlock is a block using numbered parameters _1.._Count:
// (numblock (send nil :foo) 2 body).
type NumBlock struct {
	Call  Node
	Count int
	Body  Node
}

func (*NumBlock) Type() string { return "numblock" }

// A Class is a class definition: (class (const nil :A) nil body).
type Class struct {
	Name       Node
	Superclass Node // may be nil
	Body       Node // may be nil
}

func (*Class) Type() string { return "class" }

// A Module is a module definition: (module (const nil :B) body).
type Module struct {
	Name Node
	Body Node // may be nil
}

func (*Module) Type() string { return "module" }

// An SClass is a singleton class body: (sclass (self) body).
type SClass struct {
	Object Node
	Body   Node // may be nil
}

func (*SClass) Type() string { return "sclass" }

// A Resbody is a rescue clause: (resbody (array (const nil :E)) (lvasgn :e) body).
// Var is the assignment target of => name, or nil.
type Resbody struct {
	Exceptions Node
	Var        Node
	Body       Node
}

func (*Resbody) Type() string { return "resbody" }

// A MatchWithLvasgn is a match of a regexp literal against a value,
// which implicitly assigns the regexp's named captures:
// (match_with_lvasgn (regexp (str "(?<x>..)") (regopt)) (lvar :s)).
type MatchWithLvasgn struct {
	Regexp Node
	Value  Node

	// set by the labeler: one Ident per named capture, in pattern order.
	Captures []*Ident
}

func (*MatchWithLvasgn) Type() string { return "match_with_lvasgn" }

// A MatchVar binds a variable in a pattern: (match_var :x).
type MatchVar struct {
	Name *Ident
}

func (*MatchVar) Type() string { return "match_var" }
