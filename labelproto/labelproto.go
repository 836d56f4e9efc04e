// Copyright 2020 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package labelproto encodes labeled syntax trees as protocol messages,
// for consumers written in other languages.
//
// A tree is represented as a google.protobuf.Value:
//
//	{
//	  "root": NODE,
//	  "bindings": [{"id": 0, "name": "x", "kind": "local"}, ...]
//	}
//
// where a NODE is {"type": "lvasgn", "children": [CHILD, ...]} (plus
// "captures": [IDENT, ...] for a labeled match_with_lvasgn), and a
// CHILD is a NODE, an IDENT {"name": "x", "binding": 0}, a symbol
// {"sym": "puts"}, a number, a string, or null.
//
// THIS PACKAGE IS EXPERIMENTAL AND ITS INTERFACE MAY CHANGE.
package labelproto // import "go.rblabel.net/labelproto"

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/known/structpb"

	"go.rblabel.net/label"
	"go.rblabel.net/syntax"
)

// Formats lists the encodings accepted by Marshal.
var Formats = []string{"text", "json", "wire"}

// Marshal encodes a labeled tree in the named format:
// "text" (protocol buffer text format), "json" or "wire".
func Marshal(tree *label.Tree, format string) ([]byte, error) {
	var marshal func(protoreflect.ProtoMessage) ([]byte, error)
	switch format {
	case "wire":
		marshal = proto.Marshal

	case "text":
		marshal = prototext.MarshalOptions{Multiline: true, Indent: "\t"}.Marshal

	case "json":
		marshal = protojson.MarshalOptions{Multiline: true, Indent: "\t"}.Marshal

	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return marshal(Value(tree))
}

// Value returns the protocol message representation of a labeled tree.
func Value(tree *label.Tree) *structpb.Value {
	bindings := make([]*structpb.Value, len(tree.Bindings))
	for i, b := range tree.Bindings {
		bindings[i] = object(map[string]*structpb.Value{
			"id":   number(float64(b.ID)),
			"name": str(b.Name),
			"kind": str(b.Kind.String()),
		})
	}
	return object(map[string]*structpb.Value{
		"root":     Node(tree.Root),
		"bindings": list(bindings),
	})
}

// Node returns the protocol message representation of a subtree.
func Node(n syntax.Node) *structpb.Value {
	switch n := n.(type) {
	case nil:
		return null()
	case syntax.Symbol:
		return symbol(string(n))
	case *syntax.Literal:
		switch v := n.Value.(type) {
		case int64:
			return number(float64(v))
		case float64:
			return number(v)
		case string:
			if n.Raw != "" && n.Raw[0] == '"' {
				return str(v)
			}
		}
		return object(map[string]*structpb.Value{"raw": str(n.Raw)})
	}

	fields := syntax.Children(n)
	children := make([]*structpb.Value, len(fields))
	for i, c := range fields {
		children[i] = child(c)
	}
	obj := map[string]*structpb.Value{
		"type":     str(n.Type()),
		"children": list(children),
	}
	if m, ok := n.(*syntax.MatchWithLvasgn); ok && m.Captures != nil {
		captures := make([]*structpb.Value, len(m.Captures))
		for i, id := range m.Captures {
			captures[i] = ident(id)
		}
		obj["captures"] = list(captures)
	}
	return object(obj)
}

func child(c interface{}) *structpb.Value {
	switch c := c.(type) {
	case *syntax.Ident:
		return ident(c)
	case string:
		return symbol(c)
	case int:
		return number(float64(c))
	case syntax.Node:
		return Node(c)
	}
	return null()
}

func ident(id *syntax.Ident) *structpb.Value {
	if id == nil {
		return null()
	}
	obj := map[string]*structpb.Value{"name": str(id.Name)}
	if id.Binding != nil {
		obj["binding"] = number(float64(id.Binding.ID))
	}
	return object(obj)
}

func symbol(name string) *structpb.Value {
	return object(map[string]*structpb.Value{"sym": str(name)})
}

func null() *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NullValue{}}
}

func number(x float64) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_NumberValue{NumberValue: x}}
}

func str(s string) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StringValue{StringValue: s}}
}

func list(elems []*structpb.Value) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_ListValue{ListValue: &structpb.ListValue{Values: elems}}}
}

func object(fields map[string]*structpb.Value) *structpb.Value {
	return &structpb.Value{Kind: &structpb.Value_StructValue{StructValue: &structpb.Struct{Fields: fields}}}
}
