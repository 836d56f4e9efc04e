// Copyright 2020 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package labelproto_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/testing/protocmp"
	"google.golang.org/protobuf/types/known/structpb"

	"go.rblabel.net/label"
	"go.rblabel.net/labelproto"
	"go.rblabel.net/syntax"
)

func translate(t *testing.T, src string) *label.Tree {
	t.Helper()
	root, err := syntax.ParseString("test.sexp", src)
	if err != nil {
		t.Fatal(err)
	}
	tree, err := label.Translate(root)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestJSON(t *testing.T) {
	tree := translate(t, `(begin (lvasgn :x (int 1)) (send nil :p (lvar :x) (str "hi")))`)
	data, err := labelproto.Marshal(tree, "json")
	if err != nil {
		t.Fatal(err)
	}
	var got interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("invalid JSON %s: %v", data, err)
	}

	x := map[string]interface{}{"name": "x", "binding": 0.0}
	want := map[string]interface{}{
		"root": map[string]interface{}{
			"type": "begin",
			"children": []interface{}{
				map[string]interface{}{
					"type": "lvasgn",
					"children": []interface{}{
						x,
						map[string]interface{}{"type": "int", "children": []interface{}{1.0}},
					},
				},
				map[string]interface{}{
					"type": "send",
					"children": []interface{}{
						nil,
						map[string]interface{}{"sym": "p"},
						map[string]interface{}{"type": "lvar", "children": []interface{}{x}},
						map[string]interface{}{"type": "str", "children": []interface{}{"hi"}},
					},
				},
			},
		},
		"bindings": []interface{}{
			map[string]interface{}{"id": 0.0, "name": "x", "kind": "local"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("JSON output mismatch (-want +got):\n%s", diff)
	}
}

func TestCapturesAndAnonymousParams(t *testing.T) {
	tree := translate(t, `(begin
  (def :f (args (restarg) (arg :a)) nil)
  (match_with_lvasgn (regexp (str "(?<y>.)") (regopt)) (str "z"))
  (numblock (send nil :each) 1 (lvar :_1)))`)
	v := labelproto.Value(tree)
	root := v.GetStructValue().Fields["root"].GetStructValue()
	stmts := root.Fields["children"].GetListValue().Values

	// def: name symbol, args with an anonymous rest parameter.
	def := stmts[0].GetStructValue().Fields["children"].GetListValue().Values
	if got := def[0].GetStructValue().Fields["sym"].GetStringValue(); got != "f" {
		t.Errorf("def name = %q, want f", got)
	}
	args := def[1].GetStructValue().Fields["children"].GetListValue().Values
	rest := args[0].GetStructValue()
	if n := len(rest.Fields["children"].GetListValue().Values); rest.Fields["type"].GetStringValue() != "restarg" || n != 0 {
		t.Errorf("anonymous restarg encoded as %v", rest)
	}

	match := stmts[1].GetStructValue()
	captures := match.Fields["captures"].GetListValue().Values
	if len(captures) != 1 {
		t.Fatalf("got %d captures, want 1", len(captures))
	}
	y := captures[0].GetStructValue()
	if y.Fields["name"].GetStringValue() != "y" || y.Fields["binding"].GetNumberValue() != 1 {
		t.Errorf("capture encoded as %v", y)
	}

	numblock := stmts[2].GetStructValue().Fields["children"].GetListValue().Values
	if got := numblock[1].GetNumberValue(); got != 1 {
		t.Errorf("numblock count = %v, want 1", got)
	}

	bindings := v.GetStructValue().Fields["bindings"].GetListValue().Values
	var kinds []string
	for _, b := range bindings {
		kinds = append(kinds, b.GetStructValue().Fields["kind"].GetStringValue())
	}
	if got, want := strings.Join(kinds, " "), "param capture implicit"; got != want {
		t.Errorf("binding kinds = %s, want %s", got, want)
	}
}

func TestWireAndText(t *testing.T) {
	tree := translate(t, `(block (send nil :tap) (args (arg :a)) (lvasgn :b (lvar :a)))`)
	want := labelproto.Value(tree)

	for _, test := range []struct {
		format    string
		unmarshal func([]byte, proto.Message) error
	}{
		{"wire", proto.Unmarshal},
		{"text", prototext.Unmarshal},
	} {
		data, err := labelproto.Marshal(tree, test.format)
		if err != nil {
			t.Errorf("%s: %v", test.format, err)
			continue
		}
		got := new(structpb.Value)
		if err := test.unmarshal(data, got); err != nil {
			t.Errorf("%s: decoding: %v", test.format, err)
			continue
		}
		if diff := cmp.Diff(want, got, protocmp.Transform()); diff != "" {
			t.Errorf("%s: round trip mismatch (-want +got):\n%s", test.format, diff)
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	tree := translate(t, `(nil)`)
	_, err := labelproto.Marshal(tree, "yaml")
	if err == nil || err.Error() != "unsupported output format: yaml" {
		t.Errorf("Marshal(yaml) returned error %v", err)
	}
}
