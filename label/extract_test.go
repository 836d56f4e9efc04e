// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package label_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"go.rblabel.net/label"
	"go.rblabel.net/syntax"
)

func TestExtractVariables(t *testing.T) {
	for _, test := range []struct {
		pattern string
		want    []string
	}{
		{`(?<x>..)(?'y'..)`, []string{"x", "y"}},
		{`(?<year>\d+)-(?<month>\d+)`, []string{"year", "month"}},
		{`(?<a>.)(?<a>.)`, []string{"a", "a"}},
		{`(?<outer>a(?<inner>b))`, []string{"outer", "inner"}},
		{`(a)(?:b)(?i)c`, nil},
		{`(?<=x)(?<!y)(?<z>.)`, []string{"z"}},
		{`\(?<x>.\)`, nil},
		{`[(?<x>)](?<y>.)`, []string{"y"}},
		{`[a-z&&[^(?<x>)]](?'y'.)`, []string{"y"}},
		{`(?#(?<x>)(?<y>.)`, []string{"y"}},
		{`\\(?<x>.)`, []string{"x"}},
		{`(?<été>.)`, []string{"été"}},
		{`(?<1x>.)(?<x y>.)(?<>.)`, nil},
		{`(?<unterminated`, nil},
		{"(?<a>.)(?x: # (?<b>.)\n)", []string{"a"}},
		{"(?x)(?<a>.) # (?<b>.)", []string{"a"}},
		{"(?x:a)#(?<b>.)", []string{"b"}},
		{"(?x)(?-x:#(?<a>.))", []string{"a"}},
		{"(?x)[#](?<a>.)", []string{"a"}},
		{"(?x)\\#(?<a>.)", []string{"a"}},
		{"(?mix)(?<a>.)# (?<b>.)\n(?<c>.)", []string{"a", "c"}},
		{``, nil},
	} {
		got := label.ExtractVariables(test.pattern)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("ExtractVariables(%q) (-want +got):\n%s", test.pattern, diff)
		}
	}
}

func TestRegexpSource(t *testing.T) {
	for _, test := range []struct {
		input, want string
	}{
		{`(regexp (str "(?<x>..)") (regopt))`, "(?<x>..)"},
		{`(regexp (str "(?<a>.)\n") (str "(?<b>.)") (regopt :x))`, "(?<a>.)\n(?<b>.)"},
		{`(regexp (str "a") (begin (lvar :s)) (regopt))`, "a"},
		{`(str "(?<x>..)")`, ""},
	} {
		n, err := syntax.ParseString("test.sexp", test.input)
		if err != nil {
			t.Errorf("%s: %v", test.input, err)
			continue
		}
		if got := label.RegexpSource(n); got != test.want {
			t.Errorf("RegexpSource(%s) = %q, want %q", test.input, got, test.want)
		}
	}
}
