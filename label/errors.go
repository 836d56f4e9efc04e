// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package label

import "fmt"

// An ErrorList is a non-empty list of labeling errors.
// It implements the error interface.
type ErrorList []Error

func (e ErrorList) Error() string { return e[0].Error() }

// An Error describes a local variable read with no visible binding.
// Well-formed parser output never produces one.
type Error struct {
	Name string // the unresolved name
	Msg  string
}

func (e Error) Error() string { return e.Msg }

func (l *labeler) errorf(name, format string, args ...interface{}) {
	l.errors = append(l.errors, Error{Name: name, Msg: fmt.Sprintf(format, args...)})
}
