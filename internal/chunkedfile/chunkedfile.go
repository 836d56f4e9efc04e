// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chunkedfile provides utilities for golden-file testing of
// tree transforms.
//
// A chunked file consists of several chunks of input text separated by
// "---" lines. Each chunk is an input to the program under test. A line
// consisting of "==>" divides a chunk into its input and the expected
// output. Lines containing "###" are interpreted as expectations of
// failure: the following text is a Go string literal denoting a regular
// expression that should match a failure message.
//
// Example:
//
//	(begin (lvasgn :x (int 1)) (lvar :x))
//	==>
//	(begin (lvasgn x@0 (int 1)) (lvar x@0))
//	---
//	(lvar :y) ### "undefined local variable y"
//
// A client test feeds each chunk's Source into the program under test,
// then calls chunk.GotError for each error that actually occurred, or
// chunk.Check with the output, and finally chunk.Done. Any discrepancy
// is reported using the client's reporter, typically a testing.T.
package chunkedfile // import "go.rblabel.net/internal/chunkedfile"

import (
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// A Chunk is a portion of a source file.
// It contains an expected output or a set of expected errors.
type Chunk struct {
	Source   string
	Want     string // expected output, if the chunk has a "==>" line
	HasWant  bool
	filename string
	line     int // first line of the chunk in the file
	report   Reporter
	wantErrs []*regexp.Regexp
}

// Reporter is implemented by *testing.T.
type Reporter interface {
	Errorf(format string, args ...interface{})
}

// Read parses a chunked file and returns its chunks.
// It reports failures using the reporter.
//
// Error messages of the form "file:line: ..." are prefixed by a newline
// so that the Go source position added by (*testing.T).Errorf appears
// on a separate line so as not to confuse editors.
func Read(filename string, report Reporter) (chunks []Chunk) {
	data, err := os.ReadFile(filename)
	if err != nil {
		report.Errorf("%s", err)
		return
	}
	return readBytes(filename, data, report)
}

func readBytes(filename string, data []byte, report Reporter) (chunks []Chunk) {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	linenum := 1
	for _, chunk := range strings.Split(text, "\n---\n") {
		c := Chunk{filename: filename, line: linenum, report: report}

		lines := strings.Split(chunk, "\n")
		var src, want []string
		inWant := false
		for j, line := range lines {
			if strings.TrimSpace(line) == "==>" && !inWant {
				inWant = true
				c.HasWant = true
				continue
			}
			if hashes := strings.Index(line, "###"); hashes >= 0 && !inWant {
				rest := strings.TrimSpace(line[hashes+len("###"):])
				pattern, err := strconv.Unquote(rest)
				if err != nil {
					report.Errorf("\n%s:%d: not a quoted regexp: %s", filename, linenum+j, rest)
				} else if rx, err := regexp.Compile(pattern); err != nil {
					report.Errorf("\n%s:%d: %v", filename, linenum+j, err)
				} else {
					c.wantErrs = append(c.wantErrs, rx)
				}
			}
			if inWant {
				want = append(want, line)
			} else {
				src = append(src, line)
			}
		}
		// Pad with newlines so the line numbers match the original file.
		c.Source = strings.Repeat("\n", linenum-1) + strings.Join(src, "\n")
		c.Want = strings.TrimSpace(strings.Join(want, "\n"))
		linenum += len(lines) + 1

		chunks = append(chunks, c)
	}
	return chunks
}

// GotError should be called by the client to report an error.
// GotError reports unexpected errors to the chunk's reporter.
func (chunk *Chunk) GotError(msg string) {
	for i, rx := range chunk.wantErrs {
		if rx.MatchString(msg) {
			chunk.wantErrs = append(chunk.wantErrs[:i], chunk.wantErrs[i+1:]...)
			return
		}
	}
	chunk.report.Errorf("\n%s:%d: unexpected error: %v", chunk.filename, chunk.line, msg)
}

// Check compares the client's output with the chunk's expected output,
// ignoring leading and trailing space, and reports a unified diff if
// they differ.
func (chunk *Chunk) Check(got string) {
	if !chunk.HasWant {
		return
	}
	got = strings.TrimSpace(got)
	if got == chunk.Want {
		return
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(chunk.Want + "\n"),
		B:        difflib.SplitLines(got + "\n"),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	if err != nil {
		diff = err.Error()
	}
	chunk.report.Errorf("\n%s:%d: output mismatch:\n%s", chunk.filename, chunk.line, diff)
}

// Done should be called by the client to indicate that the chunk has no more errors.
// Done reports expected errors that did not occur to the chunk's reporter.
func (chunk *Chunk) Done() {
	for _, rx := range chunk.wantErrs {
		chunk.report.Errorf("\n%s:%d: expected error matching %q", chunk.filename, chunk.line, rx)
	}
}
