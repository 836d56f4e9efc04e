// Copyright 2017 The Bazel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package label

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// ExtractVariables returns the names of the named capture groups of a
// Ruby regexp, (?<name>...) or (?'name'...), in order of appearance.
// A repeated name appears once per group.
//
// The scan is best-effort and never fails: escaped parentheses,
// parentheses in character classes, comment groups (?#...) and
// lookbehind assertions (?<=...), (?<!...) are skipped, and a group
// whose name is malformed is ignored. Where an inline (?x) option is
// in effect, a '#' starts a comment that extends to the end of the line.
func ExtractVariables(pattern string) []string {
	return extractVariables(pattern, false)
}

// extractVariables is ExtractVariables for a pattern compiled with the
// given initial extended (/x) mode.
func extractVariables(pattern string, extended bool) []string {
	var names []string
	var saved []bool // extended mode outside each open group
	class := 0       // nesting depth of character classes
	for i := 0; i < len(pattern); i++ {
		switch c := pattern[i]; {
		case c == '\\':
			i++
		case class > 0:
			if c == '[' {
				class++
			} else if c == ']' {
				class--
			}
		case c == '[':
			class++
		case c == '#' && extended:
			if end := strings.IndexByte(pattern[i:], '\n'); end >= 0 {
				i += end
			} else {
				i = len(pattern)
			}
		case c == ')':
			if n := len(saved); n > 0 {
				extended = saved[n-1]
				saved = saved[:n-1]
			}
		case c == '(':
			rest := pattern[i+1:]
			if strings.HasPrefix(rest, "?#") {
				// Comment group: skip to its end.
				if end := strings.IndexByte(rest, ')'); end >= 0 {
					i += 1 + end
				} else {
					i = len(pattern)
				}
				continue
			}
			if !strings.HasPrefix(rest, "?") {
				saved = append(saved, extended)
				continue
			}
			rest = rest[1:]
			if x, end, ok := options(rest, extended); ok {
				if rest[end] == ')' {
					// (?imx-imx) applies to the rest of the enclosing group.
					extended = x
				} else {
					// (?imx-imx:...) applies to its own group.
					saved = append(saved, extended)
					extended = x
				}
				i += 2 + end
				continue
			}
			saved = append(saved, extended)
			var close byte
			switch {
			case strings.HasPrefix(rest, "<="), strings.HasPrefix(rest, "<!"):
				continue
			case strings.HasPrefix(rest, "<"):
				close = '>'
			case strings.HasPrefix(rest, "'"):
				close = '\''
			default:
				continue
			}
			end := strings.IndexByte(rest[1:], close)
			if end < 0 {
				continue
			}
			if name := rest[1 : 1+end]; isGroupName(name) {
				names = append(names, name)
				i += 2 + 1 + end // the closing delimiter
			}
		}
	}
	return names
}

// options parses the flags of an option group, imx-imx followed by ')'
// or ':'. It returns the extended mode they leave in effect and the
// index of the terminator.
func options(s string, extended bool) (x bool, end int, ok bool) {
	on := true
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'i', 'm':
		case 'x':
			extended = on
		case '-':
			on = false
		case ')', ':':
			return extended, i, true
		default:
			return false, 0, false
		}
	}
	return false, 0, false
}

// isGroupName reports whether s is a valid capture group name:
// word characters, not starting with a digit.
func isGroupName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == utf8.RuneError {
			return false
		}
		if i == 0 && unicode.IsDigit(r) {
			return false
		}
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
