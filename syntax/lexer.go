// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// Operators recognised by the [Parser]. [Fields] yields them as ordinary
// fields; they only gain a meaning once parsed.
const (
	RedirIn    = "<"
	RedirOut   = ">"
	Background = "&"
)

// Fields returns a sequence of the whitespace-separated fields of line.
// Runs of whitespace count as a single separator, and leading or trailing
// whitespace produces no empty fields.
//
// The sequence is lazy and may be iterated any number of times;
// line is never modified, and each field is a substring of it.
func Fields(line string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i < len(line); {
			r, size := utf8.DecodeRuneInString(line[i:])
			if unicode.IsSpace(r) {
				if start >= 0 {
					if !yield(line[start:i]) {
						return
					}
					start = -1
				}
			} else if start < 0 {
				start = i
			}
			i += size
		}
		if start >= 0 {
			yield(line[start:])
		}
	}
}
