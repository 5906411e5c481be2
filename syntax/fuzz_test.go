// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"slices"
	"strings"
	"testing"
	"unicode/utf8"
)

func FuzzParse(f *testing.F) {
	for _, tc := range parseTests {
		f.Add(tc.in, tc.fgOnly)
	}
	for _, tc := range parseErrTests {
		f.Add(tc.in, false)
	}
	p := NewParser()
	f.Fuzz(func(t *testing.T, line string, fgOnly bool) {
		cmd, err := p.Parse(line, fgOnly)
		if err != nil {
			if cmd != nil {
				t.Fatalf("Parse(%q) returned both a command and an error", line)
			}
			return
		}
		if cmd == nil {
			return
		}
		if len(cmd.Args) == 0 || len(cmd.Args) > DefaultMaxArgs {
			t.Fatalf("Parse(%q) gave %d args", line, len(cmd.Args))
		}
		if utf8.RuneCountInString(strings.TrimSuffix(line, "\n")) > DefaultMaxLineLen {
			t.Fatalf("Parse(%q) accepted a line over the limit", line)
		}
		if cmd.Builtin {
			// A builtin name only counts as the first field.
			if !IsBuiltin(cmd.Name()) {
				t.Fatalf("Parse(%q) treated %q as a builtin", line, cmd.Name())
			}
			return
		}
		if fgOnly && cmd.Background {
			t.Fatalf("Parse(%q) ran in the background in foreground-only mode", line)
		}
		if cmd.Name() != "echo" && slices.Contains(cmd.Args, Background) {
			t.Fatalf("Parse(%q) kept a %q argument", line, Background)
		}
		if cmd.Background && (cmd.Stdin == "" || cmd.Stdout == "") {
			t.Fatalf("Parse(%q) left a background command without redirects", line)
		}
	})
}
