// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import (
	"slices"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"
)

var fieldsTests = []struct {
	in   string
	want []string
}{
	{"", nil},
	{"   ", nil},
	{"\t\n", nil},
	{"ls", []string{"ls"}},
	{"ls -la", []string{"ls", "-la"}},
	{"  ls  \t -la \n", []string{"ls", "-la"}},
	{"cat<in", []string{"cat<in"}},
	{"cat < in > out &", []string{"cat", "<", "in", ">", "out", "&"}},
	{"echo 'a b'", []string{"echo", "'a", "b'"}},
	{"echo wide", []string{"echo", "wide"}},
	{"héllo wörld", []string{"héllo", "wörld"}},
}

func TestFields(t *testing.T) {
	t.Parallel()
	for _, tc := range fieldsTests {
		t.Run("", func(t *testing.T) {
			got := slices.Collect(Fields(tc.in))
			qt.Assert(t, qt.DeepEquals(got, tc.want))
			// Same as the standard library's definition of whitespace.
			want := strings.Fields(tc.in)
			if len(want) == 0 {
				want = nil
			}
			qt.Assert(t, qt.DeepEquals(got, want))
		})
	}
}

func TestFieldsRestartable(t *testing.T) {
	t.Parallel()
	seq := Fields("sort < in > out")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	qt.Assert(t, qt.DeepEquals(first, second))
	qt.Assert(t, qt.HasLen(first, 5))
}

func TestFieldsStopEarly(t *testing.T) {
	t.Parallel()
	var got []string
	for field := range Fields("a b c d") {
		got = append(got, field)
		if field == "b" {
			break
		}
	}
	qt.Assert(t, qt.DeepEquals(got, []string{"a", "b"}))
}

func TestFieldsIdempotent(t *testing.T) {
	t.Parallel()
	for _, tc := range fieldsTests {
		once := slices.Collect(Fields(tc.in))
		twice := slices.Collect(Fields(strings.Join(once, " ")))
		qt.Check(t, qt.DeepEquals(twice, once))
	}
}
