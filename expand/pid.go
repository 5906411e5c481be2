// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package expand implements the few expansions the shell performs on an input
// line before it is split into fields.
package expand

import (
	"strconv"
	"strings"
)

// PidMarker is replaced by the shell's own process ID.
const PidMarker = "$$"

// Pid replaces the first occurrence of [PidMarker] in line with the decimal
// representation of pid. Any later occurrences are kept verbatim, and a line
// without the marker is returned unchanged.
//
// There is no way to escape the marker.
func Pid(line string, pid int) string {
	before, after, found := strings.Cut(line, PidMarker)
	if !found {
		return line
	}
	return before + strconv.Itoa(pid) + after
}
