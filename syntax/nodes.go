// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package syntax

import "slices"

// Command is a single input line, parsed.
type Command struct {
	// Args holds the program name followed by its arguments.
	// It is never empty.
	Args []string

	// Builtin is set when Args[0] names a builtin. The rest of Args are the
	// raw fields that followed it; no operator was interpreted.
	Builtin bool

	// Stdin and Stdout are the redirect targets, if any.
	Stdin, Stdout string

	// Background is set when the command should not be waited on.
	Background bool
}

// Name returns the program or builtin name.
func (c *Command) Name() string { return c.Args[0] }

// Arg returns the builtin's i-th argument, not counting its name,
// or the empty string if there are not that many.
func (c *Command) Arg(i int) string {
	if i+1 < len(c.Args) {
		return c.Args[i+1]
	}
	return ""
}

// IsBuiltin reports whether name is one of the shell builtins.
func IsBuiltin(name string) bool {
	return slices.Contains(builtins, name)
}

var builtins = []string{"exit", "cd", "status"}
