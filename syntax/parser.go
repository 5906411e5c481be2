// Copyright (c) 2016, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package syntax implements splitting and parsing of the shell's input lines.
//
// The language is deliberately tiny: a line is a list of whitespace-separated
// fields, with no quoting, and three operators which must stand alone as
// fields: "<" and ">" redirect standard input and output to the file named by
// the following field, and "&" runs the command in the background.
package syntax

import (
	"fmt"
	"iter"
	"os"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultMaxLineLen is the default maximum number of characters in a line.
	DefaultMaxLineLen = 2048
	// DefaultMaxArgs is the default maximum number of fields in a command,
	// including the program name.
	DefaultMaxArgs = 512
)

// ParserOption is a function which can be passed to [NewParser] to alter its
// behavior.
type ParserOption func(*Parser)

// MaxLineLen sets the maximum number of characters in a line.
// Longer lines are rejected with a [ParseError].
func MaxLineLen(n int) ParserOption {
	return func(p *Parser) { p.maxLineLen = n }
}

// MaxArgs sets the maximum number of arguments in a command, including the
// program name. Commands with more arguments are rejected with a [ParseError].
func MaxArgs(n int) ParserOption {
	return func(p *Parser) { p.maxArgs = n }
}

// Parser turns input lines into commands. It holds no state between lines,
// so it can be reused freely.
type Parser struct {
	maxLineLen int
	maxArgs    int
}

// NewParser allocates a new [Parser] and applies any number of options.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		maxLineLen: DefaultMaxLineLen,
		maxArgs:    DefaultMaxArgs,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseError represents an error found when parsing a line. Only the command
// on that line is aborted.
type ParseError struct {
	Text string
}

func (e *ParseError) Error() string { return e.Text }

func (p *Parser) errf(format string, a ...any) error {
	return &ParseError{Text: fmt.Sprintf(format, a...)}
}

// Parse parses a single line, which may still carry its trailing newline.
//
// A nil command and a nil error are returned when there is nothing to run:
// the line is blank, or its first character is '#'.
//
// When the first field is a builtin name, the command is returned with
// [Command.Builtin] set and the remaining fields untouched. Otherwise the
// operators are interpreted from left to right; the last redirect in each
// direction wins. A "&" is dropped without effect when foregroundOnly is set,
// and taken literally when the program is echo.
//
// Background commands without redirects have them pointed at [os.DevNull].
func (p *Parser) Parse(line string, foregroundOnly bool) (*Command, error) {
	line = strings.TrimSuffix(line, "\n")
	if n := utf8.RuneCountInString(line); n > p.maxLineLen {
		return nil, p.errf("line too long: %d characters, the limit is %d", n, p.maxLineLen)
	}
	if strings.HasPrefix(line, "#") {
		return nil, nil
	}
	if strings.IndexByte(line, 0) >= 0 {
		return nil, p.errf("invalid NUL byte in line")
	}

	next, stop := iter.Pull(Fields(line))
	defer stop()

	first, ok := next()
	if !ok {
		return nil, nil
	}
	cmd := &Command{}
	if IsBuiltin(first) {
		cmd.Builtin = true
		for field := first; ok; field, ok = next() {
			if err := p.addArg(cmd, field); err != nil {
				return nil, err
			}
		}
		return cmd, nil
	}

	for field := first; ok; field, ok = next() {
		switch field {
		case RedirOut:
			path, ok := next()
			if !ok {
				return nil, p.errf("no output file specified")
			}
			cmd.Stdout = path
		case RedirIn:
			path, ok := next()
			if !ok {
				return nil, p.errf("no input file specified")
			}
			cmd.Stdin = path
		case Background:
			if len(cmd.Args) > 0 && cmd.Args[0] == "echo" {
				if err := p.addArg(cmd, field); err != nil {
					return nil, err
				}
				break
			}
			if !foregroundOnly {
				cmd.Background = true
			}
		default:
			if err := p.addArg(cmd, field); err != nil {
				return nil, err
			}
		}
	}
	if len(cmd.Args) == 0 {
		return nil, p.errf("no command specified")
	}
	if cmd.Background {
		if cmd.Stdin == "" {
			cmd.Stdin = os.DevNull
		}
		if cmd.Stdout == "" {
			cmd.Stdout = os.DevNull
		}
	}
	return cmd, nil
}

func (p *Parser) addArg(cmd *Command, arg string) error {
	if len(cmd.Args) >= p.maxArgs {
		return p.errf("too many arguments: the limit is %d", p.maxArgs)
	}
	cmd.Args = append(cmd.Args, arg)
	return nil
}
