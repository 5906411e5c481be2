// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package interp implements the core of a small interactive shell. A [Runner]
// takes one input line at a time; it expands the shell's own process ID,
// parses the line, and either runs one of the exit, cd and status builtins
// or starts an external program, with optional redirects and optional
// background execution.
//
// Background programs are not tracked in memory. [Runner.Reap] asks the
// operating system for any child which has finished, so it is meant to be
// called once per prompt.
//
// Process handling and signals rely on Unix semantics.
package interp

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/smallsh/smallsh/expand"
	"github.com/smallsh/smallsh/syntax"
)

// Name is used as a prefix in the shell's own error messages.
const Name = "smallsh"

// A Runner holds the state of a shell. It is not safe for concurrent use,
// except for the fields touched by signal handling; see [Runner.Notify].
// Use [New] to build a new Runner.
type Runner struct {
	// Env is the environment used to look up HOME and PATH, and handed
	// down to the programs being run. It can only be set via [Env].
	Env expand.Environ

	// Dir is the shell's working directory, which must be an absolute
	// path. It starts as the process's current directory, and is changed
	// by the cd builtin. It can only be set via [Dir].
	//
	// Programs are started in Dir and redirect paths are relative to it,
	// but the process's own working directory is never changed.
	Dir string

	// Pid is the number that replaces $$ in input lines. It can only be
	// set via [Pid].
	Pid int

	parser *syntax.Parser
	log    *zap.Logger

	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	killTimeout time.Duration
	term        *terminal

	// status is the outcome of the last foreground command.
	status Status
	exited bool

	// Written by the signal handling goroutine.
	foregroundOnly atomic.Bool
	// fgPid is the foreground child being waited on, or zero.
	fgPid atomic.Int64
}

// New creates a new Runner, applying a number of options. If applying any of
// the options results in an error, it is returned.
//
// Any unset options fall back to their defaults. For example, not supplying
// the environment falls back to the process's environment, and not supplying
// the standard output writer means that the output will be discarded.
func New(opts ...RunnerOption) (*Runner, error) {
	r := &Runner{
		Pid:         os.Getpid(),
		parser:      syntax.NewParser(),
		log:         zap.NewNop(),
		killTimeout: 2 * time.Second,
		status:      Exited(0),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	// Set the default fallbacks, if necessary.
	if r.Env == nil {
		Env(nil)(r)
	}
	if r.Dir == "" {
		if err := Dir("")(r); err != nil {
			return nil, err
		}
	}
	if r.stdout == nil || r.stderr == nil {
		StdIO(r.stdin, r.stdout, r.stderr)(r)
	}
	return r, nil
}

// RunnerOption can be passed to [New] to alter a [Runner]'s behaviour.
type RunnerOption func(*Runner) error

// Env sets the shell's environment. If nil, a copy of the current process's
// environment is used.
func Env(env expand.Environ) RunnerOption {
	return func(r *Runner) error {
		if env == nil {
			env = expand.ListEnviron(os.Environ()...)
		}
		r.Env = env
		return nil
	}
}

// Dir sets the shell's working directory. If empty, the process's current
// directory is used.
func Dir(path string) RunnerOption {
	return func(r *Runner) error {
		if path == "" {
			path, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("could not get current dir: %w", err)
			}
			r.Dir = path
			return nil
		}
		path, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("could not get absolute dir: %w", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("could not stat: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", path)
		}
		r.Dir = path
		return nil
	}
}

// Pid sets the number which replaces $$ in input lines.
// It defaults to the current process's ID.
func Pid(pid int) RunnerOption {
	return func(r *Runner) error {
		r.Pid = pid
		return nil
	}
}

// Logger sets the logger used to trace the shell's activity.
// Nothing is logged by default.
func Logger(log *zap.Logger) RunnerOption {
	return func(r *Runner) error {
		if log == nil {
			log = zap.NewNop()
		}
		r.log = log
		return nil
	}
}

// ForegroundOnly sets the initial foreground-only mode, in which a "&" does
// not run commands in the background.
func ForegroundOnly(enabled bool) RunnerOption {
	return func(r *Runner) error {
		r.foregroundOnly.Store(enabled)
		return nil
	}
}

// KillTimeout sets how long to wait after interrupting a foreground program
// whose context was cancelled, before killing it. A negative value means that
// a kill signal is sent immediately. It defaults to two seconds.
func KillTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) error {
		r.killTimeout = d
		return nil
	}
}

func stdinFile(r io.Reader) (*os.File, error) {
	switch r := r.(type) {
	case *os.File:
		return r, nil
	case nil:
		return nil, nil
	default:
		pr, pw, err := os.Pipe()
		if err != nil {
			return nil, err
		}
		go func() {
			io.Copy(pw, r)
			pw.Close()
		}()
		return pr, nil
	}
}

// StdIO configures the standard input, standard output, and standard error
// which programs inherit when they are not redirected. The shell's own
// messages go to out and err too. If out or err are nil, they default to a
// writer that discards the output.
//
// Note that providing a non-nil standard input other than [*os.File] will
// require an [os.Pipe] and spawning a goroutine to copy into it, as an
// [os.File] is the only way to share a reader with subprocesses.
// The same applies to out and err; see [os/exec.Cmd.Stdout].
func StdIO(in io.Reader, out, err io.Writer) RunnerOption {
	return func(r *Runner) error {
		stdin, _err := stdinFile(in)
		if _err != nil {
			return _err
		}
		r.stdin = stdin
		if out == nil {
			out = io.Discard
		}
		r.stdout = out
		if err == nil {
			err = io.Discard
		}
		r.stderr = err
		return nil
	}
}

// Run runs a single input line.
//
// Parse errors are returned as [*syntax.ParseError]; the line's command is
// aborted but the Runner is ready for the next one. Failures of the command
// itself, such as a missing program or a redirect which cannot be opened, are
// reported to the Runner's output instead. If ctx is done while a foreground
// program runs, the program is stopped and the context's error is returned.
func (r *Runner) Run(ctx context.Context, line string) error {
	line = expand.Pid(line, r.Pid)
	cmd, err := r.parser.Parse(line, r.ForegroundOnly())
	if err != nil {
		r.log.Debug("parse error", zap.String("line", line), zap.Error(err))
		return err
	}
	if cmd == nil {
		return nil
	}
	r.log.Debug("parsed command",
		zap.Strings("args", cmd.Args),
		zap.Bool("builtin", cmd.Builtin),
		zap.String("stdin", cmd.Stdin),
		zap.String("stdout", cmd.Stdout),
		zap.Bool("background", cmd.Background),
	)
	if cmd.Builtin {
		r.builtin(cmd)
		return nil
	}
	return r.launch(ctx, cmd)
}

// Exited reports whether the exit builtin was run. The caller is expected to
// stop feeding lines to the Runner and end the process with status zero;
// background programs are left running.
func (r *Runner) Exited() bool { return r.exited }

// Status returns the outcome of the last foreground program,
// or an exit status of zero if none has run yet.
func (r *Runner) Status() Status { return r.status }

// ForegroundOnly reports whether the shell is in foreground-only mode.
func (r *Runner) ForegroundOnly() bool { return r.foregroundOnly.Load() }

func (r *Runner) outf(format string, a ...any) {
	fmt.Fprintf(r.stdout, format, a...)
}

func (r *Runner) errf(format string, a ...any) {
	fmt.Fprintf(r.stderr, format, a...)
}

// ReapAll calls [Runner.Reap] until no finished child process is left,
// and returns how many were collected.
func (r *Runner) ReapAll() int {
	n := 0
	for r.Reap() {
		n++
	}
	return n
}
