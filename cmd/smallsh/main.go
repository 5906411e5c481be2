// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// smallsh is a small interactive shell. It runs one simple command per line,
// with the exit, cd and status builtins, input and output redirects, and
// background programs.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/smallsh/smallsh/internal/config"
	"github.com/smallsh/smallsh/internal/logging"
	"github.com/smallsh/smallsh/interp"
	"github.com/smallsh/smallsh/syntax"
)

var (
	command    = pflag.StringP("command", "c", "", "command to be executed")
	configPath = pflag.String("config", "", "configuration file (default $"+config.EnvVar+")")
	debug      = pflag.Bool("debug", false, "log debug information to standard error")
)

func main() {
	os.Exit(main1())
}

func main1() int {
	pflag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: smallsh [flags] [script]

Without a script or -c, lines are read from standard input.

`)
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if pflag.NArg() > 1 {
		pflag.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	log, err := logging.New(cfg.Log.File, cfg.Log.Level, *debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer log.Sync()
	if cfg.Path != "" {
		log.Info("loaded configuration", zap.String("path", cfg.Path))
	}

	r, err := interp.New(
		interp.StdIO(os.Stdin, os.Stdout, os.Stderr),
		interp.RestoreTerminal(int(os.Stdin.Fd())),
		interp.Logger(log),
		interp.ForegroundOnly(cfg.ForegroundOnly),
		interp.KillTimeout(cfg.KillTimeout),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Hangups and termination requests end the foreground program and the
	// shell; interrupts and stops are handled by the Runner.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGHUP, syscall.SIGTERM)
	defer cancel()
	stop := r.Notify(ctx)
	defer stop()

	sh := &shell{runner: r, log: log, out: os.Stdout}
	sh.reap = func() { r.Reap() }
	if cfg.ReapAll {
		sh.reap = func() { r.ReapAll() }
	}
	var in io.Reader
	switch {
	case *command != "":
		in = strings.NewReader(*command)
	case pflag.NArg() == 1:
		f, err := os.Open(pflag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		defer f.Close()
		in = f
	default:
		in = os.Stdin
		sh.prompt = cfg.Prompt
	}
	if err := sh.loop(ctx, in); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

type shell struct {
	runner  *interp.Runner
	log     *zap.Logger
	out     io.Writer
	prompt  string

	// reap reports finished background programs.
	reap func()
}

// loop runs lines from in until the exit builtin runs, the input ends, or ctx
// is done. Before each line, finished background programs are reported, and
// the prompt is printed if there is one. Read errors other than [io.EOF] only
// cause the prompt to be printed again.
func (s *shell) loop(ctx context.Context, in io.Reader) error {
	for {
		if s.reap != nil {
			s.reap()
		}
		if s.prompt != "" {
			io.WriteString(s.out, s.prompt)
		}
		line, err := nextLine(ctx, in)
		if err := ctx.Err(); err != nil {
			return err
		}
		if line == "" && err == io.EOF {
			s.log.Debug("end of input")
			return nil
		}
		if err != nil && err != io.EOF {
			// A failed read, such as EAGAIN from a terminal left in
			// non-blocking mode, drops the partial line and prompts again.
			s.log.Debug("could not read line", zap.Error(err), zap.String("partial", line))
			continue
		}
		if err := s.runner.Run(ctx, line); err != nil {
			var perr *syntax.ParseError
			if !errors.As(err, &perr) {
				return err
			}
			fmt.Fprintf(s.out, "error: %s\n", perr.Text)
		}
		if s.runner.Exited() {
			return nil
		}
	}
}

// nextLine reads a line from in, stopping early if ctx is done.
// A final line without a newline is returned along with [io.EOF].
func nextLine(ctx context.Context, in io.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := readLine(in)
		done <- result{line, err}
	}()
	select {
	case res := <-done:
		return res.line, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// readLine reads a byte at a time, so that no input past the newline is
// consumed; the rest belongs to the programs which share our standard input.
func readLine(in io.Reader) (string, error) {
	var sb strings.Builder
	var b [1]byte
	for {
		n, err := in.Read(b[:])
		if n > 0 {
			sb.WriteByte(b[0])
			if b[0] == '\n' {
				return sb.String(), nil
			}
		}
		if err != nil {
			return sb.String(), err
		}
	}
}
