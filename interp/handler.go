// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/smallsh/smallsh/expand"
	"github.com/smallsh/smallsh/syntax"
)

// launch starts an external program. Redirect and lookup failures are
// reported and end the command as if the program had exited with status 1;
// only the shell's own I/O errors and context errors are returned.
//
// The redirect files are opened here but only become the program's standard
// input and output in the child, between fork and exec. The shell's own
// streams are never touched, and its copies are closed once the child runs.
func (r *Runner) launch(ctx context.Context, c *syntax.Command) error {
	var files []*os.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()
	stdin, stdout := r.stdin, r.stdout
	if c.Stdout != "" {
		f, err := r.open(c.Stdout, os.O_WRONLY|os.O_CREATE|os.O_TRUNC)
		if err != nil {
			r.outf("cannot open %s for output\n", c.Stdout)
			r.failed(c, err)
			return nil
		}
		files = append(files, f)
		stdout = f
	}
	if c.Stdin != "" {
		f, err := r.open(c.Stdin, os.O_RDONLY)
		if err != nil {
			r.outf("cannot open %s for input\n", c.Stdin)
			r.failed(c, err)
			return nil
		}
		files = append(files, f)
		stdin = f
	}

	path, err := LookPathDir(r.Dir, r.Env, c.Name())
	if err != nil {
		r.errf("%s: %v\n", c.Name(), err)
		r.failed(c, err)
		return nil
	}
	cmd := &exec.Cmd{
		Path:   path,
		Args:   c.Args,
		Env:    expand.Pairs(r.Env, "PWD="+r.Dir),
		Dir:    r.Dir,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: r.stderr,
	}
	// A nil *os.File in an interface is not a nil Stdin.
	if stdin == nil {
		cmd.Stdin = nil
	}
	if c.Background {
		prepareBackground(cmd)
	}
	if err := cmd.Start(); err != nil {
		err = pathErrno(err)
		r.errf("%s: %v\n", c.Name(), err)
		r.failed(c, err)
		return nil
	}
	pid := cmd.Process.Pid
	if c.Background {
		r.log.Info("started background program", zap.Int("pid", pid), zap.Strings("args", c.Args))
		r.outf("background pid is %d\n", pid)
		// The program is reaped by Reap, not by os/exec.
		_ = cmd.Process.Release()
		return nil
	}
	r.log.Debug("started foreground program", zap.Int("pid", pid), zap.Strings("args", c.Args))
	return r.wait(ctx, cmd)
}

// failed records a command which could not be started.
func (r *Runner) failed(c *syntax.Command, err error) {
	r.log.Debug("could not start program", zap.Strings("args", c.Args), zap.Error(err))
	if !c.Background {
		r.status = Exited(1)
	}
}

func (r *Runner) open(path string, flag int) (*os.File, error) {
	return os.OpenFile(r.relPath(path), flag, 0o644)
}

// wait blocks until the foreground program ends, and records its status.
// When ctx is done, the program is interrupted, and killed after the kill
// timeout.
func (r *Runner) wait(ctx context.Context, cmd *exec.Cmd) error {
	r.fgPid.Store(int64(cmd.Process.Pid))
	defer r.fgPid.Store(0)

	stopf := context.AfterFunc(ctx, func() {
		if r.killTimeout <= 0 {
			_ = cmd.Process.Signal(os.Kill)
			return
		}
		_ = cmd.Process.Signal(os.Interrupt)
		// TODO: don't sleep in this goroutine if the program
		// stops itself with the interrupt above.
		time.Sleep(r.killTimeout)
		_ = cmd.Process.Signal(os.Kill)
	})
	defer stopf()

	err := cmd.Wait()
	r.restoreTerminal()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		r.status = Exited(0)
	case errors.As(err, &exitErr):
		r.status = processStatus(exitErr.ProcessState)
	default:
		return err
	}
	r.log.Debug("foreground program done",
		zap.Int("pid", cmd.Process.Pid),
		zap.Stringer("status", r.status),
	)
	return ctx.Err()
}

func checkStat(dir, file string) (string, error) {
	if !filepath.IsAbs(file) {
		file = filepath.Join(dir, file)
	}
	info, err := os.Stat(file)
	if err != nil {
		return "", pathErrno(err)
	}
	m := info.Mode()
	if m.IsDir() || m&0o111 == 0 {
		return "", syscall.EACCES
	}
	return file, nil
}

// DefaultPath is searched for programs when PATH is not set.
const DefaultPath = "/bin:/usr/bin"

// lookupVar is like env.Get, but also reports whether name is set at all.
// Environments which cannot list their variables only count non-empty values
// as set.
func lookupVar(env expand.Environ, name string) (value string, ok bool) {
	env.Each(func(n, v string) bool {
		if n == name {
			value, ok = v, true
			return false
		}
		return true
	})
	if !ok {
		value = env.Get(name)
		ok = value != ""
	}
	return value, ok
}

// LookPathDir is similar to [os/exec.LookPath], with the difference that it
// uses the provided environment and directory. env is used to fetch PATH, and
// relative paths are resolved from cwd.
//
// As with execvp, a name containing a slash is not searched for, and an unset
// PATH means [DefaultPath]. A set but empty PATH searches cwd.
// The error is [syscall.ENOENT] if no file was found, and [syscall.EACCES]
// if the only files found were not executable.
func LookPathDir(cwd string, env expand.Environ, file string) (string, error) {
	if strings.Contains(file, "/") {
		return checkStat(cwd, file)
	}
	list, ok := lookupVar(env, "PATH")
	if !ok {
		list = DefaultPath
	}
	pathList := filepath.SplitList(list)
	if len(pathList) == 0 {
		pathList = []string{""}
	}
	var lastErr error = syscall.ENOENT
	for _, elem := range pathList {
		var path string
		switch elem {
		case "", ".":
			// otherwise "foo" won't be "./foo"
			path = "." + string(filepath.Separator) + file
		default:
			path = filepath.Join(elem, file)
		}
		f, err := checkStat(cwd, path)
		if err == nil {
			return f, nil
		}
		if errors.Is(err, syscall.EACCES) {
			lastErr = err
		}
	}
	return "", lastErr
}
