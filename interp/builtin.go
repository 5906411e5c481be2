// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/smallsh/smallsh/syntax"
)

// builtin runs one of the builtins. Fields after the ones a builtin uses are
// ignored, and none of them changes the last status.
func (r *Runner) builtin(cmd *syntax.Command) {
	switch cmd.Name() {
	case "exit":
		r.log.Info("exit requested")
		r.exited = true
	case "cd":
		path := cmd.Arg(0)
		if path == "" {
			path = r.Env.Get("HOME")
			if path == "" {
				r.errf("%s: cd: HOME not set\n", Name)
				return
			}
		}
		if err := r.changeDir(path); err != nil {
			r.log.Debug("cd failed", zap.String("path", path), zap.Error(err))
			r.errf("%s: cd: %s: %v\n", Name, path, err)
		}
	case "status":
		r.outf("%s\n", r.status)
	default:
		panic("unhandled builtin: " + cmd.Name())
	}
}

func (r *Runner) changeDir(path string) error {
	path = r.relPath(path)
	info, err := os.Stat(path)
	if err != nil {
		return pathErrno(err)
	}
	if !info.IsDir() {
		return syscall.ENOTDIR
	}
	if err := checkDirAccess(path); err != nil {
		return err
	}
	r.log.Debug("changed directory", zap.String("from", r.Dir), zap.String("to", path))
	r.Dir = path
	return nil
}

func (r *Runner) relPath(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.Dir, path)
	}
	return filepath.Clean(path)
}

// pathErrno drops the operation and path from err,
// as our messages already name the path.
func pathErrno(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
