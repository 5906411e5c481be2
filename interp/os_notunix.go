// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

//go:build !unix

package interp

import (
	"context"
	"os/exec"
)

func checkDirAccess(string) error { return nil }

func prepareBackground(*exec.Cmd) {}

func resume(int) error { return nil }

// Reap is a no-op, as there is no way to wait for any child process.
func (r *Runner) Reap() bool { return false }

// Notify is a no-op, as there are no interrupt and stop signals to handle.
func (r *Runner) Notify(context.Context) (stop func()) { return func() {} }
