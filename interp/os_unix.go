// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

//go:build unix

package interp

import (
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// checkDirAccess returns an error if the current user cannot search
// the directory at path.
func checkDirAccess(path string) error {
	return unix.Access(path, unix.X_OK)
}

// Reap checks once, without blocking, whether any child process has
// finished. If one has, it reports its process ID and how it ended, and
// returns true.
//
// Only one child is collected per call, even if more have finished; the rest
// are left for the next calls. The status of the last foreground program is
// not changed.
func (r *Runner) Reap() bool {
	var ws unix.WaitStatus
	pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
	if err != nil || pid <= 0 {
		// ECHILD means there are no children at all.
		return false
	}
	r.log.Info("reaped background program", zap.Int("pid", pid), zap.Uint32("wait_status", uint32(ws)))
	r.outf("background pid %d is done: ", pid)
	// Both checks are made, like the WIFEXITED and WTERMSIG macros would.
	if ws.Exited() {
		r.outf("exit value: %d\n", ws.ExitStatus())
	}
	if sig := termSignal(ws); sig != 0 {
		r.outf("terminated by signal %d\n", sig)
	}
	return true
}

// termSignal is the WTERMSIG macro, which unlike [unix.WaitStatus.Signal]
// does not check that the program was terminated by a signal first.
func termSignal(ws unix.WaitStatus) int {
	return int(uint32(ws) & 0x7f)
}

// resume continues a stopped program. Sending SIGCONT to a running program
// has no effect.
func resume(pid int) error {
	return unix.Kill(pid, unix.SIGCONT)
}
