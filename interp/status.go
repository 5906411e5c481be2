// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"fmt"
	"os"
	"syscall"
)

// Status is how a program ended: either it exited with a code, or it was
// terminated by a signal.
type Status struct {
	code     int
	signaled bool
}

// Exited returns the status of a program which exited with code.
func Exited(code int) Status { return Status{code: code} }

// Signaled returns the status of a program terminated by sig.
func Signaled(sig syscall.Signal) Status { return Status{code: int(sig), signaled: true} }

// Exited returns the exit code, if the program exited.
func (s Status) Exited() (code int, ok bool) {
	return s.code, !s.signaled
}

// Signaled returns the terminating signal, if the program was terminated.
func (s Status) Signaled() (sig syscall.Signal, ok bool) {
	return syscall.Signal(s.code), s.signaled
}

// String formats the status the way the status builtin prints it.
func (s Status) String() string {
	if s.signaled {
		return fmt.Sprintf("terminated by signal %d", s.code)
	}
	return fmt.Sprintf("exit value: %d", s.code)
}

func processStatus(ps *os.ProcessState) Status {
	if ws, ok := ps.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return Signaled(ws.Signal())
	}
	return Exited(ps.ExitCode())
}
