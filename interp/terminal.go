// Copyright (c) 2019, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

package interp

import (
	"go.uber.org/zap"
	"golang.org/x/term"
)

type terminal struct {
	fd    int
	state *term.State
}

// RestoreTerminal makes the Runner save the state of the terminal at fd, and
// restore it every time a foreground program ends, in case the program left
// it in raw mode or with echo turned off. It does nothing if fd is not a
// terminal.
func RestoreTerminal(fd int) RunnerOption {
	return func(r *Runner) error {
		if !term.IsTerminal(fd) {
			return nil
		}
		state, err := term.GetState(fd)
		if err != nil {
			return err
		}
		r.term = &terminal{fd: fd, state: state}
		return nil
	}
}

func (r *Runner) restoreTerminal() {
	if r.term == nil {
		return
	}
	if err := term.Restore(r.term.fd, r.term.state); err != nil {
		r.log.Debug("could not restore terminal", zap.Error(err))
	}
}
