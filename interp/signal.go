// Copyright (c) 2017, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

//go:build unix

package interp

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// The notices are formatted up front, so that handling a signal is a single
// unbuffered write.
var (
	interruptNotice = []byte(fmt.Sprintf("terminated by signal %d\n", unix.SIGINT))
	enterFgOnly     = []byte("\nEntering foreground-only mode (& is now ignored)\n")
	exitFgOnly      = []byte("\nExiting foreground-only mode\n")
)

// Notify starts handling the interrupt and stop signals sent to the shell's
// own process, until ctx is done or the returned stop func is called.
//
// An interrupt only prints a notice; a foreground program in the same
// process group receives the signal too, and ends with its default
// disposition since exec resets caught signals. A stop signal toggles the
// foreground-only mode and resumes the foreground program, if any, which the
// terminal will have stopped.
//
// Notify should be called once per process.
func (r *Runner) Notify(ctx context.Context) (stop func()) {
	sigs := make(chan os.Signal, 4)
	signal.Notify(sigs, unix.SIGINT, unix.SIGTSTP)

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-sigs:
				r.handleSignal(sig.(syscall.Signal))
			}
		}
	}()
	return func() {
		signal.Stop(sigs)
		cancel()
		<-done
	}
}

func (r *Runner) handleSignal(sig syscall.Signal) {
	switch sig {
	case unix.SIGINT:
		r.log.Debug("interrupted", zap.Int64("foreground_pid", r.fgPid.Load()))
		r.stdout.Write(interruptNotice)
	case unix.SIGTSTP:
		on := r.toggleForegroundOnly()
		if on {
			r.stdout.Write(enterFgOnly)
		} else {
			r.stdout.Write(exitFgOnly)
		}
		r.log.Info("toggled foreground-only mode", zap.Bool("enabled", on))
		if pid := r.fgPid.Load(); pid > 0 {
			if err := resume(int(pid)); err != nil {
				r.log.Debug("could not resume foreground program", zap.Int64("pid", pid), zap.Error(err))
			}
		}
	}
}

// toggleForegroundOnly flips the foreground-only mode and returns the new
// value.
func (r *Runner) toggleForegroundOnly() bool {
	for {
		old := r.foregroundOnly.Load()
		if r.foregroundOnly.CompareAndSwap(old, !old) {
			return !old
		}
	}
}
