// Copyright (c) 2019, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

//go:build unix

package main

import (
	"io"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/go-quicktest/qt"

	"github.com/smallsh/smallsh/internal"
)

// TestTerminalSignals types the stop and interrupt characters into a
// pseudo-terminal, where the shell is the foreground process group.
func TestTerminalSignals(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	cmd := exec.Command(os.Args[0])
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"SMALLSH_TEST_MAIN=1",
		"SMALLSH_CONFIG=",
		"XDG_CONFIG_HOME="+dir,
		"HOME="+dir,
	)
	tty, err := pty.Start(cmd)
	qt.Assert(t, qt.IsNil(err))
	defer tty.Close()

	var out internal.ConcBuffer
	go io.Copy(&out, tty)
	// expect waits until the shell has printed want n times in total.
	expect := func(want string, n int) {
		t.Helper()
		internal.WaitFor(t, 10*time.Second, func() bool {
			return strings.Count(out.String(), want) >= n
		})
	}
	send := func(s string) {
		t.Helper()
		_, err := io.WriteString(tty, s)
		qt.Assert(t, qt.IsNil(err))
	}

	expect(": ", 1)
	send("\x1a") // ^Z
	expect("Entering foreground-only mode (& is now ignored)", 1)
	send("sh -c true &\n")
	expect(": ", 2)
	send("\x1a")
	expect("Exiting foreground-only mode", 1)

	send("sleep 30\n")
	expect("sleep 30", 1)
	// Give the program time to start before interrupting it.
	time.Sleep(500 * time.Millisecond)
	send("\x03") // ^C
	expect("terminated by signal 2", 1)
	expect(": ", 3)
	send("status\n")
	expect("terminated by signal 2", 2)

	send("exit\n")
	qt.Assert(t, qt.IsNil(cmd.Wait()))
	qt.Assert(t, qt.Not(qt.StringContains(out.String(), "background pid")))
}
