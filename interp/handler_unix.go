//go:build unix

package interp

import (
	"os/exec"
	"syscall"
)

// prepareBackground puts a background program in a new process group, so
// that the interrupt and stop characters typed at the terminal only reach
// the shell and the foreground program.
func prepareBackground(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}
