//go:build linux

package workerpool

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// setDieWithParent asks the kernel to deliver SIGKILL to the worker if the
// parent process exits, matching the daemonized-child contract.
func setDieWithParent(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Pdeathsig = unix.SIGKILL
}
