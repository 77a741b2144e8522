//go:build !linux

package workerpool

import "os/exec"

// setDieWithParent is best-effort; platforms without a parent-death signal
// rely on the pool's explicit Stop to terminate workers.
func setDieWithParent(cmd *exec.Cmd) {}
