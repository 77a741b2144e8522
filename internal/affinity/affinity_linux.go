//go:build linux

package affinity

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// Pin binds the calling process to the given logical core. The worker id is
// used as the core number, modulo the machine's core count so small machines
// still start every worker.
func Pin(core int) error {
	cores := runtime.NumCPU()
	if cores < 1 {
		return fmt.Errorf("no cores reported")
	}

	var set unix.CPUSet
	set.Zero()
	set.Set(core % cores)

	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("failed to set cpu affinity: %w", err)
	}
	return nil
}

// Supported reports whether core pinning works on this platform.
func Supported() bool {
	return true
}
