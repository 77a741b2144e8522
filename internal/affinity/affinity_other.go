//go:build !linux

package affinity

// Pin is a no-op on platforms without a sched_setaffinity equivalent; the
// pool degrades gracefully to unpinned workers.
func Pin(core int) error {
	return nil
}

// Supported reports whether core pinning works on this platform.
func Supported() bool {
	return false
}
