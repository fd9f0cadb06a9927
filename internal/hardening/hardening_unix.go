//go:build unix

package hardening

import "golang.org/x/sys/unix"

// LockMemory pins b in RAM.
func LockMemory(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	return unix.Mlock(b)
}

// DisableCoreDumps sets the core file size limit to zero for this process.
func DisableCoreDumps() error {
	var rlim unix.Rlimit
	rlim.Cur = 0
	rlim.Max = 0
	return unix.Setrlimit(unix.RLIMIT_CORE, &rlim)
}
