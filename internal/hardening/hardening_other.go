//go:build !unix

package hardening

// LockMemory is a no-op on non-Unix systems.
func LockMemory(b []byte) error { return nil }

// DisableCoreDumps is a no-op on non-Unix systems.
func DisableCoreDumps() error { return nil }
