package hardening

import (
	"testing"
)

func TestLockMemoryEmpty(t *testing.T) {
	if err := LockMemory(nil); err != nil {
		t.Fatalf("LockMemory(nil) returned %v", err)
	}
}

func TestLockMemory(t *testing.T) {
	buf := make([]byte, 32)

	// An unprivileged user may have a zero memlock limit, which is not a failure of ours.
	if err := LockMemory(buf); err != nil {
		t.Skipf("mlock not permitted here: %v", err)
	}
}

func TestDisableCoreDumps(t *testing.T) {
	if err := DisableCoreDumps(); err != nil {
		t.Errorf("DisableCoreDumps failed: %v", err)
	}
}
