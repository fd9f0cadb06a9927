// Package hardening reduces the chance that key material leaves process memory.
//
// On Unix systems this package:
//
//   - mlock(2)s the buffer holding derived keys so they are not swapped out
//   - sets RLIMIT_CORE to zero so a crash does not write a core file
//     containing decrypted registers
//
// On other platforms these functions are no-ops that report success.
// Failures are never fatal: callers log them and carry on, since an
// unprivileged user may have a zero RLIMIT_MEMLOCK.
package hardening
