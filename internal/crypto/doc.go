// Package crypto holds the key derivation and authenticated encryption
// primitives used by the vault.
//
// # Key Derivation
//
// Keys are derived with Argon2id in one of two cost tiers:
//
//   - Fast (16 MiB, 1 pass): content addresses of register names, computed
//     on every lookup, so latency matters more than brute-force cost.
//   - Slow (64 MiB, 2 passes): the encryption key derived from a register
//     password. Deliberately expensive.
//
// Both tiers live in a Suite. Production code uses DefaultSuite; tests use
// TestSuite to keep runs fast.
//
// # Encryption
//
// Payloads are sealed with ChaCha20-Poly1305 (12-byte nonce, 16-byte tag).
// Decrypt reports every authentication failure as errors.ErrDecryption so a
// wrong password cannot be told apart from a damaged file.
//
// # Key Hygiene
//
// Derived keys are returned as *Key, locked in memory where the platform
// allows it. Call Wipe when done, usually with defer.
package crypto
