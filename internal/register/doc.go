// Package register defines the password collections stored inside a vault
// file and the operations that mutate them.
//
// A Register owns an ordered list of entries and an ordered operation log.
// It only ever exists on disk as ciphertext; the plaintext form produced by
// Unmarshal is transient and should be wiped with Register.Wipe once the
// caller is done with it.
//
// # Encoding
//
// Registers are encoded with CBOR using the core deterministic encoding
// options, so identical values always produce identical bytes.
//
// # Entry Operations
//
// AddEntry, FetchEntry, UpdatePassword and DeleteEntry each append a
// LogEntry recording the operation and whether it succeeded, and keep the
// register metadata counters in step.
package register
