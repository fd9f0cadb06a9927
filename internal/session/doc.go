// Package session holds the connection state of one pwmn process.
//
// A Session is either disconnected or connected to exactly one register.
// It is an explicit value owned by the caller and passed to every workflow,
// so a process may hold several independent sessions (the tests do).
//
// While connected the session owns the decrypted register, the password key
// it was opened with and the vault file handle used to persist changes.
// Disconnect wipes the register and the key.
package session
