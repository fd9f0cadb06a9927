// Package audit records pwmn operations in the root vault.
//
// # Log Format
//
// The audit log is stored as JSON Lines (one JSON object per line) at:
//
//	<root>/audit.jsonl
//
// Each entry contains the UTC timestamp, the OS user, the operation, whether
// it succeeded and, for register operations, the first four bytes of the
// register's content address in hex. Register names are never written, so
// the log leaks no more than a directory listing of the root does.
//
// # Usage
//
//	entry := audit.LogWithUser("connect")
//	entry.Register = audit.AddressPrefix(address)
//	entry.Success = true
//	audit.Log(root, entry)
//
// # Failure Handling
//
// Audit logging is best-effort. Operations never fail because the log could
// not be written. Setting [audit] enabled = false in the config turns it off.
package audit
