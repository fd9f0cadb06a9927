// Package workflows orchestrates pwmn operations.
//
// Each workflow implements one statement end to end: it validates the
// session state, drives the vault package (manager, vault file, auth
// sidecar), derives keys, encrypts or decrypts, updates the Session and
// records an audit entry. Workflows know nothing about flags, prompts
// styling or spinners; the cmd package is a thin layer on top.
//
// # Runtime
//
// Every workflow receives a *Runtime holding the Session, the KDF suite,
// the password reader and the clock. Tests substitute a cheap suite and a
// scripted password reader.
//
// # Available Workflows
//
//   - Init: creates the root vault
//   - Create: creates and seals an empty register
//   - Connect: opens a register and connects the session to it
//   - Disconnect: closes the connected register and wipes it from memory
//   - DropRegister: deletes a register after checking its password
//   - Insert, Select, UpdatePassword, DropEntry: entry operations on the
//     connected register; every change re-seals the vault and its sidecar
//   - Status and AuditLog: read-only views of the root vault
//
// Execute dispatches a statement.Statement to the matching workflow.
//
// # Error Handling
//
// Workflows return errors from the internal/errors package, wrapped with
// context. Use errors.Is to classify them:
//
//	_, err := workflows.Connect(ctx, rt, workflows.ConnectOptions{Name: name})
//	if errors.Is(err, perrors.ErrDecryption) {
//	    // invalid password or corrupted vault
//	}
//
// A failed workflow never changes the session state.
//
// # Secrets
//
// Passwords, keys and decrypted registers are wiped on every return path.
// Once connected, the session owns the register and key until Disconnect.
package workflows
