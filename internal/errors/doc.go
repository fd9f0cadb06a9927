// Package errors provides typed error values for pwmn.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching. This makes
// error handling more robust and refactoring-safe.
//
// # Error Categories
//
// Errors are grouped by category:
//
//   - Vault errors: Root directory state (ErrVaultNotExists, ErrRootVaultAlreadyExists)
//   - Register errors: Name lookups and collisions (ErrRegisterNotExists, ErrRegisterAlreadyExists)
//   - Input errors: Values below a minimum length (ErrShortLength, ShortLenError)
//   - Session errors: Guard violations (ErrAnotherSessionIsRunning, ErrSessionNotConnected)
//   - Crypto errors: Authentication and format failures (ErrDecryption, ErrMismatchedFileHeader)
//
// # Usage
//
// Return errors from internal packages:
//
//	if _, err := os.Stat(root); os.IsNotExist(err) {
//	    return nil, errors.ErrVaultNotExists
//	}
//
// Handle errors in the CLI layer:
//
//	_, err := workflows.Connect(ctx, rt, opts)
//	if errors.Is(err, perrors.ErrDecryption) {
//	    // Show the uniform "invalid password or corrupted vault" message
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("%w: %s", errors.ErrRegisterNotExists, name)
//
// ErrDecryption deliberately does not say whether the password was wrong or
// the ciphertext was damaged.
package errors
