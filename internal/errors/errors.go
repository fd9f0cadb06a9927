package errors

import (
	"errors"
	"fmt"
)

// Vault errors indicate issues with the root vault directory.
var (
	// ErrVaultNotExists indicates the root vault has not been initialized.
	ErrVaultNotExists = errors.New("vault has not been initialized")

	// ErrRootVaultAlreadyExists indicates the root vault directory is already present.
	ErrRootVaultAlreadyExists = errors.New("root vault already exists")
)

// Register errors indicate issues with a register lookup or creation.
var (
	// ErrRegisterAlreadyExists indicates a register with the same name already exists.
	ErrRegisterAlreadyExists = errors.New("register already exists")

	// ErrRegisterNotExists indicates no register with the given name exists.
	ErrRegisterNotExists = errors.New("register does not exist")

	// ErrEntryNotFound indicates the connected register has no entry with the given id.
	ErrEntryNotFound = errors.New("entry not found")
)

// Session errors indicate a statement was issued in the wrong session state.
var (
	// ErrAnotherSessionIsRunning indicates a register is already connected.
	ErrAnotherSessionIsRunning = errors.New("another session is running, disconnect first")

	// ErrSessionNotConnected indicates no register is connected.
	ErrSessionNotConnected = errors.New("no register is connected")
)

// Cryptographic and format errors.
var (
	// ErrDecryption indicates AEAD authentication failed.
	ErrDecryption = errors.New("invalid password or corrupted vault")

	// ErrMismatchedFileHeader indicates the vault file magic or version is unexpected.
	ErrMismatchedFileHeader = errors.New("mismatched vault file header")

	// ErrAuthFileNotFound indicates the auth sidecar is missing from a register directory.
	ErrAuthFileNotFound = errors.New("auth file not found")
)

// Input errors.
var (
	// ErrShortLength indicates a value is shorter than its required minimum.
	ErrShortLength = errors.New("value is too short")

	// ErrInvalidDateFormat indicates a date filter is not in YYYY-MM-DD format.
	ErrInvalidDateFormat = errors.New("invalid date format")

	// ErrUnsupportedStatement indicates the dispatcher received a statement it cannot run.
	ErrUnsupportedStatement = errors.New("unsupported statement")
)

// ShortLenError reports which field was too short and the minimum it needs.
type ShortLenError struct {
	Field string
	Min   int
}

func (e *ShortLenError) Error() string {
	return fmt.Sprintf("%s must be at least %d characters long", e.Field, e.Min)
}

// Is lets errors.Is(err, ErrShortLength) match any ShortLenError.
func (e *ShortLenError) Is(target error) bool {
	return target == ErrShortLength
}
