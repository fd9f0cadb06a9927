package vault

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
)

// Auth is a register's password-verification sidecar.
type Auth struct {
	path string
}

// CreateAuthAt creates an empty sidecar in dir.
func CreateAuthAt(dir string) (*Auth, error) {
	path := filepath.Join(dir, AuthFileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return &Auth{path: path}, nil
}

// LoadAuth binds the sidecar in dir, failing with ErrAuthFileNotFound if it is absent.
func LoadAuth(dir string) (*Auth, error) {
	path := filepath.Join(dir, AuthFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, perrors.ErrAuthFileNotFound
		}
		return nil, fmt.Errorf("failed to stat auth file: %w", err)
	}
	return &Auth{path: path}, nil
}

// Path returns the sidecar path.
func (a *Auth) Path() string {
	return a.path
}

// Write replaces the sidecar ciphertext atomically.
func (a *Auth) Write(ciphertext []byte) error {
	if err := atomicWriteFile(a.path, ciphertext, 0600); err != nil {
		return fmt.Errorf("failed to write auth file: %w", err)
	}
	return nil
}

// Authenticate derives the slow key from password and salt and checks that it
// opens the sidecar. It returns nil or ErrDecryption; the plaintext is discarded.
func (a *Auth) Authenticate(password []byte, suite crypto.Suite, salt, nonce []byte) error {
	key := suite.DeriveSlow(password, salt)
	defer key.Wipe()
	return a.Verify(key, nonce)
}

// Verify checks that key and nonce open the sidecar.
func (a *Auth) Verify(key *crypto.Key, nonce []byte) error {
	ciphertext, err := os.ReadFile(a.path)
	if err != nil {
		return fmt.Errorf("failed to read auth file: %w", err)
	}
	plaintext, err := crypto.Decrypt(key, nonce, ciphertext)
	if err != nil {
		return err
	}
	crypto.Zero(plaintext)
	return nil
}
