package vault

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
)

// File is a handle on one register's vault.bin.
// The zero path means the header has not been allocated yet.
type File struct {
	dir   string
	path  string
	salt  []byte
	nonce []byte
}

// Dir returns the register directory holding the file.
func (f *File) Dir() string {
	return f.dir
}

// Path returns the vault.bin path, or "" before Allocate.
func (f *File) Path() string {
	return f.path
}

// Allocate writes a fresh header with a random salt and nonce and an empty payload.
func (f *File) Allocate() error {
	if f.path != "" {
		return fmt.Errorf("vault file %s is already allocated", f.path)
	}

	salt, err := crypto.NewSalt()
	if err != nil {
		return err
	}
	nonce, err := crypto.NewNonce()
	if err != nil {
		return err
	}
	header, err := newHeader(salt, nonce).MarshalBinary()
	if err != nil {
		return err
	}

	path := filepath.Join(f.dir, VaultFileName)
	out, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return fmt.Errorf("failed to create vault file: %w", err)
	}
	if _, err := out.Write(header); err != nil {
		out.Close()
		return fmt.Errorf("failed to write vault header: %w", err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return fmt.Errorf("failed to sync vault header: %w", err)
	}
	if err := out.Close(); err != nil {
		return err
	}

	f.path = path
	f.salt = salt
	f.nonce = nonce
	return nil
}

// LoadSalt returns the password salt, reading it from disk on first use.
func (f *File) LoadSalt() ([]byte, error) {
	if f.salt != nil {
		return slices.Clone(f.salt), nil
	}
	salt, err := f.readAt(saltOffset, crypto.SaltSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault salt: %w", err)
	}
	f.salt = salt
	return slices.Clone(salt), nil
}

// LoadNonce returns the nonce of the current payload, reading it from disk on first use.
func (f *File) LoadNonce() ([]byte, error) {
	if f.nonce != nil {
		return slices.Clone(f.nonce), nil
	}
	nonce, err := f.readAt(nonceOffset, crypto.NonceSize)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault nonce: %w", err)
	}
	f.nonce = nonce
	return slices.Clone(nonce), nil
}

// ValidateHeader fails with ErrMismatchedFileHeader unless the magic and version match.
func (f *File) ValidateHeader() error {
	raw, err := f.readAt(0, HeaderSize)
	if err != nil {
		return err
	}
	var h Header
	if err := h.UnmarshalBinary(raw); err != nil {
		return err
	}
	return h.Validate()
}

// ReadPayload returns everything after the header.
func (f *File) ReadPayload() ([]byte, error) {
	in, err := f.open()
	if err != nil {
		return nil, err
	}
	defer in.Close()

	if _, err := in.Seek(HeaderSize, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek past vault header: %w", err)
	}
	payload, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("failed to read vault payload: %w", err)
	}
	return payload, nil
}

// WritePayload replaces the nonce and the ciphertext in one atomic rewrite of
// vault.bin and flushes it to disk before returning. The salt is preserved.
func (f *File) WritePayload(nonce, ciphertext []byte) error {
	if len(nonce) != crypto.NonceSize {
		return fmt.Errorf("invalid nonce length: expected %d bytes, got %d bytes", crypto.NonceSize, len(nonce))
	}
	salt, err := f.LoadSalt()
	if err != nil {
		return err
	}
	header, err := newHeader(salt, nonce).MarshalBinary()
	if err != nil {
		return err
	}

	data := make([]byte, 0, len(header)+len(ciphertext))
	data = append(data, header...)
	data = append(data, ciphertext...)

	if err := atomicWriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write vault payload: %w", err)
	}
	f.nonce = slices.Clone(nonce)
	return nil
}

// Seal encrypts plaintext under key with a fresh nonce and persists it.
// It returns the ciphertext and the nonce used.
func (f *File) Seal(key *crypto.Key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	nonce, err = crypto.NewNonce()
	if err != nil {
		return nil, nil, err
	}
	ciphertext, err = crypto.Encrypt(key, nonce, plaintext)
	if err != nil {
		return nil, nil, err
	}
	if err := f.WritePayload(nonce, ciphertext); err != nil {
		return nil, nil, err
	}
	return ciphertext, nonce, nil
}

// Open validates the header and decrypts the payload under key.
// It also returns the raw ciphertext so callers can compare it with the sidecar.
func (f *File) Open(key *crypto.Key) (plaintext, ciphertext []byte, err error) {
	if err := f.ValidateHeader(); err != nil {
		return nil, nil, err
	}
	ciphertext, err = f.ReadPayload()
	if err != nil {
		return nil, nil, err
	}
	nonce, err := f.LoadNonce()
	if err != nil {
		return nil, nil, err
	}
	plaintext, err = crypto.Decrypt(key, nonce, ciphertext)
	if err != nil {
		return nil, nil, err
	}
	return plaintext, ciphertext, nil
}

func (f *File) open() (*os.File, error) {
	if f.path == "" {
		return nil, fmt.Errorf("vault file in %s has not been allocated", f.dir)
	}
	in, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open vault file: %w", err)
	}
	return in, nil
}

func (f *File) readAt(offset int64, n int) ([]byte, error) {
	in, err := f.open()
	if err != nil {
		return nil, err
	}
	defer in.Close()

	buf := make([]byte, n)
	if _, err := in.ReadAt(buf, offset); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is shorter than the header", perrors.ErrMismatchedFileHeader)
		}
		return nil, err
	}
	return buf, nil
}
