package crypto

import (
	"crypto/rand"
	"fmt"

	perrors "github.com/PolarWolf314/pwmn/internal/errors"

	"golang.org/x/crypto/chacha20poly1305"
)

const (
	// NonceSize is the ChaCha20-Poly1305 nonce length.
	NonceSize = chacha20poly1305.NonceSize

	// Overhead is the authentication tag length added to every ciphertext.
	Overhead = chacha20poly1305.Overhead
)

// NewNonce returns NonceSize random bytes. A nonce must never be reused with the same key.
func NewNonce() ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return nonce, nil
}

// Encrypt seals plaintext under key and nonce.
func Encrypt(key *Key, nonce, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key.Bytes())
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("invalid nonce length: expected %d bytes, got %d bytes", NonceSize, len(nonce))
	}
	return aead.Seal(nil, nonce, plaintext, nil), nil
}

// Decrypt opens ciphertext under key and nonce.
// Any authentication failure is reported as ErrDecryption.
func Decrypt(key *Key, nonce, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.New(key.Bytes())
	if err != nil {
		return nil, err
	}
	if len(nonce) != NonceSize || len(ciphertext) < Overhead {
		return nil, perrors.ErrDecryption
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, perrors.ErrDecryption
	}
	return plaintext, nil
}
