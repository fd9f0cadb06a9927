package vault

import (
	"encoding/binary"
	"fmt"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
)

const (
	// VaultFileName is the primary encrypted file inside a register directory.
	VaultFileName = "vault.bin"

	// AuthFileName is the password-verification sidecar inside a register directory.
	AuthFileName = "auth.pwmn"

	// FormatVersion is the only vault.bin version this build reads and writes.
	FormatVersion uint16 = 1

	magicSize   = 4
	versionSize = 2

	saltOffset  = magicSize + versionSize
	nonceOffset = saltOffset + crypto.SaltSize

	// HeaderSize is the fixed length of the vault.bin header.
	HeaderSize = nonceOffset + crypto.NonceSize
)

// Magic tags every vault.bin file.
var Magic = [magicSize]byte{'P', 'W', 'M', 'N'}

// Header is the decoded fixed-size prefix of vault.bin.
type Header struct {
	Magic   [magicSize]byte
	Version uint16
	Salt    [crypto.SaltSize]byte
	Nonce   [crypto.NonceSize]byte
}

func newHeader(salt, nonce []byte) Header {
	h := Header{Magic: Magic, Version: FormatVersion}
	copy(h.Salt[:], salt)
	copy(h.Nonce[:], nonce)
	return h
}

// MarshalBinary encodes h as HeaderSize bytes, integers little-endian.
func (h Header) MarshalBinary() ([]byte, error) {
	buf := make([]byte, HeaderSize)
	copy(buf[:magicSize], h.Magic[:])
	binary.LittleEndian.PutUint16(buf[magicSize:saltOffset], h.Version)
	copy(buf[saltOffset:nonceOffset], h.Salt[:])
	copy(buf[nonceOffset:HeaderSize], h.Nonce[:])
	return buf, nil
}

// UnmarshalBinary decodes a header without validating it.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: header is %d bytes, expected %d", perrors.ErrMismatchedFileHeader, len(data), HeaderSize)
	}
	copy(h.Magic[:], data[:magicSize])
	h.Version = binary.LittleEndian.Uint16(data[magicSize:saltOffset])
	copy(h.Salt[:], data[saltOffset:nonceOffset])
	copy(h.Nonce[:], data[nonceOffset:HeaderSize])
	return nil
}

// Validate checks the magic and version.
func (h Header) Validate() error {
	if h.Magic != Magic {
		return fmt.Errorf("%w: unexpected magic %q", perrors.ErrMismatchedFileHeader, h.Magic[:])
	}
	if h.Version != FormatVersion {
		return fmt.Errorf("%w: unsupported version %d", perrors.ErrMismatchedFileHeader, h.Version)
	}
	return nil
}
