package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of every KDF salt stored on disk.
const SaltSize = 16

// Mode selects a derivation cost tier.
type Mode int

const (
	// ModeFast is used for content-addressing register names.
	ModeFast Mode = iota
	// ModeSlow is used to derive encryption keys from passwords.
	ModeSlow
)

func (m Mode) String() string {
	switch m {
	case ModeFast:
		return "fast"
	case ModeSlow:
		return "slow"
	default:
		return "unknown"
	}
}

// Params are Argon2id cost parameters. Memory is in KiB.
type Params struct {
	Memory  uint32
	Time    uint32
	Threads uint8
}

// Validate rejects parameters argon2 cannot run with.
func (p Params) Validate() error {
	if p.Time < 1 {
		return fmt.Errorf("argon2 time cost must be at least 1, got %d", p.Time)
	}
	if p.Threads < 1 {
		return fmt.Errorf("argon2 parallelism must be at least 1, got %d", p.Threads)
	}
	if p.Memory < 8*uint32(p.Threads) {
		return fmt.Errorf("argon2 memory must be at least %d KiB, got %d", 8*uint32(p.Threads), p.Memory)
	}
	return nil
}

// Suite pairs the two derivation tiers.
type Suite struct {
	Fast Params
	Slow Params
}

// DefaultSuite returns the production cost parameters.
func DefaultSuite() Suite {
	return Suite{
		Fast: Params{Memory: 16 * 1024, Time: 1, Threads: 1},
		Slow: Params{Memory: 64 * 1024, Time: 2, Threads: 1},
	}
}

// TestSuite returns minimal parameters for tests. Never use it for real vaults:
// content addresses computed with it do not match DefaultSuite.
func TestSuite() Suite {
	return Suite{
		Fast: Params{Memory: 8, Time: 1, Threads: 1},
		Slow: Params{Memory: 16, Time: 1, Threads: 1},
	}
}

// Params returns the parameters for mode m.
func (s Suite) Params(m Mode) Params {
	if m == ModeSlow {
		return s.Slow
	}
	return s.Fast
}

// Derive runs Argon2id over secret and salt with the parameters of mode m.
// Invalid parameters are a programming error and panic.
func (s Suite) Derive(secret, salt []byte, m Mode) *Key {
	p := s.Params(m)
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("crypto: invalid %s kdf parameters: %v", m, err))
	}

	raw := argon2.IDKey(secret, salt, p.Time, p.Memory, p.Threads, KeySize)
	defer Zero(raw)

	return newKey(raw)
}

// DeriveFast derives a content-address key.
func (s Suite) DeriveFast(secret, salt []byte) *Key {
	return s.Derive(secret, salt, ModeFast)
}

// DeriveSlow derives a password-based encryption key.
func (s Suite) DeriveSlow(password, salt []byte) *Key {
	return s.Derive(password, salt, ModeSlow)
}

// NewSalt returns SaltSize random bytes.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}
