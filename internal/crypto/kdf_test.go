package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveIsDeterministic(t *testing.T) {
	suite := TestSuite()
	salt := bytes.Repeat([]byte{0x42}, SaltSize)

	for _, mode := range []Mode{ModeFast, ModeSlow} {
		t.Run(mode.String(), func(t *testing.T) {
			a := suite.Derive([]byte("correct horse"), salt, mode)
			defer a.Wipe()
			b := suite.Derive([]byte("correct horse"), salt, mode)
			defer b.Wipe()

			assert.Equal(t, a.Bytes(), b.Bytes())
			assert.Len(t, a.Bytes(), KeySize)
		})
	}
}

func TestDeriveDependsOnInputs(t *testing.T) {
	suite := TestSuite()
	saltA := bytes.Repeat([]byte{0x01}, SaltSize)
	saltB := bytes.Repeat([]byte{0x02}, SaltSize)

	base := suite.DeriveSlow([]byte("password-one"), saltA)
	defer base.Wipe()

	otherSecret := suite.DeriveSlow([]byte("password-two"), saltA)
	defer otherSecret.Wipe()
	assert.NotEqual(t, base.Bytes(), otherSecret.Bytes(), "different secrets must give different keys")

	otherSalt := suite.DeriveSlow([]byte("password-one"), saltB)
	defer otherSalt.Wipe()
	assert.NotEqual(t, base.Bytes(), otherSalt.Bytes(), "different salts must give different keys")

	fast := suite.DeriveFast([]byte("password-one"), saltA)
	defer fast.Wipe()
	assert.NotEqual(t, base.Bytes(), fast.Bytes(), "tiers must not collide")
}

func TestDefaultSuiteParameters(t *testing.T) {
	suite := DefaultSuite()

	assert.Equal(t, Params{Memory: 16 * 1024, Time: 1, Threads: 1}, suite.Fast)
	assert.Equal(t, Params{Memory: 64 * 1024, Time: 2, Threads: 1}, suite.Slow)
	require.NoError(t, suite.Fast.Validate())
	require.NoError(t, suite.Slow.Validate())
}

func TestParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
	}{
		{"valid", Params{Memory: 8, Time: 1, Threads: 1}, false},
		{"zero time", Params{Memory: 8, Time: 0, Threads: 1}, true},
		{"zero threads", Params{Memory: 8, Time: 1, Threads: 0}, true},
		{"memory below minimum", Params{Memory: 15, Time: 1, Threads: 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDerivePanicsOnInvalidParams(t *testing.T) {
	suite := Suite{Fast: Params{}, Slow: Params{}}
	assert.Panics(t, func() {
		suite.DeriveFast([]byte("x"), make([]byte, SaltSize))
	})
}

func TestKeyWipe(t *testing.T) {
	k := keyFromBytes(bytes.Repeat([]byte{0xff}, KeySize))
	k.Wipe()
	assert.Equal(t, make([]byte, KeySize), k.Bytes())

	// Second wipe and nil wipe are harmless.
	k.Wipe()
	var nilKey *Key
	nilKey.Wipe()
}

func TestWipeLeavesOtherKeysIntact(t *testing.T) {
	session := keyFromBytes(bytes.Repeat([]byte{0xaa}, KeySize))
	defer session.Wipe()

	// Short-lived keys come and go while the session key stays live.
	for i := 0; i < 3*keySlots; i++ {
		k := keyFromBytes(bytes.Repeat([]byte{byte(i)}, KeySize))
		k.Wipe()
	}
	assert.Equal(t, bytes.Repeat([]byte{0xaa}, KeySize), session.Bytes())
}

func TestKeysBeyondArenaStillWork(t *testing.T) {
	keys := make([]*Key, 0, keySlots+2)
	defer func() {
		for _, k := range keys {
			k.Wipe()
		}
	}()
	for i := 0; i < keySlots+2; i++ {
		keys = append(keys, keyFromBytes(bytes.Repeat([]byte{byte(i)}, KeySize)))
	}
	for i, k := range keys {
		assert.Equal(t, bytes.Repeat([]byte{byte(i)}, KeySize), k.Bytes())
	}
}

func TestNewSalt(t *testing.T) {
	a, err := NewSalt()
	require.NoError(t, err)
	b, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, a, SaltSize)
	assert.NotEqual(t, a, b)
}
