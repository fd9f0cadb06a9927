package vault

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allocated(t *testing.T) *File {
	t.Helper()
	f := &File{dir: t.TempDir()}
	require.NoError(t, f.Allocate())
	return f
}

func testKey(t *testing.T, f *File, password string) *crypto.Key {
	t.Helper()
	salt, err := f.LoadSalt()
	require.NoError(t, err)
	key := crypto.TestSuite().DeriveSlow([]byte(password), salt)
	t.Cleanup(key.Wipe)
	return key
}

func TestAllocateWritesHeaderOnly(t *testing.T) {
	f := allocated(t)

	info, err := os.Stat(f.Path())
	require.NoError(t, err)
	assert.EqualValues(t, HeaderSize, info.Size())
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	assert.NoError(t, f.ValidateHeader())
	payload, err := f.ReadPayload()
	require.NoError(t, err)
	assert.Empty(t, payload)

	assert.Error(t, f.Allocate(), "a handle is allocated once")
}

func TestSealOpenRoundTrip(t *testing.T) {
	f := allocated(t)
	key := testKey(t, f, "correct horse battery")

	ciphertext, _, err := f.Seal(key, []byte("register bytes"))
	require.NoError(t, err)

	reloaded := &File{dir: f.Dir(), path: f.Path()}
	plaintext, stored, err := reloaded.Open(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("register bytes"), plaintext)
	assert.Equal(t, ciphertext, stored)
}

func TestSealUsesFreshNonceAndKeepsSalt(t *testing.T) {
	f := allocated(t)
	key := testKey(t, f, "correct horse battery")

	saltBefore, err := f.LoadSalt()
	require.NoError(t, err)

	seen := map[string]bool{}
	for range 5 {
		_, nonce, err := f.Seal(key, []byte("same plaintext"))
		require.NoError(t, err)
		assert.False(t, seen[string(nonce)], "nonce reused")
		seen[string(nonce)] = true

		onDisk := &File{dir: f.Dir(), path: f.Path()}
		diskNonce, err := onDisk.LoadNonce()
		require.NoError(t, err)
		assert.Equal(t, nonce, diskNonce)

		diskSalt, err := onDisk.LoadSalt()
		require.NoError(t, err)
		assert.Equal(t, saltBefore, diskSalt)
	}
}

func TestSealLeavesNoTempFiles(t *testing.T) {
	f := allocated(t)
	key := testKey(t, f, "correct horse battery")

	_, _, err := f.Seal(key, []byte("payload"))
	require.NoError(t, err)

	entries, err := os.ReadDir(f.Dir())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, VaultFileName, entries[0].Name())
}

func TestOpenWithWrongKey(t *testing.T) {
	f := allocated(t)
	key := testKey(t, f, "correct horse battery")
	_, _, err := f.Seal(key, []byte("payload"))
	require.NoError(t, err)

	wrong := testKey(t, f, "incorrect horse battery")
	_, _, err = f.Open(wrong)
	assert.ErrorIs(t, err, perrors.ErrDecryption)
}

func TestOpenRejectsCorruptedMagic(t *testing.T) {
	f := allocated(t)
	key := testKey(t, f, "correct horse battery")
	_, _, err := f.Seal(key, []byte("payload"))
	require.NoError(t, err)

	raw, err := os.ReadFile(f.Path())
	require.NoError(t, err)
	raw[0] ^= 0xFF
	require.NoError(t, os.WriteFile(f.Path(), raw, 0600))

	_, _, err = f.Open(key)
	assert.ErrorIs(t, err, perrors.ErrMismatchedFileHeader)
}

func TestLoadSaltOnTruncatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, VaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("PWMN\x01\x00short"), 0600))

	f := &File{dir: dir, path: path}
	_, err := f.LoadSalt()
	assert.ErrorIs(t, err, perrors.ErrMismatchedFileHeader)
}

func TestWritePayloadRejectsBadNonce(t *testing.T) {
	f := allocated(t)
	assert.Error(t, f.WritePayload([]byte("short"), []byte("ciphertext")))
}
