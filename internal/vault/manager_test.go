package vault

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	root := filepath.Join(t.TempDir(), ".pwmn")
	require.NoError(t, Init(root))
	m, err := Load(root, crypto.TestSuite())
	require.NoError(t, err)
	return m
}

func TestInit(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", ".pwmn")

	require.NoError(t, Init(root))
	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())

	assert.ErrorIs(t, Init(root), perrors.ErrRootVaultAlreadyExists)
}

func TestLoadRequiresRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), ".pwmn")

	_, err := Load(root, crypto.TestSuite())
	assert.ErrorIs(t, err, perrors.ErrVaultNotExists)
	_, statErr := os.Stat(root)
	assert.True(t, os.IsNotExist(statErr), "Load must not create the root")

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0600))
	_, err = Load(file, crypto.TestSuite())
	assert.ErrorIs(t, err, perrors.ErrVaultNotExists)
}

func TestAddressIsCaseInsensitive(t *testing.T) {
	m := newManager(t)

	a := m.Address("Banking")
	assert.Len(t, a, crypto.KeySize)
	assert.Equal(t, a, m.Address("banking"))
	assert.Equal(t, a, m.Address("BANKING"))
	assert.NotEqual(t, a, m.Address("bankinh"))
}

func TestValidateRegister(t *testing.T) {
	m := newManager(t)

	address, path, err := m.ValidateRegister("personal", true)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.Root(), "."+hex.EncodeToString(address)), path)

	_, _, err = m.ValidateRegister("personal", false)
	assert.ErrorIs(t, err, perrors.ErrRegisterNotExists)

	_, err = m.CreateChild("personal")
	require.NoError(t, err)

	_, _, err = m.ValidateRegister("PERSONAL", true)
	assert.ErrorIs(t, err, perrors.ErrRegisterAlreadyExists)

	_, gotPath, err := m.ValidateRegister("Personal", false)
	require.NoError(t, err)
	assert.Equal(t, path, gotPath)
}

func TestCreateChildDoesNotLeakName(t *testing.T) {
	m := newManager(t)

	f, err := m.CreateChild("Secret-Register")
	require.NoError(t, err)
	assert.Empty(t, f.Path(), "CreateChild returns an unallocated handle")
	require.NoError(t, f.Allocate())

	entries, err := os.ReadDir(m.Root())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.NotContains(t, strings.ToLower(entries[0].Name()), "secret")
	assert.True(t, strings.HasPrefix(entries[0].Name(), "."))

	_, err = m.CreateChild("secret-register")
	assert.ErrorIs(t, err, perrors.ErrRegisterAlreadyExists)
}

func TestExternalVaultLoad(t *testing.T) {
	m := newManager(t)
	f, err := m.CreateChild("personal")
	require.NoError(t, err)
	require.NoError(t, f.Allocate())
	wantSalt, _ := f.LoadSalt()
	wantNonce, _ := f.LoadNonce()

	_, path, err := m.ValidateRegister("personal", false)
	require.NoError(t, err)
	loaded, err := m.ExternalVaultLoad(path)
	require.NoError(t, err)

	salt, err := loaded.LoadSalt()
	require.NoError(t, err)
	nonce, err := loaded.LoadNonce()
	require.NoError(t, err)
	assert.Equal(t, wantSalt, salt)
	assert.Equal(t, wantNonce, nonce)
}

func TestRemoveAndCount(t *testing.T) {
	m := newManager(t)

	for _, name := range []string{"alpha-reg", "bravo-reg", "charlie-reg"} {
		f, err := m.CreateChild(name)
		require.NoError(t, err)
		require.NoError(t, f.Allocate())
	}
	require.NoError(t, os.WriteFile(filepath.Join(m.Root(), "audit.jsonl"), nil, 0600))

	n, err := m.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, path, err := m.ValidateRegister("bravo-reg", false)
	require.NoError(t, err)
	require.NoError(t, m.Remove(path))

	n, err = m.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	_, _, err = m.ValidateRegister("bravo-reg", false)
	assert.ErrorIs(t, err, perrors.ErrRegisterNotExists)
}

func TestRemoveRefusesForeignPaths(t *testing.T) {
	m := newManager(t)

	assert.Error(t, m.Remove(m.Root()))
	assert.Error(t, m.Remove(t.TempDir()))
	assert.Error(t, m.Remove(filepath.Join(m.Root(), "audit.jsonl")))
}
