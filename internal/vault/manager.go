package vault

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
)

// addressSalt is shared by every installation. It only hides register names
// from a directory listing and must never be used to derive a password key.
var addressSalt = []byte{188, 209, 128, 213, 229, 38, 112, 152, 37, 246, 56, 123, 185, 210, 43, 26}

const registerDirPrefix = "."

// Manager maps register names to their directories under a root vault.
type Manager struct {
	root  string
	suite crypto.Suite
}

// Init creates the root vault directory. It fails if the directory exists.
func Init(root string) error {
	if _, err := os.Stat(root); err == nil {
		return perrors.ErrRootVaultAlreadyExists
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat root vault: %w", err)
	}
	if err := os.MkdirAll(root, 0700); err != nil {
		return fmt.Errorf("failed to create root vault: %w", err)
	}
	return nil
}

// Load binds an existing root vault. It never creates the directory.
func Load(root string, suite crypto.Suite) (*Manager, error) {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, perrors.ErrVaultNotExists
		}
		return nil, fmt.Errorf("failed to stat root vault: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", perrors.ErrVaultNotExists, root)
	}
	return &Manager{root: root, suite: suite}, nil
}

// Root returns the root vault directory.
func (m *Manager) Root() string {
	return m.root
}

// Address returns the content address of a register name. Names differing
// only in case share an address.
func (m *Manager) Address(name string) []byte {
	key := m.suite.DeriveFast([]byte(strings.ToLower(name)), addressSalt)
	defer key.Wipe()
	return slices.Clone(key.Bytes())
}

// ValidateRegister resolves name to its address and directory. When toCreate
// is set the directory must not exist yet, otherwise it must.
func (m *Manager) ValidateRegister(name string, toCreate bool) ([]byte, string, error) {
	address := m.Address(name)
	path := filepath.Join(m.root, registerDirPrefix+hex.EncodeToString(address))

	_, err := os.Stat(path)
	exists := err == nil
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to stat register directory: %w", err)
	}

	switch {
	case toCreate && exists:
		return nil, "", fmt.Errorf("%w: %q", perrors.ErrRegisterAlreadyExists, name)
	case !toCreate && !exists:
		return nil, "", fmt.Errorf("%w: %q", perrors.ErrRegisterNotExists, name)
	}
	return address, path, nil
}

// CreateChild creates the directory for a new register and returns an
// unallocated handle on its vault file.
func (m *Manager) CreateChild(name string) (*File, error) {
	_, path, err := m.ValidateRegister(name, true)
	if err != nil {
		return nil, err
	}
	if err := os.Mkdir(path, 0700); err != nil {
		if errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("%w: %q", perrors.ErrRegisterAlreadyExists, name)
		}
		return nil, fmt.Errorf("failed to create register directory: %w", err)
	}
	return &File{dir: path}, nil
}

// ExternalVaultLoad binds the vault file of an existing register directory
// and reads its salt and nonce.
func (m *Manager) ExternalVaultLoad(path string) (*File, error) {
	f := &File{dir: path, path: filepath.Join(path, VaultFileName)}
	if _, err := f.LoadSalt(); err != nil {
		return nil, err
	}
	if _, err := f.LoadNonce(); err != nil {
		return nil, err
	}
	return f, nil
}

// Remove deletes a register directory and everything in it.
func (m *Manager) Remove(path string) error {
	if !m.isRegisterDir(path) {
		return fmt.Errorf("refusing to remove %s: not a register directory under %s", path, m.root)
	}
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("failed to remove register directory: %w", err)
	}
	return nil
}

// Count returns the number of register directories under the root.
func (m *Manager) Count() (int, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		return 0, fmt.Errorf("failed to read root vault: %w", err)
	}
	n := 0
	for _, e := range entries {
		if e.IsDir() && isAddressName(e.Name()) {
			n++
		}
	}
	return n, nil
}

func (m *Manager) isRegisterDir(path string) bool {
	rel, err := filepath.Rel(m.root, path)
	if err != nil || strings.ContainsRune(rel, filepath.Separator) {
		return false
	}
	return isAddressName(rel)
}

func isAddressName(name string) bool {
	hexPart, ok := strings.CutPrefix(name, registerDirPrefix)
	if !ok || len(hexPart) != 2*crypto.KeySize {
		return false
	}
	_, err := hex.DecodeString(hexPart)
	return err == nil
}
