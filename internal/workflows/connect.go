package workflows

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/pwmn/internal/audit"
	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	"github.com/PolarWolf314/pwmn/internal/register"
	"github.com/PolarWolf314/pwmn/internal/session"
	"github.com/PolarWolf314/pwmn/internal/vault"
)

// ConnectOptions configures the connect workflow.
type ConnectOptions struct {
	Name string
}

// ConnectResult contains the outcome of a connect operation.
type ConnectResult struct {
	// Name is the register name stored inside the register.
	Name string

	AddressPrefix string

	// Entries is the number of entries in the register.
	Entries int

	// AccessCount includes this connection.
	AccessCount uint32

	// SidecarRepaired is true when auth.pwmn was missing or stale and has
	// been rewritten from vault.bin.
	SidecarRepaired bool
}

// Connect decrypts a register and connects the session to it.
//
// The access count is bumped and the register re-sealed, which also brings
// a stale auth sidecar back in line with vault.bin.
//
// Returns ErrAnotherSessionIsRunning if a register is connected.
// Returns ErrVaultNotExists if the root vault was never initialized.
// Returns ErrRegisterNotExists if no register has this name.
// Returns ErrMismatchedFileHeader if vault.bin is not a pwmn vault.
// Returns ErrDecryption for a wrong password or a corrupted vault.
func Connect(ctx context.Context, rt *Runtime, opts ConnectOptions) (_ *ConnectResult, err error) {
	if err := rt.Session.RequireDisconnected(); err != nil {
		return nil, err
	}

	manager, err := vault.Load(rt.root(), rt.suite())
	if err != nil {
		return nil, err
	}

	address, dir, err := manager.ValidateRegister(opts.Name, false)
	if err != nil {
		return nil, err
	}
	prefix := audit.AddressPrefix(address)
	defer func() {
		rt.audit("connect", address, err == nil, nil)
	}()

	file, err := manager.ExternalVaultLoad(dir)
	if err != nil {
		return nil, err
	}
	if err := file.ValidateHeader(); err != nil {
		return nil, err
	}

	password, err := rt.readPassword("Register password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(password)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	salt, err := file.LoadSalt()
	if err != nil {
		return nil, err
	}
	key := rt.suite().DeriveSlow(password, salt)
	crypto.Zero(password)

	conn, repaired, err := openRegister(file, dir, key)
	if err != nil {
		key.Wipe()
		return nil, err
	}
	conn.Address = address

	conn.Register.RecordAccess()
	if err := persist(conn); err != nil {
		conn.Register.Wipe()
		key.Wipe()
		return nil, fmt.Errorf("saving register: %w", err)
	}
	if repaired {
		rt.Log.WarnfAlways("Auth file of register %s was out of date and has been rewritten", prefix)
	}

	if err := rt.Session.ConnectTo(conn); err != nil {
		conn.Register.Wipe()
		key.Wipe()
		return nil, err
	}

	rt.Log.Infof("Connected to register %s", prefix)
	return &ConnectResult{
		Name:            conn.Register.Name,
		AddressPrefix:   prefix,
		Entries:         len(conn.Register.Entries),
		AccessCount:     conn.Register.Metadata.AccessCount,
		SidecarRepaired: repaired,
	}, nil
}

// openRegister decrypts vault.bin and binds the sidecar, reporting whether
// the sidecar needs rewriting. The caller keeps ownership of key.
func openRegister(file *vault.File, dir string, key *crypto.Key) (*session.Connection, bool, error) {
	plaintext, _, err := file.Open(key)
	if err != nil {
		return nil, false, err
	}
	defer crypto.Zero(plaintext)

	reg, err := register.Unmarshal(plaintext)
	if err != nil {
		// The AEAD tag verified, so only a foreign or buggy writer gets here.
		return nil, false, fmt.Errorf("%w: %v", perrors.ErrDecryption, err)
	}

	repaired := false
	auth, err := vault.LoadAuth(dir)
	switch {
	case errors.Is(err, perrors.ErrAuthFileNotFound):
		if auth, err = vault.CreateAuthAt(dir); err != nil {
			reg.Wipe()
			return nil, false, err
		}
		repaired = true
	case err != nil:
		reg.Wipe()
		return nil, false, err
	default:
		nonce, err := file.LoadNonce()
		if err != nil {
			reg.Wipe()
			return nil, false, err
		}
		repaired = auth.Verify(key, nonce) != nil
	}

	return &session.Connection{Register: reg, Key: key, File: file, Auth: auth}, repaired, nil
}
