package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/pwmn/internal/audit"
	"github.com/PolarWolf314/pwmn/internal/crypto"
	"github.com/PolarWolf314/pwmn/internal/register"
	"github.com/PolarWolf314/pwmn/internal/vault"
)

// DropRegisterOptions configures the drop register workflow.
type DropRegisterOptions struct {
	Name string
}

// DropRegisterResult contains the outcome of a drop register operation.
type DropRegisterResult struct {
	Name          string
	AddressPrefix string
}

// DropRegister deletes a register directory after its password has opened
// the auth sidecar. Deletion is recursive and cannot be undone.
//
// Dropping requires a disconnected session, even for another register.
//
// Returns ErrAnotherSessionIsRunning if a register is connected.
// Returns ErrVaultNotExists if the root vault was never initialized.
// Returns ErrRegisterNotExists if no register has this name.
// Returns ErrAuthFileNotFound if the register has no auth sidecar.
// Returns ErrDecryption for a wrong password.
func DropRegister(ctx context.Context, rt *Runtime, opts DropRegisterOptions) (_ *DropRegisterResult, err error) {
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
	defer func() {
		rt.audit("drop", address, err == nil, nil)
	}()

	file, err := manager.ExternalVaultLoad(dir)
	if err != nil {
		return nil, err
	}
	auth, err := vault.LoadAuth(dir)
	if err != nil {
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
	nonce, err := file.LoadNonce()
	if err != nil {
		return nil, err
	}
	if err := auth.Authenticate(password, rt.suite(), salt, nonce); err != nil {
		return nil, err
	}

	if err := manager.Remove(dir); err != nil {
		return nil, fmt.Errorf("dropping register: %w", err)
	}

	prefix := audit.AddressPrefix(address)
	rt.Log.Infof("Dropped register %s", prefix)
	return &DropRegisterResult{Name: opts.Name, AddressPrefix: prefix}, nil
}

// DropEntryOptions configures the drop entry workflow.
type DropEntryOptions struct {
	ID string
}

// DropEntryResult contains the outcome of a drop entry operation.
type DropEntryResult struct {
	ID string

	// Remaining is the number of entries left in the register.
	Remaining int
}

// DropEntry removes an entry from the connected register and re-seals it.
//
// Returns ErrSessionNotConnected if no register is connected.
// Returns ErrEntryNotFound if the register has no such entry.
func DropEntry(ctx context.Context, rt *Runtime, opts DropEntryOptions) (_ *DropEntryResult, err error) {
	conn, err := rt.connection()
	if err != nil {
		return nil, err
	}
	defer func() {
		rt.audit("drop_entry", conn.Address, err == nil, func(e *audit.Entry) { e.EntryID = opts.ID })
	}()

	if err := rt.commit(conn, func(r *register.Register) error {
		return r.DeleteEntry(opts.ID, rt.now())
	}); err != nil {
		return nil, err
	}

	return &DropEntryResult{ID: opts.ID, Remaining: len(conn.Register.Entries)}, nil
}
