package workflows

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/pwmn/internal/audit"
	"github.com/PolarWolf314/pwmn/internal/crypto"
	"github.com/PolarWolf314/pwmn/internal/register"
	"github.com/PolarWolf314/pwmn/internal/vault"
)

// CreateOptions configures the create workflow.
type CreateOptions struct {
	// Name is the register name. Case is kept inside the register but
	// ignored when addressing it.
	Name string
}

// CreateResult contains the outcome of a create operation.
type CreateResult struct {
	// Name is the register name as given.
	Name string

	// AddressPrefix identifies the register directory in logs.
	AddressPrefix string

	// Dir is the new register directory.
	Dir string
}

// Create creates a new, empty register protected by a password.
//
// The workflow:
//  1. Creates the register directory and allocates vault.bin
//  2. Prompts for the password twice
//  3. Derives the slow key from the password and the vault salt
//  4. Seals an empty register and copies the ciphertext to auth.pwmn
//
// Any failure after the directory is created removes it again.
//
// Returns ShortLenError if the name or password is too short.
// Returns ErrAnotherSessionIsRunning if a register is connected.
// Returns ErrVaultNotExists if the root vault was never initialized.
// Returns ErrRegisterAlreadyExists if the name is taken, in any case.
func Create(ctx context.Context, rt *Runtime, opts CreateOptions) (_ *CreateResult, err error) {
	if err := checkLength("register name", []byte(opts.Name), MinRegisterNameLength); err != nil {
		return nil, err
	}
	if err := rt.Session.RequireDisconnected(); err != nil {
		return nil, err
	}

	manager, err := vault.Load(rt.root(), rt.suite())
	if err != nil {
		return nil, err
	}

	file, err := manager.CreateChild(opts.Name)
	if err != nil {
		return nil, err
	}
	address := manager.Address(opts.Name)
	prefix := audit.AddressPrefix(address)

	defer func() {
		if err == nil {
			rt.audit("create", address, true, nil)
			return
		}
		if rmErr := manager.Remove(file.Dir()); rmErr != nil {
			rt.Log.WarnfAlways("Could not remove incomplete register directory %s: %v", file.Dir(), rmErr)
		}
		rt.audit("create", address, false, nil)
	}()

	if err := file.Allocate(); err != nil {
		return nil, err
	}

	password, err := rt.readNewPassword("Register password: ", "Confirm password: ")
	if err != nil {
		return nil, err
	}
	defer crypto.Zero(password)
	if err := checkLength("password", password, MinPasswordLength); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	salt, err := file.LoadSalt()
	if err != nil {
		return nil, err
	}
	rt.Log.Debugf("Deriving key for register %s", prefix)
	key := rt.suite().DeriveSlow(password, salt)
	defer key.Wipe()
	crypto.Zero(password)

	reg := register.New(opts.Name, rt.now())
	plaintext, err := register.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("encoding register: %w", err)
	}
	defer crypto.Zero(plaintext)

	ciphertext, _, err := file.Seal(key, plaintext)
	if err != nil {
		return nil, err
	}

	auth, err := vault.CreateAuthAt(file.Dir())
	if err != nil {
		return nil, err
	}
	if err := auth.Write(ciphertext); err != nil {
		return nil, err
	}

	rt.Log.Infof("Created register %s", prefix)
	return &CreateResult{Name: opts.Name, AddressPrefix: prefix, Dir: file.Dir()}, nil
}
