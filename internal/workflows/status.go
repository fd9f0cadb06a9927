package workflows

import (
	"context"
	"errors"

	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	"github.com/PolarWolf314/pwmn/internal/vault"
)

// StatusResult contains the outcome of a status operation.
type StatusResult struct {
	Root string

	// Initialized is false when the root vault does not exist yet.
	Initialized bool

	// Registers is the number of register directories under the root.
	Registers int

	// Connected is the connected register name, empty when disconnected.
	Connected string

	// Entries is the number of entries in the connected register.
	Entries int
}

// Status describes the root vault and the session. It never prompts.
func Status(ctx context.Context, rt *Runtime) (*StatusResult, error) {
	result := &StatusResult{Root: rt.root()}

	if conn, err := rt.connection(); err == nil {
		result.Connected = conn.Register.Name
		result.Entries = len(conn.Register.Entries)
	}

	manager, err := vault.Load(rt.root(), rt.suite())
	if errors.Is(err, perrors.ErrVaultNotExists) {
		return result, nil
	}
	if err != nil {
		return nil, err
	}
	result.Initialized = true

	if result.Registers, err = manager.Count(); err != nil {
		return nil, err
	}
	return result, nil
}
