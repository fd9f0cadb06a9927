package workflows

import (
	"context"

	"github.com/PolarWolf314/pwmn/internal/vault"
)

// InitResult contains the outcome of an init operation.
type InitResult struct {
	// Root is the root vault directory that was created.
	Root string
}

// Init creates the root vault directory.
//
// Returns ErrRootVaultAlreadyExists if the directory is already present.
func Init(ctx context.Context, rt *Runtime) (*InitResult, error) {
	if err := vault.Init(rt.root()); err != nil {
		return nil, err
	}
	rt.Log.Infof("Created root vault at %s", rt.root())
	rt.audit("init", nil, true, nil)

	return &InitResult{Root: rt.root()}, nil
}
