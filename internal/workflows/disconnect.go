package workflows

import (
	"context"
)

// DisconnectResult contains the outcome of a disconnect operation.
type DisconnectResult struct {
	// Name is the register that was connected.
	Name string
}

// Disconnect closes the connected register and wipes it from memory.
//
// Returns ErrSessionNotConnected if no register is connected.
func Disconnect(ctx context.Context, rt *Runtime) (*DisconnectResult, error) {
	conn, err := rt.connection()
	if err != nil {
		return nil, err
	}
	name := conn.Register.Name
	address := conn.Address

	if err := rt.Session.Disconnect(); err != nil {
		return nil, err
	}

	rt.Log.Infof("Disconnected")
	rt.audit("disconnect", address, true, nil)
	return &DisconnectResult{Name: name}, nil
}
