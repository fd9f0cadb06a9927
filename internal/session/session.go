package session

import (
	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	"github.com/PolarWolf314/pwmn/internal/register"
	"github.com/PolarWolf314/pwmn/internal/vault"
)

// State is the connection state of a Session.
type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// Connection is everything a connected session owns.
type Connection struct {
	// Address is the register's content address, used to refer to it in logs.
	Address  []byte
	Register *register.Register
	Key      *crypto.Key
	File     *vault.File
	Auth     *vault.Auth
}

// Session is the connection state machine.
type Session struct {
	root string
	conn *Connection
}

// New returns a disconnected session over the given root vault.
func New(root string) *Session {
	return &Session{root: root}
}

// Root returns the root vault directory.
func (s *Session) Root() string {
	return s.root
}

// State returns the current state.
func (s *Session) State() State {
	if s.conn == nil {
		return Disconnected
	}
	return Connected
}

// IsConnected reports whether a register is connected.
func (s *Session) IsConnected() bool {
	return s.conn != nil
}

// ConnectedName returns the name of the connected register.
func (s *Session) ConnectedName() (string, bool) {
	if s.conn == nil {
		return "", false
	}
	return s.conn.Register.Name, true
}

// RequireDisconnected fails with ErrAnotherSessionIsRunning while connected.
func (s *Session) RequireDisconnected() error {
	if s.conn != nil {
		return perrors.ErrAnotherSessionIsRunning
	}
	return nil
}

// ConnectTo moves the session to Connected. The session takes ownership of
// conn and wipes it on Disconnect.
func (s *Session) ConnectTo(conn *Connection) error {
	if s.conn != nil {
		return perrors.ErrAnotherSessionIsRunning
	}
	s.conn = conn
	return nil
}

// Current returns the active connection or ErrSessionNotConnected.
func (s *Session) Current() (*Connection, error) {
	if s.conn == nil {
		return nil, perrors.ErrSessionNotConnected
	}
	return s.conn, nil
}

// Disconnect moves the session to Disconnected and wipes the register and key.
func (s *Session) Disconnect() error {
	if s.conn == nil {
		return perrors.ErrSessionNotConnected
	}
	conn := s.conn
	s.conn = nil

	if conn.Register != nil {
		conn.Register.Wipe()
	}
	conn.Key.Wipe()
	return nil
}
