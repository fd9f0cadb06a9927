package workflows

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/PolarWolf314/pwmn/internal/audit"
	"github.com/PolarWolf314/pwmn/internal/crypto"
	perrors "github.com/PolarWolf314/pwmn/internal/errors"
	logger "github.com/PolarWolf314/pwmn/internal/logging"
	"github.com/PolarWolf314/pwmn/internal/register"
	"github.com/PolarWolf314/pwmn/internal/session"
	"github.com/PolarWolf314/pwmn/internal/utils"
)

const (
	// MinRegisterNameLength is the shortest register name Create accepts.
	MinRegisterNameLength = 5

	// MinPasswordLength is the shortest register password Create accepts.
	MinPasswordLength = 8

	// DefaultGeneratedLength is used when a generated entry password has no length.
	DefaultGeneratedLength = 20
)

// Runtime carries the collaborators every workflow needs.
type Runtime struct {
	Session *session.Session

	// Suite holds the Argon2id parameters. Zero value means crypto.DefaultSuite().
	Suite crypto.Suite

	// Password prompts for a password. Defaults to utils.ReadPassphraseOrLine.
	Password utils.PasswordReader

	// Now defaults to time.Now.
	Now func() time.Time

	Log logger.Logger
}

// NewRuntime returns a Runtime over a fresh session for root.
func NewRuntime(root string) *Runtime {
	return &Runtime{
		Session:  session.New(root),
		Suite:    crypto.DefaultSuite(),
		Password: utils.ReadPassphraseOrLine,
		Now:      time.Now,
	}
}

func (rt *Runtime) root() string {
	return rt.Session.Root()
}

func (rt *Runtime) suite() crypto.Suite {
	if rt.Suite == (crypto.Suite{}) {
		return crypto.DefaultSuite()
	}
	return rt.Suite
}

func (rt *Runtime) now() time.Time {
	if rt.Now == nil {
		return time.Now()
	}
	return rt.Now()
}

func (rt *Runtime) readPassword(prompt string) ([]byte, error) {
	if rt.Password == nil {
		return utils.ReadPassphraseOrLine(prompt)
	}
	return rt.Password(prompt)
}

func (rt *Runtime) readNewPassword(prompt, confirm string) ([]byte, error) {
	read := rt.Password
	if read == nil {
		read = utils.ReadPassphraseOrLine
	}
	return utils.ReadNewPassphrase(read, prompt, confirm)
}

func (rt *Runtime) audit(op string, address []byte, ok bool, fill func(*audit.Entry)) {
	entry := audit.LogWithUser(op)
	entry.Timestamp = rt.now().UTC().Format("2006-01-02T15:04:05.000000Z")
	entry.Success = ok
	if address != nil {
		entry.Register = audit.AddressPrefix(address)
	}
	if fill != nil {
		fill(&entry)
	}
	audit.Log(rt.root(), entry)
}

// connection returns the connected register or ErrSessionNotConnected.
func (rt *Runtime) connection() (*session.Connection, error) {
	return rt.Session.Current()
}

// persist re-seals the connected register with a fresh nonce, then copies
// the new ciphertext to the sidecar.
func persist(conn *session.Connection) error {
	plaintext, err := register.Marshal(conn.Register)
	if err != nil {
		return err
	}
	defer crypto.Zero(plaintext)

	ciphertext, _, err := conn.File.Seal(conn.Key, plaintext)
	if err != nil {
		return err
	}
	return conn.Auth.Write(ciphertext)
}

// commit applies change to the connected register and re-seals it. Failed
// changes are sealed too, so the register log keeps the attempt. When sealing
// fails the in-memory register is rolled back to match the file on disk.
func (rt *Runtime) commit(conn *session.Connection, change func(*register.Register) error) error {
	snapshot := conn.Register.Clone()
	changeErr := change(conn.Register)

	if saveErr := persist(conn); saveErr != nil {
		conn.Register.Wipe()
		conn.Register = snapshot
		if changeErr != nil {
			rt.Log.Warnf("Could not save register log: %v", saveErr)
			return changeErr
		}
		return fmt.Errorf("saving register: %w", saveErr)
	}
	snapshot.Wipe()
	return changeErr
}

func checkLength(field string, value []byte, minLen int) error {
	if utf8.RuneCount(value) < minLen {
		return &perrors.ShortLenError{Field: field, Min: minLen}
	}
	return nil
}
