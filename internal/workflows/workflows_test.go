package workflows

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/PolarWolf314/pwmn/internal/crypto"
	logger "github.com/PolarWolf314/pwmn/internal/logging"
	"github.com/PolarWolf314/pwmn/internal/session"
	"github.com/PolarWolf314/pwmn/internal/utils"
	"github.com/PolarWolf314/pwmn/internal/vault"

	"github.com/stretchr/testify/require"
)

const testPassword = "correct horse battery"

var fixedNow = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func fixedPassword(password string) utils.PasswordReader {
	return func(string) ([]byte, error) {
		return []byte(password), nil
	}
}

// newRuntime returns a runtime over an uninitialized root.
func newRuntime(t *testing.T) *Runtime {
	t.Helper()
	root := filepath.Join(t.TempDir(), ".pwmn")
	return &Runtime{
		Session:  session.New(root),
		Suite:    crypto.TestSuite(),
		Password: fixedPassword(testPassword),
		Now:      func() time.Time { return fixedNow },
		Log:      logger.Logger{Out: io.Discard, Err: io.Discard},
	}
}

// initRuntime returns a runtime over an initialized root.
func initRuntime(t *testing.T) *Runtime {
	t.Helper()
	rt := newRuntime(t)
	_, err := Init(context.Background(), rt)
	require.NoError(t, err)
	return rt
}

func mustCreate(t *testing.T, rt *Runtime, name string) *CreateResult {
	t.Helper()
	res, err := Create(context.Background(), rt, CreateOptions{Name: name})
	require.NoError(t, err)
	return res
}

func mustConnect(t *testing.T, rt *Runtime, name string) *ConnectResult {
	t.Helper()
	res, err := Connect(context.Background(), rt, ConnectOptions{Name: name})
	require.NoError(t, err)
	return res
}

func registerDir(t *testing.T, rt *Runtime, name string) string {
	t.Helper()
	m, err := vault.Load(rt.root(), rt.Suite)
	require.NoError(t, err)
	_, dir, err := m.ValidateRegister(name, false)
	require.NoError(t, err)
	return dir
}

func registerCount(t *testing.T, rt *Runtime) int {
	t.Helper()
	entries, err := os.ReadDir(rt.root())
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			n++
		}
	}
	return n
}
