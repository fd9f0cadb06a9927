package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/PolarWolf314/pwmn/internal/configs"
	"github.com/PolarWolf314/pwmn/internal/crypto"
	"github.com/PolarWolf314/pwmn/internal/utils"
)

const testPassword = "correct horse battery"

// setupTestEnvironment points HOME, the config file and the root vault at
// temporary directories and returns the root vault path.
func setupTestEnvironment(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv(configs.EnvConfig, filepath.Join(home, "config.toml"))
	t.Setenv(configs.EnvRoot, "")
	t.Setenv("NO_COLOR", "1")

	originalSettings := configs.Settings
	originalConfig := configs.GlobalConfig
	t.Cleanup(func() {
		configs.Settings = originalSettings
		configs.GlobalConfig = originalConfig
		ResetGlobalState()
		ResetConfigState()
	})

	if err := configs.InitSettings(); err != nil {
		t.Fatalf("Failed to init settings: %v", err)
	}
	ResetGlobalState()
	ResetConfigState()
	SetKDFSuite(crypto.TestSuite())
	SetPasswordReader(fixedPassword(testPassword))

	return filepath.Join(home, "vault")
}

func fixedPassword(password string) utils.PasswordReader {
	return func(string) ([]byte, error) {
		return []byte(password), nil
	}
}

// runCLI executes the root command with args and the given root vault,
// returning everything printed to stdout and stderr.
func runCLI(t *testing.T, root string, args ...string) (string, error) {
	t.Helper()
	resetCobraFlagState(RootCmd)
	rootFlag = ""

	if root != "" {
		args = append(args, "--root", root)
	}
	RootCmd.SetArgs(args)
	return captureOutput(func() error {
		_, err := RootCmd.ExecuteC()
		return err
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	stdoutReader, stdoutWriter, _ := os.Pipe()
	stderrReader, stderrWriter, _ := os.Pipe()

	os.Stdout = stdoutWriter
	os.Stderr = stderrWriter

	outputChan := make(chan string, 2)
	collect := func(r io.Reader) {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outputChan <- buf.String()
	}
	go collect(stdoutReader)
	go collect(stderrReader)

	err := fn()

	stdoutWriter.Close()
	stderrWriter.Close()

	os.Stdout = originalStdout
	os.Stderr = originalStderr

	stdout := <-outputChan
	stderr := <-outputChan

	return stdout + stderr, err
}

// mustRun runs args and fails the test on error.
func mustRun(t *testing.T, root string, args ...string) string {
	t.Helper()
	output, err := runCLI(t, root, args...)
	if err != nil {
		t.Fatalf("pwmn %v failed: %v\nOutput: %s", args, err, output)
	}
	return output
}
