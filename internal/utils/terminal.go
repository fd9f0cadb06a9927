package utils

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// ErrPassphraseMismatch is returned by ReadNewPassphrase when the two entries differ.
var ErrPassphraseMismatch = errors.New("passwords do not match")

// PasswordReader returns one password typed in response to prompt. The caller
// owns and wipes the returned slice.
type PasswordReader func(prompt string) ([]byte, error)

// ReadPassphrase prompts the user for a passphrase without echoing input.
// Returns an error if stdin is not a terminal.
func ReadPassphrase(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("cannot read passphrase: stdin is not a terminal")
	}

	fmt.Fprint(os.Stderr, prompt)
	passphrase, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr) // Add newline after hidden input

	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}

	return passphrase, nil
}

var (
	stdinOnce   sync.Once
	stdinReader *bufio.Reader
)

// ReadPassphraseOrLine reads from the terminal without echo, or a line of
// piped stdin when stdin is not a terminal.
func ReadPassphraseOrLine(prompt string) ([]byte, error) {
	if IsTerminal() {
		return ReadPassphrase(prompt)
	}
	return ReadSecretLine(StdinReader())
}

// StdinReader returns the buffered stdin shared by every line reader of the
// process, so prompts and the shell never split a piped stream.
func StdinReader() *bufio.Reader {
	stdinOnce.Do(func() { stdinReader = bufio.NewReader(os.Stdin) })
	return stdinReader
}

// ReadNewPassphrase asks for a new password twice and returns it if both
// entries match. Both buffers are wiped on mismatch.
func ReadNewPassphrase(read PasswordReader, prompt, confirmPrompt string) ([]byte, error) {
	first, err := read(prompt)
	if err != nil {
		return nil, err
	}

	second, err := read(confirmPrompt)
	if err != nil {
		wipe(first)
		return nil, err
	}
	defer wipe(second)

	if !bytes.Equal(first, second) {
		wipe(first)
		return nil, ErrPassphraseMismatch
	}
	return first, nil
}

// IsTerminal returns true if stdin is a terminal.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
