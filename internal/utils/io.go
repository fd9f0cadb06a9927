package utils

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
)

// ReadSecretLine reads one line from r for use as a password when stdin is
// piped. The trailing newline (and carriage return) is stripped.
func ReadSecretLine(r io.Reader) ([]byte, error) {
	reader, ok := r.(*bufio.Reader)
	if !ok {
		reader = bufio.NewReader(r)
	}

	line, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read from stdin: %w", err)
	}
	if err == io.EOF && len(line) == 0 {
		return nil, fmt.Errorf("stdin is empty")
	}

	trimmed := bytes.TrimRight(line, "\r\n")
	secret := make([]byte, len(trimmed))
	copy(secret, trimmed)
	for i := range line {
		line[i] = 0
	}
	return secret, nil
}
