package utils

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"strings"
)

// GetUsername returns the login name of the current user, falling back to
// $USER when the user database cannot be read.
func GetUsername() (string, error) {
	u, err := user.Current()
	if err == nil && u.Username != "" {
		return u.Username, nil
	}
	if name := os.Getenv("USER"); name != "" {
		return name, nil
	}
	if err == nil {
		err = errors.New("empty user name")
	}
	return "", fmt.Errorf("cannot determine current user: %w", err)
}

// GetHostname returns the host name without its domain part.
func GetHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	if i := strings.IndexByte(hostname, '.'); i > 0 {
		hostname = hostname[:i]
	}
	return hostname, nil
}
