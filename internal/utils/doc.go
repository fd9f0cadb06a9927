// Package utils provides shared helpers for the pwmn command line.
//
// # Filesystem Utilities
//
//   - ExpandHome: expands a leading ~ in configured paths
//   - DirExists: reports whether a path is an existing directory
//
// # System Utilities
//
//   - GetUsername: returns the current system username, recorded in audit entries
//   - GetHostname: returns the short host name, recorded in audit entries
//
// # String Utilities
//
//   - SplitFields: splits a shell line into words, honouring quotes
//
// # Terminal and I/O Utilities
//
// Password input never echoes and never comes from flags:
//   - ReadPassphrase: reads from a terminal without echo
//   - ReadPassphraseOrLine: ReadPassphrase, or one line of piped stdin
//   - ReadSecretLine: reads one line from a non-terminal reader
//   - ReadNewPassphrase: asks twice and checks both entries match
//   - StdinReader: the buffered stdin shared with the interactive shell
package utils
