// Package vault implements the on-disk layout of a pwmn root vault.
//
// # Layout
//
//	<root>/                          # e.g. $HOME/.pwmn
//	  .<hex(contentAddress)>/        # one per register
//	    vault.bin                    # [magic:4][version:2][salt:16][nonce:12][ciphertext:*]
//	    auth.pwmn                    # [ciphertext:*], no header
//
// The register directory name is an Argon2id hash of the lowercased register
// name under a fixed salt, so a directory listing reveals how many registers
// exist but not what they are called.
//
// # Writes
//
// Every encrypting write draws a fresh nonce and replaces vault.bin as a
// whole through a temporary file and a rename, followed by fsync of the file
// and its directory. The salt written by Allocate never changes.
//
// The auth sidecar holds a second copy of the ciphertext. It is only ever
// decrypted to check a password before a destructive operation.
package vault
