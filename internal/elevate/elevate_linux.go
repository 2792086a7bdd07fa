package elevate

import (
	"bytes"
	"io"
	"strings"

	"github.com/Willfa-alt/Boot-Controller/internal/credential"
	"golang.org/x/sys/unix"
)

// Determines whether the current process is running with elevated privileges
func IsElevated() bool {
	return unix.Geteuid() == 0
}

// The elevation invocation prefixed to privileged commands. `-S` makes sudo
// read the password from stdin and `-p ''` suppresses its prompt so that
// captured stderr holds only the command's own output.
func elevationPrefix() []string {
	return []string{"sudo", "-S", "-p", "", "--"}
}

// Feeds the secret to sudo on stdin, newline-terminated. The reader streams
// straight out of the locked buffer without copying the secret onto the heap.
func secretStdin(secret *credential.Secret) io.Reader {
	if secret == nil {
		return nil
	}
	return io.MultiReader(bytes.NewReader(secret.Bytes()), strings.NewReader("\n"))
}
