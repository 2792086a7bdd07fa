package elevate

import (
	"io"

	"github.com/Willfa-alt/Boot-Controller/internal/credential"
	"golang.org/x/sys/windows"
)

// Determines whether the current process is running with elevated privileges
func IsElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}

// The elevation invocation prefixed to privileged commands
func elevationPrefix() []string {
	return []string{"runas", "/user:Administrator"}
}

// runas prompts on its own console rather than reading a secret from stdin,
// so no stdin channel is wired up
func secretStdin(secret *credential.Secret) io.Reader {
	return nil
}
