package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCancelled reports that the user declined a confirmation or credential
// prompt. It marks a normal abandonment of the operation, not a failure.
var ErrCancelled = errors.New("cancelled by user")

// PreconditionError reports a condition that makes an operation impossible,
// detected before any privileged command was attempted
type PreconditionError struct {
	Reason string
}

func (e *PreconditionError) Error() string {
	return "precondition failed: " + e.Reason
}

// AuthError reports that a credential could not be acquired: the prompt
// collaborator failed in a way that prevents re-prompting. A secret rejected
// by the validation probe never produces an AuthError directly; it triggers
// a re-prompt and is never cached.
type AuthError struct {
	Detail string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Detail
}

// ExecError reports that a privileged command ran and exited non-zero, or
// could not be spawned. Detail carries the command's captured standard-error
// text verbatim, or a synthesized message for spawn faults.
type ExecError struct {
	Command []string
	Detail  string
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("command `%s` failed: %s", strings.Join(e.Command, " "), e.Detail)
}

// RebootError reports the dangling state of a one-time boot: the firmware
// boot target was set, but the subsequent reboot command failed, so the
// machine is still running with the target pending.
type RebootError struct {
	Detail string
}

func (e *RebootError) Error() string {
	return "boot target set, reboot not performed: " + e.Detail
}
