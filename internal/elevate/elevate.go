// Package elevate runs external commands with elevated privileges, wrapping
// each invocation in the platform's elevation mechanism and classifying the
// outcome. Failures never propagate as errors past this boundary: every run
// yields a structured Result.
package elevate

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/Willfa-alt/Boot-Controller/internal/credential"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// The harmless probe used to validate a freshly entered credential before
// it is trusted for a destructive operation
var validationProbe = []string{"echo", "verified"}

// Result is the structured outcome of one privileged command invocation
type Result struct {

	// The command as requested by the caller, without the elevation prefix
	Command []string

	// The captured standard output of the command
	Output string

	// The failure detail: trimmed standard-error text for a non-zero exit,
	// or a synthesized message when the command could not be spawned.
	// Empty on success.
	Detail string

	// Whether the command ran and exited zero
	OK bool
}

// Executor runs commands through the platform elevation mechanism, feeding
// it the session credential through its expected channel
type Executor struct {
	runner   process.Runner
	logger   *slog.Logger
	elevated func() bool
}

// NewExecutor creates an Executor. A nil logger falls back to slog.Default().
func NewExecutor(runner process.Runner, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{runner: runner, logger: logger, elevated: IsElevated}
}

// Elevated reports whether the current process already runs with elevated
// privileges, in which case Run spawns commands directly and no credential
// is needed
func (e *Executor) Elevated() bool {
	return e.elevated()
}

// Run executes argv with elevated privileges, blocking until the command
// exits. When the current process already runs elevated the command is
// spawned directly and the secret is not consulted; otherwise the platform
// elevation prefix is applied and the secret is supplied through the
// mechanism's input channel. A nil secret is only valid when already
// elevated or when the mechanism takes no stdin secret.
func (e *Executor) Run(ctx context.Context, argv []string, secret *credential.Secret) Result {
	command := argv
	var stdin io.Reader
	if !e.elevated() {
		command = append(elevationPrefix(), argv...)
		stdin = secretStdin(secret)
	}

	e.logger.Info("running privileged command", "command", strings.Join(argv, " "))
	output, err := e.runner.Run(ctx, command, stdin)

	// Classify the outcome: a non-zero exit surfaces the trimmed stderr as
	// the failure detail, a spawn fault synthesizes one
	if err != nil {
		detail := strings.TrimSpace(output.Stderr)
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			if detail == "" {
				detail = fmt.Sprintf("exited with code %d", exitError.ProcessState.ExitCode())
			}
		} else {
			detail = fmt.Sprintf("failed to run command: %v", err)
		}

		e.logger.Error("privileged command failed", "command", strings.Join(argv, " "), "detail", detail)
		return Result{Command: argv, Output: output.Stdout, Detail: detail}
	}

	e.logger.Info("privileged command succeeded", "command", strings.Join(argv, " "))
	return Result{Command: argv, Output: output.Stdout, OK: true}
}

// Validate runs the inert probe command with the supplied secret. Only a
// successful probe makes a credential safe to cache; a rejected secret must
// never be reused for a later privileged operation.
func (e *Executor) Validate(ctx context.Context, secret *credential.Secret) Result {
	return e.Run(ctx, validationProbe, secret)
}
