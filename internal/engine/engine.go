// Package engine implements the mutating boot operations: one-time boot,
// persistent default, and boot order rewrite. Every operation acts on an
// entry resolved from the current inventory, acquires a validated credential
// through the session when one is needed, and surfaces failures through the
// typed error taxonomy in this package.
//
// All operations are blocking: each external command is invoked
// synchronously and the operation waits for it to exit. Callers needing
// responsiveness impose a deadline through the supplied context or offload
// the call themselves; the engine never runs concurrent privileged commands.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Willfa-alt/Boot-Controller/internal/bcd"
	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/credential"
	"github.com/Willfa-alt/Boot-Controller/internal/elevate"
	"github.com/Willfa-alt/Boot-Controller/internal/grub"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
	"github.com/Willfa-alt/Boot-Controller/internal/reboot"
	"github.com/Willfa-alt/Boot-Controller/internal/uefi"
)

// Executor runs a command with elevated privileges and classifies the
// outcome. Satisfied by *elevate.Executor.
type Executor interface {
	Run(ctx context.Context, argv []string, secret *credential.Secret) elevate.Result
	Validate(ctx context.Context, secret *credential.Secret) elevate.Result
	Elevated() bool
}

// CredentialPrompter acquires the elevation secret from the operator. A
// cancelled prompt returns an error wrapping ErrCancelled; any other error
// means prompting cannot continue.
type CredentialPrompter interface {
	Password(ctx context.Context) (string, error)

	// AuthenticationFailed informs the operator that the entered secret was
	// rejected, before the engine prompts again
	AuthenticationFailed()
}

// Confirmer asks the operator to approve the reboot that follows a one-time
// boot. Declining abandons the operation cleanly.
type Confirmer interface {
	ConfirmReboot(ctx context.Context, entry boot.Entry) (bool, error)
}

type statusReader interface {
	ReadStatus(ctx context.Context) (uefi.Status, error)
}

// Config carries the engine's collaborators
type Config struct {
	Runner   process.Runner
	Executor Executor
	Session  *credential.Session
	Prompter CredentialPrompter
	Confirm  Confirmer
	Logger   *slog.Logger
}

// Engine exposes the mutating operations against the boot inventory
type Engine struct {
	executor Executor
	session  *credential.Session
	prompter CredentialPrompter
	confirm  Confirmer
	status   statusReader
	logger   *slog.Logger

	firmwareCheck func(ctx context.Context) error
}

// New creates an Engine from its collaborators. A nil logger falls back to
// slog.Default().
func New(config Config) *Engine {
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	engine := &Engine{
		executor: config.Executor,
		session:  config.Session,
		prompter: config.Prompter,
		confirm:  config.Confirm,
		status:   uefi.NewSource(config.Runner, logger),
		logger:   logger,
	}
	engine.firmwareCheck = func(ctx context.Context) error {
		return checkFirmware(ctx, config.Runner)
	}
	return engine
}

// Verifies that the machine can have its UEFI variables written at all,
// reporting each unmet condition as a distinct precondition failure
func checkFirmware(ctx context.Context, runner process.Runner) error {
	enabled, err := uefi.IsUEFIEnabled(ctx, runner)
	if err != nil {
		return &PreconditionError{Reason: fmt.Sprintf("failed to query system UEFI status: %v", err)}
	}
	if !enabled {
		return &PreconditionError{Reason: "the operating system has not been booted in UEFI mode"}
	}

	accessible, err := uefi.IsVariableStoreAccessible(ctx, runner)
	if err != nil {
		return &PreconditionError{Reason: fmt.Sprintf("failed to check UEFI variable store access: %v", err)}
	}
	if !accessible {
		return &PreconditionError{Reason: "efivarfs is not mounted, so UEFI variables are inaccessible"}
	}
	return nil
}

// Ensures a validated credential is available for privileged commands. An
// already-elevated process needs none. Otherwise the cached session secret
// is reused; when none is cached the operator is prompted, the entered
// secret is validated with the inert probe, and only a secret that passed
// the probe is cached. A rejected secret is destroyed and re-prompted for,
// never silently reused.
func (e *Engine) ensureCredential(ctx context.Context) (*credential.Secret, error) {
	if e.executor.Elevated() {
		return nil, nil
	}
	if secret, ok := e.session.Cached(); ok {
		return secret, nil
	}

	for {
		password, err := e.prompter.Password(ctx)
		if err != nil {
			if errors.Is(err, ErrCancelled) {
				return nil, err
			}
			return nil, &AuthError{Detail: err.Error()}
		}
		if password == "" {
			e.prompter.AuthenticationFailed()
			continue
		}

		secret, err := credential.NewFromBytes([]byte(password))
		if err != nil {
			return nil, &AuthError{Detail: err.Error()}
		}

		if result := e.executor.Validate(ctx, secret); !result.OK {
			e.logger.Warn("credential validation failed", "detail", result.Detail)
			secret.Close()
			e.prompter.AuthenticationFailed()
			continue
		}

		e.session.Store(secret)
		e.logger.Info("credential validated and cached for this session")
		return secret, nil
	}
}

// OneTimeBoot sets the firmware's one-time boot target to the given entry
// and then reboots the machine. Only UEFI-backed entries are accepted: a
// GRUB ordinal or BCD description is not a valid firmware boot number, so
// entries from those stores are rejected up front. With skipReboot the
// target is set but the machine keeps running, leaving the one-time target
// pending for the next restart.
//
// A failure after the target was set but before the reboot happened is
// reported as a RebootError, distinct from a set failure: the BootNext
// variable IS set in that state.
func (e *Engine) OneTimeBoot(ctx context.Context, entry boot.Entry, skipReboot bool) error {
	if entry.ID.Store != boot.UEFI {
		return &PreconditionError{
			Reason: fmt.Sprintf("one-time boot requires a firmware entry, but %q is backed by %s", entry.DisplayName, entry.ID.Store),
		}
	}
	if err := e.firmwareCheck(ctx); err != nil {
		return err
	}

	// The reboot is the destructive part, so it alone needs confirmation
	if !skipReboot {
		confirmed, err := e.confirm.ConfirmReboot(ctx, entry)
		if err != nil {
			return err
		}
		if !confirmed {
			return ErrCancelled
		}
	}

	secret, err := e.ensureCredential(ctx)
	if err != nil {
		return err
	}

	e.logger.Info("setting one-time boot target", "target", entry.ID.String(), "name", entry.DisplayName)
	if result := e.executor.Run(ctx, uefi.BootNextArgs(entry.ID.Value), secret); !result.OK {
		return &ExecError{Command: result.Command, Detail: result.Detail}
	}

	if skipReboot {
		e.logger.Info("one-time boot target set, reboot skipped on request")
		return nil
	}

	e.logger.Info("rebooting now")
	if result := e.executor.Run(ctx, reboot.Args(), secret); !result.OK {
		return &RebootError{Detail: result.Detail}
	}
	return nil
}

// SetDefault persists the given entry as its backing store's default,
// dispatching to the store-specific mutation
func (e *Engine) SetDefault(ctx context.Context, entry boot.Entry) error {
	switch entry.ID.Store {

	case boot.GRUB:
		return e.runMutation(ctx, grub.SetDefaultArgs(entry.ID.Value))

	case boot.BCD:
		return e.runMutation(ctx, bcd.SetDefaultArgs(entry.ID.Value))

	case boot.UEFI:
		// The firmware has no single default separate from the boot order:
		// the default is whatever boots first, so move the entry to the
		// front while preserving the relative order of the rest
		current, err := e.currentOrder(ctx)
		if err != nil {
			return err
		}
		return e.runMutation(ctx, uefi.BootOrderArgs(current.MoveToFront(entry.ID.Value)))

	default:
		return &PreconditionError{Reason: fmt.Sprintf("unknown backing store %q", entry.ID.Store)}
	}
}

// SetOrder rewrites the firmware boot order. The requested order must be a
// permutation of the current one: nothing dropped, nothing duplicated,
// nothing invented.
func (e *Engine) SetOrder(ctx context.Context, order boot.Order) error {
	if err := e.firmwareCheck(ctx); err != nil {
		return err
	}

	current, err := e.currentOrder(ctx)
	if err != nil {
		return err
	}
	if !order.Permutes(current) {
		return &PreconditionError{
			Reason: fmt.Sprintf("requested order %s is not a permutation of the current order %s", order, current),
		}
	}

	return e.runMutation(ctx, uefi.BootOrderArgs(order))
}

// Reads the current firmware boot order, aborting the mutation before any
// write when the order cannot be read or is empty
func (e *Engine) currentOrder(ctx context.Context) (boot.Order, error) {
	status, err := e.status.ReadStatus(ctx)
	if err != nil {
		return nil, &PreconditionError{Reason: fmt.Sprintf("failed to read the current boot order: %v", err)}
	}
	if len(status.Order) == 0 {
		return nil, &PreconditionError{Reason: "the firmware reported an empty boot order"}
	}
	return status.Order, nil
}

// Runs one privileged mutation with the session credential
func (e *Engine) runMutation(ctx context.Context, argv []string) error {
	secret, err := e.ensureCredential(ctx)
	if err != nil {
		return err
	}

	if result := e.executor.Run(ctx, argv, secret); !result.OK {
		return &ExecError{Command: result.Command, Detail: result.Detail}
	}
	return nil
}
