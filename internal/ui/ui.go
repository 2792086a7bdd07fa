// Package ui implements the interactive collaborators the engine prompts
// through: credential input, reboot confirmation and boot entry selection,
// rendered with charmbracelet/huh.
package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/engine"
)

var (
	runFormFunc    = func(form *huh.Form) error { return form.Run() }
	isTerminalFunc = IsInteractive
)

// Reports whether stdin and stdout are both interactive terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Renders the store-qualified label used in listings and pickers: UEFI entries
// as "Name (Boot0001)", GRUB entries as "Name (GRUB2)", and BCD entries by
// their description alone, since the description already identifies them.
func EntryLabel(entry boot.Entry) string {
	switch entry.ID.Store {
	case boot.UEFI:
		return fmt.Sprintf("%s (Boot%s)", entry.DisplayName, entry.ID.Value)
	case boot.GRUB:
		return fmt.Sprintf("%s (GRUB%s)", entry.DisplayName, entry.ID.Value)
	default:
		return entry.DisplayName
	}
}

// Prompter collects the elevation credential from the operator. It satisfies
// the engine's CredentialPrompter interface.
type Prompter struct{}

// Creates the interactive credential prompter
func NewPrompter() *Prompter {
	return &Prompter{}
}

// Asks for the elevation password with echo disabled. Aborting the prompt is
// a cancellation, not a failure.
func (p *Prompter) Password(ctx context.Context) (string, error) {
	if !isTerminalFunc() {
		return "", errors.New("an interactive terminal is required to prompt for the password")
	}

	var password string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(passwordPromptTitle).
				Value(&password).
				EchoMode(huh.EchoModePassword),
		),
	)
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", engine.ErrCancelled
		}
		return "", err
	}
	return password, nil
}

// Tells the operator the password was rejected before the engine prompts again
func (p *Prompter) AuthenticationFailed() {
	fmt.Fprintln(os.Stderr, color.RedString(authFailedMessage))
}

// Confirmer asks for explicit approval before the machine is restarted. It
// satisfies the engine's Confirmer interface.
type Confirmer struct{}

// Creates the interactive reboot confirmer
func NewConfirmer() *Confirmer {
	return &Confirmer{}
}

// Asks whether to reboot into the chosen entry now. Aborting the prompt
// counts as declining.
func (c *Confirmer) ConfirmReboot(ctx context.Context, entry boot.Entry) (bool, error) {
	if !isTerminalFunc() {
		return false, errors.New("an interactive terminal is required to confirm the reboot")
	}

	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Reboot into %s now?", entry.DisplayName)).
				Value(&confirmed),
		),
	)
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}

// Presents the discovered entries and returns the one the operator picked.
// Aborting the selection is a cancellation, not a failure.
func SelectEntry(title string, entries []boot.Entry) (boot.Entry, error) {
	if len(entries) == 0 {
		return boot.Entry{}, errors.New("there are no boot entries to choose from")
	}
	if !isTerminalFunc() {
		return boot.Entry{}, errors.New("an interactive terminal is required to choose a boot entry")
	}

	options := make([]huh.Option[int], len(entries))
	for i, entry := range entries {
		options[i] = huh.NewOption(EntryLabel(entry), i)
	}

	var picked int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(options...).
				Value(&picked),
		),
	)
	if err := runFormFunc(form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return boot.Entry{}, engine.ErrCancelled
		}
		return boot.Entry{}, err
	}
	return entries[picked], nil
}
