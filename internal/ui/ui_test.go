package ui

import (
	"context"
	"testing"

	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/engine"
)

func stubTerminal(t *testing.T, interactive bool) {
	t.Helper()
	orig := isTerminalFunc
	isTerminalFunc = func() bool { return interactive }
	t.Cleanup(func() { isTerminalFunc = orig })
}

func stubForm(t *testing.T, err error) *bool {
	t.Helper()
	orig := runFormFunc
	called := false
	runFormFunc = func(form *huh.Form) error {
		require.NotNil(t, form)
		called = true
		return err
	}
	t.Cleanup(func() { runFormFunc = orig })
	return &called
}

func TestEntryLabel(t *testing.T) {
	tests := []struct {
		entry    boot.Entry
		expected string
	}{
		{boot.Entry{ID: boot.UEFIID("0001"), DisplayName: "Ubuntu"}, "Ubuntu (Boot0001)"},
		{boot.Entry{ID: boot.GRUBID(2), DisplayName: "Windows"}, "Windows (GRUB2)"},
		{boot.Entry{ID: boot.BCDID("Windows 11"), DisplayName: "Windows 11"}, "Windows 11"},
	}
	for _, test := range tests {
		assert.Equal(t, test.expected, EntryLabel(test.entry))
	}
}

func TestPasswordRequiresTerminal(t *testing.T) {
	stubTerminal(t, false)

	_, err := NewPrompter().Password(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestPasswordMapsAbortToCancellation(t *testing.T) {
	stubTerminal(t, true)
	stubForm(t, huh.ErrUserAborted)

	_, err := NewPrompter().Password(context.Background())
	assert.ErrorIs(t, err, engine.ErrCancelled)
}

func TestPasswordRunsForm(t *testing.T) {
	stubTerminal(t, true)
	called := stubForm(t, nil)

	_, err := NewPrompter().Password(context.Background())
	require.NoError(t, err)
	assert.True(t, *called)
}

func TestConfirmRebootRequiresTerminal(t *testing.T) {
	stubTerminal(t, false)

	_, err := NewConfirmer().ConfirmReboot(context.Background(), boot.Entry{DisplayName: "Ubuntu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestConfirmRebootAbortDeclines(t *testing.T) {
	stubTerminal(t, true)
	stubForm(t, huh.ErrUserAborted)

	confirmed, err := NewConfirmer().ConfirmReboot(context.Background(), boot.Entry{DisplayName: "Ubuntu"})
	require.NoError(t, err)
	assert.False(t, confirmed)
}

func TestSelectEntryRejectsEmptyList(t *testing.T) {
	stubTerminal(t, true)

	_, err := SelectEntry("Choose", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no boot entries")
}

func TestSelectEntryRequiresTerminal(t *testing.T) {
	stubTerminal(t, false)

	_, err := SelectEntry("Choose", []boot.Entry{{ID: boot.UEFIID("0001"), DisplayName: "Ubuntu"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestSelectEntryMapsAbortToCancellation(t *testing.T) {
	stubTerminal(t, true)
	stubForm(t, huh.ErrUserAborted)

	_, err := SelectEntry("Choose", []boot.Entry{{ID: boot.UEFIID("0001"), DisplayName: "Ubuntu"}})
	assert.ErrorIs(t, err, engine.ErrCancelled)
}

func TestSelectEntryReturnsPickedEntry(t *testing.T) {
	stubTerminal(t, true)
	stubForm(t, nil)

	entries := []boot.Entry{
		{ID: boot.UEFIID("0001"), DisplayName: "Ubuntu"},
		{ID: boot.UEFIID("0002"), DisplayName: "Windows"},
	}
	picked, err := SelectEntry("Choose", entries)
	require.NoError(t, err)
	assert.Equal(t, entries[0], picked)
}
