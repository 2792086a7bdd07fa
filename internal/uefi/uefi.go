// Package uefi discovers boot entries and firmware status from UEFI NVRAM
// variables via the efibootmgr tool, and verifies the firmware preconditions
// required before any NVRAM mutation is attempted.
package uefi

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// The firmware boot-manager tool used for all NVRAM queries and mutations
const Tool = "efibootmgr"

// Matches a boot variable line and captures the 4-hex-digit boot number,
// the optional active-flag star, and the entry label
var bootEntryPattern = regexp.MustCompile(`Boot([0-9A-Fa-f]{4})(\*)?\s+(.+)`)

// Status holds the firmware state reported alongside the boot variable
// listing: the persistent boot priority, the one-time boot target when one
// is pending, the variable booted this session, and the menu timeout.
type Status struct {
	Order       boot.Order
	BootNext    string
	BootCurrent string
	Timeout     int
}

// Source lists UEFI boot entries. Discovery never fails hard: a missing tool
// or non-zero exit yields an empty result and a log entry, so inventory
// listing stays usable on legacy-only systems.
type Source struct {
	runner process.Runner
	logger *slog.Logger
}

// NewSource creates a UEFI entry source. A nil logger falls back to
// slog.Default().
func NewSource(runner process.Runner, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{runner: runner, logger: logger}
}

// Lists the UEFI boot entries for the host machine, both active and inactive
func (s *Source) Entries(ctx context.Context) []boot.Entry {

	// Run `efibootmgr` in verbose mode to print the list of boot variables
	output, err := process.CaptureOutput(ctx, s.runner, []string{Tool, "-v"})
	if err != nil {
		s.logger.Error("failed to list UEFI boot entries", "error", err)
		return []boot.Entry{}
	}

	entries := ParseBootEntries(output)
	s.logger.Info("fetched UEFI entries", "count", len(entries))
	return entries
}

// Parses boot variable lines of the form `Boot0001* Label`. The active-flag
// star is ignored for enumeration purposes, and the verbose device path that
// follows the label after a tab is discarded.
func ParseBootEntries(output string) []boot.Entry {
	entries := []boot.Entry{}
	for _, line := range strings.Split(output, "\n") {
		if groups := bootEntryPattern.FindStringSubmatch(line); groups != nil {
			label := groups[3]
			if tab := strings.IndexByte(label, '\t'); tab >= 0 {
				label = label[:tab]
			}
			entries = append(entries, boot.Entry{
				ID:          boot.UEFIID(groups[1]),
				DisplayName: strings.TrimSpace(label),
			})
		}
	}
	return entries
}

// ReadStatus queries the firmware boot-manager state. Unlike entry listing,
// this propagates failures: mutations that depend on the current boot order
// must abort when the order cannot be read.
func (s *Source) ReadStatus(ctx context.Context) (Status, error) {
	output, err := process.CaptureOutput(ctx, s.runner, []string{Tool})
	if err != nil {
		return Status{}, fmt.Errorf("failed to query firmware boot state: %w", err)
	}
	return ParseStatus(output), nil
}

// Parses the firmware status lines emitted ahead of the boot variable listing
func ParseStatus(output string) Status {
	status := Status{}
	for _, line := range strings.Split(output, "\n") {
		switch {
		case strings.HasPrefix(line, "BootOrder:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "BootOrder:"))
			if value != "" {
				status.Order = boot.Order(strings.Split(value, ","))
			}
		case strings.HasPrefix(line, "BootNext:"):
			status.BootNext = strings.TrimSpace(strings.TrimPrefix(line, "BootNext:"))
		case strings.HasPrefix(line, "BootCurrent:"):
			status.BootCurrent = strings.TrimSpace(strings.TrimPrefix(line, "BootCurrent:"))
		case strings.HasPrefix(line, "Timeout:"):
			value := strings.TrimSpace(strings.TrimPrefix(line, "Timeout:"))
			value = strings.TrimSuffix(value, " seconds")
			if seconds, err := strconv.Atoi(value); err == nil {
				status.Timeout = seconds
			}
		}
	}
	return status
}

// BootNextArgs builds the command that sets the one-time boot target
func BootNextArgs(bootnum string) []string {
	return []string{Tool, "-n", bootnum}
}

// BootOrderArgs builds the command that writes the full boot order in one call
func BootOrderArgs(order boot.Order) []string {
	return []string{Tool, "-o", order.String()}
}
