// Package bcd discovers boot entries from the Windows Boot Configuration
// Data store by scraping the bcdedit listing output.
package bcd

import (
	"context"
	"log/slog"
	"strings"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// The boot configuration editor used for all store queries and mutations
const Tool = "bcdedit"

// Source lists boot entries from the BCD store. Discovery never fails hard:
// when the tool is missing or exits non-zero the result is empty and the
// failure is logged.
type Source struct {
	runner process.Runner
	logger *slog.Logger
}

// NewSource creates a BCD entry source. A nil logger falls back to
// slog.Default().
func NewSource(runner process.Runner, logger *slog.Logger) *Source {
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{runner: runner, logger: logger}
}

// Lists the boot entries recorded in the BCD store
func (s *Source) Entries(ctx context.Context) []boot.Entry {

	// Run `bcdedit` to print the store listing
	output, err := process.CaptureOutput(ctx, s.runner, []string{Tool})
	if err != nil {
		s.logger.Error("failed to list BCD boot entries", "error", err)
		return []boot.Entry{}
	}

	entries := ParseEntries(output)
	s.logger.Info("fetched BCD entries", "count", len(entries))
	return entries
}

// Parses entry descriptions out of a bcdedit listing. Each line containing
// a description key is split at the first colon and the remainder becomes
// the entry name; lines without a separator are skipped.
func ParseEntries(output string) []boot.Entry {
	entries := []boot.Entry{}
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(strings.ToLower(line), "description") {
			continue
		}
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) < 2 {
			continue
		}
		name := strings.TrimSpace(parts[1])
		entries = append(entries, boot.Entry{
			ID:          boot.BCDID(name),
			DisplayName: name,
		})
	}
	return entries
}

// CurrentDefault resolves the store's default entry identifier. The second
// return value reports whether a default could be determined; resolution
// failures are logged rather than propagated.
func (s *Source) CurrentDefault(ctx context.Context) (string, bool) {
	output, err := process.CaptureOutput(ctx, s.runner, []string{Tool})
	if err != nil {
		s.logger.Error("failed to read BCD default entry", "error", err)
		return "", false
	}
	return ParseDefault(output)
}

// Parses the default entry identifier out of a bcdedit listing. The first
// line containing a default key and a colon separator wins; the identifier
// is returned verbatim with no normalization.
func ParseDefault(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if !strings.Contains(strings.ToLower(line), "default") {
			continue
		}
		parts := strings.SplitN(strings.TrimSpace(line), ":", 2)
		if len(parts) < 2 {
			continue
		}
		return strings.TrimSpace(parts[1]), true
	}
	return "", false
}

// SetDefaultArgs builds the command that sets the store's default entry
func SetDefaultArgs(identifier string) []string {
	return []string{Tool, "/default", identifier}
}
