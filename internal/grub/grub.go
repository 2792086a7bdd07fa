// Package grub discovers boot entries from the GRUB bootloader's generated
// configuration file and resolves the saved default entry through the
// grub-editenv tool.
package grub

import (
	"context"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// The configuration file path used when no override is configured
const DefaultConfigPath = "/boot/grub/grub.cfg"

// The system tools used for reading and writing the saved default entry
const (
	EnvTool        = "grub-editenv"
	SetDefaultTool = "grub-set-default"
)

// Matches a menu entry declaration and captures its single-quoted title
var menuEntryPattern = regexp.MustCompile(`menuentry '([^']+)'`)

// Source lists GRUB boot entries and resolves the saved default. Discovery
// never fails hard: any problem yields an empty result and a log entry, so
// inventory listing stays usable on systems without a generated GRUB
// configuration.
type Source struct {
	configPath string
	runner     process.Runner
	logger     *slog.Logger
}

// NewSource creates a GRUB entry source reading the given configuration file.
// A nil logger falls back to slog.Default().
func NewSource(configPath string, runner process.Runner, logger *slog.Logger) *Source {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Source{configPath: configPath, runner: runner, logger: logger}
}

// Lists the GRUB menu entries in file order. The entry identifier is the
// zero-based ordinal position among the matched menu entry declarations.
func (s *Source) Entries(ctx context.Context) []boot.Entry {
	data, err := os.ReadFile(s.configPath)
	if err != nil {
		s.logger.Error("failed to read GRUB configuration", "path", s.configPath, "error", err)
		return []boot.Entry{}
	}

	entries := ParseMenuEntries(string(data))
	s.logger.Info("fetched GRUB entries", "count", len(entries), "path", s.configPath)
	return entries
}

// Extracts the quoted menu entry titles from GRUB configuration text, one
// entry per matching line, in file order
func ParseMenuEntries(config string) []boot.Entry {
	entries := []boot.Entry{}
	for _, line := range strings.Split(config, "\n") {
		if groups := menuEntryPattern.FindStringSubmatch(line); groups != nil {
			entries = append(entries, boot.Entry{
				ID:          boot.GRUBID(len(entries)),
				DisplayName: groups[1],
			})
		}
	}
	return entries
}

// CurrentDefault returns the value of the saved_entry assignment from the
// GRUB environment block, or false when no default is known. The value is
// returned verbatim; callers compare it against entry identifiers.
func (s *Source) CurrentDefault(ctx context.Context) (string, bool) {
	output, err := process.CaptureOutput(ctx, s.runner, []string{EnvTool, "list"})
	if err != nil {
		s.logger.Error("could not read default GRUB entry", "error", err)
		return "", false
	}
	return ParseSavedEntry(output)
}

// Scans environment block output for the saved_entry assignment
func ParseSavedEntry(output string) (string, bool) {
	for _, line := range strings.Split(output, "\n") {
		if strings.HasPrefix(line, "saved_entry=") {
			return strings.TrimPrefix(line, "saved_entry="), true
		}
	}
	return "", false
}

// SetDefaultArgs builds the command that persists the default menu entry
func SetDefaultArgs(ordinal string) []string {
	return []string{SetDefaultTool, ordinal}
}
