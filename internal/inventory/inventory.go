// Package inventory composes the per-store entry sources into a single
// ordered catalog of boot entries with stable identifiers.
package inventory

import (
	"context"
	"log/slog"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
)

// Source lists the boot entries of one backing store. Implementations never
// fail hard: discovery problems yield an empty result.
type Source interface {
	Entries(ctx context.Context) []boot.Entry
}

// DefaultSource is a Source whose backing store also tracks a default entry.
// The resolved value is compared by string equality against entry identifier
// values, verbatim and with no normalization.
type DefaultSource interface {
	Source
	CurrentDefault(ctx context.Context) (string, bool)
}

// Builder assembles the boot entry catalog from an ordered list of sources
type Builder struct {
	sources []Source
	logger  *slog.Logger
}

// NewBuilder creates a Builder over the given sources, which are consulted
// in order. A nil logger falls back to slog.Default().
func NewBuilder(logger *slog.Logger, sources ...Source) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{sources: sources, logger: logger}
}

// Build produces the boot entry catalog. It performs no mutation and no
// privileged calls, is deterministic given the same source outputs, and may
// be repeated freely to refresh state after a mutating operation.
//
// Entries appear in source order. Each entry is annotated with whether it is
// its store's current default, and duplicate identifiers within a store are
// discarded so the catalog never contains two entries with the same id.
func (b *Builder) Build(ctx context.Context) []boot.Entry {
	catalog := []boot.Entry{}
	seen := map[boot.ID]bool{}

	for _, source := range b.sources {
		entries := source.Entries(ctx)

		// Resolve the store's default once per source, not once per entry
		defaultValue := ""
		hasDefault := false
		if resolver, ok := source.(DefaultSource); ok {
			defaultValue, hasDefault = resolver.CurrentDefault(ctx)
		}

		for _, entry := range entries {
			if seen[entry.ID] {
				b.logger.Warn("discarding duplicate boot entry", "id", entry.ID.String(), "name", entry.DisplayName)
				continue
			}
			seen[entry.ID] = true

			entry.IsDefault = hasDefault && entry.ID.Value == defaultValue
			catalog = append(catalog, entry)
		}
	}

	return catalog
}
