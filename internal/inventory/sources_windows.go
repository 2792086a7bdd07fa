package inventory

import (
	"log/slog"

	"github.com/Willfa-alt/Boot-Controller/internal/bcd"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// HostSources returns the entry sources for the host platform. Windows boot
// entries live in the BCD store; the config path parameter exists for parity
// with other platforms and is unused here.
func HostSources(runner process.Runner, grubConfigPath string, logger *slog.Logger) []Source {
	return []Source{
		bcd.NewSource(runner, logger),
	}
}
