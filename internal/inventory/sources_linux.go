package inventory

import (
	"log/slog"

	"github.com/Willfa-alt/Boot-Controller/internal/grub"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
	"github.com/Willfa-alt/Boot-Controller/internal/uefi"
)

// HostSources returns the entry sources for the host platform: UEFI NVRAM
// variables first, then the GRUB menu. An empty config path selects the
// standard GRUB config location.
func HostSources(runner process.Runner, grubConfigPath string, logger *slog.Logger) []Source {
	return []Source{
		uefi.NewSource(runner, logger),
		grub.NewSource(grubConfigPath, runner, logger),
	}
}
