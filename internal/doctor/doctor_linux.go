package doctor

import (
	"fmt"
	"os"

	"github.com/Willfa-alt/Boot-Controller/internal/grub"
	"github.com/Willfa-alt/Boot-Controller/internal/uefi"
)

const (
	checkNameGRUB = "GRUB"

	varStoreRecommendation = "Mount efivarfs with: mount -t efivarfs efivarfs /sys/firmware/efi/efivars"
)

// The external tools our operations shell out to on Linux.
func requiredTools() []string {
	return append(uefi.RequiredTools(), grub.EnvTool, grub.SetDefaultTool)
}

func toolRecommendation(tool string) string {
	switch tool {
	case uefi.Tool:
		return "Install the efibootmgr package from your distribution."
	case grub.EnvTool, grub.SetDefaultTool:
		return "Install the GRUB 2 utilities (grub2-tools or grub-common) from your distribution."
	default:
		return fmt.Sprintf("Install %s and make sure it is on PATH.", tool)
	}
}

// Reports whether the GRUB configuration file can be read. A missing file is a
// warning rather than a failure, since systems booting straight from UEFI may
// not use GRUB at all.
func CheckBootSources(grubConfigPath string) []Result {
	var results []Result
	file, err := os.Open(grubConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return append(results, Result{
				Status:         StatusWarn,
				CheckName:      checkNameGRUB,
				Message:        fmt.Sprintf("no GRUB configuration at %s", grubConfigPath),
				Recommendation: "GRUB menu entries will be missing from listings. Set grub.config_path if the file lives elsewhere.",
			})
		}
		return append(results, Result{
			Status:         StatusFail,
			CheckName:      checkNameGRUB,
			Message:        fmt.Sprintf("failed to read %s: %v", grubConfigPath, err),
			Recommendation: "Grant read access to the file, or run bootselect as root when listing entries.",
		})
	}
	file.Close()
	return append(results, Result{
		Status:    StatusOK,
		CheckName: checkNameGRUB,
		Message:   fmt.Sprintf("the GRUB configuration at %s is readable", grubConfigPath),
	})
}
