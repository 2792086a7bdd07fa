package doctor

import (
	"fmt"

	"github.com/Willfa-alt/Boot-Controller/internal/bcd"
	"github.com/Willfa-alt/Boot-Controller/internal/elevate"
	"github.com/Willfa-alt/Boot-Controller/internal/uefi"
)

const (
	checkNameElevation = "Elevation"

	varStoreRecommendation = "Confirm that Windows reports a UEFI firmware type (systeminfo lists BIOS Mode: UEFI)."
)

var isElevatedFunc = elevate.IsElevated

// The external tools our operations shell out to on Windows.
func requiredTools() []string {
	return append(uefi.RequiredTools(), bcd.Tool)
}

func toolRecommendation(tool string) string {
	return fmt.Sprintf("%s ships with Windows; make sure it is on PATH.", tool)
}

// Reports whether we are running from an elevated terminal. bcdedit refuses to
// enumerate the BCD store without elevation, so boot entry listings come up
// empty in a regular terminal. The grubConfigPath parameter only matters on
// Linux and is accepted here for call-site parity.
func CheckBootSources(grubConfigPath string) []Result {
	var results []Result
	if !isElevatedFunc() {
		return append(results, Result{
			Status:         StatusWarn,
			CheckName:      checkNameElevation,
			Message:        "not running from an elevated terminal",
			Recommendation: "Start the terminal with \"Run as administrator\" so the BCD store can be enumerated.",
		})
	}
	return append(results, Result{
		Status:    StatusOK,
		CheckName: checkNameElevation,
		Message:   "running from an elevated terminal",
	})
}
