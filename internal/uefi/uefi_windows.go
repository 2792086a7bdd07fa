package uefi

import (
	"context"
	"strings"

	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// Determines whether the operating system has been booted in UEFI mode
func IsUEFIEnabled(ctx context.Context, runner process.Runner) (bool, error) {

	// Use PowerShell to query the system firmware type
	output, err := process.CaptureOutput(ctx, runner, []string{
		"powershell.exe",
		"-ExecutionPolicy", "Bypass",
		"-Command", "Write-Host $env:firmware_type",
	})
	if err != nil {
		return false, err
	}

	// Determine whether the reported firmware type is legacy BIOS or UEFI
	return strings.TrimSpace(strings.ToUpper(output)) == "UEFI", nil
}

// Determines whether UEFI variables are writable. Windows exposes firmware
// variables through the boot configuration editor rather than a mount point,
// so there is no separate accessibility check to perform.
func IsVariableStoreAccessible(ctx context.Context, runner process.Runner) (bool, error) {
	return true, nil
}

// Returns the list of system tools that we require in order to interact with UEFI NVRAM variables
func RequiredTools() []string {
	return []string{"powershell.exe"}
}
