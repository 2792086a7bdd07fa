package uefi

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/Willfa-alt/Boot-Controller/internal/process"
)

// The sysfs path whose presence indicates the system booted in UEFI mode,
// and the mount table line that indicates UEFI variables are writable.
// Package variables so tests can redirect them.
var (
	efiSysfsPath     = "/sys/firmware/efi"
	efivarfsMountPin = "efivarfs on /sys/firmware/efi/efivars"
)

// Determines whether the operating system has been booted in UEFI mode
func IsUEFIEnabled(ctx context.Context, runner process.Runner) (bool, error) {

	// Determine whether `/sys/firmware/efi` exists
	_, err := os.Stat(efiSysfsPath)
	notExist := errors.Is(err, os.ErrNotExist)

	// If the query failed then propagate the error
	if err != nil && !notExist {
		return false, err
	}
	return !notExist, nil
}

// Determines whether the efivarfs filesystem is mounted, which is required
// for writes to UEFI NVRAM variables to succeed
func IsVariableStoreAccessible(ctx context.Context, runner process.Runner) (bool, error) {

	// Scan the mount table for the efivarfs mount point
	output, err := process.CaptureOutput(ctx, runner, []string{"mount"})
	if err != nil {
		return false, err
	}
	return strings.Contains(output, efivarfsMountPin), nil
}

// Returns the list of system tools that we require in order to interact with UEFI NVRAM variables
func RequiredTools() []string {
	return []string{Tool, "mount"}
}
