// Package doctor inspects the host for the conditions bootselect depends on,
// covering firmware mode, variable store access, external tools and the
// configuration file.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/Willfa-alt/Boot-Controller/internal/config"
	"github.com/Willfa-alt/Boot-Controller/internal/process"
	"github.com/Willfa-alt/Boot-Controller/internal/uefi"
)

var (
	isUEFIEnabledFunc             = uefi.IsUEFIEnabled
	isVariableStoreAccessibleFunc = uefi.IsVariableStoreAccessible
	lookPathFunc                  = exec.LookPath
)

// Status classifies the outcome of a single health check.
type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Result describes the outcome of a single health check.
type Result struct {
	Status         Status
	CheckName      string
	Message        string
	Recommendation string
}

const (
	checkNameFirmware = "Firmware"
	checkNameVarStore = "VarStore"
	checkNameTools    = "Tools"
	checkNameConfig   = "Config"
)

// Reports whether the operating system was booted in UEFI mode and whether the
// firmware variable store is reachable. A legacy BIOS boot is a warning rather
// than a failure, since bootloader-level operations still work without UEFI.
func CheckFirmware(ctx context.Context, runner process.Runner) []Result {
	var results []Result

	enabled, err := isUEFIEnabledFunc(ctx, runner)
	if err != nil {
		return append(results, Result{
			Status:         StatusFail,
			CheckName:      checkNameFirmware,
			Message:        fmt.Sprintf("failed to determine the firmware mode: %v", err),
			Recommendation: "Verify that the tools listed under Tools are installed and on PATH.",
		})
	}
	if !enabled {
		return append(results, Result{
			Status:         StatusWarn,
			CheckName:      checkNameFirmware,
			Message:        "the operating system was booted in legacy BIOS mode",
			Recommendation: "One-time boot and firmware boot order changes require a UEFI boot.",
		})
	}
	results = append(results, Result{
		Status:    StatusOK,
		CheckName: checkNameFirmware,
		Message:   "the operating system was booted in UEFI mode",
	})

	accessible, err := isVariableStoreAccessibleFunc(ctx, runner)
	switch {
	case err != nil:
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      checkNameVarStore,
			Message:        fmt.Sprintf("failed to inspect the UEFI variable store: %v", err),
			Recommendation: varStoreRecommendation,
		})
	case !accessible:
		results = append(results, Result{
			Status:         StatusFail,
			CheckName:      checkNameVarStore,
			Message:        "the UEFI variable store is not accessible",
			Recommendation: varStoreRecommendation,
		})
	default:
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: checkNameVarStore,
			Message:   "the UEFI variable store is accessible",
		})
	}

	return results
}

// Verifies that the external tools we shell out to are present on PATH.
func CheckTools() []Result {
	var results []Result
	for _, tool := range requiredTools() {
		if _, err := lookPathFunc(tool); err != nil {
			results = append(results, Result{
				Status:         StatusFail,
				CheckName:      checkNameTools,
				Message:        fmt.Sprintf("%s was not found on PATH", tool),
				Recommendation: toolRecommendation(tool),
			})
			continue
		}
		results = append(results, Result{
			Status:    StatusOK,
			CheckName: checkNameTools,
			Message:   fmt.Sprintf("%s is available", tool),
		})
	}
	return results
}

// Validates the configuration file at the supplied path. A missing file is
// fine, since the built-in defaults apply in that case.
func CheckConfig(path string) []Result {
	var results []Result
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return append(results, Result{
				Status:    StatusOK,
				CheckName: checkNameConfig,
				Message:   fmt.Sprintf("no configuration file at %s, using the built-in defaults", path),
			})
		}
		return append(results, Result{
			Status:         StatusFail,
			CheckName:      checkNameConfig,
			Message:        fmt.Sprintf("failed to inspect %s: %v", path, err),
			Recommendation: "Fix the file permissions, or remove the file to fall back to the built-in defaults.",
		})
	}
	if _, err := config.Load(path); err != nil {
		return append(results, Result{
			Status:         StatusFail,
			CheckName:      checkNameConfig,
			Message:        fmt.Sprintf("failed to load %s: %v", path, err),
			Recommendation: "Correct the configuration file, or remove it to fall back to the built-in defaults.",
		})
	}
	return append(results, Result{
		Status:    StatusOK,
		CheckName: checkNameConfig,
		Message:   fmt.Sprintf("the configuration at %s is valid", path),
	})
}
