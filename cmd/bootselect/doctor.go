package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Willfa-alt/Boot-Controller/internal/doctor"
)

const doctorCommandName = "doctor"

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   doctorCommandName,
		Short: "Check the host for the conditions bootselect depends on",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.operationContext(cmd.Context())
			defer cancel()
			out := cmd.OutOrStdout()

			var results []doctor.Result
			results = append(results, doctor.CheckFirmware(ctx, a.runner)...)
			results = append(results, doctor.CheckTools()...)
			results = append(results, doctor.CheckBootSources(a.grubConfigPath())...)
			results = append(results, doctor.CheckConfig(a.configPath)...)

			hasFail := false
			for _, result := range results {
				printResult(out, result)
				if result.Status == doctor.StatusFail {
					hasFail = true
				}
			}

			if hasFail {
				fmt.Fprintln(out, color.RedString("❌ Some checks failed. Address the items above."))
				return fmt.Errorf("doctor checks failed")
			}
			fmt.Fprintln(out, color.GreenString("✅ All systems go. bootselect is ready."))
			return nil
		},
	}
}

func printResult(out io.Writer, result doctor.Result) {
	var status string
	switch result.Status {
	case doctor.StatusOK:
		status = color.GreenString("[OK]  ")
	case doctor.StatusWarn:
		status = color.YellowString("[WARN]")
	case doctor.StatusFail:
		status = color.RedString("[FAIL]")
	}

	fmt.Fprintf(out, "%s %-10s %s\n", status, result.CheckName, result.Message)
	if result.Recommendation != "" {
		fmt.Fprintf(out, "       💡 %s\n", result.Recommendation)
	}
}
