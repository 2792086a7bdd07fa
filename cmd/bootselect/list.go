package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/Willfa-alt/Boot-Controller/internal/uefi"
	"github.com/Willfa-alt/Boot-Controller/internal/ui"
)

var defaultMarker = color.New(color.FgGreen, color.Bold).Sprint("✅")

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print the discovered boot entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.operationContext(cmd.Context())
			defer cancel()
			out := cmd.OutOrStdout()

			// Surface the pending one-time target and the firmware boot order on UEFI systems
			if enabled, err := uefi.IsUEFIEnabled(ctx, a.runner); err == nil && enabled {
				status, err := uefi.NewSource(a.runner, a.logger).ReadStatus(ctx)
				if err != nil {
					a.logger.Debug("failed to read the firmware boot state", "error", err)
				} else {
					if status.BootNext != "" {
						fmt.Fprintf(out, "BootNext: Boot%s\n", status.BootNext)
					}
					if len(status.Order) > 0 {
						fmt.Fprintf(out, "BootOrder: %s\n", status.Order)
					}
				}
			}

			entries := a.inventory(ctx)
			if len(entries) == 0 {
				fmt.Fprintln(out, "No boot entries were discovered.")
				return nil
			}

			fmt.Fprintln(out, "Detected the following boot entries:")
			for _, entry := range entries {
				if entry.IsDefault {
					fmt.Fprintf(out, "- %s %s\n", ui.EntryLabel(entry), defaultMarker)
				} else {
					fmt.Fprintf(out, "- %s\n", ui.EntryLabel(entry))
				}
			}
			return nil
		},
	}
}
