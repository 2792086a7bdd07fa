package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Willfa-alt/Boot-Controller/internal/ui"
)

func newBootCmd(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "boot [pattern]",
		Short: "Set the one-time boot target and restart into it",
		Args:  cobra.MaximumNArgs(1),

		Example: strings.Join([]string{
			"  bootselect boot windows             Selects the Windows Boot Manager and reboots into it",
			"  bootselect boot ubuntu --no-reboot  Selects the Ubuntu entry for the next manual reboot",
			"  bootselect boot                     Choose the target interactively",
		}, "\n"),
	}

	// Define the command-line flags for our command
	dryRun := command.Flags().Bool("dry-run", false, "Describe the actions that would be performed but do not make any changes to the system")
	noReboot := command.Flags().Bool("no-reboot", false, "Do not automatically reboot after setting the one-time boot target")

	injectPatternUsage(command)

	command.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := a.operationContext(cmd.Context())
		defer cancel()
		out := cmd.OutOrStdout()

		pattern := ""
		if len(args) > 0 {
			pattern = args[0]
		}

		entry, err := a.selectEntry(ctx, pattern, "Boot into which entry?")
		if err != nil {
			return a.finish(err)
		}
		if pattern != "" {
			fmt.Fprintf(out, "Found matching boot entry: \"%s\"\n", entry.DisplayName)
		}

		if *dryRun {
			if *noReboot {
				fmt.Fprintf(out, "Would set the one-time boot target to %s.\n", ui.EntryLabel(entry))
			} else {
				fmt.Fprintf(out, "Would set the one-time boot target to %s and reboot.\n", ui.EntryLabel(entry))
			}
			return nil
		}

		if err := a.engine.OneTimeBoot(ctx, entry, *noReboot); err != nil {
			return a.finish(err)
		}
		if *noReboot {
			fmt.Fprintf(out, "One-time boot target set to %s. The next reboot will use it.\n", ui.EntryLabel(entry))
		}
		return nil
	}

	return command
}
