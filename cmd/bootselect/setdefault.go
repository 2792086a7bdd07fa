package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Willfa-alt/Boot-Controller/internal/ui"
)

func newSetDefaultCmd(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "set-default [pattern]",
		Short: "Make the selected entry its store's persistent default",
		Args:  cobra.MaximumNArgs(1),

		Example: strings.Join([]string{
			"  bootselect set-default ubuntu  Makes the Ubuntu entry the persistent default",
			"  bootselect set-default         Choose the new default interactively",
		}, "\n"),
	}

	injectPatternUsage(command)

	command.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := a.operationContext(cmd.Context())
		defer cancel()
		out := cmd.OutOrStdout()

		pattern := ""
		if len(args) > 0 {
			pattern = args[0]
		}

		entry, err := a.selectEntry(ctx, pattern, "Make which entry the default?")
		if err != nil {
			return a.finish(err)
		}

		if err := a.engine.SetDefault(ctx, entry); err != nil {
			return a.finish(err)
		}
		fmt.Fprintf(out, "Default boot entry set to %s.\n", ui.EntryLabel(entry))
		return nil
	}

	return command
}
