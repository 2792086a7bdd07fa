package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Willfa-alt/Boot-Controller/internal/boot"
	"github.com/Willfa-alt/Boot-Controller/internal/uefi"
)

func newOrderCmd(a *app) *cobra.Command {
	command := &cobra.Command{
		Use:   "order",
		Short: "Show or rewrite the UEFI boot order",

		Example: strings.Join([]string{
			"  bootselect order                       Prints the current firmware boot order",
			"  bootselect order --set 0003,0001,0000  Rewrites the boot order to the given sequence",
		}, "\n"),
	}

	set := command.Flags().String("set", "", "Comma-separated boot numbers for the new boot order (for example 0003,0001,0000)")

	command.RunE = func(cmd *cobra.Command, args []string) error {
		ctx, cancel := a.operationContext(cmd.Context())
		defer cancel()
		out := cmd.OutOrStdout()

		if *set == "" {
			source := uefi.NewSource(a.runner, a.logger)
			status, err := source.ReadStatus(ctx)
			if err != nil {
				return err
			}
			if status.BootNext != "" {
				fmt.Fprintf(out, "BootNext: Boot%s\n", status.BootNext)
			}
			fmt.Fprintf(out, "BootOrder: %s\n", status.Order)

			// Annotate each boot number with its entry name where we know it
			names := make(map[string]string)
			for _, entry := range source.Entries(ctx) {
				names[entry.ID.Value] = entry.DisplayName
			}
			for _, bootnum := range status.Order {
				if name, ok := names[bootnum]; ok {
					fmt.Fprintf(out, "- Boot%s  %s\n", bootnum, name)
				} else {
					fmt.Fprintf(out, "- Boot%s\n", bootnum)
				}
			}
			return nil
		}

		order := parseOrderFlag(*set)
		if len(order) == 0 {
			return fmt.Errorf("the --set value must list at least one boot number")
		}
		if err := a.engine.SetOrder(ctx, order); err != nil {
			return a.finish(err)
		}
		fmt.Fprintf(out, "Boot order updated to %s.\n", order)
		return nil
	}

	return command
}

// Splits the comma-separated boot number list, discarding surrounding
// whitespace and empty elements
func parseOrderFlag(value string) boot.Order {
	var order boot.Order
	for _, element := range strings.Split(value, ",") {
		element = strings.TrimSpace(element)
		if element != "" {
			order = append(order, element)
		}
	}
	return order
}
