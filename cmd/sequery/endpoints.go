package main

import (
	"fmt"
	"strings"

	stackexchange "github.com/jamesprial/go-stackexchange-api-wrapper"
	"github.com/spf13/cobra"
)

func endpointsSubcommand() *cobra.Command {
	return &cobra.Command{
		Use:   "endpoints",
		Short: "List the declared endpoints and their children",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range stackexchange.Templates() {
				f, err := stackexchange.Template(name)
				if err != nil {
					return err
				}
				minArgs, maxArgs := f.ArgBounds()
				line := fmt.Sprintf("%-10s %-12s args %d..%d", name, f.Segment(), minArgs, maxArgs)
				if children := f.Children(); len(children) > 0 {
					line += "  children: " + strings.Join(children, ", ")
				}
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
