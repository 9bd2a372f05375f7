package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-txml/internal/build"
)

func newCheckCommand(a *app) *cobra.Command {
	var flags buildFlags

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Check .txml files without generating code",
		Long: `Parses, transforms and generates every file without writing anything.
Useful for syntax checking in CI and editors.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := collect(args)
			if err != nil {
				return err
			}
			if flags.verbose {
				fmt.Fprintf(a.stdout, "Checking %d .txml file(s)\n", len(files))
			}

			results, err := build.Run(cmd.Context(), files, flags.options(a, false))
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					a.printer().Print(r.Err, r.Source)
				}
			}
			if err := report(a, results); err != nil {
				return err
			}

			if flags.verbose {
				fmt.Fprintf(a.stdout, "All %d file(s) passed checks\n", len(files))
			}
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
