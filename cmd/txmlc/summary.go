package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-txml/internal/txml"
)

func newSummaryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary <file>",
		Short: "Print the components and control constructs a file uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, source, err := parseFile(args[0])
			if err == nil {
				err = txml.Transform(root, a.cfg.Options())
			}
			if err != nil {
				if source != "" {
					a.printer().Print(err, source)
					return errReported
				}
				return err
			}

			data, err := json.MarshalIndent(txml.Summarize(root), "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, string(data))
			return nil
		},
	}
}
