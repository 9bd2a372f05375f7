package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-txml/internal/txml"
)

func newASTCommand(a *app) *cobra.Command {
	var (
		after  string
		trace  bool
		verify bool
	)

	cmd := &cobra.Command{
		Use:   "ast <file>",
		Short: "Print the syntax tree of a .txml file as JSON",
		Long: `Parses a .txml file and prints its tree as JSON. With --after, the
transform passes up to and including the named one run first.

Passes: mergeExpr, import, include, importSjs, slot, template, block, for, if`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, source, err := parseFile(args[0])
			if err != nil {
				if source != "" {
					a.printer().Print(err, source)
					return errReported
				}
				return err
			}

			if after != "" {
				passes, err := txml.PassesThrough(after)
				if err != nil {
					return err
				}
				cfg := txml.PassConfig{Verify: verify, Dump: a.stderr}
				if trace {
					cfg.DumpAfter = "*"
				}
				if err := txml.RunPasses(root, a.cfg.Options(), passes, cfg); err != nil {
					a.printer().Print(err, source)
					return errReported
				}
			}

			return txml.FprintJSON(a.stdout, root)
		},
	}

	cmd.Flags().StringVar(&after, "after", "", "Run transform passes through this one before printing")
	cmd.Flags().BoolVar(&trace, "trace", false, "Dump the tree to stderr after every pass")
	cmd.Flags().BoolVar(&verify, "verify", false, "Check tree invariants after every pass")

	return cmd
}

// parseFile reads and parses path. source is returned whenever the file was
// read, so parse errors can be shown in context.
func parseFile(path string) (root *txml.Root, source string, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	source = string(data)
	root, err = txml.Parse(filepath.Base(path), source)
	return root, source, err
}
