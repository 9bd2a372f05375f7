package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/grindlemire/go-txml/internal/build"
)

type buildFlags struct {
	outExt  string
	jobs    int
	verbose bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outExt, "out-ext", "o", "", "Extension of generated files (default from config, .js)")
	cmd.Flags().IntVarP(&f.jobs, "jobs", "j", 0, "Files compiled concurrently (default from config, one per CPU)")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "Verbose output")
}

// options merges the flags over the configuration.
func (f *buildFlags) options(a *app, write bool) build.Options {
	opts := build.Options{
		Compile: a.cfg.Options(),
		OutExt:  a.cfg.Build.OutExt,
		Jobs:    a.cfg.Build.Jobs,
		Write:   write,
	}
	if f.outExt != "" {
		opts.OutExt = f.outExt
	}
	if f.jobs != 0 {
		opts.Jobs = f.jobs
	}
	return opts
}

func newCompileCommand(a *app) *cobra.Command {
	var (
		flags  buildFlags
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "compile [path...]",
		Short: "Generate JS modules from .txml files",
		Long: `Compiles .txml files into JS modules written next to their sources.
Paths may be files, directories or recursive patterns such as ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(a, !stdout)
			files, err := collect(args)
			if err != nil {
				return err
			}
			if flags.verbose {
				fmt.Fprintf(a.stdout, "Found %d .txml file(s)\n", len(files))
			}

			results, err := build.Run(cmd.Context(), files, opts)
			if err != nil {
				return err
			}
			for _, r := range results {
				switch {
				case r.Err != nil:
					a.printer().Print(r.Err, r.Source)
				case stdout:
					fmt.Fprint(a.stdout, r.Code)
				case flags.verbose:
					fmt.Fprintf(a.stdout, "Compiled %s -> %s (%s)\n", r.Input, r.Output, r.Duration)
				}
			}
			return report(a, results)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&stdout, "stdout", false, "Print generated modules instead of writing files")

	return cmd
}

// collect resolves command line paths, defaulting to the current directory.
func collect(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	files, err := build.Collect(paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("no .txml files found")
	}
	return files, nil
}

// report prints the batch summary and converts failures to an error.
func report(a *app, results []build.Result) error {
	failed := build.Failed(results)
	if failed == 0 {
		return nil
	}
	a.printer().Summary(failed, len(results))
	return errReported
}
