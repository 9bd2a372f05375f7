// Package main provides txmlc, the compiler for .txml templates.
//
// Usage:
//
//	txmlc compile [path...]   Generate JS modules from .txml files
//	txmlc check [path...]     Check .txml files without generating
//	txmlc watch [dir...]      Recompile on change, optionally with live reload
//	txmlc ast <file>          Print the syntax tree as JSON
//	txmlc summary <file>      Print the components and features a file uses
//	txmlc init [dir]          Write a default txml.yaml
//
// Examples:
//
//	txmlc compile ./...            Recursively compile all .txml files
//	txmlc compile ./pages          Compile the files of a directory
//	txmlc check -v page.txml       Check a single file
//	txmlc watch --serve :35729 .   Watch and notify browsers on change
//	txmlc ast --after if page.txml Dump the tree after the if pass
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/grindlemire/go-txml/internal/config"
	"github.com/grindlemire/go-txml/internal/diag"
	"github.com/grindlemire/go-txml/internal/log"
)

var (
	version = "v0.1.0"
	commit  = "dev"
)

// errReported is returned once the failure has already been printed.
var errReported = errors.New("errors reported")

// app is the state shared by all commands.
type app struct {
	configPath string
	logPath    string
	noColor    bool

	cfg     *config.Config
	logFile *os.File
	stdout  io.Writer
	stderr  io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "txmlc",
		Short: "txmlc - compiler for .txml templates",
		Long: `txmlc compiles .txml mini-program templates into JS modules exporting a
React render function.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.teardown()
		},
	}

	addGlobalFlags(cmd.PersistentFlags(), a)

	cmd.AddCommand(newCompileCommand(a))
	cmd.AddCommand(newCheckCommand(a))
	cmd.AddCommand(newWatchCommand(a))
	cmd.AddCommand(newASTCommand(a))
	cmd.AddCommand(newSummaryCommand(a))
	cmd.AddCommand(newInitCommand(a))
	cmd.AddCommand(newVersionCommand())

	return cmd
}

func addGlobalFlags(fs *pflag.FlagSet, a *app) {
	fs.StringVar(&a.configPath, "config", ".", "Path to txml.yaml or the directory holding it")
	fs.StringVar(&a.logPath, "log", "", "Write debug logs to this file")
	fs.BoolVar(&a.noColor, "no-color", false, "Disable colored diagnostics")
}

// setup loads the configuration and opens the debug log.
func (a *app) setup(cmd *cobra.Command) error {
	a.stdout = cmd.OutOrStdout()
	a.stderr = cmd.ErrOrStderr()

	if a.logPath != "" {
		f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.logFile = f
		log.SetOutput(f)
		log.Debug("txmlc %s %s %v", version, cmd.Name(), os.Args[1:])
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(version); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) teardown() error {
	if a.logFile == nil {
		return nil
	}
	log.SetOutput(nil)
	err := a.logFile.Close()
	a.logFile = nil
	return err
}

// printer returns the diagnostics printer for stderr.
func (a *app) printer() *diag.Printer {
	return diag.NewPrinter(a.stderr, !a.noColor)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "txmlc version %s\n", version)
		},
	}
}
