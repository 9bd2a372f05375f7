package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-txml/internal/build"
	"github.com/grindlemire/go-txml/internal/log"
	"github.com/grindlemire/go-txml/internal/reload"
	"github.com/grindlemire/go-txml/internal/watch"
)

func newWatchCommand(a *app) *cobra.Command {
	var (
		flags buildFlags
		addr  string
	)

	cmd := &cobra.Command{
		Use:   "watch [dir...]",
		Short: "Recompile .txml files as they change",
		Long: `Compiles every .txml file under the given directories, then recompiles
changed files until interrupted. With --serve, browsers connected to the
live reload endpoint are told which modules changed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := args
			if len(roots) == 0 {
				roots = []string{"."}
			}
			if addr == "" {
				addr = a.cfg.Dev.Addr
			}

			w, err := watch.New(roots, time.Duration(a.cfg.Dev.DebounceMS)*time.Millisecond)
			if err != nil {
				return err
			}
			defer w.Close()

			s := &watchSession{app: a, opts: flags.options(a, true), verbose: flags.verbose}
			if addr != "" {
				s.hub = reload.NewHub()
			}

			patterns := make([]string, len(roots))
			for i, root := range roots {
				patterns[i] = filepath.Join(root, "...")
			}
			files, err := build.Collect(patterns)
			if err != nil {
				return err
			}
			s.compile(cmd.Context(), files)

			fmt.Fprintf(a.stdout, "Watching %d director(ies) for changes\n", len(w.Dirs()))

			g, ctx := errgroup.WithContext(cmd.Context())
			if s.hub != nil {
				fmt.Fprintf(a.stdout, "Live reload on ws://%s%s\n", addr, reload.Path)
				g.Go(func() error {
					return reload.Serve(ctx, addr, s.hub)
				})
			}
			g.Go(func() error {
				return w.Run(ctx, func(paths []string) {
					s.compile(ctx, existing(paths))
				})
			})

			// Interrupts end the session cleanly.
			if err := g.Wait(); err != nil && cmd.Context().Err() == nil {
				return err
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&addr, "serve", "", "Serve live reload on this address (default from config)")

	return cmd
}

// watchSession compiles batches of changed files and notifies clients.
type watchSession struct {
	app     *app
	opts    build.Options
	hub     *reload.Hub
	verbose bool
}

func (s *watchSession) compile(ctx context.Context, files []string) {
	if len(files) == 0 {
		return
	}

	results, err := build.Run(ctx, files, s.opts)
	if err != nil {
		log.Watch("batch aborted: %v", err)
		return
	}

	var (
		outputs  []string
		firstErr error
	)
	for _, r := range results {
		if r.Err != nil {
			s.app.printer().Print(r.Err, r.Source)
			if firstErr == nil {
				firstErr = r.Err
			}
			continue
		}
		outputs = append(outputs, r.Output)
		if s.verbose {
			fmt.Fprintf(s.app.stdout, "Compiled %s -> %s (%s)\n", r.Input, r.Output, r.Duration)
		}
	}
	if failed := build.Failed(results); failed > 0 {
		s.app.printer().Summary(failed, len(results))
	}

	if s.hub == nil {
		return
	}
	msg := reload.Message{Type: reload.TypeReload, Files: outputs}
	if firstErr != nil {
		msg = reload.Message{Type: reload.TypeError, Error: firstErr.Error()}
	}
	s.hub.Broadcast(msg)
}

// existing drops paths that were removed or renamed away.
func existing(paths []string) []string {
	var out []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			out = append(out, p)
		}
	}
	return out
}
