// Package build compiles batches of .txml files.
package build

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-txml/internal/log"
	"github.com/grindlemire/go-txml/internal/txml"
)

// Ext is the source file extension.
const Ext = ".txml"

// Options controls a batch build.
type Options struct {
	Compile *txml.Options
	OutExt  string // extension of generated files, ".js" when empty
	Jobs    int    // concurrent compilations, one per CPU when <= 0
	Write   bool   // write outputs next to their sources
}

// Result is the outcome of compiling one file.
type Result struct {
	Input    string
	Output   string // output path
	Source   string // source text, kept for diagnostics
	Code     string // generated module, empty on failure
	Err      error
	Duration time.Duration
}

// Collect finds all .txml files from the given paths.
// Supports:
//   - Direct file paths: "page.txml"
//   - Directory paths: "./pages" (non-recursive)
//   - Recursive pattern: "./..."
//
// Recursive walks skip hidden directories and node_modules. The result is
// sorted and free of duplicates.
func Collect(paths []string) ([]string, error) {
	var files []string

	for _, path := range paths {
		if strings.HasSuffix(path, "/...") || path == "..." {
			root := strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if p != root && SkipDir(d.Name()) {
						return filepath.SkipDir
					}
					return nil
				}
				if strings.HasSuffix(p, Ext) {
					files = append(files, p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), Ext) {
					files = append(files, filepath.Join(path, entry.Name()))
				}
			}
		} else if strings.HasSuffix(path, Ext) {
			files = append(files, path)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

// SkipDir reports whether a directory is never searched for sources.
func SkipDir(name string) bool {
	return name == "node_modules" || (strings.HasPrefix(name, ".") && name != "." && name != "..")
}

// OutputPath converts a .txml path to its generated file path.
// Examples:
//
//	page.txml           -> page.js
//	pages/index.txml    -> pages/index.js
//	card.txml (".jsx")  -> card.jsx
func OutputPath(input, ext string) string {
	if ext == "" {
		ext = ".js"
	}
	return strings.TrimSuffix(input, Ext) + ext
}

// CompileFile reads and compiles a single .txml file. Errors carry the base
// name of the file, which is also named in the generated header.
func CompileFile(input string, opts *txml.Options) (source, code string, err error) {
	data, err := os.ReadFile(input)
	if err != nil {
		return "", "", fmt.Errorf("reading file: %w", err)
	}
	source = string(data)
	code, err = txml.Compile(filepath.Base(input), source, opts)
	return source, code, err
}

// Run compiles files concurrently. Results are returned in the order of
// files; a failed file does not stop the others. The error is non-nil only
// when ctx is canceled before every file was compiled.
func Run(ctx context.Context, files []string, opts Options) ([]Result, error) {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = compile(file, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func compile(input string, opts Options) Result {
	start := time.Now()
	r := Result{Input: input, Output: OutputPath(input, opts.OutExt)}

	r.Source, r.Code, r.Err = CompileFile(input, opts.Compile)
	if r.Err == nil && opts.Write {
		if err := os.WriteFile(r.Output, []byte(r.Code), 0644); err != nil {
			r.Err = fmt.Errorf("writing file: %w", err)
		}
	}
	r.Duration = time.Since(start)

	if r.Err != nil {
		log.Build("%s: %v", input, r.Err)
	} else {
		log.Build("%s -> %s (%s)", input, r.Output, r.Duration)
	}
	return r
}

// Failed counts the results that carry an error.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
