package build

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/grindlemire/go-txml/internal/txml"
)

// writeTree creates files relative to dir.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// chdir switches to dir for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"index.txml":                 "",
		"readme.md":                  "",
		"pages/home.txml":            "",
		"pages/detail/item.txml":     "",
		".cache/stale.txml":          "",
		"node_modules/lib/comp.txml": "",
	})
	chdir(t, dir)

	type tc struct {
		paths    []string
		expected []string
	}

	tests := map[string]tc{
		"recursive": {
			paths:    []string{"./..."},
			expected: []string{"index.txml", "pages/detail/item.txml", "pages/home.txml"},
		},
		"recursive subdirectory": {
			paths:    []string{"pages/..."},
			expected: []string{"pages/detail/item.txml", "pages/home.txml"},
		},
		"directory is not recursive": {
			paths:    []string{"pages"},
			expected: []string{"pages/home.txml"},
		},
		"file": {
			paths:    []string{"index.txml"},
			expected: []string{"index.txml"},
		},
		"non txml file ignored": {
			paths:    []string{"readme.md"},
			expected: nil,
		},
		"duplicates removed": {
			paths:    []string{"index.txml", ".", "./..."},
			expected: []string{"index.txml", "pages/detail/item.txml", "pages/home.txml"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Collect(tt.paths)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for i := range got {
				got[i] = filepath.ToSlash(got[i])
			}
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Collect(%v) = %v, want %v", tt.paths, got, tt.expected)
			}
		})
	}
}

func TestCollect_MissingPath(t *testing.T) {
	_, err := Collect([]string{filepath.Join(t.TempDir(), "nope.txml")})
	if err == nil || !strings.Contains(err.Error(), "stat ") {
		t.Errorf("err = %v, want stat error", err)
	}
}

func TestOutputPath(t *testing.T) {
	type tc struct {
		input    string
		ext      string
		expected string
	}

	tests := map[string]tc{
		"default extension": {input: "page.txml", expected: "page.js"},
		"nested":            {input: filepath.Join("pages", "index.txml"), ext: ".js", expected: filepath.Join("pages", "index.js")},
		"custom extension":  {input: "card.txml", ext: ".jsx", expected: "card.jsx"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := OutputPath(tt.input, tt.ext); got != tt.expected {
				t.Errorf("OutputPath(%q, %q) = %q, want %q", tt.input, tt.ext, got, tt.expected)
			}
		})
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{
		"a.txml": `<view>{{a}}</view>`,
		"b.txml": `<view></div>`,
		"c.txml": `<button/>`,
	})
	files := []string{
		filepath.Join(dir, "a.txml"),
		filepath.Join(dir, "b.txml"),
		filepath.Join(dir, "c.txml"),
	}

	results, err := Run(context.Background(), files, Options{Jobs: 2, Write: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if Failed(results) != 1 {
		t.Errorf("Failed = %d, want 1", Failed(results))
	}

	for i, r := range results {
		if r.Input != files[i] {
			t.Errorf("result %d is for %s, want %s", i, r.Input, files[i])
		}
	}

	var perr *txml.Error
	if !errors.As(results[1].Err, &perr) || perr.Pos.File != "b.txml" {
		t.Errorf("b.txml error = %v, want a positioned compile error", results[1].Err)
	}
	if results[1].Source != `<view></div>` {
		t.Errorf("failed result should keep its source, got %q", results[1].Source)
	}
	if _, err := os.Stat(filepath.Join(dir, "b.js")); !os.IsNotExist(err) {
		t.Errorf("failed file should not be written, stat err = %v", err)
	}

	out, err := os.ReadFile(filepath.Join(dir, "a.js"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(out) != results[0].Code {
		t.Error("written output differs from the result code")
	}
	if !strings.Contains(string(out), "// Source: a.txml\n") {
		t.Errorf("header should name the source file:\n%s", out)
	}
}

func TestRun_NoWrite(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txml": `<view/>`})

	results, err := Run(context.Background(), []string{filepath.Join(dir, "a.txml")}, Options{OutExt: ".jsx"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results[0].Err != nil || results[0].Code == "" {
		t.Fatalf("unexpected result: %+v", results[0])
	}
	if results[0].Output != filepath.Join(dir, "a.jsx") {
		t.Errorf("Output = %s, want a.jsx", results[0].Output)
	}
	if _, err := os.Stat(results[0].Output); !os.IsNotExist(err) {
		t.Errorf("output should not be written, stat err = %v", err)
	}
}

func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, map[string]string{"a.txml": `<view/>`})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, []string{filepath.Join(dir, "a.txml")}, Options{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
