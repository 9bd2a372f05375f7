package watch

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestNew_SkipsHiddenAndModules(t *testing.T) {
	dir := t.TempDir()
	for _, d := range []string{"pages/detail", ".git/objects", "node_modules/lib"} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0755); err != nil {
			t.Fatal(err)
		}
	}

	w, err := New([]string{dir}, 0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	want := []string{dir, filepath.Join(dir, "pages"), filepath.Join(dir, "pages", "detail")}
	if got := w.Dirs(); !reflect.DeepEqual(got, want) {
		t.Errorf("Dirs = %v, want %v", got, want)
	}
}

func TestRun_DebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(paths []string) { batches <- paths })
	}()

	a := filepath.Join(dir, "a.txml")
	b := filepath.Join(dir, "b.txml")
	for _, p := range []string{a, b, a, filepath.Join(dir, "notes.md")} {
		if err := os.WriteFile(p, []byte("<view/>"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case got := <-batches:
		if !reflect.DeepEqual(got, []string{a, b}) {
			t.Errorf("batch = %v, want [%s %s]", got, a, b)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Run returned %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRun_WatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{dir}, 50*time.Millisecond)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	batches := make(chan []string, 4)
	go func() { _ = w.Run(ctx, func(paths []string) { batches <- paths }) }()

	sub := filepath.Join(dir, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	// The new directory is added asynchronously; keep touching the file until
	// a batch names it.
	file := filepath.Join(sub, "page.txml")
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case got := <-batches:
			if reflect.DeepEqual(got, []string{file}) {
				return
			}
		case <-tick.C:
			if err := os.WriteFile(file, []byte("<view/>"), 0644); err != nil {
				t.Fatal(err)
			}
		case <-deadline:
			t.Fatal("timed out waiting for change in new directory")
		}
	}
}
