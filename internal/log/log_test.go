package log

import (
	"bytes"
	"testing"
)

func TestPrefixes(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(nil) })

	if !Enabled() {
		t.Fatal("expected logging to be enabled")
	}
	Debug("plain %d", 1)
	Build("compiled %s", "a.txml")
	Watch("changed %s", "b.txml")
	Reload("%d clients", 2)

	want := "plain 1\n[build] compiled a.txml\n[watch] changed b.txml\n[reload] 2 clients\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestDisabled(t *testing.T) {
	SetOutput(nil)
	if Enabled() {
		t.Fatal("expected logging to be disabled")
	}
	Build("dropped") // must not panic
}
