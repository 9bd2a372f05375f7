// Package log is the debug log of txmlc, enabled with --log.
package log

import (
	"fmt"
	"io"
	"sync"
)

var (
	out io.Writer
	mu  sync.Mutex
)

// SetOutput sets the log destination. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Enabled returns true if logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return out != nil
}

// Debug writes an unprefixed log message if logging is enabled.
func Debug(format string, args ...any) {
	write("", format, args...)
}

// Build writes a build-prefixed log message.
func Build(format string, args ...any) {
	write("[build] ", format, args...)
}

// Watch writes a watch-prefixed log message.
func Watch(format string, args ...any) {
	write("[watch] ", format, args...)
}

// Reload writes a reload-prefixed log message.
func Reload(format string, args ...any) {
	write("[reload] ", format, args...)
}

func write(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		fmt.Fprintf(out, prefix+format+"\n", args...)
	}
}
