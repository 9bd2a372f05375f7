// Package diag renders compilation errors for the terminal with the source
// line they point at.
package diag

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/grindlemire/go-txml/internal/txml"
)

var (
	errorColor = lipgloss.Color("#ef4444") // Red
	mutedColor = lipgloss.Color("#94a3b8") // Muted gray
	hintColor  = lipgloss.Color("#10b981") // Green
)

type styles struct {
	label  lipgloss.Style
	gutter lipgloss.Style
	caret  lipgloss.Style
	hint   lipgloss.Style
}

// Printer writes diagnostics to w.
type Printer struct {
	w      io.Writer
	styles styles
}

// NewPrinter creates a printer for w. Colors are used only when color is
// true and w is a terminal that supports them.
func NewPrinter(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{
		w: w,
		styles: styles{
			label:  r.NewStyle().Foreground(errorColor).Bold(true),
			gutter: r.NewStyle().Foreground(mutedColor),
			caret:  r.NewStyle().Foreground(errorColor).Bold(true),
			hint:   r.NewStyle().Foreground(hintColor),
		},
	}
}

// Print writes err. Compilation errors are followed by the offending source
// line and a caret under the reported column.
//
//	error: page.txml:2:3: syntax error: invalid close tag: expected </view>, got </div>
//	  2 | </div>
//	    |   ^^^
func (p *Printer) Print(err error, source string) {
	var cerr *txml.Error
	if !errors.As(err, &cerr) {
		fmt.Fprintf(p.w, "%s %v\n", p.styles.label.Render("error:"), err)
		return
	}

	fmt.Fprintf(p.w, "%s %s\n", p.styles.label.Render("error:"), cerr.Error())
	if line, ok := sourceLine(source, cerr.Pos.Line); ok {
		num := strconv.Itoa(cerr.Pos.Line)
		pad := strings.Repeat(" ", len(num))
		fmt.Fprintf(p.w, "  %s %s\n", p.styles.gutter.Render(num+" |"), line)
		fmt.Fprintf(p.w, "  %s %s%s\n", p.styles.gutter.Render(pad+" |"), caretIndent(line, cerr.Pos.Column), p.styles.caret.Render(caret(cerr.Text)))
	}
	if cerr.Hint != "" {
		fmt.Fprintf(p.w, "  %s %s\n", p.styles.hint.Render("hint:"), cerr.Hint)
	}
}

// Summary writes the closing line of a batch.
func (p *Printer) Summary(failed, total int) {
	if failed == 0 {
		return
	}
	fmt.Fprintf(p.w, "%s %d of %d file(s) failed\n", p.styles.label.Render("error:"), failed, total)
}

func sourceLine(source string, line int) (string, bool) {
	if line < 1 {
		return "", false
	}
	lines := strings.Split(source, "\n")
	if line > len(lines) {
		return "", false
	}
	return strings.TrimRight(lines[line-1], "\r"), true
}

// caretIndent reproduces the whitespace before column so the caret lines up
// even when the line is indented with tabs.
func caretIndent(line string, column int) string {
	var sb strings.Builder
	for i, r := range []rune(line) {
		if i >= column-1 {
			break
		}
		if r == '\t' {
			sb.WriteRune('\t')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

func caret(text string) string {
	n := len([]rune(text))
	if n == 0 || strings.Contains(text, "\n") {
		n = 1
	}
	return strings.Repeat("^", n)
}
