package diag

import (
	"bytes"
	"errors"
	"testing"

	"github.com/grindlemire/go-txml/internal/txml"
)

func TestPrinter_Print(t *testing.T) {
	type tc struct {
		err      error
		source   string
		expected string
	}

	tests := map[string]tc{
		"plain error": {
			err:      errors.New("no .txml files found"),
			expected: "error: no .txml files found\n",
		},
		"excerpt with caret": {
			err: &txml.Error{
				Kind:    txml.SyntaxError,
				Pos:     txml.Position{File: "page.txml", Line: 2, Column: 5},
				Message: "invalid close tag",
				Text:    "div",
			},
			source: "<view>\n  </div>\n",
			expected: "error: page.txml:2:5: syntax error: invalid close tag\n" +
				"  2 |   </div>\n" +
				"    |     ^^^\n",
		},
		"tab indentation": {
			err: &txml.Error{
				Kind:    txml.SemanticError,
				Pos:     txml.Position{File: "a.txml", Line: 1, Column: 3},
				Message: "else without preceding if",
			},
			source: "\t\t<view tiki:else/>",
			expected: "error: a.txml:1:3: semantic error: else without preceding if\n" +
				"  1 | \t\t<view tiki:else/>\n" +
				"    | \t\t^\n",
		},
		"hint": {
			err: &txml.Error{
				Kind:    txml.SyntaxError,
				Pos:     txml.Position{File: "a.txml", Line: 1, Column: 1},
				Message: "unexpected",
				Hint:    "close the tag",
				Text:    "<",
			},
			source: "<",
			expected: "error: a.txml:1:1: syntax error: unexpected (close the tag)\n" +
				"  1 | <\n" +
				"    | ^\n" +
				"  hint: close the tag\n",
		},
		"line out of range": {
			err: &txml.Error{
				Kind:    txml.SyntaxError,
				Pos:     txml.Position{File: "a.txml", Line: 9, Column: 1},
				Message: "unexpected end of input",
			},
			source:   "<view>",
			expected: "error: a.txml:9:1: syntax error: unexpected end of input\n",
		},
		"wrapped error": {
			err: errors.Join(&txml.Error{
				Kind:    txml.LexicalError,
				Pos:     txml.Position{File: "a.txml", Line: 10, Column: 4},
				Message: "unexpected character '#' in expression",
				Text:    "#",
			}),
			source: "\n\n\n\n\n\n\n\n\n{{ # }}",
			expected: "error: a.txml:10:4: lexical error: unexpected character '#' in expression\n" +
				"  10 | {{ # }}\n" +
				"     |    ^\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf, false).Print(tt.err, tt.source)
			if buf.String() != tt.expected {
				t.Errorf("got:\n%q\nwant:\n%q", buf.String(), tt.expected)
			}
		})
	}
}

func TestPrinter_Summary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)
	p.Summary(0, 3)
	p.Summary(2, 3)
	if got, want := buf.String(), "error: 2 of 3 file(s) failed\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
