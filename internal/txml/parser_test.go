package txml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
)

// sexpr renders an expression in prefix notation for compact assertions.
func sexpr(e Expr) string {
	switch e := e.(type) {
	case *Constant:
		return e.JS()
	case *Variable:
		return e.Name
	case *ObjectAccess:
		return "(. " + sexpr(e.Expr) + " " + strings.Join(e.Paths, " ") + ")"
	case *OneArg:
		return "(" + e.Op.String() + " " + sexpr(e.Expr) + ")"
	case *Arithmetic:
		return "(" + e.Op.String() + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *Condition:
		return "(" + e.Op.String() + " " + sexpr(e.Left) + " " + sexpr(e.Right) + ")"
	case *Ternary:
		return "(? " + sexpr(e.Cond) + " " + sexpr(e.Success) + " " + sexpr(e.Fail) + ")"
	case *Array:
		return "[" + sexprs(e.Elems) + "]"
	case *Object:
		parts := make([]string, 0, len(e.Spreads)+len(e.Props))
		for _, s := range e.Spreads {
			parts = append(parts, "..."+sexpr(s))
		}
		for _, p := range e.Props {
			parts = append(parts, p.Key+":"+sexpr(p.Value))
		}
		return "{" + strings.Join(parts, " ") + "}"
	case *FunctionCall:
		return "(call " + sexpr(e.Fn) + " " + sexprs(e.Args) + ")"
	}
	return fmt.Sprintf("%T", e)
}

func sexprs(es []Expr) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = sexpr(e)
	}
	return strings.Join(parts, " ")
}

// parseExpr parses source as a single {{ }} child and returns its expression.
func parseExpr(t *testing.T, source string) Expr {
	t.Helper()
	root, err := Parse("test.txml", "{{ "+source+" }}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	en, ok := root.Children[0].(*ExprNode)
	if !ok {
		t.Fatalf("expected *ExprNode, got %T", root.Children[0])
	}
	return en.Expr
}

func TestParser_ElementWithAttribute(t *testing.T) {
	root, err := Parse("test.txml", `<view class="blue">hello</view>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}

	el, ok := root.Children[0].(*Element)
	if !ok {
		t.Fatalf("expected *Element, got %T", root.Children[0])
	}
	if el.Tag != "view" {
		t.Errorf("Tag = %q, want 'view'", el.Tag)
	}
	if len(el.Props) != 1 {
		t.Fatalf("expected 1 prop, got %d", len(el.Props))
	}

	attr, ok := el.Props[0].(*Attribute)
	if !ok {
		t.Fatalf("expected *Attribute, got %T", el.Props[0])
	}
	if attr.Name != "class" {
		t.Errorf("Name = %q, want 'class'", attr.Name)
	}
	if len(attr.Value) != 1 || sexpr(attr.Value[0].Expr) != `"blue"` {
		t.Errorf("Value = %v, want [\"blue\"]", attr.Value)
	}

	if len(el.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(el.Children))
	}
	text := textConst(el.Children[0])
	if text == nil || text.Str != "hello" {
		t.Errorf("child = %#v, want text 'hello'", el.Children[0])
	}
}

func TestParser_Props(t *testing.T) {
	type tc struct {
		input    string
		prefix   string
		name     string
		segments []string
	}

	tests := map[string]tc{
		"plain attribute": {
			input:    `<view a="x"/>`,
			name:     "a",
			segments: []string{`"x"`},
		},
		"empty value": {
			input:    `<view a=""/>`,
			name:     "a",
			segments: []string{`""`},
		},
		"bare attribute": {
			input:    `<view disabled/>`,
			name:     "disabled",
			segments: []string{"true"},
		},
		"directive": {
			input:    `<view tiki:if="{{ok}}"/>`,
			prefix:   "tiki",
			name:     "if",
			segments: []string{"ok"},
		},
		"mixed segments keep whitespace": {
			input:    `<view class=" a {{b}} c "/>`,
			name:     "class",
			segments: []string{`" a "`, "b", `" c "`},
		},
		"adjacent expressions": {
			input:    `<view a="{{x}}{{y}}"/>`,
			name:     "a",
			segments: []string{"x", "y"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root, err := Parse("test.txml", tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			el := root.Children[0].(*Element)
			if len(el.Props) != 1 {
				t.Fatalf("expected 1 prop, got %d", len(el.Props))
			}

			prop := el.Props[0]
			if d, ok := prop.(*Directive); ok {
				if d.Prefix != tt.prefix {
					t.Errorf("Prefix = %q, want %q", d.Prefix, tt.prefix)
				}
			} else if tt.prefix != "" {
				t.Fatalf("expected *Directive, got %T", prop)
			}
			if prop.PropName() != tt.name {
				t.Errorf("PropName() = %q, want %q", prop.PropName(), tt.name)
			}

			var got []string
			for _, seg := range prop.PropValue() {
				got = append(got, sexpr(seg.Expr))
			}
			if !reflect.DeepEqual(got, tt.segments) {
				t.Errorf("segments = %v, want %v", got, tt.segments)
			}
		})
	}
}

func TestParser_ExpressionPrecedence(t *testing.T) {
	type tc struct {
		input    string
		expected string
	}

	tests := map[string]tc{
		"multiplicative binds tighter":  {input: "a + b * c", expected: "(+ a (* b c))"},
		"left associative additive":     {input: "a - b - c", expected: "(- (- a b) c)"},
		"power is left associative":     {input: "a ** b ** c", expected: "(** (** a b) c)"},
		"power with multiplication":     {input: "a * b ** c", expected: "(** (* a b) c)"},
		"relational over equality":      {input: "a < b == c", expected: "(== (< a b) c)"},
		"and over or":                   {input: "a || b && c", expected: "(|| a (&& b c))"},
		"equality over and":             {input: "a === 1 && b !== 2", expected: "(&& (=== a 1) (!== b 2))"},
		"ternary lowest":                {input: "a || b ? c : d", expected: "(? (|| a b) c d)"},
		"nested ternary right":          {input: "a ? b : c ? d : e", expected: "(? a b (? c d e))"},
		"parens override":               {input: "(a + b) * c", expected: "(* (+ a b) c)"},
		"unary not":                     {input: "!a && b", expected: "(&& (! a) b)"},
		"negative literal folds":        {input: "-1 + a", expected: "(+ -1 a)"},
		"negated variable":              {input: "-a", expected: "(- a)"},
		"member access merges":          {input: "a.b.c", expected: "(. a b c)"},
		"keyword property":              {input: "a.null", expected: "(. a null)"},
		"call":                          {input: "f(a, b + 1)", expected: "(call f a (+ b 1))"},
		"method call":                   {input: "m.fmt(x)", expected: "(call (. m fmt) x)"},
		"array":                         {input: "[1, 'x', a,]", expected: `[1 "x" a]`},
		"object":                        {input: "{...a, b: 1, 'c d': e}", expected: `{...a b:1 c d:e}`},
		"empty object":                  {input: "{}", expected: "{}"},
		"literals":                      {input: "[true, false, null, undefined, 1.5]", expected: "[true false null undefined 1.5]"},
		"whitespace ignored in braces":  {input: "  a  ", expected: "a"},
		"comparison before ternary arm": {input: "a > 1 ? 'x' : 'y'", expected: `(? (> a 1) "x" "y")`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := sexpr(parseExpr(t, tt.input))
			if got != tt.expected {
				t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParser_BareObjectMembers(t *testing.T) {
	type tc struct {
		input    string
		expected string
	}

	tests := map[string]tc{
		"spread and key":        {input: "...item, extra: 1", expected: "{...item extra:1}"},
		"spread only":           {input: "...item", expected: "{...item}"},
		"single key":            {input: "a: 1", expected: "{a:1}"},
		"string key first":      {input: "'a-b': x, c: 2", expected: "{a-b:x c:2}"},
		"trailing comma":        {input: "a: b,", expected: "{a:b}"},
		"string key with comma": {input: "'a': 1,", expected: "{a:1}"},
		"plain string":          {input: "'a'", expected: `"a"`},
		"ternary is not a key":  {input: "a ? b : c", expected: "(? a b c)"},
		"nested object value":   {input: "a: {b: 1}", expected: "{a:{b:1}}"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := sexpr(parseExpr(t, tt.input))
			if got != tt.expected {
				t.Errorf("parse(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParser_BareObjectMembersInAttribute(t *testing.T) {
	root, err := Parse("test.txml", `<template is="x" data="{{...item}}"/>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	el := root.Children[0].(*Element)
	data := GetAttribute(el, "data")
	if data == nil {
		t.Fatal("missing data attribute")
	}
	if len(data.Value) != 1 {
		t.Fatalf("expected 1 value node, got %d", len(data.Value))
	}
	if got := sexpr(data.Value[0].Expr); got != "{...item}" {
		t.Errorf("data = %s, want {...item}", got)
	}
}

func TestParser_Errors(t *testing.T) {
	type tc struct {
		input   string
		kind    ErrorKind
		message string
		text    string
		hint    string
	}

	tests := map[string]tc{
		"invalid close tag": {
			input:   "<view></div>",
			kind:    SyntaxError,
			message: "invalid close tag: expected </view>, got </div>",
			text:    "div",
			hint:    "close <view> with </view>",
		},
		"unclosed element": {
			input:   "<view>",
			kind:    SyntaxError,
			message: "unclosed element <view>: expected </view>, got end of input",
			hint:    "close <view> with </view>",
		},
		"missing tag name": {
			input:   "< >",
			kind:    SyntaxError,
			message: `expected tag name, got ">"`,
			text:    ">",
		},
		"malformed expression": {
			input:   "{{ a + }}",
			kind:    SyntaxError,
			message: `expected expression, got "}}"`,
			text:    "}}",
		},
		"unclosed expression": {
			input:   "{{ a b }}",
			kind:    SyntaxError,
			message: `expected }}, got "b"`,
			text:    "b",
		},
		"stray close braces": {
			input:   "a }}",
			kind:    SyntaxError,
			message: `unexpected "}}"`,
			text:    "}}",
		},
		"lexical error wins": {
			input:   "{{ a # b }}",
			kind:    LexicalError,
			message: "unexpected character '#' in expression",
			text:    "#",
		},
		"unquoted attribute value": {
			input:   "<view a=b/>",
			kind:    SyntaxError,
			message: `expected quoted value, got "b"`,
			text:    "b",
		},
		"bare members need commas": {
			input:   "{{ 'a': 1 'b': 2 }}",
			kind:    SyntaxError,
			message: `expected }}, got "'"`,
			text:    "'",
		},
		"interpolation inside string literal": {
			input:   `{{ "a{{b}}" }}`,
			kind:    SyntaxError,
			message: "{{ is not allowed inside a string literal",
			text:    "{{",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			root, err := Parse("test.txml", tt.input)
			if err == nil {
				t.Fatalf("expected error, got tree %v", root)
			}
			if root != nil {
				t.Errorf("expected nil root on error")
			}
			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("expected *Error, got %T", err)
			}
			if perr.Kind != tt.kind {
				t.Errorf("Kind = %s, want %s", perr.Kind, tt.kind)
			}
			if perr.Message != tt.message {
				t.Errorf("Message = %q, want %q", perr.Message, tt.message)
			}
			if perr.Text != tt.text {
				t.Errorf("Text = %q, want %q", perr.Text, tt.text)
			}
			if perr.Hint != tt.hint {
				t.Errorf("Hint = %q, want %q", perr.Hint, tt.hint)
			}
		})
	}
}

func TestParser_ErrorPosition(t *testing.T) {
	_, err := Parse("page.txml", "<view>\n  </div>")
	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	want := Position{File: "page.txml", Line: 2, Column: 5}
	if perr.Pos != want {
		t.Errorf("Pos = %v, want %v", perr.Pos, want)
	}
	if !strings.HasPrefix(err.Error(), "page.txml:2:5: syntax error: invalid close tag") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestParser_Deterministic(t *testing.T) {
	input := `<view tiki:for="{{list}}" class="a {{b}}">
	<text>{{ item.name }} - {{ index + 1 }}</text>
	<button onTap="tap" disabled/>
</view>`

	first, err := Parse("test.txml", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Parse("test.txml", input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("parsing the same input twice produced different trees")
	}
}
