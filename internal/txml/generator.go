package txml

import (
	"bytes"
	"fmt"
	"strings"
)

// Generator turns a transformed AST into a JS module exporting a JSX render
// function.
//
// Code is synthesized bottom-up: each node's code is computed on exit from
// the already computed code of its children.
type Generator struct {
	// SourceFile is named in the header comment when set.
	SourceFile string

	opts *Options
	buf  bytes.Buffer

	code    map[Node]string
	scopes  []*scope        // enclosing For loops, innermost last
	saved   [][]*scope      // scopes hidden by enclosing template definitions
	sjs     map[string]bool // names bound by <import-sjs>
	sjsMods []*SjsImport

	// Module level references collected while generating the render function.
	helpers    map[string]bool
	events     map[string]bool
	components []string
	templates  []string
	imports    []importRef
}

// scope is a For loop whose bindings become visible once its content is
// entered. The loop's own data expression does not see them.
type scope struct {
	loop  *For
	bound bool
}

// importRef is one import or include statement of the module.
type importRef struct {
	include bool
	index   int
	src     string
}

// NewGenerator creates a generator. A nil opts uses DefaultOptions.
func NewGenerator(opts *Options) *Generator {
	return &Generator{opts: opts.withDefaults()}
}

// Generate produces the module source for a transformed tree.
func (g *Generator) Generate(root *Root) ([]byte, error) {
	g.reset()

	if err := g.collectSjs(root); err != nil {
		return nil, err
	}
	if err := Walk(NewRootPath(root), g.visitor()); err != nil {
		return nil, err
	}

	g.generateHeader()
	g.generateImports()
	g.generateEventAdapters()
	g.generateTemplates()
	g.generateRender(root)
	return bytes.Clone(g.buf.Bytes()), nil
}

// GenerateRenderFn generates the module for a transformed tree.
func GenerateRenderFn(root *Root, opts *Options) (string, error) {
	out, err := NewGenerator(opts).Generate(root)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (g *Generator) reset() {
	g.buf.Reset()
	g.code = make(map[Node]string)
	g.scopes = nil
	g.saved = nil
	g.sjs = make(map[string]bool)
	g.sjsMods = nil
	g.helpers = make(map[string]bool)
	g.events = make(map[string]bool)
	g.components = nil
	g.templates = nil
	g.imports = nil
}

// collectSjs records the names of sjs modules before generation so references
// that precede the <import-sjs> resolve too.
func (g *Generator) collectSjs(root *Root) error {
	return Walk(NewRootPath(root), &Visitor{
		SjsImport: Hook{Enter: func(p *Path) error {
			n := p.Node.(*SjsImport)
			if !g.sjs[n.Name] {
				g.sjs[n.Name] = true
				g.sjsMods = append(g.sjsMods, n)
			}
			return nil
		}},
	})
}

// visitor returns the code generation hooks.
func (g *Generator) visitor() *Visitor {
	return &Visitor{
		Root: Hook{Exit: g.exitRoot},

		Element:   Hook{Enter: g.enterElement, Exit: g.exitElement},
		Attribute: Hook{Exit: g.exitAttribute},
		Directive: Hook{Exit: g.exitDirective},

		Interpolation:      Hook{Exit: g.exitInterpolation},
		If:                 Hook{Enter: g.bindLoop, Exit: g.exitIf},
		For:                Hook{Enter: g.enterFor, Exit: g.exitFor},
		Block:              Hook{Exit: g.exitBlock},
		Slot:               Hook{Exit: g.exitSlot},
		TemplateDefinition: Hook{Enter: g.enterTemplate, Exit: g.exitTemplate},
		TemplateInstance:   Hook{Exit: g.exitTemplateInstance},
		Import:             Hook{Exit: g.exitImport},
		Include:            Hook{Exit: g.exitInclude},

		Constant:     Hook{Exit: g.exitConstant},
		Variable:     Hook{Exit: g.exitVariable},
		ObjectAccess: Hook{Exit: g.exitObjectAccess},
		OneArg:       Hook{Exit: g.exitOneArg},
		Arithmetic:   Hook{Exit: g.exitArithmetic},
		Condition:    Hook{Exit: g.exitCondition},
		Ternary:      Hook{Exit: g.exitTernary},
		Array:        Hook{Exit: g.exitArray},
		Object:       Hook{Exit: g.exitObject},
		FunctionCall: Hook{Exit: g.exitFunctionCall},
	}
}

func (g *Generator) exitRoot(p *Path) error {
	g.code[p.Node] = g.childrenExpr(p.Node.(*Root).Children)
	return nil
}

// childrenExpr renders a children list as a single JSX expression. Template
// definitions and imports render nothing in place.
func (g *Generator) childrenExpr(children []Node) string {
	var codes []string
	fragment := false
	for _, child := range children {
		switch child.(type) {
		case *TemplateDefinition, *Import, *SjsImport:
			continue
		case *If, *For, *TemplateInstance, *Interpolation, *Include, *Slot:
			fragment = true
		}
		codes = append(codes, g.code[child])
	}
	switch {
	case len(codes) == 0:
		return "null"
	case len(codes) > 1 || fragment:
		return "<>" + strings.Join(codes, "\n") + "</>"
	}
	return "(" + codes[0] + ")"
}

// childrenCode joins the codes of children rendered inside a host element.
func (g *Generator) childrenCode(children []Node) string {
	var codes []string
	for _, child := range children {
		switch child.(type) {
		case *TemplateDefinition, *Import, *SjsImport:
			continue
		}
		codes = append(codes, g.code[child])
	}
	return strings.Join(codes, "\n")
}

// exprOf returns the code of n usable as a JS expression. Nodes that render
// as a JSX child ({...}) are wrapped in a fragment.
func (g *Generator) exprOf(n Node) string {
	code := g.code[n]
	switch n.(type) {
	case *If, *For, *Interpolation, *Slot, *TemplateInstance, *Include:
		return "<>" + code + "</>"
	}
	return code
}

// useHelper marks a runtime helper as used and returns its name.
func (g *Generator) useHelper(name string) string {
	g.helpers[name] = true
	return name
}

// generateHeader writes the "DO NOT EDIT" comment.
func (g *Generator) generateHeader() {
	g.writeln("// Code generated by txmlc. DO NOT EDIT.")
	if g.SourceFile != "" {
		g.writef("// Source: %s\n", g.SourceFile)
	}
	g.writeln("")
}

// generateTemplates writes the template tables and the definitions.
func (g *Generator) generateTemplates() {
	g.writeln("let $template = void 0;")
	g.writeln("export const $ownTemplates = {};")
	g.writeln("")
	for _, t := range g.templates {
		g.writeln(t)
		g.writeln("")
	}
	g.writeln("const $templates = {")
	for _, ref := range g.imports {
		if !ref.include {
			g.writef("  ...template%d,\n", ref.index)
		}
	}
	g.writeln("  ...$ownTemplates")
	g.writeln("};")
	g.writeln("")
}

// generateRender writes the exported render function.
func (g *Generator) generateRender(root *Root) {
	g.writeln("export default function render(data) {")
	g.writef("  return %s;\n", g.code[root])
	g.writeln("}")
}

func (g *Generator) writeln(s string) {
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

func (g *Generator) writef(format string, args ...any) {
	fmt.Fprintf(&g.buf, format, args...)
}
