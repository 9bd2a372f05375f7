package txml

import (
	"fmt"
	"strings"
)

func (g *Generator) enterFor(p *Path) error {
	if err := g.bindLoop(p); err != nil {
		return err
	}
	g.scopes = append(g.scopes, &scope{loop: p.Node.(*For)})
	return nil
}

// bindLoop makes the bindings of a For visible when its content is entered.
func (g *Generator) bindLoop(p *Path) error {
	if p.Parent == nil || p.Key != "content" || len(g.scopes) == 0 {
		return nil
	}
	if top := g.scopes[len(g.scopes)-1]; top.loop == p.Parent.Node {
		top.bound = true
	}
	return nil
}

func (g *Generator) exitFor(p *Path) error {
	n := p.Node.(*For)
	g.scopes = g.scopes[:len(g.scopes)-1]
	g.code[n] = fmt.Sprintf("{%s(%s, (%s, %s) => { return %s; })}",
		g.useHelper("iterate"), g.code[n.Data], n.ItemName, n.IndexName, g.exprOf(n.Content))
	return nil
}

// isLoopVariable reports whether name is bound by an enclosing For. The
// innermost loop wins but every binding along the chain is visible.
func (g *Generator) isLoopVariable(name string) bool {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		s := g.scopes[i]
		if s.bound && (s.loop.ItemName == name || s.loop.IndexName == name) {
			return true
		}
	}
	return false
}

func (g *Generator) exitIf(p *Path) error {
	n := p.Node.(*If)
	parts := make([]string, 0, len(n.Branches)+1)
	hasElse := false
	for _, b := range n.Branches {
		content := g.exprOf(b.Content)
		if b.Cond == nil {
			parts = append(parts, content)
			hasElse = true
			break
		}
		parts = append(parts, g.code[b.Cond]+" ? "+content)
	}
	if !hasElse {
		parts = append(parts, "null")
	}
	g.code[n] = "{" + strings.Join(parts, " : ") + "}"
	return nil
}

func (g *Generator) exitInterpolation(p *Path) error {
	n := p.Node.(*Interpolation)
	g.code[n] = "{" + g.useHelper("toString") + "(" + g.joinExprs(n.Children, ", ") + ")}"
	return nil
}

func (g *Generator) exitBlock(p *Path) error {
	n := p.Node.(*Block)
	g.code[n] = "<>" + g.childrenCode(n.Children) + "</>"
	return nil
}

func (g *Generator) exitSlot(p *Path) error {
	n := p.Node.(*Slot)
	g.code[n] = fmt.Sprintf("{%s(data, %s, <>%s</>)}",
		g.useHelper("renderSlot"), g.joinExprs(n.Name, " + "), g.childrenCode(n.Content))
	return nil
}

// enterTemplate hides enclosing loop bindings: a definition is a separate
// function and only sees its own data.
func (g *Generator) enterTemplate(p *Path) error {
	g.saved = append(g.saved, g.scopes)
	g.scopes = nil
	return nil
}

func (g *Generator) exitTemplate(p *Path) error {
	n := p.Node.(*TemplateDefinition)
	g.scopes = g.saved[len(g.saved)-1]
	g.saved = g.saved[:len(g.saved)-1]

	name := quoteSingle(n.Name)
	var sb strings.Builder
	fmt.Fprintf(&sb, "$template = $ownTemplates[%s] = function (data) {\n", name)
	fmt.Fprintf(&sb, "  return %s;\n", g.childrenExpr(n.Content))
	sb.WriteString("};\n")
	fmt.Fprintf(&sb, "$template.Component = %s(%s, $template);", g.useHelper("createTemplate"), name)
	g.templates = append(g.templates, sb.String())
	return nil
}

func (g *Generator) exitTemplateInstance(p *Path) error {
	n := p.Node.(*TemplateInstance)
	data := "undefined"
	switch d := n.Data.(type) {
	case nil:
	case *Variable:
		data = "{" + d.Name + ": " + g.code[d] + "}"
	default:
		data = g.code[d]
	}
	g.code[n] = fmt.Sprintf("{%s($templates[%s], %s, undefined, this)}",
		g.useHelper("useTemplate"), g.joinExprs(n.Is, " + "), data)
	return nil
}

func (g *Generator) exitImport(p *Path) error {
	n := p.Node.(*Import)
	g.addImport(importRef{index: n.Index, src: n.Src})
	return nil
}

func (g *Generator) exitInclude(p *Path) error {
	n := p.Node.(*Include)
	g.addImport(importRef{include: true, index: n.Index, src: n.Src})
	g.code[n] = fmt.Sprintf("{include%d.apply(this, arguments)}", n.Index)
	return nil
}

func (g *Generator) addImport(ref importRef) {
	for _, r := range g.imports {
		if r.include == ref.include && r.index == ref.index {
			return
		}
	}
	g.imports = append(g.imports, ref)
}

func (g *Generator) joinExprs(exprs []Expr, sep string) string {
	codes := make([]string, len(exprs))
	for i, e := range exprs {
		codes[i] = g.code[e]
	}
	return strings.Join(codes, sep)
}

var singleQuoteEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// quoteSingle renders s as a single quoted JS string.
func quoteSingle(s string) string {
	return "'" + singleQuoteEscaper.Replace(s) + "'"
}
