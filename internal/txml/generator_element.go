package txml

import (
	"slices"
	"strings"
)

const (
	componentEventHandler = "$getComponentEventHandler"
	eventHandler          = "$getEventHandler"
)

func (g *Generator) enterElement(p *Path) error {
	el := p.Node.(*Element)
	if !slices.Contains(g.components, el.Tag) {
		g.components = append(g.components, el.Tag)
	}
	return g.bindLoop(p)
}

func (g *Generator) exitElement(p *Path) error {
	el := p.Node.(*Element)
	tag := pascalCase(el.Tag)

	var attrs []string
	for _, prop := range el.Props {
		if a, ok := prop.(*Attribute); ok {
			attrs = append(attrs, g.code[a])
		}
	}
	if g.isCustomComponent(el.Tag) {
		attrs = append(attrs, "$isCustomComponent={this.$isCustomComponent}", "__tag='"+el.Tag+"'")
	}

	open := tag
	if len(attrs) > 0 {
		open += " " + strings.Join(attrs, " ")
	}

	children := g.childrenCode(el.Children)
	if children == "" {
		g.code[el] = "<" + open + "/>"
	} else {
		g.code[el] = "<" + open + ">" + children + "</" + tag + ">"
	}
	return nil
}

func (g *Generator) exitAttribute(p *Path) error {
	a := p.Node.(*Attribute)
	name := a.Name
	if name == "class" {
		name = "className"
	}

	value := g.joinValue(a.Value, " + ")
	if strings.HasPrefix(name, "on") {
		handler := eventHandler
		if parent, ok := p.Parent.Node.(*Element); ok && g.isCustomComponent(parent.Tag) {
			handler = componentEventHandler
		}
		g.events[handler] = true
		value = handler + "(this, " + value + ")"
	}
	g.code[a] = name + "={" + value + "}"
	return nil
}

// exitDirective computes the value of directives left after the transform
// passes. Elements do not emit them.
func (g *Generator) exitDirective(p *Path) error {
	d := p.Node.(*Directive)
	g.code[d] = g.joinValue(d.Value, " + ")
	return nil
}

func (g *Generator) joinValue(value []*ExprNode, sep string) string {
	codes := make([]string, len(value))
	for i, n := range value {
		codes[i] = g.code[n.Expr]
	}
	return strings.Join(codes, sep)
}

func (g *Generator) isCustomComponent(tag string) bool {
	return !g.opts.isNativeTag(tag)
}

// pascalCase converts a kebab-case tag to a component identifier:
// "scroll-view" becomes "ScrollView".
func pascalCase(tag string) string {
	var sb strings.Builder
	for part := range strings.SplitSeq(tag, "-") {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}
