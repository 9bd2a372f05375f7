package txml

// runtimeHelpers lists the helpers of the runtime library in the order their
// imports are emitted.
var runtimeHelpers = []string{
	"iterate",
	"createRoot",
	"useTemplate",
	"createTemplate",
	"renderSlot",
	"resolveScopedSlots",
	"getSJSMember",
	"toString",
	"getLooseDataMember",
}

// eventAdapters are the handler resolvers event attributes are wrapped in.
var eventAdapters = []struct {
	name string
	body string
}{
	{componentEventHandler, "return instance.$getComponentEventHandler && instance.$getComponentEventHandler(name);"},
	{eventHandler, "return instance.$getEventHandler(name);"},
}

// generateImports writes React, the used runtime helpers, the components, the
// imported and included templates and the sjs modules.
func (g *Generator) generateImports() {
	g.writeln("import React from 'react';")
	for _, name := range runtimeHelpers {
		if g.helpers[name] {
			g.writef("import %s from %s;\n", name, quoteSingle(g.opts.RuntimeLibrary+"/"+name))
		}
	}

	lib := quoteSingle(g.opts.Library)
	needsClass := false
	for _, tag := range g.components {
		if _, ok := g.opts.CustomComponents[tag]; ok {
			needsClass = true
			break
		}
	}
	if needsClass {
		g.writef("import { getComponentClass } from %s;\n", lib)
	}
	for _, tag := range g.components {
		name := pascalCase(tag)
		if path, ok := g.opts.CustomComponents[tag]; ok {
			g.writef("const %s = getComponentClass(%s);\n", name, quoteSingle(path))
		} else {
			g.writef("import { %s } from %s;\n", name, lib)
		}
	}

	for _, ref := range g.imports {
		if ref.include {
			g.writef("import include%d from %s;\n", ref.index, jsString(ref.src))
		} else {
			g.writef("import { $ownTemplates as template%d } from %s;\n", ref.index, jsString(ref.src))
		}
	}
	for _, m := range g.sjsMods {
		g.writef("import %s from %s;\n", m.Name, jsString(m.From))
	}
	g.writeln("")
}

// generateEventAdapters writes the event handler resolvers the render
// function references.
func (g *Generator) generateEventAdapters() {
	for _, a := range eventAdapters {
		if !g.events[a.name] {
			continue
		}
		g.writef("const %s = function (instance, name) {\n", a.name)
		g.writef("  %s\n", a.body)
		g.writeln("};")
		g.writeln("")
	}
}
