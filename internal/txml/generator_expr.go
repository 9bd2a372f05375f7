package txml

import (
	"fmt"
	"strings"
)

func (g *Generator) exitConstant(p *Path) error {
	g.code[p.Node] = p.Node.(*Constant).JS()
	return nil
}

// exitVariable resolves a name: loop bindings and sjs modules are in lexical
// scope, everything else is read from the render data.
func (g *Generator) exitVariable(p *Path) error {
	v := p.Node.(*Variable)
	if g.isLoopVariable(v.Name) || g.sjs[v.Name] {
		g.code[v] = v.Name
		return nil
	}
	g.code[v] = fmt.Sprintf("data[%s]", jsString(v.Name))
	return nil
}

func (g *Generator) exitObjectAccess(p *Path) error {
	n := p.Node.(*ObjectAccess)
	args := []string{g.code[n.Expr]}
	for _, path := range n.Paths {
		args = append(args, quoteSingle(path))
	}
	g.code[n] = g.useHelper("getLooseDataMember") + "(" + strings.Join(args, ", ") + ")"
	return nil
}

func (g *Generator) exitOneArg(p *Path) error {
	n := p.Node.(*OneArg)
	operand := g.code[n.Expr]
	// "--" would read as a decrement.
	if n.Op == OpMinus && strings.HasPrefix(operand, "-") {
		operand = "(" + operand + ")"
	}
	g.code[n] = n.Op.String() + operand
	return nil
}

func (g *Generator) exitArithmetic(p *Path) error {
	n := p.Node.(*Arithmetic)
	g.code[n] = "(" + g.code[n.Left] + " " + n.Op.String() + " " + g.code[n.Right] + ")"
	return nil
}

func (g *Generator) exitCondition(p *Path) error {
	n := p.Node.(*Condition)
	g.code[n] = "(" + g.code[n.Left] + " " + n.Op.String() + " " + g.code[n.Right] + ")"
	return nil
}

func (g *Generator) exitTernary(p *Path) error {
	n := p.Node.(*Ternary)
	g.code[n] = "(" + g.code[n.Cond] + " ? " + g.code[n.Success] + " : " + g.code[n.Fail] + ")"
	return nil
}

func (g *Generator) exitArray(p *Path) error {
	n := p.Node.(*Array)
	g.code[n] = "[" + g.joinExprs(n.Elems, ", ") + "]"
	return nil
}

func (g *Generator) exitObject(p *Path) error {
	n := p.Node.(*Object)
	parts := make([]string, 0, len(n.Spreads)+len(n.Props))
	for _, s := range n.Spreads {
		parts = append(parts, "..."+g.code[s])
	}
	for _, prop := range n.Props {
		parts = append(parts, objectKey(prop.Key)+": "+g.code[prop.Value])
	}
	g.code[n] = "{" + strings.Join(parts, ", ") + "}"
	return nil
}

func (g *Generator) exitFunctionCall(p *Path) error {
	n := p.Node.(*FunctionCall)
	g.code[n] = g.code[n.Fn] + "(" + g.joinExprs(n.Args, ", ") + ")"
	return nil
}

// objectKey renders an object literal key, quoting keys that are not
// identifiers.
func objectKey(key string) string {
	if key == "" {
		return `""`
	}
	for i, r := range key {
		if !isIdentStart(r) && (i == 0 || !isIdentChar(r)) {
			return jsString(key)
		}
	}
	return key
}
