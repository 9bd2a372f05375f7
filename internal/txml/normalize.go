package txml

import "strings"

const whitespace = " \t\r\n"

// Normalize merges adjacent text children and trims whitespace that only
// separates text from elements.
//
// Leading whitespace of a text run is removed when the run starts the list or
// follows an element, trailing whitespace when it ends the list or precedes an
// element. Runs that become empty are dropped. Whitespace next to a
// non-constant expression is kept as is.
func Normalize(children []Node) []Node {
	merged := make([]Node, 0, len(children))
	for _, child := range children {
		if text := textConst(child); text != nil && len(merged) > 0 {
			if prev := textConst(merged[len(merged)-1]); prev != nil {
				prev.Str += text.Str
				continue
			}
		}
		merged = append(merged, child)
	}

	out := make([]Node, 0, len(merged))
	for i, child := range merged {
		text := textConst(child)
		if text == nil {
			out = append(out, child)
			continue
		}
		s := text.Str
		if i == 0 || isElement(merged[i-1]) {
			s = strings.TrimLeft(s, whitespace)
		}
		if i == len(merged)-1 || isElement(merged[i+1]) {
			s = strings.TrimRight(s, whitespace)
		}
		if s == "" {
			continue
		}
		text.Str = s
		out = append(out, child)
	}
	return out
}

// textConst returns the string constant held by a text child, or nil.
func textConst(n Node) *Constant {
	en, ok := n.(*ExprNode)
	if !ok {
		return nil
	}
	c, ok := en.Expr.(*Constant)
	if !ok || c.Kind != ConstString {
		return nil
	}
	return c
}

func isElement(n Node) bool {
	_, ok := n.(*Element)
	return ok
}
