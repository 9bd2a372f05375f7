package txml

// mergeExprPass turns every run of consecutive ExprNode children into one
// Interpolation. A run of one is converted too so later stages only ever see
// Interpolation for text content.
func mergeExprPass(root *Root, _ *Options) error {
	return Walk(NewRootPath(root), &Visitor{
		Root: Hook{Exit: func(p *Path) error {
			n := p.Node.(*Root)
			n.Children = mergeExprs(n.Children)
			return nil
		}},
		Element: Hook{Exit: func(p *Path) error {
			n := p.Node.(*Element)
			n.Children = mergeExprs(n.Children)
			return nil
		}},
		Block: Hook{Exit: func(p *Path) error {
			n := p.Node.(*Block)
			n.Children = mergeExprs(n.Children)
			return nil
		}},
		TemplateDefinition: Hook{Exit: func(p *Path) error {
			n := p.Node.(*TemplateDefinition)
			n.Content = mergeExprs(n.Content)
			return nil
		}},
		Slot: Hook{Exit: func(p *Path) error {
			n := p.Node.(*Slot)
			n.Content = mergeExprs(n.Content)
			return nil
		}},
	})
}

func mergeExprs(children []Node) []Node {
	if len(children) == 0 {
		return children
	}
	out := make([]Node, 0, len(children))
	var run *Interpolation
	for _, child := range children {
		en, ok := child.(*ExprNode)
		if !ok {
			run = nil
			out = append(out, child)
			continue
		}
		if run == nil {
			run = &Interpolation{Position: en.Position}
			out = append(out, run)
		}
		run.Children = append(run.Children, en.Expr)
	}
	return out
}
