package txml

// forPass wraps every element carrying a for directive in a For node. The
// for, for-item and for-index directives are stripped from the element.
func forPass(root *Root, opts *Options) error {
	return Walk(NewRootPath(root), &Visitor{
		Element: Hook{Exit: func(p *Path) error {
			el := p.Node.(*Element)
			dir := GetDirective(el, "for", opts)
			if dir == nil {
				return nil
			}
			data, err := singleExpr(el, "directive for", dir.Value)
			if err != nil {
				return err
			}
			indexName, err := StringValueForDirective(el, "for-index", "index", opts)
			if err != nil {
				return err
			}
			itemName, err := StringValueForDirective(el, "for-item", "item", opts)
			if err != nil {
				return err
			}

			RemoveDirective(el, "for")
			RemoveDirective(el, "for-index")
			RemoveDirective(el, "for-item")
			ReplaceNode(p, &For{
				Data:      data,
				ItemName:  itemName,
				IndexName: indexName,
				Content:   el,
				Position:  el.Position,
			})
			return nil
		}},
	})
}
