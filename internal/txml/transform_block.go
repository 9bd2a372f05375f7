package txml

// blockPass replaces <block> with a Block carrying the same children.
func blockPass(root *Root, _ *Options) error {
	return replaceTag(root, "block", func(el *Element) (Node, error) {
		return &Block{Children: el.Children, Position: el.Position}, nil
	})
}
