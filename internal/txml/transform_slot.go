package txml

// DefaultSlotName names the slot a <slot> without a name attribute renders.
const DefaultSlotName = "$default"

// slotPass replaces <slot name="...">fallback</slot> with a Slot node.
func slotPass(root *Root, _ *Options) error {
	return replaceTag(root, "slot", func(el *Element) (Node, error) {
		name := []Expr{StringConst(DefaultSlotName, el.Position)}
		if a := GetAttribute(el, "name"); a != nil {
			name = exprsOf(a.Value)
		}
		return &Slot{Name: name, Content: el.Children, Position: el.Position}, nil
	})
}
