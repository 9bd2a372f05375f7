package txml

import "slices"

// Summary describes which features a transformed document uses.
type Summary struct {
	Components  []string `json:"components"`
	UseIf       bool     `json:"useIf"`
	UseFor      bool     `json:"useFor"`
	UseSlot     bool     `json:"useSlot"`
	UseTemplate bool     `json:"useTemplate"`
	UseBlock    bool     `json:"useBlock"`
}

// Summarize reports the element tags of a transformed tree in order of first
// appearance and the control constructs it contains.
func Summarize(root *Root) Summary {
	s := Summary{Components: []string{}}
	mark := func(flag *bool) Hook {
		return Hook{Enter: func(*Path) error {
			*flag = true
			return nil
		}}
	}
	_ = Walk(NewRootPath(root), &Visitor{
		Element: Hook{Enter: func(p *Path) error {
			if tag := p.Node.(*Element).Tag; !slices.Contains(s.Components, tag) {
				s.Components = append(s.Components, tag)
			}
			return nil
		}},
		If:                 mark(&s.UseIf),
		For:                mark(&s.UseFor),
		Slot:               mark(&s.UseSlot),
		TemplateDefinition: mark(&s.UseTemplate),
		TemplateInstance:   mark(&s.UseTemplate),
		Block:              mark(&s.UseBlock),
	})
	return s
}
