package txml

// templatePass replaces <template> elements. With an is attribute the element
// instantiates a template, otherwise it defines one named by name.
func templatePass(root *Root, _ *Options) error {
	return replaceTag(root, "template", func(el *Element) (Node, error) {
		var data Expr
		if a := GetAttribute(el, "data"); a != nil {
			expr, err := singleExpr(el, "template data", a.Value)
			if err != nil {
				return nil, err
			}
			data = expr
		}

		if is := GetAttribute(el, "is"); is != nil {
			return &TemplateInstance{Is: exprsOf(is.Value), Data: data, Position: el.Position}, nil
		}

		name, ok, err := StringValueForAttribute(el, "name")
		if err != nil {
			return nil, err
		}
		if !ok || name == "" {
			return nil, semanticErrorf(el, "template must have a string name or an is attribute")
		}
		return &TemplateDefinition{Name: name, Data: data, Content: el.Children, Position: el.Position}, nil
	})
}
