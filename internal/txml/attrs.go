package txml

import "slices"

// GetDirective returns the last directive on el named name whose prefix is one
// of the configured prefixes, or nil.
func GetDirective(el *Element, name string, opts *Options) *Directive {
	opts = opts.withDefaults()
	for _, prop := range slices.Backward(el.Props) {
		d, ok := prop.(*Directive)
		if ok && d.Name == name && opts.isDirectivePrefix(d.Prefix) {
			return d
		}
	}
	return nil
}

// GetAttribute returns the last plain attribute on el named name, or nil.
func GetAttribute(el *Element, name string) *Attribute {
	for _, prop := range slices.Backward(el.Props) {
		a, ok := prop.(*Attribute)
		if ok && a.Name == name {
			return a
		}
	}
	return nil
}

// HasDirective reports whether el carries the named directive.
func HasDirective(el *Element, name string, opts *Options) bool {
	return GetDirective(el, name, opts) != nil
}

// RemoveDirective strips every directive named name from el, whatever its
// prefix.
func RemoveDirective(el *Element, name string) {
	el.Props = slices.DeleteFunc(el.Props, func(p Prop) bool {
		d, ok := p.(*Directive)
		return ok && d.Name == name
	})
}

// StringValueForDirective returns the string constant held by the named
// directive, or def when el has no such directive.
//
//	tiki:for-item="row"       -> "row"
//	tiki:for-item="{{'row'}}" -> "row"
//	tiki:for-item="{{row}}"   -> error, not a constant
//	tiki:for-item="a{{b}}"    -> error, more than one value
func StringValueForDirective(el *Element, name, def string, opts *Options) (string, error) {
	d := GetDirective(el, name, opts)
	if d == nil {
		return def, nil
	}
	return stringValue(el, "directive "+d.Name, d.Value)
}

// StringValueForAttribute returns the string constant held by the named
// attribute. ok is false when el has no such attribute.
func StringValueForAttribute(el *Element, name string) (value string, ok bool, err error) {
	a := GetAttribute(el, name)
	if a == nil {
		return "", false, nil
	}
	value, err = stringValue(el, "attribute "+a.Name, a.Value)
	if err != nil {
		return "", true, err
	}
	return value, true, nil
}

func stringValue(el *Element, what string, value []*ExprNode) (string, error) {
	if len(value) != 1 {
		return "", semanticErrorf(el, "%s must have 1 value", what)
	}
	c, ok := value[0].Expr.(*Constant)
	if !ok {
		return "", semanticErrorf(el, "%s must be a constant", what)
	}
	if c.Kind != ConstString {
		return "", semanticErrorf(el, "%s must be a string", what)
	}
	return c.Str, nil
}

// singleExpr returns the only expression of a prop value, reporting an error
// naming what when the value has several segments.
func singleExpr(el *Element, what string, value []*ExprNode) (Expr, error) {
	if len(value) != 1 {
		return nil, semanticErrorf(el, "%s must be a single expression", what)
	}
	return value[0].Expr, nil
}

// exprsOf unwraps prop value segments.
func exprsOf(value []*ExprNode) []Expr {
	out := make([]Expr, len(value))
	for i, n := range value {
		out[i] = n.Expr
	}
	return out
}
