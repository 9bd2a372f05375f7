package txml

// Hook holds the callbacks a Visitor runs for one node kind. Either may be nil.
type Hook struct {
	Enter func(*Path) error
	Exit  func(*Path) error
}

// Visitor maps node kinds to hooks. Kinds left empty are walked through
// without callbacks.
type Visitor struct {
	Root               Hook
	Element            Hook
	Attribute          Hook
	Directive          Hook
	ExprNode           Hook
	Interpolation      Hook
	If                 Hook
	IfBranch           Hook
	For                Hook
	Block              Hook
	Slot               Hook
	TemplateDefinition Hook
	TemplateInstance   Hook
	Import             Hook
	Include            Hook
	SjsImport          Hook

	Constant     Hook
	Variable     Hook
	ObjectAccess Hook
	OneArg       Hook
	Arithmetic   Hook
	Condition    Hook
	Ternary      Hook
	Array        Hook
	Object       Hook
	FunctionCall Hook
}

func (v *Visitor) hook(n Node) Hook {
	switch n.(type) {
	case *Root:
		return v.Root
	case *Element:
		return v.Element
	case *Attribute:
		return v.Attribute
	case *Directive:
		return v.Directive
	case *ExprNode:
		return v.ExprNode
	case *Interpolation:
		return v.Interpolation
	case *If:
		return v.If
	case *IfBranch:
		return v.IfBranch
	case *For:
		return v.For
	case *Block:
		return v.Block
	case *Slot:
		return v.Slot
	case *TemplateDefinition:
		return v.TemplateDefinition
	case *TemplateInstance:
		return v.TemplateInstance
	case *Import:
		return v.Import
	case *Include:
		return v.Include
	case *SjsImport:
		return v.SjsImport
	case *Constant:
		return v.Constant
	case *Variable:
		return v.Variable
	case *ObjectAccess:
		return v.ObjectAccess
	case *OneArg:
		return v.OneArg
	case *Arithmetic:
		return v.Arithmetic
	case *Condition:
		return v.Condition
	case *Ternary:
		return v.Ternary
	case *Array:
		return v.Array
	case *Object:
		return v.Object
	case *FunctionCall:
		return v.FunctionCall
	}
	return Hook{}
}

// Walk visits p.Node and its descendants depth first. The hooks for a node are
// chosen when the walk reaches it, so an Exit hook still runs after its own
// node has been replaced. The first hook error aborts the walk.
func Walk(p *Path, v *Visitor) error {
	h := v.hook(p.Node)
	if h.Enter != nil {
		if err := h.Enter(p); err != nil {
			return err
		}
	}
	if err := walkChildren(p, v); err != nil {
		return err
	}
	if h.Exit != nil {
		return h.Exit(p)
	}
	return nil
}

// walkChildren visits the structural children of p.Node in their fixed order.
func walkChildren(p *Path, v *Visitor) error {
	switch n := p.Node.(type) {
	case *Root:
		return walkList(p, v, "children", NewSiblings(&n.Children))

	case *Element:
		if err := walkList(p, v, "props", NewSiblings(&n.Props)); err != nil {
			return err
		}
		return walkList(p, v, "children", NewSiblings(&n.Children))

	case *Attribute:
		return walkList(p, v, "value", NewSiblings(&n.Value))

	case *Directive:
		return walkList(p, v, "value", NewSiblings(&n.Value))

	case *ExprNode:
		return walkExpr(p, v, "expr", &n.Expr)

	case *Interpolation:
		return walkList(p, v, "children", NewSiblings(&n.Children))

	case *If:
		return walkList(p, v, "branches", NewSiblings(&n.Branches))

	case *IfBranch:
		if err := walkNode(p, v, "content", &n.Content); err != nil {
			return err
		}
		return walkExpr(p, v, "cond", &n.Cond)

	case *For:
		if err := walkExpr(p, v, "data", &n.Data); err != nil {
			return err
		}
		return walkNode(p, v, "content", &n.Content)

	case *Block:
		return walkList(p, v, "children", NewSiblings(&n.Children))

	case *Slot:
		if err := walkList(p, v, "name", NewSiblings(&n.Name)); err != nil {
			return err
		}
		return walkList(p, v, "content", NewSiblings(&n.Content))

	case *TemplateDefinition:
		if err := walkExpr(p, v, "data", &n.Data); err != nil {
			return err
		}
		return walkList(p, v, "content", NewSiblings(&n.Content))

	case *TemplateInstance:
		if err := walkList(p, v, "is", NewSiblings(&n.Is)); err != nil {
			return err
		}
		return walkExpr(p, v, "data", &n.Data)

	case *ObjectAccess:
		return walkExpr(p, v, "expr", &n.Expr)

	case *OneArg:
		return walkExpr(p, v, "expr", &n.Expr)

	case *Arithmetic:
		if err := walkExpr(p, v, "left", &n.Left); err != nil {
			return err
		}
		return walkExpr(p, v, "right", &n.Right)

	case *Condition:
		if err := walkExpr(p, v, "left", &n.Left); err != nil {
			return err
		}
		return walkExpr(p, v, "right", &n.Right)

	case *Ternary:
		if err := walkExpr(p, v, "cond", &n.Cond); err != nil {
			return err
		}
		if err := walkExpr(p, v, "success", &n.Success); err != nil {
			return err
		}
		return walkExpr(p, v, "fail", &n.Fail)

	case *Array:
		return walkList(p, v, "elems", NewSiblings(&n.Elems))

	case *Object:
		if err := walkList(p, v, "spreads", NewSiblings(&n.Spreads)); err != nil {
			return err
		}
		for i := range n.Props {
			if err := walkExpr(p, v, "props", &n.Props[i].Value); err != nil {
				return err
			}
		}
		return nil

	case *FunctionCall:
		if err := walkExpr(p, v, "fn", &n.Fn); err != nil {
			return err
		}
		return walkList(p, v, "args", NewSiblings(&n.Args))
	}
	return nil
}

// walkList visits every node of a list field. Removals recorded on the list
// move the cursor back so no sibling is skipped or visited twice.
func walkList(parent *Path, v *Visitor, key string, s *Siblings) error {
	for i := 0; i < s.Len(); i++ {
		if err := Walk(NewListPath(parent, key, s, i), v); err != nil {
			return err
		}
		i -= s.takeShift()
	}
	return nil
}

// walkNode visits a single node field. Nil fields are skipped.
func walkNode(parent *Path, v *Visitor, key string, field *Node) error {
	if *field == nil {
		return nil
	}
	return Walk(NewFieldPath(parent, key, *field, func(n Node) { *field = n }), v)
}

// walkExpr visits a single expression field. Nil fields are skipped.
func walkExpr(parent *Path, v *Visitor, key string, field *Expr) error {
	if *field == nil {
		return nil
	}
	return Walk(NewFieldPath(parent, key, *field, func(n Node) { *field = n.(Expr) }), v)
}
