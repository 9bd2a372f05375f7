package txml

// ifPass resolves if/elif/else directive chains into If nodes.
//
// On exit of an element carrying if, the following siblings are scanned: a run
// of elif elements, then at most one else element. The scan stops at the
// first sibling that is neither; a loop whose element carries elif or else
// becomes that branch as a whole. Consumed siblings are removed from the list
// and walked by this pass before they become branches, so chains nested in
// them are resolved too.
func ifPass(root *Root, opts *Options) error {
	v := &Visitor{}
	v.Element.Exit = func(p *Path) error {
		el := p.Node.(*Element)
		cond, ok, err := takeBranchDirective(el, "if", opts, "elif", "else")
		if err != nil {
			return err
		}
		if !ok {
			return orphanBranch(el, opts)
		}

		n := &If{Position: el.Position}
		n.Branches = append(n.Branches, &IfBranch{Cond: cond, Content: el, Position: el.Position})

		var consumed []Node
		if p.siblings != nil {
			for i := p.Index + 1; i < p.siblings.Len(); i++ {
				next := p.siblings.At(i)
				target := branchElement(next)
				if target == nil {
					break
				}
				branch, last, err := takeSiblingBranch(target, opts)
				if err != nil {
					return err
				}
				if branch == nil {
					break
				}
				branch.Content = next
				if err := Walk(NewRootPath(next), v); err != nil {
					return err
				}
				n.Branches = append(n.Branches, branch)
				consumed = append(consumed, next)
				if last {
					break
				}
			}
		}

		for _, c := range consumed {
			RemoveNode(p, c)
		}
		ReplaceNode(p, n)
		return nil
	}
	return Walk(NewRootPath(root), v)
}

// branchElement returns the element of sibling n that may carry elif or else.
// A loop is a branch when the element it repeats carries the directive.
func branchElement(n Node) *Element {
	switch n := n.(type) {
	case *Element:
		return n
	case *For:
		if el, ok := n.Content.(*Element); ok {
			return el
		}
	}
	return nil
}

// takeSiblingBranch converts an elif or else sibling into a branch. It returns
// a nil branch when el is neither; last is true for an else branch.
func takeSiblingBranch(el *Element, opts *Options) (branch *IfBranch, last bool, err error) {
	cond, ok, err := takeBranchDirective(el, "elif", opts, "if", "else")
	if err != nil {
		return nil, false, err
	}
	if ok {
		return &IfBranch{Cond: cond, Content: el, Position: el.Position}, false, nil
	}

	_, ok, err = takeBranchDirective(el, "else", opts, "if", "elif")
	if err != nil {
		return nil, false, err
	}
	if ok {
		return &IfBranch{Content: el, Position: el.Position}, true, nil
	}
	return nil, false, nil
}

// takeBranchDirective removes the named directive from el and returns its
// expression. It fails when el also carries one of the exclusive directives.
func takeBranchDirective(el *Element, name string, opts *Options, exclusive ...string) (Expr, bool, error) {
	dir := GetDirective(el, name, opts)
	if dir == nil {
		return nil, false, nil
	}
	for _, other := range exclusive {
		if HasDirective(el, other, opts) {
			return nil, false, semanticErrorf(el, "element cannot have both %s and %s directives", name, other)
		}
	}
	expr, err := singleExpr(el, "directive "+name, dir.Value)
	if err != nil {
		return nil, false, err
	}
	RemoveDirective(el, name)
	return expr, true, nil
}

// orphanBranch reports an elif or else that no preceding if consumed.
func orphanBranch(el *Element, opts *Options) error {
	for _, name := range []string{"elif", "else"} {
		if HasDirective(el, name, opts) {
			return semanticErrorf(el, "%s without preceding if", name)
		}
	}
	return nil
}
