package txml

import (
	"fmt"
	"slices"
)

// Path locates a node inside the tree during a walk. It is the only way
// passes change the shape of the tree: ReplaceNode rewrites the slot the node
// lives in and RemoveNode deletes a node from the list it lives in.
type Path struct {
	Node   Node
	Parent *Path
	Key    string // field of Parent.Node that holds Node
	Index  int    // position in the Key list, -1 for single fields and the root

	siblings *Siblings  // list holding Node, nil unless list-positioned
	assign   func(Node) // setter for a single field, nil unless field-positioned
	removed  bool       // Node itself was removed from siblings
}

// NewRootPath wraps the root of a walk. It has no parent; replacing or
// removing it has no effect on any tree.
func NewRootPath(n Node) *Path {
	return &Path{Node: n, Index: -1}
}

// NewFieldPath wraps a node held by a single field of parent. assign stores a
// replacement into that field.
func NewFieldPath(parent *Path, key string, n Node, assign func(Node)) *Path {
	return &Path{Node: n, Parent: parent, Key: key, Index: -1, assign: assign}
}

// NewListPath wraps the node at index of a list field of parent.
func NewListPath(parent *Path, key string, siblings *Siblings, index int) *Path {
	return &Path{
		Node:     siblings.list.At(index),
		Parent:   parent,
		Key:      key,
		Index:    index,
		siblings: siblings,
	}
}

// ReplaceNode puts n in the position p refers to and updates p.Node.
//
// It must only be called for the node currently being visited, normally from
// an Exit hook. Calling it through a stale path leaves the tree undefined.
func ReplaceNode(p *Path, n Node) {
	old := p.Node
	p.Node = n
	switch {
	case p.siblings != nil:
		i := p.siblings.indexOf(old)
		if i < 0 {
			i = p.Index
		}
		if i >= 0 && i < p.siblings.list.Len() {
			p.siblings.list.Set(i, n)
		}
	case p.assign != nil:
		p.assign(n)
	}
}

// RemoveNode removes n from the list p is positioned in. The node is looked up
// by identity since earlier removals may have shifted indices. It reports
// whether n was found; root and field paths are never list members.
//
// Removing a node at or before p's own index records a shift on the list so
// the walker revisits the slot instead of skipping the next sibling.
func RemoveNode(p *Path, n Node) bool {
	if p.siblings == nil {
		return false
	}
	i := p.siblings.indexOf(n)
	if i < 0 {
		return false
	}
	p.siblings.list.Delete(i)
	switch {
	case i == p.Index && !p.removed:
		p.siblings.shift++
		p.removed = true
	case i < p.Index:
		p.siblings.shift++
		p.Index--
	}
	return true
}

// Siblings is a list field being walked. It counts removals that moved the
// walker's cursor.
type Siblings struct {
	list  nodeList
	shift int
}

// NewSiblings wraps a slice field of a node.
func NewSiblings[T Node](s *[]T) *Siblings {
	return &Siblings{list: sliceList[T]{s: s}}
}

// Len returns the current length of the list.
func (s *Siblings) Len() int {
	return s.list.Len()
}

// At returns the node at index i.
func (s *Siblings) At(i int) Node {
	return s.list.At(i)
}

// takeShift returns and clears the pending cursor shift.
func (s *Siblings) takeShift() int {
	n := s.shift
	s.shift = 0
	return n
}

func (s *Siblings) indexOf(n Node) int {
	for i := range s.list.Len() {
		if s.list.At(i) == n {
			return i
		}
	}
	return -1
}

// nodeList abstracts over the typed slices nodes hold their children in.
type nodeList interface {
	Len() int
	At(i int) Node
	Set(i int, n Node)
	Delete(i int)
}

type sliceList[T Node] struct {
	s *[]T
}

func (l sliceList[T]) Len() int      { return len(*l.s) }
func (l sliceList[T]) At(i int) Node { return (*l.s)[i] }
func (l sliceList[T]) Delete(i int)  { *l.s = slices.Delete(*l.s, i, i+1) }

func (l sliceList[T]) Set(i int, n Node) {
	v, ok := n.(T)
	if !ok {
		panic(fmt.Sprintf("txml: cannot place %T in list of %T", n, (*l.s)[i]))
	}
	(*l.s)[i] = v
}
