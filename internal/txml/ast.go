package txml

// Node is the interface implemented by all AST nodes.
type Node interface {
	node()         // marker method to ensure type safety
	Pos() Position // returns the source position of the node
}

// Prop is an element property: an Attribute or a Directive.
type Prop interface {
	Node
	prop()
	PropName() string
	PropValue() []*ExprNode
}

// Root is the top of a parsed .txml document.
type Root struct {
	Children []Node
	Imports  []string // deduplicated import/include table, indexed by Import.Index
	Position Position
}

func (r *Root) node()         {}
func (r *Root) Pos() Position { return r.Position }

// Element represents a markup element: <tag props...>children</tag>.
type Element struct {
	Tag      string
	Props    []Prop
	Children []Node
	Position Position
}

func (e *Element) node()         {}
func (e *Element) Pos() Position { return e.Position }

// Attribute is a plain name="value" property.
type Attribute struct {
	Name     string
	Value    []*ExprNode // never empty; "" is a single empty Constant
	Position Position
}

func (a *Attribute) node()                  {}
func (a *Attribute) prop()                  {}
func (a *Attribute) Pos() Position          { return a.Position }
func (a *Attribute) PropName() string       { return a.Name }
func (a *Attribute) PropValue() []*ExprNode { return a.Value }

// Directive is a namespaced property such as tiki:if="{{cond}}".
type Directive struct {
	Prefix   string
	Name     string
	Value    []*ExprNode
	Position Position
}

func (d *Directive) node()                  {}
func (d *Directive) prop()                  {}
func (d *Directive) Pos() Position          { return d.Position }
func (d *Directive) PropName() string       { return d.Name }
func (d *Directive) PropValue() []*ExprNode { return d.Value }

// ExprNode wraps one expression appearing as a child or a value segment.
type ExprNode struct {
	Expr     Expr
	Position Position
}

func (e *ExprNode) node()         {}
func (e *ExprNode) Pos() Position { return e.Position }

// Interpolation is a run of adjacent text and {{ }} children merged into
// one stringification.
type Interpolation struct {
	Children []Expr
	Position Position
}

func (i *Interpolation) node()         {}
func (i *Interpolation) Pos() Position { return i.Position }

// If is a resolved if/elif/else chain.
type If struct {
	Branches []*IfBranch // only the last branch may have a nil Cond
	Position Position
}

func (i *If) node()         {}
func (i *If) Pos() Position { return i.Position }

// IfBranch is one arm of an If. A nil Cond marks the else branch.
type IfBranch struct {
	Cond     Expr
	Content  Node
	Position Position
}

func (b *IfBranch) node()         {}
func (b *IfBranch) Pos() Position { return b.Position }

// For repeats Content for each entry of Data.
type For struct {
	Data      Expr
	ItemName  string
	IndexName string
	Content   Node
	Position  Position
}

func (f *For) node()         {}
func (f *For) Pos() Position { return f.Position }

// Block groups children without a host element.
type Block struct {
	Children []Node
	Position Position
}

func (b *Block) node()         {}
func (b *Block) Pos() Position { return b.Position }

// Slot renders a named slot, falling back to Content.
type Slot struct {
	Name     []Expr
	Content  []Node
	Position Position
}

func (s *Slot) node()         {}
func (s *Slot) Pos() Position { return s.Position }

// TemplateDefinition is <template name="...">.
type TemplateDefinition struct {
	Name     string
	Data     Expr // optional
	Content  []Node
	Position Position
}

func (t *TemplateDefinition) node()         {}
func (t *TemplateDefinition) Pos() Position { return t.Position }

// TemplateInstance is <template is="..." data="...">.
type TemplateInstance struct {
	Is       []Expr
	Data     Expr // optional
	Position Position
}

func (t *TemplateInstance) node()         {}
func (t *TemplateInstance) Pos() Position { return t.Position }

// Import is <import src="x.txml"/>: brings the templates of another file in scope.
type Import struct {
	Src      string
	Index    int // position in Root.Imports
	Position Position
}

func (i *Import) node()         {}
func (i *Import) Pos() Position { return i.Position }

// Include is <include src="x.txml"/>: renders another file in place.
type Include struct {
	Src      string
	Index    int // position in Root.Imports
	Position Position
}

func (i *Include) node()         {}
func (i *Include) Pos() Position { return i.Position }

// SjsImport is <import-sjs from="x.sjs" name="m"/>.
type SjsImport struct {
	From     string
	Name     string
	Position Position
}

func (s *SjsImport) node()         {}
func (s *SjsImport) Pos() Position { return s.Position }
