package txml

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
)

func el(tag string, children ...Node) *Element {
	return &Element{Tag: tag, Children: children}
}

// tags lists the element tags of a walk in visiting order.
func tags(t *testing.T, root Node) []string {
	t.Helper()
	var out []string
	err := Walk(NewRootPath(root), &Visitor{
		Element: Hook{Enter: func(p *Path) error {
			out = append(out, p.Node.(*Element).Tag)
			return nil
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out
}

func TestWalk_EnterExitOrder(t *testing.T) {
	root := &Root{Children: []Node{el("a", el("b"), el("c")), el("d")}}

	var events []string
	record := func(prefix string) func(*Path) error {
		return func(p *Path) error {
			events = append(events, prefix+p.Node.(*Element).Tag)
			return nil
		}
	}
	err := Walk(NewRootPath(root), &Visitor{
		Element: Hook{Enter: record("+"), Exit: record("-")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"+a", "+b", "-b", "+c", "-c", "-a", "+d", "-d"}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("events = %v, want %v", events, want)
	}
}

func TestWalk_ChildOrder(t *testing.T) {
	type tc struct {
		node     Node
		expected []string
	}

	v := func(name string) *Variable { return &Variable{Name: name} }

	tests := map[string]tc{
		"element props before children": {
			node: &Element{
				Props:    []Prop{&Attribute{Name: "a", Value: []*ExprNode{{Expr: v("p")}}}},
				Children: []Node{&ExprNode{Expr: v("c")}},
			},
			expected: []string{"p", "c"},
		},
		"branch content before condition": {
			node:     &IfBranch{Cond: v("cond"), Content: &ExprNode{Expr: v("content")}},
			expected: []string{"content", "cond"},
		},
		"for data before content": {
			node:     &For{Data: v("data"), Content: &ExprNode{Expr: v("content")}},
			expected: []string{"data", "content"},
		},
		"slot name before content": {
			node:     &Slot{Name: []Expr{v("name")}, Content: []Node{&ExprNode{Expr: v("content")}}},
			expected: []string{"name", "content"},
		},
		"template instance is before data": {
			node:     &TemplateInstance{Is: []Expr{v("is")}, Data: v("data")},
			expected: []string{"is", "data"},
		},
		"object spreads before props": {
			node: &Object{
				Spreads: []Expr{v("spread")},
				Props:   []ObjectProp{{Key: "k", Value: v("value")}},
			},
			expected: []string{"spread", "value"},
		},
		"call function before args": {
			node:     &FunctionCall{Fn: v("fn"), Args: []Expr{v("a"), v("b")}},
			expected: []string{"fn", "a", "b"},
		},
		"ternary in source order": {
			node:     &Ternary{Cond: v("c"), Success: v("s"), Fail: v("f")},
			expected: []string{"c", "s", "f"},
		},
		"nil fields skipped": {
			node:     &TemplateInstance{Is: []Expr{v("is")}},
			expected: []string{"is"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var got []string
			err := Walk(NewRootPath(tt.node), &Visitor{
				Variable: Hook{Enter: func(p *Path) error {
					got = append(got, p.Node.(*Variable).Name)
					return nil
				}},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("visited %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWalk_ErrorStopsWalk(t *testing.T) {
	root := &Root{Children: []Node{el("a"), el("stop"), el("b")}}
	boom := errors.New("boom")

	var seen []string
	err := Walk(NewRootPath(root), &Visitor{
		Element: Hook{Enter: func(p *Path) error {
			tag := p.Node.(*Element).Tag
			seen = append(seen, tag)
			if tag == "stop" {
				return boom
			}
			return nil
		}},
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if !reflect.DeepEqual(seen, []string{"a", "stop"}) {
		t.Errorf("seen = %v, want [a stop]", seen)
	}
}

func TestPath_RemoveNode(t *testing.T) {
	type tc struct {
		// remove returns the tags to remove when the walk exits the given tag.
		remove   func(tag string) []string
		visited  []string
		expected []string
	}

	tests := map[string]tc{
		"remove self": {
			remove: func(tag string) []string {
				if tag == "b" {
					return []string{"b"}
				}
				return nil
			},
			visited:  []string{"a", "b", "c", "d"},
			expected: []string{"a", "c", "d"},
		},
		"remove following siblings": {
			remove: func(tag string) []string {
				if tag == "a" {
					return []string{"b", "c"}
				}
				return nil
			},
			visited:  []string{"a", "d"},
			expected: []string{"a", "d"},
		},
		"remove preceding sibling": {
			remove: func(tag string) []string {
				if tag == "c" {
					return []string{"a"}
				}
				return nil
			},
			visited:  []string{"a", "b", "c", "d"},
			expected: []string{"b", "c", "d"},
		},
		"remove every node": {
			remove: func(tag string) []string {
				return []string{tag}
			},
			visited:  []string{"a", "b", "c", "d"},
			expected: []string{},
		},
		"remove self and next": {
			remove: func(tag string) []string {
				if tag == "b" {
					return []string{"b", "c"}
				}
				return nil
			},
			visited:  []string{"a", "b", "d"},
			expected: []string{"a", "d"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			nodes := map[string]*Element{}
			root := &Root{}
			for _, tag := range []string{"a", "b", "c", "d"} {
				nodes[tag] = el(tag)
				root.Children = append(root.Children, nodes[tag])
			}

			var visited []string
			err := Walk(NewRootPath(root), &Visitor{
				Element: Hook{Exit: func(p *Path) error {
					tag := p.Node.(*Element).Tag
					visited = append(visited, tag)
					for _, r := range tt.remove(tag) {
						if !RemoveNode(p, nodes[r]) {
							return fmt.Errorf("%s not found", r)
						}
					}
					return nil
				}},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(visited, tt.visited) {
				t.Errorf("visited = %v, want %v", visited, tt.visited)
			}
			got := []string{}
			for _, n := range root.Children {
				got = append(got, n.(*Element).Tag)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("children = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPath_RemoveNodeOutsideList(t *testing.T) {
	root := &Root{}
	if RemoveNode(NewRootPath(root), root) {
		t.Error("RemoveNode on root path reported success")
	}

	f := &For{Content: el("a")}
	removed := true
	err := Walk(NewRootPath(f), &Visitor{
		Element: Hook{Exit: func(p *Path) error {
			removed = RemoveNode(p, p.Node)
			return nil
		}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Error("RemoveNode on field path reported success")
	}
	if f.Content == nil {
		t.Error("field content was cleared")
	}
}

func TestPath_ReplaceNode(t *testing.T) {
	t.Run("list member", func(t *testing.T) {
		root := &Root{Children: []Node{el("a"), el("b"), el("c")}}
		err := Walk(NewRootPath(root), &Visitor{
			Element: Hook{Exit: func(p *Path) error {
				if p.Node.(*Element).Tag == "b" {
					ReplaceNode(p, &Block{Children: []Node{el("x")}})
				}
				return nil
			}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := root.Children[1].(*Block); !ok {
			t.Fatalf("children[1] = %T, want *Block", root.Children[1])
		}
		if got := tags(t, root); !reflect.DeepEqual(got, []string{"a", "x", "c"}) {
			t.Errorf("tags = %v, want [a x c]", got)
		}
	})

	t.Run("single field", func(t *testing.T) {
		f := &For{Data: &Variable{Name: "list"}, Content: el("a")}
		err := Walk(NewRootPath(f), &Visitor{
			Element: Hook{Exit: func(p *Path) error {
				ReplaceNode(p, el("b"))
				return nil
			}},
			Variable: Hook{Exit: func(p *Path) error {
				ReplaceNode(p, &Variable{Name: "other"})
				return nil
			}},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := f.Content.(*Element).Tag; got != "b" {
			t.Errorf("content tag = %q, want b", got)
		}
		if got := f.Data.(*Variable).Name; got != "other" {
			t.Errorf("data = %q, want other", got)
		}
	})

	t.Run("exit hook sees replacement", func(t *testing.T) {
		root := &Root{Children: []Node{el("a")}}
		var exited Node
		err := Walk(NewRootPath(root), &Visitor{
			Element: Hook{
				Enter: func(p *Path) error {
					ReplaceNode(p, el("b"))
					return nil
				},
				Exit: func(p *Path) error {
					exited = p.Node
					return nil
				},
			},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exited != root.Children[0] {
			t.Error("exit hook did not see the replacement node")
		}
	})
}
