package txml

import (
	"fmt"
	"io"
	"os"
)

// Pass is a single tree rewrite of the transform pipeline.
type Pass struct {
	Name string
	Fn   func(root *Root, opts *Options) error
}

// PassConfig controls pass execution behavior.
type PassConfig struct {
	DumpBefore string    // dump the tree before this pass ("*" for all)
	DumpAfter  string    // dump the tree after this pass ("*" for all)
	Verify     bool      // check tree invariants after each pass
	Dump       io.Writer // dump destination, stderr when nil
}

// DefaultPasses returns the transform pipeline in execution order. Each pass
// relies on the output shape of the ones before it.
func DefaultPasses() []Pass {
	return []Pass{
		{Name: "mergeExpr", Fn: mergeExprPass},
		{Name: "import", Fn: importPass},
		{Name: "include", Fn: includePass},
		{Name: "importSjs", Fn: importSjsPass},
		{Name: "slot", Fn: slotPass},
		{Name: "template", Fn: templatePass},
		{Name: "block", Fn: blockPass},
		{Name: "for", Fn: forPass},
		{Name: "if", Fn: ifPass},
	}
}

// PassesThrough returns the default passes up to and including the named one.
func PassesThrough(name string) ([]Pass, error) {
	passes := DefaultPasses()
	for i, p := range passes {
		if p.Name == name {
			return passes[:i+1], nil
		}
	}
	return nil, fmt.Errorf("unknown pass %q", name)
}

// Transform runs the default pipeline on root.
func Transform(root *Root, opts *Options) error {
	return RunPasses(root, opts, DefaultPasses(), PassConfig{})
}

// RunPasses executes passes on root in order. The first failing pass aborts
// the pipeline.
func RunPasses(root *Root, opts *Options, passes []Pass, cfg PassConfig) error {
	opts = opts.withDefaults()
	w := cfg.Dump
	if w == nil {
		w = os.Stderr
	}

	for _, p := range passes {
		if shouldDump(cfg.DumpBefore, p.Name) {
			fmt.Fprintf(w, "--- before %s ---\n", p.Name)
			if err := FprintJSON(w, root); err != nil {
				return err
			}
		}

		if err := p.Fn(root, opts); err != nil {
			return err
		}

		if cfg.Verify {
			if err := Verify(root); err != nil {
				return fmt.Errorf("verify after %s: %w", p.Name, err)
			}
		}

		if shouldDump(cfg.DumpAfter, p.Name) {
			fmt.Fprintf(w, "--- after %s ---\n", p.Name)
			if err := FprintJSON(w, root); err != nil {
				return err
			}
		}
	}
	return nil
}

func shouldDump(pattern, name string) bool {
	return pattern == "*" || pattern == name
}

// Verify checks the structural invariants every pass must preserve: prop
// values are never empty and only the last branch of an If lacks a condition.
func Verify(root *Root) error {
	return Walk(NewRootPath(root), &Visitor{
		Attribute: Hook{Enter: func(p *Path) error {
			if a := p.Node.(*Attribute); len(a.Value) == 0 {
				return fmt.Errorf("%s: attribute %s has no value", a.Pos(), a.Name)
			}
			return nil
		}},
		Directive: Hook{Enter: func(p *Path) error {
			if d := p.Node.(*Directive); len(d.Value) == 0 {
				return fmt.Errorf("%s: directive %s:%s has no value", d.Pos(), d.Prefix, d.Name)
			}
			return nil
		}},
		If: Hook{Enter: func(p *Path) error {
			n := p.Node.(*If)
			if len(n.Branches) == 0 {
				return fmt.Errorf("%s: if has no branches", n.Pos())
			}
			for i, b := range n.Branches {
				if b.Cond == nil && i != len(n.Branches)-1 {
					return fmt.Errorf("%s: else branch %d is not last", n.Pos(), i)
				}
			}
			return nil
		}},
	})
}
