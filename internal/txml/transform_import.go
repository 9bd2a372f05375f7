package txml

import (
	"slices"
	"strings"
)

// ImportIndex returns the position of src in the import table, appending it
// on first use. Repeated references to one path share an index.
func (r *Root) ImportIndex(src string) int {
	if i := slices.Index(r.Imports, src); i >= 0 {
		return i
	}
	r.Imports = append(r.Imports, src)
	return len(r.Imports) - 1
}

// importPass replaces <import src="x.txml"/> with an Import node.
func importPass(root *Root, _ *Options) error {
	return replaceTag(root, "import", func(el *Element) (Node, error) {
		src, err := txmlSource(el, "import")
		if err != nil {
			return nil, err
		}
		return &Import{Src: src, Index: root.ImportIndex(src), Position: el.Position}, nil
	})
}

// includePass replaces <include src="x.txml"/> with an Include node.
func includePass(root *Root, _ *Options) error {
	return replaceTag(root, "include", func(el *Element) (Node, error) {
		src, err := txmlSource(el, "include")
		if err != nil {
			return nil, err
		}
		return &Include{Src: src, Index: root.ImportIndex(src), Position: el.Position}, nil
	})
}

// importSjsPass replaces <import-sjs from="x.sjs" name="m"/> with a SjsImport.
func importSjsPass(root *Root, _ *Options) error {
	return replaceTag(root, "import-sjs", func(el *Element) (Node, error) {
		from, ok, err := StringValueForAttribute(el, "from")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, semanticErrorf(el, "import-sjs must have from")
		}
		if !strings.HasSuffix(from, ".sjs") {
			return nil, semanticErrorf(el, "import-sjs from must end with .sjs, got %q", from)
		}
		name, ok, err := StringValueForAttribute(el, "name")
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, semanticErrorf(el, "import-sjs must have name")
		}
		return &SjsImport{From: from, Name: name, Position: el.Position}, nil
	})
}

func txmlSource(el *Element, tag string) (string, error) {
	src, ok, err := StringValueForAttribute(el, "src")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", semanticErrorf(el, "%s must have src", tag)
	}
	if !strings.HasSuffix(src, ".txml") {
		return "", semanticErrorf(el, "%s src must end with .txml, got %q", tag, src)
	}
	return src, nil
}

// replaceTag walks root and, on exit of every element with the given tag,
// replaces it with the node build returns.
func replaceTag(root *Root, tag string, build func(*Element) (Node, error)) error {
	return Walk(NewRootPath(root), &Visitor{
		Element: Hook{Exit: func(p *Path) error {
			el := p.Node.(*Element)
			if el.Tag != tag {
				return nil
			}
			n, err := build(el)
			if err != nil {
				return err
			}
			ReplaceNode(p, n)
			return nil
		}},
	})
}
