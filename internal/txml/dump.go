package txml

import (
	"encoding/json"
	"io"
)

// FprintJSON writes n as indented JSON. Every node becomes an object whose
// "type" field names its kind.
func FprintJSON(w io.Writer, n Node) error {
	data, err := json.MarshalIndent(dumpNode(n), "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

type object = map[string]any

func dumpNode(n Node) any {
	if n == nil {
		return nil
	}
	switch n := n.(type) {
	case *Root:
		return object{"type": "Root", "children": dumpNodes(n.Children), "imports": n.Imports}
	case *Element:
		props := make([]any, len(n.Props))
		for i, p := range n.Props {
			props[i] = dumpNode(p)
		}
		return object{"type": "Element", "tag": n.Tag, "props": props, "children": dumpNodes(n.Children)}
	case *Attribute:
		return object{"type": "Attribute", "name": n.Name, "value": dumpNodes(n.Value)}
	case *Directive:
		return object{"type": "Directive", "prefix": n.Prefix, "name": n.Name, "value": dumpNodes(n.Value)}
	case *ExprNode:
		return object{"type": "ExprNode", "expr": dumpNode(n.Expr)}
	case *Interpolation:
		return object{"type": "Interpolation", "children": dumpNodes(n.Children)}
	case *If:
		return object{"type": "If", "branches": dumpNodes(n.Branches)}
	case *IfBranch:
		return object{"type": "IfBranch", "cond": dumpExpr(n.Cond), "content": dumpNode(n.Content)}
	case *For:
		return object{
			"type":      "For",
			"data":      dumpExpr(n.Data),
			"itemName":  n.ItemName,
			"indexName": n.IndexName,
			"content":   dumpNode(n.Content),
		}
	case *Block:
		return object{"type": "Block", "children": dumpNodes(n.Children)}
	case *Slot:
		return object{"type": "Slot", "name": dumpNodes(n.Name), "content": dumpNodes(n.Content)}
	case *TemplateDefinition:
		return object{"type": "TemplateDefinition", "name": n.Name, "data": dumpExpr(n.Data), "content": dumpNodes(n.Content)}
	case *TemplateInstance:
		return object{"type": "TemplateInstance", "is": dumpNodes(n.Is), "data": dumpExpr(n.Data)}
	case *Import:
		return object{"type": "Import", "src": n.Src, "index": n.Index}
	case *Include:
		return object{"type": "Include", "src": n.Src, "index": n.Index}
	case *SjsImport:
		return object{"type": "SjsImport", "from": n.From, "name": n.Name}
	case *Constant:
		return dumpConstant(n)
	case *Variable:
		return object{"type": "Variable", "name": n.Name}
	case *ObjectAccess:
		return object{"type": "ObjectAccess", "expr": dumpExpr(n.Expr), "paths": n.Paths}
	case *OneArg:
		return object{"type": "OneArg", "op": n.Op.String(), "expr": dumpExpr(n.Expr)}
	case *Arithmetic:
		return object{"type": "Arithmetic", "op": n.Op.String(), "left": dumpExpr(n.Left), "right": dumpExpr(n.Right)}
	case *Condition:
		return object{"type": "Condition", "op": n.Op.String(), "left": dumpExpr(n.Left), "right": dumpExpr(n.Right)}
	case *Ternary:
		return object{
			"type":    "Ternary",
			"cond":    dumpExpr(n.Cond),
			"success": dumpExpr(n.Success),
			"fail":    dumpExpr(n.Fail),
		}
	case *Array:
		return object{"type": "Array", "elems": dumpNodes(n.Elems)}
	case *Object:
		props := make([]any, len(n.Props))
		for i, p := range n.Props {
			props[i] = object{"key": p.Key, "value": dumpExpr(p.Value)}
		}
		return object{"type": "Object", "spreads": dumpNodes(n.Spreads), "props": props}
	case *FunctionCall:
		return object{"type": "FunctionCall", "fn": dumpExpr(n.Fn), "args": dumpNodes(n.Args)}
	}
	return object{"type": "Unknown"}
}

// dumpExpr keeps a nil expression field as JSON null.
func dumpExpr(e Expr) any {
	if e == nil {
		return nil
	}
	return dumpNode(e)
}

func dumpNodes[T Node](nodes []T) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = dumpNode(n)
	}
	return out
}

func dumpConstant(c *Constant) object {
	out := object{"type": "Constant"}
	switch c.Kind {
	case ConstString:
		out["value"] = c.Str
	case ConstNumber:
		out["value"] = c.Num
	case ConstBool:
		out["value"] = c.Bool
	case ConstNull:
		out["value"] = nil
	case ConstUndefined:
		out["undefined"] = true
	}
	return out
}
