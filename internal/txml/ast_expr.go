package txml

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Expr is the interface implemented by expression nodes. Expressions are
// nodes too so that passes can visit and replace them with a Path.
type Expr interface {
	Node
	expr()
}

// ConstKind is the JS type of a Constant.
type ConstKind int

const (
	ConstString ConstKind = iota
	ConstNumber
	ConstBool
	ConstNull
	ConstUndefined
)

// Constant is a literal: string, number, boolean, null or undefined.
type Constant struct {
	Kind     ConstKind
	Str      string
	Num      float64
	Bool     bool
	Position Position
}

func (c *Constant) node()         {}
func (c *Constant) expr()         {}
func (c *Constant) Pos() Position { return c.Position }

// StringConst returns a string Constant.
func StringConst(s string, pos Position) *Constant {
	return &Constant{Kind: ConstString, Str: s, Position: pos}
}

// NumberConst returns a number Constant.
func NumberConst(n float64, pos Position) *Constant {
	return &Constant{Kind: ConstNumber, Num: n, Position: pos}
}

// BoolConst returns a boolean Constant.
func BoolConst(b bool, pos Position) *Constant {
	return &Constant{Kind: ConstBool, Bool: b, Position: pos}
}

// JS returns the constant as a JS literal, matching JSON.stringify for
// strings, numbers, booleans and null.
func (c *Constant) JS() string {
	switch c.Kind {
	case ConstString:
		return jsString(c.Str)
	case ConstNumber:
		return strconv.FormatFloat(c.Num, 'f', -1, 64)
	case ConstBool:
		return strconv.FormatBool(c.Bool)
	case ConstNull:
		return "null"
	}
	return "undefined"
}

// jsString quotes s as a JSON string literal without HTML escaping.
func jsString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s) // strings always encode
	return strings.TrimSuffix(buf.String(), "\n")
}

// Variable is a bare identifier.
type Variable struct {
	Name     string
	Position Position
}

func (v *Variable) node()         {}
func (v *Variable) expr()         {}
func (v *Variable) Pos() Position { return v.Position }

// ObjectAccess is a dotted member chain: Expr.Paths[0].Paths[1]...
type ObjectAccess struct {
	Expr     Expr
	Paths    []string
	Position Position
}

func (o *ObjectAccess) node()         {}
func (o *ObjectAccess) expr()         {}
func (o *ObjectAccess) Pos() Position { return o.Position }

// OneArgOp is a unary operator.
type OneArgOp int

const (
	OpMinus OneArgOp = iota
	OpNot
)

func (op OneArgOp) String() string {
	if op == OpNot {
		return "!"
	}
	return "-"
}

// OneArg is a unary expression.
type OneArg struct {
	Op       OneArgOp
	Expr     Expr
	Position Position
}

func (o *OneArg) node()         {}
func (o *OneArg) expr()         {}
func (o *OneArg) Pos() Position { return o.Position }

// ArithmeticOp is a binary arithmetic operator.
type ArithmeticOp int

const (
	OpAdd ArithmeticOp = iota
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpPower
)

var arithmeticOps = [...]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "*",
	OpDivide:   "/",
	OpModulo:   "%",
	OpPower:    "**",
}

func (op ArithmeticOp) String() string { return arithmeticOps[op] }

// Arithmetic is a binary arithmetic expression.
type Arithmetic struct {
	Op          ArithmeticOp
	Left, Right Expr
	Position    Position
}

func (a *Arithmetic) node()         {}
func (a *Arithmetic) expr()         {}
func (a *Arithmetic) Pos() Position { return a.Position }

// ConditionOp is a comparison or logical operator.
type ConditionOp int

const (
	OpEqual ConditionOp = iota
	OpStrictEqual
	OpNotEqual
	OpStrictNotEqual
	OpLess
	OpLessEqual
	OpGreater
	OpGreaterEqual
	OpAnd
	OpOr
)

var conditionOps = [...]string{
	OpEqual:          "==",
	OpStrictEqual:    "===",
	OpNotEqual:       "!=",
	OpStrictNotEqual: "!==",
	OpLess:           "<",
	OpLessEqual:      "<=",
	OpGreater:        ">",
	OpGreaterEqual:   ">=",
	OpAnd:            "&&",
	OpOr:             "||",
}

func (op ConditionOp) String() string { return conditionOps[op] }

// Condition is a binary comparison or logical expression.
type Condition struct {
	Op          ConditionOp
	Left, Right Expr
	Position    Position
}

func (c *Condition) node()         {}
func (c *Condition) expr()         {}
func (c *Condition) Pos() Position { return c.Position }

// Ternary is cond ? success : fail.
type Ternary struct {
	Cond, Success, Fail Expr
	Position            Position
}

func (t *Ternary) node()         {}
func (t *Ternary) expr()         {}
func (t *Ternary) Pos() Position { return t.Position }

// Array is an array literal.
type Array struct {
	Elems    []Expr
	Position Position
}

func (a *Array) node()         {}
func (a *Array) expr()         {}
func (a *Array) Pos() Position { return a.Position }

// ObjectProp is one key: value entry of an Object literal.
type ObjectProp struct {
	Key   string
	Value Expr
}

// Object is an object literal. Spreads (...expr) are emitted before Props.
type Object struct {
	Spreads  []Expr
	Props    []ObjectProp
	Position Position
}

func (o *Object) node()         {}
func (o *Object) expr()         {}
func (o *Object) Pos() Position { return o.Position }

// FunctionCall is fn(args...).
type FunctionCall struct {
	Fn       Expr
	Args     []Expr
	Position Position
}

func (f *FunctionCall) node()         {}
func (f *FunctionCall) expr()         {}
func (f *FunctionCall) Pos() Position { return f.Position }
