package txml

import "strconv"

// Binary operator tables, one per precedence level.
var (
	orOps       = map[TokenType]ConditionOp{TokenOrOr: OpOr}
	andOps      = map[TokenType]ConditionOp{TokenAndAnd: OpAnd}
	equalityOps = map[TokenType]ConditionOp{
		TokenEq:          OpEqual,
		TokenStrictEq:    OpStrictEqual,
		TokenNotEq:       OpNotEqual,
		TokenStrictNotEq: OpStrictNotEqual,
	}
	relationalOps = map[TokenType]ConditionOp{
		TokenLt:   OpLess,
		TokenLtEq: OpLessEqual,
		TokenGt:   OpGreater,
		TokenGtEq: OpGreaterEqual,
	}
	additiveOps = map[TokenType]ArithmeticOp{
		TokenPlus:  OpAdd,
		TokenMinus: OpSubtract,
	}
	multiplicativeOps = map[TokenType]ArithmeticOp{
		TokenStar:     OpMultiply,
		TokenSlash:    OpDivide,
		TokenPercent:  OpModulo,
		TokenStarStar: OpPower,
	}
)

// parseExpression parses a full expression.
// Precedence, lowest first: ternary, ||, &&, equality, relational,
// additive, multiplicative and **, unary, member access and call, atom.
func (p *Parser) parseExpression() Expr {
	return p.parseTernary()
}

func (p *Parser) parseTernary() Expr {
	cond := p.parseOr()
	if cond == nil || p.current.Type != TokenQuestion {
		return cond
	}
	p.advance()

	success := p.parseTernary()
	if success == nil || !p.expect(TokenColon) {
		return nil
	}
	fail := p.parseTernary()
	if fail == nil {
		return nil
	}
	return &Ternary{Cond: cond, Success: success, Fail: fail, Position: cond.Pos()}
}

func (p *Parser) parseOr() Expr {
	return p.parseConditionLevel(p.parseAnd, orOps)
}

func (p *Parser) parseAnd() Expr {
	return p.parseConditionLevel(p.parseEquality, andOps)
}

func (p *Parser) parseEquality() Expr {
	return p.parseConditionLevel(p.parseRelational, equalityOps)
}

func (p *Parser) parseRelational() Expr {
	return p.parseConditionLevel(p.parseAdditive, relationalOps)
}

func (p *Parser) parseAdditive() Expr {
	return p.parseArithmeticLevel(p.parseMultiplicative, additiveOps)
}

func (p *Parser) parseMultiplicative() Expr {
	return p.parseArithmeticLevel(p.parseUnary, multiplicativeOps)
}

// parseConditionLevel parses a left-associative chain of comparison or
// logical operators.
func (p *Parser) parseConditionLevel(next func() Expr, ops map[TokenType]ConditionOp) Expr {
	left := next()
	for left != nil {
		op, ok := ops[p.current.Type]
		if !ok {
			return left
		}
		p.advance()
		right := next()
		if right == nil {
			return nil
		}
		left = &Condition{Op: op, Left: left, Right: right, Position: left.Pos()}
	}
	return nil
}

// parseArithmeticLevel parses a left-associative chain of arithmetic operators.
func (p *Parser) parseArithmeticLevel(next func() Expr, ops map[TokenType]ArithmeticOp) Expr {
	left := next()
	for left != nil {
		op, ok := ops[p.current.Type]
		if !ok {
			return left
		}
		p.advance()
		right := next()
		if right == nil {
			return nil
		}
		left = &Arithmetic{Op: op, Left: left, Right: right, Position: left.Pos()}
	}
	return nil
}

// parseUnary parses -x and !x. A minus applied to a number literal folds
// into a negative constant.
func (p *Parser) parseUnary() Expr {
	var op OneArgOp
	switch p.current.Type {
	case TokenMinus:
		op = OpMinus
	case TokenBang:
		op = OpNot
	default:
		return p.parsePostfix()
	}
	pos := p.position()
	p.advance()

	operand := p.parseUnary()
	if operand == nil {
		return nil
	}
	if c, ok := operand.(*Constant); ok && op == OpMinus && c.Kind == ConstNumber {
		return NumberConst(-c.Num, pos)
	}
	return &OneArg{Op: op, Expr: operand, Position: pos}
}

// parsePostfix parses member access (a.b.c) and calls (f(x)).
func (p *Parser) parsePostfix() Expr {
	expr := p.parseAtom()
	for expr != nil {
		switch p.current.Type {
		case TokenDot:
			p.advance()
			if !isPropertyName(p.current.Type) {
				p.errorf("expected property name after '.', got %s", describe(p.current))
				return nil
			}
			name := p.current.Literal
			p.advance()
			if access, ok := expr.(*ObjectAccess); ok {
				access.Paths = append(access.Paths, name)
			} else {
				expr = &ObjectAccess{Expr: expr, Paths: []string{name}, Position: expr.Pos()}
			}
		case TokenLParen:
			args, ok := p.parseList(TokenRParen)
			if !ok {
				return nil
			}
			expr = &FunctionCall{Fn: expr, Args: args, Position: expr.Pos()}
		default:
			return expr
		}
	}
	return nil
}

// isPropertyName reports whether a token can name a member after '.'.
func isPropertyName(t TokenType) bool {
	switch t {
	case TokenIdent, TokenTrue, TokenFalse, TokenNull, TokenUndefined:
		return true
	}
	return false
}

func (p *Parser) parseAtom() Expr {
	pos := p.position()
	switch p.current.Type {
	case TokenNumber:
		n, err := strconv.ParseFloat(p.current.Literal, 64)
		if err != nil {
			p.errorf("invalid number %q", p.current.Literal)
			return nil
		}
		p.advance()
		return NumberConst(n, pos)
	case TokenTrue, TokenFalse:
		b := p.current.Type == TokenTrue
		p.advance()
		return BoolConst(b, pos)
	case TokenNull:
		p.advance()
		return &Constant{Kind: ConstNull, Position: pos}
	case TokenUndefined:
		p.advance()
		return &Constant{Kind: ConstUndefined, Position: pos}
	case TokenIdent:
		name := p.current.Literal
		p.advance()
		return &Variable{Name: name, Position: pos}
	case TokenQuote:
		return p.parseStringLiteral()
	case TokenLParen:
		p.advance()
		expr := p.parseExpression()
		if expr == nil || !p.expect(TokenRParen) {
			return nil
		}
		return expr
	case TokenLBracket:
		elems, ok := p.parseList(TokenRBracket)
		if !ok {
			return nil
		}
		return &Array{Elems: elems, Position: pos}
	case TokenLBrace:
		return p.parseObject()
	}
	p.errorf("expected expression, got %s", describe(p.current))
	return nil
}

// parseStringLiteral parses "text" or 'text' inside {{ }}.
func (p *Parser) parseStringLiteral() Expr {
	pos := p.position()
	p.advance() // consume opening quote

	text := ""
	if p.current.Type == TokenText {
		text = p.current.Literal
		p.advance()
	}
	if p.current.Type == TokenLExpr {
		p.errorf("{{ is not allowed inside a string literal")
		return nil
	}
	if !p.expect(TokenQuote) {
		return nil
	}
	return StringConst(text, pos)
}

// parseList parses a comma separated expression list between the current
// opening token and closing. A trailing comma is allowed.
func (p *Parser) parseList(closing TokenType) ([]Expr, bool) {
	p.advance() // consume opening token

	list := []Expr{}
	for p.current.Type != closing {
		expr := p.parseExpression()
		if expr == nil {
			return nil, false
		}
		list = append(list, expr)
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}
	if !p.expect(closing) {
		return nil, false
	}
	return list, true
}

// parseObject parses {key: value, ...spread}.
func (p *Parser) parseObject() Expr {
	obj := &Object{Position: p.position()}
	p.advance() // consume {
	return p.parseObjectMembers(obj, TokenRBrace)
}

// parseObjectMembers parses key: value and ...spread members into obj up to
// and including closing.
func (p *Parser) parseObjectMembers(obj *Object, closing TokenType) Expr {
	for p.current.Type != closing {
		if p.current.Type == TokenEllipsis {
			p.advance()
			spread := p.parseExpression()
			if spread == nil {
				return nil
			}
			obj.Spreads = append(obj.Spreads, spread)
		} else {
			key, ok := p.parseObjectKey()
			if !ok || !p.parseObjectValue(obj, key) {
				return nil
			}
		}
		if p.current.Type != TokenComma {
			break
		}
		p.advance()
	}
	if !p.expect(closing) {
		return nil
	}
	return obj
}

// parseObjectValue parses ": value" after key and appends the member.
func (p *Parser) parseObjectValue(obj *Object, key string) bool {
	if !p.expect(TokenColon) {
		return false
	}
	value := p.parseExpression()
	if value == nil {
		return false
	}
	obj.Props = append(obj.Props, ObjectProp{Key: key, Value: value})
	return true
}

// parseObjectKey parses an identifier or string key.
func (p *Parser) parseObjectKey() (string, bool) {
	switch p.current.Type {
	case TokenIdent:
		key := p.current.Literal
		p.advance()
		return key, true
	case TokenQuote:
		c, ok := p.parseStringLiteral().(*Constant)
		if !ok {
			return "", false
		}
		return c.Str, true
	}
	p.errorf("expected object key, got %s", describe(p.current))
	return "", false
}
