package txml

import "fmt"

// Parser parses .txml source files into an AST.
//
// Parsing is fail-fast: the first error stops the parse and every parse
// method returns nil from then on.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
	errors  *ErrorList
}

// NewParser creates a new Parser for the given lexer.
func NewParser(lexer *Lexer) *Parser {
	p := &Parser{
		lexer:  lexer,
		errors: NewErrorList(),
	}
	// Read two tokens to initialize current and peek
	p.advance()
	p.advance()
	return p
}

// Errors returns any errors encountered during parsing.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

// advance moves to the next token.
func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lexer.Next()
}

// position returns the current token's position.
func (p *Parser) position() Position {
	return Position{
		File:   p.lexer.filename,
		Line:   p.current.Line,
		Column: p.current.Column,
	}
}

// failed reports whether an error has been recorded.
func (p *Parser) failed() bool {
	return p.errors.HasErrors()
}

// errorf records a syntax error at the current token. If the current token
// is a lexer error, the lexer's error is reported instead. It returns the
// recorded syntax error, or nil when none was added.
func (p *Parser) errorf(format string, args ...any) *Error {
	if p.failed() {
		return nil
	}
	if p.current.Type == TokenError && p.lexer.Errors().HasErrors() {
		p.errors.Add(p.lexer.Errors().Errors()[0])
		return nil
	}
	err := NewErrorf(SyntaxError, p.position(), format, args...)
	err.Text = p.current.Literal
	p.errors.Add(err)
	return err
}

// errorHintf is errorf with a suggestion for fixing the error.
func (p *Parser) errorHintf(hint, format string, args ...any) {
	if err := p.errorf(format, args...); err != nil {
		err.Hint = hint
	}
}

// expect checks if the current token matches the expected type and advances.
// Returns true if matched, false otherwise (and records an error).
func (p *Parser) expect(typ TokenType) bool {
	if p.current.Type == typ {
		p.advance()
		return true
	}
	p.errorf("expected %s, got %s", typ, describe(p.current))
	return false
}

// describe renders a token for error messages.
func describe(tok Token) string {
	switch tok.Type {
	case TokenEOF:
		return "end of input"
	case TokenText:
		return fmt.Sprintf("text %q", tok.Literal)
	}
	if tok.Literal != "" {
		return fmt.Sprintf("%q", tok.Literal)
	}
	return tok.Type.String()
}

// ParseRoot parses a whole document.
func (p *Parser) ParseRoot() *Root {
	root := &Root{Position: p.position()}
	children := p.parseChildren()
	if p.failed() {
		return nil
	}
	if p.current.Type != TokenEOF {
		p.errorf("unexpected %s", describe(p.current))
		return nil
	}
	root.Children = Normalize(children)
	return root
}

// parseChildren parses text, {{ }} and elements until a closing tag or EOF.
func (p *Parser) parseChildren() []Node {
	var children []Node
	for !p.failed() {
		switch p.current.Type {
		case TokenText:
			pos := p.position()
			children = append(children, &ExprNode{Expr: StringConst(p.current.Literal, pos), Position: pos})
			p.advance()
		case TokenLExpr:
			if n := p.parseExprNode(); n != nil {
				children = append(children, n)
			}
		case TokenLAngle:
			if el := p.parseElement(); el != nil {
				children = append(children, el)
			}
		case TokenLAngleSlash, TokenEOF:
			return children
		default:
			p.errorf("unexpected %s", describe(p.current))
		}
	}
	return nil
}

// parseExprNode parses {{ expr }}. The braces may also hold bare object
// members, as in {{ ...item, key: value }}, which form one Object.
func (p *Parser) parseExprNode() *ExprNode {
	pos := p.position()
	p.advance() // consume {{

	start := p.current
	if start.Type == TokenEllipsis || start.Type == TokenIdent && p.peek.Type == TokenColon {
		obj := p.parseObjectMembers(&Object{Position: p.position()}, TokenRExpr)
		if obj == nil {
			return nil
		}
		return &ExprNode{Expr: obj, Position: pos}
	}

	exprPos := p.position()
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}

	// A string literal followed by a colon is the first key of bare members.
	if c, ok := expr.(*Constant); ok && start.Type == TokenQuote && c.Kind == ConstString && p.current.Type == TokenColon {
		obj := &Object{Position: exprPos}
		if !p.parseObjectValue(obj, c.Str) {
			return nil
		}
		if p.current.Type == TokenComma {
			p.advance()
			if p.parseObjectMembers(obj, TokenRExpr) == nil {
				return nil
			}
		} else if !p.expect(TokenRExpr) {
			return nil
		}
		return &ExprNode{Expr: obj, Position: pos}
	}

	if !p.expect(TokenRExpr) {
		return nil
	}
	return &ExprNode{Expr: expr, Position: pos}
}
