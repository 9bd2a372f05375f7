package txml

import (
	"fmt"
	"strings"
)

// parseElement parses <tag props...>children</tag> or <tag props.../>.
func (p *Parser) parseElement() *Element {
	pos := p.position()
	p.advance() // consume <

	if p.current.Type != TokenIdent {
		p.errorf("expected tag name, got %s", describe(p.current))
		return nil
	}
	el := &Element{Tag: p.current.Literal, Position: pos}
	p.advance()

	for p.current.Type == TokenIdent || p.current.Type == TokenDirective {
		prop := p.parseProp()
		if prop == nil {
			return nil
		}
		el.Props = append(el.Props, prop)
	}

	switch p.current.Type {
	case TokenSlashAngle:
		p.advance()
		return el
	case TokenRAngle:
		p.advance()
	default:
		p.errorf("expected > or /> in <%s>, got %s", el.Tag, describe(p.current))
		return nil
	}

	children := p.parseChildren()
	if p.failed() {
		return nil
	}
	if p.current.Type != TokenLAngleSlash {
		p.errorHintf(fmt.Sprintf("close <%s> with </%s>", el.Tag, el.Tag),
			"unclosed element <%s>: expected </%s>, got %s", el.Tag, el.Tag, describe(p.current))
		return nil
	}
	p.advance() // consume </

	if p.current.Type != TokenIdent || p.current.Literal != el.Tag {
		p.errorHintf(fmt.Sprintf("close <%s> with </%s>", el.Tag, el.Tag),
			"invalid close tag: expected </%s>, got </%s>", el.Tag, p.current.Literal)
		return nil
	}
	p.advance()

	if !p.expect(TokenRAngle) {
		return nil
	}
	el.Children = Normalize(children)
	return el
}

// parseProp parses name="value", prefix:name="value" or a bare name.
// A bare name has the value true.
func (p *Parser) parseProp() Prop {
	pos := p.position()
	tok := p.current
	p.advance()

	var value []*ExprNode
	if p.current.Type == TokenEquals {
		p.advance()
		value = p.parseQuotedValue()
		if value == nil {
			return nil
		}
	} else {
		value = []*ExprNode{{Expr: BoolConst(true, pos), Position: pos}}
	}

	if tok.Type == TokenDirective {
		prefix, name, _ := strings.Cut(tok.Literal, ":")
		return &Directive{Prefix: prefix, Name: name, Value: value, Position: pos}
	}
	return &Attribute{Name: tok.Literal, Value: value, Position: pos}
}

// parseQuotedValue parses "text {{expr}} text" into alternating segments.
// An empty value yields a single empty string constant.
func (p *Parser) parseQuotedValue() []*ExprNode {
	if p.current.Type != TokenQuote {
		p.errorf("expected quoted value, got %s", describe(p.current))
		return nil
	}
	open := p.position()
	p.advance()

	var value []*ExprNode
	for !p.failed() {
		switch p.current.Type {
		case TokenQuote:
			p.advance()
			if len(value) == 0 {
				value = append(value, &ExprNode{Expr: StringConst("", open), Position: open})
			}
			return value
		case TokenText:
			pos := p.position()
			value = append(value, &ExprNode{Expr: StringConst(p.current.Literal, pos), Position: pos})
			p.advance()
		case TokenLExpr:
			if n := p.parseExprNode(); n != nil {
				value = append(value, n)
			}
		default:
			p.errorf("unterminated attribute value, got %s", describe(p.current))
		}
	}
	return nil
}
