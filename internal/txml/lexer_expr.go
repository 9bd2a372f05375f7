package txml

// nextExpr lexes the inside of {{ }}.
func (l *Lexer) nextExpr() Token {
	l.skipWhitespace()
	l.startToken()

	switch l.ch {
	case 0:
		return l.makeToken(TokenEOF, "")

	case '}':
		if l.peekChar() == '}' {
			l.popMode()
			return l.consumeToken(TokenRExpr, "}}")
		}
		return l.consumeToken(TokenRBrace, "}")

	case '{':
		return l.consumeToken(TokenLBrace, "{")

	case '"', '\'':
		quote := l.ch
		l.pushMode(modeString, quote)
		return l.consumeToken(TokenQuote, string(quote))

	case '(':
		return l.consumeToken(TokenLParen, "(")
	case ')':
		return l.consumeToken(TokenRParen, ")")
	case '[':
		return l.consumeToken(TokenLBracket, "[")
	case ']':
		return l.consumeToken(TokenRBracket, "]")
	case ',':
		return l.consumeToken(TokenComma, ",")
	case ':':
		return l.consumeToken(TokenColon, ":")
	case '?':
		return l.consumeToken(TokenQuestion, "?")
	case '+':
		return l.consumeToken(TokenPlus, "+")
	case '-':
		return l.consumeToken(TokenMinus, "-")
	case '/':
		return l.consumeToken(TokenSlash, "/")
	case '%':
		return l.consumeToken(TokenPercent, "%")

	case '.':
		if l.hasPrefix("...") {
			return l.consumeToken(TokenEllipsis, "...")
		}
		if isDigit(l.peekChar()) {
			return l.readNumber()
		}
		return l.consumeToken(TokenDot, ".")

	case '*':
		if l.hasPrefix("**") {
			return l.consumeToken(TokenStarStar, "**")
		}
		return l.consumeToken(TokenStar, "*")

	case '=':
		if l.hasPrefix("===") {
			return l.consumeToken(TokenStrictEq, "===")
		}
		if l.hasPrefix("==") {
			return l.consumeToken(TokenEq, "==")
		}

	case '!':
		if l.hasPrefix("!==") {
			return l.consumeToken(TokenStrictNotEq, "!==")
		}
		if l.hasPrefix("!=") {
			return l.consumeToken(TokenNotEq, "!=")
		}
		return l.consumeToken(TokenBang, "!")

	case '<':
		if l.hasPrefix("<=") {
			return l.consumeToken(TokenLtEq, "<=")
		}
		return l.consumeToken(TokenLt, "<")

	case '>':
		if l.hasPrefix(">=") {
			return l.consumeToken(TokenGtEq, ">=")
		}
		return l.consumeToken(TokenGt, ">")

	case '&':
		if l.hasPrefix("&&") {
			return l.consumeToken(TokenAndAnd, "&&")
		}

	case '|':
		if l.hasPrefix("||") {
			return l.consumeToken(TokenOrOr, "||")
		}

	default:
		if isDigit(l.ch) {
			return l.readNumber()
		}
		if isIdentStart(l.ch) {
			return l.readIdent()
		}
	}

	ch := l.ch
	l.readChar()
	return l.errorToken(string(ch), "unexpected character %q in expression", ch)
}

// readNumber reads a decimal number: 12, 1.5, .5
func (l *Lexer) readNumber() Token {
	start := l.pos
	for isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar() // consume .
		for isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.makeToken(TokenNumber, l.source[start:l.pos])
}

// readIdent reads an identifier or literal keyword.
func (l *Lexer) readIdent() Token {
	start := l.pos
	for isIdentChar(l.ch) {
		l.readChar()
	}
	literal := l.source[start:l.pos]
	return l.makeToken(LookupIdent(literal), literal)
}
