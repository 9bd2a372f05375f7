package txml

// nextString lexes the inside of a quoted attribute value or string literal.
func (l *Lexer) nextString() Token {
	quote := l.states[len(l.states)-1].quote
	l.startToken()

	switch {
	case l.ch == 0:
		return l.errorToken("", "unterminated string")
	case l.ch == quote:
		l.popMode()
		return l.consumeToken(TokenQuote, string(quote))
	case l.hasPrefix("{{"):
		l.pushMode(modeExpr, 0)
		return l.consumeToken(TokenLExpr, "{{")
	}

	return l.readText(func() bool {
		return l.ch == quote || l.hasPrefix("{{")
	})
}

// readText reads a run of raw text until stop reports true or input ends.
// Backslash escapes are kept verbatim and never end the run.
func (l *Lexer) readText(stop func() bool) Token {
	start := l.pos
	for l.ch != 0 && !stop() {
		if l.ch == '\\' && l.peekChar() != 0 {
			l.readChar()
		}
		l.readChar()
	}
	return l.makeToken(TokenText, l.source[start:l.pos])
}
