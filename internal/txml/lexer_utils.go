package txml

import "strings"

// skipWhitespace skips spaces, tabs and newlines.
func (l *Lexer) skipWhitespace() {
	for isWhitespace(l.ch) {
		l.readChar()
	}
}

// skipComment skips an HTML comment starting at the current position.
// Returns false if the comment is not terminated.
func (l *Lexer) skipComment() bool {
	end := strings.Index(l.source[l.pos+len("<!--"):], "-->")
	if end < 0 {
		for l.ch != 0 {
			l.readChar()
		}
		return false
	}
	target := l.pos + len("<!--") + end + len("-->")
	for l.pos < target && l.ch != 0 {
		l.readChar()
	}
	return true
}

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// isLetter returns true if ch is an ASCII letter.
func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit returns true if ch is a decimal digit.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

// isNameStart reports whether ch can begin a tag or attribute name.
func isNameStart(ch rune) bool {
	return isLetter(ch) || ch == '_' || ch == '$'
}

// isNameChar reports whether ch can continue a tag or attribute name.
// Names may contain dashes (import-sjs, for-item).
func isNameChar(ch rune) bool {
	return isNameStart(ch) || isDigit(ch) || ch == '-'
}

// isIdentStart reports whether ch can begin an identifier inside {{ }}.
func isIdentStart(ch rune) bool {
	return isLetter(ch) || ch == '_' || ch == '$'
}

// isIdentChar reports whether ch can continue an identifier inside {{ }}.
func isIdentChar(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
