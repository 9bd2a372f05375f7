package txml

import (
	"strings"
	"unicode/utf8"
)

// lexMode is the lexical state the lexer is in.
type lexMode int

const (
	modeChildren lexMode = iota // raw text between tags
	modeTag                     // inside <tag ...> or </tag>
	modeString                  // inside a quoted attribute value or string literal
	modeExpr                    // inside {{ }}
)

// lexState is one entry of the lexer's mode stack.
type lexState struct {
	mode  lexMode
	quote rune // closing quote for modeString
}

// Lexer tokenizes .txml source files.
type Lexer struct {
	filename string
	source   string
	pos      int  // current position in source
	readPos  int  // next position to read
	ch       rune // current character
	line     int  // current line (1-based)
	column   int  // current column (1-based)

	// Track the start position of current token
	tokenLine     int
	tokenColumn   int
	tokenStartPos int

	// Mode stack. {{ and quotes push, }} and closing quotes pop,
	// tag delimiters switch the top entry between children and tag.
	states []lexState

	errors *ErrorList
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(filename, source string) *Lexer {
	l := &Lexer{
		filename: filename,
		source:   source,
		line:     1,
		column:   0,
		states:   []lexState{{mode: modeChildren}},
		errors:   NewErrorList(),
	}
	l.readChar()
	return l
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// readChar advances to the next character in the source.
func (l *Lexer) readChar() {
	prevWasNewline := l.ch == '\n'

	if l.readPos >= len(l.source) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		if prevWasNewline {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		return
	}

	r, size := utf8.DecodeRuneInString(l.source[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size

	if prevWasNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// advance consumes n characters.
func (l *Lexer) advance(n int) {
	for range n {
		l.readChar()
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.readPos:])
	return r
}

// hasPrefix reports whether the unread input starts with s.
func (l *Lexer) hasPrefix(s string) bool {
	return l.ch != 0 && strings.HasPrefix(l.source[l.pos:], s)
}

// startToken marks the beginning of a new token.
func (l *Lexer) startToken() {
	l.tokenLine = l.line
	l.tokenColumn = l.column
	l.tokenStartPos = l.pos
}

// makeToken creates a token with the current start position.
func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	return Token{
		Type:     typ,
		Literal:  literal,
		Line:     l.tokenLine,
		Column:   l.tokenColumn,
		StartPos: l.tokenStartPos,
	}
}

// consumeToken advances past literal and returns a token for it.
func (l *Lexer) consumeToken(typ TokenType, literal string) Token {
	l.advance(utf8.RuneCountInString(literal))
	return l.makeToken(typ, literal)
}

// position returns the current Position for error reporting.
func (l *Lexer) position() Position {
	return Position{
		File:   l.filename,
		Line:   l.tokenLine,
		Column: l.tokenColumn,
	}
}

// errorToken records a lexical error at the current token start.
func (l *Lexer) errorToken(text, format string, args ...any) Token {
	err := NewErrorf(LexicalError, l.position(), format, args...)
	err.Text = text
	l.errors.Add(err)
	return l.makeToken(TokenError, text)
}

func (l *Lexer) mode() lexMode {
	return l.states[len(l.states)-1].mode
}

func (l *Lexer) pushMode(m lexMode, quote rune) {
	l.states = append(l.states, lexState{mode: m, quote: quote})
}

func (l *Lexer) popMode() {
	if len(l.states) > 1 {
		l.states = l.states[:len(l.states)-1]
	}
}

func (l *Lexer) setMode(m lexMode) {
	l.states[len(l.states)-1] = lexState{mode: m}
}

// Next returns the next token from the source.
func (l *Lexer) Next() Token {
	switch l.mode() {
	case modeTag:
		return l.nextTag()
	case modeString:
		return l.nextString()
	case modeExpr:
		return l.nextExpr()
	default:
		return l.nextChildren()
	}
}

// nextChildren lexes the content between tags.
func (l *Lexer) nextChildren() Token {
	for l.hasPrefix("<!--") {
		l.startToken()
		if !l.skipComment() {
			return l.errorToken("<!--", "unterminated comment")
		}
	}

	l.startToken()

	switch {
	case l.ch == 0:
		return l.makeToken(TokenEOF, "")
	case l.hasPrefix("{{"):
		l.pushMode(modeExpr, 0)
		return l.consumeToken(TokenLExpr, "{{")
	case l.hasPrefix("}}"):
		return l.consumeToken(TokenRExpr, "}}")
	case l.hasPrefix("</"):
		l.setMode(modeTag)
		return l.consumeToken(TokenLAngleSlash, "</")
	case l.ch == '<':
		l.setMode(modeTag)
		return l.consumeToken(TokenLAngle, "<")
	}

	return l.readText(func() bool {
		return l.ch == '<' || l.hasPrefix("{{") || l.hasPrefix("}}")
	})
}

// nextTag lexes the inside of an opening or closing tag.
func (l *Lexer) nextTag() Token {
	for {
		l.skipWhitespace()
		if !l.hasPrefix("<!--") {
			break
		}
		l.startToken()
		if !l.skipComment() {
			return l.errorToken("<!--", "unterminated comment")
		}
	}

	l.startToken()

	switch {
	case l.ch == 0:
		return l.makeToken(TokenEOF, "")
	case l.hasPrefix("/>"):
		l.setMode(modeChildren)
		return l.consumeToken(TokenSlashAngle, "/>")
	case l.ch == '>':
		l.setMode(modeChildren)
		return l.consumeToken(TokenRAngle, ">")
	case l.hasPrefix("</"):
		return l.consumeToken(TokenLAngleSlash, "</")
	case l.ch == '<':
		return l.consumeToken(TokenLAngle, "<")
	case l.ch == '=':
		return l.consumeToken(TokenEquals, "=")
	case l.ch == '"' || l.ch == '\'':
		quote := l.ch
		l.pushMode(modeString, quote)
		return l.consumeToken(TokenQuote, string(quote))
	case l.hasPrefix("{{"):
		l.pushMode(modeExpr, 0)
		return l.consumeToken(TokenLExpr, "{{")
	case isNameStart(l.ch):
		return l.readName()
	}

	ch := l.ch
	l.readChar()
	return l.errorToken(string(ch), "unexpected character %q", ch)
}

// readName reads a tag or attribute name. A name of the form prefix:name is
// returned as a single TokenDirective.
func (l *Lexer) readName() Token {
	start := l.pos
	for isNameChar(l.ch) {
		l.readChar()
	}
	if l.ch == ':' && isNameStart(l.peekChar()) {
		l.readChar() // consume :
		for isNameChar(l.ch) {
			l.readChar()
		}
		return l.makeToken(TokenDirective, l.source[start:l.pos])
	}
	return l.makeToken(TokenIdent, l.source[start:l.pos])
}
