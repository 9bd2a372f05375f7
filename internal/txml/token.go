package txml

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF   TokenType = iota // end of file
	TokenError                  // lexer error

	// Markup
	TokenText        // raw text in children or inside quotes
	TokenLAngle      // <
	TokenLAngleSlash // </
	TokenRAngle      // >
	TokenSlashAngle  // />
	TokenEquals      // =
	TokenQuote       // " or '
	TokenIdent       // identifier
	TokenDirective   // prefix:name
	TokenLExpr       // {{
	TokenRExpr       // }}

	// Literals and keywords (expression mode)
	TokenNumber    // 12, 1.5
	TokenTrue      // true
	TokenFalse     // false
	TokenNull      // null
	TokenUndefined // undefined

	// Operators
	TokenPlus        // +
	TokenMinus       // -
	TokenStar        // *
	TokenStarStar    // **
	TokenSlash       // /
	TokenPercent     // %
	TokenEq          // ==
	TokenStrictEq    // ===
	TokenNotEq       // !=
	TokenStrictNotEq // !==
	TokenLt          // <
	TokenLtEq        // <=
	TokenGt          // >
	TokenGtEq        // >=
	TokenAndAnd      // &&
	TokenOrOr        // ||
	TokenBang        // !
	TokenQuestion    // ?

	// Punctuation
	TokenColon    // :
	TokenComma    // ,
	TokenDot      // .
	TokenEllipsis // ...
	TokenLParen   // (
	TokenRParen   // )
	TokenLBracket // [
	TokenRBracket // ]
	TokenLBrace   // {
	TokenRBrace   // }
)

var tokenNames = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenError:       "Error",
	TokenText:        "Text",
	TokenLAngle:      "<",
	TokenLAngleSlash: "</",
	TokenRAngle:      ">",
	TokenSlashAngle:  "/>",
	TokenEquals:      "=",
	TokenQuote:       "Quote",
	TokenIdent:       "Ident",
	TokenDirective:   "Directive",
	TokenLExpr:       "{{",
	TokenRExpr:       "}}",
	TokenNumber:      "Number",
	TokenTrue:        "true",
	TokenFalse:       "false",
	TokenNull:        "null",
	TokenUndefined:   "undefined",
	TokenPlus:        "+",
	TokenMinus:       "-",
	TokenStar:        "*",
	TokenStarStar:    "**",
	TokenSlash:       "/",
	TokenPercent:     "%",
	TokenEq:          "==",
	TokenStrictEq:    "===",
	TokenNotEq:       "!=",
	TokenStrictNotEq: "!==",
	TokenLt:          "<",
	TokenLtEq:        "<=",
	TokenGt:          ">",
	TokenGtEq:        ">=",
	TokenAndAnd:      "&&",
	TokenOrOr:        "||",
	TokenBang:        "!",
	TokenQuestion:    "?",
	TokenColon:       ":",
	TokenComma:       ",",
	TokenDot:         ".",
	TokenEllipsis:    "...",
	TokenLParen:      "(",
	TokenRParen:      ")",
	TokenLBracket:    "[",
	TokenRBracket:    "]",
	TokenLBrace:      "{",
	TokenRBrace:      "}",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token represents a lexical token with its type, literal value, and source position.
type Token struct {
	Type     TokenType
	Literal  string
	Line     int
	Column   int
	StartPos int // byte offset in source where token starts
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %d:%d", t.Type, t.Line, t.Column)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, lit, t.Line, t.Column)
}

// Position represents a source code location for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// exprKeywords maps the literal keywords of expression mode to their token types.
var exprKeywords = map[string]TokenType{
	"true":      TokenTrue,
	"false":     TokenFalse,
	"null":      TokenNull,
	"undefined": TokenUndefined,
}

// LookupIdent returns the token type for an identifier inside {{ }},
// checking if it's a literal keyword first.
func LookupIdent(ident string) TokenType {
	if tok, ok := exprKeywords[ident]; ok {
		return tok
	}
	return TokenIdent
}
