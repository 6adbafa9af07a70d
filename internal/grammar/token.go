// Package grammar tokenizes and parses the bookwarm collection text format:
//
//	DOCUMENT ::= BOOK+ EOF
//	BOOK     ::= "[" INT "]" ATTR+ NOTES
//	ATTR     ::= KEY "=" VALUE        ; KEY: letters/underscore; VALUE: rest of line
//	NOTES    ::= "NOTES>" TOKEN* "<NOTES"
//
// Parsing is all-or-nothing: a document either parses completely or yields
// a single *SyntaxError and no result.
package grammar

import "fmt"

// TokenType represents the type of a lexer token.
type TokenType uint8

const (
	TokenEOF TokenType = iota

	TokenLBracket   // [
	TokenRBracket   // ]
	TokenInt        // digits inside [...]
	TokenKey        // attribute name
	TokenEquals     // =
	TokenValue      // rest of line after =
	TokenNotesOpen  // NOTES>
	TokenNotesClose // <NOTES
	TokenWord       // whitespace-delimited note token
)

// String returns the token type name.
func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenLBracket:
		return `"["`
	case TokenRBracket:
		return `"]"`
	case TokenInt:
		return "integer"
	case TokenKey:
		return "attribute name"
	case TokenEquals:
		return `"="`
	case TokenValue:
		return "value"
	case TokenNotesOpen:
		return `"NOTES>"`
	case TokenNotesClose:
		return `"<NOTES"`
	case TokenWord:
		return "note token"
	default:
		return "unknown"
	}
}

// Position is a 1-based line and column in the input.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// Token represents a lexer token.
type Token struct {
	Value string
	Pos   Position
	Type  TokenType
}

// String returns a debug representation of the token.
func (t Token) String() string {
	switch t.Type {
	case TokenInt, TokenKey, TokenValue, TokenWord:
		return fmt.Sprintf("%s %q", t.Type, t.Value)
	default:
		return t.Type.String()
	}
}

// SyntaxError reports malformed input. Err holds the underlying cause when
// the failure came from coercing an attribute value.
type SyntaxError struct {
	Err error
	Msg string
	Pos Position
}

func (e *SyntaxError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s at %s: %v", e.Msg, e.Pos, e.Err)
	}
	return fmt.Sprintf("%s at %s", e.Msg, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Err }
