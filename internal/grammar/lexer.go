package grammar

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Notes section delimiters.
const (
	NotesOpen  = "NOTES>"
	NotesClose = "<NOTES"
)

type lexMode uint8

const (
	modeBlock lexMode = iota
	modeNotes
)

// Lexer tokenizes collection text. It is mode-sensitive: the token after
// "=" is the rest of the line, and between "NOTES>" and "<NOTES" every
// whitespace-delimited run is a single word.
type Lexer struct {
	input       string
	pos         int // Current byte offset in input
	line        int // Current line number (1-based)
	col         int // Current column number (1-based, in runes)
	mode        lexMode
	afterEquals bool
}

// NewLexer creates a new lexer for the given input.
func NewLexer(input string) *Lexer {
	return &Lexer{
		input: input,
		line:  1,
		col:   1,
	}
}

// Tokenize returns every token through EOF, or the first lexical error.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// Next returns the next token.
func (l *Lexer) Next() (Token, error) {
	if l.afterEquals {
		l.afterEquals = false
		return l.lexValue(), nil
	}
	if l.mode == modeNotes {
		return l.lexNotes(), nil
	}

	l.skipWhitespace()
	start := l.position()
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}, nil
	}

	rest := l.input[l.pos:]
	c := rest[0]
	switch {
	case c == '[':
		l.advance(1)
		return Token{Type: TokenLBracket, Value: "[", Pos: start}, nil
	case c == ']':
		l.advance(1)
		return Token{Type: TokenRBracket, Value: "]", Pos: start}, nil
	case c == '=':
		l.advance(1)
		l.afterEquals = true
		return Token{Type: TokenEquals, Value: "=", Pos: start}, nil
	case isDigit(c):
		n := 0
		for n < len(rest) && isDigit(rest[n]) {
			n++
		}
		l.advance(n)
		return Token{Type: TokenInt, Value: rest[:n], Pos: start}, nil
	case strings.HasPrefix(rest, NotesOpen):
		l.advance(len(NotesOpen))
		l.mode = modeNotes
		return Token{Type: TokenNotesOpen, Value: NotesOpen, Pos: start}, nil
	}

	r, _ := utf8.DecodeRuneInString(rest)
	if isKeyRune(r) {
		n := 0
		for n < len(rest) {
			r, size := utf8.DecodeRuneInString(rest[n:])
			if !isKeyRune(r) {
				break
			}
			n += size
		}
		l.advance(n)
		return Token{Type: TokenKey, Value: rest[:n], Pos: start}, nil
	}

	return Token{}, &SyntaxError{Msg: fmt.Sprintf("unexpected character %q", r), Pos: start}
}

// lexValue consumes the rest of the current line exactly as written. Only a
// trailing carriage return is dropped; the value may be empty.
func (l *Lexer) lexValue() Token {
	start := l.position()

	end := strings.IndexByte(l.input[l.pos:], '\n')
	if end < 0 {
		end = len(l.input) - l.pos
	}
	value := l.input[l.pos : l.pos+end]
	l.advance(end)

	return Token{Type: TokenValue, Value: strings.TrimSuffix(value, "\r"), Pos: start}
}

func (l *Lexer) lexNotes() Token {
	l.skipWhitespace()
	start := l.position()
	if l.pos >= len(l.input) {
		return Token{Type: TokenEOF, Pos: start}
	}

	rest := l.input[l.pos:]
	if strings.HasPrefix(rest, NotesClose) {
		l.advance(len(NotesClose))
		l.mode = modeBlock
		return Token{Type: TokenNotesClose, Value: NotesClose, Pos: start}
	}

	n := strings.IndexFunc(rest, unicode.IsSpace)
	if n < 0 {
		n = len(rest)
	}
	l.advance(n)
	return Token{Type: TokenWord, Value: rest[:n], Pos: start}
}

func (l *Lexer) skipWhitespace() {
	for l.pos < len(l.input) {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		l.advance(size)
	}
}

// advance moves n bytes forward, tracking line and column.
func (l *Lexer) advance(n int) {
	for _, r := range l.input[l.pos : l.pos+n] {
		if r == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
	}
	l.pos += n
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Column: l.col}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isKeyRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
