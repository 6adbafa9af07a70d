package grammar

import (
	"fmt"
	"strconv"

	"github.com/listenupapp/bookwarm/internal/attr"
)

// TokenStream provides lookahead over a token slice. The final token is
// always EOF and is returned for every read past the end.
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream creates a stream over tokens, which must end with EOF.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Peek returns the current token without consuming it.
func (s *TokenStream) Peek() Token {
	if s.pos >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[s.pos]
}

// Advance consumes and returns the current token.
func (s *TokenStream) Advance() Token {
	tok := s.Peek()
	if s.pos < len(s.tokens) {
		s.pos++
	}
	return tok
}

// Parser builds a Document from a token stream by recursive descent.
type Parser struct {
	stream *TokenStream
}

// Parse parses a complete collection document.
func Parse(input string) (*Document, error) {
	tokens, err := NewLexer(input).Tokenize()
	if err != nil {
		return nil, err
	}

	p := &Parser{stream: NewTokenStream(tokens)}
	return p.parseDocument()
}

// parseDocument parses BOOK+ EOF.
func (p *Parser) parseDocument() (*Document, error) {
	if _, err := p.peekExpect(TokenLBracket); err != nil {
		return nil, err
	}

	doc := newDocument()
	for p.stream.Peek().Type == TokenLBracket {
		rec, err := p.parseBook()
		if err != nil {
			return nil, err
		}
		doc.put(rec)
	}

	if _, err := p.expect(TokenEOF); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseBook parses "[" INT "]" ATTR+ NOTES.
func (p *Parser) parseBook() (*attr.Record, error) {
	if _, err := p.expect(TokenLBracket); err != nil {
		return nil, err
	}
	num, err := p.expect(TokenInt)
	if err != nil {
		return nil, err
	}
	isbn, err := strconv.ParseInt(num.Value, 10, 64)
	if err != nil {
		return nil, &SyntaxError{Msg: "catalog number out of range", Pos: num.Pos, Err: err}
	}
	if _, err := p.expect(TokenRBracket); err != nil {
		return nil, err
	}

	rec := attr.NewRecord(isbn)
	if _, err := p.peekExpect(TokenKey); err != nil {
		return nil, err
	}
	for p.stream.Peek().Type == TokenKey {
		if err := p.parseAttr(rec); err != nil {
			return nil, err
		}
	}

	notes, err := p.parseNotes()
	if err != nil {
		return nil, err
	}
	rec.SetNotes(notes)
	return rec, nil
}

// parseAttr parses KEY "=" VALUE and coerces the value into rec.
func (p *Parser) parseAttr(rec *attr.Record) error {
	key := p.stream.Advance()
	if !attr.IsLine(key.Value) {
		return &SyntaxError{Msg: fmt.Sprintf("unknown attribute %q", key.Value), Pos: key.Pos}
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return err
	}
	val, err := p.expect(TokenValue)
	if err != nil {
		return err
	}

	if err := rec.Set(attr.Name(key.Value), val.Value); err != nil {
		return &SyntaxError{Msg: fmt.Sprintf("invalid %s value", key.Value), Pos: val.Pos, Err: err}
	}
	return nil
}

// parseNotes parses "NOTES>" TOKEN* "<NOTES".
func (p *Parser) parseNotes() ([]string, error) {
	if _, err := p.expect(TokenNotesOpen); err != nil {
		return nil, err
	}

	var notes []string
	for p.stream.Peek().Type == TokenWord {
		notes = append(notes, p.stream.Advance().Value)
	}

	if _, err := p.expect(TokenNotesClose); err != nil {
		return nil, err
	}
	return notes, nil
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if _, err := p.peekExpect(tt); err != nil {
		return Token{}, err
	}
	return p.stream.Advance(), nil
}

func (p *Parser) peekExpect(tt TokenType) (Token, error) {
	tok := p.stream.Peek()
	if tok.Type != tt {
		return Token{}, &SyntaxError{Msg: fmt.Sprintf("expected %s, found %s", tt, tok), Pos: tok.Pos}
	}
	return tok, nil
}
