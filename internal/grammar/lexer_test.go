package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenTypes(tokens []Token) []TokenType {
	types := make([]TokenType, len(tokens))
	for i, tok := range tokens {
		types[i] = tok.Type
	}
	return types
}

func TestLexer_Block(t *testing.T) {
	input := "[1234567890]\n\ttitle=Hello world\n\tNOTES>\n\t\tgood  read\n\t<NOTES\n"

	tokens, err := NewLexer(input).Tokenize()
	require.NoError(t, err)

	assert.Equal(t, []TokenType{
		TokenLBracket, TokenInt, TokenRBracket,
		TokenKey, TokenEquals, TokenValue,
		TokenNotesOpen, TokenWord, TokenWord, TokenNotesClose,
		TokenEOF,
	}, tokenTypes(tokens))

	assert.Equal(t, "1234567890", tokens[1].Value)
	assert.Equal(t, "title", tokens[3].Value)
	assert.Equal(t, "Hello world", tokens[5].Value)
	assert.Equal(t, "good", tokens[7].Value)
	assert.Equal(t, "read", tokens[8].Value)
}

func TestLexer_ValueIsRestOfLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "title=Dune\n", "Dune"},
		{"blanks before equals", "title \t=Dune Messiah\n", "Dune Messiah"},
		{"keeps blanks after equals", "title=  Dune Messiah \t\n", "  Dune Messiah \t"},
		{"keeps blanks before crlf", "title= Dune \r\n", " Dune "},
		{"empty", "publisher=\n", ""},
		{"crlf", "title=Dune\r\n", "Dune"},
		{"no trailing newline", "title=Dune", "Dune"},
		{"keeps brackets and equals", "title=[a]=b\n", "[a]=b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input).Tokenize()
			require.NoError(t, err)
			require.Len(t, tokens, 4)
			assert.Equal(t, TokenValue, tokens[2].Type)
			assert.Equal(t, tt.want, tokens[2].Value)
		})
	}
}

func TestLexer_Positions(t *testing.T) {
	tokens, err := NewLexer("[1234567890]\n\ttitle=x\n").Tokenize()
	require.NoError(t, err)

	assert.Equal(t, Position{Line: 1, Column: 1}, tokens[0].Pos)
	assert.Equal(t, Position{Line: 1, Column: 2}, tokens[1].Pos)
	assert.Equal(t, Position{Line: 2, Column: 2}, tokens[3].Pos)
	assert.Equal(t, Position{Line: 2, Column: 8}, tokens[5].Pos)
}

func TestLexer_NotesSplitOnAnyWhitespace(t *testing.T) {
	tokens, err := NewLexer("NOTES>\n\tone\ttwo  three\n<NOTES").Tokenize()
	require.NoError(t, err)

	var words []string
	for _, tok := range tokens {
		if tok.Type == TokenWord {
			words = append(words, tok.Value)
		}
	}
	assert.Equal(t, []string{"one", "two", "three"}, words)
}

func TestLexer_UnterminatedNotesEndsWithEOF(t *testing.T) {
	tokens, err := NewLexer("NOTES>\n\tdangling").Tokenize()
	require.NoError(t, err)
	assert.Equal(t, []TokenType{TokenNotesOpen, TokenWord, TokenEOF}, tokenTypes(tokens))
}

func TestLexer_UnexpectedCharacter(t *testing.T) {
	_, err := NewLexer("[1234567890]\n\t#title=x\n").Tokenize()

	var syntaxErr *SyntaxError
	require.ErrorAs(t, err, &syntaxErr)
	assert.Equal(t, Position{Line: 2, Column: 2}, syntaxErr.Pos)
	assert.Contains(t, syntaxErr.Error(), `'#'`)
}
