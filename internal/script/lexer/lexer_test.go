package lexer_test

import (
	"fmt"
	"io"
	"testing"

	"github.com/artuross/funscript/internal/script/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	t.Run("punctuation", func(t *testing.T) {
		values := []string{
			"!", "%", "(", ")", "*", "+", ",", "-", ".", "/", ":", ";", "<", "=", ">", "?", "[", "]", "{", "}", // single char
			"!=", "%=", "&&", "**", "*=", "+=", "-=", "/=", "<=", "==", "=>", ">=", "??", "||", // double char
			"!==", "...", "===", // triple char
		}

		for index, value := range values {
			t.Run(fmt.Sprintf("%d - %s", index, value), func(t *testing.T) {
				expectedToken := &lexer.Token{
					Type:     lexer.TokenTypePunctuation,
					Position: position(1, 1, 1, len(value)+1),
					RawValue: value,
					Value:    value,
				}

				tokens := readAll(t, value)

				require.Equal(t, 1, len(tokens), "incorrect number of tokens")

				assert.Equal(t, expectedToken, tokens[0])
			})
		}
	})

	t.Run("remaining", func(t *testing.T) {
		type testCase struct {
			name   string
			input  string
			tokens []*lexer.Token
		}

		testCases := []testCase{
			{
				name:  "boolean / false",
				input: "false",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeBoolean,
						Position: position(1, 1, 1, 6),
						RawValue: "false",
						Value:    "false",
					},
				},
			},
			{
				name:  "null",
				input: "null",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeNull,
						Position: position(1, 1, 1, 5),
						RawValue: "null",
						Value:    "null",
					},
				},
			},
			{
				name:  "keyword / let",
				input: "let",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeKeyword,
						Position: position(1, 1, 1, 4),
						RawValue: "let",
						Value:    "let",
					},
				},
			},
			{
				name:  "identifier with dollar and digits",
				input: "$value2",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeIdentifier,
						Position: position(1, 1, 1, 8),
						RawValue: "$value2",
						Value:    "$value2",
					},
				},
			},
			{
				name:  "number / decimal with exponent",
				input: "1.5e3",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeNumber,
						Position: position(1, 1, 1, 6),
						RawValue: "1.5e3",
						Value:    "1.5e3",
					},
				},
			},
			{
				name:  "number / leading dot",
				input: ".25",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeNumber,
						Position: position(1, 1, 1, 4),
						RawValue: ".25",
						Value:    ".25",
					},
				},
			},
			{
				name:  "string / double quoted with escapes",
				input: `"a\tb\u0041"`,
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeString,
						Position: position(1, 1, 1, 13),
						RawValue: `"a\tb\u0041"`,
						Value:    "a\tbA",
					},
				},
			},
			{
				name:  "string / single quoted",
				input: `'it\'s'`,
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeString,
						Position: position(1, 1, 1, 8),
						RawValue: `'it\'s'`,
						Value:    "it's",
					},
				},
			},
			{
				name:  "template / nested hole",
				input: "`a ${ {x: `b`}.x } c`",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeTemplate,
						Position: position(1, 1, 1, 22),
						RawValue: "`a ${ {x: `b`}.x } c`",
						Value:    "a ${ {x: `b`}.x } c",
					},
				},
			},
			{
				name:  "comments and newlines",
				input: "// line\n/* block\n */ x",
				tokens: []*lexer.Token{
					{
						Type:     lexer.TokenTypeIdentifier,
						Position: position(3, 5, 3, 6),
						RawValue: "x",
						Value:    "x",
					},
				},
			},
			{
				name:  "member access on number",
				input: "a[0].b",
				tokens: []*lexer.Token{
					{Type: lexer.TokenTypeIdentifier, Position: position(1, 1, 1, 2), RawValue: "a", Value: "a"},
					{Type: lexer.TokenTypePunctuation, Position: position(1, 2, 1, 3), RawValue: "[", Value: "["},
					{Type: lexer.TokenTypeNumber, Position: position(1, 3, 1, 4), RawValue: "0", Value: "0"},
					{Type: lexer.TokenTypePunctuation, Position: position(1, 4, 1, 5), RawValue: "]", Value: "]"},
					{Type: lexer.TokenTypePunctuation, Position: position(1, 5, 1, 6), RawValue: ".", Value: "."},
					{Type: lexer.TokenTypeIdentifier, Position: position(1, 6, 1, 7), RawValue: "b", Value: "b"},
				},
			},
			{
				name:  "spread",
				input: "[...xs]",
				tokens: []*lexer.Token{
					{Type: lexer.TokenTypePunctuation, Position: position(1, 1, 1, 2), RawValue: "[", Value: "["},
					{Type: lexer.TokenTypePunctuation, Position: position(1, 2, 1, 5), RawValue: "...", Value: "..."},
					{Type: lexer.TokenTypeIdentifier, Position: position(1, 5, 1, 7), RawValue: "xs", Value: "xs"},
					{Type: lexer.TokenTypePunctuation, Position: position(1, 7, 1, 8), RawValue: "]", Value: "]"},
				},
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				tokens := readAll(t, tc.input)

				t.Logf("expression: %v", tc.input)

				assert.Equal(t, tc.tokens, tokens)
			})
		}
	})

	t.Run("errors", func(t *testing.T) {
		type testCase struct {
			input string
			err   error
			point lexer.Point
		}

		testCases := []testCase{
			{input: "#", err: lexer.ErrInvalidCharacter, point: lexer.Point{Line: 1, Column: 1}},
			{input: "'abc", err: lexer.ErrUnterminatedString, point: lexer.Point{Line: 1, Column: 1}},
			{input: "x = `abc", err: lexer.ErrUnterminatedTemplate, point: lexer.Point{Line: 1, Column: 5}},
			{input: "/* abc", err: lexer.ErrUnterminatedComment, point: lexer.Point{Line: 1, Column: 1}},
			{input: `"\q"`, err: lexer.ErrInvalidEscape, point: lexer.Point{Line: 1, Column: 3}},
			{input: "12abc", err: lexer.ErrInvalidNumber, point: lexer.Point{Line: 1, Column: 1}},
		}

		for _, tc := range testCases {
			t.Run(tc.input, func(t *testing.T) {
				lex := lexer.NewLexer(tc.input)

				var err error
				for err == nil {
					_, err = lex.ReadToken()
				}

				require.ErrorIs(t, err, tc.err)

				var lexErr *lexer.Error
				require.ErrorAs(t, err, &lexErr)
				assert.Equal(t, tc.point, lexErr.Point)
			})
		}
	})
}

func TestTemplateParts(t *testing.T) {
	lex := lexer.NewLexer("`sum: ${a + b}\\n${ c }!`")

	token, err := lex.ReadToken()
	require.NoError(t, err)
	require.Equal(t, lexer.TokenTypeTemplate, token.Type)

	parts, err := lexer.TemplateParts(token)
	require.NoError(t, err)

	expected := []lexer.TemplatePart{
		{Value: "sum: ", Start: lexer.Point{Line: 1, Column: 2}},
		{IsExpr: true, Value: "a + b", Start: lexer.Point{Line: 1, Column: 9}},
		{Value: "\n", Start: lexer.Point{Line: 1, Column: 15}},
		{IsExpr: true, Value: " c ", Start: lexer.Point{Line: 1, Column: 19}},
		{Value: "!", Start: lexer.Point{Line: 1, Column: 23}},
	}

	assert.Equal(t, expected, parts)
}

func readAll(t *testing.T, input string) []*lexer.Token {
	t.Helper()

	lex := lexer.NewLexer(input)

	tokens := make([]*lexer.Token, 0)

	index := 0
	for {
		token, err := lex.ReadToken()
		if err == io.EOF {
			break
		}
		require.NoError(t, err, "error when reading token %d", index)

		tokens = append(tokens, token)

		index++
	}

	return tokens
}

func position(startLine, startCol, endLine, endCol int) lexer.Position {
	return lexer.Position{
		Start: lexer.Point{Line: startLine, Column: startCol},
		End:   lexer.Point{Line: endLine, Column: endCol},
	}
}
