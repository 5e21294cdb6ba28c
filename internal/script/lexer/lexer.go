package lexer

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type TokenType string

const (
	TokenTypeBoolean     TokenType = "BOOLEAN"
	TokenTypeEOF         TokenType = "EOF"
	TokenTypeIdentifier  TokenType = "IDENTIFIER"
	TokenTypeKeyword     TokenType = "KEYWORD"
	TokenTypeNull        TokenType = "NULL"
	TokenTypeNumber      TokenType = "NUMBER"
	TokenTypePunctuation TokenType = "PUNCTUATION"
	TokenTypeString      TokenType = "STRING"
	TokenTypeTemplate    TokenType = "TEMPLATE"
)

var (
	ErrInvalidCharacter     = errors.New("invalid character")
	ErrInvalidEscape        = errors.New("invalid escape sequence")
	ErrInvalidNumber        = errors.New("invalid number")
	ErrInvalidPunctuation   = errors.New("invalid punctuation")
	ErrRuneInvalid          = errors.New("decode rune: invalid rune")
	ErrUnterminatedComment  = errors.New("unterminated comment")
	ErrUnterminatedString   = errors.New("unterminated string")
	ErrUnterminatedTemplate = errors.New("unterminated template literal")
)

var keywords = []string{
	"break", "case", "catch", "const", "continue", "default", "else", "finally", "for",
	"function", "if", "let", "return", "switch", "throw", "try", "typeof", "undefined", "while",
}

// Point is a 1-based line and column; columns count runes.
type Point struct {
	Line   int
	Column int
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Position struct {
	Start Point
	End   Point
}

func (p Position) String() string {
	return p.Start.String()
}

type Token struct {
	Type     TokenType
	RawValue string
	Value    string
	Position Position
}

// Error is a scanning failure at a specific point. It wraps one of the
// package sentinel errors.
type Error struct {
	Err   error
	Point Point
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Point, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type Lexer struct {
	input    []byte
	point    Point
	position int
}

func NewLexer(input string) *Lexer {
	return NewLexerAt(input, Point{Line: 1, Column: 1})
}

// NewLexerAt creates a lexer whose first character is reported at start.
// Used for source fragments embedded in a larger file.
func NewLexerAt(input string, start Point) *Lexer {
	return &Lexer{
		input:    []byte(input),
		point:    start,
		position: 0,
	}
}

func (l *Lexer) ReadToken() (*Token, error) {
	if err := l.advanceWhitespace(); err != nil {
		return nil, err
	}

	r, _, err := l.peek()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, l.fail(err)
	}

	if isDigit(r) || (r == '.' && isDigit(l.peekAt(1))) {
		return l.readNumber()
	}

	if isIdentifierOpeningCharacter(r) {
		return l.readIdentifier()
	}

	if isStringOpeningCharacter(r) {
		return l.readString()
	}

	if r == '`' {
		return l.readTemplate()
	}

	if isPunctuationOpeningCharacter(r) {
		return l.readPunctuation()
	}

	return nil, l.fail(ErrInvalidCharacter)
}

func (l *Lexer) fail(err error) error {
	return &Error{Err: err, Point: l.point}
}

func (l *Lexer) advanceWhitespace() error {
	for {
		r, _, err := l.peek()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return l.fail(err)
		}

		switch {
		case r == ' ', r == '\t', r == '\r', r == '\n':
			_, _ = l.read()

		case r == '/' && l.peekAt(1) == '/':
			for {
				r, _, err := l.peek()
				if err != nil || r == '\n' {
					break
				}

				_, _ = l.read()
			}

		case r == '/' && l.peekAt(1) == '*':
			start := l.point

			_, _ = l.read()
			_, _ = l.read()

			for {
				r, err := l.read()
				if err == io.EOF {
					return &Error{Err: ErrUnterminatedComment, Point: start}
				}
				if err != nil {
					return l.fail(err)
				}

				if r == '*' && l.peekAt(0) == '/' {
					_, _ = l.read()
					break
				}
			}

		default:
			return nil
		}
	}
}

func (l *Lexer) readIdentifier() (*Token, error) {
	startPoint := l.point

	r, err := l.read()
	invariant(err != nil, "readIdentifier: unexpected read() error when consuming first character")
	invariant(!isIdentifierOpeningCharacter(r), "readIdentifier: first character is not valid")

	value := []rune{r}

	for {
		r, _, err := l.peek()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, l.fail(err)
		}

		if !isIdentifierContinuationCharacter(r) {
			break
		}

		_, err = l.read()
		invariant(err != nil, "readIdentifier: unexpected read() error after peek()")

		value = append(value, r)
	}

	endPoint := l.point

	word := string(value)

	tokenType := TokenTypeIdentifier
	switch {
	case word == "null":
		tokenType = TokenTypeNull

	case word == "true", word == "false":
		tokenType = TokenTypeBoolean

	case slices.Contains(keywords, word):
		tokenType = TokenTypeKeyword
	}

	token := Token{
		Type: tokenType,
		Position: Position{
			Start: startPoint,
			End:   endPoint,
		},
		RawValue: word,
		Value:    word,
	}

	return &token, nil
}

func (l *Lexer) readNumber() (*Token, error) {
	startPoint := l.point
	startPos := l.position

	l.readDigits()

	if l.peekAt(0) == '.' && isDigit(l.peekAt(1)) {
		_, _ = l.read()
		l.readDigits()
	}

	if r := l.peekAt(0); r == 'e' || r == 'E' {
		next := l.peekAt(1)
		if isDigit(next) || ((next == '+' || next == '-') && isDigit(l.peekAt(2))) {
			_, _ = l.read()
			if next == '+' || next == '-' {
				_, _ = l.read()
			}

			l.readDigits()
		}
	}

	raw := string(l.input[startPos:l.position])

	if r := l.peekAt(0); isIdentifierOpeningCharacter(r) {
		return nil, &Error{Err: ErrInvalidNumber, Point: startPoint}
	}

	if _, err := strconv.ParseFloat(raw, 64); err != nil {
		return nil, &Error{Err: ErrInvalidNumber, Point: startPoint}
	}

	token := Token{
		Type: TokenTypeNumber,
		Position: Position{
			Start: startPoint,
			End:   l.point,
		},
		RawValue: raw,
		Value:    raw,
	}

	return &token, nil
}

func (l *Lexer) readDigits() {
	for isDigit(l.peekAt(0)) {
		_, _ = l.read()
	}
}

func (l *Lexer) readPunctuation() (*Token, error) {
	startPoint := l.point
	startPos := l.position

	// longest match first: "...", "===", "!==", "**" ...
	for size := 3; size > 0; size-- {
		if startPos+size > len(l.input) {
			continue
		}

		value := string(l.input[startPos : startPos+size])
		if !isValidPunctuation(value) {
			continue
		}

		for i := 0; i < size; i++ {
			_, err := l.read()
			invariant(err != nil, "readPunctuation: unexpected read() error")
		}

		token := Token{
			Type: TokenTypePunctuation,
			Position: Position{
				Start: startPoint,
				End:   l.point,
			},
			RawValue: value,
			Value:    value,
		}

		return &token, nil
	}

	return nil, l.fail(ErrInvalidPunctuation)
}

func (l *Lexer) readString() (*Token, error) {
	startPoint := l.point
	startPos := l.position

	quote, err := l.read()
	invariant(err != nil, "readString: unexpected read() error when consuming first character")
	invariant(!isStringOpeningCharacter(quote), "readString: first character is not valid")

	var value strings.Builder

	for {
		r, err := l.read()
		if err == io.EOF {
			return nil, &Error{Err: ErrUnterminatedString, Point: startPoint}
		}
		if err != nil {
			return nil, l.fail(err)
		}

		if r == quote {
			break
		}

		if r == '\n' {
			return nil, &Error{Err: ErrUnterminatedString, Point: startPoint}
		}

		if r == '\\' {
			escaped, err := l.readEscape()
			if err != nil {
				return nil, err
			}

			value.WriteString(escaped)
			continue
		}

		value.WriteRune(r)
	}

	token := Token{
		Type: TokenTypeString,
		Position: Position{
			Start: startPoint,
			End:   l.point,
		},
		RawValue: string(l.input[startPos:l.position]),
		Value:    value.String(),
	}

	return &token, nil
}

// readEscape is called after the backslash was consumed.
func (l *Lexer) readEscape() (string, error) {
	point := l.point

	r, err := l.read()
	if err == io.EOF {
		return "", &Error{Err: ErrUnterminatedString, Point: point}
	}
	if err != nil {
		return "", l.fail(err)
	}

	switch r {
	case 'n':
		return "\n", nil
	case 't':
		return "\t", nil
	case 'r':
		return "\r", nil
	case '0':
		return "\x00", nil
	case '\\', '\'', '"', '`', '$':
		return string(r), nil
	case 'u':
		if l.position+4 > len(l.input) {
			return "", &Error{Err: ErrInvalidEscape, Point: point}
		}

		code, err := strconv.ParseUint(string(l.input[l.position:l.position+4]), 16, 32)
		if err != nil {
			return "", &Error{Err: ErrInvalidEscape, Point: point}
		}

		for i := 0; i < 4; i++ {
			_, _ = l.read()
		}

		return string(rune(code)), nil
	}

	return "", &Error{Err: ErrInvalidEscape, Point: point}
}

// readTemplate consumes a whole template literal, holes included. The token
// value is the raw body between the backticks; TemplateParts splits it.
func (l *Lexer) readTemplate() (*Token, error) {
	startPoint := l.point
	startPos := l.position

	_, err := l.read()
	invariant(err != nil, "readTemplate: unexpected read() error when consuming first character")

	if err := l.skipTemplateBody(startPoint); err != nil {
		return nil, err
	}

	raw := string(l.input[startPos:l.position])

	token := Token{
		Type: TokenTypeTemplate,
		Position: Position{
			Start: startPoint,
			End:   l.point,
		},
		RawValue: raw,
		Value:    raw[1 : len(raw)-1],
	}

	return &token, nil
}

// skipTemplateBody reads up to and including the closing backtick.
func (l *Lexer) skipTemplateBody(start Point) error {
	for {
		r, err := l.read()
		if err == io.EOF {
			return &Error{Err: ErrUnterminatedTemplate, Point: start}
		}
		if err != nil {
			return l.fail(err)
		}

		switch {
		case r == '\\':
			if _, err := l.read(); err != nil {
				return &Error{Err: ErrUnterminatedTemplate, Point: start}
			}

		case r == '`':
			return nil

		case r == '$' && l.peekAt(0) == '{':
			_, _ = l.read()

			if err := l.skipTemplateHole(start); err != nil {
				return err
			}
		}
	}
}

// skipTemplateHole reads up to and including the brace closing a "${" hole.
func (l *Lexer) skipTemplateHole(start Point) error {
	depth := 1

	for {
		r, err := l.read()
		if err == io.EOF {
			return &Error{Err: ErrUnterminatedTemplate, Point: start}
		}
		if err != nil {
			return l.fail(err)
		}

		switch r {
		case '{':
			depth++

		case '}':
			depth--
			if depth == 0 {
				return nil
			}

		case '\'', '"':
			for {
				c, err := l.read()
				if err != nil {
					return &Error{Err: ErrUnterminatedTemplate, Point: start}
				}

				if c == '\\' {
					_, _ = l.read()
					continue
				}

				if c == r {
					break
				}
			}

		case '`':
			if err := l.skipTemplateBody(start); err != nil {
				return err
			}
		}
	}
}

func (l *Lexer) peek() (rune, int, error) {
	if l.position >= len(l.input) {
		return 0, 0, io.EOF
	}

	r, size := utf8.DecodeRune(l.input[l.position:])
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, ErrRuneInvalid
	}

	return r, size, nil
}

// peekAt returns the rune offset runes ahead, or 0 past the end of input.
func (l *Lexer) peekAt(offset int) rune {
	position := l.position

	for i := 0; ; i++ {
		if position >= len(l.input) {
			return 0
		}

		r, size := utf8.DecodeRune(l.input[position:])
		if i == offset {
			return r
		}

		position += size
	}
}

func (l *Lexer) read() (rune, error) {
	r, size, err := l.peek()
	if err != nil {
		return 0, err
	}

	l.position += size

	if r == '\n' {
		l.point.Line++
		l.point.Column = 1
	} else {
		l.point.Column++
	}

	return r, nil
}

func isDigit(r rune) bool {
	return (r >= '0' && r <= '9')
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r > utf8.RuneSelf && unicode.IsLetter(r))
}

func isIdentifierContinuationCharacter(r rune) bool {
	return isIdentifierOpeningCharacter(r) || isDigit(r)
}

func isIdentifierOpeningCharacter(r rune) bool {
	return isLetter(r) || r == '_' || r == '$'
}

func isStringOpeningCharacter(r rune) bool {
	return r == '\'' || r == '"'
}

func isPunctuationOpeningCharacter(r rune) bool {
	return strings.ContainsRune("!%&()*+,-./:;<=>?[]{|}", r)
}

func isValidPunctuation(value string) bool {
	return slices.Contains(
		[]string{
			"!", "%", "(", ")", "*", "+", ",", "-", ".", "/", ":", ";", "<", "=", ">", "?", "[", "]", "{", "}", // single char
			"!=", "%=", "&&", "**", "*=", "+=", "-=", "/=", "<=", "==", "=>", ">=", "??", "||", // double char
			"!==", "...", "===", // triple char
		},
		value,
	)
}

func invariant(assertion bool, message string) {
	if assertion {
		panic(message)
	}
}
