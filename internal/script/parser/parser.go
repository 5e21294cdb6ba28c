package parser

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/lexer"
)

// maxDepth bounds nesting of expressions and statements.
const maxDepth = 256

var statementKeywords = []string{
	"break", "const", "continue", "for", "function", "if", "let", "return", "switch", "throw", "try", "while",
}

type Lexer interface {
	ReadToken() (*lexer.Token, error)
}

// SyntaxError is a parse fault at the offending token's range.
type SyntaxError struct {
	Message  string
	Position lexer.Position
	// Incomplete is set when the input ended too early; more input could fix it.
	Incomplete bool
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position.Start, e.Message)
}

// ErrorList collects one SyntaxError per discarded statement.
type ErrorList []*SyntaxError

func (l ErrorList) Error() string {
	messages := make([]string, 0, len(l))
	for _, err := range l {
		messages = append(messages, err.Error())
	}

	return strings.Join(messages, "\n")
}

func (l ErrorList) Unwrap() []error {
	errs := make([]error, 0, len(l))
	for _, err := range l {
		errs = append(errs, err)
	}

	return errs
}

type Parser struct {
	lexer  Lexer
	tokens []*lexer.Token
	pos    int
	depth  int
}

func NewParser(lexer Lexer) *Parser {
	return &Parser{
		lexer: lexer,
	}
}

// Parse reads the whole token stream and returns the program. Malformed
// statements are dropped from the program and reported in the returned
// ErrorList; the program is never nil.
func (p *Parser) Parse() (*ast.Program, error) {
	program := &ast.Program{
		Body: make([]ast.Stmt, 0),
	}

	if err := p.load(); err != nil {
		return program, ErrorList{toSyntaxError(err)}
	}

	var errs ErrorList
	for !p.atEnd() {
		start := p.pos

		stmt, err := p.parseStatement()
		if err != nil {
			errs = append(errs, toSyntaxError(err))
			p.synchronize(start)

			continue
		}

		program.Body = append(program.Body, stmt)
	}

	program.Position = lexer.Position{
		Start: p.tokens[0].Position.Start,
		End:   p.tokens[len(p.tokens)-1].Position.End,
	}

	if len(errs) > 0 {
		return program, errs
	}

	return program, nil
}

// ParseExpression parses source consisting of exactly one expression.
func (p *Parser) ParseExpression() (ast.Expr, error) {
	if err := p.load(); err != nil {
		return nil, toSyntaxError(err)
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, toSyntaxError(err)
	}

	if token := p.peekToken(); !p.atEnd() {
		return nil, p.unexpected(token)
	}

	return expr, nil
}

// load drains the lexer and terminates the stream with an EOF token.
func (p *Parser) load() error {
	p.tokens = make([]*lexer.Token, 0)
	p.pos = 0

	end := lexer.Point{Line: 1, Column: 1}
	for {
		token, err := p.lexer.ReadToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			p.tokens = append(p.tokens, eofToken(end))
			return err
		}

		p.tokens = append(p.tokens, token)
		end = token.Position.End
	}

	p.tokens = append(p.tokens, eofToken(end))

	return nil
}

func eofToken(point lexer.Point) *lexer.Token {
	return &lexer.Token{
		Type:     lexer.TokenTypeEOF,
		Position: lexer.Position{Start: point, End: point},
	}
}

// synchronize skips to the next statement boundary: past a semicolon, past
// the brace closing a block the statement opened, or up to a statement
// keyword. Boundaries only count outside brackets the failed statement
// left open. It always consumes at least one token.
func (p *Parser) synchronize(start int) {
	if p.pos == start {
		p.readToken()
	}

	depth := 0
	for _, token := range p.tokens[start:p.pos] {
		depth = nest(depth, token)
	}

	for !p.atEnd() {
		token := p.peekToken()

		if depth == 0 {
			if isPunctuation(token, ";") {
				p.readToken()
				return
			}

			if token.Type == lexer.TokenTypeKeyword && slices.Contains(statementKeywords, token.Value) {
				return
			}
		}

		p.readToken()

		opened := depth
		depth = nest(depth, token)

		if opened > 0 && depth == 0 && isPunctuation(token, "}") && !continuesStatement(p.peekToken()) {
			return
		}
	}
}

func nest(depth int, token *lexer.Token) int {
	switch {
	case isPunctuation(token, "(", "[", "{"):
		return depth + 1

	case isPunctuation(token, ")", "]", "}"):
		return max(depth-1, 0)
	}

	return depth
}

// continuesStatement reports whether token extends the statement before a
// closing brace, as in "} else" or "} catch".
func continuesStatement(token *lexer.Token) bool {
	return isKeyword(token, "else") || isKeyword(token, "catch") || isKeyword(token, "finally")
}

func toSyntaxError(err error) *SyntaxError {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr
	}

	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return &SyntaxError{
			Message:    lexErr.Err.Error(),
			Position:   lexer.Position{Start: lexErr.Point, End: lexErr.Point},
			Incomplete: errors.Is(lexErr, lexer.ErrUnterminatedComment) || errors.Is(lexErr, lexer.ErrUnterminatedTemplate),
		}
	}

	return &SyntaxError{Message: err.Error()}
}

func (p *Parser) errorf(token *lexer.Token, format string, args ...any) error {
	return &SyntaxError{
		Message:    fmt.Sprintf(format, args...),
		Position:   token.Position,
		Incomplete: token.Type == lexer.TokenTypeEOF,
	}
}

// IsIncomplete reports whether every fault in err is about input ending too
// early, as when an interactive line opens a block it does not close.
func IsIncomplete(err error) bool {
	var list ErrorList
	if !errors.As(err, &list) || len(list) == 0 {
		return false
	}

	for _, fault := range list {
		if !fault.Incomplete {
			return false
		}
	}

	return true
}

func (p *Parser) unexpected(token *lexer.Token) error {
	if token.Type == lexer.TokenTypeEOF {
		return p.errorf(token, "unexpected end of input")
	}

	return p.errorf(token, "unexpected token '%s'", token.RawValue)
}

func (p *Parser) enter(token *lexer.Token) error {
	p.depth++
	if p.depth > maxDepth {
		return p.errorf(token, "nesting too deep")
	}

	return nil
}

func (p *Parser) leave() {
	p.depth--
}

func (p *Parser) atEnd() bool {
	return p.peekToken().Type == lexer.TokenTypeEOF
}

func (p *Parser) peekToken() *lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekTokenAt(offset int) *lexer.Token {
	if p.pos+offset >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}

	return p.tokens[p.pos+offset]
}

// readToken returns the current token and advances; it never moves past EOF.
func (p *Parser) readToken() *lexer.Token {
	token := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}

	return token
}

func (p *Parser) previousToken() *lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}

	return p.tokens[p.pos-1]
}

func (p *Parser) acceptPunctuation(value string) bool {
	if isPunctuation(p.peekToken(), value) {
		p.readToken()
		return true
	}

	return false
}

func (p *Parser) acceptKeyword(value string) bool {
	if isKeyword(p.peekToken(), value) {
		p.readToken()
		return true
	}

	return false
}

func (p *Parser) expectPunctuation(value string) (*lexer.Token, error) {
	token := p.peekToken()
	if !isPunctuation(token, value) {
		if token.Type == lexer.TokenTypeEOF {
			return nil, p.errorf(token, "expected '%s' but found end of input", value)
		}

		return nil, p.errorf(token, "expected '%s' but found '%s'", value, token.RawValue)
	}

	return p.readToken(), nil
}

func (p *Parser) expectIdentifier() (*lexer.Token, error) {
	token := p.peekToken()
	if token.Type != lexer.TokenTypeIdentifier {
		return nil, p.errorf(token, "expected identifier but found '%s'", token.RawValue)
	}

	return p.readToken(), nil
}

// expectTerminator ends a simple statement: a semicolon, or implicitly a
// closing brace, end of input or a line break.
func (p *Parser) expectTerminator() error {
	if p.acceptPunctuation(";") {
		return nil
	}

	token := p.peekToken()
	if token.Type == lexer.TokenTypeEOF || isPunctuation(token, "}") {
		return nil
	}

	if token.Position.Start.Line > p.previousToken().Position.End.Line {
		return nil
	}

	return p.errorf(token, "expected ';' but found '%s'", token.RawValue)
}

// loc spans from the start token to the last consumed token.
func (p *Parser) loc(start *lexer.Token) ast.Loc {
	return ast.Loc{
		Position: lexer.Position{
			Start: start.Position.Start,
			End:   p.previousToken().Position.End,
		},
	}
}

func span(from, to ast.Node) ast.Loc {
	return ast.Loc{
		Position: lexer.Position{
			Start: from.Range().Start,
			End:   to.Range().End,
		},
	}
}

func isPunctuation(token *lexer.Token, values ...string) bool {
	return token.Type == lexer.TokenTypePunctuation && slices.Contains(values, token.Value)
}

func isKeyword(token *lexer.Token, value string) bool {
	return token.Type == lexer.TokenTypeKeyword && token.Value == value
}

// isPropertyName reports whether token may follow a dot or name an object key.
func isPropertyName(token *lexer.Token) bool {
	switch token.Type {
	case lexer.TokenTypeIdentifier, lexer.TokenTypeKeyword, lexer.TokenTypeBoolean, lexer.TokenTypeNull:
		return true
	}

	return false
}
