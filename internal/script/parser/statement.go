package parser

import (
	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/lexer"
)

func (p *Parser) parseStatement() (ast.Stmt, error) {
	token := p.peekToken()

	if err := p.enter(token); err != nil {
		return nil, err
	}
	defer p.leave()

	if token.Type == lexer.TokenTypeKeyword {
		switch token.Value {
		case "let", "const":
			decl, err := p.parseVariableDeclaration()
			if err != nil {
				return nil, err
			}

			if err := p.expectTerminator(); err != nil {
				return nil, err
			}

			return decl, nil

		case "function":
			if p.peekTokenAt(1).Type == lexer.TokenTypeIdentifier {
				return p.parseFunctionDeclaration()
			}

		case "if":
			return p.parseIfStatement()

		case "while":
			return p.parseWhileStatement()

		case "for":
			return p.parseForStatement()

		case "return":
			return p.parseReturnStatement()

		case "break", "continue":
			return p.parseJumpStatement()

		case "throw":
			return p.parseThrowStatement()

		case "switch":
			return p.parseSwitchStatement()

		case "try":
			return p.parseTryStatement()

		case "else", "case", "default", "catch", "finally":
			return nil, p.unexpected(token)
		}
	}

	if isPunctuation(token, "{") {
		return p.parseBlockStatement()
	}

	if isPunctuation(token, ";") {
		p.readToken()
		return &ast.EmptyStatement{Loc: p.loc(token)}, nil
	}

	return p.parseExpressionStatement()
}

func (p *Parser) parseExpressionStatement() (*ast.ExpressionStatement, error) {
	start := p.peekToken()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expectTerminator(); err != nil {
		return nil, err
	}

	return &ast.ExpressionStatement{
		Loc:        p.loc(start),
		Expression: expr,
	}, nil
}

func (p *Parser) parseBlockStatement() (*ast.BlockStatement, error) {
	start, err := p.expectPunctuation("{")
	if err != nil {
		return nil, err
	}

	body := make([]ast.Stmt, 0)
	for !isPunctuation(p.peekToken(), "}") {
		if p.atEnd() {
			return nil, p.errorf(p.peekToken(), "expected '}' but found end of input")
		}

		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}

		body = append(body, stmt)
	}

	p.readToken()

	return &ast.BlockStatement{
		Loc:  p.loc(start),
		Body: body,
	}, nil
}

// parseVariableDeclaration reads "let" or "const" and its declarators,
// without the statement terminator.
func (p *Parser) parseVariableDeclaration() (*ast.VariableDeclaration, error) {
	start := p.readToken()
	kind := ast.DeclarationKind(start.Value)

	decl := &ast.VariableDeclaration{
		Kind:         kind,
		Declarations: make([]*ast.Declarator, 0, 1),
	}

	for {
		targetToken := p.peekToken()

		target, err := p.parsePattern()
		if err != nil {
			return nil, err
		}

		declarator := &ast.Declarator{
			Target: target,
		}

		if p.acceptPunctuation("=") {
			init, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}

			declarator.Init = init
		} else {
			if kind == ast.DeclarationConst {
				return nil, p.errorf(targetToken, "missing initializer in const declaration")
			}

			if _, ok := target.(*ast.Identifier); !ok {
				return nil, p.errorf(targetToken, "missing initializer in destructuring declaration")
			}
		}

		declarator.Loc = p.loc(targetToken)
		decl.Declarations = append(decl.Declarations, declarator)

		if !p.acceptPunctuation(",") {
			break
		}
	}

	decl.Loc = p.loc(start)

	return decl, nil
}

func (p *Parser) parseFunctionDeclaration() (*ast.FunctionDeclaration, error) {
	start := p.peekToken()

	fn, err := p.parseFunctionLiteral()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionDeclaration{
		Loc:      p.loc(start),
		Function: fn,
	}, nil
}

func (p *Parser) parseIfStatement() (*ast.IfStatement, error) {
	start := p.readToken()

	test, err := p.parseParenthesized()
	if err != nil {
		return nil, err
	}

	consequent, err := p.parseBody("if")
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{
		Test:       test,
		Consequent: consequent,
	}

	if p.acceptKeyword("else") {
		alternate, err := p.parseBody("else")
		if err != nil {
			return nil, err
		}

		stmt.Alternate = alternate
	}

	stmt.Loc = p.loc(start)

	return stmt, nil
}

// parseBody parses the single statement governed by construct. Function
// declarations are only hoisted from statement lists, so one standing alone
// here is rejected.
func (p *Parser) parseBody(construct string) (ast.Stmt, error) {
	token := p.peekToken()

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}

	if _, ok := stmt.(*ast.FunctionDeclaration); ok {
		return nil, p.errorf(token, "function declaration is not allowed as the body of '%s'; wrap it in a block", construct)
	}

	return stmt, nil
}

func (p *Parser) parseWhileStatement() (*ast.WhileStatement, error) {
	start := p.readToken()

	test, err := p.parseParenthesized()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBody("while")
	if err != nil {
		return nil, err
	}

	return &ast.WhileStatement{
		Loc:  p.loc(start),
		Test: test,
		Body: body,
	}, nil
}

func (p *Parser) parseForStatement() (*ast.ForStatement, error) {
	start := p.readToken()

	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}

	stmt := &ast.ForStatement{}

	switch token := p.peekToken(); {
	case isPunctuation(token, ";"):
	case isKeyword(token, "let"), isKeyword(token, "const"):
		init, err := p.parseVariableDeclaration()
		if err != nil {
			return nil, err
		}

		stmt.Init = init

	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		stmt.Init = &ast.ExpressionStatement{
			Loc:        p.loc(token),
			Expression: expr,
		}
	}

	if _, err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}

	if !isPunctuation(p.peekToken(), ";") {
		test, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		stmt.Test = test
	}

	if _, err := p.expectPunctuation(";"); err != nil {
		return nil, err
	}

	if !isPunctuation(p.peekToken(), ")") {
		update, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		stmt.Update = update
	}

	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}

	body, err := p.parseBody("for")
	if err != nil {
		return nil, err
	}

	stmt.Body = body
	stmt.Loc = p.loc(start)

	return stmt, nil
}

func (p *Parser) parseReturnStatement() (*ast.ReturnStatement, error) {
	start := p.readToken()
	stmt := &ast.ReturnStatement{}

	if p.startsExpression(start) {
		argument, err := p.parseExpression()
		if err != nil {
			return nil, err
		}

		stmt.Argument = argument
	}

	if err := p.expectTerminator(); err != nil {
		return nil, err
	}

	stmt.Loc = p.loc(start)

	return stmt, nil
}

func (p *Parser) parseThrowStatement() (*ast.ThrowStatement, error) {
	start := p.readToken()

	if !p.startsExpression(start) {
		return nil, p.errorf(start, "missing expression after 'throw'")
	}

	argument, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if err := p.expectTerminator(); err != nil {
		return nil, err
	}

	return &ast.ThrowStatement{
		Loc:      p.loc(start),
		Argument: argument,
	}, nil
}

// startsExpression reports whether an operand follows keyword on the same line.
func (p *Parser) startsExpression(keyword *lexer.Token) bool {
	token := p.peekToken()

	if token.Type == lexer.TokenTypeEOF || isPunctuation(token, ";", "}") {
		return false
	}

	return token.Position.Start.Line == keyword.Position.End.Line
}

func (p *Parser) parseJumpStatement() (ast.Stmt, error) {
	start := p.readToken()

	if err := p.expectTerminator(); err != nil {
		return nil, err
	}

	if start.Value == "break" {
		return &ast.BreakStatement{Loc: p.loc(start)}, nil
	}

	return &ast.ContinueStatement{Loc: p.loc(start)}, nil
}

func (p *Parser) parseSwitchStatement() (*ast.SwitchStatement, error) {
	start := p.readToken()

	discriminant, err := p.parseParenthesized()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunctuation("{"); err != nil {
		return nil, err
	}

	stmt := &ast.SwitchStatement{
		Discriminant: discriminant,
		Cases:        make([]*ast.SwitchCase, 0),
	}

	hasDefault := false
	for !p.acceptPunctuation("}") {
		caseToken := p.peekToken()
		switchCase := &ast.SwitchCase{
			Body: make([]ast.Stmt, 0),
		}

		switch {
		case isKeyword(caseToken, "case"):
			p.readToken()

			test, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			switchCase.Test = test

		case isKeyword(caseToken, "default"):
			p.readToken()

			if hasDefault {
				return nil, p.errorf(caseToken, "more than one default clause in switch statement")
			}
			hasDefault = true

		default:
			return nil, p.unexpected(caseToken)
		}

		if _, err := p.expectPunctuation(":"); err != nil {
			return nil, err
		}

		for {
			token := p.peekToken()
			if isKeyword(token, "case") || isKeyword(token, "default") || isPunctuation(token, "}") || p.atEnd() {
				break
			}

			body, err := p.parseStatement()
			if err != nil {
				return nil, err
			}

			switchCase.Body = append(switchCase.Body, body)
		}

		switchCase.Loc = p.loc(caseToken)
		stmt.Cases = append(stmt.Cases, switchCase)
	}

	stmt.Loc = p.loc(start)

	return stmt, nil
}

func (p *Parser) parseTryStatement() (*ast.TryStatement, error) {
	start := p.readToken()

	block, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	stmt := &ast.TryStatement{
		Block: block,
	}

	if p.acceptKeyword("catch") {
		if p.acceptPunctuation("(") {
			param, err := p.parsePattern()
			if err != nil {
				return nil, err
			}

			if _, err := p.expectPunctuation(")"); err != nil {
				return nil, err
			}

			stmt.Param = param
		}

		handler, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}

		stmt.Handler = handler
	}

	if p.acceptKeyword("finally") {
		finalizer, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}

		stmt.Finalizer = finalizer
	}

	if stmt.Handler == nil && stmt.Finalizer == nil {
		return nil, p.errorf(p.peekToken(), "missing catch or finally after try")
	}

	stmt.Loc = p.loc(start)

	return stmt, nil
}

func (p *Parser) parseParenthesized() (ast.Expr, error) {
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, err
	}

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}

	return expr, nil
}
