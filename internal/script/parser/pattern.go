package parser

import (
	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/lexer"
)

// parseParameters reads a parenthesized parameter list with an optional
// trailing rest parameter.
func (p *Parser) parseParameters() ([]ast.Pattern, *ast.Identifier, error) {
	if _, err := p.expectPunctuation("("); err != nil {
		return nil, nil, err
	}

	params := make([]ast.Pattern, 0)
	for !p.acceptPunctuation(")") {
		if p.acceptPunctuation("...") {
			rest, err := p.parseRestIdentifier()
			if err != nil {
				return nil, nil, err
			}

			if _, err := p.expectPunctuation(")"); err != nil {
				return nil, nil, err
			}

			return params, rest, nil
		}

		param, err := p.parsePattern()
		if err != nil {
			return nil, nil, err
		}

		params = append(params, param)

		if !isPunctuation(p.peekToken(), ")") {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, nil, err
			}
		}
	}

	return params, nil, nil
}

func (p *Parser) parsePattern() (ast.Pattern, error) {
	token := p.peekToken()

	if err := p.enter(token); err != nil {
		return nil, err
	}
	defer p.leave()

	switch {
	case token.Type == lexer.TokenTypeIdentifier:
		p.readToken()
		return &ast.Identifier{Loc: p.loc(token), Name: token.Value}, nil

	case isPunctuation(token, "["):
		return p.parseArrayPattern()

	case isPunctuation(token, "{"):
		return p.parseObjectPattern()
	}

	return nil, p.errorf(token, "invalid binding target '%s'", token.RawValue)
}

func (p *Parser) parseArrayPattern() (*ast.ArrayPattern, error) {
	start := p.readToken()
	pattern := &ast.ArrayPattern{
		Elements: make([]ast.Pattern, 0),
	}

	for !p.acceptPunctuation("]") {
		if p.acceptPunctuation(",") {
			pattern.Elements = append(pattern.Elements, nil)
			continue
		}

		if p.acceptPunctuation("...") {
			rest, err := p.parseRestIdentifier()
			if err != nil {
				return nil, err
			}

			if _, err := p.expectPunctuation("]"); err != nil {
				return nil, err
			}

			pattern.Rest = rest
			break
		}

		element, err := p.parsePattern()
		if err != nil {
			return nil, err
		}

		pattern.Elements = append(pattern.Elements, element)

		if !isPunctuation(p.peekToken(), "]") {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, err
			}
		}
	}

	pattern.Loc = p.loc(start)

	return pattern, nil
}

func (p *Parser) parseObjectPattern() (*ast.ObjectPattern, error) {
	start := p.readToken()
	pattern := &ast.ObjectPattern{
		Properties: make([]*ast.PatternProperty, 0),
	}

	for !p.acceptPunctuation("}") {
		if p.acceptPunctuation("...") {
			rest, err := p.parseRestIdentifier()
			if err != nil {
				return nil, err
			}

			if _, err := p.expectPunctuation("}"); err != nil {
				return nil, err
			}

			pattern.Rest = rest
			break
		}

		keyToken := p.peekToken()

		key, err := p.parsePropertyKey()
		if err != nil {
			return nil, err
		}

		property := &ast.PatternProperty{Key: key}

		if p.acceptPunctuation(":") {
			value, err := p.parsePattern()
			if err != nil {
				return nil, err
			}

			property.Value = value
		} else {
			if keyToken.Type != lexer.TokenTypeIdentifier {
				return nil, p.errorf(keyToken, "invalid shorthand property '%s'", keyToken.RawValue)
			}

			property.Value = &ast.Identifier{Loc: p.loc(keyToken), Name: key}
		}

		property.Loc = p.loc(keyToken)
		pattern.Properties = append(pattern.Properties, property)

		if !isPunctuation(p.peekToken(), "}") {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, err
			}
		}
	}

	pattern.Loc = p.loc(start)

	return pattern, nil
}

func (p *Parser) parseRestIdentifier() (*ast.Identifier, error) {
	token, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}

	return &ast.Identifier{Loc: p.loc(token), Name: token.Value}, nil
}

// toAssignmentTarget validates the left side of an assignment. Plain
// assignment additionally accepts array and object literals, which are
// reinterpreted as destructuring patterns.
func (p *Parser) toAssignmentTarget(expr ast.Expr, op ast.Operator) (ast.Expr, error) {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberAccess, *ast.IndexAccess:
		return expr, nil
	}

	if op == ast.OperatorAssign {
		switch expr.(type) {
		case *ast.ArrayLiteral, *ast.ObjectLiteral:
			return p.toPattern(expr)
		}
	}

	return nil, &SyntaxError{
		Message:  "invalid assignment target",
		Position: expr.Range(),
	}
}

func (p *Parser) toPattern(expr ast.Expr) (ast.Pattern, error) {
	invalid := func(node ast.Node) error {
		return &SyntaxError{
			Message:  "invalid destructuring target",
			Position: node.Range(),
		}
	}

	switch expr := expr.(type) {
	case *ast.Identifier:
		return expr, nil

	case *ast.ArrayLiteral:
		pattern := &ast.ArrayPattern{
			Loc:      expr.Loc,
			Elements: make([]ast.Pattern, 0, len(expr.Elements)),
		}

		for i, element := range expr.Elements {
			if element == nil {
				pattern.Elements = append(pattern.Elements, nil)
				continue
			}

			if spread, isSpread := element.(*ast.Spread); isSpread {
				rest, isIdentifier := spread.Argument.(*ast.Identifier)
				if !isIdentifier || i != len(expr.Elements)-1 {
					return nil, invalid(spread)
				}

				pattern.Rest = rest
				continue
			}

			target, err := p.toPattern(element)
			if err != nil {
				return nil, err
			}

			pattern.Elements = append(pattern.Elements, target)
		}

		return pattern, nil

	case *ast.ObjectLiteral:
		pattern := &ast.ObjectPattern{
			Loc:        expr.Loc,
			Properties: make([]*ast.PatternProperty, 0, len(expr.Properties)),
		}

		for i, member := range expr.Properties {
			switch member := member.(type) {
			case *ast.Spread:
				rest, isIdentifier := member.Argument.(*ast.Identifier)
				if !isIdentifier || i != len(expr.Properties)-1 {
					return nil, invalid(member)
				}

				pattern.Rest = rest

			case *ast.Property:
				if member.Computed != nil {
					return nil, invalid(member)
				}

				value, err := p.toPattern(member.Value)
				if err != nil {
					return nil, err
				}

				pattern.Properties = append(pattern.Properties, &ast.PatternProperty{
					Loc:   member.Loc,
					Key:   member.Key,
					Value: value,
				})
			}
		}

		return pattern, nil
	}

	return nil, invalid(expr)
}
