package parser

import (
	"strconv"

	"github.com/artuross/funscript/internal/script/ast"
	"github.com/artuross/funscript/internal/script/lexer"
)

type OperatorPrecedence int

const (
	OperatorPrecedenceUnset          OperatorPrecedence = 0
	OperatorPrecedenceOr             OperatorPrecedence = 5  // "||"
	OperatorPrecedenceAnd            OperatorPrecedence = 6  // "&&"
	OperatorPrecedenceNullish        OperatorPrecedence = 7  // "??"
	OperatorPrecedenceEquality       OperatorPrecedence = 10 // "==" "!=" "===" "!=="
	OperatorPrecedenceGreaterLess    OperatorPrecedence = 11 // ">" ">=" "<" "<="
	OperatorPrecedenceAdditive       OperatorPrecedence = 13 // "+" "-"
	OperatorPrecedenceMultiplicative OperatorPrecedence = 14 // "*" "/" "%"
	OperatorPrecedenceExponent       OperatorPrecedence = 15 // "**"
)

type OperatorType int

const (
	OperatorTypeUnset OperatorType = iota
	OperatorTypeBinary
	OperatorTypeLogical
)

type Operator struct {
	op         ast.Operator
	prec       OperatorPrecedence
	opType     OperatorType
	rightAssoc bool
}

var operators = map[string]Operator{
	"||":  {ast.OperatorOr, OperatorPrecedenceOr, OperatorTypeLogical, false},
	"&&":  {ast.OperatorAnd, OperatorPrecedenceAnd, OperatorTypeLogical, false},
	"??":  {ast.OperatorNullish, OperatorPrecedenceNullish, OperatorTypeLogical, false},
	"==":  {ast.OperatorEqual, OperatorPrecedenceEquality, OperatorTypeBinary, false},
	"!=":  {ast.OperatorNotEqual, OperatorPrecedenceEquality, OperatorTypeBinary, false},
	"===": {ast.OperatorEqual, OperatorPrecedenceEquality, OperatorTypeBinary, false},
	"!==": {ast.OperatorNotEqual, OperatorPrecedenceEquality, OperatorTypeBinary, false},
	">":   {ast.OperatorGreaterThan, OperatorPrecedenceGreaterLess, OperatorTypeBinary, false},
	">=":  {ast.OperatorGreaterThanOrEqual, OperatorPrecedenceGreaterLess, OperatorTypeBinary, false},
	"<":   {ast.OperatorLessThan, OperatorPrecedenceGreaterLess, OperatorTypeBinary, false},
	"<=":  {ast.OperatorLessThanOrEqual, OperatorPrecedenceGreaterLess, OperatorTypeBinary, false},
	"+":   {ast.OperatorAdd, OperatorPrecedenceAdditive, OperatorTypeBinary, false},
	"-":   {ast.OperatorSubtract, OperatorPrecedenceAdditive, OperatorTypeBinary, false},
	"*":   {ast.OperatorMultiply, OperatorPrecedenceMultiplicative, OperatorTypeBinary, false},
	"/":   {ast.OperatorDivide, OperatorPrecedenceMultiplicative, OperatorTypeBinary, false},
	"%":   {ast.OperatorModulo, OperatorPrecedenceMultiplicative, OperatorTypeBinary, false},
	"**":  {ast.OperatorPower, OperatorPrecedenceExponent, OperatorTypeBinary, true},
}

var assignmentOperators = map[string]ast.Operator{
	"=":  ast.OperatorAssign,
	"+=": ast.OperatorAddAssign,
	"-=": ast.OperatorSubtractAssign,
	"*=": ast.OperatorMultiplyAssign,
	"/=": ast.OperatorDivideAssign,
	"%=": ast.OperatorModuloAssign,
}

var unaryOperators = map[string]ast.Operator{
	"!":      ast.OperatorNot,
	"-":      ast.OperatorNegate,
	"+":      ast.OperatorPlus,
	"typeof": ast.OperatorTypeof,
}

func (p *Parser) parseExpression() (ast.Expr, error) {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() (ast.Expr, error) {
	start := p.peekToken()

	if err := p.enter(start); err != nil {
		return nil, err
	}
	defer p.leave()

	if p.isArrowFunction() {
		return p.parseArrowFunction()
	}

	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}

	token := p.peekToken()
	if token.Type != lexer.TokenTypePunctuation {
		return left, nil
	}

	op, isAssignment := assignmentOperators[token.Value]
	if !isAssignment {
		return left, nil
	}

	target, err := p.toAssignmentTarget(left, op)
	if err != nil {
		return nil, err
	}

	p.readToken()

	// right associative: a = b = c
	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	return &ast.Assignment{
		Loc:      span(left, value),
		Operator: op,
		Target:   target,
		Value:    value,
	}, nil
}

func (p *Parser) parseConditional() (ast.Expr, error) {
	test, err := p.parseBinaryExpression(OperatorPrecedenceOr)
	if err != nil {
		return nil, err
	}

	if !p.acceptPunctuation("?") {
		return test, nil
	}

	consequent, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunctuation(":"); err != nil {
		return nil, err
	}

	alternate, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	return &ast.Conditional{
		Loc:        span(test, alternate),
		Test:       test,
		Consequent: consequent,
		Alternate:  alternate,
	}, nil
}

// parseBinaryExpression climbs the operator table from minPrec upwards.
func (p *Parser) parseBinaryExpression(minPrec OperatorPrecedence) (ast.Expr, error) {
	left, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peekToken()
		if token.Type != lexer.TokenTypePunctuation {
			return left, nil
		}

		op, isOp := operators[token.Value]
		if !isOp || op.prec < minPrec {
			return left, nil
		}

		p.readToken()

		nextPrec := op.prec + 1
		if op.rightAssoc {
			nextPrec = op.prec
		}

		right, err := p.parseBinaryExpression(nextPrec)
		if err != nil {
			return nil, err
		}

		if op.opType == OperatorTypeLogical {
			left = &ast.Logical{
				Loc:      span(left, right),
				Left:     left,
				Operator: op.op,
				Right:    right,
			}

			continue
		}

		left = &ast.Binary{
			Loc:      span(left, right),
			Left:     left,
			Operator: op.op,
			Right:    right,
		}
	}
}

func (p *Parser) parseUnaryExpression() (ast.Expr, error) {
	token := p.peekToken()

	op, isUnary := unaryOperators[token.Value]
	if !isUnary || (token.Type != lexer.TokenTypePunctuation && token.Type != lexer.TokenTypeKeyword) {
		return p.parseCallMemberExpression()
	}

	if err := p.enter(token); err != nil {
		return nil, err
	}
	defer p.leave()

	p.readToken()

	operand, err := p.parseUnaryExpression()
	if err != nil {
		return nil, err
	}

	return &ast.Unary{
		Loc:      p.loc(token),
		Operator: op,
		Operand:  operand,
	}, nil
}

func (p *Parser) parseCallMemberExpression() (ast.Expr, error) {
	start := p.peekToken()

	expr, err := p.parsePrimaryExpression()
	if err != nil {
		return nil, err
	}

	for {
		token := p.peekToken()

		switch {
		case isPunctuation(token, "("):
			p.readToken()

			args, err := p.parseArgumentList()
			if err != nil {
				return nil, err
			}

			expr = &ast.FunctionCall{
				Loc:       p.loc(start),
				Callee:    expr,
				Arguments: args,
			}

		case isPunctuation(token, "."):
			p.readToken()

			name := p.peekToken()
			if !isPropertyName(name) {
				return nil, p.errorf(name, "expected property name after '.'")
			}
			p.readToken()

			expr = &ast.MemberAccess{
				Loc:  p.loc(start),
				Base: expr,
				Property: &ast.Identifier{
					Loc:  p.loc(name),
					Name: name.RawValue,
				},
			}

		case isPunctuation(token, "["):
			p.readToken()

			property, err := p.parseExpression()
			if err != nil {
				return nil, err
			}

			if _, err := p.expectPunctuation("]"); err != nil {
				return nil, err
			}

			expr = &ast.IndexAccess{
				Loc:      p.loc(start),
				Base:     expr,
				Property: property,
			}

		default:
			return expr, nil
		}
	}
}

// parseArgumentList reads arguments after the opening parenthesis.
func (p *Parser) parseArgumentList() ([]ast.Expr, error) {
	args := make([]ast.Expr, 0)

	for !p.acceptPunctuation(")") {
		arg, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		args = append(args, arg)

		if !isPunctuation(p.peekToken(), ")") {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, err
			}
		}
	}

	return args, nil
}

// parseElement reads an argument or array element, which may be spread.
func (p *Parser) parseElement() (ast.Expr, error) {
	start := p.peekToken()
	if !p.acceptPunctuation("...") {
		return p.parseAssignment()
	}

	argument, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}

	return &ast.Spread{
		Loc:      p.loc(start),
		Argument: argument,
	}, nil
}

func (p *Parser) parsePrimaryExpression() (ast.Expr, error) {
	token := p.peekToken()

	switch token.Type {
	case lexer.TokenTypeNumber:
		p.readToken()

		value, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return nil, p.errorf(token, "invalid number literal '%s'", token.RawValue)
		}

		return &ast.Literal{Loc: p.loc(token), Value: value}, nil

	case lexer.TokenTypeString:
		p.readToken()
		return &ast.Literal{Loc: p.loc(token), Value: token.Value}, nil

	case lexer.TokenTypeBoolean:
		p.readToken()
		return &ast.Literal{Loc: p.loc(token), Value: token.Value == "true"}, nil

	case lexer.TokenTypeNull:
		p.readToken()
		return &ast.Literal{Loc: p.loc(token), Value: ast.ValueNull}, nil

	case lexer.TokenTypeTemplate:
		p.readToken()
		return p.parseTemplateLiteral(token)

	case lexer.TokenTypeIdentifier:
		p.readToken()
		return &ast.Identifier{Loc: p.loc(token), Name: token.Value}, nil

	case lexer.TokenTypeKeyword:
		switch token.Value {
		case "undefined":
			p.readToken()
			return &ast.Literal{Loc: p.loc(token), Value: ast.ValueUndefined}, nil

		case "function":
			return p.parseFunctionLiteral()
		}

	case lexer.TokenTypePunctuation:
		switch token.Value {
		case "(":
			return p.parseGroupedExpression()

		case "[":
			return p.parseArrayLiteral()

		case "{":
			return p.parseObjectLiteral()
		}
	}

	return nil, p.unexpected(token)
}

func (p *Parser) parseGroupedExpression() (ast.Expr, error) {
	p.readToken()

	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expectPunctuation(")"); err != nil {
		return nil, err
	}

	return expr, nil
}

func (p *Parser) parseArrayLiteral() (*ast.ArrayLiteral, error) {
	start := p.readToken()
	elements := make([]ast.Expr, 0)

	for !p.acceptPunctuation("]") {
		if p.acceptPunctuation(",") {
			elements = append(elements, nil)
			continue
		}

		element, err := p.parseElement()
		if err != nil {
			return nil, err
		}

		elements = append(elements, element)

		if !isPunctuation(p.peekToken(), "]") {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, err
			}
		}
	}

	return &ast.ArrayLiteral{
		Loc:      p.loc(start),
		Elements: elements,
	}, nil
}

func (p *Parser) parseObjectLiteral() (*ast.ObjectLiteral, error) {
	start := p.readToken()
	properties := make([]ast.ObjectMember, 0)

	for !p.acceptPunctuation("}") {
		member, err := p.parseObjectMember()
		if err != nil {
			return nil, err
		}

		properties = append(properties, member)

		if !isPunctuation(p.peekToken(), "}") {
			if _, err := p.expectPunctuation(","); err != nil {
				return nil, err
			}
		}
	}

	return &ast.ObjectLiteral{
		Loc:        p.loc(start),
		Properties: properties,
	}, nil
}

func (p *Parser) parseObjectMember() (ast.ObjectMember, error) {
	start := p.peekToken()

	if p.acceptPunctuation("...") {
		argument, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		return &ast.Spread{Loc: p.loc(start), Argument: argument}, nil
	}

	property := &ast.Property{}

	switch {
	case isPunctuation(start, "["):
		p.readToken()

		computed, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		if _, err := p.expectPunctuation("]"); err != nil {
			return nil, err
		}

		property.Computed = computed

	default:
		key, err := p.parsePropertyKey()
		if err != nil {
			return nil, err
		}

		property.Key = key
	}

	switch next := p.peekToken(); {
	case isPunctuation(next, ":"):
		p.readToken()

		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		property.Value = value

	case isPunctuation(next, "("):
		// method shorthand: name(params) { ... }
		fn := &ast.FunctionLiteral{Name: property.Key}

		params, rest, err := p.parseParameters()
		if err != nil {
			return nil, err
		}

		body, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}

		fn.Params = params
		fn.Rest = rest
		fn.Body = body
		fn.Loc = p.loc(start)
		property.Value = fn

	default:
		if start.Type != lexer.TokenTypeIdentifier {
			return nil, p.errorf(next, "expected ':' after property key")
		}

		property.Value = &ast.Identifier{Loc: p.loc(start), Name: start.Value}
	}

	property.Loc = p.loc(start)

	return property, nil
}

// parsePropertyKey reads a static object key: a name, string or number.
func (p *Parser) parsePropertyKey() (string, error) {
	token := p.peekToken()

	switch {
	case isPropertyName(token):
		p.readToken()
		return token.RawValue, nil

	case token.Type == lexer.TokenTypeString:
		p.readToken()
		return token.Value, nil

	case token.Type == lexer.TokenTypeNumber:
		p.readToken()

		value, err := strconv.ParseFloat(token.Value, 64)
		if err != nil {
			return "", p.errorf(token, "invalid number literal '%s'", token.RawValue)
		}

		return strconv.FormatFloat(value, 'f', -1, 64), nil
	}

	return "", p.errorf(token, "expected property key but found '%s'", token.RawValue)
}

func (p *Parser) parseFunctionLiteral() (*ast.FunctionLiteral, error) {
	start := p.readToken()
	fn := &ast.FunctionLiteral{}

	if p.peekToken().Type == lexer.TokenTypeIdentifier {
		fn.Name = p.readToken().Value
	}

	params, rest, err := p.parseParameters()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlockStatement()
	if err != nil {
		return nil, err
	}

	fn.Params = params
	fn.Rest = rest
	fn.Body = body
	fn.Loc = p.loc(start)

	return fn, nil
}

// isArrowFunction looks ahead for "name =>" or a parenthesized list whose
// matching ")" is followed by "=>".
func (p *Parser) isArrowFunction() bool {
	token := p.peekToken()

	if token.Type == lexer.TokenTypeIdentifier {
		return isPunctuation(p.peekTokenAt(1), "=>")
	}

	if !isPunctuation(token, "(") {
		return false
	}

	depth := 0
	for offset := 0; ; offset++ {
		next := p.peekTokenAt(offset)

		switch {
		case next.Type == lexer.TokenTypeEOF:
			return false

		case isPunctuation(next, "(", "[", "{"):
			depth++

		case isPunctuation(next, ")", "]", "}"):
			depth--
			if depth == 0 {
				return isPunctuation(p.peekTokenAt(offset+1), "=>")
			}
		}
	}
}

func (p *Parser) parseArrowFunction() (*ast.ArrowFunction, error) {
	start := p.peekToken()
	fn := &ast.ArrowFunction{}

	if start.Type == lexer.TokenTypeIdentifier {
		p.readToken()
		fn.Params = []ast.Pattern{&ast.Identifier{Loc: p.loc(start), Name: start.Value}}
	} else {
		params, rest, err := p.parseParameters()
		if err != nil {
			return nil, err
		}

		fn.Params = params
		fn.Rest = rest
	}

	if _, err := p.expectPunctuation("=>"); err != nil {
		return nil, err
	}

	if isPunctuation(p.peekToken(), "{") {
		body, err := p.parseBlockStatement()
		if err != nil {
			return nil, err
		}

		fn.Body = body
	} else {
		expr, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}

		fn.Expression = expr
	}

	fn.Loc = p.loc(start)

	return fn, nil
}

func (p *Parser) parseTemplateLiteral(token *lexer.Token) (*ast.TemplateLiteral, error) {
	parts, err := lexer.TemplateParts(token)
	if err != nil {
		return nil, toSyntaxError(err)
	}

	template := &ast.TemplateLiteral{
		Loc:         p.loc(token),
		Quasis:      make([]string, 0, len(parts)/2+1),
		Expressions: make([]ast.Expr, 0, len(parts)/2),
	}

	for _, part := range parts {
		if !part.IsExpr {
			template.Quasis = append(template.Quasis, part.Value)
			continue
		}

		sub := NewParser(lexer.NewLexerAt(part.Value, part.Start))
		sub.depth = p.depth

		if err := sub.load(); err != nil {
			return nil, withinTemplate(err)
		}

		if sub.atEnd() {
			return nil, p.errorf(token, "empty expression in template literal")
		}

		expr, err := sub.parseExpression()
		if err != nil {
			return nil, withinTemplate(err)
		}

		if !sub.atEnd() {
			return nil, sub.unexpected(sub.peekToken())
		}

		template.Expressions = append(template.Expressions, expr)
	}

	return template, nil
}

// withinTemplate marks a hole fault as complete: the hole ends inside a
// closed template token, so more input cannot fix it.
func withinTemplate(err error) error {
	syntaxErr := toSyntaxError(err)
	syntaxErr.Incomplete = false

	return syntaxErr
}
