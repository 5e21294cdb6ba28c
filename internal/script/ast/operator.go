package ast

type Operator string

const (
	OperatorOr      Operator = "||"
	OperatorAnd     Operator = "&&"
	OperatorNullish Operator = "??"

	OperatorEqual    Operator = "=="
	OperatorNotEqual Operator = "!="

	OperatorGreaterThan        Operator = ">"
	OperatorGreaterThanOrEqual Operator = ">="
	OperatorLessThan           Operator = "<"
	OperatorLessThanOrEqual    Operator = "<="

	OperatorAdd      Operator = "+"
	OperatorSubtract Operator = "-"
	OperatorMultiply Operator = "*"
	OperatorDivide   Operator = "/"
	OperatorModulo   Operator = "%"
	OperatorPower    Operator = "**"

	OperatorNot    Operator = "!"
	OperatorNegate Operator = "-"
	OperatorPlus   Operator = "+"
	OperatorTypeof Operator = "typeof"

	OperatorAssign         Operator = "="
	OperatorAddAssign      Operator = "+="
	OperatorSubtractAssign Operator = "-="
	OperatorMultiplyAssign Operator = "*="
	OperatorDivideAssign   Operator = "/="
	OperatorModuloAssign   Operator = "%="
)

// Binary returns the arithmetic operator a compound assignment applies,
// or "" for plain assignment.
func (o Operator) Binary() Operator {
	switch o {
	case OperatorAddAssign:
		return OperatorAdd
	case OperatorSubtractAssign:
		return OperatorSubtract
	case OperatorMultiplyAssign:
		return OperatorMultiply
	case OperatorDivideAssign:
		return OperatorDivide
	case OperatorModuloAssign:
		return OperatorModulo
	}

	return ""
}

type DeclarationKind string

const (
	DeclarationLet   DeclarationKind = "let"
	DeclarationConst DeclarationKind = "const"
)
