package ast

var (
	_ Expr = (*ArrayLiteral)(nil)
	_ Expr = (*ArrayPattern)(nil)
	_ Expr = (*ArrowFunction)(nil)
	_ Expr = (*Assignment)(nil)
	_ Expr = (*Binary)(nil)
	_ Expr = (*Conditional)(nil)
	_ Expr = (*FunctionCall)(nil)
	_ Expr = (*FunctionLiteral)(nil)
	_ Expr = (*Identifier)(nil)
	_ Expr = (*IndexAccess)(nil)
	_ Expr = (*Literal)(nil)
	_ Expr = (*Logical)(nil)
	_ Expr = (*MemberAccess)(nil)
	_ Expr = (*ObjectLiteral)(nil)
	_ Expr = (*ObjectPattern)(nil)
	_ Expr = (*Spread)(nil)
	_ Expr = (*TemplateLiteral)(nil)
	_ Expr = (*Unary)(nil)

	_ Pattern = (*Identifier)(nil)
	_ Pattern = (*ArrayPattern)(nil)
	_ Pattern = (*ObjectPattern)(nil)

	_ ObjectMember = (*Property)(nil)
	_ ObjectMember = (*Spread)(nil)
)

type Expr interface {
	Node
	isExpr()
}

// Pattern is a destructuring or binding target.
type Pattern interface {
	Expr
	isPattern()
}

// ObjectMember is an entry of an object literal.
type ObjectMember interface {
	Node
	isObjectMember()
}

// Keyword literal values that have no Go counterpart.
type Keyword string

const (
	ValueNull      Keyword = "null"
	ValueUndefined Keyword = "undefined"
)

type (
	// ArrayLiteral elements may be *Spread, or nil for holes.
	ArrayLiteral struct {
		Loc
		Elements []Expr
	}

	// ArrayPattern elements are nil for holes.
	ArrayPattern struct {
		Loc
		Elements []Pattern
		Rest     *Identifier
	}

	// ArrowFunction has either a block Body or a concise Expression body.
	ArrowFunction struct {
		Loc
		Params     []Pattern
		Rest       *Identifier
		Body       *BlockStatement
		Expression Expr
	}

	// Assignment targets are *Identifier, *MemberAccess, *IndexAccess or a pattern.
	Assignment struct {
		Loc
		Operator Operator
		Target   Expr
		Value    Expr
	}

	Binary struct {
		Loc
		Left     Expr
		Operator Operator
		Right    Expr
	}

	Conditional struct {
		Loc
		Test       Expr
		Consequent Expr
		Alternate  Expr
	}

	// FunctionCall arguments may be *Spread.
	FunctionCall struct {
		Loc
		Callee    Expr
		Arguments []Expr
	}

	FunctionLiteral struct {
		Loc
		Name   string
		Params []Pattern
		Rest   *Identifier
		Body   *BlockStatement
	}

	Identifier struct {
		Loc
		Name string
	}

	IndexAccess struct {
		Loc
		Base     Expr
		Property Expr
	}

	// Literal holds a float64, string, bool or Keyword.
	Literal struct {
		Loc
		Value any
	}

	Logical struct {
		Loc
		Left     Expr
		Operator Operator
		Right    Expr
	}

	MemberAccess struct {
		Loc
		Base     Expr
		Property *Identifier
	}

	ObjectLiteral struct {
		Loc
		Properties []ObjectMember
	}

	// ObjectPattern properties bind Key from the source to Value.
	ObjectPattern struct {
		Loc
		Properties []*PatternProperty
		Rest       *Identifier
	}

	PatternProperty struct {
		Loc
		Key   string
		Value Pattern
	}

	// Property key is either a static Key or a Computed expression.
	Property struct {
		Loc
		Key      string
		Computed Expr
		Value    Expr
	}

	Spread struct {
		Loc
		Argument Expr
	}

	// TemplateLiteral always has len(Quasis) == len(Expressions)+1.
	TemplateLiteral struct {
		Loc
		Quasis      []string
		Expressions []Expr
	}

	Unary struct {
		Loc
		Operator Operator
		Operand  Expr
	}
)

func (e ArrayLiteral) isExpr()    {}
func (e ArrayPattern) isExpr()    {}
func (e ArrowFunction) isExpr()   {}
func (e Assignment) isExpr()      {}
func (e Binary) isExpr()          {}
func (e Conditional) isExpr()     {}
func (e FunctionCall) isExpr()    {}
func (e FunctionLiteral) isExpr() {}
func (e Identifier) isExpr()      {}
func (e IndexAccess) isExpr()     {}
func (e Literal) isExpr()         {}
func (e Logical) isExpr()         {}
func (e MemberAccess) isExpr()    {}
func (e ObjectLiteral) isExpr()   {}
func (e ObjectPattern) isExpr()   {}
func (e Spread) isExpr()          {}
func (e TemplateLiteral) isExpr() {}
func (e Unary) isExpr()           {}

func (e Identifier) isPattern()    {}
func (e ArrayPattern) isPattern()  {}
func (e ObjectPattern) isPattern() {}

func (e Property) isObjectMember() {}
func (e Spread) isObjectMember()   {}
