package ast

var (
	_ Stmt = (*BlockStatement)(nil)
	_ Stmt = (*BreakStatement)(nil)
	_ Stmt = (*ContinueStatement)(nil)
	_ Stmt = (*EmptyStatement)(nil)
	_ Stmt = (*ExpressionStatement)(nil)
	_ Stmt = (*ForStatement)(nil)
	_ Stmt = (*FunctionDeclaration)(nil)
	_ Stmt = (*IfStatement)(nil)
	_ Stmt = (*ReturnStatement)(nil)
	_ Stmt = (*SwitchStatement)(nil)
	_ Stmt = (*ThrowStatement)(nil)
	_ Stmt = (*TryStatement)(nil)
	_ Stmt = (*VariableDeclaration)(nil)
	_ Stmt = (*WhileStatement)(nil)
)

type Stmt interface {
	Node
	isStmt()
}

type (
	BlockStatement struct {
		Loc
		Body []Stmt
	}

	BreakStatement struct {
		Loc
	}

	ContinueStatement struct {
		Loc
	}

	EmptyStatement struct {
		Loc
	}

	ExpressionStatement struct {
		Loc
		Expression Expr
	}

	// ForStatement Init is a *VariableDeclaration, an *ExpressionStatement or nil.
	ForStatement struct {
		Loc
		Init   Stmt
		Test   Expr
		Update Expr
		Body   Stmt
	}

	FunctionDeclaration struct {
		Loc
		Function *FunctionLiteral
	}

	IfStatement struct {
		Loc
		Test       Expr
		Consequent Stmt
		Alternate  Stmt
	}

	ReturnStatement struct {
		Loc
		Argument Expr
	}

	SwitchStatement struct {
		Loc
		Discriminant Expr
		Cases        []*SwitchCase
	}

	// SwitchCase with a nil Test is the default case.
	SwitchCase struct {
		Loc
		Test Expr
		Body []Stmt
	}

	ThrowStatement struct {
		Loc
		Argument Expr
	}

	// TryStatement has a Handler, a Finalizer or both. Param may be nil.
	TryStatement struct {
		Loc
		Block     *BlockStatement
		Param     Pattern
		Handler   *BlockStatement
		Finalizer *BlockStatement
	}

	VariableDeclaration struct {
		Loc
		Kind         DeclarationKind
		Declarations []*Declarator
	}

	// Declarator Init is nil when the declaration has no initializer.
	Declarator struct {
		Loc
		Target Pattern
		Init   Expr
	}

	WhileStatement struct {
		Loc
		Test Expr
		Body Stmt
	}
)

func (s BlockStatement) isStmt()      {}
func (s BreakStatement) isStmt()      {}
func (s ContinueStatement) isStmt()   {}
func (s EmptyStatement) isStmt()      {}
func (s ExpressionStatement) isStmt() {}
func (s ForStatement) isStmt()        {}
func (s FunctionDeclaration) isStmt() {}
func (s IfStatement) isStmt()         {}
func (s ReturnStatement) isStmt()     {}
func (s SwitchStatement) isStmt()     {}
func (s ThrowStatement) isStmt()      {}
func (s TryStatement) isStmt()        {}
func (s VariableDeclaration) isStmt() {}
func (s WhileStatement) isStmt()      {}
