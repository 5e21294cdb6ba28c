package ast

import "github.com/artuross/funscript/internal/script/lexer"

// Node is implemented by every syntax tree node.
type Node interface {
	Range() lexer.Position
}

// Loc is embedded by every node and carries its source range.
type Loc struct {
	Position lexer.Position
}

func (l Loc) Range() lexer.Position { return l.Position }

// Program is the root of a parsed source file.
type Program struct {
	Loc
	Body []Stmt
}
