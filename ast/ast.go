// Package ast defines the syntax tree produced by the parser. Expression and
// statement variants are closed sets: only types in this package implement
// Expr and Stmt.
package ast

import "github.com/shibukawa/pycs/source"

// Node is any syntax tree element.
type Node interface {
	Pos() source.Position
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Operator identifies unary and binary operators.
type Operator int

const (
	OpPlus Operator = iota
	OpMinus
	OpMultiply
	OpDivide
	OpBindFront
	OpPipe
	OpEqual
	OpNotEqual
	OpGreater
	OpGreaterEqual
	OpLess
	OpLessEqual
	OpNegate
)

func (o Operator) String() string {
	switch o {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	case OpMultiply:
		return "*"
	case OpDivide:
		return "/"
	case OpBindFront:
		return "%"
	case OpPipe:
		return "|>"
	case OpEqual:
		return "=="
	case OpNotEqual:
		return "!="
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpNegate:
		return "!"
	default:
		return "?"
	}
}

// Program is the root of a parsed source.
type Program struct {
	Statements []Stmt
}

// Expressions

type Identifier struct {
	Name     string
	Position source.Position
}

type IntLiteral struct {
	Value    int64
	Position source.Position
}

type FloatLiteral struct {
	Value    float64
	Position source.Position
}

type StringLiteral struct {
	Value    string
	Position source.Position
}

type BoolLiteral struct {
	Value    bool
	Position source.Position
}

type ListLiteral struct {
	Elements []Expr
	Position source.Position
}

// ListLength is |name|.
type ListLength struct {
	Name     string
	Position source.Position
}

// Indexed is base[i][j]...; indices apply left to right.
type Indexed struct {
	Base     Expr
	Indices  []Expr
	Position source.Position
}

type Call struct {
	Name     string
	Args     []Expr
	Position source.Position
}

// Unary holds one of OpMinus, OpPlus or OpNegate.
type Unary struct {
	Operator Operator
	Operand  Expr
	Position source.Position
}

// Multiplicative holds *, /, % (bind-front) or |> (pipe).
type Multiplicative struct {
	Operator Operator
	Left     Expr
	Right    Expr
	Position source.Position
}

type Additive struct {
	Operator Operator
	Left     Expr
	Right    Expr
	Position source.Position
}

type Relation struct {
	Operator Operator
	Left     Expr
	Right    Expr
	Position source.Position
}

type Conjunction struct {
	Left     Expr
	Right    Expr
	Position source.Position
}

type Alternative struct {
	Left     Expr
	Right    Expr
	Position source.Position
}

func (e *Identifier) Pos() source.Position     { return e.Position }
func (e *IntLiteral) Pos() source.Position     { return e.Position }
func (e *FloatLiteral) Pos() source.Position   { return e.Position }
func (e *StringLiteral) Pos() source.Position  { return e.Position }
func (e *BoolLiteral) Pos() source.Position    { return e.Position }
func (e *ListLiteral) Pos() source.Position    { return e.Position }
func (e *ListLength) Pos() source.Position     { return e.Position }
func (e *Indexed) Pos() source.Position        { return e.Position }
func (e *Call) Pos() source.Position           { return e.Position }
func (e *Unary) Pos() source.Position          { return e.Position }
func (e *Multiplicative) Pos() source.Position { return e.Position }
func (e *Additive) Pos() source.Position       { return e.Position }
func (e *Relation) Pos() source.Position       { return e.Position }
func (e *Conjunction) Pos() source.Position    { return e.Position }
func (e *Alternative) Pos() source.Position    { return e.Position }

func (*Identifier) exprNode()     {}
func (*IntLiteral) exprNode()     {}
func (*FloatLiteral) exprNode()   {}
func (*StringLiteral) exprNode()  {}
func (*BoolLiteral) exprNode()    {}
func (*ListLiteral) exprNode()    {}
func (*ListLength) exprNode()     {}
func (*Indexed) exprNode()        {}
func (*Call) exprNode()           {}
func (*Unary) exprNode()          {}
func (*Multiplicative) exprNode() {}
func (*Additive) exprNode()       {}
func (*Relation) exprNode()       {}
func (*Conjunction) exprNode()    {}
func (*Alternative) exprNode()    {}

// Statements

// Param is a function parameter.
type Param struct {
	Name     string
	Type     Type
	Mutable  bool
	Position source.Position
}

// Declaration is [mut] type name [= value];. Value is nil when omitted.
type Declaration struct {
	Name     string
	Type     Type
	Mutable  bool
	Value    Expr
	Position source.Position
}

// Assignment is name[i]... = value;.
type Assignment struct {
	Name     string
	Indices  []Expr
	Value    Expr
	Position source.Position
}

type FunctionDefinition struct {
	Name       string
	Params     []Param
	ReturnType Type
	Body       []Stmt
	Position   source.Position
}

// Type returns the function type declared for the definition.
func (f *FunctionDefinition) Type() Type {
	params := make([]Type, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.Type)
	}

	return FunctionOf(params, f.ReturnType)
}

type CallStatement struct {
	Call     *Call
	Position source.Position
}

// Conditional is if/else. At most one of ElseIf and Else is set.
type Conditional struct {
	Condition Expr
	Then      []Stmt
	ElseIf    *Conditional
	Else      []Stmt
	Position  source.Position
}

type Loop struct {
	Condition Expr
	Body      []Stmt
	Position  source.Position
}

// Return is return [value];. Value is nil for a bare return.
type Return struct {
	Value    Expr
	Position source.Position
}

func (s *Declaration) Pos() source.Position        { return s.Position }
func (s *Assignment) Pos() source.Position         { return s.Position }
func (s *FunctionDefinition) Pos() source.Position { return s.Position }
func (s *CallStatement) Pos() source.Position      { return s.Position }
func (s *Conditional) Pos() source.Position        { return s.Position }
func (s *Loop) Pos() source.Position               { return s.Position }
func (s *Return) Pos() source.Position             { return s.Position }

func (*Declaration) stmtNode()        {}
func (*Assignment) stmtNode()         {}
func (*FunctionDefinition) stmtNode() {}
func (*CallStatement) stmtNode()      {}
func (*Conditional) stmtNode()        {}
func (*Loop) stmtNode()               {}
func (*Return) stmtNode()             {}
