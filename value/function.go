package value

import (
	"slices"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/source"
)

// DeclaredFunction is a function defined in source. Bound holds arguments
// supplied ahead of time with the bind-front operator.
type DeclaredFunction struct {
	Name       string
	Params     []ast.Param
	ReturnType ast.Type
	Body       []ast.Stmt
	Bound      []Value
	Position   source.Position
}

// NewDeclaredFunction builds a function value from its definition.
func NewDeclaredFunction(def *ast.FunctionDefinition) DeclaredFunction {
	return DeclaredFunction{
		Name:       def.Name,
		Params:     def.Params,
		ReturnType: def.ReturnType,
		Body:       def.Body,
		Position:   def.Position,
	}
}

// Bind returns a copy of f with arg appended to the bound arguments.
// f itself is left unchanged.
func (f DeclaredFunction) Bind(arg Value, pos source.Position) DeclaredFunction {
	bound := make([]Value, 0, len(f.Bound)+1)
	bound = append(bound, f.Bound...)
	bound = append(bound, arg)

	g := f
	g.Bound = bound
	g.Position = pos

	return g
}

// Arity is the number of parameters still to be supplied at call time.
func (f DeclaredFunction) Arity() int {
	return len(f.Params) - len(f.Bound)
}

// Type is the declared function type, ignoring bound arguments.
func (f DeclaredFunction) Type() ast.Type {
	params := make([]ast.Type, 0, len(f.Params))
	for _, p := range f.Params {
		params = append(params, p.Type)
	}

	return ast.FunctionOf(params, f.ReturnType)
}

func (f DeclaredFunction) Kind() Kind           { return KindDeclaredFunction }
func (f DeclaredFunction) Pos() source.Position { return f.Position }
func (f DeclaredFunction) Text() string         { return "<function " + f.Name + ">" }
func (DeclaredFunction) isValue()               {}

// PipeFunction chains single-argument functions; each stage receives the
// previous stage's result.
type PipeFunction struct {
	Stages   []DeclaredFunction
	Position source.Position
}

// Then returns a new pipe running p and then next.
func (p PipeFunction) Then(next ...DeclaredFunction) PipeFunction {
	return PipeFunction{Stages: slices.Concat(p.Stages, next), Position: p.Position}
}

func (p PipeFunction) Kind() Kind           { return KindPipeFunction }
func (p PipeFunction) Pos() source.Position { return p.Position }
func (PipeFunction) isValue()               {}

func (p PipeFunction) Text() string {
	text := "<pipe"
	for _, s := range p.Stages {
		text += " " + s.Name
	}

	return text + ">"
}

// NativeFunc is the callback behind a BuiltinFunction. It returns nil for void.
type NativeFunc func(args []Value) (Value, error)

// BuiltinFunction is a host-provided function.
type BuiltinFunction struct {
	Name       string
	Params     []ast.Type
	ReturnType ast.Type
	Fn         NativeFunc
}

// Type is function<Params> -> ReturnType.
func (b BuiltinFunction) Type() ast.Type {
	return ast.FunctionOf(b.Params, b.ReturnType)
}

func (b BuiltinFunction) Kind() Kind           { return KindBuiltinFunction }
func (b BuiltinFunction) Pos() source.Position { return source.Position{} }
func (b BuiltinFunction) Text() string         { return "<builtin " + b.Name + ">" }
func (BuiltinFunction) isValue()               {}
