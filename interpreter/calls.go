package interpreter

import (
	"slices"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/operation"
	"github.com/shibukawa/pycs/source"
	"github.com/shibukawa/pycs/value"
)

// evalCall resolves the callee by name and dispatches on its kind.
// Arguments are evaluated in the caller's scope before any frame is opened.
func (i *Interpreter) evalCall(x *ast.Call) (value.Value, error) {
	entry, ok := i.scopes.Lookup(x.Name)
	if !ok {
		return nil, failf(ErrUndeclared, x.Position, "call of undefined function '%s'", x.Name)
	}

	if entry.Value == nil || !value.IsFunction(entry.Value) {
		return nil, failf(ErrNotCallable, x.Position, "'%s' is not a function", x.Name)
	}

	args := make([]value.Value, 0, len(x.Args))

	for _, e := range x.Args {
		v, err := i.evalValue(e)
		if err != nil {
			return nil, err
		}

		args = append(args, v)
	}

	return i.call(entry.Value, args, x.Position)
}

func (i *Interpreter) call(callee value.Value, args []value.Value, pos source.Position) (value.Value, error) {
	switch fn := callee.(type) {
	case value.DeclaredFunction:
		return i.callDeclared(fn, args, pos)
	case value.BuiltinFunction:
		return callBuiltin(fn, args, pos)
	case value.PipeFunction:
		return i.callPipe(fn, args, pos)
	}

	return nil, failf(ErrNotCallable, pos, "cannot call %s", callee.Kind())
}

// callDeclared runs fn in a new call-boundary frame. Bound arguments fill
// the leading parameters and args the rest.
func (i *Interpreter) callDeclared(fn value.DeclaredFunction, args []value.Value, pos source.Position) (value.Value, error) {
	if len(fn.Bound)+len(args) != len(fn.Params) {
		return nil, failf(ErrArity, pos, "function '%s' takes %d arguments, got %d", fn.Name, fn.Arity(), len(args))
	}

	if i.maxCallDepth > 0 && i.scopes.Depth() >= i.maxCallDepth {
		return nil, failf(ErrCallDepthExceeded, pos, "calling '%s' beyond depth %d", fn.Name, i.maxCallDepth)
	}

	i.scopes.Push(fn.Name, true)
	defer i.scopes.Pop()

	for n, arg := range slices.Concat(fn.Bound, args) {
		param := fn.Params[n]
		if _, err := i.scopes.Declare(param.Name, arg, param.Mutable, param.Type, arg.Pos()); err != nil {
			return nil, err
		}
	}

	result, _, err := i.execBlock(fn.Body)
	if err != nil || result == nil {
		return nil, err
	}

	return operation.ConvertTo(result, fn.ReturnType)
}

// callBuiltin coerces args to the declared parameter types and runs the
// native callback. No frame is opened.
func callBuiltin(fn value.BuiltinFunction, args []value.Value, pos source.Position) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, failf(ErrArity, pos, "builtin '%s' takes %d arguments, got %d", fn.Name, len(fn.Params), len(args))
	}

	converted := make([]value.Value, 0, len(args))

	for n, arg := range args {
		v, err := operation.ConvertTo(arg, fn.Params[n])
		if err != nil {
			return nil, err
		}

		converted = append(converted, v)
	}

	result, err := fn.Fn(converted)
	if err != nil || result == nil {
		return nil, err
	}

	return operation.ConvertTo(result, fn.ReturnType)
}

// callPipe feeds the single argument through every stage in order.
func (i *Interpreter) callPipe(fn value.PipeFunction, args []value.Value, pos source.Position) (value.Value, error) {
	if len(args) != 1 {
		return nil, failf(ErrPipeArity, pos, "pipe called with %d arguments", len(args))
	}

	current := args[0]

	for _, stage := range fn.Stages {
		result, err := i.callDeclared(stage, []value.Value{current}, pos)
		if err != nil {
			return nil, err
		}

		if result == nil {
			return nil, failf(ErrPipeNoValue, pos, "stage '%s'", stage.Name)
		}

		current = result
	}

	return current, nil
}

// bindFront returns a copy of left with right appended to its bound arguments.
func bindFront(left, right value.Value) (value.Value, error) {
	fn, ok := left.(value.DeclaredFunction)
	if !ok {
		return nil, failf(ErrNotCallable, left.Pos(), "cannot bind an argument to %s", left.Kind())
	}

	if fn.Arity() == 0 {
		return nil, failf(ErrArity, right.Pos(), "function '%s' has no parameter left to bind", fn.Name)
	}

	return fn.Bind(right, right.Pos()), nil
}

// pipe composes left and right into one flat chain without running either.
func pipe(left, right value.Value, pos source.Position) (value.Value, error) {
	first, err := pipeStages(left)
	if err != nil {
		return nil, err
	}

	second, err := pipeStages(right)
	if err != nil {
		return nil, err
	}

	return value.PipeFunction{Stages: first, Position: pos}.Then(second...), nil
}

func pipeStages(v value.Value) ([]value.DeclaredFunction, error) {
	switch fn := v.(type) {
	case value.DeclaredFunction:
		if fn.Arity() != 1 {
			return nil, failf(ErrPipeArity, fn.Pos(), "function '%s' takes %d arguments", fn.Name, fn.Arity())
		}

		return []value.DeclaredFunction{fn}, nil
	case value.PipeFunction:
		return fn.Stages, nil
	}

	return nil, failf(ErrNotCallable, v.Pos(), "cannot pipe %s", v.Kind())
}
