package interpreter

import (
	"fmt"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/operation"
	"github.com/shibukawa/pycs/value"
)

// eval evaluates e. The result is nil only for calls that produce nothing.
func (i *Interpreter) eval(e ast.Expr) (value.Value, error) {
	switch x := e.(type) {
	case *ast.IntLiteral:
		return value.NewInt(x.Value, x.Position)
	case *ast.FloatLiteral:
		return value.NewFloat(x.Value, x.Position)
	case *ast.StringLiteral:
		return value.NewString(x.Value, x.Position)
	case *ast.BoolLiteral:
		return value.NewBool(x.Value, x.Position), nil
	case *ast.Identifier:
		return i.evalIdentifier(x)
	case *ast.ListLiteral:
		return i.evalListLiteral(x)
	case *ast.ListLength:
		return i.evalListLength(x)
	case *ast.Indexed:
		return i.evalIndexed(x)
	case *ast.Call:
		return i.evalCall(x)
	case *ast.Unary:
		return i.evalUnary(x)
	case *ast.Multiplicative:
		return i.evalMultiplicative(x)
	case *ast.Additive:
		left, right, err := i.evalOperands(x.Left, x.Right)
		if err != nil {
			return nil, err
		}

		if x.Operator == ast.OpMinus {
			return operation.Subtract(left, right)
		}

		return operation.Add(left, right)
	case *ast.Relation:
		return i.evalRelation(x)
	case *ast.Conjunction:
		left, right, err := i.evalOperands(x.Left, x.Right)
		if err != nil {
			return nil, err
		}

		return operation.Conjunction(left, right)
	case *ast.Alternative:
		left, right, err := i.evalOperands(x.Left, x.Right)
		if err != nil {
			return nil, err
		}

		return operation.Alternative(left, right)
	}

	return nil, fmt.Errorf("unsupported expression %T at %s", e, e.Pos())
}

// evalValue evaluates e and fails when it produced nothing.
func (i *Interpreter) evalValue(e ast.Expr) (value.Value, error) {
	v, err := i.eval(e)
	if err != nil {
		return nil, err
	}

	if v == nil {
		return nil, failf(ErrNoValue, e.Pos(), "a call returning void was used as a value")
	}

	return v, nil
}

// evalOperands evaluates both operands, left first. Logical operators use
// it too, so neither side is skipped.
func (i *Interpreter) evalOperands(left, right ast.Expr) (value.Value, value.Value, error) {
	l, err := i.evalValue(left)
	if err != nil {
		return nil, nil, err
	}

	r, err := i.evalValue(right)
	if err != nil {
		return nil, nil, err
	}

	return l, r, nil
}

func (i *Interpreter) evalIdentifier(x *ast.Identifier) (value.Value, error) {
	entry, ok := i.scopes.Lookup(x.Name)
	if !ok {
		return nil, failf(ErrUndeclared, x.Position, "'%s'", x.Name)
	}

	if entry.Value == nil {
		return nil, failf(ErrUnassigned, x.Position, "'%s' declared at %s", x.Name, entry.Position)
	}

	return entry.Value, nil
}

func (i *Interpreter) evalListLiteral(x *ast.ListLiteral) (value.Value, error) {
	elems := make([]value.Value, 0, len(x.Elements))

	for _, e := range x.Elements {
		v, err := i.evalValue(e)
		if err != nil {
			return nil, err
		}

		elems = append(elems, v)
	}

	return value.NewList(elems, nil, x.Position), nil
}

func (i *Interpreter) evalListLength(x *ast.ListLength) (value.Value, error) {
	v, err := i.evalIdentifier(&ast.Identifier{Name: x.Name, Position: x.Position})
	if err != nil {
		return nil, err
	}

	list, ok := v.(value.List)
	if !ok {
		return nil, failf(ErrNotList, x.Position, "'%s' is %s", x.Name, v.Kind())
	}

	return value.NewInt(int64(list.Len()), x.Position)
}

func (i *Interpreter) evalIndices(exprs []ast.Expr) ([]value.Int, error) {
	indices := make([]value.Int, 0, len(exprs))

	for _, e := range exprs {
		v, err := i.evalValue(e)
		if err != nil {
			return nil, err
		}

		n, err := operation.ConvertToInt(v)
		if err != nil {
			return nil, err
		}

		indices = append(indices, n)
	}

	return indices, nil
}

// indexList checks that container is a list and index lies inside it.
func indexList(container value.Value, index value.Int) (value.List, int, error) {
	list, ok := container.(value.List)
	if !ok {
		return value.List{}, 0, failf(ErrNotList, index.Pos(), "cannot index %s", container.Kind())
	}

	n := index.Value()
	if n < 0 || n >= int64(list.Len()) {
		return value.List{}, 0, failf(ErrIndexOutOfRange, index.Pos(), "index %d, length %d", n, list.Len())
	}

	return list, int(n), nil
}

func (i *Interpreter) evalIndexed(x *ast.Indexed) (value.Value, error) {
	current, err := i.evalValue(x.Base)
	if err != nil {
		return nil, err
	}

	if _, ok := current.(value.List); !ok {
		return nil, failf(ErrNotList, x.Position, "cannot index %s", current.Kind())
	}

	indices, err := i.evalIndices(x.Indices)
	if err != nil {
		return nil, err
	}

	for _, index := range indices {
		list, n, err := indexList(current, index)
		if err != nil {
			return nil, err
		}

		current = list.At(n)
	}

	return current, nil
}

func (i *Interpreter) evalUnary(x *ast.Unary) (value.Value, error) {
	operand, err := i.evalValue(x.Operand)
	if err != nil {
		return nil, err
	}

	switch x.Operator {
	case ast.OpMinus:
		return operation.UnaryMinus(operand)
	case ast.OpPlus:
		return operation.UnaryPlus(operand)
	case ast.OpNegate:
		return operation.UnaryNegate(operand)
	}

	return nil, fmt.Errorf("unsupported unary operator %s at %s", x.Operator, x.Position)
}

func (i *Interpreter) evalMultiplicative(x *ast.Multiplicative) (value.Value, error) {
	left, right, err := i.evalOperands(x.Left, x.Right)
	if err != nil {
		return nil, err
	}

	switch x.Operator {
	case ast.OpMultiply:
		return operation.Multiply(left, right)
	case ast.OpDivide:
		return operation.Divide(left, right)
	case ast.OpBindFront:
		return bindFront(left, right)
	case ast.OpPipe:
		return pipe(left, right, x.Position)
	}

	return nil, fmt.Errorf("unsupported operator %s at %s", x.Operator, x.Position)
}

func (i *Interpreter) evalRelation(x *ast.Relation) (value.Value, error) {
	left, right, err := i.evalOperands(x.Left, x.Right)
	if err != nil {
		return nil, err
	}

	switch x.Operator {
	case ast.OpEqual:
		return operation.IsEqual(left, right)
	case ast.OpNotEqual:
		return operation.IsNotEqual(left, right)
	case ast.OpGreater:
		return operation.MoreThan(left, right)
	case ast.OpGreaterEqual:
		return operation.MoreOrEqual(left, right)
	case ast.OpLess:
		return operation.LessThan(left, right)
	case ast.OpLessEqual:
		return operation.LessOrEqual(left, right)
	}

	return nil, fmt.Errorf("unsupported relational operator %s at %s", x.Operator, x.Position)
}
