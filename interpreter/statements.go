package interpreter

import (
	"fmt"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/operation"
	"github.com/shibukawa/pycs/value"
)

// execBlock runs statements in the current frame. returned reports that a
// return was reached; result is the returned value, nil for a bare return.
func (i *Interpreter) execBlock(statements []ast.Stmt) (result value.Value, returned bool, err error) {
	for _, statement := range statements {
		result, returned, err = i.execStatement(statement)
		if err != nil || returned {
			return result, returned, err
		}
	}

	return nil, false, nil
}

// execScoped runs statements inside a new non-call frame.
func (i *Interpreter) execScoped(name string, statements []ast.Stmt) (value.Value, bool, error) {
	i.scopes.Push(name, false)
	defer i.scopes.Pop()

	return i.execBlock(statements)
}

func (i *Interpreter) execStatement(statement ast.Stmt) (value.Value, bool, error) {
	switch s := statement.(type) {
	case *ast.Declaration:
		return nil, false, i.execDeclaration(s)
	case *ast.Assignment:
		return nil, false, i.execAssignment(s)
	case *ast.FunctionDefinition:
		_, err := i.scopes.Declare(s.Name, value.NewDeclaredFunction(s), false, s.Type(), s.Position)
		return nil, false, err
	case *ast.CallStatement:
		result, err := i.evalCall(s.Call)
		if err != nil {
			return nil, false, err
		}

		// A call statement whose callee produced a value ends the enclosing block.
		return result, result != nil, nil
	case *ast.Conditional:
		return i.execConditional(s)
	case *ast.Loop:
		return i.execLoop(s)
	case *ast.Return:
		if s.Value == nil {
			return nil, true, nil
		}

		result, err := i.eval(s.Value)
		if err != nil {
			return nil, false, err
		}

		return result, true, nil
	}

	return nil, false, fmt.Errorf("unsupported statement %T at %s", statement, statement.Pos())
}

func (i *Interpreter) execDeclaration(s *ast.Declaration) error {
	var initial value.Value

	if s.Value != nil {
		v, err := i.evalValue(s.Value)
		if err != nil {
			return err
		}

		initial = v
	}

	_, err := i.scopes.Declare(s.Name, initial, s.Mutable, s.Type, s.Position)

	return err
}

func (i *Interpreter) execAssignment(s *ast.Assignment) error {
	if len(s.Indices) == 0 {
		v, err := i.evalValue(s.Value)
		if err != nil {
			return err
		}

		return i.scopes.Assign(s.Name, v, s.Position)
	}

	entry, ok := i.scopes.Lookup(s.Name)
	if !ok {
		return failf(ErrUndeclared, s.Position, "'%s'", s.Name)
	}

	indices, err := i.evalIndices(s.Indices)
	if err != nil {
		return err
	}

	v, err := i.evalValue(s.Value)
	if err != nil {
		return err
	}

	if entry.Value == nil {
		return failf(ErrUnassigned, s.Position, "'%s'", s.Name)
	}

	rebuilt, err := replaceAt(entry.Value, indices, v)
	if err != nil {
		return err
	}

	return i.scopes.Assign(s.Name, rebuilt, s.Position)
}

// replaceAt returns a copy of container with the element at the index path
// replaced by v. Lists along the path are copied, never modified.
func replaceAt(container value.Value, indices []value.Int, v value.Value) (value.Value, error) {
	list, n, err := indexList(container, indices[0])
	if err != nil {
		return nil, err
	}

	if len(indices) > 1 {
		inner, err := replaceAt(list.At(n), indices[1:], v)
		if err != nil {
			return nil, err
		}

		return list.With(n, inner), nil
	}

	if elemType := list.ElemType(); elemType != nil {
		converted, err := operation.ConvertTo(v, *elemType)
		if err != nil {
			return nil, err
		}

		v = converted
	}

	return list.With(n, v), nil
}

func (i *Interpreter) execConditional(s *ast.Conditional) (value.Value, bool, error) {
	condition, err := i.evalCondition(s.Condition)
	if err != nil {
		return nil, false, err
	}

	switch {
	case condition:
		return i.execScoped("If statement", s.Then)
	case s.ElseIf != nil:
		return i.execConditional(s.ElseIf)
	case s.Else != nil:
		return i.execScoped("Else statement", s.Else)
	}

	return nil, false, nil
}

func (i *Interpreter) execLoop(s *ast.Loop) (value.Value, bool, error) {
	for {
		condition, err := i.evalCondition(s.Condition)
		if err != nil || !condition {
			return nil, false, err
		}

		result, returned, err := i.execScoped("While scope", s.Body)
		if err != nil || returned {
			return result, returned, err
		}
	}
}

func (i *Interpreter) evalCondition(e ast.Expr) (bool, error) {
	v, err := i.evalValue(e)
	if err != nil {
		return false, err
	}

	b, err := operation.ConvertToBool(v)
	if err != nil {
		return false, err
	}

	return b.Value(), nil
}
