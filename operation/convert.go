// Package operation implements the operators and value conversions of the
// language. Dispatch is on the runtime kinds of the operands; the result
// of a binary operator takes the kind of its left operand unless noted.
package operation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/value"
)

func conversionError(v value.Value, target string) error {
	return fmt.Errorf("%w: from %s to %s at %s", ErrConversion, v.Kind(), target, v.Pos())
}

// ConvertToInt converts v to an Int. Floats are floored; strings must hold a
// base-10 integer.
func ConvertToInt(v value.Value) (value.Int, error) {
	switch x := v.(type) {
	case value.Int:
		return x, nil
	case value.Bool:
		return value.NewInt(boolToInt(x.Value()), x.Pos())
	case value.Float:
		return value.IntFromFloat(math.Floor(x.Value()), x.Pos())
	case value.String:
		n, err := strconv.ParseInt(strings.TrimSpace(x.Value()), 10, 64)
		if err != nil {
			return value.Int{}, fmt.Errorf("%w: %q is not an int at %s", ErrConversion, x.Value(), x.Pos())
		}

		return value.NewInt(n, x.Pos())
	}

	return value.Int{}, conversionError(v, "int")
}

// ConvertToFloat converts v to a Float. Strings are parsed in invariant notation.
func ConvertToFloat(v value.Value) (value.Float, error) {
	switch x := v.(type) {
	case value.Float:
		return x, nil
	case value.Bool:
		return value.NewFloat(float64(boolToInt(x.Value())), x.Pos())
	case value.Int:
		return value.NewFloat(float64(x.Value()), x.Pos())
	case value.String:
		d, err := decimal.NewFromString(strings.TrimSpace(x.Value()))
		if err != nil {
			return value.Float{}, fmt.Errorf("%w: %q is not a float at %s", ErrConversion, x.Value(), x.Pos())
		}

		return value.NewFloat(d.InexactFloat64(), x.Pos())
	}

	return value.Float{}, conversionError(v, "float")
}

// ConvertToString converts v to its textual form. Functions have none.
func ConvertToString(v value.Value) (value.String, error) {
	switch x := v.(type) {
	case value.String:
		return x, nil
	case value.Int, value.Float, value.Bool, value.List:
		return value.NewString(x.Text(), x.Pos())
	}

	return value.String{}, conversionError(v, "string")
}

// ConvertToBool converts v to a Bool: zero numbers and empty strings are false.
func ConvertToBool(v value.Value) (value.Bool, error) {
	switch x := v.(type) {
	case value.Bool:
		return x, nil
	case value.Int:
		return value.NewBool(x.Value() != 0, x.Pos()), nil
	case value.Float:
		return value.NewBool(x.Value() != 0, x.Pos()), nil
	case value.String:
		return value.NewBool(x.Value() != "", x.Pos()), nil
	}

	return value.Bool{}, conversionError(v, "bool")
}

// ParseNumber parses s as an Int, or as a Float when it is not an integer.
func ParseNumber(s value.String) (value.Value, error) {
	if i, err := ConvertToInt(s); err == nil {
		return i, nil
	}

	f, err := ConvertToFloat(s)
	if err != nil {
		return nil, err
	}

	return f, nil
}

// ConvertTo coerces v to a declared type. A void target yields nil.
func ConvertTo(v value.Value, t ast.Type) (value.Value, error) {
	if v == nil {
		if t.Kind == ast.TypeVoid {
			return nil, nil
		}

		return nil, fmt.Errorf("%w: no value to convert to %s", ErrConversion, t)
	}

	if value.IsFunction(v) {
		if t.Kind != ast.TypeFunction {
			return nil, conversionError(v, t.String())
		}

		return v, nil
	}

	switch t.Kind {
	case ast.TypeInt:
		return ConvertToInt(v)
	case ast.TypeFloat:
		return ConvertToFloat(v)
	case ast.TypeString:
		return ConvertToString(v)
	case ast.TypeBool:
		return ConvertToBool(v)
	case ast.TypeVoid:
		return nil, nil
	case ast.TypeList:
		return convertToList(v, t)
	}

	return nil, conversionError(v, t.String())
}

func convertToList(v value.Value, t ast.Type) (value.Value, error) {
	list, ok := v.(value.List)
	if !ok {
		return nil, conversionError(v, t.String())
	}

	if t.Elem == nil {
		return list, nil
	}

	elems := make([]value.Value, 0, list.Len())
	for _, e := range list.Elements() {
		converted, err := ConvertTo(e, *t.Elem)
		if err != nil {
			return nil, err
		}

		elems = append(elems, converted)
	}

	elemType := *t.Elem

	return value.NewList(elems, &elemType, list.Pos()), nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}

	return 0
}
