package operation

import (
	"fmt"

	"github.com/shibukawa/pycs/value"
)

// Conjunction implements and. Both operands are converted to Bool.
func Conjunction(left, right value.Value) (value.Bool, error) {
	l, r, err := bothBool(left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(l && r, left.Pos()), nil
}

// Alternative implements or. Both operands are converted to Bool.
func Alternative(left, right value.Value) (value.Bool, error) {
	l, r, err := bothBool(left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(l || r, left.Pos()), nil
}

func bothBool(left, right value.Value) (bool, bool, error) {
	l, err := ConvertToBool(left)
	if err != nil {
		return false, false, err
	}

	r, err := ConvertToBool(right)
	if err != nil {
		return false, false, err
	}

	return l.Value(), r.Value(), nil
}

// UnaryNegate implements !.
func UnaryNegate(v value.Value) (value.Bool, error) {
	b, err := ConvertToBool(v)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(!b.Value(), v.Pos()), nil
}

// UnaryMinus implements unary -. Strings are parsed as numbers first and
// bools become Int(-1) or Int(0).
func UnaryMinus(v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case value.Int:
		return value.NewInt(-x.Value(), x.Pos())
	case value.Float:
		return value.NewFloat(-x.Value(), x.Pos())
	case value.String:
		number, err := ParseNumber(x)
		if err != nil {
			return nil, err
		}

		return UnaryMinus(number)
	case value.Bool:
		return value.NewInt(-boolToInt(x.Value()), x.Pos())
	}

	return nil, fmt.Errorf("%w: cannot negate %s at %s", ErrUnsupportedOperation, v.Kind(), v.Pos())
}

// UnaryPlus implements unary +. Numbers are returned as they are, strings
// are parsed as numbers and bools become Int(1) or Int(0).
func UnaryPlus(v value.Value) (value.Value, error) {
	switch x := v.(type) {
	case value.Int, value.Float:
		return x, nil
	case value.String:
		return ParseNumber(x)
	case value.Bool:
		return value.NewInt(boolToInt(x.Value()), x.Pos())
	}

	return nil, fmt.Errorf("%w: cannot apply unary + to %s at %s", ErrUnsupportedOperation, v.Kind(), v.Pos())
}
