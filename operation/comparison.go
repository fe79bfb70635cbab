package operation

import (
	"github.com/shibukawa/pycs/value"
)

// compareInt compares an Int with right. A numeric string that is not an
// integer is compared as a float.
func compareInt(left value.Int, right value.Value) (int, error) {
	if s, ok := right.(value.String); ok {
		number, err := ParseNumber(s)
		if err != nil {
			return 0, err
		}

		if f, ok := number.(value.Float); ok {
			return cmp(float64(left.Value()), f.Value()), nil
		}

		right = number
	}

	r, err := ConvertToInt(right)
	if err != nil {
		return 0, err
	}

	return cmp(left.Value(), r.Value()), nil
}

// compare returns -1, 0 or 1 for left against right after coercing right to
// the kind of left. Strings compare by length.
func compare(op string, left, right value.Value) (int, error) {
	switch l := left.(type) {
	case value.Int:
		return compareInt(l, right)
	case value.Float:
		r, err := ConvertToFloat(right)
		if err != nil {
			return 0, err
		}

		return cmp(l.Value(), r.Value()), nil
	case value.String:
		r, err := ConvertToString(right)
		if err != nil {
			return 0, err
		}

		return cmp(l.Len(), r.Len()), nil
	}

	return 0, unsupported(op, left, right)
}

func cmp[T int | int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}

	return 0
}

// MoreThan implements >.
func MoreThan(left, right value.Value) (value.Bool, error) {
	c, err := compare(">", left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(c > 0, left.Pos()), nil
}

// LessThan implements <.
func LessThan(left, right value.Value) (value.Bool, error) {
	c, err := compare("<", left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(c < 0, left.Pos()), nil
}

// MoreOrEqual implements >= as the negation of LessThan.
func MoreOrEqual(left, right value.Value) (value.Bool, error) {
	less, err := LessThan(left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(!less.Value(), left.Pos()), nil
}

// LessOrEqual implements <= as the negation of MoreThan.
func LessOrEqual(left, right value.Value) (value.Bool, error) {
	more, err := MoreThan(left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(!more.Value(), left.Pos()), nil
}

// IsEqual implements ==. The right operand is converted to the kind of the
// left one; lists compare element by element.
func IsEqual(left, right value.Value) (value.Bool, error) {
	equal, err := isEqual(left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(equal, left.Pos()), nil
}

// IsNotEqual implements !=.
func IsNotEqual(left, right value.Value) (value.Bool, error) {
	equal, err := isEqual(left, right)
	if err != nil {
		return value.Bool{}, err
	}

	return value.NewBool(!equal, left.Pos()), nil
}

func isEqual(left, right value.Value) (bool, error) {
	switch l := left.(type) {
	case value.Int:
		r, err := ConvertToInt(right)
		if err != nil {
			return false, err
		}

		return l.Value() == r.Value(), nil
	case value.Float:
		r, err := ConvertToFloat(right)
		if err != nil {
			return false, err
		}

		return l.Value() == r.Value(), nil
	case value.String:
		r, err := ConvertToString(right)
		if err != nil {
			return false, err
		}

		return l.Value() == r.Value(), nil
	case value.Bool:
		r, err := ConvertToBool(right)
		if err != nil {
			return false, err
		}

		return l.Value() == r.Value(), nil
	case value.List:
		r, ok := right.(value.List)
		if !ok {
			return false, unsupported("==", left, right)
		}

		if l.Len() != r.Len() {
			return false, nil
		}

		for i := range l.Len() {
			equal, err := isEqual(l.At(i), r.At(i))
			if err != nil || !equal {
				return false, err
			}
		}

		return true, nil
	}

	return false, unsupported("==", left, right)
}
