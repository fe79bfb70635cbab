package operation

import (
	"fmt"
	"math"
	"strings"

	"github.com/shibukawa/pycs/value"
)

func unsupported(op string, left, right value.Value) error {
	return fmt.Errorf("%w: cannot use %s %s %s at %s", ErrUnsupportedOperation, left.Kind(), op, right.Kind(), left.Pos())
}

func divideByZero(left value.Value) error {
	return fmt.Errorf("%w at %s", ErrDivideByZero, left.Pos())
}

// numericBool turns a bool into the numeric kind of its partner.
func numericBool(b value.Bool, partner value.Value) (value.Value, bool) {
	switch partner.Kind() {
	case value.KindInt:
		return mustInt(boolToInt(b.Value()), b), true
	case value.KindFloat:
		return mustFloat(float64(boolToInt(b.Value())), b), true
	}

	return nil, false
}

func mustInt(v int64, at value.Value) value.Int {
	i, _ := value.NewInt(v, at.Pos())
	return i
}

func mustFloat(v float64, at value.Value) value.Float {
	f, _ := value.NewFloat(v, at.Pos())
	return f
}

type binaryFunc func(left, right value.Value) (value.Value, error)

// retryWithNumber parses a string right operand as a number and applies op again.
func retryWithNumber(op binaryFunc, left value.Value, right value.String) (value.Value, error) {
	number, err := ParseNumber(right)
	if err != nil {
		return nil, err
	}

	return op(left, number)
}

// retryWithBool coerces a bool left operand to the numeric kind of right.
func retryWithBool(op binaryFunc, name string, left value.Bool, right value.Value) (value.Value, error) {
	number, ok := numericBool(left, right)
	if !ok {
		return nil, unsupported(name, left, right)
	}

	return op(number, right)
}

// Add implements +. Int + Float floors to Int; String + x concatenates.
func Add(left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Int:
		switch r := right.(type) {
		case value.Int:
			return value.NewInt(l.Value()+r.Value(), l.Pos())
		case value.Float:
			return value.IntFromFloat(math.Floor(float64(l.Value())+r.Value()), l.Pos())
		case value.Bool:
			return value.NewInt(l.Value()+boolToInt(r.Value()), l.Pos())
		case value.String:
			return retryWithNumber(Add, l, r)
		}
	case value.Float:
		switch r := right.(type) {
		case value.Float:
			return value.NewFloat(l.Value()+r.Value(), l.Pos())
		case value.Int:
			return value.NewFloat(l.Value()+float64(r.Value()), l.Pos())
		case value.Bool:
			return value.NewFloat(l.Value()+float64(boolToInt(r.Value())), l.Pos())
		case value.String:
			return retryWithNumber(Add, l, r)
		}
	case value.String:
		text, err := ConvertToString(right)
		if err != nil {
			return nil, err
		}

		return value.NewString(l.Value()+text.Value(), l.Pos())
	case value.Bool:
		return retryWithBool(Add, "+", l, right)
	}

	return nil, unsupported("+", left, right)
}

// Subtract implements -. Int - Float floors to Int.
func Subtract(left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Int:
		switch r := right.(type) {
		case value.Int:
			return value.NewInt(l.Value()-r.Value(), l.Pos())
		case value.Float:
			return value.IntFromFloat(math.Floor(float64(l.Value())-r.Value()), l.Pos())
		case value.Bool:
			return value.NewInt(l.Value()-boolToInt(r.Value()), l.Pos())
		case value.String:
			return retryWithNumber(Subtract, l, r)
		}
	case value.Float:
		switch r := right.(type) {
		case value.Float:
			return value.NewFloat(l.Value()-r.Value(), l.Pos())
		case value.Int:
			return value.NewFloat(l.Value()-float64(r.Value()), l.Pos())
		case value.Bool:
			return value.NewFloat(l.Value()-float64(boolToInt(r.Value())), l.Pos())
		case value.String:
			return retryWithNumber(Subtract, l, r)
		}
	case value.Bool:
		return retryWithBool(Subtract, "-", l, right)
	}

	return nil, unsupported("-", left, right)
}

// Multiply implements *. Int * Float truncates to Int; String * Int repeats.
func Multiply(left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Int:
		switch r := right.(type) {
		case value.Int:
			return value.NewInt(l.Value()*r.Value(), l.Pos())
		case value.Float:
			return value.IntFromFloat(float64(l.Value())*r.Value(), l.Pos())
		case value.Bool:
			return value.NewInt(l.Value()*boolToInt(r.Value()), l.Pos())
		case value.String:
			return retryWithNumber(Multiply, l, r)
		}
	case value.Float:
		switch r := right.(type) {
		case value.Float:
			return value.NewFloat(l.Value()*r.Value(), l.Pos())
		case value.Int:
			return value.NewFloat(l.Value()*float64(r.Value()), l.Pos())
		case value.Bool:
			return value.NewFloat(l.Value()*float64(boolToInt(r.Value())), l.Pos())
		case value.String:
			return retryWithNumber(Multiply, l, r)
		}
	case value.String:
		if r, ok := right.(value.Int); ok {
			return repeat(l, r)
		}
	case value.Bool:
		return retryWithBool(Multiply, "*", l, right)
	}

	return nil, unsupported("*", left, right)
}

func repeat(s value.String, count value.Int) (value.Value, error) {
	n := count.Value()
	if n < 0 {
		return nil, fmt.Errorf("%w: negative repeat count %d at %s", ErrUnsupportedOperation, n, count.Pos())
	}

	if n > 0 && int64(s.Len()) > value.MaxStringLength/n {
		return nil, fmt.Errorf("%w: repeated string too long at %s", value.ErrOverflow, s.Pos())
	}

	return value.NewString(strings.Repeat(s.Value(), int(n)), s.Pos())
}

// Divide implements /. Integer results truncate toward zero; any zero
// divisor fails with ErrDivideByZero.
func Divide(left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.Int:
		switch r := right.(type) {
		case value.Int:
			if r.Value() == 0 {
				return nil, divideByZero(l)
			}

			return value.NewInt(l.Value()/r.Value(), l.Pos())
		case value.Float:
			if r.Value() == 0 {
				return nil, divideByZero(l)
			}

			return value.IntFromFloat(float64(l.Value())/r.Value(), l.Pos())
		case value.Bool:
			return Divide(l, mustInt(boolToInt(r.Value()), r))
		case value.String:
			return retryWithNumber(Divide, l, r)
		}
	case value.Float:
		var divisor float64

		switch r := right.(type) {
		case value.Float:
			divisor = r.Value()
		case value.Int:
			divisor = float64(r.Value())
		case value.Bool:
			divisor = float64(boolToInt(r.Value()))
		case value.String:
			return retryWithNumber(Divide, l, r)
		default:
			return nil, unsupported("/", left, right)
		}

		if divisor == 0 {
			return nil, divideByZero(l)
		}

		return value.NewFloat(l.Value()/divisor, l.Pos())
	case value.Bool:
		return retryWithBool(Divide, "/", l, right)
	}

	return nil, unsupported("/", left, right)
}
