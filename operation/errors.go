package operation

import "errors"

// Sentinel errors
var (
	// ErrConversion is returned when a value cannot be converted to the requested kind.
	ErrConversion = errors.New("conversion failed")
	// ErrUnsupportedOperation is returned for operand kinds an operator does not accept.
	ErrUnsupportedOperation = errors.New("unsupported operation")
	// ErrDivideByZero is returned when the divisor is zero.
	ErrDivideByZero = errors.New("division by zero")
)
