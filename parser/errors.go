package parser

import "errors"

// Sentinel errors
var (
	// ErrUnexpectedToken is returned when a token cannot start or continue the current production.
	ErrUnexpectedToken = errors.New("unexpected token")
	// ErrMissingToken is returned when a required token such as ';' or ')' is absent.
	ErrMissingToken = errors.New("missing token")
	// ErrMissingExpression is returned when an operator or clause is not followed by an expression.
	ErrMissingExpression = errors.New("missing expression")
	// ErrMissingType is returned when a type is required but not present.
	ErrMissingType = errors.New("missing type")
)
