package interpreter

import (
	"errors"

	"github.com/shibukawa/pycs/scope"
)

// Sentinel errors
var (
	// ErrUndeclared is returned when a name is not declared in any visible frame.
	ErrUndeclared = scope.ErrNotFound
	// ErrRedeclared is returned when a name is declared twice within one call.
	ErrRedeclared = scope.ErrRedeclared
	// ErrImmutable is returned when assigning to a name not declared mut.
	ErrImmutable = scope.ErrImmutable
	// ErrUnassigned is returned when reading a name that was declared without a value.
	// The innermost declaration wins: an unassigned inner name hides an
	// assigned outer one instead of falling through to it.
	ErrUnassigned = errors.New("name has no value")
	// ErrNoValue is returned when an expression that produced nothing is used as a value.
	ErrNoValue = errors.New("expression has no value")
	// ErrArity is returned when a call supplies the wrong number of arguments.
	ErrArity = errors.New("wrong number of arguments")
	// ErrNotCallable is returned when calling, binding or piping a value that is not a function.
	ErrNotCallable = errors.New("value is not callable")
	// ErrNotList is returned when indexing or measuring a value that is not a list.
	ErrNotList = errors.New("value is not a list")
	// ErrIndexOutOfRange is returned for a list index outside the list.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrPipeArity is returned when a pipe is called with other than one argument or
	// built from a function that does not take exactly one argument.
	ErrPipeArity = errors.New("pipe stages take exactly one argument")
	// ErrPipeNoValue is returned when a pipe stage returns nothing.
	ErrPipeNoValue = errors.New("pipe stage did not return a value")
	// ErrCallDepthExceeded is returned when nested calls exceed the configured limit.
	ErrCallDepthExceeded = errors.New("maximum call depth exceeded")
)
