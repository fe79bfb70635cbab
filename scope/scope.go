// Package scope implements the symbol table: a stack of lexical frames
// holding the value, declared type, mutability and declaration position of
// every name.
package scope

import (
	"errors"
	"fmt"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/operation"
	"github.com/shibukawa/pycs/source"
	"github.com/shibukawa/pycs/value"
)

// Sentinel errors
var (
	// ErrNotFound is returned when a name is not declared in any visible frame.
	ErrNotFound = errors.New("name not found")
	// ErrRedeclared is returned when a name is declared twice within one call.
	ErrRedeclared = errors.New("name already declared")
	// ErrImmutable is returned when assigning to a name not declared mut.
	ErrImmutable = errors.New("cannot assign to immutable name")
	// ErrNoFrame is returned when declaring into an empty stack.
	ErrNoFrame = errors.New("no open frame")
)

// Entry is one declared name. Value is nil until the name is assigned.
type Entry struct {
	Value    value.Value
	Type     ast.Type
	Mutable  bool
	Position source.Position
}

// Frame is a single lexical block. CallBoundary marks the body frame of a
// function invocation.
type Frame struct {
	Name         string
	CallBoundary bool
	entries      map[string]*Entry
	order        []string
}

func NewFrame(name string, callBoundary bool) *Frame {
	return &Frame{
		Name:         name,
		CallBoundary: callBoundary,
		entries:      make(map[string]*Entry),
	}
}

// Declare adds name to this frame. A non-nil v is coerced to t first.
func (f *Frame) Declare(name string, v value.Value, mutable bool, t ast.Type, pos source.Position) (*Entry, error) {
	if existing, ok := f.entries[name]; ok {
		return nil, fmt.Errorf("%w: '%s' was declared at %s, redeclared at %s", ErrRedeclared, name, existing.Position, pos)
	}

	if v != nil {
		converted, err := operation.ConvertTo(v, t)
		if err != nil {
			return nil, fmt.Errorf("declaring '%s' as %s at %s: %w", name, t, pos, err)
		}

		v = converted
	}

	entry := &Entry{Value: v, Type: t, Mutable: mutable, Position: pos}
	f.entries[name] = entry
	f.order = append(f.order, name)

	return entry, nil
}

func (f *Frame) Get(name string) (*Entry, bool) {
	entry, ok := f.entries[name]
	return entry, ok
}

// Names returns the declared names in declaration order.
func (f *Frame) Names() []string {
	return append([]string(nil), f.order...)
}

// Stack is the frame stack owned by one interpreter. The bottom frame is
// the global frame.
type Stack struct {
	frames []*Frame
}

// NewStack returns a stack holding only the global frame.
func NewStack() *Stack {
	return &Stack{frames: []*Frame{NewFrame("Global", false)}}
}

func (s *Stack) Push(name string, callBoundary bool) *Frame {
	frame := NewFrame(name, callBoundary)
	s.frames = append(s.frames, frame)

	return frame
}

// Pop discards the innermost frame and every name declared in it.
func (s *Stack) Pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

// Current returns the innermost frame, or nil on an empty stack.
func (s *Stack) Current() *Frame {
	if len(s.frames) == 0 {
		return nil
	}

	return s.frames[len(s.frames)-1]
}

// Global returns the outermost frame, or nil on an empty stack.
func (s *Stack) Global() *Frame {
	if len(s.frames) == 0 {
		return nil
	}

	return s.frames[0]
}

// Len is the number of frames on the stack.
func (s *Stack) Len() int {
	return len(s.frames)
}

// Depth is the number of call-boundary frames on the stack.
func (s *Stack) Depth() int {
	depth := 0

	for _, f := range s.frames {
		if f.CallBoundary {
			depth++
		}
	}

	return depth
}

// Frames returns the frames from innermost to outermost.
func (s *Stack) Frames() []*Frame {
	result := make([]*Frame, 0, len(s.frames))
	for i := len(s.frames) - 1; i >= 0; i-- {
		result = append(result, s.frames[i])
	}

	return result
}

// IsDeclaredInCall walks from the innermost frame outward and stops after
// the first call-boundary frame. Names in enclosing calls and the global
// frame are not visible to it, so a function body may shadow them.
func (s *Stack) IsDeclaredInCall(name string) (*Entry, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		frame := s.frames[i]
		if entry, ok := frame.Get(name); ok {
			return entry, true
		}

		if frame.CallBoundary {
			break
		}
	}

	return nil, false
}

// Lookup finds the innermost entry for name in any frame.
func (s *Stack) Lookup(name string) (*Entry, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if entry, ok := s.frames[i].Get(name); ok {
			return entry, true
		}
	}

	return nil, false
}

// Declare adds name to the innermost frame after the call-bounded
// redeclaration check.
func (s *Stack) Declare(name string, v value.Value, mutable bool, t ast.Type, pos source.Position) (*Entry, error) {
	if existing, ok := s.IsDeclaredInCall(name); ok {
		return nil, fmt.Errorf("%w: '%s' was declared at %s, redeclared at %s", ErrRedeclared, name, existing.Position, pos)
	}

	frame := s.Current()
	if frame == nil {
		return nil, ErrNoFrame
	}

	return frame.Declare(name, v, mutable, t, pos)
}

// Assign stores v into the innermost entry for name, coerced to the
// entry's type. Immutable entries reject every assignment, including ones
// declared without a value.
func (s *Stack) Assign(name string, v value.Value, pos source.Position) error {
	entry, ok := s.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: '%s' at %s", ErrNotFound, name, pos)
	}

	if !entry.Mutable {
		return fmt.Errorf("%w: '%s' declared at %s, assigned at %s", ErrImmutable, name, entry.Position, pos)
	}

	converted, err := operation.ConvertTo(v, entry.Type)
	if err != nil {
		return fmt.Errorf("assigning '%s' at %s: %w", name, pos, err)
	}

	entry.Value = converted

	return nil
}
