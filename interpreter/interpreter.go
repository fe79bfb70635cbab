// Package interpreter evaluates a parsed program by walking its syntax tree.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/parser"
	"github.com/shibukawa/pycs/scope"
	"github.com/shibukawa/pycs/source"
	"github.com/shibukawa/pycs/tokenizer"
	"github.com/shibukawa/pycs/value"
)

// Interpreter owns the scope stack of one program run. It is not safe for
// concurrent use.
type Interpreter struct {
	scopes       *scope.Stack
	output       io.Writer
	input        *bufio.Reader
	maxCallDepth int
	onWarning    func(pos source.Position, message string)
}

// Option is a function that configures Interpreter
type Option func(*Interpreter)

// WithOutput sets the sink written by print and input
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.output = w
	}
}

// WithInput sets the source read by input
func WithInput(r io.Reader) Option {
	return func(i *Interpreter) {
		i.input = bufio.NewReader(r)
	}
}

// WithMaxCallDepth limits the number of nested function calls. Zero means no limit.
func WithMaxCallDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxCallDepth = depth
	}
}

// WithWarningHandler receives non-fatal tokenizer diagnostics from RunSource
func WithWarningHandler(fn func(pos source.Position, message string)) Option {
	return func(i *Interpreter) {
		i.onWarning = fn
	}
}

// New creates an interpreter with print and input registered in the global frame.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		scopes: scope.NewStack(),
		output: os.Stdout,
		input:  bufio.NewReader(os.Stdin),
	}
	for _, opt := range opts {
		opt(i)
	}

	i.registerStandardBuiltins()

	return i
}

// Run executes the program in the global frame and returns the value of the
// first top-level return, or nil when the program finishes without one.
func (i *Interpreter) Run(program *ast.Program) (value.Value, error) {
	result, _, err := i.execBlock(program.Statements)
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RunSource parses and runs source text.
func (i *Interpreter) RunSource(r io.Reader) (value.Value, error) {
	program, err := parser.Parse(r, tokenizer.Options{OnWarning: i.onWarning})
	if err != nil {
		return nil, err
	}

	return i.Run(program)
}

// RunString parses and runs src.
func (i *Interpreter) RunString(src string) (value.Value, error) {
	return i.RunSource(strings.NewReader(src))
}

// Lookup returns the current value of name as seen from the innermost frame.
func (i *Interpreter) Lookup(name string) (value.Value, bool) {
	entry, ok := i.scopes.Lookup(name)
	if !ok {
		return nil, false
	}

	return entry.Value, true
}

func failf(err error, pos source.Position, format string, args ...any) error {
	return fmt.Errorf("%w: %s at %s", err, fmt.Sprintf(format, args...), pos)
}
