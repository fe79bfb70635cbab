package interpreter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/source"
	"github.com/shibukawa/pycs/value"
)

// RegisterBuiltin declares an immutable global function backed by fn.
// fn receives its arguments already coerced to params and returns nil for void.
func (i *Interpreter) RegisterBuiltin(name string, params []ast.Type, ret ast.Type, fn value.NativeFunc) error {
	builtin := value.BuiltinFunction{Name: name, Params: params, ReturnType: ret, Fn: fn}

	global := i.scopes.Global()
	if global == nil {
		return fmt.Errorf("registering builtin '%s': no global frame", name)
	}

	_, err := global.Declare(name, builtin, false, builtin.Type(), source.Position{})

	return err
}

func (i *Interpreter) registerStandardBuiltins() {
	i.mustRegisterBuiltin("print", []ast.Type{ast.StringType}, ast.VoidType, i.print)
	i.mustRegisterBuiltin("input", []ast.Type{ast.StringType}, ast.StringType, i.readInput)
}

// mustRegisterBuiltin panics when registration fails.
func (i *Interpreter) mustRegisterBuiltin(name string, params []ast.Type, ret ast.Type, fn value.NativeFunc) {
	if err := i.RegisterBuiltin(name, params, ret, fn); err != nil {
		panic(err)
	}
}

// print writes its argument and a newline to the output.
func (i *Interpreter) print(args []value.Value) (value.Value, error) {
	_, err := fmt.Fprintln(i.output, args[0].Text())
	return nil, err
}

// readInput writes the prompt, then reads one line without its line break.
// End of input yields the empty string.
func (i *Interpreter) readInput(args []value.Value) (value.Value, error) {
	if _, err := fmt.Fprintln(i.output, args[0].Text()); err != nil {
		return nil, err
	}

	line, err := i.input.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	return value.NewString(strings.TrimRight(line, "\r\n"), args[0].Pos())
}
