package scope

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/operation"
	"github.com/shibukawa/pycs/source"
	"github.com/shibukawa/pycs/value"
)

var pos = source.Position{Line: 1, Column: 1}

func intValue(t *testing.T, v int64) value.Value {
	t.Helper()

	i, err := value.NewInt(v, pos)
	assert.NoError(t, err)

	return i
}

func TestFrameDeclare(t *testing.T) {
	frame := NewFrame("Global", false)

	entry, err := frame.Declare("thing", intValue(t, 11), false, ast.IntType, pos)
	assert.NoError(t, err)
	assert.Equal(t, intValue(t, 11), entry.Value)

	got, ok := frame.Get("thing")
	assert.True(t, ok)
	assert.Equal(t, entry, got)

	_, err = frame.Declare("thing", intValue(t, 12), false, ast.IntType, source.Position{Line: 2, Column: 1})
	assert.IsError(t, err, ErrRedeclared)
	assert.Contains(t, err.Error(), "declared at [1:1]")
}

func TestFrameDeclareCoerces(t *testing.T) {
	frame := NewFrame("Global", false)

	text, err := value.NewString("42", pos)
	assert.NoError(t, err)

	entry, err := frame.Declare("n", text, false, ast.IntType, pos)
	assert.NoError(t, err)
	assert.Equal(t, intValue(t, 42), entry.Value)

	word, err := value.NewString("afvsa", pos)
	assert.NoError(t, err)

	_, err = frame.Declare("m", word, false, ast.IntType, pos)
	assert.IsError(t, err, operation.ErrConversion)
	_, ok := frame.Get("m")
	assert.False(t, ok)
}

func TestFrameNamesKeepOrder(t *testing.T) {
	frame := NewFrame("Block", false)
	for _, name := range []string{"c", "a", "b"} {
		_, err := frame.Declare(name, nil, true, ast.IntType, pos)
		assert.NoError(t, err)
	}

	assert.Equal(t, []string{"c", "a", "b"}, frame.Names())
}

func TestStackPushPop(t *testing.T) {
	stack := NewStack()
	assert.Equal(t, 1, stack.Len())
	assert.Equal(t, "Global", stack.Current().Name)

	stack.Push("Nested", false)
	assert.Equal(t, 2, stack.Len())
	assert.Equal(t, "Nested", stack.Current().Name)

	stack.Pop()
	assert.Equal(t, "Global", stack.Current().Name)
	assert.Equal(t, stack.Global(), stack.Current())

	stack.Pop()
	assert.Zero(t, stack.Current())
	assert.Zero(t, stack.Global())
	stack.Pop()

	_, err := stack.Declare("x", nil, true, ast.IntType, pos)
	assert.IsError(t, err, ErrNoFrame)
}

func TestStackBlockScoping(t *testing.T) {
	stack := NewStack()
	stack.Push("If statement", false)

	_, err := stack.Declare("x", intValue(t, 1), false, ast.IntType, pos)
	assert.NoError(t, err)

	entry, ok := stack.Lookup("x")
	assert.True(t, ok)
	assert.Equal(t, intValue(t, 1), entry.Value)

	stack.Pop()

	_, ok = stack.Lookup("x")
	assert.False(t, ok)

	_, err = stack.Declare("x", intValue(t, 2), false, ast.IntType, pos)
	assert.NoError(t, err)
}

func TestStackLookupFromOuterFrames(t *testing.T) {
	stack := NewStack()

	_, err := stack.Declare("thing", intValue(t, 5), false, ast.IntType, pos)
	assert.NoError(t, err)

	stack.Push("call", true)
	stack.Push("Nested", false)

	entry, ok := stack.Lookup("thing")
	assert.True(t, ok)
	assert.Equal(t, intValue(t, 5), entry.Value)
}

func TestStackRedeclaration(t *testing.T) {
	tests := []struct {
		name   string
		frames []bool
		err    error
	}{
		{"nested blocks", []bool{false, false}, ErrRedeclared},
		{"inside call", []bool{true}, nil},
		{"blocks inside call", []bool{true, false, false}, nil},
		{"block around call", []bool{false, true}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stack := NewStack()
			_, err := stack.Declare("thing", intValue(t, 1), false, ast.IntType, pos)
			assert.NoError(t, err)

			for _, boundary := range tt.frames {
				stack.Push("frame", boundary)
			}

			_, err = stack.Declare("thing", intValue(t, 2), false, ast.IntType, pos)
			if tt.err != nil {
				assert.IsError(t, err, tt.err)
				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestStackRedeclarationWithinCall(t *testing.T) {
	stack := NewStack()
	stack.Push("call", true)

	_, err := stack.Declare("local", intValue(t, 1), false, ast.IntType, pos)
	assert.NoError(t, err)

	stack.Push("If statement", false)
	stack.Push("While scope", false)

	_, err = stack.Declare("local", intValue(t, 2), false, ast.IntType, pos)
	assert.IsError(t, err, ErrRedeclared)

	_, found := stack.IsDeclaredInCall("local")
	assert.True(t, found)
}

func TestStackAssign(t *testing.T) {
	stack := NewStack()

	_, err := stack.Declare("counter", intValue(t, 1), true, ast.IntType, pos)
	assert.NoError(t, err)

	stack.Push("call", true)

	text, err := value.NewString("8", pos)
	assert.NoError(t, err)
	assert.NoError(t, stack.Assign("counter", text, pos))

	entry, _ := stack.Lookup("counter")
	assert.Equal(t, intValue(t, 8), entry.Value)
}

func TestStackAssignErrors(t *testing.T) {
	stack := NewStack()

	_, err := stack.Declare("fixed", intValue(t, 1), false, ast.IntType, pos)
	assert.NoError(t, err)

	err = stack.Assign("fixed", intValue(t, 2), pos)
	assert.IsError(t, err, ErrImmutable)

	err = stack.Assign("nothing", intValue(t, 2), pos)
	assert.IsError(t, err, ErrNotFound)

	_, err = stack.Declare("mutable", nil, true, ast.IntType, pos)
	assert.NoError(t, err)

	word, err := value.NewString("abc", pos)
	assert.NoError(t, err)

	err = stack.Assign("mutable", word, pos)
	assert.IsError(t, err, operation.ErrConversion)
}

func TestStackAssignImmutableWithoutValue(t *testing.T) {
	stack := NewStack()

	_, err := stack.Declare("later", nil, false, ast.IntType, pos)
	assert.NoError(t, err)

	assert.IsError(t, stack.Assign("later", intValue(t, 3), pos), ErrImmutable)

	entry, ok := stack.Lookup("later")
	assert.True(t, ok)
	assert.Zero(t, entry.Value)
}

func TestStackDepth(t *testing.T) {
	stack := NewStack()
	assert.Equal(t, 0, stack.Depth())

	stack.Push("f", true)
	stack.Push("If statement", false)
	stack.Push("g", true)
	assert.Equal(t, 2, stack.Depth())

	names := []string{}
	for _, f := range stack.Frames() {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"g", "If statement", "f", "Global"}, names)
}
