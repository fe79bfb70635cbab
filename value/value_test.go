package value

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/source"
)

var pos = source.Position{Line: 1, Column: 1}

func TestIntBounds(t *testing.T) {
	tests := []struct {
		name    string
		input   int64
		wantErr bool
	}{
		{"zero", 0, false},
		{"max", MaxInt, false},
		{"min", MinInt, false},
		{"above max", MaxInt + 1, true},
		{"below min", MinInt - 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewInt(tt.input, pos)
			if tt.wantErr {
				assert.IsError(t, err, ErrOverflow)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.input, v.Value())
		})
	}
}

func TestFloatBounds(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"max", MaxFloat, false},
		{"min", MinFloat, false},
		{"above max", MaxFloat + 0.5, true},
		{"below min", MinFloat - 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFloat(tt.input, pos)
			if tt.wantErr {
				assert.IsError(t, err, ErrOverflow)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIntFromFloat(t *testing.T) {
	v, err := IntFromFloat(-2.9, pos)
	assert.NoError(t, err)
	assert.Equal(t, int64(-2), v.Value())

	_, err = IntFromFloat(1e11, pos)
	assert.IsError(t, err, ErrOverflow)
}

func TestStringBounds(t *testing.T) {
	_, err := NewString(strings.Repeat("a", MaxStringLength), pos)
	assert.NoError(t, err)

	_, err = NewString(strings.Repeat("a", MaxStringLength+1), pos)
	assert.IsError(t, err, ErrOverflow)
}

func TestText(t *testing.T) {
	mustInt := func(v int64) Value { i, _ := NewInt(v, pos); return i }
	mustFloat := func(v float64) Value { f, _ := NewFloat(v, pos); return f }
	mustString := func(v string) Value { s, _ := NewString(v, pos); return s }

	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"int", mustInt(-42), "-42"},
		{"float", mustFloat(231.432), "231.432"},
		{"whole float", mustFloat(2), "2"},
		{"bool", NewBool(true, pos), "true"},
		{"string", mustString("abc"), "abc"},
		{"list", NewList([]Value{mustInt(1), mustString("x")}, nil, pos), `[1, "x"]`},
		{"empty list", NewList(nil, nil, pos), "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.Text())
		})
	}
}

func TestListIsImmutable(t *testing.T) {
	one, _ := NewInt(1, pos)
	two, _ := NewInt(2, pos)

	elems := []Value{one, one}
	list := NewList(elems, nil, pos)
	elems[0] = two

	assert.Equal(t, Value(one), list.At(0))

	changed := list.With(1, two)
	assert.Equal(t, Value(one), list.At(1))
	assert.Equal(t, Value(two), changed.At(1))
}

func TestBindCopiesBoundArguments(t *testing.T) {
	def := &ast.FunctionDefinition{
		Name: "f",
		Params: []ast.Param{
			{Name: "a", Type: ast.IntType},
			{Name: "b", Type: ast.IntType},
			{Name: "c", Type: ast.IntType},
		},
		ReturnType: ast.IntType,
	}
	one, _ := NewInt(1, pos)
	two, _ := NewInt(2, pos)
	three, _ := NewInt(3, pos)

	f := NewDeclaredFunction(def)
	g := f.Bind(one, pos)
	h1 := g.Bind(two, pos)
	h2 := g.Bind(three, pos)

	assert.Equal(t, 3, f.Arity())
	assert.Equal(t, 2, g.Arity())
	assert.Equal(t, []Value{one, two}, h1.Bound)
	assert.Equal(t, []Value{one, three}, h2.Bound)
	assert.Equal(t, "function<int, int, int> -> int", h1.Type().String())
}

func TestPipeThen(t *testing.T) {
	a := DeclaredFunction{Name: "a"}
	b := DeclaredFunction{Name: "b"}
	c := DeclaredFunction{Name: "c"}

	ab := PipeFunction{Stages: []DeclaredFunction{a}}.Then(b)
	abc := ab.Then(c)

	assert.Equal(t, 2, len(ab.Stages))
	assert.Equal(t, "<pipe a b c>", abc.Text())
	assert.True(t, IsFunction(abc))
	assert.False(t, IsFunction(NewBool(false, pos)))
}
