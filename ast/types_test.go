package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		name     string
		typ      Type
		expected string
	}{
		{"int", IntType, "int"},
		{"void", VoidType, "void"},
		{"list", ListOf(StringType), "list<string>"},
		{"nested list", ListOf(ListOf(IntType)), "list<list<int>>"},
		{"function", FunctionOf([]Type{IntType, FloatType}, BoolType), "function<int, float> -> bool"},
		{"no params", FunctionOf(nil, VoidType), "function<> -> void"},
		{"list marker", Type{Kind: TypeList}, "list"},
		{"function marker", Type{Kind: TypeFunction}, "function"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.typ.String())
		})
	}
}

func TestTypeEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Type
		expected bool
	}{
		{"same primitive", IntType, IntType, true},
		{"different primitive", IntType, FloatType, false},
		{"same list", ListOf(IntType), ListOf(IntType), true},
		{"different element", ListOf(IntType), ListOf(StringType), false},
		{"marker vs list", Type{Kind: TypeList}, ListOf(IntType), false},
		{"same function", FunctionOf([]Type{IntType}, IntType), FunctionOf([]Type{IntType}, IntType), true},
		{"different arity", FunctionOf([]Type{IntType}, IntType), FunctionOf(nil, IntType), false},
		{"different return", FunctionOf(nil, IntType), FunctionOf(nil, VoidType), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Equal(tt.b))
		})
	}
}

func TestFunctionDefinitionType(t *testing.T) {
	def := &FunctionDefinition{
		Name: "add",
		Params: []Param{
			{Name: "a", Type: IntType},
			{Name: "b", Type: FloatType},
		},
		ReturnType: IntType,
	}

	assert.True(t, def.Type().Equal(FunctionOf([]Type{IntType, FloatType}, IntType)))
}
