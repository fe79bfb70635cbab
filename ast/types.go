package ast

import "strings"

// TypeKind classifies a type descriptor.
type TypeKind int

const (
	TypeInt TypeKind = iota
	TypeFloat
	TypeBool
	TypeString
	TypeVoid
	TypeFunction
	TypeList
)

func (k TypeKind) String() string {
	switch k {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeBool:
		return "bool"
	case TypeString:
		return "string"
	case TypeVoid:
		return "void"
	case TypeFunction:
		return "function"
	case TypeList:
		return "list"
	default:
		return "unknown"
	}
}

// Type describes a declared type. Elem is set for lists; Params and Return
// for functions. A list or function Type without them is a bare marker.
type Type struct {
	Kind   TypeKind
	Elem   *Type
	Params []Type
	Return *Type
}

var (
	IntType    = Type{Kind: TypeInt}
	FloatType  = Type{Kind: TypeFloat}
	BoolType   = Type{Kind: TypeBool}
	StringType = Type{Kind: TypeString}
	VoidType   = Type{Kind: TypeVoid}
)

// ListOf returns list<elem>.
func ListOf(elem Type) Type {
	return Type{Kind: TypeList, Elem: &elem}
}

// FunctionOf returns function<params...> -> ret.
func FunctionOf(params []Type, ret Type) Type {
	return Type{Kind: TypeFunction, Params: params, Return: &ret}
}

// Equal reports structural equality.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind {
		return false
	}

	switch t.Kind {
	case TypeList:
		return equalRef(t.Elem, other.Elem)
	case TypeFunction:
		if len(t.Params) != len(other.Params) {
			return false
		}

		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}

		return equalRef(t.Return, other.Return)
	}

	return true
}

func equalRef(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}

	return a.Equal(*b)
}

func (t Type) String() string {
	switch t.Kind {
	case TypeList:
		if t.Elem == nil {
			return "list"
		}

		return "list<" + t.Elem.String() + ">"
	case TypeFunction:
		if t.Return == nil && t.Params == nil {
			return "function"
		}

		params := make([]string, 0, len(t.Params))
		for _, p := range t.Params {
			params = append(params, p.String())
		}

		ret := VoidType
		if t.Return != nil {
			ret = *t.Return
		}

		return "function<" + strings.Join(params, ", ") + "> -> " + ret.String()
	}

	return t.Kind.String()
}
