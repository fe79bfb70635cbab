// Package value defines the runtime values produced by evaluation. Values
// are immutable snapshots: every operation builds a new value.
package value

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/shibukawa/pycs/ast"
	"github.com/shibukawa/pycs/source"
)

// ErrOverflow is returned when a value falls outside its bounds.
var ErrOverflow = errors.New("value out of range")

// Value bounds
const (
	MaxInt          = 1_000_000_000
	MinInt          = -1_000_000_000
	MaxFloat        = 1e9
	MinFloat        = -1e9
	MaxStringLength = 512000
)

// Kind identifies a runtime value variant.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindList
	KindDeclaredFunction
	KindPipeFunction
	KindBuiltinFunction
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDeclaredFunction:
		return "function"
	case KindPipeFunction:
		return "pipe function"
	case KindBuiltinFunction:
		return "builtin function"
	default:
		return "unknown"
	}
}

// Value is one of Int, Float, Bool, String, List, DeclaredFunction,
// PipeFunction or BuiltinFunction.
type Value interface {
	Kind() Kind
	Pos() source.Position
	// Text is the printable form of the value.
	Text() string
	isValue()
}

// IsFunction reports whether v is callable.
func IsFunction(v Value) bool {
	switch v.Kind() {
	case KindDeclaredFunction, KindPipeFunction, KindBuiltinFunction:
		return true
	}

	return false
}

type Int struct {
	v   int64
	pos source.Position
}

// NewInt builds an Int, failing with ErrOverflow outside [MinInt, MaxInt].
func NewInt(v int64, pos source.Position) (Int, error) {
	if v > MaxInt {
		return Int{}, fmt.Errorf("%w: int too big (%d) at %s", ErrOverflow, v, pos)
	}

	if v < MinInt {
		return Int{}, fmt.Errorf("%w: int too small (%d) at %s", ErrOverflow, v, pos)
	}

	return Int{v: v, pos: pos}, nil
}

// IntFromFloat truncates f toward zero and builds an Int.
func IntFromFloat(f float64, pos source.Position) (Int, error) {
	if math.IsNaN(f) || f > MaxInt+1 || f < MinInt-1 {
		return Int{}, fmt.Errorf("%w: int out of range (%g) at %s", ErrOverflow, f, pos)
	}

	return NewInt(int64(f), pos)
}

func (i Int) Value() int64         { return i.v }
func (i Int) Kind() Kind           { return KindInt }
func (i Int) Pos() source.Position { return i.pos }
func (i Int) Text() string         { return strconv.FormatInt(i.v, 10) }
func (Int) isValue()               {}

type Float struct {
	v   float64
	pos source.Position
}

// NewFloat builds a Float, failing with ErrOverflow outside [MinFloat, MaxFloat].
func NewFloat(v float64, pos source.Position) (Float, error) {
	if math.IsNaN(v) {
		return Float{}, fmt.Errorf("%w: float is not a number at %s", ErrOverflow, pos)
	}

	if v > MaxFloat {
		return Float{}, fmt.Errorf("%w: float too big (%g) at %s", ErrOverflow, v, pos)
	}

	if v < MinFloat {
		return Float{}, fmt.Errorf("%w: float too small (%g) at %s", ErrOverflow, v, pos)
	}

	return Float{v: v, pos: pos}, nil
}

func (f Float) Value() float64       { return f.v }
func (f Float) Kind() Kind           { return KindFloat }
func (f Float) Pos() source.Position { return f.pos }
func (Float) isValue()               {}

// Text renders the float in invariant decimal notation.
func (f Float) Text() string {
	return decimal.NewFromFloat(f.v).String()
}

type Bool struct {
	v   bool
	pos source.Position
}

func NewBool(v bool, pos source.Position) Bool {
	return Bool{v: v, pos: pos}
}

func (b Bool) Value() bool          { return b.v }
func (b Bool) Kind() Kind           { return KindBool }
func (b Bool) Pos() source.Position { return b.pos }
func (b Bool) Text() string         { return strconv.FormatBool(b.v) }
func (Bool) isValue()               {}

type String struct {
	v   string
	pos source.Position
}

// NewString builds a String, failing with ErrOverflow above MaxStringLength characters.
func NewString(v string, pos source.Position) (String, error) {
	if n := utf8.RuneCountInString(v); n > MaxStringLength {
		return String{}, fmt.Errorf("%w: string too long (%d characters) at %s", ErrOverflow, n, pos)
	}

	return String{v: v, pos: pos}, nil
}

func (s String) Value() string        { return s.v }
func (s String) Kind() Kind           { return KindString }
func (s String) Pos() source.Position { return s.pos }
func (s String) Text() string         { return s.v }
func (String) isValue()               {}

// Len returns the length in characters.
func (s String) Len() int {
	return utf8.RuneCountInString(s.v)
}

// List is an ordered sequence of values. ElemType is nil when the list was
// never coerced to a declared list type.
type List struct {
	elems    []Value
	elemType *ast.Type
	pos      source.Position
}

// NewList copies elems into a new List.
func NewList(elems []Value, elemType *ast.Type, pos source.Position) List {
	return List{elems: slices.Clone(elems), elemType: elemType, pos: pos}
}

func (l List) Len() int             { return len(l.elems) }
func (l List) At(i int) Value       { return l.elems[i] }
func (l List) ElemType() *ast.Type  { return l.elemType }
func (l List) Kind() Kind           { return KindList }
func (l List) Pos() source.Position { return l.pos }
func (List) isValue()               {}

// Elements returns a copy of the elements.
func (l List) Elements() []Value {
	return slices.Clone(l.elems)
}

// With returns a copy of the list with element i replaced.
func (l List) With(i int, v Value) List {
	elems := slices.Clone(l.elems)
	elems[i] = v

	return List{elems: elems, elemType: l.elemType, pos: l.pos}
}

func (l List) Text() string {
	parts := make([]string, 0, len(l.elems))
	for _, e := range l.elems {
		if e.Kind() == KindString {
			parts = append(parts, strconv.Quote(e.Text()))
			continue
		}

		parts = append(parts, e.Text())
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
