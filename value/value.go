// Package value implements the runtime Value model: a tagged sum of
// Number, String, Function and Undefined, grounded directly on
// original_source/interpreter.c's create_number/create_string/
// create_undefined/print_value quartet.
package value

import (
	"fmt"
	"strconv"

	"minilang/arena"
	"minilang/ast"
)

// Kind tags which variant a Value holds.
type Kind uint8

const (
	Undefined Kind = iota
	Number
	String
	Function
)

// MaxConcatLen bounds the length of a string produced by `+` concatenation,
// matching interpreter.c's fixed 256-byte snprintf buffer (spec.md §9 Open
// Question 3: the limit is preserved rather than lifted).
const MaxConcatLen = 256

// FuncRef is the Function variant's payload: a reference to the
// declaration's parameter list and body, not a capture of any enclosing
// state (spec.md's Non-goals rule out closures). It exists for value-model
// completeness; the evaluator never actually stores one of these as a
// variable's value (spec.md §9 Design Notes item 4, option (a)) — function
// lookup instead always goes through Context's separate function table.
type FuncRef struct {
	Name   string
	Params []string
	Body   ast.Ref
}

// Value is the tagged union every expression evaluates to.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Fn   FuncRef
}

// NewNumber wraps a float64 as a Number Value.
func NewNumber(n float64) Value {
	return Value{Kind: Number, Num: n}
}

// NewString copies s into the arena (via arena.CopyString, which counts it
// against the arena's capacity) and wraps the result as a String Value.
func NewString(a *arena.Arena, s string) (Value, error) {
	copied, err := a.CopyString(s)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: String, Str: copied}, nil
}

// NewUndefined returns the Undefined Value.
func NewUndefined() Value {
	return Value{Kind: Undefined}
}

// NewFunction wraps a function declaration as a Function Value.
func NewFunction(ref FuncRef) Value {
	return Value{Kind: Function, Fn: ref}
}

// IsTruthy implements spec.md's truthiness rule: a non-zero Number or a
// non-empty String is true; Undefined and Function are false.
func (v Value) IsTruthy() bool {
	switch v.Kind {
	case Number:
		return v.Num != 0
	case String:
		return v.Str != ""
	default:
		return false
	}
}

// Format renders a Value the way print and string concatenation both do:
// numbers as fixed two-decimal-place text, strings as their raw text,
// Undefined as the literal word "undefined", and Function as "[Function]".
func Format(v Value) string {
	switch v.Kind {
	case Number:
		return strconv.FormatFloat(v.Num, 'f', 2, 64)
	case String:
		return v.Str
	case Function:
		return "[Function]"
	default:
		return "undefined"
	}
}

// Concat implements the `+` operator's string-concatenation branch: when
// either operand is a String, the other is formatted with Format and the
// two are joined, truncated to MaxConcatLen bytes without diagnostic
// (spec.md §9 Open Question 3, matching interpreter.c's fixed 256-byte
// buffer exactly).
func Concat(a *arena.Arena, left, right Value) (Value, error) {
	joined := Format(left) + Format(right)
	if len(joined) > MaxConcatLen {
		joined = joined[:MaxConcatLen]
	}
	return NewString(a, joined)
}

func (v Value) String() string {
	return fmt.Sprintf("Value{Kind: %d, Repr: %q}", v.Kind, Format(v))
}
