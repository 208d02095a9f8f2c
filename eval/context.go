package eval

import (
	"fmt"

	"minilang/ast"
	"minilang/value"
)

// Limits bounds the flat variable and function tables a Context holds,
// the Go-side analog of minall.h's MAX_VARIABLES/MAX_FUNCTIONS constants
// (spec.md §9 Design Notes item 5: a construction-time parameter rather
// than a compile-time constant).
type Limits struct {
	MaxVariables int
	MaxFunctions int
}

// DefaultLimits matches the original implementation's MAX_VARIABLES=1000,
// MAX_FUNCTIONS=100 bounds.
var DefaultLimits = Limits{MaxVariables: 1000, MaxFunctions: 100}

type binding struct {
	name  string
	value value.Value
}

type function struct {
	name   string
	params []string
	body   ast.Ref
}

// Context is one execution scope: a flat, linearly-scanned list of
// variable bindings and a flat list of registered functions, plus a
// pending-return slot. There is no lexical nesting — every scope the
// language has (top level, inside a function call) gets its own flat
// Context, grounded directly on original_source/minall.h's Context
// struct and interpreter.c's linear-scan set_variable/get_variable.
type Context struct {
	limits       Limits
	variables    []binding
	functions    []function
	hasReturn    bool
	returnValue  value.Value
}

// NewContext returns an empty Context bounded by limits.
func NewContext(limits Limits) *Context {
	return &Context{limits: limits, returnValue: value.NewUndefined()}
}

// SetVariable overwrites an existing binding by name, or appends a new
// one if the table has room and the name is unseen. Exceeding
// MaxVariables is a hard failure (spec.md §3: bounded variable table
// capacity "treat[s] excess as a hard failure"), unlike interpreter.c's
// set_variable, which silently no-ops past MAX_VARIABLES — §7 requires a
// faithful port to surface this class of exhaustion distinguishably
// rather than reproduce the silent drop.
func (c *Context) SetVariable(name string, v value.Value) error {
	for i := range c.variables {
		if c.variables[i].name == name {
			c.variables[i].value = v
			return nil
		}
	}
	if len(c.variables) >= c.limits.MaxVariables {
		return CreateRuntimeError(0, 0, fmt.Sprintf("variable table exhausted: limit %d", c.limits.MaxVariables))
	}
	c.variables = append(c.variables, binding{name: name, value: v})
	return nil
}

// GetVariable returns the named binding's value, or Undefined if no such
// variable has been set.
func (c *Context) GetVariable(name string) value.Value {
	for i := range c.variables {
		if c.variables[i].name == name {
			return c.variables[i].value
		}
	}
	return value.NewUndefined()
}

// RegisterFunction adds a function declaration to the table. Exceeding
// MaxFunctions is a hard failure (spec.md §3/§7), unlike interpreter.c's
// register_function, which silently no-ops past MAX_FUNCTIONS.
func (c *Context) RegisterFunction(name string, params []string, body ast.Ref) error {
	if len(c.functions) >= c.limits.MaxFunctions {
		return CreateRuntimeError(0, 0, fmt.Sprintf("function table exhausted: limit %d", c.limits.MaxFunctions))
	}
	c.functions = append(c.functions, function{name: name, params: params, body: body})
	return nil
}

// GetFunction returns the named function and true, or false if no
// function with that name was registered.
func (c *Context) GetFunction(name string) (function, bool) {
	for i := range c.functions {
		if c.functions[i].name == name {
			return c.functions[i], true
		}
	}
	return function{}, false
}

// childForCall builds the fresh Context a function body executes in: the
// caller's function table is snapshotted in (so a function can call
// another declared before or after it, and can recurse), but none of the
// caller's variables carry over — there are no closures (spec.md
// Non-goals), matching interpreter.c's call_function, which copies only
// `functions`/`func_count` into the new Context before binding parameters.
func (c *Context) childForCall() *Context {
	child := NewContext(c.limits)
	child.functions = append(child.functions, c.functions...)
	return child
}

// hasPendingReturn reports whether a return statement has already fired
// in this Context, used to short-circuit block and loop execution.
func (c *Context) hasPendingReturn() bool {
	return c.hasReturn
}

func (c *Context) setReturn(v value.Value) {
	c.returnValue = v
	c.hasReturn = true
}
