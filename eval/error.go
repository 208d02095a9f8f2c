package eval

import (
	"fmt"

	"minilang/token"
)

// RuntimeError reports the hard failures evaluation can raise: exhausting
// the bounded variable or function tables, or exhausting the arena while
// building a string value. Every other malformed
// construct (undefined variable, division by zero, calling a name that
// names neither function nor built-in) degrades silently to an Undefined
// value instead, matching original_source/interpreter.c's behavior.
type RuntimeError struct {
	Line    int
	Column  int
	Message string
}

func CreateRuntimeError(line, column int, message string) RuntimeError {
	return RuntimeError{Line: line, Column: column, Message: message}
}

func (e RuntimeError) Error() string {
	return fmt.Sprintf("💥 runtime error:\nline:%d, column:%d - %s", e.Line, e.Column, e.Message)
}

// withPosition attaches tok's source position to err, turning any error
// raised during evaluation (a RuntimeError built without position
// context, or an arena.CapacityError surfacing from value construction)
// into a RuntimeError positioned at the node that triggered it.
func withPosition(err error, tok token.Token) error {
	if re, ok := err.(RuntimeError); ok {
		re.Line, re.Column = tok.Line, tok.Column
		return re
	}
	return CreateRuntimeError(tok.Line, tok.Column, err.Error())
}
