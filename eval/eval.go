// Package eval implements the tree-walking evaluator: it walks an
// ast.Tree built by the parser and executes it against a Context,
// grounded statement-for-statement and expression-for-expression on
// original_source/interpreter.c's execute_statement/evaluate_expression
// pair.
package eval

import (
	"fmt"
	"os"

	"minilang/arena"
	"minilang/ast"
	"minilang/token"
	"minilang/value"
)

// Interpreter walks one Tree against one Arena, writing built-in print
// output to Stdout (overridable for tests).
type Interpreter struct {
	tree   *ast.Tree
	arena  *arena.Arena
	Stdout *os.File
}

// New returns an Interpreter for tree, allocating string values out of a.
func New(tree *ast.Tree, a *arena.Arena) *Interpreter {
	return &Interpreter{tree: tree, arena: a, Stdout: os.Stdout}
}

// Run executes a parsed program's root node against a fresh top-level
// Context and returns the last value produced, mirroring
// original_source/interpreter.c's top-level `interpret` entry point.
// The only error Run can return is a RuntimeError — arena exhaustion or
// bounded variable/function table exhaustion (spec.md §7's two hard
// failure classes); every other malformed construct degrades silently
// to value.Undefined per §7 and never reaches this return.
func (in *Interpreter) Run(root ast.Ref, limits Limits) (value.Value, error) {
	ctx := NewContext(limits)
	return in.executeStatement(root, ctx)
}

func (in *Interpreter) executeStatement(ref ast.Ref, ctx *Context) (value.Value, error) {
	if ref == ast.NoRef {
		return value.NewUndefined(), nil
	}
	n := in.tree.Node(ref)

	switch n.Kind {
	case ast.KindProgram, ast.KindBlock:
		return in.executeBlock(n.Children, ctx)

	case ast.KindVarDecl:
		v := value.NewUndefined()
		if n.Value != ast.NoRef {
			var err error
			v, err = in.evaluateExpression(n.Value, ctx)
			if err != nil {
				return value.NewUndefined(), err
			}
		}
		if err := ctx.SetVariable(n.Name, v); err != nil {
			return value.NewUndefined(), withPosition(err, n.Tok)
		}
		return value.NewUndefined(), nil

	case ast.KindFuncDecl:
		if err := ctx.RegisterFunction(n.Name, n.Params, n.Then); err != nil {
			return value.NewUndefined(), withPosition(err, n.Tok)
		}
		return value.NewUndefined(), nil

	case ast.KindIf:
		cond, err := in.evaluateExpression(n.Cond, ctx)
		if err != nil {
			return value.NewUndefined(), err
		}
		if cond.IsTruthy() {
			return in.executeStatement(n.Then, ctx)
		} else if n.Else != ast.NoRef {
			return in.executeStatement(n.Else, ctx)
		}
		return value.NewUndefined(), nil

	case ast.KindWhile:
		last := value.NewUndefined()
		for {
			cond, err := in.evaluateExpression(n.Cond, ctx)
			if err != nil {
				return value.NewUndefined(), err
			}
			if !cond.IsTruthy() {
				break
			}
			last, err = in.executeStatement(n.Then, ctx)
			if err != nil {
				return value.NewUndefined(), err
			}
			if ctx.hasPendingReturn() {
				break
			}
		}
		return last, nil

	case ast.KindReturn:
		v := value.NewUndefined()
		if n.Value != ast.NoRef {
			var err error
			v, err = in.evaluateExpression(n.Value, ctx)
			if err != nil {
				return value.NewUndefined(), err
			}
		}
		ctx.setReturn(v)
		return v, nil

	default:
		return in.evaluateExpression(ref, ctx)
	}
}

// executeBlock runs a statement list in order, stopping early once a
// return has fired anywhere inside it (original_source/interpreter.c's
// execute_block breaks its loop the moment ctx->has_return is set).
func (in *Interpreter) executeBlock(statements []ast.Ref, ctx *Context) (value.Value, error) {
	last := value.NewUndefined()
	for _, stmt := range statements {
		var err error
		last, err = in.executeStatement(stmt, ctx)
		if err != nil {
			return value.NewUndefined(), err
		}
		if ctx.hasPendingReturn() {
			break
		}
	}
	return last, nil
}

func (in *Interpreter) evaluateExpression(ref ast.Ref, ctx *Context) (value.Value, error) {
	if ref == ast.NoRef {
		return value.NewUndefined(), nil
	}
	n := in.tree.Node(ref)

	switch n.Kind {
	case ast.KindNumber:
		return value.NewNumber(n.Num), nil

	case ast.KindString:
		v, err := value.NewString(in.arena, n.Str)
		if err != nil {
			return value.NewUndefined(), withPosition(err, n.Tok)
		}
		return v, nil

	case ast.KindIdentifier:
		return ctx.GetVariable(n.Name), nil

	case ast.KindBinaryOp:
		left, err := in.evaluateExpression(n.Left, ctx)
		if err != nil {
			return value.NewUndefined(), err
		}
		right, err := in.evaluateExpression(n.Right, ctx)
		if err != nil {
			return value.NewUndefined(), err
		}
		return in.evaluateBinaryOp(n.Op, left, right, n.Tok)

	case ast.KindUnaryOp:
		operand, err := in.evaluateExpression(n.Operand, ctx)
		if err != nil {
			return value.NewUndefined(), err
		}
		return evaluateUnaryOp(n.Op, operand), nil

	case ast.KindAssignment:
		v, err := in.evaluateExpression(n.Value, ctx)
		if err != nil {
			return value.NewUndefined(), err
		}
		if err := ctx.SetVariable(n.Name, v); err != nil {
			return value.NewUndefined(), withPosition(err, n.Tok)
		}
		return v, nil

	case ast.KindCall:
		return in.evaluateCall(n, ctx)

	default:
		return value.NewUndefined(), nil
	}
}

// evaluateBinaryOp mirrors evaluate_binary_op's fast path (both operands
// Number) followed by the string-concatenation fallback; anything else
// degrades to Undefined. Division and modulo by zero both fold to 0
// rather than erroring, exactly as the source does. Arena exhaustion
// while building a concatenated string is the one way this can fail —
// spec.md §7 requires that surfaced as a RuntimeError rather than folded
// into Undefined alongside the permissive cases above it.
func (in *Interpreter) evaluateBinaryOp(op string, left, right value.Value, tok token.Token) (value.Value, error) {
	if left.Kind == value.Number && right.Kind == value.Number {
		l, r := left.Num, right.Num
		switch op {
		case "+":
			return value.NewNumber(l + r), nil
		case "-":
			return value.NewNumber(l - r), nil
		case "*":
			return value.NewNumber(l * r), nil
		case "/":
			if r == 0 {
				return value.NewNumber(0), nil
			}
			return value.NewNumber(l / r), nil
		case "%":
			if r == 0 {
				return value.NewNumber(0), nil
			}
			return value.NewNumber(float64(int(l) % int(r))), nil
		case "<":
			return boolNumber(l < r), nil
		case "<=":
			return boolNumber(l <= r), nil
		case ">":
			return boolNumber(l > r), nil
		case ">=":
			return boolNumber(l >= r), nil
		case "==":
			return boolNumber(l == r), nil
		case "!=":
			return boolNumber(l != r), nil
		}
	}

	if op == "+" && (left.Kind == value.String || right.Kind == value.String) {
		concatenated, err := value.Concat(in.arena, left, right)
		if err != nil {
			return value.NewUndefined(), withPosition(err, tok)
		}
		return concatenated, nil
	}

	return value.NewUndefined(), nil
}

func boolNumber(b bool) value.Value {
	if b {
		return value.NewNumber(1)
	}
	return value.NewNumber(0)
}

// evaluateUnaryOp mirrors evaluate_unary_op: `-` only applies to
// Numbers, `!` negates truthiness of any operand.
func evaluateUnaryOp(op string, operand value.Value) value.Value {
	switch op {
	case "-":
		if operand.Kind == value.Number {
			return value.NewNumber(-operand.Num)
		}
		return value.NewUndefined()
	case "!":
		if operand.IsTruthy() {
			return value.NewNumber(0)
		}
		return value.NewNumber(1)
	default:
		return value.NewUndefined()
	}
}

// evaluateCall implements call expressions: the built-in `print`, or a
// user-defined function looked up in ctx's function table. A call whose
// callee isn't a bare identifier, or whose name resolves to neither,
// evaluates to Undefined (original_source/interpreter.c's NODE_CALL case
// falls through the same way).
func (in *Interpreter) evaluateCall(n ast.Node, ctx *Context) (value.Value, error) {
	callee := in.tree.Node(n.Callee)
	if callee.Kind != ast.KindIdentifier {
		return value.NewUndefined(), nil
	}
	name := callee.Name

	if name == "print" {
		return in.callPrint(n.Args, ctx)
	}

	fn, ok := ctx.GetFunction(name)
	if !ok {
		return value.NewUndefined(), nil
	}
	return in.callFunction(fn, n.Args, ctx)
}

// callPrint writes every argument's formatted value space-separated,
// followed by a newline, matching interpreter.c's print_value loop
// exactly (a space after every argument except the last).
func (in *Interpreter) callPrint(args []ast.Ref, ctx *Context) (value.Value, error) {
	for i, arg := range args {
		v, err := in.evaluateExpression(arg, ctx)
		if err != nil {
			return value.NewUndefined(), err
		}
		fmt.Fprint(in.Stdout, value.Format(v))
		if i < len(args)-1 {
			fmt.Fprint(in.Stdout, " ")
		}
	}
	fmt.Fprintln(in.Stdout)
	return value.NewUndefined(), nil
}

// callFunction evaluates arguments in the caller's Context (spec.md §9
// Open Question 4 / interpreter.c's call_function evaluates args[i]
// against parent_ctx before binding), then runs the body in a fresh
// child Context that inherits only the function table, never variables.
func (in *Interpreter) callFunction(fn function, args []ast.Ref, caller *Context) (value.Value, error) {
	child := caller.childForCall()

	for i := 0; i < len(fn.params) && i < len(args); i++ {
		argValue, err := in.evaluateExpression(args[i], caller)
		if err != nil {
			return value.NewUndefined(), err
		}
		if err := child.SetVariable(fn.params[i], argValue); err != nil {
			return value.NewUndefined(), withPosition(err, in.tree.Node(args[i]).Tok)
		}
	}

	if _, err := in.executeStatement(fn.body, child); err != nil {
		return value.NewUndefined(), err
	}

	if child.hasPendingReturn() {
		return child.returnValue, nil
	}
	return value.NewUndefined(), nil
}
