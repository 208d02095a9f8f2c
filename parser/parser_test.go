package parser

import (
	"testing"

	"minilang/ast"
	"minilang/lexer"
)

func parse(t *testing.T, src string) (ast.Ref, *ast.Tree, []error) {
	t.Helper()
	tokens, scanErrs := lexer.New(src).Scan()
	if len(scanErrs) != 0 {
		t.Fatalf("unexpected scan errors: %v", scanErrs)
	}
	return New(tokens, ast.DefaultLimits).Parse()
}

func TestVarDeclarationWithInitializer(t *testing.T) {
	_, tree, errs := parse(t, "var x = 10;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	root := tree.Node(0)
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(root.Children))
	}

	decl := tree.Node(root.Children[0])
	if decl.Kind != ast.KindVarDecl || decl.Name != "x" {
		t.Fatalf("decl = %+v, want VarDecl named x", decl)
	}
	if init := tree.Node(decl.Value); init.Kind != ast.KindNumber || init.Num != 10 {
		t.Errorf("init = %+v, want Number(10)", init)
	}
}

func TestVarDeclarationWithoutInitializer(t *testing.T) {
	_, tree, errs := parse(t, "var x;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := tree.Node(tree.Node(0).Children[0])
	if decl.Value != ast.NoRef {
		t.Errorf("expected NoRef initializer, got %v", decl.Value)
	}
}

func TestVarDeclarationMissingNameIsSyntaxError(t *testing.T) {
	_, _, errs := parse(t, "var = 10;")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if _, ok := errs[0].(SyntaxError); !ok {
		t.Errorf("error type = %T, want SyntaxError", errs[0])
	}
}

func TestBinaryPrecedence(t *testing.T) {
	// x + y * 2 should parse as x + (y * 2)
	_, tree, errs := parse(t, "var z = x + y * 2;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := tree.Node(tree.Node(0).Children[0])
	add := tree.Node(decl.Value)
	if add.Kind != ast.KindBinaryOp || add.Op != "+" {
		t.Fatalf("top node = %+v, want BinaryOp(+)", add)
	}
	mul := tree.Node(add.Right)
	if mul.Kind != ast.KindBinaryOp || mul.Op != "*" {
		t.Errorf("right operand = %+v, want BinaryOp(*)", mul)
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	_, tree, errs := parse(t, "x = y = 3;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	outer := tree.Node(tree.Node(0).Children[0])
	if outer.Kind != ast.KindAssignment || outer.Name != "x" {
		t.Fatalf("outer = %+v, want Assignment to x", outer)
	}
	inner := tree.Node(outer.Value)
	if inner.Kind != ast.KindAssignment || inner.Name != "y" {
		t.Errorf("inner = %+v, want Assignment to y", inner)
	}
}

func TestAssignmentToNonIdentifierIsSyntaxError(t *testing.T) {
	_, _, errs := parse(t, "1 = 2;")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if _, ok := errs[0].(SyntaxError); !ok {
		t.Errorf("error type = %T, want SyntaxError", errs[0])
	}
}

func TestIfElseStatement(t *testing.T) {
	_, tree, errs := parse(t, "if (x < 1) { print(x); } else { print(0); }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ifNode := tree.Node(tree.Node(0).Children[0])
	if ifNode.Kind != ast.KindIf {
		t.Fatalf("node = %+v, want If", ifNode)
	}
	if tree.Node(ifNode.Then).Kind != ast.KindBlock {
		t.Errorf("then branch kind = %v, want Block", tree.Node(ifNode.Then).Kind)
	}
	if ifNode.Else == ast.NoRef || tree.Node(ifNode.Else).Kind != ast.KindBlock {
		t.Errorf("else branch missing or not a Block")
	}
}

func TestIfWithoutElseLeavesElseAsNoRef(t *testing.T) {
	_, tree, errs := parse(t, "if (x) { print(x); }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	ifNode := tree.Node(tree.Node(0).Children[0])
	if ifNode.Else != ast.NoRef {
		t.Errorf("expected NoRef else branch, got %v", ifNode.Else)
	}
}

func TestWhileStatement(t *testing.T) {
	_, tree, errs := parse(t, "while (x < 10) { x = x + 1; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	whileNode := tree.Node(tree.Node(0).Children[0])
	if whileNode.Kind != ast.KindWhile {
		t.Fatalf("node = %+v, want While", whileNode)
	}
}

func TestFunctionDeclarationWithParamsAndReturn(t *testing.T) {
	_, tree, errs := parse(t, "function add(a, b) { return a + b; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := tree.Node(tree.Node(0).Children[0])
	if fn.Kind != ast.KindFuncDecl || fn.Name != "add" {
		t.Fatalf("fn = %+v, want FuncDecl named add", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Errorf("params = %v, want [a b]", fn.Params)
	}
	body := tree.Node(fn.Then)
	if body.Kind != ast.KindBlock || len(body.Children) != 1 {
		t.Fatalf("body = %+v, want single-statement Block", body)
	}
	ret := tree.Node(body.Children[0])
	if ret.Kind != ast.KindReturn || ret.Value == ast.NoRef {
		t.Errorf("return = %+v, want Return with a value", ret)
	}
}

func TestBareReturnHasNoRefValue(t *testing.T) {
	_, tree, errs := parse(t, "function f() { return; }")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	fn := tree.Node(tree.Node(0).Children[0])
	body := tree.Node(fn.Then)
	ret := tree.Node(body.Children[0])
	if ret.Value != ast.NoRef {
		t.Errorf("bare return value = %v, want NoRef", ret.Value)
	}
}

func TestCallExpressionWithArguments(t *testing.T) {
	_, tree, errs := parse(t, "print(1, 2 + 3);")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	call := tree.Node(tree.Node(0).Children[0])
	if call.Kind != ast.KindCall {
		t.Fatalf("node = %+v, want Call", call)
	}
	if len(call.Args) != 2 {
		t.Fatalf("args = %v, want 2 entries", call.Args)
	}
	if tree.Node(call.Callee).Name != "print" {
		t.Errorf("callee = %+v, want identifier print", tree.Node(call.Callee))
	}
}

func TestMissingSemicolonsDoNotAbortParsing(t *testing.T) {
	_, tree, errs := parse(t, "var x = 1\nvar y = 2")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if len(tree.Node(0).Children) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(tree.Node(0).Children))
	}
}

func TestMalformedStatementDoesNotAbortLaterStatements(t *testing.T) {
	_, tree, errs := parse(t, "var = ;\nvar y = 2;")
	if len(errs) != 1 {
		t.Fatalf("expected exactly 1 error, got %v", errs)
	}
	if len(tree.Node(0).Children) != 1 {
		t.Fatalf("expected the second statement to still parse, got children %v", tree.Node(0).Children)
	}
	decl := tree.Node(tree.Node(0).Children[0])
	if decl.Name != "y" {
		t.Errorf("surviving statement = %+v, want VarDecl named y", decl)
	}
}

func TestParenthesizedExpression(t *testing.T) {
	_, tree, errs := parse(t, "var x = (1 + 2) * 3;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	decl := tree.Node(tree.Node(0).Children[0])
	mul := tree.Node(decl.Value)
	if mul.Kind != ast.KindBinaryOp || mul.Op != "*" {
		t.Fatalf("top node = %+v, want BinaryOp(*)", mul)
	}
	add := tree.Node(mul.Left)
	if add.Kind != ast.KindBinaryOp || add.Op != "+" {
		t.Errorf("left operand = %+v, want BinaryOp(+)", add)
	}
}

func TestUnaryMinusAndNot(t *testing.T) {
	_, tree, errs := parse(t, "var x = -1;\nvar y = !0;")
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}
	neg := tree.Node(tree.Node(tree.Node(0).Children[0]).Value)
	if neg.Kind != ast.KindUnaryOp || neg.Op != "-" {
		t.Errorf("neg = %+v, want UnaryOp(-)", neg)
	}
	not := tree.Node(tree.Node(tree.Node(0).Children[1]).Value)
	if not.Kind != ast.KindUnaryOp || not.Op != "!" {
		t.Errorf("not = %+v, want UnaryOp(!)", not)
	}
}
