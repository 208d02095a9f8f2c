package ast

import (
	"testing"

	"minilang/token"
)

func TestNewBlockEnforcesStatementCapacity(t *testing.T) {
	tree := NewTree(Limits{MaxBlockStatements: 2, MaxCallArgs: 10, MaxParams: 10})
	statements := []Ref{0, 1, 2}

	_, err := tree.NewBlock(token.Token{}, statements)
	if err == nil {
		t.Fatal("expected a capacity error for 3 statements with a limit of 2")
	}
	if _, ok := err.(CapacityError); !ok {
		t.Errorf("error type = %T, want CapacityError", err)
	}
}

func TestNewCallEnforcesArgCapacity(t *testing.T) {
	tree := NewTree(Limits{MaxBlockStatements: 100, MaxCallArgs: 1, MaxParams: 10})
	callee := tree.NewIdentifier(token.Token{}, "f")

	if _, err := tree.NewCall(token.Token{}, callee, []Ref{0, 1}); err == nil {
		t.Fatal("expected a capacity error for 2 args with a limit of 1")
	}
}

func TestNewFuncDeclEnforcesParamCapacity(t *testing.T) {
	tree := NewTree(Limits{MaxBlockStatements: 100, MaxCallArgs: 10, MaxParams: 1})
	body, err := tree.NewBlock(token.Token{}, nil)
	if err != nil {
		t.Fatalf("NewBlock: %v", err)
	}

	if _, err := tree.NewFuncDecl(token.Token{}, "f", []string{"a", "b"}, body); err == nil {
		t.Fatal("expected a capacity error for 2 params with a limit of 1")
	}
}

func TestRoundTripNodeFields(t *testing.T) {
	tree := NewTree(DefaultLimits)

	num := tree.NewNumber(token.Token{}, 10)
	str := tree.NewString(token.Token{}, "hi")
	ident := tree.NewIdentifier(token.Token{}, "x")
	bin := tree.NewBinaryOp(token.Token{}, "+", num, ident)

	if got := tree.Node(num).Num; got != 10 {
		t.Errorf("Number node = %v, want 10", got)
	}
	if got := tree.Node(str).Str; got != "hi" {
		t.Errorf("String node = %q, want %q", got, "hi")
	}
	if got := tree.Node(ident).Name; got != "x" {
		t.Errorf("Identifier node = %q, want %q", got, "x")
	}
	binNode := tree.Node(bin)
	if binNode.Op != "+" || binNode.Left != num || binNode.Right != ident {
		t.Errorf("BinaryOp node = %+v, want Op=+ Left=%d Right=%d", binNode, num, ident)
	}
}

func TestNoRefMarksAbsentOptionalChildren(t *testing.T) {
	tree := NewTree(DefaultLimits)
	ret := tree.NewReturn(token.Token{}, NoRef)
	if tree.Node(ret).Value != NoRef {
		t.Error("bare return should carry NoRef as its value")
	}
}
