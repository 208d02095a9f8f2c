package value

import (
	"testing"

	"minilang/arena"
)

func TestFormatMatchesPrintValueSemantics(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"number", NewNumber(50), "50.00"},
		{"fractional number", NewNumber(3.14159), "3.14"},
		{"negative number", NewNumber(-2), "-2.00"},
		{"string", Value{Kind: String, Str: "hi"}, "hi"},
		{"undefined", NewUndefined(), "undefined"},
		{"function", NewFunction(FuncRef{Name: "f"}), "[Function]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.v); got != tt.want {
				t.Errorf("Format() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want bool
	}{
		{"zero number", NewNumber(0), false},
		{"nonzero number", NewNumber(1), true},
		{"empty string", Value{Kind: String, Str: ""}, false},
		{"nonempty string", Value{Kind: String, Str: "x"}, true},
		{"undefined", NewUndefined(), false},
		{"function", NewFunction(FuncRef{}), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsTruthy(); got != tt.want {
				t.Errorf("IsTruthy() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConcatFormatsNumberOperandsWithTwoDecimals(t *testing.T) {
	a := arena.New(1024)

	got, err := Concat(a, Value{Kind: String, Str: "total: "}, NewNumber(5))
	if err != nil {
		t.Fatalf("Concat returned error: %v", err)
	}
	if got.Str != "total: 5.00" {
		t.Errorf("Concat result = %q, want %q", got.Str, "total: 5.00")
	}
}

func TestConcatTruncatesAtMaxConcatLen(t *testing.T) {
	a := arena.New(4096)
	long := ""
	for i := 0; i < MaxConcatLen+50; i++ {
		long += "a"
	}

	left, err := NewString(a, long)
	if err != nil {
		t.Fatalf("NewString returned error: %v", err)
	}
	got, err := Concat(a, left, Value{Kind: String, Str: "x"})
	if err != nil {
		t.Fatalf("Concat returned error: %v", err)
	}
	if len(got.Str) != MaxConcatLen {
		t.Errorf("len(Concat result) = %d, want %d", len(got.Str), MaxConcatLen)
	}
}
