package compiler

import (
	"errors"
	"strings"
	"testing"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		strict   bool
		wantMsg  string // empty when the program is accepted
		row, col int
	}{
		{name: "Minimal", input: "main() { }"},
		{name: "Missing Main", input: "f() { }", wantMsg: "No main function declared"},
		{name: "Duplicate Global", input: "var a; var a; main() { }", wantMsg: "Duplicated variable: a", row: 1, col: 12},
		{name: "Duplicate Function", input: "f() {} f() {} main() { }", wantMsg: "Duplicated function: f", row: 1, col: 8},
		{name: "Redefined Builtin", input: "printi(x) { } main() { }", wantMsg: "Duplicated function: printi", row: 1, col: 1},
		{name: "Duplicate Local", input: "main() { var x, x; }", wantMsg: "Duplicated variable: x", row: 1, col: 17},
		{name: "Duplicate Parameter", input: "f(a, a) { } main() { }", wantMsg: "Duplicated variable: a", row: 1, col: 6},
		{name: "Local Redeclares Parameter", input: "f(a) { var a; } main() { }", wantMsg: "Duplicated variable: a", row: 1, col: 12},
		{name: "Local Shadows Global", input: "var x; main() { var x; x = 1; }"},
		{name: "Global Visible", input: "var g; main() { g = 1; inc g; dec g; }"},
		{name: "Undeclared Target", input: "main() { y = 1; }", wantMsg: "Undeclared variable: y", row: 1, col: 10},
		{name: "Undeclared Operand", input: "main() { var x; x = y + 1; }", wantMsg: "Undeclared variable: y", row: 1, col: 21},
		{name: "Undeclared Increment", input: "main() { inc z; }", wantMsg: "Undeclared variable: z", row: 1, col: 14},
		{name: "Undeclared In Condition", input: "main() { if (true) { } elif (q) { } }", wantMsg: "Undeclared variable: q", row: 1, col: 30},
		{name: "Undeclared In Argument", input: "main() { printi(w); }", wantMsg: "Undeclared variable: w", row: 1, col: 17},
		{name: "Locals Do Not Leak", input: "f() { var t; } main() { t = 1; }", wantMsg: "Undeclared variable: t", row: 1, col: 25},
		{name: "Break Outside Loop", input: "main() { break; }", wantMsg: "Found Break outside loop declaration", row: 1, col: 10},
		{name: "Break After Loop", input: "main() { while (true) { } break; }", wantMsg: "Found Break outside loop declaration", row: 1, col: 27},
		{name: "Break In While", input: "main() { while (true) { if (false) { break; } } }"},
		{name: "Break In Do", input: "main() { do { break; } while (true); }"},
		{name: "Break In Nested Loop", input: "main() { while (true) { while (false) { } break; } }"},
		{name: "Arity Match", input: "f(a) { } main() { f(1); }"},
		{name: "Arity Mismatch", input: "f(a) { } main() { f(1, 2); }", wantMsg: "Number of arguments mismatch: f", row: 1, col: 19},
		{name: "Builtin Arity Mismatch", input: "main() { set(1); }", wantMsg: "Number of arguments mismatch: set", row: 1, col: 10},
		{name: "Arity In Expression", input: "f(a) { return a; } main() { printi(f(1, 2)); }", wantMsg: "Number of arguments mismatch: f", row: 1, col: 36},
		{name: "Zero Arguments Unchecked", input: "main() { printi(); }"},
		{name: "Zero Arguments Strict", input: "main() { printi(); }", strict: true, wantMsg: "Number of arguments mismatch: printi", row: 1, col: 10},
		{name: "Unknown Function", input: "main() { foo(1); }"},
		{name: "Unknown Function Strict", input: "main() { foo(1); }", strict: true, wantMsg: "Undeclared function: foo", row: 1, col: 10},
		{name: "Call Before Definition", input: "main() { later(1); } later(x) { }"},
		{name: "Int Bounds", input: "main() { var x; x = 2147483647; x = -2147483648; }"},
		{name: "Int Too Large", input: "main() { var x; x = 2147483648; }", wantMsg: "Integer literal too large: 2147483648", row: 1, col: 21},
		{name: "Int Too Small", input: "main() { var x; x = -2147483649; }", wantMsg: "Integer literal too large: -2147483649", row: 1, col: 21},
		{name: "Char Escapes", input: `main() { printc('\n'); printc('\u00004A'); printc('\''); }`},
		{name: "Char Too Large", input: `main() { printc('\u110000'); }`, wantMsg: `Char literal too large: '\u110000'`, row: 1, col: 17},
		{name: "String Escapes", input: `main() { prints("tab\tquote\"\u000041"); }`},
		{name: "String Too Large", input: `main() { prints("\u110000"); }`, wantMsg: `String literal too large: "\u110000"`, row: 1, col: 17},
		{name: "String Bad Escape", input: `main() { prints("a\qb"); }`, wantMsg: `Invalid string literal: "a\qb"`, row: 1, col: 17},
		{name: "Booleans", input: "main() { var b; b = true and not false; }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustParse(t, tt.input)
			err := NewChecker(CheckOptions{StrictCalls: tt.strict}).Check(root)

			if tt.wantMsg == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected %q, got nil", tt.wantMsg)
			}
			if !errors.Is(err, ErrSemantic) {
				t.Fatalf("error %v does not match ErrSemantic", err)
			}
			var sem *SemanticError
			if !errors.As(err, &sem) {
				t.Fatalf("error %T is not a *SemanticError", err)
			}
			if !strings.HasPrefix(sem.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want prefix %q", sem.Message, tt.wantMsg)
			}
			if tt.row == 0 {
				if sem.Token != nil {
					t.Errorf("Token = %v, want nil", sem.Token)
				}
				return
			}
			if sem.Token == nil || sem.Token.Row != tt.row || sem.Token.Column != tt.col {
				t.Errorf("Token = %v, want @(%d, %d)", sem.Token, tt.row, tt.col)
			}
		})
	}
}

func TestSemanticErrorMessage(t *testing.T) {
	_, err := Compile("main() { y = 1; }", Options{})
	want := "Semantic Error: Undeclared variable: y at row 1, column 10."
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %s", err, want)
	}

	_, err = Compile("", Options{})
	want = "Semantic Error: No main function declared"
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %s", err, want)
	}
}

func TestCheckerSymbols(t *testing.T) {
	root := mustParse(t, "var g, h; f(a, b) { var c; } main() { var i; }")
	c := NewChecker(CheckOptions{})
	if err := c.Check(root); err != nil {
		t.Fatalf("Check failed: %v", err)
	}
	syms := c.Symbols()

	if got := syms.Globals().Names(); strings.Join(got, ",") != "g,h" {
		t.Errorf("globals = %v", got)
	}
	locals, ok := syms.Locals("f")
	if !ok || strings.Join(locals.Names(), ",") != "a,b,c" {
		t.Errorf("locals of f = %v, %v", locals.Names(), ok)
	}
	fn, ok := syms.Function("f")
	if !ok || fn.Arity != 2 || fn.Builtin {
		t.Errorf("Function(f) = %+v, %v", fn, ok)
	}
}

func TestCheckerSingleUse(t *testing.T) {
	root := mustParse(t, "main() { }")
	c := NewChecker(CheckOptions{})
	if err := c.Check(root); err != nil {
		t.Fatalf("first Check failed: %v", err)
	}
	if err := c.Check(root); err == nil {
		t.Error("expected an error on reuse")
	}
}

func TestCheckMalformedTree(t *testing.T) {
	if err := NewChecker(CheckOptions{}).Check(nil); err == nil {
		t.Error("expected error for nil root")
	}
	if err := NewChecker(CheckOptions{}).Check(NewNode(VarList, nil)); err == nil {
		t.Error("expected error for non-Program root")
	}
	if errors.Is(NewChecker(CheckOptions{}).Check(nil), ErrSemantic) {
		t.Error("malformed tree should not be reported as a semantic fault")
	}
}

// Every node kind must be handled by the checker; an unhandled kind panics.
func TestCheckerHandlesEveryKind(t *testing.T) {
	for _, kind := range Kinds() {
		t.Run(kind.String(), func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("visit(%s) panicked: %v", kind, r)
				}
			}()
			c := NewChecker(CheckOptions{})
			c.syms.EnterFunction()
			c.loopDepth = 1
			_ = c.visit(&Node{Kind: kind, Token: &Token{Lexeme: "x"}})
		})
	}

	defer func() {
		if recover() == nil {
			t.Error("expected a panic for an unknown kind")
		}
	}()
	c := NewChecker(CheckOptions{})
	_ = c.visit(&Node{Kind: numKinds})
}

func TestDecodeLiterals(t *testing.T) {
	chars := []struct {
		lexeme string
		want   rune
	}{
		{`'a'`, 'a'},
		{`'\n'`, '\n'},
		{`'\t'`, '\t'},
		{`'\\'`, '\\'},
		{`'\u00004A'`, 'J'},
		{`'\u01F600'`, 0x1F600},
	}
	for _, tt := range chars {
		got, err := DecodeChar(tt.lexeme)
		if err != nil || got != tt.want {
			t.Errorf("DecodeChar(%s) = %q, %v; want %q", tt.lexeme, got, err, tt.want)
		}
	}

	for _, bad := range []string{`''`, `'ab'`, `'\q'`, `'\u11000'`, `'\uD800AB'`} {
		if _, err := DecodeChar(bad); err == nil {
			t.Errorf("DecodeChar(%s): expected error", bad)
		}
	}

	s, err := DecodeString(`"a\"b\u000043\n"`)
	if err != nil || s != "a\"bC\n" {
		t.Errorf("DecodeString = %q, %v", s, err)
	}
	if _, err := DecodeString(`"\u12"`); err == nil {
		t.Error("expected error for short \\u escape")
	}

	if v, err := DecodeInt("-2147483648"); err != nil || v != -2147483648 {
		t.Errorf("DecodeInt = %d, %v", v, err)
	}
	if _, err := DecodeInt("2147483648"); err == nil {
		t.Error("expected range error")
	}
}
