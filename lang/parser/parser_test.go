// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	fuzz "github.com/google/gofuzz"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/lexer"
	"github.com/probechain/minilang/lang/parser"
	"github.com/probechain/minilang/lang/token"
	"github.com/probechain/minilang/lang/trace"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	prog, err := parser.Parse("test.minilang", src, nil)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return prog
}

// parseExpr parses "print(src);" and returns the printed expression.
func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog := mustParse(t, "print("+src+");")
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	p, ok := prog.Stmts[0].(*ast.Print)
	if !ok {
		t.Fatalf("statement is %T, want *ast.Print", prog.Stmts[0])
	}
	return p.Value
}

func parseError(t *testing.T, src string) *parser.Error {
	t.Helper()
	_, err := parser.Parse("test.minilang", src, nil)
	if err == nil {
		t.Fatalf("Parse(%q) succeeded, want error", src)
	}
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("Parse(%q) error %T (%v), want *parser.Error", src, err, err)
	}
	return perr
}

func lit(v int64) *ast.IntLiteral { return &ast.IntLiteral{Value: v} }
func ref(name string) *ast.Variable { return &ast.Variable{Name: name} }
func bin(op token.Type, l, r ast.Expr) *ast.Binary {
	return &ast.Binary{Op: op, Left: l, Right: r}
}

var ignorePos = cmpopts.IgnoreTypes(token.Position{})

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

func TestPrecedenceAndAssociativity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"(1 + 2) * 3", "((1 + 2) * 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"a % b + c", "((a % b) + c)"},
		{"a + b % c", "(a + (b % c))"},
		{"1 < 2 == 3 > 4", "((1 < 2) == (3 > 4))"},
		{"1 == 2 != 3", "((1 == 2) != 3)"},
		{"a <= b + 1", "(a <= (b + 1))"},
		{"a >= b * 2 - 1", "(a >= ((b * 2) - 1))"},
		{"((x))", "x"},
		{"x * (y + z) / w", "((x * (y + z)) / w)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseExpr(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestUnaryOperators(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"-x", "(0 - x)"},
		{"--x", "(0 - (0 - x))"},
		{"+x", "x"},
		{"+-+5", "(0 - 5)"},
		{"-2 * 3", "((0 - 2) * 3)"},
		{"4 - -1", "(4 - (0 - 1))"},
		{"-(a + b)", "(0 - (a + b))"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseExpr(t, tt.input).String(); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExpressionTree(t *testing.T) {
	got := mustParse(t, "x = 1 + 2 * -y;")
	want := &ast.Block{Stmts: []ast.Stmt{
		&ast.Assign{Name: "x", Value: bin(token.PLUS,
			lit(1),
			bin(token.STAR, lit(2), bin(token.MINUS, lit(0), ref("y"))),
		)},
	}}
	if diff := cmp.Diff(want, got, ignorePos); diff != "" {
		t.Errorf("AST mismatch (-want +got):\n%s", diff)
	}
}

func TestNodePositions(t *testing.T) {
	prog := mustParse(t, "print(1);\nx =\n  a + -b;")
	assign := prog.Stmts[1].(*ast.Assign)
	if assign.Pos.Line != 2 || assign.Pos.Column != 1 {
		t.Errorf("assign at %s, want 2:1", assign.Pos)
	}
	sum := assign.Value.(*ast.Binary)
	if sum.Pos.Line != 3 || sum.Pos.Column != 5 {
		t.Errorf("'+' at %s, want 3:5", sum.Pos)
	}
	neg := sum.Right.(*ast.Binary)
	zero := neg.Left.(*ast.IntLiteral)
	if neg.Pos.Column != 7 || zero.Pos.Column != 7 {
		t.Errorf("unary minus at %s (zero at %s), want column 7", neg.Pos, zero.Pos)
	}
	if prog.Pos.Line != 1 || prog.Pos.Column != 1 {
		t.Errorf("program root at %s, want 1:1", prog.Pos)
	}
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

func TestStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"print", "print(x);", "print(x);\n"},
		{"assign", "total = total + 1;", "total = (total + 1);\n"},
		{"if", "if (x) { print(1); }", "if (x) { print(1); }\n"},
		{"if-else", "if (x > 0) { print(1); } else { print(2); }",
			"if ((x > 0)) { print(1); } else { print(2); }\n"},
		{"while", "while (i < 3) { i = i + 1; }", "while ((i < 3)) { i = (i + 1); }\n"},
		{"empty-bodies", "if (1) { } else { } while (0) { }", "if (1) { } else { }\nwhile (0) { }\n"},
		{"bare-block", "{ x = 1; { print(x); } }", "{ x = 1; { print(x); } }\n"},
		{"nested", "while (a) { if (b) { c = 1; } }", "while (a) { if (b) { c = 1; } }\n"},
		{"sequence", "a = 1; b = 2;\nprint(a);", "a = 1;\nb = 2;\nprint(a);\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.Program(mustParse(t, tt.input)); got != tt.want {
				t.Errorf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestIfElseShape(t *testing.T) {
	prog := mustParse(t, "if (c) { x = 1; }")
	stmt := prog.Stmts[0].(*ast.If)
	if stmt.Else != nil {
		t.Errorf("Else = %v, want nil", stmt.Else)
	}
	prog = mustParse(t, "if (c) { x = 1; } else { }")
	stmt = prog.Stmts[0].(*ast.If)
	if stmt.Else == nil || len(stmt.Else.Stmts) != 0 {
		t.Errorf("Else = %v, want empty block", stmt.Else)
	}
}

func TestDeterministic(t *testing.T) {
	const src = `
a = 0;
b = 1;
while (a < 100) {
  if (a % 2 == 0) { print(a); } else { b = b * -2; }
  a = a + b;
}`
	first := mustParse(t, src)
	second := mustParse(t, src)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("two parses differ:\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"print(1)", "parse error: line 1: expected ';', got EOF"},
		{"print(1;", "parse error: line 1: expected ')', got ';'"},
		{"print 1;", `parse error: line 1: expected '(', got INT ("1")`},
		{"x = ;", "parse error: line 1: unexpected ';' in expression"},
		{"x 1;", `parse error: line 1: expected '=', got INT ("1")`},
		{"5 = x;", `parse error: line 1: unexpected INT ("5") at start of statement`},
		{"else { }", "parse error: line 1: unexpected 'else' at start of statement"},
		{"if x { }", `parse error: line 1: expected '(', got IDENT ("x")`},
		{"while (1) print(1);", "parse error: line 1: expected '{', got 'print'"},
		{"{ print(1);", "parse error: line 1: unexpected EOF at start of statement"},
		{"x = (1 + 2;", "parse error: line 1: expected ')', got ';'"},
		{"x = 1 +;", "parse error: line 1: unexpected ';' in expression"},
		{"if (1) { } else print(1);", "parse error: line 1: expected '{', got 'print'"},
		{"x = 1;\ny = 2\nprint(y);", "parse error: line 3: expected ';', got 'print'"},
		{"}", "parse error: line 1: unexpected '}' at start of statement"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := parseError(t, tt.input).Error(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorCarriesToken(t *testing.T) {
	err := parseError(t, "x = 1;\nprint(x))")
	if err.Got.Type != token.RPAREN || err.Pos.Line != 2 || err.Pos.Column != 9 {
		t.Errorf("error token %s at %s, want ')' at 2:9", err.Got.Type, err.Pos)
	}
}

func TestLexErrorPropagates(t *testing.T) {
	_, err := parser.Parse("", "x = 1 @ 2;", nil)
	var lerr *lexer.Error
	if !errors.As(err, &lerr) {
		t.Fatalf("error = %v (%T), want *lexer.Error", err, err)
	}
	if lerr.Error() != "lex error: line 1: unexpected character '@'" {
		t.Errorf("error = %q", lerr.Error())
	}
}

// ---------------------------------------------------------------------------
// Tracing and robustness
// ---------------------------------------------------------------------------

func TestTracerNodes(t *testing.T) {
	rec := new(trace.Recorder)
	if _, err := parser.Parse("", "if (a) { print(-1); } else { }", rec); err != nil {
		t.Fatal(err)
	}
	want := []string{
		"if line 1",
		"variable a line 1",
		"block line 1",
		"print line 1",
		"unary - line 1",
		"int 1 line 1",
		"else line 1",
		"block line 1",
	}
	got := rec.Phase(trace.PhaseParser)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("parser trace mismatch (-want +got):\n%s", diff)
	}
}

func TestFuzzNeverPanics(t *testing.T) {
	words := []string{
		"print", "if", "else", "while", "x", "y", "1", "0", "42",
		"+", "-", "*", "/", "%", "=", "==", "!=", "<", ">", "<=", ">=",
		"(", ")", "{", "}", ";", " ", "\n",
	}
	f := fuzz.New().NilChance(0).Funcs(func(s *string, c fuzz.Continue) {
		n := c.Intn(40)
		parts := make([]string, n)
		for i := range parts {
			parts[i] = words[c.Intn(len(words))]
		}
		*s = strings.Join(parts, " ")
	})
	for i := 0; i < 500; i++ {
		var src string
		f.Fuzz(&src)
		_, err := parser.Parse("", src, nil)
		if err == nil {
			continue
		}
		var (
			perr *parser.Error
			lerr *lexer.Error
		)
		if !errors.As(err, &perr) && !errors.As(err, &lerr) {
			t.Fatalf("input %q: unexpected error type %T", src, err)
		}
	}
}
