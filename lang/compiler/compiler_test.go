// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package compiler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/interp"
	"github.com/probechain/minilang/lang/lexer"
	"github.com/probechain/minilang/lang/parser"
	"github.com/probechain/minilang/lang/sema"
	"github.com/probechain/minilang/lang/trace"
	"github.com/probechain/minilang/samples"
)

func init() {
	color.NoColor = true
}

func runQuiet(t *testing.T, src string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	d := &Driver{Stdout: &out}
	err := d.Run("test.minilang", src)
	return out.String(), err
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"default program", samples.Default(), "55\n"},
		{"precedence", "a = 1; b = 2; print(a + b * 3);", "7\n"},
		{"countdown", "x = 5; while (x > 0) { print(x); x = x - 1; }", "5\n4\n3\n2\n1\n"},
		{"both arms assign", "if (1 == 1) { y = 10; } else { y = 20; } print(y);", "10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runQuiet(t, tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestConditionFoldedBeforeExecution(t *testing.T) {
	unit, err := Compile("", "if (1 == 1) { y = 10; } else { y = 20; } print(y);", Options{})
	require.NoError(t, err)
	cond, ok := unit.Program.Stmts[0].(*ast.If).Cond.(*ast.IntLiteral)
	require.True(t, ok, "condition not folded: %v", unit.Program.Stmts[0])
	assert.Equal(t, int64(1), cond.Value)
	assert.Equal(t, 1, unit.Folds)
}

func TestSemanticErrorPrintsNothing(t *testing.T) {
	out, err := runQuiet(t, "print(y);")
	var serr *sema.Error
	require.True(t, errors.As(err, &serr), "got %v", err)
	assert.Equal(t, "y", serr.Name)
	assert.Empty(t, out)
}

func TestDivisionByZeroAtRuntime(t *testing.T) {
	unit, err := Compile("", "a = 10 / 0;", Options{})
	require.NoError(t, err, "division by zero must pass the front end")
	assert.Equal(t, "a = (10 / 0);\n", ast.Program(unit.Program))

	err = unit.Run(new(bytes.Buffer))
	assert.True(t, errors.Is(err, interp.ErrDivisionByZero), "got %v", err)
}

func TestErrorKinds(t *testing.T) {
	_, err := runQuiet(t, "x = 1 $ 2;")
	var lerr *lexer.Error
	assert.True(t, errors.As(err, &lerr), "lex: %v", err)

	_, err = runQuiet(t, "x = ;")
	var perr *parser.Error
	assert.True(t, errors.As(err, &perr), "parse: %v", err)

	_, err = runQuiet(t, "print(q);")
	var serr *sema.Error
	assert.True(t, errors.As(err, &serr), "sema: %v", err)

	_, err = runQuiet(t, "x = 0; print(1 % x);")
	var rerr *interp.Error
	assert.True(t, errors.As(err, &rerr), "runtime: %v", err)
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check("", "x = 1 / 0;"))
	assert.Error(t, Check("", "print(x);"))
	assert.Error(t, Check("", "print(;"))
}

func TestUnitRunsRepeatedly(t *testing.T) {
	unit, err := Compile("", "i = 0; while (i < 3) { print(i); i = i + 1; }", Options{})
	require.NoError(t, err)
	for n := 0; n < 2; n++ {
		var out bytes.Buffer
		require.NoError(t, unit.Run(&out))
		assert.Equal(t, "0\n1\n2\n", out.String())
	}
}

func TestPhaseOrder(t *testing.T) {
	var phases []Phase
	_, err := Compile("", "print(1);", Options{OnPhase: func(p Phase) { phases = append(phases, p) }})
	require.NoError(t, err)
	assert.Equal(t, []Phase{PhaseLex, PhaseParse, PhaseSema, PhaseOptimize, PhaseTAC}, phases)

	phases = nil
	_, err = Compile("", "print(x);", Options{OnPhase: func(p Phase) { phases = append(phases, p) }})
	require.Error(t, err)
	assert.Equal(t, []Phase{PhaseLex, PhaseParse, PhaseSema}, phases, "no phase after a failing one")
}

func TestTracerSeesAllPhases(t *testing.T) {
	rec := new(trace.Recorder)
	_, err := Compile("", "x = 2 * 3; print(x);", Options{Tracer: rec})
	require.NoError(t, err)
	for _, phase := range []string{trace.PhaseLexer, trace.PhaseParser, trace.PhaseSema, trace.PhaseOptimize, trace.PhaseTAC} {
		assert.NotEmpty(t, rec.Phase(phase), phase)
	}
	assert.Equal(t, []string{"2 * 3 = 6"}, rec.Phase(trace.PhaseOptimize))
	assert.Equal(t, []string{"x = 6", "print x"}, rec.Phase(trace.PhaseTAC))
}

func TestVerboseOutput(t *testing.T) {
	var out bytes.Buffer
	d := &Driver{Stdout: &out, Verbose: true}
	require.NoError(t, d.Run("test.minilang", "x = 1 + 2; print(x);"))

	want := `=== MINILANG COMPILER EXECUTION ===

--- PHASE 1: LEXICAL ANALYSIS ---

--- PHASE 2: SYNTAX ANALYSIS ---

--- PHASE 3: SEMANTIC ANALYSIS ---

--- PHASE 4: OPTIMIZATION ---

--- PHASE 5: INTERMEDIATE CODE GENERATION ---

--- THREE ADDRESS CODE ---
x = 3
print x
--- END TAC ---

--- PHASE 6: EXECUTION ---
Program Output:
---------------
3
---------------
Execution completed!
`
	assert.Equal(t, want, out.String())
}

func TestVerboseStopsAtError(t *testing.T) {
	var out bytes.Buffer
	d := &Driver{Stdout: &out, Verbose: true}
	require.Error(t, d.Run("", "print(z);"))
	s := out.String()
	assert.True(t, strings.Contains(s, "PHASE 3: SEMANTIC ANALYSIS"))
	assert.False(t, strings.Contains(s, "OPTIMIZATION"))
	assert.False(t, strings.Contains(s, "Program Output:"))
}

func TestCache(t *testing.T) {
	cache, err := NewCache(2)
	require.NoError(t, err)

	src := "print(1 + 1);"
	first, err := cache.Compile("a.minilang", src, Options{})
	require.NoError(t, err)
	again, err := cache.Compile("a.minilang", src, Options{})
	require.NoError(t, err)
	assert.Same(t, first, again, "same source must hit the cache")

	second, err := cache.Compile("b.minilang", src, Options{})
	require.NoError(t, err)
	assert.Same(t, first.Program, second.Program, "a hit under another name shares the program")
	assert.Same(t, first.TAC, second.TAC)
	assert.Equal(t, "b.minilang", second.Name)
	assert.Equal(t, "a.minilang", first.Name, "the cached unit keeps its name")
	assert.Equal(t, 1, cache.Len())

	_, err = cache.Compile("", "print(x);", Options{})
	assert.Error(t, err)
	assert.Equal(t, 1, cache.Len(), "failed compilations are not cached")

	third, err := cache.Compile("", "print(3);", Options{})
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, 2, cache.Len())
}

func TestDriverUsesCache(t *testing.T) {
	cache, err := NewCache(0)
	require.NoError(t, err)
	var out bytes.Buffer
	d := &Driver{Stdout: &out, Cache: cache}
	for i := 0; i < 3; i++ {
		require.NoError(t, d.Run("", "print(7);"))
	}
	assert.Equal(t, "7\n7\n7\n", out.String())
	assert.Equal(t, 1, cache.Len())

	// A tracer must see every phase, so the cache is bypassed.
	rec := new(trace.Recorder)
	d.Tracer = rec
	require.NoError(t, d.Run("", "print(8);"))
	assert.NotEmpty(t, rec.Phase(trace.PhaseLexer))
	assert.Equal(t, 1, cache.Len())
}

func TestSourceKey(t *testing.T) {
	assert.Equal(t, sourceKey("print(1);"), sourceKey("print(1);"))
	assert.NotEqual(t, sourceKey("print(1);"), sourceKey("print(2);"))
}
