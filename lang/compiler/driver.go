// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package compiler

import (
	"fmt"
	"io"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/trace"
)

var (
	titleColor  = color.New(color.FgCyan, color.Bold)
	bannerColor = color.New(color.FgYellow)
	doneColor   = color.New(color.FgGreen)
)

// Driver compiles and runs one program at a time, printing intermediate
// artifacts to Stdout when Verbose is set.
type Driver struct {
	Stdout  io.Writer
	Verbose bool
	Debug   bool // also log the parsed program statement by statement
	Tracer  trace.Tracer
	Cache   *Cache
}

// Run compiles source and executes it. Compilation or runtime errors are
// returned untouched; nothing is printed for them.
func (d *Driver) Run(filename, source string) error {
	if d.Verbose {
		titleColor.Fprintln(d.Stdout, "=== MINILANG COMPILER EXECUTION ===")
	}
	unit, err := d.compile(filename, source)
	if err != nil {
		return err
	}
	if d.Verbose {
		d.listTAC(unit)
		d.banner(PhaseExec)
		fmt.Fprintln(d.Stdout, "Program Output:")
		fmt.Fprintln(d.Stdout, "---------------")
	}
	if err := unit.Run(d.Stdout); err != nil {
		return err
	}
	if d.Verbose {
		fmt.Fprintln(d.Stdout, "---------------")
		doneColor.Fprintln(d.Stdout, "Execution completed!")
	}
	return nil
}

func (d *Driver) compile(filename, source string) (*Unit, error) {
	opts := Options{Tracer: d.Tracer}
	if d.Verbose {
		opts.OnPhase = d.banner
	}
	if d.Debug {
		opts.OnParsed = logProgram
	}
	// A cached unit skips every phase, along with its banners and trace.
	if d.Cache == nil || d.Tracer != nil || d.Verbose {
		return Compile(filename, source, opts)
	}
	return d.Cache.Compile(filename, source, opts)
}

func (d *Driver) banner(p Phase) {
	fmt.Fprintln(d.Stdout)
	bannerColor.Fprintf(d.Stdout, "--- PHASE %d: %s ---\n", int(p), p)
}

func (d *Driver) listTAC(unit *Unit) {
	fmt.Fprintln(d.Stdout)
	fmt.Fprintln(d.Stdout, "--- THREE ADDRESS CODE ---")
	for _, line := range unit.TAC.Lines() {
		fmt.Fprintln(d.Stdout, line)
	}
	fmt.Fprintln(d.Stdout, "--- END TAC ---")
}

func logProgram(prog *ast.Block) {
	for i, stmt := range prog.Stmts {
		log.Debug("Parsed statement", "index", i, "line", stmt.Position().Line, "stmt", stmt.String())
	}
}
