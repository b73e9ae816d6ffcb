// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The ProbeChain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with the ProbeChain. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minilang/lang/ast"
	"github.com/probechain/minilang/lang/compiler"
	"github.com/probechain/minilang/lang/lexer"
	"github.com/probechain/minilang/lang/parser"
	"github.com/probechain/minilang/lang/token"
)

var (
	stageFlag = cli.StringFlag{
		Name:  "stage",
		Usage: "Stage to emit: tokens, ast, dump or tac",
		Value: "tac",
	}

	emitCommand = cli.Command{
		Action:    emitStage,
		Name:      "emit",
		Usage:     "Print an intermediate representation of a program",
		ArgsUsage: "<file.minilang>",
		Flags:     []cli.Flag{stageFlag},
		Description: `
The emit command stops the pipeline after the requested stage and prints its
result: the token stream as a table, the parsed AST as source, a structural
dump of the AST, or the three-address code of the checked and folded program.`,
	}
)

var astDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

func emitStage(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("emit: expected one source file, got %d", ctx.NArg())
	}
	path := ctx.Args().First()
	src, err := readSource(path)
	if err != nil {
		return err
	}
	w := ctx.App.Writer

	switch stage := ctx.String(stageFlag.Name); stage {
	case "tokens":
		return emitTokens(w, path, src)
	case "ast", "dump":
		prog, err := parser.Parse(path, src, nil)
		if err != nil {
			return err
		}
		if stage == "ast" {
			fmt.Fprint(w, ast.Program(prog))
		} else {
			astDumper.Fdump(w, prog)
		}
		return nil
	case "tac":
		unit, err := compiler.Compile(path, src, compiler.Options{})
		if err != nil {
			return err
		}
		fmt.Fprintln(w, unit.TAC)
		return nil
	default:
		return fmt.Errorf("unknown emit stage: %s", stage)
	}
}

func emitTokens(w io.Writer, path, src string) error {
	tokens, err := lexer.New(path, src).Tokenize()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Line", "Col", "Kind", "Text", "Value"})
	for _, tok := range tokens {
		value := ""
		if tok.Type == token.INT {
			value = strconv.FormatInt(tok.Value, 10)
		}
		table.Append([]string{
			strconv.Itoa(tok.Pos.Line),
			strconv.Itoa(tok.Pos.Column),
			tok.Type.String(),
			tok.Literal,
			value,
		})
	}
	table.Render()
	return nil
}
