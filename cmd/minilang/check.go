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
	"runtime"

	"golang.org/x/sync/errgroup"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minilang/lang/compiler"
)

var checkCommand = cli.Command{
	Action:    checkFiles,
	Name:      "check",
	Usage:     "Parse and check source files without running them",
	ArgsUsage: "<file.minilang>...",
	Description: `
The check command runs the lexer, parser and define-before-use analysis on
every file given. Files are checked concurrently; results are printed in
argument order.`,
}

func checkFiles(ctx *cli.Context) error {
	paths := []string(ctx.Args())
	if len(paths) == 0 {
		return fmt.Errorf("check: no source files given")
	}
	results := checkAll(paths, runtime.NumCPU())

	failed := 0
	for i, path := range paths {
		if results[i] != nil {
			failed++
			fmt.Fprintf(ctx.App.Writer, "%s: %v\n", path, results[i])
			continue
		}
		fmt.Fprintf(ctx.App.Writer, "%s: ok\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("check: %d of %d files failed", failed, len(paths))
	}
	return nil
}

// checkAll checks every path with at most limit files in flight. The result
// for paths[i] is stored at index i.
func checkAll(paths []string, limit int) []error {
	var (
		g       errgroup.Group
		results = make([]error, len(paths))
	)
	g.SetLimit(limit)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			src, err := readSource(path)
			if err == nil {
				err = compiler.Check(path, src)
			}
			results[i] = err
			return nil
		})
	}
	g.Wait()
	return results
}
