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

// Command minilang compiles and runs MiniLang programs.
//
// Usage:
//
//	minilang [options] [file.minilang]
//	minilang menu
//	minilang emit --stage tokens|ast|dump|tac <file.minilang>
//	minilang check <file.minilang>...
//	minilang dumpconfig [output.toml]
//
// Without a file the built-in Fibonacci program is run.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minilang/lang/compiler"
	"github.com/probechain/minilang/lang/trace"
	"github.com/probechain/minilang/samples"
)

const version = "0.1.0"

var (
	verboseFlag = cli.BoolFlag{
		Name:  "v",
		Usage: "Verbose mode (show phases and TAC)",
	}
	debugFlag = cli.BoolFlag{
		Name:  "d",
		Usage: "Debug mode (verbose plus a trace of every phase on stderr)",
	}
	specFlag = cli.BoolFlag{
		Name:  "spec",
		Usage: "Show the language specification",
	}
	colorFlag = cli.StringFlag{
		Name:  "color",
		Usage: "Colored output: auto, always or never",
	}
)

func init() {
	// -v means verbose, as it always has for this tool.
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "minilang"
	app.Usage = "the MiniLang compiler"
	app.UsageText = "minilang [options] [file.minilang]"
	app.Version = version
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		verboseFlag,
		debugFlag,
		specFlag,
		configFileFlag,
		colorFlag,
	}
	app.Commands = []cli.Command{
		menuCommand,
		emitCommand,
		checkCommand,
		dumpConfigCommand,
	}
	app.Action = runProgram
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatal(os.Stderr, err)
	}
}

func fatal(w io.Writer, err error) {
	color.New(color.FgRed).Fprintf(w, "%v\n", err)
	os.Exit(1)
}

// runProgram is the default action: run the named file, or the built-in
// program when no file is given.
func runProgram(ctx *cli.Context) error {
	if ctx.GlobalBool(specFlag.Name) {
		fmt.Fprintln(ctx.App.Writer, languageSpec)
		return nil
	}
	if ctx.NArg() > 1 {
		return fmt.Errorf("too many arguments: %v", []string(ctx.Args()))
	}
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	name, src := samples.DefaultName+samples.Ext, samples.Default()
	if ctx.NArg() == 1 {
		name = ctx.Args().First()
		if src, err = readSource(name); err != nil {
			return err
		}
	}
	return newDriver(ctx.App.Writer, &cfg, nil).Run(name, src)
}

// errIO marks failures reading source files.
var errIO = errors.New("io error")

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errIO, err)
	}
	return string(data), nil
}

// newDriver applies the driver configuration: color mode, log level and,
// in debug mode, a tracer logging every phase event.
func newDriver(w io.Writer, cfg *minilangConfig, cache *compiler.Cache) *compiler.Driver {
	switch cfg.Driver.Color {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
	setupLogging(cfg.Driver.Debug)

	d := &compiler.Driver{
		Stdout:  w,
		Verbose: cfg.Driver.Verbose || cfg.Driver.Debug,
		Debug:   cfg.Driver.Debug,
		Cache:   cache,
	}
	if cfg.Driver.Debug {
		d.Tracer = trace.NewLogger(log.Root())
	}
	return d
}

func setupLogging(debug bool) {
	var (
		output   io.Writer = os.Stderr
		usecolor           = (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
	)
	if usecolor {
		output = colorable.NewColorableStderr()
	}
	lvl := log.LvlWarn
	if debug {
		lvl = log.LvlDebug
	}
	log.Root().SetHandler(log.LvlFilterHandler(lvl, log.StreamHandler(output, log.TerminalFormat(usecolor))))
}
