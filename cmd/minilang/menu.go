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
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/probechain/minilang/lang/compiler"
	"github.com/probechain/minilang/samples"
)

var menuCommand = cli.Command{
	Action:    runMenu,
	Name:      "menu",
	Usage:     "Pick and run bundled sample programs interactively",
	ArgsUsage: "",
	Description: `
The menu command lists the bundled sample programs and runs the chosen one.
It can also run a custom file, named without its extension.`,
}

// prompter reads one line of user input. *liner.State implements it.
type prompter interface {
	Prompt(prompt string) (string, error)
}

func runMenu(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	cache, err := compiler.NewCache(cfg.Menu.CacheSize)
	if err != nil {
		return err
	}
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	m := &menu{
		out:    ctx.App.Writer,
		errOut: ctx.App.ErrWriter,
		input:  line,
		driver: newDriver(ctx.App.Writer, &cfg, cache),
		ext:    cfg.Menu.SamplesExt,
	}
	return m.loop()
}

type menu struct {
	out    io.Writer
	errOut io.Writer
	input  prompter
	driver *compiler.Driver
	ext    string
}

func (m *menu) show() {
	fmt.Fprintln(m.out)
	fmt.Fprintln(m.out, "╔══════════════════════════════════════╗")
	fmt.Fprintln(m.out, "║      MiniLang Pattern Generator      ║")
	fmt.Fprintln(m.out, "╠══════════════════════════════════════╣")
	for i, s := range samples.Menu {
		m.item(i+1, s.Title)
	}
	m.item(m.customChoice(), "Run Custom File")
	m.item(m.exitChoice(), "Exit")
	fmt.Fprintln(m.out, "╚══════════════════════════════════════╝")
}

func (m *menu) item(n int, title string) {
	fmt.Fprintf(m.out, "║ %-36s ║\n", fmt.Sprintf("%d. %s", n, title))
}

func (m *menu) customChoice() int { return len(samples.Menu) + 1 }
func (m *menu) exitChoice() int   { return len(samples.Menu) + 2 }

// loop runs until the exit entry is chosen or input ends.
func (m *menu) loop() error {
	for {
		m.show()
		answer, err := m.input.Prompt(fmt.Sprintf("Enter your choice (1-%d): ", m.exitChoice()))
		if err != nil {
			return endOfInput(err)
		}
		choice, err := strconv.Atoi(strings.TrimSpace(answer))
		switch {
		case err != nil || choice < 1 || choice > m.exitChoice():
			fmt.Fprintln(m.out, "Invalid choice! Please try again.")

		case choice == m.exitChoice():
			fmt.Fprintln(m.out, "Thank you for using MiniLang Pattern Generator!")
			return nil

		case choice == m.customChoice():
			name, err := m.input.Prompt(fmt.Sprintf("Enter custom filename (without %s extension): ", m.ext))
			if err != nil {
				return endOfInput(err)
			}
			path := strings.TrimSpace(name) + m.ext
			src, err := readSource(path)
			if err != nil {
				m.report(err)
				break
			}
			m.run(strings.TrimSpace(name), path, src)

		default:
			s := samples.Menu[choice-1]
			src, err := samples.Source(s.Name)
			if err != nil {
				return err
			}
			m.run(s.Name, s.Filename(), src)
		}

		fmt.Fprintln(m.out)
		if _, err := m.input.Prompt("Press Enter to continue..."); err != nil {
			return endOfInput(err)
		}
	}
}

func (m *menu) run(title, filename, src string) {
	fmt.Fprintf(m.out, "\n=== Running %s ===\n", title)
	fmt.Fprintln(m.out, "Output:")
	if err := m.driver.Run(filename, src); err != nil {
		m.report(err)
	}
	fmt.Fprintln(m.out, "===================")
}

func (m *menu) report(err error) {
	color.New(color.FgRed).Fprintf(m.errOut, "%v\n", err)
}

// endOfInput treats Ctrl-D and Ctrl-C as a normal exit.
func endOfInput(err error) error {
	if err == io.EOF || errors.Is(err, liner.ErrPromptAborted) {
		return nil
	}
	return err
}
