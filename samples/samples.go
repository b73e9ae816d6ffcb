// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

// Package samples embeds the bundled MiniLang programs.
package samples

import (
	"embed"
	"fmt"
)

//go:embed *.minilang
var files embed.FS

// Ext is the file extension of MiniLang sources.
const Ext = ".minilang"

// Sample is a bundled program.
type Sample struct {
	Name  string // file name without extension
	Title string // menu caption
}

// DefaultName is the program run when no source file is given.
const DefaultName = "fibonacci"

// Menu lists the samples offered by the interactive menu, in menu order.
var Menu = []Sample{
	{Name: "factorial", Title: "Factorial Sequence"},
	{Name: "primes", Title: "Prime Numbers"},
	{Name: "arithmetic", Title: "Arithmetic Sequence"},
	{Name: "geometric", Title: "Geometric Sequence"},
	{Name: "triangular", Title: "Triangular Numbers"},
}

// Filename returns the embedded file name of the sample.
func (s Sample) Filename() string {
	return s.Name + Ext
}

// Source returns the program text of the named sample.
func Source(name string) (string, error) {
	data, err := files.ReadFile(name + Ext)
	if err != nil {
		return "", fmt.Errorf("unknown sample %q", name)
	}
	return string(data), nil
}

// Default returns the default program.
func Default() string {
	src, err := Source(DefaultName)
	if err != nil {
		panic(err)
	}
	return src
}
