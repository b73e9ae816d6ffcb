// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.
//
// The ProbeChain is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package trace defines the observer every compilation phase reports to.
//
// Phases never print. They call a Tracer at fixed points and the driver
// decides what, if anything, is done with the events:
//
//   - lexer:    Token for every token produced
//   - parser:   Node for every statement and expression built
//   - sema:     Use for every checked reference, Define for every assignment
//   - optimize: Fold for every folded binary node
//   - tac:      Emit for every instruction appended to the listing
package trace

import (
	"github.com/probechain/minilang/lang/token"
)

// Tracer receives phase events. Implementations must not retain the token
// beyond the call.
type Tracer interface {
	Token(tok token.Token)
	Node(kind string, pos token.Position)
	Use(name string, pos token.Position)
	Define(name string, pos token.Position)
	Fold(op token.Type, x, y, result int64)
	Emit(line string)
}

// Nop is a Tracer that discards every event.
type Nop struct{}

func (Nop) Token(token.Token)                    {}
func (Nop) Node(string, token.Position)          {}
func (Nop) Use(string, token.Position)           {}
func (Nop) Define(string, token.Position)        {}
func (Nop) Fold(token.Type, int64, int64, int64) {}
func (Nop) Emit(string)                          {}

// OrNop returns tr, or Nop when tr is nil.
func OrNop(tr Tracer) Tracer {
	if tr == nil {
		return Nop{}
	}
	return tr
}
