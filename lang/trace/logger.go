// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package trace

import (
	"github.com/ethereum/go-ethereum/log"

	"github.com/probechain/minilang/lang/token"
)

// Phase names used as the "phase" context value of logged events.
const (
	PhaseLexer    = "lexer"
	PhaseParser   = "parser"
	PhaseSema     = "sema"
	PhaseOptimize = "optimize"
	PhaseTAC      = "tac"
)

// Logger forwards every event to a log.Logger at debug level, tagged by phase.
type Logger struct {
	lex, parse, sema, fold, tac log.Logger
}

// NewLogger derives one child logger per phase from root.
func NewLogger(root log.Logger) *Logger {
	return &Logger{
		lex:   root.New("phase", PhaseLexer),
		parse: root.New("phase", PhaseParser),
		sema:  root.New("phase", PhaseSema),
		fold:  root.New("phase", PhaseOptimize),
		tac:   root.New("phase", PhaseTAC),
	}
}

func (l *Logger) Token(tok token.Token) {
	if tok.Type == token.EOF {
		l.lex.Debug("End of input reached", "line", tok.Pos.Line)
		return
	}
	if tok.Type == token.INT {
		l.lex.Debug("Integer literal", "text", tok.Literal, "value", tok.Value, "line", tok.Pos.Line)
		return
	}
	l.lex.Debug("Token produced", "kind", tok.Type, "text", tok.Literal, "line", tok.Pos.Line)
}

func (l *Logger) Node(kind string, pos token.Position) {
	l.parse.Debug("Node parsed", "node", kind, "line", pos.Line)
}

func (l *Logger) Use(name string, pos token.Position) {
	l.sema.Debug("Valid use of variable", "name", name, "line", pos.Line)
}

func (l *Logger) Define(name string, pos token.Position) {
	l.sema.Debug("Variable defined", "name", name, "line", pos.Line)
}

func (l *Logger) Fold(op token.Type, x, y, result int64) {
	l.fold.Debug("Constant folded", "expr", formatFold(op, x, y), "result", result)
}

func (l *Logger) Emit(line string) {
	l.tac.Debug("Generated", "inst", line)
}
