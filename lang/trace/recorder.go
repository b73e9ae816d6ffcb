// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package trace

import (
	"fmt"

	"github.com/probechain/minilang/lang/token"
)

// Event is a single recorded tracer callback.
type Event struct {
	Phase  string
	Detail string
}

func (e Event) String() string { return e.Phase + ": " + e.Detail }

// Recorder keeps every event in order.
type Recorder struct {
	Events []Event
}

func (r *Recorder) add(phase, format string, args ...interface{}) {
	r.Events = append(r.Events, Event{Phase: phase, Detail: fmt.Sprintf(format, args...)})
}

func (r *Recorder) Token(tok token.Token) {
	r.add(PhaseLexer, "%s %q line %d", tok.Type, tok.Literal, tok.Pos.Line)
}

func (r *Recorder) Node(kind string, pos token.Position) {
	r.add(PhaseParser, "%s line %d", kind, pos.Line)
}

func (r *Recorder) Use(name string, pos token.Position) {
	r.add(PhaseSema, "use %s", name)
}

func (r *Recorder) Define(name string, pos token.Position) {
	r.add(PhaseSema, "define %s", name)
}

func (r *Recorder) Fold(op token.Type, x, y, result int64) {
	r.add(PhaseOptimize, "%s = %d", formatFold(op, x, y), result)
}

func (r *Recorder) Emit(line string) {
	r.add(PhaseTAC, "%s", line)
}

// Phase returns the details of all events recorded for one phase.
func (r *Recorder) Phase(phase string) []string {
	var out []string
	for _, e := range r.Events {
		if e.Phase == phase {
			out = append(out, e.Detail)
		}
	}
	return out
}

func formatFold(op token.Type, x, y int64) string {
	return fmt.Sprintf("%d %s %d", x, op, y)
}
