// Copyright 2024 The ProbeChain Authors
// This file is part of the ProbeChain.

package ast

import "github.com/probechain/minilang/lang/token"

// Compute applies a binary operator to two values with 64-bit two's
// complement semantics. Comparisons yield 1 or 0. The second result is false
// when the operation is undefined: a zero divisor for / or %, or an operator
// that is not binary.
//
// The optimizer and the interpreter share this function so folding can never
// disagree with execution.
func Compute(op token.Type, x, y int64) (int64, bool) {
	switch op {
	case token.PLUS:
		return x + y, true
	case token.MINUS:
		return x - y, true
	case token.STAR:
		return x * y, true
	case token.SLASH:
		if y == 0 {
			return 0, false
		}
		// Go defines MinInt64 / -1 as MinInt64 and MinInt64 % -1 as 0.
		return x / y, true
	case token.PERCENT:
		if y == 0 {
			return 0, false
		}
		return x % y, true
	case token.EQ:
		return bool2int(x == y), true
	case token.NEQ:
		return bool2int(x != y), true
	case token.LT:
		return bool2int(x < y), true
	case token.GT:
		return bool2int(x > y), true
	case token.LTE:
		return bool2int(x <= y), true
	case token.GTE:
		return bool2int(x >= y), true
	}
	return 0, false
}

func bool2int(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
