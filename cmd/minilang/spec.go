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

const languageSpec = `MiniLang language specification

Program     := Statement*
Statement   := "print" "(" Expr ")" ";"
             | IDENT "=" Expr ";"
             | "if" "(" Expr ")" Block [ "else" Block ]
             | "while" "(" Expr ")" Block
Block       := "{" Statement* "}"
Expr        := Equality
Equality    := Comparison ( ( "==" | "!=" ) Comparison )*
Comparison  := Term ( ( "<" | ">" | "<=" | ">=" ) Term )*
Term        := Factor ( ( "+" | "-" ) Factor )*
Factor      := Unary ( ( "*" | "/" | "%" ) Unary )*
Unary       := ( "+" | "-" ) Unary | Primary
Primary     := INT | IDENT | "(" Expr ")"

Values are 64-bit signed integers. Arithmetic wraps on overflow; division
truncates toward zero and division or remainder by zero is a runtime error.
Comparisons yield 1 or 0, and any nonzero condition is true.

Variables are created by assignment and must be assigned before they are
read. An assignment inside an if or while body is visible only inside that
body, unless both arms of an if/else assign the same variable, in which case
it is assigned after the if as well.

Comments start with // and run to the end of the line.`
