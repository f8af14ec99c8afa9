// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.
package ast

import (
	"fmt"
	"strings"

	"github.com/kibaamor/c0-parser/token"
)

// BinaryExpr is `left op right`, including the relational operators used as
// condition expressions. Its VarType is MergeVarType(left.VarType, right.VarType).
type BinaryExpr struct {
	exprBase
	Op          token.Kind
	Left, Right Expr
}

// NewBinaryExpr builds a binary expression node and links it to its operands.
// The caller is expected to have already inserted any implicit casts into
// left/right and computed the merged type before calling this.
func NewBinaryExpr(op token.Kind, left, right Expr, varType VarType) *BinaryExpr {
	n := &BinaryExpr{exprBase: newExprBase(KindBinaryExpr), Op: op, Left: left, Right: right}
	n.SetVarType(varType)
	left.SetParent(n)
	right.SetParent(n)
	return n
}

// IsCond reports whether this binary expression uses a relational operator,
// i.e. it is a condition expression rather than an arithmetic one.
func (n *BinaryExpr) IsCond() bool { return n.Op.IsRelational() }

func (n *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

func (n *BinaryExpr) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Left.Accept(v)
		n.Right.Accept(v)
	}
	return v.EndVisit(n)
}

// CastExpr wraps Inner, converting it to Type. Implicit casts are inserted
// by the analyser (Explicit=false); explicit casts originate from `(T)expr`
// source syntax (Explicit=true).
type CastExpr struct {
	exprBase
	Inner    Expr
	Explicit bool
}

func NewCastExpr(inner Expr, target VarType, explicit bool) *CastExpr {
	n := &CastExpr{exprBase: newExprBase(KindCastExpr), Inner: inner, Explicit: explicit}
	n.SetVarType(target)
	inner.SetParent(n)
	return n
}

func (n *CastExpr) String() string {
	return fmt.Sprintf("(%s)%s", n.VarType(), n.Inner)
}

func (n *CastExpr) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Inner.Accept(v)
	}
	return v.EndVisit(n)
}

func (n *CastExpr) IsConst() bool { return n.Inner.IsConst() }

func (n *CastExpr) IntValue() (int32, bool) {
	if n.VarType() != VarInt {
		return 0, false
	}
	return n.Inner.IntValue()
}

func (n *CastExpr) CharValue() (byte, bool) {
	if n.VarType() != VarChar {
		return 0, false
	}
	return n.Inner.CharValue()
}

func (n *CastExpr) FloatValue() (float64, bool) {
	if n.VarType() != VarFloat {
		return 0, false
	}
	return n.Inner.FloatValue()
}

// UnaryExpr is a leading '+' or '-' applied to a numeric operand.
type UnaryExpr struct {
	exprBase
	Op       token.Kind // S_PLUS or S_MINUS
	Operand  Expr
}

func NewUnaryExpr(op token.Kind, operand Expr) *UnaryExpr {
	n := &UnaryExpr{exprBase: newExprBase(KindUnaryExpr), Op: op, Operand: operand}
	n.SetVarType(operand.VarType())
	operand.SetParent(n)
	return n
}

func (n *UnaryExpr) negative() bool { return n.Op == token.S_MINUS }

func (n *UnaryExpr) String() string {
	return fmt.Sprintf("%s%s", n.Op, n.Operand)
}

func (n *UnaryExpr) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Operand.Accept(v)
	}
	return v.EndVisit(n)
}

func (n *UnaryExpr) IsConst() bool { return n.Operand.IsConst() }

func (n *UnaryExpr) IntValue() (int32, bool) {
	v, ok := n.Operand.IntValue()
	if ok && n.negative() {
		v = -v
	}
	return v, ok
}

func (n *UnaryExpr) CharValue() (byte, bool) {
	v, ok := n.Operand.CharValue()
	if ok && n.negative() {
		v = byte(-int8(v))
	}
	return v, ok
}

func (n *UnaryExpr) FloatValue() (float64, bool) {
	v, ok := n.Operand.FloatValue()
	if ok && n.negative() {
		v = -v
	}
	return v, ok
}

// BraceExpr is a parenthesised sub-expression, `( expr )`. Kept as its own
// node (rather than collapsed away) so String() reproduces the source's
// parentheses. String() output as a whole does not re-parse: types print
// under their VarType names (a double prints as "float"), and a do-while
// prints without its closing ';'.
type BraceExpr struct {
	exprBase
	Inner Expr
}

func NewBraceExpr(inner Expr) *BraceExpr {
	n := &BraceExpr{exprBase: newExprBase(KindBraceExpr), Inner: inner}
	n.SetVarType(inner.VarType())
	inner.SetParent(n)
	return n
}

func (n *BraceExpr) String() string { return fmt.Sprintf("(%s)", n.Inner) }

func (n *BraceExpr) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Inner.Accept(v)
	}
	return v.EndVisit(n)
}

func (n *BraceExpr) IsConst() bool               { return n.Inner.IsConst() }
func (n *BraceExpr) IntValue() (int32, bool)     { return n.Inner.IntValue() }
func (n *BraceExpr) CharValue() (byte, bool)     { return n.Inner.CharValue() }
func (n *BraceExpr) FloatValue() (float64, bool) { return n.Inner.FloatValue() }

// IdentExpr references a variable by name; its VarType is resolved from the
// declaration found via the enclosing scope chain.
type IdentExpr struct {
	exprBase
	Name string
}

func NewIdentExpr(name string, varType VarType) *IdentExpr {
	n := &IdentExpr{exprBase: newExprBase(KindIdentExpr), Name: name}
	n.SetVarType(varType)
	return n
}

func (n *IdentExpr) String() string { return n.Name }

func (n *IdentExpr) Accept(v Visitor) bool {
	v.BegVisit(n)
	return v.EndVisit(n)
}

// IntExpr is a 32-bit integer literal.
type IntExpr struct {
	exprBase
	Value int32
}

func NewIntExpr(v int32) *IntExpr {
	n := &IntExpr{exprBase: newExprBase(KindIntExpr), Value: v}
	n.SetVarType(VarInt)
	return n
}

func (n *IntExpr) String() string                { return fmt.Sprintf("%d", n.Value) }
func (n *IntExpr) Accept(v Visitor) bool         { v.BegVisit(n); return v.EndVisit(n) }
func (n *IntExpr) IsConst() bool                 { return true }
func (n *IntExpr) IntValue() (int32, bool)       { return n.Value, true }

// CharExpr is a single-byte char literal.
type CharExpr struct {
	exprBase
	Value byte
}

func NewCharExpr(v byte) *CharExpr {
	n := &CharExpr{exprBase: newExprBase(KindCharExpr), Value: v}
	n.SetVarType(VarChar)
	return n
}

func (n *CharExpr) String() string          { return fmt.Sprintf("'%s'", escapeByteAST(n.Value)) }
func (n *CharExpr) Accept(v Visitor) bool   { v.BegVisit(n); return v.EndVisit(n) }
func (n *CharExpr) IsConst() bool           { return true }
func (n *CharExpr) CharValue() (byte, bool) { return n.Value, true }

// FloatExpr is a 64-bit IEEE float literal.
type FloatExpr struct {
	exprBase
	Value float64
}

func NewFloatExpr(v float64) *FloatExpr {
	n := &FloatExpr{exprBase: newExprBase(KindFloatExpr), Value: v}
	n.SetVarType(VarFloat)
	return n
}

func (n *FloatExpr) String() string              { return fmt.Sprintf("%g", n.Value) }
func (n *FloatExpr) Accept(v Visitor) bool       { v.BegVisit(n); return v.EndVisit(n) }
func (n *FloatExpr) IsConst() bool               { return true }
func (n *FloatExpr) FloatValue() (float64, bool) { return n.Value, true }

// StrExpr is a string literal. The analyser accepts it only as a print
// argument; it never participates in arithmetic or casts.
type StrExpr struct {
	exprBase
	Value string
}

func NewStrExpr(v string) *StrExpr {
	n := &StrExpr{exprBase: newExprBase(KindStrExpr), Value: v}
	n.SetVarType(VarStr)
	return n
}

func (n *StrExpr) String() string        { return fmt.Sprintf("%q", n.Value) }
func (n *StrExpr) Accept(v Visitor) bool { v.BegVisit(n); return v.EndVisit(n) }
func (n *StrExpr) IsConst() bool         { return true }

// AssignExpr is `name = expr`, legal only inside a for-statement's init or
// update clause.
type AssignExpr struct {
	exprBase
	Name string
	Rhs  Expr
}

func NewAssignExpr(name string, rhs Expr, varType VarType) *AssignExpr {
	n := &AssignExpr{exprBase: newExprBase(KindAssignExpr), Name: name, Rhs: rhs}
	n.SetVarType(varType)
	rhs.SetParent(n)
	return n
}

func (n *AssignExpr) String() string { return fmt.Sprintf("%s = %s", n.Name, n.Rhs) }

func (n *AssignExpr) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Rhs.Accept(v)
	}
	return v.EndVisit(n)
}

// FuncCallExpr is `name(args...)` used as a value.
type FuncCallExpr struct {
	exprBase
	Name string
	Args []Expr
}

func NewFuncCallExpr(name string, args []Expr, varType VarType) *FuncCallExpr {
	n := &FuncCallExpr{exprBase: newExprBase(KindFuncCallExpr), Name: name, Args: args}
	n.SetVarType(varType)
	for _, a := range args {
		a.SetParent(n)
	}
	return n
}

func (n *FuncCallExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", n.Name, strings.Join(parts, ", "))
}

func (n *FuncCallExpr) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, a := range n.Args {
			a.Accept(v)
		}
	}
	return v.EndVisit(n)
}

func escapeByteAST(b byte) string {
	switch b {
	case '\\':
		return `\\`
	case '\'':
		return `\'`
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	default:
		return string(b)
	}
}
