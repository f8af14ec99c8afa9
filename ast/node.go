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

// Package ast defines the C0 abstract syntax tree: a tagged-kind node set
// with parent back-references and per-node symbol lookup, plus the
// BegVisit/EndVisit visitor that is the tree's external traversal surface.
//
// Node kinds are represented as distinct Go types rather than a single
// struct with a kind field and a union payload, following the tagged-variant
// approach the governing design favours over virtual dispatch + downcasts.
// The parent back-reference is a plain pointer: Go's garbage collector
// traces cycles, so nothing here needs the weak-pointer trick the original
// C++ implementation used only to avoid leaking reference-counted nodes.
package ast

import "sync/atomic"

// Kind tags every concrete node type. See §3.3 of the governing
// specification for the authoritative list.
type Kind int

const (
	// Expression kinds
	KindBinaryExpr Kind = iota
	KindCastExpr
	KindUnaryExpr
	KindBraceExpr
	KindIdentExpr
	KindIntExpr
	KindCharExpr
	KindFloatExpr
	KindStrExpr
	KindAssignExpr
	KindFuncCallExpr

	// Statement kinds
	KindEmptyStmt
	KindBlockStmt
	KindPrintStmt
	KindScanStmt
	KindAssignStmt
	KindFuncCallStmt
	KindIfStmt
	KindSwitchStmt
	KindLabeledStmt
	KindWhileStmt
	KindDoStmt
	KindForStmt
	KindBreakStmt
	KindContinueStmt
	KindReturnStmt

	// Declaration kinds
	KindVarDecl
	KindFuncDecl

	// Root
	KindFile
)

var kindNames = [...]string{
	"BinaryExpr", "CastExpr", "UnaryExpr", "BraceExpr", "IdentExpr", "IntExpr",
	"CharExpr", "FloatExpr", "StrExpr", "AssignExpr", "FuncCallExpr",
	"EmptyStmt", "BlockStmt", "PrintStmt", "ScanStmt", "AssignStmt", "FuncCallStmt",
	"IfStmt", "SwitchStmt", "LabeledStmt", "WhileStmt", "DoStmt", "ForStmt",
	"BreakStmt", "ContinueStmt", "ReturnStmt",
	"VarDecl", "FuncDecl", "File",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UnknownKind"
}

// Node is the interface every AST node satisfies.
type Node interface {
	Kind() Kind
	Parent() Node
	SetParent(Node)
	String() string
	Accept(v Visitor) bool

	// GetSymbolType and GetSymbol resolve a name to its symbol kind or to
	// the owning declaration node. When recursive is true and the node
	// itself has no binding for name, the query delegates to the parent.
	GetSymbolType(name string, recursive bool) SymbolType
	GetSymbol(name string, recursive bool) Node
}

// Expr is any expression node: it additionally carries a computed VarType
// and, for constant-foldable nodes, numeric accessors.
type Expr interface {
	Node
	VarType() VarType
	SetVarType(VarType)

	IsConst() bool
	IntValue() (int32, bool)
	CharValue() (byte, bool)
	FloatValue() (float64, bool)
}

// Stmt is any statement node. Statements carry no computed type.
type Stmt interface {
	Node
}

// Decl is any declaration node (VarDecl, FuncDecl).
type Decl interface {
	Node
}

// Visitor is the two-hook traversal callback pair every node's Accept
// drives. BegVisit returning false skips the node's children. Accept returns
// EndVisit's result, but no parent's Accept consults it: a false EndVisit
// does not stop the traversal of the node's remaining siblings.
type Visitor interface {
	BegVisit(n Node) bool
	EndVisit(n Node) bool
}

// base is embedded by every concrete node and supplies the parent link and
// the default (non-scope-bearing) symbol lookup, which simply delegates to
// the parent.
type base struct {
	kind   Kind
	parent Node
}

func newBase(kind Kind) base {
	bumpInstanceCount(kind, 1)
	return base{kind: kind}
}

func (b *base) Kind() Kind        { return b.kind }
func (b *base) Parent() Node      { return b.parent }
func (b *base) SetParent(p Node)  { b.parent = p }

func (b *base) GetSymbolType(name string, recursive bool) SymbolType {
	if recursive && b.parent != nil {
		return b.parent.GetSymbolType(name, recursive)
	}
	return SymbolNul
}

func (b *base) GetSymbol(name string, recursive bool) Node {
	if recursive && b.parent != nil {
		return b.parent.GetSymbol(name, recursive)
	}
	return nil
}

// exprBase is embedded by every expression node and supplies the computed
// VarType plus default (non-constant) numeric accessors.
type exprBase struct {
	base
	varType VarType
}

func newExprBase(kind Kind) exprBase {
	return exprBase{base: newBase(kind)}
}

func (e *exprBase) VarType() VarType     { return e.varType }
func (e *exprBase) SetVarType(t VarType) { e.varType = t }

func (e *exprBase) IsConst() bool                  { return false }
func (e *exprBase) IntValue() (int32, bool)        { return 0, false }
func (e *exprBase) CharValue() (byte, bool)        { return 0, false }
func (e *exprBase) FloatValue() (float64, bool)    { return 0, false }

// --- instance accounting -----------------------------------------------
//
// A process-wide, per-kind construction count, kept purely for the same kind
// of development-time sanity check the original implementation's atomic
// instance counter served (there it also decremented on destruction to
// catch leaks; Go has no destructors, so this only ever grows and is useful
// as a cheap "did analysis build roughly the node count I expected" check in
// tests). Nothing in the analyser consults this.

var instanceCounts [int(KindFile) + 1]int64

func bumpInstanceCount(kind Kind, delta int64) {
	atomic.AddInt64(&instanceCounts[kind], delta)
}

// InstanceCount returns the total number of AST nodes constructed so far
// across all kinds.
func InstanceCount() int64 {
	var total int64
	for i := range instanceCounts {
		total += atomic.LoadInt64(&instanceCounts[i])
	}
	return total
}

// InstanceCountByKind returns the construction count for a single kind.
func InstanceCountByKind(kind Kind) int64 {
	return atomic.LoadInt64(&instanceCounts[kind])
}
