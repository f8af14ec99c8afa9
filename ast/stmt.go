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
)

// EmptyStmt is the lone ';', or the substitute for an omitted then/else
// branch or dangling statement.
type EmptyStmt struct{ base }

func NewEmptyStmt() *EmptyStmt { return &EmptyStmt{base: newBase(KindEmptyStmt)} }

func (n *EmptyStmt) String() string        { return ";" }
func (n *EmptyStmt) Accept(v Visitor) bool { v.BegVisit(n); return v.EndVisit(n) }

// BlockStmt is `{ var-decl* stmt* }`. It is its own scope: local VarDecls
// are checked before delegating to the parent.
type BlockStmt struct {
	base
	Vars  []*VarDecl // textually precede Stmts
	Stmts []Stmt
}

func NewBlockStmt() *BlockStmt { return &BlockStmt{base: newBase(KindBlockStmt)} }

func (n *BlockStmt) AddVar(v *VarDecl)  { v.SetParent(n); n.Vars = append(n.Vars, v) }
func (n *BlockStmt) AddStmt(s Stmt)     { s.SetParent(n); n.Stmts = append(n.Stmts, s) }

func (n *BlockStmt) String() string {
	var b strings.Builder
	b.WriteString("{\n")
	for _, v := range n.Vars {
		b.WriteString(v.String() + ";\n")
	}
	for _, s := range n.Stmts {
		b.WriteString(s.String() + "\n")
	}
	b.WriteString("}")
	return b.String()
}

func (n *BlockStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, d := range n.Vars {
			d.Accept(v)
		}
		for _, s := range n.Stmts {
			s.Accept(v)
		}
	}
	return v.EndVisit(n)
}

func (n *BlockStmt) GetSymbolType(name string, recursive bool) SymbolType {
	for _, d := range n.Vars {
		if st := d.GetSymbolType(name, false); st != SymbolNul {
			return st
		}
	}
	return n.base.GetSymbolType(name, recursive)
}

func (n *BlockStmt) GetSymbol(name string, recursive bool) Node {
	for _, d := range n.Vars {
		if s := d.GetSymbol(name, false); s != nil {
			return s
		}
	}
	return n.base.GetSymbol(name, recursive)
}

// PrintStmt is `print(expr, ...);`. Any expression type, including strings,
// is allowed as an argument.
type PrintStmt struct {
	base
	Args []Expr
}

func NewPrintStmt() *PrintStmt { return &PrintStmt{base: newBase(KindPrintStmt)} }

func (n *PrintStmt) AddArg(e Expr) { e.SetParent(n); n.Args = append(n.Args, e) }

func (n *PrintStmt) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("print(%s);", strings.Join(parts, ", "))
}

func (n *PrintStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, a := range n.Args {
			a.Accept(v)
		}
	}
	return v.EndVisit(n)
}

// ScanStmt is `scan(ident);`. Per the governing design notes, the target
// name is recorded but not re-validated against the scope chain here.
type ScanStmt struct {
	base
	Name string
}

func NewScanStmt(name string) *ScanStmt {
	return &ScanStmt{base: newBase(KindScanStmt), Name: name}
}

func (n *ScanStmt) String() string        { return fmt.Sprintf("scan(%s);", n.Name) }
func (n *ScanStmt) Accept(v Visitor) bool { v.BegVisit(n); return v.EndVisit(n) }

// AssignStmt is `name = expr;` used as a statement.
type AssignStmt struct {
	base
	Name string
	Expr Expr
}

func NewAssignStmt(name string, expr Expr) *AssignStmt {
	n := &AssignStmt{base: newBase(KindAssignStmt), Name: name, Expr: expr}
	expr.SetParent(n)
	return n
}

func (n *AssignStmt) String() string { return fmt.Sprintf("%s = %s;", n.Name, n.Expr) }

func (n *AssignStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Expr.Accept(v)
	}
	return v.EndVisit(n)
}

// FuncCallStmt is `name(args...);` used as a statement (return value
// discarded).
type FuncCallStmt struct {
	base
	Name string
	Args []Expr
}

func NewFuncCallStmt(name string) *FuncCallStmt {
	return &FuncCallStmt{base: newBase(KindFuncCallStmt), Name: name}
}

func (n *FuncCallStmt) AddArg(e Expr) { e.SetParent(n); n.Args = append(n.Args, e) }

func (n *FuncCallStmt) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s);", n.Name, strings.Join(parts, ", "))
}

func (n *FuncCallStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, a := range n.Args {
			a.Accept(v)
		}
	}
	return v.EndVisit(n)
}

// IfStmt is `if ( cond ) then [else else]`. Then/else inherit the
// surrounding canBreak/canContinue.
type IfStmt struct {
	base
	Cond       *BinaryExpr
	Then, Else Stmt
}

func NewIfStmt(cond *BinaryExpr, then Stmt) *IfStmt {
	n := &IfStmt{base: newBase(KindIfStmt), Cond: cond, Then: then}
	cond.SetParent(n)
	then.SetParent(n)
	return n
}

func (n *IfStmt) SetElse(s Stmt) { s.SetParent(n); n.Else = s }

func (n *IfStmt) String() string {
	s := fmt.Sprintf("if (%s)\n%s", n.Cond, n.Then)
	if n.Else != nil {
		s += fmt.Sprintf("\nelse\n%s", n.Else)
	}
	return s
}

func (n *IfStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Cond.Accept(v)
		n.Then.Accept(v)
		if n.Else != nil {
			n.Else.Accept(v)
		}
	}
	return v.EndVisit(n)
}

// SwitchStmt is `switch ( expr ) { labeled-stmt* }`. Controller type must be
// int, char, or float (see the governing design notes on this deviation).
type SwitchStmt struct {
	base
	Expr  Expr
	Stmts []Stmt // *LabeledStmt, or a bare Stmt for `default`
}

func NewSwitchStmt(expr Expr) *SwitchStmt {
	n := &SwitchStmt{base: newBase(KindSwitchStmt), Expr: expr}
	expr.SetParent(n)
	return n
}

func (n *SwitchStmt) AddStmt(s Stmt) { s.SetParent(n); n.Stmts = append(n.Stmts, s) }

func (n *SwitchStmt) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "switch (%s)\n{", n.Expr)
	for _, s := range n.Stmts {
		if s.Kind() == KindLabeledStmt {
			b.WriteString(s.String() + "\n")
		} else {
			fmt.Fprintf(&b, "default: \n%s\n", s)
		}
	}
	b.WriteString("}")
	return b.String()
}

func (n *SwitchStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, s := range n.Stmts {
			s.Accept(v)
		}
	}
	return v.EndVisit(n)
}

// LabeledStmt is `case <int-or-char-literal>: stmt`.
type LabeledStmt struct {
	base
	Value int32
	Stmt  Stmt
}

func NewLabeledStmt(value int32, stmt Stmt) *LabeledStmt {
	n := &LabeledStmt{base: newBase(KindLabeledStmt), Value: value, Stmt: stmt}
	stmt.SetParent(n)
	return n
}

func (n *LabeledStmt) String() string { return fmt.Sprintf("case %d:\n%s", n.Value, n.Stmt) }

func (n *LabeledStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Stmt.Accept(v)
	}
	return v.EndVisit(n)
}

// WhileStmt is `while ( cond ) stmt`.
type WhileStmt struct {
	base
	Cond *BinaryExpr
	Body Stmt
}

func NewWhileStmt(cond *BinaryExpr, body Stmt) *WhileStmt {
	n := &WhileStmt{base: newBase(KindWhileStmt), Cond: cond, Body: body}
	cond.SetParent(n)
	body.SetParent(n)
	return n
}

func (n *WhileStmt) String() string { return fmt.Sprintf("while (%s)\n%s", n.Cond, n.Body) }

func (n *WhileStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Cond.Accept(v)
		n.Body.Accept(v)
	}
	return v.EndVisit(n)
}

// DoStmt is `do stmt while ( cond );`.
type DoStmt struct {
	base
	Body Stmt
	Cond *BinaryExpr
}

func NewDoStmt(body Stmt, cond *BinaryExpr) *DoStmt {
	n := &DoStmt{base: newBase(KindDoStmt), Body: body, Cond: cond}
	body.SetParent(n)
	cond.SetParent(n)
	return n
}

func (n *DoStmt) String() string {
	return fmt.Sprintf("do\n%s\nwhile (%s)", n.Body, n.Cond)
}

func (n *DoStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		n.Body.Accept(v)
		n.Cond.Accept(v)
	}
	return v.EndVisit(n)
}

// ForStmt is `for ( init-list ; cond ; update-list ) body`.
type ForStmt struct {
	base
	Init   []*AssignExpr
	Cond   *BinaryExpr
	Update []Expr // *AssignExpr or *FuncCallExpr
	Body   Stmt
}

func NewForStmt() *ForStmt { return &ForStmt{base: newBase(KindForStmt)} }

func (n *ForStmt) AddInit(e *AssignExpr)  { e.SetParent(n); n.Init = append(n.Init, e) }
func (n *ForStmt) SetCond(e *BinaryExpr)  { e.SetParent(n); n.Cond = e }
func (n *ForStmt) AddUpdate(e Expr)       { e.SetParent(n); n.Update = append(n.Update, e) }
func (n *ForStmt) SetBody(s Stmt)         { s.SetParent(n); n.Body = s }

func (n *ForStmt) String() string {
	initParts := make([]string, len(n.Init))
	for i, e := range n.Init {
		initParts[i] = e.String()
	}
	updParts := make([]string, len(n.Update))
	for i, e := range n.Update {
		updParts[i] = e.String()
	}
	return fmt.Sprintf("for (%s; %s; %s)\n%s",
		strings.Join(initParts, ","), n.Cond, strings.Join(updParts, ","), n.Body)
}

func (n *ForStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, e := range n.Init {
			e.Accept(v)
		}
		n.Cond.Accept(v)
		for _, e := range n.Update {
			e.Accept(v)
		}
		n.Body.Accept(v)
	}
	return v.EndVisit(n)
}

// BreakStmt is `break;`, legal only inside a loop or a switch.
type BreakStmt struct{ base }

func NewBreakStmt() *BreakStmt { return &BreakStmt{base: newBase(KindBreakStmt)} }

func (n *BreakStmt) String() string        { return "break;" }
func (n *BreakStmt) Accept(v Visitor) bool { v.BegVisit(n); return v.EndVisit(n) }

// ContinueStmt is `continue;`, legal only inside a loop.
type ContinueStmt struct{ base }

func NewContinueStmt() *ContinueStmt { return &ContinueStmt{base: newBase(KindContinueStmt)} }

func (n *ContinueStmt) String() string        { return "continue;" }
func (n *ContinueStmt) Accept(v Visitor) bool { v.BegVisit(n); return v.EndVisit(n) }

// ReturnStmt is `return [expr];`.
type ReturnStmt struct {
	base
	Expr Expr // nil for a bare `return;`
}

func NewReturnStmt() *ReturnStmt { return &ReturnStmt{base: newBase(KindReturnStmt)} }

func (n *ReturnStmt) SetExpr(e Expr) { e.SetParent(n); n.Expr = e }

func (n *ReturnStmt) String() string {
	if n.Expr != nil {
		return fmt.Sprintf("return %s;", n.Expr)
	}
	return "return;"
}

func (n *ReturnStmt) Accept(v Visitor) bool {
	if v.BegVisit(n) && n.Expr != nil {
		n.Expr.Accept(v)
	}
	return v.EndVisit(n)
}
