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

// VarDecl is a variable or function-parameter declaration. It matches on its
// own name for symbol queries regardless of which scope asks.
type VarDecl struct {
	base
	IsParam bool
	IsConst bool
	Type    VarType
	Name    string
	Init    Expr // nil if no initialiser
}

func NewVarDecl(isParam, isConst bool, varType VarType, name string) *VarDecl {
	return &VarDecl{base: newBase(KindVarDecl), IsParam: isParam, IsConst: isConst, Type: varType, Name: name}
}

func (n *VarDecl) SetInit(e Expr) { e.SetParent(n); n.Init = e }

func (n *VarDecl) String() string {
	s := ""
	if n.IsConst {
		s = "const "
	}
	s += fmt.Sprintf("%s %s", n.Type, n.Name)
	if n.Init != nil {
		s += fmt.Sprintf(" = %s", n.Init)
	}
	return s
}

func (n *VarDecl) Accept(v Visitor) bool {
	if v.BegVisit(n) && n.Init != nil {
		n.Init.Accept(v)
	}
	return v.EndVisit(n)
}

func (n *VarDecl) GetSymbolType(name string, recursive bool) SymbolType {
	if name == n.Name {
		if n.IsConst {
			return SymbolConstVar
		}
		return SymbolVar
	}
	return n.base.GetSymbolType(name, recursive)
}

func (n *VarDecl) GetSymbol(name string, recursive bool) Node {
	if name == n.Name {
		return n
	}
	return n.base.GetSymbol(name, recursive)
}

// FuncDecl is a function declaration: return type, name, ordered parameters,
// and a body block. It is its own scope for its parameters.
type FuncDecl struct {
	base
	RetType VarType
	Name    string
	Params  []*VarDecl
	Body    *BlockStmt
}

func NewFuncDecl(retType VarType, name string) *FuncDecl {
	return &FuncDecl{base: newBase(KindFuncDecl), RetType: retType, Name: name}
}

func (n *FuncDecl) AddParam(p *VarDecl) { p.SetParent(n); n.Params = append(n.Params, p) }
func (n *FuncDecl) SetBody(b *BlockStmt) { b.SetParent(n); n.Body = b }

func (n *FuncDecl) String() string {
	parts := make([]string, len(n.Params))
	for i, p := range n.Params {
		parts[i] = p.String()
	}
	s := fmt.Sprintf("%s %s(%s)\n", n.RetType, n.Name, strings.Join(parts, ", "))
	if n.Body != nil {
		s += n.Body.String()
	}
	return s
}

func (n *FuncDecl) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, p := range n.Params {
			p.Accept(v)
		}
		n.Body.Accept(v)
	}
	return v.EndVisit(n)
}

func (n *FuncDecl) GetSymbolType(name string, recursive bool) SymbolType {
	if name == n.Name {
		return SymbolFunc
	}
	for _, p := range n.Params {
		if st := p.GetSymbolType(name, false); st != SymbolNul {
			return st
		}
	}
	return n.base.GetSymbolType(name, recursive)
}

func (n *FuncDecl) GetSymbol(name string, recursive bool) Node {
	if name == n.Name {
		return n
	}
	for _, p := range n.Params {
		if s := p.GetSymbol(name, false); s != nil {
			return s
		}
	}
	return n.base.GetSymbol(name, recursive)
}

// File is the AST root: ordered top-level variable declarations followed by
// ordered function declarations.
type File struct {
	base
	Vars  []*VarDecl
	Funcs []*FuncDecl
}

func NewFile() *File { return &File{base: newBase(KindFile)} }

func (n *File) AddVar(d *VarDecl)   { d.SetParent(n); n.Vars = append(n.Vars, d) }
func (n *File) AddFunc(d *FuncDecl) { d.SetParent(n); n.Funcs = append(n.Funcs, d) }

func (n *File) String() string {
	var b strings.Builder
	for _, v := range n.Vars {
		b.WriteString(v.String() + ";\n")
	}
	for _, f := range n.Funcs {
		b.WriteString(f.String() + "\n")
	}
	return b.String()
}

func (n *File) Accept(v Visitor) bool {
	if v.BegVisit(n) {
		for _, d := range n.Vars {
			d.Accept(v)
		}
		for _, d := range n.Funcs {
			d.Accept(v)
		}
	}
	return v.EndVisit(n)
}

func (n *File) GetSymbolType(name string, recursive bool) SymbolType {
	for _, d := range n.Vars {
		if st := d.GetSymbolType(name, false); st != SymbolNul {
			return st
		}
	}
	for _, d := range n.Funcs {
		if st := d.GetSymbolType(name, false); st != SymbolNul {
			return st
		}
	}
	return SymbolNul
}

func (n *File) GetSymbol(name string, recursive bool) Node {
	for _, d := range n.Vars {
		if s := d.GetSymbol(name, false); s != nil {
			return s
		}
	}
	for _, d := range n.Funcs {
		if s := d.GetSymbol(name, false); s != nil {
			return s
		}
	}
	return nil
}
