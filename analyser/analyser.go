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

// Package analyser is the single-pass recursive-descent parser and semantic
// analyser: it consumes a token stream and produces a type-checked,
// parent-linked ast.File, or the first Error encountered.
package analyser

import (
	"github.com/kibaamor/c0-parser/ast"
	"github.com/kibaamor/c0-parser/token"
	"github.com/kibaamor/c0-parser/utils"
	"go.uber.org/zap"
)

// Analyser owns a read cursor over a fixed token slice. It is not safe to
// reuse across runs; build a new one per compilation the way the rest of
// this package's lifetimes assume (§5).
type Analyser struct {
	tokens []token.Token
	cur    int
	log    *zap.Logger

	// scopes is the stack of enclosing scope nodes (File at the bottom,
	// then FuncDecl, then nested BlockStmts). Expression analysis resolves
	// every identifier by walking this stack (see lookupSymbolType/
	// lookupSymbol) rather than the AST's own parent chain, since a scope's
	// parent link isn't wired up until its caller finishes attaching it.
	scopes []ast.Node
}

// New builds an Analyser over tokens. log may be nil, in which case
// analysis proceeds silently.
func New(tokens []token.Token, log *zap.Logger) *Analyser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Analyser{tokens: tokens, log: log}
}

func (a *Analyser) peek(offset int) token.Token {
	i := a.cur + offset
	if i < 0 {
		i = 0
	}
	if i >= len(a.tokens) {
		return a.tokens[len(a.tokens)-1]
	}
	return a.tokens[i]
}

func (a *Analyser) read() token.Token {
	t := a.peek(0)
	if a.cur < len(a.tokens) {
		a.cur++
	}
	return t
}

func (a *Analyser) unread(n int) {
	a.cur -= n
	if a.cur < 0 {
		a.cur = 0
	}
}

func (a *Analyser) pushScope(n ast.Node) { a.scopes = append(a.scopes, n) }

func (a *Analyser) popScope() {
	utils.Assert(len(a.scopes) > 0, "popScope: no scope to pop")
	a.scopes = a.scopes[:len(a.scopes)-1]
}

// lookupSymbolType and lookupSymbol walk the scope stack from innermost to
// outermost, querying each frame non-recursively. This is equivalent to
// querying the innermost scope's GetSymbolType(name, true) once every
// node's parent pointer is wired up, but does not depend on that wiring
// having happened yet — useful while a scope's own parent link is only set
// once the caller finishes attaching it to the tree.
func (a *Analyser) lookupSymbolType(name string) ast.SymbolType {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if st := a.scopes[i].GetSymbolType(name, false); st != ast.SymbolNul {
			return st
		}
	}
	return ast.SymbolNul
}

func (a *Analyser) lookupSymbol(name string) ast.Node {
	for i := len(a.scopes) - 1; i >= 0; i-- {
		if s := a.scopes[i].GetSymbol(name, false); s != nil {
			return s
		}
	}
	return nil
}

func (a *Analyser) skipSemicolons() {
	for a.peek(0).Kind == token.S_SEMICOLON {
		a.read()
	}
}

// expect consumes the current token if it matches kind, else returns an
// Error naming what was expected.
func (a *Analyser) expect(kind token.Kind, what string) (token.Token, *Error) {
	t := a.peek(0)
	if t.Kind != kind {
		return t, newError(t, "expect %s", what)
	}
	return a.read(), nil
}

// Analyse runs the whole pipeline: top-level declarations until end of
// input, building a fully type-checked, parent-linked ast.File. On error it
// returns the first Error encountered and whatever partial File was under
// construction (meaningless per §4.7 — callers must not use it).
func (a *Analyser) Analyse() (*ast.File, *Error) {
	file := ast.NewFile()
	a.pushScope(file)
	defer a.popScope()

	mayParseVarDecl := true
	for a.peek(0).Kind != token.NUL {
		if mayParseVarDecl {
			cur := a.peek(0)
			two := a.peek(2)
			if cur.Kind == token.R_CONST || isAssignCommaOrSemi(two.Kind) {
				a.log.Debug("analysing top-level variable declaration")
				vars, err := a.analyseVarDecl(file)
				if err != nil {
					return file, err
				}
				for _, v := range vars {
					file.AddVar(v)
				}
				continue
			}
			mayParseVarDecl = false
		}

		a.log.Debug("analysing function declaration")
		fn, err := a.analyseFuncDecl(file)
		if err != nil {
			return file, err
		}
		file.AddFunc(fn)
	}

	return file, nil
}

func isAssignCommaOrSemi(k token.Kind) bool {
	return k == token.S_ASSIGN || k == token.S_COMMA || k == token.S_SEMICOLON
}

// typeSpecifierToVarType maps a type-specifier token to its VarType, or
// (VarNul, false) if tok is not a type specifier at all.
func typeSpecifierToVarType(tok token.Token, allowVoid bool) (ast.VarType, bool) {
	switch tok.Kind {
	case token.R_VOID:
		if !allowVoid {
			return ast.VarNul, false
		}
		return ast.VarVoid, true
	case token.R_INT:
		return ast.VarInt, true
	case token.R_CHAR:
		return ast.VarChar, true
	case token.R_DOUBLE:
		return ast.VarFloat, true
	default:
		return ast.VarNul, false
	}
}
