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
package analyser

import (
	"github.com/kibaamor/c0-parser/ast"
	"github.com/kibaamor/c0-parser/token"
)

// analyseVarDecl parses `[const] type init-declarator-list ';'` per §4.4.
// scope is the enclosing declaration scope (the File, or a BlockStmt) used
// for the same-scope name-uniqueness check; the returned declarations are
// not yet attached to it — the caller attaches them (and, by doing so,
// makes them visible for later same-scope lookups).
func (a *Analyser) analyseVarDecl(scope ast.Node) ([]*ast.VarDecl, *Error) {
	isConst := false
	if a.peek(0).Kind == token.R_CONST {
		a.read()
		isConst = true
	}

	typeTok := a.peek(0)
	varType, ok := typeSpecifierToVarType(typeTok, false)
	if !ok {
		return nil, newError(typeTok, "expect type-specifier")
	}
	a.read()

	seen := map[string]bool{}
	var decls []*ast.VarDecl

	for {
		nameTok, err := a.expect(token.IDENT, "identifier")
		if err != nil {
			return nil, err
		}
		name := nameTok.Str
		if seen[name] || scope.GetSymbolType(name, false) != ast.SymbolNul {
			return nil, newError(nameTok, "variable name repeated")
		}
		seen[name] = true

		decl := ast.NewVarDecl(false, isConst, varType, name)

		if a.peek(0).Kind == token.S_ASSIGN {
			a.read()
			init, err := a.analyseExpr(exprCtx{mustConst: isConst})
			if err != nil {
				return nil, err
			}
			init, err = a.implicitCast(init, varType)
			if err != nil {
				return nil, err
			}
			decl.SetInit(init)
		}

		decls = append(decls, decl)

		if a.peek(0).Kind == token.S_COMMA {
			a.read()
			continue
		}
		break
	}

	if _, err := a.expect(token.S_SEMICOLON, "';' after variable declaration"); err != nil {
		return nil, err
	}

	return decls, nil
}

// analyseFuncDecl parses `type ident '(' [param {',' param}] ')' block` per
// §4.4. The body is analysed with the function's own return type and
// canBreak=canContinue=false.
func (a *Analyser) analyseFuncDecl(scope ast.Node) (*ast.FuncDecl, *Error) {
	typeTok := a.peek(0)
	retType, ok := typeSpecifierToVarType(typeTok, true)
	if !ok {
		return nil, newError(typeTok, "expect type-specifier")
	}
	a.read()

	nameTok, err := a.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if scope.GetSymbolType(nameTok.Str, false) != ast.SymbolNul {
		return nil, newError(nameTok, "variable name repeated")
	}

	fn := ast.NewFuncDecl(retType, nameTok.Str)
	a.pushScope(fn)
	defer a.popScope()

	if _, err := a.expect(token.S_LPAREN, "'(' after function name"); err != nil {
		return nil, err
	}
	if a.peek(0).Kind != token.S_RPAREN {
		for {
			param, err := a.analyseFuncDeclParam(fn)
			if err != nil {
				return nil, err
			}
			fn.AddParam(param)
			if a.peek(0).Kind == token.S_COMMA {
				a.read()
				continue
			}
			break
		}
	}
	if _, err := a.expect(token.S_RPAREN, "')' after parameter list"); err != nil {
		return nil, err
	}

	body, err := a.analyseBlockStmt(false, false, retType)
	if err != nil {
		return nil, err
	}
	fn.SetBody(body)

	return fn, nil
}

// analyseFuncDeclParam parses `[const] type ident`, checking uniqueness
// against the parameters already attached to fn.
func (a *Analyser) analyseFuncDeclParam(fn *ast.FuncDecl) (*ast.VarDecl, *Error) {
	isConst := false
	if a.peek(0).Kind == token.R_CONST {
		a.read()
		isConst = true
	}

	typeTok := a.peek(0)
	varType, ok := typeSpecifierToVarType(typeTok, false)
	if !ok {
		return nil, newError(typeTok, "expect type-specifier")
	}
	a.read()

	nameTok, err := a.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	if fn.GetSymbolType(nameTok.Str, false) != ast.SymbolNul {
		return nil, newError(nameTok, "variable name repeated")
	}

	return ast.NewVarDecl(true, isConst, varType, nameTok.Str), nil
}
