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

// looksLikeVarDeclStart reports whether the upcoming tokens can only begin a
// variable declaration: `const`, or a non-void type-specifier followed by an
// identifier. This is a one-ahead test, unlike the top-level driver's check
// of the token two ahead for `= ; ,`.
func looksLikeVarDeclStart(cur, next token.Token) bool {
	if cur.Kind == token.R_CONST {
		return true
	}
	if _, ok := typeSpecifierToVarType(cur, false); ok {
		return next.Kind == token.IDENT
	}
	return false
}

// analyseBlockStmt parses `{ var-decl* stmt* }`, pushing its own scope for
// the duration. The block's AST parent (a FuncDecl or an enclosing
// statement) is wired only by the caller, once the block itself is returned,
// so name resolution inside the block's body uses the analyser's scope stack
// rather than that link.
func (a *Analyser) analyseBlockStmt(canBreak, canContinue bool, retType ast.VarType) (*ast.BlockStmt, *Error) {
	if _, err := a.expect(token.S_LBRACE, "'{' to start block"); err != nil {
		return nil, err
	}

	block := ast.NewBlockStmt()
	a.pushScope(block)
	defer a.popScope()

	for a.peek(0).Kind != token.S_RBRACE && a.peek(0).Kind != token.NUL {
		if looksLikeVarDeclStart(a.peek(0), a.peek(1)) {
			decls, err := a.analyseVarDecl(block)
			if err != nil {
				return nil, err
			}
			for _, d := range decls {
				block.AddVar(d)
			}
			continue
		}
		break
	}

	for a.peek(0).Kind != token.S_RBRACE && a.peek(0).Kind != token.NUL {
		stmt, err := a.analyseStmt(canBreak, canContinue, retType)
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			stmt = ast.NewEmptyStmt()
		}
		block.AddStmt(stmt)
	}

	if _, err := a.expect(token.S_RBRACE, "'}' to end block"); err != nil {
		return nil, err
	}
	return block, nil
}

// analyseStmt dispatches on the leading token per §4.6. It returns
// (nil, nil) exactly when the leading token is `else`, signalling "no
// statement here" to a caller such as analyseIfStmt.
func (a *Analyser) analyseStmt(canBreak, canContinue bool, retType ast.VarType) (ast.Stmt, *Error) {
	tok := a.peek(0)
	switch tok.Kind {
	case token.R_ELSE:
		return nil, nil

	case token.S_SEMICOLON:
		a.read()
		return ast.NewEmptyStmt(), nil

	case token.S_LBRACE:
		return a.analyseBlockStmt(canBreak, canContinue, retType)

	case token.R_IF:
		return a.analyseIfStmt(canBreak, canContinue, retType)
	case token.R_SWITCH:
		return a.analyseSwitchStmt(canContinue, retType)

	case token.R_WHILE:
		return a.analyseWhileStmt(retType)
	case token.R_DO:
		return a.analyseDoStmt(retType)
	case token.R_FOR:
		return a.analyseForStmt(retType)

	case token.R_BREAK:
		return a.analyseBreakStmt(canBreak)
	case token.R_CONTINUE:
		return a.analyseContinueStmt(canContinue)
	case token.R_RETURN:
		return a.analyseReturnStmt(retType)

	case token.R_PRINT:
		return a.analysePrintStmt()
	case token.R_SCAN:
		return a.analyseScanStmt()

	case token.IDENT:
		return a.analyseIdentStmt(tok)

	default:
		return nil, newError(tok, "expect statement")
	}
}

// analyseIdentStmt is the `<ident>` branch: an assignment, a call statement,
// or an error (undeclared name, or a const-var used as an assignment
// target).
func (a *Analyser) analyseIdentStmt(nameTok token.Token) (ast.Stmt, *Error) {
	name := nameTok.Str
	sym := a.symbolTypeAt(name)
	switch sym {
	case ast.SymbolVar:
		a.read()
		if _, err := a.expect(token.S_ASSIGN, "'=' in assignment statement"); err != nil {
			return nil, err
		}
		rhs, err := a.analyseExpr(exprCtx{})
		if err != nil {
			return nil, err
		}
		rhs, err = a.implicitCast(rhs, a.varTypeOfSymbol(name))
		if err != nil {
			return nil, err
		}
		if _, err := a.expect(token.S_SEMICOLON, "';' after assignment statement"); err != nil {
			return nil, err
		}
		return ast.NewAssignStmt(name, rhs), nil

	case ast.SymbolConstVar:
		return nil, newError(nameTok, "cannot assign to const variable %s", name)

	case ast.SymbolFunc:
		a.read()
		call, err := a.analyseFuncCallExpr(name, false)
		if err != nil {
			return nil, err
		}
		if _, err := a.expect(token.S_SEMICOLON, "';' after call statement"); err != nil {
			return nil, err
		}
		stmt := ast.NewFuncCallStmt(name)
		for _, arg := range call.Args {
			stmt.AddArg(arg)
		}
		return stmt, nil

	default:
		return nil, newError(nameTok, "undeclared identifier %s", name)
	}
}

// analyseIfStmt is `if ( condition ) stmt [ else stmt ]`. An absent
// then/else (the sub-parser signalling "no statement") is substituted with
// EmptyStmt.
func (a *Analyser) analyseIfStmt(canBreak, canContinue bool, retType ast.VarType) (*ast.IfStmt, *Error) {
	a.read() // if
	if _, err := a.expect(token.S_LPAREN, "'(' after 'if'"); err != nil {
		return nil, err
	}
	cond, err := a.analyseCondExpr(exprCtx{})
	if err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_RPAREN, "')' after if condition"); err != nil {
		return nil, err
	}

	then, err := a.analyseStmt(canBreak, canContinue, retType)
	if err != nil {
		return nil, err
	}
	if then == nil {
		then = ast.NewEmptyStmt()
	}
	n := ast.NewIfStmt(cond, then)

	if a.peek(0).Kind == token.R_ELSE {
		a.read()
		els, err := a.analyseStmt(canBreak, canContinue, retType)
		if err != nil {
			return nil, err
		}
		if els == nil {
			els = ast.NewEmptyStmt()
		}
		n.SetElse(els)
	}
	return n, nil
}

// analyseSwitchStmt is `switch ( expr ) { labeled-stmt* }`. The controller
// type is restricted to Int, Char, or Float (see DESIGN.md for the Float
// deviation this carries forward). canBreak is forced true for the body;
// canContinue is inherited from the surrounding context.
func (a *Analyser) analyseSwitchStmt(canContinue bool, retType ast.VarType) (*ast.SwitchStmt, *Error) {
	a.read() // switch
	if _, err := a.expect(token.S_LPAREN, "'(' after 'switch'"); err != nil {
		return nil, err
	}
	ctrl, err := a.analyseExpr(exprCtx{})
	if err != nil {
		return nil, err
	}
	if !ast.IsValidCastType(ctrl.VarType()) {
		return nil, newError(a.peek(0), "switch controller must be int, char, or float, have %s", ctrl.VarType())
	}
	if _, err := a.expect(token.S_RPAREN, "')' after switch controller"); err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_LBRACE, "'{' to start switch body"); err != nil {
		return nil, err
	}

	n := ast.NewSwitchStmt(ctrl)
	haveDefault := false
	for a.peek(0).Kind != token.S_RBRACE && a.peek(0).Kind != token.NUL {
		switch a.peek(0).Kind {
		case token.R_CASE:
			labeled, err := a.analyseLabeledStmt(canContinue, retType)
			if err != nil {
				return nil, err
			}
			n.AddStmt(labeled)
		case token.R_DEFAULT:
			if haveDefault {
				return nil, newError(a.peek(0), "duplicate default label in switch statement")
			}
			haveDefault = true
			a.read()
			if _, err := a.expect(token.S_COLON, "':' after 'default'"); err != nil {
				return nil, err
			}
			stmt, err := a.analyseStmt(true, canContinue, retType)
			if err != nil {
				return nil, err
			}
			if stmt == nil {
				stmt = ast.NewEmptyStmt()
			}
			n.AddStmt(stmt)
		default:
			return nil, newError(a.peek(0), "expect 'case' or 'default' in switch body")
		}
	}

	if _, err := a.expect(token.S_RBRACE, "'}' to end switch body"); err != nil {
		return nil, err
	}
	return n, nil
}

// analyseLabeledStmt is `case <literal> : stmt`, where the literal is an
// integer or char literal (optionally unary-negated or parenthesised); any
// other label expression is rejected.
func (a *Analyser) analyseLabeledStmt(canContinue bool, retType ast.VarType) (*ast.LabeledStmt, *Error) {
	a.read() // case
	label, err := a.analyseExpr(exprCtx{mustConst: true})
	if err != nil {
		return nil, err
	}
	var value int32
	ok := false
	switch label.VarType() {
	case ast.VarInt:
		value, ok = label.IntValue()
	case ast.VarChar:
		var c byte
		c, ok = label.CharValue()
		value = int32(c)
	}
	if !ok {
		return nil, newError(a.peek(0), "case label must be an integer or char literal")
	}
	if _, err := a.expect(token.S_COLON, "':' after case label"); err != nil {
		return nil, err
	}
	stmt, err := a.analyseStmt(true, canContinue, retType)
	if err != nil {
		return nil, err
	}
	if stmt == nil {
		stmt = ast.NewEmptyStmt()
	}
	return ast.NewLabeledStmt(value, stmt), nil
}

// analyseWhileStmt is `while ( condition ) stmt`; the body gets a fresh
// canBreak=canContinue=true.
func (a *Analyser) analyseWhileStmt(retType ast.VarType) (*ast.WhileStmt, *Error) {
	a.read() // while
	if _, err := a.expect(token.S_LPAREN, "'(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := a.analyseCondExpr(exprCtx{})
	if err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_RPAREN, "')' after while condition"); err != nil {
		return nil, err
	}
	body, err := a.analyseStmt(true, true, retType)
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = ast.NewEmptyStmt()
	}
	return ast.NewWhileStmt(cond, body), nil
}

// analyseDoStmt is `do stmt while ( condition ) ;`.
func (a *Analyser) analyseDoStmt(retType ast.VarType) (*ast.DoStmt, *Error) {
	a.read() // do
	body, err := a.analyseStmt(true, true, retType)
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = ast.NewEmptyStmt()
	}
	if _, err := a.expect(token.R_WHILE, "'while' after do-body"); err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_LPAREN, "'(' after 'while'"); err != nil {
		return nil, err
	}
	cond, err := a.analyseCondExpr(exprCtx{})
	if err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_RPAREN, "')' after do-while condition"); err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_SEMICOLON, "';' after do-while statement"); err != nil {
		return nil, err
	}
	return ast.NewDoStmt(body, cond), nil
}

// save/restore is the cursor checkpoint the for-condition rewind (§4.7)
// needs: it captures only the read cursor, which is all analyseForStmt ever
// backtracks.
func (a *Analyser) save() int       { return a.cur }
func (a *Analyser) restore(pos int) { a.cur = pos }

// analyseForStmt is `for ( init-list ; [condition] ; update-list ) stmt`.
// The condition is the one place this package speculatively parses and
// rewinds: if parsing it fails, or it isn't followed by ';', the cursor is
// restored and a fabricated `1 != 0` takes its place.
func (a *Analyser) analyseForStmt(retType ast.VarType) (*ast.ForStmt, *Error) {
	a.read() // for
	if _, err := a.expect(token.S_LPAREN, "'(' after 'for'"); err != nil {
		return nil, err
	}

	n := ast.NewForStmt()

	if a.peek(0).Kind != token.S_SEMICOLON {
		for {
			init, err := a.analyseAssignExpr()
			if err != nil {
				return nil, err
			}
			n.AddInit(init)
			if a.peek(0).Kind == token.S_COMMA {
				a.read()
				continue
			}
			break
		}
	}
	if _, err := a.expect(token.S_SEMICOLON, "';' after for-init"); err != nil {
		return nil, err
	}

	checkpoint := a.save()
	cond, condErr := a.analyseCondExpr(exprCtx{})
	if condErr != nil || a.peek(0).Kind != token.S_SEMICOLON {
		a.restore(checkpoint)
		zero := ast.NewIntExpr(0)
		one := ast.NewIntExpr(1)
		fallback, err := a.mergeBinary(token.O_NOTEQUAL, one, zero)
		if err != nil {
			return nil, err
		}
		n.SetCond(fallback)
		// The condition is optional but its terminating ';' is not: an
		// omitted condition still leaves this ';' unread, so consume it
		// here rather than leaving it for the update-list loop to choke on.
		if _, err := a.expect(token.S_SEMICOLON, "';' after for condition"); err != nil {
			return nil, err
		}
	} else {
		a.read() // ;
		n.SetCond(cond)
	}
	if a.peek(0).Kind != token.S_RPAREN {
		for {
			update, err := a.analyseForUpdate()
			if err != nil {
				return nil, err
			}
			n.AddUpdate(update)
			if a.peek(0).Kind == token.S_COMMA {
				a.read()
				continue
			}
			break
		}
	}
	if _, err := a.expect(token.S_RPAREN, "')' after for-update"); err != nil {
		return nil, err
	}

	body, err := a.analyseStmt(true, true, retType)
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = ast.NewEmptyStmt()
	}
	n.SetBody(body)
	return n, nil
}

// analyseForUpdate parses one for-update item: an assignment expression, or
// a function call expression, disambiguated by whether the leading
// identifier names a function.
func (a *Analyser) analyseForUpdate() (ast.Expr, *Error) {
	nameTok, err := a.expect(token.IDENT, "identifier in for-update")
	if err != nil {
		return nil, err
	}
	a.unread(1)
	if a.symbolTypeAt(nameTok.Str) == ast.SymbolFunc {
		a.read()
		return a.analyseFuncCallExpr(nameTok.Str, false)
	}
	return a.analyseAssignExpr()
}

// analyseBreakStmt and analyseContinueStmt reject use outside their allowed
// contexts with the exact message text §6.3 pins down.
func (a *Analyser) analyseBreakStmt(canBreak bool) (*ast.BreakStmt, *Error) {
	tok := a.read() // break
	if !canBreak {
		return nil, newError(tok, "only loop or switch can use 'break' statement")
	}
	if _, err := a.expect(token.S_SEMICOLON, "';' after break statement"); err != nil {
		return nil, err
	}
	return ast.NewBreakStmt(), nil
}

func (a *Analyser) analyseContinueStmt(canContinue bool) (*ast.ContinueStmt, *Error) {
	tok := a.read() // continue
	if !canContinue {
		return nil, newError(tok, "only loop can use 'continue' statement")
	}
	if _, err := a.expect(token.S_SEMICOLON, "';' after continue statement"); err != nil {
		return nil, err
	}
	return ast.NewContinueStmt(), nil
}

// analyseReturnStmt is `return [expr] ;`. A void-returning function must
// omit the expression; otherwise the expression is implicitly cast to
// retType.
func (a *Analyser) analyseReturnStmt(retType ast.VarType) (*ast.ReturnStmt, *Error) {
	a.read() // return
	n := ast.NewReturnStmt()
	if a.peek(0).Kind != token.S_SEMICOLON {
		if retType == ast.VarVoid {
			return nil, newError(a.peek(0), "void function cannot return any value")
		}
		expr, err := a.analyseExpr(exprCtx{})
		if err != nil {
			return nil, err
		}
		expr, err = a.implicitCast(expr, retType)
		if err != nil {
			return nil, err
		}
		n.SetExpr(expr)
	}
	if _, err := a.expect(token.S_SEMICOLON, "';' after return statement"); err != nil {
		return nil, err
	}
	return n, nil
}

// analysePrintStmt is `print ( [expr {',' expr}] ) ;`. Any expression type,
// including strings, is a legal argument.
func (a *Analyser) analysePrintStmt() (*ast.PrintStmt, *Error) {
	a.read() // print
	if _, err := a.expect(token.S_LPAREN, "'(' after 'print'"); err != nil {
		return nil, err
	}
	n := ast.NewPrintStmt()
	if a.peek(0).Kind != token.S_RPAREN {
		for {
			arg, err := a.analyseExpr(exprCtx{})
			if err != nil {
				return nil, err
			}
			n.AddArg(arg)
			if a.peek(0).Kind == token.S_COMMA {
				a.read()
				continue
			}
			break
		}
	}
	if _, err := a.expect(token.S_RPAREN, "')' after print arguments"); err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_SEMICOLON, "';' after print statement"); err != nil {
		return nil, err
	}
	return n, nil
}

// analyseScanStmt is `scan ( ident ) ;`. The identifier binding is not
// re-validated against the scope chain beyond having been seen at parse
// time, matching the donor implementation's own leniency here.
func (a *Analyser) analyseScanStmt() (*ast.ScanStmt, *Error) {
	a.read() // scan
	if _, err := a.expect(token.S_LPAREN, "'(' after 'scan'"); err != nil {
		return nil, err
	}
	nameTok, err := a.expect(token.IDENT, "identifier in scan statement")
	if err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_RPAREN, "')' after scan target"); err != nil {
		return nil, err
	}
	if _, err := a.expect(token.S_SEMICOLON, "';' after scan statement"); err != nil {
		return nil, err
	}
	return ast.NewScanStmt(nameTok.Str), nil
}
