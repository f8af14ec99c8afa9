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
	"github.com/kibaamor/c0-parser/utils"
)

// exprCtx carries the "must be constant" mode: set while analysing a const
// variable's initialiser or a switch case label, per §4.5's primary-identifier
// rule.
type exprCtx struct {
	mustConst bool
}

// implicitCast wraps e in a non-explicit CastExpr if its type differs from
// target, rejecting the conversion if either side is not one of
// int/char/float.
func (a *Analyser) implicitCast(e ast.Expr, target ast.VarType) (ast.Expr, *Error) {
	if e.VarType() == target {
		return e, nil
	}
	if !ast.IsVarTypeCastable(e.VarType()) || !ast.IsVarTypeCastable(target) {
		return nil, newError(a.peek(0), "cannot inexplicit cast type from %s to %s", e.VarType(), target)
	}
	return ast.NewCastExpr(e, target, false), nil
}

// mergeBinary implements invariant I2/I3: compute the merged type, cast
// each operand up to it if needed, and build the BinaryExpr.
func (a *Analyser) mergeBinary(op token.Kind, l, r ast.Expr) (*ast.BinaryExpr, *Error) {
	t := ast.MergeVarType(l.VarType(), r.VarType())
	if t == ast.VarNul {
		return nil, newError(a.peek(0), "cannot inexplicit cast type from %s to %s", l.VarType(), r.VarType())
	}
	l2, err := a.implicitCast(l, t)
	if err != nil {
		return nil, err
	}
	r2, err := a.implicitCast(r, t)
	if err != nil {
		return nil, err
	}
	return ast.NewBinaryExpr(op, l2, r2, t), nil
}

// analyseExpr is `expression := additive`.
func (a *Analyser) analyseExpr(ctx exprCtx) (ast.Expr, *Error) {
	return a.analyseAddExpr(ctx)
}

// analyseCondExpr is `condition := expression [relop expression]`, with the
// bare-expression synthesis of `!= 0` described in §4.5.
func (a *Analyser) analyseCondExpr(ctx exprCtx) (*ast.BinaryExpr, *Error) {
	left, err := a.analyseExpr(ctx)
	if err != nil {
		return nil, err
	}

	if a.peek(0).Kind.IsRelational() {
		op := a.read().Kind
		right, err := a.analyseExpr(ctx)
		if err != nil {
			return nil, err
		}
		return a.mergeBinary(op, left, right)
	}

	var zero ast.Expr
	if left.VarType() == ast.VarFloat {
		zero = ast.NewFloatExpr(0)
	} else {
		zero = ast.NewIntExpr(0)
	}
	return a.mergeBinary(token.O_NOTEQUAL, left, zero)
}

// analyseAddExpr is `additive := multiplicative {('+'|'-') multiplicative}`.
func (a *Analyser) analyseAddExpr(ctx exprCtx) (ast.Expr, *Error) {
	left, err := a.analyseMulExpr(ctx)
	if err != nil {
		return nil, err
	}
	for a.peek(0).Kind == token.S_PLUS || a.peek(0).Kind == token.S_MINUS {
		op := a.read().Kind
		right, err := a.analyseMulExpr(ctx)
		if err != nil {
			return nil, err
		}
		left, err = a.mergeBinary(op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// analyseMulExpr is `multiplicative := cast {('*'|'/') cast}`.
func (a *Analyser) analyseMulExpr(ctx exprCtx) (ast.Expr, *Error) {
	left, err := a.analyseCastExpr(ctx)
	if err != nil {
		return nil, err
	}
	for a.peek(0).Kind == token.S_MUL || a.peek(0).Kind == token.S_DIV {
		op := a.read().Kind
		right, err := a.analyseCastExpr(ctx)
		if err != nil {
			return nil, err
		}
		left, err = a.mergeBinary(op, left, right)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// analyseCastExpr is `cast := {'(' simple-type ')'} unary`. Each leading
// `( int|char|double )` (a '(' followed by a non-void type specifier and a
// ')') is consumed as an explicit cast; any other '(' is left alone for
// analysePrimaryExpr to parse as a parenthesised expression. Stacked casts such as
// `(int)(char)x` apply right to left, innermost first.
func (a *Analyser) analyseCastExpr(ctx exprCtx) (ast.Expr, *Error) {
	var targets []ast.VarType
	for a.peek(0).Kind == token.S_LPAREN {
		target, ok := typeSpecifierToVarType(a.peek(1), false)
		if !ok || a.peek(2).Kind != token.S_RPAREN {
			break
		}
		a.read() // (
		a.read() // type
		a.read() // )
		targets = append(targets, target)
	}

	expr, err := a.analyseUnaryExpr(ctx)
	if err != nil {
		return nil, err
	}

	for i := len(targets) - 1; i >= 0; i-- {
		target := targets[i]
		if !ast.IsValidCastType(target) || !ast.IsVarTypeCastable(expr.VarType()) {
			return nil, newError(a.peek(0), "cannot inexplicit cast type from %s to %s", expr.VarType(), target)
		}
		expr = ast.NewCastExpr(expr, target, true)
	}
	return expr, nil
}

// analyseUnaryExpr is `unary := ['+'|'-'] primary`.
func (a *Analyser) analyseUnaryExpr(ctx exprCtx) (ast.Expr, *Error) {
	if a.peek(0).Kind == token.S_PLUS || a.peek(0).Kind == token.S_MINUS {
		op := a.read().Kind
		operand, err := a.analysePrimaryExpr(ctx)
		if err != nil {
			return nil, err
		}
		if operand.VarType() == ast.VarStr {
			return nil, newError(a.peek(0), "unary operator cannot apply to string")
		}
		return ast.NewUnaryExpr(op, operand), nil
	}
	return a.analysePrimaryExpr(ctx)
}

// analysePrimaryExpr is `primary := '(' expression ')' | ident | int | char
// | float | string | call`.
func (a *Analyser) analysePrimaryExpr(ctx exprCtx) (ast.Expr, *Error) {
	tok := a.peek(0)
	switch tok.Kind {
	case token.S_LPAREN:
		a.read()
		inner, err := a.analyseExpr(ctx)
		if err != nil {
			return nil, err
		}
		if _, err := a.expect(token.S_RPAREN, "')' after expression"); err != nil {
			return nil, err
		}
		return ast.NewBraceExpr(inner), nil

	case token.INT:
		a.read()
		return ast.NewIntExpr(tok.Int), nil
	case token.CHAR:
		a.read()
		return ast.NewCharExpr(tok.Char), nil
	case token.FLOAT:
		a.read()
		return ast.NewFloatExpr(tok.Float), nil
	case token.STR:
		a.read()
		return ast.NewStrExpr(tok.Str), nil

	case token.IDENT:
		name := tok.Str
		sym := a.symbolTypeAt(name)
		switch sym {
		case ast.SymbolVar, ast.SymbolConstVar:
			if ctx.mustConst && sym != ast.SymbolConstVar {
				return nil, newError(tok, "expect constant identifier, %s is not const", name)
			}
			a.read()
			varType := a.varTypeOfSymbol(name)
			return ast.NewIdentExpr(name, varType), nil
		case ast.SymbolFunc:
			if ctx.mustConst {
				return nil, newError(tok, "function call is not allowed in constant expression")
			}
			a.read()
			return a.analyseFuncCallExpr(name, true)
		default:
			return nil, newError(tok, "undeclared identifier %s", name)
		}

	default:
		return nil, newError(tok, "expect expression")
	}
}

// symbolTypeAt and varTypeOfSymbol resolve an identifier against the
// analyser's scope stack (see Analyser.pushScope/popScope/lookupSymbolType
// in analyser.go), innermost scope first. Using the stack directly, rather
// than each scope's own recursive GetSymbolType, means resolution does not
// depend on a block's parent pointer having been wired up yet — it is only
// set once the caller finishes attaching the block to its enclosing
// statement, which happens after the block's contents are analysed.
func (a *Analyser) symbolTypeAt(name string) ast.SymbolType {
	return a.lookupSymbolType(name)
}

func (a *Analyser) varTypeOfSymbol(name string) ast.VarType {
	sym := a.lookupSymbol(name)
	if sym == nil {
		return ast.VarNul
	}
	switch d := sym.(type) {
	case *ast.VarDecl:
		return d.Type
	case *ast.FuncDecl:
		return d.RetType
	default:
		// Every scope's symbol table only ever holds *ast.VarDecl or
		// *ast.FuncDecl entries; lookupSymbol cannot return anything else.
		utils.ShouldNotReachHere()
		return ast.VarNul
	}
}

// analyseAssignExpr is `assignment := ident '=' expression`, legal only in a
// for-statement's init/update clause.
func (a *Analyser) analyseAssignExpr() (*ast.AssignExpr, *Error) {
	nameTok, err := a.expect(token.IDENT, "identifier")
	if err != nil {
		return nil, err
	}
	name := nameTok.Str
	sym := a.symbolTypeAt(name)
	if sym != ast.SymbolVar {
		if sym == ast.SymbolConstVar {
			return nil, newError(nameTok, "cannot assign to const variable %s", name)
		}
		return nil, newError(nameTok, "undeclared variable %s", name)
	}
	if _, err := a.expect(token.S_ASSIGN, "'=' in assignment expression"); err != nil {
		return nil, err
	}
	rhs, err := a.analyseExpr(exprCtx{})
	if err != nil {
		return nil, err
	}
	varType := a.varTypeOfSymbol(name)
	rhs, err = a.implicitCast(rhs, varType)
	if err != nil {
		return nil, err
	}
	return ast.NewAssignExpr(name, rhs, varType), nil
}

// analyseFuncCallExpr is `call := ident '(' [expression {',' expression}]
// ')'`. isNeedReturn rejects a void-returning function in contexts that need
// a value (every expression context except a bare call statement and a
// for-update item).
func (a *Analyser) analyseFuncCallExpr(name string, isNeedReturn bool) (*ast.FuncCallExpr, *Error) {
	decl, _ := a.lookupSymbol(name).(*ast.FuncDecl)
	if decl == nil {
		return nil, newError(a.peek(0), "undeclared function %s", name)
	}
	if isNeedReturn && decl.RetType == ast.VarVoid {
		return nil, newError(a.peek(0), "function has no return in function call expression")
	}

	if _, err := a.expect(token.S_LPAREN, "'(' in function call"); err != nil {
		return nil, err
	}

	var args []ast.Expr
	if a.peek(0).Kind != token.S_RPAREN {
		for {
			arg, err := a.analyseExpr(exprCtx{})
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if a.peek(0).Kind == token.S_COMMA {
				a.read()
				continue
			}
			break
		}
	}
	rparen, err := a.expect(token.S_RPAREN, "')' after argument list")
	if err != nil {
		return nil, err
	}

	if len(args) != len(decl.Params) {
		return nil, newError(rparen, "parameter number mismatch in function call expression, need %d, have %d",
			len(decl.Params), len(args))
	}
	for i, arg := range args {
		cast, err := a.implicitCast(arg, decl.Params[i].Type)
		if err != nil {
			return nil, newError(rparen, "argument %d: %s", i+1, err.Message)
		}
		args[i] = cast
	}

	return ast.NewFuncCallExpr(name, args, decl.RetType), nil
}
