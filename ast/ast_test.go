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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeVarType(t *testing.T) {
	assert.Equal(t, VarFloat, MergeVarType(VarFloat, VarInt))
	assert.Equal(t, VarFloat, MergeVarType(VarChar, VarFloat))
	assert.Equal(t, VarVoid, MergeVarType(VarVoid, VarVoid))
	assert.Equal(t, VarNul, MergeVarType(VarVoid, VarInt))
	assert.Equal(t, VarInt, MergeVarType(VarInt, VarChar))
}

func TestIsValidCastTypeAndCastable(t *testing.T) {
	for _, vt := range []VarType{VarInt, VarChar, VarFloat} {
		assert.True(t, IsValidCastType(vt))
		assert.True(t, IsVarTypeCastable(vt))
	}
	for _, vt := range []VarType{VarVoid, VarStr, VarNul} {
		assert.False(t, IsValidCastType(vt))
		assert.False(t, IsVarTypeCastable(vt))
	}
}

func TestVarDeclSymbolLookup(t *testing.T) {
	v := NewVarDecl(false, true, VarInt, "x")
	assert.Equal(t, SymbolConstVar, v.GetSymbolType("x", false))
	assert.Equal(t, SymbolNul, v.GetSymbolType("y", false))
	assert.Same(t, v, v.GetSymbol("x", false))
}

// TestParentDelegationWalksToEnclosingScope exercises invariant P1/P3: once
// a block is wired into a function and the function into a file, a name
// declared in an outer scope resolves from deep inside the tree via the
// plain parent pointer chain alone.
func TestParentDelegationWalksToEnclosingScope(t *testing.T) {
	file := NewFile()
	outer := NewVarDecl(false, false, VarInt, "g")
	file.AddVar(outer)

	fn := NewFuncDecl(VarVoid, "f")
	file.AddFunc(fn)

	block := NewBlockStmt()
	fn.SetBody(block)

	inner := NewIdentExpr("g", VarInt)
	assign := NewAssignStmt("g", inner)
	block.AddStmt(assign)

	require.Equal(t, SymbolVar, inner.GetSymbolType("g", true))
	require.Same(t, outer, inner.GetSymbol("g", true))

	require.Same(t, assign, inner.Parent())
	require.Same(t, block, assign.Parent())
	require.Same(t, fn, block.Parent())
	require.Same(t, file, fn.Parent())
}

func TestBinaryExprVarTypeMatchesOperands(t *testing.T) {
	l := NewIntExpr(1)
	r := NewIntExpr(2)
	bin := NewBinaryExpr(0, l, r, VarInt)
	assert.Equal(t, bin.VarType(), l.VarType())
	assert.Equal(t, bin.VarType(), r.VarType())
	assert.Same(t, bin, l.Parent())
	assert.Same(t, bin, r.Parent())
}

func TestFuncDeclParamScopeLookup(t *testing.T) {
	fn := NewFuncDecl(VarInt, "f")
	p := NewVarDecl(true, false, VarInt, "n")
	fn.AddParam(p)
	assert.Equal(t, SymbolVar, fn.GetSymbolType("n", false))
	assert.Equal(t, SymbolFunc, fn.GetSymbolType("f", false))
	assert.Equal(t, SymbolNul, fn.GetSymbolType("missing", false))
}

func TestBlockStmtLocalVarLookup(t *testing.T) {
	block := NewBlockStmt()
	local := NewVarDecl(false, false, VarChar, "x")
	block.AddVar(local)
	assert.Equal(t, SymbolVar, block.GetSymbolType("x", false))
	assert.Same(t, local, block.GetSymbol("x", false))
}

func TestInstanceCountIncreasesOnConstruction(t *testing.T) {
	before := InstanceCountByKind(KindIntExpr)
	NewIntExpr(7)
	after := InstanceCountByKind(KindIntExpr)
	assert.Equal(t, before+1, after)
}
