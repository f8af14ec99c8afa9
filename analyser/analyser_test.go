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
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kibaamor/c0-parser/ast"
	"github.com/kibaamor/c0-parser/lexer"
)

func analyse(t *testing.T, src string) (*ast.File, *Error) {
	t.Helper()
	lx, err := lexer.New(strings.NewReader(src))
	require.NoError(t, err)
	a := New(lx.All(), nil)
	return a.Analyse()
}

func TestTopLevelVarThenFunc(t *testing.T) {
	file, err := analyse(t, "int g = 1; int main() { return g; }")
	require.Nil(t, err)
	require.Len(t, file.Vars, 1)
	require.Len(t, file.Funcs, 1)
	require.Equal(t, "g", file.Vars[0].Name)
	require.Equal(t, "main", file.Funcs[0].Name)
}

// TestAssignToConstRejected is scenario 4.
func TestAssignToConstRejected(t *testing.T) {
	_, err := analyse(t, "int main(){const int a=1;a=2;return 0;}")
	require.NotNil(t, err)
	require.Contains(t, err.Message, "const variable")
}

// TestVoidFuncCallNeedsNoReturnRejected is scenario 5.
func TestVoidFuncCallNeedsNoReturnRejected(t *testing.T) {
	_, err := analyse(t, "void f(){} int main(){int x; x = f(); return 0;}")
	require.NotNil(t, err)
	require.Contains(t, err.Message, "function has no return in function call expression")
}

// TestForLoopBreakInsideIf is scenario 6: successful analysis, and the
// break's nearest loop ancestor (reached by walking Parent()) is the for.
func TestForLoopBreakInsideIf(t *testing.T) {
	file, err := analyse(t, "int main(){int i; for(i=0;i<3;i=i+1){ if(i==2) break; } return 0;}")
	require.Nil(t, err)

	body := file.Funcs[0].Body
	require.Len(t, body.Stmts, 2)

	forStmt, ok := body.Stmts[0].(*ast.ForStmt)
	require.True(t, ok)

	forBody, ok := forStmt.Body.(*ast.BlockStmt)
	require.True(t, ok)
	require.Len(t, forBody.Stmts, 1)

	ifStmt, ok := forBody.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	breakStmt, ok := ifStmt.Then.(*ast.BreakStmt)
	require.True(t, ok)

	var ancestor ast.Node = breakStmt.Parent()
	for ancestor != nil {
		if ancestor == forStmt {
			break
		}
		ancestor = ancestor.Parent()
	}
	require.Same(t, ast.Node(forStmt), ancestor)
}

func TestBreakOutsideLoopRejected(t *testing.T) {
	_, err := analyse(t, "int main(){ break; return 0; }")
	require.NotNil(t, err)
	require.Contains(t, err.Message, "only loop or switch can use 'break' statement")
}

func TestContinueOutsideLoopRejected(t *testing.T) {
	_, err := analyse(t, "int main(){ continue; return 0; }")
	require.NotNil(t, err)
	require.Contains(t, err.Message, "only loop can use 'continue' statement")
}

func TestDuplicateNameInSameScopeRejected(t *testing.T) {
	_, err := analyse(t, "int main(){ int a; int a; return 0; }")
	require.NotNil(t, err)
	require.Contains(t, err.Message, "variable name repeated")
}

func TestImplicitCastMergesIntAndFloat(t *testing.T) {
	file, err := analyse(t, "int main(){ double d; d = 1; return 0; }")
	require.Nil(t, err)
	assign, ok := file.Funcs[0].Body.Stmts[0].(*ast.AssignStmt)
	require.True(t, ok)
	require.Equal(t, ast.VarFloat, assign.Expr.VarType())
}

func TestFuncCallArityMismatchRejected(t *testing.T) {
	_, err := analyse(t, "int f(int a){ return a; } int main(){ return f(); }")
	require.NotNil(t, err)
	require.Contains(t, err.Message, "parameter number mismatch in function call expression, need 1, have 0")
}

func TestSwitchWithDuplicateDefaultRejected(t *testing.T) {
	_, err := analyse(t, `int main(){
		int x;
		switch (x) {
			default: x = 1;
			default: x = 2;
		}
		return 0;
	}`)
	require.NotNil(t, err)
	require.Contains(t, err.Message, "duplicate default label")
}

func TestForConditionRewindFallsBackWhenOmitted(t *testing.T) {
	file, err := analyse(t, "int main(){ for(;;){ break; } return 0; }")
	require.Nil(t, err)
	forStmt := file.Funcs[0].Body.Stmts[0].(*ast.ForStmt)
	require.NotNil(t, forStmt.Cond)
	require.True(t, forStmt.Cond.IsCond())
}

func TestUndeclaredIdentifierRejected(t *testing.T) {
	_, err := analyse(t, "int main(){ return undeclared; }")
	require.NotNil(t, err)
	require.Contains(t, err.Message, "undeclared identifier")
}
