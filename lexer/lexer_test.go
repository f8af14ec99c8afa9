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
package lexer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kibaamor/c0-parser/token"
)

func allFrom(t *testing.T, src string) []token.Token {
	t.Helper()
	lx, err := New(strings.NewReader(src))
	require.NoError(t, err)
	return lx.All()
}

// TestDecimalAndHexInts is scenario 1 from the governing testable-properties
// list: decimal and hex literals, including the int32 boundary value.
func TestDecimalAndHexInts(t *testing.T) {
	toks := allFrom(t, "0\n1\n0x7fffffff\n0X7fffffff\n")
	require.Len(t, toks, 5) // four ints + NUL
	want := []int32{0, 1, 2147483647, 2147483647}
	for i, w := range want {
		require.Equal(t, token.INT, toks[i].Kind)
		require.Equal(t, w, toks[i].Int)
	}
	require.True(t, toks[4].IsNul())
}

// TestOctalLiteralBanned is scenario 2.
func TestOctalLiteralBanned(t *testing.T) {
	toks := allFrom(t, "017\n")
	require.Len(t, toks, 1)
	require.True(t, toks[0].IsErr())
	require.Contains(t, toks[0].Str, "octal based literal is banned")
}

// TestFloatForms is scenario 3: every legal float spelling.
func TestFloatForms(t *testing.T) {
	toks := allFrom(t, "12.\n.34\n12.34\n12.e1\n.34e-1\n12.34e+1\n")
	require.Len(t, toks, 7)
	for i := 0; i < 6; i++ {
		require.Equal(t, token.FLOAT, toks[i].Kind, "token %d", i)
	}
	require.True(t, toks[6].IsNul())
}

func TestIdentVsKeyword(t *testing.T) {
	toks := allFrom(t, "while whileish")
	require.Equal(t, token.R_WHILE, toks[0].Kind)
	require.Equal(t, token.IDENT, toks[1].Kind)
	require.Equal(t, "whileish", toks[1].Str)
}

func TestCharAndStringEscapes(t *testing.T) {
	toks := allFrom(t, `'\n' "a\tb"`)
	require.Equal(t, token.CHAR, toks[0].Kind)
	require.Equal(t, byte('\n'), toks[0].Char)
	require.Equal(t, token.STR, toks[1].Kind)
	require.Equal(t, "a\tb", toks[1].Str)
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := allFrom(t, "1 // trailing\n/* block */ 2")
	require.Equal(t, token.INT, toks[0].Kind)
	require.Equal(t, int32(1), toks[0].Int)
	require.Equal(t, token.INT, toks[1].Kind)
	require.Equal(t, int32(2), toks[1].Int)
}

func TestRelationalAndSignOperators(t *testing.T) {
	toks := allFrom(t, "<= >= == != < > = ! + - * /")
	want := []token.Kind{
		token.O_LESSEQUAL, token.O_GREATEREQUAL, token.O_EQUAL, token.O_NOTEQUAL,
		token.O_LESS, token.O_GREATER, token.S_ASSIGN, token.S_EXCLAMATION,
		token.S_PLUS, token.S_MINUS, token.S_MUL, token.S_DIV,
	}
	for i, w := range want {
		require.Equal(t, w, toks[i].Kind, "token %d", i)
	}
}

func TestNonASCIIByteStopsScanning(t *testing.T) {
	toks := allFrom(t, "1\xff")
	require.Equal(t, token.INT, toks[0].Kind)
	require.True(t, toks[len(toks)-1].IsNul())
}
