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
package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "IDENT", IDENT.String())
	assert.Equal(t, "while", R_WHILE.String())
	assert.Equal(t, "<=", O_LESSEQUAL.String())
	assert.Equal(t, "UNKNOWN", Kind(9999).String())
}

func TestIsRelational(t *testing.T) {
	for k := O_LESS; k <= O_NOTEQUAL; k++ {
		assert.True(t, k.IsRelational())
	}
	assert.False(t, S_PLUS.IsRelational())
	assert.False(t, R_IF.IsRelational())
}

func TestKeywords(t *testing.T) {
	for word, kind := range Keywords {
		assert.Equal(t, word, kindNames[kind])
	}
	_, ok := Keywords["notaword"]
	require.False(t, ok)
}

func TestPosString1Based(t *testing.T) {
	p := Pos{Row: 0, Col: 0}
	assert.Equal(t, "1:1", p.String())
}

func TestTokenValueStringAndString(t *testing.T) {
	tok := Token{Kind: STR, Str: "a\nb", Range: Range{Start: Pos{0, 0}, End: Pos{0, 5}}}
	assert.Equal(t, `"a\nb"`, tok.ValueString())
	assert.Contains(t, tok.String(), "STR")
	assert.Contains(t, tok.String(), `"a\nb"`)

	intTok := Token{Kind: INT, Int: 42}
	assert.Equal(t, "42", intTok.ValueString())

	charTok := Token{Kind: CHAR, Char: '\''}
	assert.Equal(t, `'\''`, charTok.ValueString())
}

func TestIsErrIsNul(t *testing.T) {
	assert.True(t, Token{Kind: ERR}.IsErr())
	assert.True(t, Token{Kind: NUL}.IsNul())
	assert.False(t, Token{Kind: IDENT}.IsErr())
	assert.False(t, Token{Kind: IDENT}.IsNul())
}
