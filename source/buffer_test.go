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
package source

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCharAdvancesAcrossLines(t *testing.T) {
	b, err := New(strings.NewReader("ab\ncd"))
	require.NoError(t, err)

	require.Equal(t, int('a'), b.ReadChar())
	require.Equal(t, int('b'), b.ReadChar())
	require.Equal(t, int('\n'), b.ReadChar())
	require.Equal(t, int('c'), b.ReadChar())
	require.Equal(t, int('d'), b.ReadChar())
	require.Equal(t, eof, b.ReadChar())
}

func TestUnreadCharCrossesLineBoundary(t *testing.T) {
	b, err := New(strings.NewReader("a\nb"))
	require.NoError(t, err)

	require.Equal(t, int('a'), b.ReadChar())
	require.Equal(t, int('\n'), b.ReadChar())
	b.UnreadChar()
	require.Equal(t, int('\n'), b.PeekChar())
}

func TestPushPopPos(t *testing.T) {
	b, err := New(strings.NewReader("abc"))
	require.NoError(t, err)

	b.PushPos()
	b.ReadChar()
	b.ReadChar()
	r := b.PopPos()
	require.Equal(t, 0, r.Start.Row)
	require.Equal(t, 0, r.Start.Col)
	require.Equal(t, 2, r.End.Col)
}

func TestNonASCIIByteIsEOF(t *testing.T) {
	b, err := New(bytes.NewReader([]byte{0xff}))
	require.NoError(t, err)
	require.Equal(t, eof, b.PeekChar())
}

func TestPeekStr(t *testing.T) {
	b, err := New(strings.NewReader("abc\n"))
	require.NoError(t, err)
	b.ReadChar()
	require.Equal(t, "bc\n", b.PeekStr())
}

func TestDumpCaretUnderColumn(t *testing.T) {
	b, err := New(strings.NewReader("let x = 1;\n"))
	require.NoError(t, err)
	var out bytes.Buffer
	b.Dump(b.CurPos(), &out)
	require.Equal(t, "let x = 1;\n^\n", out.String())
}

func TestEmptyInputYieldsOneEmptyLine(t *testing.T) {
	b, err := New(strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, []string{""}, b.Lines())
	require.Equal(t, eof, b.PeekChar())
}
