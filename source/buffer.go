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

// Package source holds the input split into lines and exposes positioned
// character read/peek/unread, the way a hand-written scanner wants it.
package source

import (
	"bufio"
	"io"
	"strings"

	"github.com/kibaamor/c0-parser/token"
)

// eof is returned by peek/read once the buffer is exhausted, or once a
// non-ASCII byte (top bit set) is encountered — the specification treats
// both the same way.
const eof = -1

// Buffer reads an io.Reader fully into lines (each line keeps its trailing
// '\n'), then hands out one byte at a time with position tracking.
type Buffer struct {
	lines []string
	row   int
	col   int

	pushedRow, pushedCol int
}

// New reads r fully and returns a Buffer positioned at (0, 0).
func New(r io.Reader) (*Buffer, error) {
	var lines []string
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if len(line) > 0 {
			lines = append(lines, line)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Buffer{lines: lines}, nil
}

// Lines returns the stored lines, trailing newlines included. Callers (the
// analyser's error path) use this to re-attach a source line to an error
// after the buffer itself has been consumed.
func (b *Buffer) Lines() []string { return b.lines }

func (b *Buffer) curLine() string {
	if b.row >= len(b.lines) {
		return ""
	}
	return b.lines[b.row]
}

// PeekChar returns the byte at the current position without advancing, or
// eof at end of input. A byte with the top bit set is non-ASCII; the
// specification requires treating it as end-of-input.
func (b *Buffer) PeekChar() int {
	line := b.curLine()
	if b.col >= len(line) {
		return eof
	}
	c := line[b.col]
	if c&0x80 != 0 {
		return eof
	}
	return int(c)
}

// ReadChar returns the current byte and advances by one, crossing into the
// next line when the column reaches the current line's length.
func (b *Buffer) ReadChar() int {
	c := b.PeekChar()
	if c == eof {
		return eof
	}
	line := b.curLine()
	b.col++
	if b.col >= len(line) {
		b.row++
		b.col = 0
	}
	return c
}

// UnreadChar rewinds by exactly one character. Only ever called right after
// a ReadChar, so it never needs to cross more than one line boundary.
func (b *Buffer) UnreadChar() {
	if b.col == 0 {
		if b.row == 0 {
			return
		}
		b.row--
		b.col = len(b.curLine())
	}
	b.col--
}

// PeekStr returns the remainder of the current line starting at the current
// column, for lookahead that does not need to consume (e.g. line-comment
// scanning).
func (b *Buffer) PeekStr() string {
	line := b.curLine()
	if b.col >= len(line) {
		return ""
	}
	return line[b.col:]
}

// CurPos returns the current position.
func (b *Buffer) CurPos() token.Pos { return token.Pos{Row: b.row, Col: b.col} }

// PushPos remembers the current position so a later PopPos can compute the
// range spanned since.
func (b *Buffer) PushPos() {
	b.pushedRow, b.pushedCol = b.row, b.col
}

// PopPos returns the range from the last PushPos to the current position.
func (b *Buffer) PopPos() token.Range {
	return token.Range{
		Start: token.Pos{Row: b.pushedRow, Col: b.pushedCol},
		End:   b.CurPos(),
	}
}

// Dump annotates position p with a caret under the offending column in its
// source line, the way diagnostics are rendered. It writes "invalid ... row
// position" / "invalid ... column position" if p falls outside the stored
// lines, matching the tokenizer's own defensive behaviour.
func (b *Buffer) Dump(p token.Pos, w io.Writer) {
	if p.Row < 0 || p.Row >= len(b.lines) {
		io.WriteString(w, "invalid row position\n")
		return
	}
	line := b.lines[p.Row]
	if p.Col < 0 || p.Col > len(line) {
		io.WriteString(w, "invalid column position\n")
		return
	}
	io.WriteString(w, strings.TrimRight(line, "\n")+"\n")
	io.WriteString(w, strings.Repeat(" ", p.Col)+"^\n")
}
