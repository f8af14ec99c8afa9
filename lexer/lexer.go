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

// Package lexer is the hand-written C0 tokenizer: a rune-at-a-time scanner
// over a source.Buffer producing a positioned token.Token stream.
package lexer

import (
	"io"
	"strconv"
	"strings"

	"github.com/kibaamor/c0-parser/source"
	"github.com/kibaamor/c0-parser/token"
)

const eof = -1

// Lexer scans one token.Token at a time from a source.Buffer.
type Lexer struct {
	buf *source.Buffer
}

// New wraps r in a source.Buffer and returns a ready-to-use Lexer.
func New(r io.Reader) (*Lexer, error) {
	buf, err := source.New(r)
	if err != nil {
		return nil, err
	}
	return &Lexer{buf: buf}, nil
}

// Lines returns the original source lines, for later error annotation.
func (l *Lexer) Lines() []string { return l.buf.Lines() }

// Dump annotates position p with a caret in its source line.
func (l *Lexer) Dump(p token.Pos, w io.Writer) { l.buf.Dump(p, w) }

func isDigit(c int) bool  { return c >= '0' && c <= '9' }
func isAlpha(c int) bool  { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isSpace(c int) bool  { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isHexDigit(c int) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func (l *Lexer) errAt(msg string) token.Token {
	r := l.buf.PopPos()
	return token.Token{Kind: token.ERR, Range: r, Str: msg}
}

func (l *Lexer) skipWhitespaceAndComments() token.Token {
	for {
		for isSpace(l.buf.PeekChar()) {
			l.buf.ReadChar()
		}
		if l.buf.PeekChar() == '/' {
			rest := l.buf.PeekStr()
			if strings.HasPrefix(rest, "//") {
				for l.buf.PeekChar() != eof && l.buf.PeekChar() != '\n' {
					l.buf.ReadChar()
				}
				continue
			}
			if strings.HasPrefix(rest, "/*") {
				l.buf.ReadChar()
				l.buf.ReadChar()
				closed := false
				for l.buf.PeekChar() != eof {
					if l.buf.PeekChar() == '*' && strings.HasPrefix(l.buf.PeekStr(), "*/") {
						l.buf.ReadChar()
						l.buf.ReadChar()
						closed = true
						break
					}
					l.buf.ReadChar()
				}
				_ = closed
				continue
			}
		}
		return token.Token{}
	}
}

// Next returns the next non-whitespace token, or a Nul token at end of
// input. Returning an Err token stops further scanning; callers must not
// call Next again afterwards.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	l.buf.PushPos()
	c := l.buf.PeekChar()
	if c == eof {
		return token.Token{Kind: token.NUL, Range: l.buf.PopPos()}
	}

	switch {
	case isDigit(c) || (c == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber()
	case isAlpha(c):
		return l.scanIdent()
	case c == '\'':
		return l.scanChar()
	case c == '"':
		return l.scanStr()
	}

	switch c {
	case '<':
		l.buf.ReadChar()
		if l.buf.PeekChar() == '=' {
			l.buf.ReadChar()
			return token.Token{Kind: token.O_LESSEQUAL, Range: l.buf.PopPos(), Str: "<="}
		}
		return token.Token{Kind: token.O_LESS, Range: l.buf.PopPos(), Str: "<"}
	case '>':
		l.buf.ReadChar()
		if l.buf.PeekChar() == '=' {
			l.buf.ReadChar()
			return token.Token{Kind: token.O_GREATEREQUAL, Range: l.buf.PopPos(), Str: ">="}
		}
		return token.Token{Kind: token.O_GREATER, Range: l.buf.PopPos(), Str: ">"}
	case '=':
		l.buf.ReadChar()
		if l.buf.PeekChar() == '=' {
			l.buf.ReadChar()
			return token.Token{Kind: token.O_EQUAL, Range: l.buf.PopPos(), Str: "=="}
		}
		return token.Token{Kind: token.S_ASSIGN, Range: l.buf.PopPos(), Str: "="}
	case '!':
		l.buf.ReadChar()
		if l.buf.PeekChar() == '=' {
			l.buf.ReadChar()
			return token.Token{Kind: token.O_NOTEQUAL, Range: l.buf.PopPos(), Str: "!="}
		}
		return token.Token{Kind: token.S_EXCLAMATION, Range: l.buf.PopPos(), Str: "!"}
	case '/':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_DIV, Range: l.buf.PopPos(), Str: "/"}
	case '(':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_LPAREN, Range: l.buf.PopPos(), Str: "("}
	case ')':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_RPAREN, Range: l.buf.PopPos(), Str: ")"}
	case '{':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_LBRACE, Range: l.buf.PopPos(), Str: "{"}
	case '}':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_RBRACE, Range: l.buf.PopPos(), Str: "}"}
	case ',':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_COMMA, Range: l.buf.PopPos(), Str: ","}
	case ':':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_COLON, Range: l.buf.PopPos(), Str: ":"}
	case ';':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_SEMICOLON, Range: l.buf.PopPos(), Str: ";"}
	case '+':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_PLUS, Range: l.buf.PopPos(), Str: "+"}
	case '-':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_MINUS, Range: l.buf.PopPos(), Str: "-"}
	case '*':
		l.buf.ReadChar()
		return token.Token{Kind: token.S_MUL, Range: l.buf.PopPos(), Str: "*"}
	}

	l.buf.ReadChar()
	return l.errAt("invalid char")
}

// All drains Next() until Nul, keeping an Err (if any) as the last element.
func (l *Lexer) All() []token.Token {
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.IsNul() || t.IsErr() {
			break
		}
	}
	return toks
}

// peekAt peeks n characters ahead without consuming. Used for the lookahead
// that decides whether a leading '.' starts a numeric literal and whether a
// leading '0' starts a hex prefix; n is always small (1).
func (l *Lexer) peekAt(n int) int {
	rest := l.buf.PeekStr()
	if n < len(rest) {
		return int(rest[n])
	}
	return eof
}

func (l *Lexer) scanIdent() token.Token {
	var sb strings.Builder
	for isAlpha(l.buf.PeekChar()) || isDigit(l.buf.PeekChar()) {
		sb.WriteByte(byte(l.buf.ReadChar()))
	}
	name := sb.String()
	if kind, ok := token.Keywords[name]; ok {
		return token.Token{Kind: kind, Range: l.buf.PopPos(), Str: name}
	}
	return token.Token{Kind: token.IDENT, Range: l.buf.PopPos(), Str: name}
}

// scanNumber implements §4.2 rule 1: probe forward for a decimal point to
// decide integer vs float, ban C-style octal, and require a valid
// terminator after the literal.
func (l *Lexer) scanNumber() token.Token {
	var sb strings.Builder
	isFloat := false
	isHex := false

	if l.buf.PeekChar() == '0' && (l.peekAt(1) == 'x' || l.peekAt(1) == 'X') {
		isHex = true
		sb.WriteByte(byte(l.buf.ReadChar()))
		sb.WriteByte(byte(l.buf.ReadChar()))
		for isHexDigit(l.buf.PeekChar()) {
			sb.WriteByte(byte(l.buf.ReadChar()))
		}
	} else {
		for isDigit(l.buf.PeekChar()) {
			sb.WriteByte(byte(l.buf.ReadChar()))
		}
		if l.buf.PeekChar() == '.' {
			isFloat = true
			sb.WriteByte(byte(l.buf.ReadChar()))
			for isDigit(l.buf.PeekChar()) {
				sb.WriteByte(byte(l.buf.ReadChar()))
			}
			if l.buf.PeekChar() == 'e' || l.buf.PeekChar() == 'E' {
				sb.WriteByte(byte(l.buf.ReadChar()))
				if l.buf.PeekChar() == '+' || l.buf.PeekChar() == '-' {
					sb.WriteByte(byte(l.buf.ReadChar()))
				}
				for isDigit(l.buf.PeekChar()) {
					sb.WriteByte(byte(l.buf.ReadChar()))
				}
			}
		}
	}

	lexeme := sb.String()

	if !isFloat && !isHex && len(lexeme) > 1 && lexeme[0] == '0' && isDigit(int(lexeme[1])) {
		return l.errAt("octal based literal is banned")
	}

	if term := l.buf.PeekChar(); term != eof && !isSpace(term) &&
		term != ';' && term != ',' && term != ')' && term != ':' {
		return l.errAt("invalid floating/integer literal")
	}

	if isFloat {
		v, err := strconv.ParseFloat(lexeme, 64)
		if err != nil {
			return l.errAt("invalid floating/integer literal")
		}
		return token.Token{Kind: token.FLOAT, Range: l.buf.PopPos(), Float: v}
	}

	base := 10
	s := lexeme
	if isHex {
		base = 16
		s = lexeme[2:]
	}
	v, err := strconv.ParseUint(s, base, 32)
	if err != nil {
		return l.errAt("invalid floating/integer literal")
	}
	return token.Token{Kind: token.INT, Range: l.buf.PopPos(), Int: int32(v)}
}

// scanByte implements the §4.2 byte rule shared by char and string literals:
// an ordinary printable ASCII byte, or a backslash escape.
func (l *Lexer) scanByte() (byte, bool) {
	c := l.buf.ReadChar()
	if c == eof {
		return 0, false
	}
	if c != '\\' {
		if c < 0x20 || c > 0x7e {
			return 0, false
		}
		return byte(c), true
	}
	e := l.buf.ReadChar()
	switch e {
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'x':
		h1, h2 := l.buf.ReadChar(), l.buf.ReadChar()
		if !isHexDigit(h1) || !isHexDigit(h2) {
			return 0, false
		}
		v, err := strconv.ParseUint(string([]byte{byte(h1), byte(h2)}), 16, 8)
		if err != nil {
			return 0, false
		}
		return byte(v), true
	default:
		return 0, false
	}
}

func (l *Lexer) scanChar() token.Token {
	l.buf.ReadChar() // opening '
	b, ok := l.scanByte()
	if !ok {
		return l.errAt("invalid char literal")
	}
	if l.buf.PeekChar() != '\'' {
		return l.errAt("unterminated char literal")
	}
	l.buf.ReadChar() // closing '
	return token.Token{Kind: token.CHAR, Range: l.buf.PopPos(), Char: b}
}

func (l *Lexer) scanStr() token.Token {
	l.buf.ReadChar() // opening "
	var sb strings.Builder
	for l.buf.PeekChar() != '"' {
		if l.buf.PeekChar() == eof {
			return l.errAt("unterminated string literal")
		}
		b, ok := l.scanByte()
		if !ok {
			return l.errAt("invalid string literal")
		}
		sb.WriteByte(b)
	}
	l.buf.ReadChar() // closing "
	return token.Token{Kind: token.STR, Range: l.buf.PopPos(), Str: sb.String()}
}
