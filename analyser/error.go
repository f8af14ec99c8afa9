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
	"fmt"
	"strings"

	"github.com/kibaamor/c0-parser/token"
)

// Error is the single explicit error value produced by analysis. It never
// aborts the process (§7 forbids that); callers receive it as an ordinary
// Go error and decide what to do.
//
// This is a deliberate departure from the donor parser this package was
// grown from, which reports syntax errors by printing to stderr and calling
// os.Exit. Explicit error returns are the contract the specification
// requires, so every analyser method threads one back instead.
type Error struct {
	Message string
	Token   token.Token
	Source  string // filled in by WithSource once the tokenizer's lines are available
}

func newError(tok token.Token, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Token: tok}
}

// WithSource returns a copy of e with Source set to the line the error's
// token starts on, annotated with a caret under the starting column. This
// mirrors AnalyseError::FixSource: tokenization has already consumed the
// lines by the time an error is reported, so the driver re-attaches the
// right line after the fact rather than threading the source buffer through
// every analyser method.
func (e *Error) WithSource(lines []string) *Error {
	row := e.Token.Range.Start.Row
	col := e.Token.Range.Start.Col
	if row < 0 || row >= len(lines) {
		return e
	}
	line := strings.TrimRight(lines[row], "\n")
	caret := strings.Repeat(" ", col) + "^"
	cp := *e
	cp.Source = line + "\n" + caret
	return &cp
}

// Error implements the standard error interface, formatting per §6.3:
// "error: <message>. <token-dump>\n<source-line>\n<spaces><^>".
func (e *Error) Error() string {
	s := fmt.Sprintf("error: %s. %s", e.Message, e.Token)
	if e.Source != "" {
		s += "\n" + e.Source
	}
	return s
}
