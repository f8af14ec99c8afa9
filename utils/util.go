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

// Package utils holds small assertion helpers used by the analyser to guard
// internal invariants. Neither is part of the public contract; both exist to
// fail loudly on a bug (a corrupt scope stack, a symbol table entry of a kind
// that should be impossible) rather than silently returning a wrong answer.
package utils

import "fmt"

// Assert panics with a formatted message when cond is false. Used for
// internal invariants, never for validating untrusted input.
func Assert(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// ShouldNotReachHere marks a switch arm that is exhaustive by construction;
// reaching it means an invariant the caller relies on no longer holds.
func ShouldNotReachHere() {
	panic("should not reach here")
}
