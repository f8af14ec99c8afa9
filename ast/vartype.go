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

// VarType is the computed type of an expression or the declared type of a
// variable/function return.
type VarType int

const (
	VarNul VarType = iota
	VarVoid
	VarInt
	VarChar
	VarFloat
	VarStr
)

func (t VarType) String() string {
	switch t {
	case VarVoid:
		return "void"
	case VarInt:
		return "int"
	case VarChar:
		return "char"
	case VarFloat:
		return "float"
	case VarStr:
		return "str"
	default:
		return "nul"
	}
}

// MergeVarType implements invariant I2: Float absorbs either side, Void only
// merges with itself (else the merge is Nul, signalling an error upstream),
// and everything else merges to Int.
func MergeVarType(l, r VarType) VarType {
	if l == VarFloat || r == VarFloat {
		return VarFloat
	}
	if l == VarVoid || r == VarVoid {
		if l == VarVoid && r == VarVoid {
			return VarVoid
		}
		return VarNul
	}
	return VarInt
}

// IsValidCastType reports whether t can appear as an explicit-cast target or
// a switch controller type: int, char, or float.
func IsValidCastType(t VarType) bool {
	return t == VarInt || t == VarChar || t == VarFloat
}

// IsVarTypeCastable reports whether a value of type t can be cast, implicitly
// or explicitly, to or from one of int/char/float. Str and Void never
// participate.
func IsVarTypeCastable(t VarType) bool {
	return t == VarInt || t == VarChar || t == VarFloat
}
