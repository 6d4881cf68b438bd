// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package component assigns component-type tags to Go types and answers the
// compatibility question the dispatcher asks before running an action.
//
// A Type packs a base type in its low 16 bits and a derived variant in its
// high 16 bits. A derived type is compatible with its base in both
// directions; two distinct variants of the same base are not.
package component

import "strconv"

// Type is the component-type tag attached to an address.
type Type uint32

// TypeInvalid marks an unknown or unset component type. It is compatible
// with nothing, itself included.
const TypeInvalid Type = 0

const (
	baseMask     = 0xFFFF
	derivedShift = 16
)

// NewDerived builds the tag for the given variant of base.
func NewDerived(base Type, variant uint16) Type {
	return Type(uint32(variant)<<derivedShift) | base.Base()
}

// Base returns the base type of t. A base type is its own base.
func (t Type) Base() Type {
	return t & baseMask
}

// IsDerived reports whether t is a variant of another type.
func (t Type) IsDerived() bool {
	return t>>derivedShift != 0
}

// IsValid reports whether t is a usable tag.
func (t Type) IsValid() bool {
	return t.Base() != TypeInvalid
}

func (t Type) String() string {
	if !t.IsValid() {
		return "invalid"
	}
	base := strconv.FormatUint(uint64(t.Base()), 10)
	if !t.IsDerived() {
		return base
	}
	return base + "/" + strconv.FormatUint(uint64(t>>derivedShift), 10)
}

// Compatible reports whether an action declared for one type may run against
// an object of the other.
func Compatible(a, b Type) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}
	return a == b || a.Base() == b || b.Base() == a
}
