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

// Package address holds the identifiers the dispatcher routes on: the global
// GID, the node-local Address a GID resolves to, and the FullAddress pairing
// of both.
package address

import (
	"fmt"

	"github.com/tochemey/applier/component"
	"github.com/tochemey/applier/internal/validation"
)

// Locality names a node. The empty Locality means "unknown".
type Locality string

// IsZero reports whether the locality is unknown.
func (l Locality) IsZero() bool {
	return l == ""
}

func (l Locality) String() string {
	return string(l)
}

// Address is what a GID resolves to on the node that owns it. Handle is the
// local object and is only meaningful on that node.
type Address struct {
	Locality Locality
	Handle   any
	Type     component.Type
}

var _ validation.Validator = (*Address)(nil)

// New creates an Address
func New(locality Locality, handle any, componentType component.Type) Address {
	return Address{
		Locality: locality,
		Handle:   handle,
		Type:     componentType,
	}
}

// IsLocal reports whether the address lives on the here locality.
func (a Address) IsLocal(here Locality) bool {
	return !a.Locality.IsZero() && a.Locality == here
}

// Validate checks that the address names a locality and a component type.
func (a *Address) Validate() error {
	return validation.New(validation.AllErrors).
		Add(validation.Required("locality", string(a.Locality))).
		Assert(a.Type.IsValid(), "the [type] is invalid").
		Validate()
}

func (a Address) String() string {
	return fmt.Sprintf("%s#%s", a.Locality, a.Type)
}
