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

package address

import (
	"github.com/google/uuid"
)

// GID is a global identifier naming an object independently of where it
// lives. GIDs are comparable and may be used as map keys.
type GID uuid.UUID

// InvalidGID is the zero GID. It names nothing.
var InvalidGID = GID(uuid.Nil)

// NewGID returns a fresh random GID.
func NewGID() GID {
	return GID(uuid.New())
}

// ParseGID decodes the textual form of a GID.
func ParseGID(s string) (GID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return InvalidGID, err
	}
	return GID(id), nil
}

// GIDFromBytes decodes the 16-byte binary form of a GID.
func GIDFromBytes(b []byte) (GID, error) {
	id, err := uuid.FromBytes(b)
	if err != nil {
		return InvalidGID, err
	}
	return GID(id), nil
}

// IsValid reports whether g is not the zero GID.
func (g GID) IsValid() bool {
	return g != InvalidGID
}

// Bytes returns the binary form of g.
func (g GID) Bytes() []byte {
	id := uuid.UUID(g)
	return id[:]
}

func (g GID) String() string {
	return uuid.UUID(g).String()
}
