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

// Package resolver answers where a GID lives. The dispatcher asks it once per
// apply and routes locally or remotely from the answer.
package resolver

import (
	"github.com/tochemey/applier/address"
)

// Resolver maps a GID to an Address. Both methods must be non-blocking and
// safe for concurrent use.
type Resolver interface {
	// Resolve reports whether gid lives on this node and returns its address.
	// When it does not, the address carries whatever routing hints are known
	// and TypeInvalid when nothing is.
	Resolve(gid address.GID) (bool, address.Address)
	// ResolveFull fills fa when it is unresolved and reports whether it is local.
	ResolveFull(fa *address.FullAddress) bool
}
