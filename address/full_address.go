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
	"sync"

	"github.com/tochemey/applier/component"
)

// FullAddress pairs a GID with its Address so a caller that already resolved
// it can skip another resolution. An unresolved FullAddress carries only the
// GID until a resolver fills it. A FullAddress may be shared between
// goroutines applying actions concurrently.
type FullAddress struct {
	gid GID

	mu       sync.RWMutex
	addr     Address
	resolved bool
}

// NewFullAddress creates a resolved FullAddress.
func NewFullAddress(gid GID, addr Address) *FullAddress {
	return &FullAddress{
		gid:      gid,
		addr:     addr,
		resolved: true,
	}
}

// FullAddressOf creates an unresolved FullAddress for gid.
func FullAddressOf(gid GID) *FullAddress {
	return &FullAddress{gid: gid}
}

// GID returns the identifier
func (f *FullAddress) GID() GID {
	if f == nil {
		return InvalidGID
	}
	return f.gid
}

// Address returns the paired address. It is the zero Address until the
// FullAddress is resolved.
func (f *FullAddress) Address() Address {
	addr, _ := f.Load()
	return addr
}

// Load returns the paired address and whether it is resolved, read together.
func (f *FullAddress) Load() (Address, bool) {
	if f == nil {
		return Address{}, false
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.addr, f.resolved
}

// IsResolved reports whether the address part is filled.
func (f *FullAddress) IsResolved() bool {
	_, resolved := f.Load()
	return resolved
}

// IsLocal reports whether the FullAddress is resolved and lives on here.
func (f *FullAddress) IsLocal(here Locality) bool {
	addr, resolved := f.Load()
	return resolved && addr.IsLocal(here)
}

// SetAddress fills the address part and marks f resolved.
func (f *FullAddress) SetAddress(addr Address) {
	f.mu.Lock()
	f.addr = addr
	f.resolved = true
	f.mu.Unlock()
}

// FillType sets the component type of a resolved address that has none.
// It reports whether the type was set.
func (f *FullAddress) FillType(componentType component.Type) bool {
	if f == nil || !componentType.IsValid() {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.resolved || f.addr.Type.IsValid() {
		return false
	}
	f.addr.Type = componentType
	return true
}

// Clone returns an independent copy of f.
func (f *FullAddress) Clone() *FullAddress {
	if f == nil {
		return nil
	}
	addr, resolved := f.Load()
	return &FullAddress{
		gid:      f.gid,
		addr:     addr,
		resolved: resolved,
	}
}

func (f *FullAddress) String() string {
	addr, resolved := f.Load()
	if !resolved {
		return f.GID().String()
	}
	return f.gid.String() + "@" + addr.String()
}
