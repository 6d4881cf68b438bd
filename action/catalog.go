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

package action

import (
	"github.com/tochemey/applier/errors"
	"github.com/tochemey/applier/internal/xsync"
)

// Catalog maps definition names to definitions so a receiving node can
// rebuild an action from its name.
type Catalog struct {
	definitions *xsync.Map[string, Definition]
}

// NewCatalog creates a catalog holding defs. It panics when two of them
// share a name.
func NewCatalog(defs ...Definition) *Catalog {
	catalog := &Catalog{definitions: xsync.NewMap[string, Definition]()}
	if err := catalog.Register(defs...); err != nil {
		panic(err)
	}
	return catalog
}

// Register adds defs to the catalog.
func (c *Catalog) Register(defs ...Definition) error {
	for _, def := range defs {
		if def == nil {
			return errors.ErrUndefinedAction
		}
		if _, stored := c.definitions.SetIfAbsent(def.Name(), def); !stored {
			return errors.NewErrActionAlreadyRegistered(def.Name())
		}
	}
	return nil
}

// Lookup returns the definition registered under name.
func (c *Catalog) Lookup(name string) (Definition, error) {
	def, ok := c.definitions.Get(name)
	if !ok {
		return nil, errors.NewErrActionNotFound(name)
	}
	return def, nil
}

// Len returns the number of definitions
func (c *Catalog) Len() int {
	return c.definitions.Len()
}
