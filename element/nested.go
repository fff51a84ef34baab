/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package element

import (
	"reflect"

	"dirpx.dev/elx/apis"
	uref "dirpx.dev/elx/utils/reflect"
)

// Nested is a compound element made of single-hop elements resolved along a
// dotted path. Its type, declaring type and annotations are those of the
// last hop.
//
// Hops are rebound to the running value on every access, so a Nested
// element always reads and writes the live object graph of its root.
type Nested struct {
	name string
	root any
	hops []apis.Element
}

// Ensure Nested implements apis.Element.
var _ apis.Element = (*Nested)(nil)

// NewNested returns the element for path name on root made of hops.
// It panics when hops is empty.
func NewNested(name string, root any, hops []apis.Element) *Nested {
	if len(hops) == 0 {
		panic("elx(element): nested element without hops")
	}
	return &Nested{name: name, root: root, hops: append([]apis.Element(nil), hops...)}
}

// Hops returns the single-hop elements of the path.
func (n *Nested) Hops() []apis.Element {
	return append([]apis.Element(nil), n.hops...)
}

func (n *Nested) last() apis.Element { return n.hops[len(n.hops)-1] }

func (n *Nested) Name() string                   { return n.name }
func (n *Nested) DeclaringType() reflect.Type    { return n.last().DeclaringType() }
func (n *Nested) Type() reflect.Type             { return n.last().Type() }
func (n *Nested) Annotations() []apis.Annotation { return n.last().Annotations() }
func (n *Nested) Specific() bool                 { return n.root != nil && !uref.IsType(n.root) }

// Target returns the root target of the path, or nil for generic paths.
func (n *Nested) Target() any {
	if !n.Specific() {
		return nil
	}
	return n.root
}

// Readable reports whether every hop is readable.
func (n *Nested) Readable() bool {
	for _, h := range n.hops {
		if !h.Readable() {
			return false
		}
	}
	return true
}

// Writable reports whether every hop but the last is readable and the last
// one is writable.
func (n *Nested) Writable() bool {
	for _, h := range n.hops[:len(n.hops)-1] {
		if !h.Readable() {
			return false
		}
	}
	return n.last().Writable()
}

// Get walks the path from the root and returns the value of the last hop.
func (n *Nested) Get() (any, error) {
	if !n.Specific() {
		return nil, NonSpecific(n.name, OpGet)
	}
	cur, err := n.container(OpGet)
	if err != nil {
		return nil, err
	}
	return n.last().Bind(cur).Get()
}

// Set walks the path up to the last hop and writes value through it.
func (n *Nested) Set(value any) error {
	if !n.Specific() {
		return NonSpecific(n.name, OpSet)
	}
	cur, err := n.container(OpSet)
	if err != nil {
		return err
	}
	return n.last().Bind(cur).Set(value)
}

// container returns the object holding the last hop.
func (n *Nested) container(op Op) (any, error) {
	cur := n.root
	for _, h := range n.hops[:len(n.hops)-1] {
		v, err := traverse(h.Bind(cur))
		if err != nil {
			return nil, err
		}
		if uref.IsNil(v) {
			return nil, &AccessError{Element: n.name, Op: op, Kind: ErrHandling, Err: ErrNilPath}
		}
		cur = v
	}
	return cur, nil
}

// Bind returns the same path rooted at target.
func (n *Nested) Bind(target any) apis.Element {
	return &Nested{name: n.name, root: target, hops: n.hops}
}

// String returns the dotted path.
func (n *Nested) String() string { return n.name }

// Traverse returns the value of el, by reference when el supports it.
func Traverse(el apis.Element) (any, error) {
	return traverse(el)
}

func traverse(el apis.Element) (any, error) {
	if t, ok := el.(apis.Traverser); ok {
		return t.Traverse()
	}
	return el.Get()
}
