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
)

// Accessor performs reads and writes of one slot against targets of one kind.
//
// Accepts reports whether target is of the kind the accessor serves.
// A nil target asks the other methods for the structural answer used by
// generic elements.
// Implementations must be safe for concurrent use; they hold no target.
type Accessor interface {
	Accepts(target any) bool
	CanRead(target any) bool
	CanWrite(target any) bool
	Read(target any) (any, error)
	Write(target any, value any) error
}

// Referencer is implemented by accessors that can hand out an addressable
// reference (a pointer) to the slot of target. ok is false when no
// reference is available and the plain value must be used instead.
type Referencer interface {
	Ref(target any) (ref any, ok bool, err error)
}

// Spec is the immutable description shared by the generic element and every
// element bound from it.
type Spec struct {
	Name          string
	DeclaringType reflect.Type
	Type          reflect.Type
	Annotations   []apis.Annotation
	Accessor      Accessor
}

// New returns the generic element described by spec.
func New(spec Spec) *Generic {
	s := spec
	return &Generic{spec: &s}
}

// Generic is an element known at the type level only. It describes
// structure and can be bound to targets, but has no value.
type Generic struct {
	spec *Spec
}

// Ensure Generic implements apis.Element.
var _ apis.Element = (*Generic)(nil)

// Spec returns the element description.
func (g *Generic) Spec() Spec { return *g.spec }

func (g *Generic) Name() string                   { return g.spec.Name }
func (g *Generic) DeclaringType() reflect.Type    { return g.spec.DeclaringType }
func (g *Generic) Type() reflect.Type             { return g.spec.Type }
func (g *Generic) Annotations() []apis.Annotation { return g.spec.Annotations }
func (g *Generic) Specific() bool                 { return false }
func (g *Generic) Target() any                    { return nil }
func (g *Generic) Readable() bool                 { return g.spec.Accessor.CanRead(nil) }
func (g *Generic) Writable() bool                 { return g.spec.Accessor.CanWrite(nil) }

// Get always fails with ErrNonSpecific.
func (g *Generic) Get() (any, error) {
	return nil, NonSpecific(g.spec.Name, OpGet)
}

// Set always fails with ErrNonSpecific.
func (g *Generic) Set(any) error {
	return NonSpecific(g.spec.Name, OpSet)
}

// Bind returns the element bound to target.
func (g *Generic) Bind(target any) apis.Element {
	return &Bound{spec: g.spec, target: target}
}

// String returns the element name.
func (g *Generic) String() string { return g.spec.Name }

// Bound is an element bound to one target. Value access goes to that target.
type Bound struct {
	spec   *Spec
	target any
}

// Ensure Bound implements apis.Element and apis.Traverser.
var (
	_ apis.Element   = (*Bound)(nil)
	_ apis.Traverser = (*Bound)(nil)
)

// Bind is a shorthand for New(spec).Bind(target).
func Bind(spec Spec, target any) *Bound {
	s := spec
	return &Bound{spec: &s, target: target}
}

// Spec returns the element description.
func (b *Bound) Spec() Spec { return *b.spec }

func (b *Bound) Name() string                   { return b.spec.Name }
func (b *Bound) DeclaringType() reflect.Type    { return b.spec.DeclaringType }
func (b *Bound) Type() reflect.Type             { return b.spec.Type }
func (b *Bound) Annotations() []apis.Annotation { return b.spec.Annotations }
func (b *Bound) Specific() bool                 { return true }
func (b *Bound) Target() any                    { return b.target }
func (b *Bound) Readable() bool                 { return b.target != nil && b.spec.Accessor.CanRead(b.target) }
func (b *Bound) Writable() bool                 { return b.target != nil && b.spec.Accessor.CanWrite(b.target) }

// Get reads the slot from the bound target.
func (b *Bound) Get() (any, error) {
	if b.target != nil && !b.spec.Accessor.Accepts(b.target) {
		return nil, IllegalTarget(b.spec.Name, OpGet, b.target)
	}
	if !b.Readable() {
		return nil, Unreadable(b.spec.Name)
	}
	v, err := b.spec.Accessor.Read(b.target)
	if err != nil {
		return nil, Handling(b.spec.Name, OpGet, err)
	}
	return v, nil
}

// Set writes value into the slot of the bound target.
func (b *Bound) Set(value any) error {
	if b.target != nil && !b.spec.Accessor.Accepts(b.target) {
		return IllegalTarget(b.spec.Name, OpSet, b.target)
	}
	if !b.Writable() {
		return Unwritable(b.spec.Name)
	}
	return Handling(b.spec.Name, OpSet, b.spec.Accessor.Write(b.target, value))
}

// Traverse returns an addressable reference to the slot when the accessor
// can provide one, and the plain value otherwise.
func (b *Bound) Traverse() (any, error) {
	if r, ok := b.spec.Accessor.(Referencer); ok && b.Readable() {
		ref, ok, err := r.Ref(b.target)
		if err != nil {
			return nil, Handling(b.spec.Name, OpGet, err)
		}
		if ok {
			return ref, nil
		}
	}
	return b.Get()
}

// Bind returns the same slot bound to another target.
func (b *Bound) Bind(target any) apis.Element {
	return &Bound{spec: b.spec, target: target}
}

// String returns the element name.
func (b *Bound) String() string { return b.spec.Name }
