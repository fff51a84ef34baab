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

package apis

import "reflect"

// Element is a named, typed slot on a target: a struct property, a map entry,
// a slice or array index, an annotation attribute, a row column, a call
// argument, or a dotted path of those.
//
// An Element is either generic (resolved against a reflect.Type, describing
// structure only) or specific (bound to one target value). Only specific
// elements can be read or written.
type Element interface {
	// Name returns the element name. It never changes after construction.
	Name() string
	// DeclaringType returns the type that owns the slot definition.
	DeclaringType() reflect.Type
	// Type returns the static type of the slot value.
	Type() reflect.Type
	// Annotations returns the metadata attached to the slot, if any.
	Annotations() []Annotation

	// Specific reports whether the element is bound to a target.
	Specific() bool
	// Target returns the bound target, or nil for generic elements.
	Target() any

	// Readable reports whether Get can succeed. For generic elements the
	// answer is structural.
	Readable() bool
	// Writable reports whether Set can succeed. For generic elements the
	// answer is structural.
	Writable() bool

	// Get reads the slot value from the bound target.
	Get() (any, error)
	// Set writes value into the slot of the bound target.
	Set(value any) error

	// Bind returns a specific element addressing the same slot on target.
	// The receiver is left untouched.
	Bind(target any) Element
}

// Traverser is implemented by elements that can hand out an addressable
// reference to their value, so that writes through a path of elements reach
// the root target instead of a copy.
type Traverser interface {
	// Traverse returns a reference to the value when one is available,
	// and the plain value otherwise.
	Traverse() (any, error)
}
