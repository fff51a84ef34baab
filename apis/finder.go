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

// Finder knows how to enumerate and construct elements for one kind of
// target. A Dispatcher routes each target to the first Finder whose
// TypePredicate accepts the target's type.
//
// When target is a reflect.Type the Finder returns generic elements that
// describe structure only; otherwise it returns elements bound to target.
type Finder interface {
	// Find returns the element called name. A missing element is reported
	// as (nil, false, nil); errors are reserved for failures of the target
	// itself (e.g. unreadable row metadata).
	Find(name string, target any) (el Element, ok bool, err error)

	// FindAll returns every element the target exposes, in a stable order.
	FindAll(target any) ([]Element, error)
}

// TypePredicate selects the target types a Finder is responsible for.
type TypePredicate func(t reflect.Type) bool

// Resolver resolves elements for any target, dispatching to the Finder
// registered for the target's type and handling dotted paths.
type Resolver interface {
	// Find returns the element called name on target. Names containing the
	// configured separator are resolved as nested paths.
	Find(name string, target any) (el Element, ok bool, err error)

	// FindAll returns every element of target.
	FindAll(target any) ([]Element, error)
}
