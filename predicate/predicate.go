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

// Package predicate holds the element predicates used by selectors and
// copiers, and the type predicates used to register finders.
package predicate

import (
	"reflect"

	"dirpx.dev/elx/apis"
	uref "dirpx.dev/elx/utils/reflect"
)

// Predicate selects elements.
type Predicate func(el apis.Element) bool

// Any accepts every element.
func Any() Predicate {
	return func(apis.Element) bool { return true }
}

// Named accepts elements called one of names.
func Named(names ...string) Predicate {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return func(el apis.Element) bool {
		_, ok := set[el.Name()]
		return ok
	}
}

// OfType accepts elements whose type is exactly t.
func OfType(t reflect.Type) Predicate {
	return func(el apis.Element) bool { return el.Type() == t }
}

// AssignableTo accepts elements whose values can be stored in a slot of
// type t, numeric widening included.
func AssignableTo(t reflect.Type) Predicate {
	return func(el apis.Element) bool { return uref.Assignable(el.Type(), t) }
}

// Readable accepts readable elements.
func Readable() Predicate {
	return func(el apis.Element) bool { return el.Readable() }
}

// Writable accepts writable elements.
func Writable() Predicate {
	return func(el apis.Element) bool { return el.Writable() }
}

// Specific accepts elements bound to a target.
func Specific() Predicate {
	return func(el apis.Element) bool { return el.Specific() }
}

// Annotated accepts elements carrying an annotation of type A.
func Annotated[A apis.Annotation]() Predicate {
	return func(el apis.Element) bool {
		for _, a := range el.Annotations() {
			if _, ok := a.(A); ok {
				return true
			}
		}
		return false
	}
}

// AnnotatedBy accepts elements carrying an annotation called name.
func AnnotatedBy(name string) Predicate {
	return func(el apis.Element) bool {
		for _, a := range el.Annotations() {
			if a.AnnotationName() == name {
				return true
			}
		}
		return false
	}
}

// And accepts elements accepted by every p. Nil predicates are ignored.
func And(ps ...Predicate) Predicate {
	ps = compact(ps)
	return func(el apis.Element) bool {
		for _, p := range ps {
			if !p(el) {
				return false
			}
		}
		return true
	}
}

// Or accepts elements accepted by at least one p. Nil predicates are
// ignored.
func Or(ps ...Predicate) Predicate {
	ps = compact(ps)
	return func(el apis.Element) bool {
		for _, p := range ps {
			if p(el) {
				return true
			}
		}
		return false
	}
}

// Not negates p.
func Not(p Predicate) Predicate {
	return func(el apis.Element) bool { return !p(el) }
}

func compact(ps []Predicate) []Predicate {
	out := make([]Predicate, 0, len(ps))
	for _, p := range ps {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
