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

package predicate

import (
	"reflect"

	"dirpx.dev/elx/apis"
)

// Kind selects types of one of kinds.
func Kind(kinds ...reflect.Kind) apis.TypePredicate {
	return func(t reflect.Type) bool {
		for _, k := range kinds {
			if t.Kind() == k {
				return true
			}
		}
		return false
	}
}

// Is selects exactly t.
func Is(t reflect.Type) apis.TypePredicate {
	return func(u reflect.Type) bool { return u == t }
}

// IsOf selects exactly the type T.
func IsOf[T any]() apis.TypePredicate {
	return Is(reflect.TypeOf((*T)(nil)).Elem())
}

// Implements selects non-interface types implementing the interface iface.
func Implements(iface reflect.Type) apis.TypePredicate {
	return func(t reflect.Type) bool {
		return t.Kind() != reflect.Interface && t.Implements(iface)
	}
}

// ImplementsOf selects non-interface types implementing the interface I.
func ImplementsOf[I any]() apis.TypePredicate {
	return Implements(reflect.TypeOf((*I)(nil)).Elem())
}

// PointerTo selects pointer types whose element type is selected by p.
func PointerTo(p apis.TypePredicate) apis.TypePredicate {
	return func(t reflect.Type) bool {
		return t.Kind() == reflect.Pointer && p(t.Elem())
	}
}

// AnyType selects types selected by at least one p.
func AnyType(ps ...apis.TypePredicate) apis.TypePredicate {
	return func(t reflect.Type) bool {
		for _, p := range ps {
			if p != nil && p(t) {
				return true
			}
		}
		return false
	}
}

// Deref selects types selected by p once up to maxUnwrap pointer levels
// are dereferenced.
func Deref(p apis.TypePredicate, maxUnwrap int) apis.TypePredicate {
	return func(t reflect.Type) bool {
		for i := 0; t.Kind() == reflect.Pointer && i < maxUnwrap; i++ {
			t = t.Elem()
		}
		return p(t)
	}
}
