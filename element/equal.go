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

// Equal reports whether a and b address the same slot. Generic elements are
// equal when name and declaring type match; specific elements must also be
// bound to the same target.
func Equal(a, b apis.Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Name() != b.Name() || a.DeclaringType() != b.DeclaringType() {
		return false
	}
	if a.Specific() != b.Specific() {
		return false
	}
	if !a.Specific() {
		return true
	}
	return SameTarget(a.Target(), b.Target())
}

// SameTarget compares targets: by identity for reference kinds, by value for
// comparable values and deeply otherwise.
func SameTarget(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len()
	}
	if va.Comparable() {
		return va.Equal(vb)
	}
	return reflect.DeepEqual(a, b)
}
