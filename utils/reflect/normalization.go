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

package reflect

import (
	"errors"
	"reflect"
)

var (
	// ErrReflectNilType is returned when a nil reflect.Type is provided.
	ErrReflectNilType = errors.New("reflect: nil reflect.Type provided")
	// ErrReflectTooDeep indicates that a type still is a pointer after
	// MaxUnwrap dereferences.
	ErrReflectTooDeep = errors.New("reflect: pointer chain exceeds unwrap limit")
)

// typeType is the dynamic type of reflect.Type values.
var typeType = reflect.TypeOf((*reflect.Type)(nil)).Elem()

// TargetType returns the type a target stands for: the target itself when it
// is a reflect.Type (generic lookup), its dynamic type otherwise.
// A nil target yields nil.
func TargetType(target any) (t reflect.Type, generic bool) {
	if target == nil {
		return nil, false
	}
	if rt, ok := target.(reflect.Type); ok {
		return rt, true
	}
	return reflect.TypeOf(target), false
}

// IsType reports whether target is a reflect.Type.
func IsType(target any) bool {
	_, ok := target.(reflect.Type)
	return ok
}

// Indirect dereferences pointer types, at most maxUnwrap times.
//
// It returns ErrReflectTooDeep when the result still is a pointer.
func Indirect(t reflect.Type, maxUnwrap int) (reflect.Type, error) {
	if t == nil {
		return nil, ErrReflectNilType
	}
	for i := 0; i < maxUnwrap && t.Kind() == reflect.Pointer; i++ {
		t = t.Elem()
	}
	if t.Kind() == reflect.Pointer {
		return nil, ErrReflectTooDeep
	}
	return t, nil
}

// IndirectValue dereferences pointer values until a value of type want is
// reached. The second result is false for nil pointers, mismatched types or
// chains deeper than maxUnwrap.
func IndirectValue(v reflect.Value, want reflect.Type, maxUnwrap int) (reflect.Value, bool) {
	for i := 0; v.IsValid() && v.Type() != want; i++ {
		if i >= maxUnwrap || v.Kind() != reflect.Pointer || v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

// IsNil reports whether v is nil or a typed nil (pointer, map, slice,
// interface, func or chan).
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
