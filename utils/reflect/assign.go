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
	"fmt"
	"reflect"
)

// ErrReflectNotAssignable is returned by Coerce when a value cannot be stored
// in a slot of the requested type.
var ErrReflectNotAssignable = errors.New("reflect: value not assignable")

// Nillable reports whether the zero value of t is nil.
func Nillable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return true
	default:
		return false
	}
}

// Assignable reports whether a value of type from can be stored in a slot of
// type to. A nil from stands for an untyped nil. Beyond Go assignability,
// lossless-by-convention numeric widening is accepted: signed and unsigned
// integers to wider integers, any integer to floating point, float32 to
// float64.
func Assignable(from, to reflect.Type) bool {
	if to == nil {
		return false
	}
	if from == nil {
		return Nillable(to)
	}
	if from.AssignableTo(to) {
		return true
	}
	return widens(from, to)
}

// Coerce converts v into a reflect.Value of type to, following Assignable.
// A nil v yields the zero value of nillable types.
func Coerce(v any, to reflect.Type) (reflect.Value, error) {
	if v == nil {
		if to != nil && Nillable(to) {
			return reflect.Zero(to), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil to %v", ErrReflectNotAssignable, to)
	}
	rv := reflect.ValueOf(v)
	switch {
	case rv.Type().AssignableTo(to):
		out := reflect.New(to).Elem()
		out.Set(rv)
		return out, nil
	case widens(rv.Type(), to):
		return rv.Convert(to), nil
	default:
		return reflect.Value{}, fmt.Errorf("%w: %v to %v", ErrReflectNotAssignable, rv.Type(), to)
	}
}

func widens(from, to reflect.Type) bool {
	fk, tk := from.Kind(), to.Kind()
	switch {
	case isInt(fk) && isInt(tk):
		return to.Bits() >= from.Bits()
	case isUint(fk) && isUint(tk):
		return to.Bits() >= from.Bits()
	case isUint(fk) && isInt(tk):
		return to.Bits() > from.Bits()
	case (isInt(fk) || isUint(fk)) && isFloat(tk):
		return true
	case isFloat(fk) && isFloat(tk):
		return to.Bits() >= from.Bits()
	default:
		return false
	}
}

func isInt(k reflect.Kind) bool {
	return k >= reflect.Int && k <= reflect.Int64
}

func isUint(k reflect.Kind) bool {
	return k >= reflect.Uint && k <= reflect.Uintptr
}

func isFloat(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}
