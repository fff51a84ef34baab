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

package finder

import (
	"fmt"
	"reflect"

	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

// slot is the function-table accessor used by the container finders.
// A nil canWrite means the slot is read-only.
type slot struct {
	accepts  func(target any) bool
	canRead  func(target any) bool
	canWrite func(target any) bool
	read     func(target any) (any, error)
	write    func(target any, value any) error
	ref      func(target any) (any, bool, error)
}

// Ensure slot implements element.Accessor and element.Referencer.
var (
	_ element.Accessor   = (*slot)(nil)
	_ element.Referencer = (*slot)(nil)
)

func (s *slot) Accepts(target any) bool { return s.accepts(target) }

func (s *slot) CanRead(target any) bool {
	if s.canRead == nil {
		return true
	}
	return s.canRead(target)
}

func (s *slot) CanWrite(target any) bool {
	if s.canWrite == nil || s.write == nil {
		return false
	}
	return s.canWrite(target)
}

func (s *slot) Read(target any) (any, error) { return s.read(target) }

func (s *slot) Write(target any, value any) error {
	if s.write == nil {
		return element.ErrUnwritable
	}
	return s.write(target, value)
}

func (s *slot) Ref(target any) (any, bool, error) {
	if s.ref == nil {
		return nil, false, nil
	}
	return s.ref(target)
}

// valueOf locates the value of type want behind target.
func valueOf(target any, want reflect.Type, maxUnwrap int) (reflect.Value, bool) {
	if target == nil || uref.IsType(target) {
		return reflect.Value{}, false
	}
	return uref.IndirectValue(reflect.ValueOf(target), want, maxUnwrap)
}

// accepter returns an Accepts function for targets holding a want value.
func accepter(want reflect.Type, maxUnwrap int) func(any) bool {
	return func(target any) bool {
		if target == nil || uref.IsType(target) {
			return false
		}
		t := reflect.TypeOf(target)
		for i := 0; t != want; i++ {
			if i >= maxUnwrap || t.Kind() != reflect.Pointer {
				return false
			}
			t = t.Elem()
		}
		return true
	}
}

// locatable returns a check that holds for targets holding a want value.
// A nil target asks for the structural answer, which is yes.
func locatable(want reflect.Type, maxUnwrap int) func(any) bool {
	return func(target any) bool {
		if target == nil {
			return true
		}
		_, ok := valueOf(target, want, maxUnwrap)
		return ok
	}
}

// coerce converts value for a slot of type to, reporting ErrTypeMismatch.
func coerce(value any, to reflect.Type) (reflect.Value, error) {
	v, err := uref.Coerce(value, to)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: %v", element.ErrTypeMismatch, err)
	}
	return v, nil
}

// iface returns v as an interface value, nil for invalid values.
func iface(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	return v.Interface()
}

// invoke calls fn, turning a panic of the callee into an error.
func invoke(fn reflect.Value, args ...reflect.Value) (out []reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("elx(finder): call panicked: %v", r)
		}
	}()
	return fn.Call(args), nil
}
