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
	"errors"
	"fmt"
	"reflect"

	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

// errUnreachable is returned when the declaring struct of a promoted
// property sits behind a nil embedded pointer.
var errUnreachable = errors.New("elx(finder): property owner is unreachable")

// property is the accessor of a plain-object element: at most one getter,
// one field and one setter merged under one name.
//
// Properties stored in the class cache describe their owner only (root is
// the owner, path is empty). The object finder rebases them onto the root
// type a lookup started from.
type property struct {
	name   string
	owner  reflect.Type
	typ    reflect.Type
	field  *reflect.StructField
	getter *uref.Accessor
	setter *uref.Accessor

	root      reflect.Type
	path      []int
	maxUnwrap int
}

// Ensure property implements element.Accessor and element.Referencer.
var (
	_ element.Accessor   = (*property)(nil)
	_ element.Referencer = (*property)(nil)
)

// at returns a copy of p reached from root through the embedded fields path.
func (p *property) at(root reflect.Type, path []int, maxUnwrap int) *property {
	cp := *p
	cp.root = root
	cp.path = path
	cp.maxUnwrap = maxUnwrap
	return &cp
}

func (p *property) exportedField() bool {
	return p.field != nil && p.field.IsExported()
}

// locate finds the root value behind target and the owner value within it.
// Reads of non-addressable targets work on a copy; writes need a pointer.
func (p *property) locate(target any, write bool) (rv, ov reflect.Value, ok bool) {
	rv, ok = valueOf(target, p.root, p.maxUnwrap)
	if !ok {
		return rv, ov, false
	}
	if !rv.CanAddr() {
		if write {
			return rv, ov, false
		}
		cp := reflect.New(p.root).Elem()
		cp.Set(rv)
		rv = cp
	}
	ov = rv
	for _, i := range p.path {
		ov = ov.Field(i)
		if ov.Kind() == reflect.Pointer {
			if ov.IsNil() {
				return rv, ov, false
			}
			ov = ov.Elem()
		}
	}
	return rv, ov, true
}

func (p *property) Accepts(target any) bool {
	return accepter(p.root, p.maxUnwrap)(target)
}

func (p *property) CanRead(target any) bool {
	if p.getter == nil && !p.exportedField() {
		return false
	}
	if target == nil {
		return true
	}
	_, _, ok := p.locate(target, false)
	return ok
}

func (p *property) CanWrite(target any) bool {
	if p.setter == nil && !p.exportedField() {
		return false
	}
	if target == nil {
		return true
	}
	_, _, ok := p.locate(target, true)
	return ok
}

func (p *property) Read(target any) (any, error) {
	rv, ov, ok := p.locate(target, false)
	if !ok {
		return nil, errUnreachable
	}
	if p.getter != nil {
		out, err := p.call(rv, ov, p.getter)
		if err != nil {
			return nil, err
		}
		return iface(out[0]), nil
	}
	if p.exportedField() {
		return ov.FieldByIndex(p.field.Index).Interface(), nil
	}
	return nil, element.ErrUnreadable
}

func (p *property) Write(target any, value any) error {
	rv, ov, ok := p.locate(target, true)
	if !ok {
		return errUnreachable
	}
	if p.setter != nil {
		v, err := coerce(value, p.setter.Type)
		if err != nil {
			return err
		}
		out, err := p.call(rv, ov, p.setter, v)
		if err != nil {
			return err
		}
		if p.setter.Fallible && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}
	if p.exportedField() {
		fv := ov.FieldByIndex(p.field.Index)
		v, err := coerce(value, fv.Type())
		if err != nil {
			return err
		}
		fv.Set(v)
		return nil
	}
	return element.ErrUnwritable
}

// Ref hands out a pointer to an exported struct or array field so that
// nested writes reach the root target.
func (p *property) Ref(target any) (any, bool, error) {
	if !p.exportedField() {
		return nil, false, nil
	}
	if k := p.field.Type.Kind(); k != reflect.Struct && k != reflect.Array {
		return nil, false, nil
	}
	if p.getter != nil && p.getter.Type != p.field.Type {
		return nil, false, nil
	}
	_, ov, ok := p.locate(target, true)
	if !ok {
		return nil, false, nil
	}
	return ov.FieldByIndex(p.field.Index).Addr().Interface(), true, nil
}

// call invokes an accessor method. The method is looked up on the root
// first so that methods redeclared by the root win, as they would in a
// direct call; the owner value is used when the root has no such method.
func (p *property) call(rv, ov reflect.Value, acc *uref.Accessor, args ...reflect.Value) ([]reflect.Value, error) {
	name := acc.Method.Name
	want := uref.FuncType(acc.Method)
	if m := rv.Addr().MethodByName(name); m.IsValid() && m.Type() == want {
		return invoke(m, args...)
	}
	recv := ov
	if ov.CanAddr() {
		recv = ov.Addr()
	}
	m := recv.MethodByName(name)
	if !m.IsValid() {
		return nil, fmt.Errorf("elx(finder): method %s not found on %v", name, recv.Type())
	}
	return invoke(m, args...)
}
