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
	"reflect"
	"strconv"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

const (
	// First names index 0 of slices and arrays.
	First = "first"
	// Last names the last index of slices and arrays at resolution time.
	Last = "last"
)

// index parses an index name against a length. A negative length stands
// for an unknown length: "last" does not resolve and numbers are not
// bounded.
func index(name string, length int) (int, bool) {
	var i int
	switch name {
	case First:
		i = 0
	case Last:
		if length < 0 {
			return 0, false
		}
		i = length - 1
	default:
		n, err := strconv.Atoi(name)
		if err != nil {
			return 0, false
		}
		i = n
	}
	if i < 0 || (length >= 0 && i >= length) {
		return 0, false
	}
	return i, true
}

// Slice resolves slice items by index, "first" or "last".
type Slice struct {
	cfg apis.Config
}

// Ensure Slice implements apis.Finder.
var _ apis.Finder = (*Slice)(nil)

// NewSlice returns the slice finder.
func NewSlice(cfg apis.Config) *Slice {
	return &Slice{cfg: cfg}
}

// Find returns the item addressed by name. Indices beyond the current
// length do not resolve.
func (s *Slice) Find(name string, target any) (apis.Element, bool, error) {
	st, ok := indirectKind(target, reflect.Slice, s.cfg.MaxUnwrap)
	if !ok {
		return nil, false, nil
	}
	if uref.IsType(target) {
		i, ok := index(name, -1)
		if !ok {
			return nil, false, nil
		}
		return s.element(st, i), true, nil
	}
	sv, ok := valueOf(target, st, s.cfg.MaxUnwrap)
	if !ok {
		return nil, false, nil
	}
	i, ok := index(name, sv.Len())
	if !ok {
		return nil, false, nil
	}
	return s.element(st, i).Bind(target), true, nil
}

// FindAll returns one element per item. Slice types have no items.
func (s *Slice) FindAll(target any) ([]apis.Element, error) {
	st, ok := indirectKind(target, reflect.Slice, s.cfg.MaxUnwrap)
	if !ok || uref.IsType(target) {
		return nil, nil
	}
	sv, ok := valueOf(target, st, s.cfg.MaxUnwrap)
	if !ok {
		return nil, nil
	}
	out := make([]apis.Element, 0, sv.Len())
	for i := 0; i < sv.Len(); i++ {
		out = append(out, s.element(st, i).Bind(target))
	}
	return out, nil
}

func (s *Slice) element(st reflect.Type, i int) *element.Generic {
	maxUnwrap := s.cfg.MaxUnwrap
	item := func(target any) (reflect.Value, error) {
		sv, _ := valueOf(target, st, maxUnwrap)
		if i >= sv.Len() {
			return reflect.Value{}, element.ErrIndexOutOfRange
		}
		return sv.Index(i), nil
	}
	return element.New(element.Spec{
		Name:          strconv.Itoa(i),
		DeclaringType: st,
		Type:          st.Elem(),
		Accessor: &slot{
			accepts:  accepter(st, maxUnwrap),
			canRead:  locatable(st, maxUnwrap),
			canWrite: locatable(st, maxUnwrap),
			read: func(target any) (any, error) {
				v, err := item(target)
				if err != nil {
					return nil, err
				}
				return v.Interface(), nil
			},
			write: func(target any, value any) error {
				v, err := item(target)
				if err != nil {
					return err
				}
				cv, err := coerce(value, st.Elem())
				if err != nil {
					return err
				}
				v.Set(cv)
				return nil
			},
			ref: func(target any) (any, bool, error) {
				if k := st.Elem().Kind(); k != reflect.Struct && k != reflect.Array {
					return nil, false, nil
				}
				v, err := item(target)
				if err != nil {
					return nil, false, err
				}
				return v.Addr().Interface(), true, nil
			},
		},
	})
}

// Array resolves array items by index, "first" or "last". Arrays held by
// value are read-only; a pointer to the array is needed to write.
type Array struct {
	cfg apis.Config
}

// Ensure Array implements apis.Finder.
var _ apis.Finder = (*Array)(nil)

// NewArray returns the array finder.
func NewArray(cfg apis.Config) *Array {
	return &Array{cfg: cfg}
}

// Find returns the item addressed by name.
func (a *Array) Find(name string, target any) (apis.Element, bool, error) {
	at, ok := indirectKind(target, reflect.Array, a.cfg.MaxUnwrap)
	if !ok {
		return nil, false, nil
	}
	i, ok := index(name, at.Len())
	if !ok {
		return nil, false, nil
	}
	g := a.element(at, i)
	if uref.IsType(target) {
		return g, true, nil
	}
	return g.Bind(target), true, nil
}

// FindAll returns one element per item. Array types have a static length,
// so their generic items are enumerated too.
func (a *Array) FindAll(target any) ([]apis.Element, error) {
	at, ok := indirectKind(target, reflect.Array, a.cfg.MaxUnwrap)
	if !ok {
		return nil, nil
	}
	generic := uref.IsType(target)
	out := make([]apis.Element, 0, at.Len())
	for i := 0; i < at.Len(); i++ {
		var el apis.Element = a.element(at, i)
		if !generic {
			el = el.Bind(target)
		}
		out = append(out, el)
	}
	return out, nil
}

func (a *Array) element(at reflect.Type, i int) *element.Generic {
	maxUnwrap := a.cfg.MaxUnwrap
	return element.New(element.Spec{
		Name:          strconv.Itoa(i),
		DeclaringType: at,
		Type:          at.Elem(),
		Accessor: &slot{
			accepts: accepter(at, maxUnwrap),
			canRead: locatable(at, maxUnwrap),
			canWrite: func(target any) bool {
				if target == nil {
					return true
				}
				av, ok := valueOf(target, at, maxUnwrap)
				return ok && av.CanSet()
			},
			read: func(target any) (any, error) {
				av, _ := valueOf(target, at, maxUnwrap)
				return av.Index(i).Interface(), nil
			},
			write: func(target any, value any) error {
				av, _ := valueOf(target, at, maxUnwrap)
				cv, err := coerce(value, at.Elem())
				if err != nil {
					return err
				}
				av.Index(i).Set(cv)
				return nil
			},
			ref: func(target any) (any, bool, error) {
				if k := at.Elem().Kind(); k != reflect.Struct && k != reflect.Array {
					return nil, false, nil
				}
				av, ok := valueOf(target, at, maxUnwrap)
				if !ok || !av.CanAddr() {
					return nil, false, nil
				}
				return av.Index(i).Addr().Interface(), true, nil
			},
		},
	})
}

// indirectKind returns the type of kind k behind target.
func indirectKind(target any, k reflect.Kind, maxUnwrap int) (reflect.Type, bool) {
	t, _ := uref.TargetType(target)
	if t == nil {
		return nil, false
	}
	it, err := uref.Indirect(t, maxUnwrap)
	if err != nil || it.Kind() != k {
		return nil, false
	}
	return it, true
}
