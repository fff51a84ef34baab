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

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

var annotationType = reflect.TypeOf((*apis.Annotation)(nil)).Elem()

// IsAnnotation reports whether t implements apis.Annotation.
func IsAnnotation(t reflect.Type) bool {
	return t != nil && t.Kind() != reflect.Interface && t.Implements(annotationType)
}

// Annotation resolves the attributes of annotation values: their exported
// fields and zero-argument methods. Attributes are never writable.
type Annotation struct {
	cfg apis.Config
}

// Ensure Annotation implements apis.Finder.
var _ apis.Finder = (*Annotation)(nil)

// NewAnnotation returns the annotation finder.
func NewAnnotation(cfg apis.Config) *Annotation {
	return &Annotation{cfg: cfg}
}

// Find returns the attribute called name.
func (a *Annotation) Find(name string, target any) (apis.Element, bool, error) {
	at, ok := a.annotationType(target)
	if !ok {
		return nil, false, nil
	}
	key := uref.PropertyName(name)
	for _, g := range a.attributes(at) {
		if g.Name() != key {
			continue
		}
		if uref.IsType(target) {
			return g, true, nil
		}
		return g.Bind(target), true, nil
	}
	return nil, false, nil
}

// FindAll returns every attribute, fields first.
func (a *Annotation) FindAll(target any) ([]apis.Element, error) {
	at, ok := a.annotationType(target)
	if !ok {
		return nil, nil
	}
	attrs := a.attributes(at)
	out := make([]apis.Element, 0, len(attrs))
	for _, g := range attrs {
		if uref.IsType(target) {
			out = append(out, g)
		} else {
			out = append(out, g.Bind(target))
		}
	}
	return out, nil
}

func (a *Annotation) annotationType(target any) (reflect.Type, bool) {
	t, _ := uref.TargetType(target)
	if t == nil {
		return nil, false
	}
	at, err := uref.Indirect(t, a.cfg.MaxUnwrap)
	if err != nil {
		return nil, false
	}
	return at, true
}

// attributes lists the attributes of annotation type at.
func (a *Annotation) attributes(at reflect.Type) []*element.Generic {
	maxUnwrap := a.cfg.MaxUnwrap
	seen := map[string]struct{}{}
	var out []*element.Generic

	add := func(name string, typ reflect.Type, read func(v reflect.Value) (any, error)) {
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		out = append(out, element.New(element.Spec{
			Name:          name,
			DeclaringType: at,
			Type:          typ,
			Accessor: &slot{
				accepts: accepter(at, maxUnwrap),
				canRead: locatable(at, maxUnwrap),
				read: func(target any) (any, error) {
					v, _ := valueOf(target, at, maxUnwrap)
					cp := reflect.New(at).Elem()
					cp.Set(v)
					return read(cp)
				},
			},
		}))
	}

	for _, f := range uref.DeclaredFields(at) {
		if !f.IsExported() {
			continue
		}
		idx := f.Index
		add(uref.PropertyName(f.Name), f.Type, func(v reflect.Value) (any, error) {
			return v.FieldByIndex(idx).Interface(), nil
		})
	}
	for _, m := range uref.MethodSet(at) {
		if m.Name == "AnnotationName" {
			continue
		}
		acc, ok := uref.ClassifyMethod(m)
		if !ok || acc.Kind != uref.Getter {
			continue
		}
		name := m.Name
		add(acc.Property, acc.Type, func(v reflect.Value) (any, error) {
			out, err := invoke(v.Addr().MethodByName(name))
			if err != nil {
				return nil, err
			}
			return iface(out[0]), nil
		})
	}
	return out
}
