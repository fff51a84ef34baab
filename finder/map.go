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
	"sort"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

// Map resolves the entries of maps keyed by a string kind. Every key names
// an element, present or not, so that writes can add entries; reads of
// missing keys yield nil.
type Map struct {
	cfg apis.Config
}

// Ensure Map implements apis.Finder.
var _ apis.Finder = (*Map)(nil)

// NewMap returns the map finder.
func NewMap(cfg apis.Config) *Map {
	return &Map{cfg: cfg}
}

// IsStringMap reports whether t is a map keyed by a string kind.
func IsStringMap(t reflect.Type) bool {
	return t != nil && t.Kind() == reflect.Map && t.Key().Kind() == reflect.String
}

func (m *Map) mapType(target any) (reflect.Type, bool) {
	t, _ := uref.TargetType(target)
	if t == nil {
		return nil, false
	}
	mt, err := uref.Indirect(t, m.cfg.MaxUnwrap)
	if err != nil || !IsStringMap(mt) {
		return nil, false
	}
	return mt, true
}

// Find returns the entry called name.
func (m *Map) Find(name string, target any) (apis.Element, bool, error) {
	mt, ok := m.mapType(target)
	if !ok {
		return nil, false, nil
	}
	g := m.element(mt, name)
	if uref.IsType(target) {
		return g, true, nil
	}
	return g.Bind(target), true, nil
}

// FindAll returns the entries of the map sorted by key. Map types have no
// entries.
func (m *Map) FindAll(target any) ([]apis.Element, error) {
	mt, ok := m.mapType(target)
	if !ok || uref.IsType(target) {
		return nil, nil
	}
	mv, ok := valueOf(target, mt, m.cfg.MaxUnwrap)
	if !ok {
		return nil, nil
	}
	keys := make([]string, 0, mv.Len())
	iter := mv.MapRange()
	for iter.Next() {
		keys = append(keys, iter.Key().String())
	}
	sort.Strings(keys)

	out := make([]apis.Element, 0, len(keys))
	for _, k := range keys {
		out = append(out, m.element(mt, k).Bind(target))
	}
	return out, nil
}

func (m *Map) element(mt reflect.Type, key string) *element.Generic {
	kv := reflect.ValueOf(key).Convert(mt.Key())
	maxUnwrap := m.cfg.MaxUnwrap
	return element.New(element.Spec{
		Name:          key,
		DeclaringType: mt,
		Type:          mt.Elem(),
		Accessor: &slot{
			accepts: accepter(mt, maxUnwrap),
			canRead: locatable(mt, maxUnwrap),
			canWrite: func(target any) bool {
				if target == nil {
					return true
				}
				mv, ok := valueOf(target, mt, maxUnwrap)
				return ok && !mv.IsNil()
			},
			read: func(target any) (any, error) {
				mv, _ := valueOf(target, mt, maxUnwrap)
				return iface(mv.MapIndex(kv)), nil
			},
			write: func(target any, value any) error {
				mv, _ := valueOf(target, mt, maxUnwrap)
				v, err := coerce(value, mt.Elem())
				if err != nil {
					return err
				}
				mv.SetMapIndex(kv, v)
				return nil
			},
		},
	})
}
