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
	"strings"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/elx/annotation"
	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

// ClassCache memoizes the generic elements declared by struct types.
//
// Entries are computed on first access and published with LoadOrStore, so
// concurrent first accesses for one type converge on a single entry. Entries
// are never invalidated: a process creating many short-lived types should
// use apis.Bypass instead.
type ClassCache struct {
	m sync.Map // classKey -> *classEntry
}

// classKey covers every configuration knob that changes a scan.
type classKey struct {
	t          reflect.Type
	tagKey     string
	unexported bool
}

type classEntry struct {
	list   []*element.Generic
	byName map[string]*element.Generic
}

// defaultClassCache is shared by every object finder built without an
// explicit cache.
var defaultClassCache = NewClassCache()

// NewClassCache returns an empty cache.
func NewClassCache() *ClassCache {
	return &ClassCache{}
}

// DefaultClassCache returns the process-wide cache.
func DefaultClassCache() *ClassCache {
	return defaultClassCache
}

// Elements returns the generic elements declared by exactly t, fields first
// in declaration order, then method-only properties by method name.
func (c *ClassCache) Elements(t reflect.Type, cfg apis.Config) []*element.Generic {
	if t == nil {
		return nil
	}
	return c.entry(t, cfg).list
}

// Element returns the generic element of t called name, if t declares one.
func (c *ClassCache) Element(t reflect.Type, name string, cfg apis.Config) (*element.Generic, bool) {
	if t == nil {
		return nil, false
	}
	g, ok := c.entry(t, cfg).byName[uref.PropertyName(name)]
	return g, ok
}

// Len returns the number of cached types.
func (c *ClassCache) Len() int {
	n := 0
	c.m.Range(func(any, any) bool {
		n++
		return true
	})
	return n
}

func (c *ClassCache) entry(t reflect.Type, cfg apis.Config) *classEntry {
	if cfg.CachePolicy == apis.Bypass {
		return newClassEntry(t, cfg)
	}
	key := classKey{t: t, tagKey: cfg.TagKey, unexported: cfg.Unexported}
	if v, ok := c.m.Load(key); ok {
		return v.(*classEntry)
	}
	v, loaded := c.m.LoadOrStore(key, newClassEntry(t, cfg))
	if !loaded {
		cfg.Log().Debug("elx(finder): class scanned",
			zap.Stringer("type", t),
			zap.Int("elements", len(v.(*classEntry).list)))
	}
	return v.(*classEntry)
}

func newClassEntry(t reflect.Type, cfg apis.Config) *classEntry {
	props := scan(t, cfg.Unexported)
	e := &classEntry{
		list:   make([]*element.Generic, 0, len(props)),
		byName: make(map[string]*element.Generic, len(props)),
	}
	for _, p := range props {
		as := annotate(t, p, cfg.TagKey)
		for _, a := range as {
			if m, ok := a.(annotation.Malformed); ok {
				cfg.Log().Warn("elx(finder): malformed annotation",
					zap.Stringer("type", t),
					zap.String("element", p.name),
					zap.Error(m))
			}
		}
		g := element.New(element.Spec{
			Name:          p.name,
			DeclaringType: t,
			Type:          p.typ,
			Annotations:   as,
			Accessor:      p,
		})
		e.list = append(e.list, g)
		e.byName[p.name] = g
	}
	return e
}

// scan merges the fields and accessor methods declared by t into properties.
//
// Fields only merge with accessors t declares itself; promoted accessors
// belong to the embedded level they come from, where a root field of the
// same name has already shadowed them. Bare getters ("Name()") only count
// when a field or a setter backs the same property.
func scan(t reflect.Type, unexported bool) []*property {
	getters := map[string][]uref.Accessor{}
	setters := map[string]uref.Accessor{}
	var order []string
	if t.Kind() != reflect.Interface {
		for _, m := range uref.DeclaredMethods(t) {
			acc, ok := uref.ClassifyMethod(m)
			if !ok {
				continue
			}
			if _, known := getters[acc.Property]; !known {
				if _, known := setters[acc.Property]; !known {
					order = append(order, acc.Property)
				}
			}
			if acc.Kind == uref.Getter {
				getters[acc.Property] = append(getters[acc.Property], acc)
			} else {
				setters[acc.Property] = acc
			}
		}
	}

	seen := map[string]struct{}{}
	var props []*property

	for _, f := range uref.DeclaredFields(t) {
		if !f.IsExported() && !unexported {
			continue
		}
		name := uref.PropertyName(f.Name)
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		f := f
		p := &property{name: name, owner: t, field: &f}
		p.getter = pickGetter(getters[name], f.Type)
		if s, ok := setters[name]; ok && (p.getter == nil || s.Type == p.getter.Type) {
			p.setter = &s
		}
		props = append(props, p.typed())
	}

	for _, name := range order {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		p := &property{name: name, owner: t, getter: pickGetter(getters[name], nil)}
		if s, ok := setters[name]; ok && (p.getter == nil || s.Type == p.getter.Type) {
			p.setter = &s
		}
		if p.getter != nil && p.getter.Bare && p.setter == nil {
			p.getter = nil
		}
		if p.getter == nil && p.setter == nil {
			continue
		}
		props = append(props, p.typed())
	}
	return props
}

// typed fills in the element type: getter result, else setter parameter,
// else field type. It also roots the property at its owner.
func (p *property) typed() *property {
	switch {
	case p.getter != nil:
		p.typ = p.getter.Type
	case p.setter != nil:
		p.typ = p.setter.Type
	case p.field != nil:
		p.typ = p.field.Type
	}
	p.root = p.owner
	p.maxUnwrap = 1
	return p
}

// pickGetter chooses among getters of one property: GetX before IsX before
// X(), and a getter of type want before others.
func pickGetter(cands []uref.Accessor, want reflect.Type) *uref.Accessor {
	if len(cands) == 0 {
		return nil
	}
	sorted := append([]uref.Accessor(nil), cands...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return getterRank(sorted[i]) < getterRank(sorted[j])
	})
	if want != nil {
		for i := range sorted {
			if sorted[i].Type == want {
				return &sorted[i]
			}
		}
	}
	return &sorted[0]
}

func getterRank(a uref.Accessor) int {
	switch {
	case a.Bare:
		return 2
	case strings.HasPrefix(a.Method.Name, "Is"):
		return 1
	default:
		return 0
	}
}

// annotate returns the annotations of the first member carrying any, in
// the order getter, field, setter.
func annotate(t reflect.Type, p *property, tagKey string) []apis.Annotation {
	if p.getter != nil {
		if as := annotation.ForMember(t, p.getter.Method.Name); len(as) > 0 {
			return as
		}
	}
	if p.field != nil {
		as := annotation.FromField(*p.field, tagKey)
		as = append(as, annotation.ForMember(t, p.field.Name)...)
		if len(as) > 0 {
			return as
		}
	}
	if p.setter != nil {
		return annotation.ForMember(t, p.setter.Method.Name)
	}
	return nil
}
