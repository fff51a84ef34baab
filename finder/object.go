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

// Object is the fallback finder for plain values. It resolves properties of
// the target's struct type and of its embedded structs, shallowest first;
// the first occurrence of a name wins.
type Object struct {
	cfg   apis.Config
	cache *ClassCache
}

// Ensure Object implements apis.Finder.
var _ apis.Finder = (*Object)(nil)

// NewObject returns the object finder. A nil cache selects the process-wide
// class cache.
func NewObject(cfg apis.Config, cache *ClassCache) *Object {
	if cache == nil {
		cache = defaultClassCache
	}
	return &Object{cfg: cfg, cache: cache}
}

// level is one struct type of an embedding hierarchy and the embedded field
// indices leading to it from the root.
type level struct {
	t    reflect.Type
	path []int
}

// Find returns the property called name.
func (o *Object) Find(name string, target any) (apis.Element, bool, error) {
	root, generic, ok := o.root(target)
	if !ok || name == "" {
		return nil, false, nil
	}
	for _, lv := range levels(root) {
		g, ok := o.cache.Element(lv.t, name, o.cfg)
		if !ok {
			continue
		}
		el := o.rebase(g, root, lv.path)
		if generic {
			return el, true, nil
		}
		return el.Bind(target), true, nil
	}
	return nil, false, nil
}

// FindAll returns the properties of every level, the root's first.
func (o *Object) FindAll(target any) ([]apis.Element, error) {
	root, generic, ok := o.root(target)
	if !ok {
		return nil, nil
	}
	seen := map[string]struct{}{}
	var out []apis.Element
	for _, lv := range levels(root) {
		for _, g := range o.cache.Elements(lv.t, o.cfg) {
			if _, dup := seen[g.Name()]; dup {
				continue
			}
			seen[g.Name()] = struct{}{}
			var el apis.Element = o.rebase(g, root, lv.path)
			if !generic {
				el = el.Bind(target)
			}
			out = append(out, el)
		}
	}
	return out, nil
}

func (o *Object) root(target any) (reflect.Type, bool, bool) {
	t, generic := uref.TargetType(target)
	if t == nil {
		return nil, false, false
	}
	root, err := uref.Indirect(t, o.cfg.MaxUnwrap)
	if err != nil {
		return nil, false, false
	}
	return root, generic, true
}

// rebase returns the generic element g as seen from root.
func (o *Object) rebase(g *element.Generic, root reflect.Type, path []int) *element.Generic {
	spec := g.Spec()
	spec.Accessor = spec.Accessor.(*property).at(root, path, o.cfg.MaxUnwrap)
	return element.New(spec)
}

// levels walks root and its embedded structs breadth first. Each struct
// type is visited once.
func levels(root reflect.Type) []level {
	out := []level{{t: root}}
	seen := map[reflect.Type]struct{}{root: {}}
	for i := 0; i < len(out); i++ {
		for _, f := range uref.Embedded(out[i].t) {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if _, dup := seen[ft]; dup {
				continue
			}
			seen[ft] = struct{}{}
			path := append(append([]int(nil), out[i].path...), f.Index[0])
			out = append(out, level{t: ft, path: path})
		}
	}
	return out
}
