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

package builder

import (
	"reflect"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/finder"
	"dirpx.dev/elx/predicate"
	"dirpx.dev/elx/registry"
	"dirpx.dev/elx/resolver"
)

// New creates and returns a new instance of an apis.Builder backed by the
// process-wide class cache.
func New() apis.Builder {
	return &builder{cache: finder.DefaultClassCache()}
}

// NewWithCache is like New but plain objects are described through cache.
func NewWithCache(cache *finder.ClassCache) apis.Builder {
	if cache == nil {
		cache = finder.DefaultClassCache()
	}
	return &builder{cache: cache}
}

// builder assembles the built-in finder table and the dispatcher.
type builder struct {
	cache *finder.ClassCache
}

// Builtins returns the built-in finder entries in consultation order. Plain
// objects are not listed: they go to the object finder when nothing matches.
func Builtins(cfg apis.Config) []apis.Entry {
	return []apis.Entry{
		{When: finder.IsAnnotation, Finder: finder.NewAnnotation(cfg)},
		{When: finder.IsProperties, Finder: finder.NewProperties()},
		{When: finder.IsBundle, Finder: finder.NewBundle()},
		{When: finder.IsSQLRows, Finder: finder.NewRows()},
		{When: finder.IsPgxRows, Finder: finder.NewPgxRows()},
		{When: finder.IsArgs, Finder: finder.NewArgs()},
		{When: predicate.Deref(finder.IsStringMap, cfg.MaxUnwrap), Finder: finder.NewMap(cfg)},
		{When: predicate.Deref(predicate.Kind(reflect.Slice), cfg.MaxUnwrap), Finder: finder.NewSlice(cfg)},
		{When: predicate.Deref(predicate.Kind(reflect.Array), cfg.MaxUnwrap), Finder: finder.NewArray(cfg)},
	}
}

// BuildRegistry builds a registry holding the built-in finders configured by
// cfg. If a previous registry is provided, its caller entries are carried
// over in order.
func (b *builder) BuildRegistry(cfg apis.Config, prev apis.Registry) apis.Registry {
	nreg := registry.New(cfg, Builtins(cfg)...)
	if prev != nil {
		for _, e := range prev.Entries() {
			if !e.Builtin {
				_ = nreg.Register(e.When, e.Finder)
			}
		}
	}
	return nreg
}

// BuildResolver builds the dispatcher over reg, falling back to the object
// finder.
func (b *builder) BuildResolver(cfg apis.Config, reg apis.Registry) apis.Resolver {
	return resolver.New(cfg, reg, finder.NewObject(cfg, b.cache))
}
