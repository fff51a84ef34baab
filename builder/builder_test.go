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

package builder_test

import (
	"database/sql"
	"reflect"
	"runtime"
	"sync"
	"testing"

	"github.com/magiconair/properties"
	"github.com/spf13/viper"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/builder"
	"dirpx.dev/elx/call"
	"dirpx.dev/elx/config"
	"dirpx.dev/elx/finder"
	"dirpx.dev/elx/registry"
	"dirpx.dev/elx/validation/constraint"
)

// userType is a plain struct with no special behavior. It is resolved by
// the object fallback.
type userType struct{ Name string }

// stubFinder is a caller finder recognisable by its id.
type stubFinder struct{ id string }

func (stubFinder) Find(string, any) (apis.Element, bool, error) { return nil, false, nil }
func (stubFinder) FindAll(any) ([]apis.Element, error)          { return nil, nil }

// TestBuildRegistry_Builtins asserts that a fresh registry holds the built-in
// finders only, all marked as such.
func TestBuildRegistry_Builtins(t *testing.T) {
	cfg := config.DefaultConfig()
	reg := builder.New().BuildRegistry(cfg, nil)
	if reg == nil {
		t.Fatal("BuildRegistry returned nil")
	}

	want := len(builder.Builtins(cfg))
	if c := reg.Count(); c != want {
		t.Fatalf("Count = %d, want %d", c, want)
	}
	for i, e := range reg.Entries() {
		if !e.Builtin {
			t.Fatalf("entry %d is not marked builtin", i)
		}
	}
}

// TestBuildRegistry_Routing verifies which built-in finder each kind of
// target is routed to.
func TestBuildRegistry_Routing(t *testing.T) {
	reg := builder.New().BuildRegistry(config.DefaultConfig(), nil)

	cases := []struct {
		name string
		typ  reflect.Type
		want any
	}{
		{"annotation", reflect.TypeOf(constraint.Max{}), &finder.Annotation{}},
		{"properties", reflect.TypeOf((*properties.Properties)(nil)), finder.Properties{}},
		{"bundle", reflect.TypeOf(viper.New()), finder.Bundle{}},
		{"sql rows", reflect.TypeOf((*sql.Rows)(nil)), finder.Rows{}},
		{"args", reflect.TypeOf((*call.Args)(nil)), finder.Args{}},
		{"map", reflect.TypeOf(map[string]int{}), &finder.Map{}},
		{"map pointer", reflect.TypeOf(&map[string]int{}), &finder.Map{}},
		{"slice", reflect.TypeOf([]int{}), &finder.Slice{}},
		{"array", reflect.TypeOf([2]int{}), &finder.Array{}},
	}
	for _, tc := range cases {
		f, ok := reg.Lookup(tc.typ)
		if !ok {
			t.Fatalf("%s: no finder for %v", tc.name, tc.typ)
		}
		if reflect.TypeOf(f) != reflect.TypeOf(tc.want) {
			t.Fatalf("%s: routed to %T, want %T", tc.name, f, tc.want)
		}
	}

	for _, typ := range []reflect.Type{reflect.TypeOf(userType{}), reflect.TypeOf(map[int]int{})} {
		if f, ok := reg.Lookup(typ); ok {
			t.Fatalf("%v should fall back to the object finder, got %T", typ, f)
		}
	}
}

// TestBuildRegistry_CarriesCallerEntries asserts that rebuilding keeps the
// caller entries of the previous registry, in order, ahead of the built-ins.
func TestBuildRegistry_CarriesCallerEntries(t *testing.T) {
	b := builder.New()
	cfg := config.DefaultConfig()

	prev := b.BuildRegistry(cfg, nil)
	isUser := func(rt reflect.Type) bool { return rt == reflect.TypeOf(userType{}) }
	if err := prev.Register(isUser, stubFinder{id: "a"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := prev.Register(isUser, stubFinder{id: "b"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	next := b.BuildRegistry(config.NewConfig(config.WithSeparator("/")), prev)
	if got, want := next.Count(), prev.Count(); got != want {
		t.Fatalf("Count = %d, want %d", got, want)
	}

	es := next.Entries()
	if es[0].Builtin || es[0].Finder.(stubFinder).id != "a" || es[1].Finder.(stubFinder).id != "b" {
		t.Fatalf("caller entries not carried in order: %+v", es[:2])
	}
	if f, _ := next.Lookup(reflect.TypeOf(userType{})); f.(stubFinder).id != "a" {
		t.Fatalf("Lookup = %v, want first caller entry", f)
	}
}

// TestBuildResolver_FallsBackToObjects verifies that the resolver resolves
// plain structs through the object finder.
func TestBuildResolver_FallsBackToObjects(t *testing.T) {
	b := builder.NewWithCache(finder.NewClassCache())
	cfg := config.DefaultConfig()
	res := b.BuildResolver(cfg, b.BuildRegistry(cfg, nil))

	el, ok, err := res.Find("name", &userType{Name: "u"})
	if err != nil || !ok {
		t.Fatalf("Find = (%v, %v, %v)", el, ok, err)
	}
	if v, err := el.Get(); err != nil || v != "u" {
		t.Fatalf("Get = (%v, %v), want u", v, err)
	}
}

// TestBuildResolver_WithExternalRegistry asserts that BuildResolver accepts
// any apis.Registry implementation, not only the one built by the builder.
func TestBuildResolver_WithExternalRegistry(t *testing.T) {
	cfg := config.DefaultConfig()
	r := registry.New(cfg)
	if err := r.Register(func(rt reflect.Type) bool { return rt == reflect.TypeOf(userType{}) }, finder.NewMap(cfg)); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	res := builder.New().BuildResolver(cfg, r)
	if _, ok, _ := res.Find("name", userType{}); ok {
		t.Fatal("resolver should route userType to the registered finder")
	}
	if _, ok, _ := res.Find("k", map[string]int{}); ok {
		t.Fatal("registry without built-ins should not resolve maps")
	}
}

// TestBuildResolver_Concurrency_Smoke hammers the resolver in parallel to
// ensure it is safe to call Find/FindAll concurrently after being built.
func TestBuildResolver_Concurrency_Smoke(t *testing.T) {
	b := builder.NewWithCache(finder.NewClassCache())
	cfg := config.DefaultConfig()
	res := b.BuildResolver(cfg, b.BuildRegistry(cfg, nil))

	targets := []any{
		&userType{Name: "u"},
		map[string]int{"k": 1},
		[]string{"a"},
		reflect.TypeOf(userType{}),
	}

	workers := runtime.GOMAXPROCS(0) * 4
	var wg sync.WaitGroup
	wg.Add(workers)

	for w := 0; w < workers; w++ {
		go func(id int) {
			defer wg.Done()
			for i := 0; i < 2000; i++ {
				target := targets[(i+id)%len(targets)]
				if _, err := res.FindAll(target); err != nil {
					t.Errorf("FindAll(%T): %v", target, err)
					return
				}
				_, _, _ = res.Find("name", target)
			}
		}(w)
	}

	wg.Wait()
}

// Compile-time check: builder.New() must satisfy apis.Builder.
var _ apis.Builder = builder.New()
