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
	"sort"

	"github.com/spf13/viper"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

var (
	bundleType = reflect.TypeOf((*viper.Viper)(nil))
	anyType    = reflect.TypeOf((*any)(nil)).Elem()
)

// IsBundle reports whether t is *viper.Viper.
func IsBundle(t reflect.Type) bool {
	return t == bundleType
}

// Bundle resolves the top-level keys of a *viper.Viper. Bundles are
// read-only; reading a key the bundle does not hold fails with
// element.ErrMissingKey.
type Bundle struct{}

// Ensure Bundle implements apis.Finder.
var _ apis.Finder = Bundle{}

// NewBundle returns the bundle finder.
func NewBundle() Bundle {
	return Bundle{}
}

// Find returns the entry called name.
func (Bundle) Find(name string, target any) (apis.Element, bool, error) {
	if t, _ := uref.TargetType(target); !IsBundle(t) || name == "" {
		return nil, false, nil
	}
	g := bundleKey(name)
	if uref.IsType(target) {
		return g, true, nil
	}
	return g.Bind(target), true, nil
}

// FindAll returns the top-level keys sorted.
func (Bundle) FindAll(target any) ([]apis.Element, error) {
	v, ok := target.(*viper.Viper)
	if !ok || v == nil {
		return nil, nil
	}
	settings := v.AllSettings()
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]apis.Element, 0, len(keys))
	for _, k := range keys {
		out = append(out, bundleKey(k).Bind(target))
	}
	return out, nil
}

func bundleKey(key string) *element.Generic {
	return element.New(element.Spec{
		Name:          key,
		DeclaringType: bundleType,
		Type:          anyType,
		Accessor: &slot{
			accepts: func(target any) bool {
				_, ok := target.(*viper.Viper)
				return ok
			},
			canRead: func(target any) bool {
				if target == nil {
					return true
				}
				v, ok := target.(*viper.Viper)
				return ok && v != nil
			},
			read: func(target any) (any, error) {
				v := target.(*viper.Viper)
				if !v.IsSet(key) {
					return nil, fmt.Errorf("%w: %q", element.ErrMissingKey, key)
				}
				return v.Get(key), nil
			},
		},
	})
}
