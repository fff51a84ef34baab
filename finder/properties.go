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

	"github.com/magiconair/properties"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/element"
	uref "dirpx.dev/elx/utils/reflect"
)

var (
	propertiesType = reflect.TypeOf((*properties.Properties)(nil))
	stringType     = reflect.TypeOf("")
)

// IsProperties reports whether t is *properties.Properties.
func IsProperties(t reflect.Type) bool {
	return t == propertiesType
}

// Properties resolves the keys of a *properties.Properties. Every key names
// an element; reads of missing keys yield nil and writes accept strings only.
type Properties struct{}

// Ensure Properties implements apis.Finder.
var _ apis.Finder = Properties{}

// NewProperties returns the properties finder.
func NewProperties() Properties {
	return Properties{}
}

// Find returns the entry called name.
func (Properties) Find(name string, target any) (apis.Element, bool, error) {
	if t, _ := uref.TargetType(target); !IsProperties(t) || name == "" {
		return nil, false, nil
	}
	g := propertyKey(name)
	if uref.IsType(target) {
		return g, true, nil
	}
	return g.Bind(target), true, nil
}

// FindAll returns the entries in the order of the underlying file.
func (Properties) FindAll(target any) ([]apis.Element, error) {
	p, ok := target.(*properties.Properties)
	if !ok || p == nil {
		return nil, nil
	}
	keys := p.Keys()
	out := make([]apis.Element, 0, len(keys))
	for _, k := range keys {
		out = append(out, propertyKey(k).Bind(target))
	}
	return out, nil
}

func propertyKey(key string) *element.Generic {
	isProps := func(target any) bool {
		_, ok := target.(*properties.Properties)
		return ok
	}
	live := func(target any) bool {
		if target == nil {
			return true
		}
		p, ok := target.(*properties.Properties)
		return ok && p != nil
	}
	return element.New(element.Spec{
		Name:          key,
		DeclaringType: propertiesType,
		Type:          stringType,
		Accessor: &slot{
			accepts:  isProps,
			canRead:  live,
			canWrite: live,
			read: func(target any) (any, error) {
				v, ok := target.(*properties.Properties).Get(key)
				if !ok {
					return nil, nil
				}
				return v, nil
			},
			write: func(target any, value any) error {
				s, ok := value.(string)
				if !ok {
					return fmt.Errorf("%w: %T is not a string", element.ErrTypeMismatch, value)
				}
				_, _, err := target.(*properties.Properties).Set(key, s)
				return err
			},
		},
	})
}
