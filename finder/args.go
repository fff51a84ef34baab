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
	"dirpx.dev/elx/call"
	"dirpx.dev/elx/element"
)

var argsType = reflect.TypeOf((*call.Args)(nil))

// IsArgs reports whether t is *call.Args.
func IsArgs(t reflect.Type) bool {
	return t == argsType
}

// Args resolves the bound arguments of a *call.Args by parameter name.
// Arguments are read-only.
type Args struct{}

// Ensure Args implements apis.Finder.
var _ apis.Finder = Args{}

// NewArgs returns the call arguments finder.
func NewArgs() Args {
	return Args{}
}

// Find returns the argument of the parameter called name.
func (Args) Find(name string, target any) (apis.Element, bool, error) {
	a, ok := target.(*call.Args)
	if !ok || a == nil {
		return nil, false, nil
	}
	i := a.Index(name)
	if i < 0 {
		return nil, false, nil
	}
	return argument(a, i).Bind(target), true, nil
}

// FindAll returns the arguments in parameter order.
func (Args) FindAll(target any) ([]apis.Element, error) {
	a, ok := target.(*call.Args)
	if !ok || a == nil {
		return nil, nil
	}
	out := make([]apis.Element, 0, a.Len())
	for i := 0; i < a.Len(); i++ {
		out = append(out, argument(a, i).Bind(target))
	}
	return out, nil
}

func argument(a *call.Args, i int) *element.Generic {
	return element.New(element.Spec{
		Name:          a.Names()[i],
		DeclaringType: a.Func(),
		Type:          a.Type(i),
		Accessor: &slot{
			accepts: func(target any) bool {
				o, ok := target.(*call.Args)
				return ok && o != nil && o.Func() == a.Func() && o.Len() == a.Len()
			},
			read: func(target any) (any, error) {
				return target.(*call.Args).Value(i), nil
			},
		},
	})
}
