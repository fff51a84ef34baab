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

// Package call captures the arguments of a function call so that they can be
// resolved as elements by parameter name.
package call

import (
	"errors"
	"fmt"
	"reflect"

	uref "dirpx.dev/elx/utils/reflect"
)

var (
	// ErrNotFunc is returned when Bind is given something that is not a function.
	ErrNotFunc = errors.New("elx(call): not a function")
	// ErrArity is returned when names or arguments do not match the parameters.
	ErrArity = errors.New("elx(call): arity mismatch")
	// ErrArgType is returned when an argument does not fit its parameter.
	ErrArgType = errors.New("elx(call): argument type mismatch")
)

// Args is a function together with named, bound arguments.
// Args values are immutable.
type Args struct {
	fn     reflect.Value
	names  []string
	values []reflect.Value
}

// Bind binds args to the parameters of fn, naming them with names.
// Variadic functions take their variadic part as a single slice argument.
func Bind(fn any, names []string, args ...any) (*Args, error) {
	fv := reflect.ValueOf(fn)
	if fn == nil || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %T", ErrNotFunc, fn)
	}
	ft := fv.Type()
	if len(names) != ft.NumIn() || len(args) != ft.NumIn() {
		return nil, fmt.Errorf("%w: %v takes %d parameters, got %d names and %d arguments",
			ErrArity, ft, ft.NumIn(), len(names), len(args))
	}

	seen := make(map[string]struct{}, len(names))
	values := make([]reflect.Value, len(args))
	for i, a := range args {
		if names[i] == "" {
			return nil, fmt.Errorf("%w: parameter %d has no name", ErrArity, i)
		}
		if _, dup := seen[names[i]]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrArity, names[i])
		}
		seen[names[i]] = struct{}{}

		v, err := uref.Coerce(a, ft.In(i))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArgType, names[i], err)
		}
		values[i] = v
	}
	return &Args{fn: fv, names: append([]string(nil), names...), values: values}, nil
}

// Func returns the function type.
func (a *Args) Func() reflect.Type { return a.fn.Type() }

// Names returns the parameter names in declaration order.
func (a *Args) Names() []string { return append([]string(nil), a.names...) }

// Len returns the number of parameters.
func (a *Args) Len() int { return len(a.values) }

// Index returns the position of the parameter called name, or -1.
func (a *Args) Index(name string) int {
	for i, n := range a.names {
		if n == name {
			return i
		}
	}
	return -1
}

// Value returns the i-th argument.
func (a *Args) Value(i int) any { return a.values[i].Interface() }

// Type returns the declared type of the i-th parameter.
func (a *Args) Type(i int) reflect.Type { return a.fn.Type().In(i) }

// Invoke calls the function with the bound arguments and returns its results.
func (a *Args) Invoke() []any {
	var out []reflect.Value
	if a.fn.Type().IsVariadic() {
		out = a.fn.CallSlice(a.values)
	} else {
		out = a.fn.Call(a.values)
	}
	res := make([]any, len(out))
	for i, v := range out {
		res[i] = v.Interface()
	}
	return res
}
