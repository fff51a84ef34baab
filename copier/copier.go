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

// Package copier copies element values between targets by element name.
package copier

import (
	"reflect"

	"go.uber.org/zap"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/predicate"
	uref "dirpx.dev/elx/utils/reflect"
)

// Copier copies the readable elements of a source into the writable
// elements of the same name of a destination.
//
// A value whose type does not fit the destination element is skipped, not
// reported. Read and write failures are returned.
type Copier struct {
	res     apis.Resolver
	dst     any
	log     *zap.Logger
	sel     predicate.Predicate
	filters []func(el apis.Element, value any) bool
	mapper  func(el apis.Element, value any) any
}

// New returns a copier into dst resolving elements with res.
func New(res apis.Resolver, dst any) Copier {
	return Copier{res: res, dst: dst, log: zap.NewNop()}
}

// WithLogger returns a copier logging skipped elements to l.
func (c Copier) WithLogger(l *zap.Logger) Copier {
	if l == nil {
		l = zap.NewNop()
	}
	c.log = l
	return c
}

// NotNil skips nil source values.
func (c Copier) NotNil() Copier {
	return c.Filter(func(_ apis.Element, v any) bool { return !uref.IsNil(v) })
}

// Filter vetoes the copy of a value when f returns false. Filters see the
// source element and its value before Map.
func (c Copier) Filter(f func(el apis.Element, value any) bool) Copier {
	if f == nil {
		return c
	}
	c.filters = append(append([]func(apis.Element, any) bool(nil), c.filters...), f)
	return c
}

// Map rewrites values before the type check. Successive calls compose.
func (c Copier) Map(f func(el apis.Element, value any) any) Copier {
	if f == nil {
		return c
	}
	prev := c.mapper
	c.mapper = func(el apis.Element, v any) any {
		if prev != nil {
			v = prev(el, v)
		}
		return f(el, v)
	}
	return c
}

// Select restricts the copy to source elements accepted by p.
func (c Copier) Select(p predicate.Predicate) Copier {
	if p == nil {
		return c
	}
	if c.sel == nil {
		c.sel = p
	} else {
		c.sel = predicate.And(c.sel, p)
	}
	return c
}

// From copies src into the destination. When src and the destination have
// the same type the source elements are rebound to the destination;
// otherwise destination elements are resolved by name.
func (c Copier) From(src any) error {
	if c.res == nil || src == nil || c.dst == nil {
		return nil
	}
	els, err := c.res.FindAll(src)
	if err != nil {
		return err
	}
	same := reflect.TypeOf(src) == reflect.TypeOf(c.dst)

	for _, s := range els {
		if c.sel != nil && !c.sel(s) {
			continue
		}
		if !s.Readable() {
			continue
		}

		var d apis.Element
		if same {
			d = s.Bind(c.dst)
		} else {
			found, ok, err := c.res.Find(s.Name(), c.dst)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			d = found
		}
		if !d.Writable() {
			continue
		}

		v, err := s.Get()
		if err != nil {
			return err
		}
		if !c.accept(s, v) {
			continue
		}
		if c.mapper != nil {
			v = c.mapper(s, v)
		}
		if !fits(v, d.Type()) {
			c.log.Debug("elx(copier): incompatible value skipped",
				zap.String("element", s.Name()),
				zap.Stringer("type", d.Type()),
				zap.String("value", typeName(v)))
			continue
		}
		if err := d.Set(v); err != nil {
			return err
		}
	}
	return nil
}

func (c Copier) accept(el apis.Element, v any) bool {
	for _, f := range c.filters {
		if !f(el, v) {
			return false
		}
	}
	return true
}

// fits reports whether v can be stored in a slot of type to.
func fits(v any, to reflect.Type) bool {
	if v == nil {
		return to != nil && uref.Nillable(to)
	}
	return uref.Assignable(reflect.TypeOf(v), to)
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
