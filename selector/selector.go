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

// Package selector provides the query builders used to pick one element or
// a set of elements of a target.
//
// Selectors are immutable values: every modifier returns a new selector and
// leaves its receiver untouched, so one selector can be shared by many
// goroutines and reused against many targets.
package selector

import (
	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/predicate"
)

// ElementSelector selects one element by name.
type ElementSelector struct {
	res    apis.Resolver
	name   string
	filter predicate.Predicate
}

// Element returns a selector for the element called name, resolved by res.
func Element(res apis.Resolver, name string) ElementSelector {
	return ElementSelector{res: res, name: name}
}

// Name returns the selected name.
func (s ElementSelector) Name() string { return s.name }

// Filter narrows the selector with p. Successive filters are AND-composed.
func (s ElementSelector) Filter(p predicate.Predicate) ElementSelector {
	s.filter = and(s.filter, p)
	return s
}

// From resolves the element on target. An element rejected by the filter is
// reported as absent.
func (s ElementSelector) From(target any) (apis.Element, bool, error) {
	if s.res == nil {
		return nil, false, nil
	}
	el, ok, err := s.res.Find(s.name, target)
	if err != nil || !ok {
		return nil, false, err
	}
	if s.filter != nil && !s.filter(el) {
		return nil, false, nil
	}
	return el, true, nil
}

// ElementsSelector selects every element of a target that passes a filter.
type ElementsSelector struct {
	res    apis.Resolver
	filter predicate.Predicate
}

// Elements returns a selector for every element resolved by res.
func Elements(res apis.Resolver) ElementsSelector {
	return ElementsSelector{res: res}
}

// Resolver returns the resolver the selector uses.
func (s ElementsSelector) Resolver() apis.Resolver { return s.res }

// Filter narrows the selector with p. Successive filters are AND-composed.
func (s ElementsSelector) Filter(p predicate.Predicate) ElementsSelector {
	s.filter = and(s.filter, p)
	return s
}

// From resolves the elements of target that pass the filter, in the order
// the resolver returns them.
func (s ElementsSelector) From(target any) ([]apis.Element, error) {
	if s.res == nil {
		return nil, nil
	}
	els, err := s.res.FindAll(target)
	if err != nil {
		return nil, err
	}
	if s.filter == nil {
		return els, nil
	}
	out := els[:0:0]
	for _, el := range els {
		if s.filter(el) {
			out = append(out, el)
		}
	}
	return out, nil
}

func and(a, b predicate.Predicate) predicate.Predicate {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	default:
		return predicate.And(a, b)
	}
}
