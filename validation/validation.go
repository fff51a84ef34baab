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

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"dirpx.dev/elx/annotation"
	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/selector"
	uref "dirpx.dev/elx/utils/reflect"
)

// ErrCreate is wrapped by the error returned when a factory fails to build
// a validator.
var ErrCreate = errors.New("elx(validation): cannot create validator")

// Validator checks one value against one constraint.
type Validator interface {
	Valid(value any) bool
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc func(value any) bool

// Valid calls f(value).
func (f ValidatorFunc) Valid(value any) bool { return f(value) }

// Factory builds validators for the annotations it supports.
type Factory interface {
	Supports(a apis.Annotation) bool
	Create(a apis.Annotation) (Validator, error)
}

// Cascade is implemented by annotations asking validation to descend into
// the value of the element they annotate.
type Cascade interface {
	apis.Annotation
	Cascade()
}

// Engine validates the annotated elements of targets.
type Engine struct {
	factories []Factory
	log       *zap.Logger
	// validators memoizes validators of comparable annotations.
	validators sync.Map // apis.Annotation -> Validator
}

// New returns an engine consulting factories in order. Malformed
// annotations always fail at creation time, whatever the factories.
func New(factories ...Factory) *Engine {
	fs := make([]Factory, 0, len(factories)+1)
	fs = append(fs, malformedFactory{})
	for _, f := range factories {
		if f != nil {
			fs = append(fs, f)
		}
	}
	return &Engine{factories: fs, log: zap.NewNop()}
}

// WithLogger sets the logger receiving violations at debug level and
// returns e.
func (e *Engine) WithLogger(l *zap.Logger) *Engine {
	if l == nil {
		l = zap.NewNop()
	}
	e.log = l
	return e
}

// Validate returns the validation of the elements sel selects.
func (e *Engine) Validate(sel selector.ElementsSelector) Validation {
	return Validation{e: e, sel: sel}
}

// Validation is a pending validation, run against a target by In.
type Validation struct {
	e   *Engine
	sel selector.ElementsSelector
}

// In validates target. Every element is checked against every constraint
// annotation it carries; violations are collected, not short-circuited.
// The returned error reports resolution, read and validator creation
// failures, never violations.
func (v Validation) In(target any) (*Result, error) {
	r := &Result{invalid: map[string]*InvalidElement{}}
	w := &walk{e: v.e, sel: v.sel, res: r, visiting: map[identity]struct{}{}}
	if rv := reflect.ValueOf(target); rv.Kind() == reflect.Pointer && !rv.IsNil() {
		w.visiting[identity{t: rv.Type(), p: rv.Pointer()}] = struct{}{}
	}
	if err := w.target(target, ""); err != nil {
		return nil, err
	}
	return r, nil
}

type identity struct {
	t reflect.Type
	p uintptr
}

// walk is the state of one In call.
type walk struct {
	e        *Engine
	sel      selector.ElementsSelector
	res      *Result
	visiting map[identity]struct{}
}

func (w *walk) target(target any, prefix string) error {
	els, err := w.sel.From(target)
	if err != nil {
		return err
	}
	for _, el := range els {
		if err := w.element(el, join(prefix, el.Name())); err != nil {
			return err
		}
	}
	return nil
}

func (w *walk) element(el apis.Element, path string) error {
	if !el.Readable() {
		return nil
	}
	var (
		value   any
		fetched bool
		cascade bool
	)
	fetch := func() error {
		if fetched {
			return nil
		}
		v, err := el.Get()
		if err != nil {
			return err
		}
		value, fetched = v, true
		return nil
	}

	for _, a := range el.Annotations() {
		if _, ok := a.(Cascade); ok {
			cascade = true
			continue
		}
		val, ok, err := w.e.validator(a)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if !ok {
			continue
		}
		if err := fetch(); err != nil {
			return err
		}
		if !val.Valid(value) {
			w.res.add(path, el, value, a)
			w.e.log.Debug("elx(validation): constraint violated",
				zap.String("path", path),
				zap.String("constraint", a.AnnotationName()))
		}
	}

	if !cascade {
		return nil
	}
	if err := fetch(); err != nil {
		return err
	}
	return w.descend(value, path)
}

// descend validates the elements of v: struct fields directly, slice and
// array items by index and string-keyed map entries by key. Values already
// on the current path are skipped.
func (w *walk) descend(v any, path string) error {
	if uref.IsNil(v) {
		return nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		id := identity{t: rv.Type(), p: rv.Pointer()}
		if _, ok := w.visiting[id]; ok {
			return nil
		}
		w.visiting[id] = struct{}{}
		defer delete(w.visiting, id)
	}

	iv := reflect.Indirect(rv)
	switch iv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < iv.Len(); i++ {
			if err := w.descend(iv.Index(i).Interface(), join(path, strconv.Itoa(i))); err != nil {
				return err
			}
		}
		return nil
	case reflect.Map:
		if iv.Type().Key().Kind() != reflect.String {
			return nil
		}
		keys := make([]string, 0, iv.Len())
		for _, k := range iv.MapKeys() {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		for _, k := range keys {
			item := iv.MapIndex(reflect.ValueOf(k).Convert(iv.Type().Key()))
			if err := w.descend(item.Interface(), join(path, k)); err != nil {
				return err
			}
		}
		return nil
	case reflect.Struct:
		return w.target(v, path)
	}
	return nil
}

// validator returns the validator of a, memoized when a is comparable.
func (e *Engine) validator(a apis.Annotation) (Validator, bool, error) {
	key := reflect.ValueOf(a)
	memo := key.Comparable()
	if memo {
		if v, ok := e.validators.Load(a); ok {
			return v.(Validator), true, nil
		}
	}
	for _, f := range e.factories {
		if !f.Supports(a) {
			continue
		}
		v, err := f.Create(a)
		if err != nil {
			return nil, false, fmt.Errorf("%w %q: %w", ErrCreate, a.AnnotationName(), err)
		}
		if memo {
			e.validators.Store(a, v)
		}
		return v, true, nil
	}
	return nil, false, nil
}

// malformedFactory fails on annotations whose tag entry could not be parsed.
type malformedFactory struct{}

func (malformedFactory) Supports(a apis.Annotation) bool {
	_, ok := a.(annotation.Malformed)
	return ok
}

func (malformedFactory) Create(a apis.Annotation) (Validator, error) {
	return nil, a.(annotation.Malformed)
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
