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
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"dirpx.dev/elx/apis"
)

// ErrInvalid is returned by Result.Err when a target has violations.
var ErrInvalid = errors.New("elx(validation): target is invalid")

// InvalidElement is an element that violates at least one constraint.
type InvalidElement struct {
	// Path is the dotted path of the element from the validated target.
	Path string
	// Element is the offending element.
	Element apis.Element
	// Value is the value that was checked.
	Value any
	// Violations are the violated constraint annotations, in element order.
	Violations []apis.Annotation
}

// Result is the outcome of one validation. It is not modified once
// returned.
type Result struct {
	invalid map[string]*InvalidElement
}

func (r *Result) add(path string, el apis.Element, value any, a apis.Annotation) {
	ie, ok := r.invalid[path]
	if !ok {
		ie = &InvalidElement{Path: path, Element: el, Value: value}
		r.invalid[path] = ie
	}
	ie.Violations = append(ie.Violations, a)
}

// Valid reports whether no constraint was violated.
func (r *Result) Valid() bool { return len(r.invalid) == 0 }

// InvalidElements returns the invalid elements sorted by path.
func (r *Result) InvalidElements() []*InvalidElement {
	out := make([]*InvalidElement, 0, len(r.invalid))
	for _, ie := range r.invalid {
		out = append(out, ie)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// InvalidElement returns the invalid element at path.
func (r *Result) InvalidElement(path string) (*InvalidElement, bool) {
	ie, ok := r.invalid[path]
	return ie, ok
}

// Err returns nil for valid results and an error wrapping ErrInvalid
// describing the violations otherwise.
func (r *Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &Error{Result: r}
}

var valueFormat = spew.ConfigState{
	Indent:                  " ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// String lists one invalid element per line.
func (r *Result) String() string {
	if r.Valid() {
		return "valid"
	}
	var b strings.Builder
	for i, ie := range r.InvalidElements() {
		if i > 0 {
			b.WriteByte('\n')
		}
		names := make([]string, len(ie.Violations))
		for j, a := range ie.Violations {
			names[j] = a.AnnotationName()
		}
		b.WriteString(valueFormat.Sprintf("%s: %v violates %s", ie.Path, ie.Value, strings.Join(names, ", ")))
	}
	return b.String()
}

// Error carries an invalid Result.
type Error struct {
	Result *Result
}

func (e *Error) Error() string {
	return ErrInvalid.Error() + ":\n" + e.Result.String()
}

// Unwrap returns ErrInvalid.
func (e *Error) Unwrap() error { return ErrInvalid }
