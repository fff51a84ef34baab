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

package annotation

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"dirpx.dev/elx/apis"
	uref "dirpx.dev/elx/utils/reflect"
)

var (
	// ErrEmptyName is returned when a parser is registered without a name.
	ErrEmptyName = errors.New("elx(annotation): empty annotation name")
	// ErrNilParser is returned when a nil parser is registered.
	ErrNilParser = errors.New("elx(annotation): nil parser")
	// ErrMalformed is wrapped by Malformed.Err.
	ErrMalformed = errors.New("elx(annotation): malformed annotation")
)

// Tag is the annotation carried by one struct tag entry, e.g. `json:"id"`.
type Tag struct {
	Key   string
	Value string
}

// AnnotationName returns the tag key.
func (t Tag) AnnotationName() string { return t.Key }

// Unknown is a constraint entry no parser is registered for.
type Unknown struct {
	Name string
	Arg  string
}

// AnnotationName returns the entry name.
func (u Unknown) AnnotationName() string { return u.Name }

// Malformed is a constraint entry whose parser rejected the argument.
type Malformed struct {
	Name string
	Arg  string
	Err  error
}

// AnnotationName returns the entry name.
func (m Malformed) AnnotationName() string { return m.Name }

// Error describes the parse failure.
func (m Malformed) Error() string {
	return fmt.Sprintf("%v: %s=%q: %v", ErrMalformed, m.Name, m.Arg, m.Err)
}

// Unwrap exposes ErrMalformed and the parser error.
func (m Malformed) Unwrap() []error { return []error{ErrMalformed, m.Err} }

// Parser builds an annotation from the argument of a constraint entry.
// arg is empty for entries without "=".
type Parser func(arg string) (apis.Annotation, error)

var (
	parsersMu sync.RWMutex
	parsers   = map[string]Parser{}
)

// Register installs p for constraint entries called name, replacing any
// previous parser.
func Register(name string, p Parser) error {
	if name == "" {
		return ErrEmptyName
	}
	if p == nil {
		return ErrNilParser
	}
	parsersMu.Lock()
	defer parsersMu.Unlock()
	parsers[name] = p
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(name string, p Parser) {
	if err := Register(name, p); err != nil {
		panic(err)
	}
}

// Registered returns the names of the installed parsers, sorted.
func Registered() []string {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	out := make([]string, 0, len(parsers))
	for name := range parsers {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func lookup(name string) (Parser, bool) {
	parsersMu.RLock()
	defer parsersMu.RUnlock()
	p, ok := parsers[name]
	return p, ok
}

// Parse turns a constraint tag value such as "notnil,min=1,max=10" into
// annotations, one per comma-separated entry, in order. Empty entries and
// "-" are skipped.
func Parse(tag string) []apis.Annotation {
	if tag == "" || tag == "-" {
		return nil
	}
	var out []apis.Annotation
	for _, entry := range strings.Split(tag, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, arg, _ := strings.Cut(entry, "=")
		name = strings.TrimSpace(name)
		arg = strings.TrimSpace(arg)

		p, ok := lookup(name)
		if !ok {
			out = append(out, Unknown{Name: name, Arg: arg})
			continue
		}
		a, err := p(arg)
		if err != nil {
			out = append(out, Malformed{Name: name, Arg: arg, Err: err})
			continue
		}
		out = append(out, a)
	}
	return out
}

// FromField returns the annotations of a struct field: one Tag per tag key,
// followed by the parsed constraints of constraintKey.
func FromField(f reflect.StructField, constraintKey string) []apis.Annotation {
	keys := uref.TagKeys(f.Tag)
	if len(keys) == 0 {
		return nil
	}
	out := make([]apis.Annotation, 0, len(keys))
	for _, k := range keys {
		v, _ := f.Tag.Lookup(k)
		out = append(out, Tag{Key: k, Value: v})
	}
	if constraintKey != "" {
		if v, ok := f.Tag.Lookup(constraintKey); ok {
			out = append(out, Parse(v)...)
		}
	}
	return out
}

// ForMember returns the annotations t attaches to member through
// apis.MemberAnnotator, if it implements it on its value or pointer.
func ForMember(t reflect.Type, member string) []apis.Annotation {
	if t == nil || t.Kind() == reflect.Interface {
		return nil
	}
	ma, ok := reflect.New(t).Interface().(apis.MemberAnnotator)
	if !ok {
		return nil
	}
	return ma.MemberAnnotations(member)
}

// Find returns the first annotation of type A in as.
func Find[A apis.Annotation](as []apis.Annotation) (A, bool) {
	for _, a := range as {
		if v, ok := a.(A); ok {
			return v, true
		}
	}
	var zero A
	return zero, false
}

// Has reports whether as contains an annotation of type A.
func Has[A apis.Annotation](as []apis.Annotation) bool {
	_, ok := Find[A](as)
	return ok
}
