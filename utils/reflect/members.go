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

package reflect

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// AccessorKind tells getters from setters.
type AccessorKind int

const (
	// Getter is a zero-argument method returning the property value.
	Getter AccessorKind = iota + 1
	// Setter is a one-argument method storing the property value.
	Setter
)

// Accessor is an accessor method recognised by naming convention.
type Accessor struct {
	// Kind is Getter or Setter.
	Kind AccessorKind
	// Property is the property name derived from the method name.
	Property string
	// Bare marks getters without a Get/Is prefix ("Name()"). They only count
	// as getters when a field or setter of the same property exists.
	Bare bool
	// Method is the method as found in the method set (receiver included).
	Method reflect.Method
	// Type is the property type: the getter result or the setter parameter.
	Type reflect.Type
	// Fallible marks setters returning an error.
	Fallible bool
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// PropertyName converts a Go member name into an element name by lowering
// the first rune. Names starting with two upper-case runes ("URL", "ID")
// are kept as they are.
func PropertyName(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(r) {
		return s
	}
	if n < len(s) {
		if r2, _ := utf8.DecodeRuneInString(s[n:]); unicode.IsUpper(r2) {
			return s
		}
	}
	return string(unicode.ToLower(r)) + s[n:]
}

// ClassifyMethod recognises getters ("X()", "GetX()", "IsX() bool") and
// setters ("SetX(v)", "SetX(v) error") among methods obtained from a method
// set, receiver included in m.Type.
func ClassifyMethod(m reflect.Method) (Accessor, bool) {
	ft := m.Type
	if !m.IsExported() || ft.IsVariadic() {
		return Accessor{}, false
	}
	switch {
	case ft.NumIn() == 1 && ft.NumOut() == 1 && ft.Out(0) != errorType:
		out := ft.Out(0)
		if prop, ok := cutPrefix(m.Name, "Get"); ok {
			return Accessor{Kind: Getter, Property: prop, Method: m, Type: out}, true
		}
		if prop, ok := cutPrefix(m.Name, "Is"); ok && out.Kind() == reflect.Bool {
			return Accessor{Kind: Getter, Property: prop, Method: m, Type: out}, true
		}
		return Accessor{Kind: Getter, Property: PropertyName(m.Name), Bare: true, Method: m, Type: out}, true

	case ft.NumIn() == 2 && (ft.NumOut() == 0 || (ft.NumOut() == 1 && ft.Out(0) == errorType)):
		if prop, ok := cutPrefix(m.Name, "Set"); ok {
			return Accessor{Kind: Setter, Property: prop, Method: m, Type: ft.In(1), Fallible: ft.NumOut() == 1}, true
		}
	}
	return Accessor{}, false
}

// cutPrefix strips an accessor prefix that is followed by an upper-case rune
// and returns the property name of the remainder.
func cutPrefix(name, prefix string) (string, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok || rest == "" {
		return "", false
	}
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsUpper(r) {
		return "", false
	}
	return PropertyName(rest), true
}

// DeclaredFields returns the fields of struct type t in declaration order,
// embedded fields included and blank fields skipped.
func DeclaredFields(t reflect.Type) []reflect.StructField {
	if t.Kind() != reflect.Struct {
		return nil
	}
	out := make([]reflect.StructField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == "_" {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Embedded returns the embedded fields of struct type t whose type, after
// one pointer dereference, is a struct.
func Embedded(t reflect.Type) []reflect.StructField {
	if t.Kind() != reflect.Struct {
		return nil
	}
	var out []reflect.StructField
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct {
			out = append(out, f)
		}
	}
	return out
}

// MethodSet returns the methods callable on an addressable value of t,
// i.e. the method set of *t. Interface types yield their own methods.
func MethodSet(t reflect.Type) []reflect.Method {
	mt := t
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
		mt = reflect.PointerTo(t)
	}
	out := make([]reflect.Method, 0, mt.NumMethod())
	for i := 0; i < mt.NumMethod(); i++ {
		out = append(out, mt.Method(i))
	}
	return out
}

// DeclaredMethods returns the methods of MethodSet(t) that are not promoted
// from embedded fields. A method redeclared by t with the name of a method of
// an embedded field is attributed to the embedded field; calls made through
// a value of t still dispatch to t's own method.
func DeclaredMethods(t reflect.Type) []reflect.Method {
	promoted := make(map[string]struct{})
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.Anonymous {
				continue
			}
			for _, m := range MethodSet(f.Type) {
				promoted[m.Name] = struct{}{}
			}
		}
	}
	all := MethodSet(t)
	out := all[:0:0]
	for _, m := range all {
		if _, ok := promoted[m.Name]; !ok {
			out = append(out, m)
		}
	}
	return out
}

// FuncType returns the signature of m without its receiver.
func FuncType(m reflect.Method) reflect.Type {
	ft := m.Type
	in := make([]reflect.Type, 0, ft.NumIn())
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	out := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		out = append(out, ft.Out(i))
	}
	return reflect.FuncOf(in, out, ft.IsVariadic())
}
