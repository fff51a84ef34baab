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

package constraint

import (
	"cmp"
	"fmt"
	"math"
	"reflect"
	"unicode/utf8"

	"github.com/spf13/cast"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/validation"
	uref "dirpx.dev/elx/utils/reflect"
)

// Factory builds the validators of the catalog.
type Factory struct{}

// Ensure Factory implements validation.Factory.
var _ validation.Factory = Factory{}

// Factories returns the factories of the catalog, ready for validation.New.
func Factories() []validation.Factory {
	return []validation.Factory{Factory{}}
}

// Supports reports whether a belongs to the catalog. Valid is handled by
// the engine itself.
func (Factory) Supports(a apis.Annotation) bool {
	switch a.(type) {
	case NotNil, NotEmpty, Min, Max, Length, Pattern:
		return true
	default:
		return false
	}
}

// Create returns the validator of a.
func (Factory) Create(a apis.Annotation) (validation.Validator, error) {
	switch c := a.(type) {
	case NotNil:
		return validation.ValidatorFunc(func(v any) bool { return !uref.IsNil(v) }), nil
	case NotEmpty:
		return validation.ValidatorFunc(notEmpty), nil
	case Min:
		return validation.ValidatorFunc(func(v any) bool {
			return bounded(v, c.Value, func(sign int) bool { return sign >= 0 })
		}), nil
	case Max:
		return validation.ValidatorFunc(func(v any) bool {
			return bounded(v, c.Value, func(sign int) bool { return sign <= 0 })
		}), nil
	case Length:
		return validation.ValidatorFunc(func(v any) bool {
			if uref.IsNil(v) {
				return true
			}
			n, ok := length(v)
			return ok && n >= c.Min && (c.Max < 0 || n <= c.Max)
		}), nil
	case Pattern:
		re := c.Regexp()
		return validation.ValidatorFunc(func(v any) bool {
			if uref.IsNil(v) {
				return true
			}
			s, err := cast.ToStringE(v)
			return err == nil && re.MatchString(s)
		}), nil
	default:
		return nil, fmt.Errorf("elx(constraint): unsupported annotation %T", a)
	}
}

func notEmpty(v any) bool {
	if uref.IsNil(v) {
		return false
	}
	if n, ok := length(v); ok {
		return n > 0
	}
	return !reflect.ValueOf(v).IsZero()
}

// bounded compares v with limit and applies ok to the sign of v - limit.
// Integer kinds are compared exactly; floats and values with a numeric
// reading go through float64. Nil passes; values without a numeric reading
// fail.
func bounded(v any, limit int64, ok func(sign int) bool) bool {
	if uref.IsNil(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return ok(cmp.Compare(rv.Int(), limit))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if limit < 0 {
			return ok(1)
		}
		return ok(cmp.Compare(rv.Uint(), uint64(limit)))
	case reflect.Float32, reflect.Float64:
		return floatBounded(rv.Float(), limit, ok)
	}
	if i, err := cast.ToInt64E(v); err == nil {
		return ok(cmp.Compare(i, limit))
	}
	f, err := cast.ToFloat64E(v)
	return err == nil && floatBounded(f, limit, ok)
}

func floatBounded(f float64, limit int64, ok func(sign int) bool) bool {
	if math.IsNaN(f) {
		return false
	}
	return ok(cmp.Compare(f, float64(limit)))
}

// length returns the length of strings in runes and of containers in items.
func length(v any) (int, bool) {
	if s, ok := v.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return utf8.RuneCountInString(rv.String()), true
	case reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return rv.Len(), true
	default:
		return 0, false
	}
}
