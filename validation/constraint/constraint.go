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

// Package constraint is the catalog of constraint annotations understood by
// the validation engine, and the factory building their validators.
//
// Importing the package registers the parsers of the catalog, so that
// struct tags such as `validate:"notnil,min=1,max=10"` turn into annotations.
package constraint

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"dirpx.dev/elx/annotation"
	"dirpx.dev/elx/apis"
)

// ErrArgument is wrapped by parse failures of constraint arguments.
var ErrArgument = errors.New("elx(constraint): invalid argument")

// NotNil requires a non-nil value.
type NotNil struct{}

// AnnotationName implements apis.Annotation.
func (NotNil) AnnotationName() string { return "notnil" }

// NotEmpty requires a non-nil value with a non-zero length, or a non-zero
// value for kinds without a length.
type NotEmpty struct{}

// AnnotationName implements apis.Annotation.
func (NotEmpty) AnnotationName() string { return "notempty" }

// Min requires a numeric value of at least Value. Nil values pass.
type Min struct {
	Value int64
}

// AnnotationName implements apis.Annotation.
func (Min) AnnotationName() string { return "min" }

// Max requires a numeric value of at most Value. Nil values pass.
type Max struct {
	Value int64
}

// AnnotationName implements apis.Annotation.
func (Max) AnnotationName() string { return "max" }

// Length bounds the length of strings (in runes), slices, arrays and maps.
// A negative Max means no upper bound. Nil values pass.
type Length struct {
	Min int
	Max int
}

// AnnotationName implements apis.Annotation.
func (Length) AnnotationName() string { return "length" }

// Pattern requires the string form of a value to match Expr as a whole.
// Nil values pass.
type Pattern struct {
	Expr string
	re   *regexp.Regexp
}

// AnnotationName implements apis.Annotation.
func (Pattern) AnnotationName() string { return "pattern" }

// Regexp returns the compiled, anchored expression.
func (p Pattern) Regexp() *regexp.Regexp {
	if p.re == nil {
		return regexp.MustCompile(anchor(p.Expr))
	}
	return p.re
}

// Valid asks validation to descend into the element value.
type Valid struct{}

// AnnotationName implements apis.Annotation.
func (Valid) AnnotationName() string { return "valid" }

// Cascade marks Valid as a cascading annotation.
func (Valid) Cascade() {}

func init() {
	annotation.MustRegister("notnil", flag(NotNil{}))
	annotation.MustRegister("notempty", flag(NotEmpty{}))
	annotation.MustRegister("valid", flag(Valid{}))
	annotation.MustRegister("min", func(arg string) (apis.Annotation, error) {
		n, err := integer(arg)
		return Min{Value: n}, err
	})
	annotation.MustRegister("max", func(arg string) (apis.Annotation, error) {
		n, err := integer(arg)
		return Max{Value: n}, err
	})
	annotation.MustRegister("length", parseLength)
	annotation.MustRegister("pattern", parsePattern)
}

// flag parses entries that take no argument.
func flag(a apis.Annotation) annotation.Parser {
	return func(arg string) (apis.Annotation, error) {
		if arg != "" {
			return nil, fmt.Errorf("%w: %s takes no argument", ErrArgument, a.AnnotationName())
		}
		return a, nil
	}
}

func integer(arg string) (int64, error) {
	if arg == "" {
		return 0, fmt.Errorf("%w: missing number", ErrArgument)
	}
	n, err := cast.ToInt64E(arg)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrArgument, err)
	}
	return n, nil
}

// parseLength reads "A:B", "A:" or "A".
func parseLength(arg string) (apis.Annotation, error) {
	lo, hi, bounded := strings.Cut(arg, ":")
	from, err := integer(lo)
	if err != nil {
		return nil, err
	}
	l := Length{Min: int(from), Max: -1}
	if !bounded {
		l.Max = l.Min
		return l, nil
	}
	if hi != "" {
		to, err := integer(hi)
		if err != nil {
			return nil, err
		}
		if to < from {
			return nil, fmt.Errorf("%w: length %d:%d", ErrArgument, from, to)
		}
		l.Max = int(to)
	}
	return l, nil
}

func parsePattern(arg string) (apis.Annotation, error) {
	if arg == "" {
		return nil, fmt.Errorf("%w: empty pattern", ErrArgument)
	}
	re, err := regexp.Compile(anchor(arg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrArgument, err)
	}
	return Pattern{Expr: arg, re: re}, nil
}

func anchor(expr string) string {
	return "^(?:" + expr + ")$"
}
