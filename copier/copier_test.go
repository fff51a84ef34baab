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

package copier_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/builder"
	"dirpx.dev/elx/config"
	"dirpx.dev/elx/copier"
	"dirpx.dev/elx/finder"
	"dirpx.dev/elx/predicate"
)

type Person struct {
	Name  string
	Age   int
	Email *string
}

type PersonDTO struct {
	Name  string
	Age   int64
	Email string
}

var errRejected = errors.New("rejected")

type Strict struct{ age int }

func (s *Strict) GetAge() int { return s.age }

func (s *Strict) SetAge(int) error { return errRejected }

func newResolver() apis.Resolver {
	cfg := config.DefaultConfig()
	b := builder.NewWithCache(finder.NewClassCache())
	return b.BuildResolver(cfg, b.BuildRegistry(cfg, nil))
}

func TestCopy_ObjectToMap(t *testing.T) {
	dest := map[string]any{}
	require.NoError(t, copier.New(newResolver(), dest).From(&Person{Name: "ann", Age: 23}))

	assert.Equal(t, 23, dest["age"])
	assert.Equal(t, "ann", dest["name"])
	assert.Contains(t, dest, "email")
}

func TestCopy_NotNil(t *testing.T) {
	dest := map[string]any{}
	require.NoError(t, copier.New(newResolver(), dest).NotNil().From(&Person{Age: 23}))

	assert.NotContains(t, dest, "email")
	assert.Equal(t, 23, dest["age"])
}

func TestCopy_MapToObject(t *testing.T) {
	p := &Person{}
	src := map[string]any{"name": "bob", "age": int32(40), "unknown": 1}
	require.NoError(t, copier.New(newResolver(), p).From(src))

	assert.Equal(t, "bob", p.Name)
	assert.Equal(t, 40, p.Age)
}

func TestCopy_SameTypeRebinds(t *testing.T) {
	email := "a@example.com"
	src := &Person{Name: "ann", Age: 23, Email: &email}
	dst := &Person{}
	require.NoError(t, copier.New(newResolver(), dst).From(src))

	assert.Equal(t, *src, *dst)
}

func TestCopy_IncompatibleValueSkipped(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	email := "a@example.com"
	dto := &PersonDTO{Email: "keep"}

	err := copier.New(newResolver(), dto).
		WithLogger(zap.New(core)).
		From(&Person{Name: "ann", Age: 23, Email: &email})
	require.NoError(t, err)

	assert.Equal(t, "ann", dto.Name)
	assert.Equal(t, int64(23), dto.Age)
	assert.Equal(t, "keep", dto.Email)

	entries := logs.FilterMessage("elx(copier): incompatible value skipped").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "email", entries[0].ContextMap()["element"])
}

func TestCopy_FilterMapSelect(t *testing.T) {
	dest := map[string]any{}
	err := copier.New(newResolver(), dest).
		Select(predicate.Named("name", "age")).
		Filter(func(el apis.Element, _ any) bool { return el.Name() != "age" }).
		Map(func(_ apis.Element, v any) any {
			if s, ok := v.(string); ok {
				return strings.ToUpper(s)
			}
			return v
		}).
		Map(func(_ apis.Element, v any) any {
			if s, ok := v.(string); ok {
				return s + "!"
			}
			return v
		}).
		From(&Person{Name: "ann", Age: 23})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "ANN!"}, dest)
}

func TestCopy_WriteErrorPropagates(t *testing.T) {
	err := copier.New(newResolver(), &Strict{}).From(map[string]any{"age": 3})
	assert.ErrorIs(t, err, errRejected)
}

func TestCopy_NilArguments(t *testing.T) {
	assert.NoError(t, copier.New(nil, map[string]any{}).From(&Person{}))
	assert.NoError(t, copier.New(newResolver(), nil).From(&Person{}))
	assert.NoError(t, copier.New(newResolver(), map[string]any{}).From(nil))
}
