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

package finder_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/config"
	"dirpx.dev/elx/element"
	"dirpx.dev/elx/finder"
)

func TestClassCache_ScansOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	cfg := config.NewConfig(config.WithLogger(zap.New(core)))
	c := finder.NewClassCache()
	pt := reflect.TypeOf(Person{})

	first := c.Elements(pt, cfg)
	second := c.Elements(pt, cfg)

	require.NotEmpty(t, first)
	assert.Same(t, first[0], second[0])
	assert.Equal(t, 1, c.Len())

	entries := logs.FilterMessage("elx(finder): class scanned").All()
	require.Len(t, entries, 1)
	assert.Equal(t, pt.String(), entries[0].ContextMap()["type"])
}

type Limits struct {
	Low  int `validate:"min=x"`
	High int `validate:"max=10"`
}

func TestClassCache_WarnsOnMalformedTag(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := config.NewConfig(config.WithLogger(zap.New(core)))

	els := finder.NewClassCache().Elements(reflect.TypeOf(Limits{}), cfg)
	require.Len(t, els, 2)

	entries := logs.FilterMessage("elx(finder): malformed annotation").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "low", entries[0].ContextMap()["element"])
}

func TestClassCache_KeyedByConfig(t *testing.T) {
	c := finder.NewClassCache()
	st := reflect.TypeOf(Secret{})

	assert.Len(t, c.Elements(st, config.DefaultConfig()), 1)
	assert.Empty(t, c.Elements(st, config.NewConfig(config.WithUnexported(false))))
	assert.Equal(t, 2, c.Len())
}

func TestClassCache_Bypass(t *testing.T) {
	c := finder.NewClassCache()
	cfg := config.NewConfig(config.WithCachePolicy(apis.Bypass))
	pt := reflect.TypeOf(Person{})

	first := c.Elements(pt, cfg)
	second := c.Elements(pt, cfg)

	require.NotEmpty(t, first)
	assert.NotSame(t, first[0], second[0])
	assert.Equal(t, 0, c.Len())
}

func TestClassCache_ElementNormalizesName(t *testing.T) {
	c := finder.NewClassCache()
	cfg := config.DefaultConfig()

	g, ok := c.Element(reflect.TypeOf(Person{}), "Age", cfg)
	require.True(t, ok)
	assert.Equal(t, "age", g.Name())

	_, ok = c.Element(nil, "age", cfg)
	assert.False(t, ok)
	assert.Nil(t, c.Elements(nil, cfg))
}

func TestClassCache_ConcurrentFirstAccess(t *testing.T) {
	c := finder.NewClassCache()
	cfg := config.DefaultConfig()
	pt := reflect.TypeOf(Account{})

	const workers = 32
	got := make([]*element.Generic, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = c.Elements(pt, cfg)[0]
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Same(t, got[0], got[i])
	}
	assert.Equal(t, 1, c.Len())
}

func TestDefaultClassCache(t *testing.T) {
	assert.Same(t, finder.DefaultClassCache(), finder.DefaultClassCache())
}
