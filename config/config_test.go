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

package config_test

import (
	"testing"

	"go.uber.org/zap"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/config"
)

func TestDefaultConfigValues(t *testing.T) {
	got := config.DefaultConfig()

	if got.Separator != config.DefaultSeparator {
		t.Fatalf("Separator = %q, want %q", got.Separator, config.DefaultSeparator)
	}
	if got.TagKey != config.DefaultTagKey {
		t.Fatalf("TagKey = %q, want %q", got.TagKey, config.DefaultTagKey)
	}
	if got.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("MaxUnwrap = %d, want %d", got.MaxUnwrap, config.DefaultMaxUnwrap)
	}
	if got.Unexported != config.DefaultUnexported {
		t.Fatalf("Unexported = %v, want %v", got.Unexported, config.DefaultUnexported)
	}
	if got.CachePolicy != config.DefaultCachePolicy {
		t.Fatalf("CachePolicy = %v, want %v", got.CachePolicy, config.DefaultCachePolicy)
	}
	if got.Logger == nil {
		t.Fatal("Logger = nil, want a no-op logger")
	}
}

func TestNewConfig_NoOptions_EqualsDefault(t *testing.T) {
	def := config.DefaultConfig()
	got := config.NewConfig()
	if got != def {
		t.Fatalf("NewConfig() = %+v, want default %+v", got, def)
	}
}

func TestWithSeparator(t *testing.T) {
	c := config.NewConfig(config.WithSeparator("/"))
	if c.Separator != "/" {
		t.Fatalf("Separator = %q, want %q", c.Separator, "/")
	}

	c2 := config.NewConfig(config.WithSeparator(""))
	if c2.Separator != config.DefaultSeparator {
		t.Fatalf("Separator = %q, want default %q", c2.Separator, config.DefaultSeparator)
	}
}

func TestWithTagKey_EmptyResetsToDefault(t *testing.T) {
	c := config.NewConfig(config.WithTagKey("check"))
	if c.TagKey != "check" {
		t.Fatalf("TagKey = %q, want check", c.TagKey)
	}

	c2 := config.NewConfig(config.WithTagKey(""))
	if c2.TagKey != config.DefaultTagKey {
		t.Fatalf("TagKey = %q, want default %q", c2.TagKey, config.DefaultTagKey)
	}
}

func TestWithMaxUnwrap(t *testing.T) {
	c := config.NewConfig(config.WithMaxUnwrap(3))
	if c.MaxUnwrap != 3 {
		t.Fatalf("MaxUnwrap = %d, want 3", c.MaxUnwrap)
	}

	for _, n := range []int{0, -1} {
		c := config.NewConfig(config.WithMaxUnwrap(n))
		if c.MaxUnwrap != config.DefaultMaxUnwrap {
			t.Fatalf("WithMaxUnwrap(%d): MaxUnwrap = %d, want default %d", n, c.MaxUnwrap, config.DefaultMaxUnwrap)
		}
	}
}

func TestWithUnexportedAndCachePolicy(t *testing.T) {
	c := config.NewConfig(config.WithUnexported(false), config.WithCachePolicy(apis.Bypass))
	if c.Unexported {
		t.Fatal("Unexported = true, want false")
	}
	if c.CachePolicy != apis.Bypass {
		t.Fatalf("CachePolicy = %v, want Bypass", c.CachePolicy)
	}
}

func TestWithLogger(t *testing.T) {
	l := zap.NewExample()
	c := config.NewConfig(config.WithLogger(l))
	if c.Logger != l {
		t.Fatal("Logger was not installed")
	}

	c2 := config.NewConfig(config.WithLogger(nil))
	if c2.Logger == nil {
		t.Fatal("WithLogger(nil) left a nil logger")
	}
}

func TestOptionsOrder_LastWins(t *testing.T) {
	c := config.NewConfig(
		config.WithSeparator("/"),
		config.WithSeparator(":"),
		config.WithMaxUnwrap(2),
		config.WithMaxUnwrap(5),
		config.WithUnexported(false),
		config.WithUnexported(true),
	)

	if c.Separator != ":" {
		t.Errorf("Separator = %q, want %q (last option wins)", c.Separator, ":")
	}
	if c.MaxUnwrap != 5 {
		t.Errorf("MaxUnwrap = %d, want 5 (last option wins)", c.MaxUnwrap)
	}
	if !c.Unexported {
		t.Errorf("Unexported = %v, want true (last option wins)", c.Unexported)
	}
}

func TestSanitize_FillsZeroConfig(t *testing.T) {
	c := config.Sanitize(apis.Config{})
	if c.Separator != config.DefaultSeparator || c.TagKey != config.DefaultTagKey || c.MaxUnwrap != config.DefaultMaxUnwrap {
		t.Fatalf("Sanitize(zero) = %+v", c)
	}
	if c.Logger == nil {
		t.Fatal("Sanitize(zero) left a nil logger")
	}
}
