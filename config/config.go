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

package config

import (
	"go.uber.org/zap"

	"dirpx.dev/elx/apis"
)

const (
	// DefaultSeparator splits nested element paths.
	DefaultSeparator = "."
	// DefaultTagKey is the struct tag key holding constraint annotations.
	DefaultTagKey = "validate"
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultUnexported lists unexported fields as (inaccessible) elements.
	DefaultUnexported = true
	// DefaultCachePolicy keeps scanned types for the process lifetime.
	DefaultCachePolicy = apis.Retain
)

// nop is shared so that default configs compare equal.
var nop = zap.NewNop()

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return Sanitize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		Separator:   DefaultSeparator,
		TagKey:      DefaultTagKey,
		MaxUnwrap:   DefaultMaxUnwrap,
		Unexported:  DefaultUnexported,
		CachePolicy: DefaultCachePolicy,
		Logger:      nop,
	}
}

// Sanitize replaces invalid knobs of cfg with their defaults.
func Sanitize(cfg apis.Config) apis.Config {
	if cfg.Separator == "" {
		cfg.Separator = DefaultSeparator
	}
	if cfg.TagKey == "" {
		cfg.TagKey = DefaultTagKey
	}
	if cfg.MaxUnwrap <= 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	if cfg.Logger == nil {
		cfg.Logger = nop
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithSeparator sets the nested path separator.
// An empty separator resets to the default.
func WithSeparator(sep string) Option {
	return func(c *apis.Config) {
		if sep == "" {
			c.Separator = DefaultSeparator
			return
		}
		c.Separator = sep
	}
}

// WithTagKey sets the struct tag key parsed into constraint annotations.
func WithTagKey(key string) Option {
	return func(c *apis.Config) {
		c.TagKey = key
	}
}

// WithMaxUnwrap sets the MaxUnwrap option.
// A non-positive value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max <= 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithUnexported sets the Unexported option.
func WithUnexported(include bool) Option {
	return func(c *apis.Config) {
		c.Unexported = include
	}
}

// WithCachePolicy sets the class elements cache policy.
func WithCachePolicy(p apis.CachePolicy) Option {
	return func(c *apis.Config) {
		c.CachePolicy = p
	}
}

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *apis.Config) {
		if l == nil {
			l = nop
		}
		c.Logger = l
	}
}
