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

package apis

import "go.uber.org/zap"

// Config carries read-only resolution knobs shared by finders, the class
// elements cache and the dispatcher. It is passed by value and should be
// treated as immutable by implementations.
type Config struct {
	// Separator splits nested element paths, "." by default.
	Separator string

	// TagKey is the struct tag key holding constraint annotations,
	// "validate" by default.
	TagKey string

	// MaxUnwrap limits how many pointer levels are dereferenced when a
	// target's struct type is looked for.
	MaxUnwrap int

	// Unexported controls whether unexported struct fields are listed as
	// elements. They are never accessed directly; an accessor method pair
	// is still required to read or write them.
	Unexported bool

	// CachePolicy controls the class elements cache.
	CachePolicy CachePolicy

	// Logger receives debug traces and warnings. A nil logger is a no-op.
	Logger *zap.Logger
}

// Log returns a usable logger for c.
func (c Config) Log() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
