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

import "reflect"

// Registry is an ordered table of (TypePredicate, Finder) pairs.
// Lookup returns the Finder of the first entry whose predicate accepts a type.
type Registry interface {
	// Register appends a caller-supplied Finder for the types accepted by when.
	// Caller entries are consulted before the built-in ones.
	Register(when TypePredicate, f Finder) error
	// Lookup returns the Finder responsible for t, if any.
	Lookup(t reflect.Type) (f Finder, ok bool)
	// Entries returns a snapshot of the table in consultation order.
	Entries() []Entry
	// Count returns the number of entries, built-ins included.
	Count() int
	// Reset drops caller entries; built-in entries are kept.
	Reset()
}

// Entry is a single row of a Registry snapshot.
type Entry struct {
	// When selects the types handled by Finder.
	When TypePredicate
	// Finder handles the selected types.
	Finder Finder
	// Builtin marks entries installed by the Builder.
	Builtin bool
}
