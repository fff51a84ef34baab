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

// Package elx provides a global, process-wide element resolution service.
//
// An element is a named, typed slot of a target: a struct property (field
// and/or GetX/SetX accessors), a map entry, a slice or array item, an
// annotation attribute, a properties or bundle key, a result-set column or
// a call argument. elx resolves elements uniformly whatever the target
// kind, reads and writes them, copies them between targets and validates
// them against the constraints their struct tags declare.
//
// # Design
//
// The core of elx is a read-mostly global snapshot (state) holding:
//
//   - Config: separator of nested paths, constraint tag key, pointer
//     unwrap limit, unexported field listing, class cache policy and the
//     zap logger.
//
//   - Registry: an ordered table of (type predicate, finder) pairs. Caller
//     entries (Register) are consulted before the built-in ones; types no
//     entry accepts go to the plain-object finder.
//
//   - Resolver: the dispatcher. It routes a target to its finder, and
//     resolves dotted names ("customer.address.city") hop by hop.
//
//   - Builder: the factory constructing Registry and Resolver for a Config.
//
// Readers load the snapshot atomically and never take locks. Writers
// (SetConfig, SetBuilder, SetRegistry, SetResolver, SetAll) serialise on a
// build mutex, assemble a new snapshot and publish it.
//
// # Generic and specific elements
//
// Passing a reflect.Type as the target yields generic elements: they
// describe structure (type, declaring type, annotations, structural
// readability) and fail with element.ErrNonSpecific on access. Any other
// target yields specific elements bound to it:
//
//	el, ok, err := elx.Element("name").From(reflect.TypeOf(Person{}))
//	el, ok, err = elx.Element("name").From(&person)
//	v, err := el.Get()
//
// Lookups of missing elements report ok == false, never an error.
//
// # Pinning
//
// SetRegistry and SetResolver pin the layer they replace: SetConfig and
// SetBuilder stop rebuilding it until UnpinRegistry / UnpinResolver.
//
// # Scope
//
// elx does not generate code and keeps no state beyond the class elements
// cache, which memoizes the generic elements of struct types for the life
// of the process (see apis.CachePolicy).
package elx
