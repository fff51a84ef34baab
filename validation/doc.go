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

// Package validation checks the constraint annotations of elements.
//
// An Engine walks the elements an ElementsSelector picks from a target. For
// every annotation of an element the first Factory supporting it builds a
// Validator; the element value is read once, when the first validator needs
// it. Every violated annotation is recorded against the element path.
// Annotations implementing Cascade make the engine descend into the value
// and report nested violations under a dotted path ("items.0.name").
//
// Annotations no factory supports are ignored. A factory failing to build a
// validator aborts the validation with an error wrapping ErrCreate.
package validation
