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

// Package annotation turns struct tags into element annotations.
//
// Every tag key of a field becomes a Tag. The value of the constraint key
// ("validate" by default) is additionally split on commas and each entry is
// handed to the parser registered under its name:
//
//	type Person struct {
//		Name string `json:"name" validate:"notempty,length=1:64"`
//	}
//
// Entries without a parser become Unknown; entries whose parser fails become
// Malformed. Parsers are registered process-wide, typically from an init
// function of the package defining the annotation types.
package annotation
