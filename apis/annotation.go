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

// Annotation is a piece of metadata attached to an element. Struct tags are
// parsed into annotations; annotation values are themselves valid targets
// whose attributes can be read as elements.
type Annotation interface {
	// AnnotationName returns the short name of the annotation, e.g. "max".
	AnnotationName() string
}

// MemberAnnotator may be implemented by a type to attach annotations to its
// members programmatically. member is the Go name of a field or method
// ("Name", "GetName", "SetName"). It is called on the zero value of the type.
type MemberAnnotator interface {
	MemberAnnotations(member string) []Annotation
}
