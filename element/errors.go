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

package element

import (
	"errors"
	"fmt"
)

var (
	// ErrNonSpecific is returned when a generic element is read or written.
	ErrNonSpecific = errors.New("elx(element): element is not bound to a target")
	// ErrHandling is the umbrella of every access failure on a bound element.
	ErrHandling = errors.New("elx(element): element handling failed")
	// ErrUnreadable is returned when a bound element cannot be read.
	ErrUnreadable = errors.New("elx(element): element is not readable")
	// ErrUnwritable is returned when a bound element cannot be written.
	ErrUnwritable = errors.New("elx(element): element is not writable")
	// ErrIllegalTarget is returned when an element is bound to a target of
	// the wrong kind.
	ErrIllegalTarget = errors.New("elx(element): illegal target for element")
	// ErrTypeMismatch is returned when a value does not fit the element type.
	ErrTypeMismatch = errors.New("elx(element): value does not match element type")
	// ErrNilPath is returned when a nested path meets a nil intermediate value.
	ErrNilPath = errors.New("elx(element): nil value in element path")
	// ErrMissingKey is returned when a read-only bundle has no such key.
	ErrMissingKey = errors.New("elx(element): missing key")
	// ErrIndexOutOfRange is returned when an index no longer fits the target.
	ErrIndexOutOfRange = errors.New("elx(element): index out of range")
	// ErrMetadata is returned when a target cannot describe its own elements.
	ErrMetadata = errors.New("elx(element): target metadata unavailable")
)

// Op names the access that failed.
type Op string

const (
	// OpGet is a read.
	OpGet Op = "get"
	// OpSet is a write.
	OpSet Op = "set"
	// OpFind is an element lookup.
	OpFind Op = "find"
)

// AccessError reports a failed access to an element.
//
// Kind is one of the package sentinels. Every kind except ErrNonSpecific is
// also a handling failure, so errors.Is(err, ErrHandling) holds for them.
// Err is the underlying cause, if any.
type AccessError struct {
	Element string
	Op      Op
	Kind    error
	Err     error
}

// Error implements error.
func (e *AccessError) Error() string {
	msg := fmt.Sprintf("%s %q: %v", e.Op, e.Element, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the kind, the handling umbrella and the cause.
func (e *AccessError) Unwrap() []error {
	out := make([]error, 0, 3)
	if e.Kind != nil {
		out = append(out, e.Kind)
	}
	if e.Kind != ErrNonSpecific && e.Kind != ErrHandling {
		out = append(out, ErrHandling)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// NonSpecific returns the error for an access to a generic element.
func NonSpecific(name string, op Op) error {
	return &AccessError{Element: name, Op: op, Kind: ErrNonSpecific}
}

// Unreadable returns the error for a read of an unreadable element.
func Unreadable(name string) error {
	return &AccessError{Element: name, Op: OpGet, Kind: ErrUnreadable}
}

// Unwritable returns the error for a write to an unwritable element.
func Unwritable(name string) error {
	return &AccessError{Element: name, Op: OpSet, Kind: ErrUnwritable}
}

// IllegalTarget returns the error for an access against a foreign target.
func IllegalTarget(name string, op Op, target any) error {
	return &AccessError{Element: name, Op: op, Kind: ErrIllegalTarget, Err: fmt.Errorf("target %T", target)}
}

// Handling wraps an underlying failure of an access. Errors that already are
// *AccessError values are returned unchanged.
func Handling(name string, op Op, err error) error {
	if err == nil {
		return nil
	}
	var ae *AccessError
	if errors.As(err, &ae) {
		return err
	}
	return &AccessError{Element: name, Op: op, Kind: ErrHandling, Err: err}
}
