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

import (
	"fmt"
	"strings"
)

// CachePolicy controls how the class elements cache retains scanned types.
//
// The cache is keyed by type identity and is never invalidated while a type
// is in use. Processes that generate many short-lived types (e.g. through
// reflect.StructOf) can trade lookup speed for memory with Bypass.
type CachePolicy int

const (
	// Retain keeps every scanned type for the lifetime of the process.
	Retain CachePolicy = iota

	// Bypass rescans the type on every lookup and stores nothing.
	Bypass
)

// String returns the canonical name of the policy.
func (p CachePolicy) String() string {
	switch p {
	case Retain:
		return "Retain"
	case Bypass:
		return "Bypass"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ParseCachePolicy parses a policy name, case-insensitively.
func ParseCachePolicy(s string) (CachePolicy, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return Retain, fmt.Errorf("elx(apis): empty cache policy")
	}

	switch strings.ToUpper(trimmed) {
	case "RETAIN":
		return Retain, nil
	case "BYPASS":
		return Bypass, nil
	default:
		return Retain, fmt.Errorf("elx(apis): unknown cache policy %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p CachePolicy) MarshalText() ([]byte, error) {
	switch p {
	case Retain, Bypass:
		return []byte(p.String()), nil
	default:
		return nil, fmt.Errorf("elx(apis): cannot marshal unknown cache policy %d", int(p))
	}
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *CachePolicy) UnmarshalText(text []byte) error {
	value, err := ParseCachePolicy(string(text))
	if err != nil {
		return err
	}
	*p = value
	return nil
}
