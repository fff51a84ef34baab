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

package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"dirpx.dev/elx/apis"
)

var (
	// ErrNilPredicate is returned when a nil type predicate is provided.
	ErrNilPredicate = errors.New("elx(registry): nil type predicate provided")
	// ErrNilFinder is returned when a nil finder is provided.
	ErrNilFinder = errors.New("elx(registry): nil finder provided")
)

// New constructs a Registry whose built-in entries are builtins, in order.
// Built-in entries are consulted after caller entries and survive Reset.
func New(cfg apis.Config, builtins ...apis.Entry) apis.Registry {
	b := make([]apis.Entry, 0, len(builtins))
	for _, e := range builtins {
		if e.When == nil || e.Finder == nil {
			continue
		}
		e.Builtin = true
		b = append(b, e)
	}
	r := &registry{cfg: cfg, builtins: b}
	r.snap.Store(newSnapshot(nil, b))
	return r
}

// registry is an ordered finder table. Reads go through an immutable
// snapshot holding the table and a per-type lookup memo; writers publish a
// fresh snapshot, which drops the memo.
type registry struct {
	// cfg carries the logger.
	cfg apis.Config
	// mu serialises writers.
	mu sync.Mutex
	// builtins are installed once by New.
	builtins []apis.Entry
	// snap is the current table.
	snap atomic.Pointer[snapshot]
}

type snapshot struct {
	// callers are the caller entries in registration order.
	callers []apis.Entry
	// table is callers followed by the built-ins.
	table []apis.Entry
	// memo maps reflect.Type to memoEntry.
	memo sync.Map
}

type memoEntry struct {
	f  apis.Finder
	ok bool
}

func newSnapshot(callers, builtins []apis.Entry) *snapshot {
	table := make([]apis.Entry, 0, len(callers)+len(builtins))
	table = append(table, callers...)
	table = append(table, builtins...)
	return &snapshot{callers: callers, table: table}
}

// Register appends a caller entry. Caller entries are consulted before the
// built-ins, in registration order.
func (r *registry) Register(when apis.TypePredicate, f apis.Finder) error {
	// Validate inputs early.
	if when == nil {
		return ErrNilPredicate
	}
	if f == nil {
		return ErrNilFinder
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	old := r.snap.Load()
	callers := make([]apis.Entry, 0, len(old.callers)+1)
	callers = append(callers, old.callers...)
	callers = append(callers, apis.Entry{When: when, Finder: f})
	r.snap.Store(newSnapshot(callers, r.builtins))

	r.cfg.Log().Debug("elx(registry): finder registered",
		zap.String("finder", fmt.Sprintf("%T", f)),
		zap.Int("entries", len(callers)+len(r.builtins)))
	return nil
}

// Lookup returns the finder of the first entry accepting t.
func (r *registry) Lookup(t reflect.Type) (apis.Finder, bool) {
	if t == nil {
		return nil, false
	}
	s := r.snap.Load()
	if v, ok := s.memo.Load(t); ok {
		m := v.(memoEntry)
		return m.f, m.ok
	}
	var m memoEntry
	for _, e := range s.table {
		if e.When(t) {
			m = memoEntry{f: e.Finder, ok: true}
			break
		}
	}
	s.memo.Store(t, m)
	return m.f, m.ok
}

// Entries returns a snapshot of the table in consultation order.
func (r *registry) Entries() []apis.Entry {
	s := r.snap.Load()
	return append([]apis.Entry(nil), s.table...)
}

// Count returns the number of entries, built-ins included.
func (r *registry) Count() int {
	return len(r.snap.Load().table)
}

// Reset drops every caller entry.
func (r *registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap.Store(newSnapshot(nil, r.builtins))
	r.cfg.Log().Debug("elx(registry): reset", zap.Int("entries", len(r.builtins)))
}
