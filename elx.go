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

package elx

import (
	"errors"
	"sync"
	"sync/atomic"

	"dirpx.dev/elx/apis"
	"dirpx.dev/elx/builder"
	"dirpx.dev/elx/config"
	"dirpx.dev/elx/copier"
	"dirpx.dev/elx/selector"
	"dirpx.dev/elx/validation"
	"dirpx.dev/elx/validation/constraint"
)

// init initializes the global elx state.
func init() {
	// Initialize state with default cfg, reg, and res.
	s := &state{cfg: config.DefaultConfig()}
	b := builder.New()
	s.reg = b.BuildRegistry(s.cfg, nil)
	s.res = b.BuildResolver(s.cfg, s.reg)
	s.bld = b
	s.eng = buildEngine(s.cfg, nil)
	// Store the initial state atomically.
	st.Store(s)
}

var (
	// ErrNilRegistry is returned when a builder returns a nil registry.
	ErrNilRegistry = errors.New("elx: builder returned nil registry")
	// ErrNilResolver is returned when a builder returns a nil resolver.
	ErrNilResolver = errors.New("elx: builder returned nil resolver")
)

// Element returns a selector for the element called name, resolved by the
// global resolver.
//
//	el, ok, err := elx.Element("address.city").From(&person)
func Element(name string) selector.ElementSelector {
	return selector.Element(st.Load().res, name)
}

// Elements returns a selector for every element, resolved by the global
// resolver.
func Elements() selector.ElementsSelector {
	return selector.Elements(st.Load().res)
}

// CopyTo returns a copier into dst using the global resolver and logger.
//
//	err := elx.CopyTo(&dto).NotNil().From(&entity)
func CopyTo(dst any) copier.Copier {
	s := st.Load()
	return copier.New(s.res, dst).WithLogger(s.cfg.Log())
}

// Validate returns the validation of the elements sel selects, run by the
// global validation engine.
//
//	res, err := elx.Validate(elx.Elements()).In(&person)
func Validate(sel selector.ElementsSelector) validation.Validation {
	return st.Load().eng.Validate(sel)
}

// Register adds a caller finder to the global registry, consulted before
// the built-in finders for the types accepted by when.
func Register(when apis.TypePredicate, f apis.Finder) error {
	return st.Load().reg.Register(when, f)
}

// RegisterFactory adds a validator factory to the global engine, consulted
// before the constraint catalog.
func RegisterFactory(f validation.Factory) {
	if f == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	facs := append(append([]validation.Factory(nil), old.facs...), f)

	// Store the new state atomically.
	ns := *old
	ns.facs = facs
	ns.eng = buildEngine(old.cfg, facs)
	st.Store(&ns)
}

// SetAll explicitly sets all global elx state components.
//
// Nil arguments leave the corresponding component unchanged, except that a
// nil registry or resolver is rebuilt with the (new) builder and unpinned.
//
// This is a convenience wrapper around the global state.
func SetAll(cfg *apis.Config, reg apis.Registry, res apis.Resolver, bld apis.Builder) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Configuration
	ncfg := old.cfg
	if cfg != nil {
		ncfg = config.Sanitize(*cfg)
	}

	// Builder
	nbld := old.bld
	if bld != nil {
		nbld = bld
	}

	// Registry
	nreg := reg
	npreg := false
	if nreg == nil {
		nreg = nbld.BuildRegistry(ncfg, old.reg)
	} else {
		npreg = true
	}

	// Resolver
	nres := res
	npres := false
	if nres == nil {
		nres = nbld.BuildResolver(ncfg, nreg)
	} else {
		npres = true
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  ncfg,
			reg:  nreg,
			res:  nres,
			bld:  nbld,
			eng:  buildEngine(ncfg, old.facs),
			facs: old.facs,
			preg: npreg,
			pres: npres,
		},
	)
}

// Config returns the global elx configuration.
func Config() apis.Config {
	return st.Load().cfg
}

// SetConfig sets the global elx configuration to cfg.
// Zero fields take their defaults. It rebuilds the global reg and res
// using the new configuration, unless they are pinned.
// This is a convenience wrapper around the global state.
func SetConfig(cfg apis.Config) {
	cfg = config.Sanitize(cfg)

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new nreg and res based on the new cfg and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(cfg, old.reg)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(cfg, nreg)
	}

	// Ensure non-nil nreg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	st.Store(
		&state{
			cfg:  cfg,
			reg:  nreg,
			res:  nres,
			bld:  b,
			eng:  buildEngine(cfg, old.facs),
			facs: old.facs,
			preg: old.preg,
			pres: old.pres,
		},
	)
}

// Registry returns the global elx reg.
func Registry() apis.Registry {
	return st.Load().reg
}

// SetRegistry sets the global elx reg to reg and pins it.
// It uses the global elx configuration to rebuild the global res.
// This is a convenience wrapper around the global state.
func SetRegistry(reg apis.Registry) {
	if reg == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()
	b := old.bld

	// Build new res based on the old cfg and new reg.
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, reg)
	}

	// Ensure non-nil res.
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	ns := *old
	ns.reg = reg
	ns.res = nres
	ns.preg = true
	st.Store(&ns)
}

// Resolver returns the global elx res.
func Resolver() apis.Resolver {
	return st.Load().res
}

// SetResolver sets the global elx res to res and pins it.
// This is a convenience wrapper around the global state.
func SetResolver(res apis.Resolver) {
	if res == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Store the new state atomically.
	ns := *old
	ns.res = res
	ns.pres = true
	st.Store(&ns)
}

// Builder returns the global elx bld.
func Builder() apis.Builder {
	return st.Load().bld
}

// SetBuilder sets the global elx bld to b.
// This is a convenience wrapper around the global state.
func SetBuilder(b apis.Builder) {
	if b == nil {
		return
	}

	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	old := st.Load()

	// Build new reg and res based on the new bld and old state.
	nreg := old.reg
	if !old.preg {
		nreg = b.BuildRegistry(old.cfg, old.reg)
	}
	nres := old.res
	if !old.pres {
		nres = b.BuildResolver(old.cfg, nreg)
	}

	// Ensure non-nil reg and res.
	if nreg == nil {
		panic(ErrNilRegistry)
	}
	if nres == nil {
		panic(ErrNilResolver)
	}

	// Store the new state atomically.
	ns := *old
	ns.reg = nreg
	ns.res = nres
	ns.bld = b
	st.Store(&ns)
}

// IsRegistryPinned returns whether the global elx reg is pinned.
func IsRegistryPinned() bool {
	return st.Load().preg
}

// PinRegistry stops SetConfig and SetBuilder from rebuilding the global reg.
func PinRegistry() {
	setPins(func(s *state) { s.preg = true })
}

// UnpinRegistry lets the global reg be rebuilt again.
func UnpinRegistry() {
	setPins(func(s *state) { s.preg = false })
}

// IsResolverPinned returns whether the global elx res is pinned.
func IsResolverPinned() bool {
	return st.Load().pres
}

// PinResolver stops SetConfig, SetBuilder and SetRegistry from rebuilding
// the global res.
func PinResolver() {
	setPins(func(s *state) { s.pres = true })
}

// UnpinResolver lets the global res be rebuilt again.
func UnpinResolver() {
	setPins(func(s *state) { s.pres = false })
}

func setPins(f func(s *state)) {
	buildMu.Lock()
	defer buildMu.Unlock()

	// Load the old state.
	ns := *st.Load()
	f(&ns)
	// Store the new state atomically.
	st.Store(&ns)
}

// buildEngine returns the validation engine for cfg: caller factories first,
// then the constraint catalog.
func buildEngine(cfg apis.Config, facs []validation.Factory) *validation.Engine {
	all := make([]validation.Factory, 0, len(facs)+1)
	all = append(all, facs...)
	all = append(all, constraint.Factories()...)
	return validation.New(all...).WithLogger(cfg.Log())
}

// buildMu serializes writers (reconfigurations/swaps) so we never publish
// partially-built snapshots.
var buildMu sync.Mutex

// st is the global elx state.
var st atomic.Pointer[state]

// state is the global elx state snapshot.
// Immutable snapshot published atomically via st.Store; never mutate fields
// of a published state. Writers create a new state and swap it atomically.
type state struct {
	// cfg is the global elx configuration.
	cfg apis.Config
	// reg is the global elx reg.
	reg apis.Registry
	// res is the global elx res.
	res apis.Resolver
	// bld is the global elx bld.
	bld apis.Builder
	// eng is the global validation engine.
	eng *validation.Engine
	// facs are the caller validator factories.
	facs []validation.Factory
	// preg indicates whether the reg is pinned.
	preg bool
	// pres indicates whether the res is pinned.
	pres bool
}
