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

package resolver

import (
	"strings"

	"dirpx.dev/elx/apis"
	uref "dirpx.dev/elx/utils/reflect"
)

// New constructs the dispatcher: targets are routed to the finder reg
// returns for their type, fallback otherwise. The returned resolver is safe
// for concurrent use provided finders themselves are.
func New(cfg apis.Config, reg apis.Registry, fallback apis.Finder) apis.Resolver {
	sep := cfg.Separator
	if sep == "" {
		sep = "."
	}
	return &dispatcher{cfg: cfg, sep: sep, reg: reg, fallback: fallback}
}

// dispatcher is an immutable resolver over a registry and a fallback finder.
type dispatcher struct {
	cfg      apis.Config
	sep      string
	reg      apis.Registry
	fallback apis.Finder
}

// Ensure dispatcher implements apis.Resolver.
var _ apis.Resolver = (*dispatcher)(nil)

// Find returns the element called name on target. Dotted names go to the
// nested resolver whatever the target kind.
func (d *dispatcher) Find(name string, target any) (apis.Element, bool, error) {
	if target == nil || name == "" {
		return nil, false, nil
	}
	if strings.Contains(name, d.sep) {
		return d.nested(name, target)
	}
	f := d.finder(target)
	if f == nil {
		return nil, false, nil
	}
	return f.Find(name, target)
}

// FindAll returns every element of target.
func (d *dispatcher) FindAll(target any) ([]apis.Element, error) {
	if target == nil {
		return nil, nil
	}
	f := d.finder(target)
	if f == nil {
		return nil, nil
	}
	return f.FindAll(target)
}

// Finder returns the finder target is routed to.
func (d *dispatcher) finder(target any) apis.Finder {
	t, _ := uref.TargetType(target)
	if t == nil {
		return nil
	}
	if d.reg != nil {
		if f, ok := d.reg.Lookup(t); ok {
			return f
		}
	}
	return d.fallback
}
